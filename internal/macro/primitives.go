package macro

import (
	"math"

	"github.com/kennycoder/flatcam-core/internal/geom"
)

// Primitive is one instantiated macro primitive: its composed shape
// and whether it is dark (exposure=1, adds) or clear (exposure=0,
// subtracts).
type Primitive struct {
	Code     int
	Exposure bool
	Shape    geom.Shape
}

func buildPrimitive(code int, mods []float64) (Primitive, bool) {
	switch code {
	case 1:
		return buildCircle(mods)
	case 2, 20:
		return buildVectorLine(mods)
	case 21:
		return buildCenterLine(mods)
	case 22:
		return buildLowerLeftLine(mods)
	case 4:
		return buildOutline(mods)
	case 5:
		return buildPolygon(mods)
	case 6:
		return buildMoire(mods)
	case 7:
		return buildThermal(mods)
	}
	return Primitive{}, false
}

func at(mods []float64, i int) float64 {
	if i < len(mods) {
		return mods[i]
	}
	return 0
}

func rotateAboutOrigin(s geom.Shape, rotDeg float64) geom.Shape {
	if rotDeg == 0 {
		return s
	}
	return geom.Rotate(s, rotDeg, geom.Point{})
}

// buildCircle: code 1. exposure, diameter, x, y.
func buildCircle(mods []float64) (Primitive, bool) {
	exposure := at(mods, 0)
	diameter := at(mods, 1)
	x, y := at(mods, 2), at(mods, 3)
	disk := geom.Buffer(geom.FromPoint(geom.Point{X: x, Y: y}), diameter/2, geom.JoinRound, geom.CapRound)
	return Primitive{Code: 1, Exposure: exposure != 0, Shape: disk}, true
}

// buildVectorLine: code 2/20. exposure, width, xs, ys, xe, ye, rot.
func buildVectorLine(mods []float64) (Primitive, bool) {
	exposure := at(mods, 0)
	width := at(mods, 1)
	xs, ys := at(mods, 2), at(mods, 3)
	xe, ye := at(mods, 4), at(mods, 5)
	rot := at(mods, 6)
	line := geom.FromLineString(geom.LineString{{X: xs, Y: ys}, {X: xe, Y: ye}})
	shape := geom.Buffer(line, width/2, geom.JoinRound, geom.CapFlat)
	shape = rotateAboutOrigin(shape, rot)
	return Primitive{Code: 2, Exposure: exposure != 0, Shape: shape}, true
}

func axisRect(w, h, cx, cy float64) geom.Shape {
	hw, hh := w/2, h/2
	ring := geom.LinearRing{
		{X: cx - hw, Y: cy - hh},
		{X: cx + hw, Y: cy - hh},
		{X: cx + hw, Y: cy + hh},
		{X: cx - hw, Y: cy + hh},
	}
	return geom.FromPolygon(geom.Polygon{Shell: ring})
}

// buildCenterLine: code 21. exposure, w, h, x, y, rot. Rectangle
// centered at (x,y).
func buildCenterLine(mods []float64) (Primitive, bool) {
	exposure := at(mods, 0)
	w, h := at(mods, 1), at(mods, 2)
	x, y := at(mods, 3), at(mods, 4)
	rot := at(mods, 5)
	shape := rotateAboutOrigin(axisRect(w, h, x, y), rot)
	return Primitive{Code: 21, Exposure: exposure != 0, Shape: shape}, true
}

// buildLowerLeftLine: code 22. exposure, w, h, x, y, rot. (x,y) is the
// lower-left corner.
func buildLowerLeftLine(mods []float64) (Primitive, bool) {
	exposure := at(mods, 0)
	w, h := at(mods, 1), at(mods, 2)
	x, y := at(mods, 3), at(mods, 4)
	rot := at(mods, 5)
	shape := rotateAboutOrigin(axisRect(w, h, x+w/2, y+h/2), rot)
	return Primitive{Code: 22, Exposure: exposure != 0, Shape: shape}, true
}

// buildOutline: code 4. exposure, n, (x0,y0)...(xn,yn), rot. The first
// vertex is repeated as the closing vertex in the data already.
func buildOutline(mods []float64) (Primitive, bool) {
	exposure := at(mods, 0)
	n := int(at(mods, 1))
	ring := make(geom.LinearRing, 0, n+1)
	for i := 0; i <= n; i++ {
		x := at(mods, 2+2*i)
		y := at(mods, 2+2*i+1)
		ring = append(ring, geom.Point{X: x, Y: y})
	}
	rot := at(mods, 2+2*(n+1))
	shape := rotateAboutOrigin(geom.FromPolygon(geom.Polygon{Shell: ring}), rot)
	return Primitive{Code: 4, Exposure: exposure != 0, Shape: shape}, true
}

// buildPolygon: code 5. exposure, n (3..12), xc, yc, diam, rot.
func buildPolygon(mods []float64) (Primitive, bool) {
	exposure := at(mods, 0)
	n := int(at(mods, 1))
	xc, yc := at(mods, 2), at(mods, 3)
	diam := at(mods, 4)
	rot := at(mods, 5)
	radius := diam / 2
	ring := make(geom.LinearRing, 0, n)
	for i := 0; i < n; i++ {
		theta := 2 * math.Pi * float64(i) / float64(n)
		ring = append(ring, geom.Point{
			X: xc + radius*math.Cos(theta),
			Y: yc + radius*math.Sin(theta),
		})
	}
	shape := rotateAboutOrigin(geom.FromPolygon(geom.Polygon{Shell: ring}), rot)
	return Primitive{Code: 5, Exposure: exposure != 0, Shape: shape}, true
}

// buildMoire: code 6. xc, yc, outer_dia, ring_th, gap, max_rings,
// cross_th, cross_len, rot. Always dark (moire has no exposure
// modifier in RS-274X).
func buildMoire(mods []float64) (Primitive, bool) {
	xc, yc := at(mods, 0), at(mods, 1)
	outerDia := at(mods, 2)
	ringTh := at(mods, 3)
	gap := at(mods, 4)
	maxRings := int(at(mods, 5))
	crossTh := at(mods, 6)
	crossLen := at(mods, 7)
	rot := at(mods, 8)

	center := geom.Point{X: xc, Y: yc}
	var rings []geom.Shape
	outerRadius := outerDia / 2
	for i := 0; i < maxRings; i++ {
		innerRadius := outerRadius - ringTh
		if innerRadius <= 0 {
			outer := geom.Buffer(geom.FromPoint(center), outerRadius, geom.JoinRound, geom.CapRound)
			rings = append(rings, outer)
			break
		}
		outer := geom.Buffer(geom.FromPoint(center), outerRadius, geom.JoinRound, geom.CapRound)
		inner := geom.Buffer(geom.FromPoint(center), innerRadius, geom.JoinRound, geom.CapRound)
		rings = append(rings, geom.Difference(outer, inner))
		outerRadius -= ringTh + gap
		if outerRadius <= 0 {
			break
		}
	}

	hLine := geom.FromLineString(geom.LineString{
		{X: xc - crossLen/2, Y: yc}, {X: xc + crossLen/2, Y: yc},
	})
	vLine := geom.FromLineString(geom.LineString{
		{X: xc, Y: yc - crossLen/2}, {X: xc, Y: yc + crossLen/2},
	})
	cross := geom.Union(
		geom.Buffer(hLine, crossTh/2, geom.JoinRound, geom.CapFlat),
		geom.Buffer(vLine, crossTh/2, geom.JoinRound, geom.CapFlat),
	)

	shapes := append(rings, cross)
	shape := geom.Union(shapes...)
	shape = rotateAboutOrigin(shape, rot)
	return Primitive{Code: 6, Exposure: true, Shape: shape}, true
}

// buildThermal: code 7. xc, yc, dout, din, t, rot. Annulus minus a
// horizontal and vertical bar of width t through the center (square
// caps). Always dark.
func buildThermal(mods []float64) (Primitive, bool) {
	xc, yc := at(mods, 0), at(mods, 1)
	dout, din := at(mods, 2), at(mods, 3)
	t := at(mods, 4)
	rot := at(mods, 5)

	center := geom.Point{X: xc, Y: yc}
	outer := geom.Buffer(geom.FromPoint(center), dout/2, geom.JoinRound, geom.CapRound)
	inner := geom.Buffer(geom.FromPoint(center), din/2, geom.JoinRound, geom.CapRound)
	annulus := geom.Difference(outer, inner)

	half := dout/2 + t
	hBar := geom.Buffer(geom.FromLineString(geom.LineString{
		{X: xc - half, Y: yc}, {X: xc + half, Y: yc},
	}), t/2, geom.JoinMiter, geom.CapSquare)
	vBar := geom.Buffer(geom.FromLineString(geom.LineString{
		{X: xc, Y: yc - half}, {X: xc, Y: yc + half},
	}), t/2, geom.JoinMiter, geom.CapSquare)

	shape := geom.Difference(geom.Difference(annulus, hBar), vBar)
	shape = rotateAboutOrigin(shape, rot)
	return Primitive{Code: 7, Exposure: true, Shape: shape}, true
}
