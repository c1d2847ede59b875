package gerber

import (
	"math"

	"github.com/kennycoder/flatcam-core/internal/geom"
)

// createFlashGeometry builds the shape of ap at the macro-local
// origin; the caller translates it to the flash location.
func (o *Object) createFlashGeometry(id int, ap Aperture) geom.Shape {
	switch ap.Kind {
	case ApertureCircle:
		return geom.Buffer(geom.FromPoint(geom.Point{}), ap.Size/2, geom.JoinRound, geom.CapRound)
	case ApertureRect:
		return axisRect(ap.Width, ap.Height, 0, 0)
	case ApertureObround:
		return obroundShape(ap.Width, ap.Height)
	case AperturePolygon:
		return regularPolygonQuirk(ap.Diam, ap.NVertices, ap.Rotation)
	case ApertureMacro:
		mac, ok := o.macros[ap.MacroName]
		if !ok {
			o.warnf("aperture %d references undefined macro %q", id, ap.MacroName)
			return geom.Empty()
		}
		return mac.Instantiate(ap.MacroMods)
	}
	o.warnf("aperture %d has unknown kind", id)
	return geom.Empty()
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

// obroundShape builds a stadium: the convex hull of two end disks,
// equivalently a line segment of the excess length buffered by the
// short side's half-width with round caps.
func obroundShape(w, h float64) geom.Shape {
	if w >= h {
		half := (w - h) / 2
		line := geom.FromLineString(geom.LineString{{X: -half, Y: 0}, {X: half, Y: 0}})
		return geom.Buffer(line, h/2, geom.JoinRound, geom.CapRound)
	}
	half := (h - w) / 2
	line := geom.FromLineString(geom.LineString{{X: 0, Y: -half}, {X: 0, Y: half}})
	return geom.Buffer(line, w/2, geom.JoinRound, geom.CapRound)
}

// regularPolygonQuirk builds the P aperture's regular polygon, using
// radius directly as the diam modifier rather than diam/2 — preserving
// the source's documented quirk instead of the name's implication.
func regularPolygonQuirk(radius float64, n int, rotDeg float64) geom.Shape {
	if n < 3 {
		n = 3
	}
	ring := make(geom.LinearRing, 0, n)
	for i := 0; i < n; i++ {
		theta := 2 * math.Pi * float64(i) / float64(n)
		ring = append(ring, geom.Point{
			X: radius * math.Cos(theta),
			Y: radius * math.Sin(theta),
		})
	}
	shape := geom.FromPolygon(geom.Polygon{Shell: ring})
	if rotDeg != 0 {
		shape = geom.Rotate(shape, rotDeg, geom.Point{})
	}
	return shape
}
