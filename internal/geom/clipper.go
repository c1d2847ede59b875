package geom

import (
	"github.com/go-clipper/clipper2"
)

// fixedScale converts the kernel's float64 coordinates to the integer
// grid clipper2.Path64 is built on. 1e7 keeps 7 fractional decimal
// digits, comfortably more than the 4-6 fractional digits any Gerber
// or Excellon format declares.
const fixedScale = 1e7

func toPath64(pts []Point) clipper2.Path64 {
	path := make(clipper2.Path64, len(pts))
	for i, p := range pts {
		path[i] = clipper2.Point64{
			X: int64(p.X * fixedScale),
			Y: int64(p.Y * fixedScale),
		}
	}
	return path
}

func fromPath64(path clipper2.Path64) []Point {
	pts := make([]Point, len(path))
	for i, p := range path {
		pts[i] = Point{X: float64(p.X) / fixedScale, Y: float64(p.Y) / fixedScale}
	}
	return pts
}

func ringToPath64(r LinearRing) clipper2.Path64 { return toPath64([]Point(r)) }

func polygonToPaths64(p Polygon) clipper2.Paths64 {
	paths := make(clipper2.Paths64, 0, 1+len(p.Holes))
	paths = append(paths, ringToPath64(p.Shell))
	for _, h := range p.Holes {
		paths = append(paths, ringToPath64(h))
	}
	return paths
}

// shapeToPaths64 flattens any polygonal shape to a subject path set
// clipper2 can consume (shell + holes, or each polygon of a
// multi-polygon in turn; holes and shells are told apart by clipper2's
// own orientation/fill-rule handling under NonZero fill).
func shapeToPaths64(s Shape) clipper2.Paths64 {
	switch s.Kind {
	case KindPolygon:
		return polygonToPaths64(s.Polygon)
	case KindMultiPolygon:
		var paths clipper2.Paths64
		for _, p := range s.MultiPolygon {
			paths = append(paths, polygonToPaths64(p)...)
		}
		return paths
	case KindLinearRing:
		return clipper2.Paths64{ringToPath64(s.LinearRing)}
	case KindLineString:
		return clipper2.Paths64{toPath64([]Point(s.LineString))}
	}
	return nil
}

// paths64ToMultiPolygon reassembles clipper2's flat Paths64 result into
// a MultiPolygon using signed area: positive-area paths are shells,
// negative-area paths are holes of the first shell (in result order)
// whose ring contains them. Clipper2's boolean ops always orient output
// shells CCW (positive area) and holes CW (negative area).
func paths64ToMultiPolygon(paths clipper2.Paths64) MultiPolygon {
	var shells []Polygon
	var holes []clipper2.Path64
	for _, path := range paths {
		if len(path) < 3 {
			continue
		}
		if signedArea64(path) >= 0 {
			shells = append(shells, Polygon{Shell: fromPath64(path)})
		} else {
			holes = append(holes, path)
		}
	}
	for _, hole := range holes {
		ring := fromPath64(hole)
		owner := findOwner(shells, ring)
		if owner < 0 {
			// No enclosing shell found (degenerate input): keep the
			// hole as its own (reversed) shell rather than drop data.
			reversed := make(LinearRing, len(ring))
			for i, p := range ring {
				reversed[len(ring)-1-i] = p
			}
			shells = append(shells, Polygon{Shell: reversed})
			continue
		}
		shells[owner].Holes = append(shells[owner].Holes, ring)
	}
	return MultiPolygon(shells)
}

func signedArea64(path clipper2.Path64) float64 {
	var area float64
	n := len(path)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		area += float64(path[i].X)*float64(path[j].Y) - float64(path[j].X)*float64(path[i].Y)
	}
	return area / 2
}

func findOwner(shells []Polygon, ring LinearRing) int {
	if len(ring) == 0 {
		return -1
	}
	test := ring[0]
	for i, s := range shells {
		if pointInRing(test, s.Shell) {
			return i
		}
	}
	return -1
}

// JoinStyle controls corner joining for buffer/offset.
type JoinStyle int

const (
	JoinRound JoinStyle = iota
	JoinMiter
	JoinBevel
	JoinSquare
)

// CapStyle controls end caps when buffering an open line-string.
// The numeric values mirror the Gerber aperture-macro cap_style
// convention: 1 round, 2 flat (butt), 3 square.
type CapStyle int

const (
	CapRound  CapStyle = 1
	CapFlat   CapStyle = 2
	CapSquare CapStyle = 3
)

func toJoinType(j JoinStyle) clipper2.JoinType {
	switch j {
	case JoinMiter:
		return clipper2.JoinMiter
	case JoinBevel:
		return clipper2.JoinBevel
	case JoinSquare:
		return clipper2.JoinSquare
	default:
		return clipper2.JoinRound
	}
}

func toEndType(closed bool, cap CapStyle) clipper2.EndType {
	if closed {
		return clipper2.EndPolygon
	}
	switch cap {
	case CapFlat:
		return clipper2.EndButt
	case CapSquare:
		return clipper2.EndSquare
	default:
		return clipper2.EndRound
	}
}

func booleanOp(op func(subjects, clips clipper2.Paths64, fillRule clipper2.FillRule) clipper2.Paths64, a, b Shape) Shape {
	subjects := shapeToPaths64(a)
	clips := shapeToPaths64(b)
	result := op(subjects, clips, clipper2.NonZero)
	return FromMultiPolygon(paths64ToMultiPolygon(result))
}

// Union returns the planar union of any number of polygonal shapes.
func Union(shapes ...Shape) Shape {
	if len(shapes) == 0 {
		return Empty()
	}
	acc := shapeToPaths64(shapes[0])
	for _, s := range shapes[1:] {
		acc = clipper2.Union(acc, shapeToPaths64(s), clipper2.NonZero)
	}
	// A final self-union normalizes a single input (e.g. repairs a
	// self-intersecting ring, per the GeometryDegenerate policy).
	acc = clipper2.Union(acc, nil, clipper2.NonZero)
	return FromMultiPolygon(paths64ToMultiPolygon(acc))
}

// Difference returns a minus b.
func Difference(a, b Shape) Shape {
	return booleanOp(clipper2.Difference, a, b)
}

// Intersection returns the planar intersection of a and b.
func Intersection(a, b Shape) Shape {
	return booleanOp(clipper2.Intersection, a, b)
}

// Buffer returns the Minkowski sum of s with a disk of radius |d|
// (d >= 0), or the erosion of s by |d| (d < 0). join/cap control the
// corner and end style; cap only matters for open line-strings and
// points.
func Buffer(s Shape, d float64, join JoinStyle, cap CapStyle) Shape {
	closed := s.Kind == KindPolygon || s.Kind == KindMultiPolygon || s.Kind == KindLinearRing
	paths := shapeToPaths64(s)
	if s.Kind == KindPoint {
		// A single-point open path inflates to a disk under round caps.
		paths = clipper2.Paths64{toPath64([]Point{s.Point})}
	}
	if len(paths) == 0 {
		return Empty()
	}
	out := clipper2.InflatePaths(paths, d*fixedScale, toJoinType(join), toEndType(closed, cap), 2.0)
	return FromMultiPolygon(paths64ToMultiPolygon(out))
}

// Simplify reduces vertex count while keeping every output vertex
// within tol of the input (Douglas-Peucker, as clipper2.SimplifyPaths
// implements).
func Simplify(s Shape, tol float64) Shape {
	paths := shapeToPaths64(s)
	if len(paths) == 0 {
		return s
	}
	isOpen := s.Kind == KindLineString
	out := clipper2.SimplifyPaths(paths, tol*fixedScale, isOpen)
	switch s.Kind {
	case KindLineString:
		if len(out) == 0 {
			return Empty()
		}
		return FromLineString(fromPath64(out[0]))
	default:
		return FromMultiPolygon(paths64ToMultiPolygon(out))
	}
}
