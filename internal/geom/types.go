// Package geom is the 2D geometry kernel: planar points, line-strings,
// rings, polygons (with holes) and multi-polygons, plus the boolean
// algebra, buffering, simplification and affine operations the Gerber
// and Excellon parsers and the CNC-job engine are built on.
//
// The kernel is a thin domain layer over github.com/go-clipper/clipper2:
// shapes are converted to the library's fixed-point Path64 on the way
// in, and back on the way out. See clipper.go for the adapter and
// DESIGN.md for why a wrapped CAG library was chosen over a hand-rolled
// one (spec.md explicitly allows either).
package geom

import "gonum.org/v1/gonum/spatial/r2"

// Point is a bare coordinate pair.
type Point = r2.Vec

// LineString is an open polyline: p[0], p[1], ..., p[n-1].
type LineString []Point

// LinearRing is a closed polyline. By convention the first and last
// points are NOT duplicated; closure is implicit.
type LinearRing []Point

// Polygon is a shell with zero or more holes, all implicitly closed.
type Polygon struct {
	Shell LinearRing
	Holes []LinearRing
}

// MultiPolygon is an unordered collection of polygons.
type MultiPolygon []Polygon

// Kind tags the dynamic type carried by a Shape.
type Kind int

const (
	KindEmpty Kind = iota
	KindPoint
	KindLineString
	KindLinearRing
	KindPolygon
	KindMultiPolygon
)

// Shape is a tagged union over the planar geometry types. Exactly one
// of the typed fields is meaningful, as indicated by Kind.
type Shape struct {
	Kind         Kind
	Point        Point
	LineString   LineString
	LinearRing   LinearRing
	Polygon      Polygon
	MultiPolygon MultiPolygon
}

// Empty is the empty shape (result of a boolean op that cancels out).
func Empty() Shape { return Shape{Kind: KindEmpty} }

func FromPoint(p Point) Shape { return Shape{Kind: KindPoint, Point: p} }

func FromLineString(ls LineString) Shape {
	return Shape{Kind: KindLineString, LineString: ls}
}

func FromLinearRing(r LinearRing) Shape {
	return Shape{Kind: KindLinearRing, LinearRing: r}
}

func FromPolygon(p Polygon) Shape { return Shape{Kind: KindPolygon, Polygon: p} }

func FromMultiPolygon(mp MultiPolygon) Shape {
	if len(mp) == 1 {
		return FromPolygon(mp[0])
	}
	return Shape{Kind: KindMultiPolygon, MultiPolygon: mp}
}

// IsEmpty reports whether the shape carries no geometry.
func (s Shape) IsEmpty() bool {
	switch s.Kind {
	case KindEmpty:
		return true
	case KindLineString:
		return len(s.LineString) == 0
	case KindLinearRing:
		return len(s.LinearRing) < 3
	case KindPolygon:
		return len(s.Polygon.Shell) < 3
	case KindMultiPolygon:
		return len(s.MultiPolygon) == 0
	}
	return false
}

// AsMultiPolygon normalizes a polygon-shaped Shape into a MultiPolygon.
// Empty, point and line-string shapes yield nil.
func (s Shape) AsMultiPolygon() MultiPolygon {
	switch s.Kind {
	case KindPolygon:
		return MultiPolygon{s.Polygon}
	case KindMultiPolygon:
		return s.MultiPolygon
	case KindLinearRing:
		return MultiPolygon{{Shell: s.LinearRing}}
	}
	return nil
}

func closeRing(r LinearRing) LinearRing {
	if len(r) == 0 {
		return r
	}
	if r[0] == r[len(r)-1] {
		return r
	}
	out := make(LinearRing, len(r)+1)
	copy(out, r)
	out[len(r)] = r[0]
	return out
}
