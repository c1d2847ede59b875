package geom

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/kennycoder/flatcam-core/internal/numeric"
)

// Bounds is an axis-aligned bounding box.
type Bounds struct {
	MinX, MinY, MaxX, MaxY float64
}

func (b Bounds) Valid() bool { return b.MinX <= b.MaxX && b.MinY <= b.MaxY }

func ringBounds(r LinearRing, b *Bounds, init *bool) {
	for _, p := range r {
		if !*init {
			b.MinX, b.MaxX = p.X, p.X
			b.MinY, b.MaxY = p.Y, p.Y
			*init = true
			continue
		}
		b.MinX = math.Min(b.MinX, p.X)
		b.MinY = math.Min(b.MinY, p.Y)
		b.MaxX = math.Max(b.MaxX, p.X)
		b.MaxY = math.Max(b.MaxY, p.Y)
	}
}

// GetBounds computes the axis-aligned bounding box of any shape.
func GetBounds(s Shape) Bounds {
	var b Bounds
	init := false
	switch s.Kind {
	case KindPoint:
		b = Bounds{s.Point.X, s.Point.Y, s.Point.X, s.Point.Y}
		init = true
	case KindLineString:
		ringBounds(LinearRing(s.LineString), &b, &init)
	case KindLinearRing:
		ringBounds(s.LinearRing, &b, &init)
	case KindPolygon:
		ringBounds(s.Polygon.Shell, &b, &init)
		for _, h := range s.Polygon.Holes {
			ringBounds(h, &b, &init)
		}
	case KindMultiPolygon:
		for _, p := range s.MultiPolygon {
			ringBounds(p.Shell, &b, &init)
			for _, h := range p.Holes {
				ringBounds(h, &b, &init)
			}
		}
	}
	return b
}

// Envelope returns the axis-aligned bounding rectangle of s, as a
// polygon.
func Envelope(s Shape) Shape {
	b := GetBounds(s)
	if !b.Valid() {
		return Empty()
	}
	ring := LinearRing{
		{X: b.MinX, Y: b.MinY},
		{X: b.MaxX, Y: b.MinY},
		{X: b.MaxX, Y: b.MaxY},
		{X: b.MinX, Y: b.MaxY},
	}
	return FromPolygon(Polygon{Shell: ring})
}

// pointInRing implements the standard even-odd ray-casting test,
// excluding the boundary (strict interior), matching spec.md's
// `contains` contract.
func pointInRing(p Point, ring LinearRing) bool {
	n := len(ring)
	if n < 3 {
		return false
	}
	inside := false
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		pi, pj := ring[i], ring[j]
		onSegment := pointOnSegment(p, pi, pj)
		if onSegment {
			return false // boundary excluded
		}
		if (pi.Y > p.Y) != (pj.Y > p.Y) {
			xIntersect := pi.X + (p.Y-pi.Y)/(pj.Y-pi.Y)*(pj.X-pi.X)
			if p.X < xIntersect {
				inside = !inside
			}
		}
	}
	return inside
}

func pointOnSegment(p, a, b Point) bool {
	const eps = 1e-12
	cross := (p.X-a.X)*(b.Y-a.Y) - (p.Y-a.Y)*(b.X-a.X)
	if math.Abs(cross) > eps {
		return false
	}
	dot := (p.X-a.X)*(b.X-a.X) + (p.Y-a.Y)*(b.Y-a.Y)
	if dot < 0 {
		return false
	}
	lenSq := (b.X-a.X)*(b.X-a.X) + (b.Y-a.Y)*(b.Y-a.Y)
	return dot <= lenSq
}

// Contains reports whether p lies strictly inside s (boundary
// excluded).
func Contains(s Shape, p Point) bool {
	switch s.Kind {
	case KindPolygon:
		return polygonContains(s.Polygon, p)
	case KindMultiPolygon:
		for _, poly := range s.MultiPolygon {
			if polygonContains(poly, p) {
				return true
			}
		}
		return false
	}
	return false
}

func polygonContains(poly Polygon, p Point) bool {
	if !pointInRing(p, poly.Shell) {
		return false
	}
	for _, h := range poly.Holes {
		if pointInRing(p, h) {
			return false
		}
	}
	return true
}

// Translate shifts every vertex of s by (dx, dy).
func Translate(s Shape, dx, dy float64) Shape {
	return transform(s, func(p Point) Point {
		return Point{X: p.X + dx, Y: p.Y + dy}
	})
}

// Scale scales s by (sx, sy) about origin.
func Scale(s Shape, sx, sy float64, origin Point) Shape {
	return transform(s, func(p Point) Point {
		return Point{
			X: origin.X + (p.X-origin.X)*sx,
			Y: origin.Y + (p.Y-origin.Y)*sy,
		}
	})
}

// Rotate rotates s by angleDeg degrees (CCW positive) about origin.
func Rotate(s Shape, angleDeg float64, origin Point) Shape {
	theta := angleDeg * math.Pi / 180
	sin, cos := math.Sin(theta), math.Cos(theta)
	return transform(s, func(p Point) Point {
		x, y := p.X-origin.X, p.Y-origin.Y
		return Point{
			X: origin.X + x*cos - y*sin,
			Y: origin.Y + x*sin + y*cos,
		}
	})
}

func transformRing(r LinearRing, f func(Point) Point) LinearRing {
	out := make(LinearRing, len(r))
	for i, p := range r {
		out[i] = f(p)
	}
	return out
}

func transformPolygon(poly Polygon, f func(Point) Point) Polygon {
	out := Polygon{Shell: transformRing(poly.Shell, f)}
	if len(poly.Holes) > 0 {
		out.Holes = make([]LinearRing, len(poly.Holes))
		for i, h := range poly.Holes {
			out.Holes[i] = transformRing(h, f)
		}
	}
	return out
}

func transform(s Shape, f func(Point) Point) Shape {
	switch s.Kind {
	case KindPoint:
		return FromPoint(f(s.Point))
	case KindLineString:
		out := make(LineString, len(s.LineString))
		for i, p := range s.LineString {
			out[i] = f(p)
		}
		return FromLineString(out)
	case KindLinearRing:
		return FromLinearRing(transformRing(s.LinearRing, f))
	case KindPolygon:
		return FromPolygon(transformPolygon(s.Polygon, f))
	case KindMultiPolygon:
		out := make(MultiPolygon, len(s.MultiPolygon))
		for i, p := range s.MultiPolygon {
			out[i] = transformPolygon(p, f)
		}
		return FromMultiPolygon(out)
	}
	return s
}

// Arc approximates a circular arc as a polyline; see numeric.Arc for
// the normalization and step-count rules.
func Arc(center Point, radius, startRad, stopRad float64, dir numeric.Direction, stepsPerCirc int) []Point {
	return numeric.Arc(center, radius, startRad, stopRad, dir, stepsPerCirc)
}

// ClearPolygon returns the nested rings produced by successively
// buffering poly inward: first by -tooldia/2, then repeatedly by
// -tooldia*(1-overlap) until the result has zero area.
func ClearPolygon(poly Polygon, toolDia, overlap float64) []Polygon {
	var rings []Polygon
	cur := Buffer(FromPolygon(poly), -toolDia/2, JoinRound, CapRound)
	for {
		mp := cur.AsMultiPolygon()
		if len(mp) == 0 {
			break
		}
		rings = append(rings, mp...)
		next := Buffer(cur, -toolDia*(1-overlap), JoinRound, CapRound)
		if PolygonArea(next) <= 0 {
			break
		}
		cur = next
	}
	return rings
}

// PolygonArea returns the (always non-negative) area of a shape's
// polygonal content.
func PolygonArea(s Shape) float64 {
	var total float64
	for _, p := range s.AsMultiPolygon() {
		total += math.Abs(ringArea(p.Shell))
		for _, h := range p.Holes {
			total -= math.Abs(ringArea(h))
		}
	}
	if total < 0 {
		return 0
	}
	return total
}

func ringArea(r LinearRing) float64 {
	n := len(r)
	if n < 3 {
		return 0
	}
	var area float64
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		area += r[i].X*r[j].Y - r[j].X*r[i].Y
	}
	return area / 2
}

// FindPolygon returns the first polygon in polys whose interior
// contains p, and a boolean reporting whether one was found.
func FindPolygon(polys []Polygon, p Point) (Polygon, bool) {
	for _, poly := range polys {
		if polygonContains(poly, p) {
			return poly, true
		}
	}
	return Polygon{}, false
}

// HausdorffWithin reports whether every point of b lies within tol of
// some point of a (a one-sided Hausdorff check against Simplify's
// contract).
func HausdorffWithin(a, b []Point, tol float64) bool {
	for _, pb := range b {
		best := math.Inf(1)
		for _, pa := range a {
			d := math.Hypot(pb.X-pa.X, pb.Y-pa.Y)
			if d < best {
				best = d
			}
		}
		if !floats.EqualWithinAbs(best, 0, tol) && best > tol {
			return false
		}
	}
	return true
}
