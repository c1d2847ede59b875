package geom

import (
	"fmt"
	"strconv"
	"strings"
)

// ToWKT renders a shape as Well-Known Text. No pure-Go WKT codec
// appears anywhere in the example pack (the one WKT user found,
// airbusgeo/godal, delegates to GDAL over cgo), so this one piece of
// the kernel is intentionally stdlib-only; see DESIGN.md.
func ToWKT(s Shape) string {
	switch s.Kind {
	case KindEmpty:
		return "GEOMETRYCOLLECTION EMPTY"
	case KindPoint:
		return fmt.Sprintf("POINT (%s)", fmtPoint(s.Point))
	case KindLineString:
		return "LINESTRING (" + fmtPoints([]Point(s.LineString)) + ")"
	case KindLinearRing:
		return "LINESTRING (" + fmtPoints([]Point(closeRing(s.LinearRing))) + ")"
	case KindPolygon:
		return "POLYGON (" + fmtPolygonRings(s.Polygon) + ")"
	case KindMultiPolygon:
		parts := make([]string, len(s.MultiPolygon))
		for i, p := range s.MultiPolygon {
			parts[i] = "(" + fmtPolygonRings(p) + ")"
		}
		return "MULTIPOLYGON (" + strings.Join(parts, ", ") + ")"
	}
	return "GEOMETRYCOLLECTION EMPTY"
}

func fmtPoint(p Point) string {
	return strconv.FormatFloat(p.X, 'f', -1, 64) + " " + strconv.FormatFloat(p.Y, 'f', -1, 64)
}

func fmtPoints(pts []Point) string {
	parts := make([]string, len(pts))
	for i, p := range pts {
		parts[i] = fmtPoint(p)
	}
	return strings.Join(parts, ", ")
}

func fmtPolygonRings(p Polygon) string {
	rings := make([]string, 0, 1+len(p.Holes))
	rings = append(rings, "("+fmtPoints([]Point(closeRing(p.Shell)))+")")
	for _, h := range p.Holes {
		rings = append(rings, "("+fmtPoints([]Point(closeRing(h)))+")")
	}
	return strings.Join(rings, ", ")
}

// FromWKT parses the small subset of WKT this kernel emits: POINT,
// LINESTRING, POLYGON and MULTIPOLYGON with plain numeric coordinates.
func FromWKT(s string) (Shape, error) {
	s = strings.TrimSpace(s)
	upper := strings.ToUpper(s)
	switch {
	case strings.HasPrefix(upper, "POINT"):
		pts, err := parseCoordLists(s, 1)
		if err != nil {
			return Empty(), err
		}
		if len(pts[0]) != 1 {
			return Empty(), fmt.Errorf("geom: malformed POINT WKT")
		}
		return FromPoint(pts[0][0]), nil
	case strings.HasPrefix(upper, "LINESTRING"):
		pts, err := parseCoordLists(s, 1)
		if err != nil {
			return Empty(), err
		}
		return FromLineString(LineString(pts[0])), nil
	case strings.HasPrefix(upper, "MULTIPOLYGON"):
		return parseMultiPolygonWKT(s)
	case strings.HasPrefix(upper, "POLYGON"):
		poly, err := parsePolygonWKT(s)
		if err != nil {
			return Empty(), err
		}
		return FromPolygon(poly), nil
	case strings.Contains(upper, "EMPTY"):
		return Empty(), nil
	}
	return Empty(), fmt.Errorf("geom: unsupported WKT: %s", s)
}

// parseCoordLists extracts n top-level parenthesized coordinate lists.
func parseCoordLists(s string, n int) ([][]Point, error) {
	body, err := innerParens(s, 1)
	if err != nil {
		return nil, err
	}
	groups := splitTopLevel(body)
	if len(groups) < n || !strings.Contains(body, "(") {
		groups = []string{body}
	}
	out := make([][]Point, len(groups))
	for i, g := range groups {
		out[i] = parseCoordList(g)
	}
	return out, nil
}

func parsePolygonWKT(s string) (Polygon, error) {
	body, err := innerParens(s, 1)
	if err != nil {
		return Polygon{}, err
	}
	rings := splitTopLevel(body)
	if len(rings) == 0 {
		return Polygon{}, fmt.Errorf("geom: empty POLYGON WKT")
	}
	poly := Polygon{Shell: openRing(parseCoordList(strip(rings[0])))}
	for _, r := range rings[1:] {
		poly.Holes = append(poly.Holes, openRing(parseCoordList(strip(r))))
	}
	return poly, nil
}

// openRing drops the closing duplicate WKT writes, restoring the
// LinearRing convention that closure is implicit.
func openRing(pts []Point) LinearRing {
	if len(pts) > 1 && pts[0] == pts[len(pts)-1] {
		pts = pts[:len(pts)-1]
	}
	return LinearRing(pts)
}

func parseMultiPolygonWKT(s string) (Shape, error) {
	body, err := innerParens(s, 1)
	if err != nil {
		return Empty(), err
	}
	polyStrs := splitTopLevel(body)
	mp := make(MultiPolygon, 0, len(polyStrs))
	for _, ps := range polyStrs {
		rings := splitTopLevel(strip(ps))
		if len(rings) == 0 {
			continue
		}
		poly := Polygon{Shell: openRing(parseCoordList(strip(rings[0])))}
		for _, r := range rings[1:] {
			poly.Holes = append(poly.Holes, openRing(parseCoordList(strip(r))))
		}
		mp = append(mp, poly)
	}
	return FromMultiPolygon(mp), nil
}

func strip(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "(")
	s = strings.TrimSuffix(s, ")")
	return s
}

// innerParens returns the text inside the first matching top-level
// parenthesis group, skipping the leading WKT tag word.
func innerParens(s string, _ int) (string, error) {
	start := strings.Index(s, "(")
	if start < 0 {
		return "", fmt.Errorf("geom: no '(' in WKT: %s", s)
	}
	depth := 0
	for i := start; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return s[start+1 : i], nil
			}
		}
	}
	return "", fmt.Errorf("geom: unbalanced parens in WKT: %s", s)
}

// splitTopLevel splits a comma-separated list of possibly-parenthesized
// groups on top-level commas only.
func splitTopLevel(s string) []string {
	var out []string
	depth := 0
	last := 0
	for i, c := range s {
		switch c {
		case '(':
			depth++
		case ')':
			depth--
		case ',':
			if depth == 0 {
				out = append(out, strings.TrimSpace(s[last:i]))
				last = i + 1
			}
		}
	}
	tail := strings.TrimSpace(s[last:])
	if tail != "" {
		out = append(out, tail)
	}
	return out
}

func parseCoordList(s string) []Point {
	parts := strings.Split(s, ",")
	pts := make([]Point, 0, len(parts))
	for _, p := range parts {
		fields := strings.Fields(strings.TrimSpace(p))
		if len(fields) < 2 {
			continue
		}
		x, err1 := strconv.ParseFloat(fields[0], 64)
		y, err2 := strconv.ParseFloat(fields[1], 64)
		if err1 != nil || err2 != nil {
			continue
		}
		pts = append(pts, Point{X: x, Y: y})
	}
	return pts
}
