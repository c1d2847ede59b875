package cncjob

import (
	"fmt"
	"strings"

	"github.com/kennycoder/flatcam-core/internal/geom"
)

// GenerateFromGeometry emits a cutting job for s: polygons are cut
// exterior-then-holes, line-strings/rings along their ordered
// coordinates, points as a rapid-down-up with no lateral cut, and
// multi-polygons by recursing into each member polygon. simplifyTol,
// if positive, is applied to s before emission.
func GenerateFromGeometry(s geom.Shape, units string, zCut, zMove, feedrate, tooldia float64, stepsPerCirc int, simplifyTol float64) *Object {
	job := &Object{
		Units:        units,
		ZCut:         zCut,
		ZMove:        zMove,
		Feedrate:     feedrate,
		ToolDia:      tooldia,
		StepsPerCirc: stepsPerCirc,
	}
	job.InputGeometryBounds = geom.GetBounds(s)

	shape := s
	if simplifyTol > 0 {
		shape = geom.Simplify(shape, simplifyTol)
	}

	var b strings.Builder
	writePrologue(&b, job)
	emitShape(&b, shape, zCut, zMove)
	writeEpilogue(&b, job)

	job.GCode = b.String()
	job.GCodeParsed = ParseGCode(job.GCode, stepsPerCirc)
	return job
}

func emitShape(b *strings.Builder, s geom.Shape, zCut, zMove float64) {
	switch s.Kind {
	case geom.KindPolygon:
		emitRing(b, s.Polygon.Shell, zCut, zMove)
		for _, h := range s.Polygon.Holes {
			emitRing(b, h, zCut, zMove)
		}
	case geom.KindMultiPolygon:
		for _, p := range s.MultiPolygon {
			emitRing(b, p.Shell, zCut, zMove)
			for _, h := range p.Holes {
				emitRing(b, h, zCut, zMove)
			}
		}
	case geom.KindLinearRing:
		emitRing(b, s.LinearRing, zCut, zMove)
	case geom.KindLineString:
		emitPath(b, []geom.Point(s.LineString), zCut, zMove, false)
	case geom.KindPoint:
		emitPoint(b, s.Point, zCut, zMove)
	}
}

func emitRing(b *strings.Builder, r geom.LinearRing, zCut, zMove float64) {
	emitPath(b, []geom.Point(r), zCut, zMove, true)
}

// emitPath writes the "rapid to first vertex, plunge, linear through
// the rest, retract" pattern; closed repeats the first vertex at the
// end to close the ring.
func emitPath(b *strings.Builder, pts []geom.Point, zCut, zMove float64, closed bool) {
	if len(pts) == 0 {
		return
	}
	fmt.Fprintf(b, "G00 X%sY%s\n", fmtCoord(pts[0].X), fmtCoord(pts[0].Y))
	fmt.Fprintf(b, "G01 Z%s\n", fmtCoord(zCut))
	for _, p := range pts[1:] {
		fmt.Fprintf(b, "G01 X%sY%s\n", fmtCoord(p.X), fmtCoord(p.Y))
	}
	if closed {
		fmt.Fprintf(b, "G01 X%sY%s\n", fmtCoord(pts[0].X), fmtCoord(pts[0].Y))
	}
	fmt.Fprintf(b, "G00 Z%s\n", fmtCoord(zMove))
}

func emitPoint(b *strings.Builder, p geom.Point, zCut, zMove float64) {
	fmt.Fprintf(b, "G00 X%sY%s\n", fmtCoord(p.X), fmtCoord(p.Y))
	fmt.Fprintf(b, "G01 Z%s\n", fmtCoord(zCut))
	fmt.Fprintf(b, "G01 Z%s\n", fmtCoord(zMove))
}
