// Package cncjob turns geometry or drill lists into G-code (forward),
// and parses G-code back into annotated poly-line segments (reverse).
package cncjob

import (
	"github.com/kennycoder/flatcam-core/internal/geom"
)

// MotionKind distinguishes a cutting move from a non-cutting travel
// move, inferred from the current Z height.
type MotionKind int

const (
	Cut MotionKind = iota
	Travel
)

// SpeedKind distinguishes a rapid (G00) move from a controlled-feed
// (G01/G02/G03) move.
type SpeedKind int

const (
	Slow SpeedKind = iota
	Fast
)

// ParsedSegment is one entry of gcode_parsed: a line-string plus the
// travel/cut and fast/slow classification of the motion that produced
// it.
type ParsedSegment struct {
	Geom   geom.LineString
	Motion MotionKind
	Speed  SpeedKind
}

// Object is a CNC-job object: the parameters used to generate it, the
// resulting G-code text, and that text re-parsed into annotated
// segments.
type Object struct {
	Units        string // "IN" or "MM"
	ZCut         float64
	ZMove        float64
	Feedrate     float64
	ToolDia      float64
	StepsPerCirc int

	// Postamble is an optional user trailer. The epilogue writer appends
	// it verbatim after M05 when it is non-empty at generation time.
	// GenerateFromGeometry and GenerateFromExcellonByTool create the job
	// with an empty Postamble and there is no separate export step, so
	// setting it on a generated job does not change GCode.
	Postamble string

	InputGeometryBounds geom.Bounds

	GCode       string
	GCodeParsed []ParsedSegment
}

// SerAttrs returns the JSON-compatible record of ser_attrs.
func (o *Object) SerAttrs() map[string]any {
	return map[string]any{
		"units":          o.Units,
		"z_cut":          o.ZCut,
		"z_move":         o.ZMove,
		"feedrate":       o.Feedrate,
		"tooldia":        o.ToolDia,
		"steps_per_circ": o.StepsPerCirc,
		"gcode":          o.GCode,
	}
}
