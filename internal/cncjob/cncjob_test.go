package cncjob

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kennycoder/flatcam-core/internal/excellon"
	"github.com/kennycoder/flatcam-core/internal/geom"
)

func TestScenarioTrianglePrologue(t *testing.T) {
	tri := geom.FromPolygon(geom.Polygon{Shell: geom.LinearRing{
		{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1},
	}})
	job := GenerateFromGeometry(tri, "IN", -0.1, 0.1, 5, 0, 0, 0)

	wantPrologue := "G20\nG90\nG94\nF5.00\nG00 Z0.1000\nM03\nG04 P1"
	assert.True(t, strings.HasPrefix(job.GCode, wantPrologue),
		"gcode prologue = %q, want prefix %q", job.GCode, wantPrologue)
	assert.True(t, strings.HasSuffix(strings.TrimRight(job.GCode, "\n"), "G00 X0Y0\nM05"))
}

func TestGCodeRoundTripUnitSquare(t *testing.T) {
	sq := geom.FromPolygon(geom.Polygon{Shell: geom.LinearRing{
		{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1},
	}})
	job := GenerateFromGeometry(sq, "MM", -0.1, 0.1, 5, 0, 0, 0)

	var cuts []ParsedSegment
	for _, seg := range job.GCodeParsed {
		if seg.Motion == Cut {
			cuts = append(cuts, seg)
		}
	}
	require.Len(t, cuts, 1)
	pts := cuts[0].Geom
	require.Len(t, pts, 5)
	assert.Equal(t, pts[0], pts[4])

	// Four edges; their concatenation closes the square.
	perimeter := 0.0
	for i := 0; i < 4; i++ {
		dx := pts[i+1].X - pts[i].X
		dy := pts[i+1].Y - pts[i].Y
		perimeter += dx*dx + dy*dy // squared lengths sum to 4 for a unit square's edges (1 each)
	}
	assert.InDelta(t, 4.0, perimeter, 1e-9)
}

func TestGenerateFromExcellonByTool(t *testing.T) {
	ex := excellon.New()
	ex.Units = "IN"
	src := "M48\nINCH,LZ\nT1C0.04\n%\nT1\nX010000Y010000\nX020000Y010000\nM30\n"
	parsed, err := excellon.Parse(strings.NewReader(src))
	require.NoError(t, err)
	ex = parsed

	job, err := GenerateFromExcellonByTool(ex, "all", -0.1, 0.1, 10)
	require.NoError(t, err)
	assert.Contains(t, job.GCode, "G00 X1.0000Y1.0000")
	assert.Contains(t, job.GCode, "G00 X2.0000Y1.0000")
	assert.True(t, strings.HasPrefix(job.GCode, "G20\nG90\nG94\nF10.00\n"))
}

func TestGenerateFromExcellonByToolEmptySelectionIsUsageError(t *testing.T) {
	ex, err := excellon.Parse(strings.NewReader("M48\nINCH,LZ\nT1C0.04\n%\nT1\nX010000Y010000\nM30\n"))
	require.NoError(t, err)
	_, err = GenerateFromExcellonByTool(ex, "9", -0.1, 0.1, 10)
	assert.Error(t, err)
}

func TestGCodeArcParseHalfCircle(t *testing.T) {
	// Start at (1,0), center (0,0) via I=-1,J=0, ending at the
	// diametrically opposite point (-1,0): a CCW half circle. The Z
	// plunge closes the approach move's segment so the last segment
	// holds the arc alone.
	src := "G00 X1 Y0\nG01 Z-0.1\nG03 X-1 Y0 I-1 J0\n"
	segs := ParseGCode(src, 64)
	require.NotEmpty(t, segs)
	last := segs[len(segs)-1]
	require.Len(t, last.Geom, 33) // steps_per_circ/2 + 1
	assert.InDelta(t, 1.0, last.Geom[0].X, 1e-9)
	assert.InDelta(t, 0.0, last.Geom[0].Y, 1e-9)
	assert.InDelta(t, -1.0, last.Geom[len(last.Geom)-1].X, 1e-9)
	assert.InDelta(t, 0.0, last.Geom[len(last.Geom)-1].Y, 1e-9)
}
