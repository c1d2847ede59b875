package gerber

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kennycoder/flatcam-core/internal/geom"
)

func TestApertureDefinitionRoundTrip(t *testing.T) {
	src := "%ADD10C,0.5*%\n%ADD11R,0.1X0.2*%\nM02*\n"
	o, err := Parse(strings.NewReader(src))
	require.NoError(t, err)

	c, ok := o.Apertures()[10]
	require.True(t, ok)
	assert.Equal(t, ApertureCircle, c.Kind)
	assert.InDelta(t, 0.5, c.Size, 1e-9)

	r, ok := o.Apertures()[11]
	require.True(t, ok)
	assert.Equal(t, ApertureRect, r.Kind)
	assert.InDelta(t, 0.1, r.Width, 1e-9)
	assert.InDelta(t, 0.2, r.Height, 1e-9)
}

func TestScenarioFlashDisk(t *testing.T) {
	src := "%FSLAX24Y24*%\n%MOIN*%\n%ADD10C,0.1*%\nD10*\nX5000Y5000D03*\nM02*\n"
	o, err := Parse(strings.NewReader(src))
	require.NoError(t, err)

	assert.InDelta(t, math.Pi*0.05*0.05, geom.PolygonArea(o.SolidGeometry()), 1e-6)
	b := geom.GetBounds(o.SolidGeometry())
	cx, cy := (b.MinX+b.MaxX)/2, (b.MinY+b.MaxY)/2
	assert.InDelta(t, 0.5, cx, 1e-6)
	assert.InDelta(t, 0.5, cy, 1e-6)
}

func TestScenarioRegionUnitSquare(t *testing.T) {
	src := "%FSLAX24Y24*%\n%MOIN*%\n%ADD10C,0.01*%\nD10*\nG36*\n" +
		"X0Y0D02*\nX10000Y0D01*\nX10000Y10000D01*\nX0Y10000D01*\nX0Y0D01*\nG37*\nM02*\n"
	o, err := Parse(strings.NewReader(src))
	require.NoError(t, err)
	assert.InDelta(t, 1.0, geom.PolygonArea(o.SolidGeometry()), 1e-6)
}

func TestPolarityClearSubtracts(t *testing.T) {
	src := "%FSLAX24Y24*%\n%MOMM*%\n%ADD10C,2*%\nD10*\nX0Y0D03*\n" +
		"%LPC*%\n%ADD11C,1*%\nD11*\nX0Y0D03*\n%LPD*%\nM02*\n"
	o, err := Parse(strings.NewReader(src))
	require.NoError(t, err)
	expected := math.Pi*1.0 - math.Pi*0.25
	assert.InDelta(t, expected, geom.PolygonArea(o.SolidGeometry()), 0.02)
}

func TestMacroFlashInstantiate(t *testing.T) {
	src := "%FSLAX24Y24*%\n%MOMM*%\n%AMCIRC*1,1,$1,$2,$3*%\n" +
		"%ADD10CIRC,0.2X0.5X0.5*%\nD10*\nX10000Y10000D03*\nM02*\n"
	o, err := Parse(strings.NewReader(src))
	require.NoError(t, err)

	assert.InDelta(t, math.Pi*0.01, geom.PolygonArea(o.SolidGeometry()), 1e-6)
	b := geom.GetBounds(o.SolidGeometry())
	assert.InDelta(t, 1.5, (b.MinX+b.MaxX)/2, 1e-6)
	assert.InDelta(t, 1.5, (b.MinY+b.MaxY)/2, 1e-6)
}

func TestUnknownApertureSkipsWithoutAbort(t *testing.T) {
	src := "%FSLAX24Y24*%\n%MOMM*%\nD99*\nX1000Y1000D03*\nM02*\n"
	o, err := Parse(strings.NewReader(src))
	require.NoError(t, err)
	assert.True(t, o.SolidGeometry().IsEmpty())
}
