package excellon

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kennycoder/flatcam-core/internal/numeric"
)

func TestScenarioTwoDrills(t *testing.T) {
	src := "M48\nINCH,LZ\nT1C0.04\n%\nT1\nX010000Y010000\nX020000Y010000\nM30\n"
	o, err := Parse(strings.NewReader(src))
	require.NoError(t, err)

	require.Len(t, o.Drills(), 2)
	assert.InDelta(t, 1.0, o.Drills()[0].X, 1e-9)
	assert.InDelta(t, 1.0, o.Drills()[0].Y, 1e-9)
	assert.InDelta(t, 2.0, o.Drills()[1].X, 1e-9)
	assert.InDelta(t, 1.0, o.Drills()[1].Y, 1e-9)

	tool, ok := o.Tools()[1]
	require.True(t, ok)
	assert.InDelta(t, 0.04, tool.Diameter, 1e-9)
	assert.Equal(t, "IN", o.Units)
}

func TestLeadingZeroDecode(t *testing.T) {
	o := New()
	o.Zeros = numeric.ZerosLeading
	assert.InDelta(t, 0.0015, o.parseToken("015"), 1e-9)
	assert.InDelta(t, 0.15, o.parseToken("1500"), 1e-9)
}

func TestTrailingZeroDecode(t *testing.T) {
	o := New()
	o.Zeros = numeric.ZerosTrailing
	assert.InDelta(t, 0.0015, o.parseToken("015"), 1e-9)
	assert.InDelta(t, 0.15, o.parseToken("1500"), 1e-9)
}

func TestCreateGeometryUnionsDisks(t *testing.T) {
	src := "M48\nMETRIC,TZ\nT1C2.0\n%\nT1\nX0Y0\nX100000Y0\nM30\n"
	o, err := Parse(strings.NewReader(src))
	require.NoError(t, err)
	assert.False(t, o.SolidGeometry().IsEmpty())
}

func TestG85SlotBecomesTwoDrills(t *testing.T) {
	src := "M48\nMETRIC,TZ\nT1C1.0\n%\nT1\nX0Y0G85X100000Y0\nM30\n"
	o, err := Parse(strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, o.Drills(), 2)
}

func TestConvertUnitsRoundTrip(t *testing.T) {
	src := "M48\nINCH,LZ\nT1C0.04\n%\nT1\nX010000Y010000\nM30\n"
	o, err := Parse(strings.NewReader(src))
	require.NoError(t, err)

	origX := o.Drills()[0].X
	origDia := o.Tools()[1].Diameter

	o.ConvertUnits("MM")
	assert.InDelta(t, origX*25.4, o.Drills()[0].X, 1e-9)

	o.ConvertUnits("IN")
	assert.InDelta(t, origX, o.Drills()[0].X, 1e-9)
	assert.InDelta(t, origDia, o.Tools()[1].Diameter, 1e-9)
}
