package macro

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kennycoder/flatcam-core/internal/geom"
)

func TestEvalPrecedenceAndAliases(t *testing.T) {
	v, err := Eval("1+2x3", nil)
	require.NoError(t, err)
	assert.InDelta(t, 7, v, 1e-9)

	v, err = Eval("$1+$2", map[string]float64{"1": 2, "2": 3})
	require.NoError(t, err)
	assert.InDelta(t, 5, v, 1e-9)

	// Unknown variables default to 0.
	v, err = Eval("$9+1", map[string]float64{"1": 2})
	require.NoError(t, err)
	assert.InDelta(t, 1, v, 1e-9)
}

func TestMacroCircleInstantiate(t *testing.T) {
	m := Parse("CIRC", "1,1,$1,$2,$3*")
	shape := m.Instantiate([]float64{0.2, 0.5, 0.5})
	assert.InDelta(t, math.Pi*0.01, geom.PolygonArea(shape), 1e-6)
	b := geom.GetBounds(shape)
	assert.InDelta(t, 0.5, (b.MinX+b.MaxX)/2, 1e-6)
	assert.InDelta(t, 0.5, (b.MinY+b.MaxY)/2, 1e-6)
}

func TestMacroClearSubtracts(t *testing.T) {
	// A dark square with a clear disk cut from its center.
	m := Parse("SQ", "21,1,2,2,0,0,0*1,0,1,0,0*")
	shape := m.Instantiate(nil)
	expected := 4.0 - math.Pi*0.25
	assert.InDelta(t, expected, geom.PolygonArea(shape), 0.02)
}

func TestMacroCommentsSkipped(t *testing.T) {
	m := Parse("C", "0 a comment*1,1,1,0,0*")
	shape := m.Instantiate(nil)
	assert.False(t, shape.IsEmpty())
}
