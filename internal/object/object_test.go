package object

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kennycoder/flatcam-core/internal/excellon"
	"github.com/kennycoder/flatcam-core/internal/gerber"
)

func TestGerberAdapterSurface(t *testing.T) {
	src := "%FSLAX24Y24*%\n%MOIN*%\n%ADD10C,0.1*%\nD10*\nX5000Y5000D03*\nM02*\n"
	g, err := gerber.Parse(strings.NewReader(src))
	require.NoError(t, err)

	var o GerberObject = Gerber(g)
	assert.Equal(t, "IN", o.Units())
	_ = o.SolidGeometry()
	attrs := o.SerAttrs()
	assert.Contains(t, attrs, "apertures")
}

func TestExcellonAdapterSurface(t *testing.T) {
	e, err := excellon.Parse(strings.NewReader("M48\nINCH,LZ\nT1C0.04\n%\nT1\nX010000Y010000\nM30\n"))
	require.NoError(t, err)

	var o ExcellonObject = Excellon(e)
	assert.Equal(t, "IN", o.Units())
	attrs := o.SerAttrs()
	assert.Contains(t, attrs, "tools")
}
