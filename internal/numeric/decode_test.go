package numeric

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeGerberNumber(t *testing.T) {
	assert.InDelta(t, 1.2345, DecodeGerberNumber("12345", 4), 1e-9)
	assert.InDelta(t, 123.456, DecodeGerberNumber("123456", 3), 1e-9)
	assert.InDelta(t, -1.2345, DecodeGerberNumber("-12345", 4), 1e-9)
}

func TestParseExcellonNumberLeading(t *testing.T) {
	assert.InDelta(t, 0.0015, ParseExcellonNumber("015", ZerosLeading), 1e-9)
	assert.InDelta(t, 0.15, ParseExcellonNumber("1500", ZerosLeading), 1e-9)
}

func TestParseExcellonNumberTrailing(t *testing.T) {
	assert.InDelta(t, 0.0015, ParseExcellonNumber("015", ZerosTrailing), 1e-9)
	assert.InDelta(t, 0.15, ParseExcellonNumber("1500", ZerosTrailing), 1e-9)
}

func TestParseExcellonLiteral(t *testing.T) {
	assert.InDelta(t, 1.5, ParseExcellonLiteral("1.5"), 1e-9)
}
