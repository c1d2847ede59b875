// Package numeric implements the fixed-point decoders shared by the
// Gerber and Excellon parsers, plus the circular-arc polyline
// approximation used by the geometry kernel and the CNC-job G-code
// reader.
package numeric

import (
	"strconv"
	"strings"
)

// DecodeGerberNumber turns a Gerber coordinate token into a float using
// the format's fractional digit count. The int_digits field only
// bounds the expected token width in a real RS-274X reader; the value
// itself is recovered from frac_digits alone, per the declared format.
func DecodeGerberNumber(token string, fracDigits int) float64 {
	neg := false
	t := token
	if strings.HasPrefix(t, "-") {
		neg = true
		t = t[1:]
	} else if strings.HasPrefix(t, "+") {
		t = t[1:]
	}
	if t == "" {
		return 0
	}
	n, err := strconv.ParseInt(t, 10, 64)
	if err != nil {
		return 0
	}
	v := float64(n)
	for i := 0; i < fracDigits; i++ {
		v /= 10
	}
	if neg {
		v = -v
	}
	return v
}

// Zeros selects Excellon's zero-suppression convention.
type Zeros int

const (
	// ZerosLeading means leading zeros are omitted from the token; the
	// digits present are the low-order digits of a fixed 6-digit field.
	ZerosLeading Zeros = iota
	// ZerosTrailing means trailing zeros are omitted; the token is
	// taken as-is and divided by a fixed 10000.
	ZerosTrailing
)

// ParseExcellonNumber decodes a "no period" Excellon coordinate token
// per the file's zero-suppression mode. Both modes assume a 2.4 format
// (four fractional digits), which is what FlatCAM's Excellon reader
// hard-codes for the no-period case.
func ParseExcellonNumber(token string, zeros Zeros) float64 {
	neg := false
	t := token
	if strings.HasPrefix(t, "-") {
		neg = true
		t = t[1:]
	} else if strings.HasPrefix(t, "+") {
		t = t[1:]
	}
	if t == "" {
		return 0
	}

	var v float64
	switch zeros {
	case ZerosLeading:
		padded := t
		if len(padded) < 6 {
			padded = strings.Repeat("0", 6-len(padded)) + padded
		}
		n, err := strconv.ParseInt(padded, 10, 64)
		if err != nil {
			return 0
		}
		v = float64(n) / 10000
	default: // ZerosTrailing
		n, err := strconv.ParseInt(t, 10, 64)
		if err != nil {
			return 0
		}
		v = float64(n) / 10000
	}
	if neg {
		v = -v
	}
	return v
}

// ParseExcellonLiteral decodes an Excellon coordinate token that
// already contains a decimal point: it is used verbatim.
func ParseExcellonLiteral(token string) float64 {
	v, err := strconv.ParseFloat(token, 64)
	if err != nil {
		return 0
	}
	return v
}
