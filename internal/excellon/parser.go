package excellon

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/kennycoder/flatcam-core/internal/logging"
	"github.com/kennycoder/flatcam-core/internal/numeric"
)

var (
	reHBegin  = regexp.MustCompile(`^M48$`)
	reHEnd    = regexp.MustCompile(`^(?:M95|%)$`)
	reUnits   = regexp.MustCompile(`^(INCH|METRIC)(?:,([TL])Z)?$`)
	reToolDef = regexp.MustCompile(`^T0*(\d+)C([0-9]*\.?[0-9]+)`)
	reToolSel = regexp.MustCompile(`^T0*(\d+)$`)
	reCoord   = regexp.MustCompile(`([XY])([+-]?[0-9]*\.?[0-9]*)`)
)

func warnf(format string, args ...interface{}) {
	logging.Logger().Warn().Msg(fmt.Sprintf(format, args...))
}

// ParseFile opens filename, parses it as an Excellon drill file, and
// returns the populated object. I/O failures surface to the caller.
func ParseFile(filename string) (*Object, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("excellon: open %s: %w", filename, err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse consumes r to EOF and returns the populated Excellon object.
func Parse(r io.Reader) (*Object, error) {
	o := New()
	sc := bufio.NewScanner(r)

	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, ";") {
			continue // comment
		}

		switch {
		case reHBegin.MatchString(line):
			o.inHeader = true
		case reHEnd.MatchString(line):
			o.inHeader = false
		case o.inHeader:
			o.handleHeaderLine(line)
		default:
			o.handleBodyLine(line)
		}
	}
	if err := sc.Err(); err != nil {
		return o, fmt.Errorf("excellon: read: %w", err)
	}
	o.CreateGeometry()
	return o, nil
}

func (o *Object) handleHeaderLine(line string) {
	switch {
	case line == "FMAT,1" || line == "FMAT,2":
		// Excellon format version: parsed, unused.
	case reUnits.MatchString(line):
		m := reUnits.FindStringSubmatch(line)
		switch m[1] {
		case "INCH":
			o.Units = "IN"
		case "METRIC":
			o.Units = "MM"
		}
		switch m[2] {
		case "L":
			o.Zeros = numeric.ZerosLeading
		case "T":
			o.Zeros = numeric.ZerosTrailing
		}
	case reToolDef.MatchString(line):
		m := reToolDef.FindStringSubmatch(line)
		id, _ := strconv.Atoi(m[1])
		dia, err := strconv.ParseFloat(m[2], 64)
		if err != nil {
			warnf("malformed tool diameter in %q", line)
			return
		}
		o.tools[id] = Tool{ID: id, Diameter: dia}
	default:
		warnf("unrecognized header line %q", line)
	}
}

func (o *Object) handleBodyLine(line string) {
	switch line {
	case "M30", "M00", "M06", "M09", "G90", "G04", "M71", "M72", "G00", "G01", "G05":
		return // tolerated, unused per the external-interface contract
	}

	if idx := strings.Index(line, "G85"); idx >= 0 {
		warnf("G85 slot record treated as two ordinary drills (no slot geometry)")
		o.applyCoords(line[:idx])
		o.emitDrill()
		o.applyCoords(line[idx+3:])
		o.emitDrill()
		return
	}

	if reToolSel.MatchString(line) {
		m := reToolSel.FindStringSubmatch(line)
		id, _ := strconv.Atoi(m[1])
		o.curTool = id
		return
	}

	if strings.HasPrefix(line, "R") {
		warnf("repeat-hole (R) records are not supported: %q", line)
		return
	}

	if !strings.ContainsAny(line, "XY") {
		warnf("unrecognized body line %q", line)
		return
	}

	o.applyCoords(line)
	o.emitDrill()
}

// applyCoords updates curX/curY from any X/Y tokens in s; axes not
// present inherit the previous value.
func (o *Object) applyCoords(s string) {
	matches := reCoord.FindAllStringSubmatch(s, -1)
	for _, m := range matches {
		axis, tok := m[1], m[2]
		if tok == "" {
			continue
		}
		v := o.parseToken(tok)
		switch axis {
		case "X":
			o.curX = v
		case "Y":
			o.curY = v
		}
	}
}

func (o *Object) parseToken(tok string) float64 {
	if strings.Contains(tok, ".") {
		return numeric.ParseExcellonLiteral(tok)
	}
	return numeric.ParseExcellonNumber(tok, o.Zeros)
}

func (o *Object) emitDrill() {
	o.drills = append(o.drills, Drill{X: o.curX, Y: o.curY, ToolID: o.curTool})
}
