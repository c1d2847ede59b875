package gerber

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/kennycoder/flatcam-core/internal/geom"
	"github.com/kennycoder/flatcam-core/internal/logging"
	"github.com/kennycoder/flatcam-core/internal/macro"
	"github.com/kennycoder/flatcam-core/internal/numeric"
)

var (
	reFS    = regexp.MustCompile(`^FS([LT])([AI])X(\d)(\d)Y(\d)(\d)$`)
	reAD    = regexp.MustCompile(`^D(\d+)([A-Za-z_][A-Za-z0-9_.]*)(?:,(.*))?$`)
	reToken = regexp.MustCompile(`([A-Z])([+-]?\d*\.?\d*)`)
)

func (o *Object) warnf(format string, args ...interface{}) {
	logging.Logger().Warn().Msg(fmt.Sprintf(format, args...))
}

// ParseFile opens filename, parses it as a Gerber source, and returns
// the populated object. I/O failures surface to the caller (IOFailure).
func ParseFile(filename string) (*Object, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("gerber: open %s: %w", filename, err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse consumes r to EOF and returns the populated Gerber object. The
// parse never aborts on malformed input; it logs and continues,
// leaving a best-effort solid_geometry.
func Parse(r io.Reader) (*Object, error) {
	o := New()
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for sc.Scan() && !o.eof {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "%") {
			body, _ := readParamBlock(sc, line)
			o.dispatchParam(body)
			continue
		}
		for _, block := range strings.Split(line, "*") {
			block = strings.TrimSpace(block)
			if block == "" {
				continue
			}
			o.handleBlock(block)
			if o.eof {
				break
			}
		}
	}
	if err := sc.Err(); err != nil {
		return o, fmt.Errorf("gerber: read: %w", err)
	}
	o.flushOpenStroke()
	o.flushPolarity()
	return o, nil
}

// readParamBlock accumulates lines starting at first until one ends in
// the closing '%', since an aperture macro's body can span many lines.
// It returns the content stripped of both delimiters.
func readParamBlock(sc *bufio.Scanner, first string) (string, bool) {
	body := first
	for !(len(body) > 1 && strings.HasSuffix(body, "%")) {
		if !sc.Scan() {
			break
		}
		body += strings.TrimSpace(sc.Text())
	}
	body = strings.TrimPrefix(body, "%")
	body = strings.TrimSuffix(body, "%")
	return body, true
}

func (o *Object) dispatchParam(body string) {
	if len(body) < 2 {
		o.warnf("empty parameter block")
		return
	}
	tag := body[:2]
	switch tag {
	case "FS":
		o.handleFS(strings.TrimSuffix(body, "*"))
	case "MO":
		o.handleMO(strings.TrimSuffix(body, "*"))
	case "AM":
		o.handleAM(body)
	case "AD":
		o.handleAD(strings.TrimSuffix(body, "*"))
	case "LP":
		o.handleLP(strings.TrimSuffix(body, "*"))
	case "IP":
		// Image polarity: parsed, ignored per the external interface.
	default:
		o.warnf("unsupported parameter block %q", body)
	}
}

func (o *Object) handleFS(content string) {
	m := reFS.FindStringSubmatch(content)
	if m == nil {
		o.warnf("malformed format spec %q", content)
		return
	}
	o.IntDigitsX, _ = strconv.Atoi(m[3])
	o.FracDigitsX, _ = strconv.Atoi(m[4])
	o.IntDigitsY, _ = strconv.Atoi(m[5])
	o.FracDigitsY, _ = strconv.Atoi(m[6])
}

func (o *Object) handleMO(content string) {
	switch content[2:] {
	case "IN":
		o.Units = "IN"
	case "MM":
		o.Units = "MM"
	default:
		o.warnf("unknown mode of units %q", content)
	}
}

func (o *Object) handleAM(content string) {
	body := content[2:] // strip "AM"
	idx := strings.Index(body, "*")
	var name, raw string
	if idx < 0 {
		name = body
	} else {
		name = body[:idx]
		raw = body[idx+1:]
	}
	o.macros[name] = macro.Parse(name, raw)
}

func (o *Object) handleAD(content string) {
	m := reAD.FindStringSubmatch(content[2:])
	if m == nil {
		o.warnf("malformed aperture definition %q", content)
		return
	}
	id, _ := strconv.Atoi(m[1])
	typeCode := m[2]
	var mods []float64
	if m[3] != "" {
		for _, tok := range strings.Split(m[3], "X") {
			v, err := strconv.ParseFloat(strings.TrimSpace(tok), 64)
			if err != nil {
				o.warnf("aperture %d has malformed modifier %q", id, tok)
				continue
			}
			mods = append(mods, v)
		}
	}
	switch typeCode {
	case "C":
		o.apertures[id] = Aperture{Kind: ApertureCircle, Size: at(mods, 0)}
	case "R":
		o.apertures[id] = Aperture{Kind: ApertureRect, Width: at(mods, 0), Height: at(mods, 1)}
	case "O":
		o.apertures[id] = Aperture{Kind: ApertureObround, Width: at(mods, 0), Height: at(mods, 1)}
	case "P":
		o.apertures[id] = Aperture{Kind: AperturePolygon, Diam: at(mods, 0), NVertices: int(at(mods, 1)), Rotation: at(mods, 2)}
	default:
		// Not one of the four standard kinds: a reference to a
		// macro, resolved lazily at flash time.
		o.apertures[id] = Aperture{Kind: ApertureMacro, MacroName: typeCode, MacroMods: mods}
	}
}

func (o *Object) handleLP(content string) {
	switch content[2:] {
	case "D":
		o.setPolarity(polarityDark)
	case "C":
		o.setPolarity(polarityClear)
	default:
		o.warnf("unknown level polarity %q", content)
	}
}

func (o *Object) setPolarity(p polarity) {
	o.flushPolarity()
	o.pol = p
}

func (o *Object) flushPolarity() {
	if len(o.polyBuffer) == 0 {
		return
	}
	merged := geom.Union(o.polyBuffer...)
	if o.pol == polarityDark {
		o.solidGeometry = geom.Union(o.solidGeometry, merged)
	} else {
		o.solidGeometry = geom.Difference(o.solidGeometry, merged)
	}
	o.polyBuffer = nil
}

func (o *Object) handleBlock(block string) {
	if strings.HasPrefix(block, "G04") {
		return // comment, free text ignored
	}

	matches := reToken.FindAllStringSubmatch(block, -1)
	if matches == nil {
		o.warnf("unrecognized line %q", block)
		return
	}

	prevX, prevY := o.curX, o.curY
	var g, d *int
	var x, y, ival, jval *float64

	for _, m := range matches {
		letter, val := m[1], m[2]
		if val == "" {
			continue
		}
		switch letter {
		case "G":
			n, _ := strconv.Atoi(val)
			g = &n
		case "D":
			n, _ := strconv.Atoi(val)
			d = &n
		case "M":
			n, _ := strconv.Atoi(val)
			o.handleM(n)
		case "X":
			v := o.decodeCoord(val, o.FracDigitsX)
			x = &v
		case "Y":
			v := o.decodeCoord(val, o.FracDigitsY)
			y = &v
		case "I":
			v := o.decodeCoord(val, o.FracDigitsX)
			ival = &v
		case "J":
			v := o.decodeCoord(val, o.FracDigitsY)
			jval = &v
		}
	}

	if g != nil {
		o.handleG(*g)
	}
	if x != nil {
		o.curX = *x
	}
	if y != nil {
		o.curY = *y
	}

	switch {
	case d != nil:
		o.applyDCode(*d, prevX, prevY, ival, jval)
	case x != nil || y != nil:
		o.applyDCode(o.lastOp, prevX, prevY, ival, jval)
	}
}

func (o *Object) decodeCoord(tok string, fracDigits int) float64 {
	if strings.Contains(tok, ".") {
		v, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			o.warnf("malformed coordinate %q", tok)
			return 0
		}
		return v
	}
	return numeric.DecodeGerberNumber(tok, fracDigits)
}

func (o *Object) handleM(m int) {
	if m == 2 {
		o.eof = true
	}
}

func (o *Object) handleG(g int) {
	switch g {
	case 1:
		o.interp = interpLinear
	case 2:
		o.interp = interpCW
	case 3:
		o.interp = interpCCW
	case 36:
		o.startRegion()
	case 37:
		o.endRegion()
	case 54:
		// Aperture-select prefix, no-op: the D code that follows does
		// the actual selection.
	case 70:
		o.Units = "IN"
	case 71:
		o.Units = "MM"
	case 74:
		o.quadrant = quadrantSingle
	case 75:
		o.quadrant = quadrantMulti
	case 90, 91:
		// Deprecated absolute/incremental mode: parsed, ignored.
	default:
		o.warnf("unsupported G code G%02d", g)
	}
}

func (o *Object) applyDCode(d int, prevX, prevY float64, i, j *float64) {
	if d >= 10 {
		o.curAperture = d
		return
	}
	o.lastOp = d
	switch d {
	case 1:
		o.penDown(prevX, prevY, i, j)
	case 2:
		o.penUp()
	case 3:
		o.flash()
	}
}

func (o *Object) penDown(prevX, prevY float64, i, j *float64) {
	if len(o.path) == 0 {
		o.path = append(o.path, geom.Point{X: prevX, Y: prevY})
	}
	switch o.interp {
	case interpCW, interpCCW:
		o.appendArc(prevX, prevY, i, j)
	default:
		o.path = append(o.path, geom.Point{X: o.curX, Y: o.curY})
	}
}

func (o *Object) appendArc(prevX, prevY float64, i, j *float64) {
	if o.quadrant == quadrantSingle {
		o.warnf("single-quadrant arcs (G74) are not supported")
		return
	}
	if o.quadrant == quadrantUnset {
		o.warnf("arc interpolation without a preceding G74/G75")
		return
	}
	iv, jv := derefOr(i, 0), derefOr(j, 0)
	center := geom.Point{X: prevX + iv, Y: prevY + jv}
	radius := math.Hypot(iv, jv)
	start := math.Atan2(-jv, -iv)
	stop := math.Atan2(o.curY-center.Y, o.curX-center.X)
	dir := numeric.CCW
	if o.interp == interpCW {
		dir = numeric.CW
	}
	pts := numeric.Arc(center, radius, start, stop, dir, o.StepsPerCirc)
	if len(pts) > 1 {
		o.path = append(o.path, pts[1:]...)
	}
}

func derefOr(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}

func (o *Object) penUp() {
	o.flushOpenStroke()
	o.path = []geom.Point{{X: o.curX, Y: o.curY}}
}

// flushOpenStroke closes the current path, if it carries a real
// segment: as a closed polygon while in region mode, otherwise as the
// path buffered by the current aperture's width.
func (o *Object) flushOpenStroke() {
	if len(o.path) < 2 {
		return
	}
	pts := append([]geom.Point(nil), o.path...)
	if o.regionMode {
		shape := geom.FromPolygon(geom.Polygon{Shell: geom.LinearRing(pts)})
		if geom.PolygonArea(shape) == 0 {
			shape = geom.Buffer(shape, 0, geom.JoinRound, geom.CapRound)
		}
		o.polyBuffer = append(o.polyBuffer, shape)
		return
	}
	ap, ok := o.apertures[o.curAperture]
	if !ok {
		o.warnf("stroke references unknown aperture %d", o.curAperture)
		return
	}
	w := strokeWidth(ap)
	line := geom.FromLineString(geom.LineString(pts))
	o.polyBuffer = append(o.polyBuffer, geom.Buffer(line, w/2, geom.JoinRound, geom.CapRound))
}

func strokeWidth(ap Aperture) float64 {
	switch ap.Kind {
	case ApertureCircle:
		return ap.Size
	case ApertureRect, ApertureObround:
		return ap.Width
	}
	return 0
}

func (o *Object) startRegion() {
	o.flushOpenStroke()
	o.regionMode = true
	o.path = nil
}

func (o *Object) endRegion() {
	if len(o.path) >= 3 {
		shape := geom.FromPolygon(geom.Polygon{Shell: geom.LinearRing(o.path)})
		if geom.PolygonArea(shape) == 0 {
			shape = geom.Buffer(shape, 0, geom.JoinRound, geom.CapRound)
		}
		o.polyBuffer = append(o.polyBuffer, shape)
	}
	o.regionMode = false
	o.path = nil
}

func (o *Object) flash() {
	ap, ok := o.apertures[o.curAperture]
	if !ok {
		o.warnf("flash references unknown aperture %d", o.curAperture)
		return
	}
	shape := o.createFlashGeometry(o.curAperture, ap)
	shape = geom.Translate(shape, o.curX, o.curY)
	o.polyBuffer = append(o.polyBuffer, shape)
}
