package cncjob

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/kennycoder/flatcam-core/internal/geom"
	"github.com/kennycoder/flatcam-core/internal/numeric"
)

var (
	reParenComment = regexp.MustCompile(`\([^)]*\)`)
	reGWord        = regexp.MustCompile(`([NMGXYZIJFP])([+-]?[0-9]*\.?[0-9]+)`)
)

type gcodeToken struct {
	letter byte
	value  float64
}

func stripComment(line string) string {
	line = reParenComment.ReplaceAllString(line, "")
	if idx := strings.Index(line, ";"); idx >= 0 {
		line = line[:idx]
	}
	return line
}

func tokenizeGCodeLine(line string) []gcodeToken {
	matches := reGWord.FindAllStringSubmatch(line, -1)
	toks := make([]gcodeToken, 0, len(matches))
	for _, m := range matches {
		v, err := strconv.ParseFloat(m[2], 64)
		if err != nil {
			continue
		}
		toks = append(toks, gcodeToken{letter: m[1][0], value: v})
	}
	return toks
}

func derefOr(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}

// ParseGCode tokenizes src one line (command) at a time, tracking
// {X, Y, Z, G} state: a Z change flushes the current path, X/Y motion
// appends a point (G00/G01) or an arc's expansion (G02/G03, using I/J
// as in the Gerber arc convention).
func ParseGCode(src string, stepsPerCirc int) []ParsedSegment {
	var segments []ParsedSegment
	var path []geom.Point
	var curX, curY, curZ float64
	var curG int
	var curSpeed SpeedKind = Slow

	flush := func() {
		if len(path) >= 2 {
			motion := Cut
			if curZ > 0 {
				motion = Travel
			}
			cp := make(geom.LineString, len(path))
			copy(cp, path)
			segments = append(segments, ParsedSegment{Geom: cp, Motion: motion, Speed: curSpeed})
		}
		if len(path) > 0 {
			path = []geom.Point{path[len(path)-1]}
		}
	}

	for _, raw := range strings.Split(src, "\n") {
		line := strings.TrimSpace(stripComment(raw))
		if line == "" {
			continue
		}
		tokens := tokenizeGCodeLine(line)
		if len(tokens) == 0 {
			continue
		}

		var g *int
		var x, y, ival, jval *float64
		for _, tok := range tokens {
			switch tok.letter {
			case 'G':
				n := int(tok.value)
				g = &n
			case 'X':
				v := tok.value
				x = &v
			case 'Y':
				v := tok.value
				y = &v
			case 'I':
				v := tok.value
				ival = &v
			case 'J':
				v := tok.value
				jval = &v
			case 'Z':
				newZ := tok.value
				if newZ != curZ {
					flush()
					curZ = newZ
					if len(path) == 0 {
						path = []geom.Point{{X: curX, Y: curY}}
					}
				}
			}
		}

		if g != nil {
			curG = *g
			if curG == 0 {
				curSpeed = Fast
			} else {
				curSpeed = Slow
			}
		}

		if x != nil || y != nil {
			nx, ny := curX, curY
			if x != nil {
				nx = *x
			}
			if y != nil {
				ny = *y
			}
			if len(path) == 0 {
				path = []geom.Point{{X: curX, Y: curY}}
			}
			switch curG {
			case 2, 3:
				iv, jv := derefOr(ival, 0), derefOr(jval, 0)
				center := geom.Point{X: curX + iv, Y: curY + jv}
				radius := math.Hypot(iv, jv)
				start := math.Atan2(curY-center.Y, curX-center.X)
				stop := math.Atan2(ny-center.Y, nx-center.X)
				dir := numeric.CCW
				if curG == 2 {
					dir = numeric.CW
				}
				pts := numeric.Arc(center, radius, start, stop, dir, stepsPerCirc)
				if len(pts) > 1 {
					path = append(path, pts[1:]...)
				}
			default:
				path = append(path, geom.Point{X: nx, Y: ny})
			}
			curX, curY = nx, ny
		}
	}
	flush()
	return segments
}
