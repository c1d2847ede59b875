package macro

import (
	"strconv"
	"strings"

	"github.com/kennycoder/flatcam-core/internal/geom"
)

// Macro is a named aperture-macro program. Raw is the textual
// definition, sans the leading `%AM<name>*`.
type Macro struct {
	Name string
	Raw  string
}

// part is one `*`-delimited segment of a macro body, classified on
// first read.
type part struct {
	comment    bool
	assignName string
	assignExpr string
	code       int
	modExprs   []string
}

func splitParts(raw string) []part {
	var parts []part
	for _, seg := range strings.Split(raw, "*") {
		seg = strings.TrimSpace(seg)
		if seg == "" {
			continue
		}
		if seg[0] == '0' {
			parts = append(parts, part{comment: true})
			continue
		}
		if idx := strings.Index(seg, "="); idx >= 0 && strings.HasPrefix(seg, "$") {
			name := strings.TrimSpace(seg[1:idx])
			expr := strings.TrimSpace(seg[idx+1:])
			parts = append(parts, part{assignName: name, assignExpr: expr})
			continue
		}
		fields := strings.SplitN(seg, ",", 2)
		code, err := strconv.Atoi(strings.TrimSpace(fields[0]))
		if err != nil {
			continue // InputMalformed: skip, parser never aborts
		}
		var modExprs []string
		if len(fields) > 1 {
			for _, m := range strings.Split(fields[1], ",") {
				modExprs = append(modExprs, strings.TrimSpace(m))
			}
		}
		parts = append(parts, part{code: code, modExprs: modExprs})
	}
	return parts
}

// Instantiate binds modifiers positionally into $1..$N, evaluates the
// body, and returns the composed region: seeded at the first dark
// primitive, unioning subsequent dark primitives and subtracting clear
// ones, left to right.
func (m Macro) Instantiate(modifiers []float64) geom.Shape {
	vars := make(map[string]float64, len(modifiers))
	for i, v := range modifiers {
		vars[strconv.Itoa(i+1)] = v
	}

	var result geom.Shape
	seeded := false

	for _, p := range splitParts(m.Raw) {
		switch {
		case p.comment:
			continue
		case p.assignName != "":
			v, err := Eval(p.assignExpr, vars)
			if err != nil {
				continue // InputMalformed: skip this assignment
			}
			vars[p.assignName] = v
		default:
			mods := make([]float64, 0, len(p.modExprs))
			ok := true
			for _, expr := range p.modExprs {
				v, err := Eval(expr, vars)
				if err != nil {
					ok = false
					break
				}
				mods = append(mods, v)
			}
			if !ok {
				continue
			}
			prim, known := buildPrimitive(p.code, mods)
			if !known {
				continue // UnsupportedFeature: unknown primitive code
			}
			if !seeded {
				if prim.Exposure {
					result = prim.Shape
					seeded = true
				}
				continue
			}
			if prim.Exposure {
				result = geom.Union(result, prim.Shape)
			} else {
				result = geom.Difference(result, prim.Shape)
			}
		}
	}

	if !seeded {
		return geom.Empty()
	}
	return result
}

// Parse records the macro's name and raw body without splitting or
// evaluating it (modifiers are not known yet); malformed parts are only
// met, and skipped, by Instantiate. It exists so a Gerber object can
// register a macro definition eagerly and only pay the instantiation
// cost at flash time.
func Parse(name, raw string) Macro {
	return Macro{Name: name, Raw: raw}
}
