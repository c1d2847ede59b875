package gerber

import (
	"strconv"

	"github.com/kennycoder/flatcam-core/internal/geom"
)

// geomEnvelope is the tagged serialization envelope for geometric
// values: {class: "Shply", inst: <wkt>}.
type geomEnvelope struct {
	Class string `json:"class"`
	Inst  string `json:"inst"`
}

type macroEnvelope struct {
	Class string            `json:"class"`
	Inst  macroEnvelopeInst `json:"inst"`
}

type macroEnvelopeInst struct {
	Name string `json:"name"`
	Raw  string `json:"raw"`
}

type apertureRecord struct {
	Kind      string    `json:"kind"`
	Size      float64   `json:"size,omitempty"`
	Width     float64   `json:"width,omitempty"`
	Height    float64   `json:"height,omitempty"`
	Diam      float64   `json:"diam,omitempty"`
	NVertices int       `json:"n_vertices,omitempty"`
	Rotation  float64   `json:"rotation,omitempty"`
	MacroName string    `json:"macro_name,omitempty"`
	MacroMods []float64 `json:"macro_mods,omitempty"`
}

var apertureKindNames = map[ApertureKind]string{
	ApertureCircle:  "C",
	ApertureRect:    "R",
	ApertureObround: "O",
	AperturePolygon: "P",
	ApertureMacro:   "AM",
}

// SerAttrs returns the JSON-compatible record of the object's
// ser_attrs: units and format, the aperture table, the macro
// dictionary (each macro in its own class envelope), and the solid
// geometry as a WKT-tagged envelope.
func (o *Object) SerAttrs() map[string]any {
	apertures := make(map[string]apertureRecord, len(o.apertures))
	for id, ap := range o.apertures {
		apertures[strconv.Itoa(id)] = apertureRecord{
			Kind:      apertureKindNames[ap.Kind],
			Size:      ap.Size,
			Width:     ap.Width,
			Height:    ap.Height,
			Diam:      ap.Diam,
			NVertices: ap.NVertices,
			Rotation:  ap.Rotation,
			MacroName: ap.MacroName,
			MacroMods: ap.MacroMods,
		}
	}

	macros := make(map[string]macroEnvelope, len(o.macros))
	for name, m := range o.macros {
		macros[name] = macroEnvelope{
			Class: "ApertureMacro",
			Inst:  macroEnvelopeInst{Name: m.Name, Raw: m.Raw},
		}
	}

	return map[string]any{
		"units":           o.Units,
		"int_digits_x":    o.IntDigitsX,
		"frac_digits_x":   o.FracDigitsX,
		"int_digits_y":    o.IntDigitsY,
		"frac_digits_y":   o.FracDigitsY,
		"apertures":       apertures,
		"aperture_macros": macros,
		"solid_geometry": geomEnvelope{
			Class: "Shply",
			Inst:  geom.ToWKT(o.solidGeometry),
		},
	}
}
