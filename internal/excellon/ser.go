package excellon

import (
	"strconv"

	"github.com/kennycoder/flatcam-core/internal/geom"
	"github.com/kennycoder/flatcam-core/internal/numeric"
)

type geomEnvelope struct {
	Class string `json:"class"`
	Inst  string `json:"inst"`
}

type toolRecord struct {
	Diameter float64 `json:"diameter"`
}

// SerAttrs returns the JSON-compatible record of ser_attrs: units,
// zero-suppression mode, the tool table, the drill list, and the
// solid geometry as a WKT-tagged envelope.
func (o *Object) SerAttrs() map[string]any {
	tools := make(map[string]toolRecord, len(o.tools))
	for id, t := range o.tools {
		tools[strconv.Itoa(id)] = toolRecord{Diameter: t.Diameter}
	}

	drills := make([]map[string]any, 0, len(o.drills))
	for _, d := range o.drills {
		drills = append(drills, map[string]any{
			"point": [2]float64{d.X, d.Y},
			"tool":  strconv.Itoa(d.ToolID),
		})
	}

	zeros := "T"
	if o.Zeros == numeric.ZerosLeading {
		zeros = "L"
	}

	return map[string]any{
		"units":  o.Units,
		"zeros":  zeros,
		"tools":  tools,
		"drills": drills,
		"solid_geometry": geomEnvelope{
			Class: "Shply",
			Inst:  geom.ToWKT(o.solidGeometry),
		},
	}
}
