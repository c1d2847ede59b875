package excellon

import (
	"github.com/kennycoder/flatcam-core/internal/geom"
	"github.com/kennycoder/flatcam-core/internal/numeric"
)

// Object is a parsed Excellon object: the tool table, the ordered
// drill list, and the derived solid_geometry (union of drill disks).
type Object struct {
	Units string // "IN" or "MM"
	Zeros numeric.Zeros

	tools  map[int]Tool
	drills []Drill

	curTool  int
	curX     float64
	curY     float64
	inHeader bool

	solidGeometry geom.Shape
}

// New returns an empty Excellon object ready for Parse.
func New() *Object {
	return &Object{
		Units:         "IN",
		Zeros:         numeric.ZerosTrailing,
		tools:         make(map[int]Tool),
		solidGeometry: geom.Empty(),
	}
}

// Tools returns the tool table, keyed by canonicalized id.
func (o *Object) Tools() map[int]Tool { return o.tools }

// Drills returns the ordered drill list.
func (o *Object) Drills() []Drill { return o.drills }

// SolidGeometry returns the union of circular disks materialized by
// CreateGeometry.
func (o *Object) SolidGeometry() geom.Shape { return o.solidGeometry }

// CreateGeometry (re-)derives solid_geometry from the tool table and
// drill list: one disk per drill, radius tools[tool].Diameter/2.
func (o *Object) CreateGeometry() geom.Shape {
	var disks []geom.Shape
	for _, d := range o.drills {
		tool, ok := o.tools[d.ToolID]
		if !ok {
			warnf("drill at (%g, %g) references undefined tool %d", d.X, d.Y, d.ToolID)
			continue
		}
		disk := geom.Buffer(geom.FromPoint(geom.Point{X: d.X, Y: d.Y}), tool.Diameter/2, geom.JoinRound, geom.CapRound)
		disks = append(disks, disk)
	}
	if len(disks) == 0 {
		o.solidGeometry = geom.Empty()
		return o.solidGeometry
	}
	o.solidGeometry = geom.Union(disks...)
	return o.solidGeometry
}

// Scale multiplies every drill coordinate by factor and re-materializes
// geometry.
func (o *Object) Scale(factor float64) {
	for i := range o.drills {
		o.drills[i].X *= factor
		o.drills[i].Y *= factor
	}
	o.CreateGeometry()
}

// Offset translates every drill point by (dx, dy) and re-materializes.
func (o *Object) Offset(dx, dy float64) {
	for i := range o.drills {
		o.drills[i].X += dx
		o.drills[i].Y += dy
	}
	o.CreateGeometry()
}

// Mirror reflects every drill point across the X or Y axis at value,
// and re-materializes.
func (o *Object) Mirror(axis string, value float64) {
	for i := range o.drills {
		switch axis {
		case "X":
			o.drills[i].Y = 2*value - o.drills[i].Y
		case "Y":
			o.drills[i].X = 2*value - o.drills[i].X
		}
	}
	o.CreateGeometry()
}

// ConvertUnits scales drill points and tool diameters by the IN/MM
// conversion factor, updates Units, and re-materializes geometry.
func (o *Object) ConvertUnits(to string) {
	if to == o.Units {
		return
	}
	var factor float64
	switch {
	case o.Units == "IN" && to == "MM":
		factor = 25.4
	case o.Units == "MM" && to == "IN":
		factor = 1 / 25.4
	default:
		return
	}
	for id, tool := range o.tools {
		tool.Diameter *= factor
		o.tools[id] = tool
	}
	o.Scale(factor)
	o.Units = to
}
