// Package object defines the thin, read-only interfaces a UI or
// automation layer would observe a core object through: its declared
// units, its derived geometry, and its serializable attribute record.
// flatcam-core itself never depends on this package — it exists purely
// as the observation surface, with an adapter per concrete object type.
package object

import (
	"github.com/kennycoder/flatcam-core/internal/cncjob"
	"github.com/kennycoder/flatcam-core/internal/excellon"
	"github.com/kennycoder/flatcam-core/internal/geom"
	"github.com/kennycoder/flatcam-core/internal/gerber"
)

// GerberObject is the observation surface of a parsed Gerber file.
type GerberObject interface {
	Units() string
	SolidGeometry() geom.Shape
	SerAttrs() map[string]any
}

// ExcellonObject is the observation surface of a parsed Excellon file.
type ExcellonObject interface {
	Units() string
	SolidGeometry() geom.Shape
	SerAttrs() map[string]any
}

// GeometryObject is the observation surface of a bare geometry value,
// e.g. the output of a boolean or clearing operation with no parse
// history of its own.
type GeometryObject interface {
	Units() string
	SolidGeometry() geom.Shape
	SerAttrs() map[string]any
}

// CNCJobObject is the observation surface of a generated CNC job.
type CNCJobObject interface {
	Units() string
	SolidGeometry() geom.Shape
	SerAttrs() map[string]any
}

// Gerber adapts a *gerber.Object to GerberObject.
func Gerber(o *gerber.Object) GerberObject { return gerberAdapter{o} }

type gerberAdapter struct{ o *gerber.Object }

func (g gerberAdapter) Units() string             { return g.o.Units }
func (g gerberAdapter) SolidGeometry() geom.Shape { return g.o.SolidGeometry() }
func (g gerberAdapter) SerAttrs() map[string]any  { return g.o.SerAttrs() }

// Excellon adapts a *excellon.Object to ExcellonObject.
func Excellon(o *excellon.Object) ExcellonObject { return excellonAdapter{o} }

type excellonAdapter struct{ o *excellon.Object }

func (e excellonAdapter) Units() string            { return e.o.Units }
func (e excellonAdapter) SolidGeometry() geom.Shape { return e.o.SolidGeometry() }
func (e excellonAdapter) SerAttrs() map[string]any  { return e.o.SerAttrs() }

// Geometry wraps a bare geom.Shape plus its declared units as a
// GeometryObject, for boolean/clearing results that have no parser of
// their own to own the units string.
type Geometry struct {
	UnitsValue string
	Shape      geom.Shape
}

func (g Geometry) Units() string            { return g.UnitsValue }
func (g Geometry) SolidGeometry() geom.Shape { return g.Shape }
func (g Geometry) SerAttrs() map[string]any {
	return map[string]any{
		"units": g.UnitsValue,
		"solid_geometry": map[string]any{
			"class": "Shply",
			"inst":  geom.ToWKT(g.Shape),
		},
	}
}

// CNCJob adapts a *cncjob.Object to CNCJobObject.
func CNCJob(o *cncjob.Object) CNCJobObject { return cncjobAdapter{o} }

type cncjobAdapter struct{ o *cncjob.Object }

func (c cncjobAdapter) Units() string { return c.o.Units }

// SolidGeometry reports a job's footprint as its input geometry's
// bounding rectangle — a CNC job has no exact region of its own, only
// the bounds recorded before emission.
func (c cncjobAdapter) SolidGeometry() geom.Shape {
	b := c.o.InputGeometryBounds
	return geom.FromPolygon(geom.Polygon{Shell: geom.LinearRing{
		{X: b.MinX, Y: b.MinY},
		{X: b.MaxX, Y: b.MinY},
		{X: b.MaxX, Y: b.MaxY},
		{X: b.MinX, Y: b.MaxY},
	}})
}

func (c cncjobAdapter) SerAttrs() map[string]any { return c.o.SerAttrs() }
