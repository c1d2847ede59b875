package geom

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func unitSquare() Polygon {
	return Polygon{Shell: LinearRing{
		{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1},
	}}
}

func TestPolygonAreaUnitSquare(t *testing.T) {
	assert.InDelta(t, 1.0, PolygonArea(FromPolygon(unitSquare())), 1e-9)
}

func TestEnvelope(t *testing.T) {
	b := GetBounds(Envelope(FromPolygon(unitSquare())))
	assert.Equal(t, Bounds{0, 0, 1, 1}, b)
}

func TestContainsExcludesBoundary(t *testing.T) {
	sq := FromPolygon(unitSquare())
	assert.True(t, Contains(sq, Point{X: 0.5, Y: 0.5}))
	assert.False(t, Contains(sq, Point{X: 0, Y: 0.5}))
	assert.False(t, Contains(sq, Point{X: 1.5, Y: 0.5}))
}

func TestTranslateScaleRotate(t *testing.T) {
	sq := FromPolygon(unitSquare())
	moved := Translate(sq, 1, 1)
	assert.InDelta(t, 1.0, moved.Polygon.Shell[0].X, 1e-9)

	scaled := Scale(sq, 2, 2, Point{})
	assert.InDelta(t, 4.0, PolygonArea(scaled), 1e-9)

	rotated := Rotate(sq, 90, Point{X: 0.5, Y: 0.5})
	require.Len(t, rotated.Polygon.Shell, 4)
	assert.InDelta(t, 1.0, PolygonArea(rotated), 1e-9)
}

func TestFindPolygon(t *testing.T) {
	sq := unitSquare()
	other := Polygon{Shell: LinearRing{
		{X: 5, Y: 5}, {X: 6, Y: 5}, {X: 6, Y: 6}, {X: 5, Y: 6},
	}}
	found, ok := FindPolygon([]Polygon{sq, other}, Point{X: 5.5, Y: 5.5})
	require.True(t, ok)
	assert.InDelta(t, 1.0, PolygonArea(FromPolygon(found)), 1e-9)
}

func TestPolarityAnnulus(t *testing.T) {
	// A dark 2x2 square with a clear disk removed from its center
	// yields area = square - disk.
	sq := FromPolygon(Polygon{Shell: LinearRing{
		{X: -1, Y: -1}, {X: 1, Y: -1}, {X: 1, Y: 1}, {X: -1, Y: 1},
	}})
	disk := Buffer(FromPoint(Point{}), 0.5, JoinRound, CapRound)
	result := Difference(sq, disk)
	expected := 4.0 - math.Pi*0.25
	assert.InDelta(t, expected, PolygonArea(result), 0.02)
}

func TestWKTRoundTrip(t *testing.T) {
	sq := FromPolygon(unitSquare())
	wkt := ToWKT(sq)
	parsed, err := FromWKT(wkt)
	require.NoError(t, err)
	require.Len(t, parsed.Polygon.Shell, 4)
	assert.InDelta(t, 1.0, PolygonArea(parsed), 1e-9)
}
