package numeric

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/spatial/r2"
)

func TestArcMonotonicityCCW(t *testing.T) {
	pts := Arc(r2.Vec{}, 1, 0, math.Pi/2, CCW, 64)
	assert.GreaterOrEqual(t, len(pts), 2)
	prevAngle := math.Atan2(pts[0].Y, pts[0].X)
	for _, p := range pts[1:] {
		a := math.Atan2(p.Y, p.X)
		if a < prevAngle {
			a += 2 * math.Pi
		}
		assert.GreaterOrEqual(t, a, prevAngle-1e-9)
		prevAngle = a
	}
}

func TestArcHalfCircleStepsSampling(t *testing.T) {
	// G03 X1 Y0 I-1 J0 from (1,0): center (0,0), radius 1,
	// start angle atan2(0,1)=0, stop angle atan2(0,1)=0 -> normalized to
	// a full circle unless caller supplies the correct stop. Here we
	// directly exercise the CCW half circle from angle 0 to pi.
	pts := Arc(r2.Vec{}, 1, 0, math.Pi, CCW, 64)
	steps := 64 / 2
	assert.Equal(t, steps+1, len(pts))
	assert.InDelta(t, 1.0, pts[0].X, 1e-9)
	assert.InDelta(t, 0.0, pts[0].Y, 1e-9)
	assert.InDelta(t, -1.0, pts[len(pts)-1].X, 1e-9)
	assert.InDelta(t, 0.0, pts[len(pts)-1].Y, 1e-9)
}
