package numeric

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Direction is the sweep direction of a circular arc.
type Direction int

const (
	CW Direction = iota
	CCW
)

// Arc returns a polyline approximation of the circular arc centered at
// center, with the given radius, running from start to stop (radians),
// swept in dir, sampled so that a full circle would take steps_per_circ
// segments. It always returns at least two points.
func Arc(center r2.Vec, radius, start, stop float64, dir Direction, stepsPerCirc int) []r2.Vec {
	if dir == CCW && stop <= start {
		stop += 2 * math.Pi
	}
	if dir == CW && stop >= start {
		stop -= 2 * math.Pi
	}

	angle := math.Abs(stop - start)
	steps := int(math.Ceil(angle / (2 * math.Pi) * float64(stepsPerCirc)))
	if steps < 2 {
		steps = 2
	}

	sign := 1.0
	if dir == CW {
		sign = -1.0
	}
	deltaAngle := sign * angle / float64(steps)

	points := make([]r2.Vec, 0, steps+1)
	for i := 0; i <= steps; i++ {
		theta := start + deltaAngle*float64(i)
		points = append(points, r2.Vec{
			X: center.X + radius*math.Cos(theta),
			Y: center.Y + radius*math.Sin(theta),
		})
	}
	return points
}
