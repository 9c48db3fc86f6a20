package forces

import (
	"math"
	"math/rand"

	"crowdsim/internal/crowd"
)

// Fluctuation draws the random force F_31 from an explicitly owned seeded
// generator. The three branches reuse the wall-proximity test of F_wi:
// q1 away from walls, -q2 near a wall while moving into it, -q1 near a wall
// otherwise. Each draw is a unit vector at a uniformly random angle, so the
// sign only matters for reproducing the documented model exactly.
type Fluctuation struct {
	rng *rand.Rand
}

func NewFluctuation(seed int64) *Fluctuation {
	return &Fluctuation{rng: rand.New(rand.NewSource(seed))}
}

// Unit returns a unit vector at a uniformly random angle.
func (f *Fluctuation) Unit() crowd.Vec {
	angle := f.rng.Float64() * 2 * math.Pi
	return crowd.Vec{X: math.Cos(angle), Y: math.Sin(angle)}
}

// Force returns the fluctuation for an agent given its wall distance and
// wall-normal velocity component.
func (f *Fluctuation) Force(wallDist, vwi float64, p *crowd.Params) crowd.Vec {
	switch {
	case wallDist > p.D:
		return f.Unit().Scale(p.Q1)
	case vwi > 0:
		return f.Unit().Scale(-p.Q2)
	default:
		return f.Unit().Scale(-p.Q1)
	}
}
