package forces

import (
	"math"

	"crowdsim/internal/crowd"
)

// Wall returns F_wi, the repulsion from the nearest wall. dist and normal
// come from the wall collaborator; normal points from the wall toward the
// agent. The force is zero beyond distance D. Inside D the push is W1 plus,
// when the agent is moving into the wall, a velocity-proportional term:
//
//	(W0 * v_wi * (D - d_i)/D + W1) * e_w
//
// where v_wi = -v . e_w is positive for motion toward the wall.
func Wall(a *crowd.Agent, dist float64, normal crowd.Vec, p *crowd.Params) crowd.Vec {
	if dist > p.D || math.IsInf(dist, 1) {
		return crowd.Vec{}
	}
	vwi := -a.Vel.Dot(normal)
	if vwi > 0 {
		return normal.Scale(p.W0*vwi*(p.D-dist)/p.D + p.W1)
	}
	return normal.Scale(p.W1)
}

// Herding returns F_hi, the panic response: a force of magnitude Strength
// directed away from the nearest panic source within its cutoff. A negative
// Strength turns the push into a pull. Non-panicked agents and agents
// standing exactly on a source feel nothing.
func Herding(a *crowd.Agent, sources []crowd.PanicSource, p *crowd.Params) crowd.Vec {
	if !a.Panicked {
		return crowd.Vec{}
	}
	best := -1
	bestDist := 0.0
	for i, s := range sources {
		d := a.Pos.Sub(s.Pos).Norm()
		cutoff := s.Cutoff
		if cutoff <= 0 {
			cutoff = p.Cutoff
		}
		if d == 0 || d > cutoff {
			continue
		}
		if best < 0 || d < bestDist {
			best = i
			bestDist = d
		}
	}
	if best < 0 {
		return crowd.Vec{}
	}
	s := sources[best]
	strength := s.Strength
	if strength == 0 {
		strength = p.Strength
	}
	return a.Pos.Sub(s.Pos).Unit().Scale(strength)
}
