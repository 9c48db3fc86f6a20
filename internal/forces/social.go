package forces

import (
	"crowdsim/internal/crowd"
	"crowdsim/internal/spatial"
)

// Driving returns the constant-magnitude forward thrust F_ai: magnitude A
// along the current velocity, or along the desired heading when the agent is
// effectively at rest.
func Driving(a *crowd.Agent, p *crowd.Params) crowd.Vec {
	dir := a.Vel
	if dir.Norm() <= p.SpeedEps {
		dir = a.Heading
	}
	return dir.Unit().Scale(p.A)
}

// Avoidance returns F_bi, the repulsion from surrounding agents:
//
//	F_bi = -sum_j c1(r_ij) * c2(theta_ij) * (x_j - x_i)/r_ij
//
// Near contact c1 is negative (Cn0), so the negated term pushes agents
// apart; on the mid-range plateau it steers them around each other.
func Avoidance(neighbors []spatial.Neighbor, p *crowd.Params) crowd.Vec {
	var f crowd.Vec
	for _, n := range neighbors {
		c := c1(n.Dist, p) * c2(n.Theta, p)
		if c == 0 {
			continue
		}
		f = f.Sub(n.Dir.Scale(c))
	}
	return f
}

// Cohesion returns F_ci, the group-interaction term averaged over the M
// neighbors with a nonzero distance weight:
//
//	F_ci = -(1/M) * sum_j h1(r_ij) * h2(theta_ij) * (x_j - x_i)/r_ij
//
// With no contributing neighbors the force is exactly zero.
func Cohesion(neighbors []spatial.Neighbor, p *crowd.Params) crowd.Vec {
	var f crowd.Vec
	m := 0
	for _, n := range neighbors {
		h := h1(n.Dist, p)
		if h == 0 {
			continue
		}
		m++
		f = f.Sub(n.Dir.Scale(h * h2(n.Theta, p)))
	}
	if m == 0 {
		return crowd.Vec{}
	}
	return f.Scale(1 / float64(m))
}
