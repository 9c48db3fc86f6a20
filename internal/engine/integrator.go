package engine

import "crowdsim/internal/crowd"

// Euler is the explicit-Euler integrator of the documented model, with
// viscous damping folded into the acceleration:
//
//	v' = v + dt*(F/m - (nu/m)*v)
//	x' = x + dt*v'
//
// The step size is fixed; stability requires nu*dt/m well below 1, which is
// the caller's responsibility. Divergence is propagated, never masked.
type Euler struct {
	Dt float64
}

// Step advances one agent under force f and returns the updated agent along
// with the computed acceleration for external diagnostics.
func (e Euler) Step(a crowd.Agent, f crowd.Vec) (crowd.Agent, crowd.Vec) {
	acc := f.Sub(a.Vel.Scale(a.Damping)).Scale(1 / a.Mass)
	a.Vel = a.Vel.Add(acc.Scale(e.Dt))
	a.Pos = a.Pos.Add(a.Vel.Scale(e.Dt))
	return a, acc
}
