package engine

import (
	"math"
	"testing"

	"crowdsim/internal/crowd"
)

func TestEulerStepHandComputed(t *testing.T) {
	a := crowd.Agent{
		Pos:     crowd.Vec{X: 1, Y: 2},
		Vel:     crowd.Vec{X: 2},
		Mass:    2,
		Damping: 0.5,
	}
	f := crowd.Vec{X: 4, Y: 1}

	// acc = (f - nu*v)/m = ((4-1)/2, 1/2) = (1.5, 0.5)
	// v'  = (2, 0) + 0.1*(1.5, 0.5) = (2.15, 0.05)
	// x'  = (1, 2) + 0.1*v'
	next, acc := Euler{Dt: 0.1}.Step(a, f)

	if math.Abs(acc.X-1.5) > 1e-12 || math.Abs(acc.Y-0.5) > 1e-12 {
		t.Errorf("acc = %+v", acc)
	}
	if math.Abs(next.Vel.X-2.15) > 1e-12 || math.Abs(next.Vel.Y-0.05) > 1e-12 {
		t.Errorf("vel = %+v", next.Vel)
	}
	if math.Abs(next.Pos.X-1.215) > 1e-12 || math.Abs(next.Pos.Y-2.005) > 1e-12 {
		t.Errorf("pos = %+v", next.Pos)
	}
}

func TestEulerPositionUsesUpdatedVelocity(t *testing.T) {
	a := crowd.Agent{Mass: 1, Damping: 0}
	next, _ := Euler{Dt: 1}.Step(a, crowd.Vec{X: 1})

	// Semi-implicit ordering: the new velocity moves the position this step.
	if next.Pos.X != 1 {
		t.Errorf("expected pos.X 1, got %g", next.Pos.X)
	}
}

func TestEulerZeroForceDecays(t *testing.T) {
	a := crowd.Agent{Vel: crowd.Vec{X: 1}, Mass: 1, Damping: 0.5}
	next, _ := Euler{Dt: 0.1}.Step(a, crowd.Vec{})
	if next.Vel.X >= 1 || next.Vel.X <= 0 {
		t.Errorf("damping should shrink speed toward zero, got %g", next.Vel.X)
	}
}
