package forces

import (
	"math"
	"testing"

	"crowdsim/internal/crowd"
)

func TestWallForceZeroBeyondCutoff(t *testing.T) {
	p := crowd.DefaultParams()
	a := &crowd.Agent{Vel: crowd.Vec{X: -1}}

	f := Wall(a, p.D+0.001, crowd.Vec{X: 1}, &p)
	if !f.IsZero() {
		t.Errorf("wall force beyond cutoff should be exactly zero, got %+v", f)
	}
	f = Wall(a, math.Inf(1), crowd.Vec{}, &p)
	if !f.IsZero() {
		t.Errorf("wall force with no walls should be zero, got %+v", f)
	}
}

func TestWallForceMovingIn(t *testing.T) {
	p := crowd.DefaultParams()
	normal := crowd.Vec{X: 1} // wall to the left of the agent
	a := &crowd.Agent{Vel: crowd.Vec{X: -2}}
	dist := p.D / 2

	f := Wall(a, dist, normal, &p)
	vwi := 2.0 // speed into the wall
	want := p.W0*vwi*(p.D-dist)/p.D + p.W1
	if math.Abs(f.X-want) > 1e-12 || f.Y != 0 {
		t.Errorf("expected push %f along the normal, got %+v", want, f)
	}
}

func TestWallForceMovingAway(t *testing.T) {
	p := crowd.DefaultParams()
	normal := crowd.Vec{X: 1}
	a := &crowd.Agent{Vel: crowd.Vec{X: 3}}

	f := Wall(a, p.D/2, normal, &p)
	if math.Abs(f.X-p.W1) > 1e-12 {
		t.Errorf("agent moving away should feel only w1=%f, got %+v", p.W1, f)
	}
}

func TestHerdingCutoff(t *testing.T) {
	p := crowd.DefaultParams()
	sources := []crowd.PanicSource{{Pos: crowd.Vec{}, Strength: 2, Cutoff: 5}}

	inside := &crowd.Agent{Pos: crowd.Vec{X: 3}, Panicked: true}
	f := Herding(inside, sources, &p)
	if math.Abs(f.X-2) > 1e-12 || f.Y != 0 {
		t.Errorf("expected push away with magnitude 2, got %+v", f)
	}

	outside := &crowd.Agent{Pos: crowd.Vec{X: 6}, Panicked: true}
	if f := Herding(outside, sources, &p); !f.IsZero() {
		t.Errorf("herding beyond cutoff should be zero, got %+v", f)
	}

	calm := &crowd.Agent{Pos: crowd.Vec{X: 3}}
	if f := Herding(calm, sources, &p); !f.IsZero() {
		t.Errorf("non-panicked agent should feel nothing, got %+v", f)
	}
}

func TestHerdingNegativeStrengthAttracts(t *testing.T) {
	p := crowd.DefaultParams()
	sources := []crowd.PanicSource{{Pos: crowd.Vec{}, Strength: -1, Cutoff: 10}}

	a := &crowd.Agent{Pos: crowd.Vec{X: 4}, Panicked: true}
	f := Herding(a, sources, &p)
	if f.X >= 0 {
		t.Errorf("negative strength should pull toward the source, got %+v", f)
	}
}

func TestHerdingAtSourcePosition(t *testing.T) {
	p := crowd.DefaultParams()
	sources := []crowd.PanicSource{{Pos: crowd.Vec{X: 1}, Strength: 2, Cutoff: 10}}

	a := &crowd.Agent{Pos: crowd.Vec{X: 1}, Panicked: true}
	if f := Herding(a, sources, &p); !f.IsZero() {
		t.Errorf("agent exactly on the source has no defined direction, got %+v", f)
	}
}

func TestHerdingPicksNearestSource(t *testing.T) {
	p := crowd.DefaultParams()
	sources := []crowd.PanicSource{
		{Pos: crowd.Vec{X: -2}, Strength: 1, Cutoff: 10},
		{Pos: crowd.Vec{X: 1}, Strength: 3, Cutoff: 10},
	}

	a := &crowd.Agent{Pos: crowd.Vec{}, Panicked: true}
	f := Herding(a, sources, &p)
	// Nearest source is at x=1, so the push is in -x with magnitude 3.
	if math.Abs(f.X+3) > 1e-12 {
		t.Errorf("expected push -3 from the nearest source, got %+v", f)
	}
}
