package forces

import (
	"math"

	"crowdsim/internal/crowd"
	"crowdsim/internal/spatial"
)

// Region identifies the goal-force domain an agent occupies in a step.
type Region int

const (
	RegionDefault Region = iota
	RegionExit
	RegionSign
	RegionMemory
)

func (r Region) String() string {
	switch r {
	case RegionExit:
		return "exit"
	case RegionSign:
		return "sign"
	case RegionMemory:
		return "memory"
	default:
		return "default"
	}
}

// GoalDecision is the tagged outcome of region classification: which domain
// won, the point being targeted, and the force magnitude to apply. The zero
// value is the default region with no goal force.
type GoalDecision struct {
	Region   Region
	Target   crowd.Vec
	Strength float64
}

// Force returns the goal force for an agent at pos: a unit vector toward
// the target scaled by the decision's strength.
func (g GoalDecision) Force(pos crowd.Vec) crowd.Vec {
	if g.Region == RegionDefault {
		return crowd.Vec{}
	}
	return g.Target.Sub(pos).Unit().Scale(g.Strength)
}

// Model evaluates the total Hirai-Tarui force for agents against a fixed
// scenario. Signs, exits and walls are immutable for a run; panic sources
// may be swapped between steps via SetPanicSources.
type Model struct {
	Params crowd.Params
	Walls  crowd.WallField
	Signs  []crowd.Sign
	Exits  []crowd.Exit

	panics []crowd.PanicSource
}

func NewModel(params crowd.Params, walls crowd.WallField, signs []crowd.Sign, exits []crowd.Exit, panics []crowd.PanicSource) *Model {
	return &Model{
		Params: params,
		Walls:  walls,
		Signs:  signs,
		Exits:  exits,
		panics: panics,
	}
}

// SetPanicSources replaces the panic sources for subsequent steps. Must not
// be called while a step is in flight.
func (m *Model) SetPanicSources(sources []crowd.PanicSource) {
	m.panics = sources
}

// PanicSources returns the sources active for the current step.
func (m *Model) PanicSources() []crowd.PanicSource { return m.panics }

// Classify resolves the agent's goal-force domain for this step. The three
// branches are tried in strict priority order and the first match wins:
//
//  1. inside an exit's effective radius -> exit attraction
//  2. a sign is visible -> visible-sign attraction, sighting recorded
//  3. an unexpired memory entry exists -> memorized-sign attraction
//
// Classification is the only place an agent's memory is written.
func (m *Model) Classify(a *crowd.Agent, step int) GoalDecision {
	p := &m.Params

	if exit, ok := m.nearestExit(a.Pos); ok {
		strength := exit.Strength
		if strength == 0 {
			strength = p.ExitStrength
		}
		return GoalDecision{Region: RegionExit, Target: exit.Pos, Strength: strength}
	}

	if sign, ok := m.visibleSign(a); ok {
		if a.Memory != nil {
			a.Memory.Record(sign.ID, sign.Pos, step)
		}
		return GoalDecision{Region: RegionSign, Target: sign.Pos, Strength: p.EtaSign}
	}

	if a.Memory != nil {
		if e, ok := a.Memory.Recall(step); ok {
			return GoalDecision{Region: RegionMemory, Target: e.Pos, Strength: p.EtaMem}
		}
	}

	return GoalDecision{}
}

func (m *Model) nearestExit(pos crowd.Vec) (crowd.Exit, bool) {
	best := -1
	bestDist := 0.0
	for i, e := range m.Exits {
		radius := e.Radius
		if radius <= 0 {
			radius = m.Params.ExitRadius
		}
		d := pos.Sub(e.Pos).Norm()
		if d > radius {
			continue
		}
		if best < 0 || d < bestDist {
			best = i
			bestDist = d
		}
	}
	if best < 0 {
		return crowd.Exit{}, false
	}
	return m.Exits[best], true
}

// visibleSign returns the nearest sign the agent can actually see: within
// vision range, inside the agent's field of view, inside the sign's own
// facing cone, and with clear line of sight.
func (m *Model) visibleSign(a *crowd.Agent) (crowd.Sign, bool) {
	p := &m.Params
	facing := a.Vel
	if facing.Norm() <= p.SpeedEps {
		facing = a.Heading
	}

	best := -1
	bestDist := math.Inf(1)
	for i, s := range m.Signs {
		radius := s.Radius
		if radius <= 0 {
			radius = p.VisionRadius
		}
		toSign := s.Pos.Sub(a.Pos)
		d := toSign.Norm()
		if d == 0 || d > radius {
			continue
		}
		if crowd.AngleBetween(facing, toSign) > p.FovAngle/2 {
			continue
		}
		if crowd.AngleBetween(s.Facing, a.Pos.Sub(s.Pos)) > p.SignFov/2 {
			continue
		}
		if m.Walls != nil && !m.Walls.LineOfSight(a.Pos, s.Pos) {
			continue
		}
		if d < bestDist {
			best = i
			bestDist = d
		}
	}
	if best < 0 {
		return crowd.Sign{}, false
	}
	return m.Signs[best], true
}

// WallQuery returns the nearest-wall distance and outward normal for a
// position, or (+Inf, zero) when the model has no wall field.
func (m *Model) WallQuery(pos crowd.Vec) (float64, crowd.Vec) {
	if m.Walls == nil {
		return math.Inf(1), crowd.Vec{}
	}
	return m.Walls.NearestWall(pos)
}

// Total composes the force on one agent from the frozen step state: driving,
// avoidance, cohesion, wall, the classified goal force, herding, and the
// random fluctuation. It has no side effects beyond the memory write already
// performed by Classify.
func (m *Model) Total(a *crowd.Agent, neighbors []spatial.Neighbor, wallDist float64, wallNormal crowd.Vec, goal GoalDecision, rng *Fluctuation) crowd.Vec {
	p := &m.Params

	f := Driving(a, p)
	f = f.Add(Avoidance(neighbors, p))
	f = f.Add(Cohesion(neighbors, p))
	f = f.Add(Wall(a, wallDist, wallNormal, p))
	f = f.Add(goal.Force(a.Pos))
	f = f.Add(Herding(a, m.panics, p))
	f = f.Add(rng.Force(wallDist, -a.Vel.Dot(wallNormal), p))
	return f
}
