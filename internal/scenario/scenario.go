// Package scenario loads and validates crowd scenarios from YAML files.
//
// A scenario describes everything a run needs: initial agent states, wall
// segments, signs, exits, panic sources, the full parameter set, timestep
// and step count. Validation is fail-fast: every error below is reported
// before the first step executes.
package scenario

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"crowdsim/internal/crowd"
	"crowdsim/internal/engine"
	"crowdsim/internal/forces"
	"crowdsim/internal/walls"
)

const (
	DefaultDt      = 0.05
	DefaultSteps   = 400
	DefaultWorkers = 4
)

type AgentSpec struct {
	Pos      crowd.Vec `yaml:"pos"`
	Vel      crowd.Vec `yaml:"vel"`
	Mass     float64   `yaml:"mass"`
	Damping  float64   `yaml:"damping"`
	Heading  crowd.Vec `yaml:"heading"`
	Panicked bool      `yaml:"panicked"`
}

type SignSpec struct {
	ID     int       `yaml:"id"`
	Pos    crowd.Vec `yaml:"pos"`
	Facing crowd.Vec `yaml:"facing"`
	Radius float64   `yaml:"radius"`
}

type ExitSpec struct {
	ID       int       `yaml:"id"`
	Pos      crowd.Vec `yaml:"pos"`
	Radius   float64   `yaml:"radius"`
	Strength float64   `yaml:"strength"`
}

type PanicSpec struct {
	Pos      crowd.Vec `yaml:"pos"`
	Strength float64   `yaml:"strength"`
	Cutoff   float64   `yaml:"cutoff"`
}

type Scenario struct {
	Name    string  `yaml:"name"`
	Dt      float64 `yaml:"dt"`
	Steps   int     `yaml:"steps"`
	Seed    int64   `yaml:"seed"`
	Workers int     `yaml:"workers"`

	Params crowd.Params    `yaml:"params"`
	Agents []AgentSpec     `yaml:"agents"`
	Walls  []walls.Segment `yaml:"walls"`
	Signs  []SignSpec      `yaml:"signs"`
	Exits  []ExitSpec      `yaml:"exits"`
	Panics []PanicSpec     `yaml:"panics"`
}

func Default() *Scenario {
	return &Scenario{
		Name:    "default",
		Dt:      DefaultDt,
		Steps:   DefaultSteps,
		Workers: DefaultWorkers,
		Params:  crowd.DefaultParams(),
	}
}

func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	sc := Default()
	if err := yaml.Unmarshal(data, sc); err != nil {
		return nil, fmt.Errorf("%w: %v", crowd.ErrInvalidScenario, err)
	}
	return sc, nil
}

func Save(path string, sc *Scenario) error {
	data, err := yaml.Marshal(sc)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks everything that must hold before a run starts.
func (sc *Scenario) Validate() error {
	fail := func(format string, args ...any) error {
		return fmt.Errorf("%w: %s", crowd.ErrInvalidScenario, fmt.Sprintf(format, args...))
	}

	if sc.Dt <= 0 {
		return fail("dt must be positive, got %f", sc.Dt)
	}
	if sc.Steps <= 0 {
		return fail("steps must be positive, got %d", sc.Steps)
	}
	if len(sc.Agents) == 0 {
		return fail("scenario has no agents")
	}

	p := &sc.Params
	if p.Epsilon <= p.Gamma || p.Gamma < p.NuDist || p.NuDist <= p.Beta || p.Beta <= 0 {
		return fail("avoidance breakpoints must satisfy 0 < beta < nu_dist <= gamma < epsilon")
	}
	if p.Sigma <= p.Lam || p.Lam <= 0 {
		return fail("cohesion breakpoints must satisfy 0 < lam < sigma")
	}
	if p.InteractionRadius < math.Max(p.Epsilon, p.Sigma) {
		return fail("interaction_radius %.3f does not cover the force range %.3f",
			p.InteractionRadius, math.Max(p.Epsilon, p.Sigma))
	}
	if p.MinSeparation <= 0 {
		return fail("min_separation must be positive")
	}
	if p.MemoryTTL < 0 || p.MemoryCap < 0 {
		return fail("memory_ttl and memory_cap must be non-negative")
	}

	for i, a := range sc.Agents {
		if a.Mass <= 0 {
			return fail("agent %d has non-positive mass", i)
		}
		if a.Damping < 0 {
			return fail("agent %d has negative damping", i)
		}
		for j := 0; j < i; j++ {
			if sc.Agents[j].Pos == a.Pos {
				return fail("agents %d and %d are coincident at (%g, %g)", j, i, a.Pos.X, a.Pos.Y)
			}
		}
	}

	for i, w := range sc.Walls {
		if w.From == w.To {
			return fail("wall segment %d has zero length", i)
		}
	}
	for i, s := range sc.Signs {
		if s.Facing.IsZero() {
			return fail("sign %d (id %d) has no facing direction", i, s.ID)
		}
	}
	seen := make(map[int]bool)
	for i, s := range sc.Signs {
		if seen[s.ID] {
			return fail("duplicate sign id %d at index %d", s.ID, i)
		}
		seen[s.ID] = true
	}
	return nil
}

// Build turns a validated scenario into a ready simulator.
func (sc *Scenario) Build() (*engine.Simulator, error) {
	model, agents, err := sc.BuildModel()
	if err != nil {
		return nil, err
	}
	return engine.New(model, agents, engine.Config{
		Dt:            sc.Dt,
		Steps:         sc.Steps,
		Seed:          sc.Seed,
		Workers:       sc.Workers,
		ValidateState: true,
	})
}

// BuildModel validates the scenario and constructs the force model and
// initial agent states without binding them to a simulator, for callers
// that manage runs themselves (ensembles, live views).
func (sc *Scenario) BuildModel() (*forces.Model, []crowd.Agent, error) {
	if err := sc.Validate(); err != nil {
		return nil, nil, err
	}

	field, err := walls.NewField(sc.Walls)
	if err != nil {
		return nil, nil, err
	}

	agents := make([]crowd.Agent, len(sc.Agents))
	for i, spec := range sc.Agents {
		agents[i] = crowd.Agent{
			ID:       i,
			Pos:      spec.Pos,
			Vel:      spec.Vel,
			Mass:     spec.Mass,
			Damping:  spec.Damping,
			Heading:  spec.Heading.Unit(),
			Panicked: spec.Panicked,
			Memory:   crowd.NewSignMemory(sc.Params.MemoryTTL, sc.Params.MemoryCap),
		}
	}

	signs := make([]crowd.Sign, len(sc.Signs))
	for i, s := range sc.Signs {
		signs[i] = crowd.Sign{ID: s.ID, Pos: s.Pos, Facing: s.Facing.Unit(), Radius: s.Radius}
	}
	exits := make([]crowd.Exit, len(sc.Exits))
	for i, e := range sc.Exits {
		exits[i] = crowd.Exit{ID: e.ID, Pos: e.Pos, Radius: e.Radius, Strength: e.Strength}
	}
	panics := make([]crowd.PanicSource, len(sc.Panics))
	for i, h := range sc.Panics {
		panics[i] = crowd.PanicSource{Pos: h.Pos, Strength: h.Strength, Cutoff: h.Cutoff}
	}

	model := forces.NewModel(sc.Params, field, signs, exits, panics)
	return model, agents, nil
}

// BuildExits converts the exit specs, applying parameter defaults, for
// consumers like the evacuation metric.
func (sc *Scenario) BuildExits() []crowd.Exit {
	exits := make([]crowd.Exit, len(sc.Exits))
	for i, e := range sc.Exits {
		exits[i] = crowd.Exit{ID: e.ID, Pos: e.Pos, Radius: e.Radius, Strength: e.Strength}
	}
	return exits
}
