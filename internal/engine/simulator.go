package engine

import (
	"context"
	"fmt"

	"crowdsim/internal/crowd"
	"crowdsim/internal/forces"
	"crowdsim/internal/spatial"
)

// Config holds the run parameters of a simulation.
type Config struct {
	Dt      float64
	Steps   int
	Seed    int64
	Workers int

	// ValidateState stops the run when an agent state turns NaN/Inf.
	// Divergence itself is never masked; this only controls whether the
	// engine keeps stepping a diverged run.
	ValidateState bool
}

// Result collects the full trajectory of a run: one committed snapshot per
// step plus the initial state.
type Result struct {
	Snapshots  [][]crowd.Agent
	Times      []float64
	Metrics    map[string]float64
	Errors     []error
	StepsTaken int
}

// StepInput supplies external per-step inputs; it is called between steps
// with the upcoming step index and may reposition panic sources. Sources are
// immutable within the step.
type StepInput func(step int) []crowd.PanicSource

// Simulator advances a crowd scenario one synchronous step at a time.
// Within a step, force evaluation is distributed over parallel workers; the
// commit is the single synchronization point.
type Simulator struct {
	model *forces.Model
	grid  *spatial.Grid
	store *Store
	integ Euler

	// One generator per agent, seeded from Config.Seed, so draws are
	// deterministic regardless of worker scheduling.
	rngs []*forces.Fluctuation

	metrics   []crowd.Metric
	observers []crowd.Observer
	input     StepInput

	accel []crowd.Vec
	step  int
	time  float64
	cfg   Config
}

func New(model *forces.Model, agents []crowd.Agent, cfg Config) (*Simulator, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	rngs := make([]*forces.Fluctuation, len(agents))
	for i := range rngs {
		rngs[i] = forces.NewFluctuation(cfg.Seed + int64(i))
	}

	return &Simulator{
		model: model,
		grid:  spatial.NewGrid(model.Params.InteractionRadius, model.Params.MinSeparation),
		store: NewStore(agents),
		integ: Euler{Dt: cfg.Dt},
		rngs:  rngs,
		accel: make([]crowd.Vec, len(agents)),
		cfg:   cfg,
	}, nil
}

func validateConfig(cfg Config) error {
	if cfg.Dt <= 0 {
		return fmt.Errorf("%w: dt must be positive, got %f", crowd.ErrInvalidScenario, cfg.Dt)
	}
	if cfg.Steps <= 0 {
		return fmt.Errorf("%w: steps must be positive, got %d", crowd.ErrInvalidScenario, cfg.Steps)
	}
	return nil
}

func (s *Simulator) AddMetric(m crowd.Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o crowd.Observer) { s.observers = append(s.observers, o) }
func (s *Simulator) SetStepInput(fn StepInput)    { s.input = fn }

// Snapshot returns the current committed state. The slice is reused; callers
// that retain it across steps must copy.
func (s *Simulator) Snapshot() []crowd.Agent { return s.store.Snapshot() }

// Accelerations returns the accelerations computed in the last step, for
// external diagnostics.
func (s *Simulator) Accelerations() []crowd.Vec { return s.accel }

func (s *Simulator) Step() int     { return s.step }
func (s *Simulator) Time() float64 { return s.time }

// Advance runs exactly one step: freeze, classify, compute forces, integrate,
// commit. Every read in the force pass sees the same frozen snapshot.
func (s *Simulator) Advance() error {
	snap := s.store.Snapshot()

	if s.input != nil {
		s.model.SetPanicSources(s.input(s.step))
	}
	s.grid.Rebuild(snap)

	workers := s.cfg.Workers
	if workers <= 0 {
		workers = 1
	}

	ParallelFor(len(snap), 16, workers, func(start, end int) {
		buf := make([]spatial.Neighbor, 0, 32)
		for i := start; i < end; i++ {
			a := &snap[i]
			buf = s.grid.Neighbors(i, buf[:0])

			wallDist, wallNormal := s.model.WallQuery(a.Pos)
			goal := s.model.Classify(a, s.step)
			f := s.model.Total(a, buf, wallDist, wallNormal, goal, s.rngs[i])

			next, acc := s.integ.Step(*a, f)
			s.accel[i] = acc
			s.store.Stage(i, next)
		}
	})

	s.store.Commit()
	s.step++
	s.time += s.cfg.Dt

	committed := s.store.Snapshot()
	for _, m := range s.metrics {
		m.Observe(committed, s.time)
	}
	for _, o := range s.observers {
		o.OnStep(committed, s.step, s.time)
	}
	return nil
}

// Run executes the configured number of steps. Cancellation is step-granular:
// the context is checked between steps only. The result holds the initial
// snapshot plus one snapshot per committed step.
func (s *Simulator) Run(ctx context.Context) (*Result, error) {
	result := &Result{
		Snapshots: make([][]crowd.Agent, 0, s.cfg.Steps+1),
		Times:     make([]float64, 0, s.cfg.Steps+1),
		Metrics:   make(map[string]float64),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	result.Snapshots = append(result.Snapshots, s.store.Clone())
	result.Times = append(result.Times, s.time)

	for i := 0; i < s.cfg.Steps; i++ {
		select {
		case <-ctx.Done():
			return result, fmt.Errorf("%w: %w", crowd.ErrCanceled, ctx.Err())
		default:
		}

		if err := s.Advance(); err != nil {
			return result, err
		}
		result.StepsTaken++
		result.Snapshots = append(result.Snapshots, s.store.Clone())
		result.Times = append(result.Times, s.time)

		if s.cfg.ValidateState {
			if idx, ok := invalidAgent(s.store.Snapshot()); ok {
				result.Errors = append(result.Errors, &crowd.StepError{
					Step:    s.step,
					Time:    s.time,
					Agent:   idx,
					Wrapped: crowd.ErrInvalidState,
				})
				break
			}
		}
	}

	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
	return result, nil
}

func invalidAgent(agents []crowd.Agent) (int, bool) {
	for i := range agents {
		if !agents[i].Pos.IsValid() || !agents[i].Vel.IsValid() {
			return i, true
		}
	}
	return -1, false
}
