package engine

import (
	"context"
	"sync"

	"crowdsim/internal/crowd"
	"crowdsim/internal/forces"
)

// Ensemble runs the same scenario numRuns times with consecutive seeds, one
// goroutine per run. Each run gets its own simulator and model so nothing is
// shared but the immutable scenario entities.
type Ensemble struct {
	params    crowd.Params
	walls     crowd.WallField
	signs     []crowd.Sign
	exits     []crowd.Exit
	panics    []crowd.PanicSource
	agents    []crowd.Agent
	numRuns   int
	seedStart int64
}

func NewEnsemble(model *forces.Model, agents []crowd.Agent, numRuns int, seedStart int64) *Ensemble {
	return &Ensemble{
		params:    model.Params,
		walls:     model.Walls,
		signs:     model.Signs,
		exits:     model.Exits,
		panics:    model.PanicSources(),
		agents:    agents,
		numRuns:   numRuns,
		seedStart: seedStart,
	}
}

func (e *Ensemble) Run(ctx context.Context, cfg Config) ([]*Result, error) {
	results := make([]*Result, e.numRuns)
	errs := make([]error, e.numRuns)

	var wg sync.WaitGroup
	for i := 0; i < e.numRuns; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			cfgCopy := cfg
			cfgCopy.Seed = e.seedStart + int64(idx)

			agents := make([]crowd.Agent, len(e.agents))
			copy(agents, e.agents)
			for j := range agents {
				if e.agents[j].Memory != nil {
					agents[j].Memory = crowd.NewSignMemory(e.params.MemoryTTL, e.params.MemoryCap)
				}
			}

			model := forces.NewModel(e.params, e.walls, e.signs, e.exits, e.panics)
			s, err := New(model, agents, cfgCopy)
			if err != nil {
				errs[idx] = err
				return
			}
			results[idx], errs[idx] = s.Run(ctx)
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return results, nil
}
