package scenario

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"crowdsim/internal/crowd"
	"crowdsim/internal/walls"
)

// minimal returns the smallest scenario that passes validation.
func minimal() *Scenario {
	sc := Default()
	sc.Agents = []AgentSpec{{Mass: 1, Damping: 0.5, Heading: crowd.Vec{X: 1}}}
	return sc
}

func TestValidateAcceptsMinimal(t *testing.T) {
	if err := minimal().Validate(); err != nil {
		t.Fatal(err)
	}
}

func TestValidateFailures(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(sc *Scenario)
	}{
		{"zero dt", func(sc *Scenario) { sc.Dt = 0 }},
		{"zero steps", func(sc *Scenario) { sc.Steps = 0 }},
		{"no agents", func(sc *Scenario) { sc.Agents = nil }},
		{"avoidance breakpoints out of order", func(sc *Scenario) { sc.Params.Beta = sc.Params.NuDist + 1 }},
		{"epsilon below gamma", func(sc *Scenario) { sc.Params.Epsilon = sc.Params.Gamma }},
		{"cohesion breakpoints out of order", func(sc *Scenario) { sc.Params.Lam = sc.Params.Sigma }},
		{"interaction radius too small", func(sc *Scenario) { sc.Params.InteractionRadius = 0.1 }},
		{"non-positive min separation", func(sc *Scenario) { sc.Params.MinSeparation = 0 }},
		{"negative memory ttl", func(sc *Scenario) { sc.Params.MemoryTTL = -1 }},
		{"massless agent", func(sc *Scenario) { sc.Agents[0].Mass = 0 }},
		{"negative damping", func(sc *Scenario) { sc.Agents[0].Damping = -1 }},
		{"coincident agents", func(sc *Scenario) {
			sc.Agents = append(sc.Agents, sc.Agents[0])
		}},
		{"zero-length wall", func(sc *Scenario) {
			sc.Walls = []walls.Segment{{From: crowd.Vec{X: 1}, To: crowd.Vec{X: 1}}}
		}},
		{"sign without facing", func(sc *Scenario) {
			sc.Signs = []SignSpec{{ID: 1, Pos: crowd.Vec{X: 1}}}
		}},
		{"duplicate sign ids", func(sc *Scenario) {
			sc.Signs = []SignSpec{
				{ID: 1, Pos: crowd.Vec{X: 1}, Facing: crowd.Vec{X: -1}},
				{ID: 1, Pos: crowd.Vec{X: 2}, Facing: crowd.Vec{X: -1}},
			}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sc := minimal()
			tt.mutate(sc)
			if err := sc.Validate(); !errors.Is(err, crowd.ErrInvalidScenario) {
				t.Errorf("expected ErrInvalidScenario, got %v", err)
			}
		})
	}
}

func TestLoadSaveRoundTrip(t *testing.T) {
	sc := GetPreset("room")
	path := filepath.Join(t.TempDir(), "room.yaml")

	if err := Save(path, sc); err != nil {
		t.Fatal(err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	if got.Name != sc.Name || got.Steps != sc.Steps || got.Dt != sc.Dt {
		t.Errorf("header changed: %q %d %g", got.Name, got.Steps, got.Dt)
	}
	if len(got.Agents) != len(sc.Agents) || len(got.Walls) != len(sc.Walls) {
		t.Errorf("entities changed: %d agents, %d walls", len(got.Agents), len(got.Walls))
	}
	if got.Params.Beta != sc.Params.Beta || got.Params.Q1 != sc.Params.Q1 {
		t.Error("params changed across the round trip")
	}
	if err := got.Validate(); err != nil {
		t.Errorf("reloaded scenario invalid: %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}

func TestLoadFillsDefaults(t *testing.T) {
	// A file that sets only a name and one agent leaves the rest to Default.
	path := filepath.Join(t.TempDir(), "partial.yaml")
	doc := "name: partial\nagents:\n  - pos: {x: 0, y: 0}\n    mass: 1\n    heading: {x: 1, y: 0}\n"
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		t.Fatal(err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if got.Dt != DefaultDt || got.Workers != DefaultWorkers {
		t.Errorf("defaults not applied: dt=%g workers=%d", got.Dt, got.Workers)
	}
}

func TestPresetsBuild(t *testing.T) {
	if len(ListPresets()) == 0 {
		t.Fatal("no presets registered")
	}
	for name := range Presets {
		t.Run(name, func(t *testing.T) {
			sc := GetPreset(name)
			if sc == nil {
				t.Fatal("preset missing")
			}
			if err := sc.Validate(); err != nil {
				t.Fatal(err)
			}
			if _, err := sc.Build(); err != nil {
				t.Fatal(err)
			}
		})
	}
}

func TestGetPresetUnknown(t *testing.T) {
	if GetPreset("no-such-preset") != nil {
		t.Fatal("unknown preset should return nil")
	}
}

func TestBuildModelNormalizesDirections(t *testing.T) {
	sc := minimal()
	sc.Agents[0].Heading = crowd.Vec{X: 3, Y: 4}
	sc.Signs = []SignSpec{{ID: 1, Pos: crowd.Vec{X: 1}, Facing: crowd.Vec{X: -2}}}

	model, agents, err := sc.BuildModel()
	if err != nil {
		t.Fatal(err)
	}
	if n := agents[0].Heading.Norm(); n < 0.999 || n > 1.001 {
		t.Errorf("heading not normalized: %g", n)
	}
	if n := model.Signs[0].Facing.Norm(); n < 0.999 || n > 1.001 {
		t.Errorf("sign facing not normalized: %g", n)
	}
}

func TestBuildModelRejectsInvalid(t *testing.T) {
	sc := minimal()
	sc.Dt = -1
	if _, _, err := sc.BuildModel(); !errors.Is(err, crowd.ErrInvalidScenario) {
		t.Errorf("expected ErrInvalidScenario, got %v", err)
	}
}
