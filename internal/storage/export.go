package storage

import (
	"encoding/json"
	"os"

	"crowdsim/internal/crowd"
)

type jsonAgent struct {
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
	VX float64 `json:"vx"`
	VY float64 `json:"vy"`
}

type jsonExport struct {
	ID       string             `json:"id"`
	Scenario string             `json:"scenario"`
	Dt       float64            `json:"dt"`
	Metrics  map[string]float64 `json:"metrics,omitempty"`
	Times    []float64          `json:"times"`
	Steps    [][]jsonAgent      `json:"steps"`
}

// ExportJSONStdout writes a saved trajectory to stdout as indented JSON.
func ExportJSONStdout(meta *RunMetadata, snaps [][]crowd.Agent, times []float64) error {
	out := jsonExport{
		ID:       meta.ID,
		Scenario: meta.Scenario,
		Dt:       meta.Dt,
		Metrics:  meta.Metrics,
		Times:    times,
		Steps:    make([][]jsonAgent, len(snaps)),
	}
	for i, snap := range snaps {
		out.Steps[i] = make([]jsonAgent, len(snap))
		for j, a := range snap {
			out.Steps[i][j] = jsonAgent{X: a.Pos.X, Y: a.Pos.Y, VX: a.Vel.X, VY: a.Vel.Y}
		}
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
