// Package storage persists simulation runs: one directory per run holding
// metadata JSON and the full trajectory as CSV.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"crowdsim/internal/crowd"
	"crowdsim/internal/engine"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID        string             `json:"id"`
	Scenario  string             `json:"scenario"`
	Timestamp time.Time          `json:"timestamp"`
	Seed      int64              `json:"seed"`
	Dt        float64            `json:"dt"`
	Steps     int                `json:"steps"`
	Agents    int                `json:"agents"`
	Metrics   map[string]float64 `json:"metrics"`
}

// Save writes a run under a fresh id and returns it. The trajectory CSV has
// one row per snapshot: t, then x, y, vx, vy for each agent in order.
func (s *Store) Save(scenarioName string, dt float64, seed int64, result *engine.Result) (string, error) {
	runID := fmt.Sprintf("%s_%d", scenarioName, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	agents := 0
	if len(result.Snapshots) > 0 {
		agents = len(result.Snapshots[0])
	}

	meta := RunMetadata{
		ID:        runID,
		Scenario:  scenarioName,
		Timestamp: time.Now(),
		Seed:      seed,
		Dt:        dt,
		Steps:     result.StepsTaken,
		Agents:    agents,
		Metrics:   result.Metrics,
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "trajectory.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if len(result.Snapshots) == 0 {
		return runID, nil
	}

	header := []string{"time"}
	for i := 0; i < agents; i++ {
		header = append(header,
			fmt.Sprintf("a%d_x", i), fmt.Sprintf("a%d_y", i),
			fmt.Sprintf("a%d_vx", i), fmt.Sprintf("a%d_vy", i))
	}
	if err := w.Write(header); err != nil {
		return "", err
	}

	for i, snap := range result.Snapshots {
		row := []string{strconv.FormatFloat(result.Times[i], 'f', 6, 64)}
		for j := range snap {
			row = append(row,
				strconv.FormatFloat(snap[j].Pos.X, 'f', 6, 64),
				strconv.FormatFloat(snap[j].Pos.Y, 'f', 6, 64),
				strconv.FormatFloat(snap[j].Vel.X, 'f', 6, 64),
				strconv.FormatFloat(snap[j].Vel.Y, 'f', 6, 64))
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	w.Flush()
	return runID, w.Error()
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}
	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var runs []RunMetadata
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		meta, err := s.Load(e.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}

// LoadTrajectory reads back a saved run as per-step snapshots holding
// position and velocity only.
func (s *Store) LoadTrajectory(runID string) ([][]crowd.Agent, []float64, error) {
	f, err := os.Open(filepath.Join(s.baseDir, runID, "trajectory.csv"))
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	rows, err := r.ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(rows) < 2 {
		return nil, nil, nil
	}

	agents := (len(rows[0]) - 1) / 4
	snaps := make([][]crowd.Agent, 0, len(rows)-1)
	times := make([]float64, 0, len(rows)-1)

	for _, row := range rows[1:] {
		t, err := strconv.ParseFloat(row[0], 64)
		if err != nil {
			return nil, nil, err
		}
		snap := make([]crowd.Agent, agents)
		for j := 0; j < agents; j++ {
			vals := make([]float64, 4)
			for k := 0; k < 4; k++ {
				vals[k], err = strconv.ParseFloat(row[1+j*4+k], 64)
				if err != nil {
					return nil, nil, err
				}
			}
			snap[j] = crowd.Agent{
				ID:  j,
				Pos: crowd.Vec{X: vals[0], Y: vals[1]},
				Vel: crowd.Vec{X: vals[2], Y: vals[3]},
			}
		}
		snaps = append(snaps, snap)
		times = append(times, t)
	}
	return snaps, times, nil
}
