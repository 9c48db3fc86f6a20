// Package metrics provides per-run crowd statistics in the engine's
// Metric shape. Values are reduced over all observed snapshots.
package metrics

import (
	"crowdsim/internal/crowd"
)

// MeanSpeed averages agent speed over every observed snapshot.
type MeanSpeed struct {
	sum     float64
	samples int
}

func NewMeanSpeed() *MeanSpeed { return &MeanSpeed{} }

func (m *MeanSpeed) Name() string { return "mean_speed" }

func (m *MeanSpeed) Observe(agents []crowd.Agent, t float64) {
	for i := range agents {
		m.sum += agents[i].Vel.Norm()
		m.samples++
	}
}

func (m *MeanSpeed) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.sum / float64(m.samples)
}

func (m *MeanSpeed) Reset() {
	m.sum = 0
	m.samples = 0
}

// KineticEnergy averages the crowd's total kinetic energy per snapshot.
type KineticEnergy struct {
	sum     float64
	samples int
}

func NewKineticEnergy() *KineticEnergy { return &KineticEnergy{} }

func (m *KineticEnergy) Name() string { return "kinetic_energy" }

func (m *KineticEnergy) Observe(agents []crowd.Agent, t float64) {
	total := 0.0
	for i := range agents {
		v := agents[i].Vel
		total += 0.5 * agents[i].Mass * v.Dot(v)
	}
	m.sum += total
	m.samples++
}

func (m *KineticEnergy) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.sum / float64(m.samples)
}

func (m *KineticEnergy) Reset() {
	m.sum = 0
	m.samples = 0
}

// Evacuated tracks the highest number of agents simultaneously inside any
// exit's effective radius.
type Evacuated struct {
	exits         []crowd.Exit
	defaultRadius float64
	peak          int
}

func NewEvacuated(exits []crowd.Exit, defaultRadius float64) *Evacuated {
	return &Evacuated{exits: exits, defaultRadius: defaultRadius}
}

func (m *Evacuated) Name() string { return "evacuated" }

func (m *Evacuated) Observe(agents []crowd.Agent, t float64) {
	count := 0
	for i := range agents {
		for _, e := range m.exits {
			radius := e.Radius
			if radius <= 0 {
				radius = m.defaultRadius
			}
			if agents[i].Pos.Sub(e.Pos).Norm() <= radius {
				count++
				break
			}
		}
	}
	if count > m.peak {
		m.peak = count
	}
}

func (m *Evacuated) Value() float64 { return float64(m.peak) }

func (m *Evacuated) Reset() { m.peak = 0 }
