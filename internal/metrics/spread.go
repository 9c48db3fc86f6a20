package metrics

import (
	"crowdsim/internal/crowd"
)

// Spread averages the crowd's mean squared distance to its centroid over
// every observed snapshot. Low values indicate clustering, high values a
// dispersed crowd.
type Spread struct {
	sum     float64
	samples int
}

func NewSpread() *Spread { return &Spread{} }

func (m *Spread) Name() string { return "spread" }

func (m *Spread) Observe(agents []crowd.Agent, t float64) {
	if len(agents) == 0 {
		return
	}
	var cx, cy float64
	for i := range agents {
		cx += agents[i].Pos.X
		cy += agents[i].Pos.Y
	}
	n := float64(len(agents))
	cx /= n
	cy /= n

	var total float64
	for i := range agents {
		dx := agents[i].Pos.X - cx
		dy := agents[i].Pos.Y - cy
		total += dx*dx + dy*dy
	}
	m.sum += total / n
	m.samples++
}

func (m *Spread) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.sum / float64(m.samples)
}

func (m *Spread) Reset() {
	m.sum = 0
	m.samples = 0
}
