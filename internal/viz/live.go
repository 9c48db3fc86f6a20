// Package viz renders a running crowd simulation in the terminal.
package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"crowdsim/internal/crowd"
	"crowdsim/internal/engine"
	"crowdsim/internal/scenario"
)

const (
	canvasWidth  = 80
	canvasHeight = 24
)

type TickMsg time.Time

// Model drives a simulator step-by-step from bubbletea ticks and draws the
// committed snapshot after every step.
type Model struct {
	sim       *engine.Simulator
	sc        *scenario.Scenario
	frameRate int
	running   bool
	done      bool

	minX, minY, maxX, maxY float64
}

func NewModel(sim *engine.Simulator, sc *scenario.Scenario, frameRate int) Model {
	m := Model{
		sim:       sim,
		sc:        sc,
		frameRate: frameRate,
		running:   true,
	}
	m.fitBounds()
	return m
}

// fitBounds frames the scenario: walls, exits and initial agents, padded.
func (m *Model) fitBounds() {
	m.minX, m.minY = -1, -1
	m.maxX, m.maxY = 1, 1
	grow := func(v crowd.Vec) {
		if v.X < m.minX {
			m.minX = v.X
		}
		if v.X > m.maxX {
			m.maxX = v.X
		}
		if v.Y < m.minY {
			m.minY = v.Y
		}
		if v.Y > m.maxY {
			m.maxY = v.Y
		}
	}
	for _, s := range m.sc.Walls {
		grow(s.From)
		grow(s.To)
	}
	for _, e := range m.sc.Exits {
		grow(e.Pos)
	}
	for _, a := range m.sim.Snapshot() {
		grow(a.Pos)
	}
	m.minX--
	m.minY--
	m.maxX++
	m.maxY++
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.frameRate), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
			if m.running && !m.done {
				return m, m.tick()
			}
			return m, nil
		}
	case TickMsg:
		if !m.running || m.done {
			return m, nil
		}
		if m.sim.Step() >= m.sc.Steps {
			m.done = true
			return m, nil
		}
		m.sim.Advance()
		return m, m.tick()
	}
	return m, nil
}

func (m Model) project(p crowd.Vec) (int, int, bool) {
	x := int(float64(canvasWidth-1) * (p.X - m.minX) / (m.maxX - m.minX))
	// Terminal rows grow downward.
	y := canvasHeight - 1 - int(float64(canvasHeight-1)*(p.Y-m.minY)/(m.maxY-m.minY))
	ok := x >= 0 && x < canvasWidth && y >= 0 && y < canvasHeight
	return x, y, ok
}

func (m Model) View() string {
	canvas := make([][]rune, canvasHeight)
	for i := range canvas {
		canvas[i] = make([]rune, canvasWidth)
		for j := range canvas[i] {
			canvas[i][j] = ' '
		}
	}

	for _, s := range m.sc.Walls {
		steps := 2 * canvasWidth
		d := s.To.Sub(s.From)
		for i := 0; i <= steps; i++ {
			p := s.From.Add(d.Scale(float64(i) / float64(steps)))
			if x, y, ok := m.project(p); ok {
				canvas[y][x] = '#'
			}
		}
	}
	for _, e := range m.sc.Exits {
		if x, y, ok := m.project(e.Pos); ok {
			canvas[y][x] = 'E'
		}
	}
	for _, s := range m.sc.Signs {
		if x, y, ok := m.project(s.Pos); ok {
			canvas[y][x] = 'S'
		}
	}
	for _, h := range m.sc.Panics {
		if x, y, ok := m.project(h.Pos); ok {
			canvas[y][x] = '*'
		}
	}
	for _, a := range m.sim.Snapshot() {
		if x, y, ok := m.project(a.Pos); ok {
			if a.Panicked {
				canvas[y][x] = '!'
			} else {
				canvas[y][x] = 'o'
			}
		}
	}

	var b strings.Builder
	for _, row := range canvas {
		b.WriteString(string(row))
		b.WriteByte('\n')
	}

	status := StatusRunning.Render("running")
	if m.done {
		status = StatusDone.Render("done")
	} else if !m.running {
		status = StatusPaused.Render("paused")
	}

	header := TitleStyle.Render(fmt.Sprintf("crowdsim: %s", m.sc.Name))
	info := InfoStyle.Render(fmt.Sprintf("step %d/%d  t=%.2fs  %s",
		m.sim.Step(), m.sc.Steps, m.sim.Time(), status))
	help := HelpStyle.Render("space pause/resume · q quit")

	return header + "\n" + CanvasStyle.Render(b.String()) + "\n" + info + "\n" + help + "\n"
}
