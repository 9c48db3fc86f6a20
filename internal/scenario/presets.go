package scenario

import (
	"crowdsim/internal/crowd"
	"crowdsim/internal/walls"
)

// Presets are built-in scenarios usable without a YAML file.
var Presets = map[string]func() *Scenario{
	"corridor":   corridor,
	"room":       room,
	"panic-hall": panicHall,
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}

func GetPreset(name string) *Scenario {
	fn, ok := Presets[name]
	if !ok {
		return nil
	}
	return fn()
}

// corridor: two files of agents walking down a 20x4 corridor toward an exit
// at the far end.
func corridor() *Scenario {
	sc := Default()
	sc.Name = "corridor"
	sc.Steps = 600
	sc.Walls = []walls.Segment{
		{From: crowd.Vec{X: 0, Y: 0}, To: crowd.Vec{X: 20, Y: 0}},
		{From: crowd.Vec{X: 0, Y: 4}, To: crowd.Vec{X: 20, Y: 4}},
	}
	sc.Exits = []ExitSpec{{ID: 1, Pos: crowd.Vec{X: 20, Y: 2}, Radius: 3, Strength: 0.8}}
	for i := 0; i < 8; i++ {
		y := 1.2
		if i%2 == 1 {
			y = 2.8
		}
		sc.Agents = append(sc.Agents, AgentSpec{
			Pos:     crowd.Vec{X: 1 + 1.5*float64(i/2), Y: y},
			Mass:    1.0,
			Damping: 0.5,
			Heading: crowd.Vec{X: 1},
		})
	}
	return sc
}

// room: a closed 10x10 room with one doorway exit and a sign guiding agents
// that start facing away from it.
func room() *Scenario {
	sc := Default()
	sc.Name = "room"
	sc.Steps = 800
	sc.Walls = []walls.Segment{
		{From: crowd.Vec{X: 0, Y: 0}, To: crowd.Vec{X: 10, Y: 0}},
		{From: crowd.Vec{X: 0, Y: 10}, To: crowd.Vec{X: 4, Y: 10}},
		{From: crowd.Vec{X: 6, Y: 10}, To: crowd.Vec{X: 10, Y: 10}},
		{From: crowd.Vec{X: 0, Y: 0}, To: crowd.Vec{X: 0, Y: 10}},
		{From: crowd.Vec{X: 10, Y: 0}, To: crowd.Vec{X: 10, Y: 10}},
	}
	sc.Signs = []SignSpec{
		{ID: 1, Pos: crowd.Vec{X: 5, Y: 8.5}, Facing: crowd.Vec{Y: -1}, Radius: 4},
	}
	sc.Exits = []ExitSpec{{ID: 1, Pos: crowd.Vec{X: 5, Y: 10}, Radius: 2.5, Strength: 0.8}}
	for i := 0; i < 10; i++ {
		sc.Agents = append(sc.Agents, AgentSpec{
			Pos:     crowd.Vec{X: 1.5 + float64(i%5)*1.6, Y: 2 + float64(i/5)*1.5},
			Mass:    1.0,
			Damping: 0.5,
			Heading: crowd.Vec{Y: 1},
		})
	}
	return sc
}

// panicHall: a hall with a panic source at the center pushing a panicked
// crowd toward exits on both ends.
func panicHall() *Scenario {
	sc := Default()
	sc.Name = "panic-hall"
	sc.Steps = 600
	sc.Walls = []walls.Segment{
		{From: crowd.Vec{X: 0, Y: 0}, To: crowd.Vec{X: 30, Y: 0}},
		{From: crowd.Vec{X: 0, Y: 8}, To: crowd.Vec{X: 30, Y: 8}},
	}
	sc.Exits = []ExitSpec{
		{ID: 1, Pos: crowd.Vec{X: 0, Y: 4}, Radius: 4, Strength: 0.8},
		{ID: 2, Pos: crowd.Vec{X: 30, Y: 4}, Radius: 4, Strength: 0.8},
	}
	sc.Panics = []PanicSpec{{Pos: crowd.Vec{X: 15, Y: 4}, Strength: 1.5, Cutoff: 12}}
	for i := 0; i < 14; i++ {
		sc.Agents = append(sc.Agents, AgentSpec{
			Pos:      crowd.Vec{X: 9 + float64(i%7)*2, Y: 2.5 + float64(i/7)*3},
			Mass:     1.0,
			Damping:  0.5,
			Heading:  crowd.Vec{X: 1},
			Panicked: true,
		})
	}
	return sc
}
