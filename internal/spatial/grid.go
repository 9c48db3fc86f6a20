// Package spatial provides neighbor enumeration for the force pass.
//
// A cell-list grid keyed by integer cell coordinates gives O(1) average
// neighbor queries without bounding the world. Cell size equals the
// interaction radius, so a query only visits the 3x3 block around an agent.
package spatial

import (
	"math"

	"crowdsim/internal/crowd"
)

// Neighbor is one ordered pair (i, j) as seen from agent i: distance r_ij,
// the unsigned angle theta between i's facing and the vector to j, and the
// unit vector from i to j. Distances below the clamp are reported at the
// clamp so downstream kernels never divide by zero.
type Neighbor struct {
	Index int
	Dist  float64
	Theta float64
	Dir   crowd.Vec
}

type cellKey struct{ cx, cy int }

// Grid is a cell list over agent positions, rebuilt once per step from the
// frozen snapshot.
type Grid struct {
	radius   float64
	minSep   float64
	inv      float64
	cells    map[cellKey][]int
	agents   []crowd.Agent
	scratch  []Neighbor
	perAgent int
}

func NewGrid(interactionRadius, minSeparation float64) *Grid {
	return &Grid{
		radius: interactionRadius,
		minSep: minSeparation,
		inv:    1.0 / interactionRadius,
		cells:  make(map[cellKey][]int),
	}
}

// Rebuild indexes the snapshot. The slice is retained until the next
// Rebuild and must stay frozen for the duration of the step.
func (g *Grid) Rebuild(agents []crowd.Agent) {
	for k, c := range g.cells {
		if len(c) == 0 {
			delete(g.cells, k)
			continue
		}
		g.cells[k] = c[:0]
	}
	g.agents = agents
	for i := range agents {
		k := g.key(agents[i].Pos)
		g.cells[k] = append(g.cells[k], i)
	}
}

func (g *Grid) key(p crowd.Vec) cellKey {
	return cellKey{int(math.Floor(p.X * g.inv)), int(math.Floor(p.Y * g.inv))}
}

// Neighbors appends all agents within the interaction radius of agent i to
// buf and returns it. Self-pairs are excluded. The returned set is symmetric:
// j appears in i's set exactly when i appears in j's, because both tests use
// the same frozen positions and the same radius.
func (g *Grid) Neighbors(i int, buf []Neighbor) []Neighbor {
	a := g.agents[i]
	facing := a.Vel
	if facing.Norm() == 0 {
		facing = a.Heading
	}

	k := g.key(a.Pos)
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			for _, j := range g.cells[cellKey{k.cx + dx, k.cy + dy}] {
				if j == i {
					continue
				}
				d := g.agents[j].Pos.Sub(a.Pos)
				r := d.Norm()
				if r > g.radius {
					continue
				}
				var dir crowd.Vec
				if r < g.minSep {
					// Coincident agents: clamp the distance and take a
					// deterministic direction from the pair order.
					r = g.minSep
					dir = crowd.Vec{X: 1}
					if j < i {
						dir = crowd.Vec{X: -1}
					}
				} else {
					dir = d.Scale(1 / r)
				}
				buf = append(buf, Neighbor{
					Index: j,
					Dist:  r,
					Theta: crowd.AngleBetween(facing, d),
					Dir:   dir,
				})
			}
		}
	}
	return buf
}
