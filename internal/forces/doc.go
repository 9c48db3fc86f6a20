// Package forces implements the Hirai-Tarui force model.
//
// Each agent's total force is the sum of:
//
//   - driving force along the current velocity (or desired heading at rest)
//   - avoidance of nearby agents, weighted by the piecewise kernels c1, c2
//   - cohesion toward the local group, weighted by h1, h2
//   - wall repulsion within a cutoff distance
//   - exactly one goal force: exit, visible sign, or memorized sign
//   - herding away from panic sources
//   - a random fluctuation from a seeded generator
//
// The goal-force branches are mutually exclusive by construction: [Model.Classify]
// evaluates exit, visible-sign and memory domains in strict priority order and
// returns a tagged [GoalDecision], so at most one branch ever contributes.
package forces
