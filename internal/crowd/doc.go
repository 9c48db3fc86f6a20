// Package crowd defines the core types of the pedestrian crowd model.
//
// The model follows Hirai and Tarui (1975): each agent accelerates under the
// sum of social, environmental and random forces, damped by a viscosity term:
//
//	dv/dt = (F_total - nu*v) / m
//
// The package holds only data and small value-type helpers:
//
//   - [Agent]: position, velocity, mass, damping, heading, sign memory
//   - [Sign], [Exit], [PanicSource]: scenario entities, immutable within a step
//   - [Params]: the full tunable constant set shared by all force kernels
//   - [WallField]: the wall-geometry collaborator interface
//   - [Metric], [Observer]: per-step instrumentation hooks
//
// # Thread Safety
//
// Agents are plain values mutated only by the engine between steps. The one
// exception is each agent's [SignMemory], which is written during a step by
// the region classifier; only the owning agent's classifier ever touches it,
// so concurrent per-agent force evaluation needs no locking.
package crowd
