package crowd

import "math"

// Agent is the full per-pedestrian state. Position and velocity are advanced
// by the integrator; Memory is written by the region classifier; everything
// else is fixed at scenario load.
type Agent struct {
	ID      int
	Pos     Vec
	Vel     Vec
	Mass    float64
	Damping float64

	// Heading is the desired direction of travel, used for the driving
	// force whenever speed is below Params.SpeedEps.
	Heading Vec

	// Panicked marks agents that respond to panic sources.
	Panicked bool

	Memory *SignMemory
}

// Sign is a directional guidance sign. Facing is the direction the sign
// points into the room; an agent must stand inside the sign's facing cone
// and hold the sign inside its own field of view to see it.
type Sign struct {
	ID     int
	Pos    Vec
	Facing Vec
	// Radius overrides Params.VisionRadius for this sign when positive.
	Radius float64
}

// Exit is an attracting region. Agents inside Radius are in the exit domain
// and feel a constant pull of magnitude Strength toward Pos.
type Exit struct {
	ID       int
	Pos      Vec
	Radius   float64
	Strength float64
}

// PanicSource repels (or attracts, for negative Strength) panicked agents
// within Cutoff. Sources may be moved between steps but not within one.
type PanicSource struct {
	Pos      Vec
	Strength float64
	Cutoff   float64
}

// WallField is the wall-geometry collaborator. The core never stores wall
// geometry; it only asks for the nearest wall and for sign visibility.
type WallField interface {
	// NearestWall returns the distance from p to the closest wall and the
	// outward unit normal (pointing from the wall toward p). When no wall
	// exists it returns (+Inf, zero vector).
	NearestWall(p Vec) (float64, Vec)

	// LineOfSight reports whether the segment a-b crosses no wall.
	LineOfSight(a, b Vec) bool
}

// Params is the complete tunable constant set of the force model, shared
// read-only by every kernel for the duration of a run.
type Params struct {
	// Driving force magnitude.
	A float64 `yaml:"a"`
	// SpeedEps is the speed below which the driving force falls back to
	// the agent's desired heading.
	SpeedEps float64 `yaml:"speed_eps"`

	// Wall repulsion: active within distance D, velocity-dependent gain W0,
	// constant push W1.
	D  float64 `yaml:"d"`
	W0 float64 `yaml:"w0"`
	W1 float64 `yaml:"w1"`

	// Avoidance distance profile c1: value Cn0 at contact, zero at Beta,
	// plateau Cr0 from NuDist to Gamma, zero again at Epsilon.
	Cn0     float64 `yaml:"cn0"`
	Cr0     float64 `yaml:"cr0"`
	Beta    float64 `yaml:"beta"`
	NuDist  float64 `yaml:"nu_dist"`
	Gamma   float64 `yaml:"gamma"`
	Epsilon float64 `yaml:"epsilon"`

	// Angular profiles c2/h2: plateau inside Phi1, decays to zero at Phi4.
	Cphi1 float64 `yaml:"cphi1"`
	Cphi2 float64 `yaml:"cphi2"`
	Phi1  float64 `yaml:"phi1"`
	Phi2  float64 `yaml:"phi2"`
	Phi3  float64 `yaml:"phi3"`
	Phi4  float64 `yaml:"phi4"`

	// Cohesion distance profile h1: constant Hr0 up to Lam, zero at Sigma.
	Hr0   float64 `yaml:"hr0"`
	Lam   float64 `yaml:"lam"`
	Sigma float64 `yaml:"sigma"`
	Hphi1 float64 `yaml:"hphi1"`
	Hphi2 float64 `yaml:"hphi2"`

	// Sign perception and attraction.
	EtaSign      float64 `yaml:"eta_sign"`
	EtaMem       float64 `yaml:"eta_mem"`
	VisionRadius float64 `yaml:"vision_radius"`
	FovAngle     float64 `yaml:"fov_angle"`
	SignFov      float64 `yaml:"sign_fov"`

	// Exit and panic defaults, applied to entities that leave theirs unset.
	ExitStrength float64 `yaml:"exit_strength"`
	ExitRadius   float64 `yaml:"exit_radius"`
	Strength     float64 `yaml:"strength"`
	Cutoff       float64 `yaml:"cutoff"`

	// Random fluctuation magnitudes.
	Q1 float64 `yaml:"q1"`
	Q2 float64 `yaml:"q2"`

	// Values the source model leaves unspecified, exposed as configuration.
	InteractionRadius float64 `yaml:"interaction_radius"`
	MinSeparation     float64 `yaml:"min_separation"`
	MemoryTTL         int     `yaml:"memory_ttl"`
	MemoryCap         int     `yaml:"memory_cap"`
}

// DefaultParams returns the reference constants of the Hirai-Tarui model.
func DefaultParams() Params {
	return Params{
		A:        1.0,
		SpeedEps: 1e-3,

		D:  1.0,
		W0: 6.0,
		W1: 6.0,

		Cn0:     -0.5,
		Cr0:     1.0,
		Beta:    0.5,
		NuDist:  1.0,
		Gamma:   2.0,
		Epsilon: 3.0,

		Cphi1: 1.0,
		Cphi2: 0.5,
		Phi1:  math.Pi / 6,
		Phi2:  math.Pi / 3,
		Phi3:  2 * math.Pi / 3,
		Phi4:  5 * math.Pi / 6,

		Hr0:   1.0,
		Lam:   1.5,
		Sigma: 2.5,
		Hphi1: 1.0,
		Hphi2: 0.5,

		EtaSign:      1.0,
		EtaMem:       1.0,
		VisionRadius: 1.5,
		FovAngle:     2 * math.Pi / 3,
		SignFov:      math.Pi / 2,

		ExitStrength: 0.5,
		ExitRadius:   4.0,
		Strength:     1.0,
		Cutoff:       20.0,

		Q1: 1.0,
		Q2: 2.0,

		InteractionRadius: 3.0,
		MinSeparation:     1e-6,
		MemoryTTL:         200,
		MemoryCap:         8,
	}
}

// Metric consumes committed snapshots and reduces them to a scalar.
type Metric interface {
	Name() string
	Observe(agents []Agent, t float64)
	Value() float64
	Reset()
}

// Observer receives every committed snapshot.
type Observer interface {
	OnStep(agents []Agent, step int, t float64)
}
