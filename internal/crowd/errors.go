package crowd

import (
	"errors"
	"fmt"
)

// Domain errors for simulation operations.
var (
	// ErrInvalidScenario indicates a scenario that fails validation before
	// any step runs.
	ErrInvalidScenario = errors.New("crowd: invalid scenario")

	// ErrInvalidState indicates an agent state containing NaN or Inf.
	ErrInvalidState = errors.New("crowd: invalid state (NaN or Inf detected)")

	// ErrIndexRange indicates an agent index outside the store.
	ErrIndexRange = errors.New("crowd: agent index out of range")

	// ErrCanceled indicates the run was interrupted between steps.
	ErrCanceled = errors.New("crowd: run canceled by context")
)

// StepError wraps an error with the step context it occurred in.
type StepError struct {
	Step    int
	Time    float64
	Agent   int
	Wrapped error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f, agent %d): %v", e.Step, e.Time, e.Agent, e.Wrapped)
}

func (e *StepError) Unwrap() error {
	return e.Wrapped
}
