// Package engine advances the crowd model in time.
//
// A step is a synchronous barrier: every force reads the same frozen
// snapshot, staged updates accumulate in a back buffer, and a single Commit
// makes them visible together. No partial update is observable mid-step.
package engine

import (
	"crowdsim/internal/crowd"
)

// Store owns the agent state as a double buffer. Snapshot is the frozen
// state every component reads during a step; Stage writes the next state;
// Commit swaps the buffers atomically with respect to the step loop.
type Store struct {
	cur  []crowd.Agent
	next []crowd.Agent
}

func NewStore(agents []crowd.Agent) *Store {
	s := &Store{
		cur:  make([]crowd.Agent, len(agents)),
		next: make([]crowd.Agent, len(agents)),
	}
	copy(s.cur, agents)
	copy(s.next, agents)
	return s
}

func (s *Store) Len() int { return len(s.cur) }

// Snapshot returns the frozen current state. Callers must not mutate it;
// the slice is reused after the next Commit.
func (s *Store) Snapshot() []crowd.Agent { return s.cur }

// Agent returns a pointer into the frozen snapshot.
func (s *Store) Agent(i int) (*crowd.Agent, error) {
	if i < 0 || i >= len(s.cur) {
		return nil, crowd.ErrIndexRange
	}
	return &s.cur[i], nil
}

// Stage records agent i's next-step state in the back buffer.
func (s *Store) Stage(i int, a crowd.Agent) error {
	if i < 0 || i >= len(s.next) {
		return crowd.ErrIndexRange
	}
	s.next[i] = a
	return nil
}

// Commit swaps the buffers, making all staged updates visible at once.
func (s *Store) Commit() {
	s.cur, s.next = s.next, s.cur
	copy(s.next, s.cur)
}

// Clone returns an independent copy of the current snapshot, safe to retain
// across steps.
func (s *Store) Clone() []crowd.Agent {
	c := make([]crowd.Agent, len(s.cur))
	copy(c, s.cur)
	return c
}
