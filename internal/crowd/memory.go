package crowd

// MemoryEntry is a remembered sign sighting: where the sign was and the step
// it was last seen. The remembered position is targeted by the memory force
// even if the sign itself has since become invisible.
type MemoryEntry struct {
	Pos  Vec
	Step int
}

// SignMemory is a bounded per-agent map of sign sightings with step-based
// expiry. Entries older than TTL steps are dropped on access; when Cap is
// exceeded the oldest entry is evicted.
type SignMemory struct {
	ttl     int
	cap     int
	entries map[int]MemoryEntry
}

func NewSignMemory(ttl, cap int) *SignMemory {
	return &SignMemory{
		ttl:     ttl,
		cap:     cap,
		entries: make(map[int]MemoryEntry),
	}
}

func (m *SignMemory) Len() int { return len(m.entries) }

// Record stores a sighting, refreshing any existing entry for the same sign.
func (m *SignMemory) Record(signID int, pos Vec, step int) {
	if _, ok := m.entries[signID]; !ok && m.cap > 0 && len(m.entries) >= m.cap {
		m.evictOldest()
	}
	m.entries[signID] = MemoryEntry{Pos: pos, Step: step}
}

// Recall returns the most recently recorded unexpired entry. Expired entries
// are pruned as a side effect.
func (m *SignMemory) Recall(step int) (MemoryEntry, bool) {
	var best MemoryEntry
	found := false
	for id, e := range m.entries {
		if m.ttl > 0 && step-e.Step > m.ttl {
			delete(m.entries, id)
			continue
		}
		if !found || e.Step > best.Step {
			best = e
			found = true
		}
	}
	return best, found
}

func (m *SignMemory) evictOldest() {
	oldestID := -1
	oldestStep := 0
	for id, e := range m.entries {
		if oldestID < 0 || e.Step < oldestStep {
			oldestID = id
			oldestStep = e.Step
		}
	}
	if oldestID >= 0 {
		delete(m.entries, oldestID)
	}
}
