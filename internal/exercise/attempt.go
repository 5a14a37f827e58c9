package exercise

// Entry is the recorded state of one scoring unit.
type Entry struct {
	Value    Value
	Verdict  Verdict
	Locked   bool
	Attempts int
}

// AttemptState records submissions for one activity instance, keyed by
// unit ID. The zero value is not usable; use NewAttemptState.
type AttemptState struct {
	entries map[string]Entry
}

// NewAttemptState creates an empty AttemptState.
func NewAttemptState() *AttemptState {
	return &AttemptState{entries: make(map[string]Entry)}
}

// Entry returns the entry for a unit, or an Unanswered zero entry.
func (s *AttemptState) Entry(unitID string) Entry {
	if s == nil {
		return Entry{}
	}
	return s.entries[unitID]
}

// Set stores the entry for a unit. Correct entries are always locked.
func (s *AttemptState) Set(unitID string, e Entry) {
	if e.Verdict == Correct {
		e.Locked = true
	}
	s.entries[unitID] = e
}

// IsLocked reports whether further submissions to the unit are ignored.
func (s *AttemptState) IsLocked(unitID string) bool {
	return s.Entry(unitID).Locked
}

// CorrectCount returns the number of units with a Correct verdict.
func (s *AttemptState) CorrectCount() int {
	if s == nil {
		return 0
	}
	n := 0
	for _, e := range s.entries {
		if e.Verdict == Correct {
			n++
		}
	}
	return n
}

// Len returns the number of units that have been answered.
func (s *AttemptState) Len() int {
	if s == nil {
		return 0
	}
	return len(s.entries)
}

// Clear discards every entry.
func (s *AttemptState) Clear() {
	clear(s.entries)
}
