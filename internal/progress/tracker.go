// Package progress tracks which activities of a unit are complete.
package progress

import "slices"

// Tracker records completed activities. Completion is one-way: nothing
// removes an activity once recorded, and recording it again does nothing.
type Tracker struct {
	order     []string
	completed map[string]bool
	celebrate []func()
	fired     bool
}

// NewTracker creates a Tracker over the given activity IDs.
func NewTracker(activityIDs []string) *Tracker {
	return &Tracker{
		order:     slices.Clone(activityIDs),
		completed: make(map[string]bool, len(activityIDs)),
	}
}

// OnAllComplete registers a callback fired once, on the transition into
// all-complete.
func (t *Tracker) OnAllComplete(fn func()) {
	t.celebrate = append(t.celebrate, fn)
}

// RecordCompletion marks an activity complete. Unknown IDs are ignored.
// It reports whether the call changed anything.
func (t *Tracker) RecordCompletion(activityID string) bool {
	if t.completed[activityID] || !slices.Contains(t.order, activityID) {
		return false
	}
	t.completed[activityID] = true

	if !t.fired && t.IsAllComplete() {
		t.fired = true
		for _, fn := range t.celebrate {
			fn()
		}
	}
	return true
}

// IsComplete reports whether an activity has been completed.
func (t *Tracker) IsComplete(activityID string) bool {
	return t.completed[activityID]
}

// OverallCount returns how many activities are complete.
func (t *Tracker) OverallCount() int {
	return len(t.completed)
}

// Total returns the number of tracked activities.
func (t *Tracker) Total() int {
	return len(t.order)
}

// IsAllComplete reports whether every activity is complete.
func (t *Tracker) IsAllComplete() bool {
	return len(t.order) > 0 && len(t.completed) == len(t.order)
}

// Percent returns overall completion as 0-100.
func (t *Tracker) Percent() int {
	if len(t.order) == 0 {
		return 0
	}
	return len(t.completed) * 100 / len(t.order)
}

// Completed returns the completed IDs in activity order.
func (t *Tracker) Completed() []string {
	var out []string
	for _, id := range t.order {
		if t.completed[id] {
			out = append(out, id)
		}
	}
	return out
}
