// Package capture turns widget interactions into normalized submissions.
// Adapters never score answers; they only decide when an interaction
// becomes a submission.
package capture

import (
	"errors"
	"time"

	"github.com/abhisek/cinelingo/internal/exercise"
)

var (
	// ErrNothingSelected is returned when the second half of a pair is
	// chosen before the first.
	ErrNothingSelected = errors.New("nothing selected")

	// ErrAlreadyPlaced is returned when an item is already correctly placed.
	ErrAlreadyPlaced = errors.New("item already placed")
)

// Attempts is the read-only view of attempt state the adapters need.
type Attempts interface {
	IsLocked(unitID string) bool
	Entry(unitID string) exercise.Entry
}

// Clock returns the current time.
type Clock func() time.Time

type base struct {
	set      exercise.QuestionSet
	attempts Attempts
	now      Clock
}

func newBase(set exercise.QuestionSet, attempts Attempts, now Clock) base {
	if now == nil {
		now = time.Now
	}
	return base{set: set, attempts: attempts, now: now}
}

func (b base) question(id string) (exercise.Question, error) {
	q, ok := b.set.Question(id)
	if !ok {
		return q, &exercise.ConfigError{
			ActivityID: b.set.ActivityID,
			QuestionID: id,
			Reason:     "question not found",
		}
	}
	return q, nil
}

func (b base) submission(questionID string, v exercise.Value) exercise.Submission {
	return exercise.Submission{
		ActivityID: b.set.ActivityID,
		QuestionID: questionID,
		Value:      v,
		Timestamp:  b.now(),
	}
}

func (b base) knownItem(questionID, tag string) error {
	if _, ok := b.set.Item(tag); !ok {
		return &exercise.ConfigError{
			ActivityID: b.set.ActivityID,
			QuestionID: questionID,
			Reason:     "unknown item " + tag,
		}
	}
	return nil
}

// placed reports whether an item tag already sits on a correctly
// answered target.
func (b base) placed(tag string) bool {
	for _, q := range b.set.Questions {
		e := b.attempts.Entry(q.ID)
		if e.Verdict == exercise.Correct && e.Value.Tag == tag {
			return true
		}
	}
	return false
}

// Pool returns the items not yet correctly placed, in configured order.
func Pool(set exercise.QuestionSet, attempts Attempts) []exercise.Item {
	b := base{set: set, attempts: attempts}
	var out []exercise.Item
	for _, it := range set.Items {
		if !b.placed(it.Tag) {
			out = append(out, it)
		}
	}
	return out
}
