package capture

import (
	"github.com/abhisek/cinelingo/internal/exercise"
)

// DragDrop captures drag-and-drop onto targets, used by matching and
// ordered-drop activities. A submission fires only on a drop onto a
// target that is not locked.
type DragDrop struct {
	base
	held string
}

// NewDragDrop creates a drag-and-drop adapter.
func NewDragDrop(set exercise.QuestionSet, attempts Attempts, now Clock) *DragDrop {
	return &DragDrop{base: newBase(set, attempts, now)}
}

// Pick starts dragging an item. Placed items cannot be picked.
func (d *DragDrop) Pick(tag string) bool {
	if _, ok := d.set.Item(tag); !ok || d.placed(tag) {
		return false
	}
	d.held = tag
	return true
}

// Held returns the tag being dragged, or "".
func (d *DragDrop) Held() string {
	return d.held
}

// Cancel drops the held item back into the pool.
func (d *DragDrop) Cancel() {
	d.held = ""
}

// Drop releases the held item onto a target.
func (d *DragDrop) Drop(targetID string) (exercise.Submission, error) {
	if d.held == "" {
		return exercise.Submission{}, ErrNothingSelected
	}
	sub, err := d.DropItem(d.held, targetID)
	if err == nil {
		d.held = ""
	}
	return sub, err
}

// DropItem drops a specific item onto a target. Dropping onto a locked
// target is a no-op reported as exercise.ErrLocked, and an item that is
// not in the pool is a *exercise.ConfigError.
func (d *DragDrop) DropItem(tag, targetID string) (exercise.Submission, error) {
	if _, err := d.question(targetID); err != nil {
		return exercise.Submission{}, err
	}
	if d.attempts.IsLocked(targetID) {
		return exercise.Submission{}, exercise.ErrLocked
	}
	if err := d.knownItem(targetID, tag); err != nil {
		return exercise.Submission{}, err
	}
	if d.placed(tag) {
		return exercise.Submission{}, ErrAlreadyPlaced
	}
	return d.submission(targetID, exercise.Value{Tag: tag}), nil
}

// PairPicker captures click-to-match: select a left-hand question, then
// the right-hand item that goes with it.
type PairPicker struct {
	base
	selected string
}

// NewPairPicker creates a click-to-match adapter.
func NewPairPicker(set exercise.QuestionSet, attempts Attempts, now Clock) *PairPicker {
	return &PairPicker{base: newBase(set, attempts, now)}
}

// Select marks a question as the left half of the pair. Locked
// questions cannot be selected.
func (p *PairPicker) Select(questionID string) bool {
	if _, err := p.question(questionID); err != nil || p.attempts.IsLocked(questionID) {
		return false
	}
	p.selected = questionID
	return true
}

// Choose completes the pair with an item. The selection is cleared
// whether or not the pair is submitted.
func (p *PairPicker) Choose(tag string) (exercise.Submission, error) {
	if p.selected == "" {
		return exercise.Submission{}, ErrNothingSelected
	}
	qid := p.selected
	p.selected = ""

	if err := p.knownItem(qid, tag); err != nil {
		return exercise.Submission{}, err
	}
	if p.placed(tag) {
		return exercise.Submission{}, ErrAlreadyPlaced
	}
	if p.attempts.IsLocked(qid) {
		return exercise.Submission{}, exercise.ErrLocked
	}
	return p.submission(qid, exercise.Value{Tag: tag}), nil
}

// Clear drops the current selection.
func (p *PairPicker) Clear() {
	p.selected = ""
}
