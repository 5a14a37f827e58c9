package capture

import (
	"slices"
	"strings"

	"github.com/abhisek/cinelingo/internal/exercise"
)

// FreeText captures typed answers. Typing only edits a draft; a
// submission fires on blur or explicit submit, never per keystroke.
type FreeText struct {
	base
	drafts    map[string]string
	submitted map[string]string
}

// NewFreeText creates a free-text adapter.
func NewFreeText(set exercise.QuestionSet, attempts Attempts, now Clock) *FreeText {
	return &FreeText{
		base:      newBase(set, attempts, now),
		drafts:    make(map[string]string),
		submitted: make(map[string]string),
	}
}

// Type replaces the draft for a question.
func (f *FreeText) Type(questionID, text string) {
	if f.attempts.IsLocked(questionID) {
		return
	}
	f.drafts[questionID] = text
}

// Draft returns the current draft.
func (f *FreeText) Draft(questionID string) string {
	return f.drafts[questionID]
}

// Blur submits the draft when focus leaves the field. Empty drafts and
// drafts unchanged since the last submission do not submit.
func (f *FreeText) Blur(questionID string) (exercise.Submission, bool) {
	draft := strings.TrimSpace(f.drafts[questionID])
	if draft == "" || f.attempts.IsLocked(questionID) {
		return exercise.Submission{}, false
	}
	if last, ok := f.submitted[questionID]; ok && last == draft {
		return exercise.Submission{}, false
	}
	return f.Submit(questionID)
}

// Submit submits the draft regardless of whether it changed.
func (f *FreeText) Submit(questionID string) (exercise.Submission, bool) {
	if _, err := f.question(questionID); err != nil {
		return exercise.Submission{}, false
	}
	draft := f.drafts[questionID]
	if strings.TrimSpace(draft) == "" || f.attempts.IsLocked(questionID) {
		return exercise.Submission{}, false
	}
	f.submitted[questionID] = strings.TrimSpace(draft)
	return f.submission(questionID, exercise.Value{Text: draft}), true
}

// Pending returns submissions for every non-empty draft that has not
// been submitted in its current form, in question order.
func (f *FreeText) Pending() []exercise.Submission {
	var subs []exercise.Submission
	for _, q := range f.set.Questions {
		if q.Widget != exercise.WidgetFreeText {
			continue
		}
		if sub, ok := f.Blur(q.ID); ok {
			subs = append(subs, sub)
		}
	}
	return subs
}

// Reset clears drafts and submission history.
func (f *FreeText) Reset() {
	clear(f.drafts)
	clear(f.submitted)
}

// Cloze captures dropdown cloze sentences. Checking requires every
// blank to be filled.
type Cloze struct {
	base
	blanks map[string][]string
}

// NewCloze creates a cloze adapter.
func NewCloze(set exercise.QuestionSet, attempts Attempts, now Clock) *Cloze {
	return &Cloze{
		base:   newBase(set, attempts, now),
		blanks: make(map[string][]string),
	}
}

// Set fills blank i (0-based) of a sentence with one of its options.
func (c *Cloze) Set(questionID string, i int, value string) error {
	q, err := c.question(questionID)
	if err != nil {
		return err
	}
	if i < 0 || i >= len(q.Blanks) {
		return &exercise.ConfigError{
			ActivityID: c.set.ActivityID,
			QuestionID: questionID,
			Reason:     "blank out of range",
		}
	}
	if c.attempts.IsLocked(questionID) {
		return exercise.ErrLocked
	}
	if !slices.ContainsFunc(q.Blanks[i], func(o exercise.Option) bool { return o.Value == value }) {
		return &exercise.ConfigError{
			ActivityID: c.set.ActivityID,
			QuestionID: questionID,
			Reason:     "unknown option " + value,
		}
	}
	row := c.blanks[questionID]
	if len(row) != len(q.Blanks) {
		row = make([]string, len(q.Blanks))
	}
	row[i] = value
	c.blanks[questionID] = row
	return nil
}

// Blanks returns the current blank values of a sentence.
func (c *Cloze) Blanks(questionID string) []string {
	return c.blanks[questionID]
}

// Check submits a sentence. Any empty blank yields an
// *exercise.IncompleteSubmissionError and no submission.
func (c *Cloze) Check(questionID string) (exercise.Submission, error) {
	q, err := c.question(questionID)
	if err != nil {
		return exercise.Submission{}, err
	}
	if c.attempts.IsLocked(questionID) {
		return exercise.Submission{}, exercise.ErrLocked
	}
	v := exercise.Value{Parts: append([]string(nil), c.blanks[questionID]...)}
	if missing := v.MissingParts(len(q.Blanks)); len(missing) > 0 {
		return exercise.Submission{}, &exercise.IncompleteSubmissionError{
			QuestionID: questionID,
			Missing:    missing,
		}
	}
	return c.submission(questionID, v), nil
}

// Reset clears every blank.
func (c *Cloze) Reset() {
	clear(c.blanks)
}
