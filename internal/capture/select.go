package capture

import (
	"slices"

	"github.com/abhisek/cinelingo/internal/exercise"
)

// SelectGroup captures radio and checkbox-grid selections. Choosing or
// toggling never submits; Check batches every selection at check time.
type SelectGroup struct {
	base
	choices map[string]string
	cells   map[string]map[string]bool
}

// NewSelectGroup creates a select-group adapter.
func NewSelectGroup(set exercise.QuestionSet, attempts Attempts, now Clock) *SelectGroup {
	return &SelectGroup{
		base:    newBase(set, attempts, now),
		choices: make(map[string]string),
		cells:   make(map[string]map[string]bool),
	}
}

// Choose selects a radio option. Locked questions ignore the choice.
func (g *SelectGroup) Choose(questionID, value string) error {
	q, err := g.question(questionID)
	if err != nil {
		return err
	}
	if g.attempts.IsLocked(questionID) {
		return exercise.ErrLocked
	}
	if !slices.ContainsFunc(q.Options, func(o exercise.Option) bool { return o.Value == value }) {
		return &exercise.ConfigError{
			ActivityID: g.set.ActivityID,
			QuestionID: questionID,
			Reason:     "unknown option " + value,
		}
	}
	g.choices[questionID] = value
	return nil
}

// Choice returns the selected radio option, or "".
func (g *SelectGroup) Choice(questionID string) string {
	return g.choices[questionID]
}

// ChooseNow selects and submits at once, for immediate single-selects.
func (g *SelectGroup) ChooseNow(questionID, value string) (exercise.Submission, error) {
	if err := g.Choose(questionID, value); err != nil {
		return exercise.Submission{}, err
	}
	return g.submission(questionID, exercise.Value{Text: value}), nil
}

// Toggle flips a grid cell. Locked cells do not change.
func (g *SelectGroup) Toggle(questionID, cellID string) error {
	q, err := g.question(questionID)
	if err != nil {
		return err
	}
	if !slices.ContainsFunc(q.Answer.Cells, func(c exercise.Cell) bool { return c.ID == cellID }) {
		return &exercise.ConfigError{
			ActivityID: g.set.ActivityID,
			QuestionID: questionID,
			Reason:     "unknown cell " + cellID,
		}
	}
	if g.attempts.IsLocked(exercise.UnitID(questionID, cellID)) {
		return exercise.ErrLocked
	}
	row := g.cells[questionID]
	if row == nil {
		row = make(map[string]bool)
		g.cells[questionID] = row
	}
	row[cellID] = !row[cellID]
	return nil
}

// Checked reports whether a grid cell is ticked.
func (g *SelectGroup) Checked(questionID, cellID string) bool {
	return g.cells[questionID][cellID]
}

// Check returns one submission per batched question. Radio questions
// with no selection are skipped; grid rows are always included since an
// unticked cell is an answer. Fully locked questions are skipped.
func (g *SelectGroup) Check() []exercise.Submission {
	var subs []exercise.Submission
	for _, q := range g.set.Questions {
		if !q.IsBatched() || g.fullyLocked(q) {
			continue
		}
		switch q.Widget {
		case exercise.WidgetMultiSelect:
			row := make(map[string]bool, len(q.Answer.Cells))
			for _, c := range q.Answer.Cells {
				row[c.ID] = g.cells[q.ID][c.ID]
			}
			subs = append(subs, g.submission(q.ID, exercise.Value{Cells: row}))
		default:
			choice, ok := g.choices[q.ID]
			if !ok {
				continue
			}
			subs = append(subs, g.submission(q.ID, exercise.Value{Text: choice}))
		}
	}
	return subs
}

// Reset clears every selection.
func (g *SelectGroup) Reset() {
	clear(g.choices)
	clear(g.cells)
}

func (g *SelectGroup) fullyLocked(q exercise.Question) bool {
	for _, id := range q.UnitIDs() {
		if !g.attempts.IsLocked(id) {
			return false
		}
	}
	return true
}
