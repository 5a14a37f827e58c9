// Package render builds a presentation-neutral widget tree from an
// activity's configuration and its attempt state. Render never mutates
// its inputs, so calling it twice with the same inputs gives equal trees.
package render

import (
	"github.com/abhisek/cinelingo/internal/capture"
	"github.com/abhisek/cinelingo/internal/exercise"
)

// Tree is the rendered form of one activity.
type Tree struct {
	ActivityID   string
	Number       int
	Title        string
	Instructions string
	Widgets      []Widget

	// Pool holds the items not yet correctly placed.
	Pool []exercise.Item

	CorrectCount  int
	RequiredCount int

	// HasCheck is set when some widget waits for a group check.
	HasCheck bool
}

// Widget is one question as the UI should draw it.
type Widget struct {
	QuestionID string
	Kind       exercise.WidgetKind
	Prompt     string

	// Heading is set on the first widget of a new section.
	Heading string

	Options []exercise.Option
	Blanks  [][]exercise.Option
	Cells   []Cell

	// Placed is the item shown in a matching or drop target.
	Placed *exercise.Item

	Answer   exercise.Value
	Verdict  exercise.Verdict
	Locked   bool
	Attempts int

	Immediate bool
	Batched   bool
}

// Cell is one checkbox of a grid row.
type Cell struct {
	ID      string
	Label   string
	Checked bool
	Verdict exercise.Verdict
	Locked  bool
}

// Render builds the widget tree for a question set.
func Render(set exercise.QuestionSet, state *exercise.AttemptState) Tree {
	t := Tree{
		ActivityID:    set.ActivityID,
		Number:        set.Number,
		Title:         set.Title,
		Instructions:  set.Instructions,
		Pool:          capture.Pool(set, state),
		CorrectCount:  state.CorrectCount(),
		RequiredCount: set.RequiredCount(),
		HasCheck:      set.HasBatch(),
	}

	section := ""
	for _, q := range set.Questions {
		w := Widget{
			QuestionID: q.ID,
			Kind:       q.Widget,
			Prompt:     q.Prompt,
			Options:    q.Options,
			Blanks:     q.Blanks,
			Immediate:  q.Immediate,
			Batched:    q.IsBatched(),
		}
		if q.Section != section {
			w.Heading = q.Section
			section = q.Section
		}

		if q.Answer.Kind == exercise.KindBoolGrid {
			w.Cells = renderCells(q, state)
			w.Verdict, w.Locked = rowStatus(w.Cells)
		} else {
			e := state.Entry(q.ID)
			w.Answer = e.Value
			w.Verdict = e.Verdict
			w.Locked = e.Locked
			w.Attempts = e.Attempts
			if e.Value.Tag != "" {
				if it, ok := set.Item(e.Value.Tag); ok {
					w.Placed = &it
				}
			}
		}
		t.Widgets = append(t.Widgets, w)
	}
	return t
}

func renderCells(q exercise.Question, state *exercise.AttemptState) []Cell {
	cells := make([]Cell, len(q.Answer.Cells))
	for i, c := range q.Answer.Cells {
		e := state.Entry(exercise.UnitID(q.ID, c.ID))
		cells[i] = Cell{
			ID:      c.ID,
			Label:   c.Label,
			Checked: e.Value.Cells[c.ID],
			Verdict: e.Verdict,
			Locked:  e.Locked,
		}
	}
	return cells
}

func rowStatus(cells []Cell) (exercise.Verdict, bool) {
	verdict := exercise.Correct
	locked := true
	for _, c := range cells {
		switch c.Verdict {
		case exercise.Unanswered:
			verdict = exercise.Unanswered
		case exercise.Incorrect:
			if verdict != exercise.Unanswered {
				verdict = exercise.Incorrect
			}
		}
		if !c.Locked {
			locked = false
		}
	}
	if len(cells) == 0 {
		return exercise.Unanswered, false
	}
	return verdict, locked
}
