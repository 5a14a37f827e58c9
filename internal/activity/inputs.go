package activity

import (
	"time"

	"github.com/abhisek/cinelingo/internal/capture"
	"github.com/abhisek/cinelingo/internal/exercise"
)

// Inputs bundles the capture adapters for one activity. Every adapter
// reads lock state from the owning Controller.
type Inputs struct {
	Drag   *capture.DragDrop
	Pairs  *capture.PairPicker
	Select *capture.SelectGroup
	Text   *capture.FreeText
	Cloze  *capture.Cloze
}

func newInputs(set exercise.QuestionSet, attempts capture.Attempts, now func() time.Time) *Inputs {
	return &Inputs{
		Drag:   capture.NewDragDrop(set, attempts, now),
		Pairs:  capture.NewPairPicker(set, attempts, now),
		Select: capture.NewSelectGroup(set, attempts, now),
		Text:   capture.NewFreeText(set, attempts, now),
		Cloze:  capture.NewCloze(set, attempts, now),
	}
}

func (in *Inputs) reset() {
	in.Drag.Cancel()
	in.Select.Reset()
	in.Text.Reset()
	in.Cloze.Reset()
	in.Pairs.Clear()
}

// Check gathers everything a group check should submit: batched
// selections plus free-text drafts not yet submitted.
func (in *Inputs) Check() []exercise.Submission {
	subs := in.Select.Check()
	return append(subs, in.Text.Pending()...)
}
