package activity

import (
	"fmt"
	"strings"

	"github.com/abhisek/cinelingo/internal/exercise"
)

const (
	msgCorrect         = "✓ Correct!"
	msgTryAgain        = "✗ Incorrect. Try again!"
	msgReset           = "🔄 Reset complete"
	msgSelectBoth      = "Please select both options first"
	msgSelectFirst     = "Please select a question first"
	msgAlreadyMatched  = "That answer is already matched"
	msgNothingToCheck  = "Answer at least one question before checking"
	msgDefaultComplete = "🎉 Activity complete!"
)

var ordinals = []string{"First", "Second", "Third", "Fourth", "Fifth"}

func ordinal(i int) string {
	if i < len(ordinals) {
		return ordinals[i]
	}
	return fmt.Sprintf("Blank %d", i+1)
}

// incorrectMessage explains a wrong answer: the expected answer for
// single-answer items, each wrong blank for cloze sentences, and a
// generic retry prompt for matching.
func incorrectMessage(q exercise.Question, out exercise.Outcome) string {
	key := q.Answer
	switch key.Kind {
	case exercise.KindExact, exercise.KindOneOf:
		if q.Hint != "" {
			return "✗ Try again. Hint: " + q.Hint
		}
		return "✗ Incorrect. The correct answer is: " + optionLabel(q, key.Expected())

	case exercise.KindContains:
		if q.Hint != "" {
			return "✗ Try again. Hint: " + q.Hint
		}
		return "✗ Incorrect. Expected something like: " + key.Expected()

	case exercise.KindMinLength:
		if q.Hint != "" {
			return "✗ " + q.Hint
		}
		return fmt.Sprintf("✗ Please write at least %d characters.", key.Min)

	case exercise.KindMinWords:
		if q.Hint != "" {
			return "✗ " + q.Hint
		}
		return fmt.Sprintf("✗ Please write at least %d words.", key.Min)

	case exercise.KindParts:
		var b strings.Builder
		b.WriteString("✗ Incorrect.")
		for i, v := range out.Parts {
			if v == exercise.Correct {
				continue
			}
			fmt.Fprintf(&b, " %s blank should be %q.", ordinal(i), key.Parts[i].Expected())
		}
		return b.String()

	case exercise.KindBoolGrid:
		return fmt.Sprintf("✗ %d of %d correct in this row.", out.CorrectCells(), len(key.Cells))

	case exercise.KindStructural:
		return msgTryAgain
	}
	return msgTryAgain
}

// optionLabel shows the label of a single-select option in place of its
// value.
func optionLabel(q exercise.Question, value string) string {
	for _, o := range q.Options {
		if o.Value == value {
			return o.Display()
		}
	}
	return value
}

func batchMessage(correct, total int) string {
	if correct == total {
		return fmt.Sprintf("✓ %d/%d correct.", correct, total)
	}
	return fmt.Sprintf("✗ %d/%d correct.", correct, total)
}
