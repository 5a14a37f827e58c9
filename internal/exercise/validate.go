package exercise

import (
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// Verdict is the scoring state of a unit.
type Verdict int

const (
	Unanswered Verdict = iota
	Correct
	Incorrect
)

func (v Verdict) String() string {
	switch v {
	case Correct:
		return "correct"
	case Incorrect:
		return "incorrect"
	default:
		return "unanswered"
	}
}

// Value is a normalized learner answer. Which field is set depends on
// the widget that produced it.
type Value struct {
	Text  string          // free-text and single-select
	Tag   string          // matching and ordered-drop
	Parts []string        // dropdown cloze blanks, in order
	Cells map[string]bool // checkbox grid row
}


// MissingParts returns 1-based positions of empty parts, checking the
// first n positions.
func (v Value) MissingParts(n int) []int {
	var missing []int
	for i := 0; i < n; i++ {
		if i >= len(v.Parts) || strings.TrimSpace(v.Parts[i]) == "" {
			missing = append(missing, i+1)
		}
	}
	return missing
}

func (v Value) String() string {
	switch {
	case v.Tag != "":
		return v.Tag
	case len(v.Parts) > 0:
		return strings.Join(v.Parts, " | ")
	case len(v.Cells) > 0:
		keys := make([]string, 0, len(v.Cells))
		for k := range v.Cells {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, len(keys))
		for i, k := range keys {
			parts[i] = fmt.Sprintf("%s=%t", k, v.Cells[k])
		}
		return strings.Join(parts, ",")
	}
	return v.Text
}

// Submission is a normalized answer for one question.
type Submission struct {
	ActivityID string
	QuestionID string
	Value      Value
	Timestamp  time.Time
}

// Outcome is the result of validating a submission. Parts is set for
// multi-part keys, Cells for grid keys.
type Outcome struct {
	Verdict Verdict
	Parts   []Verdict
	Cells   map[string]Verdict
}

// CorrectCells counts the cells scored Correct.
func (o Outcome) CorrectCells() int {
	n := 0
	for _, v := range o.Cells {
		if v == Correct {
			n++
		}
	}
	return n
}

// Validate scores a submission against an answer key. It has no side
// effects.
//
// Normalization rules for strings:
//   - Whitespace is trimmed and internal runs collapse to one space
//   - Unicode is NFC-normalized
//   - Comparison is case-insensitive (full case folding)
func Validate(sub Submission, key AnswerKey) Outcome {
	switch key.Kind {
	case KindExact:
		return verdictOutcome(matchText(sub.Value.Text, key.Value))

	case KindOneOf:
		for _, v := range key.Values {
			if matchText(sub.Value.Text, v) {
				return verdictOutcome(true)
			}
		}
		return verdictOutcome(false)

	case KindStructural:
		return verdictOutcome(sub.Value.Tag != "" && sub.Value.Tag == key.Tag)

	case KindBoolGrid:
		out := Outcome{Verdict: Correct, Cells: make(map[string]Verdict, len(key.Cells))}
		for _, c := range key.Cells {
			if sub.Value.Cells[c.ID] == c.Want {
				out.Cells[c.ID] = Correct
			} else {
				out.Cells[c.ID] = Incorrect
				out.Verdict = Incorrect
			}
		}
		return out

	case KindParts:
		out := Outcome{Verdict: Correct, Parts: make([]Verdict, len(key.Parts))}
		for i, pk := range key.Parts {
			var text string
			if i < len(sub.Value.Parts) {
				text = sub.Value.Parts[i]
			}
			part := Validate(Submission{Value: Value{Text: text}}, pk)
			out.Parts[i] = part.Verdict
			if part.Verdict != Correct {
				out.Verdict = Incorrect
			}
		}
		return out

	case KindContains:
		answer := Normalize(sub.Value.Text)
		if answer == "" {
			return verdictOutcome(false)
		}
		for _, v := range key.Values {
			if want := Normalize(v); want != "" && strings.Contains(answer, want) {
				return verdictOutcome(true)
			}
		}
		return verdictOutcome(false)

	case KindMinLength:
		n := utf8.RuneCountInString(strings.TrimSpace(sub.Value.Text))
		return verdictOutcome(n > 0 && n >= key.Min)

	case KindMinWords:
		n := len(strings.Fields(sub.Value.Text))
		return verdictOutcome(n > 0 && n >= key.Min)
	}

	// Unknown kinds are rejected at load time.
	return verdictOutcome(false)
}

var lower = cases.Lower(language.Und)

// Normalize applies the string comparison rules used by Validate: the
// ends are trimmed and the text is NFC-composed and lower-cased. Inner
// whitespace is kept as typed.
func Normalize(s string) string {
	return lower.String(norm.NFC.String(strings.TrimSpace(s)))
}

func matchText(got, want string) bool {
	got = Normalize(got)
	return got != "" && got == Normalize(want)
}

func verdictOutcome(ok bool) Outcome {
	if ok {
		return Outcome{Verdict: Correct}
	}
	return Outcome{Verdict: Incorrect}
}
