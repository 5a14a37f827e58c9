package exercise

import "strings"

// WidgetKind describes how a learner answers a question.
type WidgetKind string

const (
	WidgetMatchingPair WidgetKind = "matching-pair"
	WidgetSingleSelect WidgetKind = "single-select"
	WidgetMultiSelect  WidgetKind = "multi-select"
	WidgetFreeText     WidgetKind = "free-text"
	WidgetOrderedDrop  WidgetKind = "ordered-drop"
)

// AnswerKind tags the variant held by an AnswerKey.
type AnswerKind string

const (
	// KindExact matches a single string, trimmed and case-insensitive.
	KindExact AnswerKind = "exact"

	// KindOneOf matches any string in an accepted set.
	KindOneOf AnswerKind = "one_of"

	// KindStructural matches when the dropped item's tag equals Tag.
	KindStructural AnswerKind = "structural"

	// KindBoolGrid scores each cell of a checkbox grid independently.
	KindBoolGrid AnswerKind = "bool_grid"

	// KindParts is a multi-part answer; every part must be correct.
	KindParts AnswerKind = "parts"

	// KindContains matches when the answer contains any of Values.
	KindContains AnswerKind = "contains"

	// KindMinLength accepts any answer of at least Min characters.
	KindMinLength AnswerKind = "min_length"

	// KindMinWords accepts any answer of at least Min words.
	KindMinWords AnswerKind = "min_words"
)

// Cell is one boolean cell of a checkbox grid row.
type Cell struct {
	ID    string `json:"id" validate:"required"`
	Label string `json:"label" validate:"required"`
	Want  bool   `json:"want"`
}

// AnswerKey is the expected answer for a question. Only the fields
// belonging to Kind are meaningful.
type AnswerKey struct {
	Kind   AnswerKind  `json:"kind" validate:"required,oneof=exact one_of structural bool_grid parts contains min_length min_words"`
	Value  string      `json:"value,omitempty"`
	Values []string    `json:"values,omitempty"`
	Tag    string      `json:"tag,omitempty"`
	Cells  []Cell      `json:"cells,omitempty" validate:"dive"`
	Parts  []AnswerKey `json:"parts,omitempty" validate:"dive"`
	Min    int         `json:"min,omitempty" validate:"gte=0"`
}

// Expected returns a human-readable form of the expected answer, or ""
// when the key has no single canonical answer.
func (k AnswerKey) Expected() string {
	switch k.Kind {
	case KindExact:
		return k.Value
	case KindOneOf, KindContains:
		if len(k.Values) > 0 {
			return k.Values[0]
		}
	case KindStructural:
		return k.Tag
	case KindParts:
		parts := make([]string, len(k.Parts))
		for i, p := range k.Parts {
			parts[i] = p.Expected()
		}
		return strings.Join(parts, " / ")
	case KindBoolGrid, KindMinLength, KindMinWords:
	}
	return ""
}

// Option is a selectable choice.
type Option struct {
	Value string `json:"value" validate:"required"`
	Label string `json:"label,omitempty"`
}

// Display returns the label, falling back to the value.
func (o Option) Display() string {
	if o.Label != "" {
		return o.Label
	}
	return o.Value
}

// Item is a draggable or pickable card in matching and ordered-drop
// activities. Tag is compared against structural answer keys.
type Item struct {
	Tag   string `json:"tag" validate:"required"`
	Label string `json:"label" validate:"required"`
}

// Question is a single scoreable prompt within a question set.
type Question struct {
	ID     string     `json:"id" validate:"required"`
	Prompt string     `json:"prompt" validate:"required"`
	Widget WidgetKind `json:"widget" validate:"required,oneof=matching-pair single-select multi-select free-text ordered-drop"`

	// Options holds the choices of a single-select question.
	Options []Option `json:"options,omitempty" validate:"dive"`

	// Blanks holds one option list per blank of a dropdown cloze sentence.
	Blanks [][]Option `json:"blanks,omitempty" validate:"dive,dive"`

	Answer AnswerKey `json:"answer"`

	// Hint replaces the default incorrect-answer message when set.
	Hint string `json:"hint,omitempty"`

	// Section groups questions under a heading when rendered.
	Section string `json:"section,omitempty"`

	// Immediate single-selects submit as soon as an option is chosen
	// instead of waiting for a group check.
	Immediate bool `json:"immediate,omitempty"`

	// NoRetry locks the question after any answer, overriding the
	// activity-level retry policy.
	NoRetry bool `json:"no_retry,omitempty"`
}

// Units returns how many scoring units the question contributes.
func (q Question) Units() int {
	if q.Answer.Kind == KindBoolGrid {
		return len(q.Answer.Cells)
	}
	return 1
}

// UnitIDs returns the AttemptState keys for the question's scoring units.
func (q Question) UnitIDs() []string {
	if q.Answer.Kind != KindBoolGrid {
		return []string{q.ID}
	}
	ids := make([]string, len(q.Answer.Cells))
	for i, c := range q.Answer.Cells {
		ids[i] = UnitID(q.ID, c.ID)
	}
	return ids
}

// IsCloze reports whether the question is a multi-blank dropdown sentence.
func (q Question) IsCloze() bool {
	return len(q.Blanks) > 0
}

// IsBatched reports whether the question is submitted by a group check
// rather than on its own interaction.
func (q Question) IsBatched() bool {
	switch q.Widget {
	case WidgetSingleSelect:
		return !q.Immediate && !q.IsCloze()
	case WidgetMultiSelect:
		return true
	}
	return false
}

// UnitID builds the AttemptState key for a cell of a grid question.
func UnitID(questionID, cellID string) string {
	if cellID == "" {
		return questionID
	}
	return questionID + "/" + cellID
}

// QuestionSet is the immutable configuration of one activity.
type QuestionSet struct {
	ActivityID   string `json:"id" validate:"required"`
	Number       int    `json:"number" validate:"gt=0"`
	Title        string `json:"title" validate:"required"`
	Instructions string `json:"instructions,omitempty"`

	Items     []Item     `json:"items,omitempty" validate:"dive"`
	Questions []Question `json:"questions" validate:"required,min=1,dive"`

	// RetryAfterIncorrect is nil when unset; see AllowRetryAfterIncorrect.
	RetryAfterIncorrect *bool `json:"allow_retry_after_incorrect,omitempty"`

	CompletionMessage string `json:"completion_message,omitempty"`
}

// AllowRetryAfterIncorrect reports whether an incorrect unit stays open
// for another attempt. Defaults to true.
func (s QuestionSet) AllowRetryAfterIncorrect() bool {
	return s.RetryAfterIncorrect == nil || *s.RetryAfterIncorrect
}

// RetryAllowed applies the activity policy and the question override.
func (s QuestionSet) RetryAllowed(q Question) bool {
	return s.AllowRetryAfterIncorrect() && !q.NoRetry
}

// RequiredCount is the number of correct units needed for completion.
func (s QuestionSet) RequiredCount() int {
	n := 0
	for _, q := range s.Questions {
		n += q.Units()
	}
	return n
}

// Question looks up a question by ID.
func (s QuestionSet) Question(id string) (Question, bool) {
	for _, q := range s.Questions {
		if q.ID == id {
			return q, true
		}
	}
	return Question{}, false
}

// Item looks up a pool item by tag.
func (s QuestionSet) Item(tag string) (Item, bool) {
	for _, it := range s.Items {
		if it.Tag == tag {
			return it, true
		}
	}
	return Item{}, false
}

// HasBatch reports whether any question waits for a group check.
func (s QuestionSet) HasBatch() bool {
	for _, q := range s.Questions {
		if q.IsBatched() {
			return true
		}
	}
	return false
}
