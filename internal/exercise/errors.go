package exercise

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrIncompleteSubmission is returned when a multi-part answer is
	// checked with at least one part empty.
	ErrIncompleteSubmission = errors.New("incomplete submission")

	// ErrLocked is returned for submissions against a locked unit.
	ErrLocked = errors.New("unit is locked")
)

// ConfigError reports missing or malformed static content.
type ConfigError struct {
	ActivityID string
	QuestionID string
	Reason     string
	Err        error
}

func (e *ConfigError) Error() string {
	var b strings.Builder
	b.WriteString("config")
	if e.ActivityID != "" {
		fmt.Fprintf(&b, " activity %q", e.ActivityID)
	}
	if e.QuestionID != "" {
		fmt.Fprintf(&b, " question %q", e.QuestionID)
	}
	b.WriteString(": ")
	b.WriteString(e.Reason)
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *ConfigError) Unwrap() error { return e.Err }

// IncompleteSubmissionError names the empty parts of a multi-part answer.
// Missing holds 1-based part positions.
type IncompleteSubmissionError struct {
	QuestionID string
	Missing    []int
}

func (e *IncompleteSubmissionError) Error() string {
	return fmt.Sprintf("question %q: %d of its parts are empty", e.QuestionID, len(e.Missing))
}

func (e *IncompleteSubmissionError) Unwrap() error { return ErrIncompleteSubmission }
