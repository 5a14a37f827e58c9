package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	ActivityID string // only this activity ("" = all)
	Limit      int    // max results (0 = unlimited)
	After      int64  // sequence > After
}

// ActivityAction names a non-answer activity event.
type ActivityAction string

const (
	ActionCompleted ActivityAction = "completed"
	ActionReset     ActivityAction = "reset"
)

// AnswerEventData captures one validated submission.
type AnswerEventData struct {
	SessionID    string
	ActivityID   string
	QuestionID   string
	Answer       string
	Verdict      string
	CorrectUnits int
	TotalUnits   int
	Timestamp    time.Time
}

// AnswerEvent is a stored AnswerEventData with its sequence number.
type AnswerEvent struct {
	Sequence int64
	AnswerEventData
}

// ActivityEventData captures a completion or reset.
type ActivityEventData struct {
	SessionID  string
	ActivityID string
	Action     ActivityAction
	Timestamp  time.Time
}

// ActivityStat summarizes one activity's journal within a session.
type ActivityStat struct {
	ActivityID  string
	Attempts    int
	Correct     int
	Resets      int
	Completions int
}

// Accuracy returns Correct / Attempts, or 0 with no attempts.
func (s ActivityStat) Accuracy() float64 {
	if s.Attempts == 0 {
		return 0
	}
	return float64(s.Correct) / float64(s.Attempts)
}

// EventRepo provides append and query access to the session journal.
type EventRepo interface {
	// AppendAnswer records a validated submission.
	AppendAnswer(ctx context.Context, data AnswerEventData) error

	// AppendActivityEvent records a completion or reset.
	AppendActivityEvent(ctx context.Context, data ActivityEventData) error

	// Answers returns a session's answer events in sequence order.
	Answers(ctx context.Context, sessionID string, opts QueryOpts) ([]AnswerEvent, error)

	// ActivityStats returns per-activity totals for a session, ordered by
	// first appearance in the journal.
	ActivityStats(ctx context.Context, sessionID string) ([]ActivityStat, error)
}
