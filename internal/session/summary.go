package session

import (
	"context"
	"fmt"
	"time"

	"github.com/abhisek/cinelingo/internal/store"
)

// ActivityResult is one row of the session summary.
type ActivityResult struct {
	ActivityID string
	Title      string
	Attempts   int
	Correct    int
	Resets     int
	Completed  bool
	Accuracy   float64
}

// SessionSummary holds the data displayed on the summary screen.
type SessionSummary struct {
	Duration       time.Duration
	TotalAttempts  int
	TotalCorrect   int
	Accuracy       float64
	CompletedCount int
	ActivityCount  int

	// CompletedTitles names the completed activities in activity order.
	CompletedTitles []string
	Results         []ActivityResult
}

// BuildSummary creates a SessionSummary from the journal and the
// progress tracker. Without a journal only completion is reported.
func (s *SessionState) BuildSummary(ctx context.Context) (*SessionSummary, error) {
	sum := &SessionSummary{
		Duration:       s.now().Sub(s.StartTime),
		CompletedCount: s.tracker.OverallCount(),
		ActivityCount:  s.tracker.Total(),
	}
	for _, id := range s.tracker.Completed() {
		sum.CompletedTitles = append(sum.CompletedTitles, s.catalog.Title(id))
	}
	if s.journal == nil {
		return sum, nil
	}

	stats, err := s.journal.ActivityStats(ctx, s.SessionID)
	if err != nil {
		return nil, fmt.Errorf("summary stats: %w", err)
	}
	for _, st := range stats {
		sum.Results = append(sum.Results, ActivityResult{
			ActivityID: st.ActivityID,
			Title:      s.catalog.Title(st.ActivityID),
			Attempts:   st.Attempts,
			Correct:    st.Correct,
			Resets:     st.Resets,
			Completed:  s.tracker.IsComplete(st.ActivityID),
			Accuracy:   st.Accuracy(),
		})
		sum.TotalAttempts += st.Attempts
		sum.TotalCorrect += st.Correct
	}
	if sum.TotalAttempts > 0 {
		sum.Accuracy = float64(sum.TotalCorrect) / float64(sum.TotalAttempts)
	}
	return sum, nil
}

// AnswerLogEntry is one validated answer, newest first in AnswerLog.
type AnswerLogEntry struct {
	ActivityTitle string
	store.AnswerEvent
}

// AnswerLog returns up to limit of the session's most recent answers,
// newest first. A limit of zero returns every answer. Without a journal
// the log is empty.
func (s *SessionState) AnswerLog(ctx context.Context, limit int) ([]AnswerLogEntry, error) {
	if s.journal == nil {
		return nil, nil
	}
	events, err := s.journal.Answers(ctx, s.SessionID, store.QueryOpts{})
	if err != nil {
		return nil, fmt.Errorf("answer log: %w", err)
	}
	if limit > 0 && len(events) > limit {
		events = events[len(events)-limit:]
	}
	out := make([]AnswerLogEntry, len(events))
	for i, e := range events {
		out[len(events)-1-i] = AnswerLogEntry{
			ActivityTitle: s.catalog.Title(e.ActivityID),
			AnswerEvent:   e,
		}
	}
	return out, nil
}
