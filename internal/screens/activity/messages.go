package activity

import (
	"time"

	tea "charm.land/bubbletea/v2"
)

// dismissFeedbackMsg hides the feedback message with sequence Seq. A
// newer message preempts it, so a stale dismissal does nothing.
type dismissFeedbackMsg struct {
	Seq uint64
}

// dismissAfterCmd schedules the auto-dismiss of message seq.
func dismissAfterCmd(seq uint64, ttl time.Duration) tea.Cmd {
	return tea.Tick(ttl, func(time.Time) tea.Msg {
		return dismissFeedbackMsg{Seq: seq}
	})
}
