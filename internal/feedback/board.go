// Package feedback holds the transient message shown after an answer.
// A newer message always preempts an older one, and each message expires
// after a fixed duration.
package feedback

import "time"

// DefaultDuration is how long a message stays visible.
const DefaultDuration = 2 * time.Second

// Kind classifies a message for styling.
type Kind int

const (
	Info Kind = iota
	Success
	Failure
)

func (k Kind) String() string {
	switch k {
	case Success:
		return "success"
	case Failure:
		return "failure"
	default:
		return "info"
	}
}

// Message is one displayed notice. Seq increases with every Display
// call and identifies the message for dismissal.
type Message struct {
	Seq     uint64
	Text    string
	Kind    Kind
	ShownAt time.Time
}

// Board keeps the current message. It is not safe for concurrent use;
// the UI loop owns it.
type Board struct {
	ttl     time.Duration
	now     func() time.Time
	seq     uint64
	current *Message
}

// NewBoard creates a Board whose messages expire after ttl. A zero ttl
// uses DefaultDuration; a nil now uses time.Now.
func NewBoard(ttl time.Duration, now func() time.Time) *Board {
	if ttl <= 0 {
		ttl = DefaultDuration
	}
	if now == nil {
		now = time.Now
	}
	return &Board{ttl: ttl, now: now}
}

// Display shows a message, replacing any visible one.
func (b *Board) Display(text string, kind Kind) {
	b.seq++
	b.current = &Message{Seq: b.seq, Text: text, Kind: kind, ShownAt: b.now()}
}

// Current returns the visible message, if any. Expired messages are not
// visible even before Dismiss is called.
func (b *Board) Current() (Message, bool) {
	if b.current == nil {
		return Message{}, false
	}
	if b.now().Sub(b.current.ShownAt) >= b.ttl {
		return Message{}, false
	}
	return *b.current, true
}

// Seq returns the sequence number of the most recent Display call.
func (b *Board) Seq() uint64 {
	return b.seq
}

// Dismiss hides the message with the given sequence number. A stale
// dismissal for a preempted message does nothing.
func (b *Board) Dismiss(seq uint64) bool {
	if b.current == nil || b.current.Seq != seq {
		return false
	}
	b.current = nil
	return true
}

// Clear hides any visible message.
func (b *Board) Clear() {
	b.current = nil
}

// TTL returns how long messages stay visible.
func (b *Board) TTL() time.Duration {
	return b.ttl
}
