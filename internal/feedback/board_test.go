package feedback

import (
	"testing"
	"time"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func TestBoardAutoDismiss(t *testing.T) {
	clk := &fakeClock{t: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	b := NewBoard(0, clk.now)

	if b.TTL() != DefaultDuration {
		t.Fatalf("TTL = %v, want %v", b.TTL(), DefaultDuration)
	}

	b.Display("✓ Correct!", Success)
	msg, ok := b.Current()
	if !ok || msg.Text != "✓ Correct!" || msg.Kind != Success {
		t.Fatalf("Current = %+v, %v; want the displayed message", msg, ok)
	}

	clk.advance(1999 * time.Millisecond)
	if _, ok := b.Current(); !ok {
		t.Error("message should still be visible before 2000ms")
	}

	clk.advance(time.Millisecond)
	if _, ok := b.Current(); ok {
		t.Error("message should expire at 2000ms")
	}
}

func TestBoardPreemption(t *testing.T) {
	clk := &fakeClock{t: time.Now()}
	b := NewBoard(2*time.Second, clk.now)

	b.Display("first", Failure)
	first := b.Seq()

	clk.advance(time.Second)
	b.Display("second", Success)
	second := b.Seq()

	if first == second {
		t.Fatal("sequence did not advance")
	}

	// The timer scheduled for the first message fires; the second stays.
	if b.Dismiss(first) {
		t.Error("stale dismissal should be ignored")
	}
	msg, ok := b.Current()
	if !ok || msg.Text != "second" {
		t.Fatalf("Current = %+v, %v; want second", msg, ok)
	}

	// The second message gets its full duration from when it was shown.
	clk.advance(1500 * time.Millisecond)
	if _, ok := b.Current(); !ok {
		t.Error("preempting message should get its own full duration")
	}

	if !b.Dismiss(second) {
		t.Error("dismissing the current message should succeed")
	}
	if _, ok := b.Current(); ok {
		t.Error("message should be hidden after dismiss")
	}
}

func TestKindString(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{Info, "info"},
		{Success, "success"},
		{Failure, "failure"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("Kind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}
