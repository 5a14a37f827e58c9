package navigation

import (
	"errors"
	"testing"
)

var order = []string{"genres", "describe-film", "second-conditional"}

func TestCursorStartsAtMenu(t *testing.T) {
	c := NewCursor(order)
	if !c.AtMenu() || c.Current() != "" || c.Index() != AtMenu {
		t.Errorf("new cursor = index %d, want menu", c.Index())
	}
}

func TestCursorTransitions(t *testing.T) {
	tests := []struct {
		name  string
		start string // "" = menu
		move  func(*Cursor)
		want  string
	}{
		{"next from menu enters first", "", (*Cursor).Next, "genres"},
		{"previous from menu stays", "", (*Cursor).Previous, ""},
		{"next moves forward", "genres", (*Cursor).Next, "describe-film"},
		{"previous moves back", "second-conditional", (*Cursor).Previous, "describe-film"},
		{"next from last returns to menu", "second-conditional", (*Cursor).Next, ""},
		{"previous from first returns to menu", "genres", (*Cursor).Previous, ""},
		{"menu from activity", "describe-film", (*Cursor).Menu, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCursor(order)
			if tt.start != "" {
				if err := c.Jump(tt.start); err != nil {
					t.Fatalf("jump %q: %v", tt.start, err)
				}
			}
			tt.move(c)
			if got := c.Current(); got != tt.want {
				t.Errorf("Current = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestJumpUnknownLeavesCursorUnchanged(t *testing.T) {
	c := NewCursor(order)
	if err := c.Jump("describe-film"); err != nil {
		t.Fatalf("jump: %v", err)
	}

	err := c.Jump("nonexistent")
	if !errors.Is(err, ErrInvalidTarget) {
		t.Fatalf("err = %v, want ErrInvalidTarget", err)
	}
	var target *InvalidTargetError
	if !errors.As(err, &target) || target.Target != "nonexistent" {
		t.Errorf("err = %#v, want InvalidTargetError naming the target", err)
	}
	if got := c.Current(); got != "describe-film" {
		t.Errorf("Current = %q after bad jump, want describe-film", got)
	}
}

func TestAffordances(t *testing.T) {
	tests := []struct {
		index int
		want  Affordances
	}{
		{0, Affordances{ShowPrevious: false, NextLabel: NextLabel, Indicator: "Activity 1 of 3"}},
		{1, Affordances{ShowPrevious: true, NextLabel: NextLabel, Indicator: "Activity 2 of 3"}},
		{2, Affordances{ShowPrevious: true, NextLabel: FinishLabel, Indicator: "Activity 3 of 3"}},
		{AtMenu, Affordances{}},
	}
	for _, tt := range tests {
		if got := AffordancesFor(tt.index, 3); got != tt.want {
			t.Errorf("AffordancesFor(%d, 3) = %+v, want %+v", tt.index, got, tt.want)
		}
	}
}

func TestEmptyCursor(t *testing.T) {
	c := NewCursor(nil)
	c.Next()
	if !c.AtMenu() {
		t.Error("next with no activities should stay at menu")
	}
	if err := c.Jump("genres"); err == nil {
		t.Error("jump on empty cursor should fail")
	}
}
