// Package navigation sequences the activities of a unit. The cursor is
// either at the menu or at one activity.
package navigation

import (
	"errors"
	"fmt"
	"slices"
)

// ErrInvalidTarget is returned for a jump to an unknown activity.
var ErrInvalidTarget = errors.New("invalid navigation target")

// InvalidTargetError names the rejected target.
type InvalidTargetError struct {
	Target string
}

func (e *InvalidTargetError) Error() string {
	return fmt.Sprintf("%v: %q", ErrInvalidTarget, e.Target)
}

func (e *InvalidTargetError) Unwrap() error { return ErrInvalidTarget }

// AtMenu is the index reported while the menu is showing.
const AtMenu = -1

// Cursor is the navigation state machine. The zero value is not usable;
// use NewCursor.
type Cursor struct {
	ids   []string
	index int
}

// NewCursor creates a cursor at the menu.
func NewCursor(activityIDs []string) *Cursor {
	return &Cursor{ids: slices.Clone(activityIDs), index: AtMenu}
}

// AtMenu reports whether the menu is showing.
func (c *Cursor) AtMenu() bool {
	return c.index == AtMenu
}

// Index returns the current activity index, or AtMenu.
func (c *Cursor) Index() int {
	return c.index
}

// Current returns the current activity ID, or "" at the menu.
func (c *Cursor) Current() string {
	if c.AtMenu() {
		return ""
	}
	return c.ids[c.index]
}

// Len returns the number of activities.
func (c *Cursor) Len() int {
	return len(c.ids)
}

// IDs returns the activity order.
func (c *Cursor) IDs() []string {
	return slices.Clone(c.ids)
}

// Jump moves to an activity by ID. An unknown ID leaves the cursor
// unchanged and returns an *InvalidTargetError.
func (c *Cursor) Jump(id string) error {
	i := slices.Index(c.ids, id)
	if i < 0 {
		return &InvalidTargetError{Target: id}
	}
	c.index = i
	return nil
}

// Next moves forward. From the last activity it returns to the menu;
// from the menu it enters the first activity.
func (c *Cursor) Next() {
	switch {
	case len(c.ids) == 0:
		c.index = AtMenu
	case c.AtMenu():
		c.index = 0
	case c.index == len(c.ids)-1:
		c.index = AtMenu
	default:
		c.index++
	}
}

// Previous moves back. From the first activity it returns to the menu;
// at the menu it does nothing.
func (c *Cursor) Previous() {
	switch {
	case c.AtMenu():
	case c.index == 0:
		c.index = AtMenu
	default:
		c.index--
	}
}

// Menu returns to the menu.
func (c *Cursor) Menu() {
	c.index = AtMenu
}

// Affordances describes the navigation controls for the current state.
func (c *Cursor) Affordances() Affordances {
	return AffordancesFor(c.index, len(c.ids))
}

// Affordances are the navigation controls shown on an activity.
type Affordances struct {
	ShowPrevious bool
	NextLabel    string
	Indicator    string
}

const (
	NextLabel   = "Next Activity →"
	FinishLabel = "✓ Finish"
	PrevLabel   = "← Previous"
)

// AffordancesFor computes the controls for activity index of n. At the
// menu there are no controls.
func AffordancesFor(index, n int) Affordances {
	if index < 0 || index >= n {
		return Affordances{}
	}
	a := Affordances{
		ShowPrevious: index > 0,
		NextLabel:    NextLabel,
		Indicator:    fmt.Sprintf("Activity %d of %d", index+1, n),
	}
	if index == n-1 {
		a.NextLabel = FinishLabel
	}
	return a
}
