package components

import (
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/cinelingo/internal/exercise"
	"github.com/abhisek/cinelingo/internal/ui/theme"
)

// TextInput wraps bubbles/textinput and marks the field with the verdict
// of its last submission. A locked field ignores keystrokes.
type TextInput struct {
	Model   textinput.Model
	Verdict exercise.Verdict
	Locked  bool
}

// NewTextInput creates a new styled, unfocused text input.
func NewTextInput(placeholder string, charLimit int) TextInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = "› "
	if charLimit > 0 {
		ti.CharLimit = charLimit
	}
	return TextInput{Model: ti}
}

// Focus focuses the field unless it is locked.
func (t *TextInput) Focus() tea.Cmd {
	if t.Locked {
		return nil
	}
	return t.Model.Focus()
}

// Blur removes focus.
func (t *TextInput) Blur() {
	t.Model.Blur()
}

// Focused reports whether the field has focus.
func (t TextInput) Focused() bool {
	return t.Model.Focused()
}

// Update handles messages.
func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	if t.Locked {
		return t, nil
	}
	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	return t, cmd
}

// View renders the text input followed by its verdict mark.
func (t TextInput) View() string {
	view := t.Model.View()
	switch t.Verdict {
	case exercise.Correct:
		view += " " + theme.Correct.Render("✓")
	case exercise.Incorrect:
		view += " " + theme.Incorrect.Render("✗")
	}
	return view
}

// Value returns the current input value.
func (t TextInput) Value() string {
	return t.Model.Value()
}

// SetValue replaces the current input value.
func (t *TextInput) SetValue(v string) {
	t.Model.SetValue(v)
}

// Mark records the verdict and lock state shown next to the field.
func (t *TextInput) Mark(v exercise.Verdict, locked bool) {
	t.Verdict = v
	t.Locked = locked
	if locked {
		t.Model.Blur()
	}
}
