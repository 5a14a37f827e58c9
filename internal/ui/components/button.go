package components

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/cinelingo/internal/ui/theme"
)

// Button is a styled navigation button. A hidden button renders as
// empty and ignores input.
type Button struct {
	Label   string
	Focused bool
	Hidden  bool
	OnPress func() tea.Cmd
}

// NewButton creates a new button.
func NewButton(label string, onPress func() tea.Cmd) Button {
	return Button{
		Label:   label,
		OnPress: onPress,
		Hidden:  label == "",
	}
}

// Update handles key events.
func (b Button) Update(msg tea.Msg) (Button, tea.Cmd) {
	if !b.Focused || b.Hidden {
		return b, nil
	}

	if kmsg, ok := msg.(tea.KeyMsg); ok {
		if kmsg.String() == "enter" && b.OnPress != nil {
			return b, b.OnPress()
		}
	}

	return b, nil
}

// View renders the button.
func (b Button) View() string {
	if b.Hidden {
		return ""
	}
	if b.Focused {
		return theme.ButtonActive.Render(b.Label)
	}
	return theme.ButtonInactive.Render(b.Label)
}
