package components

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/cinelingo/internal/exercise"
	"github.com/abhisek/cinelingo/internal/ui/theme"
)

// ChoiceRow renders a horizontal list of options. Chosen is the value
// the learner picked, Cursor the highlighted index when Focused.
type ChoiceRow struct {
	Options []exercise.Option
	Chosen  string
	Cursor  int
	Focused bool
	Verdict exercise.Verdict
}

// View renders the row.
func (c ChoiceRow) View() string {
	parts := make([]string, len(c.Options))
	for i, o := range c.Options {
		mark := "○"
		style := theme.Unselected
		if o.Value == c.Chosen {
			mark = "●"
			style = theme.ForVerdict(c.Verdict)
			if c.Verdict == exercise.Unanswered {
				style = theme.Selected
			}
		}
		label := mark + " " + o.Display()
		if c.Focused && i == c.Cursor {
			style = style.Underline(true)
			label = "▸" + label
		} else {
			label = " " + label
		}
		parts[i] = style.Render(label)
	}
	return strings.Join(parts, "   ")
}

// Blank renders one dropdown blank of a cloze sentence.
func Blank(value string, focused bool) string {
	if value == "" {
		value = "____"
	}
	style := lipgloss.NewStyle().Foreground(theme.Accent).Underline(true)
	if focused {
		style = style.Foreground(theme.Primary).Bold(true)
		return style.Render("[" + value + " ▾]")
	}
	return style.Render("[" + value + "]")
}

// CheckRow renders a checkbox grid row.
type CheckRow struct {
	Labels  []string
	Checked []bool
	Verdict []exercise.Verdict
	Cursor  int
	Focused bool
}

// View renders the row.
func (r CheckRow) View() string {
	parts := make([]string, len(r.Labels))
	for i, l := range r.Labels {
		box := "[ ]"
		if i < len(r.Checked) && r.Checked[i] {
			box = "[x]"
		}
		style := theme.Unselected
		if i < len(r.Verdict) && r.Verdict[i] != exercise.Unanswered {
			style = theme.ForVerdict(r.Verdict[i])
		}
		if r.Focused && i == r.Cursor {
			style = style.Underline(true)
		}
		parts[i] = style.Render(box + " " + l)
	}
	return strings.Join(parts, "  ")
}

// Toast renders a feedback message as a full-width banner.
func Toast(text string, style lipgloss.Style, width int) string {
	return style.Width(width).Align(lipgloss.Center).Render(text)
}
