package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/cinelingo/internal/ui/theme"
)

// ProgressBar is a horizontal bar filled to Done out of Total with a
// "done/total" caption.
type ProgressBar struct {
	Label string
	Done  int
	Total int
	Width int
}

// NewCountBar creates a bar filled to done out of total.
func NewCountBar(label string, done, total, width int) ProgressBar {
	return ProgressBar{Label: label, Done: done, Total: total, Width: width}
}

func (p ProgressBar) fraction() float64 {
	if p.Total <= 0 {
		return 0
	}
	return float64(p.Done) / float64(p.Total)
}

// View renders the bar.
func (p ProgressBar) View() string {
	var label string
	if p.Label != "" {
		label = lipgloss.NewStyle().Foreground(theme.Text).Render(p.Label) + "  "
	}
	caption := fmt.Sprintf("  %d/%d", p.Done, p.Total)

	barWidth := max(4, p.Width-lipgloss.Width(label)-lipgloss.Width(caption))
	filled := max(0, min(int(float64(barWidth)*p.fraction()), barWidth))

	return label +
		theme.ProgressFilled.Render(strings.Repeat(" ", filled)) +
		theme.ProgressEmpty.Render(strings.Repeat(" ", barWidth-filled)) +
		lipgloss.NewStyle().Foreground(theme.TextDim).Render(caption)
}
