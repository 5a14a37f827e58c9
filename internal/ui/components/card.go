package components

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/cinelingo/internal/ui/theme"
)

// ContentWidth returns the inner width used for centered cards so that
// stacked sections line up.
func ContentWidth(frameWidth int) int {
	w := frameWidth - 6
	if w > 72 {
		w = 72
	}
	if w < 20 {
		w = 20
	}
	return w
}

// Card wraps content in a rounded-border card at the given content width.
func Card(content string, cw int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Width(cw - 2).
		Padding(0, 1).
		Render(content)
}

// Marquee frames a short announcement in a double border, centered.
func Marquee(text string, cw int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Secondary).
		Foreground(theme.Secondary).
		Bold(true).
		Width(cw - 2).
		Align(lipgloss.Center).
		Render(text)
}
