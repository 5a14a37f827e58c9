package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/cinelingo/internal/ui/theme"
)

const (
	MinWidth  = 80
	MinHeight = 24

	// CompactWidth is the width below which the chrome drops its labels.
	CompactWidth = 100
)

// KeyHint is one key binding shown in the footer.
type KeyHint struct {
	Key         string
	Description string
}

// IsCompactWidth reports whether a terminal this wide gets the compact chrome.
func IsCompactWidth(width int) bool {
	return width < CompactWidth
}

// IsTooSmall reports whether the terminal is below the minimum size.
func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// RenderMinSizeMessage asks the user to enlarge the terminal.
func RenderMinSizeMessage(width, height int) string {
	return lipgloss.NewStyle().
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Width(width).
		Height(height).
		Render(fmt.Sprintf(
			"The screening room is too small.\n\nResize to at least %d×%d\n(now %d×%d)",
			MinWidth, MinHeight, width, height,
		))
}

// Header is the bar above every screen: the brand, the active screen's
// title and how many activities are complete.
type Header struct {
	Title     string
	Completed int
	Total     int
}

// Render draws the header at the given width. Compact terminals keep
// only the clapper icon as the brand.
func (h Header) Render(width int) string {
	brand := "  🎬 Cinelingo"
	if IsCompactWidth(width) {
		brand = "  🎬"
	}
	left := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(brand)
	center := lipgloss.NewStyle().Foreground(theme.Text).Render(h.Title)
	right := lipgloss.NewStyle().Foreground(theme.Secondary).
		Render(fmt.Sprintf("✓ %d/%d", h.Completed, h.Total))

	inner := max(0, width-4)
	lw, cw, rw := lipgloss.Width(left), lipgloss.Width(center), lipgloss.Width(right)
	gapL := max(1, (inner-cw)/2-lw)
	gapR := max(1, inner-lw-gapL-cw-rw)

	return bar(width).Render(left + strings.Repeat(" ", gapL) + center + strings.Repeat(" ", gapR) + right)
}

// RenderFooter draws the key hints. Compact terminals show keys only
// for all but the first hint.
func RenderFooter(hints []KeyHint, width int) string {
	compact := IsCompactWidth(width)
	keyStyle := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(theme.TextDim)

	parts := make([]string, 0, len(hints))
	for i, h := range hints {
		part := keyStyle.Render(h.Key)
		if !compact || i == 0 {
			part += " " + descStyle.Render(h.Description)
		}
		parts = append(parts, part)
	}
	return bar(width).Render("  " + strings.Join(parts, "   "))
}

func bar(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Width(width).
		Background(theme.BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border)
}

// ContentHeight is what remains of the terminal height between the
// rendered header and footer.
func ContentHeight(height int, header, footer string) int {
	return max(0, height-lipgloss.Height(header)-lipgloss.Height(footer))
}

// RenderFrame stacks header, content and footer, padding the content to
// fill the space between them.
func RenderFrame(header, content, footer string, width, height int) string {
	body := lipgloss.NewStyle().
		Width(width).
		Height(ContentHeight(height, header, footer)).
		Render(content)
	return header + "\n" + body + "\n" + footer
}
