package summary

import (
	"fmt"
	"image/color"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/cinelingo/internal/router"
	"github.com/abhisek/cinelingo/internal/screen"
	"github.com/abhisek/cinelingo/internal/session"
	"github.com/abhisek/cinelingo/internal/ui/layout"
	"github.com/abhisek/cinelingo/internal/ui/theme"
)

// SummaryScreen displays the session summary.
type SummaryScreen struct {
	summary *session.SessionSummary
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a new SummaryScreen.
func New(summary *session.SessionSummary) *SummaryScreen {
	return &SummaryScreen{summary: summary}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Session Summary"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Continue"},
		{Key: "Esc", Description: "Menu"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter", "esc":
			return s, func() tea.Msg { return router.PopToRootMsg{} }
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	sum := s.summary
	if sum == nil {
		return ""
	}

	center := func(style lipgloss.Style, text string) string {
		return style.Width(width).Align(lipgloss.Center).Render(text)
	}

	var b strings.Builder

	title := "That's a wrap!"
	if sum.ActivityCount > 0 && sum.CompletedCount == sum.ActivityCount {
		title = "🎉 That's a wrap! Every activity complete."
	}
	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Primary).Bold(true), title))
	b.WriteString("\n\n")

	mins := int(sum.Duration.Minutes())
	secs := int(sum.Duration.Seconds()) % 60
	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.TextDim),
		fmt.Sprintf("Duration: %d:%02d", mins, secs)))
	b.WriteString("\n\n")

	stats := []string{
		fmt.Sprintf("Completed: %d of %d", sum.CompletedCount, sum.ActivityCount),
		fmt.Sprintf("Answers: %d", sum.TotalAttempts),
		fmt.Sprintf("Accuracy: %.0f%%", sum.Accuracy*100),
	}
	sep := "        "
	if layout.IsCompactWidth(width) {
		sep = "\n"
	}
	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Text), strings.Join(stats, sep)))
	b.WriteString("\n\n")

	if len(sum.Results) == 0 {
		b.WriteString(center(theme.Hint, "No answers recorded yet."))
		return b.String()
	}

	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(
		strings.Repeat("─", min(width-8, 60)))
	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.TextDim), "Activities"))
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
	b.WriteString("\n\n")

	for _, r := range sum.Results {
		mark := " "
		if r.Completed {
			mark = "✓"
		}
		line := fmt.Sprintf("%s %-28s %3d/%-3d correct   %3.0f%%",
			mark, r.Title, r.Correct, r.Attempts, r.Accuracy*100)
		if r.Resets > 0 {
			line += fmt.Sprintf("   ↺%d", r.Resets)
		}
		style := lipgloss.NewStyle().Foreground(accuracyColor(r))
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")
	}

	return b.String()
}

// accuracyColor returns the theme color for one activity row.
func accuracyColor(r session.ActivityResult) color.Color {
	switch {
	case r.Completed:
		return theme.Success
	case r.Accuracy >= 0.5:
		return theme.Secondary
	case r.Attempts > 0:
		return theme.Error
	default:
		return theme.Text
	}
}
