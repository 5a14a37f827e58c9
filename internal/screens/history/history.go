// Package history shows the answers recorded in this session's journal.
package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/cinelingo/internal/exercise"
	"github.com/abhisek/cinelingo/internal/router"
	"github.com/abhisek/cinelingo/internal/screen"
	"github.com/abhisek/cinelingo/internal/session"
	"github.com/abhisek/cinelingo/internal/ui/components"
	"github.com/abhisek/cinelingo/internal/ui/layout"
	"github.com/abhisek/cinelingo/internal/ui/theme"
)

// maxEntries caps how much of the journal is loaded.
const maxEntries = 200

type historyLoadedMsg struct {
	Entries []session.AnswerLogEntry
	Err     error
}

// HistoryScreen lists answers newest first. Enter expands an entry.
type HistoryScreen struct {
	sess     *session.SessionState
	entries  []session.AnswerLogEntry
	selected int
	expanded map[int]bool
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(sess *session.SessionState) *HistoryScreen {
	return &HistoryScreen{
		sess:     sess,
		expanded: make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	return func() tea.Msg {
		entries, err := s.sess.AnswerLog(context.Background(), maxEntries)
		return historyLoadedMsg{Entries: entries, Err: err}
	}
}

func (s *HistoryScreen) Title() string {
	return "Answer log"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.entries = msg.Entries
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.entries)-1 {
				s.selected++
			}
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	centered := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)
	switch {
	case s.errMsg != "":
		return centered.Foreground(theme.Error).Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	case !s.loaded:
		return centered.Foreground(theme.TextDim).Render("\n\n  Loading answers...")
	case len(s.entries) == 0:
		return centered.Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No answers yet. Pick an activity and start playing!")
	}

	cw := components.ContentWidth(width)
	var lines []string
	selectedLine := 0
	for i, e := range s.entries {
		if i == s.selected {
			selectedLine = len(lines)
		}
		lines = append(lines, s.renderEntry(i, e, cw)...)
	}

	visible := height - 2
	if visible < 1 {
		visible = 1
	}
	start := 0
	if selectedLine >= visible {
		start = selectedLine - visible + 1
	}
	end := min(start+visible, len(lines))

	var b strings.Builder
	b.WriteString("\n")
	for _, line := range lines[start:end] {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, line))
		b.WriteString("\n")
	}
	return b.String()
}

func (s *HistoryScreen) renderEntry(i int, e session.AnswerLogEntry, cw int) []string {
	prefix := "  "
	style := lipgloss.NewStyle().Foreground(theme.Text)
	if i == s.selected {
		prefix = "> "
		style = style.Foreground(theme.Primary).Bold(true)
	}

	verdict := verdictOf(e.Verdict)
	mark := theme.ForVerdict(verdict).Render(markOf(verdict))
	answer := e.Answer
	if room := cw - 40; room > 3 && len(answer) > room {
		answer = answer[:room-3] + "..."
	}
	line := fmt.Sprintf("%s%s  %s  %-24s %q",
		prefix, e.Timestamp.Local().Format("15:04:05"), mark, e.ActivityTitle, answer)
	out := []string{style.Width(cw).Render(line)}

	if s.expanded[i] {
		detail := lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).Width(cw)
		out = append(out,
			detail.Render(fmt.Sprintf("      question %s · %s · %d of %d units correct",
				e.QuestionID, e.Verdict, e.CorrectUnits, e.TotalUnits)))
	}
	return out
}

func verdictOf(s string) exercise.Verdict {
	switch s {
	case exercise.Correct.String():
		return exercise.Correct
	case exercise.Incorrect.String():
		return exercise.Incorrect
	}
	return exercise.Unanswered
}

func markOf(v exercise.Verdict) string {
	switch v {
	case exercise.Correct:
		return "✓"
	case exercise.Incorrect:
		return "✗"
	}
	return "·"
}
