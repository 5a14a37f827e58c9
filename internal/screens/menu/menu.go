package menu

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/cinelingo/internal/router"
	"github.com/abhisek/cinelingo/internal/screen"
	activityscreen "github.com/abhisek/cinelingo/internal/screens/activity"
	"github.com/abhisek/cinelingo/internal/screens/history"
	"github.com/abhisek/cinelingo/internal/screens/summary"
	"github.com/abhisek/cinelingo/internal/session"
	"github.com/abhisek/cinelingo/internal/ui/components"
	"github.com/abhisek/cinelingo/internal/ui/layout"
	"github.com/abhisek/cinelingo/internal/ui/theme"
)

const celebration = "🎉 All activities complete! Bravo! 🎬"

// MenuScreen lists every activity with its completion badge and the
// overall progress of the session.
type MenuScreen struct {
	sess *session.SessionState
	menu components.Menu
}

var _ screen.Screen = (*MenuScreen)(nil)
var _ screen.KeyHintProvider = (*MenuScreen)(nil)

// New creates a new MenuScreen.
func New(sess *session.SessionState) *MenuScreen {
	m := &MenuScreen{sess: sess}
	m.menu = components.NewMenu(m.items())
	return m
}

// Init runs whenever the menu becomes the active screen again. The
// cursor returns to the menu and the badges are refreshed.
func (m *MenuScreen) Init() tea.Cmd {
	m.sess.Menu()
	selected := m.menu.Selected
	m.menu = components.NewMenu(m.items())
	m.menu.Select(selected)
	return nil
}

func (m *MenuScreen) items() []components.MenuItem {
	var items []components.MenuItem
	for i, id := range m.sess.Cursor().IDs() {
		item := components.MenuItem{
			Label: fmt.Sprintf("%2d. %s", i+1, m.sess.Catalog().Title(id)),
		}
		if m.sess.Unavailable(id) != nil {
			item.Disabled = true
			item.Note = "unavailable"
		} else {
			if m.sess.Tracker().IsComplete(id) {
				item.Badge = "✓"
			}
			item.Action = m.open(id)
		}
		items = append(items, item)
	}

	items = append(items,
		components.MenuItem{Label: "Session summary", Action: m.openSummary},
		components.MenuItem{Label: "Answer log", Action: m.openHistory},
		components.MenuItem{Label: "Quit", Action: func() tea.Cmd { return tea.Quit }},
	)
	return items
}

func (m *MenuScreen) open(id string) func() tea.Cmd {
	return func() tea.Cmd {
		if err := m.sess.Jump(id); err != nil {
			return nil
		}
		return func() tea.Msg {
			return router.PushScreenMsg{Screen: activityscreen.New(m.sess)}
		}
	}
}

func (m *MenuScreen) openSummary() tea.Cmd {
	sum, err := m.sess.BuildSummary(context.Background())
	if err != nil {
		return nil
	}
	return func() tea.Msg {
		return router.PushScreenMsg{Screen: summary.New(sum)}
	}
}

func (m *MenuScreen) openHistory() tea.Cmd {
	return func() tea.Msg {
		return router.PushScreenMsg{Screen: history.New(m.sess)}
	}
}

func (m *MenuScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok && kmsg.String() == "ctrl+n" {
		m.sess.Next()
		if m.sess.Cursor().AtMenu() {
			return m, nil
		}
		return m, func() tea.Msg {
			return router.PushScreenMsg{Screen: activityscreen.New(m.sess)}
		}
	}

	var cmd tea.Cmd
	m.menu, cmd = m.menu.Update(msg)
	return m, cmd
}

func (m *MenuScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	tracker := m.sess.Tracker()

	var sections []string
	sections = append(sections, theme.Title.Width(cw).Render("Now Showing"))
	if m.sess.Celebrated() {
		sections = append(sections, components.Marquee(celebration, cw))
	}

	bar := components.NewCountBar("Overall", tracker.OverallCount(), tracker.Total(), cw-4).View()
	count := theme.Subtitle.Width(cw).Render(
		fmt.Sprintf("%d of %d complete", tracker.OverallCount(), tracker.Total()))
	sections = append(sections, bar+"\n"+count)
	sections = append(sections, components.Card(m.menu.View(), cw))

	content := strings.Join(sections, "\n\n")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func (m *MenuScreen) Title() string {
	return "Menu"
}

func (m *MenuScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Open"},
		{Key: "Ctrl+N", Description: "Next"},
	}
}
