package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/cinelingo/internal/router"
	"github.com/abhisek/cinelingo/internal/screen"
	activityscreen "github.com/abhisek/cinelingo/internal/screens/activity"
	"github.com/abhisek/cinelingo/internal/screens/menu"
	"github.com/abhisek/cinelingo/internal/screens/welcome"
	"github.com/abhisek/cinelingo/internal/session"
	"github.com/abhisek/cinelingo/internal/ui/layout"
)

// AppModel is the root Bubble Tea model.
type AppModel struct {
	sess   *session.SessionState
	router *router.Router
	width  int
	height int
}

// Options configures the TUI.
type Options struct {
	// Splash shows the title card before the menu. It is skipped when
	// the session starts inside an activity.
	Splash bool
}

// newAppModel creates a new AppModel with the menu screen. When the
// session cursor already points at an activity, that activity is opened
// on top of the menu.
func newAppModel(sess *session.SessionState, opts Options) AppModel {
	var r *router.Router
	switch {
	case !sess.Cursor().AtMenu():
		r = router.New(menu.New(sess))
		r.Push(activityscreen.New(sess))
	case opts.Splash:
		r = router.New(welcome.New(func() screen.Screen { return menu.New(sess) }))
	default:
		r = router.New(menu.New(sess))
	}
	return AppModel{
		sess:   sess,
		router: r,
	}
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopToRootMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	tracker := m.sess.Tracker()
	header := layout.Header{
		Title:     title,
		Completed: tracker.OverallCount(),
		Total:     tracker.Total(),
	}.Render(m.width)
	footer := layout.RenderFooter(m.footerHints(active), m.width)

	content := m.router.View(m.width, layout.ContentHeight(m.height, header, footer))
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

func (m AppModel) footerHints(active screen.Screen) []layout.KeyHint {
	if p, ok := active.(screen.KeyHintProvider); ok {
		return append(p.KeyHints(), layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// Run starts the Bubble Tea program.
func Run(sess *session.SessionState, opts Options) error {
	p := tea.NewProgram(newAppModel(sess, opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
