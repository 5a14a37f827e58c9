// Package welcome is the opening title card shown before the menu.
package welcome

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/cinelingo/internal/router"
	"github.com/abhisek/cinelingo/internal/screen"
	"github.com/abhisek/cinelingo/internal/ui/theme"
)

const (
	tickInterval = 100 * time.Millisecond
	phase1End    = 400 * time.Millisecond
	phase2End    = 1200 * time.Millisecond
	totalDur     = 3000 * time.Millisecond
)

const tagline = "Lights, camera, English!"

const clapperArt = `  ╱▚▚▚▚▚▚▚▚▚▚▚╲
 ┌─────────────┐
 │ SCENE  TAKE │
 │   01     1  │
 │  ▶ ROLLING  │
 └─────────────┘`

// bulb frames chase around the clapperboard like marquee lights
var bulbFrames = []string{"●", "○"}

type tickMsg time.Time

// WelcomeScreen plays a short title card, then hands over to the screen
// produced by homeFactory on the first key press.
type WelcomeScreen struct {
	homeFactory  func() screen.Screen
	elapsed      time.Duration
	tickCount    int
	transitioned bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)

// New creates a WelcomeScreen that will transition to the screen produced by homeFactory.
func New(homeFactory func() screen.Screen) *WelcomeScreen {
	return &WelcomeScreen{
		homeFactory: homeFactory,
	}
}

func (w *WelcomeScreen) Title() string {
	return ""
}

func (w *WelcomeScreen) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case tickMsg:
		if w.transitioned {
			return w, nil
		}
		if w.elapsed < totalDur {
			w.elapsed += tickInterval
		}
		w.tickCount++
		return w, tick()

	case tea.KeyPressMsg:
		// Any key skips the rest of the title card.
		return w, w.transition()
	}

	return w, nil
}

func (w *WelcomeScreen) transition() tea.Cmd {
	if w.transitioned {
		return nil
	}
	w.transitioned = true
	homeScreen := w.homeFactory()
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: homeScreen}
	}
}

func (w *WelcomeScreen) View(width, height int) string {
	var sections []string

	rendered := lipgloss.NewStyle().Foreground(theme.Text).Render(clapperArt)

	if w.elapsed >= phase1End {
		on := lipgloss.NewStyle().Foreground(theme.Secondary)
		off := lipgloss.NewStyle().Foreground(theme.Primary)
		left, right := on, off
		if w.tickCount%2 == 1 {
			left, right = off, on
		}
		frame := bulbFrames[w.tickCount%len(bulbFrames)]

		lines := strings.Split(rendered, "\n")
		for i := 1; i < len(lines); i += 2 {
			lines[i] = left.Render(frame) + "  " + lines[i] + "  " + right.Render(frame)
		}
		rendered = strings.Join(lines, "\n")
	}
	sections = append(sections, rendered)

	if w.elapsed >= phase2End {
		sections = append(sections, "", RenderBanner(width), "")
		sections = append(sections, lipgloss.NewStyle().
			Foreground(theme.Secondary).
			Bold(true).
			Render(tagline))
	}

	if w.elapsed >= totalDur {
		sections = append(sections, "", lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Italic(true).
			Render("press any key to enter the theatre"))
	}

	content := strings.Join(sections, "\n")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
