package app

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/cinelingo/internal/content"
	"github.com/abhisek/cinelingo/internal/screens/menu"
	"github.com/abhisek/cinelingo/internal/screens/welcome"
	"github.com/abhisek/cinelingo/internal/session"
)

func testSession(t *testing.T) *session.SessionState {
	t.Helper()
	cat, err := content.Default()
	if err != nil {
		t.Fatalf("default catalog: %v", err)
	}
	return session.New(session.Deps{Catalog: cat})
}

// drive feeds msg through the model and then any message its command
// produces, as the runtime would.
func drive(m AppModel, msg tea.Msg) AppModel {
	next, cmd := m.Update(msg)
	m = next.(AppModel)
	if cmd != nil {
		next, _ = m.Update(cmd())
		m = next.(AppModel)
	}
	return m
}

func TestStartsAtMenu(t *testing.T) {
	m := newAppModel(testSession(t), Options{})
	if m.router.Depth() != 1 {
		t.Errorf("depth = %d, want 1", m.router.Depth())
	}
	if _, ok := m.router.Active().(*menu.MenuScreen); !ok {
		t.Errorf("active = %T, want the menu", m.router.Active())
	}
}

func TestStartActivityOpensOnTopOfMenu(t *testing.T) {
	sess := testSession(t)
	if err := sess.Jump("cinema-vocab"); err != nil {
		t.Fatalf("jump: %v", err)
	}
	m := newAppModel(sess, Options{})
	if m.router.Depth() != 2 {
		t.Fatalf("depth = %d, want 2", m.router.Depth())
	}

	m = drive(m, tea.KeyPressMsg{Code: tea.KeyEscape})
	if m.router.Depth() != 1 {
		t.Errorf("depth after Esc = %d, want 1", m.router.Depth())
	}
	if !sess.Cursor().AtMenu() {
		t.Error("Esc should return the cursor to the menu")
	}
}

func TestEnterOpensFirstActivity(t *testing.T) {
	sess := testSession(t)
	m := newAppModel(sess, Options{})

	m = drive(m, tea.KeyPressMsg{Code: tea.KeyEnter})
	if m.router.Depth() != 2 {
		t.Fatalf("depth = %d, want 2", m.router.Depth())
	}
	if got := sess.Cursor().Current(); got != "genres" {
		t.Errorf("cursor = %q, want %q", got, "genres")
	}
	if m.router.Active().Title() != "Film genres" {
		t.Errorf("title = %q", m.router.Active().Title())
	}
}

func TestWindowSize(t *testing.T) {
	m := newAppModel(testSession(t), Options{})
	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m = next.(AppModel)
	if m.width != 120 || m.height != 40 {
		t.Errorf("size = %dx%d, want 120x40", m.width, m.height)
	}
}

func TestSplashHandsOverToMenu(t *testing.T) {
	m := newAppModel(testSession(t), Options{Splash: true})
	if _, ok := m.router.Active().(*welcome.WelcomeScreen); !ok {
		t.Fatalf("active = %T, want the title card", m.router.Active())
	}

	m = drive(m, tea.KeyPressMsg{Code: tea.KeyEnter})
	if _, ok := m.router.Active().(*menu.MenuScreen); !ok {
		t.Errorf("active = %T, want the menu", m.router.Active())
	}
	if m.router.Depth() != 1 {
		t.Errorf("depth = %d, want 1", m.router.Depth())
	}
}

func TestSplashSkippedForStartActivity(t *testing.T) {
	sess := testSession(t)
	if err := sess.Jump("genres"); err != nil {
		t.Fatalf("jump: %v", err)
	}
	m := newAppModel(sess, Options{Splash: true})
	if m.router.Depth() != 2 || m.router.Active().Title() != "Film genres" {
		t.Errorf("expected the start activity over the menu, got %T at depth %d", m.router.Active(), m.router.Depth())
	}
}
