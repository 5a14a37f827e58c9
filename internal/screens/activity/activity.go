// Package activity is the screen for working through one activity. It
// follows the session cursor: moving to another activity replaces the
// screen with a fresh one scrolled to the top.
package activity

import (
	"context"

	tea "charm.land/bubbletea/v2"

	act "github.com/abhisek/cinelingo/internal/activity"
	"github.com/abhisek/cinelingo/internal/exercise"
	"github.com/abhisek/cinelingo/internal/navigation"
	"github.com/abhisek/cinelingo/internal/render"
	"github.com/abhisek/cinelingo/internal/router"
	"github.com/abhisek/cinelingo/internal/screen"
	"github.com/abhisek/cinelingo/internal/screens/summary"
	"github.com/abhisek/cinelingo/internal/session"
	"github.com/abhisek/cinelingo/internal/ui/components"
	"github.com/abhisek/cinelingo/internal/ui/layout"
)

// Focus slots after the widgets.
const (
	slotPrevious = iota
	slotNext
	navSlots
)

// ActivityScreen shows the activity under the session cursor.
type ActivityScreen struct {
	sess *session.SessionState
	ctrl *act.Controller
	err  error

	focus   int
	cursors map[string]int
	blanks  map[string]int
	pool    int
	inputs  map[string]*components.TextInput
	scroll  int
}

var _ screen.Screen = (*ActivityScreen)(nil)
var _ screen.KeyHintProvider = (*ActivityScreen)(nil)

// New creates the screen for the activity under the session cursor. An
// activity that failed to load is shown as unavailable.
func New(sess *session.SessionState) *ActivityScreen {
	s := &ActivityScreen{
		sess:    sess,
		cursors: make(map[string]int),
		blanks:  make(map[string]int),
		inputs:  make(map[string]*components.TextInput),
	}
	s.ctrl, s.err = sess.Current()
	if s.ctrl != nil {
		s.seedInputs()
	}
	return s
}

func (s *ActivityScreen) seedInputs() {
	for _, q := range s.ctrl.QuestionSet().Questions {
		if q.Widget != exercise.WidgetFreeText {
			continue
		}
		ti := components.NewTextInput("type your answer", 200)
		ti.SetValue(s.ctrl.Inputs().Text.Draft(q.ID))
		s.inputs[q.ID] = &ti
	}
	s.syncInputs()
}

// syncInputs copies verdicts and locks from the attempt state onto the
// free-text fields.
func (s *ActivityScreen) syncInputs() {
	for _, w := range s.ctrl.Tree().Widgets {
		if ti, ok := s.inputs[w.QuestionID]; ok {
			ti.Mark(w.Verdict, w.Locked)
		}
	}
}

func (s *ActivityScreen) Init() tea.Cmd {
	return s.focusCmd()
}

func (s *ActivityScreen) Title() string {
	if s.ctrl == nil {
		return "Unavailable"
	}
	return s.ctrl.QuestionSet().Title
}

func (s *ActivityScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Focus"},
		{Key: "←→", Description: "Choose"},
		{Key: "Enter", Description: "Confirm"},
		{Key: "^S", Description: "Check"},
		{Key: "^R", Description: "Reset"},
		{Key: "^N/^P", Description: "Next/Prev"},
		{Key: "Esc", Description: "Menu"},
	}
}

func (s *ActivityScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case dismissFeedbackMsg:
		s.sess.Board().Dismiss(msg.Seq)
		return s, nil
	case tea.KeyMsg:
		before := s.sess.Board().Seq()
		cmd := s.handleKey(msg)
		return s, tea.Batch(cmd, s.scheduleDismiss(before))
	}
	return s, nil
}

// scheduleDismiss starts the auto-dismiss timer when a key press put up
// a new feedback message.
func (s *ActivityScreen) scheduleDismiss(before uint64) tea.Cmd {
	board := s.sess.Board()
	if board.Seq() == before {
		return nil
	}
	if _, ok := board.Current(); !ok {
		return nil
	}
	return dismissAfterCmd(board.Seq(), board.TTL())
}

func (s *ActivityScreen) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "ctrl+n":
		return s.next()
	case "ctrl+p":
		return s.previous()
	}
	if s.ctrl == nil {
		return nil
	}

	switch msg.String() {
	case "ctrl+s":
		s.blurText()
		_, _ = s.ctrl.SubmitBatch(s.ctrl.Inputs().Check())
		s.syncInputs()
		return nil
	case "ctrl+r":
		s.reset()
		return s.focusCmd()
	case "up", "shift+tab":
		return s.moveFocus(-1)
	case "down", "tab":
		return s.moveFocus(1)
	}

	tree := s.ctrl.Tree()
	if s.focus >= len(tree.Widgets) {
		return s.handleNavKey(msg)
	}
	w := tree.Widgets[s.focus]
	cmd := s.handleWidgetKey(tree, w, msg)
	s.syncInputs()
	return cmd
}

func (s *ActivityScreen) handleNavKey(msg tea.KeyMsg) tea.Cmd {
	prev, next := s.navButtons()
	var cmd tea.Cmd
	if prev.Focused {
		_, cmd = prev.Update(msg)
	} else {
		_, cmd = next.Update(msg)
	}
	return cmd
}

// navButtons builds the Previous and Next buttons for the current
// cursor position. Previous is hidden on the first activity.
func (s *ActivityScreen) navButtons() (components.Button, components.Button) {
	aff := s.sess.Cursor().Affordances()
	widgets := 0
	if s.ctrl != nil {
		widgets = len(s.ctrl.Tree().Widgets)
	}

	prev := components.NewButton("", nil)
	if aff.ShowPrevious {
		prev = components.NewButton(navigation.PrevLabel, s.previous)
		prev.Focused = s.focus == widgets+slotPrevious
	}
	next := components.NewButton(aff.NextLabel, s.next)
	next.Focused = s.focus == widgets+slotNext
	return prev, next
}

func (s *ActivityScreen) handleWidgetKey(tree render.Tree, w render.Widget, msg tea.KeyMsg) tea.Cmd {
	in := s.ctrl.Inputs()
	key := msg.String()

	switch {
	case w.Kind == exercise.WidgetFreeText:
		ti := s.inputs[w.QuestionID]
		if key == "enter" {
			if sub, ok := in.Text.Submit(w.QuestionID); ok {
				s.submit(sub, nil)
			}
			return nil
		}
		var cmd tea.Cmd
		*ti, cmd = ti.Update(msg)
		in.Text.Type(w.QuestionID, ti.Value())
		return cmd

	case w.Kind == exercise.WidgetMatchingPair, w.Kind == exercise.WidgetOrderedDrop:
		return s.handlePoolKey(tree, w, key)

	case len(w.Blanks) > 0:
		s.handleClozeKey(w, key)

	case w.Kind == exercise.WidgetSingleSelect:
		s.handleSelectKey(w, key)

	case w.Kind == exercise.WidgetMultiSelect:
		switch key {
		case "left":
			s.cycle(w.QuestionID, -1, len(w.Cells))
		case "right":
			s.cycle(w.QuestionID, 1, len(w.Cells))
		case "space", "enter":
			if len(w.Cells) > 0 {
				cell := w.Cells[s.cursors[w.QuestionID]]
				if err := in.Select.Toggle(w.QuestionID, cell.ID); err != nil {
					s.ctrl.Reject(err)
				}
			}
		}
	}
	return nil
}

func (s *ActivityScreen) handlePoolKey(tree render.Tree, w render.Widget, key string) tea.Cmd {
	in := s.ctrl.Inputs()
	n := len(tree.Pool)
	switch key {
	case "left":
		if n > 0 {
			s.pool = (s.pool - 1 + n) % n
		}
	case "right":
		if n > 0 {
			s.pool = (s.pool + 1) % n
		}
	case "space":
		if w.Kind == exercise.WidgetOrderedDrop && n > 0 {
			in.Drag.Pick(tree.Pool[s.pool%n].Tag)
		}
	case "enter":
		if w.Kind == exercise.WidgetOrderedDrop {
			if in.Drag.Held() == "" && n > 0 {
				in.Drag.Pick(tree.Pool[s.pool%n].Tag)
			}
			s.submit(in.Drag.Drop(w.QuestionID))
		} else {
			if n == 0 || !in.Pairs.Select(w.QuestionID) {
				return nil
			}
			s.submit(in.Pairs.Choose(tree.Pool[s.pool%n].Tag))
		}
		if left := len(s.ctrl.Tree().Pool); left > 0 {
			s.pool %= left
		} else {
			s.pool = 0
		}
	}
	return nil
}

func (s *ActivityScreen) handleClozeKey(w render.Widget, key string) {
	in := s.ctrl.Inputs()
	b := s.blanks[w.QuestionID]
	switch key {
	case "space":
		s.blanks[w.QuestionID] = (b + 1) % len(w.Blanks)
	case "left", "right":
		opts := w.Blanks[b]
		if len(opts) == 0 {
			return
		}
		i := -1
		if cur := in.Cloze.Blanks(w.QuestionID); b < len(cur) {
			for j, o := range opts {
				if o.Value == cur[b] {
					i = j
				}
			}
		}
		if key == "left" {
			i = (i - 1 + len(opts)) % len(opts)
		} else {
			i = (i + 1) % len(opts)
		}
		if err := in.Cloze.Set(w.QuestionID, b, opts[i].Value); err != nil {
			s.ctrl.Reject(err)
		}
	case "enter":
		s.submit(in.Cloze.Check(w.QuestionID))
	}
}

func (s *ActivityScreen) handleSelectKey(w render.Widget, key string) {
	in := s.ctrl.Inputs()
	switch key {
	case "left":
		s.cycle(w.QuestionID, -1, len(w.Options))
	case "right":
		s.cycle(w.QuestionID, 1, len(w.Options))
	case "space", "enter":
		if len(w.Options) == 0 {
			return
		}
		value := w.Options[s.cursors[w.QuestionID]].Value
		if w.Immediate {
			s.submit(in.Select.ChooseNow(w.QuestionID, value))
			return
		}
		if err := in.Select.Choose(w.QuestionID, value); err != nil {
			s.ctrl.Reject(err)
		}
	}
}

func (s *ActivityScreen) cycle(questionID string, delta, n int) {
	if n == 0 {
		return
	}
	s.cursors[questionID] = (s.cursors[questionID] + delta + n) % n
}

// submit forwards a captured submission, or reports the capture error.
func (s *ActivityScreen) submit(sub exercise.Submission, err error) {
	if err != nil {
		s.ctrl.Reject(err)
		return
	}
	_, _ = s.ctrl.Submit(sub)
}

// blurText submits the focused free-text draft when focus leaves it.
func (s *ActivityScreen) blurText() {
	tree := s.ctrl.Tree()
	if s.focus >= len(tree.Widgets) {
		return
	}
	w := tree.Widgets[s.focus]
	ti, ok := s.inputs[w.QuestionID]
	if !ok {
		return
	}
	ti.Blur()
	if sub, ok := s.ctrl.Inputs().Text.Blur(w.QuestionID); ok {
		s.submit(sub, nil)
	}
	s.syncInputs()
}

func (s *ActivityScreen) moveFocus(delta int) tea.Cmd {
	s.blurText()
	n := s.focusSlots()
	s.focus = (s.focus + delta + n) % n
	if !s.prevVisible() && s.focus == len(s.ctrl.Tree().Widgets)+slotPrevious {
		s.focus = (s.focus + delta + n) % n
	}
	return s.focusCmd()
}

func (s *ActivityScreen) focusSlots() int {
	if s.ctrl == nil {
		return navSlots
	}
	return len(s.ctrl.Tree().Widgets) + navSlots
}

func (s *ActivityScreen) prevVisible() bool {
	return s.sess.Cursor().Affordances().ShowPrevious
}

func (s *ActivityScreen) focusCmd() tea.Cmd {
	if s.ctrl == nil {
		return nil
	}
	tree := s.ctrl.Tree()
	if s.focus >= len(tree.Widgets) {
		return nil
	}
	if ti, ok := s.inputs[tree.Widgets[s.focus].QuestionID]; ok {
		return ti.Focus()
	}
	return nil
}

func (s *ActivityScreen) reset() {
	s.ctrl.Reset()
	s.focus = 0
	s.pool = 0
	s.scroll = 0
	clear(s.cursors)
	clear(s.blanks)
	for _, ti := range s.inputs {
		ti.SetValue("")
		ti.Blur()
	}
	s.syncInputs()
}

func (s *ActivityScreen) next() tea.Cmd {
	if s.ctrl != nil {
		s.blurText()
	}
	finishing := s.sess.Cursor().Affordances().NextLabel == navigation.FinishLabel
	s.sess.Next()
	if !s.sess.Cursor().AtMenu() {
		return replaceWith(New(s.sess))
	}
	if !finishing {
		return popCmd
	}
	sum, err := s.sess.BuildSummary(context.Background())
	if err != nil {
		return popCmd
	}
	return replaceWith(summary.New(sum))
}

func (s *ActivityScreen) previous() tea.Cmd {
	if s.ctrl != nil {
		s.blurText()
	}
	s.sess.Previous()
	if s.sess.Cursor().AtMenu() {
		return popCmd
	}
	return replaceWith(New(s.sess))
}

func replaceWith(next screen.Screen) tea.Cmd {
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: next}
	}
}

func popCmd() tea.Msg {
	return router.PopScreenMsg{}
}
