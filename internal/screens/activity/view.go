package activity

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/cinelingo/internal/exercise"
	"github.com/abhisek/cinelingo/internal/render"
	"github.com/abhisek/cinelingo/internal/ui/components"
	"github.com/abhisek/cinelingo/internal/ui/theme"
)

const blankMarker = "___"

func (s *ActivityScreen) View(width, height int) string {
	cw := width - 4
	if s.ctrl == nil {
		return s.renderUnavailable(cw, height)
	}
	tree := s.ctrl.Tree()

	top := s.renderTop(tree, cw)
	bottom := s.renderBottom(cw)

	lines, focusStart, focusEnd := s.renderBody(tree, cw)
	bodyHeight := height - lipgloss.Height(top) - lipgloss.Height(bottom)
	body := s.window(lines, focusStart, focusEnd, bodyHeight)

	return top + "\n" + body + "\n" + bottom
}

func (s *ActivityScreen) renderUnavailable(cw, height int) string {
	var b strings.Builder
	b.WriteString(s.indicator(cw))
	b.WriteString("\n\n")
	b.WriteString(theme.Incorrect.Render("  This activity is unavailable right now."))
	b.WriteString("\n")
	b.WriteString(theme.Hint.Render("  Use Ctrl+N / Ctrl+P to move on, or Esc for the menu."))
	b.WriteString("\n\n")
	b.WriteString(s.renderNav(cw))
	return lipgloss.NewStyle().Height(height).Render(b.String())
}

func (s *ActivityScreen) indicator(cw int) string {
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Right).
		Foreground(theme.TextDim).
		Render(s.sess.Cursor().Affordances().Indicator)
}

func (s *ActivityScreen) renderTop(tree render.Tree, cw int) string {
	var b strings.Builder
	b.WriteString(s.indicator(cw))
	b.WriteString("\n")
	b.WriteString(theme.Title.Width(cw).Render(fmt.Sprintf("Activity %d: %s", tree.Number, tree.Title)))
	b.WriteString("\n")
	if tree.Instructions != "" {
		b.WriteString(theme.Subtitle.Width(cw).Render(tree.Instructions))
		b.WriteString("\n")
	}
	b.WriteString("  " + components.NewCountBar("Progress", tree.CorrectCount, tree.RequiredCount, cw-4).View())
	if len(tree.Pool) > 0 || len(s.ctrl.QuestionSet().Items) > 0 {
		b.WriteString("\n")
		b.WriteString(s.renderPool(tree))
	}
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", cw)))
	return b.String()
}

func (s *ActivityScreen) renderPool(tree render.Tree) string {
	if len(tree.Pool) == 0 {
		return theme.Hint.Render("  All items placed.")
	}
	held := s.ctrl.Inputs().Drag.Held()
	poolFocused := false
	if s.focus < len(tree.Widgets) {
		k := tree.Widgets[s.focus].Kind
		poolFocused = k == exercise.WidgetMatchingPair || k == exercise.WidgetOrderedDrop
	}

	chips := make([]string, len(tree.Pool))
	for i, it := range tree.Pool {
		style := theme.Chip
		if it.Tag == held {
			style = theme.ChipHeld
		}
		if poolFocused && i == s.pool%len(tree.Pool) {
			style = style.Underline(true).Bold(true)
		}
		chips[i] = style.Render(it.Label)
	}
	return "  " + theme.Hint.Render("Items:") + " " + strings.Join(chips, " ")
}

// renderBody returns the scrollable lines and the line range of the
// focused widget.
func (s *ActivityScreen) renderBody(tree render.Tree, cw int) ([]string, int, int) {
	var lines []string
	focusStart, focusEnd := 0, 0
	for i, w := range tree.Widgets {
		if w.Heading != "" {
			lines = append(lines, "", theme.Section.Render("  "+w.Heading))
		}
		start := len(lines)
		lines = append(lines, strings.Split(s.renderWidget(w, i == s.focus, cw), "\n")...)
		lines = append(lines, "")
		if i == s.focus {
			focusStart, focusEnd = start, len(lines)
		}
	}

	start := len(lines)
	lines = append(lines, strings.Split(s.renderNav(cw), "\n")...)
	if s.focus >= len(tree.Widgets) {
		focusStart, focusEnd = start, len(lines)
	}
	return lines, focusStart, focusEnd
}

// window keeps the focused lines visible, like a scrolling list.
func (s *ActivityScreen) window(lines []string, focusStart, focusEnd, height int) string {
	if height <= 0 {
		return ""
	}
	if focusStart < s.scroll {
		s.scroll = focusStart
	}
	if focusEnd > s.scroll+height {
		s.scroll = focusEnd - height
	}
	s.scroll = max(0, min(s.scroll, max(0, len(lines)-height)))

	end := min(len(lines), s.scroll+height)
	visible := lines[s.scroll:end]
	return lipgloss.NewStyle().Height(height).Render(strings.Join(visible, "\n"))
}

func (s *ActivityScreen) renderWidget(w render.Widget, focused bool, cw int) string {
	marker := "  "
	if focused {
		marker = theme.Selected.Render("▸ ")
	}

	prompt := w.Prompt
	if len(w.Blanks) > 0 {
		prompt = s.renderCloze(w, focused)
	}
	head := marker + theme.Body.Render(prompt) + verdictMark(w.Verdict)

	var body string
	switch {
	case w.Kind == exercise.WidgetMatchingPair, w.Kind == exercise.WidgetOrderedDrop:
		body = renderTarget(w)
	case len(w.Blanks) > 0:
		if focused && !w.Locked {
			body = theme.Hint.Render("←→ choose · Space next blank · Enter check")
		}
	case w.Kind == exercise.WidgetSingleSelect:
		chosen := w.Answer.Text
		if c := s.ctrl.Inputs().Select.Choice(w.QuestionID); c != "" && !w.Locked {
			chosen = c
		}
		body = components.ChoiceRow{
			Options: w.Options,
			Chosen:  chosen,
			Cursor:  s.cursors[w.QuestionID],
			Focused: focused,
			Verdict: w.Verdict,
		}.View()
	case w.Kind == exercise.WidgetMultiSelect:
		row := components.CheckRow{Cursor: s.cursors[w.QuestionID], Focused: focused}
		for _, c := range w.Cells {
			row.Labels = append(row.Labels, c.Label)
			row.Checked = append(row.Checked, c.Checked || s.ctrl.Inputs().Select.Checked(w.QuestionID, c.ID))
			row.Verdict = append(row.Verdict, c.Verdict)
		}
		body = row.View()
	case w.Kind == exercise.WidgetFreeText:
		if ti, ok := s.inputs[w.QuestionID]; ok {
			body = ti.View()
		}
	}

	if body == "" {
		return lipgloss.NewStyle().Width(cw).Render(head)
	}
	return lipgloss.NewStyle().Width(cw).Render(head) + "\n    " + body
}

func (s *ActivityScreen) renderCloze(w render.Widget, focused bool) string {
	values := s.ctrl.Inputs().Cloze.Blanks(w.QuestionID)
	if w.Locked || len(values) == 0 {
		values = w.Answer.Parts
	}
	segments := strings.Split(w.Prompt, blankMarker)
	var b strings.Builder
	for i, seg := range segments {
		b.WriteString(seg)
		if i == len(segments)-1 {
			break
		}
		v := ""
		if i < len(values) {
			v = values[i]
		}
		b.WriteString(components.Blank(v, focused && !w.Locked && i == s.blanks[w.QuestionID]))
	}
	return b.String()
}

func renderTarget(w render.Widget) string {
	if w.Placed == nil {
		return theme.Pending.Render("→ [ drop an item here ]")
	}
	return theme.ForVerdict(w.Verdict).Render("→ " + w.Placed.Label)
}

func verdictMark(v exercise.Verdict) string {
	switch v {
	case exercise.Correct:
		return "  " + theme.Correct.Render("✓")
	case exercise.Incorrect:
		return "  " + theme.Incorrect.Render("✗")
	}
	return ""
}

func (s *ActivityScreen) renderNav(cw int) string {
	prev, next := s.navButtons()
	row := lipgloss.JoinHorizontal(lipgloss.Center, prev.View(), "  ", next.View())
	return lipgloss.PlaceHorizontal(cw, lipgloss.Center, row)
}

func (s *ActivityScreen) renderBottom(cw int) string {
	msg, ok := s.sess.Board().Current()
	if !ok {
		return ""
	}
	return components.Toast(msg.Text, theme.ForFeedback(msg.Kind), cw)
}
