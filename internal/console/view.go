package console

import (
	"fmt"
	"strings"

	"github.com/abhisek/cinelingo/internal/exercise"
	"github.com/abhisek/cinelingo/internal/render"
)

const helpText = `Navigation:
  goto <id>                 open an activity
  next | previous | menu    move through the activities
  show                      show the current activity or the menu
  progress                  show completion for every activity
Answering:
  drop <item> <target>      drop an item onto a target
  match <question> <item>   pair a question with an item
  pick <question> <option>  choose an option
  toggle <question> <cell>  flip a checkbox in a grid row
  blank <question> <n> <text>  fill blank n of a sentence
  type <question> <text>    type and submit a written answer
  check [question]          check the selections made so far
  reset                     clear every answer in this activity
  quit`

func (c *Console) help() {
	c.printf("%s\n", helpText)
}

func (c *Console) show() {
	ctrl, err := c.sess.Current()
	switch {
	case err != nil:
		c.printf("%s %s\n", c.sess.Cursor().Affordances().Indicator, msgUnavailable)
		return
	case ctrl == nil:
		c.showMenu()
		return
	}

	tree := ctrl.Tree()
	aff := c.sess.Cursor().Affordances()
	var b strings.Builder
	fmt.Fprintf(&b, "== Activity %d: %s ==  (%s)\n", tree.Number, tree.Title, aff.Indicator)
	if tree.Instructions != "" {
		fmt.Fprintf(&b, "%s\n", tree.Instructions)
	}
	fmt.Fprintf(&b, "Progress: %d/%d\n", tree.CorrectCount, tree.RequiredCount)
	if len(ctrl.QuestionSet().Items) > 0 {
		labels := make([]string, len(tree.Pool))
		for i, it := range tree.Pool {
			labels[i] = fmt.Sprintf("%s=%s", it.Tag, it.Label)
		}
		fmt.Fprintf(&b, "Items: %s\n", strings.Join(labels, ", "))
	}
	for _, w := range tree.Widgets {
		if w.Heading != "" {
			fmt.Fprintf(&b, "-- %s --\n", w.Heading)
		}
		fmt.Fprintf(&b, "  [%s] %s %s%s\n", w.QuestionID, mark(w.Verdict), w.Prompt, describe(w))
	}

	var nav []string
	if aff.ShowPrevious {
		nav = append(nav, "previous")
	}
	nav = append(nav, aff.NextLabel)
	fmt.Fprintf(&b, "%s\n", strings.Join(nav, " | "))
	c.printf("%s", b.String())
}

func (c *Console) showMenu() {
	tracker := c.sess.Tracker()
	c.printf("== Menu ==  %d of %d complete\n", tracker.OverallCount(), tracker.Total())
	for i, id := range c.sess.Cursor().IDs() {
		badge := " "
		switch {
		case c.sess.Unavailable(id) != nil:
			badge = "!"
		case tracker.IsComplete(id):
			badge = "✓"
		}
		c.printf("  %s %2d. %-20s %s\n", badge, i+1, id, c.sess.Catalog().Title(id))
	}
}

func (c *Console) progress() {
	tracker := c.sess.Tracker()
	for _, id := range c.sess.Cursor().IDs() {
		if c.sess.Unavailable(id) != nil {
			c.printf("  %-20s unavailable\n", id)
			continue
		}
		p := c.sess.ActivityProgress(id)
		done := ""
		if tracker.IsComplete(id) {
			done = " ✓"
		}
		c.printf("  %-20s %d/%d%s\n", id, p.CorrectCount, p.RequiredCount, done)
	}
	c.printf("Overall: %d of %d complete (%d%%)\n", tracker.OverallCount(), tracker.Total(), tracker.Percent())
}

func mark(v exercise.Verdict) string {
	switch v {
	case exercise.Correct:
		return "✓"
	case exercise.Incorrect:
		return "✗"
	}
	return "·"
}

// describe lists what can be answered for a widget.
func describe(w render.Widget) string {
	switch {
	case w.Placed != nil:
		return " -> " + w.Placed.Label
	case len(w.Blanks) > 0:
		parts := make([]string, len(w.Blanks))
		for i, opts := range w.Blanks {
			parts[i] = fmt.Sprintf("%d:%s", i+1, values(opts))
		}
		return "  {" + strings.Join(parts, " ") + "}"
	case len(w.Options) > 0:
		return "  {" + values(w.Options) + "}"
	case len(w.Cells) > 0:
		cells := make([]string, len(w.Cells))
		for i, cell := range w.Cells {
			box := "[ ]"
			if cell.Checked {
				box = "[x]"
			}
			cells[i] = fmt.Sprintf("%s%s=%s", box, cell.ID, cell.Label)
		}
		return "  " + strings.Join(cells, " ")
	case w.Answer.Text != "":
		return "  \"" + w.Answer.Text + "\""
	}
	return ""
}

func values(opts []exercise.Option) string {
	vs := make([]string, len(opts))
	for i, o := range opts {
		vs[i] = o.Value
	}
	return strings.Join(vs, "/")
}
