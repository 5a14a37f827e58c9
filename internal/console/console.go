// Package console is a line-oriented front end to a session, used by the
// practice command. Each line is one command; feedback is printed after
// the command that produced it.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/abhisek/cinelingo/internal/activity"
	"github.com/abhisek/cinelingo/internal/exercise"
	"github.com/abhisek/cinelingo/internal/navigation"
	"github.com/abhisek/cinelingo/internal/session"
)

const prompt = "cinelingo> "

const (
	msgOpenFirst   = "Open an activity first (goto <id> or next)."
	msgUnavailable = "This activity is unavailable."
	msgUnknown     = "Unknown question, item or option. Type show to see them."
	celebration    = "🎉 All activities complete! Bravo!"
)

// ErrQuit is returned by Exec for the quit command.
var ErrQuit = errors.New("quit")

// Console interprets practice commands against a session.
type Console struct {
	sess *session.SessionState
	out  io.Writer
	log  *zap.Logger

	announced bool
}

// New creates a console writing to out.
func New(sess *session.SessionState, out io.Writer, log *zap.Logger) *Console {
	if log == nil {
		log = zap.NewNop()
	}
	return &Console{sess: sess, out: out, log: log}
}

// Run reads commands from in until quit, end of input or ctx is done.
func (c *Console) Run(ctx context.Context, in io.Reader) error {
	scanner := bufio.NewScanner(in)
	c.printf("Type help for commands.\n")
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		c.printf("%s", prompt)
		if !scanner.Scan() {
			c.printf("\n")
			return scanner.Err()
		}
		if err := c.Exec(scanner.Text()); errors.Is(err, ErrQuit) {
			return nil
		}
	}
}

// Exec runs one command line. Invalid input is reported to the learner
// and never changes the session.
func (c *Console) Exec(line string) error {
	name, rest := cut(line)
	if name == "" {
		return nil
	}
	c.log.Debug("console command", zap.String("command", name))

	before := c.sess.Board().Seq()
	switch strings.ToLower(name) {
	case "quit", "exit":
		return ErrQuit
	case "help":
		c.help()
		return nil
	case "goto":
		c.gotoActivity(rest)
	case "next":
		c.sess.Next()
		c.show()
	case "previous", "prev":
		c.sess.Previous()
		c.show()
	case "menu":
		c.sess.Menu()
		c.show()
	case "show":
		c.show()
	case "progress":
		c.progress()
	default:
		c.withController(name, rest)
	}
	c.printFeedback(before)
	return nil
}

func (c *Console) gotoActivity(id string) {
	id = strings.TrimSpace(id)
	if err := c.sess.Jump(id); err != nil {
		var target *navigation.InvalidTargetError
		if errors.As(err, &target) {
			c.printf("No activity named %q.\n", target.Target)
		}
		return
	}
	c.show()
}

// withController runs a command that acts on the current activity.
func (c *Console) withController(name, rest string) {
	ctrl, err := c.sess.Current()
	switch {
	case err != nil:
		c.printf("%s\n", msgUnavailable)
		return
	case ctrl == nil && isActivityCommand(name):
		c.printf("%s\n", msgOpenFirst)
		return
	case ctrl == nil:
		c.printf("Unknown command %q. Type help for commands.\n", name)
		return
	}

	in := ctrl.Inputs()
	args := strings.Fields(rest)
	switch strings.ToLower(name) {
	case "drop":
		if !c.need(args, 2, "drop <item> <target>") {
			return
		}
		sub, err := in.Drag.DropItem(args[0], args[1])
		c.submit(ctrl, sub, err)

	case "match":
		if !c.need(args, 2, "match <question> <item>") {
			return
		}
		if !in.Pairs.Select(args[0]) {
			c.unknownQuestion(ctrl, args[0])
			return
		}
		sub, err := in.Pairs.Choose(args[1])
		c.submit(ctrl, sub, err)

	case "pick":
		if !c.need(args, 2, "pick <question> <option>") {
			return
		}
		q, ok := ctrl.QuestionSet().Question(args[0])
		if !ok {
			c.printf("%s\n", msgUnknown)
			return
		}
		if q.IsBatched() {
			c.reject(ctrl, in.Select.Choose(q.ID, args[1]))
			return
		}
		sub, err := in.Select.ChooseNow(q.ID, args[1])
		c.submit(ctrl, sub, err)

	case "toggle":
		if !c.need(args, 2, "toggle <question> <cell>") {
			return
		}
		c.reject(ctrl, in.Select.Toggle(args[0], args[1]))

	case "blank":
		qid, rest := cut(rest)
		num, text := cut(rest)
		n, err := strconv.Atoi(num)
		if qid == "" || err != nil || strings.TrimSpace(text) == "" {
			c.printf("Usage: blank <question> <n> <text>\n")
			return
		}
		c.reject(ctrl, in.Cloze.Set(qid, n-1, strings.TrimSpace(text)))

	case "type":
		qid, text := cut(rest)
		if qid == "" || strings.TrimSpace(text) == "" {
			c.printf("Usage: type <question> <text>\n")
			return
		}
		if _, ok := ctrl.QuestionSet().Question(qid); !ok {
			c.printf("%s\n", msgUnknown)
			return
		}
		in.Text.Type(qid, text)
		if sub, ok := in.Text.Submit(qid); ok {
			c.submit(ctrl, sub, nil)
		}

	case "check":
		c.check(ctrl, args)

	case "reset":
		ctrl.Reset()

	default:
		c.printf("Unknown command %q. Type help for commands.\n", name)
	}
}

// check submits one question, or runs the group check without one.
func (c *Console) check(ctrl *activity.Controller, args []string) {
	in := ctrl.Inputs()
	if len(args) == 0 {
		_, _ = ctrl.SubmitBatch(in.Check())
		return
	}
	q, ok := ctrl.QuestionSet().Question(args[0])
	if !ok {
		c.printf("%s\n", msgUnknown)
		return
	}
	switch {
	case q.IsCloze():
		sub, err := in.Cloze.Check(q.ID)
		c.submit(ctrl, sub, err)
	case q.Widget == exercise.WidgetFreeText:
		if sub, ok := in.Text.Submit(q.ID); ok {
			c.submit(ctrl, sub, nil)
		}
	default:
		var subs []exercise.Submission
		for _, sub := range in.Check() {
			if sub.QuestionID == q.ID {
				subs = append(subs, sub)
			}
		}
		_, _ = ctrl.SubmitBatch(subs)
	}
}

func (c *Console) submit(ctrl *activity.Controller, sub exercise.Submission, err error) {
	if err != nil {
		c.reject(ctrl, err)
		return
	}
	_, err = ctrl.Submit(sub)
	var cfgErr *exercise.ConfigError
	if errors.As(err, &cfgErr) {
		c.printf("%s\n", msgUnknown)
	}
}

func (c *Console) reject(ctrl *activity.Controller, err error) {
	if err == nil {
		return
	}
	if !ctrl.Reject(err) {
		c.printf("%s\n", msgUnknown)
	}
}

func (c *Console) unknownQuestion(ctrl *activity.Controller, qid string) {
	if _, ok := ctrl.QuestionSet().Question(qid); !ok {
		c.printf("%s\n", msgUnknown)
	}
}

func (c *Console) need(args []string, n int, usage string) bool {
	if len(args) < n {
		c.printf("Usage: %s\n", usage)
		return false
	}
	return true
}

func (c *Console) printFeedback(before uint64) {
	board := c.sess.Board()
	if board.Seq() == before {
		return
	}
	if msg, ok := board.Current(); ok {
		c.printf("%s\n", msg.Text)
	}
	if c.sess.Celebrated() && !c.announced {
		c.announced = true
		c.printf("%s\n", celebration)
	}
}

func (c *Console) printf(format string, args ...any) {
	fmt.Fprintf(c.out, format, args...)
}

func isActivityCommand(name string) bool {
	switch strings.ToLower(name) {
	case "drop", "match", "pick", "toggle", "blank", "type", "check", "reset":
		return true
	}
	return false
}

// cut splits off the first word of s.
func cut(s string) (string, string) {
	s = strings.TrimSpace(s)
	head, tail, _ := strings.Cut(s, " ")
	return head, strings.TrimSpace(tail)
}
