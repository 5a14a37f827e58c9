// Package activity drives one activity: it validates submissions, keeps
// the attempt state, reports feedback and announces completion. One
// generic Controller serves every activity.
package activity

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/cinelingo/internal/capture"
	"github.com/abhisek/cinelingo/internal/exercise"
	"github.com/abhisek/cinelingo/internal/feedback"
	"github.com/abhisek/cinelingo/internal/render"
	"github.com/abhisek/cinelingo/internal/store"
)

// Feedback receives exactly one message per Submit or SubmitBatch call.
type Feedback interface {
	Display(message string, kind feedback.Kind)
}

// CompletionFunc is called once when an activity becomes complete.
type CompletionFunc func(activityID string)

// Progress is the derived completion state of an activity.
type Progress struct {
	ActivityID    string
	CorrectCount  int
	RequiredCount int
	Completed     bool
}

// Percent returns completion as 0-100.
func (p Progress) Percent() int {
	if p.RequiredCount == 0 {
		return 0
	}
	return p.CorrectCount * 100 / p.RequiredCount
}

// Controller owns the attempt state of one activity instance.
type Controller struct {
	set       exercise.QuestionSet
	state     *exercise.AttemptState
	inputs    *Inputs
	feedback  Feedback
	onDone    CompletionFunc
	journal   store.EventRepo
	sessionID string
	log       *zap.Logger
	now       func() time.Time
	notified  bool
}

// Option configures a Controller.
type Option func(*Controller)

// WithFeedback sets the feedback collaborator.
func WithFeedback(f Feedback) Option {
	return func(c *Controller) { c.feedback = f }
}

// WithCompletion sets the completion listener.
func WithCompletion(fn CompletionFunc) Option {
	return func(c *Controller) { c.onDone = fn }
}

// WithJournal records answers, resets and completions under sessionID.
func WithJournal(repo store.EventRepo, sessionID string) Option {
	return func(c *Controller) {
		c.journal = repo
		c.sessionID = sessionID
	}
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *Controller) { c.log = l }
}

// WithClock sets the time source for submissions and journal entries.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

type discard struct{}

func (discard) Display(string, feedback.Kind) {}

// New creates a Controller for a loaded question set.
func New(set exercise.QuestionSet, opts ...Option) *Controller {
	c := &Controller{
		set:      set,
		state:    exercise.NewAttemptState(),
		feedback: discard{},
		log:      zap.NewNop(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.log = c.log.With(zap.String("activity", set.ActivityID))
	c.inputs = newInputs(set, c, c.now)
	return c
}

// QuestionSet returns the activity configuration.
func (c *Controller) QuestionSet() exercise.QuestionSet {
	return c.set
}

// ID returns the activity ID.
func (c *Controller) ID() string {
	return c.set.ActivityID
}

// Inputs returns the capture adapters bound to this activity.
func (c *Controller) Inputs() *Inputs {
	return c.inputs
}

// IsLocked reports whether a unit ignores further submissions.
func (c *Controller) IsLocked(unitID string) bool {
	return c.state.IsLocked(unitID)
}

// Entry returns the recorded state of a unit.
func (c *Controller) Entry(unitID string) exercise.Entry {
	return c.state.Entry(unitID)
}

// Tree renders the activity in its current state.
func (c *Controller) Tree() render.Tree {
	return render.Render(c.set, c.state)
}

// Progress returns the activity's completion state.
func (c *Controller) Progress() Progress {
	correct := c.state.CorrectCount()
	required := c.set.RequiredCount()
	return Progress{
		ActivityID:    c.set.ActivityID,
		CorrectCount:  correct,
		RequiredCount: required,
		Completed:     required > 0 && correct >= required,
	}
}

// Submit validates one submission from an immediate widget.
//
// A submission to a fully locked question returns exercise.ErrLocked and
// displays nothing. A multi-part answer with empty parts returns an
// *exercise.IncompleteSubmissionError and reprompts without changing any
// verdict. Unknown questions return an *exercise.ConfigError.
func (c *Controller) Submit(sub exercise.Submission) (exercise.Outcome, error) {
	q, err := c.resolve(sub)
	if err != nil {
		return exercise.Outcome{}, err
	}
	if c.questionLocked(q) {
		return exercise.Outcome{}, exercise.ErrLocked
	}
	if err := checkComplete(q, sub); err != nil {
		c.feedback.Display(msgSelectBoth, feedback.Info)
		return exercise.Outcome{}, err
	}

	out := c.apply(q, sub)

	msg, kind := msgCorrect, feedback.Success
	if out.Verdict != exercise.Correct {
		msg, kind = incorrectMessage(q, out), feedback.Failure
	}
	if c.checkCompletion() {
		msg, kind = c.completionMessage(), feedback.Success
	}
	c.feedback.Display(msg, kind)
	return out, nil
}

// SubmitBatch validates every submission of a group check and displays
// a single summary. Locked questions in the batch are skipped. The batch
// is rejected as a whole if any submission is unknown or incomplete.
func (c *Controller) SubmitBatch(subs []exercise.Submission) ([]exercise.Outcome, error) {
	type pending struct {
		q   exercise.Question
		sub exercise.Submission
	}
	var work []pending
	for _, sub := range subs {
		q, err := c.resolve(sub)
		if err != nil {
			return nil, err
		}
		if c.questionLocked(q) {
			continue
		}
		if err := checkComplete(q, sub); err != nil {
			c.feedback.Display(msgSelectBoth, feedback.Info)
			return nil, err
		}
		work = append(work, pending{q: q, sub: sub})
	}

	if len(work) == 0 {
		c.feedback.Display(msgNothingToCheck, feedback.Info)
		return nil, nil
	}

	outcomes := make([]exercise.Outcome, len(work))
	correct := 0
	for i, p := range work {
		outcomes[i] = c.apply(p.q, p.sub)
		if outcomes[i].Verdict == exercise.Correct {
			correct++
		}
	}

	msg, kind := batchMessage(correct, len(work)), feedback.Failure
	if correct == len(work) {
		kind = feedback.Success
	}
	if c.checkCompletion() {
		msg, kind = c.completionMessage(), feedback.Success
	}
	c.feedback.Display(msg, kind)
	return outcomes, nil
}

// Reject reports a capture error to the learner. It returns false for
// errors that are not recoverable prompts.
func (c *Controller) Reject(err error) bool {
	switch {
	case errors.Is(err, exercise.ErrIncompleteSubmission):
		c.feedback.Display(msgSelectBoth, feedback.Info)
	case errors.Is(err, capture.ErrNothingSelected):
		c.feedback.Display(msgSelectFirst, feedback.Info)
	case errors.Is(err, capture.ErrAlreadyPlaced):
		c.feedback.Display(msgAlreadyMatched, feedback.Info)
	case errors.Is(err, exercise.ErrLocked):
		// Locked units stay silent.
	default:
		var cfgErr *exercise.ConfigError
		if errors.As(err, &cfgErr) {
			c.log.Warn("rejected input", zap.Error(err))
		}
		return false
	}
	return true
}

// Reset clears every answer, verdict and lock and re-arms the
// completion notification. Overall progress is not touched.
func (c *Controller) Reset() {
	c.log.Info("activity reset", zap.Int("answered", c.state.Len()))
	c.state.Clear()
	c.inputs.reset()
	c.notified = false
	c.record(func(ctx context.Context) error {
		return c.journal.AppendActivityEvent(ctx, store.ActivityEventData{
			SessionID:  c.sessionID,
			ActivityID: c.set.ActivityID,
			Action:     store.ActionReset,
			Timestamp:  c.now(),
		})
	})
	c.feedback.Display(msgReset, feedback.Info)
}

func (c *Controller) resolve(sub exercise.Submission) (exercise.Question, error) {
	if sub.ActivityID != "" && sub.ActivityID != c.set.ActivityID {
		err := &exercise.ConfigError{
			ActivityID: sub.ActivityID,
			QuestionID: sub.QuestionID,
			Reason:     "submission routed to activity " + c.set.ActivityID,
		}
		c.log.Error("misrouted submission", zap.Error(err))
		return exercise.Question{}, err
	}
	q, ok := c.set.Question(sub.QuestionID)
	if !ok {
		err := &exercise.ConfigError{
			ActivityID: c.set.ActivityID,
			QuestionID: sub.QuestionID,
			Reason:     "question not found",
		}
		c.log.Error("unknown question", zap.Error(err))
		return exercise.Question{}, err
	}
	return q, nil
}

func (c *Controller) questionLocked(q exercise.Question) bool {
	for _, id := range q.UnitIDs() {
		if !c.state.IsLocked(id) {
			return false
		}
	}
	return true
}

func checkComplete(q exercise.Question, sub exercise.Submission) error {
	if q.Answer.Kind != exercise.KindParts {
		return nil
	}
	if missing := sub.Value.MissingParts(len(q.Answer.Parts)); len(missing) > 0 {
		return &exercise.IncompleteSubmissionError{QuestionID: q.ID, Missing: missing}
	}
	return nil
}

// apply validates a submission and records the verdict of each open
// unit it covers.
func (c *Controller) apply(q exercise.Question, sub exercise.Submission) exercise.Outcome {
	out := exercise.Validate(sub, q.Answer)
	retry := c.set.RetryAllowed(q)

	if q.Answer.Kind == exercise.KindBoolGrid {
		for _, cell := range q.Answer.Cells {
			unit := exercise.UnitID(q.ID, cell.ID)
			if c.state.IsLocked(unit) {
				continue
			}
			e := c.state.Entry(unit)
			e.Attempts++
			e.Value = exercise.Value{Cells: map[string]bool{cell.ID: sub.Value.Cells[cell.ID]}}
			e.Verdict = out.Cells[cell.ID]
			e.Locked = e.Verdict == exercise.Correct || !retry
			c.state.Set(unit, e)
		}
	} else {
		e := c.state.Entry(q.ID)
		e.Attempts++
		e.Value = sub.Value
		e.Verdict = out.Verdict
		e.Locked = e.Verdict == exercise.Correct || !retry
		c.state.Set(q.ID, e)
	}

	c.log.Debug("answer validated",
		zap.String("question", q.ID),
		zap.Stringer("verdict", out.Verdict),
	)

	correctUnits := 1
	if q.Answer.Kind == exercise.KindBoolGrid {
		correctUnits = out.CorrectCells()
	} else if out.Verdict != exercise.Correct {
		correctUnits = 0
	}
	c.record(func(ctx context.Context) error {
		ts := sub.Timestamp
		if ts.IsZero() {
			ts = c.now()
		}
		return c.journal.AppendAnswer(ctx, store.AnswerEventData{
			SessionID:    c.sessionID,
			ActivityID:   c.set.ActivityID,
			QuestionID:   q.ID,
			Answer:       sub.Value.String(),
			Verdict:      out.Verdict.String(),
			CorrectUnits: correctUnits,
			TotalUnits:   q.Units(),
			Timestamp:    ts,
		})
	})
	return out
}

// checkCompletion notifies the listener the first time every unit is
// correct. It reports whether this call completed the activity.
func (c *Controller) checkCompletion() bool {
	if c.notified || !c.Progress().Completed {
		return false
	}
	c.notified = true
	c.log.Info("activity completed")

	c.record(func(ctx context.Context) error {
		return c.journal.AppendActivityEvent(ctx, store.ActivityEventData{
			SessionID:  c.sessionID,
			ActivityID: c.set.ActivityID,
			Action:     store.ActionCompleted,
			Timestamp:  c.now(),
		})
	})
	if c.onDone != nil {
		c.onDone(c.set.ActivityID)
	}
	return true
}

func (c *Controller) completionMessage() string {
	if c.set.CompletionMessage != "" {
		return c.set.CompletionMessage
	}
	return msgDefaultComplete
}

// record writes to the journal. Journal failures never affect scoring.
func (c *Controller) record(write func(ctx context.Context) error) {
	if c.journal == nil {
		return
	}
	if err := write(context.Background()); err != nil {
		c.log.Warn("journal write failed", zap.Error(err))
	}
}
