// Package session owns the state shared across one run of the app: the
// catalog, one controller per visited activity, overall progress, the
// navigation cursor, the feedback board and the journal.
package session

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/abhisek/cinelingo/internal/activity"
	"github.com/abhisek/cinelingo/internal/content"
	"github.com/abhisek/cinelingo/internal/exercise"
	"github.com/abhisek/cinelingo/internal/feedback"
	"github.com/abhisek/cinelingo/internal/navigation"
	"github.com/abhisek/cinelingo/internal/progress"
	"github.com/abhisek/cinelingo/internal/store"
)

// Deps are the collaborators a SessionState is built from. Only Catalog
// is required.
type Deps struct {
	Catalog *content.Catalog
	Journal store.EventRepo
	Board   *feedback.Board
	Logger  *zap.Logger
	Clock   func() time.Time
}

// SessionState is the runtime state of one session. It is not safe for
// concurrent use; the UI loop owns it.
type SessionState struct {
	// SessionID is the UUID for this session.
	SessionID string

	// StartTime is when the session began.
	StartTime time.Time

	catalog     *content.Catalog
	journal     store.EventRepo
	board       *feedback.Board
	log         *zap.Logger
	now         func() time.Time
	tracker     *progress.Tracker
	cursor      *navigation.Cursor
	controllers map[string]*activity.Controller
	failed      map[string]error
	celebrated  bool
}

// New creates a session positioned at the menu.
func New(deps Deps) *SessionState {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.Clock == nil {
		deps.Clock = time.Now
	}
	if deps.Board == nil {
		deps.Board = feedback.NewBoard(feedback.DefaultDuration, deps.Clock)
	}

	var available []string
	for _, set := range deps.Catalog.Available() {
		available = append(available, set.ActivityID)
	}

	s := &SessionState{
		SessionID:   uuid.NewString(),
		StartTime:   deps.Clock(),
		catalog:     deps.Catalog,
		journal:     deps.Journal,
		board:       deps.Board,
		now:         deps.Clock,
		tracker:     progress.NewTracker(available),
		cursor:      navigation.NewCursor(deps.Catalog.Order()),
		controllers: make(map[string]*activity.Controller),
		failed:      make(map[string]error),
	}
	s.log = deps.Logger.With(zap.String("session", s.SessionID))
	s.tracker.OnAllComplete(func() {
		s.celebrated = true
		s.log.Info("all activities complete")
	})

	for id, err := range deps.Catalog.Broken() {
		s.failed[id] = err
		s.log.Error("activity unavailable", zap.String("activity", id), zap.Error(err))
	}
	return s
}

// Controller returns the controller for an activity, creating it on
// first use. A failure to build one, including a panic, is isolated to
// that activity: it is logged, remembered and returned as an error.
func (s *SessionState) Controller(activityID string) (*activity.Controller, error) {
	if c, ok := s.controllers[activityID]; ok {
		return c, nil
	}
	if err, ok := s.failed[activityID]; ok {
		return nil, err
	}

	c, err := s.initController(activityID)
	if err != nil {
		s.failed[activityID] = err
		s.log.Error("activity init failed", zap.String("activity", activityID), zap.Error(err))
		return nil, err
	}
	s.controllers[activityID] = c
	return c, nil
}

func (s *SessionState) initController(activityID string) (c *activity.Controller, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &exercise.ConfigError{
				ActivityID: activityID,
				Reason:     "initialization panicked",
				Err:        fmt.Errorf("%v", r),
			}
		}
	}()

	set, err := s.catalog.Load(activityID)
	if err != nil {
		return nil, err
	}

	opts := []activity.Option{
		activity.WithFeedback(s.board),
		activity.WithCompletion(func(id string) { s.tracker.RecordCompletion(id) }),
		activity.WithLogger(s.log),
		activity.WithClock(s.now),
	}
	if s.journal != nil {
		opts = append(opts, activity.WithJournal(s.journal, s.SessionID))
	}
	return activity.New(set, opts...), nil
}

// Current returns the controller under the cursor. At the menu it
// returns nil and no error.
func (s *SessionState) Current() (*activity.Controller, error) {
	id := s.cursor.Current()
	if id == "" {
		return nil, nil
	}
	return s.Controller(id)
}

// Jump moves the cursor to an activity.
func (s *SessionState) Jump(activityID string) error {
	if err := s.cursor.Jump(activityID); err != nil {
		s.log.Debug("rejected jump", zap.String("target", activityID))
		return err
	}
	s.board.Clear()
	return nil
}

// Next moves the cursor forward.
func (s *SessionState) Next() {
	s.cursor.Next()
	s.board.Clear()
}

// Previous moves the cursor back.
func (s *SessionState) Previous() {
	s.cursor.Previous()
	s.board.Clear()
}

// Menu returns the cursor to the menu.
func (s *SessionState) Menu() {
	s.cursor.Menu()
	s.board.Clear()
}

// Cursor returns the navigation cursor.
func (s *SessionState) Cursor() *navigation.Cursor {
	return s.cursor
}

// Tracker returns the overall progress tracker.
func (s *SessionState) Tracker() *progress.Tracker {
	return s.tracker
}

// Board returns the feedback board.
func (s *SessionState) Board() *feedback.Board {
	return s.board
}

// Catalog returns the content catalog.
func (s *SessionState) Catalog() *content.Catalog {
	return s.catalog
}

// Celebrated reports whether every activity has been completed.
func (s *SessionState) Celebrated() bool {
	return s.celebrated
}

// Unavailable reports why an activity cannot be opened, or nil.
func (s *SessionState) Unavailable(activityID string) error {
	return s.failed[activityID]
}

// ActivityProgress returns the progress of an activity. Activities not
// yet visited report zero correct.
func (s *SessionState) ActivityProgress(activityID string) activity.Progress {
	if c, ok := s.controllers[activityID]; ok {
		return c.Progress()
	}
	p := activity.Progress{ActivityID: activityID}
	if set, err := s.catalog.Load(activityID); err == nil {
		p.RequiredCount = set.RequiredCount()
	}
	return p
}
