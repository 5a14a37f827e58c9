package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/cinelingo/internal/config"
	"github.com/abhisek/cinelingo/internal/feedback"
	"github.com/abhisek/cinelingo/internal/logger"
	"github.com/abhisek/cinelingo/internal/navigation"
	"github.com/abhisek/cinelingo/internal/session"
	"github.com/abhisek/cinelingo/internal/store"
)

// runtime is everything a front end needs for one session.
type runtime struct {
	cfg   *config.Config
	sess  *session.SessionState
	log   *zap.Logger
	store *store.Store
}

// newRuntime loads configuration and content, opens the in-memory
// journal and positions the session at the configured start activity.
func newRuntime(cmd *cobra.Command) (*runtime, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	log, err := logger.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}

	cat, err := loadCatalog(cfg)
	if err != nil {
		_ = log.Sync()
		return nil, err
	}

	st, err := store.OpenMemory()
	if err != nil {
		_ = log.Sync()
		return nil, fmt.Errorf("open journal: %w", err)
	}

	sess := session.New(session.Deps{
		Catalog: cat,
		Journal: st.EventRepo(),
		Board:   feedback.NewBoard(cfg.FeedbackDuration, time.Now),
		Logger:  log,
	})
	log.Info("session started",
		zap.String("session", sess.SessionID),
		zap.Int("activities", sess.Cursor().Len()),
		zap.String("env", cfg.Env),
	)

	if cfg.StartActivity != "" {
		if err := sess.Jump(cfg.StartActivity); err != nil {
			st.Close()
			_ = log.Sync()
			var target *navigation.InvalidTargetError
			if errors.As(err, &target) {
				return nil, fmt.Errorf("unknown start activity %q", target.Target)
			}
			return nil, err
		}
	}

	return &runtime{cfg: cfg, sess: sess, log: log, store: st}, nil
}

// Close releases the journal and flushes the logger.
func (r *runtime) Close() {
	if err := r.store.Close(); err != nil {
		r.log.Warn("close journal", zap.Error(err))
	}
	_ = r.log.Sync()
}
