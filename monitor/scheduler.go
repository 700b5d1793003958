package monitor

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dnldd/trendwatch/shared"
	"github.com/go-co-op/gocron"
	"github.com/rs/zerolog"
	"github.com/samber/lo"
	"go.uber.org/atomic"
)

const (
	// heartbeatInterval is the cadence of the scheduler's progress log.
	heartbeatInterval = time.Minute
)

// SchedulerConfig represents the configuration for the session scheduler.
type SchedulerConfig struct {
	// Pairs represents the monitored (symbol, timeframe) pairs.
	Pairs []shared.Pair
	// Fetcher fetches close series for monitored symbols.
	Fetcher shared.MarketFetcher
	// Notifier delivers alert and summary messages.
	Notifier shared.Notifier
	// Store persists monitoring state.
	Store shared.SessionStore
	// JobScheduler runs the scheduler's periodic jobs.
	JobScheduler *gocron.Scheduler
	// PollInterval overrides every timeframe's polling cadence when set.
	PollInterval time.Duration
	// Logger represents the application logger.
	Logger *zerolog.Logger
}

// Validate asserts the config has sane inputs.
func (cfg *SchedulerConfig) Validate() error {
	var errs error

	if len(cfg.Pairs) == 0 {
		errs = errors.Join(errs, fmt.Errorf("no pairs provided for session scheduler"))
	}
	if cfg.Fetcher == nil {
		errs = errors.Join(errs, fmt.Errorf("fetcher cannot be nil"))
	}
	if cfg.Notifier == nil {
		errs = errors.Join(errs, fmt.Errorf("notifier cannot be nil"))
	}
	if cfg.Store == nil {
		errs = errors.Join(errs, fmt.Errorf("store cannot be nil"))
	}
	if cfg.JobScheduler == nil {
		errs = errors.Join(errs, fmt.Errorf("job scheduler cannot be nil"))
	}

	return errs
}

// Scheduler owns the monitoring session's set of monitor tasks. It spawns
// one task per configured pair, runs them concurrently and deactivates the
// session once all tasks reach a terminal state.
type Scheduler struct {
	cfg     *SchedulerConfig
	cache   *SignalCache
	running atomic.Int32
	wg      sync.WaitGroup
}

// NewScheduler initializes a new session scheduler.
func NewScheduler(cfg *SchedulerConfig) (*Scheduler, error) {
	err := cfg.Validate()
	if err != nil {
		return nil, fmt.Errorf("validating scheduler config: %w", err)
	}

	return &Scheduler{
		cfg:   cfg,
		cache: NewSignalCache(),
	}, nil
}

// RunningTasks returns the number of monitor tasks still running.
func (s *Scheduler) RunningTasks() int {
	return int(s.running.Load())
}

// heartbeat logs scheduler progress and publishes the running task gauge.
func (s *Scheduler) heartbeat() {
	running := s.running.Load()
	runningTasks.Set(float64(running))
	s.cfg.Logger.Info().Msgf("monitoring session heartbeat: %d/%d tasks running",
		running, len(s.cfg.Pairs))
}

// Run loads the active session, spawns one monitor task per configured
// pair and deactivates the session once every task has reached a terminal
// state. Running with no active session is a documented no-op, not a
// failure. The caller stops the scheduler by cancelling the provided
// context and waiting for Run to return.
func (s *Scheduler) Run(ctx context.Context) error {
	session, err := s.cfg.Store.ActiveSession(ctx)
	if err != nil {
		return fmt.Errorf("fetching active session: %w", err)
	}
	if session == nil {
		s.cfg.Logger.Info().Msg("no active monitoring session, nothing to do")
		return nil
	}

	pairs := lo.UniqBy(s.cfg.Pairs, func(pair shared.Pair) string {
		return pair.Key()
	})

	s.cfg.Logger.Info().Msgf("starting monitoring session %s (%q) with %d pairs",
		session.ID, session.Label, len(pairs))

	tasks := make([]*Task, 0, len(pairs))
	for _, pair := range pairs {
		taskLogger := s.cfg.Logger.With().Str("pair", pair.String()).Logger()
		task, err := NewTask(&TaskConfig{
			SessionID:    session.ID,
			Pair:         pair,
			Fetcher:      s.cfg.Fetcher,
			Notifier:     s.cfg.Notifier,
			Store:        s.cfg.Store,
			Cache:        s.cache,
			PollInterval: s.cfg.PollInterval,
			Logger:       &taskLogger,
		})
		if err != nil {
			return fmt.Errorf("creating monitor task for %s: %w", pair, err)
		}

		tasks = append(tasks, task)
	}

	_, err = s.cfg.JobScheduler.Every(heartbeatInterval).Do(s.heartbeat)
	if err != nil {
		return fmt.Errorf("scheduling heartbeat job: %w", err)
	}
	s.cfg.JobScheduler.StartAsync()
	defer s.cfg.JobScheduler.Stop()

	s.running.Store(int32(len(tasks)))
	runningTasks.Set(float64(len(tasks)))

	for _, task := range tasks {
		s.wg.Add(1)
		go func(task *Task) {
			defer s.wg.Done()
			defer s.running.Dec()

			// Task errors are terminal to the task alone, they are
			// logged by the task and intentionally not propagated.
			_ = task.Run(ctx)
		}(task)
	}

	s.wg.Wait()

	s.cfg.Logger.Info().Msgf("all monitor tasks stopped, deactivating session %s", session.ID)

	// Deactivation is scoped to the session's own lifetime, it must
	// proceed even when the run context was cancelled.
	deactivateCtx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()

	err = s.cfg.Store.DeactivateSession(deactivateCtx, session.ID)
	if err != nil {
		return fmt.Errorf("deactivating session %s: %w", session.ID, err)
	}

	return nil
}
