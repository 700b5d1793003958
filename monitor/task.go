package monitor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dnldd/trendwatch/indicator"
	"github.com/dnldd/trendwatch/notify"
	"github.com/dnldd/trendwatch/shared"
	"github.com/rs/zerolog"
	"go.uber.org/atomic"
)

// TaskState represents the lifecycle state of a monitor task.
type TaskState int32

const (
	Running TaskState = iota
	StoppedSessionEnded
	StoppedError
)

// String stringifies the provided task state.
func (s TaskState) String() string {
	switch s {
	case Running:
		return "running"
	case StoppedSessionEnded:
		return "stopped (session ended)"
	case StoppedError:
		return "stopped (error)"
	default:
		return "unknown"
	}
}

// TaskConfig represents the configuration for a monitor task.
type TaskConfig struct {
	// SessionID is the id of the owning monitoring session.
	SessionID string
	// Pair is the monitored (symbol, timeframe) pair.
	Pair shared.Pair
	// Fetcher fetches close series for the monitored symbol.
	Fetcher shared.MarketFetcher
	// Notifier delivers alert and summary messages.
	Notifier shared.Notifier
	// Store persists monitoring state.
	Store shared.SessionStore
	// Cache suppresses repeat alerts for unchanged signals.
	Cache *SignalCache
	// PollInterval overrides the timeframe's polling cadence when set.
	PollInterval time.Duration
	// Logger represents the application logger.
	Logger *zerolog.Logger
}

// Task represents the polling loop for one monitored pair. Tasks are
// independent, a failing or slow task never blocks its siblings.
type Task struct {
	cfg   *TaskConfig
	state atomic.Int32
}

// Validate asserts the config has sane inputs.
func (cfg *TaskConfig) Validate() error {
	var errs error

	if cfg.SessionID == "" {
		errs = errors.Join(errs, fmt.Errorf("session id cannot be an empty string"))
	}
	if cfg.Pair.Symbol == "" {
		errs = errors.Join(errs, fmt.Errorf("pair symbol cannot be an empty string"))
	}
	if cfg.Pair.Timeframe.PollInterval() == 0 {
		errs = errors.Join(errs, fmt.Errorf("unknown timeframe provided: %s", cfg.Pair.Timeframe))
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
	if cfg.Cache == nil {
		errs = errors.Join(errs, fmt.Errorf("signal cache cannot be nil"))
	}

	return errs
}

// NewTask initializes a monitor task for the provided pair. An unknown
// timeframe or incomplete config is fatal to the task, it never starts
// polling.
func NewTask(cfg *TaskConfig) (*Task, error) {
	err := cfg.Validate()
	if err != nil {
		return nil, fmt.Errorf("validating task config: %w", err)
	}

	return &Task{
		cfg: cfg,
	}, nil
}

// State returns the current lifecycle state of the task.
func (t *Task) State() TaskState {
	return TaskState(t.state.Load())
}

// evaluateCycle runs one fetch, compute, persist and notify cycle for the
// monitored pair. A nil snapshot indicates the cycle was skipped for lack
// of data.
func (t *Task) evaluateCycle(ctx context.Context) (*indicator.Snapshot, error) {
	pair := t.cfg.Pair

	closes, err := t.cfg.Fetcher.FetchCloses(ctx, pair.Symbol, pair.Timeframe)
	if err != nil {
		// Fetch errors are transient, skip the cycle and retry on the
		// next interval.
		t.cfg.Logger.Warn().Msgf("fetching closes for %s: %v", pair, err)
		fetchSkips.Inc()
		return nil, nil
	}

	snapshot := indicator.NewSnapshot(pair.Symbol, closes)
	if snapshot == nil {
		t.cfg.Logger.Debug().Msgf("insufficient data for %s, skipping cycle", pair)
		fetchSkips.Inc()
		return nil, nil
	}

	t.cfg.Logger.Info().Msgf("%s -- trend: %s, signal: %s", pair, snapshot.Trend,
		snapshot.Crossover)

	err = t.cfg.Store.UpsertInstrumentState(ctx, t.cfg.SessionID, pair, snapshot.Trend,
		snapshot.CurrentClose)
	if err != nil {
		return nil, fmt.Errorf("persisting instrument state: %w", err)
	}

	if snapshot.IsNewCrossover && t.cfg.Cache.ShouldAlert(pair.Key(), snapshot.Crossover) {
		err = t.sendAlert(ctx, snapshot)
		if err != nil {
			return nil, err
		}
	}

	summary := notify.FormatSummaryMessage(snapshot, pair.Timeframe)
	err = t.cfg.Notifier.SendSummary(ctx, summary)
	if err != nil {
		t.cfg.Logger.Warn().Msgf("sending summary for %s: %v", pair, err)
		notifyFailures.Inc()
	}

	return snapshot, nil
}

// sendAlert delivers a new crossover alert for the provided snapshot. The
// dedup entry and signal event are only recorded once delivery is
// confirmed, a failed delivery is retried implicitly on the next detected
// crossover.
func (t *Task) sendAlert(ctx context.Context, snapshot *indicator.Snapshot) error {
	pair := t.cfg.Pair

	t.cfg.Logger.Info().Msgf("new crossover for %s: %s", pair, snapshot.Crossover)

	alert := notify.FormatAlertMessage(snapshot, pair.Timeframe)
	err := t.cfg.Notifier.SendAlert(ctx, alert)
	if err != nil {
		t.cfg.Logger.Warn().Msgf("sending alert for %s: %v", pair, err)
		notifyFailures.Inc()
		return nil
	}

	t.cfg.Cache.RecordAlert(pair.Key(), snapshot.Crossover)
	alertsSent.Inc()

	description := fmt.Sprintf("Crossover on %s chart", pair.Timeframe)
	err = t.cfg.Store.AppendSignalEvent(ctx, t.cfg.SessionID, pair, snapshot.Crossover,
		description)
	if err != nil {
		return fmt.Errorf("appending signal event: %w", err)
	}

	return nil
}

// Run manages the polling loop of the monitor task until its session ends
// or a cycle fails. Errors terminate only this task, sibling tasks are
// unaffected.
func (t *Task) Run(ctx context.Context) error {
	pair := t.cfg.Pair
	interval := t.cfg.PollInterval
	if interval == 0 {
		interval = pair.Timeframe.PollInterval()
	}

	t.cfg.Logger.Info().Msgf("starting monitor for %s, polling every %s", pair, interval)

	for {
		active, err := t.cfg.Store.SessionActive(ctx, t.cfg.SessionID)
		if err != nil {
			t.state.Store(int32(StoppedError))
			t.cfg.Logger.Error().Msgf("checking session active for %s: %v", pair, err)
			return fmt.Errorf("checking session active: %w", err)
		}
		if !active {
			t.state.Store(int32(StoppedSessionEnded))
			t.cfg.Logger.Info().Msgf("session ended, stopping monitor for %s", pair)
			return nil
		}

		_, err = t.evaluateCycle(ctx)
		if err != nil {
			t.state.Store(int32(StoppedError))
			t.cfg.Logger.Error().Msgf("monitor cycle for %s: %v", pair, err)
			return fmt.Errorf("monitor cycle for %s: %w", pair, err)
		}

		cycles.Inc()

		select {
		case <-ctx.Done():
			t.state.Store(int32(StoppedSessionEnded))
			t.cfg.Logger.Info().Msgf("context cancelled, stopping monitor for %s", pair)
			return nil
		case <-time.After(interval):
		}
	}
}
