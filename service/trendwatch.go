package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/dnldd/trendwatch/database"
	"github.com/dnldd/trendwatch/fetch"
	"github.com/dnldd/trendwatch/monitor"
	"github.com/dnldd/trendwatch/notify"
	"github.com/dnldd/trendwatch/shared"
	"github.com/go-co-op/gocron"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/rs/zerolog/pkgerrors"
)

// TrendWatchConfig is the configuration struct for the trend watch service.
type TrendWatchConfig struct {
	// Pairs represents the monitored SYMBOL:TIMEFRAME entries.
	Pairs []string
	// TelegramToken is the telegram bot token.
	TelegramToken string
	// TelegramChatID is the destination telegram chat id.
	TelegramChatID string
	// DBEndpoint is the database connection endpoint.
	DBEndpoint string
	// DBUser is the database user.
	DBUser string
	// DBPass is the database user pass.
	DBPass string
	// CacheDir is the directory for fetched close series caches.
	CacheDir string
	// MetricsAddr is the listen address for the metrics endpoint. An
	// empty string disables the endpoint.
	MetricsAddr string
	// SessionLabel labels the monitoring session created on startup when
	// none is active. Left empty, startup with no active session is a
	// no-op.
	SessionLabel string
	// Cancel is the shutdown callback of the service.
	Cancel context.CancelFunc
}

// Validate asserts the config has sane inputs.
func (cfg *TrendWatchConfig) Validate() error {
	var errs error

	if len(cfg.Pairs) == 0 {
		errs = errors.Join(errs, fmt.Errorf("no pairs provided for trend watch service"))
	}
	if cfg.TelegramToken == "" {
		errs = errors.Join(errs, fmt.Errorf("telegram token cannot be an empty string"))
	}
	if cfg.TelegramChatID == "" {
		errs = errors.Join(errs, fmt.Errorf("telegram chat id cannot be an empty string"))
	}
	if cfg.DBEndpoint == "" {
		errs = errors.Join(errs, fmt.Errorf("database endpoint cannot be an empty string"))
	}

	return errs
}

// TrendWatch represents a trend and crossover monitoring service.
type TrendWatch struct {
	cfg       *TrendWatchConfig
	db        *database.Database
	scheduler *monitor.Scheduler
	logger    *zerolog.Logger
}

// NewTrendWatch initializes a new trend watch service.
func NewTrendWatch(ctx context.Context, cfg *TrendWatchConfig) (*TrendWatch, error) {
	err := cfg.Validate()
	if err != nil {
		return nil, fmt.Errorf("validating trend watch config: %w", err)
	}

	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack

	logger := log.With().Str("service", "trendwatch").Logger()

	pairs, err := shared.ParsePairs(strings.Join(cfg.Pairs, ","))
	if err != nil {
		return nil, fmt.Errorf("parsing pairs: %w", err)
	}

	dbLogger := logger.With().Str("component", "database").Logger()
	db, err := database.NewDatabase(ctx, &database.DatabaseConfig{
		Endpoint: cfg.DBEndpoint,
		User:     cfg.DBUser,
		Pass:     cfg.DBPass,
		Logger:   &dbLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("creating database: %w", err)
	}

	fetcherLogger := logger.With().Str("component", "fetch").Logger()
	fetcher := fetch.NewChartClient(&fetch.ChartConfig{
		BaseURL:  fetch.BaseURL,
		CacheDir: cfg.CacheDir,
		Logger:   &fetcherLogger,
	})

	notifier := notify.NewTelegramClient(&notify.TelegramConfig{
		Token:   cfg.TelegramToken,
		ChatID:  cfg.TelegramChatID,
		BaseURL: notify.BaseURL,
	})

	jobScheduler := gocron.NewScheduler(time.UTC)

	schedulerLogger := logger.With().Str("component", "scheduler").Logger()
	scheduler, err := monitor.NewScheduler(&monitor.SchedulerConfig{
		Pairs:        pairs,
		Fetcher:      fetcher,
		Notifier:     notifier,
		Store:        db,
		JobScheduler: jobScheduler,
		Logger:       &schedulerLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("creating scheduler: %w", err)
	}

	service := &TrendWatch{
		cfg:       cfg,
		db:        db,
		scheduler: scheduler,
		logger:    &logger,
	}

	return service, nil
}

// ensureSession creates a labelled monitoring session when none is active.
func (t *TrendWatch) ensureSession(ctx context.Context) error {
	session, err := t.db.ActiveSession(ctx)
	if err != nil {
		return fmt.Errorf("fetching active session: %w", err)
	}
	if session != nil {
		t.logger.Info().Msgf("reusing active session %s (%q)", session.ID, session.Label)
		return nil
	}

	session, err = t.db.CreateSession(ctx, t.cfg.SessionLabel)
	if err != nil {
		return fmt.Errorf("creating session: %w", err)
	}

	t.logger.Info().Msgf("created session %s (%q)", session.ID, session.Label)
	return nil
}

// serveMetrics runs the metrics endpoint until the provided context is
// cancelled.
func (t *TrendWatch) serveMetrics(ctx context.Context) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	server := &http.Server{
		Addr:    t.cfg.MetricsAddr,
		Handler: mux,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second*5)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	t.logger.Info().Msgf("serving metrics on %s", t.cfg.MetricsAddr)
	err := server.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		t.logger.Error().Msgf("metrics server: %v", err)
	}
}

// Run handles the lifecycle processes of the trend watch service.
func (t *TrendWatch) Run(ctx context.Context) {
	if t.cfg.SessionLabel != "" {
		err := t.ensureSession(ctx)
		if err != nil {
			t.logger.Error().Msgf("ensuring session: %v", err)
			t.cfg.Cancel()
			return
		}
	}

	if t.cfg.MetricsAddr != "" {
		go t.serveMetrics(ctx)
	}

	err := t.scheduler.Run(ctx)
	if err != nil {
		t.logger.Error().Msgf("running scheduler: %v", err)
	}

	t.cfg.Cancel()
}
