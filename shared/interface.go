package shared

import (
	"context"
)

// MarketFetcher defines the requirements for fetching instrument price data.
type MarketFetcher interface {
	// FetchCloses fetches a time ordered (oldest first) series of closing
	// prices for the provided symbol covering the timeframe's lookback
	// range. A nil series with a nil error indicates no usable data for
	// the cycle.
	FetchCloses(ctx context.Context, symbol string, timeframe Timeframe) ([]float64, error)
}

// Notifier defines the requirements for delivering monitoring messages.
type Notifier interface {
	// SendAlert delivers the provided message with an audible notification.
	SendAlert(ctx context.Context, message string) error
	// SendSummary delivers the provided message silently.
	SendSummary(ctx context.Context, message string) error
}

// SessionStore defines the requirements for persisting monitoring state.
// Implementations must be safe for use from many concurrent tasks.
type SessionStore interface {
	// CreateSession creates a new active monitoring session.
	CreateSession(ctx context.Context, label string) (*MonitoringSession, error)
	// ActiveSession fetches the most recently started active session,
	// or nil if no session is active.
	ActiveSession(ctx context.Context) (*MonitoringSession, error)
	// SessionActive checks whether the session with the provided id is
	// still active.
	SessionActive(ctx context.Context, id string) (bool, error)
	// UpsertInstrumentState creates or updates the persisted state of the
	// provided pair for the session.
	UpsertInstrumentState(ctx context.Context, sessionID string, pair Pair, trend Trend, price float64) error
	// AppendSignalEvent appends a signal event for the provided pair to
	// the session's signal log.
	AppendSignalEvent(ctx context.Context, sessionID string, pair Pair, signal Crossover, description string) error
	// ListSignalEvents fetches up to limit of the session's most recent
	// signal events, newest first.
	ListSignalEvents(ctx context.Context, sessionID string, limit int) ([]SignalEvent, error)
	// DeactivateSession marks the session with the provided id inactive.
	DeactivateSession(ctx context.Context, sessionID string) error
}
