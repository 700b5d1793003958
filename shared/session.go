package shared

import (
	"time"

	"github.com/shopspring/decimal"
)

// MonitoringSession represents the externally controlled lifetime boundary
// during which a fixed set of pairs is monitored. At most one session is
// active at a time.
type MonitoringSession struct {
	ID        string
	Label     string
	IsActive  bool
	StartTime time.Time
}

// InstrumentState represents the dashboard visible state of one monitored
// (symbol, timeframe) pair, mutated by its monitor task every successful
// fetch cycle.
type InstrumentState struct {
	SessionID   string
	Symbol      string
	Timeframe   Timeframe
	LastTrend   string
	LastPrice   decimal.Decimal
	LastUpdated time.Time
}

// SignalEvent represents an append-only record of a newly detected
// crossover that passed deduplication.
type SignalEvent struct {
	ID          string
	SessionID   string
	Symbol      string
	SignalType  string
	Description string
	Timestamp   time.Time
}
