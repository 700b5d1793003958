package shared

import (
	"fmt"
	"strings"
	"time"
)

const (
	// KolkataLocation is the IANA name for the kolkata timezone.
	KolkataLocation = "Asia/Kolkata"
	// ClockLayout is the format layout for message timestamps.
	ClockLayout = "15:04:05"
)

// Timeframe represents a named polling cadence and its associated chart
// api interval code and historical lookback range.
type Timeframe int

const (
	OneMinute Timeframe = iota
	FiveMinute
	FifteenMinute
	ThirtyMinute
	OneHour
	FourHour
)

// String stringifies the provided timeframe as its display label.
func (t Timeframe) String() string {
	switch t {
	case OneMinute:
		return "1 Minute"
	case FiveMinute:
		return "5 Minutes"
	case FifteenMinute:
		return "15 Minutes"
	case ThirtyMinute:
		return "30 Minutes"
	case OneHour:
		return "1 Hour"
	case FourHour:
		return "4 Hours"
	default:
		return "unknown"
	}
}

// APICode returns the chart api interval code for the provided timeframe.
func (t Timeframe) APICode() string {
	switch t {
	case OneMinute:
		return "1m"
	case FiveMinute:
		return "5m"
	case FifteenMinute:
		return "15m"
	case ThirtyMinute:
		return "30m"
	case OneHour:
		return "60m"
	case FourHour:
		return "4h"
	default:
		return "unknown"
	}
}

// LookbackRange returns the historical lookback range requested for the
// provided timeframe.
func (t Timeframe) LookbackRange() string {
	switch t {
	case OneMinute:
		return "1d"
	case FiveMinute:
		return "5d"
	case FifteenMinute:
		return "10d"
	case ThirtyMinute:
		return "20d"
	case OneHour:
		return "1mo"
	case FourHour:
		return "3mo"
	default:
		return "unknown"
	}
}

// PollInterval returns the polling cadence for the provided timeframe.
func (t Timeframe) PollInterval() time.Duration {
	switch t {
	case OneMinute:
		return time.Minute
	case FiveMinute:
		return time.Minute * 5
	case FifteenMinute:
		return time.Minute * 15
	case ThirtyMinute:
		return time.Minute * 30
	case OneHour:
		return time.Hour
	case FourHour:
		return time.Hour * 4
	default:
		return 0
	}
}

// ParseTimeframe parses the provided display label or api interval code
// into a timeframe.
func ParseTimeframe(str string) (Timeframe, error) {
	timeframes := []Timeframe{OneMinute, FiveMinute, FifteenMinute,
		ThirtyMinute, OneHour, FourHour}

	trimmed := strings.TrimSpace(str)
	for _, timeframe := range timeframes {
		if strings.EqualFold(trimmed, timeframe.String()) ||
			strings.EqualFold(trimmed, timeframe.APICode()) {
			return timeframe, nil
		}
	}

	return 0, fmt.Errorf("unknown timeframe provided: %s", str)
}

// KolkataTime returns the current time in kolkata (IST).
func KolkataTime() (time.Time, *time.Location, error) {
	loc, err := time.LoadLocation(KolkataLocation)
	if err != nil {
		return time.Time{}, nil, fmt.Errorf("loading kolkata timezone: %w", err)
	}

	now := time.Now().In(loc)
	return now, loc, nil
}
