package shared

import (
	"fmt"
	"strings"
)

// Pair represents a monitored (symbol, timeframe) pair.
type Pair struct {
	Symbol    string
	Timeframe Timeframe
}

// NewPair initializes a new monitored pair.
func NewPair(symbol string, timeframe Timeframe) Pair {
	return Pair{
		Symbol:    strings.ToUpper(strings.TrimSpace(symbol)),
		Timeframe: timeframe,
	}
}

// String stringifies the provided pair.
func (p Pair) String() string {
	return fmt.Sprintf("%s:%s", p.Symbol, p.Timeframe.APICode())
}

// Key returns the signal deduplication key for the provided pair.
func (p Pair) Key() string {
	return fmt.Sprintf("%s-%s", p.Symbol, p.Timeframe.APICode())
}

// ParsePairs parses a comma separated list of SYMBOL:TIMEFRAME entries
// into monitored pairs. The timeframe component accepts display labels and
// api interval codes.
func ParsePairs(str string) ([]Pair, error) {
	entries := strings.Split(str, ",")
	pairs := make([]Pair, 0, len(entries))

	for _, entry := range entries {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		symbol, timeframeStr, found := strings.Cut(entry, ":")
		if !found {
			return nil, fmt.Errorf("invalid pair %q, expected SYMBOL:TIMEFRAME", entry)
		}
		if strings.TrimSpace(symbol) == "" {
			return nil, fmt.Errorf("invalid pair %q, symbol cannot be an empty string", entry)
		}

		timeframe, err := ParseTimeframe(timeframeStr)
		if err != nil {
			return nil, fmt.Errorf("parsing pair %q: %w", entry, err)
		}

		pairs = append(pairs, NewPair(symbol, timeframe))
	}

	if len(pairs) == 0 {
		return nil, fmt.Errorf("no pairs provided")
	}

	return pairs, nil
}
