package shared

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/peterldowns/testy/assert"
)

func TestPair(t *testing.T) {
	// Ensure pair symbols are normalized on creation.
	pair := NewPair(" reliance.ns ", FiveMinute)
	assert.Equal(t, pair.Symbol, "RELIANCE.NS")

	// Ensure pairs stringify with their api interval code.
	assert.Equal(t, pair.String(), "RELIANCE.NS:5m")

	// Ensure pair dedup keys combine the symbol and api interval code.
	assert.Equal(t, pair.Key(), "RELIANCE.NS-5m")
}

func TestParsePairs(t *testing.T) {
	// Ensure a list of pairs can be parsed using api codes and labels.
	pairs, err := ParsePairs("RELIANCE.NS:5m, ^NSEI:1 Hour ,BTC-USD:4h")
	assert.NoError(t, err)
	assert.Equal(t, cmp.Diff(pairs, []Pair{
		{Symbol: "RELIANCE.NS", Timeframe: FiveMinute},
		{Symbol: "^NSEI", Timeframe: OneHour},
		{Symbol: "BTC-USD", Timeframe: FourHour},
	}), "")

	// Ensure empty entries are skipped.
	pairs, err = ParsePairs("TCS.NS:15m,")
	assert.NoError(t, err)
	assert.Equal(t, len(pairs), 1)

	// Ensure malformed entries are rejected.
	_, err = ParsePairs("RELIANCE.NS")
	assert.Error(t, err)

	// Ensure entries with empty symbols are rejected.
	_, err = ParsePairs(":5m")
	assert.Error(t, err)

	// Ensure entries with unknown timeframes are rejected.
	_, err = ParsePairs("RELIANCE.NS:2d")
	assert.Error(t, err)

	// Ensure an empty list is rejected.
	_, err = ParsePairs("")
	assert.Error(t, err)
}
