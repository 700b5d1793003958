package indicator

import (
	"testing"

	"github.com/dnldd/trendwatch/shared"
	"github.com/peterldowns/testy/assert"
)

func TestNewSnapshot(t *testing.T) {
	symbol := "^NSEI"

	// Ensure series shorter than the slow ema period yield no snapshot.
	snapshot := NewSnapshot(symbol, []float64{100, 102, 101, 105, 110})
	assert.Nil(t, snapshot)

	// Ensure a snapshot can be created from a sufficiently long series.
	closes := []float64{100, 102, 101, 105, 110, 108, 107, 112, 115, 120,
		118, 121, 119, 123, 125, 124, 127, 126, 129, 131, 130, 133}
	snapshot = NewSnapshot(symbol, closes)
	assert.NotNil(t, snapshot)
	assert.Equal(t, snapshot.Symbol, symbol)

	// Ensure the ema series have the same length as the input.
	assert.Equal(t, len(snapshot.EMA[FastEMAPeriod]), len(closes))
	assert.Equal(t, len(snapshot.EMA[SlowEMAPeriod]), len(closes))

	// Ensure the snapshot carries the latest close and ema values.
	assert.Equal(t, snapshot.CurrentClose, closes[len(closes)-1])
	fastEMA := snapshot.EMA[FastEMAPeriod]
	slowEMA := snapshot.EMA[SlowEMAPeriod]
	assert.Equal(t, snapshot.LatestFastEMA, fastEMA[len(fastEMA)-1])
	assert.Equal(t, snapshot.LatestSlowEMA, slowEMA[len(slowEMA)-1])
	assert.Equal(t, snapshot.EMASpread(), snapshot.LatestFastEMA-snapshot.LatestSlowEMA)

	// Ensure the trend matches the classification priority rules for the
	// latest values.
	want := CurrentTrend(fastEMA, slowEMA, snapshot.CurrentClose)
	assert.Equal(t, snapshot.Trend, want)

	// A steadily rising series keeps the fast ema above the slow ema.
	assert.True(t, snapshot.Trend.Bullish())

	// Ensure a crossover is flagged exactly on the tick where the relative
	// order of the fast and slow emas flips.
	for idx := SlowEMAPeriod + 1; idx <= len(closes); idx++ {
		prefix := NewSnapshot(symbol, closes[:idx])
		assert.NotNil(t, prefix)

		fast, slow := prefix.EMA[FastEMAPeriod], prefix.EMA[SlowEMAPeriod]
		prevAbove := fast[len(fast)-2] > slow[len(slow)-2]
		currAbove := fast[len(fast)-1] > slow[len(slow)-1]
		flipped := prevAbove != currAbove

		assert.Equal(t, prefix.IsNewCrossover, flipped)
		if !flipped {
			assert.Equal(t, prefix.Crossover, shared.NoCrossover)
		}
	}
}
