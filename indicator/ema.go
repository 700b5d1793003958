package indicator

import "github.com/dnldd/trendwatch/shared"

const (
	// FastEMAPeriod is the smoothing period of the fast ema.
	FastEMAPeriod = 5
	// SlowEMAPeriod is the smoothing period of the slow ema.
	SlowEMAPeriod = 20
)

// EMA computes the exponential moving average series for the provided
// closing prices (oldest first) and smoothing period. The returned series
// has the same length as the input, seeded with the first close. Inputs
// shorter than the period yield an empty series.
func EMA(closes []float64, period int) []float64 {
	if period <= 0 || len(closes) < period {
		return []float64{}
	}

	k := 2 / float64(period+1)
	ema := make([]float64, len(closes))
	ema[0] = closes[0]
	for idx := 1; idx < len(closes); idx++ {
		ema[idx] = closes[idx]*k + ema[idx-1]*(1-k)
	}

	return ema
}

// CurrentTrend classifies the market trend from the latest fast and slow
// ema values and the current closing price.
func CurrentTrend(fastEMA []float64, slowEMA []float64, currentClose float64) shared.Trend {
	var latestFast, latestSlow float64
	if len(fastEMA) > 0 {
		latestFast = fastEMA[len(fastEMA)-1]
	}
	if len(slowEMA) > 0 {
		latestSlow = slowEMA[len(slowEMA)-1]
	}

	switch {
	case latestFast > latestSlow && currentClose > latestFast:
		return shared.StrongBullishTrend
	case latestFast > latestSlow:
		return shared.BullishTrend
	case latestFast < latestSlow && currentClose < latestFast:
		return shared.StrongBearishTrend
	case latestFast < latestSlow:
		return shared.BearishTrend
	default:
		return shared.NeutralTrend
	}
}

// DetectCrossover reports whether the fast ema crossed the slow ema on the
// latest tick. Series shorter than two points cannot signal a crossover.
// A simultaneous equality at the previous tick satisfies both legs, in
// which case the bullish leg wins.
func DetectCrossover(fastEMA []float64, slowEMA []float64) (shared.Crossover, bool) {
	if len(fastEMA) < 2 || len(slowEMA) < 2 {
		return shared.NoCrossover, false
	}

	currentFast, currentSlow := fastEMA[len(fastEMA)-1], slowEMA[len(slowEMA)-1]
	prevFast, prevSlow := fastEMA[len(fastEMA)-2], slowEMA[len(slowEMA)-2]

	switch {
	case prevFast <= prevSlow && currentFast > currentSlow:
		return shared.BullishCrossover, true
	case prevFast >= prevSlow && currentFast < currentSlow:
		return shared.BearishCrossover, true
	default:
		return shared.NoCrossover, false
	}
}
