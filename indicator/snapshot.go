package indicator

import (
	"github.com/dnldd/trendwatch/shared"
)

// Snapshot represents the immutable result of one indicator evaluation
// cycle for an instrument. It is rebuilt every cycle and never mutated
// after construction.
type Snapshot struct {
	Symbol         string
	Closes         []float64
	EMA            map[int][]float64
	Trend          shared.Trend
	Crossover      shared.Crossover
	IsNewCrossover bool
	CurrentClose   float64
	LatestFastEMA  float64
	LatestSlowEMA  float64
}

// NewSnapshot evaluates the ema trend indicators for the provided closing
// prices (oldest first). A series shorter than the slow ema period yields
// no snapshot, signalling the cycle should be skipped.
func NewSnapshot(symbol string, closes []float64) *Snapshot {
	if len(closes) < SlowEMAPeriod {
		return nil
	}

	fastEMA := EMA(closes, FastEMAPeriod)
	slowEMA := EMA(closes, SlowEMAPeriod)

	currentClose := closes[len(closes)-1]
	crossover, isNew := DetectCrossover(fastEMA, slowEMA)

	return &Snapshot{
		Symbol: symbol,
		Closes: closes,
		EMA: map[int][]float64{
			FastEMAPeriod: fastEMA,
			SlowEMAPeriod: slowEMA,
		},
		Trend:          CurrentTrend(fastEMA, slowEMA, currentClose),
		Crossover:      crossover,
		IsNewCrossover: isNew,
		CurrentClose:   currentClose,
		LatestFastEMA:  fastEMA[len(fastEMA)-1],
		LatestSlowEMA:  slowEMA[len(slowEMA)-1],
	}
}

// EMASpread returns the spread between the latest fast and slow ema values.
func (s *Snapshot) EMASpread() float64 {
	return s.LatestFastEMA - s.LatestSlowEMA
}
