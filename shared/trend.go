package shared

// Trend represents the market trend classification for an instrument.
type Trend int

const (
	NeutralTrend Trend = iota
	BullishTrend
	StrongBullishTrend
	BearishTrend
	StrongBearishTrend
)

// String stringifies the provided trend.
func (t Trend) String() string {
	switch t {
	case NeutralTrend:
		return "NEUTRAL"
	case BullishTrend:
		return "BULLISH"
	case StrongBullishTrend:
		return "STRONG BULLISH"
	case BearishTrend:
		return "BEARISH"
	case StrongBearishTrend:
		return "STRONG BEARISH"
	default:
		return "unknown"
	}
}

// Bullish indicates whether the provided trend is a bullish classification.
func (t Trend) Bullish() bool {
	return t == BullishTrend || t == StrongBullishTrend
}

// Crossover represents an ema crossover event classification.
type Crossover int

const (
	NoCrossover Crossover = iota
	BullishCrossover
	BearishCrossover
)

// String stringifies the provided crossover.
func (c Crossover) String() string {
	switch c {
	case NoCrossover:
		return "NO CROSSOVER"
	case BullishCrossover:
		return "BULLISH CROSSOVER"
	case BearishCrossover:
		return "BEARISH CROSSOVER"
	default:
		return "unknown"
	}
}
