package shared

import "testing"

func TestTrendString(t *testing.T) {
	tests := []struct {
		name  string
		trend Trend
		want  string
	}{
		{
			"neutral",
			NeutralTrend,
			"NEUTRAL",
		},
		{
			"bullish",
			BullishTrend,
			"BULLISH",
		},
		{
			"strong bullish",
			StrongBullishTrend,
			"STRONG BULLISH",
		},
		{
			"bearish",
			BearishTrend,
			"BEARISH",
		},
		{
			"strong bearish",
			StrongBearishTrend,
			"STRONG BEARISH",
		},
		{
			"unknown",
			Trend(999),
			"unknown",
		},
	}

	for _, test := range tests {
		str := test.trend.String()
		if str != test.want {
			t.Errorf("%s: expected %v, got %v", test.name, test.want, str)
		}
	}
}

func TestTrendBullish(t *testing.T) {
	// Ensure only bullish classifications report as bullish.
	if !BullishTrend.Bullish() || !StrongBullishTrend.Bullish() {
		t.Error("expected bullish classifications to report as bullish")
	}
	if NeutralTrend.Bullish() || BearishTrend.Bullish() || StrongBearishTrend.Bullish() {
		t.Error("expected non-bullish classifications to not report as bullish")
	}
}

func TestCrossoverString(t *testing.T) {
	tests := []struct {
		name      string
		crossover Crossover
		want      string
	}{
		{
			"no crossover",
			NoCrossover,
			"NO CROSSOVER",
		},
		{
			"bullish crossover",
			BullishCrossover,
			"BULLISH CROSSOVER",
		},
		{
			"bearish crossover",
			BearishCrossover,
			"BEARISH CROSSOVER",
		},
		{
			"unknown",
			Crossover(999),
			"unknown",
		},
	}

	for _, test := range tests {
		str := test.crossover.String()
		if str != test.want {
			t.Errorf("%s: expected %v, got %v", test.name, test.want, str)
		}
	}
}
