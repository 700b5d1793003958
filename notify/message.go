package notify

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/dnldd/trendwatch/indicator"
	"github.com/dnldd/trendwatch/shared"
	"github.com/shopspring/decimal"
)

// money formats the provided value as a fixed two decimal place string.
func money(value float64) string {
	return decimal.NewFromFloat(value).StringFixed(2)
}

// messageClock returns the wall clock timestamp stamped on messages.
func messageClock() string {
	now, _, err := shared.KolkataTime()
	if err != nil {
		// Fall back to the local clock if the tzdata lookup fails.
		now = time.Now()
	}

	return now.Format(shared.ClockLayout)
}

// FormatSummaryMessage formats the periodic summary for the provided
// snapshot as html text.
func FormatSummaryMessage(snapshot *indicator.Snapshot, timeframe shared.Timeframe) string {
	buf := bytes.NewBuffer(make([]byte, 0, 512))

	title := strings.ReplaceAll(timeframe.String(), " ", "")
	fmt.Fprintf(buf, "<b>%s - %s Summary</b>\n\n", snapshot.Symbol, title)
	fmt.Fprintf(buf, "<b>Time:</b> %s\n", messageClock())
	fmt.Fprintf(buf, "<b>Trend:</b> %s\n", snapshot.Trend)
	fmt.Fprintf(buf, "<b>Signal:</b> %s\n\n", snapshot.Crossover)
	buf.WriteString("<b>KEY LEVELS:</b>\n")
	fmt.Fprintf(buf, "<b>Current Price:</b> %s\n", money(snapshot.CurrentClose))
	fmt.Fprintf(buf, "<b>EMA%d:</b> %s\n", indicator.FastEMAPeriod, money(snapshot.LatestFastEMA))
	fmt.Fprintf(buf, "<b>EMA%d:</b> %s\n", indicator.SlowEMAPeriod, money(snapshot.LatestSlowEMA))
	fmt.Fprintf(buf, "<b>EMA Spread (%d-%d):</b> %s\n", indicator.FastEMAPeriod,
		indicator.SlowEMAPeriod, money(snapshot.EMASpread()))

	return buf.String()
}

// FormatAlertMessage formats a new crossover alert for the provided
// snapshot as html text.
func FormatAlertMessage(snapshot *indicator.Snapshot, timeframe shared.Timeframe) string {
	buf := bytes.NewBuffer(make([]byte, 0, 512))

	fmt.Fprintf(buf, "<b>%s - %s ALERT!</b>\n\n", snapshot.Symbol, timeframe)
	fmt.Fprintf(buf, "<b>Time:</b> %s\n", messageClock())
	fmt.Fprintf(buf, "<b>Signal:</b> %s\n\n", snapshot.Crossover)
	buf.WriteString("<b>CURRENT LEVELS:</b>\n")
	fmt.Fprintf(buf, "<b>Price:</b> %s\n", money(snapshot.CurrentClose))
	fmt.Fprintf(buf, "<b>EMA%d:</b> %s\n", indicator.FastEMAPeriod, money(snapshot.LatestFastEMA))
	fmt.Fprintf(buf, "<b>EMA%d:</b> %s\n", indicator.SlowEMAPeriod, money(snapshot.LatestSlowEMA))

	switch snapshot.Crossover {
	case shared.BullishCrossover:
		buf.WriteString("<b>Potential Uptrend Starting!</b>\n")
	case shared.BearishCrossover:
		buf.WriteString("<b>Potential Downtrend Starting!</b>\n")
	}

	return buf.String()
}
