package fetch

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/dnldd/trendwatch/indicator"
	"github.com/dnldd/trendwatch/shared"
	"github.com/rs/zerolog"
	"github.com/samber/lo"
	"github.com/tidwall/gjson"
)

const (
	// BaseURL is the yahoo finance chart api base url.
	BaseURL = "https://query1.finance.yahoo.com"
	// chartPath is the chart api path prefix.
	chartPath = "/v8/finance/chart/"
	// userAgent is the user agent header sent with chart requests.
	userAgent = "Mozilla/5.0"
	// requestTimeout bounds every chart request.
	requestTimeout = time.Second * 15
)

// ChartConfig represents the configuration for the chart client.
type ChartConfig struct {
	// BaseURL is the chart api base url.
	BaseURL string
	// CacheDir is the directory for best-effort close series caches. An
	// empty string disables caching.
	CacheDir string
	// Logger represents the application logger.
	Logger *zerolog.Logger
}

// ChartClient represents the yahoo finance chart api client. It is safe
// for concurrent use by multiple monitor tasks.
type ChartClient struct {
	cfg   *ChartConfig
	httpc http.Client
}

// Ensure the chart client implements the MarketFetcher interface.
var _ shared.MarketFetcher = (*ChartClient)(nil)

// NewChartClient instantiates a new chart client.
func NewChartClient(cfg *ChartConfig) *ChartClient {
	return &ChartClient{
		cfg:   cfg,
		httpc: http.Client{Timeout: requestTimeout},
	}
}

// formURL creates full urls including parameters for the chart api.
func (c *ChartClient) formURL(symbol string, params string) string {
	buf := bytes.NewBuffer(make([]byte, 0, 128))
	buf.WriteString(c.cfg.BaseURL)
	buf.WriteString(chartPath)
	buf.WriteString(url.PathEscape(symbol))
	buf.WriteString("?")
	buf.WriteString(params)

	return buf.String()
}

// parseCloses parses a close series from the provided chart response body.
// A nil series with a nil error indicates the response carried no usable
// data for the cycle.
func parseCloses(body []byte) ([]float64, error) {
	result := gjson.GetBytes(body, "chart.result.0")
	if !result.Exists() {
		return nil, fmt.Errorf("chart response missing result: %s", gjson.GetBytes(body, "chart.error.description").String())
	}

	timestamps := result.Get("timestamp").Array()
	rawCloses := result.Get("indicators.quote.0.close").Array()
	if len(timestamps) == 0 || len(rawCloses) == 0 {
		return nil, nil
	}

	// Null closes mark gaps in the series and are dropped.
	closes := lo.FilterMap(rawCloses, func(item gjson.Result, _ int) (float64, bool) {
		return item.Float(), item.Type != gjson.Null
	})

	if len(closes) < indicator.SlowEMAPeriod {
		return nil, nil
	}

	return closes, nil
}

// FetchCloses fetches a time ordered (oldest first) close series for the
// provided symbol covering the timeframe's lookback range.
func (c *ChartClient) FetchCloses(ctx context.Context, symbol string, timeframe shared.Timeframe) ([]float64, error) {
	params := url.Values{}
	params.Add("range", timeframe.LookbackRange())
	params.Add("interval", timeframe.APICode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.formURL(symbol, params.Encode()), nil)
	if err != nil {
		return nil, fmt.Errorf("creating chart request for %s: %w", symbol, err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching chart data (%s) for %s: %w", timeframe.APICode(), symbol, err)
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching chart data for %s: unexpected status %s", symbol, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading chart response body: %w", err)
	}

	closes, err := parseCloses(body)
	if err != nil {
		return nil, err
	}

	if closes != nil && c.cfg.CacheDir != "" {
		c.cacheCloses(symbol, closes)
	}

	return closes, nil
}

// sanitizeSymbol converts the provided symbol into a safe cache filename
// component.
func sanitizeSymbol(symbol string) string {
	replacer := strings.NewReplacer("^", "", ".", "_", "/", "_")
	return replacer.Replace(symbol)
}

// cacheCloses persists the provided close series to the cache directory.
// Caching is best-effort, failures are logged and ignored.
func (c *ChartClient) cacheCloses(symbol string, closes []float64) {
	err := os.MkdirAll(c.cfg.CacheDir, 0o755)
	if err != nil {
		c.cfg.Logger.Warn().Msgf("creating cache directory: %v", err)
		return
	}

	var sb strings.Builder
	sb.WriteString("close\n")
	for idx := range closes {
		sb.WriteString(strconv.FormatFloat(closes[idx], 'f', -1, 64))
		sb.WriteString("\n")
	}

	path := filepath.Join(c.cfg.CacheDir, fmt.Sprintf("%s_intraday.csv", sanitizeSymbol(symbol)))
	err = os.WriteFile(path, []byte(sb.String()), 0o644)
	if err != nil {
		c.cfg.Logger.Warn().Msgf("caching close series for %s: %v", symbol, err)
	}
}
