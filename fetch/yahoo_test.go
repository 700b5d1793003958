package fetch

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dnldd/trendwatch/shared"
	"github.com/peterldowns/testy/assert"
	"github.com/rs/zerolog/log"
)

// chartResponse builds a chart api response body carrying the provided
// closes, with nulls interleaved when withNulls is set.
func chartResponse(closes []float64, withNulls bool) string {
	timestamps := make([]string, 0, len(closes))
	closeStrs := make([]string, 0, len(closes)+2)
	for idx := range closes {
		timestamps = append(timestamps, fmt.Sprintf("%d", 1700000000+idx*60))
		closeStrs = append(closeStrs, fmt.Sprintf("%v", closes[idx]))
	}
	if withNulls {
		closeStrs = append(closeStrs, "null", "null")
		timestamps = append(timestamps, "1700009000", "1700009060")
	}

	return fmt.Sprintf(`{"chart":{"result":[{"timestamp":[%s],`+
		`"indicators":{"quote":[{"close":[%s]}]}}],"error":null}}`,
		strings.Join(timestamps, ","), strings.Join(closeStrs, ","))
}

func TestChartClientFormURL(t *testing.T) {
	cfg := &ChartConfig{
		BaseURL: "http://base",
		Logger:  &log.Logger,
	}

	cc := NewChartClient(cfg)

	// Ensure urls can be formed accurately with the symbol path escaped.
	params := url.Values{}
	params.Add("range", "5d")
	params.Add("interval", "5m")

	formedURL := cc.formURL("^NSEI", params.Encode())
	assert.Equal(t, formedURL, "http://base/v8/finance/chart/%5ENSEI?interval=5m&range=5d")
}

func TestChartClientFetchCloses(t *testing.T) {
	symbol := "^NSEI"
	timeframe := shared.FiveMinute

	closes := make([]float64, 0, 25)
	for idx := 0; idx < 25; idx++ {
		closes = append(closes, 100+float64(idx))
	}

	var gotPath, gotUserAgent string
	body := chartResponse(closes, true)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		gotUserAgent = r.Header.Get("User-Agent")
		fmt.Fprint(w, body)
	}))
	defer server.Close()

	cacheDir := t.TempDir()
	cc := NewChartClient(&ChartConfig{
		BaseURL:  server.URL,
		CacheDir: cacheDir,
		Logger:   &log.Logger,
	})

	// Ensure a close series can be fetched with null closes filtered out.
	fetched, err := cc.FetchCloses(context.Background(), symbol, timeframe)
	assert.NoError(t, err)
	assert.Equal(t, len(fetched), len(closes))
	assert.Equal(t, fetched[0], float64(100))
	assert.Equal(t, fetched[len(fetched)-1], float64(124))

	// Ensure the request escaped the symbol and set the user agent.
	assert.Equal(t, gotPath, "/v8/finance/chart/%5ENSEI")
	assert.Equal(t, gotUserAgent, "Mozilla/5.0")

	// Ensure the fetched series was cached with a sanitized filename.
	cached, err := os.ReadFile(filepath.Join(cacheDir, "NSEI_intraday.csv"))
	assert.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(cached), "close\n100\n"))
}

func TestChartClientNoData(t *testing.T) {
	symbol := "RELIANCE.NS"
	timeframe := shared.FiveMinute

	tests := []struct {
		name    string
		status  int
		body    string
		wantErr bool
	}{
		{
			"insufficient data points yield no data",
			http.StatusOK,
			chartResponse([]float64{100, 101, 102}, false),
			false,
		},
		{
			"empty timestamps yield no data",
			http.StatusOK,
			`{"chart":{"result":[{"timestamp":[],"indicators":{"quote":[{"close":[]}]}}],"error":null}}`,
			false,
		},
		{
			"missing result is an error",
			http.StatusOK,
			`{"chart":{"result":null,"error":{"description":"No data found"}}}`,
			true,
		},
		{
			"malformed body is an error",
			http.StatusOK,
			`not json`,
			true,
		},
		{
			"unexpected status is an error",
			http.StatusTooManyRequests,
			``,
			true,
		},
	}

	for _, test := range tests {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(test.status)
			fmt.Fprint(w, test.body)
		}))

		cc := NewChartClient(&ChartConfig{
			BaseURL: server.URL,
			Logger:  &log.Logger,
		})

		fetched, err := cc.FetchCloses(context.Background(), symbol, timeframe)
		if test.wantErr && err == nil {
			t.Errorf("%s: expected an error", test.name)
		}
		if !test.wantErr {
			if err != nil {
				t.Errorf("%s: unexpected error: %v", test.name, err)
			}
			if fetched != nil {
				t.Errorf("%s: expected no data, got %d closes", test.name, len(fetched))
			}
		}

		server.Close()
	}

	// Ensure transport errors surface as errors.
	cc := NewChartClient(&ChartConfig{
		BaseURL: "http://127.0.0.1:0",
		Logger:  &log.Logger,
	})
	_, err := cc.FetchCloses(context.Background(), symbol, timeframe)
	assert.Error(t, err)
}

func TestSanitizeSymbol(t *testing.T) {
	tests := []struct {
		name   string
		symbol string
		want   string
	}{
		{
			"index prefix removed",
			"^NSEI",
			"NSEI",
		},
		{
			"exchange suffix dot replaced",
			"RELIANCE.NS",
			"RELIANCE_NS",
		},
		{
			"slash replaced",
			"BRK/B",
			"BRK_B",
		},
	}

	for _, test := range tests {
		got := sanitizeSymbol(test.symbol)
		if got != test.want {
			t.Errorf("%s: expected %v, got %v", test.name, test.want, got)
		}
	}
}
