package yahoo

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/0shark/markettower/internal/core"
	"github.com/0shark/markettower/internal/provider"
	"github.com/0shark/markettower/internal/timerange"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const chartBody = `{
  "chart": {
    "result": [{
      "meta": {
        "symbol": "AAPL",
        "currency": "USD",
        "exchangeName": "NMS",
        "fullExchangeName": "NasdaqGS",
        "instrumentType": "EQUITY",
        "exchangeTimezoneName": "America/New_York",
        "dataGranularity": "1d",
        "shortName": "Apple Inc.",
        "longName": "Apple Inc.",
        "regularMarketPrice": 190.0,
        "chartPreviousClose": 180.0,
        "previousClose": 200.0,
        "regularMarketDayHigh": 191.5,
        "regularMarketDayLow": 188.25,
        "regularMarketVolume": 51234567,
        "regularMarketTime": 1715803200,
        "fiftyTwoWeekHigh": 199.62,
        "fiftyTwoWeekLow": 164.08
      },
      "timestamp": [1715607000, 1715693400, 1715779800],
      "indicators": {
        "quote": [{
          "open":   [187.0, null, 189.0],
          "high":   [188.0, null, 191.0],
          "low":    [186.0, null, 188.0],
          "close":  [187.5, null, 190.0],
          "volume": [1000, null, 3000]
        }]
      }
    }],
    "error": null
  }
}`

type capturedRequest struct {
	path   string
	query  url.Values
	header http.Header
}

func newTestServer(t *testing.T, status int, body string, seen *capturedRequest) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if seen != nil {
			*seen = capturedRequest{path: r.URL.Path, query: r.URL.Query(), header: r.Header.Clone()}
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestYahoo(baseURL string) *Yahoo {
	cfg := DefaultConfig()
	cfg.BaseURL = baseURL
	cfg.RatePerSecond = 0
	return New(cfg, nil)
}

func TestYahoo_ImplementsProvider(t *testing.T) {
	var _ provider.Provider = (*Yahoo)(nil)
}

func TestYahoo_Name(t *testing.T) {
	y := New(DefaultConfig(), nil)
	if y.Name() != "yahoo" {
		t.Errorf("expected 'yahoo', got '%s'", y.Name())
	}
}

func TestValidateSymbol(t *testing.T) {
	valid := []string{"AAPL", "BRK-B", "0700.HK", "^GSPC", "ES=F", "BTC-USD"}
	for _, s := range valid {
		assert.NoError(t, validateSymbol(s), s)
	}

	invalid := []string{"", "AAPL MSFT", "../etc", "THIS-SYMBOL-IS-FAR-TOO-LONG"}
	for _, s := range invalid {
		err := validateSymbol(s)
		assert.Error(t, err, s)
		assert.True(t, errors.Is(err, core.ErrInvalidSymbol), s)
	}
}

func TestYahoo_Chart(t *testing.T) {
	var seen capturedRequest
	srv := newTestServer(t, http.StatusOK, chartBody, &seen)
	y := newTestYahoo(srv.URL)

	window := core.TimeWindow{
		Start: time.Unix(1715000000, 0),
		End:   time.Unix(1715800000, 0),
	}
	res, err := y.Chart(context.Background(), "AAPL", window, timerange.Interval1D)
	require.NoError(t, err)

	assert.Equal(t, "/v8/finance/chart/AAPL", seen.path)
	assert.Equal(t, "1715000000", seen.query.Get("period1"))
	assert.Equal(t, "1715800000", seen.query.Get("period2"))
	assert.Equal(t, "1d", seen.query.Get("interval"))
	assert.NotEmpty(t, seen.header.Get("User-Agent"))

	require.Len(t, res.Quotes, 3)
	assert.Equal(t, 187.5, *res.Quotes[0].Close)
	assert.Nil(t, res.Quotes[1].Close, "null close should stay absent")
	assert.Equal(t, int64(3000), *res.Quotes[2].Volume)
	assert.True(t, res.Quotes[2].Date.Equal(time.Unix(1715779800, 0)))

	assert.Equal(t, "AAPL", res.Meta.Symbol)
	assert.Equal(t, "NasdaqGS", res.Meta.FullExchangeName)
	require.NotNil(t, res.Meta.RegularMarketPrice)
	assert.Equal(t, 190.0, *res.Meta.RegularMarketPrice)
}

func TestYahoo_Chart_EmptyResultIsNotAnError(t *testing.T) {
	body := `{"chart":{"result":[{"meta":{"symbol":"AAPL","currency":"USD"},"indicators":{"quote":[{}]}}],"error":null}}`
	srv := newTestServer(t, http.StatusOK, body, nil)
	y := newTestYahoo(srv.URL)

	res, err := y.Chart(context.Background(), "AAPL", core.TimeWindow{}, timerange.Interval1Min)
	require.NoError(t, err)
	assert.Empty(t, res.Quotes)
	assert.Equal(t, "AAPL", res.Meta.Symbol)
}

func TestYahoo_Chart_NoResult(t *testing.T) {
	srv := newTestServer(t, http.StatusOK, `{"chart":{"result":[],"error":null}}`, nil)
	y := newTestYahoo(srv.URL)

	res, err := y.Chart(context.Background(), "AAPL", core.TimeWindow{}, timerange.Interval1D)
	require.NoError(t, err)
	assert.NotNil(t, res.Quotes)
	assert.Empty(t, res.Quotes)
	assert.True(t, res.Meta.IsEmpty())
}

func TestYahoo_Chart_UpstreamError(t *testing.T) {
	body := `{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found, symbol may be delisted"}}}`
	srv := newTestServer(t, http.StatusNotFound, body, nil)
	y := newTestYahoo(srv.URL)

	_, err := y.Chart(context.Background(), "NOPE", core.TimeWindow{}, timerange.Interval1D)
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrProviderFailed))
	assert.Contains(t, err.Error(), "symbol may be delisted")
}

func TestYahoo_Chart_BadStatus(t *testing.T) {
	srv := newTestServer(t, http.StatusTooManyRequests, `Too Many Requests`, nil)
	y := newTestYahoo(srv.URL)

	_, err := y.Chart(context.Background(), "AAPL", core.TimeWindow{}, timerange.Interval1D)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestYahoo_Chart_InvalidSymbolSkipsRequest(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	y := newTestYahoo(srv.URL)
	_, err := y.Chart(context.Background(), "bad symbol", core.TimeWindow{}, timerange.Interval1D)
	assert.Error(t, err)
	assert.False(t, called)
}

func TestYahoo_Quote(t *testing.T) {
	var seen capturedRequest
	srv := newTestServer(t, http.StatusOK, chartBody, &seen)
	y := newTestYahoo(srv.URL)

	q, err := y.Quote(context.Background(), "AAPL")
	require.NoError(t, err)
	require.NotNil(t, q)

	assert.Equal(t, "1d", seen.query.Get("range"))
	assert.Equal(t, "AAPL", q.Symbol)
	assert.Equal(t, "Apple Inc.", q.ShortName)
	assert.Equal(t, "USD", q.Currency)
	assert.Equal(t, "NASDAQ", q.DisplayExchange())
	assert.Equal(t, 190.0, q.RegularMarketPrice)
	assert.Equal(t, 200.0, q.RegularMarketPreviousClose, "previousClose preferred over chartPreviousClose")
	require.NotNil(t, q.RegularMarketChange)
	assert.InDelta(t, -10.0, *q.RegularMarketChange, 1e-9)
	assert.InDelta(t, -5.0, *q.RegularMarketChangePercent, 1e-9)
	assert.Equal(t, int64(51234567), q.RegularMarketVolume)
	assert.Equal(t, "yahoo", q.Source)
}

func TestYahoo_Quote_NoResultIsAbsent(t *testing.T) {
	srv := newTestServer(t, http.StatusOK, `{"chart":{"result":[],"error":null}}`, nil)
	y := newTestYahoo(srv.URL)

	q, err := y.Quote(context.Background(), "INVALIDTICKER")
	assert.NoError(t, err)
	assert.Nil(t, q)
}

func TestYahoo_RateLimiterHonoursContext(t *testing.T) {
	srv := newTestServer(t, http.StatusOK, chartBody, nil)
	cfg := DefaultConfig()
	cfg.BaseURL = srv.URL
	cfg.RatePerSecond = 0.001
	cfg.Burst = 1
	y := New(cfg, nil)

	_, err := y.Quote(context.Background(), "AAPL")
	require.NoError(t, err, "first call uses the burst token")

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = y.Quote(ctx, "AAPL")
	assert.Error(t, err)
}
