package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/0shark/markettower/internal/core"
	"github.com/0shark/markettower/internal/provider"
	"github.com/0shark/markettower/internal/timerange"
)

const (
	DefaultBaseURL   = "https://query1.finance.yahoo.com"
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

	chartPath = "/v8/finance/chart/{symbol}"
)

// validSymbol matches tickers like AAPL, BRK-B, 0700.HK, ^GSPC, ES=F, BTC-USD
var validSymbol = regexp.MustCompile(`^[A-Za-z0-9^=.\-]{1,20}$`)

func validateSymbol(symbol string) error {
	if symbol == "" {
		return core.WrapError(core.ErrInvalidSymbol, fmt.Errorf("symbol cannot be empty"))
	}
	if !validSymbol.MatchString(symbol) {
		return core.WrapError(core.ErrInvalidSymbol, fmt.Errorf("invalid symbol format: %s", symbol))
	}
	return nil
}

// Config holds Yahoo client settings
type Config struct {
	BaseURL       string
	Timeout       time.Duration
	UserAgent     string
	RatePerSecond float64 // <= 0 disables client-side limiting
	Burst         int
}

// DefaultConfig returns the settings used when none are configured
func DefaultConfig() Config {
	return Config{
		BaseURL:       DefaultBaseURL,
		Timeout:       10 * time.Second,
		UserAgent:     DefaultUserAgent,
		RatePerSecond: 5,
		Burst:         10,
	}
}

// Yahoo implements provider.Provider against the Yahoo Finance chart API
type Yahoo struct {
	client  *resty.Client
	limiter *rate.Limiter
	logger  *zap.Logger
}

// New creates a new Yahoo provider
func New(cfg Config, logger *zap.Logger) *Yahoo {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}

	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetHeaders(map[string]string{
			"Accept":     "application/json",
			"User-Agent": cfg.UserAgent,
		})

	var limiter *rate.Limiter
	if cfg.RatePerSecond > 0 {
		burst := cfg.Burst
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RatePerSecond), burst)
	}

	return &Yahoo{
		client:  client,
		limiter: limiter,
		logger:  logger.Named("yahoo"),
	}
}

func (y *Yahoo) Name() string {
	return "yahoo"
}

// Chart fetches a close series for the window
func (y *Yahoo) Chart(ctx context.Context, ticker string, window core.TimeWindow, interval timerange.Interval) (*provider.ChartResult, error) {
	if err := validateSymbol(ticker); err != nil {
		return nil, err
	}

	result, err := y.fetchChart(ctx, ticker, map[string]string{
		"period1":        strconv.FormatInt(window.Period1(), 10),
		"period2":        strconv.FormatInt(window.Period2(), 10),
		"interval":       string(interval),
		"includePrePost": "false",
		"events":         "div|split",
	})
	if err != nil {
		return nil, err
	}
	if result == nil {
		return &provider.ChartResult{Quotes: []provider.Bar{}}, nil
	}

	return &provider.ChartResult{
		Quotes: result.bars(),
		Meta:   result.Meta.toCore(),
	}, nil
}

// Quote fetches a point-in-time snapshot from the one-day chart meta
func (y *Yahoo) Quote(ctx context.Context, ticker string) (*core.Quote, error) {
	if err := validateSymbol(ticker); err != nil {
		return nil, err
	}

	result, err := y.fetchChart(ctx, ticker, map[string]string{
		"range":    "1d",
		"interval": "1d",
	})
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, nil
	}

	return result.Meta.toQuote(ticker), nil
}

// fetchChart returns the first chart result, or nil when the response has none.
func (y *Yahoo) fetchChart(ctx context.Context, ticker string, params map[string]string) (*chartResult, error) {
	if y.limiter != nil {
		if err := y.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("waiting for rate limiter: %w", err)
		}
	}

	y.logger.Debug("requesting chart", zap.String("ticker", ticker), zap.Any("params", params))

	resp, err := y.client.R().
		SetContext(ctx).
		SetPathParam("symbol", ticker).
		SetQueryParams(params).
		Get(chartPath)
	if err != nil {
		return nil, core.WrapError(core.ErrProviderFailed, fmt.Errorf("fetching chart: %w", err))
	}

	var body chartResponse
	decodeErr := json.Unmarshal(resp.Body(), &body)

	if decodeErr == nil && body.Chart.Error != nil {
		return nil, core.WrapError(core.ErrProviderFailed,
			fmt.Errorf("yahoo error: %s: %s", body.Chart.Error.Code, body.Chart.Error.Description))
	}
	if !resp.IsSuccess() {
		return nil, core.WrapError(core.ErrProviderFailed,
			fmt.Errorf("unexpected status: %d", resp.StatusCode()))
	}
	if decodeErr != nil {
		return nil, core.WrapError(core.ErrProviderFailed, fmt.Errorf("decoding response: %w", decodeErr))
	}

	if len(body.Chart.Result) == 0 {
		return nil, nil
	}
	return &body.Chart.Result[0], nil
}
