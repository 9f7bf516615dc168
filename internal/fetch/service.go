package fetch

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/0shark/markettower/internal/core"
	"github.com/0shark/markettower/internal/provider"
	"github.com/0shark/markettower/internal/timerange"
)

// Service is the caller-facing API over the chart and quote pipelines.
// It holds no per-request state and is safe for concurrent use.
type Service struct {
	resolver *timerange.Resolver
	chart    *ChartPipeline
	quote    *QuotePipeline
	logger   *zap.Logger
}

// NewService wires both pipelines to one provider.
func NewService(p provider.Provider, resolver *timerange.Resolver, opts Options, observer Observer, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		resolver: resolver,
		chart:    NewChartPipeline(p, resolver, opts, observer, logger),
		quote:    NewQuotePipeline(p, observer, logger),
		logger:   logger,
	}
}

// SetClock replaces the clock used to anchor chart windows.
func (s *Service) SetClock(now func() time.Time) {
	s.chart.SetClock(now)
}

// Resolver exposes the range configuration in use.
func (s *Service) Resolver() *timerange.Resolver {
	return s.resolver
}

// Resolve normalises raw range and interval input. It never fails.
func (s *Service) Resolve(rng, interval string) (timerange.Range, timerange.Interval) {
	r := s.resolver.ValidateRange(rng)
	return r, s.resolver.ValidateInterval(r, interval)
}

// GetChartSeries never fails; it always returns a structurally valid,
// possibly empty, series.
func (s *Service) GetChartSeries(ctx context.Context, ticker, rng, interval string) core.ChartSeries {
	r, i := s.Resolve(rng, interval)
	return s.chart.Fetch(ctx, ticker, r, i)
}

// GetQuote fails with *core.FetchError when no quote is available.
func (s *Service) GetQuote(ctx context.Context, ticker string) (*core.Quote, error) {
	return s.quote.Fetch(ctx, ticker)
}

// Overview is everything a ticker chart header needs.
type Overview struct {
	Ticker             string             `json:"ticker"`
	Range              timerange.Range    `json:"range"`
	Interval           timerange.Interval `json:"interval"`
	RangeLabel         string             `json:"range_label"`
	Exchange           string             `json:"exchange"`
	PriceChangePercent *decimal.Decimal   `json:"price_change_percent,omitempty"`
	Quote              *core.Quote        `json:"quote"`
	Chart              core.ChartSeries   `json:"chart"`
}

// GetOverview fetches chart and quote concurrently. A quote failure fails
// the overview; the chart side cannot fail. The chart runs on ctx rather than
// the group context so a failed quote does not cut it short.
func (s *Service) GetOverview(ctx context.Context, ticker, rng, interval string) (*Overview, error) {
	r, i := s.Resolve(rng, interval)

	var (
		series core.ChartSeries
		quote  *core.Quote
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		series = s.chart.Fetch(ctx, ticker, r, i)
		return nil
	})
	g.Go(func() error {
		q, err := s.quote.Fetch(gctx, ticker)
		if err != nil {
			return err
		}
		quote = q
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &Overview{
		Ticker:             ticker,
		Range:              r,
		Interval:           i,
		RangeLabel:         r.Label(),
		Exchange:           quote.DisplayExchange(),
		PriceChangePercent: PriceChange(series),
		Quote:              quote,
		Chart:              series,
	}, nil
}

// PriceChange returns the percent move from the first close in the series to
// the regular market price in its metadata, rounded to two places. It is nil
// when either value is missing or the first close is zero.
func PriceChange(series core.ChartSeries) *decimal.Decimal {
	if len(series.Quotes) == 0 || series.Meta.RegularMarketPrice == nil {
		return nil
	}
	first := series.Quotes[0].Close
	if first.IsZero() {
		return nil
	}
	current := decimal.NewFromFloat(*series.Meta.RegularMarketPrice)
	pct := current.Sub(first).Div(first).Mul(decimal.NewFromInt(100)).Round(2)
	return &pct
}
