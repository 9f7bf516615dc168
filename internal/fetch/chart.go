package fetch

import (
	"context"
	"math"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/0shark/markettower/internal/core"
	"github.com/0shark/markettower/internal/provider"
	"github.com/0shark/markettower/internal/timerange"
)

// ChartPipeline fetches chart series with bounded retry and a single range
// extension when the provider keeps answering with no data points.
type ChartPipeline struct {
	provider provider.Provider
	resolver *timerange.Resolver
	opts     Options
	observer Observer
	logger   *zap.Logger
	now      func() time.Time
}

// NewChartPipeline creates a chart pipeline. A nil observer or logger is
// replaced with a no-op.
func NewChartPipeline(p provider.Provider, resolver *timerange.Resolver, opts Options, observer Observer, logger *zap.Logger) *ChartPipeline {
	if observer == nil {
		observer = nopObserver{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.MaxAttempts < 1 {
		opts.MaxAttempts = 1
	}
	return &ChartPipeline{
		provider: p,
		resolver: resolver,
		opts:     opts,
		observer: observer,
		logger:   logger.Named("chart"),
		now:      time.Now,
	}
}

// SetClock replaces the clock used to anchor query windows. It must be
// called before the pipeline is shared.
func (p *ChartPipeline) SetClock(now func() time.Time) {
	p.now = now
}

// Fetch returns the close series for ticker. It never fails: when every
// attempt errors, or the extended range is still empty, or ctx is done, the
// result is an empty series. The clock is read once so every attempt of one
// request queries against the same last close.
func (p *ChartPipeline) Fetch(ctx context.Context, ticker string, rng timerange.Range, interval timerange.Interval) core.ChartSeries {
	started := time.Now()
	defer func() {
		p.observer.ObserveFetchDuration(KindChart, time.Since(started).Seconds())
	}()

	if p.opts.RequestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.opts.RequestTimeout)
		defer cancel()
	}

	now := p.now()
	current := rng
	extended := false
	var lastMeta core.ChartMeta

	// Error exhaustion before any extension reports empty meta; after an
	// extension the meta of the empty response that triggered it is kept.
	sentinel := func(reason string) core.ChartSeries {
		p.observer.ObserveChartSentinel(reason)
		if extended {
			return core.EmptySeries(lastMeta)
		}
		return core.EmptySeries(core.ChartMeta{})
	}

	for attempt := 1; attempt <= p.opts.MaxAttempts; attempt++ {
		window := p.resolver.Window(current, now)
		log := p.logger.With(
			zap.String("ticker", ticker),
			zap.String("range", string(current)),
			zap.String("interval", string(interval)),
			zap.Int("attempt", attempt),
			zap.Int64("period1", window.Period1()),
			zap.Int64("period2", window.Period2()),
		)
		log.Debug("fetching chart data")

		res, err := p.provider.Chart(ctx, ticker, window, interval)

		switch {
		case err != nil:
			p.observer.ObserveFetchAttempt(KindChart, OutcomeError)
			if attempt == p.opts.MaxAttempts {
				log.Error("all attempts failed to fetch chart data", zap.Error(err))
				return sentinel(SentinelExhausted)
			}
			log.Warn("chart attempt failed, retrying",
				zap.Error(err),
				zap.Duration("backoff", p.opts.Backoff),
			)
			if err := sleep(ctx, p.opts.Backoff); err != nil {
				log.Error("chart fetch cancelled", zap.Error(err))
				return sentinel(SentinelCancelled)
			}

		case res == nil || len(res.Quotes) == 0:
			p.observer.ObserveFetchAttempt(KindChart, OutcomeEmpty)
			if res != nil {
				lastMeta = res.Meta
			}
			if attempt < p.opts.MaxAttempts {
				log.Warn("no chart data returned, retrying", zap.Duration("backoff", p.opts.Backoff))
				if err := sleep(ctx, p.opts.Backoff); err != nil {
					log.Error("chart fetch cancelled", zap.Error(err))
					return sentinel(SentinelCancelled)
				}
				continue
			}
			if next := current.Next(); !extended && next != current {
				log.Info("no chart data, extending range",
					zap.String("from", string(current)),
					zap.String("to", string(next)),
				)
				p.observer.ObserveRangeExtension(string(current), string(next))
				current = next
				extended = true
				attempt = 0
				continue
			}
			log.Warn("no chart data returned")
			p.observer.ObserveChartSentinel(SentinelEmpty)
			return core.EmptySeries(lastMeta)

		default:
			p.observer.ObserveFetchAttempt(KindChart, OutcomeSuccess)
			series := project(res)
			log.Debug("chart data received",
				zap.Int("quotes", len(res.Quotes)),
				zap.Int("kept", len(series.Quotes)),
			)
			return series
		}
	}

	// The loop always returns; MaxAttempts is at least one.
	return sentinel(SentinelExhausted)
}

// project keeps the (date, close) pairs that have both values, in provider
// order, and passes the metadata through untouched.
func project(res *provider.ChartResult) core.ChartSeries {
	points := make([]core.ChartPoint, 0, len(res.Quotes))
	for _, bar := range res.Quotes {
		if bar.Date == nil || bar.Close == nil {
			continue
		}
		if math.IsNaN(*bar.Close) || math.IsInf(*bar.Close, 0) {
			continue
		}
		points = append(points, core.ChartPoint{
			Date:  *bar.Date,
			Close: decimal.NewFromFloat(*bar.Close),
		})
	}
	return core.ChartSeries{Quotes: points, Meta: res.Meta}
}
