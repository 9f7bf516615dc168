package fetch

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/0shark/markettower/internal/core"
	"github.com/0shark/markettower/internal/provider"
)

// QuotePipeline makes a single quote request and wraps any failure with the
// ticker.
type QuotePipeline struct {
	provider provider.Provider
	observer Observer
	logger   *zap.Logger
}

// NewQuotePipeline creates a quote pipeline.
func NewQuotePipeline(p provider.Provider, observer Observer, logger *zap.Logger) *QuotePipeline {
	if observer == nil {
		observer = nopObserver{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &QuotePipeline{
		provider: p,
		observer: observer,
		logger:   logger.Named("quote"),
	}
}

// Fetch returns the provider's quote verbatim, or a *core.FetchError when the
// provider fails or returns nothing usable: no quote, no symbol, or no
// positive price.
func (p *QuotePipeline) Fetch(ctx context.Context, ticker string) (*core.Quote, error) {
	started := time.Now()
	defer func() {
		p.observer.ObserveFetchDuration(KindQuote, time.Since(started).Seconds())
	}()

	log := p.logger.With(zap.String("ticker", ticker))
	log.Debug("fetching quote")

	quote, err := p.provider.Quote(ctx, ticker)
	if err == nil && (quote == nil || !quote.IsValid()) {
		err = core.WrapError(core.ErrNoData, nil)
	}
	if err != nil {
		p.observer.ObserveFetchAttempt(KindQuote, OutcomeError)
		p.observer.ObserveQuoteFailure()
		log.Error("failed to fetch stock quote", zap.Error(err))
		return nil, &core.FetchError{Ticker: ticker, Cause: err}
	}

	p.observer.ObserveFetchAttempt(KindQuote, OutcomeSuccess)
	return quote, nil
}
