// Package fetch executes upstream requests for chart series and quotes.
//
// The two paths fail differently on purpose. A chart request never returns
// an error: retries, a single range extension and finally an empty series
// keep charts renderable as "no data". A quote request makes one attempt and
// surfaces failure as *core.FetchError so the caller can report it.
package fetch

import (
	"context"
	"time"
)

// Options bounds the chart retry loop.
type Options struct {
	MaxAttempts    int
	Backoff        time.Duration
	RequestTimeout time.Duration // whole chart request including retries; 0 disables
}

// DefaultOptions returns 3 attempts with a fixed 2s backoff.
func DefaultOptions() Options {
	return Options{
		MaxAttempts:    3,
		Backoff:        2 * time.Second,
		RequestTimeout: 30 * time.Second,
	}
}

// Observer receives pipeline events. metrics.Registry satisfies it.
type Observer interface {
	ObserveFetchAttempt(kind, outcome string)
	ObserveRangeExtension(from, to string)
	ObserveChartSentinel(reason string)
	ObserveQuoteFailure()
	ObserveFetchDuration(kind string, seconds float64)
}

type nopObserver struct{}

func (nopObserver) ObserveFetchAttempt(string, string)   {}
func (nopObserver) ObserveRangeExtension(string, string) {}
func (nopObserver) ObserveChartSentinel(string)          {}
func (nopObserver) ObserveQuoteFailure()                 {}
func (nopObserver) ObserveFetchDuration(string, float64) {}

// Attempt outcomes and sentinel reasons reported to the Observer.
const (
	KindChart = "chart"
	KindQuote = "quote"

	OutcomeSuccess = "success"
	OutcomeEmpty   = "empty"
	OutcomeError   = "error"

	SentinelExhausted = "exhausted"
	SentinelEmpty     = "empty"
	SentinelCancelled = "cancelled"
)

// sleep waits for d or until ctx is done.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
