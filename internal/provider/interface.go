package provider

import (
	"context"
	"time"

	"github.com/0shark/markettower/internal/core"
	"github.com/0shark/markettower/internal/timerange"
)

// Bar is a raw time-series sample as returned upstream. Any field may be
// absent.
type Bar struct {
	Date   *time.Time
	Open   *float64
	High   *float64
	Low    *float64
	Close  *float64
	Volume *int64
}

// ChartResult is a raw upstream chart response. An empty Quotes slice is a
// structurally valid but empty result, not an error.
type ChartResult struct {
	Quotes []Bar
	Meta   core.ChartMeta
}

// Provider defines the upstream financial-data client. Calls may be slow,
// may fail, and may return well-formed but empty results.
type Provider interface {
	Name() string

	// Chart fetches a time series for ticker over window at the given interval.
	Chart(ctx context.Context, ticker string, window core.TimeWindow, interval timerange.Interval) (*ChartResult, error)

	// Quote fetches a point-in-time snapshot. A nil quote with a nil error
	// means the provider returned no data.
	Quote(ctx context.Context, ticker string) (*core.Quote, error)
}
