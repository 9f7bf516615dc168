package fetch

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/0shark/markettower/internal/calendar"
	"github.com/0shark/markettower/internal/core"
	"github.com/0shark/markettower/internal/provider"
	"github.com/0shark/markettower/internal/timerange"
)

type chartCall struct {
	ticker   string
	window   core.TimeWindow
	interval timerange.Interval
}

// fakeProvider answers chart calls from a script keyed by call number (1-based).
type fakeProvider struct {
	mu         sync.Mutex
	chartFn    func(call int, window core.TimeWindow) (*provider.ChartResult, error)
	chartCalls []chartCall

	quote      *core.Quote
	quoteErr   error
	quoteCalls int
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) Chart(ctx context.Context, ticker string, window core.TimeWindow, interval timerange.Interval) (*provider.ChartResult, error) {
	f.mu.Lock()
	f.chartCalls = append(f.chartCalls, chartCall{ticker: ticker, window: window, interval: interval})
	call := len(f.chartCalls)
	f.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return f.chartFn(call, window)
}

func (f *fakeProvider) Quote(ctx context.Context, ticker string) (*core.Quote, error) {
	f.mu.Lock()
	f.quoteCalls++
	f.mu.Unlock()
	return f.quote, f.quoteErr
}

func (f *fakeProvider) calls() []chartCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]chartCall(nil), f.chartCalls...)
}

// recordingObserver counts pipeline events.
type recordingObserver struct {
	mu            sync.Mutex
	attempts      map[string]int
	extensions    []string
	sentinels     []string
	quoteFailures int
}

func newRecordingObserver() *recordingObserver {
	return &recordingObserver{attempts: map[string]int{}}
}

func (o *recordingObserver) ObserveFetchAttempt(kind, outcome string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.attempts[kind+"/"+outcome]++
}

func (o *recordingObserver) ObserveRangeExtension(from, to string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.extensions = append(o.extensions, from+"->"+to)
}

func (o *recordingObserver) ObserveChartSentinel(reason string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.sentinels = append(o.sentinels, reason)
}

func (o *recordingObserver) ObserveQuoteFailure() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.quoteFailures++
}

func (o *recordingObserver) ObserveFetchDuration(string, float64) {}

func testResolver(t *testing.T) *timerange.Resolver {
	t.Helper()
	cal, err := calendar.Load(calendar.DefaultTimezone)
	require.NoError(t, err)
	return timerange.NewResolver(timerange.DefaultTable(), cal)
}

// fixedNow is Wednesday 2024-05-15 18:00 New York, after the close.
func fixedNow() time.Time {
	loc, _ := time.LoadLocation(calendar.DefaultTimezone)
	return time.Date(2024, 5, 15, 18, 0, 0, 0, loc)
}

func testOptions(attempts int) Options {
	return Options{MaxAttempts: attempts, Backoff: time.Millisecond}
}

func newTestChartPipeline(t *testing.T, p provider.Provider, opts Options) (*ChartPipeline, *recordingObserver) {
	t.Helper()
	obs := newRecordingObserver()
	pipe := NewChartPipeline(p, testResolver(t), opts, obs, zap.NewNop())
	pipe.SetClock(fixedNow)
	return pipe, obs
}

func ptr[T any](v T) *T {
	return &v
}

// bars returns n daily bars starting 2024-05-01 with closes 100, 101, ...
func bars(n int) []provider.Bar {
	start := time.Date(2024, 5, 1, 13, 30, 0, 0, time.UTC)
	out := make([]provider.Bar, n)
	for i := range out {
		out[i] = provider.Bar{
			Date:  ptr(start.AddDate(0, 0, i)),
			Close: ptr(100 + float64(i)),
		}
	}
	return out
}
