// internal/api/handler/api/symbol.go
package api

import (
	"context"
	"net/http"

	"github.com/0shark/markettower/internal/api/response"
	"github.com/0shark/markettower/internal/core"
	"github.com/0shark/markettower/internal/fetch"
	"github.com/0shark/markettower/internal/timerange"
)

// SymbolService defines what the symbol handlers need from fetch.Service.
type SymbolService interface {
	Resolve(rng, interval string) (timerange.Range, timerange.Interval)
	GetChartSeries(ctx context.Context, ticker, rng, interval string) core.ChartSeries
	GetQuote(ctx context.Context, ticker string) (*core.Quote, error)
	GetOverview(ctx context.Context, ticker, rng, interval string) (*fetch.Overview, error)
}

// ChartResponse is the chart payload: the resolved query plus the series.
type ChartResponse struct {
	Ticker   string             `json:"ticker"`
	Range    timerange.Range    `json:"range"`
	Interval timerange.Interval `json:"interval"`
	core.ChartSeries
}

// SymbolHandler serves per-ticker market data.
type SymbolHandler struct {
	service SymbolService
}

// NewSymbolHandler creates a new symbol handler.
func NewSymbolHandler(service SymbolService) *SymbolHandler {
	return &SymbolHandler{service: service}
}

// Chart handles GET /api/v1/symbols/{ticker}/chart?range=&interval=.
// It always answers 200; an unavailable series is empty.
func (h *SymbolHandler) Chart(w http.ResponseWriter, r *http.Request) {
	ticker := r.PathValue("ticker")
	q := r.URL.Query()
	rng, interval := h.service.Resolve(q.Get("range"), q.Get("interval"))

	series := h.service.GetChartSeries(r.Context(), ticker, string(rng), string(interval))

	response.JSON(w, http.StatusOK, ChartResponse{
		Ticker:      ticker,
		Range:       rng,
		Interval:    interval,
		ChartSeries: series,
	})
}

// Quote handles GET /api/v1/symbols/{ticker}/quote.
func (h *SymbolHandler) Quote(w http.ResponseWriter, r *http.Request) {
	quote, err := h.service.GetQuote(r.Context(), r.PathValue("ticker"))
	if err != nil {
		response.Error(w, http.StatusBadGateway, err)
		return
	}
	response.JSON(w, http.StatusOK, quote)
}

// Overview handles GET /api/v1/symbols/{ticker}/overview?range=&interval=.
func (h *SymbolHandler) Overview(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	ov, err := h.service.GetOverview(r.Context(), r.PathValue("ticker"), q.Get("range"), q.Get("interval"))
	if err != nil {
		response.Error(w, http.StatusBadGateway, err)
		return
	}
	response.JSON(w, http.StatusOK, ov)
}
