// internal/api/handler/api/market.go
package api

import (
	"net/http"
	"time"

	"github.com/0shark/markettower/internal/api/response"
	"github.com/0shark/markettower/internal/calendar"
	"github.com/0shark/markettower/internal/timerange"
)

// RangeInfo describes one selectable chart range.
type RangeInfo struct {
	Range     timerange.Range      `json:"range"`
	Label     string               `json:"label"`
	Next      timerange.Range      `json:"next"`
	Intervals []timerange.Interval `json:"intervals"`
}

// MarketHandler serves exchange session and range metadata.
type MarketHandler struct {
	calendar *calendar.Calendar
	table    timerange.Table
	now      func() time.Time
}

// NewMarketHandler creates a new market handler.
func NewMarketHandler(cal *calendar.Calendar, table timerange.Table) *MarketHandler {
	return &MarketHandler{calendar: cal, table: table, now: time.Now}
}

// Status handles GET /api/v1/market/status.
func (h *MarketHandler) Status(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, h.calendar.Status(h.now()))
}

// Ranges handles GET /api/v1/ranges.
func (h *MarketHandler) Ranges(w http.ResponseWriter, r *http.Request) {
	ranges := make([]RangeInfo, 0, len(timerange.Ranges()))
	for _, rng := range timerange.Ranges() {
		ranges = append(ranges, RangeInfo{
			Range:     rng,
			Label:     rng.Label(),
			Next:      rng.Next(),
			Intervals: h.table.Permitted(rng),
		})
	}

	response.JSON(w, http.StatusOK, map[string]any{
		"default": h.table.DefaultRange(),
		"ranges":  ranges,
	})
}
