package core

import (
	"encoding/json"
	"testing"
	"time"
)

func TestQuote_IsValid(t *testing.T) {
	q := Quote{
		Symbol:             "AAPL",
		RegularMarketPrice: 189.5,
		RegularMarketTime:  time.Now(),
	}

	if !q.IsValid() {
		t.Error("expected valid quote")
	}

	invalid := Quote{Symbol: "", RegularMarketPrice: 0}
	if invalid.IsValid() {
		t.Error("expected invalid quote")
	}
}

func TestQuote_DisplayExchange(t *testing.T) {
	tests := []struct {
		full     string
		expected string
	}{
		{"NasdaqGS", "NASDAQ"},
		{"NYSE", "NYSE"},
		{"", ""},
	}

	for _, tc := range tests {
		q := Quote{FullExchangeName: tc.full}
		if got := q.DisplayExchange(); got != tc.expected {
			t.Errorf("DisplayExchange(%q) = %q, want %q", tc.full, got, tc.expected)
		}
	}
}

func TestTimeWindow_Periods(t *testing.T) {
	w := TimeWindow{
		Start: time.Unix(1700000000, 0),
		End:   time.Unix(1700086400, 0),
	}
	if w.Period1() != 1700000000 || w.Period2() != 1700086400 {
		t.Errorf("unexpected periods: %d %d", w.Period1(), w.Period2())
	}
}

func TestEmptySeries_MarshalsEmptyQuotes(t *testing.T) {
	b, err := json.Marshal(EmptySeries(ChartMeta{}))
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != `{"quotes":[],"meta":{}}` {
		t.Errorf("unexpected encoding: %s", b)
	}
}

func TestChartMeta_IsEmpty(t *testing.T) {
	if !(ChartMeta{}).IsEmpty() {
		t.Error("zero meta should be empty")
	}
	if (ChartMeta{Symbol: "AAPL"}).IsEmpty() {
		t.Error("meta with symbol should not be empty")
	}
}

func TestChartSeries_Unavailable(t *testing.T) {
	if !EmptySeries(ChartMeta{}).Unavailable() {
		t.Error("exhausted series should be unavailable")
	}
	if EmptySeries(ChartMeta{Symbol: "AAPL"}).Unavailable() {
		t.Error("empty series with metadata is a real answer")
	}
	withPoint := ChartSeries{Quotes: []ChartPoint{{Date: time.Unix(1715787000, 0)}}}
	if withPoint.Unavailable() {
		t.Error("series with points should be available")
	}
}

func TestFormatCompact(t *testing.T) {
	tests := []struct {
		in       float64
		expected string
	}{
		{2.5e12, "2.50T"},
		{3.456e9, "3.46B"},
		{1e6, "1.00M"},
		{999999, "999999"},
		{12.5, "12.5"},
	}

	for _, tc := range tests {
		if got := FormatCompact(tc.in); got != tc.expected {
			t.Errorf("FormatCompact(%v) = %s, want %s", tc.in, got, tc.expected)
		}
	}
}
