package core

import (
	"time"

	"github.com/shopspring/decimal"
)

// TimeWindow is the [Start, End] span sent upstream for a chart request.
type TimeWindow struct {
	Start time.Time
	End   time.Time
}

// Period1 returns the window start as Unix seconds.
func (w TimeWindow) Period1() int64 {
	return w.Start.Unix()
}

// Period2 returns the window end as Unix seconds.
func (w TimeWindow) Period2() int64 {
	return w.End.Unix()
}

// ChartPoint is a single close sample of a chart series.
type ChartPoint struct {
	Date  time.Time       `json:"date"`
	Close decimal.Decimal `json:"close"`
}

// ChartMeta is the provider-supplied metadata that accompanies a series.
// The zero value is the empty meta returned with sentinel results.
type ChartMeta struct {
	Symbol             string   `json:"symbol,omitempty"`
	Currency           string   `json:"currency,omitempty"`
	ExchangeName       string   `json:"exchangeName,omitempty"`
	FullExchangeName   string   `json:"fullExchangeName,omitempty"`
	InstrumentType     string   `json:"instrumentType,omitempty"`
	ExchangeTimezone   string   `json:"exchangeTimezoneName,omitempty"`
	DataGranularity    string   `json:"dataGranularity,omitempty"`
	RegularMarketPrice *float64 `json:"regularMarketPrice,omitempty"`
	ChartPreviousClose *float64 `json:"chartPreviousClose,omitempty"`
	RegularMarketTime  int64    `json:"regularMarketTime,omitempty"`
}

// IsEmpty reports whether no metadata was supplied.
func (m ChartMeta) IsEmpty() bool {
	return m == ChartMeta{}
}

// ChartSeries is a chronologically ordered close series plus its metadata.
type ChartSeries struct {
	Quotes []ChartPoint `json:"quotes"`
	Meta   ChartMeta    `json:"meta"`
}

// Unavailable reports whether the series carries neither points nor
// metadata, which is what an exhausted or cancelled fetch yields.
func (s ChartSeries) Unavailable() bool {
	return len(s.Quotes) == 0 && s.Meta.IsEmpty()
}

// EmptySeries returns a structurally valid series with no points.
func EmptySeries(meta ChartMeta) ChartSeries {
	return ChartSeries{Quotes: []ChartPoint{}, Meta: meta}
}

// Quote is a point-in-time market snapshot for a single symbol.
type Quote struct {
	Symbol                     string    `json:"symbol"`
	ShortName                  string    `json:"shortName,omitempty"`
	LongName                   string    `json:"longName,omitempty"`
	Currency                   string    `json:"currency,omitempty"`
	Exchange                   string    `json:"exchange,omitempty"`
	FullExchangeName           string    `json:"fullExchangeName,omitempty"`
	InstrumentType             string    `json:"quoteType,omitempty"`
	RegularMarketPrice         float64   `json:"regularMarketPrice"`
	RegularMarketPreviousClose float64   `json:"regularMarketPreviousClose,omitempty"`
	RegularMarketChange        *float64  `json:"regularMarketChange,omitempty"`
	RegularMarketChangePercent *float64  `json:"regularMarketChangePercent,omitempty"`
	RegularMarketDayHigh       float64   `json:"regularMarketDayHigh,omitempty"`
	RegularMarketDayLow        float64   `json:"regularMarketDayLow,omitempty"`
	RegularMarketVolume        int64     `json:"regularMarketVolume,omitempty"`
	FiftyTwoWeekHigh           float64   `json:"fiftyTwoWeekHigh,omitempty"`
	FiftyTwoWeekLow            float64   `json:"fiftyTwoWeekLow,omitempty"`
	PreMarketPrice             *float64  `json:"preMarketPrice,omitempty"`
	PostMarketPrice            *float64  `json:"postMarketPrice,omitempty"`
	RegularMarketTime          time.Time `json:"regularMarketTime"`
	Source                     string    `json:"source,omitempty"`
}

// IsValid reports whether the quote names a symbol and carries a positive
// regular market price.
func (q Quote) IsValid() bool {
	return q.Symbol != "" && q.RegularMarketPrice > 0
}

// DisplayExchange returns the exchange name as shown to users.
func (q Quote) DisplayExchange() string {
	if q.FullExchangeName == "NasdaqGS" {
		return "NASDAQ"
	}
	return q.FullExchangeName
}
