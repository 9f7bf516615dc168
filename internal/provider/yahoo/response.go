package yahoo

import (
	"time"

	"github.com/0shark/markettower/internal/core"
	"github.com/0shark/markettower/internal/provider"
)

// Yahoo API response types
type chartResponse struct {
	Chart struct {
		Result []chartResult `json:"result"`
		Error  *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

type chartResult struct {
	Meta       chartMeta  `json:"meta"`
	Timestamp  []int64    `json:"timestamp"`
	Indicators indicators `json:"indicators"`
}

type chartMeta struct {
	Symbol               string   `json:"symbol"`
	Currency             string   `json:"currency"`
	ExchangeName         string   `json:"exchangeName"`
	FullExchangeName     string   `json:"fullExchangeName"`
	InstrumentType       string   `json:"instrumentType"`
	ExchangeTimezoneName string   `json:"exchangeTimezoneName"`
	DataGranularity      string   `json:"dataGranularity"`
	ShortName            string   `json:"shortName"`
	LongName             string   `json:"longName"`
	RegularMarketPrice   *float64 `json:"regularMarketPrice"`
	ChartPreviousClose   *float64 `json:"chartPreviousClose"`
	PreviousClose        *float64 `json:"previousClose"`
	RegularMarketDayHigh float64  `json:"regularMarketDayHigh"`
	RegularMarketDayLow  float64  `json:"regularMarketDayLow"`
	RegularMarketVolume  int64    `json:"regularMarketVolume"`
	RegularMarketTime    int64    `json:"regularMarketTime"`
	FiftyTwoWeekHigh     float64  `json:"fiftyTwoWeekHigh"`
	FiftyTwoWeekLow      float64  `json:"fiftyTwoWeekLow"`
}

type indicators struct {
	Quote []quoteIndicator `json:"quote"`
}

type quoteIndicator struct {
	Open   []*float64 `json:"open"`
	High   []*float64 `json:"high"`
	Low    []*float64 `json:"low"`
	Close  []*float64 `json:"close"`
	Volume []*int64   `json:"volume"`
}

// bars zips timestamps with the first quote indicator. Missing or null
// entries stay absent.
func (r chartResult) bars() []provider.Bar {
	var q quoteIndicator
	if len(r.Indicators.Quote) > 0 {
		q = r.Indicators.Quote[0]
	}

	out := make([]provider.Bar, 0, len(r.Timestamp))
	for i, ts := range r.Timestamp {
		date := time.Unix(ts, 0).UTC()
		out = append(out, provider.Bar{
			Date:   &date,
			Open:   at(q.Open, i),
			High:   at(q.High, i),
			Low:    at(q.Low, i),
			Close:  at(q.Close, i),
			Volume: at(q.Volume, i),
		})
	}
	return out
}

func at[T any](s []*T, i int) *T {
	if i < len(s) {
		return s[i]
	}
	return nil
}

func (m chartMeta) toCore() core.ChartMeta {
	return core.ChartMeta{
		Symbol:             m.Symbol,
		Currency:           m.Currency,
		ExchangeName:       m.ExchangeName,
		FullExchangeName:   m.FullExchangeName,
		InstrumentType:     m.InstrumentType,
		ExchangeTimezone:   m.ExchangeTimezoneName,
		DataGranularity:    m.DataGranularity,
		RegularMarketPrice: m.RegularMarketPrice,
		ChartPreviousClose: m.ChartPreviousClose,
		RegularMarketTime:  m.RegularMarketTime,
	}
}

func (m chartMeta) toQuote(ticker string) *core.Quote {
	symbol := m.Symbol
	if symbol == "" {
		symbol = ticker
	}

	q := &core.Quote{
		Symbol:               symbol,
		ShortName:            m.ShortName,
		LongName:             m.LongName,
		Currency:             m.Currency,
		Exchange:             m.ExchangeName,
		FullExchangeName:     m.FullExchangeName,
		InstrumentType:       m.InstrumentType,
		RegularMarketDayHigh: m.RegularMarketDayHigh,
		RegularMarketDayLow:  m.RegularMarketDayLow,
		RegularMarketVolume:  m.RegularMarketVolume,
		FiftyTwoWeekHigh:     m.FiftyTwoWeekHigh,
		FiftyTwoWeekLow:      m.FiftyTwoWeekLow,
		RegularMarketTime:    time.Unix(m.RegularMarketTime, 0).UTC(),
		Source:               "yahoo",
	}
	if m.RegularMarketPrice != nil {
		q.RegularMarketPrice = *m.RegularMarketPrice
	}

	prev := m.PreviousClose
	if prev == nil {
		prev = m.ChartPreviousClose
	}
	if prev != nil {
		q.RegularMarketPreviousClose = *prev
		if m.RegularMarketPrice != nil && *prev != 0 {
			change := *m.RegularMarketPrice - *prev
			pct := change / *prev * 100
			q.RegularMarketChange = &change
			q.RegularMarketChangePercent = &pct
		}
	}
	return q
}
