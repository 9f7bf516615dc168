// Package timerange maps symbolic chart ranges to concrete query windows and
// keeps interval selections compatible with the chosen range.
package timerange

// Range is a symbolic span of history requested by a caller.
type Range string

const (
	Range1D  Range = "1d"
	Range5D  Range = "5d"
	Range1M  Range = "1m"
	Range3M  Range = "3m"
	Range6M  Range = "6m"
	Range1Y  Range = "1y"
	Range2Y  Range = "2y"
	Range5Y  Range = "5y"
	Range10Y Range = "10y"
	RangeYTD Range = "ytd"
	RangeMax Range = "max"
)

var allRanges = []Range{
	Range1D, Range5D, Range1M, Range3M, Range6M,
	Range1Y, Range2Y, Range5Y, Range10Y, RangeYTD, RangeMax,
}

// Ranges returns every supported range.
func Ranges() []Range {
	out := make([]Range, len(allRanges))
	copy(out, allRanges)
	return out
}

// ParseRange is the strict counterpart of Resolver.ValidateRange: it reports
// whether s names a supported range instead of substituting the default.
func ParseRange(s string) (Range, bool) {
	r := Range(s)
	return r, r.Valid()
}

// Valid reports whether r is a supported range.
func (r Range) Valid() bool {
	for _, v := range allRanges {
		if v == r {
			return true
		}
	}
	return false
}

// Next returns the next longer range on the extension ladder
// 1d < 5d < 1m < 3m < 6m < 1y < 2y < 5y < 10y < max.
// ytd is at most a year long, so it extends to 1y. max is a fixed point.
func (r Range) Next() Range {
	switch r {
	case Range1D:
		return Range5D
	case Range5D:
		return Range1M
	case Range1M:
		return Range3M
	case Range3M:
		return Range6M
	case Range6M, RangeYTD:
		return Range1Y
	case Range1Y:
		return Range2Y
	case Range2Y:
		return Range5Y
	case Range5Y:
		return Range10Y
	case Range10Y, RangeMax:
		return RangeMax
	default:
		panic("timerange: Next on unsupported range " + string(r))
	}
}

// Label returns the caption shown next to a price change over the range.
// The intraday range has no caption.
func (r Range) Label() string {
	switch r {
	case Range5D:
		return "Past 5 Days"
	case Range1M:
		return "Past Month"
	case Range3M:
		return "Past 3 Months"
	case Range6M:
		return "Past 6 Months"
	case Range1Y:
		return "Past Year"
	case Range2Y:
		return "Past 2 Years"
	case Range5Y:
		return "Past 5 Years"
	case Range10Y:
		return "Past 10 Years"
	case RangeYTD:
		return "Year to Date"
	case RangeMax:
		return "Max"
	default:
		return ""
	}
}

// Interval is the sampling granularity of points within a range.
type Interval string

const (
	Interval1Min  Interval = "1m"
	Interval2Min  Interval = "2m"
	Interval5Min  Interval = "5m"
	Interval15Min Interval = "15m"
	Interval30Min Interval = "30m"
	Interval60Min Interval = "60m"
	Interval90Min Interval = "90m"
	Interval1H    Interval = "1h"
	Interval1D    Interval = "1d"
	Interval5D    Interval = "5d"
	Interval1Wk   Interval = "1wk"
	Interval1Mo   Interval = "1mo"
	Interval3Mo   Interval = "3mo"
)

var allIntervals = []Interval{
	Interval1Min, Interval2Min, Interval5Min, Interval15Min, Interval30Min,
	Interval60Min, Interval90Min, Interval1H, Interval1D, Interval5D,
	Interval1Wk, Interval1Mo, Interval3Mo,
}

// Intervals returns every supported interval, finest first.
func Intervals() []Interval {
	out := make([]Interval, len(allIntervals))
	copy(out, allIntervals)
	return out
}

// ParseInterval reports whether s names a supported interval.
func ParseInterval(s string) (Interval, bool) {
	i := Interval(s)
	return i, i.Valid()
}

// Valid reports whether i is a supported interval.
func (i Interval) Valid() bool {
	for _, v := range allIntervals {
		if v == i {
			return true
		}
	}
	return false
}
