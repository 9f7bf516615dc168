package timerange

import (
	"fmt"

	"github.com/0shark/markettower/internal/core"
)

// DefaultRange is the range substituted for unrecognised input.
const DefaultRange = Range1D

var defaultIntervals = map[Range][]Interval{
	Range1D:  {Interval1Min, Interval2Min, Interval5Min, Interval15Min, Interval30Min, Interval60Min, Interval90Min, Interval1H},
	Range5D:  {Interval5Min, Interval15Min, Interval30Min, Interval60Min, Interval90Min, Interval1H, Interval1D},
	Range1M:  {Interval30Min, Interval60Min, Interval90Min, Interval1H, Interval1D, Interval5D, Interval1Wk},
	Range3M:  {Interval1H, Interval1D, Interval5D, Interval1Wk, Interval1Mo},
	Range6M:  {Interval1D, Interval5D, Interval1Wk, Interval1Mo},
	RangeYTD: {Interval1D, Interval5D, Interval1Wk, Interval1Mo},
	Range1Y:  {Interval1D, Interval5D, Interval1Wk, Interval1Mo},
	Range2Y:  {Interval1D, Interval5D, Interval1Wk, Interval1Mo, Interval3Mo},
	Range5Y:  {Interval1D, Interval5D, Interval1Wk, Interval1Mo, Interval3Mo},
	Range10Y: {Interval1Wk, Interval1Mo, Interval3Mo},
	RangeMax: {Interval1Wk, Interval1Mo, Interval3Mo},
}

// Table is the immutable range configuration: the default range and the
// permitted intervals per range, finest first.
type Table struct {
	defaultRange Range
	intervals    map[Range][]Interval
}

// DefaultTable returns the built-in configuration.
func DefaultTable() Table {
	t, err := NewTable(DefaultRange, defaultIntervals)
	if err != nil {
		panic(err)
	}
	return t
}

// NewTable validates and copies a range configuration. Every supported range
// must map to a non-empty list of supported intervals.
func NewTable(def Range, intervals map[Range][]Interval) (Table, error) {
	if !def.Valid() {
		return Table{}, core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("default range %q is not a supported range", def))
	}

	for r := range intervals {
		if !r.Valid() {
			return Table{}, core.WrapError(core.ErrConfigInvalid,
				fmt.Errorf("interval table names unsupported range %q", r))
		}
	}

	copied := make(map[Range][]Interval, len(allRanges))
	for _, r := range allRanges {
		list := intervals[r]
		if len(list) == 0 {
			return Table{}, core.WrapError(core.ErrConfigInvalid,
				fmt.Errorf("range %q has no permitted intervals", r))
		}
		for _, i := range list {
			if !i.Valid() {
				return Table{}, core.WrapError(core.ErrConfigInvalid,
					fmt.Errorf("range %q permits unsupported interval %q", r, i))
			}
		}
		copied[r] = append([]Interval(nil), list...)
	}

	return Table{defaultRange: def, intervals: copied}, nil
}

// DefaultRange returns the range used in place of unrecognised input.
func (t Table) DefaultRange() Range {
	return t.defaultRange
}

// Permitted returns a copy of the interval list for r.
func (t Table) Permitted(r Range) []Interval {
	return append([]Interval(nil), t.intervals[r]...)
}

func (t Table) permits(r Range, i Interval) bool {
	for _, v := range t.intervals[r] {
		if v == i {
			return true
		}
	}
	return false
}
