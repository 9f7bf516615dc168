package timerange

import (
	"fmt"
	"time"

	"github.com/0shark/markettower/internal/calendar"
	"github.com/0shark/markettower/internal/core"
)

type offset struct {
	years, months, days int
}

// Calendar offsets subtracted from the last close. ytd and max are anchored
// separately.
var rangeOffsets = map[Range]offset{
	Range1D:  {days: 1},
	Range5D:  {days: 5},
	Range1M:  {months: 1},
	Range3M:  {months: 3},
	Range6M:  {months: 6},
	Range1Y:  {years: 1},
	Range2Y:  {years: 2},
	Range5Y:  {years: 5},
	Range10Y: {years: 10},
}

// Resolver normalises range and interval input and computes query windows.
type Resolver struct {
	table Table
	cal   *calendar.Calendar
}

// NewResolver creates a Resolver over an immutable table and calendar.
func NewResolver(table Table, cal *calendar.Calendar) *Resolver {
	return &Resolver{table: table, cal: cal}
}

// Table returns the resolver's range configuration.
func (r *Resolver) Table() Table {
	return r.table
}

// ValidateRange never fails: unrecognised input becomes the default range.
func (r *Resolver) ValidateRange(s string) Range {
	if rng, ok := ParseRange(s); ok {
		return rng
	}
	return r.table.DefaultRange()
}

// ValidateInterval never fails: an interval not permitted for rng becomes the
// first permitted interval for rng. A range missing from the table falls back
// to the default range's first interval.
func (r *Resolver) ValidateInterval(rng Range, s string) Interval {
	if i := Interval(s); r.table.permits(rng, i) {
		return i
	}
	if list := r.table.intervals[rng]; len(list) > 0 {
		return list[0]
	}
	return r.table.intervals[r.table.defaultRange][0]
}

// Window anchors rng to the last market close before now. rng must already be
// valid; an unsupported range is a programming error and panics.
func (r *Resolver) Window(rng Range, now time.Time) core.TimeWindow {
	end := r.cal.LastMarketClose(now)
	local := end.In(r.cal.Location())

	var start time.Time
	switch rng {
	case RangeMax:
		start = time.Unix(0, 0).UTC()
	case RangeYTD:
		start = time.Date(local.Year(), time.January, 1, 0, 0, 0, 0, r.cal.Location()).UTC()
	default:
		off, ok := rangeOffsets[rng]
		if !ok {
			panic(fmt.Sprintf("timerange: cannot compute window for unsupported range %q", rng))
		}
		start = local.AddDate(-off.years, -off.months, -off.days).UTC()
	}

	return core.TimeWindow{Start: start, End: end}
}
