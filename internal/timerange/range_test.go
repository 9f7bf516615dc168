package timerange

import (
	"errors"
	"testing"

	"github.com/0shark/markettower/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRange_NextStaysOnLadder(t *testing.T) {
	for _, r := range Ranges() {
		next := r.Next()
		assert.True(t, next.Valid(), "Next(%s) = %q is not a supported range", r, next)
		assert.NotEqual(t, RangeYTD, next, "ytd is not an extension target")
	}
}

func TestRange_NextClampsAtMax(t *testing.T) {
	assert.Equal(t, RangeMax, RangeMax.Next())
	assert.Equal(t, RangeMax, Range10Y.Next())
}

func TestRange_NextReachesMaxFromEveryRange(t *testing.T) {
	for _, r := range Ranges() {
		cur := r
		for steps := 0; cur != RangeMax; steps++ {
			require.Less(t, steps, len(allRanges), "ladder from %s does not terminate", r)
			cur = cur.Next()
		}
	}
}

func TestRange_Ladder(t *testing.T) {
	expected := []Range{Range1D, Range5D, Range1M, Range3M, Range6M, Range1Y, Range2Y, Range5Y, Range10Y, RangeMax}
	cur := Range1D
	for i, want := range expected {
		assert.Equal(t, want, cur, "step %d", i)
		cur = cur.Next()
	}
	assert.Equal(t, Range1Y, RangeYTD.Next())
}

func TestRange_NextPanicsOnUnsupported(t *testing.T) {
	assert.Panics(t, func() { Range("1mo").Next() })
}

func TestParseRange(t *testing.T) {
	r, ok := ParseRange("6m")
	assert.True(t, ok)
	assert.Equal(t, Range6M, r)

	_, ok = ParseRange("6mo")
	assert.False(t, ok)
}

func TestParseInterval(t *testing.T) {
	i, ok := ParseInterval("1wk")
	assert.True(t, ok)
	assert.Equal(t, Interval1Wk, i)

	_, ok = ParseInterval("7m")
	assert.False(t, ok)
}

func TestRange_Label(t *testing.T) {
	assert.Equal(t, "", Range1D.Label())
	assert.Equal(t, "Past Month", Range1M.Label())
	assert.Equal(t, "Year to Date", RangeYTD.Label())
	assert.Equal(t, "Max", RangeMax.Label())
}

func TestDefaultTable_CoversEveryRange(t *testing.T) {
	table := DefaultTable()
	assert.True(t, table.DefaultRange().Valid())
	for _, r := range Ranges() {
		assert.NotEmpty(t, table.Permitted(r), "range %s has no intervals", r)
	}
}

func TestNewTable_RejectsIncompleteTable(t *testing.T) {
	intervals := map[Range][]Interval{}
	for _, r := range Ranges() {
		intervals[r] = []Interval{Interval1D}
	}
	intervals[Range5Y] = nil

	_, err := NewTable(Range1D, intervals)
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrConfigInvalid))
}

func TestNewTable_RejectsUnknownEntries(t *testing.T) {
	base := func() map[Range][]Interval {
		m := map[Range][]Interval{}
		for _, r := range Ranges() {
			m[r] = []Interval{Interval1D}
		}
		return m
	}

	withBadRange := base()
	withBadRange["1mo"] = []Interval{Interval1D}
	_, err := NewTable(Range1D, withBadRange)
	assert.Error(t, err)

	withBadInterval := base()
	withBadInterval[Range1Y] = []Interval{"7m"}
	_, err = NewTable(Range1D, withBadInterval)
	assert.Error(t, err)

	_, err = NewTable("forever", base())
	assert.Error(t, err)
}

func TestNewTable_CopiesInput(t *testing.T) {
	intervals := map[Range][]Interval{}
	for _, r := range Ranges() {
		intervals[r] = []Interval{Interval1D, Interval1Wk}
	}
	table, err := NewTable(Range3M, intervals)
	require.NoError(t, err)

	intervals[Range3M][0] = Interval1Min
	assert.Equal(t, Interval1D, table.Permitted(Range3M)[0])

	got := table.Permitted(Range3M)
	got[0] = Interval3Mo
	assert.Equal(t, Interval1D, table.Permitted(Range3M)[0])
}
