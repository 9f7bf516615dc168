// Package calendar answers market-hours questions for a single exchange
// timezone. All functions are pure over the supplied instant.
package calendar

import (
	"fmt"
	"time"
)

// DefaultTimezone is the exchange timezone used when none is configured.
const DefaultTimezone = "America/New_York"

const (
	openHour    = 9
	openMinute  = 30
	closeHour   = 16
	closeMinute = 0
)

// Calendar provides market-hours awareness for one exchange timezone.
type Calendar struct {
	loc *time.Location
}

// New creates a Calendar for the given location. A nil location panics.
func New(loc *time.Location) *Calendar {
	if loc == nil {
		panic("calendar: nil location")
	}
	return &Calendar{loc: loc}
}

// Load creates a Calendar from an IANA timezone name.
func Load(name string) (*Calendar, error) {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("loading timezone %q: %w", name, err)
	}
	return New(loc), nil
}

// Location returns the exchange timezone.
func (c *Calendar) Location() *time.Location {
	return c.loc
}

// IsMarketOpen reports whether now falls on a weekday within [09:30, 16:00)
// exchange time. Holidays are not modelled.
func (c *Calendar) IsMarketOpen(now time.Time) bool {
	local := now.In(c.loc)
	if isWeekend(local.Weekday()) {
		return false
	}
	return !beforeOpen(local) && local.Before(c.at(local, closeHour, closeMinute))
}

// LastMarketClose returns the most recent weekday 16:00 close relative to now.
// Before 09:30 the previous day is used, so a pre-open call resolves to the
// prior session. During a session the same day's close is returned.
func (c *Calendar) LastMarketClose(now time.Time) time.Time {
	local := now.In(c.loc)
	if beforeOpen(local) {
		local = local.AddDate(0, 0, -1)
	}

	closeAt := c.at(local, closeHour, closeMinute)
	for isWeekend(closeAt.Weekday()) {
		closeAt = c.at(closeAt.AddDate(0, 0, -1), closeHour, closeMinute)
	}
	return closeAt.UTC()
}

// NextOpen returns the open of the session that contains now, or the next
// weekday 09:30 after now when the market is closed.
func (c *Calendar) NextOpen(now time.Time) time.Time {
	local := now.In(c.loc)
	openAt := c.at(local, openHour, openMinute)
	if c.IsMarketOpen(now) {
		return openAt.UTC()
	}
	if !local.Before(openAt) {
		openAt = c.at(local.AddDate(0, 0, 1), openHour, openMinute)
	}
	for isWeekend(openAt.Weekday()) {
		openAt = c.at(openAt.AddDate(0, 0, 1), openHour, openMinute)
	}
	return openAt.UTC()
}

// Status is a snapshot of the market state at an instant.
type Status struct {
	Open      bool      `json:"open"`
	LastClose time.Time `json:"last_close"`
	NextOpen  time.Time `json:"next_open"`
	Timezone  string    `json:"timezone"`
}

// Status summarises the market state at now.
func (c *Calendar) Status(now time.Time) Status {
	return Status{
		Open:      c.IsMarketOpen(now),
		LastClose: c.LastMarketClose(now),
		NextOpen:  c.NextOpen(now),
		Timezone:  c.loc.String(),
	}
}

// at returns h:m:00.000 local time on t's calendar day.
func (c *Calendar) at(t time.Time, h, m int) time.Time {
	y, mo, d := t.Date()
	return time.Date(y, mo, d, h, m, 0, 0, c.loc)
}

func beforeOpen(local time.Time) bool {
	h, m := local.Hour(), local.Minute()
	return h < openHour || (h == openHour && m < openMinute)
}

func isWeekend(d time.Weekday) bool {
	return d == time.Saturday || d == time.Sunday
}
