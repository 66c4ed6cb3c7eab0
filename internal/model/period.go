package model

import (
	"fmt"
	"time"
)

// weeksPerYear is the number of weeks assumed per year for period arithmetic.
//
// Known inaccuracy: ISO years can have 53 weeks (e.g. 2020, 2026), so distances
// that cross such a year boundary are off by one. The simple arithmetic is kept
// on purpose, recurrence intervals are coarse enough that an extra week near
// new year doesn't matter.
const weeksPerYear = 52

// Period identifies a reporting interval as an ISO (week, year) pair.
type Period struct {
	Week int
	Year int
}

// PeriodOf returns the period a date falls in, using the ISO week-numbering
// rule (weeks start Monday, week 1 contains the year's first Thursday).
func PeriodOf(t time.Time) Period {
	year, week := t.ISOWeek()
	return Period{Week: week, Year: year}
}

// Validate validates the period.
func (p Period) Validate() error {
	if p.Week < 1 || p.Week > 53 {
		return fmt.Errorf("week must be in 1..53, got %d: %w", p.Week, ErrNotValid)
	}
	if p.Year <= 0 {
		return fmt.Errorf("year must be positive, got %d: %w", p.Year, ErrNotValid)
	}
	return nil
}

// DistanceTo returns the number of weeks from p to other. Negative when other
// is in the past. Uses the 52-weeks-per-year approximation (see weeksPerYear).
func (p Period) DistanceTo(other Period) int {
	return (other.Year-p.Year)*weeksPerYear + (other.Week - p.Week)
}

// AddWeeks returns the period weeks ahead of p (or behind, when negative),
// wrapping years with the same 52-week arithmetic as DistanceTo so that
// p.DistanceTo(p.AddWeeks(k)) == k always holds.
func (p Period) AddWeeks(weeks int) Period {
	week := p.Week + weeks
	year := p.Year
	for week > weeksPerYear {
		week -= weeksPerYear
		year++
	}
	for week < 1 {
		week += weeksPerYear
		year--
	}
	return Period{Week: week, Year: year}
}

// Before returns true if p is strictly earlier than other, comparing
// (year, week) lexicographically.
func (p Period) Before(other Period) bool {
	if p.Year != other.Year {
		return p.Year < other.Year
	}
	return p.Week < other.Week
}

func (p Period) String() string {
	return fmt.Sprintf("%d-W%02d", p.Year, p.Week)
}
