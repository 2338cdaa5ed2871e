package utils

import (
	"fmt"
	"time"
)

// Clock supplies the current time. Everything that depends on "now" reads it
// through a Clock so tests can pin it.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock in a fixed location.
type SystemClock struct {
	Location *time.Location
}

func (c SystemClock) Now() time.Time {
	if c.Location == nil {
		return time.Now()
	}
	return time.Now().In(c.Location)
}

// FixedClock always returns the same instant.
type FixedClock struct {
	At time.Time
}

func (c FixedClock) Now() time.Time { return c.At }

// ManualClock returns whatever it was last set to. Scenario replay pins it to
// each event's timestamp before applying the event.
type ManualClock struct {
	now time.Time
}

func NewManualClock(now time.Time) *ManualClock {
	return &ManualClock{now: now}
}

func (c *ManualClock) Now() time.Time { return c.now }

func (c *ManualClock) Set(t time.Time) { c.now = t }

func (c *ManualClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

// LoadLocation loads a timezone location from an IANA timezone name.
// If the timezone is "Local" or empty, it returns the system's local timezone.
func LoadLocation(timezone string) (*time.Location, error) {
	if timezone == "" || timezone == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return loc, nil
}

// StartOfDay returns midnight of t's calendar date in t's location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// SameDay reports whether a falls on the same calendar date as ref, evaluated
// in ref's location.
func SameDay(a, ref time.Time) bool {
	a = a.In(ref.Location())
	return a.Year() == ref.Year() && a.Month() == ref.Month() && a.Day() == ref.Day()
}

// WholeDaysBetween returns the number of complete 24h periods from start to
// end. It is negative when end precedes start.
func WholeDaysBetween(start, end time.Time) int {
	return int(end.Sub(start) / (24 * time.Hour))
}

// AddDays offsets t by n calendar-agnostic 24h days.
func AddDays(t time.Time, n int) time.Time {
	return t.Add(time.Duration(n) * 24 * time.Hour)
}

// ParseTimestamp accepts RFC3339 or a bare YYYY-MM-DD date (midnight in loc).
func ParseTimestamp(s string, loc *time.Location) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	t, err := time.ParseInLocation("2006-01-02", s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q (expected RFC3339 or YYYY-MM-DD)", s)
	}
	return t, nil
}

// ValidateTimezone checks if the timezone name is valid.
func ValidateTimezone(timezone string) bool {
	_, err := LoadLocation(timezone)
	return err == nil
}
