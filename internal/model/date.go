package model

import (
	"fmt"
	"time"
)

// ISODate is the canonical wire format for sale dates.
const ISODate = "2006-01-02"

// Date is a calendar date with no time-of-day or zone component. Sale dates
// are date-only values; carrying a full timestamp invites off-by-one-day
// bugs when sources and servers sit in different zones.
type Date struct {
	t time.Time
}

// NewDate builds a Date from year, month, day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates a time.Time to its calendar date.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return NewDate(y, m, d)
}

// Today returns the current calendar date.
func Today() Date {
	return DateOf(time.Now().UTC())
}

// Time returns the date as UTC midnight.
func (d Date) Time() time.Time { return d.t }

// IsZero reports whether the date is unset.
func (d Date) IsZero() bool { return d.t.IsZero() }

// Before reports whether d falls before other.
func (d Date) Before(other Date) bool { return d.t.Before(other.t) }

// AddDays returns the date shifted by n calendar days.
func (d Date) AddDays(n int) Date { return Date{t: d.t.AddDate(0, 0, n)} }

// String formats the date as YYYY-MM-DD.
func (d Date) String() string {
	if d.t.IsZero() {
		return ""
	}
	return d.t.Format(ISODate)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s := string(b)
	if s == "null" || s == `""` {
		*d = Date{}
		return nil
	}
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return fmt.Errorf("date: invalid JSON value %s", s)
	}
	t, err := time.Parse(ISODate, s[1:len(s)-1])
	if err != nil {
		return fmt.Errorf("date: %w", err)
	}
	*d = DateOf(t)
	return nil
}
