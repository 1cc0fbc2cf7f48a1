// Package calendar provides a zone-free civil date used as the bucketing and
// streak key throughout pulse.
package calendar

import (
	"errors"
	"fmt"
	"time"
)

// Layout is the canonical record date format.
const Layout = "2006-01-02"

// ErrInvalidDate is returned when a date string is not a valid YYYY-MM-DD date.
var ErrInvalidDate = errors.New("invalid date")

// Date is a calendar date counted in days since 1970-01-01.
// The zero value is 1970-01-01. Dates compare with the usual operators.
type Date int32

// New returns the date for the given year, month and day.
// Out-of-range values are normalized the way time.Date normalizes them.
func New(year int, month time.Month, day int) Date {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return Date(t.Unix() / 86400)
}

// FromTime returns the wall-clock date of t in t's own location.
func FromTime(t time.Time) Date {
	y, m, d := t.Date()
	return New(y, m, d)
}

// Parse parses a YYYY-MM-DD string. It rejects anything else, including
// dates that time.Parse would accept only after normalization.
func Parse(s string) (Date, error) {
	if len(s) != len(Layout) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	t, err := time.Parse(Layout, s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return FromTime(t), nil
}

// MustParse is Parse for literals known to be valid. It panics otherwise.
func MustParse(s string) Date {
	d, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return d
}

// Time returns midnight UTC of d.
func (d Date) Time() time.Time {
	return time.Unix(int64(d)*86400, 0).UTC()
}

// String formats d as YYYY-MM-DD.
func (d Date) String() string {
	return d.Time().Format(Layout)
}

// Format formats d with a time layout.
func (d Date) Format(layout string) string {
	return d.Time().Format(layout)
}

// Year returns the year of d.
func (d Date) Year() int { return d.Time().Year() }

// Month returns the month of d.
func (d Date) Month() time.Month { return d.Time().Month() }

// Day returns the day of month of d.
func (d Date) Day() int { return d.Time().Day() }

// Weekday returns the day of week of d.
func (d Date) Weekday() time.Weekday { return d.Time().Weekday() }

// AddDays returns d shifted by n days.
func (d Date) AddDays(n int) Date { return d + Date(n) }

// AddMonths returns the first day of the month n months away from d's month.
// Only month-start dates are meaningful for month arithmetic in pulse, so the
// day is dropped rather than overflowing into the next month.
func (d Date) AddMonths(n int) Date {
	return New(d.Year(), d.Month()+time.Month(n), 1)
}

// StartOfWeek returns the Monday of d's ISO week.
func (d Date) StartOfWeek() Date {
	offset := (int(d.Weekday()) + 6) % 7 // Monday=0 ... Sunday=6
	return d.AddDays(-offset)
}

// StartOfMonth returns the first day of d's month.
func (d Date) StartOfMonth() Date {
	return New(d.Year(), d.Month(), 1)
}

// EndOfMonth returns the last day of d's month.
func (d Date) EndOfMonth() Date {
	return d.AddMonths(1).AddDays(-1)
}

// StartOfYear returns January 1st of d's year.
func (d Date) StartOfYear() Date {
	return New(d.Year(), time.January, 1)
}

// DaysInMonth returns the number of days in d's month (28-31).
func (d Date) DaysInMonth() int {
	return int(d.EndOfMonth()-d.StartOfMonth()) + 1
}

// MonthsBetween returns the number of whole calendar months from a's month to
// b's month. Days are ignored.
func MonthsBetween(a, b Date) int {
	return (b.Year()-a.Year())*12 + int(b.Month()) - int(a.Month())
}

// Between reports whether d lies in the inclusive range [start, end].
func (d Date) Between(start, end Date) bool {
	return d >= start && d <= end
}

// DateSet is a set of dates.
type DateSet map[Date]struct{}

// NewDateSet builds a set from the given dates.
func NewDateSet(dates ...Date) DateSet {
	s := make(DateSet, len(dates))
	for _, d := range dates {
		s[d] = struct{}{}
	}
	return s
}

// Add inserts d.
func (s DateSet) Add(d Date) { s[d] = struct{}{} }

// Has reports whether d is in the set. A nil set contains nothing.
func (s DateSet) Has(d Date) bool {
	_, ok := s[d]
	return ok
}

// Len returns the number of dates in the set.
func (s DateSet) Len() int { return len(s) }
