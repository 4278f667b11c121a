package daterange

import (
	"errors"
	"time"
)

var (
	ErrInvalidRange = errors.New("daterange: checkout must be after checkin")
	ErrInvalidSpan  = errors.New("daterange: end must not be before start")
)

// DateRange represents a stay [checkIn, checkOut) at day granularity.
type DateRange struct {
	CheckIn  time.Time
	CheckOut time.Time
}

func New(checkIn, checkOut time.Time) (DateRange, error) {
	dr := DateRange{CheckIn: Day(checkIn), CheckOut: Day(checkOut)}
	if err := dr.Validate(); err != nil {
		return DateRange{}, err
	}
	return dr, nil
}

func (dr DateRange) Validate() error {
	if dr.CheckOut.IsZero() || dr.CheckIn.IsZero() {
		return ErrInvalidRange
	}
	if !dr.CheckOut.After(dr.CheckIn) {
		return ErrInvalidRange
	}
	return nil
}

// Nights counts calendar days between check-in and check-out.
func (dr DateRange) Nights() int {
	return DaysBetween(dr.CheckIn, dr.CheckOut)
}

// Span is an inclusive [Start, End] window of calendar days.
type Span struct {
	Start time.Time
	End   time.Time
}

func NewSpan(start, end time.Time) (Span, error) {
	s := Span{Start: Day(start), End: Day(end)}
	if s.End.Before(s.Start) {
		return Span{}, ErrInvalidSpan
	}
	return s, nil
}

// Contains reports whether t falls on a day inside the span, both ends included.
func (s Span) Contains(t time.Time) bool {
	d := Day(t)
	return !d.Before(s.Start) && !d.After(s.End)
}

// Days is the inclusive day count, never negative.
func (s Span) Days() int {
	n := DaysBetween(s.Start, s.End) + 1
	if n < 0 {
		return 0
	}
	return n
}

// Day truncates t to midnight UTC of its calendar date.
func Day(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns whole calendar days from a to b (negative when b precedes a).
func DaysBetween(a, b time.Time) int {
	return int(Day(b).Sub(Day(a)).Hours() / 24)
}

// DaysInMonth returns the calendar length of month m in year y.
func DaysInMonth(y int, m time.Month) int {
	return time.Date(y, m+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// DaysInYear is 366 for leap years, 365 otherwise.
func DaysInYear(y int) int {
	if y%4 == 0 && (y%100 != 0 || y%400 == 0) {
		return 366
	}
	return 365
}

// MonthsSpanned counts distinct calendar months from a's month to b's month inclusive.
func MonthsSpanned(a, b time.Time) int {
	if a.IsZero() || b.IsZero() || b.Before(a) {
		return 0
	}
	return (b.Year()-a.Year())*12 + int(b.Month()) - int(a.Month()) + 1
}
