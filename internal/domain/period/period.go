package period

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"lynx/internal/domain/booking"
	"lynx/internal/domain/costs"
	"lynx/internal/domain/shared/daterange"
)

var ErrInvalidPeriod = errors.New("period: invalid period")

type Kind string

const (
	KindAll   Kind = "all"
	KindYear  Kind = "year"
	KindMonth Kind = "month"
	KindRange Kind = "range"
)

// Spec selects which rows are in scope and how many nights the property offered.
type Spec struct {
	Kind  Kind
	Year  int
	Month int
	Start time.Time
	End   time.Time
}

func All() Spec { return Spec{Kind: KindAll} }

func Year(y int) Spec { return Spec{Kind: KindYear, Year: y} }

func Month(y, m int) Spec { return Spec{Kind: KindMonth, Year: y, Month: m} }

func Range(start, end time.Time) Spec {
	return Spec{Kind: KindRange, Start: daterange.Day(start), End: daterange.Day(end)}
}

// Validate rejects specs that cannot select anything meaningful.
func (s Spec) Validate() error {
	switch s.Kind {
	case KindAll:
		return nil
	case KindYear:
		if s.Year <= 0 {
			return fmt.Errorf("%w: year is required", ErrInvalidPeriod)
		}
	case KindMonth:
		if s.Year <= 0 || s.Month < 1 || s.Month > 12 {
			return fmt.Errorf("%w: year and month 1-12 are required", ErrInvalidPeriod)
		}
	case KindRange:
		if s.Start.IsZero() || s.End.IsZero() {
			return fmt.Errorf("%w: start and end are required", ErrInvalidPeriod)
		}
	default:
		return fmt.Errorf("%w: unknown kind %q", ErrInvalidPeriod, s.Kind)
	}
	return nil
}

// FilterBookings returns the bookings checking in within the period. The input is
// not modified.
func FilterBookings(list []booking.Booking, s Spec) []booking.Booking {
	out := make([]booking.Booking, 0, len(list))
	for _, b := range list {
		if s.includes(b) {
			out = append(out, b)
		}
	}
	return out
}

func (s Spec) includes(b booking.Booking) bool {
	switch s.Kind {
	case KindYear:
		return b.Year == s.Year
	case KindMonth:
		return b.Year == s.Year && b.Month == s.Month
	case KindRange:
		in := daterange.Day(b.CheckIn)
		return !in.Before(s.Start) && !in.After(s.End)
	default:
		return true
	}
}

// FilterCosts returns the fixed-cost rows of the period. Skipped counts rows a
// date range could not place because their year or month is unreadable; they are
// excluded, never fatal.
func FilterCosts(sheet costs.Sheet, s Spec) (rows []costs.MonthlyFixedCost, skipped int) {
	hasMonth := sheet.MonthColumn != ""
	for _, r := range sheet.Rows {
		switch s.Kind {
		case KindYear:
			if r.YearOK && r.Year == s.Year {
				rows = append(rows, r)
			}
		case KindMonth:
			if !r.YearOK || r.Year != s.Year {
				continue
			}
			if hasMonth && (!r.MonthOK || r.Month != s.Month) {
				continue
			}
			rows = append(rows, r)
		case KindRange:
			if !hasMonth || !sheet.Has(costs.ColumnYear) || !r.YearOK || !r.MonthOK {
				skipped++
				continue
			}
			first := time.Date(r.Year, time.Month(r.Month), 1, 0, 0, 0, 0, time.UTC)
			if !first.Before(s.Start) && !first.After(s.End) {
				rows = append(rows, r)
			}
		default:
			rows = append(rows, r)
		}
	}
	return rows, skipped
}

// NightsAvailable is the capacity denominator of the period. Calendar periods
// ignore bookings; the whole dataset spans earliest check-in to latest check-out.
func NightsAvailable(list []booking.Booking, s Spec) int {
	switch s.Kind {
	case KindYear:
		return daterange.DaysInYear(s.Year)
	case KindMonth:
		return daterange.DaysInMonth(s.Year, time.Month(s.Month))
	case KindRange:
		return daterange.Span{Start: s.Start, End: s.End}.Days()
	}

	var first, last time.Time
	for _, b := range list {
		if b.CheckIn.IsZero() {
			continue
		}
		if first.IsZero() || b.CheckIn.Before(first) {
			first = b.CheckIn
		}
		if !b.CheckOut.IsZero() && (last.IsZero() || b.CheckOut.After(last)) {
			last = b.CheckOut
		}
	}
	if first.IsZero() || last.IsZero() {
		return 0
	}
	if n := daterange.DaysBetween(first, last); n > 0 {
		return n
	}
	return 0
}

// YearHint is the year year-over-year comparisons anchor on, 0 when the period has none.
func (s Spec) YearHint() int {
	switch s.Kind {
	case KindYear, KindMonth:
		return s.Year
	}
	return 0
}

// Describe renders the period for report headers.
func (s Spec) Describe() string {
	switch s.Kind {
	case KindYear:
		return "Year: " + strconv.Itoa(s.Year)
	case KindMonth:
		return fmt.Sprintf("Period: %s %d", time.Month(s.Month), s.Year)
	case KindRange:
		return fmt.Sprintf("Period: %s to %s", s.Start.Format(time.DateOnly), s.End.Format(time.DateOnly))
	}
	return ""
}
