package series

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"lynx/internal/domain/booking"
	"lynx/internal/domain/metrics"
	"lynx/internal/domain/shared/daterange"
)

var ErrUnknownKind = errors.New("series: unknown kind")

// Kind names one monthly chart metric.
type Kind string

const (
	RevenueByMonth      Kind = "revenue_by_month"
	NightsByMonth       Kind = "nights_by_month"
	ReservationsByMonth Kind = "reservations_by_month"
	ADRByMonth          Kind = "adr_by_month"
	OccupancyByMonth    Kind = "occupancy_by_month"
)

var Kinds = []Kind{RevenueByMonth, NightsByMonth, ReservationsByMonth, ADRByMonth, OccupancyByMonth}

var labels = map[Kind]string{
	RevenueByMonth:      "Revenue by month",
	NightsByMonth:       "Nights by month",
	ReservationsByMonth: "Reservations by month",
	ADRByMonth:          "ADR by month",
	OccupancyByMonth:    "Occupancy by month",
}

var units = map[Kind]string{
	RevenueByMonth:      "Revenue (€)",
	NightsByMonth:       "Nights",
	ReservationsByMonth: "Reservations",
	ADRByMonth:          "ADR (€)",
	OccupancyByMonth:    "Occupancy (%)",
}

func ParseKind(raw string) (Kind, error) {
	k := Kind(raw)
	if _, ok := labels[k]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, raw)
	}
	return k, nil
}

func (k Kind) Label() string { return labels[k] }

// Unit is the y-axis caption.
func (k Kind) Unit() string { return units[k] }

// Row is one month of a series; Month is the first day of that month.
type Row struct {
	Month      time.Time
	Airbnb     float64
	BookingCom float64
}

func (r Row) Value(p booking.Platform) float64 {
	if p == booking.PlatformBookingCom {
		return r.BookingCom
	}
	return r.Airbnb
}

type Series struct {
	Kind Kind
	Rows []Row
}

// Availability maps a month (first day, UTC) to the nights it offered. A nil
// map means calendar days.
type Availability map[time.Time]int

func (a Availability) nights(month time.Time) int {
	if a == nil {
		return daterange.DaysInMonth(month.Year(), month.Month())
	}
	return a[month]
}

type bucket struct {
	revenue      [2]float64
	nights       [2]int
	reservations [2]int
}

func slot(p booking.Platform) int {
	if p == booking.PlatformBookingCom {
		return 1
	}
	return 0
}

// Monthly aggregates bookings by check-in month with both platforms always
// present. Rows without a usable month are left out.
func Monthly(list []booking.Booking, kind Kind, available Availability) (Series, error) {
	if _, ok := labels[kind]; !ok {
		return Series{}, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}

	buckets := make(map[time.Time]*bucket)
	for _, b := range list {
		if b.Year <= 0 || b.Month < 1 || b.Month > 12 {
			continue
		}
		m := time.Date(b.Year, time.Month(b.Month), 1, 0, 0, 0, 0, time.UTC)
		bk, ok := buckets[m]
		if !ok {
			bk = &bucket{}
			buckets[m] = bk
		}
		i := slot(b.Platform)
		bk.revenue[i] += b.Revenue
		bk.nights[i] += b.Nights
		bk.reservations[i]++
	}

	months := make([]time.Time, 0, len(buckets))
	for m := range buckets {
		months = append(months, m)
	}
	sort.Slice(months, func(i, j int) bool { return months[i].Before(months[j]) })

	s := Series{Kind: kind, Rows: make([]Row, len(months))}
	for n, m := range months {
		bk := buckets[m]
		var v [2]float64
		for i := range v {
			switch kind {
			case RevenueByMonth:
				v[i] = bk.revenue[i]
			case NightsByMonth:
				v[i] = float64(bk.nights[i])
			case ReservationsByMonth:
				v[i] = float64(bk.reservations[i])
			case ADRByMonth:
				if bk.nights[i] > 0 {
					v[i] = bk.revenue[i] / float64(bk.nights[i])
				}
			case OccupancyByMonth:
				if avail := available.nights(m); avail > 0 {
					v[i] = float64(bk.nights[i]) / float64(avail) * 100
				}
			}
		}
		s.Rows[n] = Row{Month: m, Airbnb: v[0], BookingCom: v[1]}
	}
	return s, nil
}

// Chart is a series shaped for one platform view.
type Chart struct {
	Kind    Kind
	Label   string
	Unit    string
	Columns []string
	Months  []time.Time
	Values  [][]float64
}

const ColumnTotal = "Total"

// ForView keeps the view's platform column, or both plus Total for Overall.
func (s Series) ForView(view metrics.View) Chart {
	c := Chart{Kind: s.Kind, Label: s.Kind.Label(), Unit: s.Kind.Unit()}
	p, single := view.Platform()
	if single {
		c.Columns = []string{string(p)}
	} else {
		c.Columns = []string{string(booking.PlatformAirbnb), string(booking.PlatformBookingCom), ColumnTotal}
	}
	for _, r := range s.Rows {
		c.Months = append(c.Months, r.Month)
		if single {
			c.Values = append(c.Values, []float64{r.Value(p)})
			continue
		}
		c.Values = append(c.Values, []float64{r.Airbnb, r.BookingCom, r.Airbnb + r.BookingCom})
	}
	return c
}

// Total sums one platform column, or both when p is empty.
func (s Series) Total(p booking.Platform) float64 {
	var sum float64
	for _, r := range s.Rows {
		if p == "" {
			sum += r.Airbnb + r.BookingCom
			continue
		}
		sum += r.Value(p)
	}
	return sum
}
