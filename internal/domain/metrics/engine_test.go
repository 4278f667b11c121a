package metrics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lynx/internal/domain/booking"
	"lynx/internal/domain/costs"
	"lynx/internal/domain/workbook"
)

func stay(p booking.Platform, in time.Time, nights int, revenue, perStay float64) booking.Booking {
	return booking.Booking{
		Platform:       p,
		CheckIn:        in,
		CheckOut:       in.AddDate(0, 0, nights),
		Nights:         nights,
		Month:          int(in.Month()),
		Year:           in.Year(),
		Revenue:        revenue,
		PerStay:        perStay,
		NetBeforeFixed: revenue - perStay,
	}
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func fullYear() Input {
	a := stay(booking.PlatformAirbnb, date(2023, 1, 10), 60, 6000, 300)
	a.Country, a.TotalGuests, a.Parking = "Germany", 2, "yes"
	b := stay(booking.PlatformBookingCom, date(2023, 6, 1), 40, 4000, 200)
	b.Country, b.TotalGuests, b.Parking = "Serbia", 3, "No"

	return Input{
		Bookings: []booking.Booking{a, b},
		Costs: []costs.MonthlyFixedCost{
			{Year: 2023, YearOK: true, Month: 1, MonthOK: true, Total: 1000},
			{Year: 2023, YearOK: true, Month: 2, MonthOK: true, Total: 1000},
		},
		HasFixedCosts:   true,
		View:            ViewOverall,
		NightsAvailable: 365,
		YearHint:        2023,
	}
}

func number(t *testing.T, s *Set, key string) float64 {
	t.Helper()
	v, ok := s.Number(key)
	require.True(t, ok, "missing %s", key)
	return v
}

func TestComputeFullYearOverall(t *testing.T) {
	s, err := Compute(fullYear())
	require.NoError(t, err)

	assert.Equal(t, 2.0, number(t, s, KeyReservations))
	assert.Equal(t, 100.0, number(t, s, KeyTotalNights))
	assert.InDelta(t, 27.40, number(t, s, KeyOccupancy), 0.005)
	assert.InDelta(t, 27.40, number(t, s, KeyRevPAR), 0.005)
	assert.Equal(t, 100.0, number(t, s, KeyADR))
	assert.Equal(t, 100.0, number(t, s, KeyAvgPricePerNight))
	assert.Equal(t, 7500.0, number(t, s, KeyNetProfit))
	assert.Equal(t, 2000.0, number(t, s, KeyTotalFixedCosts))
	assert.Equal(t, 75.0, number(t, s, KeyProfitMargin))
	assert.Equal(t, 500.0, number(t, s, KeyTotalPerStay))
	assert.InDelta(t, 10000.0/6, number(t, s, KeyAvgMonthlyGross), 1e-9)
	assert.InDelta(t, 7500.0/6, number(t, s, KeyAvgMonthlyNet), 1e-9)
	assert.InDelta(t, 5.479, number(t, s, KeyBreakEvenOccupancy), 0.001)
	assert.Equal(t, 20.0, number(t, s, KeyBreakEvenNights))

	net, _ := s.Get(KeyNetProfit)
	assert.Equal(t, "Net Profit (€)", net.Label)
	assert.Equal(t, SectionCore, net.Section)
}

func TestComputePlatformBlock(t *testing.T) {
	s, err := Compute(fullYear())
	require.NoError(t, err)

	assert.Equal(t, 60.0, number(t, s, KeyAirbnbShare))
	assert.Equal(t, 40.0, number(t, s, KeyBookingShare))
	assert.Equal(t, 60.0, number(t, s, KeyConcentrationRisk))
	assert.Equal(t, 1900.0, number(t, s, KeyPlatformProfitDiff))
	assert.Equal(t, 100.0, number(t, s, KeyAirbnbADR))

	avg, ok := s.Get(KeyPlatformAvgStay)
	require.True(t, ok)
	assert.Equal(t, KindComparison, avg.Value.Kind)
	assert.Equal(t, "Airbnb: 60.00, Booking.com: 40.00", avg.Value.Display())

	rev, _ := s.Get(KeyPlatformRevenuePerRes)
	assert.Equal(t, "Airbnb: €6000.00, Booking.com: €4000.00", rev.Value.Display())
	assert.Equal(t, "", rev.Prefix)

	mix, _ := s.Get(KeyPlatformMix)
	assert.Equal(t, "Airbnb: 50.0%, Booking.com: 50.0%", mix.Value.Display())

	guests, _ := s.Get(KeyPlatformAvgGuests)
	assert.Equal(t, "Airbnb: 2.0, Booking.com: 3.0", guests.Value.Display())
}

func TestComputeSinglePlatformCollapsesToScalar(t *testing.T) {
	in := fullYear()
	in.Bookings = in.Bookings[:1]
	s, err := Compute(in)
	require.NoError(t, err)

	e, ok := s.Get(KeyPlatformAvgStay)
	require.True(t, ok)
	assert.Equal(t, KindScalar, e.Value.Kind)
	assert.Equal(t, "Airbnb Average Stay (nights)", e.Label)

	cost, _ := s.Get(KeyPlatformCostPerRes)
	assert.Equal(t, "Airbnb Cost per Reservation (€)", cost.Label)
	assert.Equal(t, "€ ", cost.Prefix)
	assert.False(t, s.Has(KeyPlatformProfitDiff))
}

func TestComputeGuestsAndSeasonality(t *testing.T) {
	s, err := Compute(fullYear())
	require.NoError(t, err)

	assert.Equal(t, 2.5, number(t, s, KeyAvgGroupSize))
	assert.Equal(t, 2000.0, number(t, s, KeyRevenuePerGuest))
	assert.Equal(t, 50.0, number(t, s, KeyParkingUsage))

	best, _ := s.Get(KeyBestMonthRevenue)
	assert.Equal(t, "Jan 2023", best.Value.Text)
	worst, _ := s.Get(KeyWorstMonthRevenue)
	assert.Equal(t, "Jun 2023", worst.Value.Text)

	assert.InDelta(t, -33.333, number(t, s, KeyMoMChange), 0.001)
	assert.Zero(t, number(t, s, KeyYoYChange), "no previous-year revenue")
	assert.False(t, s.Has(KeyMovingAvg3M))
	assert.Equal(t, 60000.0, number(t, s, KeyForecastRevenue))
	assert.Equal(t, 60000.0, number(t, s, KeyForecastWeighted))
	assert.Equal(t, 45000.0, number(t, s, KeyForecastProfit))
	assert.InDelta(t, 100.0, number(t, s, KeySeasonalIndex), 1e-9)
}

func TestComputeTwoMonthRange(t *testing.T) {
	in := Input{
		Bookings: []booking.Booking{
			stay(booking.PlatformAirbnb, date(2024, 1, 5), 3, 1000, 0),
			stay(booking.PlatformAirbnb, date(2024, 2, 5), 5, 3000, 0),
		},
		View:            ViewOverall,
		NightsAvailable: 60,
	}
	s, err := Compute(in)
	require.NoError(t, err)

	assert.Equal(t, 200.0, number(t, s, KeyMoMChange))
	assert.False(t, s.Has(KeyMovingAvg3M))
	assert.Zero(t, number(t, s, KeyYoYChange))
}

func TestComputeWeightedForecast(t *testing.T) {
	var list []booking.Booking
	for m := 1; m <= 8; m++ {
		rev := 100.0
		if m > 2 {
			rev = 400
		}
		list = append(list, stay(booking.PlatformAirbnb, date(2024, time.Month(m), 1), 1, rev, 0))
	}
	s, err := Compute(Input{Bookings: list, View: ViewOverall, NightsAvailable: 366})
	require.NoError(t, err)

	assert.InDelta(t, 3360.0, number(t, s, KeyForecastWeighted), 1e-9)
	assert.Equal(t, 400.0, number(t, s, KeyMovingAvg3M))
}

func TestComputeZeroNightsAvailable(t *testing.T) {
	in := fullYear()
	in.NightsAvailable = 0
	s, err := Compute(in)
	require.NoError(t, err)

	assert.Zero(t, number(t, s, KeyOccupancy))
	assert.Zero(t, number(t, s, KeyRevPAR))
	assert.False(t, s.Has(KeyAirbnbOccupancy))
	assert.False(t, s.Has(KeyBreakEvenOccupancy))
}

func TestComputeEmptySlice(t *testing.T) {
	s, err := Compute(Input{View: ViewOverall, NightsAvailable: 31, HasFixedCosts: true})
	require.NoError(t, err)

	assert.Zero(t, number(t, s, KeyReservations))
	assert.Zero(t, number(t, s, KeyAvgStay))
	assert.Zero(t, number(t, s, KeyTransportPerStay))
	best, _ := s.Get(KeyBestMonthRevenue)
	assert.Equal(t, "N/A", best.Value.Text)
	assert.False(t, s.Has(KeyMoMChange))
	assert.False(t, s.Has(KeyTopCountriesBookings))
	assert.False(t, s.Has(KeyForecastWeighted))
}

func TestComputePlatformViewOmitsFixedCosts(t *testing.T) {
	in := fullYear()
	in.View = ViewAirbnb
	s, err := Compute(in)
	require.NoError(t, err)

	for _, key := range []string{
		KeyTotalFixedCosts, KeyProfitMargin, KeyProfitPerNight, KeyProfitPerStay,
		KeyFixedCostPctRevenue, KeyFixedCostPerNight, KeyFixedCostPerRes,
		KeyVariableFixedRatio, KeyBreakEvenOccupancy, KeyBreakEvenNights, KeyForecastProfit,
	} {
		assert.False(t, s.Has(key), key)
	}

	net, ok := s.Get(KeyNetProfit)
	require.True(t, ok)
	assert.Equal(t, "Net Income Before Fixed Costs (€)", net.Label)
	assert.Equal(t, 5700.0, net.Value.Number)
	assert.Equal(t, 1.0, number(t, s, KeyReservations))
	assert.Equal(t, 4000.0, number(t, s, KeyBookingRevenue), "comparisons see both channels")
}

func TestComputeWithoutFixedCostColumn(t *testing.T) {
	in := fullYear()
	in.HasFixedCosts = false
	s, err := Compute(in)
	require.NoError(t, err)

	assert.False(t, s.Has(KeyTotalFixedCosts))
	assert.Equal(t, 9500.0, number(t, s, KeyNetProfit))
}

type columnSet map[string]bool

func (c columnSet) HasBookingColumn(col string) bool { return c[col] }

func TestComputeAbsentColumnsAreOmitted(t *testing.T) {
	in := fullYear()
	in.Columns = columnSet{workbook.ColCheckIn: true, workbook.ColRevenue: true}
	s, err := Compute(in)
	require.NoError(t, err)

	assert.False(t, s.Has(KeyParkingUsage))
	assert.False(t, s.Has(KeyBabyCribUsage))
	assert.False(t, s.Has(KeyRevenuePerGuest))
	assert.False(t, s.Has(KeyPlatformAvgGuests))
	assert.False(t, s.Has(KeyTopCountriesBookings))
	assert.Zero(t, number(t, s, KeyAvgGroupSize))
}

func TestComputeCountryRankings(t *testing.T) {
	mk := func(country string, rev float64, nights int) booking.Booking {
		b := stay(booking.PlatformAirbnb, date(2024, 5, 1), nights, rev, 0)
		b.Country = country
		return b
	}
	in := Input{
		Bookings: []booking.Booking{
			mk("Serbia", 200, 2),
			mk("Germany", 100, 1),
			mk("Austria", 100, 4),
			mk("Serbia", 300, 4),
			mk("Germany", 200, 3),
			mk("", 900, 1),
		},
		View:            ViewOverall,
		NightsAvailable: 31,
	}
	s, err := Compute(in)
	require.NoError(t, err)

	byBookings, _ := s.Get(KeyTopCountriesBookings)
	assert.Equal(t, "Germany (2), Serbia (2), Austria (1)", byBookings.Value.Display())
	byRevenue, _ := s.Get(KeyTopCountriesRevenue)
	assert.Equal(t, "Serbia (€500), Germany (€300), Austria (€100)", byRevenue.Value.Display())

	avgStay, _ := s.Get(KeyAvgStayByCountry)
	assert.Equal(t, []RankEntry{{"Austria", 4}, {"Germany", 2}, {"Serbia", 3}}, avgStay.Value.Ranking)
}

func TestComputeOrderFollowsCatalog(t *testing.T) {
	s, err := Compute(fullYear())
	require.NoError(t, err)

	entries := s.Entries()
	require.NotEmpty(t, entries)
	assert.Equal(t, KeyReservations, entries[0].Key)
	last := -1
	for _, e := range entries {
		pos := catalogOrder[e.Key]
		assert.Greater(t, pos, last, e.Key)
		last = pos
	}
}

func TestComputeRejectsBadInput(t *testing.T) {
	_, err := Compute(Input{View: "Expedia"})
	assert.ErrorIs(t, err, ErrUnknownView)

	_, err = Compute(Input{View: ViewOverall, NightsAvailable: -1})
	assert.ErrorIs(t, err, ErrInvalidInput)

	v, err := ParseView("booking")
	require.NoError(t, err)
	assert.Equal(t, ViewBookingCom, v)
	_, err = ParseView("vrbo")
	assert.ErrorIs(t, err, ErrUnknownView)
}

func TestMoMChangeWithoutPriorRevenueIsZero(t *testing.T) {
	s, err := Compute(Input{
		Bookings: []booking.Booking{
			stay(booking.PlatformAirbnb, date(2024, 1, 5), 2, 0, 0),
			stay(booking.PlatformAirbnb, date(2024, 2, 5), 2, 150, 0),
		},
		View:            ViewOverall,
		NightsAvailable: 60,
	})
	require.NoError(t, err)
	assert.Zero(t, number(t, s, KeyMoMChange))
}
