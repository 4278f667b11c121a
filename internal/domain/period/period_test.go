package period

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lynx/internal/domain/booking"
	"lynx/internal/domain/costs"
	"lynx/internal/domain/shared/money"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func stay(in, out time.Time) booking.Booking {
	return booking.Booking{CheckIn: in, CheckOut: out, Year: in.Year(), Month: int(in.Month())}
}

func sample() []booking.Booking {
	return []booking.Booking{
		stay(day(2023, 12, 28), day(2024, 1, 2)),
		stay(day(2024, 2, 10), day(2024, 2, 12)),
		stay(day(2024, 2, 29), day(2024, 3, 3)),
		stay(day(2024, 3, 1), day(2024, 3, 5)),
	}
}

func TestFilterBookings(t *testing.T) {
	all := sample()
	assert.Len(t, FilterBookings(all, All()), 4)
	assert.Len(t, FilterBookings(all, Year(2024)), 3)
	assert.Len(t, FilterBookings(all, Month(2024, 2)), 2)

	got := FilterBookings(all, Range(day(2024, 2, 10), day(2024, 3, 1)))
	require.Len(t, got, 3)
	assert.Equal(t, day(2024, 2, 10), got[0].CheckIn)
	assert.Equal(t, day(2024, 3, 1), got[2].CheckIn, "range end is inclusive")
	assert.Len(t, all, 4)
}

func TestNightsAvailable(t *testing.T) {
	all := sample()
	assert.Equal(t, 366, NightsAvailable(all, Year(2024)))
	assert.Equal(t, 365, NightsAvailable(nil, Year(2023)))
	assert.Equal(t, 29, NightsAvailable(nil, Month(2024, 2)))
	assert.Equal(t, 31, NightsAvailable(nil, Range(day(2024, 1, 1), day(2024, 1, 31))))
	assert.Equal(t, 0, NightsAvailable(nil, Range(day(2024, 2, 1), day(2024, 1, 1))))

	assert.Equal(t, 68, NightsAvailable(all, All()), "earliest check-in to latest check-out")
	assert.Equal(t, 0, NightsAvailable(nil, All()))
	assert.Equal(t, 0, NightsAvailable([]booking.Booking{{CheckIn: day(2024, 1, 1)}}, All()))
}

func costSheet() costs.Sheet {
	row := func(y, m int, ok bool, total float64) costs.MonthlyFixedCost {
		return costs.MonthlyFixedCost{
			Year: y, YearOK: true, Month: m, MonthOK: ok,
			Items: []costs.LineItem{{Column: "Internet (€)", Currency: costs.EUR, Amount: total}},
		}
	}
	s := costs.Sheet{
		Columns:     []string{costs.ColumnYear, costs.ColumnMonth, "Internet (€)", costs.ColumnTotal},
		MonthColumn: costs.ColumnMonth,
		Rows: []costs.MonthlyFixedCost{
			row(2023, 12, true, 10),
			row(2024, 1, true, 20),
			row(2024, 2, true, 30),
			row(2024, 0, false, 40),
		},
	}
	s.Recompute(money.DefaultRate)
	return s
}

func TestFilterCosts(t *testing.T) {
	sheet := costSheet()

	rows, skipped := FilterCosts(sheet, Year(2024))
	assert.Len(t, rows, 3)
	assert.Zero(t, skipped)

	rows, _ = FilterCosts(sheet, Month(2024, 2))
	require.Len(t, rows, 1)
	assert.Equal(t, 30.0, rows[0].Total)

	rows, skipped = FilterCosts(sheet, Range(day(2024, 1, 1), day(2024, 2, 15)))
	assert.Len(t, rows, 2)
	assert.Equal(t, 1, skipped, "rows without a readable month are excluded and counted")

	rows, _ = FilterCosts(sheet, All())
	assert.Len(t, rows, 4)
}

func TestFilterCostsWithoutMonthColumnFallsBackToYear(t *testing.T) {
	sheet := costSheet()
	sheet.MonthColumn = ""
	rows, _ := FilterCosts(sheet, Month(2024, 7))
	assert.Len(t, rows, 3)

	rows, skipped := FilterCosts(sheet, Range(day(2024, 1, 1), day(2024, 12, 31)))
	assert.Empty(t, rows)
	assert.Equal(t, 4, skipped)
}

func TestFilterThenRecomputeCommutes(t *testing.T) {
	sheet := costSheet()
	spec := Range(day(2024, 1, 1), day(2024, 3, 1))

	filtered, _ := FilterCosts(sheet, spec)
	after := costs.Sheet{Columns: sheet.Columns, MonthColumn: sheet.MonthColumn, Rows: filtered}
	after.Recompute(money.DefaultRate)

	before := sheet.Clone()
	before.Recompute(money.DefaultRate)
	direct, _ := FilterCosts(before, spec)

	assert.Equal(t, costs.Total(direct), costs.Total(after.Rows))
}

func TestDescribeAndValidate(t *testing.T) {
	assert.Equal(t, "Year: 2024", Year(2024).Describe())
	assert.Equal(t, "Period: March 2024", Month(2024, 3).Describe())
	assert.Equal(t, "Period: 2024-01-01 to 2024-01-31", Range(day(2024, 1, 1), day(2024, 1, 31)).Describe())
	assert.Equal(t, "", All().Describe())

	assert.NoError(t, All().Validate())
	assert.ErrorIs(t, Month(2024, 13).Validate(), ErrInvalidPeriod)
	assert.ErrorIs(t, Spec{Kind: "decade"}.Validate(), ErrInvalidPeriod)
	assert.Equal(t, 2024, Month(2024, 3).YearHint())
	assert.Zero(t, All().YearHint())
}
