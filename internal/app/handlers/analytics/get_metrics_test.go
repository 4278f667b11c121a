package analytics_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lynx/internal/app/dto"
	"lynx/internal/app/handlers/analytics"
	"lynx/internal/domain/booking"
	"lynx/internal/domain/costs"
	"lynx/internal/domain/metrics"
	"lynx/internal/domain/period"
	"lynx/internal/domain/series"
	"lynx/internal/domain/workbook"
	"lynx/internal/infra/storage/memory"
)

func stay(p booking.Platform, in time.Time, nights int, revenue float64) booking.Booking {
	b := booking.Booking{Platform: p, CheckIn: in, CheckOut: in.AddDate(0, 0, nights), Revenue: revenue}
	b.DeriveStay()
	b.RecomputeMoney()
	return b
}

func newFactory() memory.Factory {
	wb := workbook.Workbook{
		BookingColumns: workbook.BookingColumns,
		Bookings: []booking.Booking{
			stay(booking.PlatformAirbnb, time.Date(2023, 12, 20, 0, 0, 0, 0, time.UTC), 3, 300),
			stay(booking.PlatformAirbnb, time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC), 4, 400),
			stay(booking.PlatformBookingCom, time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC), 2, 176),
		},
		Costs: costs.Sheet{
			Columns:     []string{costs.ColumnYear, costs.ColumnMonth, costs.ColumnTotal},
			MonthColumn: costs.ColumnMonth,
			Rows: []costs.MonthlyFixedCost{
				{Year: 2024, YearOK: true, Month: 1, MonthOK: true, Total: 100},
				{Year: 2024, YearOK: true, Total: 50},
			},
		},
	}
	return memory.NewFactory(memory.NewWorkbooks(wb), memory.NewPreferences())
}

func findMetric(set dto.MetricSet, key string) (dto.Metric, bool) {
	for _, sec := range set.Sections {
		for _, m := range sec.Metrics {
			if m.Key == key {
				return m, true
			}
		}
	}
	return dto.Metric{}, false
}

func TestGetMetricsAppliesPeriodAndView(t *testing.T) {
	h := &analytics.GetMetricsHandler{UoWFactory: newFactory()}

	overall, err := h.Handle(context.Background(), analytics.GetMetricsQuery{
		Period: period.Month(2024, 1),
		View:   metrics.ViewOverall,
	})
	require.NoError(t, err)
	assert.Equal(t, "Period: January 2024", overall.Filter)
	assert.Equal(t, string(metrics.ViewOverall), overall.View)
	assert.Equal(t, 31, overall.NightsAvailable)
	assert.Zero(t, overall.SkippedCostRows)
	net, ok := findMetric(overall, metrics.KeyNetProfit)
	require.True(t, ok)
	assert.Equal(t, 476.0, net.Value)

	airbnb, err := h.Handle(context.Background(), analytics.GetMetricsQuery{
		Period: period.Month(2024, 1),
		View:   metrics.ViewAirbnb,
	})
	require.NoError(t, err)
	assert.Equal(t, "Period: January 2024 | Platform: Airbnb", airbnb.Filter)
	assert.Equal(t, string(metrics.ViewAirbnb), airbnb.View)
	_, ok = findMetric(airbnb, metrics.KeyNetProfit)
	assert.False(t, ok, "fixed costs are not allocated to a platform")
	revenue, ok := findMetric(airbnb, metrics.KeyTotalRevenue)
	require.True(t, ok)
	assert.Equal(t, 400.0, revenue.Value)
}

func TestGetMetricsReportsSkippedCostRows(t *testing.T) {
	var buf bytes.Buffer
	h := &analytics.GetMetricsHandler{
		UoWFactory: newFactory(),
		Logger:     slog.New(slog.NewTextHandler(&buf, nil)),
	}

	set, err := h.Handle(context.Background(), analytics.GetMetricsQuery{
		Period: period.Range(
			time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
		),
		View: metrics.ViewOverall,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, set.SkippedCostRows)
	assert.Contains(t, buf.String(), "cost rows skipped")
	assert.Contains(t, buf.String(), "count=1")
}

func TestGetMetricsQuietWithoutSkippedRows(t *testing.T) {
	var buf bytes.Buffer
	h := &analytics.GetMetricsHandler{
		UoWFactory: newFactory(),
		Logger:     slog.New(slog.NewTextHandler(&buf, nil)),
	}

	_, err := h.Handle(context.Background(), analytics.GetMetricsQuery{Period: period.Year(2024), View: metrics.ViewOverall})
	require.NoError(t, err)
	assert.Empty(t, buf.String())
}

func TestGetSeriesFollowsView(t *testing.T) {
	h := &analytics.GetSeriesHandler{UoWFactory: newFactory()}

	all, err := h.Handle(context.Background(), analytics.GetSeriesQuery{
		Period: period.All(),
		View:   metrics.ViewOverall,
		Kind:   series.RevenueByMonth,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"2023-12", "2024-01"}, all.Months)
	assert.Len(t, all.Columns, 3)
	assert.Equal(t, [][]float64{{300, 0, 300}, {400, 176, 576}}, all.Values)

	airbnb, err := h.Handle(context.Background(), analytics.GetSeriesQuery{
		Period: period.Year(2024),
		View:   metrics.ViewAirbnb,
		Kind:   series.RevenueByMonth,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{string(booking.PlatformAirbnb)}, airbnb.Columns)
	assert.Equal(t, []string{"2024-01"}, airbnb.Months)
	assert.Equal(t, [][]float64{{400}}, airbnb.Values)
}

func TestGetSeriesRejectsUnknownKind(t *testing.T) {
	h := &analytics.GetSeriesHandler{UoWFactory: newFactory()}
	_, err := h.Handle(context.Background(), analytics.GetSeriesQuery{Kind: "bogus"})
	assert.ErrorIs(t, err, series.ErrUnknownKind)
}

func TestCatalogCoversEverySection(t *testing.T) {
	sections, err := analytics.Catalog(context.Background(), analytics.CatalogQuery{})
	require.NoError(t, err)
	require.Len(t, sections, len(metrics.Sections))
	for i, sec := range sections {
		assert.Equal(t, metrics.Sections[i], sec.Name)
	}
}
