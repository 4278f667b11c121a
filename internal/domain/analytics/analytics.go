package analytics

import (
	"fmt"
	"slices"
	"time"

	"lynx/internal/domain/booking"
	"lynx/internal/domain/costs"
	"lynx/internal/domain/metrics"
	"lynx/internal/domain/period"
	"lynx/internal/domain/reports"
	"lynx/internal/domain/series"
	"lynx/internal/domain/workbook"
)

// Result is one pass over a workbook for a period and platform view.
type Result struct {
	Period period.Spec
	View   metrics.View
	// Bookings is the period slice across both platforms.
	Bookings        []booking.Booking
	Costs           []costs.MonthlyFixedCost
	SkippedCostRows int
	NightsAvailable int
	Metrics         *metrics.Set
}

// Compute filters wb to the period and runs the metrics engine. It does not
// modify wb.
func Compute(wb workbook.Workbook, p period.Spec, view metrics.View) (Result, error) {
	if err := p.Validate(); err != nil {
		return Result{}, err
	}
	list := period.FilterBookings(wb.Bookings, p)
	rows, skipped := period.FilterCosts(wb.Costs, p)
	nights := period.NightsAvailable(list, p)

	set, err := metrics.Compute(metrics.Input{
		Bookings:        list,
		Costs:           rows,
		HasFixedCosts:   wb.Costs.Has(costs.ColumnTotal),
		View:            view,
		NightsAvailable: nights,
		YearHint:        p.YearHint(),
		Columns:         wb,
	})
	if err != nil {
		return Result{}, fmt.Errorf("compute metrics: %w", err)
	}
	return Result{
		Period:          p,
		View:            view,
		Bookings:        list,
		Costs:           rows,
		SkippedCostRows: skipped,
		NightsAvailable: nights,
		Metrics:         set,
	}, nil
}

// Viewed returns the period slice seen through the platform view.
func (r Result) Viewed() []booking.Booking {
	out := make([]booking.Booking, 0, len(r.Bookings))
	for _, b := range r.Bookings {
		if r.View.Includes(b) {
			out = append(out, b)
		}
	}
	return out
}

// Series aggregates the viewed slice by month.
func (r Result) Series(kind series.Kind) (series.Series, error) {
	return series.Monthly(r.Viewed(), kind, nil)
}

// Report assembles template t from this pass.
func (r Result) Report(t reports.Template, now time.Time, warnings []string) (reports.Report, error) {
	meta := reports.Metadata{
		Generated:       now,
		Period:          r.Period,
		View:            r.View,
		SkippedCostRows: r.SkippedCostRows,
		Warnings:        slices.Clone(warnings),
	}
	if r.SkippedCostRows > 0 {
		meta.Warnings = append(meta.Warnings,
			fmt.Sprintf("%d monthly cost rows without a readable year/month were left out of the date range", r.SkippedCostRows))
	}
	return reports.Assemble(t, r.Metrics, r.Series, meta)
}
