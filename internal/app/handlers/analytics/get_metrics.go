package analytics

import (
	"context"
	"log/slog"

	"lynx/internal/app/dto"
	"lynx/internal/app/handlers/support"
	"lynx/internal/app/queries"
	"lynx/internal/app/uow"
	domainanalytics "lynx/internal/domain/analytics"
	"lynx/internal/domain/metrics"
	"lynx/internal/domain/period"
	"lynx/internal/domain/reports"
	"lynx/internal/domain/series"
)

const (
	getMetricsKey = "analytics.metrics"
	getSeriesKey  = "analytics.series"
	catalogKey    = "analytics.catalog"
)

type GetMetricsQuery struct {
	Period period.Spec
	View   metrics.View
}

func (q GetMetricsQuery) Key() string { return getMetricsKey }

type GetSeriesQuery struct {
	Period period.Spec
	View   metrics.View
	Kind   series.Kind
}

func (q GetSeriesQuery) Key() string { return getSeriesKey }

type CatalogQuery struct{}

func (CatalogQuery) Key() string { return catalogKey }

type GetMetricsHandler struct {
	UoWFactory uow.UoWFactory
	Logger     *slog.Logger
}

func (h *GetMetricsHandler) Handle(ctx context.Context, q GetMetricsQuery) (dto.MetricSet, error) {
	snap, err := support.LoadWorkbook(ctx, h.UoWFactory)
	if err != nil {
		return dto.MetricSet{}, err
	}
	res, err := domainanalytics.Compute(snap.Workbook, q.Period, q.View)
	if err != nil {
		return dto.MetricSet{}, err
	}
	if res.SkippedCostRows > 0 {
		h.logger().WarnContext(ctx, "cost rows skipped",
			"count", res.SkippedCostRows,
			"period", res.Period.Describe(),
		)
	}
	return dto.MetricSet{
		Filter:          reports.FilterLine(res.Period, res.View),
		View:            string(res.View),
		NightsAvailable: res.NightsAvailable,
		SkippedCostRows: res.SkippedCostRows,
		Sections:        dto.Sections(res.Metrics),
		Warnings:        snap.Report.Warnings(),
	}, nil
}

func (h *GetMetricsHandler) logger() *slog.Logger {
	if h.Logger == nil {
		return slog.Default()
	}
	return h.Logger
}

type GetSeriesHandler struct {
	UoWFactory uow.UoWFactory
}

func (h *GetSeriesHandler) Handle(ctx context.Context, q GetSeriesQuery) (dto.Series, error) {
	if _, err := series.ParseKind(string(q.Kind)); err != nil {
		return dto.Series{}, err
	}
	snap, err := support.LoadWorkbook(ctx, h.UoWFactory)
	if err != nil {
		return dto.Series{}, err
	}
	res, err := domainanalytics.Compute(snap.Workbook, q.Period, q.View)
	if err != nil {
		return dto.Series{}, err
	}
	s, err := res.Series(q.Kind)
	if err != nil {
		return dto.Series{}, err
	}
	return dto.SeriesFromChart(s.ForView(res.View)), nil
}

// Catalog lists every metric with its formula, grouped by section.
func Catalog(context.Context, CatalogQuery) ([]dto.CatalogSection, error) {
	return dto.Catalog(), nil
}

var _ queries.Handler[GetMetricsQuery, dto.MetricSet] = (*GetMetricsHandler)(nil)
var _ queries.Handler[GetSeriesQuery, dto.Series] = (*GetSeriesHandler)(nil)
var _ queries.Handler[CatalogQuery, []dto.CatalogSection] = queries.HandlerFunc[CatalogQuery, []dto.CatalogSection](Catalog)
