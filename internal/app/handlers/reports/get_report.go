package reports

import (
	"context"
	"time"

	"lynx/internal/app/handlers/support"
	"lynx/internal/app/queries"
	"lynx/internal/app/uow"
	domainanalytics "lynx/internal/domain/analytics"
	"lynx/internal/domain/metrics"
	"lynx/internal/domain/period"
	domainreports "lynx/internal/domain/reports"
)

const getReportKey = "reports.get"

// GetReportQuery assembles template Name. An empty View falls back to the
// template's platform filter, then to Overall.
type GetReportQuery struct {
	Name   string `validate:"required"`
	Period period.Spec
	View   string
}

func (q GetReportQuery) Key() string { return getReportKey }

type GetReportHandler struct {
	UoWFactory uow.UoWFactory
	Clock      support.Clock
}

func (h *GetReportHandler) Handle(ctx context.Context, q GetReportQuery) (domainreports.Report, error) {
	return build(ctx, h.UoWFactory, h.Clock, q)
}

func build(ctx context.Context, factory uow.UoWFactory, clock support.Clock, q GetReportQuery) (domainreports.Report, error) {
	start := time.Now()
	unit, execCtx, cleanup, err := support.BeginReadOnlyUnit(ctx, factory)
	if err != nil {
		return domainreports.Report{}, err
	}
	if cleanup != nil {
		defer cleanup()
	}
	user, warnings, err := unit.Preferences().Templates(execCtx)
	if err != nil {
		return domainreports.Report{}, err
	}
	t, err := domainreports.Find(user, q.Name)
	if err != nil {
		return domainreports.Report{}, err
	}
	view, err := resolveView(q.View, t)
	if err != nil {
		return domainreports.Report{}, err
	}
	p := q.Period
	if p.Kind == "" {
		p = period.All()
	}

	snap, err := unit.Workbook().Load(execCtx)
	if err != nil {
		return domainreports.Report{}, err
	}
	res, err := domainanalytics.Compute(snap.Workbook, p, view)
	if err != nil {
		return domainreports.Report{}, err
	}
	warnings = append(warnings, snap.Report.Warnings()...)
	r, err := res.Report(t, clock.Now(), warnings)
	if err != nil {
		return domainreports.Report{}, err
	}
	r.Metadata.Elapsed = time.Since(start)
	return r, nil
}

func resolveView(raw string, t domainreports.Template) (metrics.View, error) {
	if raw == "" {
		raw = t.Filters.Platform
	}
	return metrics.ParseView(raw)
}

var _ queries.Handler[GetReportQuery, domainreports.Report] = (*GetReportHandler)(nil)
