package reports

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"lynx/internal/app/commands"
	"lynx/internal/app/dto"
	"lynx/internal/app/handlers/support"
	"lynx/internal/app/middleware"
	"lynx/internal/app/outbox"
	"lynx/internal/app/policies"
	"lynx/internal/app/uow"
	"lynx/internal/domain/period"
	domainreports "lynx/internal/domain/reports"
	"lynx/internal/domain/shared/events"
)

const exportReportKey = "reports.export"

var ErrExportDisabled = errors.New("reports: export is not configured")

type ExportReportCommand struct {
	Name            string `validate:"required"`
	Period          period.Spec
	View            string
	IdempotencyKeyV string
}

func (c ExportReportCommand) Key() string { return exportReportKey }

func (c ExportReportCommand) IdempotencyKey() string { return c.IdempotencyKeyV }

func (c ExportReportCommand) ResultPrototype() any { return &dto.ReportExport{} }

// ExportReportHandler renders a report to a standalone HTML page and archives it.
type ExportReportHandler struct {
	UoWFactory uow.UoWFactory
	Archive    policies.ReportArchive
	Outbox     outbox.Outbox
	Encoder    outbox.EventEncoder
	Clock      support.Clock
}

func (h *ExportReportHandler) Handle(ctx context.Context, cmd ExportReportCommand) (*dto.ReportExport, error) {
	if h.Archive == nil {
		return nil, ErrExportDisabled
	}
	r, err := build(ctx, h.UoWFactory, h.Clock, GetReportQuery{Name: cmd.Name, Period: cmd.Period, View: cmd.View})
	if err != nil {
		return nil, err
	}
	page, err := domainreports.HTML(r)
	if err != nil {
		return nil, err
	}
	key := objectKey(r)
	url, err := h.Archive.Upload(ctx, key, bytes.NewReader(page), "text/html; charset=utf-8")
	if err != nil {
		return nil, fmt.Errorf("archive report: %w", err)
	}
	ev := domainreports.Exported{
		Template: r.Name,
		Key:      key,
		URL:      url,
		Filter:   r.Metadata.Filter,
		At:       r.Metadata.Generated,
	}
	if err := outbox.RecordDomainEvents(ctx, h.Outbox, h.Encoder, []events.DomainEvent{ev}); err != nil {
		return nil, err
	}
	return &dto.ReportExport{Template: r.Name, Key: key, URL: url, Bytes: len(page)}, nil
}

func objectKey(r domainreports.Report) string {
	slug := strings.Map(func(c rune) rune {
		switch {
		case c >= 'a' && c <= 'z', c >= '0' && c <= '9':
			return c
		case c >= 'A' && c <= 'Z':
			return c + ('a' - 'A')
		default:
			return '-'
		}
	}, r.Name)
	return fmt.Sprintf("reports/%s/%s.html", strings.Trim(slug, "-"), r.Metadata.Generated.UTC().Format("20060102T150405Z"))
}

var _ commands.Handler[ExportReportCommand, *dto.ReportExport] = (*ExportReportHandler)(nil)
var _ middleware.IdempotentCommand = (*ExportReportCommand)(nil)
