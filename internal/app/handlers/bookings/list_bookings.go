package bookings

import (
	"context"

	"lynx/internal/app/dto"
	"lynx/internal/app/handlers/support"
	"lynx/internal/app/queries"
	"lynx/internal/app/uow"
	"lynx/internal/domain/metrics"
	"lynx/internal/domain/period"
)

const listBookingsKey = "bookings.list"

// ListBookingsQuery returns the stored table; an empty Period means every row.
type ListBookingsQuery struct {
	Period period.Spec
	View   metrics.View
}

func (q ListBookingsQuery) Key() string { return listBookingsKey }

type ListBookingsHandler struct {
	UoWFactory uow.UoWFactory
}

func (h *ListBookingsHandler) Handle(ctx context.Context, q ListBookingsQuery) (dto.BookingCollection, error) {
	snap, err := support.LoadWorkbook(ctx, h.UoWFactory)
	if err != nil {
		return dto.BookingCollection{}, err
	}
	p := q.Period
	if p.Kind == "" {
		p = period.All()
	}
	if err := p.Validate(); err != nil {
		return dto.BookingCollection{}, err
	}
	view := q.View
	if view == "" {
		view = metrics.ViewOverall
	}
	list := period.FilterBookings(snap.Workbook.Bookings, p)
	items := make([]dto.Booking, 0, len(list))
	for _, b := range list {
		if view.Includes(b) {
			items = append(items, dto.BookingFromDomain(b))
		}
	}
	return dto.BookingCollection{
		Items:    items,
		Columns:  snap.Workbook.BookingColumns,
		Warnings: snap.Report.Warnings(),
	}, nil
}

var _ queries.Handler[ListBookingsQuery, dto.BookingCollection] = (*ListBookingsHandler)(nil)
