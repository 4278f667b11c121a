package bookings

import (
	"context"

	"lynx/internal/app/commands"
	"lynx/internal/app/handlers/support"
	"lynx/internal/app/outbox"
	domainbooking "lynx/internal/domain/booking"
)

const (
	replaceBookingsKey = "bookings.replace"
	deleteBookingsKey  = "bookings.delete"
)

// ReplaceBookingsCommand saves an edited bookings table as a whole.
type ReplaceBookingsCommand struct {
	Rows []domainbooking.Booking `validate:"-"`
}

func (c ReplaceBookingsCommand) Key() string { return replaceBookingsKey }

type ReplaceBookingsResult struct {
	Saved   int `json:"saved"`
	Dropped int `json:"dropped"`
}

type ReplaceBookingsHandler struct {
	Outbox  outbox.Outbox
	Encoder outbox.EventEncoder
	Clock   support.Clock
}

func (h *ReplaceBookingsHandler) Handle(ctx context.Context, cmd ReplaceBookingsCommand) (*ReplaceBookingsResult, error) {
	unit, err := support.WriteUnit(ctx)
	if err != nil {
		return nil, err
	}
	snap, err := unit.Workbook().Load(ctx)
	if err != nil {
		return nil, err
	}
	wb := snap.Workbook
	now := h.Clock.Now()
	dropped := wb.ReplaceBookings(cmd.Rows, now)
	wb.MarkSaved(now)
	if err := unit.Workbook().Save(ctx, wb); err != nil {
		return nil, err
	}
	if err := outbox.Drain(ctx, h.Outbox, h.Encoder, &wb); err != nil {
		return nil, err
	}
	return &ReplaceBookingsResult{Saved: len(wb.Bookings), Dropped: dropped}, nil
}

type DeleteBookingsCommand struct {
	IDs []domainbooking.ID `validate:"required,min=1"`
}

func (c DeleteBookingsCommand) Key() string { return deleteBookingsKey }

type DeleteBookingsResult struct {
	Deleted   int `json:"deleted"`
	Remaining int `json:"remaining"`
}

type DeleteBookingsHandler struct {
	Outbox  outbox.Outbox
	Encoder outbox.EventEncoder
	Clock   support.Clock
}

func (h *DeleteBookingsHandler) Handle(ctx context.Context, cmd DeleteBookingsCommand) (*DeleteBookingsResult, error) {
	unit, err := support.WriteUnit(ctx)
	if err != nil {
		return nil, err
	}
	snap, err := unit.Workbook().Load(ctx)
	if err != nil {
		return nil, err
	}
	wb := snap.Workbook
	now := h.Clock.Now()
	if err := wb.DeleteBookings(cmd.IDs, now); err != nil {
		return nil, err
	}
	wb.MarkSaved(now)
	if err := unit.Workbook().Save(ctx, wb); err != nil {
		return nil, err
	}
	if err := outbox.Drain(ctx, h.Outbox, h.Encoder, &wb); err != nil {
		return nil, err
	}
	return &DeleteBookingsResult{Deleted: len(cmd.IDs), Remaining: len(wb.Bookings)}, nil
}

var _ commands.Handler[ReplaceBookingsCommand, *ReplaceBookingsResult] = (*ReplaceBookingsHandler)(nil)
var _ commands.Handler[DeleteBookingsCommand, *DeleteBookingsResult] = (*DeleteBookingsHandler)(nil)
