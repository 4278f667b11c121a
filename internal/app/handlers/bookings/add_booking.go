package bookings

import (
	"context"

	"lynx/internal/app/commands"
	"lynx/internal/app/dto"
	"lynx/internal/app/handlers/support"
	"lynx/internal/app/middleware"
	"lynx/internal/app/outbox"
	domainbooking "lynx/internal/domain/booking"
)

const addBookingKey = "bookings.add"

type AddBookingCommand struct {
	Entry           domainbooking.Entry `validate:"-"`
	IdempotencyKeyV string
}

func (c AddBookingCommand) Key() string { return addBookingKey }

func (c AddBookingCommand) IdempotencyKey() string { return c.IdempotencyKeyV }

func (c AddBookingCommand) ResultPrototype() any { return &AddBookingResult{} }

// Validate reports every broken entry rule before a unit of work is opened.
func (c AddBookingCommand) Validate() error { return c.Entry.Validate() }

type AddBookingResult struct {
	Booking dto.Booking `json:"booking"`
}

type AddBookingHandler struct {
	Policy  domainbooking.EntryPolicy
	Outbox  outbox.Outbox
	Encoder outbox.EventEncoder
	Clock   support.Clock
}

func (h *AddBookingHandler) Handle(ctx context.Context, cmd AddBookingCommand) (*AddBookingResult, error) {
	unit, err := support.WriteUnit(ctx)
	if err != nil {
		return nil, err
	}
	b, err := cmd.Entry.ToBooking(h.policy())
	if err != nil {
		return nil, err
	}
	snap, err := unit.Workbook().Load(ctx)
	if err != nil {
		return nil, err
	}
	wb := snap.Workbook
	now := h.Clock.Now()
	stored := wb.AppendBooking(b, now)
	wb.MarkSaved(now)
	if err := unit.Workbook().Save(ctx, wb); err != nil {
		return nil, err
	}
	if err := outbox.Drain(ctx, h.Outbox, h.Encoder, &wb); err != nil {
		return nil, err
	}
	return &AddBookingResult{Booking: dto.BookingFromDomain(stored)}, nil
}

func (h *AddBookingHandler) policy() domainbooking.EntryPolicy {
	if h.Policy.BookingCommission == 0 {
		return domainbooking.DefaultEntryPolicy()
	}
	return h.Policy
}

var _ commands.Handler[AddBookingCommand, *AddBookingResult] = (*AddBookingHandler)(nil)
var _ middleware.IdempotentCommand = (*AddBookingCommand)(nil)
