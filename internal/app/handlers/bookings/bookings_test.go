package bookings_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lynx/internal/app/commands"
	"lynx/internal/app/dto"
	"lynx/internal/app/handlers/bookings"
	"lynx/internal/app/handlers/support"
	"lynx/internal/app/middleware"
	"lynx/internal/app/outbox"
	"lynx/internal/app/queries"
	"lynx/internal/domain/booking"
	"lynx/internal/domain/metrics"
	"lynx/internal/domain/period"
	"lynx/internal/domain/workbook"
	"lynx/internal/infra/storage/memory"
)

var fixedNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

type harness struct {
	workbooks *memory.Workbooks
	outbox    *memory.Outbox
	commands  commands.Bus
	queries   queries.Bus
}

func newHarness(t *testing.T) harness {
	t.Helper()
	workbooks := memory.NewWorkbooks(workbook.Workbook{BookingColumns: workbook.BookingColumns})
	factory := memory.NewFactory(workbooks, memory.NewPreferences())
	box := memory.NewOutbox(nil)
	clock := support.Clock(func() time.Time { return fixedNow })
	enc := outbox.JSONEventEncoder{}

	cb := commands.NewInMemoryBus()
	commands.RegisterHandler[bookings.AddBookingCommand, *bookings.AddBookingResult](cb, &bookings.AddBookingHandler{Outbox: box, Encoder: enc, Clock: clock})
	commands.RegisterHandler[bookings.DeleteBookingsCommand, *bookings.DeleteBookingsResult](cb, &bookings.DeleteBookingsHandler{Outbox: box, Encoder: enc, Clock: clock})
	commands.RegisterHandler[bookings.ReplaceBookingsCommand, *bookings.ReplaceBookingsResult](cb, &bookings.ReplaceBookingsHandler{Outbox: box, Encoder: enc, Clock: clock})

	qb := queries.NewInMemoryBus()
	queries.RegisterHandler[bookings.ListBookingsQuery, dto.BookingCollection](qb, &bookings.ListBookingsHandler{UoWFactory: factory})

	return harness{
		workbooks: workbooks,
		outbox:    box,
		commands: middleware.ChainCommands(cb,
			middleware.Validation(middleware.NewStructValidator()),
			middleware.Idempotency(memory.NewIdempotencyStore(time.Hour), nil, time.Hour),
			middleware.Transaction(factory, nil, nil),
			middleware.OutboxFlush(box),
		),
		queries: middleware.ChainQueries(qb, middleware.QueryValidation(middleware.NewStructValidator())),
	}
}

func entry(guest, platform string, checkIn time.Time, nights int, revenue float64) booking.Entry {
	return booking.Entry{
		CheckIn:   checkIn,
		CheckOut:  checkIn.AddDate(0, 0, nights),
		GuestName: guest,
		Country:   "Germany",
		Platform:  platform,
		Adults:    2,
		Revenue:   revenue,
	}
}

func day(y int, m time.Month, d int) time.Time { return time.Date(y, m, d, 0, 0, 0, 0, time.UTC) }

func (h harness) add(t *testing.T, e booking.Entry, key string) *bookings.AddBookingResult {
	t.Helper()
	res, err := commands.Dispatch[bookings.AddBookingCommand, *bookings.AddBookingResult](context.Background(), h.commands,
		bookings.AddBookingCommand{Entry: e, IdempotencyKeyV: key})
	require.NoError(t, err)
	return res
}

func eventNames(box *memory.Outbox) []string {
	var out []string
	for _, rec := range box.Published() {
		out = append(out, rec.Name)
	}
	return out
}

func TestAddBookingCommitsAndPublishes(t *testing.T) {
	h := newHarness(t)

	res := h.add(t, entry("Ana", "Airbnb", day(2024, 3, 1), 3, 300), "")

	assert.Equal(t, "Ana", res.Booking.GuestName)
	assert.Equal(t, 3, res.Booking.Nights)
	assert.NotEmpty(t, res.Booking.ID)
	assert.Equal(t, 1, h.workbooks.Saves())
	assert.Equal(t, []string{"booking.added", "workbook.saved"}, eventNames(h.outbox))
}

func TestAddBookingRejectsInvalidEntryBeforeWriting(t *testing.T) {
	h := newHarness(t)

	_, err := commands.Dispatch[bookings.AddBookingCommand, *bookings.AddBookingResult](context.Background(), h.commands,
		bookings.AddBookingCommand{Entry: booking.Entry{Platform: "Airbnb"}})

	require.ErrorIs(t, err, booking.ErrInvalidEntry)
	var verr *booking.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.NotEmpty(t, verr.Missing)
	assert.Zero(t, h.workbooks.Saves())
	assert.Empty(t, h.outbox.Published())
}

func TestAddBookingReplaysIdempotencyKey(t *testing.T) {
	h := newHarness(t)
	e := entry("Ana", "Airbnb", day(2024, 3, 1), 3, 300)

	first := h.add(t, e, "form-1")
	second := h.add(t, e, "form-1")

	assert.Equal(t, first.Booking, second.Booking)
	assert.Equal(t, 1, h.workbooks.Saves())
}

func TestDeleteUnknownBookingLeavesWorkbook(t *testing.T) {
	h := newHarness(t)
	h.add(t, entry("Ana", "Airbnb", day(2024, 3, 1), 3, 300), "")

	_, err := commands.Dispatch[bookings.DeleteBookingsCommand, *bookings.DeleteBookingsResult](context.Background(), h.commands,
		bookings.DeleteBookingsCommand{IDs: []booking.ID{"missing"}})

	require.ErrorIs(t, err, booking.ErrBookingNotFound)
	assert.Equal(t, 1, h.workbooks.Saves())
}

func TestDeleteBookingRemovesRow(t *testing.T) {
	h := newHarness(t)
	added := h.add(t, entry("Ana", "Airbnb", day(2024, 3, 1), 3, 300), "")
	h.add(t, entry("Marko", "Booking.com", day(2024, 4, 1), 2, 180), "")

	res, err := commands.Dispatch[bookings.DeleteBookingsCommand, *bookings.DeleteBookingsResult](context.Background(), h.commands,
		bookings.DeleteBookingsCommand{IDs: []booking.ID{booking.ID(added.Booking.ID)}})

	require.NoError(t, err)
	assert.Equal(t, 1, res.Deleted)
	assert.Equal(t, 1, res.Remaining)
	assert.Contains(t, eventNames(h.outbox), "booking.deleted")
}

func TestDeleteRequiresIDs(t *testing.T) {
	h := newHarness(t)
	_, err := commands.Dispatch[bookings.DeleteBookingsCommand, *bookings.DeleteBookingsResult](context.Background(), h.commands,
		bookings.DeleteBookingsCommand{})
	assert.ErrorIs(t, err, middleware.ErrInvalidMessage)
}

func TestListBookingsFiltersPeriodAndView(t *testing.T) {
	h := newHarness(t)
	h.add(t, entry("Ana", "Airbnb", day(2024, 3, 1), 3, 300), "")
	h.add(t, entry("Marko", "Booking.com", day(2024, 3, 20), 2, 180), "")
	h.add(t, entry("Lena", "Airbnb", day(2024, 4, 2), 2, 150), "")

	ctx := context.Background()
	march, err := queries.Ask[bookings.ListBookingsQuery, dto.BookingCollection](ctx, h.queries,
		bookings.ListBookingsQuery{Period: period.Month(2024, 3)})
	require.NoError(t, err)
	require.Len(t, march.Items, 2)
	assert.Equal(t, "Ana", march.Items[0].GuestName)

	airbnb, err := queries.Ask[bookings.ListBookingsQuery, dto.BookingCollection](ctx, h.queries,
		bookings.ListBookingsQuery{Period: period.Year(2024), View: metrics.ViewAirbnb})
	require.NoError(t, err)
	require.Len(t, airbnb.Items, 2)
	for _, b := range airbnb.Items {
		assert.Equal(t, "Airbnb", b.Platform)
	}
}

func TestListBookingsRejectsBadPeriod(t *testing.T) {
	h := newHarness(t)
	_, err := queries.Ask[bookings.ListBookingsQuery, dto.BookingCollection](context.Background(), h.queries,
		bookings.ListBookingsQuery{Period: period.Month(2024, 0)})
	assert.ErrorIs(t, err, period.ErrInvalidPeriod)
}
