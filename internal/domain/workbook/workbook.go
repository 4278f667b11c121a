package workbook

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"lynx/internal/domain/booking"
	"lynx/internal/domain/costs"
	"lynx/internal/domain/shared/events"
	"lynx/internal/domain/shared/money"
)

var (
	ErrMissingSheet  = errors.New("workbook: required sheet missing")
	ErrMissingColumn = errors.New("workbook: required column missing")
)

// Workbook is the normalized, canonical view of the tracker file.
type Workbook struct {
	// BookingColumns is the canonical header of the Bookings sheet in stored order.
	// Metrics use it to tell an absent column from a column of zeros.
	BookingColumns []string
	Bookings       []booking.Booking
	Costs          costs.Sheet
	Consumables    costs.Consumables

	events.EventRecorder
}

// HasBookingColumn reports whether the Bookings sheet carries column.
func (w Workbook) HasBookingColumn(column string) bool {
	for _, c := range w.BookingColumns {
		if c == column {
			return true
		}
	}
	return false
}

// Clone deep-copies the workbook so callers can edit without touching cached state.
func (w Workbook) Clone() Workbook {
	out := Workbook{
		BookingColumns: append([]string(nil), w.BookingColumns...),
		Bookings:       make([]booking.Booking, len(w.Bookings)),
		Costs:          w.Costs.Clone(),
		Consumables:    w.Consumables.Clone(),
	}
	for i, b := range w.Bookings {
		if b.Extra != nil {
			extra := make(map[string]string, len(b.Extra))
			for k, v := range b.Extra {
				extra[k] = v
			}
			b.Extra = extra
		}
		out.Bookings[i] = b
	}
	return out
}

// SortBookings orders bookings by check-in ascending, keeping the relative order of ties.
func SortBookings(list []booking.Booking) {
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].CheckIn.Before(list[j].CheckIn)
	})
}

// AppendBooking adds an entered booking, widening the header to the full entry
// schema the way a new row does in the sheet. It returns the stored row.
func (w *Workbook) AppendBooking(b booking.Booking, at time.Time) booking.Booking {
	w.ensureColumns(BookingColumns)
	b.ID = ""
	w.Bookings = append(w.Bookings, b)
	SortBookings(w.Bookings)
	booking.AssignIDs(w.Bookings)
	stored := b
	for _, existing := range w.Bookings {
		if sameRow(existing, b) {
			stored = existing
		}
	}
	w.Record(booking.BookingAdded{
		BookingID: stored.ID,
		Platform:  stored.Platform,
		CheckIn:   stored.CheckIn,
		Nights:    stored.Nights,
		Revenue:   stored.Revenue,
		At:        at,
	})
	return stored
}

func sameRow(a, b booking.Booking) bool {
	return booking.DeriveID(a, 0) == booking.DeriveID(b, 0)
}

// DeleteBookings removes rows by id. Unknown ids fail the whole call.
func (w *Workbook) DeleteBookings(ids []booking.ID, at time.Time) error {
	drop := make(map[booking.ID]bool, len(ids))
	for _, id := range ids {
		if _, err := booking.Find(w.Bookings, id); err != nil {
			return err
		}
		drop[id] = true
	}
	kept := w.Bookings[:0:0]
	for _, b := range w.Bookings {
		if !drop[b.ID] {
			kept = append(kept, b)
		}
	}
	booking.AssignIDs(kept)
	w.Bookings = kept
	w.Record(booking.BookingsDeleted{IDs: append([]booking.ID(nil), ids...), At: at})
	return nil
}

// ReplaceBookings swaps in an edited table: derived stay fields and money are
// recomputed, rows without check-in are dropped. It returns the dropped count.
func (w *Workbook) ReplaceBookings(list []booking.Booking, at time.Time) int {
	kept := make([]booking.Booking, 0, len(list))
	dropped := 0
	for _, b := range list {
		if b.CheckIn.IsZero() {
			dropped++
			continue
		}
		b.DeriveStay()
		b.RoundMoney()
		b.RecomputeMoney()
		kept = append(kept, b)
	}
	w.ensureColumns([]string{ColNights, ColTotalGuests, ColPerStay, ColNetBeforeFixed, ColMonth, ColYear})
	SortBookings(kept)
	booking.AssignIDs(kept)
	w.Bookings = kept
	w.Record(booking.BookingsReplaced{Count: len(kept), At: at})
	return dropped
}

// ReplaceCosts swaps in an edited Monthly_Costs table and rederives its totals.
func (w *Workbook) ReplaceCosts(sheet costs.Sheet, rate money.Rate, at time.Time) {
	if len(sheet.Columns) == 0 {
		sheet.Columns = append([]string(nil), w.Costs.Columns...)
	}
	sheet.MonthColumn = costs.FindMonthColumn(sheet.Columns)
	sheet.Recompute(rate)
	w.Costs = sheet
	w.Record(MonthlyCostsReplaced{Rows: len(sheet.Rows), At: at})
}

// ReplaceConsumables swaps in an edited consumables table and rederives line totals.
func (w *Workbook) ReplaceConsumables(items []costs.ConsumableItem, at time.Time) {
	c := costs.Consumables{Columns: w.Consumables.Columns, Items: items}
	if len(c.Columns) == 0 {
		c.Columns = []string{costs.ColumnItem, costs.ColumnUnitPrice, costs.ColumnUnitsPerStay, costs.ColumnLineTotal}
	}
	c.Recompute()
	w.Consumables = c
	w.Record(ConsumablesReplaced{Items: len(c.Items), At: at})
}

// MarkSaved records the write that is about to be committed.
func (w *Workbook) MarkSaved(at time.Time) {
	w.Record(Saved{
		Sheets:   []string{SheetBookings, SheetMonthlyCosts, SheetConsumables},
		Bookings: len(w.Bookings),
		At:       at,
	})
}

func (w *Workbook) ensureColumns(columns []string) {
	for _, c := range columns {
		if !w.HasBookingColumn(c) {
			w.BookingColumns = append(w.BookingColumns, c)
		}
	}
}

// Report counts everything the normalizer dropped or coerced.
type Report struct {
	EmptyRows        int      `json:"empty_rows"`
	MissingCheckIn   int      `json:"missing_check_in"`
	UnknownPlatforms int      `json:"unknown_platforms"`
	UnparseableCells int      `json:"unparseable_cells"`
	MissingSheets    []string `json:"missing_sheets,omitempty"`
}

// Warnings renders the non-zero counters for operators.
func (r Report) Warnings() []string {
	var out []string
	if r.EmptyRows > 0 {
		out = append(out, fmt.Sprintf("%d empty rows dropped", r.EmptyRows))
	}
	if r.MissingCheckIn > 0 {
		out = append(out, fmt.Sprintf("%d bookings without a check-in date dropped", r.MissingCheckIn))
	}
	if r.UnknownPlatforms > 0 {
		out = append(out, fmt.Sprintf("%d unknown platform labels counted as Airbnb", r.UnknownPlatforms))
	}
	if r.UnparseableCells > 0 {
		out = append(out, fmt.Sprintf("%d non-numeric cells read as 0", r.UnparseableCells))
	}
	for _, s := range r.MissingSheets {
		out = append(out, fmt.Sprintf("sheet %q missing, treated as empty", s))
	}
	return out
}
