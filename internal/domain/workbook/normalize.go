package workbook

import (
	"fmt"
	"strings"

	"lynx/internal/domain/booking"
	"lynx/internal/domain/costs"
	"lynx/internal/domain/shared/daterange"
	"lynx/internal/domain/shared/money"
)

// Normalize turns raw sheets into the canonical workbook. It never mutates raw.
// A missing Bookings sheet or check-in column is fatal; everything else is
// recovered and counted in the report.
func Normalize(raw RawWorkbook, rate money.Rate) (Workbook, Report, error) {
	var rep Report
	if raw.Bookings == nil {
		return Workbook{}, rep, fmt.Errorf("%w: %s", ErrMissingSheet, SheetBookings)
	}

	header := canonicalHeader(raw.Bookings.Header, bookingAliases)
	index := columnIndex(header)
	if _, ok := index[ColCheckIn]; !ok {
		return Workbook{}, rep, fmt.Errorf("%w: %s.%s", ErrMissingColumn, SheetBookings, ColCheckIn)
	}

	wb := Workbook{BookingColumns: nonEmpty(header)}
	for _, cells := range raw.Bookings.Rows {
		if blank(cells) {
			rep.EmptyRows++
			continue
		}
		b, ok := parseBooking(row{cells: cells, index: index}, header, &rep)
		if !ok {
			rep.MissingCheckIn++
			continue
		}
		wb.Bookings = append(wb.Bookings, b)
	}
	SortBookings(wb.Bookings)
	booking.AssignIDs(wb.Bookings)

	if raw.MonthlyCosts == nil {
		rep.MissingSheets = append(rep.MissingSheets, SheetMonthlyCosts)
	} else {
		wb.Costs = normalizeCosts(*raw.MonthlyCosts, &rep)
	}
	wb.Costs.Recompute(rate)

	if raw.Consumables == nil {
		rep.MissingSheets = append(rep.MissingSheets, SheetConsumables)
	} else {
		wb.Consumables = normalizeConsumables(*raw.Consumables, &rep)
	}
	wb.Consumables.Recompute()

	return wb, rep, nil
}

func nonEmpty(header []string) []string {
	out := make([]string, 0, len(header))
	seen := make(map[string]bool, len(header))
	for _, h := range header {
		if h == "" || seen[h] {
			continue
		}
		seen[h] = true
		out = append(out, h)
	}
	return out
}

var bookingCanonical = func() map[string]bool {
	m := make(map[string]bool, len(BookingColumns))
	for _, c := range BookingColumns {
		m[c] = true
	}
	return m
}()

func parseBooking(r row, header []string, rep *Report) (booking.Booking, bool) {
	checkIn, ok := parseDate(r.get(ColCheckIn))
	if !ok {
		return booking.Booking{}, false
	}
	b := booking.Booking{
		CheckIn:     checkIn,
		GuestName:   r.get(ColGuestName),
		Country:     r.get(ColCountry),
		RawPlatform: r.get(ColPlatform),
		SofaBed:     booking.Flag(r.get(ColSofaBed)),
		BabyCrib:    booking.Flag(r.get(ColBabyCrib)),
		Parking:     booking.Flag(r.get(ColParking)),
		Notes:       r.get(ColNotes),
	}
	if out, ok := parseDate(r.get(ColCheckOut)); ok {
		b.CheckOut = out
	}

	var recognized bool
	b.Platform, recognized = booking.NormalizePlatform(b.RawPlatform)
	if !recognized {
		rep.UnknownPlatforms++
	}

	num := func(column string) (float64, bool) {
		v, st := parseNumber(r.get(column))
		if st == cellBad {
			rep.UnparseableCells++
		}
		return v, st == cellOK
	}
	integer := func(column string) (int, bool) {
		v, st := parseInt(r.get(column))
		if st == cellBad {
			rep.UnparseableCells++
		}
		return v, st == cellOK
	}

	b.Adults, _ = integer(ColAdults)
	b.Children, _ = integer(ColChildren)
	b.Revenue, _ = num(ColRevenue)
	b.Transportation, _ = num(ColTransportation)
	b.Laundry, _ = num(ColLaundry)
	b.Consumables, _ = num(ColConsumables)
	b.BankFees, _ = num(ColBankFees)

	var present bool
	if b.Nights, present = integer(ColNights); !present && !b.CheckOut.IsZero() {
		b.Nights = daterange.DaysBetween(b.CheckIn, b.CheckOut)
	}
	if b.Month, present = integer(ColMonth); !present {
		b.Month = int(b.CheckIn.Month())
	}
	if b.Year, present = integer(ColYear); !present {
		b.Year = b.CheckIn.Year()
	}
	if b.TotalGuests, present = integer(ColTotalGuests); !present {
		b.TotalGuests = b.Adults + b.Children
	}
	if b.PerStay, present = num(ColPerStay); !present {
		b.PerStay = b.Transportation + b.Laundry + b.Consumables + b.BankFees
	}
	if b.NetBeforeFixed, present = num(ColNetBeforeFixed); !present {
		b.NetBeforeFixed = b.Revenue - b.PerStay
	}

	for i, h := range header {
		if h == "" || bookingCanonical[h] || i >= len(r.cells) {
			continue
		}
		if r.index[h] != i {
			continue
		}
		if v := strings.TrimSpace(r.cells[i]); v != "" {
			if b.Extra == nil {
				b.Extra = make(map[string]string)
			}
			b.Extra[h] = v
		}
	}
	return b, true
}

func normalizeCosts(t RawTable, rep *Report) costs.Sheet {
	header := canonicalHeader(t.Header, costAliases)
	sheet := costs.Sheet{Columns: nonEmpty(header)}
	sheet.MonthColumn = costs.FindMonthColumn(sheet.Columns)
	index := columnIndex(header)

	for _, cells := range t.Rows {
		if blank(cells) {
			rep.EmptyRows++
			continue
		}
		r := row{cells: cells, index: index}
		var out costs.MonthlyFixedCost
		for _, col := range sheet.Columns {
			raw := r.get(col)
			switch {
			case col == costs.ColumnYear:
				if out.Year, out.YearOK = intCell(raw); !out.YearOK {
					out.Year = 0
					out.Text = keepText(out.Text, col, raw)
				}
			case col == sheet.MonthColumn:
				out.Month, out.MonthOK = intCell(raw)
				if out.MonthOK && (out.Month < 1 || out.Month > 12) {
					out.MonthOK = false
				}
				if !out.MonthOK {
					out.Month = 0
					out.Text = keepText(out.Text, col, raw)
				}
			case col == costs.ColumnTotal:
				out.Total, _ = parseNumber(raw)
			default:
				if cur, ok := costs.ClassifyColumn(col); ok {
					v, st := parseNumber(raw)
					if st == cellBad {
						rep.UnparseableCells++
					}
					out.Items = append(out.Items, costs.LineItem{Column: col, Currency: cur, Amount: v})
					continue
				}
				out.Text = keepText(out.Text, col, raw)
			}
		}
		sheet.Rows = append(sheet.Rows, out)
	}
	return sheet
}

func keepText(text map[string]string, col, raw string) map[string]string {
	if raw == "" {
		return text
	}
	if text == nil {
		text = make(map[string]string)
	}
	text[col] = raw
	return text
}

// intCell reads year and month cells. Non-numeric values are not an error here;
// the row simply has no usable date.
func intCell(raw string) (int, bool) {
	v, st := parseInt(raw)
	return v, st == cellOK
}

func normalizeConsumables(t RawTable, rep *Report) costs.Consumables {
	header := append([]string(nil), t.Header...)
	if len(header) > 0 && strings.TrimSpace(header[0]) == "" {
		header[0] = costs.ColumnItem
	}
	header = canonicalHeader(header, consumableAliases)
	out := costs.Consumables{Columns: nonEmpty(header)}
	index := columnIndex(header)

	for _, cells := range t.Rows {
		if blank(cells) {
			rep.EmptyRows++
			continue
		}
		r := row{cells: cells, index: index}
		num := func(column string) float64 {
			v, st := parseNumber(r.get(column))
			if st == cellBad {
				rep.UnparseableCells++
			}
			return v
		}
		item := costs.ConsumableItem{
			Item:         r.get(costs.ColumnItem),
			UnitPriceMKD: num(costs.ColumnUnitPrice),
			UnitsPerStay: num(costs.ColumnUnitsPerStay),
			TotalMKD:     num(costs.ColumnLineTotal),
		}
		for _, col := range out.Columns {
			switch col {
			case costs.ColumnItem, costs.ColumnUnitPrice, costs.ColumnUnitsPerStay, costs.ColumnLineTotal:
				continue
			}
			if v := r.get(col); v != "" {
				if item.Text == nil {
					item.Text = make(map[string]string)
				}
				item.Text[col] = v
			}
		}
		out.Items = append(out.Items, item)
	}
	return out
}
