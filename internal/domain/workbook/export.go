package workbook

import (
	"strconv"

	"lynx/internal/domain/booking"
	"lynx/internal/domain/costs"
)

// ToRaw renders the workbook back into sheets under canonical headers.
// Normalize(ToRaw(w)) reproduces w.
func ToRaw(w Workbook) RawWorkbook {
	out := RawWorkbook{
		Bookings: &RawTable{Name: SheetBookings, Header: append([]string(nil), w.BookingColumns...)},
	}
	for _, b := range w.Bookings {
		cells := make([]string, len(w.BookingColumns))
		for i, col := range w.BookingColumns {
			cells[i] = bookingCell(b, col)
		}
		out.Bookings.Rows = append(out.Bookings.Rows, cells)
	}

	if len(w.Costs.Columns) > 0 {
		t := &RawTable{Name: SheetMonthlyCosts, Header: append([]string(nil), w.Costs.Columns...)}
		for _, r := range w.Costs.Rows {
			cells := make([]string, len(w.Costs.Columns))
			for i, col := range w.Costs.Columns {
				cells[i] = costCell(r, col, w.Costs.MonthColumn)
			}
			t.Rows = append(t.Rows, cells)
		}
		out.MonthlyCosts = t
	}

	if len(w.Consumables.Columns) > 0 {
		t := &RawTable{Name: SheetConsumables, Header: append([]string(nil), w.Consumables.Columns...)}
		for _, it := range w.Consumables.Items {
			cells := make([]string, len(w.Consumables.Columns))
			for i, col := range w.Consumables.Columns {
				cells[i] = consumableCell(it, col)
			}
			t.Rows = append(t.Rows, cells)
		}
		out.Consumables = t
	}
	return out
}

func bookingCell(b booking.Booking, col string) string {
	switch col {
	case ColCheckIn:
		return formatDate(b.CheckIn)
	case ColCheckOut:
		return formatDate(b.CheckOut)
	case ColGuestName:
		return b.GuestName
	case ColCountry:
		return b.Country
	case ColAdults:
		return strconv.Itoa(b.Adults)
	case ColChildren:
		return strconv.Itoa(b.Children)
	case ColTotalGuests:
		return strconv.Itoa(b.TotalGuests)
	case ColSofaBed:
		return string(b.SofaBed)
	case ColBabyCrib:
		return string(b.BabyCrib)
	case ColParking:
		return string(b.Parking)
	case ColPlatform:
		if b.RawPlatform != "" {
			return b.RawPlatform
		}
		return b.Platform.SheetLabel()
	case ColNights:
		return strconv.Itoa(b.Nights)
	case ColRevenue:
		return formatNumber(b.Revenue)
	case ColTransportation:
		return formatNumber(b.Transportation)
	case ColLaundry:
		return formatNumber(b.Laundry)
	case ColConsumables:
		return formatNumber(b.Consumables)
	case ColBankFees:
		return formatNumber(b.BankFees)
	case ColPerStay:
		return formatNumber(b.PerStay)
	case ColNetBeforeFixed:
		return formatNumber(b.NetBeforeFixed)
	case ColMonth:
		return strconv.Itoa(b.Month)
	case ColYear:
		return strconv.Itoa(b.Year)
	case ColNotes:
		return b.Notes
	default:
		return b.Extra[col]
	}
}

func costCell(r costs.MonthlyFixedCost, col, monthColumn string) string {
	switch {
	case col == costs.ColumnYear:
		if !r.YearOK {
			return r.Text[col]
		}
		return strconv.Itoa(r.Year)
	case col == monthColumn:
		if !r.MonthOK {
			return r.Text[col]
		}
		return strconv.Itoa(r.Month)
	case col == costs.ColumnTotal:
		return formatNumber(r.Total)
	}
	if v, ok := r.Amount(col); ok {
		return formatNumber(v)
	}
	return r.Text[col]
}

func consumableCell(it costs.ConsumableItem, col string) string {
	switch col {
	case costs.ColumnItem:
		return it.Item
	case costs.ColumnUnitPrice:
		return formatNumber(it.UnitPriceMKD)
	case costs.ColumnUnitsPerStay:
		return formatNumber(it.UnitsPerStay)
	case costs.ColumnLineTotal:
		return formatNumber(it.TotalMKD)
	default:
		return it.Text[col]
	}
}
