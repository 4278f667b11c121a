package workbook

import "lynx/internal/domain/costs"

// Sheet names of the tracker workbook.
const (
	SheetBookings       = "Bookings"
	SheetMonthlyCosts   = "Monthly_Costs"
	SheetConsumables    = "Toiletries"
	SheetConsumablesAlt = "Consumables"
)

// Canonical Bookings columns.
const (
	ColCheckIn        = "Check-in date"
	ColCheckOut       = "Check-out date"
	ColGuestName      = "Guest Name"
	ColCountry        = "Country"
	ColAdults         = "Adults"
	ColChildren       = "Children"
	ColTotalGuests    = "Total guests"
	ColSofaBed        = "Sofa Bed"
	ColBabyCrib       = "Baby Crib"
	ColParking        = "Parking"
	ColPlatform       = "Platform"
	ColNights         = "Nights"
	ColRevenue        = "Revenue for stay (€)"
	ColTransportation = "Transportation Cost (€)"
	ColLaundry        = "Laundry Cost (€)"
	ColConsumables    = "Consumable Cost (€)"
	ColBankFees       = "Bank Fees (€)"
	ColPerStay        = "Per-stay expenses (€)"
	ColNetBeforeFixed = "Net Income Before Fixed Costs (€)"
	ColMonth          = "Check-in Month"
	ColYear           = "Check-in Year"
	ColNotes          = "Notes"
)

// BookingColumns is the column order written for rows created through entry.
var BookingColumns = []string{
	ColCheckIn, ColCheckOut, ColGuestName, ColCountry, ColAdults, ColChildren, ColTotalGuests,
	ColSofaBed, ColBabyCrib, ColParking, ColPlatform, ColNights, ColRevenue, ColTransportation,
	ColLaundry, ColConsumables, ColBankFees, ColPerStay, ColNetBeforeFixed, ColMonth, ColYear,
	ColNotes,
}

type alias struct {
	from, to string
}

// bookingAliases maps legacy headers to canonical ones. Order matters: when two
// legacy headers target the same column the first one present wins.
var bookingAliases = []alias{
	{"Nights (auto)", ColNights},
	{"Month (number, auto)", ColMonth},
	{"Year (auto)", ColYear},
	{"Net income before fixed (auto)", ColNetBeforeFixed},
	{"Booker name", ColGuestName},
	{"Sofabed", ColSofaBed},
	{"Transport (to/from) (€)", ColTransportation},
	{"Laundry (€)", ColLaundry},
	{"Toiletries (€)", ColConsumables},
	{"Guest Supplies Cost (€)", ColConsumables},
	{"Transport (to/from)", ColTransportation},
	{"Transportation Cost", ColTransportation},
	{"Laundry", ColLaundry},
	{"Laundry Cost", ColLaundry},
	{"Toiletries", ColConsumables},
	{"Guest Supplies Cost", ColConsumables},
	{"Consumable Cost", ColConsumables},
	{"Bank Fees", ColBankFees},
}

var costAliases = []alias{
	{"Building management (den)", "Property Management Fee (den)"},
	{"Building management (€)", "Property Management Fee (€)"},
	{"Total fixed costs (auto)", costs.ColumnTotal},
}

var consumableAliases = []alias{
	{"Unnamed: 0", costs.ColumnItem},
	{"Piece", costs.ColumnUnitPrice},
	{"Quantity per stay", costs.ColumnUnitsPerStay},
	{"Total per stay", costs.ColumnLineTotal},
}

// canonicalHeader resolves every header of a sheet once. The canonical column
// always wins over an alias; legacy headers that lose keep their own name and
// travel as extra columns.
func canonicalHeader(header []string, aliases []alias) []string {
	index := make(map[string]int, len(header))
	for i, h := range header {
		if _, dup := index[h]; !dup {
			index[h] = i
		}
	}

	out := append([]string(nil), header...)
	taken := make(map[string]bool, len(header))
	for _, h := range header {
		taken[h] = true
	}
	for _, a := range aliases {
		i, ok := index[a.from]
		if !ok || taken[a.to] {
			continue
		}
		out[i] = a.to
		taken[a.to] = true
	}
	return out
}
