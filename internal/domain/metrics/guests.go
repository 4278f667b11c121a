package metrics

import (
	"lynx/internal/domain/booking"
	"lynx/internal/domain/workbook"
)

func (c *calc) hasGuestColumns() bool {
	return c.cols.HasBookingColumn(workbook.ColTotalGuests) ||
		(c.cols.HasBookingColumn(workbook.ColAdults) && c.cols.HasBookingColumn(workbook.ColChildren))
}

func (c *calc) guests() {
	t := c.t
	res := float64(t.reservations)

	var guests float64
	if c.hasGuestColumns() {
		guests = t.guests
	}
	c.set.add(KeyAvgGroupSize, Scalar(ratio(guests, res)))

	if t.reservations > 0 {
		c.set.add(KeyAvgRevenuePerStay, Scalar(t.revenue/res))
		c.set.add(KeyAvgCostPerStay, Scalar(t.perStay/res))
	}
	c.amenity(KeyParkingUsage, workbook.ColParking, func(b booking.Booking) booking.Flag { return b.Parking })
	if guests > 0 {
		c.set.add(KeyRevenuePerGuest, Scalar(t.revenue/guests))
	}
	c.amenity(KeyBabyCribUsage, workbook.ColBabyCrib, func(b booking.Booking) booking.Flag { return b.BabyCrib })
	c.amenity(KeySofaBedUsage, workbook.ColSofaBed, func(b booking.Booking) booking.Flag { return b.SofaBed })
}

// amenity emits the share of stays that used a yes/no amenity.
func (c *calc) amenity(key, column string, flag func(booking.Booking) booking.Flag) {
	if len(c.view) == 0 || !c.cols.HasBookingColumn(column) {
		return
	}
	used := 0
	for _, b := range c.view {
		if flag(b).Used() {
			used++
		}
	}
	c.set.add(key, Scalar(float64(used)/float64(len(c.view))*100))
}
