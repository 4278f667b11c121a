package metrics

import "lynx/internal/domain/booking"

// channel totals one platform over the whole period slice, whatever the view.
type channel struct {
	reservations int
	nights       int
	revenue      float64
	perStay      float64
	guests       float64
}

func (ch channel) netBeforeFixed() float64 { return ch.revenue - ch.perStay }

func channels(list []booking.Booking) map[booking.Platform]channel {
	out := make(map[booking.Platform]channel, len(booking.Platforms))
	for _, b := range list {
		ch := out[b.Platform]
		ch.reservations++
		ch.nights += b.Nights
		ch.revenue += b.Revenue
		ch.perStay += b.PerStay
		ch.guests += float64(b.TotalGuests)
		out[b.Platform] = ch
	}
	return out
}

// platforms compares the two channels side by side. It reads the unviewed
// period slice so a platform view still shows what the other channel did.
func (c *calc) platforms() {
	chs := channels(c.in.Bookings)
	air, bcom := chs[booking.PlatformAirbnb], chs[booking.PlatformBookingCom]
	total := air.revenue + bcom.revenue
	reservations := air.reservations + bcom.reservations

	var airShare, bcomShare float64
	if total > 0 {
		airShare = air.revenue / total * 100
		bcomShare = bcom.revenue / total * 100
	}

	c.set.add(KeyAirbnbRevenue, Scalar(air.revenue))
	c.set.add(KeyBookingRevenue, Scalar(bcom.revenue))
	c.set.add(KeyAirbnbShare, Scalar(airShare))
	c.set.add(KeyBookingShare, Scalar(bcomShare))
	c.set.add(KeyAirbnbNights, Count(air.nights))
	c.set.add(KeyBookingNights, Count(bcom.nights))

	if c.available > 0 {
		c.set.add(KeyAirbnbOccupancy, Scalar(float64(air.nights)/c.available*100))
		c.set.add(KeyBookingOccupancy, Scalar(float64(bcom.nights)/c.available*100))
		c.set.add(KeyAirbnbRevPAR, Scalar(air.revenue/c.available))
		c.set.add(KeyBookingRevPAR, Scalar(bcom.revenue/c.available))
		if air.nights > 0 {
			c.set.add(KeyAirbnbADR, Scalar(air.revenue/float64(air.nights)))
		}
		if bcom.nights > 0 {
			c.set.add(KeyBookingADR, Scalar(bcom.revenue/float64(bcom.nights)))
		}
	}

	if air.reservations > 0 && bcom.reservations > 0 {
		diff := air.netBeforeFixed()/float64(air.reservations) - bcom.netBeforeFixed()/float64(bcom.reservations)
		c.set.add(KeyPlatformProfitDiff, Scalar(diff))
	}

	c.perChannel(KeyPlatformAvgStay, "%.2f", air, bcom, channelStat{
		airbnbLabel:  "Airbnb Average Stay (nights)",
		bookingLabel: "Booking.com Average Stay (nights)",
		explanation:  "Average booking duration by platform.",
		value: func(ch channel) (float64, bool) {
			if ch.nights <= 0 || ch.reservations <= 0 {
				return 0, false
			}
			return float64(ch.nights) / float64(ch.reservations), true
		},
	})
	c.perChannel(KeyPlatformRevenuePerRes, "€%.2f", air, bcom, channelStat{
		airbnbLabel:  "Airbnb Revenue per Reservation (€)",
		bookingLabel: "Booking.com Revenue per Reservation (€)",
		singlePrefix: "€ ",
		explanation:  "Average booking value by platform.",
		value: func(ch channel) (float64, bool) {
			if ch.reservations <= 0 {
				return 0, false
			}
			return ch.revenue / float64(ch.reservations), true
		},
	})
	c.perChannel(KeyPlatformCostPerRes, "€%.2f", air, bcom, channelStat{
		airbnbLabel:  "Airbnb Cost per Reservation (€)",
		bookingLabel: "Booking.com Cost per Reservation (€)",
		singlePrefix: "€ ",
		explanation:  "Average variable cost per booking by platform.",
		value: func(ch channel) (float64, bool) {
			if ch.reservations <= 0 {
				return 0, false
			}
			return ch.perStay / float64(ch.reservations), true
		},
	})

	if reservations > 0 {
		c.set.add(KeyPlatformMix, Comparison("%.1f%%",
			float64(air.reservations)/float64(reservations)*100,
			float64(bcom.reservations)/float64(reservations)*100,
		))
	}
	c.set.add(KeyConcentrationRisk, Scalar(max(airShare, bcomShare)))

	if air.reservations > 0 && c.hasGuestColumns() {
		var bcomAvg float64
		if bcom.reservations > 0 {
			bcomAvg = bcom.guests / float64(bcom.reservations)
		}
		c.set.add(KeyPlatformAvgGuests, Comparison("%.1f", air.guests/float64(air.reservations), bcomAvg))
	}
}

// channelStat describes a per-platform figure that collapses to a single
// labelled scalar when only one channel has data.
type channelStat struct {
	airbnbLabel  string
	bookingLabel string
	singlePrefix string
	explanation  string
	value        func(channel) (float64, bool)
}

func (c *calc) perChannel(key, layout string, air, bcom channel, st channelStat) {
	a, aok := st.value(air)
	b, bok := st.value(bcom)
	switch {
	case aok && bok:
		e := c.set.add(key, Comparison(layout, a, b))
		e.Explanation = st.explanation
	case aok:
		e := c.set.add(key, Scalar(a))
		e.Label = st.airbnbLabel
		e.Prefix = st.singlePrefix
	case bok:
		e := c.set.add(key, Scalar(b))
		e.Label = st.bookingLabel
		e.Prefix = st.singlePrefix
	}
}
