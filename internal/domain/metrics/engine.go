package metrics

import (
	"errors"
	"fmt"
	"math"

	"lynx/internal/domain/booking"
	"lynx/internal/domain/costs"
	"lynx/internal/domain/shared/daterange"
)

var (
	ErrUnknownView  = errors.New("metrics: unknown platform view")
	ErrInvalidInput = errors.New("metrics: invalid input")
)

// View is the platform lens metrics are computed through.
type View string

const (
	ViewOverall    View = "Overall"
	ViewAirbnb     View = "Airbnb"
	ViewBookingCom View = "Booking.com"
)

var Views = []View{ViewOverall, ViewAirbnb, ViewBookingCom}

// ParseView accepts the three view names; an empty string is Overall.
func ParseView(raw string) (View, error) {
	switch raw {
	case "", string(ViewOverall), "overall":
		return ViewOverall, nil
	case string(ViewAirbnb), "airbnb":
		return ViewAirbnb, nil
	case string(ViewBookingCom), "booking.com", "Booking", "booking":
		return ViewBookingCom, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownView, raw)
}

func (v View) valid() bool {
	return v == ViewOverall || v == ViewAirbnb || v == ViewBookingCom
}

// Platform returns the channel a platform view selects.
func (v View) Platform() (booking.Platform, bool) {
	switch v {
	case ViewAirbnb:
		return booking.PlatformAirbnb, true
	case ViewBookingCom:
		return booking.PlatformBookingCom, true
	}
	return "", false
}

// Includes reports whether b is visible through the view.
func (v View) Includes(b booking.Booking) bool {
	p, ok := v.Platform()
	return !ok || b.Platform == p
}

// Columns tells which optional Bookings columns the source sheet carries.
type Columns interface {
	HasBookingColumn(column string) bool
}

type allColumns struct{}

func (allColumns) HasBookingColumn(string) bool { return true }

// Input is one engine pass. Bookings and Costs are already period-filtered;
// Bookings still holds every platform so comparisons can see both channels.
type Input struct {
	Bookings []booking.Booking
	Costs    []costs.MonthlyFixedCost
	// HasFixedCosts is false when the cost sheet has no total column at all.
	HasFixedCosts   bool
	View            View
	NightsAvailable int
	YearHint        int
	// Columns may be nil, meaning every optional column is present.
	Columns Columns
}

// totals are the base sums over the view-filtered bookings.
type totals struct {
	reservations   int
	nights         int
	revenue        float64
	perStay        float64
	netBeforeFixed float64
	transportation float64
	laundry        float64
	consumables    float64
	bankFees       float64
	guests         float64
}

func sum(list []booking.Booking) totals {
	var t totals
	for _, b := range list {
		t.reservations++
		t.nights += b.Nights
		t.revenue += b.Revenue
		t.perStay += b.PerStay
		t.netBeforeFixed += b.NetBeforeFixed
		t.transportation += b.Transportation
		t.laundry += b.Laundry
		t.consumables += b.Consumables
		t.bankFees += b.BankFees
		t.guests += float64(b.TotalGuests)
	}
	return t
}

// ratio is a/b, or 0 when b is zero or close enough to it.
func ratio(a, b float64) float64 {
	if math.Abs(b) < 1e-12 {
		return 0
	}
	return a / b
}

// Compute runs the whole catalog over one period slice.
func Compute(in Input) (*Set, error) {
	if !in.View.valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownView, in.View)
	}
	if in.NightsAvailable < 0 {
		return nil, fmt.Errorf("%w: negative nights available", ErrInvalidInput)
	}
	cols := in.Columns
	if cols == nil {
		cols = allColumns{}
	}

	view := make([]booking.Booking, 0, len(in.Bookings))
	for _, b := range in.Bookings {
		if in.View.Includes(b) {
			view = append(view, b)
		}
	}

	c := calc{
		in:        in,
		cols:      cols,
		view:      view,
		t:         sum(view),
		available: float64(in.NightsAvailable),
		set:       newSet(),
	}
	if in.View == ViewOverall && in.HasFixedCosts {
		c.fixedKnown = true
		c.fixed = costs.Total(in.Costs)
	}

	c.core()
	c.profitability()
	c.platforms()
	c.guests()
	c.operational()
	c.seasonality()
	c.costBreakdown()
	c.demographics()

	c.set.sortByCatalog()
	return c.set, nil
}

type calc struct {
	in        Input
	cols      Columns
	view      []booking.Booking
	t         totals
	available float64

	// fixedKnown is true only in the Overall view with a fixed-cost column;
	// fixed costs have no per-platform allocation.
	fixedKnown bool
	fixed      float64

	set *Set
}

func (c *calc) netProfit() float64 {
	return c.t.netBeforeFixed - c.fixed
}

func (c *calc) adr() float64 {
	return ratio(c.t.revenue, float64(c.t.nights))
}

func (c *calc) core() {
	t := c.t
	c.set.add(KeyReservations, Count(t.reservations))
	c.set.add(KeyTotalNights, Count(t.nights))
	c.set.add(KeyOccupancy, Scalar(ratio(float64(t.nights), c.available)*100))
	c.set.add(KeyTotalRevenue, Scalar(t.revenue))

	if c.fixedKnown {
		c.set.add(KeyNetProfit, Scalar(c.netProfit()))
	} else {
		e := c.set.add(KeyNetProfit, Scalar(t.netBeforeFixed))
		e.Label = "Net Income Before Fixed Costs (€)"
		e.Explanation = "Net profit after per-stay expenses, before fixed monthly costs for the selected view/platform."
	}

	c.set.add(KeyAvgPricePerNight, Scalar(c.adr()))
	c.set.add(KeyAvgStay, Scalar(ratio(float64(t.nights), float64(t.reservations))))

	months := c.observedMonths()
	net := t.netBeforeFixed
	if c.fixedKnown {
		net = c.netProfit()
	}
	c.set.add(KeyAvgMonthlyGross, Scalar(ratio(t.revenue, float64(months))))
	c.set.add(KeyAvgMonthlyNet, Scalar(ratio(net, float64(months))))
}

// observedMonths counts calendar months between the earliest and latest check-in
// of the slice, so sparse data is not divided by nominal period length.
func (c *calc) observedMonths() int {
	if len(c.view) == 0 {
		return 0
	}
	first, last := c.view[0].CheckIn, c.view[0].CheckIn
	for _, b := range c.view[1:] {
		if b.CheckIn.Before(first) {
			first = b.CheckIn
		}
		if b.CheckIn.After(last) {
			last = b.CheckIn
		}
	}
	return daterange.MonthsSpanned(first, last)
}

func (c *calc) profitability() {
	t := c.t
	res, nights := float64(t.reservations), float64(t.nights)

	if c.fixedKnown && t.revenue > 0 {
		c.set.add(KeyProfitMargin, Scalar(c.netProfit()/t.revenue*100))
	}
	if t.reservations > 0 {
		c.set.add(KeyCostPerReservation, Scalar(t.perStay/res))
	}
	if c.fixedKnown {
		if t.nights > 0 {
			c.set.add(KeyProfitPerNight, Scalar(c.netProfit()/nights))
		}
		if t.reservations > 0 {
			c.set.add(KeyProfitPerStay, Scalar(c.netProfit()/res))
		}
	}
	if t.nights > 0 {
		c.set.add(KeyNetPerNightBeforeFixed, Scalar(t.netBeforeFixed/nights))
	}
	if t.reservations > 0 {
		c.set.add(KeyNetPerStayBeforeFixed, Scalar(t.netBeforeFixed/res))
	}
	if t.revenue > 0 {
		c.set.add(KeyCostPctRevenue, Scalar(t.perStay/t.revenue*100))
		if c.fixedKnown && c.fixed > 0 {
			c.set.add(KeyFixedCostPctRevenue, Scalar(c.fixed/t.revenue*100))
		}
	}
}

func (c *calc) operational() {
	t := c.t
	c.set.add(KeyTotalPerStay, Scalar(t.perStay))
	if t.nights > 0 {
		c.set.add(KeyAvgCostPerNight, Scalar(t.perStay/float64(t.nights)))
	}
	if c.fixedKnown {
		c.set.add(KeyTotalFixedCosts, Scalar(c.fixed))
		if c.fixed > 0 {
			if t.nights > 0 {
				c.set.add(KeyFixedCostPerNight, Scalar(c.fixed/float64(t.nights)))
			}
			if t.reservations > 0 {
				c.set.add(KeyFixedCostPerRes, Scalar(c.fixed/float64(t.reservations)))
			}
			c.set.add(KeyVariableFixedRatio, Scalar(t.perStay/c.fixed))
		}
		if adr := c.adr(); adr > 0 && c.available > 0 {
			c.set.add(KeyBreakEvenOccupancy, Scalar(c.fixed/(adr*c.available)*100))
			c.set.add(KeyBreakEvenNights, Scalar(c.fixed/adr))
		}
	}
	c.set.add(KeyRevPAR, Scalar(ratio(t.revenue, c.available)))
	c.set.add(KeyADR, Scalar(c.adr()))
}

func (c *calc) costBreakdown() {
	t := c.t
	res := float64(t.reservations)
	c.set.add(KeyTransportPerStay, Scalar(ratio(t.transportation, res)))
	c.set.add(KeyLaundryPerStay, Scalar(ratio(t.laundry, res)))
	c.set.add(KeyConsumablePerStay, Scalar(ratio(t.consumables, res)))
	c.set.add(KeyBankFeesPerStay, Scalar(ratio(t.bankFees, res)))
}
