package dto

import (
	"fmt"
	"strings"
	"time"

	"lynx/internal/domain/booking"
)

// Booking is one row of the bookings table. Dates travel as YYYY-MM-DD.
type Booking struct {
	ID             string            `json:"id,omitempty"`
	CheckIn        string            `json:"check_in"`
	CheckOut       string            `json:"check_out"`
	GuestName      string            `json:"guest_name"`
	Country        string            `json:"country"`
	Platform       string            `json:"platform"`
	Adults         int               `json:"adults"`
	Children       int               `json:"children"`
	TotalGuests    int               `json:"total_guests"`
	SofaBed        string            `json:"sofa_bed"`
	BabyCrib       string            `json:"baby_crib"`
	Parking        string            `json:"parking"`
	Nights         int               `json:"nights"`
	Month          int               `json:"month"`
	Year           int               `json:"year"`
	Revenue        float64           `json:"revenue"`
	Transportation float64           `json:"transportation"`
	Laundry        float64           `json:"laundry"`
	Consumables    float64           `json:"consumables"`
	BankFees       float64           `json:"bank_fees"`
	PerStay        float64           `json:"per_stay_expenses"`
	NetBeforeFixed float64           `json:"net_before_fixed"`
	Notes          string            `json:"notes,omitempty"`
	Extra          map[string]string `json:"extra,omitempty"`
}

type BookingCollection struct {
	Items    []Booking `json:"items"`
	Columns  []string  `json:"columns"`
	Warnings []string  `json:"warnings,omitempty"`
}

// NewBooking is the entry form of a single stay.
type NewBooking struct {
	CheckIn        string  `json:"check_in"`
	CheckOut       string  `json:"check_out"`
	GuestName      string  `json:"guest_name"`
	Country        string  `json:"country"`
	Platform       string  `json:"platform"`
	Adults         int     `json:"adults"`
	Children       int     `json:"children"`
	SofaBed        string  `json:"sofa_bed"`
	BabyCrib       string  `json:"baby_crib"`
	Parking        string  `json:"parking"`
	Revenue        float64 `json:"revenue"`
	Transportation float64 `json:"transportation"`
	Laundry        float64 `json:"laundry"`
	// Consumables defaults to the current consumable cost per stay when omitted.
	Consumables *float64 `json:"consumables"`
	BankFees    float64  `json:"bank_fees"`
	Notes       string   `json:"notes"`
}

// Entry converts the form. Unparseable dates are left zero so entry validation
// reports them with every other missing field.
func (n NewBooking) Entry(defaultConsumables float64) booking.Entry {
	consumables := defaultConsumables
	if n.Consumables != nil {
		consumables = *n.Consumables
	}
	in, _ := parseDay(n.CheckIn)
	out, _ := parseDay(n.CheckOut)
	return booking.Entry{
		CheckIn:        in,
		CheckOut:       out,
		GuestName:      n.GuestName,
		Country:        n.Country,
		Platform:       n.Platform,
		Adults:         n.Adults,
		Children:       n.Children,
		SofaBed:        n.SofaBed,
		BabyCrib:       n.BabyCrib,
		Parking:        n.Parking,
		Revenue:        n.Revenue,
		Transportation: n.Transportation,
		Laundry:        n.Laundry,
		Consumables:    consumables,
		BankFees:       n.BankFees,
		Notes:          n.Notes,
	}
}

func BookingFromDomain(b booking.Booking) Booking {
	return Booking{
		ID:             string(b.ID),
		CheckIn:        formatDay(b.CheckIn),
		CheckOut:       formatDay(b.CheckOut),
		GuestName:      b.GuestName,
		Country:        b.Country,
		Platform:       string(b.Platform),
		Adults:         b.Adults,
		Children:       b.Children,
		TotalGuests:    b.TotalGuests,
		SofaBed:        string(b.SofaBed),
		BabyCrib:       string(b.BabyCrib),
		Parking:        string(b.Parking),
		Nights:         b.Nights,
		Month:          b.Month,
		Year:           b.Year,
		Revenue:        b.Revenue,
		Transportation: b.Transportation,
		Laundry:        b.Laundry,
		Consumables:    b.Consumables,
		BankFees:       b.BankFees,
		PerStay:        b.PerStay,
		NetBeforeFixed: b.NetBeforeFixed,
		Notes:          b.Notes,
		Extra:          b.Extra,
	}
}

func BookingsFromDomain(list []booking.Booking) []Booking {
	out := make([]Booking, len(list))
	for i, b := range list {
		out[i] = BookingFromDomain(b)
	}
	return out
}

// ToDomain converts an edited row. A blank check-in is kept zero; the table
// replace drops such rows. Derived fields are recomputed later.
func (b Booking) ToDomain() (booking.Booking, error) {
	in, err := parseDay(b.CheckIn)
	if err != nil {
		return booking.Booking{}, fmt.Errorf("check_in %q: %w", b.CheckIn, err)
	}
	out, err := parseDay(b.CheckOut)
	if err != nil {
		return booking.Booking{}, fmt.Errorf("check_out %q: %w", b.CheckOut, err)
	}
	platform, _ := booking.NormalizePlatform(b.Platform)
	return booking.Booking{
		ID:             booking.ID(b.ID),
		CheckIn:        in,
		CheckOut:       out,
		GuestName:      b.GuestName,
		Country:        b.Country,
		Platform:       platform,
		RawPlatform:    b.Platform,
		Adults:         b.Adults,
		Children:       b.Children,
		SofaBed:        booking.Flag(b.SofaBed),
		BabyCrib:       booking.Flag(b.BabyCrib),
		Parking:        booking.Flag(b.Parking),
		Revenue:        b.Revenue,
		Transportation: b.Transportation,
		Laundry:        b.Laundry,
		Consumables:    b.Consumables,
		BankFees:       b.BankFees,
		Notes:          b.Notes,
		Extra:          b.Extra,
	}, nil
}

func parseDay(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.DateOnly, raw)
}

func formatDay(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.DateOnly)
}
