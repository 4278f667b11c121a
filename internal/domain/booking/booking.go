package booking

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"lynx/internal/domain/shared/daterange"
	"lynx/internal/domain/shared/money"
)

var (
	ErrBookingNotFound = errors.New("booking: not found")
	ErrMissingCheckIn  = errors.New("booking: check-in date missing")
)

// ID is a content-derived row identity. It is stable across reloads as long as the
// row itself does not change.
type ID string

type Platform string

const (
	PlatformAirbnb     Platform = "Airbnb"
	PlatformBookingCom Platform = "Booking.com"
)

// Platforms lists every supported channel in presentation order.
var Platforms = []Platform{PlatformAirbnb, PlatformBookingCom}

// NormalizePlatform maps a raw sheet label to a channel. Labels beginning with
// "booking" are Booking.com, everything else is Airbnb; recognized is false for
// labels that were neither.
func NormalizePlatform(raw string) (p Platform, recognized bool) {
	label := strings.ToLower(strings.TrimSpace(raw))
	switch {
	case strings.HasPrefix(label, "booking"):
		return PlatformBookingCom, true
	case label == "airbnb":
		return PlatformAirbnb, true
	default:
		return PlatformAirbnb, false
	}
}

// SheetLabel is the value written to the Platform column for new rows.
func (p Platform) SheetLabel() string {
	if p == PlatformBookingCom {
		return "Booking"
	}
	return string(PlatformAirbnb)
}

// Flag is a yes/no amenity cell kept as entered.
type Flag string

func (f Flag) Used() bool {
	return strings.EqualFold(strings.TrimSpace(string(f)), "yes")
}

// Booking is one reservation row after normalization. Money is EUR.
type Booking struct {
	ID          ID
	CheckIn     time.Time
	CheckOut    time.Time
	GuestName   string
	Country     string
	Platform    Platform
	RawPlatform string

	Adults      int
	Children    int
	TotalGuests int

	SofaBed  Flag
	BabyCrib Flag
	Parking  Flag

	Nights int
	Month  int
	Year   int

	Revenue        float64
	Transportation float64
	Laundry        float64
	Consumables    float64
	BankFees       float64
	PerStay        float64
	NetBeforeFixed float64

	Notes string

	// Extra keeps cells of columns outside the canonical schema so saves preserve them.
	Extra map[string]string
}

// Stay returns the booking window; it is invalid for historical rows without a check-out.
func (b Booking) Stay() daterange.DateRange {
	return daterange.DateRange{CheckIn: b.CheckIn, CheckOut: b.CheckOut}
}

// YearMonth packs the check-in month into a sortable key.
func (b Booking) YearMonth() int {
	return b.Year*100 + b.Month
}

// DeriveStay refreshes nights, check-in month/year and total guests from the primary fields.
func (b *Booking) DeriveStay() {
	if !b.CheckOut.IsZero() {
		b.Nights = daterange.DaysBetween(b.CheckIn, b.CheckOut)
	}
	b.Month = int(b.CheckIn.Month())
	b.Year = b.CheckIn.Year()
	b.TotalGuests = b.Adults + b.Children
}

// RecomputeMoney derives per-stay expenses and net income from the primary fields.
func (b *Booking) RecomputeMoney() {
	b.PerStay = money.Sum2(b.Transportation, b.Laundry, b.Consumables, b.BankFees)
	b.NetBeforeFixed = money.Sub2(b.Revenue, b.PerStay)
}

// RoundMoney rounds every currency field to cents.
func (b *Booking) RoundMoney() {
	b.Revenue = money.Round2(b.Revenue)
	b.Transportation = money.Round2(b.Transportation)
	b.Laundry = money.Round2(b.Laundry)
	b.Consumables = money.Round2(b.Consumables)
	b.BankFees = money.Round2(b.BankFees)
	b.PerStay = money.Round2(b.PerStay)
	b.NetBeforeFixed = money.Round2(b.NetBeforeFixed)
}

var idNamespace = uuid.MustParse("6f1d4c1e-2b7a-5c39-9a64-0b8e3f1f7d21")

// DeriveID hashes the row content; occurrence disambiguates identical rows.
func DeriveID(b Booking, occurrence int) ID {
	parts := []string{
		b.CheckIn.Format(time.DateOnly),
		b.CheckOut.Format(time.DateOnly),
		b.GuestName,
		b.Country,
		string(b.Platform),
		strconv.FormatFloat(b.Revenue, 'f', 2, 64),
		strconv.Itoa(occurrence),
	}
	return ID(uuid.NewSHA1(idNamespace, []byte(strings.Join(parts, "|"))).String())
}

// AssignIDs gives every booking its content-derived identity in place.
func AssignIDs(list []Booking) {
	seen := make(map[ID]int, len(list))
	for i := range list {
		base := DeriveID(list[i], 0)
		n := seen[base]
		seen[base] = n + 1
		if n == 0 {
			list[i].ID = base
			continue
		}
		list[i].ID = DeriveID(list[i], n)
	}
}

// Find returns the index of id in list.
func Find(list []Booking, id ID) (int, error) {
	for i := range list {
		if list[i].ID == id {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: %s", ErrBookingNotFound, id)
}
