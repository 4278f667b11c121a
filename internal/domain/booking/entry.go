package booking

import (
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"lynx/internal/domain/shared/daterange"
	"lynx/internal/domain/shared/money"
)

var ErrInvalidEntry = errors.New("booking: invalid entry")

// Entry is a booking as typed by the operator, before commission and derived fields.
type Entry struct {
	CheckIn        time.Time `validate:"required"`
	CheckOut       time.Time `validate:"required,gtfield=CheckIn"`
	GuestName      string    `validate:"notblank"`
	Country        string    `validate:"notblank"`
	Platform       string    `validate:"platform"`
	Adults         int       `validate:"gte=0"`
	Children       int       `validate:"gte=0"`
	SofaBed        string    `validate:"omitempty,yesno"`
	BabyCrib       string    `validate:"omitempty,yesno"`
	Parking        string    `validate:"omitempty,yesno"`
	Revenue        float64   `validate:"gt=0"`
	Transportation float64   `validate:"gte=0"`
	Laundry        float64   `validate:"gte=0"`
	Consumables    float64   `validate:"gte=0"`
	BankFees       float64   `validate:"gte=0"`
	Notes          string
}

// EntryPolicy carries the pricing constants applied when an entry is accepted.
type EntryPolicy struct {
	BookingCommission float64
}

func DefaultEntryPolicy() EntryPolicy {
	return EntryPolicy{BookingCommission: money.DefaultBookingCommission}
}

// ValidationError lists every rule an entry broke.
type ValidationError struct {
	Missing  []string
	Problems []string
}

func (e *ValidationError) Error() string {
	var parts []string
	if len(e.Missing) > 0 {
		parts = append(parts, "The following required fields are missing: "+strings.Join(e.Missing, ", "))
	}
	parts = append(parts, e.Problems...)
	return "booking: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error { return ErrInvalidEntry }

var entryLabels = map[string]string{
	"CheckIn":        "Check-in date",
	"CheckOut":       "Check-out date",
	"GuestName":      "Guest Name",
	"Country":        "Country",
	"Platform":       "Platform",
	"Adults":         "Adults",
	"Children":       "Children",
	"SofaBed":        "Sofa Bed",
	"BabyCrib":       "Baby Crib",
	"Parking":        "Parking",
	"Revenue":        "Revenue for stay (€)",
	"Transportation": "Transportation Cost (€)",
	"Laundry":        "Laundry Cost (€)",
	"Consumables":    "Consumable Cost (€)",
	"BankFees":       "Bank Fees (€)",
}

var entryValidator = newEntryValidator()

func newEntryValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	_ = v.RegisterValidation("platform", func(fl validator.FieldLevel) bool {
		_, ok := NormalizePlatform(fl.Field().String())
		return ok
	})
	_ = v.RegisterValidation("yesno", func(fl validator.FieldLevel) bool {
		s := strings.ToLower(strings.TrimSpace(fl.Field().String()))
		return s == "yes" || s == "no"
	})
	return v
}

// Validate checks every rule in one pass and reports all violations together.
func (e Entry) Validate() error {
	err := entryValidator.Struct(e)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	out := &ValidationError{}
	for _, fe := range fieldErrs {
		label := entryLabels[fe.StructField()]
		switch fe.Tag() {
		case "required", "notblank":
			out.Missing = append(out.Missing, label)
		case "gt":
			if fe.StructField() == "Revenue" {
				out.Missing = append(out.Missing, label)
				continue
			}
			out.Problems = append(out.Problems, label+" must be greater than "+fe.Param()+".")
		case "gtfield":
			out.Problems = append(out.Problems, "Check-out date must be after check-in date.")
		case "gte":
			out.Problems = append(out.Problems, label+" must not be negative.")
		case "platform":
			out.Problems = append(out.Problems, "Platform must be Airbnb or Booking.com.")
		case "yesno":
			out.Problems = append(out.Problems, label+" must be Yes or No.")
		default:
			out.Problems = append(out.Problems, label+" is invalid.")
		}
	}
	return out
}

// ToBooking validates the entry and derives the stored row. Booking.com revenue is
// recorded net of the platform commission; Airbnb revenue is kept as entered.
func (e Entry) ToBooking(policy EntryPolicy) (Booking, error) {
	if err := e.Validate(); err != nil {
		return Booking{}, err
	}
	stay, err := daterange.New(e.CheckIn, e.CheckOut)
	if err != nil {
		return Booking{}, &ValidationError{Problems: []string{"Check-out date must be after check-in date."}}
	}
	platform, _ := NormalizePlatform(e.Platform)
	revenue := money.Round2(e.Revenue)
	if platform == PlatformBookingCom {
		revenue = money.NetOfCommission(revenue, policy.BookingCommission)
	}
	b := Booking{
		CheckIn:        stay.CheckIn,
		CheckOut:       stay.CheckOut,
		GuestName:      strings.TrimSpace(e.GuestName),
		Country:        strings.TrimSpace(e.Country),
		Platform:       platform,
		RawPlatform:    platform.SheetLabel(),
		Adults:         e.Adults,
		Children:       e.Children,
		TotalGuests:    e.Adults + e.Children,
		SofaBed:        Flag(e.SofaBed),
		BabyCrib:       Flag(e.BabyCrib),
		Parking:        Flag(e.Parking),
		Nights:         stay.Nights(),
		Month:          int(stay.CheckIn.Month()),
		Year:           stay.CheckIn.Year(),
		Revenue:        revenue,
		Transportation: money.Round2(e.Transportation),
		Laundry:        money.Round2(e.Laundry),
		Consumables:    money.Round2(e.Consumables),
		BankFees:       money.Round2(e.BankFees),
		Notes:          e.Notes,
	}
	b.RecomputeMoney()
	return b, nil
}
