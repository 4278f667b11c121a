package money

import (
	"errors"

	"github.com/shopspring/decimal"
)

// DefaultRate is the fixed number of Macedonian denars per euro.
const DefaultRate Rate = 61.51

// DefaultBookingCommission is the share Booking.com keeps from every stay.
const DefaultBookingCommission = 0.12

var ErrInvalidRate = errors.New("money: exchange rate must be positive")

// Rate converts MKD amounts into EUR.
type Rate float64

// NewRate validates the provided MKD-per-EUR figure.
func NewRate(mkdPerEUR float64) (Rate, error) {
	if mkdPerEUR <= 0 {
		return 0, ErrInvalidRate
	}
	return Rate(mkdPerEUR), nil
}

// ToEUR converts a denar amount at the fixed rate. A zero rate falls back to DefaultRate.
func (r Rate) ToEUR(mkd float64) float64 {
	if r <= 0 {
		r = DefaultRate
	}
	return mkd / float64(r)
}

// Round2 rounds half away from zero to cents.
func Round2(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}

// Sum2 adds the values at full decimal precision and rounds the result to cents.
func Sum2(values ...float64) float64 {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(decimal.NewFromFloat(v))
	}
	f, _ := total.Round(2).Float64()
	return f
}

// Sub2 returns a-b rounded to cents.
func Sub2(a, b float64) float64 {
	f, _ := decimal.NewFromFloat(a).Sub(decimal.NewFromFloat(b)).Round(2).Float64()
	return f
}

// NetOfCommission keeps (1 - commission) of gross, rounded to cents.
func NetOfCommission(gross, commission float64) float64 {
	share := decimal.NewFromInt(1).Sub(decimal.NewFromFloat(commission))
	f, _ := decimal.NewFromFloat(gross).Mul(share).Round(2).Float64()
	return f
}
