package metrics

import (
	"fmt"
	"strings"

	"lynx/internal/domain/booking"
)

type ValueKind string

const (
	KindScalar     ValueKind = "scalar"
	KindComparison ValueKind = "comparison"
	KindText       ValueKind = "text"
	KindRanking    ValueKind = "ranking"
)

// PlatformValue is one side of a two-platform comparison.
type PlatformValue struct {
	Platform booking.Platform `json:"platform"`
	Value    float64          `json:"value"`
}

// RankEntry is one row of a country breakdown.
type RankEntry struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// Value is a tagged metric value. Renderers switch on Kind; Display gives the
// single string form for cards that cannot.
type Value struct {
	Kind    ValueKind
	Number  float64
	Integer bool
	Pairs   []PlatformValue
	Text    string
	Ranking []RankEntry

	// layout formats one comparison side or ranking row for Display.
	layout string
}

func Scalar(v float64) Value { return Value{Kind: KindScalar, Number: v} }

func Count(n int) Value { return Value{Kind: KindScalar, Number: float64(n), Integer: true} }

func Text(s string) Value { return Value{Kind: KindText, Text: s} }

// Comparison builds an Airbnb vs Booking.com value; layout renders one number (e.g. "€%.2f").
func Comparison(layout string, airbnb, bookingCom float64) Value {
	return Value{
		Kind: KindComparison,
		Pairs: []PlatformValue{
			{Platform: booking.PlatformAirbnb, Value: airbnb},
			{Platform: booking.PlatformBookingCom, Value: bookingCom},
		},
		layout: layout,
	}
}

// Ranking builds a name/number list; layout renders one row from name and value.
func Ranking(layout string, rows []RankEntry) Value {
	return Value{Kind: KindRanking, Ranking: rows, layout: layout}
}

// Display is the legacy card string: "Airbnb: 3.20, Booking.com: 4.10",
// "Germany (4), Serbia (2)" or the plain number.
func (v Value) Display() string {
	switch v.Kind {
	case KindText:
		return v.Text
	case KindComparison:
		parts := make([]string, len(v.Pairs))
		for i, p := range v.Pairs {
			parts[i] = string(p.Platform) + ": " + fmt.Sprintf(v.layout, p.Value)
		}
		return strings.Join(parts, ", ")
	case KindRanking:
		parts := make([]string, len(v.Ranking))
		for i, r := range v.Ranking {
			parts[i] = fmt.Sprintf(v.layout, r.Name, r.Value)
		}
		return strings.Join(parts, ", ")
	default:
		if v.Integer {
			return fmt.Sprintf("%d", int64(v.Number))
		}
		return fmt.Sprintf("%.2f", v.Number)
	}
}

// Pair returns the comparison value for p.
func (v Value) Pair(p booking.Platform) (float64, bool) {
	for _, pv := range v.Pairs {
		if pv.Platform == p {
			return pv.Value, true
		}
	}
	return 0, false
}
