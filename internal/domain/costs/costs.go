package costs

import (
	"strings"

	"lynx/internal/domain/shared/money"
)

// Canonical column names of the Monthly_Costs sheet.
const (
	ColumnYear  = "Year"
	ColumnMonth = "Month"
	ColumnTotal = "Total Fixed Costs (€)"
)

// converted lists the line items kept in denars and mirrored in euros.
var converted = []struct{ MKD, EUR string }{
	{"Electricity (den)", "Electricity (€)"},
	{"Water (den)", "Water (€)"},
	{"Property Management Fee (den)", "Property Management Fee (€)"},
}

type Currency string

const (
	EUR Currency = "EUR"
	MKD Currency = "MKD"
)

// LineItem is one named amount of a month's fixed costs.
type LineItem struct {
	Column   string   `json:"column"`
	Currency Currency `json:"currency"`
	Amount   float64  `json:"amount"`
}

// MonthlyFixedCost is one calendar month of whole-property costs.
type MonthlyFixedCost struct {
	Year    int  `json:"year"`
	YearOK  bool `json:"year_ok"`
	Month   int  `json:"month"`
	MonthOK bool `json:"month_ok"`

	Items []LineItem `json:"items"`
	Total float64    `json:"total"`

	// Text holds non-amount cells (month names, notes) by column.
	Text map[string]string `json:"text,omitempty"`
}

// Sheet is the normalized Monthly_Costs table.
type Sheet struct {
	Columns []string
	// MonthColumn is empty when the sheet has no recognizable month column.
	MonthColumn string
	Rows        []MonthlyFixedCost
}

// ClassifyColumn tells whether a header carries an EUR amount, an MKD amount or text.
func ClassifyColumn(name string) (Currency, bool) {
	switch {
	case name == ColumnTotal:
		return "", false
	case strings.Contains(name, "€"):
		return EUR, true
	case strings.Contains(strings.ToLower(name), "(den)"):
		return MKD, true
	default:
		return "", false
	}
}

// FindMonthColumn picks "Month" or else the first header mentioning a month that is
// not a month name.
func FindMonthColumn(columns []string) string {
	for _, c := range columns {
		if c == ColumnMonth {
			return c
		}
	}
	for _, c := range columns {
		lc := strings.ToLower(c)
		if strings.Contains(lc, "month") && !strings.Contains(lc, "name") {
			return c
		}
	}
	return ""
}

// Amount returns the item stored under column.
func (r MonthlyFixedCost) Amount(column string) (float64, bool) {
	for _, it := range r.Items {
		if it.Column == column {
			return it.Amount, true
		}
	}
	return 0, false
}

func (r *MonthlyFixedCost) set(column string, amount float64) {
	for i := range r.Items {
		if r.Items[i].Column == column {
			r.Items[i].Amount = amount
			return
		}
	}
}

// Recompute rederives EUR mirrors of denar items and the row total.
func (r *MonthlyFixedCost) Recompute(rate money.Rate) {
	for _, pair := range converted {
		mkd, okMKD := r.Amount(pair.MKD)
		_, okEUR := r.Amount(pair.EUR)
		if okMKD && okEUR {
			r.set(pair.EUR, rate.ToEUR(mkd))
		}
	}
	total := 0.0
	for _, it := range r.Items {
		if it.Currency == EUR {
			total += it.Amount
		}
	}
	r.Total = total
}

// Has reports whether the sheet carries column.
func (s Sheet) Has(column string) bool {
	return hasColumn(s.Columns, column)
}

func hasColumn(columns []string, column string) bool {
	for _, c := range columns {
		if c == column {
			return true
		}
	}
	return false
}

// Recompute applies row recomputation to every month of the sheet.
func (s *Sheet) Recompute(rate money.Rate) {
	for i := range s.Rows {
		s.Rows[i].Recompute(rate)
	}
}

// Total sums the fixed-cost totals of rows.
func Total(rows []MonthlyFixedCost) float64 {
	sum := 0.0
	for _, r := range rows {
		sum += r.Total
	}
	return sum
}

// Clone deep-copies the sheet.
func (s Sheet) Clone() Sheet {
	out := Sheet{Columns: append([]string(nil), s.Columns...), MonthColumn: s.MonthColumn}
	out.Rows = make([]MonthlyFixedCost, len(s.Rows))
	for i, r := range s.Rows {
		cp := r
		cp.Items = append([]LineItem(nil), r.Items...)
		if r.Text != nil {
			cp.Text = make(map[string]string, len(r.Text))
			for k, v := range r.Text {
				cp.Text[k] = v
			}
		}
		out.Rows[i] = cp
	}
	return out
}
