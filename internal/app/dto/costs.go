package dto

import (
	"lynx/internal/domain/costs"
)

// MonthlyCostRow is one month of fixed costs keyed by sheet column.
type MonthlyCostRow struct {
	Year    *int               `json:"year"`
	Month   *int               `json:"month"`
	Amounts map[string]float64 `json:"amounts"`
	Text    map[string]string  `json:"text,omitempty"`
	Total   float64            `json:"total"`
}

type MonthlyCosts struct {
	Columns     []string         `json:"columns"`
	MonthColumn string           `json:"month_column,omitempty"`
	Rows        []MonthlyCostRow `json:"rows"`
	Warnings    []string         `json:"warnings,omitempty"`
}

func MonthlyCostsFromSheet(s costs.Sheet) MonthlyCosts {
	out := MonthlyCosts{Columns: s.Columns, MonthColumn: s.MonthColumn, Rows: make([]MonthlyCostRow, len(s.Rows))}
	for i, r := range s.Rows {
		row := MonthlyCostRow{Amounts: make(map[string]float64, len(r.Items)), Text: r.Text, Total: r.Total}
		if r.YearOK {
			y := r.Year
			row.Year = &y
		}
		if r.MonthOK {
			m := r.Month
			row.Month = &m
		}
		for _, it := range r.Items {
			row.Amounts[it.Column] = it.Amount
		}
		out.Rows[i] = row
	}
	return out
}

// ToSheet rebuilds the sheet with columns, which fall back to current when the
// request did not send any. Amount columns missing from a row read as 0.
func (m MonthlyCosts) ToSheet(current []string) costs.Sheet {
	columns := m.Columns
	if len(columns) == 0 {
		columns = current
	}
	sheet := costs.Sheet{Columns: append([]string(nil), columns...), MonthColumn: costs.FindMonthColumn(columns)}
	for _, r := range m.Rows {
		row := costs.MonthlyFixedCost{}
		if r.Year != nil {
			row.Year, row.YearOK = *r.Year, true
		}
		if r.Month != nil {
			row.Month, row.MonthOK = *r.Month, true
		}
		for _, col := range columns {
			if col == costs.ColumnYear || col == sheet.MonthColumn || col == costs.ColumnTotal {
				continue
			}
			if cur, ok := costs.ClassifyColumn(col); ok {
				row.Items = append(row.Items, costs.LineItem{Column: col, Currency: cur, Amount: r.Amounts[col]})
				continue
			}
			if v, ok := r.Text[col]; ok {
				if row.Text == nil {
					row.Text = make(map[string]string)
				}
				row.Text[col] = v
			}
		}
		sheet.Rows = append(sheet.Rows, row)
	}
	return sheet
}

type Consumables struct {
	Columns  []string               `json:"columns"`
	Items    []costs.ConsumableItem `json:"items"`
	Warnings []string               `json:"warnings,omitempty"`
}

// ConsumablesTotal is the current restocking cost of one stay.
type ConsumablesTotal struct {
	MKD float64 `json:"mkd"`
	EUR float64 `json:"eur"`
}
