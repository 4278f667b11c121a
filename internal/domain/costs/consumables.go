package costs

import "lynx/internal/domain/shared/money"

// Canonical column names of the consumables sheet.
const (
	ColumnItem         = "Item"
	ColumnUnitPrice    = "Unit Price (MKD)"
	ColumnUnitsPerStay = "Units per Stay"
	ColumnLineTotal    = "Total (MKD)"
)

// ConsumableItem is one supply restocked for every stay.
type ConsumableItem struct {
	Item         string            `json:"item"`
	UnitPriceMKD float64           `json:"unit_price_mkd"`
	UnitsPerStay float64           `json:"units_per_stay"`
	TotalMKD     float64           `json:"total_mkd"`
	Text         map[string]string `json:"text,omitempty"`
}

func (c *ConsumableItem) Recompute() {
	c.TotalMKD = c.UnitPriceMKD * c.UnitsPerStay
}

// Consumables is the normalized consumables sheet.
type Consumables struct {
	Columns []string
	Items   []ConsumableItem
}

func (c Consumables) Has(column string) bool {
	return hasColumn(c.Columns, column)
}

// Recompute rederives line totals; a sheet without price or units columns keeps its stored totals.
func (c *Consumables) Recompute() {
	if !c.Has(ColumnUnitPrice) || !c.Has(ColumnUnitsPerStay) {
		return
	}
	for i := range c.Items {
		c.Items[i].Recompute()
	}
}

// PerStay is the current consumable cost of one stay.
type PerStay struct {
	MKD float64 `json:"mkd"`
	EUR float64 `json:"eur"`
}

// CostPerStay sums line totals and converts them; EUR is 0 unless the MKD sum is positive.
func (c Consumables) CostPerStay(rate money.Rate) PerStay {
	total := 0.0
	for _, it := range c.Items {
		total += it.TotalMKD
	}
	out := PerStay{MKD: total}
	if total > 0 {
		out.EUR = rate.ToEUR(total)
	}
	return out
}

func (c Consumables) Clone() Consumables {
	out := Consumables{Columns: append([]string(nil), c.Columns...)}
	out.Items = make([]ConsumableItem, len(c.Items))
	for i, it := range c.Items {
		cp := it
		if it.Text != nil {
			cp.Text = make(map[string]string, len(it.Text))
			for k, v := range it.Text {
				cp.Text[k] = v
			}
		}
		out.Items[i] = cp
	}
	return out
}
