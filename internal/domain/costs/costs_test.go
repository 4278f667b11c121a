package costs

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"lynx/internal/domain/shared/money"
)

func TestRecomputeConvertsDenarsAndTotals(t *testing.T) {
	row := MonthlyFixedCost{
		Year: 2024, YearOK: true, Month: 5, MonthOK: true,
		Items: []LineItem{
			{Column: "Electricity (den)", Currency: MKD, Amount: 6151},
			{Column: "Electricity (€)", Currency: EUR, Amount: 999},
			{Column: "Water (den)", Currency: MKD, Amount: 615.1},
			{Column: "Water (€)", Currency: EUR, Amount: 0},
			{Column: "Internet (€)", Currency: EUR, Amount: 25},
		},
		Total: 12345,
	}
	row.Recompute(money.DefaultRate)

	eur, _ := row.Amount("Electricity (€)")
	assert.InDelta(t, 100.0, eur, 1e-9)
	water, _ := row.Amount("Water (€)")
	assert.InDelta(t, 10.0, water, 1e-9)
	assert.InDelta(t, 135.0, row.Total, 1e-9)
}

func TestRecomputeLeavesUnpairedEuroColumns(t *testing.T) {
	row := MonthlyFixedCost{Items: []LineItem{
		{Column: "Property Management Fee (€)", Currency: EUR, Amount: 40},
	}}
	row.Recompute(money.DefaultRate)
	assert.Equal(t, 40.0, row.Total)
}

func TestClassifyAndFindMonthColumn(t *testing.T) {
	cur, ok := ClassifyColumn("Water (€)")
	assert.True(t, ok)
	assert.Equal(t, EUR, cur)
	cur, ok = ClassifyColumn("Water (den)")
	assert.True(t, ok)
	assert.Equal(t, MKD, cur)
	_, ok = ClassifyColumn(ColumnTotal)
	assert.False(t, ok)

	assert.Equal(t, "Month", FindMonthColumn([]string{"Year", "Month name", "Month"}))
	assert.Equal(t, "Month (number)", FindMonthColumn([]string{"Year", "Month name", "Month (number)"}))
	assert.Equal(t, "", FindMonthColumn([]string{"Year", "Month name"}))
}

func TestConsumablesCostPerStay(t *testing.T) {
	c := Consumables{
		Columns: []string{ColumnItem, ColumnUnitPrice, ColumnUnitsPerStay, ColumnLineTotal},
		Items: []ConsumableItem{
			{Item: "Soap", UnitPriceMKD: 50, UnitsPerStay: 2},
			{Item: "Coffee", UnitPriceMKD: 30.755, UnitsPerStay: 2},
		},
	}
	c.Recompute()
	assert.InDelta(t, 100.0, c.Items[0].TotalMKD, 1e-9)

	per := c.CostPerStay(money.DefaultRate)
	assert.InDelta(t, 161.51, per.MKD, 1e-9)
	assert.InDelta(t, 161.51/61.51, per.EUR, 1e-9)

	assert.Equal(t, PerStay{}, Consumables{}.CostPerStay(money.DefaultRate))
}

func TestConsumablesKeepStoredTotalsWithoutPriceColumn(t *testing.T) {
	c := Consumables{
		Columns: []string{ColumnItem, ColumnLineTotal},
		Items:   []ConsumableItem{{Item: "Towels", TotalMKD: 120}},
	}
	c.Recompute()
	assert.Equal(t, 120.0, c.Items[0].TotalMKD)
}
