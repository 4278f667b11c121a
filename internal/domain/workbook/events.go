package workbook

import "time"

// Aggregate is the aggregate id of events about the workbook file.
const Aggregate = "workbook"

// Saved is raised once per committed write, after the sheet-level events.
type Saved struct {
	Sheets   []string  `json:"sheets"`
	Bookings int       `json:"bookings"`
	At       time.Time `json:"at"`
}

func (e Saved) EventName() string     { return "workbook.saved" }
func (e Saved) AggregateID() string   { return Aggregate }
func (e Saved) OccurredAt() time.Time { return e.At }

type MonthlyCostsReplaced struct {
	Rows int       `json:"rows"`
	At   time.Time `json:"at"`
}

func (e MonthlyCostsReplaced) EventName() string     { return "workbook.monthly_costs_replaced" }
func (e MonthlyCostsReplaced) AggregateID() string   { return Aggregate }
func (e MonthlyCostsReplaced) OccurredAt() time.Time { return e.At }

type ConsumablesReplaced struct {
	Items int       `json:"items"`
	At    time.Time `json:"at"`
}

func (e ConsumablesReplaced) EventName() string     { return "workbook.consumables_replaced" }
func (e ConsumablesReplaced) AggregateID() string   { return Aggregate }
func (e ConsumablesReplaced) OccurredAt() time.Time { return e.At }
