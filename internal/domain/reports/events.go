package reports

import "time"

// Exported is raised when a rendered report was archived.
type Exported struct {
	Template string    `json:"template"`
	Key      string    `json:"key"`
	URL      string    `json:"url"`
	Filter   string    `json:"filter"`
	At       time.Time `json:"at"`
}

func (e Exported) EventName() string     { return "report.exported" }
func (e Exported) AggregateID() string   { return e.Template }
func (e Exported) OccurredAt() time.Time { return e.At }
