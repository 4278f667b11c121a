package dto

import "lynx/internal/domain/series"

// Series is a monthly chart; Values[i] lines up with Months[i] and has one
// number per column.
type Series struct {
	Kind    series.Kind `json:"kind"`
	Label   string      `json:"label"`
	Unit    string      `json:"unit"`
	Columns []string    `json:"columns"`
	Months  []string    `json:"months"`
	Values  [][]float64 `json:"values"`
}

func SeriesFromChart(c series.Chart) Series {
	out := Series{
		Kind:    c.Kind,
		Label:   c.Label,
		Unit:    c.Unit,
		Columns: c.Columns,
		Months:  make([]string, len(c.Months)),
		Values:  c.Values,
	}
	for i, m := range c.Months {
		out.Months[i] = m.Format("2006-01")
	}
	if out.Values == nil {
		out.Values = [][]float64{}
	}
	return out
}
