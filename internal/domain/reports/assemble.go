package reports

import (
	"fmt"
	"time"

	"lynx/internal/domain/booking"
	"lynx/internal/domain/metrics"
	"lynx/internal/domain/period"
	"lynx/internal/domain/series"
)

// SeriesSource yields a monthly series for the report's slice.
type SeriesSource func(kind series.Kind) (series.Series, error)

// Metadata travels with a report to the renderer.
type Metadata struct {
	Template        string        `json:"template"`
	Generated       time.Time     `json:"generated"`
	Period          period.Spec   `json:"-"`
	View            metrics.View  `json:"view"`
	Filter          string        `json:"filter"`
	SkippedCostRows int           `json:"skipped_cost_rows"`
	Warnings        []string      `json:"warnings,omitempty"`
	Notes           []string      `json:"notes,omitempty"`
	Elapsed         time.Duration `json:"-"`
}

// Card is one rendered metric of a report.
type Card struct {
	Key         string        `json:"key"`
	Label       string        `json:"label"`
	Prefix      string        `json:"unit_prefix"`
	Display     string        `json:"value"`
	Explanation string        `json:"explanation"`
	Value       metrics.Value `json:"-"`
}

// Chart is table-shaped chart data; Rows[i] lines up with Columns.
type Chart struct {
	Kind    ChartKind   `json:"kind"`
	Title   string      `json:"title"`
	Caption string      `json:"caption"`
	Columns []string    `json:"columns"`
	Labels  []string    `json:"labels"`
	Rows    [][]float64 `json:"rows"`
}

type Report struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Metrics     []Card   `json:"metrics"`
	Charts      []Chart  `json:"charts"`
	Metadata    Metadata `json:"metadata"`
}

// Assemble resolves a template against one engine pass. Metric keys the pass did
// not produce are skipped; unknown chart kinds are noted in the metadata.
func Assemble(t Template, set *metrics.Set, src SeriesSource, meta Metadata) (Report, error) {
	meta.Template = t.Name
	if meta.Filter == "" {
		meta.Filter = FilterLine(meta.Period, meta.View)
	}
	r := Report{Name: t.Name, Description: t.Description, Metrics: []Card{}, Charts: []Chart{}}

	for _, e := range set.Select(t.Metrics) {
		r.Metrics = append(r.Metrics, Card{
			Key:         e.Key,
			Label:       e.Label,
			Prefix:      e.Prefix,
			Display:     FormatValue(e.Value),
			Explanation: e.Explanation,
			Value:       e.Value,
		})
	}

	for _, name := range t.Charts {
		chart, ok, err := buildChart(ChartKind(name), set, src, meta.View)
		if err != nil {
			return Report{}, fmt.Errorf("chart %s: %w", name, err)
		}
		if !ok {
			continue
		}
		r.Charts = append(r.Charts, chart)
	}
	for _, name := range t.Charts {
		if !knownChart(ChartKind(name)) {
			meta.Notes = append(meta.Notes, fmt.Sprintf("unknown chart %q skipped", name))
		}
	}
	if has(t.Charts, ChartCostBreakdownPie) && !hasChart(r.Charts, ChartCostBreakdownPie) {
		meta.Notes = append(meta.Notes, "No cost data available for the selected period.")
	}

	r.Metadata = meta
	return r, nil
}

func knownChart(k ChartKind) bool {
	for _, c := range ChartKinds {
		if c == k {
			return true
		}
	}
	return false
}

func has(list []string, k ChartKind) bool {
	for _, s := range list {
		if ChartKind(s) == k {
			return true
		}
	}
	return false
}

func hasChart(list []Chart, k ChartKind) bool {
	for _, c := range list {
		if c.Kind == k {
			return true
		}
	}
	return false
}

func monthLabels(months []time.Time) []string {
	out := make([]string, len(months))
	for i, m := range months {
		out[i] = m.Format("2006-01")
	}
	return out
}

func buildChart(kind ChartKind, set *metrics.Set, src SeriesSource, view metrics.View) (Chart, bool, error) {
	switch kind {
	case ChartMonthlyRevenueLine:
		s, err := src(series.RevenueByMonth)
		if err != nil {
			return Chart{}, false, err
		}
		c := s.ForView(view)
		return Chart{
			Kind:    kind,
			Title:   c.Label,
			Caption: "Monthly revenue trend",
			Columns: c.Columns,
			Labels:  monthLabels(c.Months),
			Rows:    c.Values,
		}, true, nil

	case ChartPlatformComparisonBar, ChartPlatformComparisonTable:
		s, err := src(series.RevenueByMonth)
		if err != nil {
			return Chart{}, false, err
		}
		c := Chart{
			Kind:    kind,
			Title:   "Platform revenue comparison",
			Caption: "Platform revenue comparison",
			Columns: []string{string(booking.PlatformAirbnb), string(booking.PlatformBookingCom)},
			Rows:    [][]float64{},
		}
		if kind == ChartPlatformComparisonTable {
			c.Caption = "Platform comparison table"
			c.Columns = append(c.Columns, "Difference")
		}
		for _, row := range s.Rows {
			c.Labels = append(c.Labels, row.Month.Format("2006-01"))
			values := []float64{row.Airbnb, row.BookingCom}
			if kind == ChartPlatformComparisonTable {
				values = append(values, row.Airbnb-row.BookingCom)
			}
			c.Rows = append(c.Rows, values)
		}
		return c, true, nil

	case ChartCostBreakdownPie:
		return costBreakdown(set)

	case ChartRevenueHeatmap:
		s, err := src(series.RevenueByMonth)
		if err != nil {
			return Chart{}, false, err
		}
		return heatmap(s, view), true, nil
	}
	return Chart{}, false, nil
}

// costBreakdown rebuilds category totals from per-stay averages.
func costBreakdown(set *metrics.Set) (Chart, bool, error) {
	res, _ := set.Number(metrics.KeyReservations)
	if res <= 0 {
		return Chart{}, false, nil
	}
	parts := []struct {
		name string
		key  string
	}{
		{"Transportation", metrics.KeyTransportPerStay},
		{"Laundry", metrics.KeyLaundryPerStay},
		{"Consumables", metrics.KeyConsumablePerStay},
		{"Bank Fees", metrics.KeyBankFeesPerStay},
	}
	c := Chart{
		Kind:    ChartCostBreakdownPie,
		Title:   "Cost breakdown",
		Caption: "Cost breakdown by type",
		Columns: []string{"Amount"},
	}
	var total float64
	for _, p := range parts {
		avg, _ := set.Number(p.key)
		amount := avg * res
		total += amount
		c.Labels = append(c.Labels, p.name)
		c.Rows = append(c.Rows, []float64{amount})
	}
	if total <= 0 {
		return Chart{}, false, nil
	}
	return c, true, nil
}

// heatmap lays revenue out as one row per year and one column per calendar month.
func heatmap(s series.Series, view metrics.View) Chart {
	c := Chart{
		Kind:    ChartRevenueHeatmap,
		Title:   "Revenue heatmap",
		Caption: "Revenue by year and month",
	}
	for m := time.January; m <= time.December; m++ {
		c.Columns = append(c.Columns, m.String()[:3])
	}
	platform, single := view.Platform()
	rowOf := make(map[int]int)
	for _, r := range s.Rows {
		y := r.Month.Year()
		i, ok := rowOf[y]
		if !ok {
			i = len(c.Rows)
			rowOf[y] = i
			c.Labels = append(c.Labels, fmt.Sprint(y))
			c.Rows = append(c.Rows, make([]float64, 12))
		}
		v := r.Airbnb + r.BookingCom
		if single {
			v = r.Value(platform)
		}
		c.Rows[i][int(r.Month.Month())-1] += v
	}
	if c.Rows == nil {
		c.Rows = [][]float64{}
	}
	return c
}
