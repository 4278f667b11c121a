package reports

import (
	"github.com/dustin/go-humanize"

	"lynx/internal/domain/metrics"
	"lynx/internal/domain/period"
)

// FormatValue renders a metric for a card: integers and amounts get thousands
// separators, everything else uses the value's own display form.
func FormatValue(v metrics.Value) string {
	if v.Kind != metrics.KindScalar {
		return v.Display()
	}
	if v.Integer {
		return humanize.Comma(int64(v.Number))
	}
	return humanize.FormatFloat("#,###.##", v.Number)
}

// FilterLine is the "Period: March 2024 | Platform: Airbnb" header line.
func FilterLine(p period.Spec, view metrics.View) string {
	line := p.Describe()
	if view != "" && view != metrics.ViewOverall {
		if line != "" {
			line += " | "
		}
		line += "Platform: " + string(view)
	}
	if line == "" {
		return "All data"
	}
	return line
}
