package dto

import (
	"lynx/internal/domain/metrics"
)

// Metric is the rendering contract of one KPI. Value is a number for scalars and
// the display string otherwise; Pairs and Ranking carry the structured form.
type Metric struct {
	Key         string                  `json:"key"`
	Label       string                  `json:"label"`
	Value       any                     `json:"value"`
	Display     string                  `json:"display"`
	UnitPrefix  string                  `json:"unit_prefix"`
	Explanation string                  `json:"explanation"`
	Kind        metrics.ValueKind       `json:"kind"`
	Pairs       []metrics.PlatformValue `json:"pairs,omitempty"`
	Ranking     []metrics.RankEntry     `json:"ranking,omitempty"`
}

type MetricSection struct {
	Name    string   `json:"name"`
	Metrics []Metric `json:"metrics"`
}

type MetricSet struct {
	Filter          string          `json:"filter"`
	View            string          `json:"view"`
	NightsAvailable int             `json:"nights_available"`
	SkippedCostRows int             `json:"skipped_cost_rows"`
	Sections        []MetricSection `json:"sections"`
	Warnings        []string        `json:"warnings,omitempty"`
}

func MetricFromEntry(e metrics.Entry) Metric {
	m := Metric{
		Key:         e.Key,
		Label:       e.Label,
		Display:     e.Value.Display(),
		UnitPrefix:  e.Prefix,
		Explanation: e.Explanation,
		Kind:        e.Value.Kind,
		Pairs:       e.Value.Pairs,
		Ranking:     e.Value.Ranking,
	}
	if e.Value.Kind == metrics.KindScalar {
		m.Value = e.Value.Number
	} else {
		m.Value = m.Display
	}
	return m
}

// Sections groups set in catalog section order, leaving out empty sections.
func Sections(set *metrics.Set) []MetricSection {
	out := make([]MetricSection, 0, len(metrics.Sections))
	for _, name := range metrics.Sections {
		entries := set.Section(name)
		if len(entries) == 0 {
			continue
		}
		sec := MetricSection{Name: name, Metrics: make([]Metric, len(entries))}
		for i, e := range entries {
			sec.Metrics[i] = MetricFromEntry(e)
		}
		out = append(out, sec)
	}
	return out
}

type CatalogSection struct {
	Name    string               `json:"name"`
	Metrics []metrics.Definition `json:"metrics"`
}

func Catalog() []CatalogSection {
	idx := make(map[string]int, len(metrics.Sections))
	out := make([]CatalogSection, len(metrics.Sections))
	for i, name := range metrics.Sections {
		idx[name] = i
		out[i] = CatalogSection{Name: name}
	}
	for _, d := range metrics.Catalog {
		i := idx[d.Section]
		out[i].Metrics = append(out[i].Metrics, d)
	}
	return out
}
