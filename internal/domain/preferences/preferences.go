package preferences

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"lynx/internal/domain/reports"
)

var ErrInvalidGraph = errors.New("preferences: invalid graph")

// Layout is a chart style a custom graph may use.
type Layout string

const (
	LayoutLine               Layout = "Line"
	LayoutBar                Layout = "Bar"
	LayoutStackedBar         Layout = "Stacked bar"
	LayoutArea               Layout = "Area"
	LayoutPlatformComparison Layout = "Platform comparison"
	LayoutPie                Layout = "Pie"
	LayoutDonut              Layout = "Donut"
	LayoutHorizontalBar      Layout = "Horizontal bar"
	LayoutSmoothArea         Layout = "Smooth area"
	LayoutScatter            Layout = "Scatter"
	LayoutMultiSeriesLine    Layout = "Multi-series line"
)

var Layouts = []Layout{
	LayoutLine, LayoutBar, LayoutStackedBar, LayoutArea, LayoutPlatformComparison,
	LayoutPie, LayoutDonut, LayoutHorizontalBar, LayoutSmoothArea, LayoutScatter, LayoutMultiSeriesLine,
}

func (l Layout) Valid() bool {
	for _, v := range Layouts {
		if v == l {
			return true
		}
	}
	return false
}

// Graph is a user-defined chart. MetricKey may name a monthly series or a
// catalog metric, including ones added later, so it is not checked.
type Graph struct {
	Name      string `json:"name" bson:"name"`
	MetricKey string `json:"metric_key" bson:"metric_key"`
	Layout    Layout `json:"layout" bson:"layout"`
}

func (g Graph) Validate() error {
	switch {
	case strings.TrimSpace(g.Name) == "":
		return fmt.Errorf("%w: name is required", ErrInvalidGraph)
	case g.MetricKey == "":
		return fmt.Errorf("%w: metric_key is required", ErrInvalidGraph)
	case !g.Layout.Valid():
		return fmt.Errorf("%w: unknown layout %q", ErrInvalidGraph, g.Layout)
	}
	return nil
}

// Store persists side state. Loads never fail on corrupt content; they drop it
// and report a warning instead.
type Store interface {
	Favorites(ctx context.Context) ([]string, []string, error)
	SaveFavorites(ctx context.Context, keys []string) error
	Graphs(ctx context.Context) ([]Graph, []string, error)
	SaveGraphs(ctx context.Context, graphs []Graph) error
	Templates(ctx context.Context) (map[string]reports.Template, []string, error)
	SaveTemplates(ctx context.Context, templates map[string]reports.Template) error
}

// DecodeFavorites reads a JSON list of metric keys, dropping non-strings.
func DecodeFavorites(data []byte) ([]string, []string) {
	if len(data) == 0 {
		return []string{}, nil
	}
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return []string{}, []string{fmt.Sprintf("Could not load custom metrics: %v", err)}
	}
	out := make([]string, 0, len(raw))
	var warnings []string
	for i, r := range raw {
		var key string
		if err := json.Unmarshal(r, &key); err != nil {
			warnings = append(warnings, fmt.Sprintf("custom metric #%d dropped: not a string", i+1))
			continue
		}
		out = append(out, key)
	}
	return out, warnings
}

// CleanFavorites trims and de-duplicates keys, keeping first occurrences.
func CleanFavorites(keys []string) []string {
	seen := make(map[string]bool, len(keys))
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		k = strings.TrimSpace(k)
		if k == "" || seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, k)
	}
	return out
}

// DecodeGraphs reads a JSON list of graphs, dropping entries that lack a field
// or use an unknown layout.
func DecodeGraphs(data []byte) ([]Graph, []string) {
	if len(data) == 0 {
		return []Graph{}, nil
	}
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return []Graph{}, []string{fmt.Sprintf("Could not load custom graphs: %v", err)}
	}
	out := make([]Graph, 0, len(raw))
	var warnings []string
	for i, r := range raw {
		var g Graph
		if err := json.Unmarshal(r, &g); err != nil {
			warnings = append(warnings, fmt.Sprintf("custom graph #%d dropped: %v", i+1, err))
			continue
		}
		if err := g.Validate(); err != nil {
			warnings = append(warnings, fmt.Sprintf("custom graph #%d dropped: %v", i+1, err))
			continue
		}
		out = append(out, g)
	}
	return out, warnings
}

// CleanGraphs keeps only the graphs that validate.
func CleanGraphs(graphs []Graph) ([]Graph, error) {
	out := make([]Graph, 0, len(graphs))
	var errs []error
	for i, g := range graphs {
		if err := g.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("graph #%d: %w", i+1, err))
			continue
		}
		out = append(out, g)
	}
	return out, errors.Join(errs...)
}

// DecodeTemplates reads the user template map, dropping entries without a
// name or metrics.
func DecodeTemplates(data []byte) (map[string]reports.Template, []string) {
	out := make(map[string]reports.Template)
	if len(data) == 0 {
		return out, nil
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return out, []string{fmt.Sprintf("Could not load report templates: %v", err)}
	}
	names := make([]string, 0, len(raw))
	for name := range raw {
		names = append(names, name)
	}
	sort.Strings(names)

	var warnings []string
	for _, name := range names {
		var t reports.Template
		if err := json.Unmarshal(raw[name], &t); err != nil {
			warnings = append(warnings, fmt.Sprintf("report template %q dropped: %v", name, err))
			continue
		}
		if err := t.Validate(); err != nil {
			warnings = append(warnings, fmt.Sprintf("report template %q dropped: %v", name, err))
			continue
		}
		t.BuiltIn = false
		out[name] = t
	}
	return out, warnings
}

// PutTemplate adds or replaces a user template; built-in names are refused.
func PutTemplate(templates map[string]reports.Template, t reports.Template) (map[string]reports.Template, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	if reports.IsBuiltIn(t.Name) {
		return nil, fmt.Errorf("%w: %q", reports.ErrBuiltInProtected, t.Name)
	}
	out := make(map[string]reports.Template, len(templates)+1)
	for k, v := range templates {
		out[k] = v
	}
	t.BuiltIn = false
	out[t.Name] = t
	return out, nil
}

// DeleteTemplate removes a user template; built-ins cannot be deleted.
func DeleteTemplate(templates map[string]reports.Template, name string) (map[string]reports.Template, error) {
	if reports.IsBuiltIn(name) {
		return nil, fmt.Errorf("%w: %q", reports.ErrBuiltInProtected, name)
	}
	if _, ok := templates[name]; !ok {
		return nil, fmt.Errorf("%w: %q", reports.ErrTemplateNotFound, name)
	}
	out := make(map[string]reports.Template, len(templates))
	for k, v := range templates {
		if k != name {
			out[k] = v
		}
	}
	return out, nil
}
