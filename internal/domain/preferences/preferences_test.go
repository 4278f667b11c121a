package preferences

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lynx/internal/domain/reports"
)

func TestDecodeFavoritesDropsNonStrings(t *testing.T) {
	keys, warnings := DecodeFavorites([]byte(`["Reservations", 42, "Occupancy (%)"]`))
	assert.Equal(t, []string{"Reservations", "Occupancy (%)"}, keys)
	assert.Len(t, warnings, 1)

	keys, warnings = DecodeFavorites([]byte(`{not json`))
	assert.Empty(t, keys)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "Could not load custom metrics")

	keys, warnings = DecodeFavorites(nil)
	assert.Empty(t, keys)
	assert.Empty(t, warnings)
}

func TestCleanFavorites(t *testing.T) {
	assert.Equal(t, []string{"A", "B"}, CleanFavorites([]string{" A", "B", "A", ""}))
}

func TestDecodeGraphs(t *testing.T) {
	data := []byte(`[
		{"name": "Revenue", "metric_key": "revenue_by_month", "layout": "Line"},
		{"name": "Broken", "metric_key": "nights_by_month", "layout": "Radar"},
		{"name": "No key", "layout": "Bar"},
		"oops",
		{"name": "Future", "metric_key": "Some Future Metric", "layout": "Donut"}
	]`)
	graphs, warnings := DecodeGraphs(data)
	require.Len(t, graphs, 2)
	assert.Equal(t, Graph{Name: "Revenue", MetricKey: "revenue_by_month", Layout: LayoutLine}, graphs[0])
	assert.Equal(t, LayoutDonut, graphs[1].Layout)
	assert.Len(t, warnings, 3)
}

func TestCleanGraphs(t *testing.T) {
	kept, err := CleanGraphs([]Graph{
		{Name: "ok", MetricKey: "adr_by_month", Layout: LayoutScatter},
		{Name: "bad", MetricKey: "adr_by_month", Layout: "3D"},
	})
	assert.Len(t, kept, 1)
	assert.ErrorIs(t, err, ErrInvalidGraph)
}

func TestDecodeTemplates(t *testing.T) {
	data := []byte(`{
		"Weekly": {"name": "Weekly", "metrics": ["Reservations"], "charts": ["monthly_revenue_line"], "is_builtin": true},
		"Nameless": {"metrics": []},
		"Scalar": 7
	}`)
	got, warnings := DecodeTemplates(data)
	require.Len(t, got, 1)
	assert.False(t, got["Weekly"].BuiltIn)
	assert.Len(t, warnings, 2)

	got, warnings = DecodeTemplates([]byte(`[]`))
	assert.Empty(t, got)
	assert.Len(t, warnings, 1)
}

func TestPutAndDeleteTemplate(t *testing.T) {
	user := map[string]reports.Template{}

	user, err := PutTemplate(user, reports.Template{Name: "Weekly", Metrics: []string{"Reservations"}})
	require.NoError(t, err)
	assert.Contains(t, user, "Weekly")

	_, err = PutTemplate(user, reports.Template{Name: "Platform Comparison", Metrics: []string{}})
	assert.ErrorIs(t, err, reports.ErrBuiltInProtected)

	_, err = DeleteTemplate(user, "Guest Profile Snapshot")
	assert.ErrorIs(t, err, reports.ErrBuiltInProtected)

	_, err = DeleteTemplate(user, "Missing")
	assert.ErrorIs(t, err, reports.ErrTemplateNotFound)

	user, err = DeleteTemplate(user, "Weekly")
	require.NoError(t, err)
	assert.Empty(t, user)
}
