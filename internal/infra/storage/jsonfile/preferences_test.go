package jsonfile

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lynx/internal/domain/preferences"
	"lynx/internal/domain/reports"
)

func newStore(t *testing.T) (*Preferences, string) {
	t.Helper()
	dir := t.TempDir()
	return NewPreferences(
		filepath.Join(dir, "custom_metrics.json"),
		filepath.Join(dir, "custom_graphs.json"),
		filepath.Join(dir, "report_templates.json"),
	), dir
}

func TestMissingFilesReadAsEmpty(t *testing.T) {
	store, _ := newStore(t)
	ctx := context.Background()

	favs, warnings, err := store.Favorites(ctx)
	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.Equal(t, []string{}, favs)

	graphs, _, err := store.Graphs(ctx)
	require.NoError(t, err)
	assert.Empty(t, graphs)

	templates, _, err := store.Templates(ctx)
	require.NoError(t, err)
	assert.Empty(t, templates)
}

func TestRoundTrip(t *testing.T) {
	store, _ := newStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveFavorites(ctx, []string{"adr", "revpar"}))
	favs, _, err := store.Favorites(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"adr", "revpar"}, favs)

	graphs := []preferences.Graph{{Name: "Revenue", MetricKey: "revenue", Layout: preferences.LayoutBar}}
	require.NoError(t, store.SaveGraphs(ctx, graphs))
	gotGraphs, _, err := store.Graphs(ctx)
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(graphs, gotGraphs))

	tpl := reports.Template{Name: "Owner", Metrics: []string{"total_revenue"}, Charts: []string{}, BuiltIn: true}
	require.NoError(t, store.SaveTemplates(ctx, map[string]reports.Template{"Owner": tpl}))
	got, warnings, err := store.Templates(ctx)
	require.NoError(t, err)
	assert.Empty(t, warnings)
	require.Contains(t, got, "Owner")
	assert.False(t, got["Owner"].BuiltIn, "stored templates are never built-in")
	assert.Equal(t, []string{"total_revenue"}, got["Owner"].Metrics)
}

func TestCorruptFilesAreDroppedWithWarning(t *testing.T) {
	store, _ := newStore(t)
	ctx := context.Background()

	require.NoError(t, os.WriteFile(store.FavoritesPath, []byte(`{not json`), 0o644))
	favs, warnings, err := store.Favorites(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{}, favs)
	assert.Len(t, warnings, 1)

	require.NoError(t, os.WriteFile(store.GraphsPath,
		[]byte(`[{"name":"ok","metric_key":"revenue","layout":"Line"},{"name":"bad","metric_key":"x","layout":"Radar"}]`), 0o644))
	graphs, warnings, err := store.Graphs(ctx)
	require.NoError(t, err)
	require.Len(t, graphs, 1)
	assert.Equal(t, "ok", graphs[0].Name)
	assert.Len(t, warnings, 1)
}

func TestSaveLeavesNoTempFiles(t *testing.T) {
	store, dir := newStore(t)
	require.NoError(t, store.SaveFavorites(context.Background(), nil))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "custom_metrics.json", entries[0].Name())

	data, err := os.ReadFile(store.FavoritesPath)
	require.NoError(t, err)
	assert.Equal(t, "[]\n", string(data))
}
