package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"lynx/internal/domain/preferences"
	"lynx/internal/domain/reports"
)

// Preferences stores side state in three JSON files next to the workbook.
// A missing file reads as empty; unreadable content is dropped with a warning.
type Preferences struct {
	FavoritesPath string
	GraphsPath    string
	TemplatesPath string

	mu sync.Mutex
}

func NewPreferences(favorites, graphs, templates string) *Preferences {
	return &Preferences{FavoritesPath: favorites, GraphsPath: graphs, TemplatesPath: templates}
}

func (p *Preferences) Favorites(context.Context) ([]string, []string, error) {
	data, warn := p.read(p.FavoritesPath)
	if warn != "" {
		return []string{}, []string{warn}, nil
	}
	keys, warnings := preferences.DecodeFavorites(data)
	return keys, warnings, nil
}

func (p *Preferences) SaveFavorites(_ context.Context, keys []string) error {
	if keys == nil {
		keys = []string{}
	}
	return p.write(p.FavoritesPath, keys)
}

func (p *Preferences) Graphs(context.Context) ([]preferences.Graph, []string, error) {
	data, warn := p.read(p.GraphsPath)
	if warn != "" {
		return []preferences.Graph{}, []string{warn}, nil
	}
	graphs, warnings := preferences.DecodeGraphs(data)
	return graphs, warnings, nil
}

func (p *Preferences) SaveGraphs(_ context.Context, graphs []preferences.Graph) error {
	if graphs == nil {
		graphs = []preferences.Graph{}
	}
	return p.write(p.GraphsPath, graphs)
}

func (p *Preferences) Templates(context.Context) (map[string]reports.Template, []string, error) {
	data, warn := p.read(p.TemplatesPath)
	if warn != "" {
		return map[string]reports.Template{}, []string{warn}, nil
	}
	templates, warnings := preferences.DecodeTemplates(data)
	return templates, warnings, nil
}

func (p *Preferences) SaveTemplates(_ context.Context, templates map[string]reports.Template) error {
	out := make(map[string]reports.Template, len(templates))
	for name, t := range templates {
		t.BuiltIn = false
		out[name] = t
	}
	return p.write(p.TemplatesPath, out)
}

// read returns the file content, or a warning when it cannot be read. A
// missing file is not a warning.
func (p *Preferences) read(path string) ([]byte, string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return nil, ""
	case err != nil:
		return nil, fmt.Sprintf("Could not read %s: %v", filepath.Base(path), err)
	}
	return data, ""
}

// write replaces path atomically with v as indented JSON.
func (p *Preferences) write(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("jsonfile: encode %s: %w", path, err)
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("jsonfile: write %s: %w", path, err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(append(data, '\n')); err != nil {
		tmp.Close()
		return fmt.Errorf("jsonfile: write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("jsonfile: write %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("jsonfile: replace %s: %w", path, err)
	}
	return nil
}

var _ preferences.Store = (*Preferences)(nil)
