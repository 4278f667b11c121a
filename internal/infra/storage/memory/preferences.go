package memory

import (
	"context"
	"sync"

	"lynx/internal/domain/preferences"
	"lynx/internal/domain/reports"
)

// Preferences keeps side state in memory.
type Preferences struct {
	mu        sync.RWMutex
	favorites []string
	graphs    []preferences.Graph
	templates map[string]reports.Template
}

func NewPreferences() *Preferences {
	return &Preferences{templates: make(map[string]reports.Template)}
}

func (p *Preferences) Favorites(context.Context) ([]string, []string, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return append([]string{}, p.favorites...), nil, nil
}

func (p *Preferences) SaveFavorites(_ context.Context, keys []string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.favorites = append([]string(nil), keys...)
	return nil
}

func (p *Preferences) Graphs(context.Context) ([]preferences.Graph, []string, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return append([]preferences.Graph{}, p.graphs...), nil, nil
}

func (p *Preferences) SaveGraphs(_ context.Context, graphs []preferences.Graph) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.graphs = append([]preferences.Graph(nil), graphs...)
	return nil
}

func (p *Preferences) Templates(context.Context) (map[string]reports.Template, []string, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make(map[string]reports.Template, len(p.templates))
	for k, v := range p.templates {
		out[k] = v
	}
	return out, nil, nil
}

func (p *Preferences) SaveTemplates(_ context.Context, templates map[string]reports.Template) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.templates = make(map[string]reports.Template, len(templates))
	for k, v := range templates {
		p.templates[k] = v
	}
	return nil
}

var _ preferences.Store = (*Preferences)(nil)
