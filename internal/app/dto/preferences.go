package dto

import (
	"lynx/internal/domain/preferences"
	"lynx/internal/domain/reports"
)

type Favorites struct {
	Keys     []string `json:"keys"`
	Warnings []string `json:"warnings,omitempty"`
}

type Graphs struct {
	Items    []preferences.Graph `json:"items"`
	Layouts  []string            `json:"layouts"`
	Warnings []string            `json:"warnings,omitempty"`
}

type Templates struct {
	Items    []reports.Template `json:"items"`
	Warnings []string           `json:"warnings,omitempty"`
}

func LayoutNames() []string {
	out := make([]string, len(preferences.Layouts))
	for i, l := range preferences.Layouts {
		out[i] = string(l)
	}
	return out
}

// ReportExport is where an exported report was stored.
type ReportExport struct {
	Template string `json:"template"`
	Key      string `json:"key"`
	URL      string `json:"url"`
	Bytes    int    `json:"bytes"`
}
