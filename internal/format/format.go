// Package format renders generation responses for output: full JSON,
// human-readable text, GPX waypoints, or a map URL.
package format

import (
	"strings"

	"github.com/driftlab/drift-backend-go/internal/analysis"
	"github.com/driftlab/drift-backend-go/internal/config"
)

// Formatter renders a generation response into a string
type Formatter interface {
	// Name returns the format name
	Name() string

	// Description returns a human-readable description
	Description() string

	// Format renders the response. displayType selects which anomaly to
	// highlight for single-result formats (url); cfg supplies URL provider
	// templates.
	Format(resp *analysis.Response, displayType analysis.AnomalyType, cfg *config.Config) (string, error)
}

// Info describes an available format
type Info struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Get returns the formatter with the given name, or nil if unknown
func Get(name string) Formatter {
	switch strings.ToLower(name) {
	case "json":
		return JSONFormatter{}
	case "text":
		return TextFormatter{}
	case "gpx":
		return GPXFormatter{}
	case "url":
		return URLFormatter{}
	default:
		return nil
	}
}

// Available lists all formats
func Available() []Info {
	return []Info{
		{Name: "json", Description: "Full JSON response"},
		{Name: "text", Description: "Human-readable text"},
		{Name: "gpx", Description: "GPX waypoint file"},
		{Name: "url", Description: "Map URL for selected type"},
	}
}
