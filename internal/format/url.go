package format

import (
	"fmt"

	"github.com/driftlab/drift-backend-go/internal/analysis"
	"github.com/driftlab/drift-backend-go/internal/config"
)

// URLFormatter renders the selected winner as a map link
type URLFormatter struct{}

// Name returns the format name
func (URLFormatter) Name() string { return "url" }

// Description returns the format description
func (URLFormatter) Description() string { return "map link for the selected point" }

// Format renders the response
func (URLFormatter) Format(resp *analysis.Response, displayType analysis.AnomalyType, cfg *config.Config) (string, error) {
	winner, ok := resp.Winners[displayType]
	if !ok {
		return "", fmt.Errorf("no %s result in generation %s", displayType, resp.ID)
	}

	url, err := cfg.FormatURL("", winner.Result.Coords.Lat, winner.Result.Coords.Lng)
	if err != nil {
		return "", fmt.Errorf("failed to format URL: %w", err)
	}
	return url, nil
}
