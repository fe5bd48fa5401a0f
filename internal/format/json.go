package format

import (
	"encoding/json"
	"fmt"

	"github.com/driftlab/drift-backend-go/internal/analysis"
	"github.com/driftlab/drift-backend-go/internal/config"
)

// JSONFormatter renders the full response as indented JSON
type JSONFormatter struct{}

// Name returns the format name
func (JSONFormatter) Name() string { return "json" }

// Description returns the format description
func (JSONFormatter) Description() string { return "Full JSON response" }

// Format renders the response
func (JSONFormatter) Format(resp *analysis.Response, _ analysis.AnomalyType, _ *config.Config) (string, error) {
	out, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to serialize response: %w", err)
	}
	return string(out), nil
}
