package format

import (
	"fmt"
	"strings"

	"github.com/driftlab/drift-backend-go/internal/analysis"
	"github.com/driftlab/drift-backend-go/internal/config"
)

// TextFormatter renders a human-readable summary of the winners
type TextFormatter struct{}

// Name returns the format name
func (TextFormatter) Name() string { return "text" }

// Description returns the format description
func (TextFormatter) Description() string { return "Human-readable text" }

// Format renders the response
func (TextFormatter) Format(resp *analysis.Response, _ analysis.AnomalyType, _ *config.Config) (string, error) {
	var b strings.Builder

	fmt.Fprintf(&b, "Generation %s\n", resp.ID)
	fmt.Fprintf(&b, "Center: %.6f, %.6f  Radius: %.0fm  Mode: %s  Backend: %s\n",
		resp.Request.Lat, resp.Request.Lng, resp.Request.Radius, resp.Request.Mode, resp.Request.Backend)
	fmt.Fprintf(&b, "Circles analyzed: %d  Points per circle: %d\n\n",
		len(resp.Circles), resp.Request.Points)

	for _, anomalyType := range analysis.AnomalyTypes() {
		winner, ok := resp.Winners[anomalyType]
		if !ok {
			continue
		}

		fmt.Fprintf(&b, "%-10s %.6f, %.6f", anomalyType, winner.Result.Coords.Lat, winner.Result.Coords.Lng)
		if winner.Result.ZScore != nil {
			fmt.Fprintf(&b, "  z=%+.2f", *winner.Result.ZScore)
		}
		if winner.Result.IsAttractor != nil {
			if *winner.Result.IsAttractor {
				b.WriteString("  (attractor)")
			} else {
				b.WriteString("  (void)")
			}
		}
		if len(resp.Circles) > 1 {
			fmt.Fprintf(&b, "  [%s]", winner.CircleID)
		}
		b.WriteByte('\n')
	}

	return b.String(), nil
}
