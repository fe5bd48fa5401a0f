package format

import (
	"fmt"
	"strings"

	"github.com/driftlab/drift-backend-go/internal/analysis"
	"github.com/driftlab/drift-backend-go/internal/config"
)

// GPXFormatter renders the winners as GPX waypoints
type GPXFormatter struct{}

// Name returns the format name
func (GPXFormatter) Name() string { return "gpx" }

// Description returns the format description
func (GPXFormatter) Description() string { return "GPX waypoint file" }

// Format renders the response
func (GPXFormatter) Format(resp *analysis.Response, _ analysis.AnomalyType, _ *config.Config) (string, error) {
	var b strings.Builder

	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	b.WriteString(`<gpx version="1.1" creator="drift">` + "\n")

	b.WriteString("  <metadata>\n")
	fmt.Fprintf(&b, "    <name>drift generation %s</name>\n", resp.ID)
	fmt.Fprintf(&b, "    <time>%s</time>\n", resp.Metadata.Timestamp)
	b.WriteString("  </metadata>\n")

	// Origin waypoint
	fmt.Fprintf(&b, "  <wpt lat=\"%v\" lon=\"%v\">\n", resp.Request.Lat, resp.Request.Lng)
	b.WriteString("    <name>Center</name>\n")
	fmt.Fprintf(&b, "    <desc>Origin point, radius: %vm</desc>\n", resp.Request.Radius)
	b.WriteString("  </wpt>\n")

	for _, anomalyType := range analysis.AnomalyTypes() {
		winner, ok := resp.Winners[anomalyType]
		if !ok {
			continue
		}
		point := winner.Result

		fmt.Fprintf(&b, "  <wpt lat=\"%v\" lon=\"%v\">\n", point.Coords.Lat, point.Coords.Lng)
		fmt.Fprintf(&b, "    <name>%s</name>\n", waypointName(anomalyType))
		if point.ZScore != nil {
			fmt.Fprintf(&b, "    <desc>z-score: %.2f</desc>\n", *point.ZScore)
		}
		fmt.Fprintf(&b, "    <sym>%s</sym>\n", waypointSymbol(anomalyType))
		b.WriteString("  </wpt>\n")
	}

	b.WriteString("</gpx>\n")
	return b.String(), nil
}

func waypointName(t analysis.AnomalyType) string {
	name := t.String()
	return strings.ToUpper(name[:1]) + name[1:]
}

func waypointSymbol(t analysis.AnomalyType) string {
	switch t {
	case analysis.Attractor:
		return "attraction"
	case analysis.Void:
		return "void"
	case analysis.Power:
		return "star"
	default:
		return "random"
	}
}
