// Package analysis implements the coordinate generation and density analysis
// engine: uniform point sampling within a geodesic circle, grid-based density
// estimation with Poisson z-scores, per-circle anomaly extraction, and
// multi-circle winner aggregation.
package analysis

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors returned by the generation pipeline. Wrapped errors carry
// detail; match with errors.Is.
var (
	ErrInvalidCoordinates = errors.New("invalid coordinates")
	ErrInvalidRadius      = errors.New("invalid radius")
	ErrUnsupportedMode    = errors.New("unsupported mode")
)

// Coordinates is a geographic position in degrees
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// NewCoordinates creates coordinates without validating them.
// Callers must run Validate before using the value for generation.
func NewCoordinates(lat, lng float64) Coordinates {
	return Coordinates{Lat: lat, Lng: lng}
}

// Validate checks that latitude is within [-90, 90] and longitude within
// [-180, 180]
func (c Coordinates) Validate() error {
	if c.Lat < -90 || c.Lat > 90 {
		return fmt.Errorf("%w: latitude %v is out of range [-90, 90]", ErrInvalidCoordinates, c.Lat)
	}
	if c.Lng < -180 || c.Lng > 180 {
		return fmt.Errorf("%w: longitude %v is out of range [-180, 180]", ErrInvalidCoordinates, c.Lng)
	}
	return nil
}

// Point is an immutable analysis result: a coordinate with an optional
// z-score and, for power anomalies, an attractor/void flag.
type Point struct {
	Coords Coordinates `json:"coords"`

	// ZScore is how many standard deviations the winning cell sits from the
	// expected count; nil for unscored points (blind spots)
	ZScore *float64 `json:"z_score,omitempty"`

	// IsAttractor is set for power anomalies: true when the cell is denser
	// than expected, false when sparser
	IsAttractor *bool `json:"is_attractor,omitempty"`
}

// NewPoint creates an unscored point
func NewPoint(coords Coordinates) Point {
	return Point{Coords: coords}
}

// NewScoredPoint creates a point carrying a z-score
func NewScoredPoint(coords Coordinates, zScore float64) Point {
	return Point{Coords: coords, ZScore: &zScore}
}

// NewPowerPoint creates a point carrying a z-score and an attractor/void flag
func NewPowerPoint(coords Coordinates, zScore float64, isAttractor bool) Point {
	return Point{Coords: coords, ZScore: &zScore, IsAttractor: &isAttractor}
}

// AnomalyType identifies one of the four anomaly definitions
type AnomalyType int

const (
	// BlindSpot is a single random point with no analysis
	BlindSpot AnomalyType = iota
	// Attractor is the densest cell (maximum z-score)
	Attractor
	// Void is the emptiest cell (minimum z-score)
	Void
	// Power is the most extreme cell (maximum absolute z-score)
	Power
)

// AnomalyTypes lists all anomaly types in their canonical order. Winner
// selection iterates this slice, never a map, so tie-breaking stays
// deterministic.
func AnomalyTypes() []AnomalyType {
	return []AnomalyType{BlindSpot, Attractor, Void, Power}
}

// String returns the wire name of the anomaly type
func (t AnomalyType) String() string {
	switch t {
	case BlindSpot:
		return "blind_spot"
	case Attractor:
		return "attractor"
	case Void:
		return "void"
	case Power:
		return "power"
	default:
		return fmt.Sprintf("anomaly_type(%d)", int(t))
	}
}

// Describe returns a human-readable description of the anomaly type
func (t AnomalyType) Describe() string {
	switch t {
	case BlindSpot:
		return "Random point with no analysis"
	case Attractor:
		return "Densest cluster of points"
	case Void:
		return "Emptiest region"
	case Power:
		return "Most statistically anomalous"
	default:
		return "Unknown"
	}
}

// ParseAnomalyType parses an anomaly type name
func ParseAnomalyType(s string) (AnomalyType, error) {
	switch strings.ToLower(s) {
	case "blind_spot", "blind-spot", "blindspot":
		return BlindSpot, nil
	case "attractor":
		return Attractor, nil
	case "void":
		return Void, nil
	case "power":
		return Power, nil
	default:
		return 0, fmt.Errorf("unknown anomaly type: %q", s)
	}
}

// MarshalText implements encoding.TextMarshaler so the type can key JSON maps
func (t AnomalyType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (t *AnomalyType) UnmarshalText(text []byte) error {
	parsed, err := ParseAnomalyType(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Mode selects between single-circle and flower generation
type Mode string

const (
	// ModeStandard analyzes a single circle around the center
	ModeStandard Mode = "standard"
	// ModeFlower analyzes seven overlapping circles in a hexagonal layout
	ModeFlower Mode = "flower_power"
)

// ParseMode parses a generation mode name
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(s) {
	case "", "standard":
		return ModeStandard, nil
	case "flower_power", "flower-power", "flowerpower":
		return ModeFlower, nil
	default:
		return "", fmt.Errorf("unknown generation mode: %q", s)
	}
}

// CircleResult holds the anomaly results for a single analyzed circle
type CircleResult struct {
	// ID labels the circle: "center", or "petal_0".."petal_5" in flower mode
	ID string `json:"id"`

	// Center of this circle
	Center Coordinates `json:"center"`

	// Radius in meters
	Radius float64 `json:"radius"`

	// Anomalies maps each detected anomaly type to its winning point for
	// this circle alone
	Anomalies map[AnomalyType]Point `json:"anomalies"`

	// Points holds the raw sample, kept only when explicitly requested
	Points []Coordinates `json:"points,omitempty"`
}

// WinnerResult identifies the circle that produced the globally best result
// for one anomaly type
type WinnerResult struct {
	CircleID string `json:"circle_id"`
	Result   Point  `json:"result"`
}

// Request echoes the parameters a response was generated from
type Request struct {
	Lat           float64 `json:"lat"`
	Lng           float64 `json:"lng"`
	Radius        float64 `json:"radius"`
	Points        int     `json:"points"`
	Backend       string  `json:"backend"`
	Mode          Mode    `json:"mode"`
	IncludePoints bool    `json:"include_points"`
}

// Metadata describes when a response was generated
type Metadata struct {
	Timestamp string `json:"timestamp"`
}

// Response is the immutable result of one generation call
type Response struct {
	// ID is a unique identifier for this generation
	ID string `json:"id"`

	// Request holds the parameters this response was generated from
	Request Request `json:"request"`

	// Circles holds per-circle results, 1 for standard or 7 for flower mode
	Circles []CircleResult `json:"circles"`

	// Winners maps each anomaly type to its cross-circle winner
	Winners map[AnomalyType]WinnerResult `json:"winners"`

	// Metadata about the generation
	Metadata Metadata `json:"metadata"`
}
