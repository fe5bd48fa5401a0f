package analysis

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/driftlab/drift-backend-go/internal/rng"
	"github.com/driftlab/drift-backend-go/internal/spatial"
)

const (
	// FlowerMinRadius is the minimum search radius in meters for flower mode
	FlowerMinRadius = 3000.0

	// PetalCount is the number of petal circles around the center
	PetalCount = 6
)

// Generate runs the full pipeline for one request: validation, per-circle
// sampling and analysis, and cross-circle winner selection. It is a pure
// function of its inputs plus the values drawn from src; with a seeded
// source, identical parameters reproduce identical output.
//
// Radii of at least pi times the Earth's radius (a cap covering a hemisphere
// or more) are rejected with ErrInvalidRadius rather than clamped, since the
// planar density grid is meaningless at that scale.
func Generate(center Coordinates, radius float64, pointCount, gridResolution int, includePoints bool, mode Mode, src rng.Source) (*Response, error) {
	if err := center.Validate(); err != nil {
		return nil, err
	}
	if radius <= 0 {
		return nil, fmt.Errorf("%w: radius must be positive, got %v", ErrInvalidRadius, radius)
	}
	if radius >= math.Pi*spatial.EarthRadiusMeters {
		return nil, fmt.Errorf("%w: radius %v covers a hemisphere or more", ErrInvalidRadius, radius)
	}

	var circles []CircleResult
	var err error

	switch mode {
	case ModeFlower:
		circles, err = generateFlower(center, radius, pointCount, gridResolution, includePoints, src)
	default:
		circles, err = generateStandard(center, radius, pointCount, gridResolution, includePoints, src)
	}
	if err != nil {
		return nil, err
	}

	return &Response{
		ID: uuid.NewString(),
		Request: Request{
			Lat:           center.Lat,
			Lng:           center.Lng,
			Radius:        radius,
			Points:        pointCount,
			Backend:       src.Name(),
			Mode:          mode,
			IncludePoints: includePoints,
		},
		Circles:  circles,
		Winners:  FindAllWinners(circles),
		Metadata: Metadata{Timestamp: time.Now().UTC().Format(time.RFC3339)},
	}, nil
}

// GenerateWithDefaults runs Generate with the default point count and grid
// resolution and no raw points
func GenerateWithDefaults(center Coordinates, radius float64, mode Mode, src rng.Source) (*Response, error) {
	return Generate(center, radius, DefaultPointCount, DefaultGridResolution, false, mode, src)
}

func generateStandard(center Coordinates, radius float64, pointCount, gridResolution int, includePoints bool, src rng.Source) ([]CircleResult, error) {
	circle, err := AnalyzeCircle("center", center, radius, pointCount, gridResolution, includePoints, src)
	if err != nil {
		return nil, err
	}
	return []CircleResult{circle}, nil
}

// generateFlower analyzes seven overlapping circles: one at the original
// center plus six petals on a hexagon, all with half the requested radius.
// Circles run sequentially in a fixed order, each drawing its floats in one
// batch, which keeps seeded sources reproducible.
func generateFlower(center Coordinates, radius float64, pointCount, gridResolution int, includePoints bool, src rng.Source) ([]CircleResult, error) {
	if radius < FlowerMinRadius {
		return nil, fmt.Errorf("%w: flower mode requires radius >= %v meters, got %v",
			ErrUnsupportedMode, FlowerMinRadius, radius)
	}

	subRadius := radius / 2
	petals := PetalCenters(center, subRadius)

	circles := make([]CircleResult, 0, PetalCount+1)

	circle, err := AnalyzeCircle("center", center, subRadius, pointCount, gridResolution, includePoints, src)
	if err != nil {
		return nil, err
	}
	circles = append(circles, circle)

	for i, petalCenter := range petals {
		circle, err := AnalyzeCircle(fmt.Sprintf("petal_%d", i), petalCenter, subRadius, pointCount, gridResolution, includePoints, src)
		if err != nil {
			return nil, err
		}
		circles = append(circles, circle)
	}

	return circles, nil
}

// PetalCenters computes the six petal circle centers, offset from center by
// offsetMeters at bearings 0, 60, ..., 300 degrees
func PetalCenters(center Coordinates, offsetMeters float64) [PetalCount]Coordinates {
	metersPerDegLng := spatial.MetersPerDegreeLng(center.Lat)

	var petals [PetalCount]Coordinates
	for i := 0; i < PetalCount; i++ {
		angle := float64(i) * math.Pi / 3

		deltaLat := offsetMeters * math.Cos(angle) / spatial.MetersPerDegreeLat
		deltaLng := offsetMeters * math.Sin(angle) / metersPerDegLng

		petals[i] = Coordinates{Lat: center.Lat + deltaLat, Lng: center.Lng + deltaLng}
	}

	return petals
}
