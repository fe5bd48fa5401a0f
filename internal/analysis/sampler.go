package analysis

import (
	"math"

	"github.com/driftlab/drift-backend-go/internal/rng"
	"github.com/driftlab/drift-backend-go/internal/spatial"
)

// SamplePoints generates count points uniformly distributed within the
// geodesic circle of the given radius around center.
//
// Points are sampled on a spherical cap: the cap height is linear in the
// first uniform draw (cap area is linear in 1-cos(theta), so this makes
// area, not angle, uniform), the azimuth comes from the second draw, and the
// cap is rotated from the north pole onto the real center. The construction
// never divides by cos(lat), so it is correct at the poles and across the
// antimeridian.
//
// Exactly 2*count floats are drawn from src in a single call.
func SamplePoints(center Coordinates, radiusMeters float64, count int, src rng.Source) ([]Coordinates, error) {
	draws, err := src.Floats(2 * count)
	if err != nil {
		return nil, err
	}

	theta := radiusMeters / spatial.EarthRadiusMeters
	cosTheta := math.Cos(theta)

	latRad := center.Lat * math.Pi / 180
	lngRad := center.Lng * math.Pi / 180
	colat := math.Pi/2 - latRad
	sinColat, cosColat := math.Sincos(colat)
	sinLng, cosLng := math.Sincos(lngRad)

	points := make([]Coordinates, count)
	for i := 0; i < count; i++ {
		u1 := draws[i*2]
		u2 := draws[i*2+1]

		// Cap centered at the north pole
		z := 1 - u1*(1-cosTheta)
		phi := 2 * math.Pi * u2
		sinPolar := math.Sqrt(1 - z*z)
		x := sinPolar * math.Cos(phi)
		y := sinPolar * math.Sin(phi)

		// Rotate by co-latitude about the y-axis, then by longitude about
		// the polar axis
		x1 := x*cosColat + z*sinColat
		z1 := -x*sinColat + z*cosColat

		x2 := x1*cosLng - y*sinLng
		y2 := x1*sinLng + y*cosLng

		// Guard asin against rounding drift just past +/-1
		if z1 > 1 {
			z1 = 1
		} else if z1 < -1 {
			z1 = -1
		}

		points[i] = Coordinates{
			Lat: math.Asin(z1) * 180 / math.Pi,
			Lng: math.Atan2(y2, x2) * 180 / math.Pi,
		}
	}

	return points, nil
}

// SamplePoint generates a single point uniformly distributed within the
// circle. It shares the cap construction with SamplePoints.
func SamplePoint(center Coordinates, radiusMeters float64, src rng.Source) (Coordinates, error) {
	points, err := SamplePoints(center, radiusMeters, 1, src)
	if err != nil {
		return Coordinates{}, err
	}
	return points[0], nil
}

// Distance returns the great-circle distance between two coordinates in meters
func Distance(p1, p2 Coordinates) float64 {
	return spatial.HaversineDistance(p1.Lat, p1.Lng, p2.Lat, p2.Lng)
}

// InCircle reports whether a point lies within radiusMeters of center along
// the Earth's surface
func InCircle(point, center Coordinates, radiusMeters float64) bool {
	return Distance(point, center) <= radiusMeters
}
