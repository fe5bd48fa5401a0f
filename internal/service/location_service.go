package service

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/driftlab/drift-backend-go/internal/geo"
)

// LocationService resolves place names and the caller's own position to
// coordinates
type LocationService struct {
	nominatim *geo.Nominatim
	ip        *geo.IPLocator
	logger    *zap.Logger
}

// NewLocationService creates a new location service
func NewLocationService(logger *zap.Logger) *LocationService {
	return &LocationService{
		nominatim: geo.NewNominatim(),
		ip:        geo.NewIPLocator(),
		logger:    logger,
	}
}

// Resolve looks up a free-form place query
func (s *LocationService) Resolve(query string) (*geo.Location, error) {
	loc, err := s.nominatim.Geocode(query)
	if err != nil {
		return nil, err
	}
	if loc == nil {
		return nil, fmt.Errorf("no location found for %q", query)
	}
	s.logger.Debug("resolved location",
		zap.String("query", query),
		zap.Float64("lat", loc.Lat),
		zap.Float64("lng", loc.Lng))
	return loc, nil
}

// Here resolves the caller's approximate position from their public IP
func (s *LocationService) Here() (*geo.Location, error) {
	return s.ip.Locate()
}

// Describe reverse-geocodes a coordinate pair to a display name
func (s *LocationService) Describe(lat, lng float64) (*geo.Location, error) {
	return s.nominatim.ReverseGeocode(lat, lng)
}
