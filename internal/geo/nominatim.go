package geo

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const nominatimURL = "https://nominatim.openstreetmap.org"

// userAgent identifies us to Nominatim, which rejects anonymous clients
const userAgent = "drift-backend-go/1.0"

// Nominatim is a geocoding client for the OpenStreetMap Nominatim API
type Nominatim struct {
	client  *http.Client
	baseURL string
}

// NewNominatim creates a Nominatim geocoding client
func NewNominatim() *Nominatim {
	return &Nominatim{
		client:  &http.Client{Timeout: 15 * time.Second},
		baseURL: nominatimURL,
	}
}

type nominatimResult struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// Geocode resolves a free-form location query to coordinates. Returns nil
// without error when nothing matched.
func (n *Nominatim) Geocode(query string) (*Location, error) {
	q := url.Values{}
	q.Set("q", query)
	q.Set("format", "json")
	q.Set("limit", "1")

	var results []nominatimResult
	if err := n.get("/search?"+q.Encode(), &results); err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}

	return resultToLocation(results[0])
}

// ReverseGeocode resolves coordinates to a display name. Returns nil without
// error when nothing matched.
func (n *Nominatim) ReverseGeocode(lat, lng float64) (*Location, error) {
	q := url.Values{}
	q.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(lng, 'f', -1, 64))
	q.Set("format", "json")

	var result nominatimResult
	if err := n.get("/reverse?"+q.Encode(), &result); err != nil {
		return nil, err
	}
	if result.DisplayName == "" {
		return nil, nil
	}

	loc, err := resultToLocation(result)
	if err != nil {
		// Reverse responses sometimes omit coordinates; fall back to the input
		return &Location{Lat: lat, Lng: lng, DisplayName: result.DisplayName}, nil
	}
	return loc, nil
}

func (n *Nominatim) get(path string, out any) error {
	req, err := http.NewRequest(http.MethodGet, n.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to build geocoding request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("geocoding request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("geocoding API returned status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to parse geocoding response: %w", err)
	}
	return nil
}

func resultToLocation(r nominatimResult) (*Location, error) {
	lat, err := strconv.ParseFloat(r.Lat, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid latitude in geocoding response: %q", r.Lat)
	}
	lng, err := strconv.ParseFloat(r.Lon, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid longitude in geocoding response: %q", r.Lon)
	}
	return &Location{Lat: lat, Lng: lng, DisplayName: r.DisplayName}, nil
}
