// Package geo provides forward/reverse geocoding via OpenStreetMap Nominatim
// and IP-based location lookup via ip-api.com.
package geo

// Location is a resolved geographic location
type Location struct {
	Lat         float64 `json:"lat"`
	Lng         float64 `json:"lng"`
	DisplayName string  `json:"display_name"`
}
