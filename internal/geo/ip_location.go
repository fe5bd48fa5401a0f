package geo

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"
)

const (
	ipAPIURL = "http://ip-api.com/json"

	// ipLocationTTL is how long a resolved IP location stays cached
	ipLocationTTL = time.Hour
)

// IPLocator resolves the caller's approximate location from their public IP
// address, caching the result to avoid hammering the free API.
type IPLocator struct {
	client  *http.Client
	baseURL string

	mu        sync.Mutex
	cached    *Location
	fetchedAt time.Time
}

// NewIPLocator creates an IP location client
func NewIPLocator() *IPLocator {
	return &IPLocator{
		client:  &http.Client{Timeout: 10 * time.Second},
		baseURL: ipAPIURL,
	}
}

type ipAPIResponse struct {
	Status     string  `json:"status"`
	Message    string  `json:"message"`
	Lat        float64 `json:"lat"`
	Lon        float64 `json:"lon"`
	City       string  `json:"city"`
	RegionName string  `json:"regionName"`
	Country    string  `json:"country"`
}

// Locate returns the current approximate location, from cache when fresh
func (l *IPLocator) Locate() (*Location, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.cached != nil && time.Since(l.fetchedAt) < ipLocationTTL {
		return l.cached, nil
	}

	resp, err := l.client.Get(l.baseURL)
	if err != nil {
		return nil, fmt.Errorf("IP location request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("IP location API returned status %d", resp.StatusCode)
	}

	var parsed ipAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to parse IP location response: %w", err)
	}

	if parsed.Status != "success" {
		return nil, fmt.Errorf("IP location lookup failed: %s", parsed.Message)
	}

	parts := make([]string, 0, 3)
	for _, p := range []string{parsed.City, parsed.RegionName, parsed.Country} {
		if p != "" {
			parts = append(parts, p)
		}
	}

	l.cached = &Location{
		Lat:         parsed.Lat,
		Lng:         parsed.Lon,
		DisplayName: strings.Join(parts, ", "),
	}
	l.fetchedAt = time.Now()

	return l.cached, nil
}
