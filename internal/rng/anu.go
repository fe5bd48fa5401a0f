package rng

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const (
	anuURL = "https://qrng.anu.edu.au/API/jsonI.php"

	// anuMaxBlockSize is the maximum number of values per API request
	anuMaxBlockSize = 1024
)

// ANU fetches random bytes from the Australian National University quantum
// random number generator API.
//
// The API is rate limited; large requests are split into blocks of at most
// anuMaxBlockSize bytes.
type ANU struct {
	client  *http.Client
	baseURL string
	apiKey  string
}

// Data arrives as a JSON array of integers 0-255
type anuResponse struct {
	Success bool   `json:"success"`
	Data    []int  `json:"data"`
	Type    string `json:"type"`
	Length  int    `json:"length"`
}

// NewANU creates an ANU backend without an API key (free tier)
func NewANU() *ANU {
	return &ANU{
		client:  &http.Client{Timeout: 30 * time.Second},
		baseURL: anuURL,
	}
}

// NewANUWithKey creates an ANU backend using the given API key
func NewANUWithKey(apiKey string) *ANU {
	a := NewANU()
	a.apiKey = apiKey
	return a
}

// Name returns the backend name
func (a *ANU) Name() string {
	return "anu"
}

// Description returns the backend description
func (a *ANU) Description() string {
	return "Australian National University quantum random number generator"
}

// Bytes returns n quantum random bytes, batching API calls as needed
func (a *ANU) Bytes(n int) ([]byte, error) {
	if n == 0 {
		return nil, nil
	}

	result := make([]byte, 0, n)
	for remaining := n; remaining > 0; {
		batch := remaining
		if batch > anuMaxBlockSize {
			batch = anuMaxBlockSize
		}

		data, err := a.fetch(batch)
		if err != nil {
			return nil, err
		}
		result = append(result, data...)
		remaining -= batch
	}

	return result, nil
}

// Floats returns n floats uniformly distributed in [0, 1)
func (a *ANU) Floats(n int) ([]float64, error) {
	return FloatsFromBytes(a, n)
}

func (a *ANU) fetch(count int) ([]byte, error) {
	q := url.Values{}
	q.Set("length", strconv.Itoa(count))
	q.Set("type", "uint8")
	if a.apiKey != "" {
		q.Set("api_key", a.apiKey)
	}

	resp, err := a.client.Get(a.baseURL + "?" + q.Encode())
	if err != nil {
		return nil, fmt.Errorf("%w: ANU request failed: %v", ErrSource, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: ANU API returned status %d", ErrSource, resp.StatusCode)
	}

	var parsed anuResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("%w: failed to parse ANU response: %v", ErrSource, err)
	}

	if !parsed.Success {
		return nil, fmt.Errorf("%w: ANU API reported failure", ErrSource)
	}
	if len(parsed.Data) < count {
		return nil, fmt.Errorf("%w: ANU API returned %d of %d bytes", ErrSource, len(parsed.Data), count)
	}

	data := make([]byte, count)
	for i := 0; i < count; i++ {
		data[i] = byte(parsed.Data[i])
	}
	return data, nil
}
