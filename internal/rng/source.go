// Package rng provides random number sources for coordinate generation.
//
// A Source supplies batches of random bytes or uniform floats. Backends range
// from the local pseudo-random generator used for development and testing to
// the network-backed ANU quantum generator. Callers that need reproducible
// output should use NewSeeded.
package rng

import (
	"encoding/binary"
	"errors"
)

// ErrSource indicates that a random source failed to produce data.
// Backend errors wrap this sentinel so callers can match with errors.Is.
var ErrSource = errors.New("random source error")

// Source supplies batches of random values.
//
// Implementations must be safe for concurrent use. Floats must return values
// uniformly distributed in [0, 1).
type Source interface {
	// Name returns the backend name (e.g. "pseudo", "anu")
	Name() string

	// Description returns a human-readable description of this backend
	Description() string

	// Bytes returns n random bytes
	Bytes(n int) ([]byte, error)

	// Floats returns n independent floats uniformly distributed in [0, 1)
	Floats(n int) ([]float64, error)
}

// FloatsFromBytes converts a source's raw bytes into n uniform floats in
// [0, 1) by reading 4-byte big-endian words and dividing by 2^32. Backends
// without a native float API can build Floats on top of this.
func FloatsFromBytes(s Source, n int) ([]float64, error) {
	if n == 0 {
		return nil, nil
	}

	raw, err := s.Bytes(n * 4)
	if err != nil {
		return nil, err
	}

	floats := make([]float64, n)
	for i := 0; i < n; i++ {
		u := binary.BigEndian.Uint32(raw[i*4 : i*4+4])
		floats[i] = float64(u) / 4294967296.0
	}
	return floats, nil
}

// Info describes an available backend
type Info struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Get returns the backend with the given name, falling back to the pseudo
// backend for unknown names
func Get(name string) Source {
	return GetWithKey(name, "")
}

// GetWithKey returns the backend with the given name, passing an API key to
// backends that use one
func GetWithKey(name, apiKey string) Source {
	switch name {
	case "anu":
		if apiKey != "" {
			return NewANUWithKey(apiKey)
		}
		return NewANU()
	default:
		return NewPseudo()
	}
}

// Available lists all registered backends
func Available() []Info {
	return []Info{
		{Name: "pseudo", Description: "Pseudo-random number generator (local, fast)"},
		{Name: "anu", Description: "Australian National University quantum random number generator"},
	}
}
