package rng

import (
	"math/rand"
	"sync"
	"time"
)

// Pseudo is a math/rand backed source. It is not suitable for anything
// requiring true randomness but is fast and always available.
type Pseudo struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewPseudo creates a pseudo-random source seeded from the current time
func NewPseudo() *Pseudo {
	return &Pseudo{rnd: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// NewSeeded creates a pseudo-random source with a fixed seed.
// The same seed always produces the same sequence of values.
func NewSeeded(seed int64) *Pseudo {
	return &Pseudo{rnd: rand.New(rand.NewSource(seed))}
}

// Name returns the backend name
func (p *Pseudo) Name() string {
	return "pseudo"
}

// Description returns the backend description
func (p *Pseudo) Description() string {
	return "Pseudo-random number generator (local, fast)"
}

// Bytes returns n random bytes
func (p *Pseudo) Bytes(n int) ([]byte, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	buf := make([]byte, n)
	if _, err := p.rnd.Read(buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// Floats returns n floats uniformly distributed in [0, 1)
func (p *Pseudo) Floats(n int) ([]float64, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	floats := make([]float64, n)
	for i := range floats {
		floats[i] = p.rnd.Float64()
	}
	return floats, nil
}
