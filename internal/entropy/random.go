// Package entropy provides the random source driving stochastic simulation
// events. The default source is seeded and deterministic so a run can be
// replayed from its seed; a crypto/rand fallback covers callers with no
// seeded source wired in.
package entropy

import (
	"crypto/rand"
	"encoding/binary"
	mathrand "math/rand"
	"sync"
)

// Source yields uniform random numbers for simulation decisions.
type Source interface {
	// Float returns a random float64 in [0, 1).
	Float() float64
	// IntN returns a random int in [0, n). n must be > 0.
	IntN(n int) int
}

// Seeded is a deterministic Source backed by math/rand with a fixed seed.
// The mutex keeps it safe for the API goroutine to sample alongside the
// simulation loop.
type Seeded struct {
	mu  sync.Mutex
	rng *mathrand.Rand
}

// NewSeeded creates a deterministic source from a seed.
func NewSeeded(seed int64) *Seeded {
	return &Seeded{rng: mathrand.New(mathrand.NewSource(seed))}
}

// Float returns a random float64 in [0, 1).
func (s *Seeded) Float() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Float64()
}

// IntN returns a random int in [0, n).
func (s *Seeded) IntN(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Intn(n)
}

// Crypto is a non-deterministic Source backed by crypto/rand. Used when
// reproducibility doesn't matter (e.g. ad-hoc tooling).
type Crypto struct{}

// Float returns a random float64 in [0, 1) from crypto/rand.
func (Crypto) Float() float64 {
	return cryptoRandFloat()
}

// IntN returns a random int in [0, n) from crypto/rand.
func (Crypto) IntN(n int) int {
	return int(cryptoRandFloat() * float64(n))
}

// cryptoRandFloat generates a random float64 using crypto/rand.
func cryptoRandFloat() float64 {
	var buf [8]byte
	_, err := rand.Read(buf[:])
	if err != nil {
		// This should never happen but return 0.5 as a safe default.
		return 0.5
	}
	// Use only 53 bits for a uniform float64 in [0, 1).
	n := binary.LittleEndian.Uint64(buf[:]) >> 11
	return float64(n) / float64(1<<53)
}

// FromSource returns a random float from the source if available, or
// crypto/rand when nil.
func FromSource(s Source) float64 {
	if s != nil {
		return s.Float()
	}
	return cryptoRandFloat()
}
