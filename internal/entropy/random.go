// Package entropy provides the random sources that drive map generation.
// Every stochastic decision in the pipeline draws from a Source, so a seeded
// source reproduces a map exactly.
package entropy

import (
	"crypto/rand"
	"encoding/binary"
	mrand "math/rand/v2"
)

// Source yields uniform draws in [0, 1).
type Source interface {
	Float() float64
}

// Seeded is a deterministic source backed by a PCG generator.
type Seeded struct {
	seed int64
	r    *mrand.Rand
}

// NewSeeded creates a deterministic source from seed.
func NewSeeded(seed int64) *Seeded {
	return &Seeded{
		seed: seed,
		r:    mrand.New(mrand.NewPCG(uint64(seed), 0)),
	}
}

// Float returns the next draw in [0, 1).
func (s *Seeded) Float() float64 {
	return s.r.Float64()
}

// Seed returns the seed the source was created with.
func (s *Seeded) Seed() int64 {
	return s.seed
}

// Fixed returns the same value for every draw. Useful for pinning a stage to
// one branch of every probability gate.
type Fixed float64

// Float returns f.
func (f Fixed) Float() float64 {
	return float64(f)
}

// Sequence replays a list of draws, cycling back to the start when exhausted.
// An empty sequence always returns 0.
type Sequence struct {
	values []float64
	next   int
}

// NewSequence creates a source that replays values in order.
func NewSequence(values ...float64) *Sequence {
	return &Sequence{values: values}
}

// Float returns the next value in the sequence.
func (s *Sequence) Float() float64 {
	if len(s.values) == 0 {
		return 0
	}
	v := s.values[s.next]
	s.next = (s.next + 1) % len(s.values)
	return v
}

// Counter wraps a Source and counts the draws taken from it.
type Counter struct {
	Source
	Draws uint64
}

// Float forwards to the wrapped source.
func (c *Counter) Float() float64 {
	c.Draws++
	return c.Source.Float()
}

// RandomSeed returns a non-zero seed from crypto/rand, so an unseeded run can
// still be logged and replayed.
func RandomSeed() int64 {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		// crypto/rand does not fail on supported platforms.
		return 1
	}
	seed := int64(binary.LittleEndian.Uint64(buf[:]) >> 1)
	if seed == 0 {
		return 1
	}
	return seed
}
