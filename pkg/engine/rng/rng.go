// Package rng provides seedable random streams for the simulation.
//
// A session owns two independent streams: Gameplay feeds every AI and door
// decision, Cosmetic feeds purely visual randomness. Drawing cosmetic values
// never shifts the gameplay sequence, so a night replayed with the same seed
// and the same inputs plays out identically.
package rng

import (
	"fmt"
	"math/rand"
	"time"
)

// Stream wraps math/rand.Rand with position tracking.
// Position increments with every draw.
type Stream struct {
	name string
	seed int64
	src  *rand.Rand
	pos  int64
}

// NewStream creates a stream from a seed.
func NewStream(name string, seed int64) *Stream {
	return &Stream{
		name: name,
		seed: seed,
		src:  rand.New(rand.NewSource(seed)),
	}
}

// Name returns the stream name ("gameplay", "cosmetic", ...).
func (s *Stream) Name() string { return s.name }

// Seed returns the seed the stream was last reset to.
func (s *Stream) Seed() int64 { return s.seed }

// Position returns the number of draws since the last reset.
func (s *Stream) Position() int64 { return s.pos }

// Reset rewinds the stream to the start of the sequence for seed.
func (s *Stream) Reset(seed int64) {
	s.seed = seed
	s.src = rand.New(rand.NewSource(seed))
	s.pos = 0
}

func (s *Stream) checkRange(kind string, lo, hi any, bad bool) {
	if bad {
		panic(fmt.Sprintf("rng: %s stream: %s range min %v > max %v", s.name, kind, lo, hi))
	}
}

// Float64 returns a uniform value in [min, max). When min == max it returns max.
// It panics if min > max.
func (s *Stream) Float64(min, max float64) float64 {
	s.checkRange("float", min, max, min > max)
	if min == max {
		return max
	}
	s.pos++
	return min + s.src.Float64()*(max-min)
}

// Float32 is Float64 narrowed to float32.
func (s *Stream) Float32(min, max float32) float32 {
	return float32(s.Float64(float64(min), float64(max)))
}

// Unit returns a uniform value in [0, 1).
func (s *Stream) Unit() float64 {
	return s.Float64(0, 1)
}

// Int returns a uniform value in [min, max). When min == max it returns min.
// It panics if min > max.
func (s *Stream) Int(min, max int) int {
	s.checkRange("int", min, max, min > max)
	if min == max {
		return min
	}
	s.pos++
	return min + s.src.Intn(max-min)
}

// Int64 returns a uniform value in [min, max). When min == max it returns min.
// It panics if min > max.
func (s *Stream) Int64(min, max int64) int64 {
	s.checkRange("int64", min, max, min > max)
	if min == max {
		return min
	}
	s.pos++
	return min + s.src.Int63n(max-min)
}

// Duration returns a uniform time span in [minSeconds, maxSeconds).
// It panics if minSeconds > maxSeconds.
func (s *Stream) Duration(minSeconds, maxSeconds float64) time.Duration {
	secs := s.Float64(minSeconds, maxSeconds)
	return time.Duration(secs * float64(time.Second))
}

// Chance reports whether a uniform roll falls below p.
func (s *Stream) Chance(p float64) bool {
	if p <= 0 {
		return false
	}
	if p >= 1 {
		return true
	}
	return s.Unit() < p
}

// Pick returns a uniformly chosen element of items. It panics on an empty slice.
func Pick[T any](s *Stream, items []T) T {
	if len(items) == 0 {
		panic(fmt.Sprintf("rng: %s stream: pick from empty slice", s.name))
	}
	return items[s.Int(0, len(items))]
}

// Streams holds the two named streams a session draws from.
type Streams struct {
	Gameplay *Stream
	Cosmetic *Stream
}

// cosmeticSalt separates the cosmetic seed from the gameplay seed.
const cosmeticSalt = 0x5DEECE66D

// NewStreams derives both streams from one seed. A zero seed is replaced by
// the current time.
func NewStreams(seed int64) Streams {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return Streams{
		Gameplay: NewStream("gameplay", seed),
		Cosmetic: NewStream("cosmetic", seed^cosmeticSalt),
	}
}
