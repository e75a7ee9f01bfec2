// Package cosmetic draws presentation-only randomness. Everything here reads
// the cosmetic stream, so how often a frontend renders never changes what
// the animatronics do.
package cosmetic

import (
	"nightshift/pkg/engine/rng"
	"nightshift/pkg/engine/weighted"
)

// Level is how bright a hallway light looks on a given frame.
type Level int

const (
	Dark Level = iota
	Dim
	Bright
)

func (l Level) String() string {
	switch l {
	case Dark:
		return "dark"
	case Dim:
		return "dim"
	case Bright:
		return "bright"
	}
	return "unknown"
}

// Default frame weights for a lit hallway.
const (
	BrightWeight = 14
	DimWeight    = 4
	DarkWeight   = 1
)

// Flicker picks a light level per rendered frame.
type Flicker struct {
	src   *rng.Stream
	table *weighted.Table[Level]
}

// NewFlicker builds a flicker with the default weights on src.
func NewFlicker(src *rng.Stream) *Flicker {
	f, err := NewFlickerWeights(src, BrightWeight, DimWeight, DarkWeight)
	if err != nil {
		panic(err)
	}
	return f
}

// NewFlickerWeights builds a flicker with custom weights.
func NewFlickerWeights(src *rng.Stream, bright, dim, dark int) (*Flicker, error) {
	tab := weighted.New[Level]()
	for _, lw := range []struct {
		level  Level
		weight int
	}{{Bright, bright}, {Dim, dim}, {Dark, dark}} {
		if _, err := tab.AddOrSet(lw.level, lw.weight); err != nil {
			return nil, err
		}
	}
	return &Flicker{src: src, table: tab}, nil
}

// Frame returns the level for one frame. An unlit hallway is always dark.
func (f *Flicker) Frame(lit bool) Level {
	if !lit {
		return Dark
	}
	level, err := f.table.SelectRandom(f.src)
	if err != nil {
		return Bright
	}
	return level
}
