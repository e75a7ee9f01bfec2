package animatronic

import (
	"fmt"
	"math"

	"github.com/zyedidia/generic/mapset"

	"nightshift/pkg/game/door"
)

// Curve is a value that scales linearly with AI level, from Low at level 0
// to High at MaxAILevel.
type Curve struct {
	Low, High float64
}

// At evaluates the curve for an AI level.
func (c Curve) At(aiLevel int) float64 {
	return Lerp(c.Low, c.High, float64(aiLevel)/MaxAILevel)
}

// Lerp interpolates linearly between a and b.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// dwellShape controls how strongly ExpLerp favours the low end.
const dwellShape = 3.0

// ExpLerp interpolates between a and b along an exponential curve, so a
// uniform t lands near a far more often than near b.
func ExpLerp(a, b, t float64) float64 {
	return a + (b-a)*(math.Exp(dwellShape*t)-1)/(math.Exp(dwellShape)-1)
}

// RetreatRoom is a weighted destination for a random retreat.
type RetreatRoom struct {
	Room   Room
	Weight int
}

// Retreat is a chance, rolled before advancing out of a room, to fall back
// to one of a few rooms instead.
type Retreat struct {
	Chance Curve
	Rooms  []RetreatRoom
}

// Profile holds everything that differs between animatronics: the room
// graph, the door it threatens, and its timing constants (seconds).
type Profile struct {
	ID   ID
	Name string

	Door     door.Side
	DoorRoom Room

	// Edges lists successors per room. Rooms with several successors pick
	// one uniformly. The door room has none.
	Edges map[Room][]Room
	// Retreats are optional random fall-backs keyed by the room being left.
	Retreats map[Room]Retreat
	// Backoff rooms are where the animatronic goes when it finds its door
	// closed.
	Backoff []Room

	MoveTwice   Curve
	IntervalMin Curve
	IntervalMax Curve
	DwellMin    Curve
	DwellMax    Curve

	SneakInDelay float64
	SpottedGrace float64
	AttackMin    float64
	AttackMax    float64
}

// Rooms returns every room in the profile's graph, Office included.
func (p *Profile) Rooms() mapset.Set[Room] {
	rooms := mapset.New[Room]()
	rooms.Put(Office)
	rooms.Put(p.DoorRoom)
	for from, tos := range p.Edges {
		rooms.Put(from)
		for _, to := range tos {
			rooms.Put(to)
		}
	}
	return rooms
}

// Validate checks the graph is closed and every room leads somewhere.
func (p *Profile) Validate() error {
	rooms := p.Rooms()
	if len(p.Edges[p.DoorRoom]) != 0 {
		return fmt.Errorf("%s: door room %v must not have successors", p.Name, p.DoorRoom)
	}
	var err error
	rooms.Each(func(r Room) {
		if err != nil || r == Office || r == p.DoorRoom {
			return
		}
		if len(p.Edges[r]) == 0 {
			err = fmt.Errorf("%s: room %v has no successor", p.Name, r)
		}
	})
	if err != nil {
		return err
	}
	if len(p.Backoff) == 0 {
		return fmt.Errorf("%s: no backoff rooms", p.Name)
	}
	for _, r := range p.Backoff {
		if !rooms.Has(r) || r == p.DoorRoom || r == Office {
			return fmt.Errorf("%s: invalid backoff room %v", p.Name, r)
		}
	}
	for from, rt := range p.Retreats {
		if !rooms.Has(from) {
			return fmt.Errorf("%s: retreat from room %v outside graph", p.Name, from)
		}
		for _, rr := range rt.Rooms {
			if !rooms.Has(rr.Room) || rr.Room == p.DoorRoom || rr.Room == Office {
				return fmt.Errorf("%s: invalid retreat room %v", p.Name, rr.Room)
			}
		}
	}
	if p.AttackMin > p.AttackMax {
		return fmt.Errorf("%s: attack delay min %v > max %v", p.Name, p.AttackMin, p.AttackMax)
	}
	return nil
}
