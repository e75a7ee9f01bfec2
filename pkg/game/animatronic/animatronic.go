// Package animatronic implements the agents that roam the pizzeria at night
// and try to reach the office.
//
// Every animatronic walks its own directed room graph on a timer scaled by
// its AI level (0..20). Reaching its office door it either sneaks in, if the
// door is open, or dwells and pressures the door, if it is closed. Door
// changes made by the player arrive as callbacks from the session, which is
// the only owner of door and power state.
package animatronic

import (
	"errors"
	"fmt"

	"nightshift/pkg/engine/rng"
	"nightshift/pkg/game/door"
	"nightshift/pkg/game/events"
)

// AI level bounds
const (
	MinAILevel = 0
	MaxAILevel = 20
)

// ErrAILevelRange is returned for AI levels outside MinAILevel..MaxAILevel.
var ErrAILevelRange = errors.New("AI must be 0..20")

// ID identifies an animatronic within a session.
type ID int

// Animatronics
const (
	Rabbit ID = iota
	Duck
	Bear
	idCount
)

// IDs lists every animatronic in tick order.
var IDs = [...]ID{Rabbit, Duck, Bear}

var idNames = [idCount]string{
	Rabbit: "rabbit",
	Duck:   "duck",
	Bear:   "bear",
}

func (id ID) String() string {
	if id < 0 || id >= idCount {
		panic(fmt.Sprintf("not implemented: animatronic %d", int(id)))
	}
	return idNames[id]
}

// ParseID resolves a configuration key to an animatronic ID.
func ParseID(s string) (ID, error) {
	for id, name := range idNames {
		if name == s {
			return ID(id), nil
		}
	}
	return 0, fmt.Errorf("unknown animatronic %q", s)
}

// StartConfig is the per-night starting state of one animatronic.
type StartConfig struct {
	AILevel int
	Room    Room
}

// Host is the animatronics' non-owning view of the session. It is used to
// query doors, request a door break or grace cooldown, report an attack and
// publish notifications.
type Host interface {
	DoorState(side door.Side) door.State
	BreakDoor(side door.Side)
	SpottedDoorCooldown(side door.Side)
	AnimatronicAttacked(id ID)
	Notify(e events.Event)
	Random() *rng.Stream
}

// Animatronic is the contract every agent variant fulfils.
type Animatronic interface {
	ID() ID
	Name() string
	Door() door.Side

	// OnStart re-initialises AI level, room and timers for a new night.
	OnStart(cfg StartConfig)
	// Update counts the movement timer down and fires a step at zero.
	Update(delta float64)
	PerformMovementStep()
	SneakIn()
	Attack()

	OnDoorFlashed(side door.Side)
	OnDoorOpened(side door.Side)
	OnDoorClosed(side door.Side)

	Location() Room
	AILevel() int
	SetAILevel(level int) error
	Spotted() bool
	Blocked() bool
	TimeUntilNextMove() float64
}
