// Package events is the notification fabric between the session and its
// observers. Notifications are delivered synchronously, in subscription
// order, from inside the call that caused them.
package events

import (
	"fmt"

	"github.com/zyedidia/generic/mapset"

	"nightshift/pkg/game/door"
)

// Kind identifies a notification type.
type Kind int

// Notification kinds
const (
	SessionStarted Kind = iota
	DoorChanged
	DoorBroken
	DoorFlashChanged
	AnimatronicMoved
	AnimatronicSneakedIn
	AnimatronicSpotted
	AnimatronicAttack
	PowerOut
	NightCompleted
)

var kindNames = map[Kind]string{
	SessionStarted:       "session_started",
	DoorChanged:          "door_changed",
	DoorBroken:           "door_broken",
	DoorFlashChanged:     "door_flash_changed",
	AnimatronicMoved:     "animatronic_moved",
	AnimatronicSneakedIn: "animatronic_sneaked_in",
	AnimatronicSpotted:   "animatronic_spotted",
	AnimatronicAttack:    "animatronic_attack",
	PowerOut:             "power_out",
	NightCompleted:       "night_completed",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// NoAgent marks events not caused by an animatronic.
const NoAgent = -1

// Event is one notification. Fields that do not apply to a kind are zero,
// except Agent which is NoAgent.
type Event struct {
	Kind Kind

	Night   int
	Elapsed float64

	Door   door.Side
	Closed bool // DoorChanged
	Lit    bool // DoorFlashChanged

	Agent     int    // animatronic ID
	AgentName string // display name
	From, To  int    // room IDs for AnimatronicMoved
	FromName  string
	ToName    string
}

// Listener receives notifications.
type Listener func(Event)

// Subscription identifies a registered listener.
type Subscription int

type subscriber struct {
	id    Subscription
	kinds mapset.Set[Kind]
	all   bool
	fn    Listener
}

// Bus is an ordered observer list. It is not safe for concurrent use; the
// simulation is single-threaded.
type Bus struct {
	nextID Subscription
	subs   []subscriber
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{nextID: 1}
}

// Subscribe registers fn for the given kinds, or for every kind when none are
// given.
func (b *Bus) Subscribe(fn Listener, kinds ...Kind) Subscription {
	s := subscriber{id: b.nextID, fn: fn, all: len(kinds) == 0}
	if !s.all {
		s.kinds = mapset.New[Kind]()
		for _, k := range kinds {
			s.kinds.Put(k)
		}
	}
	b.nextID++
	b.subs = append(b.subs, s)
	return s.id
}

// Unsubscribe removes a listener. It reports whether the subscription existed.
func (b *Bus) Unsubscribe(id Subscription) bool {
	for i, s := range b.subs {
		if s.id == id {
			b.subs = append(b.subs[:i:i], b.subs[i+1:]...)
			return true
		}
	}
	return false
}

// Len returns the number of listeners.
func (b *Bus) Len() int { return len(b.subs) }

// Publish delivers e to every interested listener. Listeners added or removed
// during delivery take effect from the next Publish.
func (b *Bus) Publish(e Event) {
	subs := b.subs
	for _, s := range subs {
		if s.all || s.kinds.Has(e.Kind) {
			s.fn(e)
		}
	}
}
