// Package session is the night-shift arbiter. It owns the two office doors,
// the power budget and the animatronics, and advances them all once per
// tick in a fixed order:
//
//  1. elapsed time (and the end of the night)
//  2. door cooldowns, replaying buffered inputs whose cooldown just ran out
//  3. power drain (and the outage that follows an empty battery)
//  4. every animatronic, in roster order
//
// The session is single-threaded: all state changes happen inside Update,
// the door commands and the notifications they trigger.
package session

import (
	"errors"
	"fmt"

	"nightshift/pkg/engine/rng"
	"nightshift/pkg/game/animatronic"
	"nightshift/pkg/game/door"
	"nightshift/pkg/game/events"
	"nightshift/pkg/game/night"
)

// State is the session lifecycle state.
type State int

// Session states. Victory, GameOver and GameOverSpecial are terminal until
// the next Start.
const (
	NotPlaying State = iota
	Playing
	Victory
	GameOver
	GameOverSpecial
)

func (s State) String() string {
	switch s {
	case NotPlaying:
		return "not_playing"
	case Playing:
		return "playing"
	case Victory:
		return "victory"
	case GameOver:
		return "game_over"
	case GameOverSpecial:
		return "game_over_special"
	}
	panic(fmt.Sprintf("not implemented: session state %d", int(s)))
}

// Power draw of active defenses, in percent per second.
const (
	DoorConsumption  = 0.12
	FlashConsumption = 0.08
)

// Defaults for Options.
const (
	DefaultHourLength     = 180.0
	DefaultOutageMinDelay = 5.0
	DefaultOutageMaxDelay = 20.0
)

// ErrInvalidNight is returned by Start for nights the table does not cover.
var ErrInvalidNight = errors.New("invalid night")

// Options configures a session.
type Options struct {
	// Seed for both random streams; 0 picks a time-based seed.
	Seed int64
	// HourLength is the length of one in-game hour in seconds. Zero selects
	// DefaultHourLength; a negative value disables the end of the night.
	HourLength float64
	// Nights overrides the built-in night table.
	Nights *night.Table
	// Outage delays bound how long the office survives in the dark.
	OutageMinDelay float64
	OutageMaxDelay float64
}

func (o Options) withDefaults() (Options, error) {
	if o.HourLength == 0 {
		o.HourLength = DefaultHourLength
	}
	if o.Nights == nil {
		o.Nights = night.Default()
	}
	if o.OutageMinDelay == 0 && o.OutageMaxDelay == 0 {
		o.OutageMinDelay = DefaultOutageMinDelay
		o.OutageMaxDelay = DefaultOutageMaxDelay
	}
	if o.OutageMinDelay < 0 || o.OutageMinDelay > o.OutageMaxDelay {
		return o, fmt.Errorf("invalid outage delay range [%v, %v]", o.OutageMinDelay, o.OutageMaxDelay)
	}
	return o, nil
}

// Session is one played night.
type Session struct {
	opts    Options
	streams rng.Streams
	bus     *events.Bus

	state   State
	night   int
	info    night.Info
	elapsed float64
	power   float64

	doors  [len(door.Sides)]*door.Door
	agents []animatronic.Animatronic

	outage      bool
	outageTimer float64
	attacker    int
}

// New creates a session in the NotPlaying state.
func New(opts Options) (*Session, error) {
	opts, err := opts.withDefaults()
	if err != nil {
		return nil, err
	}
	s := &Session{
		opts:     opts,
		streams:  rng.NewStreams(opts.Seed),
		bus:      events.NewBus(),
		attacker: events.NoAgent,
	}
	for _, side := range door.Sides {
		s.doors[side] = door.New(side)
	}
	s.agents = animatronic.NewRoster(s)
	return s, nil
}

// Start begins (or restarts) a night. Doors, power, timers and every
// animatronic are reset, and the gameplay stream is rewound so the same
// night with the same inputs replays identically.
func (s *Session) Start(n int) error {
	info, err := s.opts.Nights.Lookup(n)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidNight, err)
	}
	s.streams.Gameplay.Reset(s.streams.Gameplay.Seed())

	s.state = Playing
	s.night = n
	s.info = info
	s.elapsed = 0
	s.power = info.StartingPower
	s.outage = false
	s.outageTimer = 0
	s.attacker = events.NoAgent
	for _, d := range s.doors {
		d.Reset()
	}
	for _, a := range s.agents {
		a.OnStart(info.Agent(a.ID()))
	}
	s.publish(events.Event{Kind: events.SessionStarted, Agent: events.NoAgent})
	return nil
}

// Update advances the night by delta seconds. It does nothing unless the
// session is Playing. It panics on a negative delta.
func (s *Session) Update(delta float64) {
	if delta < 0 {
		panic(fmt.Sprintf("session: negative delta %v", delta))
	}
	if s.state != Playing || delta == 0 {
		return
	}

	s.elapsed += delta
	if s.opts.HourLength > 0 && s.elapsed >= s.opts.HourLength*night.HoursPerNight {
		s.state = Victory
		s.publish(events.Event{Kind: events.NightCompleted, Agent: events.NoAgent})
		return
	}

	var toggles, flashes [len(door.Sides)]door.Request
	for _, side := range door.Sides {
		toggles[side], flashes[side] = s.doors[side].Advance(delta)
	}
	for _, side := range door.Sides {
		if toggles[side].Pending {
			s.setClosed(side, toggles[side].Value)
		}
		if flashes[side].Pending {
			s.setFlashing(side, flashes[side].Value)
		}
	}

	if s.outage {
		s.outageTimer -= delta
		if s.outageTimer <= 0 {
			s.state = GameOverSpecial
			s.publish(events.Event{Kind: events.AnimatronicAttack, Agent: events.NoAgent})
			return
		}
	} else {
		s.power -= (s.info.PassiveConsumption + s.ActiveConsumption()) * delta
		if s.power <= 0 {
			s.powerOut()
		}
	}

	for _, a := range s.agents {
		a.Update(delta)
	}
}

// powerOut clamps power at zero, forces both doors open and dark, and arms
// the outage timer.
func (s *Session) powerOut() {
	s.power = 0
	s.outage = true
	for _, side := range door.Sides {
		prev := s.doors[side].ForceOpen()
		if prev.Closed {
			s.publish(doorEvent(events.DoorChanged, side, false, false))
			for _, a := range s.agents {
				a.OnDoorOpened(side)
			}
		}
		if prev.Flashing {
			s.publish(doorEvent(events.DoorFlashChanged, side, false, false))
			for _, a := range s.agents {
				a.OnDoorFlashed(side)
			}
		}
	}
	s.outageTimer = animatronic.Lerp(s.opts.OutageMinDelay, s.opts.OutageMaxDelay, s.streams.Gameplay.Unit())
	s.publish(events.Event{Kind: events.PowerOut, Agent: events.NoAgent})
}

func doorEvent(kind events.Kind, side door.Side, closed, lit bool) events.Event {
	return events.Event{Kind: kind, Door: side, Closed: closed, Lit: lit, Agent: events.NoAgent}
}

func (s *Session) publish(e events.Event) {
	e.Night = s.night
	e.Elapsed = s.elapsed
	s.bus.Publish(e)
}

// Subscribe registers a listener for the given kinds (all kinds if none).
func (s *Session) Subscribe(fn events.Listener, kinds ...events.Kind) events.Subscription {
	return s.bus.Subscribe(fn, kinds...)
}

// Unsubscribe removes a listener.
func (s *Session) Unsubscribe(id events.Subscription) bool {
	return s.bus.Unsubscribe(id)
}

// AnimatronicAttacked ends the night. Only the first attack while Playing
// counts.
func (s *Session) AnimatronicAttacked(id animatronic.ID) {
	if s.state != Playing {
		return
	}
	s.state = GameOver
	s.attacker = int(id)
	s.publish(events.Event{
		Kind:      events.AnimatronicAttack,
		Agent:     int(id),
		AgentName: s.Agent(id).Name(),
	})
}
