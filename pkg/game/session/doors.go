package session

import (
	"nightshift/pkg/engine/rng"
	"nightshift/pkg/game/animatronic"
	"nightshift/pkg/game/door"
	"nightshift/pkg/game/events"
)

// CloseDoor closes the door on side.
func (s *Session) CloseDoor(side door.Side) door.Result { return s.command(side, s.setClosed, true) }

// OpenDoor opens the door on side.
func (s *Session) OpenDoor(side door.Side) door.Result { return s.command(side, s.setClosed, false) }

// FlashDoor turns the hallway light on side on.
func (s *Session) FlashDoor(side door.Side) door.Result { return s.command(side, s.setFlashing, true) }

// StopFlashDoor turns the hallway light on side off.
func (s *Session) StopFlashDoor(side door.Side) door.Result {
	return s.command(side, s.setFlashing, false)
}

// ToggleDoor opens a closed door and closes an open one.
func (s *Session) ToggleDoor(side door.Side) door.Result {
	if s.DoorState(side).Closed {
		return s.OpenDoor(side)
	}
	return s.CloseDoor(side)
}

// ToggleFlash switches the hallway light on side.
func (s *Session) ToggleFlash(side door.Side) door.Result {
	if s.DoorState(side).Flashing {
		return s.StopFlashDoor(side)
	}
	return s.FlashDoor(side)
}

// command gates player input: nothing responds outside Playing or in the
// dark.
func (s *Session) command(side door.Side, apply func(door.Side, bool) door.Result, value bool) door.Result {
	if s.state != Playing || s.outage {
		return door.Failed
	}
	return apply(side, value)
}

func (s *Session) setClosed(side door.Side, closed bool) door.Result {
	r := s.doors[side].SetClosed(closed)
	if r != door.Success {
		return r
	}
	st := s.doors[side].State()
	s.publish(doorEvent(events.DoorChanged, side, st.Closed, st.Flashing))
	for _, a := range s.agents {
		if closed {
			a.OnDoorClosed(side)
		} else {
			a.OnDoorOpened(side)
		}
	}
	return r
}

func (s *Session) setFlashing(side door.Side, flashing bool) door.Result {
	r := s.doors[side].SetFlashing(flashing)
	if r != door.Success {
		return r
	}
	st := s.doors[side].State()
	s.publish(doorEvent(events.DoorFlashChanged, side, st.Closed, st.Flashing))
	for _, a := range s.agents {
		a.OnDoorFlashed(side)
	}
	return r
}

// BreakDoor permanently opens and darkens the door on side for the rest of
// the night. Breaking a broken door does nothing.
func (s *Session) BreakDoor(side door.Side) {
	prev, changed := s.doors[side].Break()
	if !changed {
		return
	}
	s.publish(doorEvent(events.DoorBroken, side, prev.Closed, prev.Flashing))
}

// SpottedDoorCooldown locks the toggle on side for the spotted grace period.
func (s *Session) SpottedDoorCooldown(side door.Side) {
	s.doors[side].SetToggleCooldown(door.SpottedCooldown)
}

// DoorState reports the state of the door on side.
func (s *Session) DoorState(side door.Side) door.State { return s.doors[side].State() }

// Door exposes the door on side, cooldowns and buffers included. Callers
// must not mutate it.
func (s *Session) Door(side door.Side) *door.Door { return s.doors[side] }

// Notify publishes an animatronic notification stamped with the current
// night and time.
func (s *Session) Notify(e events.Event) { s.publish(e) }

// Random is the gameplay stream shared by every animatronic.
func (s *Session) Random() *rng.Stream { return s.streams.Gameplay }

// Cosmetic is the stream reserved for presentation effects.
func (s *Session) Cosmetic() *rng.Stream { return s.streams.Cosmetic }

// ActiveConsumption is the current draw of closed doors and lit hallways in
// percent per second.
func (s *Session) ActiveConsumption() float64 {
	var total float64
	for _, d := range s.doors {
		st := d.State()
		if st.Closed {
			total += DoorConsumption
		}
		if st.Flashing {
			total += FlashConsumption
		}
	}
	return total
}

var _ animatronic.Host = (*Session)(nil)
