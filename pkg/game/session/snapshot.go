package session

import (
	"nightshift/pkg/game/animatronic"
	"nightshift/pkg/game/door"
	"nightshift/pkg/game/events"
	"nightshift/pkg/game/night"
)

func (s *Session) State() State { return s.state }
func (s *Session) Night() int { return s.night }
func (s *Session) Elapsed() float64 { return s.elapsed }
func (s *Session) PowerRemaining() float64 { return s.power }
func (s *Session) PowerOut() bool { return s.outage }
func (s *Session) OutageTimer() float64 { return s.outageTimer }
func (s *Session) HourLength() float64 { return s.opts.HourLength }
func (s *Session) Nights() *night.Table { return s.opts.Nights }
func (s *Session) PassiveConsumption() float64 { return s.info.PassiveConsumption }

// Hour is the in-game hour, 0 (12 AM) through 6 (6 AM).
func (s *Session) Hour() int { return night.Hour(s.elapsed, s.opts.HourLength) }

// Attacker reports which animatronic ended the night. ok is false when
// nobody has attacked, or when the night ended in the dark.
func (s *Session) Attacker() (id animatronic.ID, ok bool) {
	if s.attacker == events.NoAgent {
		return 0, false
	}
	return animatronic.ID(s.attacker), true
}

// Agents returns the roster in update order.
func (s *Session) Agents() []animatronic.Animatronic { return s.agents }

// Agent returns the animatronic with the given id.
func (s *Session) Agent(id animatronic.ID) animatronic.Animatronic {
	for _, a := range s.agents {
		if a.ID() == id {
			return a
		}
	}
	panic("session: no animatronic " + id.String())
}

// DoorSnapshot is a copy of one door at a point in time.
type DoorSnapshot struct {
	Side           door.Side
	State          door.State
	ToggleCooldown float64
	FlashCooldown  float64
}

// AgentSnapshot is a copy of one animatronic at a point in time.
type AgentSnapshot struct {
	ID                animatronic.ID
	Name              string
	Door              door.Side
	Location          animatronic.Room
	AILevel           int
	Spotted           bool
	Blocked           bool
	TimeUntilNextMove float64
}

// Snapshot is a read-only copy of the whole session for frontends.
type Snapshot struct {
	State              State
	Night              int
	Elapsed            float64
	Hour               int
	PowerRemaining     float64
	PassiveConsumption float64
	ActiveConsumption  float64
	PowerOut           bool
	Doors              [len(door.Sides)]DoorSnapshot
	Agents             []AgentSnapshot
}

// Snapshot copies the current state.
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		State:              s.state,
		Night:              s.night,
		Elapsed:            s.elapsed,
		Hour:               s.Hour(),
		PowerRemaining:     s.power,
		PassiveConsumption: s.info.PassiveConsumption,
		ActiveConsumption:  s.ActiveConsumption(),
		PowerOut:           s.outage,
		Agents:             make([]AgentSnapshot, 0, len(s.agents)),
	}
	for _, side := range door.Sides {
		d := s.doors[side]
		snap.Doors[side] = DoorSnapshot{
			Side:           side,
			State:          d.State(),
			ToggleCooldown: d.ToggleCooldown(),
			FlashCooldown:  d.FlashCooldown(),
		}
	}
	for _, a := range s.agents {
		snap.Agents = append(snap.Agents, AgentSnapshot{
			ID:                a.ID(),
			Name:              a.Name(),
			Door:              a.Door(),
			Location:          a.Location(),
			AILevel:           a.AILevel(),
			Spotted:           a.Spotted(),
			Blocked:           a.Blocked(),
			TimeUntilNextMove: a.TimeUntilNextMove(),
		})
	}
	return snap
}
