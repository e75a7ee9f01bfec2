package animatronic

import (
	"fmt"

	"nightshift/pkg/engine/rng"
	"nightshift/pkg/engine/weighted"
	"nightshift/pkg/game/door"
	"nightshift/pkg/game/events"
)

// Agent is the profile-driven implementation of Animatronic.
type Agent struct {
	profile *Profile
	office  Host
	rooms   map[Room]bool

	retreats map[Room]*weighted.Table[Room]

	aiLevel  int
	location Room
	timer    float64
	spotted  bool
	blocked  bool
}

var _ Animatronic = (*Agent)(nil)

// NewAgent creates an agent for profile that reports to office.
// It panics if the profile is malformed.
func NewAgent(profile *Profile, office Host) *Agent {
	if err := profile.Validate(); err != nil {
		panic(fmt.Sprintf("animatronic: %v", err))
	}
	a := &Agent{
		profile:  profile,
		office:   office,
		rooms:    make(map[Room]bool),
		retreats: make(map[Room]*weighted.Table[Room], len(profile.Retreats)),
		location: ShowStage,
	}
	profile.Rooms().Each(func(r Room) { a.rooms[r] = true })
	for from, rt := range profile.Retreats {
		tab := weighted.New[Room]()
		for _, rr := range rt.Rooms {
			if _, err := tab.AddOrSet(rr.Room, rr.Weight); err != nil {
				panic(fmt.Sprintf("animatronic: %s retreat from %v: %v", profile.Name, from, err))
			}
		}
		a.retreats[from] = tab
	}
	return a
}

func (a *Agent) ID() ID { return a.profile.ID }
func (a *Agent) Name() string { return a.profile.Name }
func (a *Agent) Door() door.Side { return a.profile.Door }
func (a *Agent) Profile() *Profile { return a.profile }
func (a *Agent) Location() Room { return a.location }
func (a *Agent) AILevel() int { return a.aiLevel }
func (a *Agent) Spotted() bool { return a.spotted }
func (a *Agent) Blocked() bool { return a.blocked }
func (a *Agent) TimeUntilNextMove() float64 { return a.timer }

// Waiting reports whether the agent is standing at its office door.
func (a *Agent) Waiting() bool { return a.location == a.profile.DoorRoom }

// SetAILevel assigns the AI level. Out-of-range levels are rejected and the
// current level is kept.
func (a *Agent) SetAILevel(level int) error {
	if level < MinAILevel || level > MaxAILevel {
		return fmt.Errorf("%s: %w (got %d)", a.profile.Name, ErrAILevelRange, level)
	}
	a.aiLevel = level
	return nil
}

// SetLocation moves the agent without notifications. Intended for developer
// tooling and tests; it panics for rooms outside the agent's graph.
func (a *Agent) SetLocation(r Room) {
	a.mustOwn(r)
	a.location = r
}

// SetTimeUntilNextMove overrides the movement timer.
func (a *Agent) SetTimeUntilNextMove(seconds float64) {
	a.timer = seconds
}

func (a *Agent) mustOwn(r Room) {
	if !a.rooms[r] {
		panic(fmt.Sprintf("not implemented: %s has no room %v", a.profile.Name, r))
	}
}

func (a *Agent) rand() *rng.Stream { return a.office.Random() }

// OnStart resets the agent for a new night.
func (a *Agent) OnStart(cfg StartConfig) {
	if err := a.SetAILevel(cfg.AILevel); err != nil {
		panic(err)
	}
	a.mustOwn(cfg.Room)
	a.location = cfg.Room
	a.spotted = false
	a.blocked = false
	a.scheduleMove()
}

// Update counts the movement timer down; an agent at AI 0 never moves.
func (a *Agent) Update(delta float64) {
	if a.aiLevel <= 0 {
		return
	}
	a.timer -= delta
	if a.timer <= 0 {
		a.PerformMovementStep()
	}
}

// PerformMovementStep runs one movement or attack step.
func (a *Agent) PerformMovementStep() {
	a.spotted = false
	a.blocked = false

	if a.location == Office {
		a.Attack()
		return
	}

	p := a.profile
	if a.location == p.DoorRoom {
		if a.office.DoorState(p.Door).Closed {
			from := a.location
			a.location = rng.Pick(a.rand(), p.Backoff)
			a.scheduleMove()
			a.notifyMoved(from)
			return
		}
		a.SneakIn()
		return
	}

	from := a.location
	hops := 1
	if a.rand().Chance(p.MoveTwice.At(a.aiLevel)) {
		hops = 2
	}
	for i := 0; i < hops && a.location != p.DoorRoom; i++ {
		a.location = a.next(a.location)
	}

	if a.location == p.DoorRoom {
		a.notifyMoved(from)
		a.arriveAtDoor()
		return
	}
	a.scheduleMove()
	a.notifyMoved(from)
}

// next picks the successor of room, rolling the room's retreat first.
func (a *Agent) next(room Room) Room {
	if rt, ok := a.profile.Retreats[room]; ok {
		if a.rand().Chance(rt.Chance.At(a.aiLevel)) {
			return a.retreats[room].MustSelect(a.rand())
		}
	}
	succ := a.profile.Edges[room]
	switch len(succ) {
	case 0:
		panic(fmt.Sprintf("not implemented: %s has no way out of %v", a.profile.Name, room))
	case 1:
		return succ[0]
	default:
		return rng.Pick(a.rand(), succ)
	}
}

func (a *Agent) arriveAtDoor() {
	p := a.profile
	st := a.office.DoorState(p.Door)
	if st.Closed {
		a.timer = a.pressureDwell()
	} else {
		a.timer = p.SneakInDelay
	}
	if st.Flashing && !a.spotted {
		a.spotted = true
		if st.Closed {
			a.office.SpottedDoorCooldown(p.Door)
		}
		a.notify(events.AnimatronicSpotted)
	}
}

// SneakIn moves the agent into the office, breaks its door and arms the
// attack timer.
func (a *Agent) SneakIn() {
	p := a.profile
	from := a.location
	a.location = Office
	a.office.BreakDoor(p.Door)
	a.timer = Lerp(p.AttackMin, p.AttackMax, a.rand().Unit())
	a.notify(events.AnimatronicSneakedIn)
	a.notifyMoved(from)
}

// Attack reports the attack to the session.
func (a *Agent) Attack() {
	a.office.AnimatronicAttacked(a.profile.ID)
}

// OnDoorFlashed marks the agent spotted if it is waiting at the lit door.
// Lighting an open door cuts the agent's wait short.
func (a *Agent) OnDoorFlashed(side door.Side) {
	if side != a.profile.Door || !a.Waiting() || a.spotted {
		return
	}
	st := a.office.DoorState(side)
	if !st.Flashing {
		return
	}
	a.spotted = true
	if !st.Closed && a.timer > a.profile.SpottedGrace {
		a.timer = a.profile.SpottedGrace
	}
	a.notify(events.AnimatronicSpotted)
}

// OnDoorOpened lets a waiting agent in if it was already seen or blocked.
func (a *Agent) OnDoorOpened(side door.Side) {
	if side != a.profile.Door || !a.Waiting() {
		return
	}
	if a.spotted || a.blocked {
		a.SneakIn()
	}
}

// OnDoorClosed starts the pressure dwell once per arrival.
func (a *Agent) OnDoorClosed(side door.Side) {
	if side != a.profile.Door || !a.Waiting() || a.blocked {
		return
	}
	a.timer = a.pressureDwell()
	a.blocked = true
}

// scheduleMove rolls the standard movement interval: the bounds scale with
// AI level, then a value is drawn between them.
func (a *Agent) scheduleMove() {
	p := a.profile
	lo := p.IntervalMin.At(a.aiLevel)
	hi := p.IntervalMax.At(a.aiLevel)
	a.timer = Lerp(lo, hi, a.rand().Unit())
}

// pressureDwell rolls how long the agent keeps working a closed door.
func (a *Agent) pressureDwell() float64 {
	p := a.profile
	lo := p.DwellMin.At(a.aiLevel)
	hi := p.DwellMax.At(a.aiLevel)
	return ExpLerp(lo, hi, a.rand().Unit())
}

func (a *Agent) notify(kind events.Kind) {
	a.office.Notify(events.Event{
		Kind:      kind,
		Door:      a.profile.Door,
		Agent:     int(a.profile.ID),
		AgentName: a.profile.Name,
		To:        int(a.location),
		ToName:    a.location.String(),
	})
}

func (a *Agent) notifyMoved(from Room) {
	a.office.Notify(events.Event{
		Kind:      events.AnimatronicMoved,
		Door:      a.profile.Door,
		Agent:     int(a.profile.ID),
		AgentName: a.profile.Name,
		From:      int(from),
		FromName:  from.String(),
		To:        int(a.location),
		ToName:    a.location.String(),
	})
}
