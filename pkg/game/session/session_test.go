package session

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"nightshift/pkg/game/animatronic"
	"nightshift/pkg/game/door"
	"nightshift/pkg/game/events"
	"nightshift/pkg/game/night"
)

type recorder struct {
	events []events.Event
}

func (r *recorder) listen(e events.Event) { r.events = append(r.events, e) }

func (r *recorder) count(kind events.Kind) int {
	n := 0
	for _, e := range r.events {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

func newSession(t *testing.T, opts Options, n int) (*Session, *recorder) {
	t.Helper()
	s, err := New(opts)
	if err != nil {
		t.Fatalf("New err: %v", err)
	}
	rec := &recorder{}
	s.Subscribe(rec.listen)
	if err := s.Start(n); err != nil {
		t.Fatalf("Start(%d) err: %v", n, err)
	}
	return s, rec
}

// quietNights is the built-in table with every animatronic switched off.
func quietNights() *night.Table {
	tab := night.Default()
	for i := range tab {
		tab[i].Agents = nil
	}
	return tab
}

func agent(t *testing.T, s *Session, id animatronic.ID) *animatronic.Agent {
	t.Helper()
	a, ok := s.Agent(id).(*animatronic.Agent)
	if !ok {
		t.Fatalf("Agent(%v) is %T", id, s.Agent(id))
	}
	return a
}

// only leaves id active and parks every other animatronic.
func only(t *testing.T, s *Session, id animatronic.ID) *animatronic.Agent {
	t.Helper()
	for _, a := range s.Agents() {
		if a.ID() != id {
			if err := a.SetAILevel(0); err != nil {
				t.Fatal(err)
			}
		}
	}
	return agent(t, s, id)
}

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestStart_ResetsNight(t *testing.T) {
	s, err := New(Options{Seed: 3})
	if err != nil {
		t.Fatalf("New err: %v", err)
	}
	rec := &recorder{}
	s.Subscribe(rec.listen)

	for n := night.First; n <= night.Last; n++ {
		t.Run(fmt.Sprintf("night %d", n), func(t *testing.T) {
			if err := s.Start(night.Last + 1 - n); err != nil {
				t.Fatal(err)
			}
			s.CloseDoor(door.Left)
			s.FlashDoor(door.Right)
			s.Update(1)
			s.BreakDoor(door.Right)
			started := rec.count(events.SessionStarted)

			if err := s.Start(n); err != nil {
				t.Fatalf("Start(%d) err: %v", n, err)
			}
			info, _ := night.Default().Lookup(n)
			if s.State() != Playing || s.Night() != n {
				t.Errorf("state, night = %v, %d, want playing, %d", s.State(), s.Night(), n)
			}
			if s.PowerRemaining() != info.StartingPower || s.Elapsed() != 0 {
				t.Errorf("power, elapsed = %v, %v, want %v, 0", s.PowerRemaining(), s.Elapsed(), info.StartingPower)
			}
			if got := s.ActiveConsumption(); got != 0 {
				t.Errorf("ActiveConsumption() = %v, want 0", got)
			}
			for _, a := range s.Agents() {
				want := info.Agent(a.ID())
				if a.AILevel() != want.AILevel || a.Location() != want.Room {
					t.Errorf("%s = AI %d in %v, want AI %d in %v", a.Name(), a.AILevel(), a.Location(), want.AILevel, want.Room)
				}
			}
			for _, side := range door.Sides {
				st := s.DoorState(side)
				if st.Closed || st.Flashing || st.Broken {
					t.Errorf("%v door = %+v, want open, dark and whole", side, st)
				}
				if d := s.Door(side); d.ToggleCooldown() != 0 || d.FlashCooldown() != 0 {
					t.Errorf("%v door cooldowns = %v, %v, want 0", side, d.ToggleCooldown(), d.FlashCooldown())
				}
			}
			if got := rec.count(events.SessionStarted) - started; got != 1 {
				t.Errorf("SessionStarted published %d times, want 1", got)
			}
		})
	}
}

func TestStart_InvalidNight(t *testing.T) {
	s, err := New(Options{Seed: 1})
	if err != nil {
		t.Fatal(err)
	}
	for _, n := range []int{0, 8} {
		if err := s.Start(n); !errors.Is(err, ErrInvalidNight) {
			t.Errorf("Start(%d) = %v, want ErrInvalidNight", n, err)
		}
	}
	if s.State() != NotPlaying {
		t.Errorf("State() = %v after failed starts, want not_playing", s.State())
	}
}

func TestNew_RejectsBadOutageRange(t *testing.T) {
	if _, err := New(Options{OutageMinDelay: 10, OutageMaxDelay: 2}); err == nil {
		t.Error("New with inverted outage range err = nil, want error")
	}
}

func TestNightOne_NothingHappens(t *testing.T) {
	s, rec := newSession(t, Options{Seed: 99}, 1)
	for i := 0; i < 10000; i++ {
		s.Update(0.1)
	}
	if s.State() != Playing {
		t.Fatalf("State() = %v after 1000s of night 1, want playing", s.State())
	}
	for _, a := range s.Agents() {
		if a.Location() != animatronic.ShowStage {
			t.Errorf("%s moved to %v", a.Name(), a.Location())
		}
	}
	if s.PowerRemaining() != night.MaxPower {
		t.Errorf("PowerRemaining() = %v, want %v", s.PowerRemaining(), night.MaxPower)
	}
	if n := rec.count(events.AnimatronicMoved); n != 0 {
		t.Errorf("%d moves on night 1, want 0", n)
	}
}

func TestCloseDoor_ConsumptionAndCooldown(t *testing.T) {
	s, _ := newSession(t, Options{Seed: 1, Nights: quietNights()}, 2)

	if r := s.CloseDoor(door.Left); r != door.Success {
		t.Fatalf("CloseDoor = %v, want success", r)
	}
	if got := s.ActiveConsumption(); got != DoorConsumption {
		t.Errorf("ActiveConsumption() = %v, want %v", got, DoorConsumption)
	}
	if r := s.OpenDoor(door.Left); r != door.FailedCooldown {
		t.Errorf("OpenDoor during cooldown = %v, want failed_cooldown", r)
	}
	s.Update(door.ToggleCooldown)
	if r := s.OpenDoor(door.Left); r != door.Success {
		t.Fatalf("OpenDoor after cooldown = %v, want success", r)
	}
	if got := s.ActiveConsumption(); got != 0 {
		t.Errorf("ActiveConsumption() after round trip = %v, want 0", got)
	}

	if r := s.FlashDoor(door.Right); r != door.Success {
		t.Fatalf("FlashDoor = %v, want success", r)
	}
	if got := s.ActiveConsumption(); got != FlashConsumption {
		t.Errorf("ActiveConsumption() lit = %v, want %v", got, FlashConsumption)
	}
}

func TestDoorCommand_SameStateFails(t *testing.T) {
	s, rec := newSession(t, Options{Seed: 1, Nights: quietNights()}, 2)
	if r := s.OpenDoor(door.Right); r != door.Failed {
		t.Errorf("OpenDoor on open door = %v, want failed", r)
	}
	if r := s.StopFlashDoor(door.Right); r != door.Failed {
		t.Errorf("StopFlashDoor on dark door = %v, want failed", r)
	}
	if cd := s.Door(door.Right).ToggleCooldown(); cd != 0 {
		t.Errorf("ToggleCooldown() = %v after failed command, want 0", cd)
	}
	if n := rec.count(events.DoorChanged); n != 0 {
		t.Errorf("DoorChanged published %d times, want 0", n)
	}
}

func TestToggle(t *testing.T) {
	s, _ := newSession(t, Options{Seed: 1, Nights: quietNights()}, 2)
	if r := s.ToggleDoor(door.Left); r != door.Success || !s.DoorState(door.Left).Closed {
		t.Fatalf("ToggleDoor = %v, closed = %v", r, s.DoorState(door.Left).Closed)
	}
	if r := s.ToggleFlash(door.Left); r != door.Success || !s.DoorState(door.Left).Flashing {
		t.Fatalf("ToggleFlash = %v, lit = %v", r, s.DoorState(door.Left).Flashing)
	}
	s.Update(1)
	if r := s.ToggleDoor(door.Left); r != door.Success || s.DoorState(door.Left).Closed {
		t.Errorf("second ToggleDoor = %v, closed = %v", r, s.DoorState(door.Left).Closed)
	}
	if r := s.ToggleFlash(door.Left); r != door.Success || s.DoorState(door.Left).Flashing {
		t.Errorf("second ToggleFlash = %v, lit = %v", r, s.DoorState(door.Left).Flashing)
	}
}

func TestBufferedInputReplays(t *testing.T) {
	s, rec := newSession(t, Options{Seed: 1, Nights: quietNights()}, 2)
	s.CloseDoor(door.Left)
	s.Update(0.4)

	if r := s.OpenDoor(door.Left); r != door.FailedCooldown {
		t.Fatalf("OpenDoor near end of cooldown = %v, want failed_cooldown", r)
	}
	if !s.DoorState(door.Left).Closed {
		t.Fatal("door opened before cooldown ran out")
	}
	s.Update(0.1)
	if s.DoorState(door.Left).Closed {
		t.Error("buffered open was not replayed when cooldown ran out")
	}
	if got := rec.count(events.DoorChanged); got != 2 {
		t.Errorf("DoorChanged published %d times, want 2", got)
	}
}

func TestPowerDrain(t *testing.T) {
	s, _ := newSession(t, Options{Seed: 1, Nights: quietNights()}, 2)
	s.Update(10)
	if got, want := s.PowerRemaining(), 100-0.05*10; !approx(got, want) {
		t.Errorf("PowerRemaining() = %v, want %v", got, want)
	}
	s.CloseDoor(door.Right)
	s.Update(10)
	if got, want := s.PowerRemaining(), 99.5-(0.05+DoorConsumption)*10; !approx(got, want) {
		t.Errorf("PowerRemaining() with door closed = %v, want %v", got, want)
	}
}

func TestPowerOut(t *testing.T) {
	tab := quietNights()
	tab[0].StartingPower = 1
	tab[0].PassiveConsumption = 0.5
	s, rec := newSession(t, Options{Seed: 5, Nights: tab}, 1)

	s.CloseDoor(door.Left)
	s.FlashDoor(door.Right)
	s.Update(1)
	if s.PowerOut() {
		t.Fatal("power ran out early")
	}
	s.Update(1)
	if !s.PowerOut() || s.PowerRemaining() != 0 {
		t.Fatalf("PowerOut() = %v, PowerRemaining() = %v, want outage at 0", s.PowerOut(), s.PowerRemaining())
	}
	for _, side := range door.Sides {
		if st := s.DoorState(side); st.Closed || st.Flashing {
			t.Errorf("%v door = %+v during outage, want open and dark", side, st)
		}
	}
	if s.ActiveConsumption() != 0 {
		t.Errorf("ActiveConsumption() = %v during outage, want 0", s.ActiveConsumption())
	}
	if rec.count(events.PowerOut) != 1 {
		t.Errorf("PowerOut published %d times, want 1", rec.count(events.PowerOut))
	}
	if r := s.CloseDoor(door.Left); r != door.Failed {
		t.Errorf("CloseDoor in the dark = %v, want failed", r)
	}
	if d := s.OutageTimer(); d < DefaultOutageMinDelay || d > DefaultOutageMaxDelay {
		t.Errorf("OutageTimer() = %v, want within default delays", d)
	}

	s.Update(s.OutageTimer() + 0.01)
	if s.State() != GameOverSpecial {
		t.Fatalf("State() = %v after outage, want game_over_special", s.State())
	}
	if _, ok := s.Attacker(); ok {
		t.Error("Attacker() ok = true for an outage ending")
	}
	last := rec.events[len(rec.events)-1]
	if last.Kind != events.AnimatronicAttack || last.Agent != events.NoAgent {
		t.Errorf("last event = %v agent %d, want attack with no agent", last.Kind, last.Agent)
	}
}

func TestVictory(t *testing.T) {
	s, rec := newSession(t, Options{Seed: 1, HourLength: 10}, 1)
	s.Update(30)
	if s.State() != Playing || s.Hour() != 3 {
		t.Fatalf("State(), Hour() = %v, %d at 30s, want playing, 3", s.State(), s.Hour())
	}
	s.Update(30)
	if s.State() != Victory {
		t.Fatalf("State() = %v at 60s, want victory", s.State())
	}
	if rec.count(events.NightCompleted) != 1 {
		t.Errorf("NightCompleted published %d times, want 1", rec.count(events.NightCompleted))
	}
	if s.Hour() != night.HoursPerNight {
		t.Errorf("Hour() = %d, want %d", s.Hour(), night.HoursPerNight)
	}
}

func TestVictory_Disabled(t *testing.T) {
	s, _ := newSession(t, Options{Seed: 1, HourLength: -1}, 1)
	s.Update(100000)
	if s.State() != Playing {
		t.Errorf("State() = %v, want playing with no end of night", s.State())
	}
}

func TestFrozenAfterNightEnds(t *testing.T) {
	s, _ := newSession(t, Options{Seed: 1, HourLength: 1}, 2)
	s.Update(6)
	if s.State() != Victory {
		t.Fatalf("State() = %v, want victory", s.State())
	}
	before := s.Snapshot()
	s.Update(5)
	if r := s.CloseDoor(door.Left); r != door.Failed {
		t.Errorf("CloseDoor after victory = %v, want failed", r)
	}
	if diff := cmp.Diff(before, s.Snapshot()); diff != "" {
		t.Errorf("state changed after the night ended (-before +after):\n%s", diff)
	}
}

func TestOpenDoor_SneakInThenAttack(t *testing.T) {
	s, rec := newSession(t, Options{Seed: 11}, 7)
	rabbit := only(t, s, animatronic.Rabbit)
	rabbit.SetLocation(animatronic.LeftDoor)
	rabbit.SetTimeUntilNextMove(0)

	s.Update(0.01)
	if rabbit.Location() != animatronic.Office {
		t.Fatalf("Rabbit in %v, want office", rabbit.Location())
	}
	if !s.DoorState(door.Left).Broken {
		t.Error("left door not broken after sneak in")
	}
	if rec.count(events.AnimatronicSneakedIn) != 1 {
		t.Errorf("SneakedIn published %d times, want 1", rec.count(events.AnimatronicSneakedIn))
	}
	if r := s.CloseDoor(door.Left); r != door.FailedBroken {
		t.Errorf("CloseDoor on broken door = %v, want failed_broken", r)
	}

	for i := 0; i < 100 && s.State() == Playing; i++ {
		s.Update(0.1)
	}
	if s.State() != GameOver {
		t.Fatalf("State() = %v, want game_over", s.State())
	}
	if id, ok := s.Attacker(); !ok || id != animatronic.Rabbit {
		t.Errorf("Attacker() = %v, %v, want rabbit", id, ok)
	}
}

func TestFirstAttackerWins(t *testing.T) {
	s, rec := newSession(t, Options{Seed: 2}, 7)
	only(t, s, animatronic.Rabbit)
	duck := agent(t, s, animatronic.Duck)
	if err := duck.SetAILevel(20); err != nil {
		t.Fatal(err)
	}
	for _, id := range []animatronic.ID{animatronic.Rabbit, animatronic.Duck} {
		a := agent(t, s, id)
		a.SetLocation(animatronic.Office)
		a.SetTimeUntilNextMove(0)
	}

	s.Update(0.01)
	if s.State() != GameOver {
		t.Fatalf("State() = %v, want game_over", s.State())
	}
	if id, _ := s.Attacker(); id != animatronic.Rabbit {
		t.Errorf("Attacker() = %v, want rabbit", id)
	}
	if n := rec.count(events.AnimatronicAttack); n != 1 {
		t.Errorf("Attack published %d times, want 1", n)
	}
}

func TestClosedDoor_BlocksThenBacksOff(t *testing.T) {
	s, _ := newSession(t, Options{Seed: 8}, 7)
	rabbit := only(t, s, animatronic.Rabbit)
	rabbit.SetLocation(animatronic.LeftDoor)
	rabbit.SetTimeUntilNextMove(30)

	s.CloseDoor(door.Left)
	if !rabbit.Blocked() {
		t.Fatal("Blocked() = false after closing on a waiting agent")
	}
	for i := 0; i < 200 && rabbit.Location() == animatronic.LeftDoor; i++ {
		s.Update(0.1)
	}
	backoff := map[animatronic.Room]bool{}
	for _, r := range animatronic.RabbitProfile().Backoff {
		backoff[r] = true
	}
	if !backoff[rabbit.Location()] {
		t.Errorf("Rabbit retreated to %v, want a backoff room", rabbit.Location())
	}
	if st := s.DoorState(door.Left); !st.Closed || st.Broken {
		t.Errorf("left door = %+v, want closed and intact", st)
	}
	if s.State() != Playing {
		t.Errorf("State() = %v, want playing", s.State())
	}
}

func TestFlash_SpotsWaitingAgent(t *testing.T) {
	s, rec := newSession(t, Options{Seed: 4}, 7)
	rabbit := only(t, s, animatronic.Rabbit)
	rabbit.SetLocation(animatronic.LeftDoor)
	rabbit.SetTimeUntilNextMove(30)

	if r := s.FlashDoor(door.Left); r != door.Success {
		t.Fatalf("FlashDoor = %v", r)
	}
	if !rabbit.Spotted() {
		t.Error("Spotted() = false under the light")
	}
	if got := rabbit.TimeUntilNextMove(); got != animatronic.RabbitProfile().SpottedGrace {
		t.Errorf("TimeUntilNextMove() = %v, want spotted grace", got)
	}
	if rec.count(events.AnimatronicSpotted) != 1 {
		t.Errorf("Spotted published %d times, want 1", rec.count(events.AnimatronicSpotted))
	}
}

func TestBreakDoor_Idempotent(t *testing.T) {
	s, rec := newSession(t, Options{Seed: 1, Nights: quietNights()}, 2)
	s.CloseDoor(door.Right)
	s.BreakDoor(door.Right)
	s.BreakDoor(door.Right)
	if st := s.DoorState(door.Right); !st.Broken || st.Closed {
		t.Errorf("right door = %+v, want broken and open", st)
	}
	if s.ActiveConsumption() != 0 {
		t.Errorf("ActiveConsumption() = %v for a broken door, want 0", s.ActiveConsumption())
	}
	if n := rec.count(events.DoorBroken); n != 1 {
		t.Errorf("DoorBroken published %d times, want 1", n)
	}
}

func TestSpottedDoorCooldown(t *testing.T) {
	s, _ := newSession(t, Options{Seed: 1}, 2)
	s.SpottedDoorCooldown(door.Left)
	if cd := s.Door(door.Left).ToggleCooldown(); cd != door.SpottedCooldown {
		t.Errorf("ToggleCooldown() = %v, want %v", cd, door.SpottedCooldown)
	}
}

func TestEventsCarryNightAndTime(t *testing.T) {
	s, rec := newSession(t, Options{Seed: 1, Nights: quietNights()}, 3)
	s.Update(2.5)
	s.CloseDoor(door.Left)
	e := rec.events[len(rec.events)-1]
	if e.Kind != events.DoorChanged || e.Night != 3 || e.Elapsed != 2.5 || !e.Closed {
		t.Errorf("event = %+v, want door_changed closed on night 3 at 2.5s", e)
	}
}

// play runs a scripted night and returns everything it published.
func play(t *testing.T, s *Session, n int) []events.Event {
	t.Helper()
	rec := &recorder{}
	id := s.Subscribe(rec.listen)
	defer s.Unsubscribe(id)
	if err := s.Start(n); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 3000 && s.State() == Playing; i++ {
		switch {
		case i%70 == 0:
			s.ToggleDoor(door.Left)
		case i%45 == 0:
			s.ToggleDoor(door.Right)
		case i%30 == 0:
			s.ToggleFlash(door.Left)
		}
		s.Update(0.1)
	}
	return rec.events
}

func TestReplayIsDeterministic(t *testing.T) {
	a, err := New(Options{Seed: 42})
	if err != nil {
		t.Fatal(err)
	}
	b, err := New(Options{Seed: 42})
	if err != nil {
		t.Fatal(err)
	}
	first := play(t, a, 7)
	if diff := cmp.Diff(first, play(t, b, 7)); diff != "" {
		t.Errorf("same seed diverged (-a +b):\n%s", diff)
	}
	if diff := cmp.Diff(first, play(t, a, 7)); diff != "" {
		t.Errorf("restart diverged (-first +second):\n%s", diff)
	}
}

func TestUpdate_NegativeDeltaPanics(t *testing.T) {
	s, _ := newSession(t, Options{Seed: 1}, 1)
	defer func() {
		if recover() == nil {
			t.Error("Update(-1) did not panic")
		}
	}()
	s.Update(-1)
}

func TestSnapshot(t *testing.T) {
	s, _ := newSession(t, Options{Seed: 1, Nights: quietNights()}, 5)
	s.CloseDoor(door.Left)
	snap := s.Snapshot()
	if snap.State != Playing || snap.Night != 5 || len(snap.Agents) != len(animatronic.IDs) {
		t.Errorf("snapshot = %+v", snap)
	}
	if !snap.Doors[door.Left].State.Closed || snap.Doors[door.Left].ToggleCooldown != door.ToggleCooldown {
		t.Errorf("left door snapshot = %+v", snap.Doors[door.Left])
	}
	if snap.ActiveConsumption != DoorConsumption {
		t.Errorf("ActiveConsumption = %v, want %v", snap.ActiveConsumption, DoorConsumption)
	}
}
