package journal

import (
	"sync"

	"nightshift/pkg/game/door"
	"nightshift/pkg/game/events"
)

// Snapshot is a copy of the counters.
type Snapshot struct {
	ActionTotal    uint64
	ActionSuccess  uint64
	ActionCooldown uint64
	ActionBroken   uint64
	ActionFailure  uint64
	Nights         uint64
	Survived       uint64
	Attacks        map[string]uint64
}

// Stats counts door command results and how nights ended.
type Stats struct {
	mu       sync.Mutex
	success  uint64
	cooldown uint64
	broken   uint64
	failure  uint64
	nights   uint64
	survived uint64
	attacks  map[string]uint64
}

func NewStats() *Stats {
	return &Stats{attacks: map[string]uint64{}}
}

// RecordResult counts one door command.
func (s *Stats) RecordResult(r door.Result) {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch r {
	case door.Success:
		s.success++
	case door.FailedCooldown:
		s.cooldown++
	case door.FailedBroken:
		s.broken++
	default:
		s.failure++
	}
}

// Listen is an events.Listener counting nights and how they ended.
func (s *Stats) Listen(e events.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch e.Kind {
	case events.SessionStarted:
		s.nights++
	case events.NightCompleted:
		s.survived++
	case events.AnimatronicAttack:
		name := e.AgentName
		if e.Agent == events.NoAgent {
			name = "dark"
		}
		s.attacks[name]++
	}
}

func (s *Stats) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := Snapshot{
		ActionSuccess:  s.success,
		ActionCooldown: s.cooldown,
		ActionBroken:   s.broken,
		ActionFailure:  s.failure,
		ActionTotal:    s.success + s.cooldown + s.broken + s.failure,
		Nights:         s.nights,
		Survived:       s.survived,
		Attacks:        make(map[string]uint64, len(s.attacks)),
	}
	for k, v := range s.attacks {
		out.Attacks[k] = v
	}
	return out
}
