// Package hud turns session notifications into the short, localized message
// log shown under the office view.
package hud

import (
	"nightshift/pkg/game/animatronic"
	"nightshift/pkg/game/door"
	"nightshift/pkg/game/events"
)

// MaxMessages is how many lines the log keeps.
const MaxMessages = 5

// Log is a bounded message log.
type Log struct {
	cat      *Catalog
	messages []string
}

// NewLog creates an empty log that translates through cat.
func NewLog(cat *Catalog) *Log {
	return &Log{cat: cat, messages: make([]string, 0, MaxMessages)}
}

// Add appends a message, keeping only the last MaxMessages.
func (l *Log) Add(msg string) {
	l.messages = append(l.messages, msg)
	if len(l.messages) > MaxMessages {
		l.messages = l.messages[len(l.messages)-MaxMessages:]
	}
}

// Addf translates key and appends it.
func (l *Log) Addf(key string, vars ...any) {
	l.Add(l.cat.Getf(key, vars...))
}

// Clear empties the log.
func (l *Log) Clear() {
	l.messages = l.messages[:0]
}

// Messages returns the current lines, oldest first.
func (l *Log) Messages() []string {
	return append([]string(nil), l.messages...)
}

// Catalog returns the catalog the log translates with.
func (l *Log) Catalog() *Catalog { return l.cat }

// Listen is an events.Listener. A new night clears the log.
func (l *Log) Listen(e events.Event) {
	if e.Kind == events.SessionStarted {
		l.Clear()
	}
	if msg, ok := Describe(l.cat, e); ok {
		l.Add(msg)
	}
}

// Describe renders a notification as a player-facing line. ok is false for
// notifications the player should not hear about, such as movement away
// from the doors.
func Describe(cat *Catalog, e events.Event) (msg string, ok bool) {
	side := cat.Side(e.Door)
	switch e.Kind {
	case events.SessionStarted:
		return cat.Getf("SESSION_STARTED", e.Night), true
	case events.DoorChanged:
		if e.Closed {
			return cat.Getf("DOOR_CLOSED", side), true
		}
		return cat.Getf("DOOR_OPENED", side), true
	case events.DoorFlashChanged:
		if e.Lit {
			return cat.Getf("LIGHT_ON", side), true
		}
		return cat.Getf("LIGHT_OFF", side), true
	case events.DoorBroken:
		return cat.Getf("DOOR_BROKEN", side), true
	case events.AnimatronicMoved:
		to := animatronic.Room(e.To)
		if to == animatronic.LeftDoor || to == animatronic.RightDoor {
			return cat.Getf("AGENT_AT_DOOR", side), true
		}
		return "", false
	case events.AnimatronicSpotted:
		return cat.Getf("AGENT_SPOTTED", e.AgentName, side), true
	case events.AnimatronicSneakedIn:
		return cat.Get("AGENT_SNEAKED_IN"), true
	case events.AnimatronicAttack:
		if e.Agent == events.NoAgent {
			return cat.Get("DARK_ATTACK"), true
		}
		return cat.Getf("AGENT_ATTACK", e.AgentName), true
	case events.PowerOut:
		return cat.Get("POWER_OUT"), true
	case events.NightCompleted:
		return cat.Getf("NIGHT_COMPLETED", e.Night), true
	}
	return "", false
}

// DescribeResult renders a failed door command. ok is false on success and
// for a plain no-op.
func DescribeResult(cat *Catalog, side door.Side, r door.Result) (msg string, ok bool) {
	switch r {
	case door.FailedCooldown:
		return cat.Getf("RESULT_COOLDOWN", cat.Side(side)), true
	case door.FailedBroken:
		return cat.Getf("RESULT_BROKEN", cat.Side(side)), true
	}
	return "", false
}
