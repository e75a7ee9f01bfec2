package input

import (
	"sort"
	"time"
)

// Device represents a physical input source.
type Device int

const (
	DeviceUnknown Device = iota
	DeviceKeyboard
	DeviceTerminal
)

// Action represents a high-level intent in the game.
type Action int

const (
	ActionNone Action = iota

	// Office controls
	ActionToggleLeftDoor
	ActionToggleRightDoor
	ActionLightLeft
	ActionLightRight

	// Meta
	ActionRestart
	ActionNextNight
	ActionPrevNight
	ActionQuit
)

// Phase says whether a key went down or came back up. Terminals only ever
// report presses.
type Phase int

const (
	Pressed Phase = iota
	Released
)

// Intent is the 4th-layer, high-level description of what the player wants to do.
type Intent struct {
	Action Action
	Phase  Phase
}

// RawInput is the 1st-layer event emitted directly from an input device.
// Code is a device-specific identifier (e.g. "a", "arrow_left", "escape").
type RawInput struct {
	Device    Device
	Code      string
	Phase     Phase
	Timestamp time.Time
}

// DebouncedInput is the 2nd-layer representation after key-repeat
// suppression.
type DebouncedInput struct {
	Device Device
	Code   string
	Phase  Phase
}

// Debouncer drops terminal key-repeat: a press of the same code arriving
// within Window of the previous one is swallowed.
type Debouncer struct {
	Window time.Duration
	last   map[string]time.Time
}

// NewDebouncer returns a debouncer with the given repeat window.
func NewDebouncer(window time.Duration) *Debouncer {
	return &Debouncer{Window: window, last: make(map[string]time.Time)}
}

// Filter converts a raw event to a debounced one. ok is false for repeats.
func (d *Debouncer) Filter(raw RawInput) (ev DebouncedInput, ok bool) {
	if raw.Phase == Pressed && d.Window > 0 {
		if prev, seen := d.last[raw.Code]; seen && raw.Timestamp.Sub(prev) < d.Window {
			d.last[raw.Code] = raw.Timestamp
			return DebouncedInput{}, false
		}
		d.last[raw.Code] = raw.Timestamp
	}
	return DebouncedInput{Device: raw.Device, Code: raw.Code, Phase: raw.Phase}, true
}

// bindings maps raw codes to actions (3rd-layer bindings).
// Multiple codes may point to the same Action.
var bindings = map[string]Action{
	// Doors
	"a":           ActionToggleLeftDoor,
	"arrow_left":  ActionToggleLeftDoor,
	"d":           ActionToggleRightDoor,
	"arrow_right": ActionToggleRightDoor,

	// Hallway lights
	"q": ActionLightLeft,
	"z": ActionLightLeft,
	"e": ActionLightRight,
	"c": ActionLightRight,

	"r":     ActionRestart,
	"enter": ActionRestart,
	"n":     ActionNextNight,
	"p":     ActionPrevNight,

	// Quit
	"escape": ActionQuit,
	"ctrl_c": ActionQuit,
	"x":      ActionQuit,
}

// reserved codes can never be rebound or unbound.
func reserved(code string) bool {
	return code == "escape" || code == "ctrl_c"
}

// MapToIntent is the 3rd+4th layer: it applies the current bindings to a
// debounced input and returns a high-level Intent.
func MapToIntent(ev DebouncedInput) Intent {
	if act, ok := bindings[ev.Code]; ok {
		return Intent{Action: act, Phase: ev.Phase}
	}
	return Intent{Action: ActionNone, Phase: ev.Phase}
}

// KeyTransition is one key going down or up during a frame.
type KeyTransition struct {
	Code  string
	Phase Phase
}

// FrameIntents maps a frame's key transitions to intents, keeping their
// order and dropping unbound codes.
func FrameIntents(device Device, frame []KeyTransition) []Intent {
	var intents []Intent
	for _, k := range frame {
		intent := MapToIntent(DebouncedInput{Device: device, Code: k.Code, Phase: k.Phase})
		if intent.Action != ActionNone {
			intents = append(intents, intent)
		}
	}
	return intents
}

// ActionName returns a human-friendly name for an action.
func ActionName(a Action) string {
	switch a {
	case ActionToggleLeftDoor:
		return "Left Door"
	case ActionToggleRightDoor:
		return "Right Door"
	case ActionLightLeft:
		return "Left Light"
	case ActionLightRight:
		return "Right Light"
	case ActionRestart:
		return "Restart Night"
	case ActionNextNight:
		return "Next Night"
	case ActionPrevNight:
		return "Previous Night"
	case ActionQuit:
		return "Quit"
	default:
		return "None"
	}
}

// GetBindingsByAction returns the current bindings grouped by action.
func GetBindingsByAction() map[Action][]string {
	result := make(map[Action][]string)
	for code, act := range bindings {
		result[act] = append(result[act], code)
	}
	// Stable ordering so the help line doesn't flicker.
	for act, codes := range result {
		sort.Strings(codes)
		result[act] = codes
	}
	return result
}

// SetSingleBinding replaces all bindings for the given action with a single code.
func SetSingleBinding(action Action, code string) {
	for c, a := range bindings {
		if reserved(c) {
			continue
		}
		if a == action {
			delete(bindings, c)
		}
	}
	if code != "" && !reserved(code) {
		bindings[code] = action
	}
}
