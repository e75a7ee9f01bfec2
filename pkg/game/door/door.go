// Package door contains the office doors the player defends.
// A door can be closed and lit (flashing) independently; once broken it can
// never change again.
package door

import "fmt"

// Side identifies one of the two office doors.
type Side int

// Office doors
const (
	Left Side = iota
	Right
)

// Sides lists both doors in a stable order.
var Sides = [...]Side{Left, Right}

func (s Side) String() string {
	switch s {
	case Left:
		return "left"
	case Right:
		return "right"
	}
	panic(fmt.Sprintf("not implemented: door side %d", int(s)))
}

// Result is the outcome of a door command. Failures are routine and returned
// as values for the input layer to branch on.
type Result int

// Door command results
const (
	Failed         Result = iota // wrong session state, or nothing to change
	FailedCooldown               // the relevant cooldown is still running
	FailedBroken                 // the door is broken
	Success
)

func (r Result) String() string {
	switch r {
	case Failed:
		return "failed"
	case FailedCooldown:
		return "failed_cooldown"
	case FailedBroken:
		return "failed_broken"
	case Success:
		return "success"
	}
	return fmt.Sprintf("result(%d)", int(r))
}

// Timing constants, in seconds.
const (
	ToggleCooldown = 0.5
	FlashCooldown  = 0.25
	// SpottedCooldown is the toggle grace applied when an animatronic is
	// spotted arriving at a closed door.
	SpottedCooldown = 1.0
	// BufferThreshold is the trailing fraction of a cooldown during which a
	// rejected command is remembered and replayed when the cooldown expires.
	BufferThreshold = 0.3
)

// State is the visible state of a door. Broken excludes Closed and Flashing.
type State struct {
	Closed   bool
	Flashing bool
	Broken   bool
}

// Open reports whether the door is neither closed nor broken.
func (s State) Open() bool { return !s.Closed && !s.Broken }

// Request is a buffered command: the target value of the closed or
// flashing bit.
type Request struct {
	Pending bool
	Value   bool
}

// Door is one office door with its cooldowns and input buffers.
type Door struct {
	side  Side
	state State

	toggleCooldown float64
	flashCooldown  float64

	toggleBuffer Request
	flashBuffer  Request
}

// New creates an open door.
func New(side Side) *Door {
	return &Door{side: side}
}

// Side returns which door this is.
func (d *Door) Side() Side { return d.side }

// State returns a copy of the door state.
func (d *Door) State() State { return d.state }

// ToggleCooldown returns the remaining toggle cooldown in seconds.
func (d *Door) ToggleCooldown() float64 { return d.toggleCooldown }

// FlashCooldown returns the remaining flash cooldown in seconds.
func (d *Door) FlashCooldown() float64 { return d.flashCooldown }

// ToggleBuffer returns the buffered close/open request, if any.
func (d *Door) ToggleBuffer() Request { return d.toggleBuffer }

// FlashBuffer returns the buffered flash request, if any.
func (d *Door) FlashBuffer() Request { return d.flashBuffer }

// Reset restores the night-start state: open, unlit, no cooldowns.
func (d *Door) Reset() {
	*d = Door{side: d.side}
}

// SetClosed closes or opens the door.
func (d *Door) SetClosed(closed bool) Result {
	return d.apply(&d.state.Closed, closed, &d.toggleCooldown, ToggleCooldown, &d.toggleBuffer)
}

// SetFlashing starts or stops the door light.
func (d *Door) SetFlashing(flashing bool) Result {
	return d.apply(&d.state.Flashing, flashing, &d.flashCooldown, FlashCooldown, &d.flashBuffer)
}

// apply is the shared primitive for both bits.
func (d *Door) apply(bit *bool, value bool, cooldown *float64, full float64, buffer *Request) Result {
	if d.state.Broken {
		return FailedBroken
	}
	if *cooldown > 0 {
		if *cooldown < BufferThreshold*full {
			*buffer = Request{Pending: true, Value: value}
		}
		return FailedCooldown
	}
	if *bit == value {
		return Failed
	}
	*bit = value
	*cooldown = full
	*buffer = Request{}
	return Success
}

// Advance counts both cooldowns down by delta. For each cooldown that
// reaches zero this call with a buffered request, the request is returned
// and cleared; the caller replays it.
func (d *Door) Advance(delta float64) (toggle, flash Request) {
	toggle = advance(&d.toggleCooldown, delta, &d.toggleBuffer)
	flash = advance(&d.flashCooldown, delta, &d.flashBuffer)
	return toggle, flash
}

func advance(cooldown *float64, delta float64, buffer *Request) Request {
	prev := *cooldown
	*cooldown -= delta
	if *cooldown < 0 {
		*cooldown = 0
	}
	if prev > 0 && *cooldown <= 0 && buffer.Pending {
		req := *buffer
		*buffer = Request{}
		return req
	}
	return Request{}
}

// Break marks the door broken, clearing the closed and flashing bits. It
// returns the state before breaking and whether anything changed.
func (d *Door) Break() (prev State, changed bool) {
	prev = d.state
	if d.state.Broken {
		return prev, false
	}
	d.state = State{Broken: true}
	d.toggleBuffer = Request{}
	d.flashBuffer = Request{}
	return prev, true
}

// ForceOpen opens and unlights the door regardless of cooldowns, as happens
// when the office loses power. Broken doors are left alone.
func (d *Door) ForceOpen() (prev State) {
	prev = d.state
	d.toggleBuffer = Request{}
	d.flashBuffer = Request{}
	if d.state.Broken {
		return prev
	}
	d.state.Closed = false
	d.state.Flashing = false
	return prev
}

// SetToggleCooldown overrides the remaining toggle cooldown.
func (d *Door) SetToggleCooldown(seconds float64) {
	d.toggleCooldown = seconds
}
