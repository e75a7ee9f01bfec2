// Package renderer holds the frontend contract and the text helpers every
// frontend shares.
package renderer

import (
	"fmt"
	"math"
	"strings"

	engineinput "nightshift/pkg/engine/input"
	"nightshift/pkg/game/hud"
	"nightshift/pkg/game/night"
	"nightshift/pkg/game/session"
)

// UsageBars converts a total draw into the 1..5 bar usage meter. Passive
// drain alone is one bar and each active defense adds one.
func UsageBars(snap session.Snapshot) int {
	bars := 1
	for _, d := range snap.Doors {
		if d.State.Closed {
			bars++
		}
		if d.State.Flashing {
			bars++
		}
	}
	return bars
}

// PowerPercent rounds remaining power up for display, so 0% only shows
// once the power is really gone.
func PowerPercent(power float64) int {
	if power <= 0 {
		return 0
	}
	p := int(math.Ceil(power))
	if p > int(night.MaxPower) {
		return int(night.MaxPower)
	}
	return p
}

// Meter draws a fixed-width bar, e.g. "[####------]".
func Meter(fraction float64, width int) string {
	if width <= 0 {
		return "[]"
	}
	fraction = math.Max(0, math.Min(1, fraction))
	filled := int(math.Round(fraction * float64(width)))
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", width-filled) + "]"
}

// StatusLine is the one-line summary shown at the top of every frontend.
func StatusLine(cat *hud.Catalog, snap session.Snapshot) string {
	return fmt.Sprintf("%s %d  %s  %s %d%%  %s %s",
		cat.Get("NIGHT"), snap.Night,
		night.ClockLabel(snap.Hour),
		cat.Get("POWER"), PowerPercent(snap.PowerRemaining),
		cat.Get("USAGE"), strings.Repeat("|", UsageBars(snap)),
	)
}

// firstBinding picks the shortest code bound to action, for help text.
func firstBinding(bindings map[engineinput.Action][]string, action engineinput.Action) string {
	best := ""
	for _, code := range bindings[action] {
		if best == "" || len(code) < len(best) {
			best = code
		}
	}
	return strings.ToUpper(best)
}

// ControlsLine lists the current key bindings.
func ControlsLine(cat *hud.Catalog) string {
	b := engineinput.GetBindingsByAction()
	doors := firstBinding(b, engineinput.ActionToggleLeftDoor) + "/" + firstBinding(b, engineinput.ActionToggleRightDoor)
	lights := firstBinding(b, engineinput.ActionLightLeft) + "/" + firstBinding(b, engineinput.ActionLightRight)
	return cat.Getf("CONTROLS", doors, lights,
		firstBinding(b, engineinput.ActionRestart),
		firstBinding(b, engineinput.ActionNextNight),
		firstBinding(b, engineinput.ActionQuit))
}

// Banner is the end-of-night message, or "" while the night goes on.
func Banner(cat *hud.Catalog, state session.State) string {
	b := engineinput.GetBindingsByAction()
	switch state {
	case session.Victory:
		return cat.Getf("STATE_VICTORY", firstBinding(b, engineinput.ActionNextNight))
	case session.GameOver, session.GameOverSpecial:
		return cat.Getf("STATE_GAME_OVER", firstBinding(b, engineinput.ActionRestart))
	}
	return ""
}
