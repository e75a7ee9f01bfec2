package gameplay

import (
	engineinput "nightshift/pkg/engine/input"
	"nightshift/pkg/game/door"
	"nightshift/pkg/game/hud"
	"nightshift/pkg/game/session"
)

// ProcessIntent handles a high-level input intent from the tiered input system.
func (g *Game) ProcessIntent(intent engineinput.Intent) {
	if intent.Phase == engineinput.Released {
		g.processRelease(intent.Action)
		return
	}

	switch intent.Action {
	case engineinput.ActionNone:
		return

	case engineinput.ActionQuit:
		g.quit = true
		return

	case engineinput.ActionRestart:
		g.report(g.Restart())
		return

	case engineinput.ActionNextNight:
		if g.Session.State() == session.Victory {
			g.report(g.NextNight())
			return
		}
		if g.Over() {
			g.report(g.Restart())
		}
		return

	case engineinput.ActionPrevNight:
		if g.Over() {
			g.report(g.PrevNight())
		}
		return

	case engineinput.ActionToggleLeftDoor:
		g.command(door.Left, g.Session.ToggleDoor)
	case engineinput.ActionToggleRightDoor:
		g.command(door.Right, g.Session.ToggleDoor)
	case engineinput.ActionLightLeft:
		g.light(door.Left)
	case engineinput.ActionLightRight:
		g.light(door.Right)
	}
}

func (g *Game) processRelease(action engineinput.Action) {
	if !g.HoldToFlash {
		return
	}
	switch action {
	case engineinput.ActionLightLeft:
		g.releasing[door.Left] = true
	case engineinput.ActionLightRight:
		g.releasing[door.Right] = true
	}
	g.settleReleases()
}

// settleReleases turns off every light whose key was let go. A release
// that lands inside the flash cooldown is retried on later ticks until the
// light is off.
func (g *Game) settleReleases() {
	for _, side := range door.Sides {
		if !g.releasing[side] {
			continue
		}
		if g.Session.State() != session.Playing || !g.Session.DoorState(side).Flashing {
			g.releasing[side] = false
			continue
		}
		if r := g.Session.StopFlashDoor(side); r != door.FailedCooldown {
			g.Stats.RecordResult(r)
			g.releasing[side] = false
		}
	}
}

func (g *Game) light(side door.Side) {
	if g.HoldToFlash {
		g.releasing[side] = false
		g.command(side, g.Session.FlashDoor)
		return
	}
	g.command(side, g.Session.ToggleFlash)
}

// command runs a door command, counts the result and tells the player why
// it failed.
func (g *Game) command(side door.Side, fn func(door.Side) door.Result) door.Result {
	if g.Session.State() != session.Playing {
		return door.Failed
	}
	r := fn(side)
	g.Stats.RecordResult(r)
	if msg, ok := hud.DescribeResult(g.Log.Catalog(), side, r); ok {
		g.Log.Add(msg)
	} else if r == door.Failed && g.Session.PowerOut() {
		g.Log.Addf("RESULT_DARK")
	}
	return r
}

func (g *Game) report(err error) {
	if err != nil {
		g.Log.Add(err.Error())
	}
}
