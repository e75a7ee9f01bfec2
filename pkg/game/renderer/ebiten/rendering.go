package ebiten

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"nightshift/pkg/game/animatronic"
	"nightshift/pkg/game/cosmetic"
	"nightshift/pkg/game/door"
	"nightshift/pkg/game/renderer"
	"nightshift/pkg/game/session"
)

// Draw renders the office (Ebiten interface)
func (e *EbitenRenderer) Draw(screen *ebiten.Image) {
	screen.Fill(colorBackground)
	snap := e.game.Session.Snapshot()
	cat := e.game.Log.Catalog()

	ebitenutil.DebugPrintAt(screen, renderer.StatusLine(cat, snap), 10, 8)
	e.drawPower(screen, snap)

	vector.DrawFilledRect(screen, hallWidth, doorTop-20, screenWidth-2*hallWidth, doorHeight+40, colorOffice, false)
	e.drawSide(screen, snap, door.Left, hallWidth)
	e.drawSide(screen, snap, door.Right, screenWidth-hallWidth-doorWidth)

	y := doorTop + doorHeight + 32
	for _, msg := range e.game.Log.Messages() {
		ebitenutil.DebugPrintAt(screen, msg, 10, y)
		y += lineHeight
	}
	ebitenutil.DebugPrintAt(screen, renderer.ControlsLine(cat), 10, screenHeight-lineHeight-4)

	if banner := renderer.Banner(cat, snap.State); banner != "" {
		vector.DrawFilledRect(screen, 0, screenHeight/2-20, screenWidth, 40, color.RGBA{0, 0, 0, 200}, false)
		ebitenutil.DebugPrintAt(screen, banner, screenWidth/2-len(banner)*3, screenHeight/2-8)
	}
}

func (e *EbitenRenderer) drawPower(screen *ebiten.Image, snap session.Snapshot) {
	const x, y, w = 10, 28, 200
	vector.DrawFilledRect(screen, x, y, w, meterHeight, colorMeterBg, false)
	fill := colorPower
	if snap.PowerRemaining < 20 {
		fill = colorPowerLow
	}
	vector.DrawFilledRect(screen, x, y, float32(snap.PowerRemaining/100*w), meterHeight, fill, false)
}

// drawSide draws one hallway, its door and the toggle cooldown under it.
func (e *EbitenRenderer) drawSide(screen *ebiten.Image, snap session.Snapshot, side door.Side, x float32) {
	d := snap.Doors[side]

	hallX := float32(0)
	if side == door.Right {
		hallX = screenWidth - hallWidth
	}
	var hall color.Color
	switch e.flicker.Frame(d.State.Flashing) {
	case cosmetic.Bright:
		hall = colorHallBright
	case cosmetic.Dim:
		hall = colorHallDim
	default:
		hall = colorHallDark
	}
	vector.DrawFilledRect(screen, hallX, doorTop, hallWidth, doorHeight, hall, false)

	if d.State.Flashing {
		for _, a := range snap.Agents {
			if a.Door == side && a.Location == animatronic.DoorRoom(side) {
				vector.DrawFilledRect(screen, hallX+12, doorTop+40, hallWidth-24, doorHeight-60, colorAgent, false)
				ebitenutil.DebugPrintAt(screen, a.Name, int(hallX)+2, doorTop+doorHeight+4)
			}
		}
	}

	var fill color.Color
	switch {
	case d.State.Broken:
		fill = colorDoorBroken
	case d.State.Closed:
		fill = colorDoorClosed
	default:
		fill = colorDoorOpen
	}
	vector.DrawFilledRect(screen, x, doorTop, doorWidth, doorHeight, fill, false)

	if d.ToggleCooldown > 0 {
		w := float32(d.ToggleCooldown / door.SpottedCooldown * doorWidth)
		vector.DrawFilledRect(screen, x, doorTop+doorHeight+2, w, 3, colorCooldown, false)
	}
}

