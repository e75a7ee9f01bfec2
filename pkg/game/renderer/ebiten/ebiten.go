// Package ebiten provides an Ebiten-based 2D graphical renderer for the
// office. Ebiten owns the loop here: every Update is one fixed simulation
// tick.
package ebiten

import (
	"github.com/hajimehoshi/ebiten/v2"

	"nightshift/pkg/game/cosmetic"
	"nightshift/pkg/game/gameplay"
)

// EbitenRenderer implements ebiten.Game on top of a gameplay.Game.
type EbitenRenderer struct {
	game    *gameplay.Game
	tps     int
	flicker *cosmetic.Flicker
}

// New creates a renderer ticking the game tps times per second. Lights are
// switched to hold-to-flash since Ebiten reports key releases.
func New(g *gameplay.Game, tps int) *EbitenRenderer {
	g.HoldToFlash = true
	return &EbitenRenderer{
		game:    g,
		tps:     tps,
		flicker: cosmetic.NewFlicker(g.Session.Cosmetic()),
	}
}

// Run opens the window and blocks until the player quits.
func Run(g *gameplay.Game, tps int) error {
	ebiten.SetWindowSize(screenWidth*2, screenHeight*2)
	ebiten.SetWindowTitle("Night Shift")
	ebiten.SetTPS(tps)
	return ebiten.RunGame(New(g, tps))
}

// Update handles input and advances the night (Ebiten interface)
func (e *EbitenRenderer) Update() error {
	for _, intent := range pollIntents() {
		e.game.ProcessIntent(intent)
	}
	if e.game.Quit() {
		return ebiten.Termination
	}
	e.game.Tick(1 / float64(e.tps))
	return nil
}

// Layout returns the game's logical screen size
func (e *EbitenRenderer) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenWidth, screenHeight
}
