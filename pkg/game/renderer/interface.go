package renderer

import (
	"nightshift/pkg/game/gameplay"
)

// Renderer defines the interface for frame-based rendering backends driven
// by an external loop (the terminal frontend and headless runs).
type Renderer interface {
	// Init prepares the output (raw mode, colours, cursor).
	Init() error

	// Clear clears the display
	Clear()

	// RenderFrame draws the office for the current game state.
	RenderFrame(g *gameplay.Game)

	// Close restores whatever Init changed.
	Close()
}

// Current holds the active renderer instance
var Current Renderer

// SetRenderer sets the active renderer
func SetRenderer(r Renderer) {
	Current = r
}

// Init initializes the current renderer
func Init() error {
	if Current != nil {
		return Current.Init()
	}
	return nil
}

// Clear clears the display using the current renderer
func Clear() {
	if Current != nil {
		Current.Clear()
	}
}

// RenderFrame renders a complete game frame
func RenderFrame(g *gameplay.Game) {
	if Current != nil {
		Current.RenderFrame(g)
	}
}

// Close shuts the current renderer down.
func Close() {
	if Current != nil {
		Current.Close()
	}
}
