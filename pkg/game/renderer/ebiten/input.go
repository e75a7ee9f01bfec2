package ebiten

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	engineinput "nightshift/pkg/engine/input"
)

// keyCodes maps Ebiten keys to the raw codes the input bindings use. It is
// a slice so keys that change in the same frame are handled in a fixed order.
var keyCodes = []struct {
	key  ebiten.Key
	code string
}{
	{ebiten.KeyA, "a"}, {ebiten.KeyB, "b"}, {ebiten.KeyC, "c"}, {ebiten.KeyD, "d"},
	{ebiten.KeyE, "e"}, {ebiten.KeyF, "f"}, {ebiten.KeyG, "g"}, {ebiten.KeyH, "h"},
	{ebiten.KeyI, "i"}, {ebiten.KeyJ, "j"}, {ebiten.KeyK, "k"}, {ebiten.KeyL, "l"},
	{ebiten.KeyM, "m"}, {ebiten.KeyN, "n"}, {ebiten.KeyO, "o"}, {ebiten.KeyP, "p"},
	{ebiten.KeyQ, "q"}, {ebiten.KeyR, "r"}, {ebiten.KeyS, "s"}, {ebiten.KeyT, "t"},
	{ebiten.KeyU, "u"}, {ebiten.KeyV, "v"}, {ebiten.KeyW, "w"}, {ebiten.KeyX, "x"},
	{ebiten.KeyY, "y"}, {ebiten.KeyZ, "z"},

	{ebiten.KeyArrowLeft, "arrow_left"},
	{ebiten.KeyArrowRight, "arrow_right"},
	{ebiten.KeyArrowUp, "arrow_up"},
	{ebiten.KeyArrowDown, "arrow_down"},
	{ebiten.KeyEnter, "enter"},
	{ebiten.KeyKPEnter, "enter"},
	{ebiten.KeyEscape, "escape"},
}

// pollIntents turns this frame's key transitions into intents. Presses and
// releases both go through, so lights can be held.
func pollIntents() []engineinput.Intent {
	var frame []engineinput.KeyTransition
	for _, k := range keyCodes {
		switch {
		case inpututil.IsKeyJustPressed(k.key):
			frame = append(frame, engineinput.KeyTransition{Code: k.code, Phase: engineinput.Pressed})
		case inpututil.IsKeyJustReleased(k.key):
			frame = append(frame, engineinput.KeyTransition{Code: k.code, Phase: engineinput.Released})
		}
	}
	return engineinput.FrameIntents(engineinput.DeviceKeyboard, frame)
}
