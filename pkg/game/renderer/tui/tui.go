package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/gookit/color"

	"nightshift/pkg/engine/terminal"
	"nightshift/pkg/game/animatronic"
	"nightshift/pkg/game/cosmetic"
	"nightshift/pkg/game/door"
	"nightshift/pkg/game/gameplay"
	"nightshift/pkg/game/renderer"
	"nightshift/pkg/game/session"
)

// Raw mode needs explicit carriage returns.
const newline = "\r\n"

// Width of the power meter in characters.
const meterWidth = 30

// TUIRenderer is the terminal-based renderer implementation
type TUIRenderer struct {
	out     io.Writer
	raw     bool
	restore func()
	flicker *cosmetic.Flicker

	colorTitle   color.Style
	colorSubtle  color.Style
	colorDenied  color.Style
	colorClosed  color.Style
	colorOpen    color.Style
	colorBright  color.Style
	colorDim     color.Style
	colorAgent   color.Style
	colorBanner  color.Style
	colorWarning color.Style
}

var _ renderer.Renderer = (*TUIRenderer)(nil)

// New creates a TUI renderer writing to out. With raw set, Init switches
// the terminal to raw mode so keys arrive without Enter.
func New(out io.Writer, raw bool) *TUIRenderer {
	return &TUIRenderer{out: out, raw: raw}
}

// Init initializes the TUI renderer (colors, raw mode, cursor)
func (t *TUIRenderer) Init() error {
	t.colorTitle = color.Style{color.FgMagenta, color.OpBold}
	t.colorSubtle = color.Style{color.FgGray, color.OpBold}
	t.colorDenied = color.Style{color.FgRed, color.OpBold}
	t.colorClosed = color.Style{color.FgYellow, color.OpBold}
	t.colorOpen = color.Style{color.FgGray}
	t.colorBright = color.Style{color.FgLightYellow, color.OpBold}
	t.colorDim = color.Style{color.FgYellow}
	t.colorAgent = color.Style{color.FgRed, color.BgBlack, color.OpBold}
	t.colorBanner = color.Style{color.FgGreen, color.OpBold}
	t.colorWarning = color.Style{color.FgRed}

	if t.raw {
		restore, err := terminal.MakeRaw()
		if err != nil {
			return err
		}
		t.restore = restore
		fmt.Fprint(t.out, terminal.HideCursor)
	}
	return nil
}

// Clear clears the terminal screen
func (t *TUIRenderer) Clear() {
	fmt.Fprint(t.out, terminal.ClearScreen+terminal.CursorHome)
}

// Close shows the cursor again and leaves raw mode.
func (t *TUIRenderer) Close() {
	if t.restore != nil {
		fmt.Fprint(t.out, terminal.ShowCursor)
		t.restore()
		t.restore = nil
	}
}

// RenderFrame renders a complete game frame
func (t *TUIRenderer) RenderFrame(g *gameplay.Game) {
	t.Clear()
	fmt.Fprint(t.out, t.Frame(g))
}

// Frame builds the text of one frame.
func (t *TUIRenderer) Frame(g *gameplay.Game) string {
	if t.flicker == nil {
		t.flicker = cosmetic.NewFlicker(g.Session.Cosmetic())
	}
	cat := g.Log.Catalog()
	snap := g.Session.Snapshot()
	width, _ := terminal.GetSize()

	var b strings.Builder
	line := func(s string) { b.WriteString(s + newline) }

	line(t.colorTitle.Sprint(renderer.StatusLine(cat, snap)))
	power := t.colorSubtle
	if snap.PowerOut {
		power = t.colorDenied
	}
	line(power.Sprint(renderer.Meter(snap.PowerRemaining/100, meterWidth)))
	line("")

	left := t.doorLines(cat.Side(door.Left), snap, door.Left)
	right := t.doorLines(cat.Side(door.Right), snap, door.Right)
	for i := range left {
		line("  " + left[i] + "  " + right[i])
	}
	line("")

	t.messagesPane(&b, g.Log.Messages(), cat.Get("NO_MESSAGES"), width)

	line(t.colorSubtle.Sprint(renderer.ControlsLine(cat)))
	if banner := renderer.Banner(cat, snap.State); banner != "" {
		line("")
		if snap.State == session.Victory {
			line(t.colorBanner.Sprint(banner))
		} else {
			line(t.colorDenied.Sprint(banner))
		}
	}
	return b.String()
}

// doorLines renders one door column: label, door, light and whoever the
// light shows in the doorway. Padding is applied before colouring so the
// columns line up.
func (t *TUIRenderer) doorLines(label string, snap session.Snapshot, side door.Side) []string {
	d := snap.Doors[side]
	pad := func(s string) string { return fmt.Sprintf("%-26s", s) }

	var doorText string
	switch {
	case d.State.Broken:
		doorText = t.colorDenied.Sprint(pad("[ BROKEN ]"))
	case d.State.Closed:
		doorText = t.colorClosed.Sprint(pad("[ CLOSED ]"))
	default:
		doorText = t.colorOpen.Sprint(pad("[  open  ]"))
	}

	var lightText string
	switch t.flicker.Frame(d.State.Flashing) {
	case cosmetic.Bright:
		lightText = t.colorBright.Sprint(pad("light *"))
	case cosmetic.Dim:
		lightText = t.colorDim.Sprint(pad("light +"))
	default:
		lightText = t.colorOpen.Sprint(pad("light ."))
	}

	seen := pad("")
	if d.State.Flashing {
		var names []string
		for _, a := range snap.Agents {
			if a.Door == side && a.Location == animatronic.DoorRoom(side) {
				names = append(names, a.Name)
			}
		}
		if len(names) > 0 {
			seen = t.colorAgent.Sprint(pad(strings.Join(names, ", ")))
		}
	}

	cooldown := t.colorSubtle.Sprint(pad(renderer.Meter(d.ToggleCooldown/door.SpottedCooldown, 10)))
	return []string{t.colorTitle.Sprint(pad(strings.ToUpper(label))), doorText, cooldown, lightText, seen}
}


// messagesPane renders the messages log pane
func (t *TUIRenderer) messagesPane(b *strings.Builder, messages []string, empty string, width int) {
	label := " Messages "
	sideLen := (width - len(label)) / 2
	if sideLen < 1 {
		sideLen = 1
	}
	rightLen := width - sideLen - len(label)
	if rightLen < 1 {
		rightLen = 1
	}

	b.WriteString(t.colorSubtle.Sprint(strings.Repeat("─", sideLen)+label+strings.Repeat("─", rightLen)) + newline)
	if len(messages) == 0 {
		b.WriteString(t.colorSubtle.Sprint("  "+empty) + newline)
	}
	for _, msg := range messages {
		b.WriteString("  " + msg + newline)
	}
	b.WriteString(t.colorSubtle.Sprint(strings.Repeat("─", width)) + newline)
}
