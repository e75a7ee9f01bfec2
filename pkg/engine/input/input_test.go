package input

import (
	"bufio"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestReadKey(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{"a", []string{"a"}},
		{"A", []string{"a"}},
		{"\x1b[D", []string{"arrow_left"}},
		{"\x1bOC", []string{"arrow_right"}},
		{"\x1b", []string{"escape"}},
		{"\x1bq", []string{"escape", "q"}},
		{"\x03", []string{"ctrl_c"}},
		{"\r", []string{"enter"}},
		{"\x1b[Zd", []string{"", "d"}},
	}
	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			r := bufio.NewReader(strings.NewReader(c.in))
			var got []string
			for range c.want {
				code, err := ReadKey(r)
				if err != nil {
					t.Fatalf("ReadKey err: %v", err)
				}
				got = append(got, code)
			}
			if diff := cmp.Diff(c.want, got); diff != "" {
				t.Errorf("ReadKey(%q) mismatch (-want +got):\n%s", c.in, diff)
			}
		})
	}
}

func TestListen(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var codes []string
	for ev := range Listen(ctx, strings.NewReader("ad\x1b[Aq")) {
		if ev.Device != DeviceTerminal || ev.Phase != Pressed {
			t.Errorf("event = %+v, want terminal press", ev)
		}
		codes = append(codes, ev.Code)
	}
	if diff := cmp.Diff([]string{"a", "d", "arrow_up", "q"}, codes); diff != "" {
		t.Errorf("Listen mismatch (-want +got):\n%s", diff)
	}
}

func TestMapToIntent(t *testing.T) {
	cases := map[string]Action{
		"a":          ActionToggleLeftDoor,
		"arrow_left": ActionToggleLeftDoor,
		"d":          ActionToggleRightDoor,
		"q":          ActionLightLeft,
		"e":          ActionLightRight,
		"r":          ActionRestart,
		"n":          ActionNextNight,
		"escape":     ActionQuit,
		"ctrl_c":     ActionQuit,
		"?":          ActionNone,
	}
	for code, want := range cases {
		got := MapToIntent(DebouncedInput{Device: DeviceKeyboard, Code: code, Phase: Released})
		if got.Action != want || got.Phase != Released {
			t.Errorf("MapToIntent(%q) = %+v, want %v released", code, got, ActionName(want))
		}
	}
}

func TestFrameIntents_KeepsOrder(t *testing.T) {
	frame := []KeyTransition{
		{Code: "a", Phase: Pressed},
		{Code: "?", Phase: Pressed},
		{Code: "q", Phase: Pressed},
		{Code: "e", Phase: Released},
	}
	want := []Intent{
		{Action: ActionToggleLeftDoor, Phase: Pressed},
		{Action: ActionLightLeft, Phase: Pressed},
		{Action: ActionLightRight, Phase: Released},
	}
	for i := 0; i < 20; i++ {
		if diff := cmp.Diff(want, FrameIntents(DeviceKeyboard, frame)); diff != "" {
			t.Fatalf("FrameIntents mismatch (-want +got):\n%s", diff)
		}
	}
	if got := FrameIntents(DeviceKeyboard, nil); got != nil {
		t.Errorf("FrameIntents(nil) = %v, want nil", got)
	}
}

func TestDebouncer(t *testing.T) {
	d := NewDebouncer(50 * time.Millisecond)
	t0 := time.Unix(0, 0)
	press := func(code string, at time.Duration) bool {
		_, ok := d.Filter(RawInput{Code: code, Phase: Pressed, Timestamp: t0.Add(at)})
		return ok
	}
	if !press("a", 0) {
		t.Error("first press dropped")
	}
	if press("a", 20*time.Millisecond) {
		t.Error("repeat inside window kept")
	}
	if !press("d", 25*time.Millisecond) {
		t.Error("different key inside window dropped")
	}
	if press("a", 60*time.Millisecond) {
		t.Error("held key repeat kept")
	}
	if !press("a", 200*time.Millisecond) {
		t.Error("press after window dropped")
	}
	if _, ok := d.Filter(RawInput{Code: "a", Phase: Released, Timestamp: t0.Add(201 * time.Millisecond)}); !ok {
		t.Error("release dropped")
	}
}

func TestSetSingleBinding(t *testing.T) {
	saved := make(map[string]Action, len(bindings))
	for k, v := range bindings {
		saved[k] = v
	}
	t.Cleanup(func() { bindings = saved })

	SetSingleBinding(ActionToggleLeftDoor, "j")
	if diff := cmp.Diff([]string{"j"}, GetBindingsByAction()[ActionToggleLeftDoor]); diff != "" {
		t.Errorf("left door bindings mismatch (-want +got):\n%s", diff)
	}
	SetSingleBinding(ActionQuit, "k")
	if got := GetBindingsByAction()[ActionQuit]; !cmp.Equal(got, []string{"ctrl_c", "escape", "k"}) {
		t.Errorf("quit bindings = %v, reserved codes must survive", got)
	}
	SetSingleBinding(ActionRestart, "escape")
	if MapToIntent(DebouncedInput{Code: "escape"}).Action != ActionQuit {
		t.Error("reserved code was rebound")
	}
}
