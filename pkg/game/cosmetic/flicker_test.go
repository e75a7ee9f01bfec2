package cosmetic

import (
	"testing"

	"nightshift/pkg/engine/rng"
)

func TestFrame_UnlitIsDark(t *testing.T) {
	f := NewFlicker(rng.NewStream("cosmetic", 1))
	for i := 0; i < 100; i++ {
		if got := f.Frame(false); got != Dark {
			t.Fatalf("Frame(false) = %v, want dark", got)
		}
	}
}

func TestFrame_MostlyBright(t *testing.T) {
	f := NewFlicker(rng.NewStream("cosmetic", 7))
	counts := map[Level]int{}
	for i := 0; i < 10000; i++ {
		counts[f.Frame(true)]++
	}
	if counts[Bright] < counts[Dim] || counts[Dim] < counts[Dark] {
		t.Errorf("counts = %v, want bright > dim > dark", counts)
	}
	if counts[Dark] == 0 {
		t.Error("never flickered to dark")
	}
}

func TestFrame_DoesNotTouchGameplay(t *testing.T) {
	streams := rng.NewStreams(5)
	f := NewFlicker(streams.Cosmetic)
	for i := 0; i < 50; i++ {
		f.Frame(true)
	}
	if streams.Gameplay.Position() != 0 {
		t.Errorf("gameplay Position() = %d, want 0", streams.Gameplay.Position())
	}
}

func TestNewFlickerWeights(t *testing.T) {
	if _, err := NewFlickerWeights(rng.NewStream("c", 1), 1, -1, 0); err == nil {
		t.Error("negative weight err = nil, want error")
	}
	f, err := NewFlickerWeights(rng.NewStream("c", 1), 0, 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	if got := f.Frame(true); got != Bright {
		t.Errorf("Frame with no weight = %v, want bright", got)
	}
}
