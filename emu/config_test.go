package emu

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDefaultInputConfig(t *testing.T) {
	want := InputConfig{
		Pad1Keys: map[string]string{
			"A": "K", "B": "J", "Select": "RShift", "Start": "Return",
			"Up": "Up", "Down": "Down", "Left": "Left", "Right": "Right",
		},
	}

	got := DefaultInputConfig()
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("DefaultInputConfig() mismatch (-want +got):\n%s", diff)
	}
}
