package traversal

import (
	"testing"
	"time"
)

func TestTracker_SwitchLimit(t *testing.T) {
	tr := NewTracker(2, nil)
	state := NewState("v1", time.Date(2024, time.May, 2, 9, 0, 0, 0, time.UTC))
	state.Mode = "walk"

	// walk -> bike -> transit is two switches, within the cap
	for i, mode := range []string{"bike", "transit"} {
		next := state
		next.Mode = mode
		applied, ok, reason := tr.Apply(state, next)
		if !ok {
			t.Fatalf("switch %d to %s rejected: %s", i+1, mode, reason)
		}
		if applied.ModeSwitches != i+1 {
			t.Fatalf("ModeSwitches = %d after switch %d", applied.ModeSwitches, i+1)
		}
		state = applied
	}

	// the third switch breaks the cap
	next := state
	next.Mode = "bike"
	if _, ok, reason := tr.Apply(state, next); ok {
		t.Fatal("third switch should exceed the limit")
	} else if reason != "mode switch limit exceeded" {
		t.Errorf("reason = %q", reason)
	}

	// staying in mode costs nothing against the cap
	if applied, ok, _ := tr.Apply(state, state); !ok || applied.ModeSwitches != state.ModeSwitches {
		t.Error("same-mode traversal must not count as a switch")
	}
}

func TestTracker_UnlimitedSwitches(t *testing.T) {
	tr := NewTracker(0, nil)
	state := NewState("v1", time.Now())
	for i := 0; i < 50; i++ {
		next := state
		if state.Mode == "walk" {
			next.Mode = "bike"
		} else {
			next.Mode = "walk"
		}
		applied, ok, reason := tr.Apply(state, next)
		if !ok {
			t.Fatalf("switch %d rejected: %s", i, reason)
		}
		state = applied
	}
	if state.ModeSwitches != 50 {
		t.Errorf("ModeSwitches = %d, want 50", state.ModeSwitches)
	}
}

func TestTracker_TransitionTable(t *testing.T) {
	tr := NewTracker(0, map[string][]string{
		ModeUnbound: {"walk", "bike"},
		"walk":      {"transit", "bike"},
		"bike":      {ModeUnbound},
		"transit":   {ModeUnbound},
	})

	tests := []struct {
		name     string
		from, to string
		wantOK   bool
	}{
		{"unbound to walk", ModeUnbound, "walk", true},
		{"walk to transit", "walk", "transit", true},
		{"bike back to unbound", "bike", ModeUnbound, true},
		{"walk straight to unbound not listed", "walk", ModeUnbound, false},
		{"transit to bike not listed", "transit", "bike", false},
		{"mode with no row", "scooter", "walk", false},
		{"same mode bypasses the table", "scooter", "scooter", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prev := NewState("v1", time.Now())
			prev.Mode = tt.from
			next := prev
			next.Mode = tt.to
			_, ok, reason := tr.Apply(prev, next)
			if ok != tt.wantOK {
				t.Errorf("Apply(%s->%s) ok = %v (%s), want %v", tt.from, tt.to, ok, reason, tt.wantOK)
			}
		})
	}
}
