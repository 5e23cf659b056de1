package traversal

import (
	"testing"
	"time"

	"github.com/paulmach/orb"

	"github.com/theoremus-urban-solutions/multimodal-traversal/gbfs"
)

func testService(t *testing.T, maxSwitches int) *Service {
	t.Helper()
	now := time.Date(2024, time.March, 5, 8, 0, 0, 0, time.UTC)

	cache := gbfs.NewCache(gbfs.NewSnapshot(now, []gbfs.StationStatus{
		{StationID: "st-1", VehiclesAvailable: 3, DocksAvailable: 4},
	}))
	gm := NewGbfsModel(cache, 5*time.Minute, gbfs.PolicyPessimistic, 30*time.Second, 15*time.Second, false, "bike")
	gm.now = func() time.Time { return now }

	svc := newService(NewTracker(maxSwitches, nil), cache)
	svc.install("street", NewStreetModel(map[string]float64{"walk": 5, "bike": 18}))
	svc.install("boarding", NewBoardingModel(transitIndex(t), 2*time.Minute, "transit"))
	svc.install("transit", NewTransitModel(transitIndex(t), "transit"))
	svc.install("gbfs", gm)
	svc.install("geofence", fenceModel(t))
	return svc
}

// walk to the stop, ride one segment, then finish on a shared bike. Each
// evaluation feeds the next, the way a search core expands a path.
func TestService_EvaluateChain(t *testing.T) {
	svc := testService(t, 5)
	state := NewState("origin", time.Date(2024, time.March, 5, 7, 50, 0, 0, time.UTC))

	steps := []struct {
		name       string
		edge       Edge
		wantMode   string
		wantSwitch int
	}{
		{"walk to stop", Edge{Kind: EdgeStreet, Mode: "walk", LengthM: 100, To: "stop-A"}, "walk", 1},
		{"board at A", Edge{Kind: EdgeBoard, Mode: "transit", StopID: "A", To: "aboard-T1"}, "transit", 2},
		{"ride to B", Edge{Kind: EdgeRide, Mode: "transit", FromStop: "A", ToStop: "B", To: "aboard-T1-B"}, "transit", 2},
		{"alight at B", Edge{Kind: EdgeAlight, Mode: "transit", StopID: "B", To: "stop-B"}, ModeUnbound, 3},
		{"pick up a bike", Edge{Kind: EdgePickup, Mode: "bike", StationID: "st-1", To: "riding"}, "bike", 4},
		{"return the bike", Edge{Kind: EdgeDropoff, Mode: "bike", StationID: "st-1", To: "done"}, ModeUnbound, 5},
	}

	for _, st := range steps {
		out := svc.Evaluate(state, st.edge)
		if !out.Feasible {
			t.Fatalf("%s: %s", st.name, out.Reason)
		}
		if out.Next.Mode != st.wantMode {
			t.Fatalf("%s: mode = %s, want %s", st.name, out.Next.Mode, st.wantMode)
		}
		if out.Next.ModeSwitches != st.wantSwitch {
			t.Fatalf("%s: switches = %d, want %d", st.name, out.Next.ModeSwitches, st.wantSwitch)
		}
		if out.Next.Location != st.edge.To {
			t.Fatalf("%s: location = %s, want %s", st.name, out.Next.Location, st.edge.To)
		}
		state = out.Next
	}

	// walked 72s, waited until the 08:00 departure, rode 10 minutes,
	// unlocked 30s and docked 15s
	wantArrival := time.Date(2024, time.March, 5, 8, 10, 45, 0, time.UTC)
	if !state.Time.Equal(wantArrival) {
		t.Errorf("final time = %v, want %v", state.Time, wantArrival)
	}
	wantCost := 20*time.Minute + 45*time.Second
	if state.Cost != wantCost {
		t.Errorf("accumulated cost = %v, want %v", state.Cost, wantCost)
	}
}

func TestService_TrackerVetoesSwitch(t *testing.T) {
	svc := testService(t, 1)
	state := NewState("origin", time.Date(2024, time.March, 5, 7, 50, 0, 0, time.UTC))

	out := svc.Evaluate(state, Edge{Kind: EdgeStreet, Mode: "walk", LengthM: 100, To: "stop-A"})
	if !out.Feasible {
		t.Fatalf("walk: %s", out.Reason)
	}
	out = svc.Evaluate(out.Next, Edge{Kind: EdgeBoard, Mode: "transit", StopID: "A", To: "aboard"})
	if out.Feasible {
		t.Fatal("second mode switch should hit the limit")
	}
	if out.Reason != "mode switch limit exceeded" {
		t.Errorf("reason = %q", out.Reason)
	}
}

func TestService_ConstraintRunsBeforeMover(t *testing.T) {
	svc := testService(t, 0)
	state := NewState("origin", time.Date(2024, time.March, 5, 8, 0, 0, 0, time.UTC))

	// the fence fixture prohibits [4,6]x[4,6] for scooters; scooters have no
	// street speed, so a feasible verdict here would mean the constraint was
	// skipped and the mover answered
	out := svc.Evaluate(state, Edge{
		Kind: EdgeStreet, Mode: "scooter", LengthM: 100,
		Geometry: orb.LineString{{3, 5}, {7, 5}},
	})
	if out.Feasible {
		t.Fatal("constraint should veto the edge")
	}
	if out.Reason != "inside prohibited zone" {
		t.Errorf("reason = %q, want the geofence verdict", out.Reason)
	}
}

func TestService_RoutesByModeTag(t *testing.T) {
	svc := testService(t, 0)
	state := NewState("origin", time.Date(2024, time.March, 5, 8, 0, 0, 0, time.UTC))

	// no mover registered under "drive" and no street speed for it either
	out := svc.Evaluate(state, Edge{Kind: EdgeStreet, Mode: "drive", LengthM: 100})
	if out.Feasible {
		t.Fatal("unconfigured mode should be infeasible")
	}

	// an externally installed mover takes precedence over the street fallback
	svc.install("hover", modelFunc(func(s State, e Edge) Outcome {
		next := s.advanced(e, time.Minute)
		next.Mode = "hover"
		return Feasible(next, time.Minute)
	}))
	out = svc.Evaluate(state, Edge{Kind: EdgeStreet, Mode: "hover", LengthM: 100, To: "v2"})
	if !out.Feasible {
		t.Fatalf("installed mover should answer: %s", out.Reason)
	}
	if out.Cost != time.Minute {
		t.Errorf("cost = %v, want 1m", out.Cost)
	}
}

func TestService_NoModelRegistered(t *testing.T) {
	svc := newService(NewTracker(0, nil), nil)
	out := svc.Evaluate(NewState("v1", time.Now()), Edge{Kind: EdgePickup, Mode: "bike", StationID: "st-1"})
	if out.Feasible {
		t.Fatal("missing mover must be infeasible, not a panic")
	}
}

// modelFunc adapts a function to the Model interface for test movers.
type modelFunc func(State, Edge) Outcome

func (f modelFunc) Name() string { return "test" }

func (f modelFunc) CanTraverse(s State, e Edge) bool { return f(s, e).Feasible }

func (f modelFunc) Traverse(s State, e Edge) Outcome { return f(s, e) }
