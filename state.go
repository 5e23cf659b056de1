package traversal

import (
	"time"

	"github.com/paulmach/orb"
)

// ModeUnbound is the mode of a traveler who is not riding anything: on foot
// between legs, at a stop, or at the start of a search.
const ModeUnbound = "unbound"

// VertexID identifies a network node. Opaque to this layer.
type VertexID string

// EdgeKind tells the service which model evaluates an edge and how.
type EdgeKind int

const (
	// EdgeStreet is base movement along a road segment.
	EdgeStreet EdgeKind = iota
	// EdgeBoard waits for and boards a scheduled trip at a stop.
	EdgeBoard
	// EdgeRide moves in-vehicle between consecutive stops of a bound trip.
	EdgeRide
	// EdgeAlight leaves a bound trip at a stop.
	EdgeAlight
	// EdgePickup takes a shared vehicle from a station.
	EdgePickup
	// EdgeDropoff returns a shared vehicle at a station or, where permitted,
	// free-floating.
	EdgeDropoff
)

func (k EdgeKind) String() string {
	switch k {
	case EdgeStreet:
		return "street"
	case EdgeBoard:
		return "board"
	case EdgeRide:
		return "ride"
	case EdgeAlight:
		return "alight"
	case EdgePickup:
		return "pickup"
	case EdgeDropoff:
		return "dropoff"
	default:
		return "unknown"
	}
}

// Edge is the slice of an externally owned network edge this layer needs:
// opaque identity plus the attributes feasibility checks read.
type Edge struct {
	ID   string
	From VertexID
	To   VertexID
	Kind EdgeKind
	// Mode is the travel mode tag the edge belongs to (walk, bike, drive,
	// transit, or an externally registered tag).
	Mode string
	// StopID is set on board/alight edges; FromStop/ToStop on ride edges.
	StopID   string
	FromStop string
	ToStop   string
	// StationID is set on pickup/dropoff edges.
	StationID string
	// Geometry and LengthM back street-speed costs and geofence sampling.
	Geometry orb.LineString
	LengthM  float64
}

// State is the traversal state threaded through a search. It is an immutable
// value: every evaluation returns a fresh copy and never edits one in place,
// which is what keeps concurrent evaluation lock-free.
type State struct {
	// Time is the simulated clock at the current location.
	Time time.Time
	// Mode is the active travel mode, ModeUnbound between legs.
	Mode string
	// Location is the current network vertex.
	Location VertexID
	// Cost is the accumulated travel cost.
	Cost time.Duration
	// ModeSwitches counts mode transitions so far on this path.
	ModeSwitches int
	// TripID is the boarded scheduled trip, empty while unbound.
	TripID string
}

// NewState starts a search at a vertex and instant, unbound.
func NewState(at VertexID, t time.Time) State {
	return State{Time: t, Mode: ModeUnbound, Location: at}
}

// advanced returns a copy moved across e with the given elapsed time added
// to both clock and cost.
func (s State) advanced(e Edge, elapsed time.Duration) State {
	next := s
	next.Time = s.Time.Add(elapsed)
	next.Cost = s.Cost + elapsed
	next.Location = e.To
	return next
}

// Outcome is the result of evaluating one edge. Infeasibility is an expected
// verdict the search core uses to prune, never an error.
type Outcome struct {
	Feasible bool
	// Reason explains an infeasible verdict for diagnostics.
	Reason string
	// Next is the state after traversal, valid only when feasible.
	Next State
	// Cost is the incremental cost of the traversal.
	Cost time.Duration
}

// Infeasible builds the standard negative verdict.
func Infeasible(reason string) Outcome {
	return Outcome{Feasible: false, Reason: reason}
}

// Feasible builds a positive verdict from the advanced state and its
// incremental cost.
func Feasible(next State, cost time.Duration) Outcome {
	return Outcome{Feasible: true, Next: next, Cost: cost}
}
