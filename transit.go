package traversal

import (
	"github.com/theoremus-urban-solutions/multimodal-traversal/schedule"
)

// TransitModel prices in-vehicle movement along a boarded trip and the
// alighting transition back to unbound.
type TransitModel struct {
	idx  *schedule.Index
	mode string
}

func NewTransitModel(idx *schedule.Index, mode string) *TransitModel {
	return &TransitModel{idx: idx, mode: mode}
}

func (m *TransitModel) Name() string { return "transit" }

func (m *TransitModel) CanTraverse(s State, e Edge) bool {
	return m.Traverse(s, e).Feasible
}

func (m *TransitModel) Traverse(s State, e Edge) Outcome {
	switch e.Kind {
	case EdgeRide:
		return m.ride(s, e)
	case EdgeAlight:
		return m.alight(s, e)
	default:
		return Infeasible("not a transit edge")
	}
}

// ride costs the scheduled travel time between two consecutive stops on the
// bound trip. Riding without a bound trip, or a segment the trip does not
// serve, prunes the edge.
func (m *TransitModel) ride(s State, e Edge) Outcome {
	if s.TripID == "" {
		return Infeasible("no trip boarded")
	}
	dt, ok := m.idx.SegmentTime(s.TripID, e.FromStop, e.ToStop)
	if !ok {
		return Infeasible("trip " + s.TripID + " does not serve segment " + e.FromStop + "->" + e.ToStop)
	}
	next := s.advanced(e, dt)
	next.Mode = m.mode
	return Feasible(next, dt)
}

// alight leaves the vehicle: the trip reference clears and the mode returns
// to unbound. Alighting itself is free; transfer penalties belong to the
// next boarding.
func (m *TransitModel) alight(s State, e Edge) Outcome {
	if s.TripID == "" {
		return Infeasible("no trip to alight from")
	}
	next := s.advanced(e, 0)
	next.Mode = ModeUnbound
	next.TripID = ""
	return Feasible(next, 0)
}
