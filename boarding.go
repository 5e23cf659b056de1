package traversal

import (
	"time"

	"github.com/theoremus-urban-solutions/multimodal-traversal/schedule"
)

// BoardingModel prices waiting for and boarding a scheduled trip at a stop.
type BoardingModel struct {
	idx         *schedule.Index
	buffer      time.Duration
	transitMode string
}

// NewBoardingModel wraps a schedule index with a minimum transfer buffer.
// Boarding switches the traveler into transitMode.
func NewBoardingModel(idx *schedule.Index, buffer time.Duration, transitMode string) *BoardingModel {
	return &BoardingModel{idx: idx, buffer: buffer, transitMode: transitMode}
}

func (m *BoardingModel) Name() string { return "boarding" }

func (m *BoardingModel) CanTraverse(s State, e Edge) bool {
	return m.Traverse(s, e).Feasible
}

// Traverse finds the earliest departure at the edge's stop no earlier than
// arrival plus the transfer buffer, across every service date that may
// govern the arrival instant. No remaining departure on any governing date
// is a routine infeasible verdict, not an error. Wait cost is departure
// minus arrival and is never negative.
func (m *BoardingModel) Traverse(s State, e Edge) Outcome {
	if e.Kind != EdgeBoard {
		return Infeasible("not a boarding edge")
	}
	if s.TripID != "" {
		return Infeasible("already aboard a trip")
	}
	var (
		best      schedule.Entry
		bestAt    time.Time
		bestFound bool
	)
	for _, mapping := range schedule.GoverningMappings(s.Time) {
		entry, ok := m.idx.NextDeparture(e.StopID, mapping, m.buffer)
		if !ok {
			continue
		}
		depAt := mapping.At(entry.Departure)
		if depAt.Before(s.Time) {
			// a sub-buffer rounding artifact would make wait negative;
			// the non-negative wait invariant wins
			continue
		}
		if !bestFound || depAt.Before(bestAt) {
			best, bestAt, bestFound = entry, depAt, true
		}
	}
	if !bestFound {
		return Infeasible("no departure at stop " + e.StopID)
	}
	wait := bestAt.Sub(s.Time)
	next := s.advanced(e, wait)
	next.Mode = m.transitMode
	next.TripID = best.TripID
	return Feasible(next, wait)
}
