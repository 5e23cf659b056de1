package traversal

import (
	"time"

	"github.com/theoremus-urban-solutions/multimodal-traversal/gbfs"
)

// GbfsModel gates shared-vehicle pickups and dropoffs on live station
// availability.
type GbfsModel struct {
	cache        *gbfs.Cache
	freshness    time.Duration
	policy       gbfs.StalenessPolicy
	unlock       time.Duration
	dock         time.Duration
	freeFloating bool
	mode         string

	// now is the wall clock used for snapshot age; replaceable in tests.
	now func() time.Time
}

// NewGbfsModel wraps an availability cache. The staleness policy must be an
// explicit choice; NewGbfsModel panics on PolicyUnset because the builder
// validates it long before evaluation.
func NewGbfsModel(cache *gbfs.Cache, freshness time.Duration, policy gbfs.StalenessPolicy, unlock, dock time.Duration, freeFloating bool, mode string) *GbfsModel {
	if policy == gbfs.PolicyUnset {
		panic("gbfs staleness policy must be configured")
	}
	return &GbfsModel{
		cache:        cache,
		freshness:    freshness,
		policy:       policy,
		unlock:       unlock,
		dock:         dock,
		freeFloating: freeFloating,
		mode:         mode,
		now:          time.Now,
	}
}

func (m *GbfsModel) Name() string { return "gbfs" }

func (m *GbfsModel) CanTraverse(s State, e Edge) bool {
	return m.Traverse(s, e).Feasible
}

func (m *GbfsModel) Traverse(s State, e Edge) Outcome {
	switch e.Kind {
	case EdgePickup:
		return m.pickup(s, e)
	case EdgeDropoff:
		return m.dropoff(s, e)
	default:
		return Infeasible("not a shared-mobility edge")
	}
}

// pickup requires an available vehicle at the origin station. An unknown
// station or an over-threshold snapshot resolves through the configured
// staleness policy.
func (m *GbfsModel) pickup(s State, e Edge) Outcome {
	if s.TripID != "" {
		return Infeasible("cannot pick up while aboard a trip")
	}
	ok, reason := m.available(e.StationID, func(st gbfs.StationStatus) bool {
		return st.VehiclesAvailable > 0
	}, "no vehicle available at station "+e.StationID)
	if !ok {
		return Infeasible(reason)
	}
	next := s.advanced(e, m.unlock)
	next.Mode = m.mode
	return Feasible(next, m.unlock)
}

// dropoff requires a free dock unless the operator allows free-floating
// returns.
func (m *GbfsModel) dropoff(s State, e Edge) Outcome {
	if s.Mode != m.mode {
		return Infeasible("no " + m.mode + " to return")
	}
	if !m.freeFloating {
		ok, reason := m.available(e.StationID, func(st gbfs.StationStatus) bool {
			return st.DocksAvailable > 0
		}, "no dock available at station "+e.StationID)
		if !ok {
			return Infeasible(reason)
		}
	}
	next := s.advanced(e, m.dock)
	next.Mode = ModeUnbound
	return Feasible(next, m.dock)
}

// available applies the staleness policy: a fresh snapshot answers from its
// counts, a stale or missing one answers from the policy.
func (m *GbfsModel) available(stationID string, pred func(gbfs.StationStatus) bool, negative string) (bool, string) {
	snap := m.cache.Current()
	if snap == nil || snap.Age(m.now()) > m.freshness {
		if m.policy == gbfs.PolicyOptimistic {
			return true, ""
		}
		return false, "availability unknown for station " + stationID
	}
	st, ok := snap.Station(stationID)
	if !ok {
		if m.policy == gbfs.PolicyOptimistic {
			return true, ""
		}
		return false, "station " + stationID + " not in snapshot"
	}
	if !pred(st) {
		return false, negative
	}
	return true, ""
}
