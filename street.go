package traversal

import "time"

// StreetModel prices base movement along road segments at a fixed speed per
// mode (walk, bike, drive).
type StreetModel struct {
	// speeds is meters per second keyed by mode tag.
	speeds map[string]float64
}

// NewStreetModel takes per-mode speeds in km/h, the unit configuration uses.
func NewStreetModel(speedsKMH map[string]float64) *StreetModel {
	speeds := make(map[string]float64, len(speedsKMH))
	for mode, kmh := range speedsKMH {
		speeds[mode] = kmh / 3.6
	}
	return &StreetModel{speeds: speeds}
}

func (m *StreetModel) Name() string { return "street" }

func (m *StreetModel) CanTraverse(s State, e Edge) bool {
	return m.Traverse(s, e).Feasible
}

func (m *StreetModel) Traverse(s State, e Edge) Outcome {
	if e.Kind != EdgeStreet {
		return Infeasible("not a street edge")
	}
	speed, ok := m.speeds[e.Mode]
	if !ok {
		return Infeasible("no speed configured for mode " + e.Mode)
	}
	if s.TripID != "" {
		return Infeasible("cannot walk away from a boarded trip")
	}
	elapsed := time.Duration(e.LengthM / speed * float64(time.Second))
	next := s.advanced(e, elapsed)
	next.Mode = e.Mode
	return Feasible(next, elapsed)
}
