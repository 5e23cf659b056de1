package traversal

import (
	"math"

	"github.com/paulmach/orb"

	"github.com/theoremus-urban-solutions/multimodal-traversal/geofence"
)

// GeofenceModel enforces operating-zone constraints for a set of modes:
// every sampled point of a constrained edge must lie inside an allowed zone
// (when allowed zones exist), no point may touch a prohibited zone, and
// dropoff edges are additionally rejected inside no-parking zones.
type GeofenceModel struct {
	idx     *geofence.Index
	modes   map[string]struct{}
	samples int
}

func NewGeofenceModel(idx *geofence.Index, modes []string, samples int) *GeofenceModel {
	m := &GeofenceModel{idx: idx, modes: map[string]struct{}{}, samples: samples}
	if m.samples < 2 {
		m.samples = 3
	}
	for _, tag := range modes {
		m.modes[tag] = struct{}{}
	}
	return m
}

func (m *GeofenceModel) Name() string { return "geofence" }

// Constrains reports whether the model has anything to say about an edge.
// Unconstrained modes pass through untouched.
func (m *GeofenceModel) Constrains(e Edge) bool {
	_, ok := m.modes[e.Mode]
	return ok
}

func (m *GeofenceModel) CanTraverse(s State, e Edge) bool {
	return m.Traverse(s, e).Feasible
}

// Traverse leaves state and cost untouched; the model is a pure constraint
// layered over whichever mover prices the edge.
func (m *GeofenceModel) Traverse(s State, e Edge) Outcome {
	if !m.Constrains(e) {
		return Feasible(s, 0)
	}
	mustBeAllowed := m.idx.HasRelation(geofence.RelationAllowed)
	for _, p := range m.samplePoints(e) {
		if mustBeAllowed && !m.idx.CoveredBy(p, geofence.RelationAllowed) {
			return Infeasible("outside allowed operating area")
		}
		if m.idx.CoveredBy(p, geofence.RelationProhibited) {
			return Infeasible("inside prohibited zone")
		}
	}
	if e.Kind == EdgeDropoff {
		if p, ok := m.endPoint(e); ok && m.idx.CoveredBy(p, geofence.RelationNoParking) {
			return Infeasible("no-parking zone at dropoff")
		}
	}
	return Feasible(s, 0)
}

// samplePoints spreads the configured number of probes along the edge
// geometry, endpoints included. An edge without geometry has nothing to
// check and passes.
func (m *GeofenceModel) samplePoints(e Edge) []orb.Point {
	g := e.Geometry
	if len(g) == 0 {
		return nil
	}
	if len(g) == 1 {
		return []orb.Point{g[0]}
	}
	pts := make([]orb.Point, 0, m.samples)
	for i := 0; i < m.samples; i++ {
		frac := float64(i) / float64(m.samples-1)
		pts = append(pts, interpolate(g, frac))
	}
	return pts
}

func (m *GeofenceModel) endPoint(e Edge) (orb.Point, bool) {
	if len(e.Geometry) == 0 {
		return orb.Point{}, false
	}
	return e.Geometry[len(e.Geometry)-1], true
}

// interpolate walks the linestring to the point at the given fraction of
// its total length.
func interpolate(g orb.LineString, frac float64) orb.Point {
	if frac <= 0 {
		return g[0]
	}
	if frac >= 1 {
		return g[len(g)-1]
	}
	total := 0.0
	segs := make([]float64, len(g)-1)
	for i := 0; i+1 < len(g); i++ {
		dx := g[i+1][0] - g[i][0]
		dy := g[i+1][1] - g[i][1]
		segs[i] = math.Hypot(dx, dy)
		total += segs[i]
	}
	if total == 0 {
		return g[0]
	}
	target := frac * total
	for i, w := range segs {
		if target <= w || i == len(segs)-1 {
			t := 0.0
			if w > 0 {
				t = target / w
			}
			return orb.Point{
				g[i][0] + t*(g[i+1][0]-g[i][0]),
				g[i][1] + t*(g[i+1][1]-g[i][1]),
			}
		}
		target -= w
	}
	return g[len(g)-1]
}
