package traversal

import (
	"github.com/theoremus-urban-solutions/multimodal-traversal/gbfs"
)

// Constraint is a model that vetoes edges without pricing them. The
// geofence model is one; externally registered models may be too.
type Constraint interface {
	Model
	Constrains(e Edge) bool
}

// Service is the single entry point the search core calls per edge
// expansion. It routes the edge to the mover registered for it, applies
// every constraint model, then lets the tracker rule on any mode switch.
// Safe for unsynchronized concurrent use.
type Service struct {
	movers       map[string]Model
	constraints  []Constraint
	tracker      *Tracker
	availability *gbfs.Cache
	metrics      *Metrics
}

func newService(tracker *Tracker, availability *gbfs.Cache) *Service {
	return &Service{
		movers:       map[string]Model{},
		tracker:      tracker,
		availability: availability,
	}
}

// install slots a built model in under its registry tag. Constraint models
// apply to every edge they declare an interest in; movers answer for the
// edges routed to their tag.
func (s *Service) install(tag string, m Model) {
	if c, ok := m.(Constraint); ok {
		s.constraints = append(s.constraints, c)
		return
	}
	s.movers[tag] = m
}

// SetMetrics attaches a collector. Call before serving traffic.
func (s *Service) SetMetrics(m *Metrics) { s.metrics = m }

// AvailabilityCache exposes the shared-mobility cache so the caller can run
// a refresher against it. Nil when no gbfs section is configured.
func (s *Service) AvailabilityCache() *gbfs.Cache { return s.availability }

// moverFor routes an edge to the model that prices it. Transit-flavored
// kinds have fixed homes; everything else goes to a model registered under
// the edge's own mode tag, falling back to the street model.
func (s *Service) moverFor(e Edge) Model {
	switch e.Kind {
	case EdgeBoard:
		return s.movers["boarding"]
	case EdgeRide, EdgeAlight:
		return s.movers["transit"]
	case EdgePickup, EdgeDropoff:
		return s.movers["gbfs"]
	default:
		if m, ok := s.movers[e.Mode]; ok {
			return m
		}
		return s.movers["street"]
	}
}

// Evaluate answers one edge expansion: an updated state with incremental
// cost, or an explicit infeasible verdict the search core prunes on.
// Infeasibility never surfaces as an error.
func (s *Service) Evaluate(st State, e Edge) Outcome {
	out := s.evaluate(st, e)
	if s.metrics != nil {
		s.metrics.observe(e, out)
	}
	return out
}

func (s *Service) evaluate(st State, e Edge) Outcome {
	for _, c := range s.constraints {
		if !c.Constrains(e) {
			continue
		}
		if verdict := c.Traverse(st, e); !verdict.Feasible {
			return verdict
		}
	}
	m := s.moverFor(e)
	if m == nil {
		return Infeasible("no model registered for mode " + e.Mode)
	}
	out := m.Traverse(st, e)
	if !out.Feasible {
		return out
	}
	next, ok, reason := s.tracker.Apply(st, out.Next)
	if !ok {
		return Infeasible(reason)
	}
	out.Next = next
	return out
}

// CanTraverse is the pure feasibility form of Evaluate.
func (s *Service) CanTraverse(st State, e Edge) bool {
	return s.evaluate(st, e).Feasible
}
