package traversal

// Tracker is the cross-cutting state machine over mode transitions. States
// are the configured modes plus ModeUnbound; a transition happens whenever a
// model's evaluation changes the state's mode. The tracker caps how many
// switches a path may make and checks each switch against an adjacency
// table. Violations are infeasibility verdicts for the edge, never errors.
type Tracker struct {
	maxSwitches int
	// allowed maps from-mode to the set of modes it may switch into.
	// A nil map allows every transition.
	allowed map[string]map[string]struct{}
}

// NewTracker builds a tracker. transitions maps from-mode to its permitted
// next modes; pass nil to allow everything.
func NewTracker(maxSwitches int, transitions map[string][]string) *Tracker {
	t := &Tracker{maxSwitches: maxSwitches}
	if len(transitions) > 0 {
		t.allowed = make(map[string]map[string]struct{}, len(transitions))
		for from, tos := range transitions {
			set := make(map[string]struct{}, len(tos))
			for _, to := range tos {
				set[to] = struct{}{}
			}
			t.allowed[from] = set
		}
	}
	return t
}

// Apply inspects the transition from prev to next. When the mode changed it
// counts the switch and checks the adjacency table; the returned state
// carries the updated switch count. A violating transition returns false
// with a reason.
func (t *Tracker) Apply(prev, next State) (State, bool, string) {
	if next.Mode == prev.Mode {
		return next, true, ""
	}
	switches := prev.ModeSwitches + 1
	if t.maxSwitches > 0 && switches > t.maxSwitches {
		return next, false, "mode switch limit exceeded"
	}
	if t.allowed != nil {
		tos, ok := t.allowed[prev.Mode]
		if !ok {
			return next, false, "no transitions allowed from mode " + prev.Mode
		}
		if _, ok := tos[next.Mode]; !ok {
			return next, false, "transition " + prev.Mode + "->" + next.Mode + " not allowed"
		}
	}
	next.ModeSwitches = switches
	return next, true, ""
}
