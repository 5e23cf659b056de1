package traversal

// Model is the uniform evaluation contract every mode implements.
//
// CanTraverse is a pure feasibility check over the state, the edge and the
// currently visible shared snapshots. Traverse computes the successor state
// and incremental cost, or an explicit infeasible Outcome when the edge
// cannot be used under this mode's constraints. Neither call may mutate
// anything observable outside its return value.
type Model interface {
	Name() string
	CanTraverse(s State, e Edge) bool
	Traverse(s State, e Edge) Outcome
}
