// Package traversal decides, for every edge a path-search core expands,
// whether the edge may be traversed given the searcher's mode, time and
// accumulated state, and what the resulting cost and state update is.
//
// Per-mode models (street, boarding, transit, gbfs, geofence) share one
// evaluation contract and compose behind a Service built from declarative
// configuration. Evaluation is pure and lock-free; all shared data is either
// immutable after build or swapped atomically, so any number of concurrent
// searches may call in without synchronization.
package traversal
