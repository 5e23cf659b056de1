package gbfs

import "fmt"

// StalenessPolicy decides what a model does when the current snapshot is
// older than the configured freshness threshold: assume availability
// (optimistic) or treat the edge as infeasible (pessimistic). There is no
// default; configuration must choose one explicitly because the choice
// materially changes route feasibility.
type StalenessPolicy int

const (
	PolicyUnset StalenessPolicy = iota
	PolicyOptimistic
	PolicyPessimistic
)

func ParseStalenessPolicy(s string) (StalenessPolicy, error) {
	switch s {
	case "optimistic":
		return PolicyOptimistic, nil
	case "pessimistic":
		return PolicyPessimistic, nil
	default:
		return PolicyUnset, fmt.Errorf("unknown staleness policy %q (want optimistic or pessimistic)", s)
	}
}

func (p StalenessPolicy) String() string {
	switch p {
	case PolicyOptimistic:
		return "optimistic"
	case PolicyPessimistic:
		return "pessimistic"
	default:
		return "unset"
	}
}
