package partition

import (
	"fmt"
	"math/rand/v2"
)

// MergePolicy decides which cluster-id survives when two clusters merge.
type MergePolicy int

const (
	// MergeBySize folds the smaller cluster into the larger one. On equal
	// sizes the cluster of the first argument survives.
	MergeBySize MergePolicy = iota
	// MergeKeepFirst always keeps the cluster-id of the first argument.
	MergeKeepFirst
)

// String returns the policy name used in configuration.
func (p MergePolicy) String() string {
	switch p {
	case MergeBySize:
		return "size"
	case MergeKeepFirst:
		return "first"
	default:
		return fmt.Sprintf("MergePolicy(%d)", int(p))
	}
}

// ParseMergePolicy converts a configuration name to a MergePolicy.
func ParseMergePolicy(s string) (MergePolicy, error) {
	switch s {
	case "", "size":
		return MergeBySize, nil
	case "first":
		return MergeKeepFirst, nil
	default:
		return 0, fmt.Errorf("unknown merge policy %q (want size or first)", s)
	}
}

type options struct {
	policy MergePolicy
	rng    *rand.Rand
}

// Option configures a DisjointSet at construction.
type Option func(*options)

// WithMergePolicy selects the surviving cluster rule used by Merge.
func WithMergePolicy(p MergePolicy) Option {
	return func(o *options) {
		o.policy = p
	}
}

// WithRandomAssignment draws every node's initial cluster-id independently
// and uniformly from [0, n). Draws can collide, so the initial partition is
// generally not all singletons. Ignored by NewFromMembership.
func WithRandomAssignment(rng *rand.Rand) Option {
	return func(o *options) {
		o.rng = rng
	}
}

func buildOptions(opts []Option) options {
	o := options{policy: MergeBySize}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
