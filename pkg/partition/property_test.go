package partition

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

const propertyNodes = 24

// checkInvariants verifies that membership and clustering describe the same
// partition: every cluster is non-empty, clusters are disjoint, and every
// member maps back to its cluster-id.
func checkInvariants(ds *DisjointSet) error {
	seen := make(map[int]bool, len(ds.membership))
	for id, members := range ds.clustering {
		if len(members) == 0 {
			return fmt.Errorf("cluster %d is empty", id)
		}
		for node := range members {
			if seen[node] {
				return fmt.Errorf("node %d appears in more than one cluster", node)
			}
			seen[node] = true
			if c, ok := ds.membership[node]; !ok || c != id {
				return fmt.Errorf("node %d in cluster %d but membership says %d (registered=%v)", node, id, c, ok)
			}
		}
	}
	if len(seen) != len(ds.membership) {
		return fmt.Errorf("clusters cover %d nodes, membership has %d", len(seen), len(ds.membership))
	}
	return nil
}

// applyPairs merges consecutive values of ops as (p, q) pairs.
func applyPairs(ds *DisjointSet, ops []int) {
	for i := 0; i+1 < len(ops); i += 2 {
		ds.Merge(ops[i], ops[i+1])
	}
}

func TestDisjointSetProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)
	nodeGen := gen.IntRange(0, propertyNodes-1)
	opsGen := gen.SliceOf(nodeGen)

	// Property 1: membership and clustering stay consistent after any merges
	properties.Property("merges preserve the partition invariant", prop.ForAll(
		func(ops []int, policy bool) bool {
			ds := New(propertyNodes, WithMergePolicy(policyOf(policy)))
			applyPairs(ds, ops)
			return checkInvariants(ds) == nil && ds.Len() == propertyNodes
		},
		opsGen,
		gen.Bool(),
	))

	// Property 2: undo reverts exactly one merge, no-ops included
	properties.Property("undo restores the pre-merge state", prop.ForAll(
		func(ops []int, p, q int) bool {
			ds := New(propertyNodes)
			applyPairs(ds, ops)
			membership := ds.Membership()
			clustering := ds.Clustering()

			ds.Merge(p, q)
			ds.Undo()
			return reflect.DeepEqual(membership, ds.membership) &&
				reflect.DeepEqual(clustering, ds.clustering)
		},
		opsGen,
		nodeGen,
		nodeGen,
	))

	// Property 3: connectivity is symmetric and reflexive for known nodes
	properties.Property("connected is symmetric", prop.ForAll(
		func(ops []int, p, q int) bool {
			ds := New(propertyNodes)
			applyPairs(ds, ops)
			return ds.Connected(p, q) == ds.Connected(q, p) && ds.Connected(p, p)
		},
		opsGen,
		nodeGen,
		nodeGen,
	))

	// Property 4: merging two distinct clusters of sizes a and b yields a+b
	properties.Property("union cardinality", prop.ForAll(
		func(ops []int, p, q int) bool {
			ds := New(propertyNodes)
			applyPairs(ds, ops)
			if ds.Connected(p, q) {
				return !ds.Merge(p, q)
			}
			cp, _ := ds.Find(p)
			cq, _ := ds.Find(q)
			a, b := ds.Size(cp), ds.Size(cq)
			clusters := ds.NumClusters()

			ds.Merge(p, q)
			c, _ := ds.Find(p)
			return ds.Connected(p, q) && ds.Size(c) == a+b && ds.NumClusters() == clusters-1
		},
		opsGen,
		nodeGen,
		nodeGen,
	))

	// Property 5: after a merge p and q are connected, and it sticks
	properties.Property("merge connects", prop.ForAll(
		func(ops []int) bool {
			ds := New(propertyNodes)
			for i := 0; i+1 < len(ops); i += 2 {
				ds.Merge(ops[i], ops[i+1])
				if !ds.Connected(ops[i], ops[i+1]) {
					return false
				}
			}
			for i := 0; i+1 < len(ops); i += 2 {
				if !ds.Connected(ops[i], ops[i+1]) {
					return false
				}
			}
			return true
		},
		opsGen,
	))

	// Property 6: renumbering by size keeps the same grouping
	properties.Property("sort by size preserves groups", prop.ForAll(
		func(ops []int, p, q int) bool {
			ds := New(propertyNodes)
			applyPairs(ds, ops)
			connected := ds.Connected(p, q)
			clusters := ds.NumClusters()

			ds.SortBySize()
			ids := ds.ClusterIDs()
			for i := 1; i < len(ids); i++ {
				if ds.Size(ids[i-1]) < ds.Size(ids[i]) {
					return false
				}
			}
			return checkInvariants(ds) == nil &&
				ds.Connected(p, q) == connected &&
				ds.NumClusters() == clusters &&
				(len(ids) == 0 || ids[len(ids)-1] == len(ids)-1)
		},
		opsGen,
		nodeGen,
		nodeGen,
	))

	properties.TestingRun(t)
}

func policyOf(first bool) MergePolicy {
	if first {
		return MergeKeepFirst
	}
	return MergeBySize
}
