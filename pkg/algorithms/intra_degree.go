package algorithms

import (
	"github.com/dd0wney/cluso-partition/pkg/adjacency"
	"github.com/dd0wney/cluso-partition/pkg/partition"
)

// IntraDegree counts the members of node's current cluster that are adjacent
// to node, halved to match the degree convention of Similarities. The result
// depends on ds at call time.
func IntraDegree(a *adjacency.Matrix, ds *partition.DisjointSet, node int) (float64, error) {
	c, err := ds.Find(node)
	if err != nil {
		return 0, &partition.NodeError{Op: "intra-degree", Node: node, Cause: partition.ErrNodeNotFound}
	}
	count := 0
	for _, member := range ds.Members(c) {
		if member != node && a.Has(node, member) {
			count++
		}
	}
	return float64(count) / 2, nil
}
