package algorithms

import (
	"github.com/dd0wney/cluso-partition/pkg/adjacency"
	"github.com/dd0wney/cluso-partition/pkg/partition"
)

// Community summarises one cluster of a partition
type Community struct {
	ID            int
	Nodes         []int
	Size          int
	InternalEdges int
	Density       float64 // Edge density within community
}

// Summarize describes every cluster of ds in ascending cluster-id order.
func Summarize(a *adjacency.Matrix, ds *partition.DisjointSet) []Community {
	out := make([]Community, 0, ds.NumClusters())
	ds.RangeClusters(func(id int, members partition.Cluster) bool {
		nodes := members.Sorted()
		internal := 0
		for i := 0; i < len(nodes); i++ {
			for j := i + 1; j < len(nodes); j++ {
				if a.Has(nodes[i], nodes[j]) {
					internal++
				}
			}
		}
		c := Community{
			ID:            id,
			Nodes:         nodes,
			Size:          len(nodes),
			InternalEdges: internal,
		}
		if c.Size > 1 {
			c.Density = float64(internal) / (float64(c.Size) * float64(c.Size-1) / 2)
		}
		out = append(out, c)
		return true
	})
	return out
}
