package algorithms

import (
	"container/list"

	"github.com/dd0wney/cluso-partition/pkg/adjacency"
	"github.com/dd0wney/cluso-partition/pkg/partition"
)

// ConnectedComponents returns a partition with one cluster per connected
// component. Cluster-ids are the smallest node of each component.
func ConnectedComponents(a *adjacency.Matrix) *partition.DisjointSet {
	membership := make(partition.Membership, a.N())

	// BFS from every unvisited node, in ascending order
	for start := 0; start < a.N(); start++ {
		if _, visited := membership[start]; visited {
			continue
		}
		queue := list.New()
		queue.PushBack(start)
		membership[start] = start

		for queue.Len() > 0 {
			node, ok := queue.Remove(queue.Front()).(int)
			if !ok {
				continue
			}
			for _, neighbor := range a.Neighbors(node) {
				if _, visited := membership[neighbor]; !visited {
					membership[neighbor] = start
					queue.PushBack(neighbor)
				}
			}
		}
	}
	return partition.NewFromMembership(membership)
}
