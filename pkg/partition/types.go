package partition

import "sort"

// Membership maps a node to its cluster-id.
type Membership map[int]int

// Clone returns an independent copy.
func (m Membership) Clone() Membership {
	out := make(Membership, len(m))
	for node, c := range m {
		out[node] = c
	}
	return out
}

// Nodes returns the registered nodes in ascending order.
func (m Membership) Nodes() []int {
	nodes := make([]int, 0, len(m))
	for node := range m {
		nodes = append(nodes, node)
	}
	sort.Ints(nodes)
	return nodes
}

// Cluster is a deduplicated set of member nodes.
type Cluster map[int]struct{}

// Contains reports whether node is a member.
func (c Cluster) Contains(node int) bool {
	_, ok := c[node]
	return ok
}

// Sorted returns the members in ascending order.
func (c Cluster) Sorted() []int {
	members := make([]int, 0, len(c))
	for node := range c {
		members = append(members, node)
	}
	sort.Ints(members)
	return members
}

// Clone returns an independent copy.
func (c Cluster) Clone() Cluster {
	out := make(Cluster, len(c))
	for node := range c {
		out[node] = struct{}{}
	}
	return out
}

// Clustering maps a cluster-id to its members. It is the grouped inverse of
// a Membership.
type Clustering map[int]Cluster

// Clone returns a deep copy.
func (c Clustering) Clone() Clustering {
	out := make(Clustering, len(c))
	for id, members := range c {
		out[id] = members.Clone()
	}
	return out
}

// IDs returns the cluster-ids in ascending order.
func (c Clustering) IDs() []int {
	ids := make([]int, 0, len(c))
	for id := range c {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// ToClustering groups a membership by cluster-id.
func (m Membership) ToClustering() Clustering {
	out := make(Clustering)
	for node, c := range m {
		members, ok := out[c]
		if !ok {
			members = make(Cluster)
			out[c] = members
		}
		members[node] = struct{}{}
	}
	return out
}
