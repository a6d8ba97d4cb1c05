// Package partition implements the clustering structure used by greedy
// agglomerative community detection: a union-find over node memberships with
// a single-level undo.
//
// A DisjointSet is not safe for concurrent mutation. Merge, Undo and
// SortBySize rewrite shared state without locking, and the one-slot history
// is overwritten on every Merge, so interleaved mutations would lose the
// ability to undo. Read-only queries may run concurrently with each other.
// Use Clone to hand independent copies to concurrent searches.
package partition

import "sort"

// DisjointSet holds the current partition and one snapshot of the partition
// as it was before the most recent Merge.
type DisjointSet struct {
	membership Membership
	clustering Clustering

	prevMembership Membership
	prevClustering Clustering

	policy MergePolicy
}

// New creates a DisjointSet over nodes 0..n-1. Without options every node is
// its own cluster with cluster-id equal to the node id.
func New(n int, opts ...Option) *DisjointSet {
	o := buildOptions(opts)
	ds := &DisjointSet{
		membership: make(Membership, n),
		clustering: make(Clustering, n),
		policy:     o.policy,
	}
	for node := 0; node < n; node++ {
		c := node
		if o.rng != nil {
			c = o.rng.IntN(n)
		}
		ds.assign(node, c)
	}
	ds.snapshot()
	return ds
}

// NewFromMembership creates a DisjointSet from an existing node→cluster-id
// assignment, e.g. to resume a saved partition. The initial history equals
// the initial state.
func NewFromMembership(m Membership, opts ...Option) *DisjointSet {
	o := buildOptions(opts)
	ds := &DisjointSet{
		membership: m.Clone(),
		clustering: m.ToClustering(),
		policy:     o.policy,
	}
	ds.snapshot()
	return ds
}

// Merge unions the clusters of p and q. Cases, in order:
//
//   - p and q share a cluster-id: nothing changes.
//   - both are registered in different clusters: the clusters combine, the
//     surviving id is picked by the merge policy and the other id is retired.
//   - only p is registered: q joins p's cluster.
//   - only q is registered: p joins q's cluster.
//   - neither is registered: a new cluster {p, q} is created with id p, or
//     the smallest free id when p is already taken by another cluster.
//
// The state before the call is always snapshotted for Undo, no-ops included.
// Merge reports whether the partition changed.
func (ds *DisjointSet) Merge(p, q int) bool {
	ds.snapshot()

	cp, okP := ds.membership[p]
	cq, okQ := ds.membership[q]

	switch {
	case okP && okQ:
		if cp == cq {
			return false
		}
		survivor, retired := cp, cq
		if ds.policy == MergeBySize && len(ds.clustering[cq]) > len(ds.clustering[cp]) {
			survivor, retired = cq, cp
		}
		target := ds.clustering[survivor]
		for node := range ds.clustering[retired] {
			target[node] = struct{}{}
			ds.membership[node] = survivor
		}
		delete(ds.clustering, retired)
	case okP:
		ds.assign(q, cp)
	case okQ:
		ds.assign(p, cq)
	default:
		id := p
		if _, taken := ds.clustering[id]; taken {
			id = ds.freeID()
		}
		ds.assign(p, id)
		ds.assign(q, id)
	}
	return true
}

// Connected reports whether p and q are both registered and share a cluster.
func (ds *DisjointSet) Connected(p, q int) bool {
	cp, okP := ds.membership[p]
	if !okP {
		return false
	}
	cq, okQ := ds.membership[q]
	return okQ && cp == cq
}

// Find returns the cluster-id of p.
func (ds *DisjointSet) Find(p int) (int, error) {
	c, ok := ds.membership[p]
	if !ok {
		return 0, NodeNotFoundError("find", p)
	}
	return c, nil
}

// Contains reports whether p has a cluster-id.
func (ds *DisjointSet) Contains(p int) bool {
	_, ok := ds.membership[p]
	return ok
}

// Undo restores the partition saved by the most recent Merge. Calling it
// again without an intervening Merge restores the same snapshot.
func (ds *DisjointSet) Undo() {
	ds.membership = ds.prevMembership.Clone()
	ds.clustering = ds.prevClustering.Clone()
}

// SortBySize renumbers cluster-ids 0..k-1 by descending cluster size. Equal
// sizes are ordered by their smallest member, ascending. The history snapshot
// is left untouched.
func (ds *DisjointSet) SortBySize() {
	type group struct {
		members Cluster
		first   int
	}
	groups := make([]group, 0, len(ds.clustering))
	for _, members := range ds.clustering {
		first := -1
		for node := range members {
			if first == -1 || node < first {
				first = node
			}
		}
		groups = append(groups, group{members: members, first: first})
	}
	sort.Slice(groups, func(i, j int) bool {
		if len(groups[i].members) != len(groups[j].members) {
			return len(groups[i].members) > len(groups[j].members)
		}
		return groups[i].first < groups[j].first
	})

	ds.clustering = make(Clustering, len(groups))
	ds.membership = make(Membership, len(ds.membership))
	for id, g := range groups {
		ds.clustering[id] = g.members
		for node := range g.members {
			ds.membership[node] = id
		}
	}
}

// Len returns the number of registered nodes.
func (ds *DisjointSet) Len() int {
	return len(ds.membership)
}

// NumClusters returns the number of live cluster-ids.
func (ds *DisjointSet) NumClusters() int {
	return len(ds.clustering)
}

// Size returns the number of members of cluster id, 0 if it does not exist.
func (ds *DisjointSet) Size(id int) int {
	return len(ds.clustering[id])
}

// Members returns the members of cluster id in ascending order.
func (ds *DisjointSet) Members(id int) []int {
	members, ok := ds.clustering[id]
	if !ok {
		return nil
	}
	return members.Sorted()
}

// ClusterIDs returns the live cluster-ids in ascending order.
func (ds *DisjointSet) ClusterIDs() []int {
	return ds.clustering.IDs()
}

// RangeClusters calls fn for every cluster in ascending id order until fn
// returns false. fn must not modify members.
func (ds *DisjointSet) RangeClusters(fn func(id int, members Cluster) bool) {
	for _, id := range ds.clustering.IDs() {
		if !fn(id, ds.clustering[id]) {
			return
		}
	}
}

// Membership returns a copy of the node→cluster-id mapping.
func (ds *DisjointSet) Membership() Membership {
	return ds.membership.Clone()
}

// Clustering returns a copy of the cluster-id→members mapping.
func (ds *DisjointSet) Clustering() Clustering {
	return ds.clustering.Clone()
}

// Policy returns the merge policy in use.
func (ds *DisjointSet) Policy() MergePolicy {
	return ds.policy
}

// Clone returns an independent deep copy, history included.
func (ds *DisjointSet) Clone() *DisjointSet {
	return &DisjointSet{
		membership:     ds.membership.Clone(),
		clustering:     ds.clustering.Clone(),
		prevMembership: ds.prevMembership.Clone(),
		prevClustering: ds.prevClustering.Clone(),
		policy:         ds.policy,
	}
}

func (ds *DisjointSet) snapshot() {
	ds.prevMembership = ds.membership.Clone()
	ds.prevClustering = ds.clustering.Clone()
}

func (ds *DisjointSet) assign(node, id int) {
	members, ok := ds.clustering[id]
	if !ok {
		members = make(Cluster)
		ds.clustering[id] = members
	}
	members[node] = struct{}{}
	ds.membership[node] = id
}

func (ds *DisjointSet) freeID() int {
	for id := 0; ; id++ {
		if _, taken := ds.clustering[id]; !taken {
			return id
		}
	}
}
