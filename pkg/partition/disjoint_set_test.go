package partition

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Singletons(t *testing.T) {
	ds := New(5)

	assert.Equal(t, 5, ds.Len())
	assert.Equal(t, 5, ds.NumClusters())
	for node := 0; node < 5; node++ {
		c, err := ds.Find(node)
		require.NoError(t, err)
		assert.Equal(t, node, c)
		assert.Equal(t, []int{node}, ds.Members(node))
	}
	assert.Equal(t, MergeBySize, ds.Policy())
}

func TestNew_RandomAssignment(t *testing.T) {
	ds := New(50, WithRandomAssignment(rand.New(rand.NewPCG(7, 11))))

	require.Equal(t, 50, ds.Len())
	total := 0
	for _, id := range ds.ClusterIDs() {
		assert.GreaterOrEqual(t, id, 0)
		assert.Less(t, id, 50)
		total += ds.Size(id)
	}
	assert.Equal(t, 50, total)
	// 50 uniform draws from [0,50) collide with near certainty.
	assert.Less(t, ds.NumClusters(), 50, "random assignment should produce shared cluster-ids")
	require.NoError(t, checkInvariants(ds))
}

func TestNewFromMembership(t *testing.T) {
	m := Membership{0: 7, 1: 7, 2: 3, 5: 3, 9: 9}
	ds := NewFromMembership(m)

	assert.Equal(t, 5, ds.Len())
	assert.Equal(t, 3, ds.NumClusters())
	assert.Equal(t, []int{0, 1}, ds.Members(7))
	assert.Equal(t, []int{2, 5}, ds.Members(3))
	assert.True(t, ds.Connected(2, 5))

	// the caller's map is copied
	m[0] = 3
	c, _ := ds.Find(0)
	assert.Equal(t, 7, c)

	// history starts equal to the initial state
	ds.Undo()
	assert.Equal(t, Membership{0: 7, 1: 7, 2: 3, 5: 3, 9: 9}, ds.Membership())
}

func TestFind_UnknownNode(t *testing.T) {
	ds := New(3)

	_, err := ds.Find(42)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNodeNotFound))
	assert.True(t, IsNotFound(err))

	var nodeErr *NodeError
	require.True(t, errors.As(err, &nodeErr))
	assert.Equal(t, 42, nodeErr.Node)
	assert.Equal(t, "find", nodeErr.Op)
}

func TestConnected(t *testing.T) {
	ds := New(4)
	ds.Merge(0, 1)

	tests := []struct {
		p, q int
		want bool
	}{
		{0, 1, true},
		{1, 0, true},
		{0, 2, false},
		{2, 3, false},
		{0, 99, false},
		{99, 0, false},
		{98, 99, false},
	}
	for _, tt := range tests {
		if got := ds.Connected(tt.p, tt.q); got != tt.want {
			t.Errorf("Connected(%d, %d) = %v, want %v", tt.p, tt.q, got, tt.want)
		}
	}
}

func TestMerge_Cases(t *testing.T) {
	t.Run("same cluster is a no-op", func(t *testing.T) {
		ds := New(3)
		ds.Merge(0, 1)
		before := ds.Clustering()

		assert.False(t, ds.Merge(1, 0))
		assert.Equal(t, before, ds.Clustering())
	})

	t.Run("both known in different clusters", func(t *testing.T) {
		ds := New(4)
		assert.True(t, ds.Merge(2, 3))
		c2, _ := ds.Find(2)
		c3, _ := ds.Find(3)
		assert.Equal(t, c2, c3)
		assert.Equal(t, 3, ds.NumClusters())
	})

	t.Run("only p known", func(t *testing.T) {
		ds := NewFromMembership(Membership{0: 0})
		assert.True(t, ds.Merge(0, 5))
		c, err := ds.Find(5)
		require.NoError(t, err)
		assert.Equal(t, 0, c)
		assert.Equal(t, []int{0, 5}, ds.Members(0))
	})

	t.Run("only q known", func(t *testing.T) {
		ds := NewFromMembership(Membership{3: 3})
		assert.True(t, ds.Merge(8, 3))
		c, err := ds.Find(8)
		require.NoError(t, err)
		assert.Equal(t, 3, c)
	})

	t.Run("neither known", func(t *testing.T) {
		ds := NewFromMembership(Membership{})
		assert.True(t, ds.Merge(4, 6))
		assert.Equal(t, []int{4, 6}, ds.Members(4))
		c, _ := ds.Find(6)
		assert.Equal(t, 4, c)
	})

	t.Run("neither known with taken id", func(t *testing.T) {
		ds := NewFromMembership(Membership{0: 4, 1: 4})
		assert.True(t, ds.Merge(4, 6))
		assert.Equal(t, []int{0, 1}, ds.Members(4), "existing cluster 4 must be untouched")
		c, _ := ds.Find(4)
		assert.Equal(t, 0, c, "smallest free id is used")
		assert.Equal(t, []int{4, 6}, ds.Members(0))
		require.NoError(t, checkInvariants(ds))
	})
}

func TestMerge_PolicyBySize(t *testing.T) {
	ds := New(5)
	ds.Merge(3, 4) // cluster 3 = {3,4}

	// 0 is a singleton, 3 is larger: the larger cluster survives
	ds.Merge(0, 3)
	c, _ := ds.Find(0)
	assert.Equal(t, 3, c)
	assert.Equal(t, 0, ds.Size(0), "smaller cluster id is retired")

	// equal sizes: first argument survives
	ds2 := New(4)
	ds2.Merge(2, 1)
	c, _ = ds2.Find(1)
	assert.Equal(t, 2, c)
}

func TestMerge_PolicyKeepFirst(t *testing.T) {
	ds := New(5, WithMergePolicy(MergeKeepFirst))
	ds.Merge(3, 4)

	ds.Merge(0, 3)
	c, _ := ds.Find(4)
	assert.Equal(t, 0, c, "first argument's cluster survives regardless of size")
	assert.Equal(t, 0, ds.Size(3))
}

func TestMerge_UnionCardinality(t *testing.T) {
	ds := New(6)
	ds.Merge(0, 1)
	ds.Merge(1, 2)
	ds.Merge(4, 5)

	a := ds.Size(mustFind(t, ds, 0))
	b := ds.Size(mustFind(t, ds, 4))
	clusters := ds.NumClusters()

	ds.Merge(2, 5)
	assert.Equal(t, a+b, ds.Size(mustFind(t, ds, 0)))
	assert.Equal(t, clusters-1, ds.NumClusters())
}

func TestUndo(t *testing.T) {
	ds := New(4)
	ds.Merge(0, 1)
	ds.Merge(2, 3)
	beforeMembership := ds.Membership()
	beforeClustering := ds.Clustering()

	ds.Merge(1, 2)
	require.Equal(t, 1, ds.NumClusters())

	ds.Undo()
	assert.Equal(t, beforeMembership, ds.Membership())
	assert.Equal(t, beforeClustering, ds.Clustering())

	// depth 1: a second undo restores the same snapshot
	ds.Undo()
	assert.Equal(t, beforeMembership, ds.Membership())
	assert.Equal(t, beforeClustering, ds.Clustering())
}

func TestUndo_AfterNoOpMerge(t *testing.T) {
	ds := New(3)
	ds.Merge(0, 1)
	state := ds.Clustering()

	ds.Merge(0, 1)
	ds.Undo()
	assert.Equal(t, state, ds.Clustering(), "undo after a no-op merge restores the same state")
}

func TestUndo_OnlyOneLevel(t *testing.T) {
	ds := New(3)
	ds.Merge(0, 1)
	ds.Merge(1, 2)

	ds.Undo()
	ds.Undo()
	assert.True(t, ds.Connected(0, 1), "the first merge is not undoable after a second merge")
	assert.False(t, ds.Connected(1, 2))
}

// Path graph scenario: 0-1-2-3.
func TestPathGraphScenario(t *testing.T) {
	ds := New(4)
	ds.Merge(0, 1)
	ds.Merge(2, 3)
	ds.Merge(1, 2)

	require.Equal(t, 1, ds.NumClusters())
	id := ds.ClusterIDs()[0]
	assert.Equal(t, []int{0, 1, 2, 3}, ds.Members(id))

	ds.Undo()
	require.Equal(t, 2, ds.NumClusters())
	assert.True(t, ds.Connected(0, 1))
	assert.True(t, ds.Connected(2, 3))
	assert.False(t, ds.Connected(1, 2))
	assert.Equal(t, []int{0, 1}, ds.Members(mustFind(t, ds, 0)))
	assert.Equal(t, []int{2, 3}, ds.Members(mustFind(t, ds, 3)))
}

func TestSortBySize(t *testing.T) {
	ds := New(8)
	ds.Merge(5, 6)
	ds.Merge(6, 7) // {5,6,7}
	ds.Merge(3, 4) // {3,4}
	ds.Merge(0, 1) // {0,1}
	// {2} singleton

	ds.SortBySize()

	assert.Equal(t, []int{0, 1, 2, 3}, ds.ClusterIDs())
	assert.Equal(t, []int{5, 6, 7}, ds.Members(0))
	assert.Equal(t, []int{0, 1}, ds.Members(1), "tie broken by smallest member")
	assert.Equal(t, []int{3, 4}, ds.Members(2))
	assert.Equal(t, []int{2}, ds.Members(3))

	c, _ := ds.Find(6)
	assert.Equal(t, 0, c)
	require.NoError(t, checkInvariants(ds))
}

func TestSortBySize_KeepsHistory(t *testing.T) {
	ds := New(3)
	ds.Merge(1, 2)
	ds.SortBySize()

	ds.Undo()
	assert.Equal(t, Membership{0: 0, 1: 1, 2: 2}, ds.Membership())
}

func TestClone_Independent(t *testing.T) {
	ds := New(4)
	ds.Merge(0, 1)

	clone := ds.Clone()
	clone.Merge(2, 3)
	clone.Merge(0, 2)

	assert.Equal(t, 3, ds.NumClusters())
	assert.Equal(t, 1, clone.NumClusters())

	clone.Undo()
	assert.Equal(t, 2, clone.NumClusters())
}

func TestAccessorsReturnCopies(t *testing.T) {
	ds := New(2)

	m := ds.Membership()
	m[0] = 1
	c := ds.Clustering()
	delete(c, 0)

	got, _ := ds.Find(0)
	assert.Equal(t, 0, got)
	assert.Equal(t, 2, ds.NumClusters())
}

func TestRangeClusters(t *testing.T) {
	ds := New(5)
	ds.Merge(4, 3)

	var ids []int
	ds.RangeClusters(func(id int, members Cluster) bool {
		ids = append(ids, id)
		return true
	})
	assert.Equal(t, []int{0, 1, 2, 4}, ids)

	visited := 0
	ds.RangeClusters(func(id int, members Cluster) bool {
		visited++
		return false
	})
	assert.Equal(t, 1, visited)
}

func TestParseMergePolicy(t *testing.T) {
	tests := []struct {
		in      string
		want    MergePolicy
		wantErr bool
	}{
		{"", MergeBySize, false},
		{"size", MergeBySize, false},
		{"first", MergeKeepFirst, false},
		{"largest", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseMergePolicy(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseMergePolicy(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("ParseMergePolicy(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
	assert.Equal(t, "size", MergeBySize.String())
	assert.Equal(t, "first", MergeKeepFirst.String())
}

func mustFind(t *testing.T, ds *DisjointSet, node int) int {
	t.Helper()
	c, err := ds.Find(node)
	require.NoError(t, err)
	return c
}
