package algorithms

import (
	"math"
	"reflect"
	"testing"
)

func TestSharedNeighbors(t *testing.T) {
	a := kiteGraph(t)

	tests := []struct {
		n1, n2 int
		want   []int
	}{
		{0, 3, []int{1, 2}},
		{1, 2, []int{0, 3}},
		{0, 4, nil},
		{4, 1, []int{3}},
	}
	for _, tt := range tests {
		if got := sharedNeighbors(a, tt.n1, tt.n2); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("sharedNeighbors(%d, %d) = %v, want %v", tt.n1, tt.n2, got, tt.want)
		}
	}
}

func TestResourceAllocationIndex(t *testing.T) {
	a := kiteGraph(t)

	// shared neighbour 3 has degree 1.5
	if got := ResourceAllocationIndex(a, 1, 4); !almostEqual(got, -1/1.5) {
		t.Errorf("ResourceAllocationIndex(1, 4) = %v, want %v", got, -1/1.5)
	}
	if got := ResourceAllocationIndex(a, 0, 4); got != 0 {
		t.Errorf("ResourceAllocationIndex(0, 4) = %v, want 0", got)
	}
	// more shared neighbours, more negative
	if ResourceAllocationIndex(a, 0, 3) >= ResourceAllocationIndex(a, 1, 4) {
		t.Error("expected (0,3) to be more related than (1,4)")
	}
}

func TestAdamicAdarIndex(t *testing.T) {
	a := kiteGraph(t)

	want := 2 / math.Log(1.5)
	if got := AdamicAdarIndex(a, 0, 3); !almostEqual(got, want) {
		t.Errorf("AdamicAdarIndex(0, 3) = %v, want %v", got, want)
	}
}

func TestAdamicAdarIndex_SkipsUnitDegree(t *testing.T) {
	// shared neighbour 1 has row sum 2, degree 1, log 0
	a := pathGraph(t)

	got := AdamicAdarIndex(a, 0, 2)
	if got != 0 {
		t.Errorf("AdamicAdarIndex(0, 2) = %v, want 0", got)
	}
	if math.IsInf(got, 0) || math.IsNaN(got) {
		t.Errorf("AdamicAdarIndex(0, 2) = %v, want finite", got)
	}
}
