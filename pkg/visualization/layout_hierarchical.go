package visualization

import (
	"github.com/dd0wney/cluso-partition/pkg/adjacency"
)

// HierarchicalLayout arranges nodes in rows by breadth-first depth. Each
// connected component is rooted at its highest-degree node.
type HierarchicalLayout struct {
	config *LayoutConfig
}

// NewHierarchicalLayout creates a new hierarchical layout
func NewHierarchicalLayout(config *LayoutConfig) *HierarchicalLayout {
	if config.Padding == 0 {
		config.Padding = 50
	}
	return &HierarchicalLayout{config: config}
}

// ComputeLayout arranges nodes hierarchically
func (hl *HierarchicalLayout) ComputeLayout(a *adjacency.Matrix) ([]Position, error) {
	n := a.N()
	positions := make([]Position, n)
	if n == 0 {
		return positions, nil
	}

	levels := bfsLevels(a)

	levelHeight := (hl.config.Height - 2*hl.config.Padding) / float64(len(levels))
	levelWidth := hl.config.Width - 2*hl.config.Padding

	for levelIdx, level := range levels {
		y := hl.config.Padding + float64(levelIdx)*levelHeight + levelHeight/2
		spacing := levelWidth / float64(len(level)+1)

		for nodeIdx, node := range level {
			x := hl.config.Padding + spacing*float64(nodeIdx+1)
			positions[node] = Position{X: x, Y: y}
		}
	}

	return positions, nil
}

// bfsLevels groups nodes by breadth-first depth from the root of their
// component. Components share rows.
func bfsLevels(a *adjacency.Matrix) [][]int {
	n := a.N()
	depth := make([]int, n)
	for i := range depth {
		depth[i] = -1
	}

	var levels [][]int
	for {
		root := -1
		for i := 0; i < n; i++ {
			if depth[i] < 0 && (root < 0 || a.RowSum(i) > a.RowSum(root)) {
				root = i
			}
		}
		if root < 0 {
			return levels
		}

		depth[root] = 0
		frontier := []int{root}
		for len(frontier) > 0 {
			d := depth[frontier[0]]
			if d == len(levels) {
				levels = append(levels, nil)
			}
			levels[d] = append(levels[d], frontier...)

			var next []int
			for _, u := range frontier {
				for _, v := range a.Neighbors(u) {
					if depth[v] < 0 {
						depth[v] = d + 1
						next = append(next, v)
					}
				}
			}
			frontier = next
		}
	}
}
