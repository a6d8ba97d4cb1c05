// Package visualization places graph nodes on a 2D canvas and exports the
// result, coloured by cluster, as JSON.
package visualization

import (
	"errors"
	"fmt"

	"github.com/dd0wney/cluso-partition/pkg/adjacency"
)

// ErrUnknownLayout is returned by NewLayout for unregistered names.
var ErrUnknownLayout = errors.New("unknown layout")

// Position represents a 2D coordinate
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// LayoutConfig configures layout parameters
type LayoutConfig struct {
	Width      float64 // Canvas width
	Height     float64 // Canvas height
	Iterations int     // Number of iterations for iterative algorithms
	Padding    float64 // Padding from edges
	Seed       uint64  // Initial placement for randomized layouts
}

// DefaultLayoutConfig returns an 800x600 canvas.
func DefaultLayoutConfig() *LayoutConfig {
	return &LayoutConfig{
		Width:      800,
		Height:     600,
		Iterations: 50,
		Padding:    50,
		Seed:       1,
	}
}

// Layout computes one position per node, indexed by node.
type Layout interface {
	ComputeLayout(a *adjacency.Matrix) ([]Position, error)
}

// NewLayout returns the layout registered under name: circular, force,
// hierarchical or mds.
func NewLayout(name string, config *LayoutConfig) (Layout, error) {
	if config == nil {
		config = DefaultLayoutConfig()
	}
	switch name {
	case "circular":
		return NewCircularLayout(config), nil
	case "force":
		return NewForceDirectedLayout(config), nil
	case "hierarchical":
		return NewHierarchicalLayout(config), nil
	case "mds":
		return NewMDSLayout(config), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownLayout, name)
	}
}
