package visualization

import (
	"math"
	"math/rand/v2"

	"github.com/dd0wney/cluso-partition/pkg/adjacency"
)

// ForceDirectedLayout implements Fruchterman-Reingold style force-directed
// layout.
type ForceDirectedLayout struct {
	config *LayoutConfig
}

// NewForceDirectedLayout creates a new force-directed layout
func NewForceDirectedLayout(config *LayoutConfig) *ForceDirectedLayout {
	if config.Iterations == 0 {
		config.Iterations = 50
	}
	if config.Padding == 0 {
		config.Padding = 50
	}
	return &ForceDirectedLayout{config: config}
}

// ComputeLayout computes positions using force-directed algorithm. Results
// are deterministic for a given config Seed.
func (fdl *ForceDirectedLayout) ComputeLayout(a *adjacency.Matrix) ([]Position, error) {
	n := a.N()
	cfg := fdl.config
	if n == 0 {
		return []Position{}, nil
	}

	// Single node - center it
	if n == 1 {
		return []Position{{X: cfg.Width / 2, Y: cfg.Height / 2}}, nil
	}

	rng := rand.New(rand.NewPCG(cfg.Seed, uint64(n)))
	positions := make([]Position, n)
	for i := range positions {
		positions[i] = Position{
			X: rng.Float64()*(cfg.Width-2*cfg.Padding) + cfg.Padding,
			Y: rng.Float64()*(cfg.Height-2*cfg.Padding) + cfg.Padding,
		}
	}

	neighbors := make([][]int, n)
	for i := range neighbors {
		neighbors[i] = a.Neighbors(i)
	}

	k := math.Sqrt((cfg.Width * cfg.Height) / float64(n)) // Optimal distance
	temperature := cfg.Width / 10.0
	forces := make([]Position, n)

	for iter := 0; iter < cfg.Iterations; iter++ {
		clear(forces)

		// Repulsion between all nodes
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				dx := positions[i].X - positions[j].X
				dy := positions[i].Y - positions[j].Y
				dist := math.Sqrt(dx*dx + dy*dy)

				if dist < 0.01 {
					dist = 0.01
				}

				force := (k * k) / dist
				fx := (dx / dist) * force
				fy := (dy / dist) * force

				forces[i].X += fx
				forces[i].Y += fy
				forces[j].X -= fx
				forces[j].Y -= fy
			}
		}

		// Attraction along edges; each undirected edge is seen from both ends.
		for i := 0; i < n; i++ {
			for _, j := range neighbors[i] {
				dx := positions[i].X - positions[j].X
				dy := positions[i].Y - positions[j].Y
				dist := math.Sqrt(dx*dx + dy*dy)

				if dist < 0.01 {
					continue
				}

				force := (dist * dist) / k
				forces[i].X -= (dx / dist) * force
				forces[i].Y -= (dy / dist) * force
			}
		}

		// Apply forces with cooling
		cool := 1.0 - float64(iter)/float64(cfg.Iterations)
		for i, f := range forces {
			force := math.Sqrt(f.X*f.X + f.Y*f.Y)
			if force > 0 {
				step := math.Min(force, temperature) * cool
				positions[i].X += (f.X / force) * step
				positions[i].Y += (f.Y / force) * step
			}
		}

		temperature *= 0.95
	}

	return normalizePositions(positions, cfg.Width, cfg.Height, cfg.Padding), nil
}
