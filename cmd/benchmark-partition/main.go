package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand/v2"
	"time"

	"github.com/dd0wney/cluso-partition/pkg/adjacency"
	"github.com/dd0wney/cluso-partition/pkg/algorithms"
	"github.com/dd0wney/cluso-partition/pkg/partition"
	"github.com/dd0wney/cluso-partition/pkg/search"
)

func main() {
	nodes := flag.Int("nodes", 500, "Number of nodes to generate")
	edges := flag.Int("edges", 1500, "Number of edges to generate")
	seed := flag.Uint64("seed", 1, "Random seed")
	iterations := flag.Int("iterations", 200, "Search iterations per objective")
	flag.Parse()

	fmt.Printf("🔥 Cluso Partition - Algorithms Benchmark\n")
	fmt.Printf("=========================================\n\n")
	fmt.Printf("Configuration:\n")
	fmt.Printf("  Nodes: %d\n", *nodes)
	fmt.Printf("  Edges: %d\n\n", *edges)

	// Generate graph
	fmt.Printf("🔗 Generating G(n,m) graph...\n")
	start := time.Now()

	a, err := adjacency.ErdosRenyi(*nodes, *edges, rand.New(rand.NewPCG(*seed, 0)))
	if err != nil {
		log.Fatalf("Failed to generate graph: %v", err)
	}

	fmt.Printf("✅ Generated %d nodes and %d edges in %v\n", a.N(), a.EdgeCount(), time.Since(start))

	// Benchmark 1: Similarity indices over every adjacent pair
	fmt.Printf("\n📊 Benchmark 1: Similarity Indices (%d pairs)\n", a.EdgeCount())
	pairs := a.Edges()
	for _, metric := range algorithms.SimilarityMetrics() {
		start = time.Now()
		sum := 0.0
		for _, e := range pairs {
			sum += algorithms.Similarity(a, e[0], e[1], metric)
		}
		duration := time.Since(start)
		fmt.Printf("  %-24s %10v  (mean %.4f)\n", metric, duration, sum/float64(max(len(pairs), 1)))
	}

	// Benchmark 2: Seeding
	fmt.Printf("\n📊 Benchmark 2: Seeding\n")
	start = time.Now()
	components := algorithms.ConnectedComponents(a)
	fmt.Printf("✅ Connected Components in %v\n", time.Since(start))
	fmt.Printf("  Number of components: %d\n", components.NumClusters())
	fmt.Printf("  Largest component size: %d nodes\n", largestCluster(components))

	start = time.Now()
	labelProp := partition.NewFromMembership(algorithms.LabelPropagation(a, 100))
	fmt.Printf("✅ Label Propagation in %v\n", time.Since(start))
	fmt.Printf("  Number of communities: %d\n", labelProp.NumClusters())
	fmt.Printf("  Largest community size: %d nodes\n", largestCluster(labelProp))

	// Benchmark 3: Clustering Coefficient
	fmt.Printf("\n📊 Benchmark 3: Clustering Coefficient\n")
	start = time.Now()
	avgCluster := algorithms.AverageClusteringCoefficient(a)
	fmt.Printf("✅ Clustering Coefficient in %v\n", time.Since(start))
	fmt.Printf("  Average Clustering Coefficient: %.6f\n", avgCluster)

	// Benchmark 4: Objectives on the label propagation partition
	fmt.Printf("\n📊 Benchmark 4: Objectives\n")
	objectives := []algorithms.Objective{
		algorithms.ObjectiveJaccardEntropy,
		algorithms.ObjectiveSizeEntropy,
		algorithms.ObjectiveModularity,
	}
	for _, objective := range objectives {
		start = time.Now()
		score := objective.Evaluate(a, labelProp)
		fmt.Printf("  %-16s %10v  (score %.6f)\n", objective, time.Since(start), score)
	}

	// Benchmark 5: Search
	fmt.Printf("\n📊 Benchmark 5: Search (%d iterations from singletons)\n", *iterations)
	for _, objective := range objectives {
		opts := search.DefaultOptions()
		opts.Objective = objective
		opts.Iterations = *iterations
		opts.Seed = *seed

		s := &search.Searcher{Matrix: a, Options: opts}
		res, err := s.Run(context.Background(), partition.New(a.N()))
		if err != nil {
			log.Fatalf("Search failed: %v", err)
		}
		fmt.Printf("  %-16s %10v  %.4f → %.4f, %d accepted, %d clusters\n",
			objective, res.Duration, res.Initial, res.Score, res.Accepted, res.Partition.NumClusters())
	}

	fmt.Printf("\n✅ Benchmark complete!\n")
}

func largestCluster(ds *partition.DisjointSet) int {
	maxSize := 0
	ds.RangeClusters(func(_ int, members partition.Cluster) bool {
		maxSize = max(maxSize, len(members))
		return true
	})
	return maxSize
}
