package main

import (
	"flag"
	"fmt"
	"io"

	"github.com/dd0wney/cluso-partition/pkg/config"
)

// overrides copies one flag's value from the parsed flags into the loaded
// configuration. Only flags given on the command line are applied.
var overrides = map[string]func(dst, src *config.Config){
	"graph": func(dst, src *config.Config) {
		dst.Graph.Path = src.Graph.Path
		dst.Graph.RandomNodes, dst.Graph.RandomEdges = 0, 0
	},
	"format": func(dst, src *config.Config) { dst.Graph.Format = src.Graph.Format },
	"random-nodes": func(dst, src *config.Config) {
		dst.Graph.RandomNodes = src.Graph.RandomNodes
		dst.Graph.Path = ""
	},
	"random-edges": func(dst, src *config.Config) { dst.Graph.RandomEdges = src.Graph.RandomEdges },
	"coords":       func(dst, src *config.Config) { dst.Graph.Coords = src.Graph.Coords },

	"objective":    func(dst, src *config.Config) { dst.Search.Objective = src.Search.Objective },
	"similarity":   func(dst, src *config.Config) { dst.Search.Similarity = src.Search.Similarity },
	"top-k":        func(dst, src *config.Config) { dst.Search.TopK = src.Search.TopK },
	"iterations":   func(dst, src *config.Config) { dst.Search.Iterations = src.Search.Iterations },
	"restarts":     func(dst, src *config.Config) { dst.Search.Restarts = src.Search.Restarts },
	"workers":      func(dst, src *config.Config) { dst.Search.Workers = src.Search.Workers },
	"seed":         func(dst, src *config.Config) { dst.Search.Seed = src.Search.Seed },
	"merge-policy": func(dst, src *config.Config) { dst.Search.MergePolicy = src.Search.MergePolicy },
	"init":         func(dst, src *config.Config) { dst.Search.Init = src.Search.Init },
	"random-init":  func(dst, src *config.Config) { dst.Search.RandomInit = src.Search.RandomInit },
	"seeding":      func(dst, src *config.Config) { dst.Search.Seeding = src.Search.Seeding },
	"timeout":      func(dst, src *config.Config) { dst.Search.Timeout = src.Search.Timeout },

	"out":         func(dst, src *config.Config) { dst.Output.Base = src.Output.Base },
	"compress":    func(dst, src *config.Config) { dst.Output.Compress = src.Output.Compress },
	"print":       func(dst, src *config.Config) { dst.Output.Print = src.Output.Print },
	"layout":      func(dst, src *config.Config) { dst.Output.Layout = src.Output.Layout },
	"metrics-out": func(dst, src *config.Config) { dst.Output.MetricsOut = src.Output.MetricsOut },

	"log-level":  func(dst, src *config.Config) { dst.Log.Level = src.Log.Level },
	"log-format": func(dst, src *config.Config) { dst.Log.Format = src.Log.Format },
}

// parseFlags loads the -config file, if any, applies the flags that were set
// on top of it and validates the result.
func parseFlags(args []string, stderr io.Writer) (*config.Config, error) {
	fs := flag.NewFlagSet("partition", flag.ContinueOnError)
	fs.SetOutput(stderr)

	def := config.Default()
	f := *def

	configPath := fs.String("config", "", "YAML configuration file")

	fs.StringVar(&f.Graph.Path, "graph", def.Graph.Path, "Graph file")
	fs.StringVar(&f.Graph.Format, "format", def.Graph.Format, "Graph file format: matrix or dimacs")
	fs.IntVar(&f.Graph.RandomNodes, "random-nodes", def.Graph.RandomNodes, "Generate a G(n,m) random graph with this many nodes")
	fs.IntVar(&f.Graph.RandomEdges, "random-edges", def.Graph.RandomEdges, "Edge count of the random graph")
	fs.StringVar(&f.Graph.Coords, "coords", def.Graph.Coords, "Node coordinate file for the layout")

	fs.StringVar(&f.Search.Objective, "objective", def.Search.Objective, "Objective: jaccard-entropy, size-entropy or modularity")
	fs.StringVar(&f.Search.Similarity, "similarity", def.Search.Similarity, "Similarity index ranking merge candidates")
	fs.IntVar(&f.Search.TopK, "top-k", def.Search.TopK, "Draw each merge among this many best candidates")
	fs.IntVar(&f.Search.Iterations, "iterations", def.Search.Iterations, "Merge attempts per restart")
	fs.IntVar(&f.Search.Restarts, "restarts", def.Search.Restarts, "Independent restarts")
	fs.IntVar(&f.Search.Workers, "workers", def.Search.Workers, "Concurrent restarts (0 = one per CPU)")
	fs.Uint64Var(&f.Search.Seed, "seed", def.Search.Seed, "Random seed")
	fs.StringVar(&f.Search.MergePolicy, "merge-policy", def.Search.MergePolicy, "Surviving cluster on merge: size or first")
	fs.StringVar(&f.Search.Init, "init", def.Search.Init, "Membership file to start from")
	fs.BoolVar(&f.Search.RandomInit, "random-init", def.Search.RandomInit, "Start from random cluster assignments")
	fs.StringVar(&f.Search.Seeding, "seeding", def.Search.Seeding, "Starting partition: none, components or label-propagation")
	fs.DurationVar(&f.Search.Timeout, "timeout", def.Search.Timeout, "Time budget for the search (0 = none)")

	fs.StringVar(&f.Output.Base, "out", def.Output.Base, "Report path prefix (writes .memb and .group)")
	fs.BoolVar(&f.Output.Compress, "compress", def.Output.Compress, "Snappy-compress the reports")
	fs.BoolVar(&f.Output.Print, "print", def.Output.Print, "Print memberships and groups to stdout")
	fs.StringVar(&f.Output.Layout, "layout", def.Output.Layout, "Layout written to <out>.layout.json: none, circular, force, hierarchical or mds")
	fs.StringVar(&f.Output.MetricsOut, "metrics-out", def.Output.MetricsOut, "Write Prometheus metrics to this file")

	fs.StringVar(&f.Log.Level, "log-level", def.Log.Level, "Log level: debug, info, warn or error (default $LOG_LEVEL)")
	fs.StringVar(&f.Log.Format, "log-format", def.Log.Format, "Log format: json or text (default $LOG_FORMAT)")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Read(*configPath); err != nil {
			return nil, err
		}
	}

	set := make(map[string]bool)
	fs.Visit(func(fl *flag.Flag) { set[fl.Name] = true })
	if set["graph"] && set["random-nodes"] {
		return nil, fmt.Errorf("-graph and -random-nodes are mutually exclusive")
	}
	for name := range set {
		if apply, ok := overrides[name]; ok {
			apply(cfg, &f)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
