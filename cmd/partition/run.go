package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"os"

	"github.com/dd0wney/cluso-partition/pkg/adjacency"
	"github.com/dd0wney/cluso-partition/pkg/algorithms"
	"github.com/dd0wney/cluso-partition/pkg/config"
	"github.com/dd0wney/cluso-partition/pkg/logging"
	"github.com/dd0wney/cluso-partition/pkg/metrics"
	"github.com/dd0wney/cluso-partition/pkg/partition"
	"github.com/dd0wney/cluso-partition/pkg/search"
	"github.com/dd0wney/cluso-partition/pkg/visualization"
)

// LayoutSuffix is appended to the report base for the layout export.
const LayoutSuffix = ".layout.json"

// ErrMembershipRange is returned when an -init file names nodes the graph
// does not have.
var ErrMembershipRange = errors.New("membership node out of range")

// graphInput is a loaded graph plus any coordinates its file declared.
type graphInput struct {
	matrix *adjacency.Matrix
	coords [][]float64
	source string
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cfg, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	logger, err := newLogger(stderr, cfg.Log)
	if err != nil {
		return err
	}
	logging.SetDefaultLogger(logger)
	reg := metrics.NewRegistry()

	g, err := loadGraph(cfg, reg, logger)
	if err != nil {
		return err
	}
	a := g.matrix

	ds, err := initialPartition(cfg, a)
	if err != nil {
		return err
	}

	opts, err := cfg.SearchOptions()
	if err != nil {
		return err
	}
	searcher := &search.Searcher{
		Matrix:  a,
		Options: opts,
		Logger:  logger,
		Metrics: reg,
	}
	best, err := searcher.RunRestarts(ctx, ds)
	if err != nil && best == nil {
		return fmt.Errorf("search failed: %w", err)
	}
	if err != nil {
		logger.Warn("search interrupted, reporting best partition so far", logging.Error(err))
	}

	result := best.Partition
	result.SortBySize()

	var written []string
	if base := cfg.Output.Base; base != "" {
		saveOpts := partition.SaveOptions{Compress: cfg.Output.Compress}
		saveErr := result.Save(base, saveOpts)
		reg.RecordReport(saveErr)
		if saveErr != nil {
			return saveErr
		}
		memb, groups := partition.ReportPaths(base, saveOpts)
		written = append(written, memb, groups)
		logger.Info("reports written", logging.Path(base))
	}

	if cfg.Output.Print {
		if err := result.Print(stdout); err != nil {
			return err
		}
	}

	layoutPath, err := writeLayout(cfg, g, result, logger)
	if err != nil {
		return err
	}
	if layoutPath != "" {
		written = append(written, layoutPath)
	}

	if path := cfg.Output.MetricsOut; path != "" {
		if err := reg.WriteToTextfile(path); err != nil {
			return fmt.Errorf("write metrics: %w", err)
		}
		written = append(written, path)
	}

	fmt.Fprintln(stdout, renderSummary(newSummary(a, best, opts, written)))
	return nil
}

// newLogger logs to w. Settings left empty fall back to LOG_LEVEL and
// LOG_FORMAT.
func newLogger(w io.Writer, lc config.LogConfig) (logging.Logger, error) {
	level, format := lc.Level, lc.Format
	if level == "" {
		level = os.Getenv("LOG_LEVEL")
	}
	if format == "" {
		format = os.Getenv("LOG_FORMAT")
	}
	f, err := logging.ParseFormat(format)
	if err != nil {
		return nil, fmt.Errorf("LOG_FORMAT: %w", err)
	}
	return logging.NewLogger(w, logging.ParseLevel(level), f), nil
}

func loadGraph(cfg *config.Config, reg *metrics.Registry, logger logging.Logger) (*graphInput, error) {
	gc := cfg.Graph
	g := &graphInput{source: gc.Format}
	timer := logging.StartTimer(logger, "graph loaded", logging.Path(gc.Path))

	var err error
	switch {
	case gc.RandomNodes > 0:
		g.source = "random"
		rng := rand.New(rand.NewPCG(cfg.Search.Seed, 0))
		g.matrix, err = adjacency.ErdosRenyi(gc.RandomNodes, gc.RandomEdges, rng)
	case gc.Format == config.FormatDimacs:
		var d *adjacency.Dimacs
		if d, err = adjacency.ReadDimacs(gc.Path); err == nil {
			g.matrix, g.coords = d.Matrix, d.Coords
		}
	default:
		if g.matrix, err = adjacency.ReadMatrix(gc.Path); err == nil {
			err = g.matrix.Validate()
		}
	}
	if err != nil {
		timer.EndError(err)
		return nil, fmt.Errorf("load graph: %w", err)
	}

	elapsed := timer.End(
		logging.String("source", g.source),
		logging.Int("nodes", g.matrix.N()),
		logging.Int("edges", g.matrix.EdgeCount()),
	)
	reg.RecordGraphLoad(g.source, g.matrix.N(), g.matrix.EdgeCount(), elapsed)
	return g, nil
}

func initialPartition(cfg *config.Config, a *adjacency.Matrix) (*partition.DisjointSet, error) {
	policy, err := cfg.MergePolicy()
	if err != nil {
		return nil, err
	}
	opts := []partition.Option{partition.WithMergePolicy(policy)}
	sc := cfg.Search

	switch {
	case sc.Init != "":
		m, err := partition.LoadMembership(sc.Init)
		if err != nil {
			return nil, err
		}
		for node := range m {
			if node < 0 || node >= a.N() {
				return nil, fmt.Errorf("%s: %w: node %d, graph has %d", sc.Init, ErrMembershipRange, node, a.N())
			}
		}
		return partition.NewFromMembership(m, opts...), nil
	case sc.RandomInit:
		// Stream 1 keeps the assignment independent of graph generation.
		rng := rand.New(rand.NewPCG(sc.Seed, 1))
		return partition.New(a.N(), append(opts, partition.WithRandomAssignment(rng))...), nil
	case sc.Seeding == config.SeedingComponents:
		return partition.NewFromMembership(algorithms.ConnectedComponents(a).Membership(), opts...), nil
	case sc.Seeding == config.SeedingLabelPropagation:
		return partition.NewFromMembership(algorithms.LabelPropagation(a, sc.PropagationIterations), opts...), nil
	default:
		return partition.New(a.N(), opts...), nil
	}
}

// writeLayout exports node positions coloured by ds next to the reports.
// Positions come from the -coords file, then from coordinates declared in a
// DIMACS graph, then from the configured layout. It returns the written
// path, or "" when no layout was requested.
func writeLayout(cfg *config.Config, g *graphInput, ds *partition.DisjointSet, logger logging.Logger) (string, error) {
	if cfg.Graph.Coords == "" && cfg.Output.Layout == config.LayoutNone {
		return "", nil
	}
	if cfg.Output.Base == "" {
		logger.Warn("layout requested without -out, skipping export")
		return "", nil
	}

	lc := visualization.DefaultLayoutConfig()
	lc.Seed = cfg.Search.Seed

	var positions []visualization.Position
	switch {
	case cfg.Graph.Coords != "":
		raw, err := visualization.LoadCoordinates(cfg.Graph.Coords, g.matrix.N())
		if err != nil {
			return "", err
		}
		positions = visualization.Fit(raw, lc)
	case g.coords != nil:
		if raw, err := visualization.FromCoords(g.coords); err == nil {
			positions = visualization.Fit(raw, lc)
			break
		}
		fallthrough
	default:
		layout, err := visualization.NewLayout(cfg.Output.Layout, lc)
		if err != nil {
			return "", err
		}
		if positions, err = layout.ComputeLayout(g.matrix); err != nil {
			return "", fmt.Errorf("%s layout: %w", cfg.Output.Layout, err)
		}
	}

	path := cfg.Output.Base + LayoutSuffix
	viz := &visualization.Visualization{
		Matrix:     g.matrix,
		Positions:  positions,
		Membership: ds.Membership(),
	}
	if err := viz.Save(path); err != nil {
		return "", err
	}
	logger.Info("layout written", logging.Path(path), logging.String("layout", cfg.Output.Layout))
	return path, nil
}
