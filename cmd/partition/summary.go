package main

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/dd0wney/cluso-partition/pkg/adjacency"
	"github.com/dd0wney/cluso-partition/pkg/algorithms"
	"github.com/dd0wney/cluso-partition/pkg/search"
)

// topCommunities is how many of the largest clusters the summary lists.
const topCommunities = 5

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF00FF"))

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00FFFF"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Width(18)

	statsBoxStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#00FF00")).
			Padding(0, 1).
			MarginRight(1)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF0000")).
			Bold(true)
)

// summary is everything the final report shows.
type summary struct {
	Nodes, Edges int
	Clustering   float64 // average local clustering coefficient

	Objective      string
	Similarity     string
	Initial, Score float64
	RunID          string
	Restart        int
	Accepted       int
	Iterations     int
	Duration       time.Duration

	Clusters       int
	SizeEntropy    float64
	JaccardEntropy float64
	Modularity     float64
	Largest        []algorithms.Community

	Files []string
}

func newSummary(a *adjacency.Matrix, best *search.Result, opts search.Options, files []string) summary {
	ds := best.Partition
	communities := algorithms.Summarize(a, ds)
	sort.SliceStable(communities, func(i, j int) bool {
		return communities[i].Size > communities[j].Size
	})
	if len(communities) > topCommunities {
		communities = communities[:topCommunities]
	}

	return summary{
		Nodes:          a.N(),
		Edges:          a.EdgeCount(),
		Clustering:     algorithms.AverageClusteringCoefficient(a),
		Objective:      opts.Objective.String(),
		Similarity:     opts.Metric.String(),
		Initial:        best.Initial,
		Score:          best.Score,
		RunID:          best.RunID,
		Restart:        best.Restart,
		Accepted:       best.Accepted,
		Iterations:     best.Iterations,
		Duration:       best.Duration,
		Clusters:       ds.NumClusters(),
		SizeEntropy:    algorithms.SizeEntropy(a, ds),
		JaccardEntropy: algorithms.JaccardEntropy(a, ds),
		Modularity:     algorithms.Modularity(a, ds),
		Largest:        communities,
		Files:          files,
	}
}

func row(label string, value any) string {
	return labelStyle.Render(label) + fmt.Sprint(value)
}

func renderSummary(s summary) string {
	graphBox := statsBoxStyle.Render(strings.Join([]string{
		headerStyle.Render("Graph"),
		row("Nodes", s.Nodes),
		row("Edges", s.Edges),
		row("Clustering coeff", fmt.Sprintf("%.4f", s.Clustering)),
	}, "\n"))

	searchBox := statsBoxStyle.Render(strings.Join([]string{
		headerStyle.Render("Search"),
		row("Objective", s.Objective),
		row("Similarity", s.Similarity),
		row("Score", fmt.Sprintf("%.6g → %.6g", s.Initial, s.Score)),
		row("Accepted merges", fmt.Sprintf("%d / %d", s.Accepted, s.Iterations)),
		row("Best restart", fmt.Sprintf("#%d %s", s.Restart, s.RunID)),
		row("Duration", s.Duration.Round(time.Millisecond)),
	}, "\n"))

	partLines := []string{
		headerStyle.Render("Partition"),
		row("Clusters", s.Clusters),
		row("Size entropy", fmt.Sprintf("%.6g", s.SizeEntropy)),
		row("Jaccard entropy", fmt.Sprintf("%.6g", s.JaccardEntropy)),
		row("Modularity", fmt.Sprintf("%.6g", s.Modularity)),
	}
	for _, c := range s.Largest {
		partLines = append(partLines, row(fmt.Sprintf("  cluster %d", c.ID), fmt.Sprintf("%d nodes, density %.2f", c.Size, c.Density)))
	}
	partitionBox := statsBoxStyle.Render(strings.Join(partLines, "\n"))

	out := []string{
		titleStyle.Render("Partition search complete"),
		lipgloss.JoinHorizontal(lipgloss.Top, graphBox, searchBox, partitionBox),
	}
	if len(s.Files) > 0 {
		out = append(out, headerStyle.Render("Files"))
		for _, f := range s.Files {
			out = append(out, "  "+f)
		}
	}
	return strings.Join(out, "\n")
}
