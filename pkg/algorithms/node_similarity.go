package algorithms

import (
	"fmt"
	"math"
	"sort"

	"github.com/dd0wney/cluso-partition/pkg/adjacency"
)

// Tally is the shared neighbour count behind the tally based indices.
type Tally struct {
	Intersection float64 // columns set in both rows
	Union        float64 // columns set in either row
	Deg1         float64 // half the row sum of n1
	Deg2         float64 // half the row sum of n2
}

// Similarities scans the rows of n1 and n2 once. Each degree is taken from
// its own node's row.
func Similarities(a *adjacency.Matrix, n1, n2 int) Tally {
	var t Tally
	for k := 0; k < a.N(); k++ {
		x, y := a.At(n1, k), a.At(n2, k)
		t.Intersection += float64(x & y)
		t.Union += float64(x | y)
		t.Deg1 += float64(x)
		t.Deg2 += float64(y)
	}
	t.Deg1 /= 2
	t.Deg2 /= 2
	return t
}

// ratio returns num/den, or 0 when den is not positive.
func ratio(num, den float64) float64 {
	if den <= 0 {
		return 0
	}
	return num / den
}

// JaccardIndex is |N(n1) ∩ N(n2)| / |N(n1) ∪ N(n2)|. Two nodes without
// neighbours score 0.
func JaccardIndex(a *adjacency.Matrix, n1, n2 int) float64 {
	t := Similarities(a, n1, n2)
	return ratio(t.Intersection, t.Union)
}

// NormalizedJaccardIndex averages the intersection over each node's degree.
func NormalizedJaccardIndex(a *adjacency.Matrix, n1, n2 int) float64 {
	t := Similarities(a, n1, n2)
	return 0.5 * (ratio(t.Intersection, t.Deg1) + ratio(t.Intersection, t.Deg2))
}

// CosineIndex is I/sqrt(U), the 0-1 bag of words cosine.
func CosineIndex(a *adjacency.Matrix, n1, n2 int) float64 {
	t := Similarities(a, n1, n2)
	return ratio(t.Intersection, math.Sqrt(t.Union))
}

// HubPromotedIndex is I/min(k1,k2).
func HubPromotedIndex(a *adjacency.Matrix, n1, n2 int) float64 {
	t := Similarities(a, n1, n2)
	return ratio(t.Intersection, math.Min(t.Deg1, t.Deg2))
}

// HubDepressedIndex is I/max(k1,k2).
func HubDepressedIndex(a *adjacency.Matrix, n1, n2 int) float64 {
	t := Similarities(a, n1, n2)
	return ratio(t.Intersection, math.Max(t.Deg1, t.Deg2))
}

// SorensenIndex is 2I/(k1+k2).
func SorensenIndex(a *adjacency.Matrix, n1, n2 int) float64 {
	t := Similarities(a, n1, n2)
	return ratio(2*t.Intersection, t.Deg1+t.Deg2)
}

// SaltonIndex is I/sqrt(k1·k2).
func SaltonIndex(a *adjacency.Matrix, n1, n2 int) float64 {
	t := Similarities(a, n1, n2)
	return ratio(t.Intersection, math.Sqrt(t.Deg1*t.Deg2))
}

// LeichtHolmeNewmanIndex is I/(k1·k2).
func LeichtHolmeNewmanIndex(a *adjacency.Matrix, n1, n2 int) float64 {
	t := Similarities(a, n1, n2)
	return ratio(t.Intersection, t.Deg1*t.Deg2)
}

// PreferentialAttachmentIndex is k1·k2.
func PreferentialAttachmentIndex(a *adjacency.Matrix, n1, n2 int) float64 {
	t := Similarities(a, n1, n2)
	return t.Deg1 * t.Deg2
}

// CommonNeighbors is I.
func CommonNeighbors(a *adjacency.Matrix, n1, n2 int) float64 {
	return Similarities(a, n1, n2).Intersection
}

// AverageDegreeIndex is k1+k2.
func AverageDegreeIndex(a *adjacency.Matrix, n1, n2 int) float64 {
	t := Similarities(a, n1, n2)
	return t.Deg1 + t.Deg2
}

// SimilarityMetric selects which similarity formula to use.
type SimilarityMetric int

const (
	SimilarityJaccard SimilarityMetric = iota
	SimilarityNormalizedJaccard
	SimilarityCosine
	SimilarityHubPromoted
	SimilarityHubDepressed
	SimilaritySorensen
	SimilaritySalton
	SimilarityLeichtHolmeNewman
	SimilarityPreferentialAttachment
	SimilarityCommonNeighbors
	SimilarityAverageDegree
	SimilarityResourceAllocation
	SimilarityAdamicAdar
)

type metricInfo struct {
	name string
	fn   func(*adjacency.Matrix, int, int) float64
}

var similarityMetrics = [...]metricInfo{
	SimilarityJaccard:                {"jaccard", JaccardIndex},
	SimilarityNormalizedJaccard:      {"normalized-jaccard", NormalizedJaccardIndex},
	SimilarityCosine:                 {"cosine", CosineIndex},
	SimilarityHubPromoted:            {"hub-promoted", HubPromotedIndex},
	SimilarityHubDepressed:           {"hub-depressed", HubDepressedIndex},
	SimilaritySorensen:               {"sorensen", SorensenIndex},
	SimilaritySalton:                 {"salton", SaltonIndex},
	SimilarityLeichtHolmeNewman:      {"lhn", LeichtHolmeNewmanIndex},
	SimilarityPreferentialAttachment: {"preferential-attachment", PreferentialAttachmentIndex},
	SimilarityCommonNeighbors:        {"common-neighbors", CommonNeighbors},
	SimilarityAverageDegree:          {"average-degree", AverageDegreeIndex},
	SimilarityResourceAllocation:     {"resource-allocation", ResourceAllocationIndex},
	SimilarityAdamicAdar:             {"adamic-adar", AdamicAdarIndex},
}

// SimilarityMetrics lists every metric in declaration order.
func SimilarityMetrics() []SimilarityMetric {
	out := make([]SimilarityMetric, len(similarityMetrics))
	for i := range similarityMetrics {
		out[i] = SimilarityMetric(i)
	}
	return out
}

func (m SimilarityMetric) valid() bool {
	return m >= 0 && int(m) < len(similarityMetrics)
}

// String returns the configuration name of the metric.
func (m SimilarityMetric) String() string {
	if !m.valid() {
		return fmt.Sprintf("SimilarityMetric(%d)", int(m))
	}
	return similarityMetrics[m].name
}

// ParseSimilarityMetric converts a configuration name to a metric.
func ParseSimilarityMetric(s string) (SimilarityMetric, error) {
	for i, info := range similarityMetrics {
		if info.name == s {
			return SimilarityMetric(i), nil
		}
	}
	return 0, fmt.Errorf("unknown similarity metric %q", s)
}

// Ascending reports whether smaller scores mean more related nodes. Only the
// resource allocation index, which is returned negated, ranks that way.
func (m SimilarityMetric) Ascending() bool {
	return m == SimilarityResourceAllocation
}

// Similarity computes the selected index for n1 and n2. Unknown metrics
// score 0.
func Similarity(a *adjacency.Matrix, n1, n2 int, m SimilarityMetric) float64 {
	if !m.valid() {
		return 0
	}
	return similarityMetrics[m].fn(a, n1, n2)
}

// NodeSimilarityOptions configures MostSimilar.
type NodeSimilarityOptions struct {
	Metric SimilarityMetric
	TopK   int // max results (0 = all)

	// NeighborsOnly restricts candidates to nodes adjacent to the source.
	NeighborsOnly bool

	// Exclude drops candidates for which it returns true.
	Exclude func(node int) bool
}

// NodeSimilarityScore holds a similarity score between two nodes.
type NodeSimilarityScore struct {
	NodeA int
	NodeB int
	Score float64
}

// NodeSimilarityResult holds similarity results for a single source node.
type NodeSimilarityResult struct {
	SourceNode int
	Similar    []NodeSimilarityScore // best first, zeros excluded
}

// DefaultNodeSimilarityOptions returns sensible defaults.
func DefaultNodeSimilarityOptions() NodeSimilarityOptions {
	return NodeSimilarityOptions{
		Metric: SimilarityJaccard,
		TopK:   10,
	}
}

// MostSimilar ranks every other node against source. Results are ordered
// best first (descending, or ascending for Ascending metrics) with ties
// broken by node id; zero-score pairs are excluded.
func MostSimilar(a *adjacency.Matrix, source int, opts NodeSimilarityOptions) *NodeSimilarityResult {
	var candidates []int
	if opts.NeighborsOnly {
		candidates = a.Neighbors(source)
	} else {
		candidates = make([]int, 0, a.N())
		for node := 0; node < a.N(); node++ {
			candidates = append(candidates, node)
		}
	}

	var scores []NodeSimilarityScore
	for _, other := range candidates {
		if other == source {
			continue
		}
		if opts.Exclude != nil && opts.Exclude(other) {
			continue
		}
		score := Similarity(a, source, other, opts.Metric)
		if score != 0 {
			scores = append(scores, NodeSimilarityScore{
				NodeA: source,
				NodeB: other,
				Score: score,
			})
		}
	}

	ascending := opts.Metric.Ascending()
	sort.Slice(scores, func(i, j int) bool {
		if scores[i].Score != scores[j].Score {
			if ascending {
				return scores[i].Score < scores[j].Score
			}
			return scores[i].Score > scores[j].Score
		}
		return scores[i].NodeB < scores[j].NodeB
	})
	if opts.TopK > 0 && len(scores) > opts.TopK {
		scores = scores[:opts.TopK]
	}

	return &NodeSimilarityResult{
		SourceNode: source,
		Similar:    scores,
	}
}
