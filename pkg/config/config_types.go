package config

import "time"

// Graph sources and formats.
const (
	FormatMatrix = "matrix"
	FormatDimacs = "dimacs"
)

// Seeding strategies for the starting partition.
const (
	SeedingNone             = "none"
	SeedingComponents       = "components"
	SeedingLabelPropagation = "label-propagation"
)

// Layouts written next to the reports.
const (
	LayoutNone         = "none"
	LayoutCircular     = "circular"
	LayoutForce        = "force"
	LayoutHierarchical = "hierarchical"
	LayoutMDS          = "mds"
)

// Config is the complete run configuration, usually decoded from YAML.
type Config struct {
	Graph  GraphConfig  `yaml:"graph"`
	Search SearchConfig `yaml:"search"`
	Output OutputConfig `yaml:"output"`
	Log    LogConfig    `yaml:"log"`
}

// GraphConfig selects the input graph. Exactly one of Path or RandomNodes
// must be set.
type GraphConfig struct {
	Path        string `yaml:"path"`
	Format      string `yaml:"format" validate:"oneof=matrix dimacs"`
	RandomNodes int    `yaml:"random_nodes" validate:"gte=0"`
	RandomEdges int    `yaml:"random_edges" validate:"gte=0"`
	Coords      string `yaml:"coords"` // optional coordinate file for layouts
}

// SearchConfig tunes the accept-if-better search.
type SearchConfig struct {
	Objective   string `yaml:"objective" validate:"objective"`
	Similarity  string `yaml:"similarity" validate:"similarity"`
	TopK        int    `yaml:"top_k" validate:"gte=1"`
	Iterations  int    `yaml:"iterations" validate:"gte=1"`
	Restarts    int    `yaml:"restarts" validate:"gte=1,lte=1024"`
	Workers     int    `yaml:"workers" validate:"gte=0,lte=1024"` // 0 means one per CPU
	Seed        uint64 `yaml:"seed"`
	MergePolicy string `yaml:"merge_policy" validate:"merge_policy"`

	// Starting partition
	Init                  string `yaml:"init"` // membership file to resume from
	RandomInit            bool   `yaml:"random_init"`
	Seeding               string `yaml:"seeding" validate:"oneof=none components label-propagation"`
	PropagationIterations int    `yaml:"propagation_iterations" validate:"gte=1"`

	Timeout time.Duration `yaml:"timeout" validate:"gte=0"` // 0 disables
}

// OutputConfig controls the reports written after the search.
type OutputConfig struct {
	Base       string `yaml:"base"` // report path prefix; empty skips Save
	Compress   bool   `yaml:"compress"`
	Print      bool   `yaml:"print"`
	Layout     string `yaml:"layout" validate:"oneof=none circular force hierarchical mds"`
	MetricsOut string `yaml:"metrics_out"`
}

// LogConfig holds logging options.
type LogConfig struct {
	// Level overrides LOG_LEVEL when set.
	Level  string `yaml:"level" validate:"omitempty,oneof=debug info warn error"`
	// Format is json or text and overrides LOG_FORMAT when set.
	Format string `yaml:"format" validate:"omitempty,oneof=json text"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Graph: GraphConfig{
			Format: FormatMatrix,
		},
		Search: SearchConfig{
			Objective:             "jaccard-entropy",
			Similarity:            "jaccard",
			TopK:                  3,
			Iterations:            10000,
			Restarts:              1,
			Seed:                  1,
			MergePolicy:           "size",
			Seeding:               SeedingNone,
			PropagationIterations: 100,
		},
		Output: OutputConfig{
			Layout: LayoutNone,
		},
	}
}
