// Package config loads and validates run configuration from YAML files.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dd0wney/cluso-partition/pkg/algorithms"
	"github.com/dd0wney/cluso-partition/pkg/partition"
	"github.com/dd0wney/cluso-partition/pkg/search"
	"github.com/dd0wney/cluso-partition/pkg/validation"
)

// ErrConflictingInit is returned when more than one starting partition is
// requested.
var ErrConflictingInit = errors.New("init, random_init and seeding are mutually exclusive")

func init() {
	objectives := []string{
		algorithms.ObjectiveJaccardEntropy.String(),
		algorithms.ObjectiveSizeEntropy.String(),
		algorithms.ObjectiveModularity.String(),
	}
	var metrics []string
	for _, m := range algorithms.SimilarityMetrics() {
		metrics = append(metrics, m.String())
	}

	enums := []struct {
		tag   string
		hint  []string
		parse func(string) error
	}{
		{"objective", objectives, func(s string) error {
			_, err := algorithms.ParseObjective(s)
			return err
		}},
		{"similarity", metrics, func(s string) error {
			_, err := algorithms.ParseSimilarityMetric(s)
			return err
		}},
		{"merge_policy", []string{"size", "first"}, func(s string) error {
			_, err := partition.ParseMergePolicy(s)
			return err
		}},
	}
	for _, e := range enums {
		if err := validation.RegisterEnum(e.tag, strings.Join(e.hint, "|"), e.parse); err != nil {
			panic(err)
		}
	}
}

// Load reads a YAML file over Default and validates the result.
func Load(path string) (*Config, error) {
	cfg, err := Read(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Read decodes a YAML file over Default without validating it, so callers
// can apply overrides first.
func Read(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg, err := Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML over Default and validates the result.
func Parse(r io.Reader) (*Config, error) {
	cfg, err := Decode(r)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Decode reads YAML over Default. Unknown keys are rejected and an empty
// document yields Default.
func Decode(r io.Reader) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return cfg, nil
}

// Validate checks field constraints first, then the rules that span fields.
func (c *Config) Validate() error {
	if err := validation.Struct(c); err != nil {
		return err
	}

	g := validation.NewConfigValidator("graph")
	g.ExactlyOne([]string{"path", "random_nodes"}, c.Graph.Path != "", c.Graph.RandomNodes > 0)
	g.When(c.Graph.RandomNodes > 0, func(v *validation.ConfigValidator) {
		n := c.Graph.RandomNodes
		v.MaxInt("random_edges", c.Graph.RandomEdges, n*(n-1)/2)
	})

	s := validation.NewConfigValidator("search")
	s.AtMostOne("init", ErrConflictingInit, c.Search.Init != "", c.Search.RandomInit, c.Search.Seeding != SeedingNone)

	return errors.Join(g.Validate(), s.Validate())
}

// SearchOptions converts the search section into typed options. The config
// must have passed Validate.
func (c *Config) SearchOptions() (search.Options, error) {
	objective, err := algorithms.ParseObjective(c.Search.Objective)
	if err != nil {
		return search.Options{}, err
	}
	metric, err := algorithms.ParseSimilarityMetric(c.Search.Similarity)
	if err != nil {
		return search.Options{}, err
	}
	return search.Options{
		Objective:  objective,
		Metric:     metric,
		TopK:       c.Search.TopK,
		Iterations: c.Search.Iterations,
		Restarts:   c.Search.Restarts,
		Workers:    c.Search.Workers,
		Seed:       c.Search.Seed,
		Timeout:    c.Search.Timeout,
	}, nil
}

// MergePolicy returns the parsed merge policy.
func (c *Config) MergePolicy() (partition.MergePolicy, error) {
	return partition.ParseMergePolicy(c.Search.MergePolicy)
}
