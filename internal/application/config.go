// Package application orchestrates split-chunks optimization passes over a
// caller-supplied module graph, using the candidate core in internal/domain.
package application

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// SplitChunksConfig is the top-level configuration for an optimization
// pass: the ordered list of cache group rules that produce candidate
// module groups.
type SplitChunksConfig struct {
	// CacheGroups lists the rules in declared order. Order is meaningful:
	// a rule's position feeds the comparator's declaration-order tie-break.
	CacheGroups []CacheGroupConfig `yaml:"cache_groups" validate:"required,min=1,unique=Name,dive"`
}

// CacheGroupConfig defines one cache group rule: which modules it wants to
// pull into a shared chunk and how its candidates rank against other rules'.
type CacheGroupConfig struct {
	// Name labels candidates produced by this rule and must be unique
	// within the configuration.
	Name string `yaml:"name" validate:"required,min=1,max=255"`

	// Priority ranks this rule's candidates against other rules'; higher
	// wins. The value is compared exactly, without epsilon tolerance.
	Priority float64 `yaml:"priority"`

	// Test is an optional Go regular expression over module identifiers.
	// An empty test matches every module.
	Test string `yaml:"test" validate:"omitempty,regexppattern"`

	// MinChunks is the minimum number of chunks that must contain a module
	// before this rule will pull it into a candidate. Zero defaults to one.
	MinChunks int `yaml:"min_chunks" validate:"omitempty,min=1"`
}

// ParseSplitChunksConfig decodes a YAML document into a SplitChunksConfig
// and validates it. The returned config is ready to hand to NewOptimizer.
func ParseSplitChunksConfig(data []byte) (*SplitChunksConfig, error) {
	var cfg SplitChunksConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to decode split chunks config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the configuration against its struct constraints,
// including the custom regexp-pattern rule for cache group tests.
func (c *SplitChunksConfig) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("split chunks config validation failed: %w", err)
	}
	return nil
}
