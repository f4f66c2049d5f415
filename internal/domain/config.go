package domain

import (
	"fmt"
	"strings"
)

// DefaultMaxDepth bounds directory recursion during scans.
const DefaultMaxDepth = 64

// DefaultSkipDirs are directory basenames never descended into.
var DefaultSkipDirs = []string{"target", "node_modules", ".git"}

// ProjectConfig holds project-level configuration loaded from .soon-migrate.yaml.
type ProjectConfig struct {
	ExcludePaths  []string `yaml:"exclude_paths"  json:"exclude_paths,omitempty"`
	IgnoreOracles []string `yaml:"ignore_oracles" json:"ignore_oracles,omitempty"`
	MaxDepth      int      `yaml:"max_depth"      json:"max_depth,omitempty"`
	RecordHistory bool     `yaml:"record_history" json:"record_history,omitempty"`
}

// DefaultConfig returns a zero-value config that changes nothing.
func DefaultConfig() ProjectConfig {
	return ProjectConfig{}
}

// EffectiveMaxDepth returns MaxDepth, or DefaultMaxDepth when unset.
func (c ProjectConfig) EffectiveMaxDepth() int {
	if c.MaxDepth > 0 {
		return c.MaxDepth
	}
	return DefaultMaxDepth
}

// IsIgnoredOracle reports whether detections for t should be dropped.
func (c ProjectConfig) IsIgnoredOracle(t OracleType) bool {
	for _, name := range c.IgnoreOracles {
		if ParseOracleType(name) == t {
			return true
		}
	}
	return false
}

// Validate checks the config for invalid values and returns a descriptive error.
func (c ProjectConfig) Validate() error {
	if c.MaxDepth < 0 {
		return fmt.Errorf("max_depth must not be negative (got %d)", c.MaxDepth)
	}

	for _, name := range c.IgnoreOracles {
		if ParseOracleType(name) == OracleUnknown && !strings.EqualFold(name, string(OracleUnknown)) {
			return fmt.Errorf("unknown oracle %q in ignore_oracles", name)
		}
	}

	for i, p := range c.ExcludePaths {
		if strings.TrimSpace(strings.TrimSuffix(p, "/")) == "" {
			return fmt.Errorf("exclude_paths[%d] must not be empty", i)
		}
	}

	return nil
}
