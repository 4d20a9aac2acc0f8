// Package config loads blocksplanner's configuration: the A* search budget,
// the world fixture to start from, logging verbosity, and an Ambiguity
// grouping threshold (carried in the config only; the Ambiguity Manager does
// not read it).
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all blocksplanner configuration.
type Config struct {
	Search    SearchConfig    `yaml:"search"`
	World     WorldConfig     `yaml:"world"`
	Logging   LoggingConfig   `yaml:"logging"`
	Ambiguity AmbiguityConfig `yaml:"ambiguity"`
}

// SearchConfig bounds the A* search of §4.7.
type SearchConfig struct {
	TimeBudget string `yaml:"time_budget"` // parsed with time.ParseDuration
	MaxNodes   int    `yaml:"max_nodes"`
}

// WorldConfig names the starting world fixture.
type WorldConfig struct {
	FixturePath string `yaml:"fixture_path"`
	Columns     int    `yaml:"columns"`
}

// LoggingConfig configures the zap logger cmd/nerdblocks builds.
type LoggingConfig struct {
	DebugMode  bool     `yaml:"debug_mode"`
	Level      string   `yaml:"level"` // debug, info, warn, error
	Categories []string `yaml:"categories"`
}

// AmbiguityConfig holds the max_grouped_candidates setting. Nothing reads it:
// the Ambiguity Manager's referent prompt uses its own fixed threshold.
type AmbiguityConfig struct {
	MaxGroupedCandidates int `yaml:"max_grouped_candidates"`
}

// DefaultConfig returns blocksplanner's defaults.
func DefaultConfig() *Config {
	return &Config{
		Search: SearchConfig{
			TimeBudget: "5s",
			MaxNodes:   200000,
		},
		World: WorldConfig{
			FixturePath: "internal/fixture/testdata/three_column.yaml",
			Columns:     3,
		},
		Logging: LoggingConfig{
			DebugMode:  false,
			Level:      "info",
			Categories: []string{"resolver", "goalcompiler", "ambiguity", "search", "heuristic", "narrator", "session", "cli"},
		},
		Ambiguity: AmbiguityConfig{
			MaxGroupedCandidates: 2,
		},
	}
}

// Load reads configuration from a YAML file, falling back to defaults if the
// file does not exist, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// applyEnvOverrides lets the CLI's environment win over file and defaults,
// giving the precedence order env > file > default.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("BLOCKSPLANNER_SEARCH_TIME_BUDGET"); v != "" {
		c.Search.TimeBudget = v
	}
	if v := os.Getenv("BLOCKSPLANNER_SEARCH_MAX_NODES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Search.MaxNodes = n
		}
	}
	if v := os.Getenv("BLOCKSPLANNER_WORLD_FIXTURE"); v != "" {
		c.World.FixturePath = v
	}
	if v := os.Getenv("BLOCKSPLANNER_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("BLOCKSPLANNER_DEBUG"); v != "" {
		c.Logging.DebugMode = v == "1" || v == "true"
	}
}

// Duration parses TimeBudget, falling back to 5s on a malformed value rather
// than failing the whole config load over one bad duration string.
func (s SearchConfig) Duration() time.Duration {
	d, err := time.ParseDuration(s.TimeBudget)
	if err != nil {
		return 5 * time.Second
	}
	return d
}

// Save writes the configuration back out as YAML, mirroring Load's format.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("config: marshaling: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("config: writing %s: %w", path, err)
	}
	return nil
}
