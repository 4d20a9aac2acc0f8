package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 3, cfg.World.Columns)
	assert.Equal(t, "5s", cfg.Search.TimeBudget)
	assert.Equal(t, 2, cfg.Ambiguity.MaxGroupedCandidates)
}

func TestEnvOverrides(t *testing.T) {
	t.Run("search time budget", func(t *testing.T) {
		t.Setenv("BLOCKSPLANNER_SEARCH_TIME_BUDGET", "30s")
		cfg := DefaultConfig()
		cfg.applyEnvOverrides()
		assert.Equal(t, "30s", cfg.Search.TimeBudget)
	})

	t.Run("max nodes ignores malformed value", func(t *testing.T) {
		t.Setenv("BLOCKSPLANNER_SEARCH_MAX_NODES", "not-a-number")
		cfg := DefaultConfig()
		want := cfg.Search.MaxNodes
		cfg.applyEnvOverrides()
		assert.Equal(t, want, cfg.Search.MaxNodes)
	})

	t.Run("debug flag", func(t *testing.T) {
		t.Setenv("BLOCKSPLANNER_DEBUG", "true")
		cfg := DefaultConfig()
		cfg.applyEnvOverrides()
		assert.True(t, cfg.Logging.DebugMode)
	})
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load("/nonexistent/blocksplanner.yaml")
	assert.NoError(t, err)
	assert.Equal(t, DefaultConfig().World.Columns, cfg.World.Columns)
}

func TestSearchConfigDuration(t *testing.T) {
	cfg := SearchConfig{TimeBudget: "2s"}
	assert.Equal(t, int64(2e9), cfg.Duration().Nanoseconds())

	malformed := SearchConfig{TimeBudget: "not-a-duration"}
	assert.Equal(t, int64(5e9), malformed.Duration().Nanoseconds())
}
