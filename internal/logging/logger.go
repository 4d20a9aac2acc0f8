// Package logging provides config-driven categorized logging for
// blocksplanner. Where codenerd's logging package wrote one file per
// category by hand, this one keeps the Category taxonomy but backs it with
// zap: categories become a structured field on a single zap.Logger rather
// than separate log files. Init filters by level only; Enabled reports
// whether config lists a category, and Init applies no per-category gate.
package logging

import (
	"blocksplanner/internal/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Category names one of the blocksworld pipeline's logging sources.
type Category string

const (
	CategoryResolver     Category = "resolver"
	CategoryGoalCompiler Category = "goalcompiler"
	CategoryAmbiguity    Category = "ambiguity"
	CategorySearch       Category = "search"
	CategoryHeuristic    Category = "heuristic"
	CategoryNarrator     Category = "narrator"
	CategorySession      Category = "session"
	CategoryCLI          Category = "cli"
)

// allCategories is the fixed set of categories, all of which Enabled
// accepts in debug mode when the config's Categories list is empty.
var allCategories = []Category{
	CategoryResolver, CategoryGoalCompiler, CategoryAmbiguity,
	CategorySearch, CategoryHeuristic, CategoryNarrator,
	CategorySession, CategoryCLI,
}

// Init builds the root zap.Logger for the process, honoring the logging
// section of config.Config. Debug mode switches to a development encoder
// (human-readable, debug level); otherwise a production JSON encoder at the
// configured level is used.
func Init(cfg config.LoggingConfig) (*zap.Logger, error) {
	if cfg.DebugMode {
		zcfg := zap.NewDevelopmentConfig()
		zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		return zcfg.Build()
	}

	zcfg := zap.NewProductionConfig()
	level, err := zapcore.ParseLevel(levelOrDefault(cfg.Level))
	if err != nil {
		level = zapcore.InfoLevel
	}
	zcfg.Level = zap.NewAtomicLevelAt(level)
	return zcfg.Build()
}

func levelOrDefault(level string) string {
	if level == "" {
		return "info"
	}
	return level
}

// For scopes a logger to a category, attaching it as a structured field.
// cmd/nerdblocks calls this when it builds a component's logger; the
// blocksworld package itself receives an already-scoped *zap.Logger.
func For(log *zap.Logger, category Category) *zap.Logger {
	return log.With(zap.String("category", string(category)))
}

// Enabled reports whether category should log, per cfg.Categories — an
// empty list means every category in allCategories is enabled.
func Enabled(cfg config.LoggingConfig, category Category) bool {
	if !cfg.DebugMode {
		return true // non-debug levels are still gated by zap's level, not here
	}
	if len(cfg.Categories) == 0 {
		return true
	}
	for _, c := range cfg.Categories {
		if Category(c) == category {
			return true
		}
	}
	return false
}
