// Package main provides the nerdblocks CLI entry point.
package main

import (
	"fmt"
	"os"
	"time"

	"blocksplanner/internal/config"
	"blocksplanner/internal/logging"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	verbose    bool
	configPath string
	cfg        *config.Config
	logger     *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "nerdblocks",
	Short: "A natural-language blocks-world planner",
	Long: `nerdblocks turns an English instruction about a tabletop of blocks into
a sequence of robot-arm actions.

It resolves noun phrases against the current world, compiles a goal from the
resolved referents, searches for a shortest plan with A*, and narrates the
result — pausing to ask a clarifying question whenever the instruction is
genuinely ambiguous.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if verbose {
			loaded.Logging.DebugMode = true
		}
		cfg = loaded

		logger, err = logging.Init(cfg.Logging)
		if err != nil {
			return fmt.Errorf("initializing logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "blocksplanner.yaml", "path to config file")

	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(replCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func searchBudgetFromConfig() time.Duration {
	return cfg.Search.Duration()
}
