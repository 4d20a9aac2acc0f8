package main

import (
	"fmt"
	"strings"

	"blocksplanner/internal/blocksworld"
	"blocksplanner/internal/fixture"
	"blocksplanner/internal/logging"
	"blocksplanner/internal/parser"
	"blocksplanner/internal/render"

	"github.com/spf13/cobra"
)

var dryRun bool

var planCmd = &cobra.Command{
	Use:   "plan [instruction]",
	Short: "Plan and execute a single instruction against the configured world",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runPlan,
}

func init() {
	planCmd.Flags().BoolVar(&dryRun, "dry-run", false, "compile and search without printing the narrated plan, only telemetry")
}

func runPlan(cmd *cobra.Command, args []string) error {
	utterance := strings.Join(args, " ")

	state, err := fixture.Load(cfg.World.FixturePath)
	if err != nil {
		return fmt.Errorf("loading world fixture: %w", err)
	}

	var mangleOracle *blocksworld.MangleOracle
	if mo, err := blocksworld.NewMangleOracle(state.Objects); err == nil {
		mangleOracle = mo
		defer mangleOracle.Close()
	} else {
		logging.For(logger, logging.CategoryCLI).Warn("mangle oracle unavailable, continuing with hot-path oracle only")
	}

	budget := blocksworld.SearchBudget{TimeBudget: searchBudgetFromConfig(), MaxNodes: cfg.Search.MaxNodes}
	session := blocksworld.NewSession(state, mangleOracle, budget, logging.For(logger, logging.CategorySession))

	p := parser.New()
	out := render.New(cmd.OutOrStdout())

	result, prompt, perr := session.Handle(p, utterance)
	if perr != nil {
		out.RenderError(perr)
		return nil
	}
	if prompt != "" {
		out.RenderPrompt(prompt)
		return nil
	}

	if dryRun {
		actions := 0
		for _, line := range result.Narrated.Lines {
			if len(line) == 1 && strings.Contains("lrpd", line) {
				actions++
			}
		}
		fmt.Fprintf(cmd.OutOrStdout(), "nodes_expanded=%d elapsed=%s actions=%d\n",
			result.NodesExpanded, result.Elapsed, actions)
		return nil
	}

	out.RenderPlan(result.Narrated)
	fmt.Fprintf(cmd.OutOrStdout(), "(%d nodes expanded in %s)\n", result.NodesExpanded, result.Elapsed)
	return nil
}
