package main

import (
	"os"

	"github.com/aretw0/plantrace/internal/cli"
	"github.com/aretw0/plantrace/internal/generate"
	"github.com/spf13/cobra"
)

var randomCmd = &cobra.Command{
	Use:   "random",
	Short: "Generate traces by uniform random rollouts",
	Long: `Generates traces of exactly --length steps by picking an applicable
action uniformly at random at every step. Rollouts that hit a dead end are
restarted up to generation.max_attempts times.`,
	RunE: runGenerate(generate.GeneratorRandom),
}

var sampleCmd = &cobra.Command{
	Use:   "sample",
	Short: "Generate traces that follow distinct planner plans",
	Long: `Asks the configured planner for plans that reach the goal and replays
each distinct plan into a trace. When no new plan appears within the plan
budget, known plans are reused. --length truncates long plans.`,
	RunE: runGenerate(generate.GeneratorGoal),
}

func runGenerate(generator string) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		app, err := setupApp(cmd)
		if err != nil {
			return err
		}
		defer app.Close()

		opts := cli.GenerateOptions{Generator: generator}
		opts.Traces, _ = cmd.Flags().GetInt("traces")
		opts.Length, _ = cmd.Flags().GetInt("length")
		opts.Format, _ = cmd.Flags().GetString("format")
		opts.NoSave, _ = cmd.Flags().GetBool("no-save")

		sc := cli.NewSignalContext(cmd.Context())
		defer sc.Cancel()
		return cli.HandleExecutionError(sc, cli.Generate(sc, app, opts, os.Stdout))
	}
}

func init() {
	randomCmd.Flags().IntP("length", "l", 0, "Steps per trace (default generation.length)")
	sampleCmd.Flags().IntP("length", "l", 0, "Truncate plans to this many steps; -1 keeps whole plans (default generation.goal_length)")
	for _, cmd := range []*cobra.Command{randomCmd, sampleCmd} {
		cmd.Flags().IntP("traces", "n", 0, "Number of traces (default from config)")
		cmd.Flags().StringP("format", "f", cli.FormatAuto, "Output format: auto, json, report or mermaid")
		cmd.Flags().Bool("no-save", false, "Do not store the generated list")
		rootCmd.AddCommand(cmd)
	}
}
