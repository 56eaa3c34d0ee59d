package main

import (
	"fmt"
	"os"

	"github.com/aretw0/plantrace/internal/cli"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "plantrace",
	Short: "Plantrace generates execution traces for planning problems",
	Long: `Plantrace produces state/action traces from a grounded planning task,
either by uniform random rollouts or by following plans from an external
planner, and masks them to emulate partial observability.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringP("config", "c", "", "Config file (default plantrace.yaml when present)")
	flags.StringP("task", "t", "task.yaml", "Grounded task file (YAML or JSON)")
	flags.String("log-level", "", "Log level: debug, info, warn, error")
	flags.String("log-format", "", "Log format: text or json")
	flags.String("planner", "", "Planner name from the planners file")
	flags.String("store", "", "Trace store backend: memory, file or redis")
	flags.Uint64("seed", 0, "Random seed (0 picks a random one)")
	flags.BoolP("quiet", "q", false, "Suppress '>>>' console messages")
}

// setupApp builds the application from the global flags.
func setupApp(cmd *cobra.Command) (*cli.App, error) {
	flags := cmd.Flags()
	opts := cli.Options{}
	opts.ConfigPath, _ = flags.GetString("config")
	opts.TaskPath, _ = flags.GetString("task")
	opts.LogLevel, _ = flags.GetString("log-level")
	opts.LogFormat, _ = flags.GetString("log-format")
	opts.Planner, _ = flags.GetString("planner")
	opts.Store, _ = flags.GetString("store")
	opts.Seed, _ = flags.GetUint64("seed")
	opts.Quiet, _ = flags.GetBool("quiet")
	return cli.Setup(opts)
}
