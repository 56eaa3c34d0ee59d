package main

import (
	"os"

	"github.com/aretw0/plantrace/internal/cli"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the task for an unreachable goal and dead operators",
	Long: `Crawls the state space of the task breadth-first from the initial state
and reports dead ends, operators that are never applicable and whether the
goal can be reached.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := setupApp(cmd)
		if err != nil {
			return err
		}
		defer app.Close()

		limit, _ := cmd.Flags().GetInt("limit")
		return cli.Validate(app, limit, os.Stdout)
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().Int("limit", 0, "Maximum number of states to visit (default 100000)")
}
