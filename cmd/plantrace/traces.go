package main

import (
	"os"

	"github.com/aretw0/plantrace/internal/cli"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print a stored trace list",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := setupApp(cmd)
		if err != nil {
			return err
		}
		defer app.Close()

		format, _ := cmd.Flags().GetString("format")
		return cli.Show(cmd.Context(), app, args[0], format, os.Stdout)
	},
}

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List stored trace lists",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := setupApp(cmd)
		if err != nil {
			return err
		}
		defer app.Close()
		return cli.List(cmd.Context(), app, os.Stdout)
	},
}

var deleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm"},
	Short:   "Remove a stored trace list",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := setupApp(cmd)
		if err != nil {
			return err
		}
		defer app.Close()
		return cli.Delete(cmd.Context(), app, args[0])
	},
}

var observeCmd = &cobra.Command{
	Use:   "observe <id>",
	Short: "Mask a stored trace list into observation tokens",
	Long: `Tokenizes every step of a stored trace list, keeping only a subset of
the fluents of each state:

- random: keeps --percent of the fluents, drawn independently per step
- same: hides the --hide atoms in every step, e.g. --hide "(on a b)"
- identity: keeps everything`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := setupApp(cmd)
		if err != nil {
			return err
		}
		defer app.Close()

		opts := cli.ObserveOptions{ID: args[0]}
		opts.Method, _ = cmd.Flags().GetString("method")
		opts.Percent, _ = cmd.Flags().GetInt("percent")
		opts.Hide, _ = cmd.Flags().GetStringArray("hide")
		return cli.Observe(cmd.Context(), app, opts, os.Stdout)
	},
}

var plannersCmd = &cobra.Command{
	Use:   "planners",
	Short: "List the planners of the planners file",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := setupApp(cmd)
		if err != nil {
			return err
		}
		defer app.Close()
		return cli.Planners(app, os.Stdout)
	},
}

func init() {
	showCmd.Flags().StringP("format", "f", cli.FormatAuto, "Output format: auto, json, report or mermaid")

	observeCmd.Flags().StringP("method", "m", "identity", "Selection method: random, same or identity")
	observeCmd.Flags().IntP("percent", "p", 100, "Percentage of fluents kept by the random method")
	observeCmd.Flags().StringArray("hide", nil, "Atom hidden by the same method (repeatable)")

	rootCmd.AddCommand(showCmd, listCmd, deleteCmd, observeCmd, plannersCmd)
}
