package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/plantrace"
	"github.com/aretw0/plantrace/internal/presentation/tui"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of plantrace",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		if banner, _ := cmd.Flags().GetBool("banner"); banner {
			tui.PrintBanner(out, strings.TrimSpace(plantrace.Version))
			return
		}
		fmt.Fprintf(out, "plantrace version %s\n", strings.TrimSpace(plantrace.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
	versionCmd.Flags().Bool("banner", false, "Print the colored banner")
}
