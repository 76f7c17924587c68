package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/marcus/chaoskb/internal/output"
)

var infoCmd = &cobra.Command{
	Use:     "info",
	Aliases: []string{"requirements"},
	Short:   "Show what a real system-wide remapper would need",
	GroupID: "system",
	Run: func(cmd *cobra.Command, args []string) {
		raw, _ := cmd.Flags().GetBool("raw")
		if raw {
			fmt.Fprint(cmd.OutOrStdout(), output.Requirements)
			return
		}
		output.NewPrinter(cmd.OutOrStdout(), 0, 0).Markdown(output.Requirements)
	},
}

var versionCmd = &cobra.Command{
	Use:     "version",
	Short:   "Show version",
	GroupID: "system",
	Run: func(cmd *cobra.Command, args []string) {
		short, _ := cmd.Flags().GetBool("short")
		if short {
			fmt.Fprint(cmd.OutOrStdout(), versionStr)
			return
		}
		fmt.Fprintf(cmd.OutOrStdout(), "chaoskb version %s\n", versionStr)
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(versionCmd)

	infoCmd.Flags().Bool("raw", false, "Print the markdown source without rendering")
	versionCmd.Flags().Bool("short", false, "Print only the version string")
}
