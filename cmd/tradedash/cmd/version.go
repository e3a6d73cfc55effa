package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

const version = "1.0.0"

var versionCmd = &cobra.Command{
	Use:              "version",
	Short:            "Print the version number",
	Long:             `Display the current version of the tradedash CLI.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {},
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "tradedash version %s\n", version)
		fmt.Fprintln(cmd.OutOrStdout(), "Trading journal analytics and prop-firm tracking")
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
