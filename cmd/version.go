package cmd

import (
	"fmt"
	"github.com/spf13/cobra"
)

// VersionCmd used to get current version of execdash
var VersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of execdash",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "execdash %s\n", Version)
	},
}
