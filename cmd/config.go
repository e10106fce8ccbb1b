package cmd

import (
	"execdash/pkg/config"
	"fmt"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var ConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "view execdash configurations",
	Long: `
Usage:

	execdash config show

This prints the effective configurations, either read from config.yml or from the
EXECDASH_* environment variables, with defaults applied.
`,
}

var ShowCmd = &cobra.Command{
	Use:   "show",
	Short: "This will show the configurations that are in effect.",
	RunE: func(cmd *cobra.Command, args []string) error {
		dashboardConfig := config.NewDashboardConfig()
		configurations, err := dashboardConfig.GetConfigurations()
		if err != nil {
			return err
		}

		data, err := yaml.Marshal(configurations)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "# %s\n%s", dashboardConfig.ConfigFilePath(), data)
		return nil
	},
}

func init() {
	ConfigCmd.AddCommand(ShowCmd)
}
