package cmd

import (
	"execdash/pkg/config"
	"execdash/pkg/logger"
	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"
)

// Version of the execdash binary
const Version = "v0.1.0"

var rootCmd = &cobra.Command{
	Use:   "execdash",
	Short: "execdash is a filterable and sortable dashboard of executions",
	Long: `execdash fetches the executions of a data pipeline API and serves them as a
table that can be filtered by outcome or by data schema and data source, and sorted by column.
`,
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(StartCmd)
	rootCmd.AddCommand(ListCmd)
	rootCmd.AddCommand(InitCmd)
	rootCmd.AddCommand(ConfigCmd)
	rootCmd.AddCommand(VersionCmd)
}

func Execute() error {
	return rootCmd.Execute()
}

// loadConfigurations reads the configurations and builds the root logger from them
func loadConfigurations(dashboardConfig config.DashboardConfig) (*config.DashboardConfigurations, hclog.Logger, error) {
	configurations, err := dashboardConfig.GetConfigurations()
	if err != nil {
		return nil, nil, err
	}

	return configurations, logger.NewLogger("execdash", configurations.LogLevel, configurations.LogFile), nil
}
