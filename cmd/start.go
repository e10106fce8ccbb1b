package cmd

import (
	"execdash/pkg/config"
	"execdash/pkg/http/server"
	"github.com/spf13/cobra"
	"os/signal"
	"syscall"
)

var StartCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the dashboard server",
	Long: `
Starts the dashboard on the configured port. Every browser gets its own view,
which is mounted with the unfiltered executions on the first visit.

Usage:

	execdash start

Run execdash init first or provide the EXECDASH_* environment variables.
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		configurations, logger, err := loadConfigurations(config.NewDashboardConfig())
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		logger.Info("starting server")
		return server.Start(ctx, logger, configurations)
	},
}
