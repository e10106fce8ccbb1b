package cmd

import (
	"errors"
	"execdash/pkg/config"
	"execdash/pkg/constants"
	"fmt"
	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"net/url"
	"strconv"
	"time"
)

var InitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the dashboard configurations",
	Long: `
Prompts for the executions API and the server settings and writes them into
config.yml next to the execdash binary.

Usage:

	execdash init

Note that the PORT is optional. By default the server will use :9090
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintln(cmd.OutOrStdout(), "Initialize execdash")

		apiBaseURLPrompt := promptui.Prompt{
			Label:    "Executions API base URL",
			Validate: validateURL,
		}
		apiBaseURL, err := apiBaseURLPrompt.Run()
		if err != nil {
			return err
		}

		portPrompt := promptui.Prompt{
			Label:    "Port",
			Default:  constants.DefaultPort,
			Validate: validatePort,
		}
		port, err := portPrompt.Run()
		if err != nil {
			return err
		}

		timezonePrompt := promptui.Prompt{
			Label:    "Display timezone (empty for local time)",
			Validate: validateTimezone,
		}
		timezone, err := timezonePrompt.Run()
		if err != nil {
			return err
		}

		logLevelSelect := promptui.Select{
			Label: "Log level",
			Items: []string{"INFO", "DEBUG", "TRACE", "WARN", "ERROR"},
		}
		_, logLevel, err := logLevelSelect.Run()
		if err != nil {
			return err
		}

		dashboardConfig := config.NewDashboardConfig()
		configurations := &config.DashboardConfigurations{
			LogLevel:        logLevel,
			Port:            port,
			APIBaseURL:      apiBaseURL,
			DisplayTimezone: timezone,
		}
		if err := dashboardConfig.SaveConfigurations(configurations); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "configurations saved to %s\n", dashboardConfig.ConfigFilePath())
		return nil
	},
}

func validateURL(value string) error {
	parsed, err := url.Parse(value)
	if err != nil {
		return err
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return errors.New("expected an absolute url such as http://localhost:8080")
	}
	return nil
}

func validatePort(value string) error {
	port, err := strconv.Atoi(value)
	if err != nil || port < 1 || port > 65535 {
		return errors.New("expected a port between 1 and 65535")
	}
	return nil
}

func validateTimezone(value string) error {
	if value == "" {
		return nil
	}
	_, err := time.LoadLocation(value)
	return err
}
