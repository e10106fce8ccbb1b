package config

import (
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

func TestGetConfigurations(t *testing.T) {
	t.Run("reads config.yml", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		require.NoError(t, afero.WriteFile(fs, "/opt/execdash/config.yml", []byte(`
LogLevel: DEBUG
Port: "8080"
APIBaseURL: http://executions.internal:9000
RequestTimeoutMs: 2500
DisplayTimezone: UTC
MaxWorkers: 4
`), 0o644))

		dashboardConfig := NewDashboardConfigWithFs(fs, "/opt/execdash")
		configurations, err := dashboardConfig.GetConfigurations()
		require.NoError(t, err)

		assert.Equal(t, "DEBUG", configurations.LogLevel)
		assert.Equal(t, "8080", configurations.Port)
		assert.Equal(t, "http://executions.internal:9000", configurations.APIBaseURL)
		assert.Equal(t, uint64(2500), configurations.RequestTimeoutMs)
		assert.Equal(t, "UTC", configurations.DisplayTimezone)
		assert.Equal(t, uint64(4), configurations.MaxWorkers)
		assert.Equal(t, "/executions", configurations.ExecutionsPath)
		assert.Equal(t, "/api/get/executions", configurations.FilteredExecutionsPath)
		assert.Equal(t, uint64(64), configurations.MaxQueue)
		assert.Equal(t, uint64(256), configurations.MaxSessions)
	})

	t.Run("returns the same configuration object every time", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		require.NoError(t, afero.WriteFile(fs, "/bin/config.yml", []byte("APIBaseURL: http://localhost:3000\n"), 0o644))

		dashboardConfig := NewDashboardConfigWithFs(fs, "/bin")
		config1, err := dashboardConfig.GetConfigurations()
		require.NoError(t, err)
		config2, err := dashboardConfig.GetConfigurations()
		require.NoError(t, err)

		assert.Same(t, config1, config2)
	})

	t.Run("rejects an invalid file", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		require.NoError(t, afero.WriteFile(fs, "/bin/config.yml", []byte("APIBaseURL: not a url\n"), 0o644))

		_, err := NewDashboardConfigWithFs(fs, "/bin").GetConfigurations()
		assert.Error(t, err)
	})
}

func TestGetConfigFromEnv(t *testing.T) {
	t.Setenv("EXECDASH_LOG_LEVEL", "info")
	t.Setenv("EXECDASH_LOG_FILE", "/var/log/execdash.log")
	t.Setenv("EXECDASH_PORT", "8081")
	t.Setenv("EXECDASH_API_BASE_URL", "http://localhost:4000")
	t.Setenv("EXECDASH_EXECUTIONS_PATH", "/v2/executions")
	t.Setenv("EXECDASH_FILTERED_EXECUTIONS_PATH", "/v2/executions/search")
	t.Setenv("EXECDASH_REQUEST_TIMEOUT_MS", "1500")
	t.Setenv("EXECDASH_DISPLAY_TIMEZONE", "Europe/Berlin")
	t.Setenv("EXECDASH_SESSION_IDLE_TIMEOUT_SECONDS", "60")
	t.Setenv("EXECDASH_MAX_WORKERS", "3")
	t.Setenv("EXECDASH_MAX_QUEUE", "12")
	t.Setenv("EXECDASH_MAX_SESSIONS", "20")

	config := getConfigFromEnv()

	assert.Equal(t, "info", config.LogLevel)
	assert.Equal(t, "/var/log/execdash.log", config.LogFile)
	assert.Equal(t, "8081", config.Port)
	assert.Equal(t, "http://localhost:4000", config.APIBaseURL)
	assert.Equal(t, "/v2/executions", config.ExecutionsPath)
	assert.Equal(t, "/v2/executions/search", config.FilteredExecutionsPath)
	assert.Equal(t, uint64(1500), config.RequestTimeoutMs)
	assert.Equal(t, "Europe/Berlin", config.DisplayTimezone)
	assert.Equal(t, uint64(60), config.SessionIdleTimeoutSeconds)
	assert.Equal(t, uint64(3), config.MaxWorkers)
	assert.Equal(t, uint64(12), config.MaxQueue)
	assert.Equal(t, uint64(20), config.MaxSessions)

	dashboardConfig := NewDashboardConfigWithFs(afero.NewMemMapFs(), "/empty")
	configurations, err := dashboardConfig.GetConfigurations()
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:4000", configurations.APIBaseURL)
}

func TestSaveConfigurations(t *testing.T) {
	fs := afero.NewMemMapFs()
	dashboardConfig := NewDashboardConfigWithFs(fs, "/srv")

	err := dashboardConfig.SaveConfigurations(&DashboardConfigurations{
		APIBaseURL: "http://localhost:3000",
		Port:       "9191",
	})
	require.NoError(t, err)

	exists, err := afero.Exists(fs, "/srv/config.yml")
	require.NoError(t, err)
	assert.True(t, exists)

	reloaded, err := NewDashboardConfigWithFs(fs, "/srv").GetConfigurations()
	require.NoError(t, err)
	assert.Equal(t, "9191", reloaded.Port)
	assert.Equal(t, "http://localhost:3000", reloaded.APIBaseURL)

	err = dashboardConfig.SaveConfigurations(&DashboardConfigurations{Port: "abc"})
	assert.Error(t, err)
}
