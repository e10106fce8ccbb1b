package config

import (
	"errors"
	"execdash/pkg/constants"
	"fmt"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
	"os"
	"path"
	"path/filepath"
	"sync"
)

// DashboardConfigurations global configurations
type DashboardConfigurations struct {
	LogLevel                  string `json:"logLevel" yaml:"LogLevel" validate:"omitempty,oneof=TRACE DEBUG INFO WARN ERROR trace debug info warn error"`
	LogFile                   string `json:"logFile" yaml:"LogFile"`
	Port                      string `json:"port" yaml:"Port" validate:"required,numeric"`
	APIBaseURL                string `json:"apiBaseUrl" yaml:"APIBaseURL" validate:"required,url"`
	ExecutionsPath            string `json:"executionsPath" yaml:"ExecutionsPath" validate:"required,startswith=/"`
	FilteredExecutionsPath    string `json:"filteredExecutionsPath" yaml:"FilteredExecutionsPath" validate:"required,startswith=/"`
	RequestTimeoutMs          uint64 `json:"requestTimeoutMs" yaml:"RequestTimeoutMs" validate:"gt=0"`
	DisplayTimezone           string `json:"displayTimezone" yaml:"DisplayTimezone"`
	SessionIdleTimeoutSeconds uint64 `json:"sessionIdleTimeoutSeconds" yaml:"SessionIdleTimeoutSeconds" validate:"gt=0"`
	MaxWorkers                uint64 `json:"maxWorkers" yaml:"MaxWorkers" validate:"gt=0"`
	MaxQueue                  uint64 `json:"maxQueue" yaml:"MaxQueue" validate:"gt=0"`
	MaxSessions               uint64 `json:"maxSessions" yaml:"MaxSessions" validate:"gt=0"`
}

const (
	LogLevelEnv                  = "LOG_LEVEL"
	LogFileEnv                   = "LOG_FILE"
	PortEnv                      = "PORT"
	APIBaseURLEnv                = "API_BASE_URL"
	ExecutionsPathEnv            = "EXECUTIONS_PATH"
	FilteredExecutionsPathEnv    = "FILTERED_EXECUTIONS_PATH"
	RequestTimeoutMsEnv          = "REQUEST_TIMEOUT_MS"
	DisplayTimezoneEnv           = "DISPLAY_TIMEZONE"
	SessionIdleTimeoutSecondsEnv = "SESSION_IDLE_TIMEOUT_SECONDS"
	MaxWorkersEnv                = "MAX_WORKERS"
	MaxQueueEnv                  = "MAX_QUEUE"
	MaxSessionsEnv               = "MAX_SESSIONS"
)

const EnvPrefix = "EXECDASH"

//go:generate mockery --name DashboardConfig --output ./ --inpackage
type DashboardConfig interface {
	GetConfigurations() (*DashboardConfigurations, error)
	SaveConfigurations(configurations *DashboardConfigurations) error
	ConfigFilePath() string
}

type dashboardConfig struct {
	fs     afero.Fs
	dir    string
	mtx    sync.Mutex
	cached *DashboardConfigurations
}

// NewDashboardConfig reads config.yml from the directory of the running binary
func NewDashboardConfig() DashboardConfig {
	return NewDashboardConfigWithFs(afero.NewOsFs(), getBinPath())
}

func NewDashboardConfigWithFs(fs afero.Fs, dir string) DashboardConfig {
	return &dashboardConfig{
		fs:  fs,
		dir: dir,
	}
}

func (dashboardConfig *dashboardConfig) ConfigFilePath() string {
	return filepath.Join(dashboardConfig.dir, constants.ConfigFileName)
}

// GetConfigurations this will retrieve configurations stored on disk, falling back to the environment
func (dashboardConfig *dashboardConfig) GetConfigurations() (*DashboardConfigurations, error) {
	dashboardConfig.mtx.Lock()
	defer dashboardConfig.mtx.Unlock()

	if dashboardConfig.cached != nil {
		return dashboardConfig.cached, nil
	}

	data, err := afero.ReadFile(dashboardConfig.fs, dashboardConfig.ConfigFilePath())
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("read %s: %w", dashboardConfig.ConfigFilePath(), err)
	}

	var configurations DashboardConfigurations
	if err != nil {
		configurations = getConfigFromEnv()
	} else if err := yaml.Unmarshal(data, &configurations); err != nil {
		return nil, fmt.Errorf("parse %s: %w", dashboardConfig.ConfigFilePath(), err)
	}

	applyDefaults(&configurations)

	if err := Validate(&configurations); err != nil {
		return nil, err
	}

	dashboardConfig.cached = &configurations
	return dashboardConfig.cached, nil
}

// SaveConfigurations writes the configurations as yaml into config.yml
func (dashboardConfig *dashboardConfig) SaveConfigurations(configurations *DashboardConfigurations) error {
	applyDefaults(configurations)
	if err := Validate(configurations); err != nil {
		return err
	}

	data, err := yaml.Marshal(configurations)
	if err != nil {
		return err
	}

	if err := afero.WriteFile(dashboardConfig.fs, dashboardConfig.ConfigFilePath(), data, 0o644); err != nil {
		return err
	}

	dashboardConfig.mtx.Lock()
	dashboardConfig.cached = configurations
	dashboardConfig.mtx.Unlock()

	return nil
}

// Validate checks the struct tags of the configurations
func Validate(configurations *DashboardConfigurations) error {
	if err := validator.New().Struct(configurations); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

func applyDefaults(configurations *DashboardConfigurations) {
	if configurations.LogLevel == "" {
		configurations.LogLevel = "INFO"
	}
	if configurations.Port == "" {
		configurations.Port = constants.DefaultPort
	}
	if configurations.ExecutionsPath == "" {
		configurations.ExecutionsPath = constants.DefaultExecutionsPath
	}
	if configurations.FilteredExecutionsPath == "" {
		configurations.FilteredExecutionsPath = constants.DefaultFilteredExecutionsPath
	}
	if configurations.RequestTimeoutMs == 0 {
		configurations.RequestTimeoutMs = constants.DefaultRequestTimeoutMs
	}
	if configurations.SessionIdleTimeoutSeconds == 0 {
		configurations.SessionIdleTimeoutSeconds = constants.DefaultSessionIdleTimeoutSeconds
	}
	if configurations.MaxWorkers == 0 {
		configurations.MaxWorkers = constants.DefaultMaxWorkers
	}
	if configurations.MaxQueue == 0 {
		configurations.MaxQueue = constants.DefaultMaxQueue
	}
	if configurations.MaxSessions == 0 {
		configurations.MaxSessions = constants.DefaultMaxSessions
	}
}

func getConfigFromEnv() DashboardConfigurations {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)

	for _, key := range []string{
		LogLevelEnv,
		LogFileEnv,
		PortEnv,
		APIBaseURLEnv,
		ExecutionsPathEnv,
		FilteredExecutionsPathEnv,
		RequestTimeoutMsEnv,
		DisplayTimezoneEnv,
		SessionIdleTimeoutSecondsEnv,
		MaxWorkersEnv,
		MaxQueueEnv,
		MaxSessionsEnv,
	} {
		_ = v.BindEnv(key)
	}

	return DashboardConfigurations{
		LogLevel:                  v.GetString(LogLevelEnv),
		LogFile:                   v.GetString(LogFileEnv),
		Port:                      v.GetString(PortEnv),
		APIBaseURL:                v.GetString(APIBaseURLEnv),
		ExecutionsPath:            v.GetString(ExecutionsPathEnv),
		FilteredExecutionsPath:    v.GetString(FilteredExecutionsPathEnv),
		RequestTimeoutMs:          v.GetUint64(RequestTimeoutMsEnv),
		DisplayTimezone:           v.GetString(DisplayTimezoneEnv),
		SessionIdleTimeoutSeconds: v.GetUint64(SessionIdleTimeoutSecondsEnv),
		MaxWorkers:                v.GetUint64(MaxWorkersEnv),
		MaxQueue:                  v.GetUint64(MaxQueueEnv),
		MaxSessions:               v.GetUint64(MaxSessionsEnv),
	}
}

func getBinPath() string {
	e, err := os.Executable()
	if err != nil {
		wd, _ := os.Getwd()
		return wd
	}
	return path.Dir(e)
}
