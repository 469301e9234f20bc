// Package config reads the tool's settings from the environment.
package config

import (
	"fmt"
	"io"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/sirupsen/logrus"
)

// Config holds settings shared by every command. Command line flags override it.
type Config struct {
	// Platform services
	PlatformURL     string        `env:"SERVERLESS_PLATFORM_URL" envDefault:"https://api.serverless.com/core"`
	PlatformTimeout time.Duration `env:"SERVERLESS_PLATFORM_TIMEOUT" envDefault:"30s"`
	AccessKey       string        `env:"SERVERLESS_ACCESS_KEY"`
	RCFile          string        `env:"SERVERLESS_RC_FILE"`

	// Identity values the framework passes down
	DeploymentUID string `env:"SERVERLESS_DEPLOYMENT_UID"`
	TenantUID     string `env:"SERVERLESS_TENANT_UID"`
	AppUID        string `env:"SERVERLESS_APP_UID"`
	Region        string `env:"AWS_REGION"`

	// Local paths
	SDKDir   string `env:"WETWIRE_SLS_SDK_DIR"`
	StateDir string `env:"WETWIRE_SLS_STATE_DIR"`

	// Diagnostics
	LogLevel string `env:"WETWIRE_SLS_LOG_LEVEL" envDefault:"info"`
	LogJSON  bool   `env:"WETWIRE_SLS_LOG_JSON" envDefault:"false"`
	Trace    bool   `env:"WETWIRE_SLS_TRACE" envDefault:"false"`
}

// Load parses the configuration from the environment.
func Load() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("could not parse configuration: %w", err)
	}
	return &cfg, nil
}

// NewLogger creates the logger described by the configuration.
func (c *Config) NewLogger(out io.Writer) (*logrus.Logger, error) {
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}

	logger := logrus.New()
	logger.Out = out
	logger.Level = level
	if c.LogJSON {
		logger.Formatter = &logrus.JSONFormatter{}
	} else {
		logger.Formatter = &logrus.TextFormatter{DisableTimestamp: true}
	}
	return logger, nil
}
