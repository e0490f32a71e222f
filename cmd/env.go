package cmd

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// EnvDefaults holds settings that may come from the environment. Flags set on
// the command line always win.
type EnvDefaults struct {
	LogLevel   string `env:"KEEPAWAY_LOG_LEVEL" envDefault:"warn"`
	ResultsDB  string `env:"KEEPAWAY_RESULTS_DB"`
	MetricsOut string `env:"KEEPAWAY_METRICS_OUT"`
}

// LoadEnvDefaults parses EnvDefaults from the process environment.
func LoadEnvDefaults() (EnvDefaults, error) {
	var cfg EnvDefaults
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
