package config

import (
	"fmt"
)

// Config holds all application configuration settings.
type Config struct {
	Environment string `envconfig:"TT_ENV" default:"development"`

	StorePath string `envconfig:"TT_STORE_PATH" default:"./data/tasks.json"`

	LogLevel  string `envconfig:"TT_LOG_LEVEL" default:"warn"`
	LogFormat string `envconfig:"TT_LOG_FORMAT" default:"text"`
}

// Validate checks the configuration for invalid or missing values.
func (c *Config) Validate() error {
	if c.StorePath == "" {
		return fmt.Errorf("store path cannot be empty")
	}
	return nil
}
