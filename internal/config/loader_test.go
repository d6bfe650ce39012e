package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "./data/tasks.json", cfg.StorePath)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("TT_STORE_PATH", "/tmp/elsewhere/tasks.json")
	t.Setenv("TT_LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/tmp/elsewhere/tasks.json", cfg.StorePath)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestConfig_Validate(t *testing.T) {
	cfg := &Config{StorePath: ""}
	assert.Error(t, cfg.Validate())

	cfg.StorePath = "./data/tasks.json"
	assert.NoError(t, cfg.Validate())
}
