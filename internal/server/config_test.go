package server

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/equity-cli/internal/deck"
	"github.com/lox/equity-cli/internal/equity"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "equity-server.hcl")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	config, err := LoadConfig(filepath.Join(t.TempDir(), "nope.hcl"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), config)
	assert.Equal(t, "localhost:8080", config.Addr())
}

func TestLoadConfigFromFile(t *testing.T) {
	path := writeConfig(t, `
server {
  address = "0.0.0.0"
  port    = 9000
}

simulation {
  default_iterations = 50000
  max_iterations     = 500000
  workers            = 4
}
`)

	config, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0:9000", config.Addr())
	assert.Equal(t, 50000, config.Simulation.DefaultIterations)
	assert.Equal(t, 500000, config.Simulation.MaxIterations)
	assert.Equal(t, 4, config.Simulation.Workers)
}

func TestLoadConfigFillsDefaults(t *testing.T) {
	path := writeConfig(t, `
server {
  port = 9000
}

simulation {}
`)

	config, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "localhost", config.Server.Address)
	assert.Equal(t, "info", config.Server.LogLevel)
	assert.Equal(t, 100000, config.Simulation.DefaultIterations)
	assert.Equal(t, 1000000, config.Simulation.MaxIterations)
}

func TestLoadConfigParseError(t *testing.T) {
	path := writeConfig(t, `server { port = `)
	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults valid", func(c *Config) {}, ""},
		{"bad port", func(c *Config) { c.Server.Port = 0 }, "invalid port"},
		{"port too high", func(c *Config) { c.Server.Port = 70000 }, "invalid port"},
		{"zero default iterations", func(c *Config) { c.Simulation.DefaultIterations = 0 }, "default_iterations"},
		{"max below default", func(c *Config) { c.Simulation.MaxIterations = 10 }, "max_iterations"},
		{"negative workers", func(c *Config) { c.Simulation.Workers = -1 }, "workers"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultConfig()
			tt.mutate(config)
			err := config.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestClampIterations(t *testing.T) {
	config := DefaultConfig()
	assert.Equal(t, 100000, config.clampIterations(0))
	assert.Equal(t, 100000, config.clampIterations(-5))
	assert.Equal(t, 5000, config.clampIterations(5000))
	assert.Equal(t, 1000000, config.clampIterations(2000000))
}

func TestConfigSimulate(t *testing.T) {
	config := DefaultConfig()
	config.Simulation.Workers = 1

	res, err := config.simulate(equity.Request{
		Hand1:      deck.MustParseCards("AsAd"),
		Hand2:      deck.MustParseCards("KsKd"),
		Iterations: 500,
	}, 42)
	require.NoError(t, err)
	assert.Equal(t, 500, res.Trials)
	assert.Equal(t, 500, res.Wins[0]+res.Wins[1]+res.Ties)
}
