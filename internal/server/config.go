package server

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/equity-cli/internal/equity"
	"github.com/lox/equity-cli/internal/randutil"
)

// Config is the equity service configuration, loaded from HCL.
type Config struct {
	Server     Settings    `hcl:"server,block"`
	Simulation SimSettings `hcl:"simulation,block"`
}

// Settings contains listener-level configuration
type Settings struct {
	Address  string `hcl:"address,optional"`
	Port     int    `hcl:"port,optional"`
	LogLevel string `hcl:"log_level,optional"`
}

// SimSettings bounds what clients may request
type SimSettings struct {
	DefaultIterations int `hcl:"default_iterations,optional"`
	MaxIterations     int `hcl:"max_iterations,optional"`
	Workers           int `hcl:"workers,optional"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	return &Config{
		Server: Settings{
			Address:  "localhost",
			Port:     8080,
			LogLevel: "info",
		},
		Simulation: SimSettings{
			DefaultIterations: 100000,
			MaxIterations:     1000000,
		},
	}
}

// LoadConfig loads configuration from an HCL file, falling back to
// defaults when the file does not exist.
func LoadConfig(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config Config
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	// Fill in defaults for anything the file left out
	if config.Server.Address == "" {
		config.Server.Address = "localhost"
	}
	if config.Server.Port == 0 {
		config.Server.Port = 8080
	}
	if config.Server.LogLevel == "" {
		config.Server.LogLevel = "info"
	}
	if config.Simulation.DefaultIterations == 0 {
		config.Simulation.DefaultIterations = 100000
	}
	if config.Simulation.MaxIterations == 0 {
		config.Simulation.MaxIterations = 1000000
	}

	return &config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Server.Port)
	}
	if c.Simulation.DefaultIterations <= 0 {
		return fmt.Errorf("default_iterations must be positive: %d", c.Simulation.DefaultIterations)
	}
	if c.Simulation.MaxIterations < c.Simulation.DefaultIterations {
		return fmt.Errorf("max_iterations (%d) must be at least default_iterations (%d)",
			c.Simulation.MaxIterations, c.Simulation.DefaultIterations)
	}
	if c.Simulation.Workers < 0 {
		return fmt.Errorf("workers cannot be negative: %d", c.Simulation.Workers)
	}
	return nil
}

// Addr returns the full listen address
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Address, c.Server.Port)
}

// clampIterations applies the configured request bounds.
func (c *Config) clampIterations(n int) int {
	if n <= 0 {
		return c.Simulation.DefaultIterations
	}
	if n > c.Simulation.MaxIterations {
		return c.Simulation.MaxIterations
	}
	return n
}

func (c *Config) simulate(req equity.Request, seed int64) (equity.Result, error) {
	req.Workers = c.Simulation.Workers
	return equity.Simulate(req, randutil.New(seed))
}
