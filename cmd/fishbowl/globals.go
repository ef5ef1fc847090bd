package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"github.com/lox/fishbowl/internal/config"
)

// Globals are flags shared by every command.
type Globals struct {
	Config   string `short:"c" default:"fishbowl.hcl" env:"FISHBOWL_CONFIG" help:"Path to HCL configuration file"`
	SaveFile string `env:"FISHBOWL_SAVE_FILE" help:"Saved game path (overrides config)"`
	LogLevel string `short:"l" env:"FISHBOWL_LOG_LEVEL" help:"Log level (overrides config)"`
	LogFile  string `env:"FISHBOWL_LOG_FILE" help:"Log file path (overrides config)"`
}

// load reads the config file and applies flag overrides.
func (g *Globals) load() (*config.Config, error) {
	cfg, err := config.Load(g.Config)
	if err != nil {
		return nil, err
	}
	if g.SaveFile != "" {
		cfg.SaveFile = g.SaveFile
	}
	if g.LogLevel != "" {
		cfg.LogLevel = g.LogLevel
	}
	if g.LogFile != "" {
		cfg.LogFile = g.LogFile
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// openLogger logs to the configured file, since the terminal belongs to the
// game. The caller closes the returned file.
func openLogger(cfg *config.Config) (*log.Logger, *os.File, error) {
	logFile, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	logger := log.NewWithOptions(logFile, log.Options{
		Level:           cfg.Level(),
		ReportTimestamp: true,
	})
	return logger, logFile, nil
}
