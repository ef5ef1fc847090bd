// Package config loads the fishbowl HCL configuration file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/fishbowl/internal/game"
)

const (
	DefaultLogLevel       = "info"
	DefaultLogFile        = "fishbowl.log"
	DefaultTickIntervalMs = 250
)

// Config represents the complete fishbowl configuration
type Config struct {
	LogLevel       string      `hcl:"log_level,optional"`
	LogFile        string      `hcl:"log_file,optional"`
	SaveFile       string      `hcl:"save_file,optional"`
	TickIntervalMs int         `hcl:"tick_interval_ms,optional"`
	Game           *GameConfig `hcl:"game,block"`
}

// GameConfig seeds the host setup screen
type GameConfig struct {
	TeamA        string `hcl:"team_a,optional"`
	TeamB        string `hcl:"team_b,optional"`
	PlayerCount  int    `hcl:"player_count,optional"`
	TimerSeconds []int  `hcl:"timer_seconds,optional"`
}

// DefaultSaveFile is where an in-progress game is kept between launches.
func DefaultSaveFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".fishbowl.json"
	}
	return filepath.Join(dir, "fishbowl", "game.json")
}

// Default returns the configuration used when no file is present
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// Load loads configuration from an HCL file. A missing file yields defaults.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return Default(), nil
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

	config.applyDefaults()
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return &config, nil
}

func (c *Config) applyDefaults() {
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	if c.LogFile == "" {
		c.LogFile = DefaultLogFile
	}
	if c.SaveFile == "" {
		c.SaveFile = DefaultSaveFile()
	}
	if c.TickIntervalMs == 0 {
		c.TickIntervalMs = DefaultTickIntervalMs
	}
	if c.Game == nil {
		c.Game = &GameConfig{}
	}

	defaults := game.DefaultSettings()
	if c.Game.TeamA == "" {
		c.Game.TeamA = defaults.TeamNames[0]
	}
	if c.Game.TeamB == "" {
		c.Game.TeamB = defaults.TeamNames[1]
	}
	if c.Game.PlayerCount == 0 {
		c.Game.PlayerCount = defaults.PlayerCount
	}
	if len(c.Game.TimerSeconds) == 0 {
		c.Game.TimerSeconds = []int{game.DefaultTimerSeconds}
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log_level %q", c.LogLevel)
	}
	if c.TickIntervalMs < 10 || c.TickIntervalMs > 1000 {
		return fmt.Errorf("tick_interval_ms must be between 10 and 1000, got %d", c.TickIntervalMs)
	}
	if c.Game == nil {
		return nil
	}
	if c.Game.PlayerCount < game.MinPlayers || c.Game.PlayerCount > game.MaxPlayers {
		return fmt.Errorf("game: player_count must be between %d and %d", game.MinPlayers, game.MaxPlayers)
	}
	switch len(c.Game.TimerSeconds) {
	case 1, game.NumRounds:
	default:
		return fmt.Errorf("game: timer_seconds needs 1 or %d values, got %d", game.NumRounds, len(c.Game.TimerSeconds))
	}
	for _, secs := range c.Game.TimerSeconds {
		if secs < game.MinTimerSeconds || secs > game.MaxTimerSeconds {
			return fmt.Errorf("game: timer_seconds must be between %d and %d", game.MinTimerSeconds, game.MaxTimerSeconds)
		}
	}
	return nil
}

// Level returns the parsed log level.
func (c *Config) Level() log.Level {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return level
}

// TickInterval returns how often the turn timer is synced.
func (c *Config) TickInterval() time.Duration {
	return time.Duration(c.TickIntervalMs) * time.Millisecond
}

// GameSettings converts the game block into host setup values.
func (c *Config) GameSettings() game.Settings {
	settings := game.DefaultSettings()
	if c.Game == nil {
		return settings
	}
	settings.TeamNames = [2]string{c.Game.TeamA, c.Game.TeamB}
	settings.PlayerCount = c.Game.PlayerCount
	switch len(c.Game.TimerSeconds) {
	case 1:
		for r := range settings.TimerSeconds {
			settings.TimerSeconds[r] = c.Game.TimerSeconds[0]
		}
	case game.NumRounds:
		copy(settings.TimerSeconds[:], c.Game.TimerSeconds)
	}
	return settings
}
