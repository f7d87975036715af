// Package config handles configuration file loading and parsing.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/ensigniasec/countdown/internal/validate"
)

// Default configuration values.
const (
	DefaultTickInterval   = "1s"
	DefaultChimeFrequency = 880.0
	DefaultChimeLength    = "600ms"
	DefaultFileName       = "config.yaml"
)

// ErrInvalid wraps every validation failure of a loaded config.
var ErrInvalid = errors.New("invalid config")

// Config represents the countdown configuration.
type Config struct {
	Timer   TimerConfig   `yaml:"timer" toml:"timer"`
	Storage StorageConfig `yaml:"storage" toml:"storage"`
	Chime   ChimeConfig   `yaml:"chime" toml:"chime"`
	TUI     TUIConfig     `yaml:"tui" toml:"tui"`
}

// TimerConfig holds countdown defaults.
type TimerConfig struct {
	DefaultDuration string `yaml:"default_duration" toml:"default_duration"` // Preloaded into the selectors, empty = 00:00:00
	TickInterval    string `yaml:"tick_interval" toml:"tick_interval" validate:"required"`
}

// StorageConfig holds the preference store location.
type StorageConfig struct {
	File string `yaml:"file" toml:"file"` // Empty = ~/.config/countdown/preferences.json
}

// ChimeConfig controls the completion sound.
type ChimeConfig struct {
	Enabled   bool    `yaml:"enabled" toml:"enabled"`
	Frequency float64 `yaml:"frequency" toml:"frequency" validate:"gte=20,lte=20000"`
	Length    string  `yaml:"length" toml:"length" validate:"required"`
}

// TUIConfig holds TUI-specific settings.
type TUIConfig struct {
	ShowHelp  bool `yaml:"show_help" toml:"show_help"`
	AltScreen bool `yaml:"alt_screen" toml:"alt_screen"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Timer: TimerConfig{
			TickInterval: DefaultTickInterval,
		},
		Chime: ChimeConfig{
			Enabled:   false,
			Frequency: DefaultChimeFrequency,
			Length:    DefaultChimeLength,
		},
		TUI: TUIConfig{
			ShowHelp:  false,
			AltScreen: true,
		},
	}
}

// ConfigPath returns the path to the config file.
// Uses XDG_CONFIG_HOME if set, otherwise ~/.config.
func ConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "countdown", DefaultFileName)
}

// LoadConfig loads configuration from the specified path.
// If path is empty, uses the default config path.
// Returns default config if file doesn't exist.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		path = ConfigPath()
	}

	// Start with defaults
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			// No config file, use defaults
			return cfg, nil
		}
		return nil, err
	}

	if isTOML(path) {
		err = toml.Unmarshal(data, cfg)
	} else {
		err = yaml.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks field constraints and that durations parse.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if _, err := c.TickInterval(); err != nil {
		return err
	}
	if _, err := c.ChimeLength(); err != nil {
		return err
	}
	return nil
}

// TickInterval returns the parsed tick interval.
func (c *Config) TickInterval() (time.Duration, error) {
	return positiveDuration("timer.tick_interval", c.Timer.TickInterval)
}

// ChimeLength returns the parsed chime length.
func (c *Config) ChimeLength() (time.Duration, error) {
	return positiveDuration("chime.length", c.Chime.Length)
}

// Save writes the configuration to the specified path.
// Creates parent directories if needed.
func (c *Config) Save(path string) error {
	if path == "" {
		path = ConfigPath()
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	var (
		data []byte
		err  error
	)
	if isTOML(path) {
		data, err = toml.Marshal(c)
	} else {
		data, err = yaml.Marshal(c)
	}
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0o644)
}

func positiveDuration(field, s string) (time.Duration, error) {
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %v", ErrInvalid, field, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%w: %s must be positive", ErrInvalid, field)
	}
	return d, nil
}

func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}
