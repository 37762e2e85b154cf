package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mcncl/jsonbeautifier/internal/session"
	"github.com/mcncl/jsonbeautifier/internal/theme"
)

// Config represents the complete configuration for jsonbeautifier
type Config struct {
	Theme         string       `yaml:"theme"`
	Mode          string       `yaml:"mode"`
	CollapseDepth int          `yaml:"collapse_depth"`
	StateFile     string       `yaml:"state_file"`
	Output        OutputConfig `yaml:"output"`
	Log           LogConfig    `yaml:"log"`
	Watch         WatchConfig  `yaml:"watch"`
}

// OutputConfig controls how documents are written in print mode
type OutputConfig struct {
	// Indent is the number of spaces per nesting level
	Indent int `yaml:"indent"`
	// Color is one of "auto", "always" or "never"
	Color string `yaml:"color"`
}

// LogConfig controls diagnostic logging
type LogConfig struct {
	Level string `yaml:"level"`
	// File receives log output while the terminal UI is running
	File string `yaml:"file"`
}

// WatchConfig controls --watch
type WatchConfig struct {
	DebounceMS int `yaml:"debounce_ms"`
}

// Color modes
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// NewConfig creates a new Config with default values
func NewConfig() *Config {
	return &Config{
		Theme:         string(theme.Default),
		Mode:          session.ModeJSON.String(),
		CollapseDepth: 0,
		Output: OutputConfig{
			Indent: 2,
			Color:  ColorAuto,
		},
		Log: LogConfig{
			Level: "info",
		},
		Watch: WatchConfig{
			DebounceMS: 100,
		},
	}
}

// LoadConfig loads configuration from a YAML file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Start with defaults
	cfg := NewConfig()

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// FindConfigFile searches for a config file in current directory and parents
func FindConfigFile() string {
	configNames := []string{".jsonbeautifier.yml", ".jsonbeautifier.yaml", "jsonbeautifier.yml", "jsonbeautifier.yaml"}

	currentDir, err := os.Getwd()
	if err != nil {
		return ""
	}

	// Search up the directory tree
	for {
		for _, name := range configNames {
			configPath := filepath.Join(currentDir, name)
			if _, err := os.Stat(configPath); err == nil {
				return configPath
			}
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Reached root directory
			break
		}
		currentDir = parentDir
	}

	return ""
}

// Validate checks every field and normalizes the theme name to its ID
func (c *Config) Validate() error {
	id, err := theme.Parse(c.Theme)
	if err != nil {
		return fmt.Errorf("invalid theme: %w", err)
	}
	c.Theme = string(id)

	mode, err := session.ParseMode(c.Mode)
	if err != nil {
		return fmt.Errorf("invalid mode: %w", err)
	}
	c.Mode = mode.String()

	if c.CollapseDepth < 0 {
		return fmt.Errorf("collapse_depth must not be negative, got %d", c.CollapseDepth)
	}
	if c.Output.Indent < 1 || c.Output.Indent > 8 {
		return fmt.Errorf("output.indent must be between 1 and 8, got %d", c.Output.Indent)
	}

	switch strings.ToLower(c.Output.Color) {
	case "", ColorAuto:
		c.Output.Color = ColorAuto
	case ColorAlways, ColorNever:
		c.Output.Color = strings.ToLower(c.Output.Color)
	default:
		return fmt.Errorf("output.color must be auto, always or never, got %q", c.Output.Color)
	}

	if c.Watch.DebounceMS < 0 {
		return fmt.Errorf("watch.debounce_ms must not be negative, got %d", c.Watch.DebounceMS)
	}
	return nil
}

// ThemeID returns the configured theme
func (c *Config) ThemeID() theme.ID {
	return theme.ID(c.Theme)
}

// SessionMode returns the configured decode mode
func (c *Config) SessionMode() session.Mode {
	mode, _ := session.ParseMode(c.Mode)
	return mode
}

// IndentString returns the indentation unit for print mode
func (c *Config) IndentString() string {
	return strings.Repeat(" ", c.Output.Indent)
}

// Overrides holds values given on the command line. Zero values leave the
// configured value in place.
type Overrides struct {
	Theme         string
	JWT           bool
	CollapseDepth *int
	NoColor       bool
	Debug         bool
}

// LoadConfigWithCLI loads config with CLI argument precedence:
// CLI > config file > defaults
func LoadConfigWithCLI(configPath string, cli Overrides) (*Config, error) {
	cfg := NewConfig()

	if configPath != "" {
		fileConfig, err := LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
		cfg = fileConfig
	}

	if cli.Theme != "" {
		cfg.Theme = cli.Theme
	}
	if cli.JWT {
		cfg.Mode = session.ModeJWT.String()
	}
	if cli.CollapseDepth != nil {
		cfg.CollapseDepth = *cli.CollapseDepth
	}
	if cli.NoColor {
		cfg.Output.Color = ColorNever
	}
	if cli.Debug {
		cfg.Log.Level = "debug"
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
