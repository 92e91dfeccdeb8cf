// Package config provides configuration management for uimap.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/mj1618/uimap/internal/annotate"
)

// DefaultFile is the config file looked up in the working directory when
// no --config flag is given.
const DefaultFile = "uimap.yaml"

// EnvPrefix prefixes every environment override.
const EnvPrefix = "UIMAP_"

// Config represents the application configuration.
type Config struct {
	// Where annotated screenshots are written when no output path is given
	ScreenshotDir string `yaml:"screenshot_dir"`

	// Program started by "launch" and by connect without a selector
	DefaultProgram string `yaml:"default_program"`

	// Pause after focusing the window, before capturing
	FocusDelay string `yaml:"focus_delay"`

	// Pause after launching a program before looking for its window,
	// and the total time to keep looking
	LaunchWait    string `yaml:"launch_wait"`
	LaunchTimeout string `yaml:"launch_timeout"`

	// Max traversal depth (0 = unlimited)
	Depth int `yaml:"depth"`

	// Logging configuration
	LogLevel string `yaml:"log_level"`

	// Drawing configuration
	LineWidth int               `yaml:"line_width"`
	FontSize  float64           `yaml:"font_size"`
	Label     string            `yaml:"label"`  // index or center
	Colors    map[string]string `yaml:"colors"` // control type -> color name or #rrggbb
}

// Default returns a configuration with default values.
func Default() *Config {
	return &Config{
		ScreenshotDir:  "screenshots",
		DefaultProgram: "calc.exe",
		FocusDelay:     "500ms",
		LaunchWait:     "2s",
		LaunchTimeout:  "10s",
		Depth:          0,
		LogLevel:       "info",
		LineWidth:      annotate.DefaultLineWidth,
		FontSize:       annotate.DefaultFontSize,
		Label:          "index",
	}
}

// Load reads the YAML file at path over the defaults, then applies a .env
// file and UIMAP_* environment variables. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// defaults only
		case err != nil:
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
			}
		}
	}

	loadDotEnv()
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// loadDotEnv loads the first .env found in the working directory or next to
// the executable. Variables already set in the environment win.
func loadDotEnv() {
	envPaths := []string{".env"}
	if execPath, err := os.Executable(); err == nil {
		envPaths = append(envPaths, filepath.Join(filepath.Dir(execPath), ".env"))
	}
	for _, p := range envPaths {
		if _, err := os.Stat(p); err == nil {
			_ = godotenv.Load(p)
			return
		}
	}
}

func (c *Config) applyEnv() error {
	strVars := map[string]*string{
		"SCREENSHOT_DIR":  &c.ScreenshotDir,
		"DEFAULT_PROGRAM": &c.DefaultProgram,
		"FOCUS_DELAY":     &c.FocusDelay,
		"LAUNCH_WAIT":     &c.LaunchWait,
		"LAUNCH_TIMEOUT":  &c.LaunchTimeout,
		"LOG_LEVEL":       &c.LogLevel,
		"LABEL":           &c.Label,
	}
	for key, dst := range strVars {
		if v := os.Getenv(EnvPrefix + key); v != "" {
			*dst = v
		}
	}

	intVars := map[string]*int{
		"DEPTH":      &c.Depth,
		"LINE_WIDTH": &c.LineWidth,
	}
	for key, dst := range intVars {
		if v := os.Getenv(EnvPrefix + key); v != "" {
			n, err := strconv.Atoi(strings.TrimSpace(v))
			if err != nil {
				return fmt.Errorf("invalid %s%s: %w", EnvPrefix, key, err)
			}
			*dst = n
		}
	}

	if v := os.Getenv(EnvPrefix + "FONT_SIZE"); v != "" {
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return fmt.Errorf("invalid %sFONT_SIZE: %w", EnvPrefix, err)
		}
		c.FontSize = f
	}
	return nil
}

// Validate checks if the configuration values are valid.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.ScreenshotDir) == "" {
		return fmt.Errorf("screenshot_dir cannot be empty")
	}

	durations := map[string]string{
		"focus_delay":    c.FocusDelay,
		"launch_wait":    c.LaunchWait,
		"launch_timeout": c.LaunchTimeout,
	}
	for name, v := range durations {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", name, err)
		}
		if d < 0 {
			return fmt.Errorf("%s cannot be negative, got %s", name, v)
		}
	}

	if c.Depth < 0 {
		return fmt.Errorf("depth cannot be negative, got %d", c.Depth)
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[strings.ToLower(c.LogLevel)] {
		return fmt.Errorf("invalid log_level: %s (must be one of: debug, info, warn, error)", c.LogLevel)
	}

	if c.LineWidth < 1 || c.LineWidth > 20 {
		return fmt.Errorf("line_width must be between 1 and 20, got %d", c.LineWidth)
	}
	if c.FontSize < 4 || c.FontSize > 96 {
		return fmt.Errorf("font_size must be between 4 and 96, got %g", c.FontSize)
	}

	if _, err := annotate.ParseLabelMode(c.Label); err != nil {
		return fmt.Errorf("invalid label: %w", err)
	}

	if err := annotate.Palette(c.Colors).Validate(); err != nil {
		return fmt.Errorf("invalid colors: %w", err)
	}
	return nil
}

// GetFocusDelay returns the focus delay as a time.Duration.
func (c *Config) GetFocusDelay() time.Duration {
	d, _ := time.ParseDuration(c.FocusDelay)
	return d
}

// GetLaunchWait returns the launch wait as a time.Duration.
func (c *Config) GetLaunchWait() time.Duration {
	d, _ := time.ParseDuration(c.LaunchWait)
	return d
}

// GetLaunchTimeout returns the launch timeout as a time.Duration.
func (c *Config) GetLaunchTimeout() time.Duration {
	d, _ := time.ParseDuration(c.LaunchTimeout)
	return d
}

// Palette returns the default palette with configured colors applied.
func (c *Config) Palette() annotate.Palette {
	return annotate.DefaultPalette().Merge(c.Colors)
}

// AnnotateOptions returns drawing options derived from the configuration.
func (c *Config) AnnotateOptions() annotate.Options {
	label, _ := annotate.ParseLabelMode(c.Label)
	return annotate.Options{
		Palette:   c.Palette(),
		LineWidth: c.LineWidth,
		FontSize:  c.FontSize,
		Label:     label,
	}
}
