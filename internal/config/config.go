// Package config loads and validates the YAML configuration used by the CLI.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-html2pdf/internal/fileutil"
	"github.com/alnah/go-html2pdf/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Field limits.
const (
	MaxPathLength  = 4096
	MaxStyleLength = 1 << 16 // inline CSS is accepted as a style
	MaxWorkers     = 32
	MaxLogSizeMB   = 1024
)

// Log level and format values accepted in configuration.
const (
	LogFormatConsole = "console"
	LogFormatJSON    = "json"
)

// Config holds all configuration for document generation.
type Config struct {
	Input   InputConfig  `yaml:"input"`
	Output  OutputConfig `yaml:"output"`
	CSS     CSSConfig    `yaml:"css"`
	Assets  AssetsConfig `yaml:"assets"`
	Fonts   FontsConfig  `yaml:"fonts"`
	Log     LogConfig    `yaml:"log"`
	Workers int          `yaml:"workers"` // 0 = auto
}

// InputConfig defines input source options.
type InputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Empty = input.html in the working directory
	BaseDir    string `yaml:"baseDir"`    // Anchor for relative stylesheet and image paths
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Empty = "output" for the default input
}

// CSSConfig defines base stylesheet options.
type CSSConfig struct {
	Style string `yaml:"style"` // Style name, CSS file path, or CSS text
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // Empty = embedded styles only
}

// FontsConfig defines where custom TrueType families are looked up.
type FontsConfig struct {
	Dir string `yaml:"dir"` // Empty = "fonts"
}

// LogConfig defines structured logging options.
type LogConfig struct {
	Level      string `yaml:"level"`  // debug, info, warn, error (default: warn)
	Format     string `yaml:"format"` // console, json (default: console)
	File       string `yaml:"file"`   // Optional rotating log file
	MaxSizeMB  int    `yaml:"maxSizeMB"`
	MaxBackups int    `yaml:"maxBackups"`
	MaxAgeDays int    `yaml:"maxAgeDays"`
	Compress   bool   `yaml:"compress"`
}

// Validate checks value ranges and field lengths.
// Called by LoadConfig, and by callers that build a Config by hand.
func (c *Config) Validate() error {
	paths := []struct {
		name, value string
	}{
		{"input.defaultDir", c.Input.DefaultDir},
		{"input.baseDir", c.Input.BaseDir},
		{"output.defaultDir", c.Output.DefaultDir},
		{"assets.basePath", c.Assets.BasePath},
		{"fonts.dir", c.Fonts.Dir},
		{"log.file", c.Log.File},
	}
	for _, p := range paths {
		if err := validateFieldLength(p.name, p.value, MaxPathLength); err != nil {
			return err
		}
	}
	if err := validateFieldLength("css.style", c.CSS.Style, MaxStyleLength); err != nil {
		return err
	}

	if c.Workers < 0 || c.Workers > MaxWorkers {
		return fmt.Errorf("%w: workers must be between 0 and %d, got %d", ErrInvalidValue, MaxWorkers, c.Workers)
	}

	switch strings.ToLower(c.Log.Level) {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: log.level %q (must be debug, info, warn, or error)", ErrInvalidValue, c.Log.Level)
	}
	switch strings.ToLower(c.Log.Format) {
	case "", LogFormatConsole, LogFormatJSON:
	default:
		return fmt.Errorf("%w: log.format %q (must be console or json)", ErrInvalidValue, c.Log.Format)
	}
	if c.Log.MaxSizeMB < 0 || c.Log.MaxSizeMB > MaxLogSizeMB {
		return fmt.Errorf("%w: log.maxSizeMB must be between 0 and %d, got %d", ErrInvalidValue, MaxLogSizeMB, c.Log.MaxSizeMB)
	}
	if c.Log.MaxBackups < 0 {
		return fmt.Errorf("%w: log.maxBackups must not be negative", ErrInvalidValue)
	}
	if c.Log.MaxAgeDays < 0 {
		return fmt.Errorf("%w: log.maxAgeDays must not be negative", ErrInvalidValue)
	}

	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns the configuration used when no file is given.
// Empty log level and format mean warn and console, so environment
// overrides can tell them apart from values set in a file.
func DefaultConfig() *Config {
	return &Config{}
}

// LoadConfig loads configuration from a file path or config name.
// A value containing a path separator is read as a file; anything else is
// searched by name in standard locations. Missing files are an error.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !fileutil.IsFilePath(nameOrPath) {
		var err error
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// SearchPaths lists the candidate files for a config name, in lookup order:
// the current directory, then the user config directory.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)
	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, "go-html2pdf", name+ext))
		}
	}
	return paths
}

// resolveConfigPath returns the first existing file among SearchPaths(name).
func resolveConfigPath(name string) (string, error) {
	tried := SearchPaths(name)
	for _, p := range tried {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(tried, ", "))
}
