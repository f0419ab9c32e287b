package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/alnah/go-html2pdf/internal/config"
)

const envPrefix = "HTML2PDF_"

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string // HTML2PDF_CONFIG: config file name or path
	Style      string // HTML2PDF_STYLE: base style name, path, or CSS
	AssetPath  string // HTML2PDF_ASSET_PATH: custom asset directory
	FontsDir   string // HTML2PDF_FONTS_DIR: custom font directory
	InputDir   string // HTML2PDF_INPUT_DIR: default input directory
	OutputDir  string // HTML2PDF_OUTPUT_DIR: default output directory
	BaseDir    string // HTML2PDF_BASE_DIR: anchor for relative paths
	Workers    int    // HTML2PDF_WORKERS: parallel workers
	LogLevel   string // HTML2PDF_LOG_LEVEL
	LogFormat  string // HTML2PDF_LOG_FORMAT
	LogFile    string // HTML2PDF_LOG_FILE
}

// knownEnvVars lists valid HTML2PDF_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"HTML2PDF_CONFIG":     true,
	"HTML2PDF_STYLE":      true,
	"HTML2PDF_ASSET_PATH": true,
	"HTML2PDF_FONTS_DIR":  true,
	"HTML2PDF_INPUT_DIR":  true,
	"HTML2PDF_OUTPUT_DIR": true,
	"HTML2PDF_BASE_DIR":   true,
	"HTML2PDF_WORKERS":    true,
	"HTML2PDF_LOG_LEVEL":  true,
	"HTML2PDF_LOG_FORMAT": true,
	"HTML2PDF_LOG_FILE":   true,
	"HTML2PDF_CONTAINER":  true, // read by doctor
}

// loadEnvConfig reads configuration from environment variables.
func loadEnvConfig(getenv func(string) string) *envConfig {
	cfg := &envConfig{
		ConfigPath: getenv("HTML2PDF_CONFIG"),
		Style:      getenv("HTML2PDF_STYLE"),
		AssetPath:  getenv("HTML2PDF_ASSET_PATH"),
		FontsDir:   getenv("HTML2PDF_FONTS_DIR"),
		InputDir:   getenv("HTML2PDF_INPUT_DIR"),
		OutputDir:  getenv("HTML2PDF_OUTPUT_DIR"),
		BaseDir:    getenv("HTML2PDF_BASE_DIR"),
		LogLevel:   getenv("HTML2PDF_LOG_LEVEL"),
		LogFormat:  getenv("HTML2PDF_LOG_FORMAT"),
		LogFile:    getenv("HTML2PDF_LOG_FILE"),
	}

	// Unparseable or non-positive values are ignored.
	if workers := getenv("HTML2PDF_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	return cfg
}

// warnUnknownEnvVars writes a warning for each unrecognized HTML2PDF_*
// variable in environ. Helps catch typos like HTML2PDF_FONT_DIR.
func warnUnknownEnvVars(w io.Writer, environ []string) {
	for _, env := range environ {
		if !strings.HasPrefix(env, envPrefix) {
			continue
		}
		name, _, _ := strings.Cut(env, "=")
		if !knownEnvVars[name] {
			fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
		}
	}
}

// applyEnvConfig applies environment variable values to config.
// Only sets values if the env var is set AND the config value is empty/zero,
// so a config file wins over env vars and env vars fill its gaps.
// CLI flags are applied later via mergeFlags: flags > file > env > defaults.
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	setIfEmpty(&cfg.CSS.Style, env.Style)
	setIfEmpty(&cfg.Assets.BasePath, env.AssetPath)
	setIfEmpty(&cfg.Fonts.Dir, env.FontsDir)
	setIfEmpty(&cfg.Input.DefaultDir, env.InputDir)
	setIfEmpty(&cfg.Output.DefaultDir, env.OutputDir)
	setIfEmpty(&cfg.Input.BaseDir, env.BaseDir)
	setIfEmpty(&cfg.Log.File, env.LogFile)
	setIfEmpty(&cfg.Log.Level, env.LogLevel)
	setIfEmpty(&cfg.Log.Format, env.LogFormat)
	if env.Workers > 0 && cfg.Workers == 0 {
		cfg.Workers = env.Workers
	}
}

func setIfEmpty(dst *string, value string) {
	if value != "" && *dst == "" {
		*dst = value
	}
}
