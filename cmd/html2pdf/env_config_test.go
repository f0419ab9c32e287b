package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/alnah/go-html2pdf/internal/config"
)

func TestLoadEnvConfig(t *testing.T) {
	t.Parallel()

	vars := map[string]string{
		"HTML2PDF_CONFIG":     "work",
		"HTML2PDF_STYLE":      "compact",
		"HTML2PDF_ASSET_PATH": "/assets",
		"HTML2PDF_FONTS_DIR":  "/fonts",
		"HTML2PDF_INPUT_DIR":  "site",
		"HTML2PDF_OUTPUT_DIR": "dist",
		"HTML2PDF_BASE_DIR":   "/base",
		"HTML2PDF_WORKERS":    "4",
		"HTML2PDF_LOG_LEVEL":  "debug",
		"HTML2PDF_LOG_FORMAT": "json",
		"HTML2PDF_LOG_FILE":   "run.log",
	}

	got := loadEnvConfig(func(k string) string { return vars[k] })
	want := envConfig{
		ConfigPath: "work",
		Style:      "compact",
		AssetPath:  "/assets",
		FontsDir:   "/fonts",
		InputDir:   "site",
		OutputDir:  "dist",
		BaseDir:    "/base",
		Workers:    4,
		LogLevel:   "debug",
		LogFormat:  "json",
		LogFile:    "run.log",
	}
	if *got != want {
		t.Errorf("loadEnvConfig() = %+v, want %+v", *got, want)
	}
}

func TestLoadEnvConfig_InvalidWorkers(t *testing.T) {
	t.Parallel()

	for _, v := range []string{"abc", "0", "-2", "1.5"} {
		got := loadEnvConfig(func(k string) string {
			if k == "HTML2PDF_WORKERS" {
				return v
			}
			return ""
		})
		if got.Workers != 0 {
			t.Errorf("HTML2PDF_WORKERS=%q gives Workers = %d, want 0", v, got.Workers)
		}
	}
}

func TestWarnUnknownEnvVars(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	warnUnknownEnvVars(&buf, []string{
		"HTML2PDF_STYLE=compact",
		"HTML2PDF_FONT_DIR=/fonts",
		"HOME=/root",
		"HTML2PDF_EMPTY=",
	})

	out := buf.String()
	if !strings.Contains(out, "HTML2PDF_FONT_DIR") || !strings.Contains(out, "HTML2PDF_EMPTY") {
		t.Errorf("warnings = %q, want typos reported", out)
	}
	if strings.Contains(out, "HTML2PDF_STYLE") || strings.Contains(out, "HOME") {
		t.Errorf("warnings = %q, known and foreign variables should be silent", out)
	}
}

func TestApplyEnvConfig(t *testing.T) {
	t.Parallel()

	env := &envConfig{
		Style:     "compact",
		FontsDir:  "/env-fonts",
		OutputDir: "env-out",
		Workers:   3,
		LogLevel:  "info",
	}

	t.Run("fills empty fields", func(t *testing.T) {
		t.Parallel()

		cfg := config.DefaultConfig()
		applyEnvConfig(env, cfg)

		if cfg.CSS.Style != "compact" || cfg.Fonts.Dir != "/env-fonts" || cfg.Output.DefaultDir != "env-out" {
			t.Errorf("cfg = %+v, want env values", cfg)
		}
		if cfg.Workers != 3 || cfg.Log.Level != "info" {
			t.Errorf("Workers = %d, Log.Level = %q", cfg.Workers, cfg.Log.Level)
		}
	})

	t.Run("file values win", func(t *testing.T) {
		t.Parallel()

		cfg := config.DefaultConfig()
		cfg.CSS.Style = "default"
		cfg.Fonts.Dir = "/file-fonts"
		cfg.Workers = 1
		cfg.Log.Level = "error"
		applyEnvConfig(env, cfg)

		if cfg.CSS.Style != "default" || cfg.Fonts.Dir != "/file-fonts" || cfg.Workers != 1 || cfg.Log.Level != "error" {
			t.Errorf("cfg = %+v, file values should be kept", cfg)
		}
	})
}
