package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	html2pdf "github.com/alnah/go-html2pdf"
	"github.com/alnah/go-html2pdf/internal/assets"
	"github.com/alnah/go-html2pdf/internal/config"
	"github.com/alnah/go-html2pdf/internal/hints"
	"github.com/alnah/go-html2pdf/internal/logging"
)

// runConvert orchestrates the conversion process.
func runConvert(ctx context.Context, positionalArgs []string, flags *convertFlags, env *Environment) error {
	start := env.Now()

	// Validate worker count early
	if err := validateWorkers(flags.workers); err != nil {
		return err
	}

	envCfg := loadEnvConfig(env.Getenv)
	warnUnknownEnvVars(env.Stderr, env.Environ())

	cfg, err := loadConfig(flags.common.config, envCfg.ConfigPath, env)
	if err != nil {
		return err
	}

	// Precedence: flags > file > env > defaults
	applyEnvConfig(envCfg, cfg)
	mergeFlags(flags, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := buildLogger(cfg.Log, flags.common, env)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	inputPath, outputDir, err := resolveInput(positionalArgs, flags.output, cfg)
	if err != nil {
		return err
	}

	files, err := discoverFiles(inputPath, outputDir)
	if err != nil {
		return fmt.Errorf("discovering files: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("%w: no HTML or Markdown files found in %s", ErrNoInput, inputPath)
	}

	userCSS, err := readCSSFile(flags.css)
	if err != nil {
		return err
	}

	if dir := cfg.Fonts.Dir; dir != "" {
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			fmt.Fprintf(env.Stderr, "warning: fonts directory %s not found%s\n", dir, hints.ForFonts(dir))
		}
	}

	conv, err := html2pdf.NewConverter(converterOptions(cfg, flags.assets.noStyle, logger)...)
	if err != nil {
		return err
	}

	workers := html2pdf.ResolveWorkers(cfg.Workers)
	logger.Info("converting",
		zap.String("input", inputPath),
		zap.Int("files", len(files)),
		zap.Int("workers", workers))

	params := &conversionParams{
		css:        userCSS,
		baseDir:    cfg.Input.BaseDir,
		htmlOutput: flags.html,
	}
	results := convertBatch(ctx, conv, workers, files, params, logger)

	failedCount := printResults(results, flags.common.quiet, flags.common.verbose, env)
	if flags.common.verbose {
		fmt.Fprintf(env.Stdout, "Total: %v\n", env.Now().Sub(start).Round(time.Millisecond))
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if failedCount > 0 {
		return fmt.Errorf("%d conversion(s) failed", failedCount)
	}

	return nil
}

// loadConfig loads the config named by the flag, else by HTML2PDF_CONFIG,
// else returns a copy of the environment default.
func loadConfig(flagName, envName string, env *Environment) (*config.Config, error) {
	name := flagName
	if name == "" {
		name = envName
	}
	if name == "" {
		cfg := *env.Config
		return &cfg, nil
	}

	cfg, err := config.LoadConfig(name)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// mergeFlags merges CLI flags into config. CLI values override config values.
func mergeFlags(flags *convertFlags, cfg *config.Config) {
	if flags.workers > 0 {
		cfg.Workers = flags.workers
	}
	if flags.baseDir != "" {
		cfg.Input.BaseDir = flags.baseDir
	}
	if flags.fontsDir != "" {
		cfg.Fonts.Dir = flags.fontsDir
	}
	if flags.assets.style != "" {
		cfg.CSS.Style = flags.assets.style
	}
	if flags.assets.assetPath != "" {
		cfg.Assets.BasePath = flags.assets.assetPath
	}
	if flags.log.level != "" {
		cfg.Log.Level = flags.log.level
	}
	if flags.log.format != "" {
		cfg.Log.Format = flags.log.format
	}
	if flags.log.file != "" {
		cfg.Log.File = flags.log.file
	}

	// --verbose and --quiet are shorthands for a level.
	switch {
	case flags.common.verbose:
		cfg.Log.Level = "debug"
	case flags.common.quiet:
		cfg.Log.Level = "error"
	}
}

// buildLogger creates the zap logger writing to stderr and, when
// configured, a rotating file.
func buildLogger(cfg config.LogConfig, common commonFlags, env *Environment) (*zap.Logger, error) {
	logger, err := logging.New(cfg, zapcore.AddSync(env.Stderr))
	if err != nil {
		return nil, err
	}
	if common.verbose {
		logger.Debug("logger ready", zap.String("level", cfg.Level), zap.String("file", cfg.File))
	}
	return logger, nil
}

// converterOptions maps configuration to library options. The built-in
// default style applies unless a style is configured or noStyle is set.
func converterOptions(cfg *config.Config, noStyle bool, logger *zap.Logger) []html2pdf.Option {
	opts := []html2pdf.Option{
		html2pdf.WithLogger(logger),
		html2pdf.WithFontDir(cfg.Fonts.Dir),
	}
	if cfg.Assets.BasePath != "" {
		opts = append(opts, html2pdf.WithAssetPath(cfg.Assets.BasePath))
	}
	if !noStyle {
		style := cfg.CSS.Style
		if style == "" {
			style = assets.DefaultStyleName
		}
		opts = append(opts, html2pdf.WithStyle(style))
	}
	return opts
}

// readCSSFile reads the --css file. An empty path means no extra CSS.
func readCSSFile(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	content, err := os.ReadFile(path) // #nosec G304 -- user-provided path
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrReadCSS, err)
	}
	return string(content), nil
}

// hintFor returns an actionable hint for common failures, or "".
func hintFor(err error) string {
	switch {
	case errors.Is(err, ErrNoInput):
		return hints.ForNoInput()
	case errors.Is(err, html2pdf.ErrStyleNotFound):
		return hints.ForStyleNotFound(assets.NewEmbeddedLoader().StyleNames())
	case errors.Is(err, html2pdf.ErrInvalidAssetPath):
		return hints.ForAssetPath()
	case errors.Is(err, ErrWritePDF):
		return hints.ForOutputDirectory()
	case errors.Is(err, config.ErrConfigNotFound):
		return hints.ForConfigNotFound(config.SearchPaths("html2pdf"))
	}
	return ""
}
