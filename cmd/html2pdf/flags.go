package main

import (
	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// assetFlags holds stylesheet flags.
type assetFlags struct {
	style     string // Name, path, or CSS text for the base stylesheet
	assetPath string // Override asset directory
	noStyle   bool   // Disable the base stylesheet
}

// logFlags holds structured logging flags.
type logFlags struct {
	level  string
	format string
	file   string
}

// convertFlags holds all flags for the convert command.
type convertFlags struct {
	common   commonFlags
	output   string
	workers  int
	baseDir  string
	fontsDir string
	css      string // Extra CSS file applied after the base stylesheet
	html     bool   // Write the rendered HTML alongside the PDF
	assets   assetFlags
	log      logFlags
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show timing and debug logs")
}

// addAssetFlags adds stylesheet flags to a FlagSet.
func addAssetFlags(fs *flag.FlagSet, f *assetFlags) {
	fs.StringVar(&f.style, "style", "", "base style name, CSS file path, or CSS text")
	fs.StringVar(&f.assetPath, "asset-path", "", "custom asset directory")
	fs.BoolVar(&f.noStyle, "no-style", false, "disable the base stylesheet")
}

// addLogFlags adds logging flags to a FlagSet.
func addLogFlags(fs *flag.FlagSet, f *logFlags) {
	fs.StringVar(&f.level, "log-level", "", "log level: debug, info, warn, error")
	fs.StringVar(&f.format, "log-format", "", "log format: console, json")
	fs.StringVar(&f.file, "log-file", "", "also write JSON logs to a rotating file")
}

// newConvertFlagSet registers every convert flag on a new FlagSet bound to f.
// Parsing and shell completion share it.
func newConvertFlagSet(f *convertFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)

	// I/O flags
	fs.StringVarP(&f.output, "output", "o", "", "output file or directory")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	fs.StringVar(&f.baseDir, "base-dir", "", "anchor for relative stylesheet and image paths")
	fs.StringVar(&f.fontsDir, "fonts-dir", "", "directory of {family}.ttf files")
	fs.StringVar(&f.css, "css", "", "extra CSS file")
	fs.BoolVar(&f.html, "html", false, "write rendered HTML alongside PDF")

	// Flag groups
	addCommonFlags(fs, &f.common)
	addAssetFlags(fs, &f.assets)
	addLogFlags(fs, &f.log)

	return fs
}

// parseConvertFlags parses convert command flags and returns positional args.
func parseConvertFlags(args []string, env *Environment) (*convertFlags, []string, error) {
	f := &convertFlags{}
	fs := newConvertFlagSet(f)
	fs.SetOutput(env.Stderr)
	fs.Usage = func() { printConvertUsage(env.Stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}
