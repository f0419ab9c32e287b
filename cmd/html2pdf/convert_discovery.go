package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-html2pdf/internal/config"
)

// Sentinel errors for file discovery.
var (
	ErrInvalidExtension   = errors.New("file must have .html, .htm, .md or .markdown extension")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
)

// Default input and output used when nothing else is configured.
const (
	defaultInputFile  = "input.html"
	defaultOutputFile = "output/output.pdf"
)

// inputKind tells how a file's content is passed to the converter.
type inputKind int

const (
	kindHTML inputKind = iota
	kindMarkdown
)

// FileToConvert represents a single file to process.
type FileToConvert struct {
	InputPath  string
	OutputPath string
	Kind       inputKind
}

// kindOf returns the input kind for a path by extension.
func kindOf(path string) (inputKind, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		return kindHTML, true
	case ".md", ".markdown":
		return kindMarkdown, true
	}
	return 0, false
}

// resolveInput picks the input path and output target.
// Priority: positional argument > config input.defaultDir > input.html in
// the working directory (rendered to output/output.pdf unless an output is
// set).
func resolveInput(positional []string, outputFlag string, cfg *config.Config) (input, output string, err error) {
	output = outputFlag
	if output == "" {
		output = cfg.Output.DefaultDir
	}

	switch {
	case len(positional) > 0:
		return positional[0], output, nil
	case cfg.Input.DefaultDir != "":
		return cfg.Input.DefaultDir, output, nil
	}

	if _, err := os.Stat(defaultInputFile); err != nil {
		return "", "", ErrNoInput
	}
	if output == "" {
		output = defaultOutputFile
	}
	return defaultInputFile, output, nil
}

// discoverFiles finds all HTML and Markdown files to convert.
func discoverFiles(inputPath, outputDir string) ([]FileToConvert, error) {
	info, err := os.Stat(inputPath)
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		kind, ok := kindOf(inputPath)
		if !ok {
			return nil, fmt.Errorf("%w: got %q", ErrInvalidExtension, filepath.Ext(inputPath))
		}
		outPath := resolveOutputPath(inputPath, outputDir, "")
		return []FileToConvert{{InputPath: inputPath, OutputPath: outPath, Kind: kind}}, nil
	}

	var files []FileToConvert
	err = filepath.WalkDir(inputPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("scanning %s: %w", path, err)
		}
		if d.IsDir() {
			return nil
		}
		kind, ok := kindOf(path)
		if !ok {
			return nil
		}
		outPath := resolveOutputPath(path, outputDir, inputPath)
		files = append(files, FileToConvert{InputPath: path, OutputPath: outPath, Kind: kind})
		return nil
	})

	return files, err
}

// resolveOutputPath determines the PDF output path for an input file.
func resolveOutputPath(inputPath, outputDir, baseInputDir string) string {
	ext := filepath.Ext(inputPath)
	base := strings.TrimSuffix(filepath.Base(inputPath), ext)

	if outputDir == "" {
		return filepath.Join(filepath.Dir(inputPath), base+".pdf")
	}

	if strings.HasSuffix(outputDir, ".pdf") {
		return outputDir
	}

	if baseInputDir != "" {
		relPath, err := filepath.Rel(baseInputDir, inputPath)
		if err == nil {
			relDir := filepath.Dir(relPath)
			return filepath.Join(outputDir, relDir, base+".pdf")
		}
	}

	return filepath.Join(outputDir, base+".pdf")
}

// validateWorkers checks that the worker count is within valid bounds.
func validateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d (must be >= 0, 0 means auto)", ErrInvalidWorkerCount, n)
	}
	if n > config.MaxWorkers {
		return fmt.Errorf("%w: %d (maximum is %d)", ErrInvalidWorkerCount, n, config.MaxWorkers)
	}
	return nil
}

// htmlOutputPath returns the HTML path corresponding to a PDF path.
func htmlOutputPath(pdfPath string) string {
	return strings.TrimSuffix(pdfPath, ".pdf") + ".html"
}
