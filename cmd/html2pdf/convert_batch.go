package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	html2pdf "github.com/alnah/go-html2pdf"
	"github.com/alnah/go-html2pdf/internal/fileutil"
)

// filePermissions is rw-r--r--: owner read+write, others read.
const filePermissions = 0o644

// Sentinel errors for batch operations.
var (
	ErrNoInput   = errors.New("no input specified")
	ErrReadCSS   = errors.New("failed to read CSS file")
	ErrReadInput = errors.New("failed to read input file")
	ErrWritePDF  = errors.New("failed to write PDF file")
	ErrUsage     = errors.New("invalid usage")
)

// CLIConverter is the interface for the conversion service.
type CLIConverter interface {
	Convert(ctx context.Context, input html2pdf.Input) (*html2pdf.ConvertResult, error)
}

// Compile-time interface implementation check.
var _ CLIConverter = (*html2pdf.Converter)(nil)

// conversionParams groups parameters shared across batch/file conversion.
type conversionParams struct {
	css        string
	baseDir    string // empty = each file's own directory
	htmlOutput bool
}

// ConversionResult holds the outcome of a single conversion.
type ConversionResult struct {
	InputPath  string
	OutputPath string
	Err        error
	Duration   time.Duration
}

// convertBatch converts files with at most workers running at once. A
// failed file does not stop the others; a canceled context does.
func convertBatch(ctx context.Context, conv CLIConverter, workers int, files []FileToConvert, params *conversionParams, logger *zap.Logger) []ConversionResult {
	if len(files) == 0 {
		return nil
	}

	results := make([]ConversionResult, len(files))

	var g errgroup.Group
	g.SetLimit(max(1, min(workers, len(files))))

	for i, f := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i] = ConversionResult{InputPath: f.InputPath, Err: err}
				return nil
			}
			results[i] = convertFile(ctx, conv, f, params)
			if results[i].Err != nil {
				logger.Debug("conversion failed", zap.String("input", f.InputPath), zap.Error(results[i].Err))
			} else {
				logger.Debug("conversion done",
					zap.String("input", f.InputPath),
					zap.String("output", results[i].OutputPath),
					zap.Duration("duration", results[i].Duration))
			}
			return nil
		})
	}

	_ = g.Wait()
	return results
}

// convertFile processes a single file and returns the result.
func convertFile(ctx context.Context, conv CLIConverter, f FileToConvert, params *conversionParams) ConversionResult {
	start := time.Now()
	result := ConversionResult{
		InputPath:  f.InputPath,
		OutputPath: f.OutputPath,
	}
	fail := func(err error) ConversionResult {
		result.Err = err
		result.Duration = time.Since(start)
		return result
	}

	content, err := os.ReadFile(f.InputPath) // #nosec G304 -- discovered path
	if err != nil {
		return fail(fmt.Errorf("%w: %v", ErrReadInput, err))
	}

	input := html2pdf.Input{
		CSS:     params.css,
		BaseDir: params.baseDir,
	}
	if input.BaseDir == "" {
		input.BaseDir = filepath.Dir(f.InputPath)
	}
	if f.Kind == kindMarkdown {
		input.Markdown = string(content)
	} else {
		input.HTML = string(content)
	}

	convResult, err := conv.Convert(ctx, input)
	if err != nil {
		return fail(err)
	}

	if params.htmlOutput {
		if err := fileutil.WriteAtomic(htmlOutputPath(f.OutputPath), convResult.HTML, filePermissions); err != nil {
			return fail(fmt.Errorf("failed to write HTML file: %w", err))
		}
	}

	if err := fileutil.WriteAtomic(f.OutputPath, convResult.PDF, filePermissions); err != nil {
		return fail(fmt.Errorf("%w: %v", ErrWritePDF, err))
	}

	result.Duration = time.Since(start)
	return result
}

// ResultSummary holds the count of succeeded and failed conversions.
type ResultSummary struct {
	Succeeded int
	Failed    int
}

// countResults tallies succeeded and failed conversions.
func countResults(results []ConversionResult) ResultSummary {
	var summary ResultSummary
	for _, r := range results {
		if r.Err != nil {
			summary.Failed++
		} else {
			summary.Succeeded++
		}
	}
	return summary
}

// printResults outputs conversion results and returns the failure count.
func printResults(results []ConversionResult, quiet, verbose bool, env *Environment) int {
	summary := countResults(results)

	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(env.Stderr, "FAILED %s: %v\n", r.InputPath, r.Err)
			continue
		}

		if quiet {
			continue
		}

		if verbose {
			fmt.Fprintf(env.Stdout, "%s -> %s (%v)\n", r.InputPath, r.OutputPath, r.Duration.Round(time.Millisecond))
		} else {
			fmt.Fprintf(env.Stdout, "Created %s\n", r.OutputPath)
		}
	}

	if !quiet && len(results) > 1 {
		fmt.Fprintf(env.Stdout, "\n%d succeeded, %d failed\n", summary.Succeeded, summary.Failed)
	}

	return summary.Failed
}
