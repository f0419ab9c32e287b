package main

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/alnah/go-html2pdf/internal/config"
)

func TestDiscoverFiles_SingleFile(t *testing.T) {
	t.Parallel()

	dir := setupTestDir(t, map[string]string{
		"page.html": "<p>x</p>",
		"notes.md":  "# x",
		"image.png": "",
	})

	tests := []struct {
		name     string
		input    string
		output   string
		wantOut  string
		wantKind inputKind
		wantErr  error
	}{
		{"html next to input", "page.html", "", "page.pdf", kindHTML, nil},
		{"markdown next to input", "notes.md", "", "notes.pdf", kindMarkdown, nil},
		{"explicit pdf", "page.html", "custom.pdf", "custom.pdf", kindHTML, nil},
		{"output directory", "page.html", "out", filepath.Join("out", "page.pdf"), kindHTML, nil},
		{"wrong extension", "image.png", "", "", 0, ErrInvalidExtension},
		{"missing", "missing.html", "", "", 0, os.ErrNotExist},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			output := tt.output
			if output != "" && output != "custom.pdf" {
				output = filepath.Join(dir, output)
			}
			files, err := discoverFiles(filepath.Join(dir, tt.input), output)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("discoverFiles() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("discoverFiles() error = %v", err)
			}
			if len(files) != 1 {
				t.Fatalf("discoverFiles() = %d files, want 1", len(files))
			}

			want := tt.wantOut
			if tt.output != "custom.pdf" {
				want = filepath.Join(dir, tt.wantOut)
			}
			if files[0].OutputPath != want {
				t.Errorf("OutputPath = %q, want %q", files[0].OutputPath, want)
			}
			if files[0].Kind != tt.wantKind {
				t.Errorf("Kind = %v, want %v", files[0].Kind, tt.wantKind)
			}
		})
	}
}

func TestDiscoverFiles_Directory(t *testing.T) {
	t.Parallel()

	dir := setupTestDir(t, map[string]string{
		"a.html":         "<p>a</p>",
		"b.HTM":          "<p>b</p>",
		"sub/c.md":       "# c",
		"sub/d.markdown": "# d",
		"sub/skip.txt":   "x",
	})
	out := filepath.Join(dir, "out")

	files, err := discoverFiles(dir, out)
	if err != nil {
		t.Fatalf("discoverFiles() error = %v", err)
	}

	var got []string
	for _, f := range files {
		rel, _ := filepath.Rel(out, f.OutputPath)
		got = append(got, filepath.ToSlash(rel))
	}
	sort.Strings(got)

	want := []string{"a.pdf", "b.pdf", "sub/c.pdf", "sub/d.pdf"}
	if len(got) != len(want) {
		t.Fatalf("outputs = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("outputs[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestResolveOutputPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		input        string
		outputDir    string
		baseInputDir string
		want         string
	}{
		{"no output dir", filepath.Join("docs", "a.html"), "", "", filepath.Join("docs", "a.pdf")},
		{"pdf target", "a.md", "report.pdf", "", "report.pdf"},
		{"flat output dir", "a.htm", "out", "", filepath.Join("out", "a.pdf")},
		{"mirrors tree", filepath.Join("docs", "x", "a.html"), "out", "docs", filepath.Join("out", "x", "a.pdf")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := resolveOutputPath(tt.input, tt.outputDir, tt.baseInputDir); got != tt.want {
				t.Errorf("resolveOutputPath() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestResolveInput(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	cfg.Input.DefaultDir = "site"
	cfg.Output.DefaultDir = "dist"

	tests := []struct {
		name       string
		positional []string
		output     string
		cfg        *config.Config
		wantIn     string
		wantOut    string
	}{
		{"positional wins", []string{"page.html"}, "", cfg, "page.html", "dist"},
		{"flag output wins", []string{"page.html"}, "x.pdf", cfg, "page.html", "x.pdf"},
		{"config default dir", nil, "", cfg, "site", "dist"},
		{"positional without config", []string{"a.md"}, "", config.DefaultConfig(), "a.md", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			in, out, err := resolveInput(tt.positional, tt.output, tt.cfg)
			if err != nil {
				t.Fatalf("resolveInput() error = %v", err)
			}
			if in != tt.wantIn || out != tt.wantOut {
				t.Errorf("resolveInput() = (%q, %q), want (%q, %q)", in, out, tt.wantIn, tt.wantOut)
			}
		})
	}
}

// Not parallel: changes the working directory.
func TestResolveInput_DefaultFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	if _, _, err := resolveInput(nil, "", config.DefaultConfig()); !errors.Is(err, ErrNoInput) {
		t.Fatalf("resolveInput() without input.html error = %v, want ErrNoInput", err)
	}

	if err := os.WriteFile(filepath.Join(dir, defaultInputFile), []byte("<p>x</p>"), 0o644); err != nil {
		t.Fatal(err)
	}
	in, out, err := resolveInput(nil, "", config.DefaultConfig())
	if err != nil {
		t.Fatalf("resolveInput() error = %v", err)
	}
	if in != defaultInputFile || out != defaultOutputFile {
		t.Errorf("resolveInput() = (%q, %q), want (%q, %q)", in, out, defaultInputFile, defaultOutputFile)
	}
}

func TestValidateWorkers(t *testing.T) {
	t.Parallel()

	for _, n := range []int{0, 1, config.MaxWorkers} {
		if err := validateWorkers(n); err != nil {
			t.Errorf("validateWorkers(%d) = %v, want nil", n, err)
		}
	}
	for _, n := range []int{-1, config.MaxWorkers + 1} {
		if err := validateWorkers(n); !errors.Is(err, ErrInvalidWorkerCount) {
			t.Errorf("validateWorkers(%d) = %v, want ErrInvalidWorkerCount", n, err)
		}
	}
}

func TestHTMLOutputPath(t *testing.T) {
	t.Parallel()

	if got := htmlOutputPath(filepath.Join("out", "a.pdf")); got != filepath.Join("out", "a.html") {
		t.Errorf("htmlOutputPath() = %q", got)
	}
}
