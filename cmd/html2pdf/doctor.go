package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-html2pdf/internal/assets"
	"github.com/alnah/go-html2pdf/internal/fonts"
)

// doctorFlags holds flags for the doctor command.
type doctorFlags struct {
	json      bool
	fontsDir  string
	assetPath string
}

// doctorResult holds all diagnostic information.
type doctorResult struct {
	Status   string     `json:"status"` // "ready", "warnings", "errors"
	Fonts    fontsInfo  `json:"fonts"`
	Styles   stylesInfo `json:"styles"`
	Env      envInfo    `json:"environment"`
	System   systemInfo `json:"system"`
	Warnings []string   `json:"warnings,omitempty"`
	Errors   []string   `json:"errors,omitempty"`
}

// fontsInfo describes the custom font directory.
type fontsInfo struct {
	Dir      string   `json:"dir"`
	Found    bool     `json:"found"`
	Families []string `json:"families,omitempty"`
}

// stylesInfo lists the stylesheets a --style name can select.
type stylesInfo struct {
	Embedded  []string `json:"embedded"`
	AssetPath string   `json:"asset_path,omitempty"`
	Custom    []string `json:"custom,omitempty"`
}

// envInfo holds environment detection results.
type envInfo struct {
	OS            string `json:"os"`
	Arch          string `json:"arch"`
	CPUs          int    `json:"cpus"`
	Container     bool   `json:"container"`
	ContainerHint string `json:"container_hint,omitempty"`
	CI            bool   `json:"ci"`
}

// systemInfo holds system check results.
type systemInfo struct {
	TempWritable bool `json:"temp_writable"`
}

func newDoctorFlagSet(f *doctorFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("doctor", flag.ContinueOnError)
	fs.BoolVar(&f.json, "json", false, "print results as JSON")
	fs.StringVar(&f.fontsDir, "fonts-dir", "", "directory of {family}.ttf files")
	fs.StringVar(&f.assetPath, "asset-path", "", "custom asset directory")
	return fs
}

// runDoctorCmd executes the doctor command and returns an exit code.
// Exit codes: 0 = OK (including warnings), 1 = errors found.
func runDoctorCmd(args []string, env *Environment) int {
	f := &doctorFlags{}
	fs := newDoctorFlagSet(f)
	fs.SetOutput(env.Stderr)
	fs.Usage = func() { printDoctorUsage(env.Stderr) }
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitSuccess
		}
		return ExitUsage
	}

	if f.fontsDir == "" {
		f.fontsDir = env.Getenv(envPrefix + "FONTS_DIR")
	}
	if f.assetPath == "" {
		f.assetPath = env.Getenv(envPrefix + "ASSET_PATH")
	}

	result := runDoctor(f, env)

	if f.json {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(result)
	} else {
		printDoctorResult(env.Stdout, result)
	}

	if result.Status == "errors" {
		return ExitGeneral
	}
	return ExitSuccess
}

// runDoctor performs all diagnostic checks.
func runDoctor(f *doctorFlags, env *Environment) *doctorResult {
	result := &doctorResult{
		Status: "ready",
		Env: envInfo{
			OS:   runtime.GOOS,
			Arch: runtime.GOARCH,
			CPUs: runtime.GOMAXPROCS(0),
		},
	}

	checkFonts(result, f.fontsDir)
	checkStyles(result, f.assetPath)
	checkEnvironment(result, env.Getenv)
	checkSystem(result)

	if len(result.Errors) > 0 {
		result.Status = "errors"
	} else if len(result.Warnings) > 0 {
		result.Status = "warnings"
	}

	return result
}

// checkFonts loads every font file in dir. A missing directory is only a
// warning: text then renders with the standard fonts.
func checkFonts(result *doctorResult, dir string) {
	if dir == "" {
		dir = fonts.DefaultDir
	}
	result.Fonts.Dir = dir

	entries, err := os.ReadDir(dir)
	if err != nil {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Fonts directory %s not found; custom families fall back to Helvetica", dir))
		return
	}
	result.Fonts.Found = true

	resolver := fonts.NewDirResolver(dir)
	for _, e := range entries {
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if e.IsDir() || (ext != ".ttf" && ext != ".otf") {
			continue
		}
		family := strings.TrimSuffix(e.Name(), filepath.Ext(e.Name()))
		if _, err := resolver.Resolve(family); err != nil {
			result.Warnings = append(result.Warnings, fmt.Sprintf("Font %s unusable: %v", e.Name(), err))
			continue
		}
		result.Fonts.Families = append(result.Fonts.Families, family)
	}
	sort.Strings(result.Fonts.Families)
}

// checkStyles lists embedded styles and validates the custom asset path.
func checkStyles(result *doctorResult, assetPath string) {
	result.Styles.Embedded = assets.NewEmbeddedLoader().StyleNames()
	if assetPath == "" {
		return
	}
	result.Styles.AssetPath = assetPath

	if _, err := assets.NewAssetResolver(assetPath); err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Asset path unusable: %v", err))
		return
	}

	matches, _ := filepath.Glob(filepath.Join(assetPath, "styles", "*.css"))
	for _, m := range matches {
		result.Styles.Custom = append(result.Styles.Custom, strings.TrimSuffix(filepath.Base(m), ".css"))
	}
	if len(result.Styles.Custom) == 0 {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("No styles/*.css under %s; embedded styles are used", assetPath))
	}
}

// checkEnvironment detects container and CI environments.
func checkEnvironment(result *doctorResult, getenv func(string) string) {
	result.Env.Container, result.Env.ContainerHint = isContainer(getenv)

	for _, v := range []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "CIRCLECI"} {
		if getenv(v) != "" {
			result.Env.CI = true
			break
		}
	}
}

// isContainer detects if running in a container environment.
// Returns (isContainer, hint) where hint indicates which signal was detected.
func isContainer(getenv func(string) string) (bool, string) {
	if getenv(envPrefix+"CONTAINER") == "1" {
		return true, envPrefix + "CONTAINER=1"
	}
	if _, err := os.Stat("/.dockerenv"); err == nil {
		return true, "/.dockerenv"
	}
	if v := getenv("container"); v != "" {
		return true, "container=" + v
	}
	if getenv("KUBERNETES_SERVICE_HOST") != "" {
		return true, "KUBERNETES_SERVICE_HOST"
	}
	return false, ""
}

// checkSystem verifies the temp directory used for atomic writes.
func checkSystem(result *doctorResult) {
	f, err := os.CreateTemp("", "html2pdf-doctor-*")
	if err != nil {
		result.Errors = append(result.Errors,
			fmt.Sprintf("Temp directory not writable: %s", os.TempDir()))
		return
	}
	name := f.Name()
	_ = f.Close()
	_ = os.Remove(name)
	result.System.TempWritable = true
}

// printDoctorResult outputs human-readable diagnostic results.
func printDoctorResult(w io.Writer, r *doctorResult) {
	fmt.Fprintln(w, "html2pdf doctor")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Fonts")
	if r.Fonts.Found {
		fmt.Fprintf(w, "  [OK] Directory: %s\n", r.Fonts.Dir)
		if len(r.Fonts.Families) > 0 {
			fmt.Fprintf(w, "  [OK] Families: %s\n", strings.Join(r.Fonts.Families, ", "))
		}
	} else {
		fmt.Fprintf(w, "  [WARN] Directory: %s (missing)\n", r.Fonts.Dir)
	}
	fmt.Fprintln(w, "  [OK] Standard: Helvetica, Times-Roman, Courier")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Styles")
	fmt.Fprintf(w, "  [OK] Embedded: %s\n", strings.Join(r.Styles.Embedded, ", "))
	if r.Styles.AssetPath != "" {
		fmt.Fprintf(w, "  [OK] Asset path: %s\n", r.Styles.AssetPath)
		if len(r.Styles.Custom) > 0 {
			fmt.Fprintf(w, "  [OK] Custom: %s\n", strings.Join(r.Styles.Custom, ", "))
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Environment")
	fmt.Fprintf(w, "  [OK] Platform: %s/%s (%d CPUs)\n", r.Env.OS, r.Env.Arch, r.Env.CPUs)
	if r.Env.Container {
		fmt.Fprintf(w, "  [OK] Container: detected (%s)\n", r.Env.ContainerHint)
	}
	if r.Env.CI {
		fmt.Fprintln(w, "  [OK] CI: detected")
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "System")
	if r.System.TempWritable {
		fmt.Fprintln(w, "  [OK] Temp directory: writable")
	} else {
		fmt.Fprintln(w, "  [ERROR] Temp directory: not writable")
	}
	fmt.Fprintln(w)

	if len(r.Warnings) > 0 {
		fmt.Fprintln(w, "Warnings:")
		for _, warn := range r.Warnings {
			fmt.Fprintf(w, "  [WARN] %s\n", warn)
		}
		fmt.Fprintln(w)
	}

	if len(r.Errors) > 0 {
		fmt.Fprintln(w, "Errors:")
		for _, err := range r.Errors {
			fmt.Fprintf(w, "  [ERROR] %s\n", err)
		}
		fmt.Fprintln(w)
	}

	switch r.Status {
	case "ready":
		fmt.Fprintln(w, "Status: Ready to convert")
	case "warnings":
		fmt.Fprintln(w, "Status: Ready with warnings")
	case "errors":
		fmt.Fprintln(w, "Status: Not ready (see errors above)")
	}
}

func printDoctorUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: html2pdf doctor [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Check fonts, styles and system setup.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "      --json                Print results as JSON")
	fmt.Fprintln(w, "      --fonts-dir <dir>     Directory of {family}.ttf files (default: fonts)")
	fmt.Fprintln(w, "      --asset-path <dir>    Custom asset directory")
}
