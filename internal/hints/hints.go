// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"strings"
)

// ForConfigNotFound suggests --config or creating a file in the user config directory.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(filepathSlash(p), "/go-html2pdf/") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForStyleNotFound lists the available style names.
func ForStyleNotFound(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + strings.Join(available, ", "))
}

// ForAssetPath explains the expected custom asset layout.
func ForAssetPath() string {
	return format("--asset-path must be a directory containing styles/{name}.css")
}

// ForNoInput explains how the default input is chosen.
func ForNoInput() string {
	return format("pass an .html or .md file or directory, or create input.html in the working directory")
}

// ForFonts explains where custom font families are looked up.
func ForFonts(dir string) string {
	if dir == "" {
		dir = "fonts"
	}
	return format("custom families load from " + dir + "/<family>.ttf; set --fonts-dir to change it")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

func filepathSlash(p string) string {
	return strings.ReplaceAll(p, "\\", "/")
}
