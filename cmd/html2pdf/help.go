package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: html2pdf <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  convert     Convert HTML or Markdown files to PDF")
	fmt.Fprintln(w, "  doctor      Check fonts, styles and system setup")
	fmt.Fprintln(w, "  completion  Generate shell completion script")
	fmt.Fprintln(w, "  version     Show version information")
	fmt.Fprintln(w, "  help        Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'html2pdf help <command>' for details on a specific command.")
}

// printConvertUsage prints usage for the convert command.
func printConvertUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: html2pdf convert [input] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render HTML or Markdown files onto a single A4 PDF page each.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    .html, .htm, .md or .markdown file, or a directory")
	fmt.Fprintln(w, "           (default: input.defaultDir, else input.html -> output/output.pdf)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <path>       Output file or directory")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel workers (0 = auto)")
	fmt.Fprintln(w, "      --base-dir <dir>      Anchor for relative stylesheet and image paths")
	fmt.Fprintln(w, "      --html                Write rendered HTML alongside PDF")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Styling:")
	fmt.Fprintln(w, "      --style <s>           Base style name, CSS file path, or CSS text")
	fmt.Fprintln(w, "      --asset-path <dir>    Directory with styles/{name}.css overrides")
	fmt.Fprintln(w, "      --css <path>          Extra CSS file")
	fmt.Fprintln(w, "      --no-style            Disable the base stylesheet")
	fmt.Fprintln(w, "      --fonts-dir <dir>     Directory of {family}.ttf files (default: fonts)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Logging:")
	fmt.Fprintln(w, "      --log-level <s>       debug, info, warn, error (default: warn)")
	fmt.Fprintln(w, "      --log-format <s>      console, json (default: console)")
	fmt.Fprintln(w, "      --log-file <path>     Also write JSON logs to a rotating file")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show timing and debug logs")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  HTML2PDF_CONFIG, HTML2PDF_STYLE, HTML2PDF_ASSET_PATH, HTML2PDF_FONTS_DIR,")
	fmt.Fprintln(w, "  HTML2PDF_INPUT_DIR, HTML2PDF_OUTPUT_DIR, HTML2PDF_BASE_DIR, HTML2PDF_WORKERS,")
	fmt.Fprintln(w, "  HTML2PDF_LOG_LEVEL, HTML2PDF_LOG_FORMAT, HTML2PDF_LOG_FILE")
}

// runHelp prints help for a specific command and returns the exit code.
func runHelp(args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return ExitSuccess
	}

	switch args[0] {
	case "convert":
		printConvertUsage(env.Stdout)
	case "doctor":
		printDoctorUsage(env.Stdout)
	case "completion":
		printCompletionUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: html2pdf version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: html2pdf help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
		return ExitUsage
	}
	return ExitSuccess
}
