package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: docx2pdf [command] [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  convert    Convert a DOCX file to PDF (default)")
	fmt.Fprintln(w, "  doctor     Check the browser and environment")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'docx2pdf help <command>' for details on a specific command.")
}

// printConvertUsage prints usage for the convert command.
func printConvertUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: docx2pdf [convert] [input] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert a DOCX file to HTML, then print it to PDF with headless Chrome.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    DOCX file (default: sample.docx or input.path from config)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <path>         Output PDF (default: output.pdf)")
	fmt.Fprintln(w, "  -c, --config <name>         Config file name or path")
	fmt.Fprintln(w, "      --html                  Also write the intermediate HTML")
	fmt.Fprintln(w, "      --html-only             Write HTML only, skip PDF")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Styling:")
	fmt.Fprintln(w, "      --style <s>             Style name, CSS file or inline CSS (default: default)")
	fmt.Fprintln(w, "      --css <s>               Extra CSS file or inline CSS, applied after the style")
	fmt.Fprintln(w, "      --style-map <rule>      Style-map rule, repeatable:")
	fmt.Fprintln(w, "                              p[style-name='Quote'] => blockquote:fresh")
	fmt.Fprintln(w, "      --no-default-style-map  Use only user rules and built-in mappings")
	fmt.Fprintln(w, "      --asset-path <dir>      Custom styles/ and templates/ directory")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Page:")
	fmt.Fprintln(w, "  -p, --page-size <s>         Page size: a4, letter, legal (default: a4)")
	fmt.Fprintln(w, "      --orientation <s>       Orientation: portrait, landscape")
	fmt.Fprintln(w, "      --margin <f>            Margin in centimeters, 0-5 (default: 1)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Renderer:")
	fmt.Fprintln(w, "      --backend <s>           Browser driver: rod, chromedp (default: rod)")
	fmt.Fprintln(w, "  -t, --timeout <d>           Conversion timeout (default: 30s)")
	fmt.Fprintln(w, "      --idle-window <d>       Network idle window before printing (default: 500ms)")
	fmt.Fprintln(w, "      --browser-bin <path>    Chrome/Chromium executable")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Logging:")
	fmt.Fprintln(w, "  -q, --quiet                 Only show errors")
	fmt.Fprintln(w, "  -v, --verbose               Show pipeline stages")
	fmt.Fprintln(w, "      --log-level <s>         debug, info, warn, error")
	fmt.Fprintln(w, "      --log-format <s>        console, json")
	fmt.Fprintln(w, "      --log-file <path>       Also write JSON logs to a rotated file")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment variables (DOCX2PDF_CONFIG, DOCX2PDF_INPUT, DOCX2PDF_OUTPUT, ...)")
	fmt.Fprintln(w, "override the config file; flags override both.")
}

// printDoctorUsage prints usage for the doctor command.
func printDoctorUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: docx2pdf doctor [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Check the browser, the temp directory and the effective configuration.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -c, --config <name>    Config file name or path")
	fmt.Fprintln(w, "      --json             Print results as JSON")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return
	}

	switch args[0] {
	case "convert":
		printConvertUsage(env.Stdout)
	case "doctor":
		printDoctorUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: docx2pdf version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: docx2pdf help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
	}
}
