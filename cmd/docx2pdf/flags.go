package main

import (
	"io"

	flag "github.com/spf13/pflag"
)

// pageFlags holds page layout flags.
type pageFlags struct {
	size        string
	orientation string
	margin      float64
}

// rendererFlags holds browser backend flags.
type rendererFlags struct {
	backend    string
	timeout    string
	idleWindow string
	browserBin string
}

// logFlags holds logging flags.
type logFlags struct {
	level  string
	format string
	file   string
}

// convertFlags holds all flags for the convert command.
type convertFlags struct {
	config            string
	output            string
	css               string
	style             string
	styleMap          []string
	noDefaultStyleMap bool
	assetPath         string
	html              bool
	htmlOnly          bool
	quiet             bool
	verbose           bool
	page              pageFlags
	renderer          rendererFlags
	log               logFlags

	// changed reports whether a flag was set on the command line.
	changed func(name string) bool
}

func addPageFlags(fs *flag.FlagSet, f *pageFlags) {
	fs.StringVarP(&f.size, "page-size", "p", "", "page size: a4, letter, legal")
	fs.StringVar(&f.orientation, "orientation", "", "page orientation: portrait, landscape")
	fs.Float64Var(&f.margin, "margin", 0, "page margin in centimeters (0-5)")
}

func addRendererFlags(fs *flag.FlagSet, f *rendererFlags) {
	fs.StringVar(&f.backend, "backend", "", "browser driver: rod, chromedp")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "conversion timeout (e.g., 30s, 2m)")
	fs.StringVar(&f.idleWindow, "idle-window", "", "network idle window before printing (e.g., 500ms)")
	fs.StringVar(&f.browserBin, "browser-bin", "", "Chrome/Chromium executable")
}

func addLogFlags(fs *flag.FlagSet, f *logFlags) {
	fs.StringVar(&f.level, "log-level", "", "log level: debug, info, warn, error")
	fs.StringVar(&f.format, "log-format", "", "log format: console, json")
	fs.StringVar(&f.file, "log-file", "", "also write JSON logs to a rotated file")
}

// parseConvertFlags parses convert command flags and returns positional args.
func parseConvertFlags(args []string, usage io.Writer) (*convertFlags, []string, error) {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	fs.SetOutput(usage)
	f := &convertFlags{changed: fs.Changed}

	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.StringVarP(&f.output, "output", "o", "", "output PDF path")
	fs.StringVar(&f.css, "css", "", "extra CSS file or inline CSS, applied after the style")
	fs.StringVar(&f.style, "style", "", "CSS style name, file path or inline CSS")
	fs.StringArrayVar(&f.styleMap, "style-map", nil, "style-map rule (repeatable)")
	fs.BoolVar(&f.noDefaultStyleMap, "no-default-style-map", false, "drop the default style-map rules")
	fs.StringVar(&f.assetPath, "asset-path", "", "custom asset directory")
	fs.BoolVar(&f.html, "html", false, "also write the intermediate HTML")
	fs.BoolVar(&f.htmlOnly, "html-only", false, "write HTML only, skip PDF")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show pipeline stages")

	addPageFlags(fs, &f.page)
	addRendererFlags(fs, &f.renderer)
	addLogFlags(fs, &f.log)

	fs.Usage = func() { printConvertUsage(usage) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}
