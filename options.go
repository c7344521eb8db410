package docx2pdf

import (
	"time"

	"github.com/rs/zerolog"
)

// Renderer backend names.
const (
	BackendRod      = "rod"
	BackendChromedp = "chromedp"
)

const (
	defaultTimeout    = 30 * time.Second
	defaultIdleWindow = 500 * time.Millisecond
)

// converterConfig holds options applied by NewConverter.
type converterConfig struct {
	timeout         time.Duration
	idleWindow      time.Duration
	backend         string
	browserBin      string
	styleInput      string // name, file path or CSS content
	resolvedStyle   string
	assetPath       string
	styleMapRules   []string
	noDefaultStyles bool
	logger          zerolog.Logger
}

// Option configures a Converter.
type Option func(*Converter)

// WithTimeout sets the overall conversion timeout. Panics if d <= 0.
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("docx2pdf: timeout must be positive")
	}
	return func(c *Converter) {
		c.cfg.timeout = d
	}
}

// WithIdleWindow sets how long the page must have no pending network
// requests before it is printed. Panics if d <= 0.
func WithIdleWindow(d time.Duration) Option {
	if d <= 0 {
		panic("docx2pdf: idle window must be positive")
	}
	return func(c *Converter) {
		c.cfg.idleWindow = d
	}
}

// WithStyleMap adds style-map rules, one rule per string. They take
// precedence over the built-in and default rules.
//
//	docx2pdf.WithStyleMap("p[style-name='Quote'] => blockquote:fresh")
func WithStyleMap(rules ...string) Option {
	return func(c *Converter) {
		c.cfg.styleMapRules = append(c.cfg.styleMapRules, rules...)
	}
}

// WithoutDefaultStyleMap drops the default style-map rules. Built-in
// rules for formatting and tables still apply.
func WithoutDefaultStyleMap() Option {
	return func(c *Converter) {
		c.cfg.noDefaultStyles = true
	}
}

// WithStyle sets the page CSS: a style name, a CSS file path or CSS content.
func WithStyle(style string) Option {
	return func(c *Converter) {
		c.cfg.styleInput = style
	}
}

// WithAssetPath loads styles and templates from a directory, falling back
// to the embedded assets.
func WithAssetPath(path string) Option {
	return func(c *Converter) {
		c.cfg.assetPath = path
	}
}

// WithAssetLoader sets a custom asset loader. Takes precedence over
// WithAssetPath.
func WithAssetLoader(loader AssetLoader) Option {
	return func(c *Converter) {
		c.publicAssetLoader = loader
	}
}

// WithBackend selects the headless browser driver: BackendRod (default)
// or BackendChromedp.
func WithBackend(name string) Option {
	return func(c *Converter) {
		c.cfg.backend = name
	}
}

// WithBrowserBin sets the Chrome or Chromium executable. Empty uses the
// backend's own discovery.
func WithBrowserBin(path string) Option {
	return func(c *Converter) {
		c.cfg.browserBin = path
	}
}

// WithLogger sets the logger used for stage progress. The default discards
// everything.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Converter) {
		c.cfg.logger = logger
	}
}
