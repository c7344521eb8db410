package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-docx2pdf/internal/stylemap"
	"github.com/alnah/go-docx2pdf/internal/yamlutil"
)

// AppName names the per-user config directory.
const AppName = "go-docx2pdf"

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Field length limits.
const (
	MaxPathLength        = 4096
	MaxStyleLength       = 4096
	MaxCSSLength         = 1 << 16
	MaxRuleLength        = 500
	MaxRules             = 200
	MaxPageSizeLength    = 10
	MaxOrientationLength = 10
	MaxNameLength        = 20 // backend, log level, log format
)

// Margin bounds in centimeters.
const (
	MinMarginCM = 0.0
	MaxMarginCM = 5.0
)

// Config holds all settings for one conversion run. Every default matches
// the behavior of the converter without a config file.
type Config struct {
	Input    InputConfig    `yaml:"input"`
	Output   OutputConfig   `yaml:"output"`
	Style    string         `yaml:"style"` // style name, CSS file path or inline CSS
	CSS      string         `yaml:"css"`   // appended after the style
	StyleMap StyleMapConfig `yaml:"styleMap"`
	Page     PageConfig     `yaml:"page"`
	Renderer RendererConfig `yaml:"renderer"`
	Log      LogConfig      `yaml:"log"`
	Assets   AssetsConfig   `yaml:"assets"`
}

// InputConfig locates the DOCX file.
type InputConfig struct {
	Path string `yaml:"path"`
}

// OutputConfig locates the PDF and the optional intermediate HTML.
type OutputConfig struct {
	Path string `yaml:"path"`
	HTML bool   `yaml:"html"` // also write <output>.html
}

// StyleMapConfig holds user style-map rules, one rule per entry.
type StyleMapConfig struct {
	Rules          []string `yaml:"rules"`
	IncludeDefault bool     `yaml:"includeDefault"`
}

// PageConfig defines PDF page settings.
type PageConfig struct {
	Size        string  `yaml:"size"`        // "a4", "letter", "legal"
	Orientation string  `yaml:"orientation"` // "portrait", "landscape"
	Margin      float64 `yaml:"margin"`      // centimeters, all sides
}

// RendererConfig selects and tunes the headless browser backend.
// Durations use Go syntax ("30s", "500ms").
type RendererConfig struct {
	Backend    string `yaml:"backend"` // "rod", "chromedp"
	Timeout    string `yaml:"timeout"`
	IdleWindow string `yaml:"idleWindow"`
	BrowserBin string `yaml:"browserBin"`
}

// LogConfig configures the run logger.
type LogConfig struct {
	Level      string `yaml:"level"`  // debug, info, warn, error
	Format     string `yaml:"format"` // console, json
	File       string `yaml:"file"`   // rotated log file, empty = none
	MaxSizeMB  int    `yaml:"maxSizeMB"`
	MaxBackups int    `yaml:"maxBackups"`
	MaxAgeDays int    `yaml:"maxAgeDays"`
	Compress   bool   `yaml:"compress"`
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // empty = embedded assets only
}

// DefaultConfig returns the settings used when no config file is given.
func DefaultConfig() *Config {
	return &Config{
		Input:    InputConfig{Path: "sample.docx"},
		Output:   OutputConfig{Path: "output.pdf"},
		Style:    "default",
		StyleMap: StyleMapConfig{IncludeDefault: true},
		Page: PageConfig{
			Size:        "a4",
			Orientation: "portrait",
			Margin:      1.0,
		},
		Renderer: RendererConfig{
			Backend:    "rod",
			Timeout:    "30s",
			IdleWindow: "500ms",
		},
		Log: LogConfig{
			Level:      "info",
			Format:     "console",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
	}
}

// Validate checks lengths, enumerations, durations and style-map syntax.
// Called by LoadConfig; callers that build or override a Config call it again.
func (c *Config) Validate() error {
	lengths := []struct {
		field string
		value string
		max   int
	}{
		{"input.path", c.Input.Path, MaxPathLength},
		{"output.path", c.Output.Path, MaxPathLength},
		{"style", c.Style, MaxStyleLength},
		{"css", c.CSS, MaxCSSLength},
		{"page.size", c.Page.Size, MaxPageSizeLength},
		{"page.orientation", c.Page.Orientation, MaxOrientationLength},
		{"renderer.backend", c.Renderer.Backend, MaxNameLength},
		{"renderer.browserBin", c.Renderer.BrowserBin, MaxPathLength},
		{"log.level", c.Log.Level, MaxNameLength},
		{"log.format", c.Log.Format, MaxNameLength},
		{"log.file", c.Log.File, MaxPathLength},
		{"assets.basePath", c.Assets.BasePath, MaxPathLength},
	}
	for _, l := range lengths {
		if err := validateFieldLength(l.field, l.value, l.max); err != nil {
			return err
		}
	}

	if err := validateEnum("page.size", c.Page.Size, "a4", "letter", "legal"); err != nil {
		return err
	}
	if err := validateEnum("page.orientation", c.Page.Orientation, "portrait", "landscape"); err != nil {
		return err
	}
	if math.IsNaN(c.Page.Margin) || c.Page.Margin < MinMarginCM || c.Page.Margin > MaxMarginCM {
		return fmt.Errorf("%w: page.margin: %.2f (must be between %.1f and %.1f cm)",
			ErrInvalidValue, c.Page.Margin, MinMarginCM, MaxMarginCM)
	}

	if err := validateEnum("renderer.backend", c.Renderer.Backend, "rod", "chromedp"); err != nil {
		return err
	}
	if _, err := parseDuration("renderer.timeout", c.Renderer.Timeout); err != nil {
		return err
	}
	if _, err := parseDuration("renderer.idleWindow", c.Renderer.IdleWindow); err != nil {
		return err
	}

	if err := validateEnum("log.level", c.Log.Level, "debug", "info", "warn", "error"); err != nil {
		return err
	}
	if err := validateEnum("log.format", c.Log.Format, "console", "json"); err != nil {
		return err
	}
	if c.Log.MaxSizeMB < 0 || c.Log.MaxBackups < 0 || c.Log.MaxAgeDays < 0 {
		return fmt.Errorf("%w: log rotation limits must not be negative", ErrInvalidValue)
	}

	if len(c.StyleMap.Rules) > MaxRules {
		return fmt.Errorf("%w: styleMap.rules (%d rules, max %d)", ErrFieldTooLong, len(c.StyleMap.Rules), MaxRules)
	}
	for i, rule := range c.StyleMap.Rules {
		if err := validateFieldLength(fmt.Sprintf("styleMap.rules[%d]", i), rule, MaxRuleLength); err != nil {
			return err
		}
	}
	if _, err := c.StyleMap.Parse(); err != nil {
		return fmt.Errorf("%w: styleMap.rules: %w", ErrInvalidValue, err)
	}

	return nil
}

// Parse compiles the configured rules.
func (s StyleMapConfig) Parse() ([]stylemap.Rule, error) {
	return stylemap.Parse(s.Rules)
}

// TimeoutDuration returns the parsed conversion timeout.
func (r RendererConfig) TimeoutDuration() (time.Duration, error) {
	return parseDuration("renderer.timeout", r.Timeout)
}

// IdleWindowDuration returns the parsed network-idle window.
func (r RendererConfig) IdleWindowDuration() (time.Duration, error) {
	return parseDuration("renderer.idleWindow", r.IdleWindow)
}

func parseDuration(field, value string) (time.Duration, error) {
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %q is not a duration", ErrInvalidValue, field, value)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%w: %s: must be positive, got %s", ErrInvalidValue, field, d)
	}
	return d, nil
}

func validateEnum(field, value string, allowed ...string) error {
	for _, a := range allowed {
		if strings.EqualFold(value, a) {
			return nil
		}
	}
	return fmt.Errorf("%w: %s: %q (must be one of %s)", ErrInvalidValue, field, value, strings.Join(allowed, ", "))
}

func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// LoadConfig loads configuration from a file path or a config name.
// A value containing a path separator is read as a file; a bare name is
// searched as <name>.yaml or <name>.yml in the current directory, then in
// the user config directory. Keys absent from the file keep their defaults.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !isFilePath(nameOrPath) {
		var err error
		if configPath, err = resolveConfigPath(nameOrPath); err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SearchPaths returns the candidate files for a config name, in lookup order.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, 2*len(extensions))
	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if dir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(dir, AppName, name+ext))
		}
	}
	return paths
}

func isFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

func resolveConfigPath(name string) (string, error) {
	tried := SearchPaths(name)
	for _, p := range tried {
		if fileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(tried, ", "))
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
