package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/alnah/go-docx2pdf"
	"github.com/alnah/go-docx2pdf/internal/config"
	"github.com/alnah/go-docx2pdf/internal/fileutil"
	"github.com/alnah/go-docx2pdf/internal/logging"
)

// Sentinel errors for CLI operations.
var (
	ErrNoInput   = errors.New("no input specified")
	ErrReadDOCX  = errors.New("failed to read DOCX file")
	ErrReadCSS   = errors.New("failed to read CSS file")
	ErrWritePDF  = errors.New("failed to write PDF file")
	ErrWriteHTML = errors.New("failed to write HTML file")
)

// hintPrefix starts every hint returned by hintFor.
const hintPrefix = "\n  hint: "

// reportedError marks an error the run logger has already recorded.
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

// runConvert resolves configuration, sets up logging and converts one
// document.
func runConvert(ctx context.Context, positional []string, flags *convertFlags, env *Environment) error {
	cfg, err := resolveConfig(positional, flags, env)
	if err != nil {
		return err
	}

	logger, err := logging.New(logOptions(cfg, env))
	if err != nil {
		return fmt.Errorf("%w: %v", config.ErrInvalidValue, err)
	}
	defer func() { _ = logger.Close() }()

	warnUnknownEnvVars(env.Environ(), logger.Logger)

	if err := convertDocument(ctx, cfg, flags.htmlOnly, logger.Logger, env); err != nil {
		event := logger.Error().Err(err).Str("input", cfg.Input.Path)
		if hint := hintFor(err, flags.config); hint != "" {
			event = event.Str("hint", strings.TrimPrefix(hint, hintPrefix))
		}
		event.Msg("conversion failed")
		return &reportedError{err: err}
	}
	return nil
}

// resolveConfig builds the effective configuration:
// CLI flags > DOCX2PDF_* env vars > config file > defaults.
func resolveConfig(positional []string, flags *convertFlags, env *Environment) (*config.Config, error) {
	envCfg := loadEnvConfig(env.Getenv)

	name := flags.config
	if name == "" {
		name = envCfg.ConfigPath
	}

	cfg := config.DefaultConfig()
	if name != "" {
		var err error
		if cfg, err = config.LoadConfig(name); err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
	}

	if err := applyEnvConfig(envCfg, cfg); err != nil {
		return nil, err
	}
	mergeFlags(positional, flags, cfg)

	if cfg.Input.Path == "" {
		return nil, ErrNoInput
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// mergeFlags merges CLI flags into config. CLI values override config values.
func mergeFlags(positional []string, flags *convertFlags, cfg *config.Config) {
	if len(positional) > 0 {
		cfg.Input.Path = positional[0]
	}

	strs := []struct {
		dst *string
		val string
	}{
		{&cfg.Output.Path, flags.output},
		{&cfg.CSS, flags.css},
		{&cfg.Style, flags.style},
		{&cfg.Assets.BasePath, flags.assetPath},
		{&cfg.Page.Size, flags.page.size},
		{&cfg.Page.Orientation, flags.page.orientation},
		{&cfg.Renderer.Backend, flags.renderer.backend},
		{&cfg.Renderer.Timeout, flags.renderer.timeout},
		{&cfg.Renderer.IdleWindow, flags.renderer.idleWindow},
		{&cfg.Renderer.BrowserBin, flags.renderer.browserBin},
		{&cfg.Log.Level, flags.log.level},
		{&cfg.Log.Format, flags.log.format},
		{&cfg.Log.File, flags.log.file},
	}
	for _, s := range strs {
		if s.val != "" {
			*s.dst = s.val
		}
	}

	// Zero is a valid margin, so only an explicit flag overrides it.
	if flags.changed != nil && flags.changed("margin") {
		cfg.Page.Margin = flags.page.margin
	}
	if len(flags.styleMap) > 0 {
		cfg.StyleMap.Rules = append(cfg.StyleMap.Rules, flags.styleMap...)
	}
	if flags.noDefaultStyleMap {
		cfg.StyleMap.IncludeDefault = false
	}
	if flags.html {
		cfg.Output.HTML = true
	}
	switch {
	case flags.quiet:
		cfg.Log.Level = "error"
	case flags.verbose:
		cfg.Log.Level = "debug"
	}
}

// logOptions maps the log configuration to logger options.
func logOptions(cfg *config.Config, env *Environment) logging.Options {
	return logging.Options{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		File:       cfg.Log.File,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
		Compress:   cfg.Log.Compress,
		Out:        env.Stderr,
		Color:      isTerminal(env.Stderr),
	}
}

// isTerminal reports whether w is a character device.
func isTerminal(w any) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	return err == nil && info.Mode()&os.ModeCharDevice != 0
}

// convertDocument reads the DOCX input, converts it and writes the outputs.
func convertDocument(ctx context.Context, cfg *config.Config, htmlOnly bool, log zerolog.Logger, env *Environment) error {
	start := env.Now()

	data, err := readDOCX(cfg.Input.Path)
	if err != nil {
		return err
	}
	log.Debug().Str("input", cfg.Input.Path).Int("bytes", len(data)).Msg("read DOCX")

	css, err := resolveExtraCSS(cfg.CSS)
	if err != nil {
		return err
	}

	opts, err := converterOptions(cfg, log)
	if err != nil {
		return err
	}
	conv, err := env.NewConverter(opts...)
	if err != nil {
		return err
	}
	defer func() { _ = conv.Close() }()

	result, err := conv.Convert(ctx, docx2pdf.Input{
		DOCX:      data,
		SourceDir: filepath.Dir(cfg.Input.Path),
		CSS:       css,
		Page: &docx2pdf.PageSettings{
			Size:        cfg.Page.Size,
			Orientation: cfg.Page.Orientation,
			Margin:      cfg.Page.Margin,
		},
		HTMLOnly: htmlOnly,
	})
	if err != nil {
		return err
	}
	for _, w := range result.Warnings {
		log.Warn().Msg(w)
	}

	if htmlOnly || cfg.Output.HTML {
		htmlPath := htmlOutputPath(cfg.Output.Path)
		if err := fileutil.WriteFile(htmlPath, result.HTML); err != nil {
			return fmt.Errorf("%w: %w", ErrWriteHTML, err)
		}
		log.Info().Str("output", htmlPath).Int("bytes", len(result.HTML)).Msg("wrote HTML")
	}
	if htmlOnly {
		return nil
	}

	if err := fileutil.WriteFile(cfg.Output.Path, result.PDF); err != nil {
		return fmt.Errorf("%w: %w", ErrWritePDF, err)
	}
	log.Info().
		Str("output", cfg.Output.Path).
		Int("bytes", len(result.PDF)).
		Dur("elapsed", env.Now().Sub(start).Round(time.Millisecond)).
		Msgf("PDF file written successfully (%d bytes)", len(result.PDF))
	return nil
}

// readDOCX reads the input file, rejecting files over docx2pdf.MaxDOCXSize.
func readDOCX(path string) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadDOCX, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", ErrReadDOCX, path)
	}
	if info.Size() > docx2pdf.MaxDOCXSize {
		return nil, fmt.Errorf("%w: %w: %d bytes (max %d)", ErrReadDOCX, docx2pdf.ErrDOCXTooLarge, info.Size(), docx2pdf.MaxDOCXSize)
	}

	data, err := os.ReadFile(path) // #nosec G304 -- user-provided path
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadDOCX, err)
	}
	return data, nil
}

// resolveExtraCSS returns inline CSS as is and reads anything else as a file.
func resolveExtraCSS(value string) (string, error) {
	if value == "" || fileutil.IsCSS(value) {
		return value, nil
	}
	content, err := os.ReadFile(value) // #nosec G304 -- user-provided path
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrReadCSS, err)
	}
	return string(content), nil
}

// converterOptions maps the configuration to converter options.
// cfg must be validated.
func converterOptions(cfg *config.Config, log zerolog.Logger) ([]docx2pdf.Option, error) {
	timeout, err := cfg.Renderer.TimeoutDuration()
	if err != nil {
		return nil, err
	}
	idle, err := cfg.Renderer.IdleWindowDuration()
	if err != nil {
		return nil, err
	}

	opts := []docx2pdf.Option{
		docx2pdf.WithTimeout(timeout),
		docx2pdf.WithIdleWindow(idle),
		docx2pdf.WithBackend(cfg.Renderer.Backend),
		docx2pdf.WithBrowserBin(cfg.Renderer.BrowserBin),
		docx2pdf.WithStyle(cfg.Style),
		docx2pdf.WithAssetPath(cfg.Assets.BasePath),
		docx2pdf.WithStyleMap(cfg.StyleMap.Rules...),
		docx2pdf.WithLogger(log),
	}
	if !cfg.StyleMap.IncludeDefault {
		opts = append(opts, docx2pdf.WithoutDefaultStyleMap())
	}
	return opts, nil
}

// htmlOutputPath replaces the PDF path's extension with .html.
func htmlOutputPath(pdfPath string) string {
	return strings.TrimSuffix(pdfPath, filepath.Ext(pdfPath)) + ".html"
}
