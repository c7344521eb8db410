package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/alnah/go-docx2pdf/internal/config"
	"github.com/alnah/go-docx2pdf/internal/hints"
)

// envPrefix starts every environment variable the CLI reads.
const envPrefix = "DOCX2PDF_"

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath  string // DOCX2PDF_CONFIG: config file name or path
	Input       string // DOCX2PDF_INPUT: DOCX input path
	Output      string // DOCX2PDF_OUTPUT: PDF output path
	Style       string // DOCX2PDF_STYLE: CSS style name or path
	PageSize    string // DOCX2PDF_PAGE_SIZE: a4, letter, legal
	Orientation string // DOCX2PDF_ORIENTATION: portrait, landscape
	Margin      string // DOCX2PDF_MARGIN: centimeters
	Backend     string // DOCX2PDF_BACKEND: rod, chromedp
	Timeout     string // DOCX2PDF_TIMEOUT: conversion timeout
	IdleWindow  string // DOCX2PDF_IDLE_WINDOW: network idle window
	BrowserBin  string // DOCX2PDF_BROWSER_BIN: Chrome/Chromium executable
	LogLevel    string // DOCX2PDF_LOG_LEVEL
	LogFormat   string // DOCX2PDF_LOG_FORMAT
	LogFile     string // DOCX2PDF_LOG_FILE
	AssetPath   string // DOCX2PDF_ASSET_PATH: custom asset directory
}

// knownEnvVars lists valid DOCX2PDF_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"DOCX2PDF_CONFIG":      true,
	"DOCX2PDF_INPUT":       true,
	"DOCX2PDF_OUTPUT":      true,
	"DOCX2PDF_STYLE":       true,
	"DOCX2PDF_PAGE_SIZE":   true,
	"DOCX2PDF_ORIENTATION": true,
	"DOCX2PDF_MARGIN":      true,
	"DOCX2PDF_BACKEND":     true,
	"DOCX2PDF_TIMEOUT":     true,
	"DOCX2PDF_IDLE_WINDOW": true,
	hints.EnvBrowserBin:    true,
	"DOCX2PDF_LOG_LEVEL":   true,
	"DOCX2PDF_LOG_FORMAT":  true,
	"DOCX2PDF_LOG_FILE":    true,
	"DOCX2PDF_ASSET_PATH":  true,
	envContainer:           true, // read by doctor
}

// loadEnvConfig reads configuration from environment variables.
func loadEnvConfig(getenv func(string) string) *envConfig {
	return &envConfig{
		ConfigPath:  getenv("DOCX2PDF_CONFIG"),
		Input:       getenv("DOCX2PDF_INPUT"),
		Output:      getenv("DOCX2PDF_OUTPUT"),
		Style:       getenv("DOCX2PDF_STYLE"),
		PageSize:    getenv("DOCX2PDF_PAGE_SIZE"),
		Orientation: getenv("DOCX2PDF_ORIENTATION"),
		Margin:      getenv("DOCX2PDF_MARGIN"),
		Backend:     getenv("DOCX2PDF_BACKEND"),
		Timeout:     getenv("DOCX2PDF_TIMEOUT"),
		IdleWindow:  getenv("DOCX2PDF_IDLE_WINDOW"),
		BrowserBin:  getenv(hints.EnvBrowserBin),
		LogLevel:    getenv("DOCX2PDF_LOG_LEVEL"),
		LogFormat:   getenv("DOCX2PDF_LOG_FORMAT"),
		LogFile:     getenv("DOCX2PDF_LOG_FILE"),
		AssetPath:   getenv("DOCX2PDF_ASSET_PATH"),
	}
}

// applyEnvConfig overrides config values with the environment variables that
// are set. CLI flags are applied afterwards by mergeFlags, giving
// CLI flags > env vars > config file > defaults.
func applyEnvConfig(env *envConfig, cfg *config.Config) error {
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}

	set(&cfg.Input.Path, env.Input)
	set(&cfg.Output.Path, env.Output)
	set(&cfg.Style, env.Style)
	set(&cfg.Page.Size, env.PageSize)
	set(&cfg.Page.Orientation, env.Orientation)
	set(&cfg.Renderer.Backend, env.Backend)
	set(&cfg.Renderer.Timeout, env.Timeout)
	set(&cfg.Renderer.IdleWindow, env.IdleWindow)
	set(&cfg.Renderer.BrowserBin, env.BrowserBin)
	set(&cfg.Log.Level, env.LogLevel)
	set(&cfg.Log.Format, env.LogFormat)
	set(&cfg.Log.File, env.LogFile)
	set(&cfg.Assets.BasePath, env.AssetPath)

	if env.Margin != "" {
		margin, err := strconv.ParseFloat(env.Margin, 64)
		if err != nil {
			return fmt.Errorf("%w: DOCX2PDF_MARGIN: %q is not a number", config.ErrInvalidValue, env.Margin)
		}
		cfg.Page.Margin = margin
	}
	return nil
}

// warnUnknownEnvVars logs a warning for each unrecognized DOCX2PDF_* variable.
// Helps catch typos like DOCX2PDF_TIMOUT.
func warnUnknownEnvVars(environ []string, log zerolog.Logger) {
	for _, kv := range environ {
		if !strings.HasPrefix(kv, envPrefix) {
			continue
		}
		name, _, _ := strings.Cut(kv, "=")
		if !knownEnvVars[name] {
			log.Warn().Str("variable", name).Msg("unknown environment variable (typo?)")
		}
	}
}
