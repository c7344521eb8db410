package main

import (
	"context"
	"errors"
	"os"

	"github.com/alnah/go-docx2pdf"
	"github.com/alnah/go-docx2pdf/internal/config"
	"github.com/alnah/go-docx2pdf/internal/fileutil"
	"github.com/alnah/go-docx2pdf/internal/hints"
	"github.com/alnah/go-docx2pdf/internal/stylemap"
)

// Exit codes for docx2pdf CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful conversion
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // File not found, unreadable input, write failure
	ExitBrowser = 4 // Browser/Chrome errors
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Browser errors (exit 4)
	if errors.Is(err, docx2pdf.ErrBrowserConnect) ||
		errors.Is(err, docx2pdf.ErrPageCreate) ||
		errors.Is(err, docx2pdf.ErrPageLoad) ||
		errors.Is(err, docx2pdf.ErrPDFGeneration) {
		return ExitBrowser
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReadDOCX) ||
		errors.Is(err, ErrReadCSS) ||
		errors.Is(err, ErrWritePDF) ||
		errors.Is(err, ErrWriteHTML) ||
		errors.Is(err, ErrNoInput) ||
		errors.Is(err, docx2pdf.ErrEmptyDOCX) ||
		errors.Is(err, docx2pdf.ErrDOCXTooLarge) ||
		errors.Is(err, docx2pdf.ErrInvalidDOCX) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, docx2pdf.ErrInvalidPageSize) ||
		errors.Is(err, docx2pdf.ErrInvalidOrientation) ||
		errors.Is(err, docx2pdf.ErrInvalidMargin) ||
		errors.Is(err, docx2pdf.ErrInvalidBackend) ||
		errors.Is(err, docx2pdf.ErrInvalidStyleMap) ||
		errors.Is(err, docx2pdf.ErrStyleNotFound) ||
		errors.Is(err, docx2pdf.ErrTemplateNotFound) ||
		errors.Is(err, docx2pdf.ErrInvalidAssetPath) {
		return ExitUsage
	}

	return ExitGeneral
}

// hintFor returns an actionable hint for err, or "" when none applies.
// configName is the --config value, used to list the searched paths.
func hintFor(err error, configName string) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, context.DeadlineExceeded):
		return hints.ForTimeout()
	case errors.Is(err, docx2pdf.ErrBrowserConnect):
		return hints.ForBrowserConnect()
	case errors.Is(err, config.ErrConfigNotFound):
		if configName == "" || fileutil.IsFilePath(configName) {
			return hints.ForConfigNotFound(nil)
		}
		return hints.ForConfigNotFound(config.SearchPaths(configName))
	case errors.Is(err, ErrNoInput),
		errors.Is(err, ErrReadDOCX) && errors.Is(err, os.ErrNotExist):
		return hints.ForInputNotFound()
	case errors.Is(err, docx2pdf.ErrInvalidDOCX):
		return hints.ForInvalidDOCX()
	case errors.Is(err, ErrWritePDF), errors.Is(err, ErrWriteHTML):
		return hints.ForOutputDirectory()
	case errors.Is(err, docx2pdf.ErrStyleNotFound):
		return hints.ForStyleNotFound([]string{docx2pdf.DefaultStyle})
	case errors.Is(err, docx2pdf.ErrInvalidStyleMap), errors.Is(err, stylemap.ErrInvalidRule):
		return hints.ForStyleMap()
	}
	return ""
}
