package docx2pdf

import "errors"

// Sentinel errors for library operations.
var (
	ErrEmptyDOCX       = errors.New("DOCX content cannot be empty")
	ErrDOCXTooLarge    = errors.New("DOCX content exceeds maximum size")
	ErrInvalidDOCX     = errors.New("invalid DOCX document")
	ErrHTMLConversion  = errors.New("HTML conversion failed")
	ErrPDFGeneration   = errors.New("PDF generation failed")
	ErrBrowserConnect  = errors.New("failed to connect to browser")
	ErrPageCreate      = errors.New("failed to create browser page")
	ErrPageLoad        = errors.New("failed to load page")
	ErrConverterClosed = errors.New("converter is closed")

	// Page settings validation errors.
	ErrInvalidPageSize    = errors.New("invalid page size")
	ErrInvalidOrientation = errors.New("invalid orientation")
	ErrInvalidMargin      = errors.New("invalid margin")

	// Option errors.
	ErrInvalidStyleMap = errors.New("invalid style map")
	ErrInvalidBackend  = errors.New("invalid renderer backend")

	// Asset loading errors.
	ErrStyleNotFound    = errors.New("style not found")
	ErrTemplateNotFound = errors.New("template not found")
	ErrInvalidAssetPath = errors.New("invalid asset path")
)
