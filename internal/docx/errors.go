package docx

import "errors"

// Sentinel errors for document reading.
var (
	// ErrNotDOCX indicates the input is not a ZIP container.
	ErrNotDOCX = errors.New("not a DOCX package")

	// ErrMissingPart indicates the package has no main document part.
	ErrMissingPart = errors.New("missing document part")

	// ErrMalformedPart indicates a package part is not well-formed XML.
	ErrMalformedPart = errors.New("malformed document part")

	// ErrPartTooLarge indicates a part exceeds MaxPartSize once decompressed.
	ErrPartTooLarge = errors.New("document part too large")
)
