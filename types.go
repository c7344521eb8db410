package docx2pdf

import (
	"fmt"
	"math"
	"strings"
)

// MaxDOCXSize bounds the DOCX input accepted by Convert.
const MaxDOCXSize = 64 << 20

// Page size constants.
const (
	PageSizeA4     = "a4"
	PageSizeLetter = "letter"
	PageSizeLegal  = "legal"
)

// Orientation constants.
const (
	OrientationPortrait  = "portrait"
	OrientationLandscape = "landscape"
)

// Margin bounds in centimeters.
const (
	MinMargin     = 0.0
	MaxMargin     = 5.0
	DefaultMargin = 1.0
)

const cmPerInch = 2.54

// paperSizes holds portrait width and height in inches.
var paperSizes = map[string][2]float64{
	PageSizeA4:     {8.27, 11.69},
	PageSizeLetter: {8.5, 11},
	PageSizeLegal:  {8.5, 14},
}

// PageSettings configures PDF page dimensions.
type PageSettings struct {
	Size        string  // "a4", "letter", "legal"
	Orientation string  // "portrait", "landscape"
	Margin      float64 // centimeters, applied to all sides
}

// DefaultPageSettings returns A4 portrait with 1cm margins.
func DefaultPageSettings() *PageSettings {
	return &PageSettings{
		Size:        PageSizeA4,
		Orientation: OrientationPortrait,
		Margin:      DefaultMargin,
	}
}

// Validate checks that page settings are valid. A nil receiver is valid and
// means defaults. Comparison is case-insensitive.
func (p *PageSettings) Validate() error {
	if p == nil {
		return nil
	}
	if _, ok := paperSizes[strings.ToLower(p.Size)]; !ok {
		return fmt.Errorf("%w: %q", ErrInvalidPageSize, p.Size)
	}
	switch strings.ToLower(p.Orientation) {
	case OrientationPortrait, OrientationLandscape:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidOrientation, p.Orientation)
	}
	if math.IsNaN(p.Margin) || p.Margin < MinMargin || p.Margin > MaxMargin {
		return fmt.Errorf("%w: %.2f (must be between %.2f and %.2f cm)", ErrInvalidMargin, p.Margin, MinMargin, MaxMargin)
	}
	return nil
}

// paper returns the portrait paper size and the margin, in inches.
func (p *PageSettings) paper() (width, height, margin float64) {
	if p == nil {
		p = DefaultPageSettings()
	}
	size := paperSizes[strings.ToLower(p.Size)]
	return size[0], size[1], p.Margin / cmPerInch
}

func (p *PageSettings) landscape() bool {
	return p != nil && strings.EqualFold(p.Orientation, OrientationLandscape)
}

// Input contains conversion parameters.
type Input struct {
	DOCX      []byte        // DOCX package (required)
	SourceDir string        // resolves linked images and relative links (optional)
	CSS       string        // extra CSS appended after the style (optional)
	Page      *PageSettings // nil = A4 portrait, 1cm margins
	HTMLOnly  bool          // skip PDF rendering
}

// ConvertResult holds the outputs of a conversion.
type ConvertResult struct {
	HTML     []byte   // complete HTML page
	PDF      []byte   // nil when Input.HTMLOnly is set
	Warnings []string // unrecognised styles and unreadable images
}
