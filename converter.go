package docx2pdf

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/alnah/go-docx2pdf/internal/assets"
	"github.com/alnah/go-docx2pdf/internal/docx"
	"github.com/alnah/go-docx2pdf/internal/fileutil"
	"github.com/alnah/go-docx2pdf/internal/pipeline"
	"github.com/alnah/go-docx2pdf/internal/stylemap"
)

// Compile-time interface implementation checks.
var (
	_ pipeline.HTMLConverter   = (*pipeline.DOCXConverter)(nil)
	_ pipeline.CSSInjector     = (*pipeline.CSSInjection)(nil)
	_ pipeline.DocumentWrapper = (*pipeline.DocumentTemplate)(nil)
)

// Converter orchestrates the DOCX-to-PDF conversion pipeline.
// Create with NewConverter(), use Convert() for conversion, and Close() when done.
// A Converter runs one conversion at a time.
type Converter struct {
	cfg               converterConfig
	assetLoader       assets.AssetLoader
	publicAssetLoader AssetLoader // from WithAssetLoader
	htmlConverter     pipeline.HTMLConverter
	documentWrapper   pipeline.DocumentWrapper
	cssInjector       pipeline.CSSInjector
	pdfConverter      pdfConverter
	closed            atomic.Bool
}

// NewConverter creates a Converter with default configuration.
// Use options to customize behavior (e.g., WithTimeout, WithStyleMap, WithBackend).
// Returns error if a style-map rule, the backend, the style or the page
// template is invalid.
func NewConverter(opts ...Option) (*Converter, error) {
	c := &Converter{
		cfg: converterConfig{
			timeout:    defaultTimeout,
			idleWindow: defaultIdleWindow,
			backend:    BackendRod,
			logger:     zerolog.Nop(),
		},
		assetLoader: assets.NewEmbeddedLoader(),
		cssInjector: &pipeline.CSSInjection{},
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.cfg.assetPath != "" {
		resolver, err := assets.NewAssetResolver(c.cfg.assetPath)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidAssetPath, err)
		}
		c.assetLoader = resolver
	}
	if c.publicAssetLoader != nil {
		c.assetLoader = c.publicAssetLoader
	}

	if c.htmlConverter == nil {
		rules, err := stylemap.Parse(c.cfg.styleMapRules)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidStyleMap, err)
		}
		c.htmlConverter = pipeline.NewDOCXConverter(stylemap.New(rules, !c.cfg.noDefaultStyles))
	}

	if err := c.resolveStyle(); err != nil {
		return nil, err
	}

	if c.documentWrapper == nil {
		tmpl, err := c.assetLoader.LoadTemplate(assets.DocumentTemplateName)
		if err != nil {
			return nil, fmt.Errorf("loading document template: %w", convertAssetError(err))
		}
		if c.documentWrapper, err = pipeline.NewDocumentTemplate(tmpl); err != nil {
			return nil, fmt.Errorf("initializing document template: %w", err)
		}
	}

	if c.pdfConverter == nil {
		renderer, err := c.newRenderer()
		if err != nil {
			return nil, err
		}
		c.pdfConverter = newFileConverter(renderer, c.cfg.logger)
	}

	return c, nil
}

// newRenderer selects the browser backend.
func (c *Converter) newRenderer() (pdfRenderer, error) {
	switch strings.ToLower(c.cfg.backend) {
	case BackendRod, "":
		return newRodRenderer(c.cfg.browserBin, c.cfg.logger), nil
	case BackendChromedp:
		return newChromedpRenderer(c.cfg.browserBin, c.cfg.logger), nil
	default:
		return nil, fmt.Errorf("%w: %q (must be %s or %s)", ErrInvalidBackend, c.cfg.backend, BackendRod, BackendChromedp)
	}
}

// Convert runs the full pipeline and returns the result containing HTML and PDF.
// The context is used for cancellation; the converter timeout bounds the run.
// If input.HTMLOnly is true, PDF generation is skipped.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (c *Converter) Convert(ctx context.Context, input Input) (result *ConvertResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	if c.closed.Load() {
		return nil, ErrConverterClosed
	}
	if err := c.validateInput(input); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.timeout)
	defer cancel()
	log := c.cfg.logger

	fragment, err := c.htmlConverter.ToHTML(ctx, input.DOCX)
	if err != nil {
		return nil, wrapHTMLError(err)
	}
	log.Debug().Int("bytes", len(fragment.HTML)).Int("warnings", len(fragment.Warnings)).Msg("converted DOCX to HTML")

	body := fragment.HTML
	if input.SourceDir != "" {
		body, err = pipeline.RewriteRelativePaths(body, input.SourceDir)
		if err != nil {
			return nil, fmt.Errorf("%w: rewriting relative paths: %v", ErrHTMLConversion, err)
		}
	}

	page, err := c.documentWrapper.Wrap(ctx, body, fragment.Title, c.cfg.resolvedStyle)
	if err != nil {
		return nil, wrapHTMLError(err)
	}
	if input.CSS != "" {
		page = c.cssInjector.InjectCSS(ctx, page, input.CSS)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	res := &ConvertResult{
		HTML:     []byte(page),
		Warnings: fragment.Warnings,
	}
	if input.HTMLOnly {
		return res, nil
	}

	pdf, err := c.pdfConverter.ToPDF(ctx, page, &pdfOptions{
		Page:       input.Page,
		IdleWindow: c.cfg.idleWindow,
	})
	if err != nil {
		return nil, wrapPDFError(err)
	}
	log.Debug().Int("bytes", len(pdf)).Msg("rendered PDF")

	res.PDF = pdf
	return res, nil
}

// Close marks the converter closed. Browsers are terminated after each
// render, so Close holds nothing else.
func (c *Converter) Close() error {
	c.closed.Store(true)
	return nil
}

// resolveStyle resolves the style input (name, path, or CSS content) to CSS
// content. An empty style input uses the default style.
func (c *Converter) resolveStyle() error {
	input := c.cfg.styleInput
	if input == "" {
		input = assets.DefaultStyleName
	}

	// CSS content is checked first: selectors may contain '/'.
	if fileutil.IsCSS(input) {
		c.cfg.resolvedStyle = input
		return nil
	}

	if fileutil.IsFilePath(input) {
		content, err := os.ReadFile(input) // #nosec G304 -- user-provided path
		if err != nil {
			return fmt.Errorf("loading style file %q: %w", input, err)
		}
		c.cfg.resolvedStyle = string(content)
		return nil
	}

	css, err := c.assetLoader.LoadStyle(input)
	if err != nil {
		return fmt.Errorf("loading style %q: %w", input, convertAssetError(err))
	}
	c.cfg.resolvedStyle = css
	return nil
}

// validateInput checks that required fields are present and valid.
//
// This is a TRUST BOUNDARY for direct library users who build Input manually.
// CLI users have their settings validated earlier by Config.Validate().
func (c *Converter) validateInput(input Input) error {
	if len(input.DOCX) == 0 {
		return ErrEmptyDOCX
	}
	if len(input.DOCX) > MaxDOCXSize {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrDOCXTooLarge, len(input.DOCX), MaxDOCXSize)
	}
	return input.Page.Validate()
}

// wrapHTMLError maps DOCX reader errors to ErrInvalidDOCX and other
// conversion errors to ErrHTMLConversion. Context errors pass through.
func wrapHTMLError(err error) error {
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return err
	case errors.Is(err, docx.ErrNotDOCX),
		errors.Is(err, docx.ErrMissingPart),
		errors.Is(err, docx.ErrMalformedPart),
		errors.Is(err, docx.ErrPartTooLarge):
		return fmt.Errorf("%w: %w", ErrInvalidDOCX, err)
	default:
		return fmt.Errorf("%w: %w", ErrHTMLConversion, err)
	}
}

// wrapPDFError keeps browser sentinels and context errors, wrapping anything
// else in ErrPDFGeneration.
func wrapPDFError(err error) error {
	for _, sentinel := range []error{ErrBrowserConnect, ErrPageCreate, ErrPageLoad, ErrPDFGeneration} {
		if errors.Is(err, sentinel) {
			return err
		}
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrPDFGeneration, err)
}
