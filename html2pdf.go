package docx2pdf

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/rs/zerolog"

	"github.com/alnah/go-docx2pdf/internal/fileutil"
	"github.com/alnah/go-docx2pdf/internal/hints"
	"github.com/alnah/go-docx2pdf/internal/process"
)

// pdfConverter abstracts HTML to PDF conversion to allow different backends.
type pdfConverter interface {
	ToPDF(ctx context.Context, htmlContent string, opts *pdfOptions) ([]byte, error)
}

// pdfRenderer abstracts PDF rendering from an HTML file to enable testing
// without a browser.
type pdfRenderer interface {
	RenderFromFile(ctx context.Context, filePath string, opts *pdfOptions) ([]byte, error)
}

// Compile-time interface checks
var (
	_ pdfConverter = (*fileConverter)(nil)
	_ pdfRenderer  = (*rodRenderer)(nil)
	_ pdfRenderer  = (*chromedpRenderer)(nil)
)

// pdfOptions holds options for PDF generation.
type pdfOptions struct {
	Page       *PageSettings // nil = A4 portrait, 1cm margins
	IdleWindow time.Duration // zero = defaultIdleWindow
}

// printParams holds paper dimensions and margins in inches.
type printParams struct {
	width, height, margin float64
	landscape             bool
}

func (o *pdfOptions) print() printParams {
	var page *PageSettings
	if o != nil {
		page = o.Page
	}
	w, h, m := page.paper()
	return printParams{width: w, height: h, margin: m, landscape: page.landscape()}
}

func (o *pdfOptions) idleWindow() time.Duration {
	if o == nil || o.IdleWindow <= 0 {
		return defaultIdleWindow
	}
	return o.IdleWindow
}

// fileConverter writes HTML to a uniquely named temporary file and renders
// it. The file is removed on every exit path.
type fileConverter struct {
	renderer pdfRenderer
	logger   zerolog.Logger
}

func newFileConverter(renderer pdfRenderer, logger zerolog.Logger) *fileConverter {
	return &fileConverter{renderer: renderer, logger: logger}
}

// ToPDF renders htmlContent to PDF bytes.
func (c *fileConverter) ToPDF(ctx context.Context, htmlContent string, opts *pdfOptions) ([]byte, error) {
	tmpPath, cleanup, err := fileutil.WriteTempFile(htmlContent, "html")
	if err != nil {
		return nil, err
	}
	defer cleanup()

	c.logger.Debug().Str("path", tmpPath).Int("bytes", len(htmlContent)).Msg("wrote temporary HTML")
	return c.renderer.RenderFromFile(ctx, tmpPath, opts)
}

// fileURL converts a local path to a file:// URL.
func fileURL(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	p := filepath.ToSlash(path)
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return (&url.URL{Scheme: "file", Path: p}).String()
}

// browserBin returns the configured browser binary, falling back to the
// ROD_BROWSER_BIN environment variable.
func browserBin(configured string) string {
	if configured != "" {
		return configured
	}
	return os.Getenv(hints.EnvRodBrowserBin)
}

// rodRenderer implements pdfRenderer using go-rod. A browser is launched
// for each render and terminated before RenderFromFile returns.
// Rod downloads Chromium on first run if no browser is found.
type rodRenderer struct {
	bin    string
	logger zerolog.Logger
}

func newRodRenderer(bin string, logger zerolog.Logger) *rodRenderer {
	return &rodRenderer{bin: bin, logger: logger}
}

// RenderFromFile opens a local HTML file in headless Chrome, waits for
// network idle and prints it to PDF.
func (r *rodRenderer) RenderFromFile(ctx context.Context, filePath string, opts *pdfOptions) (pdf []byte, err error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	l := launcher.New().
		Context(ctx).
		Headless(true).
		NoSandbox(true).
		Set("disable-setuid-sandbox")
	if bin := browserBin(r.bin); bin != "" {
		l = l.Bin(bin)
	}

	controlURL, err := l.Launch()
	if err != nil {
		process.KillProcessGroup(l.PID())
		return nil, browserErr(ctx, ErrBrowserConnect, err)
	}
	// Cleanup waits for the process to exit, so it only runs after a launch.
	defer func() {
		process.KillProcessGroup(l.PID())
		l.Kill()
		l.Cleanup()
	}()
	r.logger.Debug().Int("pid", l.PID()).Msg("browser launched")

	browser := rod.New().ControlURL(controlURL).Context(ctx)
	if err := browser.Connect(); err != nil {
		return nil, browserErr(ctx, ErrBrowserConnect, err)
	}
	defer func() { _ = browser.Close() }()

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, browserErr(ctx, ErrPageCreate, err)
	}
	defer func() { _ = page.Close() }()

	// Registered before navigation so the first requests are counted.
	waitIdle := page.WaitRequestIdle(opts.idleWindow(), nil, nil, nil)

	if err := page.Navigate(fileURL(filePath)); err != nil {
		return nil, browserErr(ctx, ErrPageLoad, err)
	}
	if err := page.WaitLoad(); err != nil {
		return nil, browserErr(ctx, ErrPageLoad, err)
	}
	waitIdle()
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.logger.Debug().Str("path", filePath).Msg("page loaded and network idle")

	reader, err := page.PDF(rodPrintOptions(opts.print()))
	if err != nil {
		return nil, browserErr(ctx, ErrPDFGeneration, err)
	}
	pdf, err = io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: reading PDF stream: %v", ErrPDFGeneration, err)
	}
	return pdf, nil
}

// rodPrintOptions builds the print request for a page.
func rodPrintOptions(p printParams) *proto.PagePrintToPDF {
	return &proto.PagePrintToPDF{
		Landscape:       p.landscape,
		PrintBackground: true,
		PaperWidth:      floatPtr(p.width),
		PaperHeight:     floatPtr(p.height),
		MarginTop:       floatPtr(p.margin),
		MarginBottom:    floatPtr(p.margin),
		MarginLeft:      floatPtr(p.margin),
		MarginRight:     floatPtr(p.margin),
	}
}

// browserErr wraps a browser failure with its sentinel, preferring the
// context error when the context ended first.
func browserErr(ctx context.Context, sentinel, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return fmt.Errorf("%w: %w", sentinel, ctxErr)
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%w: %w", sentinel, err)
	}
	return fmt.Errorf("%w: %v", sentinel, err)
}

// floatPtr returns a pointer to a float64 value.
func floatPtr(v float64) *float64 {
	return &v
}
