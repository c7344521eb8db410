package docx2pdf

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/rs/zerolog"

	"github.com/alnah/go-docx2pdf/internal/process"
)

// chromedpRenderer implements pdfRenderer using chromedp. Like rodRenderer
// it launches one browser per render and terminates it before returning.
type chromedpRenderer struct {
	bin    string
	logger zerolog.Logger
}

func newChromedpRenderer(bin string, logger zerolog.Logger) *chromedpRenderer {
	return &chromedpRenderer{bin: bin, logger: logger}
}

// allocatorOptions returns the exec allocator flags for a headless browser
// with the sandbox disabled. The browser leads its own process group so the
// deferred group kill also reaches its renderer processes.
func (r *chromedpRenderer) allocatorOptions() []chromedp.ExecAllocatorOption {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Headless,
		chromedp.NoSandbox,
		chromedp.Flag("disable-setuid-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.ModifyCmdFunc(process.SetProcessGroup),
	)
	if bin := browserBin(r.bin); bin != "" {
		opts = append(opts, chromedp.ExecPath(bin))
	}
	return opts
}

// RenderFromFile opens a local HTML file in headless Chrome, waits for
// network idle and prints it to PDF.
func (r *chromedpRenderer) RenderFromFile(ctx context.Context, filePath string, opts *pdfOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, r.allocatorOptions()...)
	tabCtx, cancelTab := chromedp.NewContext(allocCtx)
	pid := 0
	defer func() {
		cancelTab()
		cancelAlloc()
		process.KillProcessGroup(pid)
	}()

	// Running no actions starts the browser and opens the first tab.
	if err := chromedp.Run(tabCtx); err != nil {
		return nil, browserErr(ctx, ErrBrowserConnect, err)
	}
	if c := chromedp.FromContext(tabCtx); c != nil && c.Browser != nil {
		if p := c.Browser.Process(); p != nil {
			pid = p.Pid
		}
	}
	r.logger.Debug().Int("pid", pid).Msg("browser launched")

	tracker := newRequestTracker()
	chromedp.ListenTarget(tabCtx, tracker.handle)

	idle := opts.idleWindow()
	err := chromedp.Run(tabCtx,
		network.Enable(),
		chromedp.Navigate(fileURL(filePath)),
		chromedp.ActionFunc(func(ctx context.Context) error {
			return tracker.waitIdle(ctx, idle)
		}),
	)
	if err != nil {
		return nil, browserErr(ctx, ErrPageLoad, err)
	}
	r.logger.Debug().Str("path", filePath).Msg("page loaded and network idle")

	var pdf []byte
	p := opts.print()
	err = chromedp.Run(tabCtx, chromedp.ActionFunc(func(ctx context.Context) error {
		var err error
		pdf, _, err = page.PrintToPDF().
			WithPrintBackground(true).
			WithLandscape(p.landscape).
			WithPaperWidth(p.width).
			WithPaperHeight(p.height).
			WithMarginTop(p.margin).
			WithMarginBottom(p.margin).
			WithMarginLeft(p.margin).
			WithMarginRight(p.margin).
			Do(ctx)
		return err
	}))
	if err != nil {
		return nil, browserErr(ctx, ErrPDFGeneration, err)
	}
	if len(pdf) == 0 {
		return nil, fmt.Errorf("%w: empty output", ErrPDFGeneration)
	}
	return pdf, nil
}

// requestTracker counts in-flight network requests from target events.
type requestTracker struct {
	mu       sync.Mutex
	inflight map[network.RequestID]struct{}
	changed  chan struct{} // signalled on every start or finish
}

func newRequestTracker() *requestTracker {
	return &requestTracker{
		inflight: make(map[network.RequestID]struct{}),
		changed:  make(chan struct{}, 1),
	}
}

// handle is a chromedp target listener.
func (t *requestTracker) handle(ev any) {
	switch e := ev.(type) {
	case *network.EventRequestWillBeSent:
		t.update(e.RequestID, true)
	case *network.EventLoadingFinished:
		t.update(e.RequestID, false)
	case *network.EventLoadingFailed:
		t.update(e.RequestID, false)
	}
}

func (t *requestTracker) update(id network.RequestID, started bool) {
	t.mu.Lock()
	if started {
		// Redirects reuse the request ID.
		t.inflight[id] = struct{}{}
	} else {
		delete(t.inflight, id)
	}
	t.mu.Unlock()

	select {
	case t.changed <- struct{}{}:
	default:
	}
}

func (t *requestTracker) pending() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.inflight)
}

// waitIdle returns once no request has been in flight for window, or when
// ctx ends.
func (t *requestTracker) waitIdle(ctx context.Context, window time.Duration) error {
	timer := time.NewTimer(window)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.changed:
			timer.Reset(window)
		case <-timer.C:
			if t.pending() == 0 {
				return nil
			}
			timer.Reset(window)
		}
	}
}
