//go:build integration

package docx2pdf

// Notes:
// - Runs the complete pipeline with a real headless browser on both backends.
// - Rod downloads Chromium on first run if none is found; chromedp needs a
//   local Chrome or ROD_BROWSER_BIN.

import (
	"bytes"
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/alnah/go-docx2pdf/internal/docxtest"
)

const testTimeout = 60 * time.Second

var pageObject = regexp.MustCompile(`/Type\s*/Page[^s]`)

func assertValidPDF(t *testing.T, data []byte) {
	t.Helper()

	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Errorf("data does not have PDF magic bytes, got prefix: %q", data[:min(10, len(data))])
	}
	if len(data) < 100 {
		t.Errorf("PDF data suspiciously small: %d bytes", len(data))
	}
}

func pageCount(data []byte) int {
	return len(pageObject.FindAll(data, -1))
}

func convertWith(t *testing.T, backend string, input Input) *ConvertResult {
	t.Helper()

	c, err := NewConverter(WithBackend(backend), WithTimeout(testTimeout))
	if err != nil {
		t.Fatalf("NewConverter() error = %v", err)
	}
	defer func() { _ = c.Close() }()

	result, err := c.Convert(context.Background(), input)
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	return result
}

func TestConvert_Integration(t *testing.T) {
	for _, backend := range []string{BackendRod, BackendChromedp} {
		t.Run(backend, func(t *testing.T) {
			t.Run("title paragraph fits one page", func(t *testing.T) {
				data := docxtest.Build(t, docxtest.Paragraph("Title", "Hello World"), nil)

				result := convertWith(t, backend, Input{DOCX: data})

				assertValidPDF(t, result.PDF)
				if n := pageCount(result.PDF); n != 1 {
					t.Errorf("page count = %d, want 1", n)
				}
				if !bytes.Contains(result.HTML, []byte(`<h1 class="title">Hello World</h1>`)) {
					t.Errorf("HTML missing title heading: %s", result.HTML)
				}
			})

			t.Run("empty document gives one page", func(t *testing.T) {
				result := convertWith(t, backend, Input{DOCX: docxtest.Build(t, "", nil)})

				assertValidPDF(t, result.PDF)
				if n := pageCount(result.PDF); n != 1 {
					t.Errorf("page count = %d, want 1", n)
				}
			})

			t.Run("table and landscape letter", func(t *testing.T) {
				table := `<w:tbl><w:tblPr><w:tblStyle w:val="TableGrid"/></w:tblPr>` +
					`<w:tr><w:tc><w:p><w:r><w:t>a</w:t></w:r></w:p></w:tc>` +
					`<w:tc><w:p><w:r><w:t>b</w:t></w:r></w:p></w:tc></w:tr></w:tbl>`
				page := &PageSettings{Size: PageSizeLetter, Orientation: OrientationLandscape, Margin: 2}

				result := convertWith(t, backend, Input{DOCX: docxtest.Build(t, table, nil), Page: page})

				assertValidPDF(t, result.PDF)
			})
		})
	}
}

func TestConvert_Integration_Timeout(t *testing.T) {
	c, err := NewConverter(WithTimeout(time.Millisecond))
	if err != nil {
		t.Fatalf("NewConverter() error = %v", err)
	}
	defer func() { _ = c.Close() }()

	data := docxtest.Build(t, docxtest.Paragraph("", "slow"), nil)
	if _, err := c.Convert(context.Background(), Input{DOCX: data}); err == nil {
		t.Error("Convert() expected timeout error, got nil")
	}
}
