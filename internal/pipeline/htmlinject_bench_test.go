//go:build bench

package pipeline

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/alnah/go-docx2pdf/internal/docxtest"
)

func BenchmarkInjectCSS(b *testing.B) {
	injector := &CSSInjection{}
	ctx := context.Background()

	page := `<!DOCTYPE html><html><head><title>T</title><style>p{}</style></head><body>` +
		strings.Repeat("<p>Paragraph content here.</p>\n", 500) + `</body></html>`
	css := strings.Repeat(".docx-table td { padding: 4px; }\n", 100)

	b.ReportAllocs()
	for b.Loop() {
		_ = injector.InjectCSS(ctx, page, css)
	}
}

func BenchmarkToHTML(b *testing.B) {
	for _, size := range []int{10, 100, 1000} {
		var body strings.Builder
		for i := range size {
			switch i % 4 {
			case 0:
				body.WriteString(docxtest.Paragraph("Heading1", fmt.Sprintf("Section %d", i)))
			case 1:
				body.WriteString(`<w:p><w:r><w:rPr><w:b/></w:rPr><w:t>bold</w:t></w:r><w:r><w:t> text</w:t></w:r></w:p>`)
			case 2:
				body.WriteString(`<w:tbl><w:tr><w:tc><w:p><w:r><w:t>a</w:t></w:r></w:p></w:tc><w:tc><w:p><w:r><w:t>b</w:t></w:r></w:p></w:tc></w:tr></w:tbl>`)
			default:
				body.WriteString(docxtest.Paragraph("", "Plain paragraph text for benchmarking."))
			}
		}
		data := docxtest.Build(b, body.String(), nil)
		conv := NewDOCXConverter(nil)
		ctx := context.Background()

		b.Run(fmt.Sprintf("blocks_%d", size), func(b *testing.B) {
			b.ReportAllocs()
			for b.Loop() {
				if _, err := conv.ToHTML(ctx, data); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
