package pipeline

import (
	"context"
	"fmt"

	"github.com/alnah/go-docx2pdf/internal/docx"
	"github.com/alnah/go-docx2pdf/internal/stylemap"
)

// Fragment is the HTML body produced from a DOCX document.
type Fragment struct {
	HTML string
	// Title comes from the document's core properties and may be empty.
	Title string
	// Warnings lists unrecognised styles and unreadable images.
	Warnings []string
}

// HTMLConverter defines the contract for DOCX to HTML conversion.
type HTMLConverter interface {
	ToHTML(ctx context.Context, data []byte) (*Fragment, error)
}

// DOCXConverter converts DOCX packages to HTML fragments through a style map.
// It performs no disk or network access.
type DOCXConverter struct {
	styles *stylemap.StyleMap
}

// NewDOCXConverter creates a DOCXConverter. A nil style map uses the
// built-in and default rules.
func NewDOCXConverter(styles *stylemap.StyleMap) *DOCXConverter {
	if styles == nil {
		styles = stylemap.New(nil, true)
	}
	return &DOCXConverter{styles: styles}
}

// ToHTML reads the DOCX package and renders its body as an HTML fragment.
// Referenced footnotes and endnotes follow the body as an ordered list.
func (c *DOCXConverter) ToHTML(ctx context.Context, data []byte) (*Fragment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	doc, err := docx.Read(data)
	if err != nil {
		return nil, fmt.Errorf("reading DOCX: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	w := newHTMLWriter(c.styles, doc.Notes)
	nodes := w.blocks(doc.Body)
	nodes = append(nodes, w.noteList()...)
	body, err := renderFragment(nodes)
	if err != nil {
		return nil, fmt.Errorf("rendering HTML: %w", err)
	}

	return &Fragment{
		HTML:     body,
		Title:    doc.Properties.Title,
		Warnings: append(doc.Warnings, w.warnings...),
	}, nil
}
