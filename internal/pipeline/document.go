package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
)

// DefaultTitle is used when the document has no title property.
const DefaultTitle = "Document"

// ErrTemplateRender indicates the document template failed to execute.
var ErrTemplateRender = errors.New("document template rendering failed")

// documentData is the document template's input.
type documentData struct {
	Title string
	Style template.CSS
	Body  template.HTML
}

// DocumentWrapper embeds an HTML fragment into a complete page.
type DocumentWrapper interface {
	Wrap(ctx context.Context, fragment, title, css string) (string, error)
}

// DocumentTemplate renders the page around a converted fragment.
type DocumentTemplate struct {
	tmpl *template.Template
}

// NewDocumentTemplate parses the page template. The template receives
// .Title, .Style and .Body.
func NewDocumentTemplate(content string) (*DocumentTemplate, error) {
	tmpl, err := template.New("document").Parse(content)
	if err != nil {
		return nil, fmt.Errorf("parsing document template: %w", err)
	}
	return &DocumentTemplate{tmpl: tmpl}, nil
}

// Wrap renders the page. The fragment is inserted unmodified; the title is
// escaped; css is emitted inside the page's style element.
func (d *DocumentTemplate) Wrap(ctx context.Context, fragment, title, css string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if title == "" {
		title = DefaultTitle
	}

	var buf bytes.Buffer
	data := documentData{
		Title: title,
		Style: template.CSS(sanitizeCSS(css)), // #nosec G203 -- style comes from trusted assets or config
		Body:  template.HTML(fragment),        // #nosec G203 -- fragment is serialized by the HTML writer
	}
	if err := d.tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("%w: %v", ErrTemplateRender, err)
	}
	return buf.String(), nil
}
