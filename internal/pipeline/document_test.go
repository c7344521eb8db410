package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/alnah/go-docx2pdf/internal/assets"
)

func newTestTemplate(t *testing.T) *DocumentTemplate {
	t.Helper()

	content, err := assets.LoadTemplate(assets.DocumentTemplateName)
	if err != nil {
		t.Fatalf("LoadTemplate() unexpected error: %v", err)
	}
	tmpl, err := NewDocumentTemplate(content)
	if err != nil {
		t.Fatalf("NewDocumentTemplate() unexpected error: %v", err)
	}
	return tmpl
}

func TestDocumentTemplate_Wrap(t *testing.T) {
	t.Parallel()

	tmpl := newTestTemplate(t)

	tests := []struct {
		name     string
		fragment string
		title    string
		css      string
		want     []string
		wantNot  []string
	}{
		{
			name:     "fragment inserted unmodified",
			fragment: `<h1 class="title">Hello World</h1>`,
			title:    "Hello",
			want: []string{
				"<!DOCTYPE html>",
				`<meta charset="UTF-8">`,
				"<title>Hello</title>",
				"<body>\n<h1 class=\"title\">Hello World</h1>",
			},
		},
		{
			name:  "default title",
			title: "",
			want:  []string{"<title>Document</title>"},
		},
		{
			name:    "title escaped",
			title:   "<script>x</script>",
			want:    []string{"<title>&lt;script&gt;x&lt;/script&gt;</title>"},
			wantNot: []string{"<title><script>"},
		},
		{
			name:    "style emitted",
			css:     "body { color: red; }",
			want:    []string{"<style>\nbody { color: red; }\n</style>"},
			wantNot: []string{"ZgotmplZ"},
		},
		{
			name:    "style cannot close its element",
			css:     "p{}</style><script>alert(1)</script>",
			want:    []string{`p{}<\/style>`},
			wantNot: []string{"</style><script>"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := tmpl.Wrap(context.Background(), tt.fragment, tt.title, tt.css)
			if err != nil {
				t.Fatalf("Wrap() unexpected error: %v", err)
			}
			for _, want := range tt.want {
				if !strings.Contains(got, want) {
					t.Errorf("Wrap() missing %q in:\n%s", want, got)
				}
			}
			for _, bad := range tt.wantNot {
				if strings.Contains(got, bad) {
					t.Errorf("Wrap() should not contain %q in:\n%s", bad, got)
				}
			}
		})
	}
}

func TestDocumentTemplate_ContextCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestTemplate(t).Wrap(ctx, "<p>x</p>", "", "")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Wrap() error = %v, want context.Canceled", err)
	}
}

func TestNewDocumentTemplate_Invalid(t *testing.T) {
	t.Parallel()

	if _, err := NewDocumentTemplate("{{.Title"); err == nil {
		t.Error("NewDocumentTemplate() expected error for unclosed action")
	}
}

func TestDocumentTemplate_ExecuteError(t *testing.T) {
	t.Parallel()

	tmpl, err := NewDocumentTemplate("{{.Missing}}")
	if err != nil {
		t.Fatalf("NewDocumentTemplate() unexpected error: %v", err)
	}
	_, err = tmpl.Wrap(context.Background(), "", "", "")
	if !errors.Is(err, ErrTemplateRender) {
		t.Errorf("Wrap() error = %v, want ErrTemplateRender", err)
	}
}
