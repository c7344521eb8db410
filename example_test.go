package docx2pdf_test

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"

	"github.com/alnah/go-docx2pdf"
	"github.com/alnah/go-docx2pdf/internal/docxtest"
)

// exampleDOCX packs body markup into a minimal DOCX package.
func exampleDOCX(body string) []byte {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range map[string]string{
		"[Content_Types].xml": docxtest.ContentTypes,
		"_rels/.rels":         docxtest.PackageRels,
		"word/document.xml":   docxtest.Document(body),
		"word/styles.xml": docxtest.Styles(docxtest.StandardStyles +
			`<w:style w:type="paragraph" w:styleId="Quote"><w:name w:val="Quote"/></w:style>`),
	} {
		w, _ := zw.Create(name)
		_, _ = w.Write([]byte(content))
	}
	_ = zw.Close()
	return buf.Bytes()
}

// Example converts a document to HTML. Leave HTMLOnly unset to render the
// PDF (requires Chrome).
func Example() {
	conv, err := docx2pdf.NewConverter()
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	defer conv.Close()

	result, err := conv.Convert(context.Background(), docx2pdf.Input{
		DOCX:     exampleDOCX(docxtest.Paragraph("Title", "Hello World")),
		HTMLOnly: true,
	})
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	fmt.Println(bytes.Contains(result.HTML, []byte(`<h1 class="title">Hello World</h1>`)))
	// Output: true
}

// ExampleWithStyleMap maps a custom paragraph style to an HTML element.
func ExampleWithStyleMap() {
	conv, err := docx2pdf.NewConverter(
		docx2pdf.WithStyleMap("p[style-name='Quote'] => blockquote:fresh"),
	)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	defer conv.Close()

	result, err := conv.Convert(context.Background(), docx2pdf.Input{
		DOCX:     exampleDOCX(docxtest.Paragraph("Quote", "Less is more.")),
		HTMLOnly: true,
	})
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	fmt.Println(bytes.Contains(result.HTML, []byte("<blockquote>Less is more.</blockquote>")))
	fmt.Println(len(result.Warnings))
	// Output:
	// true
	// 0
}

// Example_warnings shows a paragraph style no rule recognises.
func Example_warnings() {
	conv, err := docx2pdf.NewConverter()
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	defer conv.Close()

	result, err := conv.Convert(context.Background(), docx2pdf.Input{
		DOCX:     exampleDOCX(docxtest.Paragraph("Quote", "Unmapped.")),
		HTMLOnly: true,
	})
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	for _, w := range result.Warnings {
		fmt.Println(w)
	}
	// Output: Unrecognised paragraph style: 'Quote' (Style ID: Quote)
}
