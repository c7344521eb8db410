package pipeline

import (
	"strings"
	"testing"

	"github.com/alnah/go-docx2pdf/internal/docxtest"
)

const noteStyles = `<w:style w:type="character" w:styleId="FootnoteReference"><w:name w:val="footnote reference"/></w:style>
<w:style w:type="paragraph" w:styleId="FootnoteText"><w:name w:val="footnote text"/></w:style>
<w:style w:type="character" w:styleId="EndnoteReference"><w:name w:val="endnote reference"/></w:style>`

func noteRef(kind, style, id string) string {
	return `<w:r><w:rPr><w:rStyle w:val="` + style + `"/><w:vertAlign w:val="superscript"/></w:rPr>` +
		`<w:` + kind + `Reference w:id="` + id + `"/></w:r>`
}

// ---------------------------------------------------------------------------
// TestDOCXConverter_ToHTML - Footnotes and endnotes
// ---------------------------------------------------------------------------

func TestDOCXConverter_Notes(t *testing.T) {
	t.Parallel()

	body := `<w:p><w:r><w:t>Main</w:t></w:r>` + noteRef("footnote", "FootnoteReference", "1") +
		`<w:r><w:t xml:space="preserve"> and </w:t></w:r>` + noteRef("endnote", "EndnoteReference", "4") + `</w:p>`
	extra := map[string]string{
		"word/styles.xml": docxtest.Styles(docxtest.StandardStyles + noteStyles),
		"word/footnotes.xml": docxtest.Notes("footnote",
			`<w:footnote w:id="1"><w:p><w:pPr><w:pStyle w:val="FootnoteText"/></w:pPr>`+
				`<w:r><w:t>Foot text</w:t></w:r></w:p></w:footnote>`),
		"word/endnotes.xml": docxtest.Notes("endnote", docxtest.Note("endnote", "4", "End text")),
	}

	frag := convert(t, nil, body, extra)

	want := `<p>Main<sup><a href="#footnote-1" id="footnote-ref-1">[1]</a></sup> and ` +
		`<sup><a href="#endnote-4" id="endnote-ref-4">[2]</a></sup></p>` +
		`<ol><li id="footnote-1"><p>Foot text <a href="#footnote-ref-1">↑</a></p></li>` +
		`<li id="endnote-4"><p>End text <a href="#endnote-ref-4">↑</a></p></li></ol>`
	if frag.HTML != want {
		t.Errorf("HTML =\n%s\nwant\n%s", frag.HTML, want)
	}
	if len(frag.Warnings) != 0 {
		t.Errorf("Warnings = %v, want none", frag.Warnings)
	}
}

func TestDOCXConverter_UnreferencedNotesOmitted(t *testing.T) {
	t.Parallel()

	frag := convert(t, nil, docxtest.Paragraph("", "Main"), map[string]string{
		"word/footnotes.xml": docxtest.Notes("footnote", docxtest.Note("footnote", "1", "Orphan")),
	})

	if frag.HTML != `<p>Main</p>` {
		t.Errorf("HTML = %q, want only the body", frag.HTML)
	}
}

func TestDOCXConverter_MissingNote(t *testing.T) {
	t.Parallel()

	frag := convert(t, nil, `<w:p><w:r><w:t>Main</w:t></w:r><w:r><w:footnoteReference w:id="9"/></w:r></w:p>`, nil)

	if frag.HTML != `<p>Main</p>` {
		t.Errorf("HTML = %q, want reference dropped", frag.HTML)
	}
	if len(frag.Warnings) != 1 || !strings.Contains(frag.Warnings[0], "footnote 9") {
		t.Errorf("Warnings = %v, want one missing-footnote warning", frag.Warnings)
	}
}

// ---------------------------------------------------------------------------
// TestDOCXConverter_ToHTML - Text boxes and anchors
// ---------------------------------------------------------------------------

func TestDOCXConverter_TextBox(t *testing.T) {
	t.Parallel()

	body := `<w:p><w:r><w:t>Main</w:t></w:r><w:r><w:pict><v:shape><v:textbox><w:txbxContent>` +
		docxtest.Paragraph("Heading2", "Boxed") +
		`</w:txbxContent></v:textbox></v:shape></w:pict></w:r></w:p>`

	frag := convert(t, nil, body, nil)

	if want := `<p>Main</p><h2>Boxed</h2>`; frag.HTML != want {
		t.Errorf("HTML = %q, want %q", frag.HTML, want)
	}
}

func TestDOCXConverter_BookmarkInsideHyperlink(t *testing.T) {
	t.Parallel()

	body := `<w:p><w:hyperlink w:anchor="target"><w:bookmarkStart w:id="3" w:name="here"/>` +
		`<w:r><w:t>link</w:t></w:r></w:hyperlink></w:p>`

	frag := convert(t, nil, body, nil)

	if want := `<p><a id="here"></a><a href="#target">link</a></p>`; frag.HTML != want {
		t.Errorf("HTML = %q, want %q", frag.HTML, want)
	}

	rewritten, err := RewriteRelativePaths(frag.HTML, testSourceDir())
	if err != nil {
		t.Fatalf("RewriteRelativePaths() error = %v", err)
	}
	if rewritten != frag.HTML {
		t.Errorf("RewriteRelativePaths() = %q, want fragment unchanged", rewritten)
	}
}
