package docx_test

import (
	"reflect"
	"testing"

	"github.com/alnah/go-docx2pdf/internal/docx"
	"github.com/alnah/go-docx2pdf/internal/docxtest"
)

const relsNS = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"

// ---------------------------------------------------------------------------
// TestRead - Footnotes and endnotes
// ---------------------------------------------------------------------------

func TestRead_NoteReferences(t *testing.T) {
	t.Parallel()

	data := buildDOCX(t,
		`<w:p><w:r><w:t>Main</w:t></w:r>`+
			`<w:r><w:rPr><w:rStyle w:val="FootnoteReference"/></w:rPr><w:footnoteReference w:id="1"/></w:r>`+
			`<w:r><w:endnoteReference w:id="2"/></w:r></w:p>`,
		nil)

	doc, err := docx.Read(data)
	if err != nil {
		t.Fatalf("Read() unexpected error: %v", err)
	}

	p := doc.Body[0].(*docx.Paragraph)
	var refs []docx.NoteReference
	for _, in := range p.Children {
		for _, c := range in.(*docx.Run).Children {
			if ref, ok := c.(*docx.NoteReference); ok {
				refs = append(refs, *ref)
			}
		}
	}
	want := []docx.NoteReference{{Kind: docx.Footnote, ID: "1"}, {Kind: docx.Endnote, ID: "2"}}
	if !reflect.DeepEqual(refs, want) {
		t.Errorf("references = %+v, want %+v", refs, want)
	}
}

func TestRead_Notes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		parts map[string]string
		want  []docx.Note
	}{
		{
			name: "footnotes through relationship",
			parts: map[string]string{
				"word/_rels/document.xml.rels": documentRels(
					`<Relationship Id="rId7" Type="` + relsNS + `/footnotes" Target="notes/fn.xml"/>`),
				"word/notes/fn.xml": docxtest.Notes("footnote", docxtest.Note("footnote", "1", "First note")),
			},
			want: []docx.Note{{Kind: docx.Footnote, ID: "1", Body: textBody("First note")}},
		},
		{
			name: "conventional part names",
			parts: map[string]string{
				"word/footnotes.xml": docxtest.Notes("footnote", docxtest.Note("footnote", "1", "Foot")),
				"word/endnotes.xml": docxtest.Notes("endnote",
					docxtest.Note("endnote", "1", "End one")+docxtest.Note("endnote", "2", "End two")),
			},
			want: []docx.Note{
				{Kind: docx.Footnote, ID: "1", Body: textBody("Foot")},
				{Kind: docx.Endnote, ID: "1", Body: textBody("End one")},
				{Kind: docx.Endnote, ID: "2", Body: textBody("End two")},
			},
		},
		{
			name:  "separators only",
			parts: map[string]string{"word/footnotes.xml": docxtest.Notes("footnote", "")},
			want:  nil,
		},
		{
			name:  "no notes parts",
			parts: nil,
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			doc, err := docx.Read(buildDOCX(t, `<w:p><w:r><w:t>Main</w:t></w:r></w:p>`, tt.parts))
			if err != nil {
				t.Fatalf("Read() unexpected error: %v", err)
			}
			if !reflect.DeepEqual(doc.Notes, tt.want) {
				t.Errorf("Notes = %#v, want %#v", doc.Notes, tt.want)
			}
		})
	}
}

func TestRead_NotesMalformed(t *testing.T) {
	t.Parallel()

	_, err := docx.Read(buildDOCX(t, "", map[string]string{"word/endnotes.xml": "<w:endnotes"}))
	if err == nil {
		t.Fatal("Read() expected error for malformed endnotes part")
	}
}

// ---------------------------------------------------------------------------
// TestRead - Text boxes
// ---------------------------------------------------------------------------

func TestRead_TextBoxes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
	}{
		{
			name: "vml text box",
			body: `<w:p><w:r><w:t>Main</w:t></w:r><w:r><w:pict><v:shape><v:textbox><w:txbxContent>` +
				docxtest.Paragraph("", "Boxed") +
				`</w:txbxContent></v:textbox></v:shape></w:pict></w:r></w:p>`,
		},
		{
			name: "drawing text box",
			body: `<w:p><w:r><w:t>Main</w:t></w:r><w:r><w:drawing><wp:anchor><a:graphic><a:graphicData>` +
				`<wps:wsp><wps:txbx><w:txbxContent>` + docxtest.Paragraph("", "Boxed") +
				`</w:txbxContent></wps:txbx></wps:wsp></a:graphicData></a:graphic></wp:anchor></w:drawing></w:r></w:p>`,
		},
		{
			name: "alternate content prefers choice",
			body: `<w:p><w:r><w:t>Main</w:t></w:r><w:r><mc:AlternateContent>` +
				`<mc:Choice Requires="wps"><w:drawing><wps:txbx><w:txbxContent>` + docxtest.Paragraph("", "Boxed") +
				`</w:txbxContent></wps:txbx></w:drawing></mc:Choice>` +
				`<mc:Fallback><w:pict><v:textbox><w:txbxContent>` + docxtest.Paragraph("", "Boxed") +
				`</w:txbxContent></v:textbox></w:pict></mc:Fallback></mc:AlternateContent></w:r></w:p>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			doc, err := docx.Read(buildDOCX(t, tt.body, nil))
			if err != nil {
				t.Fatalf("Read() unexpected error: %v", err)
			}
			if len(doc.Body) != 2 {
				t.Fatalf("Body len = %d, want 2 (paragraph, then text box paragraph)", len(doc.Body))
			}
			if got := paragraphText(doc.Body[0]); got != "Main" {
				t.Errorf("first block text = %q, want Main", got)
			}
			if got := paragraphText(doc.Body[1]); got != "Boxed" {
				t.Errorf("second block text = %q, want Boxed", got)
			}
		})
	}
}

func TestRead_TextBoxInTableCell(t *testing.T) {
	t.Parallel()

	body := `<w:tbl><w:tr><w:tc><w:p><w:r><w:pict><v:textbox><w:txbxContent>` +
		docxtest.Paragraph("", "Cell box") +
		`</w:txbxContent></v:textbox></w:pict></w:r></w:p></w:tc></w:tr></w:tbl>` +
		docxtest.Paragraph("", "After")

	doc, err := docx.Read(buildDOCX(t, body, nil))
	if err != nil {
		t.Fatalf("Read() unexpected error: %v", err)
	}
	if len(doc.Body) != 2 {
		t.Fatalf("Body len = %d, want 2", len(doc.Body))
	}
	cell := doc.Body[0].(*docx.Table).Rows[0].Cells[0]
	if len(cell.Blocks) != 2 || paragraphText(cell.Blocks[1]) != "Cell box" {
		t.Errorf("cell blocks = %#v, want text box paragraph after the cell paragraph", cell.Blocks)
	}
	if got := paragraphText(doc.Body[1]); got != "After" {
		t.Errorf("trailing paragraph = %q, want After", got)
	}
}

// textBody is the model of a single unstyled one-run paragraph.
func textBody(text string) []docx.Block {
	return []docx.Block{&docx.Paragraph{Children: []docx.Inline{
		&docx.Run{Children: []docx.Inline{docx.Text(text)}},
	}}}
}

func paragraphText(b docx.Block) string {
	p, ok := b.(*docx.Paragraph)
	if !ok {
		return ""
	}
	var text string
	for _, in := range p.Children {
		if r, ok := in.(*docx.Run); ok {
			for _, c := range r.Children {
				if t, ok := c.(docx.Text); ok {
					text += string(t)
				}
			}
		}
	}
	return text
}
