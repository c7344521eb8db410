// Package docxtest builds in-memory DOCX packages for tests.
package docxtest

import (
	"archive/zip"
	"bytes"
	"sort"
	"testing"
)

// Namespaces declares the prefixes used by fixture markup.
const Namespaces = `xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main" ` +
	`xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships" ` +
	`xmlns:wp="http://schemas.openxmlformats.org/drawingml/2006/wordprocessingDrawing" ` +
	`xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" ` +
	`xmlns:pic="http://schemas.openxmlformats.org/drawingml/2006/picture" ` +
	`xmlns:mc="http://schemas.openxmlformats.org/markup-compatibility/2006" ` +
	`xmlns:wps="http://schemas.microsoft.com/office/word/2010/wordprocessingShape" ` +
	`xmlns:v="urn:schemas-microsoft-com:vml"`

// PackageRels is a package relationships part pointing at word/document.xml
// and docProps/core.xml.
const PackageRels = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
  <Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>
  <Relationship Id="rId2" Type="http://schemas.openxmlformats.org/package/2006/relationships/metadata/core-properties" Target="docProps/core.xml"/>
</Relationships>`

// ContentTypes is a minimal [Content_Types].xml part.
const ContentTypes = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
  <Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
  <Default Extension="xml" ContentType="application/xml"/>
</Types>`

// StandardStyles declares the paragraph and character styles the built-in
// style map refers to.
const StandardStyles = `<w:style w:type="paragraph" w:styleId="Title"><w:name w:val="Title"/></w:style>
<w:style w:type="paragraph" w:styleId="Heading1"><w:name w:val="heading 1"/></w:style>
<w:style w:type="paragraph" w:styleId="Heading2"><w:name w:val="heading 2"/></w:style>
<w:style w:type="paragraph" w:styleId="Heading3"><w:name w:val="heading 3"/></w:style>
<w:style w:type="paragraph" w:styleId="Heading4"><w:name w:val="heading 4"/></w:style>
<w:style w:type="character" w:styleId="Strong"><w:name w:val="Strong"/></w:style>
<w:style w:type="table" w:styleId="TableGrid"><w:name w:val="Table Grid"/></w:style>`

// Document wraps body markup in a w:document part.
func Document(body string) string {
	return `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document ` + Namespaces + `><w:body>` + body + `</w:body></w:document>`
}

// Styles wraps w:style elements in a styles part.
func Styles(entries string) string {
	return `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:styles ` + Namespaces + `>` + entries + `</w:styles>`
}

// Rels wraps Relationship elements in a relationships part.
func Rels(entries string) string {
	return `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
		entries + `</Relationships>`
}

// Notes wraps note elements in a footnotes or endnotes part. Kind is
// "footnote" or "endnote".
func Notes(kind, entries string) string {
	return `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:` + kind + `s ` + Namespaces + `>` +
		`<w:` + kind + ` w:type="separator" w:id="-1"><w:p><w:r><w:separator/></w:r></w:p></w:` + kind + `>` +
		`<w:` + kind + ` w:type="continuationSeparator" w:id="0"><w:p><w:r><w:continuationSeparator/></w:r></w:p></w:` + kind + `>` +
		entries + `</w:` + kind + `s>`
}

// Note returns one footnote or endnote holding a single paragraph.
func Note(kind, id, text string) string {
	return `<w:` + kind + ` w:id="` + id + `">` + Paragraph("", text) + `</w:` + kind + `>`
}

// Paragraph returns a paragraph with an optional style and one text run.
func Paragraph(styleID, text string) string {
	ppr := ""
	if styleID != "" {
		ppr = `<w:pPr><w:pStyle w:val="` + styleID + `"/></w:pPr>`
	}
	return `<w:p>` + ppr + `<w:r><w:t xml:space="preserve">` + text + `</w:t></w:r></w:p>`
}

// Zip packs parts into a ZIP archive. Parts are written in name order.
func Zip(t testing.TB, parts map[string]string) []byte {
	t.Helper()

	names := make([]string, 0, len(parts))
	for name := range parts {
		names = append(names, name)
	}
	sort.Strings(names)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, name := range names {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("creating %s: %v", name, err)
		}
		if _, err := w.Write([]byte(parts[name])); err != nil {
			t.Fatalf("writing %s: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("closing zip: %v", err)
	}
	return buf.Bytes()
}

// Build creates a package around body markup with the standard styles.
// Extra parts override or extend the defaults.
func Build(t testing.TB, body string, extra map[string]string) []byte {
	t.Helper()

	parts := map[string]string{
		"[Content_Types].xml": ContentTypes,
		"_rels/.rels":         PackageRels,
		"word/document.xml":   Document(body),
		"word/styles.xml":     Styles(StandardStyles),
	}
	for name, content := range extra {
		parts[name] = content
	}
	return Zip(t, parts)
}
