package docx

import (
	"fmt"
	"strings"
)

// Read parses a DOCX package held in memory.
//
// Styles, numbering and core properties are optional; a package without them
// reads as unstyled content. A missing main document part fails with
// ErrMissingPart, and malformed XML in any part that is read fails with
// ErrMalformedPart. Footnotes and endnotes are read from their own parts
// and returned in Document.Notes.
func Read(data []byte) (*Document, error) {
	pkg, err := openPackage(data)
	if err != nil {
		return nil, err
	}

	mainPart, err := pkg.mainPart()
	if err != nil {
		return nil, err
	}
	if !pkg.has(mainPart) {
		return nil, fmt.Errorf("%w: %s", ErrMissingPart, mainPart)
	}

	rels, err := pkg.relationships(mainPart)
	if err != nil {
		return nil, err
	}

	styles, err := readOptional(pkg, rels, relTypeStyles, "word/styles.xml", parseStyles, newStyleSheet)
	if err != nil {
		return nil, err
	}
	num, err := readOptional(pkg, rels, relTypeNumbering, "word/numbering.xml", parseNumbering, newNumbering)
	if err != nil {
		return nil, err
	}
	props, err := readProperties(pkg)
	if err != nil {
		return nil, err
	}

	root, err := pkg.readXML(mainPart)
	if err != nil {
		return nil, err
	}
	if root.local != "document" {
		return nil, fmt.Errorf("%w: %s: unexpected root element %q", ErrMalformedPart, mainPart, root.local)
	}

	br := &bodyReader{pkg: pkg, rels: rels, styles: styles, numbering: num}
	body, err := br.blocks(root.child("body").childrenOrNil())
	if err != nil {
		return nil, err
	}

	var notes []Note
	for _, src := range []struct {
		kind     NoteKind
		relType  string
		fallback string
	}{
		{Footnote, relTypeFootnotes, "word/footnotes.xml"},
		{Endnote, relTypeEndnotes, "word/endnotes.xml"},
	} {
		n, err := br.notes(rels, src.kind, src.relType, src.fallback)
		if err != nil {
			return nil, err
		}
		notes = append(notes, n...)
	}

	return &Document{
		Body:       body,
		Properties: props,
		Notes:      notes,
		Warnings:   br.warnings,
	}, nil
}

// notes reads a footnotes or endnotes part. Note bodies resolve images and
// hyperlinks through the notes part's own relationships. Separator notes are
// skipped.
func (b *bodyReader) notes(mainRels map[string]relationship, kind NoteKind, relType, fallback string) ([]Note, error) {
	name := targetByType(mainRels, relType)
	if name == "" {
		name = fallback
	}
	if !b.pkg.has(name) {
		return nil, nil
	}
	root, err := b.pkg.readXML(name)
	if err != nil {
		return nil, err
	}
	rels, err := b.pkg.relationships(name)
	if err != nil {
		return nil, err
	}

	nr := &bodyReader{pkg: b.pkg, rels: rels, styles: b.styles, numbering: b.numbering}
	var out []Note
	for _, n := range root.childrenNamed(string(kind)) {
		switch n.attr("type") {
		case "", "normal":
		default:
			continue
		}
		body, err := nr.blocks(n.children)
		if err != nil {
			return nil, err
		}
		out = append(out, Note{Kind: kind, ID: n.attr("id"), Body: body})
	}
	b.warnings = append(b.warnings, nr.warnings...)
	return out, nil
}

// readOptional reads a supporting part located through the main part's
// relationships, falling back to its conventional name. An absent part
// yields the empty value.
func readOptional[T any](
	pkg *opcPackage,
	rels map[string]relationship,
	relType, fallback string,
	parse func(*node) T,
	empty func() T,
) (T, error) {
	name := targetByType(rels, relType)
	if name == "" {
		name = fallback
	}
	if !pkg.has(name) {
		return empty(), nil
	}
	root, err := pkg.readXML(name)
	if err != nil {
		var zero T
		return zero, err
	}
	return parse(root), nil
}

func readProperties(pkg *opcPackage) (Properties, error) {
	rels, err := pkg.relationships("")
	if err != nil {
		return Properties{}, err
	}
	return readOptional(pkg, rels, relTypeCoreProperties, defaultCorePart,
		func(root *node) Properties {
			return Properties{
				Title:       textOf(root.child("title")),
				Subject:     textOf(root.child("subject")),
				Creator:     textOf(root.child("creator")),
				Keywords:    textOf(root.child("keywords")),
				Description: textOf(root.child("description")),
			}
		},
		func() Properties { return Properties{} },
	)
}

func textOf(n *node) string {
	if n == nil {
		return ""
	}
	return strings.TrimSpace(string(n.text))
}
