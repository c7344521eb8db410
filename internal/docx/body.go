package docx

import (
	"errors"
	"fmt"
	"io/fs"
	"mime"
	"path"
	"strconv"
	"strings"
)

// bodyReader converts the main document tree into the model.
type bodyReader struct {
	pkg       *opcPackage
	rels      map[string]relationship
	styles    *styleSheet
	numbering *numbering
	warnings  []string
	// floating collects text-box content met inside the paragraph being
	// read; it is emitted after that paragraph.
	floating []Block
}

func (b *bodyReader) warnf(format string, args ...any) {
	b.warnings = append(b.warnings, fmt.Sprintf(format, args...))
}

// blocks reads body-level content in document order.
func (b *bodyReader) blocks(nodes []*node) ([]Block, error) {
	var out []Block
	for _, n := range nodes {
		switch n.local {
		case "p":
			saved := b.floating
			b.floating = nil
			p, err := b.paragraph(n)
			if err != nil {
				return nil, err
			}
			out = append(out, p)
			out = append(out, b.floating...)
			b.floating = saved
		case "tbl":
			t, err := b.table(n)
			if err != nil {
				return nil, err
			}
			out = append(out, t)
		case "sdt", "sdtContent", "ins", "customXml", "smartTag", "AlternateContent":
			inner, err := b.blocks(transparent(n))
			if err != nil {
				return nil, err
			}
			out = append(out, inner...)
		}
	}
	return out, nil
}

// transparent returns the children of a wrapper element whose content is
// rendered as if it were not wrapped.
func transparent(n *node) []*node {
	switch n.local {
	case "sdt":
		return n.child("sdtContent").childrenOrNil()
	case "AlternateContent":
		return alternate(n)
	}
	return n.children
}

func (n *node) childrenOrNil() []*node {
	if n == nil {
		return nil
	}
	return n.children
}

func (b *bodyReader) paragraph(n *node) (*Paragraph, error) {
	p := &Paragraph{}
	pPr := n.child("pPr")
	p.StyleID = pPr.child("pStyle").attr("val")

	style, _ := b.styles.lookup("paragraph", p.StyleID)
	p.StyleName = style.Name

	if numPr := pPr.child("numPr"); numPr != nil {
		numID := numPr.child("numId").attr("val")
		level := atoiOr(numPr.child("ilvl").attr("val"), 0)
		if numID == "" {
			numID = style.NumID
		}
		p.Numbering = b.numbering.level(numID, level)
	} else if style.NumID != "" {
		p.Numbering = b.numbering.level(style.NumID, style.Level)
	}

	children, err := b.inlines(n.children)
	if err != nil {
		return nil, err
	}
	p.Children = children
	return p, nil
}

// inlines reads paragraph or hyperlink content.
func (b *bodyReader) inlines(nodes []*node) ([]Inline, error) {
	var out []Inline
	for _, n := range nodes {
		switch n.local {
		case "r":
			r, err := b.run(n)
			if err != nil {
				return nil, err
			}
			out = append(out, r)
		case "hyperlink":
			h, err := b.hyperlink(n)
			if err != nil {
				return nil, err
			}
			out = append(out, h)
		case "bookmarkStart":
			// _GoBack marks the last edit position.
			if name := n.attr("name"); name != "" && name != "_GoBack" {
				out = append(out, &Bookmark{Name: name})
			}
		case "sdt", "sdtContent", "ins", "customXml", "smartTag", "fldSimple", "AlternateContent":
			inner, err := b.inlines(transparent(n))
			if err != nil {
				return nil, err
			}
			out = append(out, inner...)
		}
	}
	return out, nil
}

func (b *bodyReader) hyperlink(n *node) (*Hyperlink, error) {
	h := &Hyperlink{}
	if id := n.attr("id"); id != "" {
		if rel, ok := b.rels[id]; ok {
			h.Href = rel.Target
		}
	}
	if anchor := n.attr("anchor"); anchor != "" {
		h.Href += "#" + anchor
	}

	children, err := b.inlines(n.children)
	if err != nil {
		return nil, err
	}
	h.Children = children
	return h, nil
}

func (b *bodyReader) run(n *node) (*Run, error) {
	r := &Run{}
	if rPr := n.child("rPr"); rPr != nil {
		r.StyleID = rPr.child("rStyle").attr("val")
		r.Bold = rPr.child("b").toggle()
		r.Italic = rPr.child("i").toggle()
		r.Underline = rPr.child("u").toggle()
		r.Strike = rPr.child("strike").toggle() || rPr.child("dstrike").toggle()
		switch va := VertAlign(rPr.child("vertAlign").attr("val")); va {
		case Superscript, Subscript:
			r.VertAlign = va
		}
	}
	r.StyleName = b.styles.name("character", r.StyleID)

	children, err := b.runContent(n.children)
	if err != nil {
		return nil, err
	}
	r.Children = children
	return r, nil
}

// runContent reads the children of a w:r element.
func (b *bodyReader) runContent(nodes []*node) ([]Inline, error) {
	var out []Inline
	for _, n := range nodes {
		switch n.local {
		case "t":
			out = append(out, Text(n.text))
		case "tab":
			out = append(out, Tab{})
		case "cr":
			out = append(out, Break{})
		case "br":
			switch n.attr("type") {
			case "", "textWrapping":
				out = append(out, Break{})
			}
		case "noBreakHyphen":
			out = append(out, Text("\u2011"))
		case "softHyphen":
			out = append(out, Text("\u00ad"))
		case "sym":
			if s := symbol(n.attr("char")); s != "" {
				out = append(out, Text(s))
			}
		case "footnoteReference":
			out = append(out, &NoteReference{Kind: Footnote, ID: n.attr("id")})
		case "endnoteReference":
			out = append(out, &NoteReference{Kind: Endnote, ID: n.attr("id")})
		case "drawing", "pict":
			if box := n.find("txbxContent"); box != nil {
				inner, err := b.blocks(box.children)
				if err != nil {
					return nil, err
				}
				b.floating = append(b.floating, inner...)
				continue
			}
			img, err := b.image(n)
			if err != nil {
				return nil, err
			}
			if img != nil {
				out = append(out, img)
			}
		case "AlternateContent":
			inner, err := b.runContent(alternate(n))
			if err != nil {
				return nil, err
			}
			out = append(out, inner...)
		}
	}
	return out, nil
}

// symbol decodes a w:sym character code. Codes in the F000 private-use
// range address symbol fonts; the low byte is kept.
func symbol(code string) string {
	v, err := strconv.ParseUint(code, 16, 32)
	if err != nil || v == 0 {
		return ""
	}
	if v >= 0xF000 && v <= 0xF0FF {
		v -= 0xF000
	}
	return string(rune(v))
}

// image resolves the picture referenced by a w:drawing (a:blip) or w:pict
// (v:imagedata) element. It returns nil when the element holds no picture.
func (b *bodyReader) image(n *node) (*Image, error) {
	img := &Image{}
	var embedID, linkID string

	if blip := n.find("blip"); blip != nil {
		embedID, linkID = blip.attr("embed"), blip.attr("link")
		docPr := n.find("docPr")
		img.AltText = docPr.attr("descr")
		if img.AltText == "" {
			img.AltText = docPr.attr("title")
		}
	} else if data := n.find("imagedata"); data != nil {
		embedID = data.attr("id")
		img.AltText = data.attr("title")
	} else {
		return nil, nil
	}

	id := embedID
	if id == "" {
		id = linkID
	}
	rel, ok := b.rels[id]
	if !ok {
		b.warnf("Could not find image relationship %q", id)
		return nil, nil
	}

	if rel.External {
		img.Src = rel.Target
		return img, nil
	}

	data, err := b.pkg.read(rel.Target)
	if errors.Is(err, fs.ErrNotExist) {
		b.warnf("Could not find image file %q", rel.Target)
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	img.Data = data
	img.ContentType = contentType(rel.Target)
	return img, nil
}

var imageTypes = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
	".bmp":  "image/bmp",
	".tif":  "image/tiff",
	".tiff": "image/tiff",
	".svg":  "image/svg+xml",
	".webp": "image/webp",
	".emf":  "image/x-emf",
	".wmf":  "image/x-wmf",
}

func contentType(part string) string {
	ext := strings.ToLower(path.Ext(part))
	if ct, ok := imageTypes[ext]; ok {
		return ct
	}
	if ct := mime.TypeByExtension(ext); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
