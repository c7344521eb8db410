package pipeline

import (
	"encoding/base64"
	"fmt"
	"strconv"

	"golang.org/x/net/html"

	"github.com/alnah/go-docx2pdf/internal/docx"
	"github.com/alnah/go-docx2pdf/internal/stylemap"
)

var (
	paragraphPath = stylemap.Path{{Tag: "p", Fresh: true}}
	tablePath     = stylemap.Path{{Tag: "table", Fresh: true}}
	strongPath    = stylemap.Path{{Tag: "strong"}}
	emPath        = stylemap.Path{{Tag: "em"}}
	strikePath    = stylemap.Path{{Tag: "s"}}
)

// htmlWriter converts a docx model into HTML nodes using a style map.
type htmlWriter struct {
	styles   *stylemap.StyleMap
	warnings []string
	seen     map[string]bool
	// listTags holds the list element (ul or ol) last used at each level.
	listTags []string
	notes    map[noteKey]docx.Note
	// noteRefs lists note references in document order.
	noteRefs []noteKey
}

type noteKey struct {
	kind docx.NoteKind
	id   string
}

func (k noteKey) anchor() string    { return string(k.kind) + "-" + k.id }
func (k noteKey) refAnchor() string { return string(k.kind) + "-ref-" + k.id }

func newHTMLWriter(styles *stylemap.StyleMap, notes []docx.Note) *htmlWriter {
	w := &htmlWriter{
		styles: styles,
		seen:   make(map[string]bool),
		notes:  make(map[noteKey]docx.Note, len(notes)),
	}
	for _, n := range notes {
		w.notes[noteKey{n.Kind, n.ID}] = n
	}
	return w
}

// warn records a warning once.
func (w *htmlWriter) warn(msg string) {
	if w.seen[msg] {
		return
	}
	w.seen[msg] = true
	w.warnings = append(w.warnings, msg)
}

func (w *htmlWriter) unrecognised(kind, name, id string) {
	w.warn(fmt.Sprintf("Unrecognised %s style: '%s' (Style ID: %s)", kind, name, id))
}

func (w *htmlWriter) blocks(blocks []docx.Block) []*hnode {
	var out []*hnode
	for _, b := range blocks {
		switch b := b.(type) {
		case *docx.Paragraph:
			out = append(out, w.paragraph(b)...)
		case *docx.Table:
			w.listTags = nil
			out = append(out, w.table(b)...)
		}
	}
	return out
}

func (w *htmlWriter) paragraph(p *docx.Paragraph) []*hnode {
	rule, matched := w.styles.Match(stylemap.Paragraph, p.StyleID, p.StyleName)
	if matched && rule.Ignore {
		return nil
	}

	var path stylemap.Path
	switch {
	case matched:
		path = rule.Path
		w.listTags = nil
	case p.Numbering != nil:
		path = w.listPath(p.Numbering)
	default:
		if p.StyleID != "" {
			w.unrecognised("paragraph", p.StyleName, p.StyleID)
		}
		path = paragraphPath
		w.listTags = nil
	}

	children := w.inlines(p.Children)
	if len(children) == 0 {
		return nil
	}
	return wrap(path, children)
}

// listPath builds ul|ol > li > ... > li:fresh for a list paragraph. Outer
// levels reuse the list element last opened at that level so nested items
// collapse into the enclosing list.
func (w *htmlWriter) listPath(num *docx.NumberingLevel) stylemap.Path {
	tag := "ul"
	if num.Ordered {
		tag = "ol"
	}

	level := max(num.Level, 0)
	if len(w.listTags) > level {
		w.listTags = w.listTags[:level]
	}
	for len(w.listTags) < level {
		w.listTags = append(w.listTags, tag)
	}
	w.listTags = append(w.listTags, tag)

	path := make(stylemap.Path, 0, 2*(level+1))
	for i, t := range w.listTags {
		path = append(path,
			stylemap.Element{Tag: t},
			stylemap.Element{Tag: "li", Fresh: i == level},
		)
	}
	return path
}

func (w *htmlWriter) inlines(inlines []docx.Inline) []*hnode {
	var out []*hnode
	for _, in := range inlines {
		switch in := in.(type) {
		case *docx.Run:
			out = append(out, w.run(in)...)
		case *docx.Hyperlink:
			out = append(out, w.hyperlink(in)...)
		case *docx.Bookmark:
			out = append(out, bookmark(in))
		case *docx.NoteReference:
			out = append(out, w.noteReference(in)...)
		case docx.Text:
			out = append(out, textNode(string(in)))
		case docx.Tab:
			out = append(out, textNode("\t"))
		case docx.Break:
			out = append(out, elementNode("br", nil, true, nil))
		case *docx.Image:
			out = append(out, w.image(in)...)
		}
	}
	return out
}

// run wraps run content in formatting elements, innermost first: strike,
// underline, vertical alignment, italic, bold, then the run style.
func (w *htmlWriter) run(r *docx.Run) []*hnode {
	var stylePath stylemap.Path
	if r.StyleID != "" {
		rule, ok := w.styles.Match(stylemap.Run, r.StyleID, r.StyleName)
		switch {
		case ok && rule.Ignore:
			return nil
		case ok:
			stylePath = rule.Path
		default:
			w.unrecognised("run", r.StyleName, r.StyleID)
		}
	}

	nodes := w.inlines(r.Children)
	var ignored bool
	apply := func(kind stylemap.Kind, fallback stylemap.Path) {
		rule, ok := w.styles.Match(kind, "", "")
		switch {
		case ok && rule.Ignore:
			ignored = true
		case ok:
			nodes = wrap(rule.Path, nodes)
		default:
			nodes = wrap(fallback, nodes)
		}
	}

	if r.Strike {
		apply(stylemap.Strike, strikePath)
	}
	if r.Underline {
		apply(stylemap.Underline, nil)
	}
	switch {
	case hasNoteReference(r):
		// Reference marks carry their own superscript.
	case r.VertAlign == docx.Subscript:
		nodes = wrap(stylemap.Path{{Tag: "sub"}}, nodes)
	case r.VertAlign == docx.Superscript:
		nodes = wrap(stylemap.Path{{Tag: "sup"}}, nodes)
	}
	if r.Italic {
		apply(stylemap.Italic, emPath)
	}
	if r.Bold {
		apply(stylemap.Bold, strongPath)
	}
	if ignored {
		return nil
	}
	return wrap(stylePath, nodes)
}

// hyperlink renders a link. Bookmarks inside the link are written before it,
// since anchors cannot nest.
func (w *htmlWriter) hyperlink(h *docx.Hyperlink) []*hnode {
	if h.Href == "" {
		return w.inlines(h.Children)
	}

	var anchors []*hnode
	content := make([]docx.Inline, 0, len(h.Children))
	for _, in := range h.Children {
		if b, ok := in.(*docx.Bookmark); ok {
			anchors = append(anchors, bookmark(b))
			continue
		}
		content = append(content, in)
	}
	link := elementNode("a", []html.Attribute{{Key: "href", Val: h.Href}}, false, w.inlines(content))
	return append(anchors, link)
}

func bookmark(b *docx.Bookmark) *hnode {
	a := elementNode("a", []html.Attribute{{Key: "id", Val: b.Name}}, true, nil)
	a.keep = true
	return a
}

func hasNoteReference(r *docx.Run) bool {
	for _, c := range r.Children {
		if _, ok := c.(*docx.NoteReference); ok {
			return true
		}
	}
	return false
}

// noteReference renders a numbered superscript link to the note. Numbers
// follow reference order across footnotes and endnotes.
func (w *htmlWriter) noteReference(ref *docx.NoteReference) []*hnode {
	key := noteKey{ref.Kind, ref.ID}
	if _, ok := w.notes[key]; !ok {
		w.warn(fmt.Sprintf("Could not find %s %s", ref.Kind, ref.ID))
		return nil
	}
	w.noteRefs = append(w.noteRefs, key)

	a := elementNode("a", []html.Attribute{
		{Key: "href", Val: "#" + key.anchor()},
		{Key: "id", Val: key.refAnchor()},
	}, true, []*hnode{textNode(fmt.Sprintf("[%d]", len(w.noteRefs)))})
	return []*hnode{elementNode("sup", nil, true, []*hnode{a})}
}

// noteList renders the referenced notes as an ordered list, each item
// ending with a link back to its reference. It returns nil when nothing
// was referenced.
func (w *htmlWriter) noteList() []*hnode {
	var items []*hnode
	done := make(map[noteKey]bool)
	// Note bodies may reference further notes; the slice grows while ranging.
	for i := 0; i < len(w.noteRefs); i++ {
		key := w.noteRefs[i]
		if done[key] {
			continue
		}
		done[key] = true

		w.listTags = nil
		body := w.blocks(w.notes[key].Body)
		back := elementNode("a", []html.Attribute{{Key: "href", Val: "#" + key.refAnchor()}}, true,
			[]*hnode{textNode("\u2191")})
		body = append(body, elementNode("p", nil, false, []*hnode{textNode(" "), back}))

		li := elementNode("li", []html.Attribute{{Key: "id", Val: key.anchor()}}, true, body)
		items = append(items, li)
	}
	if len(items) == 0 {
		return nil
	}
	return []*hnode{elementNode("ol", nil, true, items)}
}

func (w *htmlWriter) image(img *docx.Image) []*hnode {
	src := img.Src
	if img.Data != nil {
		src = "data:" + img.ContentType + ";base64," + base64.StdEncoding.EncodeToString(img.Data)
	}
	if src == "" {
		return nil
	}
	attrs := []html.Attribute{{Key: "src", Val: src}}
	if img.AltText != "" {
		attrs = append(attrs, html.Attribute{Key: "alt", Val: img.AltText})
	}
	return []*hnode{elementNode("img", attrs, true, nil)}
}

// table renders a table. When the matched rule's innermost element is a
// table, it becomes the table element; any other path wraps a plain table.
func (w *htmlWriter) table(t *docx.Table) []*hnode {
	path := tablePath
	if rule, ok := w.styles.Match(stylemap.Table, t.StyleID, t.StyleName); ok {
		if rule.Ignore {
			return nil
		}
		path = rule.Path
		if n := len(path); n == 0 || path[n-1].Tag != "table" {
			path = append(path[:n:n], tablePath...)
		}
	} else if t.StyleID != "" {
		w.unrecognised("table", t.StyleName, t.StyleID)
	}

	head := 0
	for head < len(t.Rows) && t.Rows[head].Header {
		head++
	}

	var children []*hnode
	if head == 0 || head == len(t.Rows) {
		children = w.rows(t.Rows, head > 0)
	} else {
		children = []*hnode{
			w.section("thead", w.rows(t.Rows[:head], true)),
			w.section("tbody", w.rows(t.Rows[head:], false)),
		}
	}

	nodes := wrap(path, children)
	markTables(nodes)
	return nodes
}

func (w *htmlWriter) section(tag string, rows []*hnode) *hnode {
	n := elementNode(tag, nil, true, rows)
	n.keep = true
	return n
}

func (w *htmlWriter) rows(rows []docx.TableRow, header bool) []*hnode {
	out := make([]*hnode, 0, len(rows))
	for _, row := range rows {
		tr := elementNode("tr", nil, true, nil)
		tr.keep = true
		for _, c := range row.Cells {
			tr.children = append(tr.children, w.cell(c, header))
		}
		out = append(out, tr)
	}
	return out
}

func (w *htmlWriter) cell(c docx.TableCell, header bool) *hnode {
	tag := "td"
	if header {
		tag = "th"
	}
	var attrs []html.Attribute
	if c.ColSpan > 1 {
		attrs = append(attrs, html.Attribute{Key: "colspan", Val: strconv.Itoa(c.ColSpan)})
	}
	if c.RowSpan > 1 {
		attrs = append(attrs, html.Attribute{Key: "rowspan", Val: strconv.Itoa(c.RowSpan)})
	}

	saved := w.listTags
	w.listTags = nil
	n := elementNode(tag, attrs, true, w.blocks(c.Blocks))
	w.listTags = saved
	n.keep = true
	return n
}

// markTables makes every table element fresh and kept: adjacent tables never
// merge and empty tables are still written.
func markTables(nodes []*hnode) {
	for _, n := range nodes {
		if n.tag == "table" {
			n.keep = true
			n.fresh = true
		}
		markTables(n.children)
	}
}
