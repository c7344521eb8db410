package docx

// Document is the rendered content of a DOCX package.
type Document struct {
	Body       []Block
	Properties Properties
	// Notes holds footnotes and endnotes in part order, separators excluded.
	Notes []Note
	// Warnings lists recoverable problems found while reading, such as
	// images whose parts are missing.
	Warnings []string
}

// Properties holds core document metadata from docProps/core.xml.
type Properties struct {
	Title       string
	Subject     string
	Creator     string
	Keywords    string
	Description string
}

// Block is a body-level element: *Paragraph or *Table.
type Block interface {
	block()
}

// Inline is paragraph content: *Run, *Hyperlink, *Bookmark, Text, Tab,
// Break, *Image or *NoteReference.
type Inline interface {
	inline()
}

// Paragraph is a w:p element.
type Paragraph struct {
	StyleID   string
	StyleName string
	// Numbering is set for list paragraphs.
	Numbering *NumberingLevel
	Children  []Inline
}

// NumberingLevel locates a paragraph in a numbered or bulleted list.
type NumberingLevel struct {
	NumID   string
	Level   int
	Ordered bool
}

// Table is a w:tbl element. Cells covered by a vertical merge are removed;
// the originating cell carries the row span instead.
type Table struct {
	StyleID   string
	StyleName string
	Rows      []TableRow
}

// TableRow is a w:tr element.
type TableRow struct {
	// Header marks rows repeated as table headers (w:tblHeader).
	Header bool
	Cells  []TableCell
}

// TableCell is a w:tc element.
type TableCell struct {
	ColSpan int
	RowSpan int
	Blocks  []Block
}

// Run is a w:r element with its direct formatting.
type Run struct {
	StyleID   string
	StyleName string
	Bold      bool
	Italic    bool
	Underline bool
	Strike    bool
	VertAlign VertAlign
	Children  []Inline
}

// VertAlign is the vertical alignment of a run.
type VertAlign string

const (
	Baseline    VertAlign = ""
	Superscript VertAlign = "superscript"
	Subscript   VertAlign = "subscript"
)

// Hyperlink is a w:hyperlink element. Href is an external target, an
// internal "#anchor", or both combined.
type Hyperlink struct {
	Href     string
	Children []Inline
}

// Bookmark marks a w:bookmarkStart anchor.
type Bookmark struct {
	Name string
}

// Text is literal run text.
type Text string

// Tab is a w:tab inside a run.
type Tab struct{}

// Break is a line break. Page and column breaks are not represented.
type Break struct{}

// Image is a picture from a w:drawing or w:pict element. Embedded images
// carry Data and ContentType; linked images carry Src.
type Image struct {
	Data        []byte
	ContentType string
	Src         string
	AltText     string
}

// NoteKind distinguishes footnotes from endnotes.
type NoteKind string

const (
	Footnote NoteKind = "footnote"
	Endnote  NoteKind = "endnote"
)

// NoteReference is a w:footnoteReference or w:endnoteReference mark.
type NoteReference struct {
	Kind NoteKind
	ID   string
}

// Note is the body of a footnote or endnote.
type Note struct {
	Kind NoteKind
	ID   string
	Body []Block
}

func (*Paragraph) block() {}
func (*Table) block()     {}

func (*Run) inline()       {}
func (*Hyperlink) inline() {}
func (*Bookmark) inline()  {}
func (Text) inline()       {}
func (Tab) inline()        {}
func (Break) inline()      {}
func (*Image) inline()     {}

func (*NoteReference) inline() {}
