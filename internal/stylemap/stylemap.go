package stylemap

import (
	"strings"

	"golang.org/x/text/cases"
)

// Kind identifies the document element a rule matches.
type Kind int

const (
	Paragraph Kind = iota
	Run
	Table
	Bold
	Italic
	Underline
	Strike
)

var kindNames = map[string]Kind{
	"p":      Paragraph,
	"r":      Run,
	"table":  Table,
	"b":      Bold,
	"i":      Italic,
	"u":      Underline,
	"strike": Strike,
}

// String returns the matcher keyword for the kind.
func (k Kind) String() string {
	for name, kind := range kindNames {
		if kind == k {
			return name
		}
	}
	return "unknown"
}

// styled reports whether the kind can carry a style selector.
func (k Kind) styled() bool {
	return k == Paragraph || k == Run || k == Table
}

// Matcher selects document elements.
type Matcher struct {
	Kind       Kind
	StyleID    string // exact, case-sensitive
	StyleName  string // compared case-insensitively
	NamePrefix bool   // StyleName is a prefix rather than a full name
}

// Matches reports whether an element of the given kind and style satisfies m.
func (m Matcher) Matches(kind Kind, styleID, styleName string) bool {
	if m.Kind != kind {
		return false
	}
	if m.StyleID != "" && m.StyleID != styleID {
		return false
	}
	if m.StyleName == "" {
		return true
	}
	want, got := fold(m.StyleName), fold(styleName)
	if m.NamePrefix {
		return strings.HasPrefix(got, want)
	}
	return got == want
}

// Element is one step of an HTML path.
type Element struct {
	Tag     string
	Classes []string
	// Fresh forces a new element even when an identical one is already open.
	Fresh bool
}

// Path is a sequence of nested elements, outermost first.
// An empty path unwraps the matched element.
type Path []Element

// Rule pairs a matcher with the HTML path it produces.
type Rule struct {
	Matcher Matcher
	Path    Path
	// Ignore drops the matched element and its content.
	Ignore bool
	// Source is the rule text as written.
	Source string
}

// StyleMap is an ordered rule list. The zero value matches nothing.
type StyleMap struct {
	rules []Rule
}

// New builds a style map from user rules followed by the built-in rules and,
// when includeDefaults is set, the default rules. User rules take precedence.
func New(user []Rule, includeDefaults bool) *StyleMap {
	rules := make([]Rule, 0, len(user)+len(builtinRules)+len(defaultRules))
	rules = append(rules, user...)
	rules = append(rules, Builtin()...)
	if includeDefaults {
		rules = append(rules, Defaults()...)
	}
	return &StyleMap{rules: rules}
}

// Rules returns a copy of the rules in evaluation order.
func (m *StyleMap) Rules() []Rule {
	if m == nil {
		return nil
	}
	out := make([]Rule, len(m.rules))
	copy(out, m.rules)
	return out
}

// Match returns the first rule matching the element.
func (m *StyleMap) Match(kind Kind, styleID, styleName string) (Rule, bool) {
	if m == nil {
		return Rule{}, false
	}
	for _, r := range m.rules {
		if r.Matcher.Matches(kind, styleID, styleName) {
			return r, true
		}
	}
	return Rule{}, false
}

var builtinRules = []string{
	"p[style-name='Heading 1'] => h1:fresh",
	"p[style-name='Heading 2'] => h2:fresh",
	"p[style-name='Heading 3'] => h3:fresh",
	"p[style-name='Title'] => h1.title:fresh",
	"table => table.docx-table",
	"r[style-name='Strong'] => strong",
}

var defaultRules = []string{
	"p.Heading1 => h1:fresh",
	"p.Heading2 => h2:fresh",
	"p.Heading3 => h3:fresh",
	"p.Heading4 => h4:fresh",
	"p.Heading5 => h5:fresh",
	"p.Heading6 => h6:fresh",
	"p[style-name='Heading 4'] => h4:fresh",
	"p[style-name='Heading 5'] => h5:fresh",
	"p[style-name='Heading 6'] => h6:fresh",
	"p.Title => h1.title:fresh",
	"r[style-name='Hyperlink'] =>",
	"p[style-name='footnote text'] => p:fresh",
	"r[style-name='footnote reference'] =>",
	"p[style-name='endnote text'] => p:fresh",
	"r[style-name='endnote reference'] =>",
	"b => strong",
	"i => em",
	"u =>",
	"strike => s",
}

// Builtin returns the fixed rule set applied to every conversion: headings 1
// to 3, the Title paragraph, tables, and the Strong character style.
func Builtin() []Rule {
	return mustParse(builtinRules)
}

// Defaults returns the fallback rules for remaining headings, note text
// and references, and direct character formatting.
func Defaults() []Rule {
	return mustParse(defaultRules)
}

func mustParse(lines []string) []Rule {
	rules, err := Parse(lines)
	if err != nil {
		panic(err)
	}
	return rules
}

func fold(s string) string {
	return cases.Fold().String(s)
}
