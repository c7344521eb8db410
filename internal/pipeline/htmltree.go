package pipeline

import (
	"slices"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/alnah/go-docx2pdf/internal/stylemap"
)

// hnode is an HTML node under construction. Element nodes that are not fresh
// merge into an identical preceding sibling when the tree is collapsed.
type hnode struct {
	tag      string // empty for text nodes
	attrs    []html.Attribute
	text     string
	fresh    bool
	keep     bool // survives pruning even when empty
	children []*hnode
}

func textNode(s string) *hnode {
	return &hnode{text: s}
}

func elementNode(tag string, attrs []html.Attribute, fresh bool, children []*hnode) *hnode {
	return &hnode{tag: tag, attrs: attrs, fresh: fresh, children: children}
}

// fromPath builds the element for one style-map path step.
func fromPath(el stylemap.Element, children []*hnode) *hnode {
	var attrs []html.Attribute
	if len(el.Classes) > 0 {
		attrs = []html.Attribute{{Key: "class", Val: strings.Join(el.Classes, " ")}}
	}
	return elementNode(el.Tag, attrs, el.Fresh, children)
}

// wrap nests children inside the path, innermost element last. An empty
// path returns children unchanged.
func wrap(path stylemap.Path, children []*hnode) []*hnode {
	for i := len(path) - 1; i >= 0; i-- {
		children = []*hnode{fromPath(path[i], children)}
	}
	return children
}

func (n *hnode) isElement() bool { return n.tag != "" }

// matches reports whether two elements have the same tag and attributes.
func (n *hnode) matches(o *hnode) bool {
	return n.tag == o.tag && slices.Equal(n.attrs, o.attrs)
}

// collapse merges each non-fresh element into an identical element
// immediately before it, recursively.
func collapse(nodes []*hnode) []*hnode {
	var out []*hnode
	for _, n := range nodes {
		if n.isElement() {
			n.children = collapse(n.children)
		}
		out = appendCollapsed(out, n)
	}
	return out
}

func appendCollapsed(siblings []*hnode, n *hnode) []*hnode {
	if len(siblings) > 0 && n.isElement() && !n.fresh {
		last := siblings[len(siblings)-1]
		if last.isElement() && last.matches(n) {
			for _, c := range n.children {
				last.children = appendCollapsed(last.children, c)
			}
			last.keep = last.keep || n.keep
			return siblings
		}
	}
	return append(siblings, n)
}

// prune drops empty text and elements without content. Void elements and
// elements marked keep are retained.
func prune(nodes []*hnode) []*hnode {
	out := nodes[:0]
	for _, n := range nodes {
		if !n.isElement() {
			if n.text != "" {
				out = append(out, n)
			}
			continue
		}
		n.children = prune(n.children)
		if len(n.children) > 0 || n.keep || isVoid(n.tag) {
			out = append(out, n)
		}
	}
	return out
}

func isVoid(tag string) bool {
	switch tag {
	case "br", "img", "hr", "col", "wbr":
		return true
	}
	return false
}

// toHTML converts the tree into golang.org/x/net/html nodes.
func toHTML(n *hnode) *html.Node {
	if !n.isElement() {
		return &html.Node{Type: html.TextNode, Data: n.text}
	}
	el := &html.Node{
		Type:     html.ElementNode,
		Data:     n.tag,
		DataAtom: atom.Lookup([]byte(n.tag)),
		Attr:     n.attrs,
	}
	for _, c := range n.children {
		el.AppendChild(toHTML(c))
	}
	return el
}

// renderFragment collapses, prunes and serializes the nodes.
func renderFragment(nodes []*hnode) (string, error) {
	var buf strings.Builder
	for _, n := range prune(collapse(nodes)) {
		if err := html.Render(&buf, toHTML(n)); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}
