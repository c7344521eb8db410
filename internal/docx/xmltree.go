package docx

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
)

// node is a decoded XML element. Elements are matched by local name only;
// WordprocessingML prefixes vary between producers.
type node struct {
	local    string
	attrs    []xml.Attr
	children []*node
	text     []byte
}

// parseXML decodes an XML part into a node tree and returns the root element.
func parseXML(data []byte) (*node, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	root := &node{}
	stack := []*node{root}

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedPart, err)
		}

		top := stack[len(stack)-1]
		switch t := tok.(type) {
		case xml.StartElement:
			n := &node{local: t.Name.Local, attrs: t.Attr}
			top.children = append(top.children, n)
			stack = append(stack, n)
		case xml.EndElement:
			stack = stack[:len(stack)-1]
		case xml.CharData:
			top.text = append(top.text, t...)
		}
	}

	if len(root.children) == 0 {
		return nil, fmt.Errorf("%w: no root element", ErrMalformedPart)
	}
	return root.children[0], nil
}

// child returns the first direct child with the given local name.
func (n *node) child(local string) *node {
	if n == nil {
		return nil
	}
	for _, c := range n.children {
		if c.local == local {
			return c
		}
	}
	return nil
}

// childrenNamed returns all direct children with the given local name.
func (n *node) childrenNamed(local string) []*node {
	if n == nil {
		return nil
	}
	var out []*node
	for _, c := range n.children {
		if c.local == local {
			out = append(out, c)
		}
	}
	return out
}

// find returns the first descendant with the given local name, depth first.
func (n *node) find(local string) *node {
	if n == nil {
		return nil
	}
	for _, c := range n.children {
		if c.local == local {
			return c
		}
		if d := c.find(local); d != nil {
			return d
		}
	}
	return nil
}

// attr returns the value of the attribute with the given local name.
func (n *node) attr(local string) string {
	if n == nil {
		return ""
	}
	for _, a := range n.attrs {
		if a.Name.Local == local {
			return a.Value
		}
	}
	return ""
}

// hasAttr reports whether the attribute is present.
func (n *node) hasAttr(local string) bool {
	if n == nil {
		return false
	}
	for _, a := range n.attrs {
		if a.Name.Local == local {
			return true
		}
	}
	return false
}

// toggle reads an on/off property such as w:b. A present element without
// w:val is on.
func (n *node) toggle() bool {
	if n == nil {
		return false
	}
	switch n.attr("val") {
	case "0", "false", "off", "none":
		return false
	}
	return true
}

// alternate selects the content of an mc:AlternateContent element: the first
// Choice, or the Fallback when no Choice is present.
func alternate(n *node) []*node {
	if c := n.child("Choice"); c != nil {
		return c.children
	}
	if f := n.child("Fallback"); f != nil {
		return f.children
	}
	return nil
}
