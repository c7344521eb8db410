package docx

import "strconv"

// styleDef is a resolved w:style definition.
type styleDef struct {
	Name  string
	NumID string
	Level int
}

// styleSheet indexes styles.xml by style type and ID.
type styleSheet struct {
	byType map[string]map[string]styleDef
}

func newStyleSheet() *styleSheet {
	return &styleSheet{byType: make(map[string]map[string]styleDef)}
}

// parseStyles reads w:style elements from the styles part root.
func parseStyles(root *node) *styleSheet {
	s := newStyleSheet()
	for _, st := range root.childrenNamed("style") {
		typ := st.attr("type")
		id := st.attr("styleId")
		if id == "" {
			continue
		}
		def := styleDef{Name: st.child("name").attr("val")}
		if numPr := st.child("pPr").child("numPr"); numPr != nil {
			def.NumID = numPr.child("numId").attr("val")
			def.Level = atoiOr(numPr.child("ilvl").attr("val"), 0)
		}
		if s.byType[typ] == nil {
			s.byType[typ] = make(map[string]styleDef)
		}
		s.byType[typ][id] = def
	}
	return s
}

func (s *styleSheet) lookup(typ, id string) (styleDef, bool) {
	if id == "" {
		return styleDef{}, false
	}
	def, ok := s.byType[typ][id]
	return def, ok
}

func (s *styleSheet) name(typ, id string) string {
	def, _ := s.lookup(typ, id)
	return def.Name
}

// numbering indexes numbering.xml: concrete numbering instances point at
// abstract definitions that hold per-level formats.
type numbering struct {
	nums     map[string]string         // numId -> abstractNumId
	abstract map[string]map[int]string // abstractNumId -> level -> numFmt
}

func newNumbering() *numbering {
	return &numbering{
		nums:     make(map[string]string),
		abstract: make(map[string]map[int]string),
	}
}

func parseNumbering(root *node) *numbering {
	n := newNumbering()
	for _, a := range root.childrenNamed("abstractNum") {
		levels := make(map[int]string)
		for _, lvl := range a.childrenNamed("lvl") {
			levels[atoiOr(lvl.attr("ilvl"), 0)] = lvl.child("numFmt").attr("val")
		}
		n.abstract[a.attr("abstractNumId")] = levels
	}
	for _, num := range root.childrenNamed("num") {
		n.nums[num.attr("numId")] = num.child("abstractNumId").attr("val")
	}
	return n
}

// level resolves a numbering reference. It returns nil for numId "0", which
// removes numbering, and for references to undefined lists.
func (n *numbering) level(numID string, level int) *NumberingLevel {
	if numID == "" || numID == "0" {
		return nil
	}
	abstractID, ok := n.nums[numID]
	if !ok {
		return nil
	}
	format, ok := n.abstract[abstractID][level]
	if !ok {
		return nil
	}
	return &NumberingLevel{
		NumID:   numID,
		Level:   level,
		Ordered: format != "bullet",
	}
}

func atoiOr(s string, fallback int) int {
	v, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	return v
}
