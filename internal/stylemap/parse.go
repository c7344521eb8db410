package stylemap

import (
	"fmt"
	"strings"
)

const arrow = "=>"

// Parse parses rules, one per entry. Blank entries and entries starting with
// "#" are skipped. Errors report the 1-based entry number and its text.
func Parse(lines []string) ([]Rule, error) {
	rules := make([]Rule, 0, len(lines))
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		r, err := ParseRule(trimmed)
		if err != nil {
			return nil, fmt.Errorf("rule %d: %w", i+1, err)
		}
		rules = append(rules, r)
	}
	return rules, nil
}

// ParseRule parses a single "matcher => path" rule.
func ParseRule(text string) (Rule, error) {
	text = strings.TrimSpace(text)
	lhs, rhs, ok := strings.Cut(text, arrow)
	if !ok {
		return Rule{}, invalid(text, "missing %q", arrow)
	}

	m, err := parseMatcher(strings.TrimSpace(lhs))
	if err != nil {
		return Rule{}, invalid(text, "%v", err)
	}

	rule := Rule{Matcher: m, Source: text}
	rhs = strings.TrimSpace(rhs)
	if rhs == "!" {
		rule.Ignore = true
		return rule, nil
	}

	rule.Path, err = parsePath(rhs)
	if err != nil {
		return Rule{}, invalid(text, "%v", err)
	}
	return rule, nil
}

func invalid(text, format string, args ...any) error {
	return fmt.Errorf("%w %q: %s", ErrInvalidRule, text, fmt.Sprintf(format, args...))
}

// parseMatcher parses "kind(.StyleId)?([style-name(^)?='Name'])?".
func parseMatcher(s string) (Matcher, error) {
	if s == "" {
		return Matcher{}, fmt.Errorf("empty matcher")
	}

	end := 0
	for end < len(s) && isLower(s[end]) {
		end++
	}
	kind, ok := kindNames[s[:end]]
	if !ok {
		return Matcher{}, fmt.Errorf("unknown element %q", s[:end])
	}

	m := Matcher{Kind: kind}
	rest := s[end:]
	for rest != "" {
		if !kind.styled() {
			return Matcher{}, fmt.Errorf("%q does not accept a style selector", kind)
		}
		switch rest[0] {
		case '.':
			id, n := scanIdent(rest[1:])
			if id == "" {
				return Matcher{}, fmt.Errorf("empty style ID")
			}
			m.StyleID = id
			rest = rest[1+n:]
		case '[':
			name, prefix, n, err := parseNameSelector(rest)
			if err != nil {
				return Matcher{}, err
			}
			m.StyleName, m.NamePrefix = name, prefix
			rest = rest[n:]
		default:
			return Matcher{}, fmt.Errorf("unexpected %q", rest)
		}
	}
	return m, nil
}

// parseNameSelector parses "[style-name='X']" or "[style-name^='X']" at the
// start of s and returns the name, whether it is a prefix match, and the
// number of bytes consumed.
func parseNameSelector(s string) (string, bool, int, error) {
	const attr = "[style-name"
	if !strings.HasPrefix(s, attr) {
		return "", false, 0, fmt.Errorf("unsupported selector %q", s)
	}
	i := len(attr)
	prefix := false
	if strings.HasPrefix(s[i:], "^=") {
		prefix = true
		i += 2
	} else if strings.HasPrefix(s[i:], "=") {
		i++
	} else {
		return "", false, 0, fmt.Errorf("expected = or ^= in %q", s)
	}

	if i >= len(s) || (s[i] != '\'' && s[i] != '"') {
		return "", false, 0, fmt.Errorf("style name must be quoted in %q", s)
	}
	quote := s[i]
	closing := strings.IndexByte(s[i+1:], quote)
	if closing < 0 {
		return "", false, 0, fmt.Errorf("unterminated style name in %q", s)
	}
	name := s[i+1 : i+1+closing]
	i += closing + 2

	if i >= len(s) || s[i] != ']' {
		return "", false, 0, fmt.Errorf("expected ] in %q", s)
	}
	if name == "" {
		return "", false, 0, fmt.Errorf("empty style name")
	}
	return name, prefix, i + 1, nil
}

// parsePath parses "tag(.class)*(:fresh)? (> ...)*". An empty string is a
// valid empty path.
func parsePath(s string) (Path, error) {
	if s == "" {
		return Path{}, nil
	}
	parts := strings.Split(s, ">")
	path := make(Path, 0, len(parts))
	for _, part := range parts {
		el, err := parseElement(strings.TrimSpace(part))
		if err != nil {
			return nil, err
		}
		path = append(path, el)
	}
	return path, nil
}

func parseElement(s string) (Element, error) {
	if s == "" {
		return Element{}, fmt.Errorf("empty path element")
	}

	var el Element
	if body, ok := strings.CutSuffix(s, ":fresh"); ok {
		el.Fresh = true
		s = body
	}

	tag, n := scanIdent(s)
	if tag == "" || !isLetter(tag[0]) {
		return Element{}, fmt.Errorf("invalid tag in %q", s)
	}
	el.Tag = strings.ToLower(tag)

	rest := s[n:]
	for rest != "" {
		if rest[0] != '.' {
			return Element{}, fmt.Errorf("unexpected %q", rest)
		}
		class, m := scanIdent(rest[1:])
		if class == "" {
			return Element{}, fmt.Errorf("empty class in %q", s)
		}
		el.Classes = append(el.Classes, class)
		rest = rest[1+m:]
	}
	return el, nil
}

// scanIdent returns the longest identifier prefix of s and its length.
func scanIdent(s string) (string, int) {
	i := 0
	for i < len(s) && isIdent(s[i]) {
		i++
	}
	return s[:i], i
}

func isLower(c byte) bool  { return c >= 'a' && c <= 'z' }
func isLetter(c byte) bool { return isLower(c) || (c >= 'A' && c <= 'Z') }

func isIdent(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '-' || c == '_'
}
