package pipeline

import (
	"io"
	"net/url"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// RewriteRelativePaths resolves relative image sources and link targets in an
// HTML fragment against sourceDir, replacing them with file:// URLs. Linked
// (not embedded) DOCX images and relative hyperlinks are written with paths
// relative to the document; the browser loads the page from a temporary
// directory, so they would not resolve otherwise.
//
// Only img[src] and a[href] are rewritten. URLs with a scheme, anchors,
// absolute paths and paths escaping sourceDir are left unchanged. The
// fragment is tokenized rather than parsed, so everything but the rewritten
// tags is copied byte for byte. An empty sourceDir returns the fragment
// unchanged.
func RewriteRelativePaths(fragment, sourceDir string) (string, error) {
	if sourceDir == "" {
		return fragment, nil
	}

	absDir, err := filepath.Abs(sourceDir)
	if err != nil {
		return "", err
	}

	var buf strings.Builder
	buf.Grow(len(fragment))
	z := html.NewTokenizer(strings.NewReader(fragment))
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			if err := z.Err(); err != io.EOF {
				return "", err
			}
			return buf.String(), nil
		}

		if tt != html.StartTagToken && tt != html.SelfClosingTagToken {
			buf.Write(z.Raw())
			continue
		}

		// Token lowercases and unescapes in the tokenizer's buffer.
		raw := string(z.Raw())
		tok := z.Token()
		if rewriteToken(&tok, absDir) {
			buf.WriteString(tok.String())
		} else {
			buf.WriteString(raw)
		}
	}
}

// rewriteToken rewrites img[src] or a[href] in place and reports whether
// the token changed.
func rewriteToken(tok *html.Token, dir string) bool {
	var key string
	switch tok.DataAtom {
	case atom.Img:
		key = "src"
	case atom.A:
		key = "href"
	default:
		return false
	}

	changed := false
	for i, a := range tok.Attr {
		if a.Key != key || !isRelativePath(a.Val) {
			continue
		}
		abs := filepath.Join(dir, filepath.FromSlash(a.Val))
		if isPathUnderDir(abs, dir) {
			tok.Attr[i].Val = pathToFileURL(abs)
			changed = true
		}
	}
	return changed
}

// isRelativePath reports whether p is a relative filesystem path: not empty,
// not an anchor, not protocol-relative, without a URL scheme, not absolute.
func isRelativePath(p string) bool {
	if p == "" || strings.HasPrefix(p, "#") || strings.HasPrefix(p, "//") {
		return false
	}
	if filepath.IsAbs(p) || strings.HasPrefix(p, "/") {
		return false
	}
	// A Windows drive letter parses as a one-letter scheme.
	if u, err := url.Parse(p); err == nil && len(u.Scheme) > 1 {
		return false
	}
	return true
}

// isPathUnderDir reports whether path is dir itself or inside it.
func isPathUnderDir(path, dir string) bool {
	rel, err := filepath.Rel(filepath.Clean(dir), filepath.Clean(path))
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// pathToFileURL converts an absolute path to a file:// URL, escaping as
// needed and normalizing Windows separators.
func pathToFileURL(absPath string) string {
	p := filepath.ToSlash(absPath)
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return (&url.URL{Scheme: "file", Path: p}).String()
}
