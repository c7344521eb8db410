package pipeline

import (
	"context"
	"strings"
)

// CSSInjector defines the contract for adding CSS to a rendered page.
type CSSInjector interface {
	InjectCSS(ctx context.Context, htmlContent, cssContent string) string
}

// CSSInjection adds a <style> block to HTML content.
type CSSInjection struct{}

// InjectCSS inserts cssContent as a new <style> block just before </head>,
// so it follows and overrides any style already in the head. Without a head
// the block goes right after the opening <body> tag, and otherwise in front
// of the content. Empty CSS or a cancelled context leaves the HTML unchanged.
func (s *CSSInjection) InjectCSS(ctx context.Context, htmlContent, cssContent string) string {
	if strings.TrimSpace(cssContent) == "" || ctx.Err() != nil {
		return htmlContent
	}

	block := "<style>" + sanitizeCSS(cssContent) + "</style>"
	lower := strings.ToLower(htmlContent)

	if idx := strings.Index(lower, "</head>"); idx != -1 {
		return htmlContent[:idx] + block + htmlContent[idx:]
	}
	if idx := strings.Index(lower, "<body"); idx != -1 {
		if end := strings.IndexByte(htmlContent[idx:], '>'); end != -1 {
			pos := idx + end + 1
			return htmlContent[:pos] + block + htmlContent[pos:]
		}
	}
	return block + htmlContent
}

// sanitizeCSS neutralizes "</" so the CSS cannot close its style element.
func sanitizeCSS(css string) string {
	return strings.ReplaceAll(css, "</", `<\/`)
}
