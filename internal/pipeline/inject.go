package pipeline

import (
	"context"
	"strings"
)

// CSSInjector defines the contract for CSS injection into HTML.
type CSSInjector interface {
	InjectCSS(ctx context.Context, htmlContent, cssContent string) string
}

// CSSInjection injects CSS as a <style> block into HTML content.
type CSSInjection struct{}

var _ CSSInjector = (*CSSInjection)(nil)

// InjectCSS inserts a <style> block ahead of the document's own styles so
// that rules written in the document take precedence. It tries right after
// the opening <head> tag, then after the opening <html> tag, then prepends.
// CSS content is sanitized so it cannot close the style element.
func (s *CSSInjection) InjectCSS(ctx context.Context, htmlContent, cssContent string) string {
	if strings.TrimSpace(cssContent) == "" {
		return htmlContent
	}
	if ctx.Err() != nil {
		return htmlContent
	}

	styleBlock := "<style>" + sanitizeCSS(cssContent) + "</style>"
	lowerHTML := strings.ToLower(htmlContent)

	for _, tag := range []string{"<head", "<html"} {
		if pos, ok := afterOpenTag(htmlContent, lowerHTML, tag); ok {
			return htmlContent[:pos] + styleBlock + htmlContent[pos:]
		}
	}
	return styleBlock + htmlContent
}

// afterOpenTag returns the position just past the first opening tag named
// by prefix. "<header" does not match "<head".
func afterOpenTag(htmlContent, lowerHTML, prefix string) (int, bool) {
	from := 0
	for {
		idx := strings.Index(lowerHTML[from:], prefix)
		if idx < 0 {
			return 0, false
		}
		idx += from
		end := idx + len(prefix)
		if end < len(lowerHTML) && (lowerHTML[end] == '>' || lowerHTML[end] == ' ' ||
			lowerHTML[end] == '\t' || lowerHTML[end] == '\n' || lowerHTML[end] == '\r') {
			closeIdx := strings.IndexByte(htmlContent[end:], '>')
			if closeIdx < 0 {
				return 0, false
			}
			return end + closeIdx + 1, true
		}
		from = end
	}
}

// sanitizeCSS escapes sequences that could break out of a <style> block.
func sanitizeCSS(css string) string {
	return strings.ReplaceAll(css, "</", `<\/`)
}
