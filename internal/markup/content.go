package markup

import (
	"html"
	"net/url"
	"regexp"
	"strings"

	"github.com/custodia-labs/eventbox/internal/core/domain"
)

// NotionBaseURL resolves relative links to other Notion pages.
const NotionBaseURL = "https://www.notion.so"

// LineBreak replaces every run of newlines in flattened content.
const LineBreak = "<br />"

var newlines = regexp.MustCompile(`\n+`)

// linkSchemes are the href schemes allowed to become anchors.
var linkSchemes = map[string]bool{"http": true, "https": true, "mailto": true}

// Anchor returns link markup opening href in a new tab.
// href may contain character references; inner must already be markup.
func Anchor(href, inner string) string {
	var b strings.Builder
	b.WriteString(`<a href="`)
	b.WriteString(html.EscapeString(html.UnescapeString(href)))
	b.WriteString(`" target="_blank" rel="noopener noreferrer">`)
	b.WriteString(inner)
	b.WriteString("</a>")
	return b.String()
}

// Flatten reduces rich text spans to a single content string.
//
// Span text is escaped, inline annotations become emphasis elements and
// spans carrying a hyperlink become anchors. The result is trimmed and runs
// of newlines are replaced with LineBreak.
func Flatten(spans []domain.Span) string {
	if len(spans) == 0 {
		return ""
	}

	var b strings.Builder
	for _, span := range spans {
		b.WriteString(renderSpan(span))
	}

	content := strings.TrimSpace(b.String())
	return newlines.ReplaceAllString(content, LineBreak)
}

// renderSpan returns the markup for a single span.
func renderSpan(span domain.Span) string {
	if span.Text == "" {
		return ""
	}

	text := html.EscapeString(span.Text)
	if span.Code {
		text = wrap("code", text)
	}
	if span.Strikethrough {
		text = wrap("s", text)
	}
	if span.Underline {
		text = wrap("u", text)
	}
	if span.Italic {
		text = wrap("em", text)
	}
	if span.Bold {
		text = wrap("strong", text)
	}

	if span.HasLink() {
		if href := ResolveHref(span.Href); SafeHref(href) {
			return Anchor(href, text)
		}
	}
	return text
}

// SafeHref reports whether href is an absolute http, https or mailto URL.
// Character references are decoded first, as a browser would.
func SafeHref(href string) bool {
	u, err := url.Parse(strings.TrimSpace(html.UnescapeString(href)))
	if err != nil {
		return false
	}
	return linkSchemes[u.Scheme]
}

// ResolveHref turns a relative Notion page link into an absolute URL.
func ResolveHref(href string) string {
	if strings.HasPrefix(href, "/") && !strings.HasPrefix(href, "//") {
		return NotionBaseURL + href
	}
	return href
}

func wrap(tag, inner string) string {
	return "<" + tag + ">" + inner + "</" + tag + ">"
}
