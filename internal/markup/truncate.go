package markup

import (
	"strings"

	"golang.org/x/net/html"
)

// Ellipsis is appended to content that was cut short.
const Ellipsis = "..."

// Truncate returns s cut to at most n visible characters.
//
// Tags never count towards the budget and are always written whole. When
// s already fits, it is returned unchanged. Otherwise every element still
// open at the cut is closed, in reverse order, and Ellipsis is appended.
// Once the budget is spent, end tags closing open elements are still
// written; the first further visible character or start tag ends the scan.
//
// Truncate is idempotent: Truncate(Truncate(s, n), n) == Truncate(s, n).
func Truncate(s string, n int) string {
	if s == "" {
		return ""
	}
	if n < 0 {
		n = 0
	}
	if VisibleLen(s) <= n {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))

	var open []string
	count := 0
	z := html.NewTokenizer(strings.NewReader(s))

scan:
	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			break scan

		case html.TextToken:
			raw := string(z.Raw())
			for raw != "" {
				if count >= n {
					break scan
				}
				l := unitLen(raw)
				b.WriteString(raw[:l])
				raw = raw[l:]
				count++
			}

		case html.StartTagToken:
			if count >= n {
				break scan
			}
			name, _ := z.TagName()
			b.Write(z.Raw())
			if !voidElements[string(name)] {
				open = append(open, string(name))
			}

		case html.EndTagToken:
			name, _ := z.TagName()
			i := lastIndex(open, string(name))
			if i < 0 {
				// Stray end tag.
				if count >= n {
					break scan
				}
				b.Write(z.Raw())
				continue
			}
			for j := len(open) - 1; j > i; j-- {
				writeEndTag(&b, open[j])
			}
			b.Write(z.Raw())
			open = open[:i]

		default:
			// Self-closing tags, comments and doctypes take no budget.
			if count >= n {
				break scan
			}
			b.Write(z.Raw())
		}
	}

	for i := len(open) - 1; i >= 0; i-- {
		writeEndTag(&b, open[i])
	}
	b.WriteString(Ellipsis)
	return b.String()
}

func writeEndTag(b *strings.Builder, name string) {
	b.WriteString("</")
	b.WriteString(name)
	b.WriteByte('>')
}

func lastIndex(stack []string, name string) int {
	for i := len(stack) - 1; i >= 0; i-- {
		if stack[i] == name {
			return i
		}
	}
	return -1
}
