package markup

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
)

// maxEntityLen bounds the scan for a terminating ';' in a character reference.
const maxEntityLen = 32

// voidElements never have content and never open a scope.
var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"source": true, "track": true, "wbr": true,
}

// blockElements end a line when stripped to plain text.
var blockElements = map[string]bool{
	"p": true, "div": true, "li": true, "tr": true, "blockquote": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
}

// unitLen returns the byte length of the visible character at the start of
// raw. A character reference counts as a single visible character.
func unitLen(raw string) int {
	if raw[0] == '&' {
		if n := entityLen(raw); n > 0 {
			return n
		}
	}
	_, size := utf8.DecodeRuneInString(raw)
	return size
}

// entityLen returns the length of the character reference at the start of
// raw, or 0 if raw does not start with one.
func entityLen(raw string) int {
	for i := 1; i < len(raw) && i <= maxEntityLen; i++ {
		c := raw[i]
		switch {
		case c == ';':
			if i > 1 {
				return i + 1
			}
			return 0
		case c == '#' && i == 1:
		case isAlnum(c):
		default:
			return 0
		}
	}
	return 0
}

func isAlnum(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9'
}

// countVisible returns the number of visible characters in a raw text token.
func countVisible(raw string) int {
	n := 0
	for raw != "" {
		raw = raw[unitLen(raw):]
		n++
	}
	return n
}

// VisibleLen returns the number of visible (non-markup) characters in s.
func VisibleLen(s string) int {
	n := 0
	z := html.NewTokenizer(strings.NewReader(s))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return n
		case html.TextToken:
			n += countVisible(string(z.Raw()))
		}
	}
}

// StripTags returns the visible text of s with character references decoded.
// Line breaks and block element boundaries become newlines.
func StripTags(s string) string {
	var b strings.Builder
	z := html.NewTokenizer(strings.NewReader(s))
	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			return strings.TrimSpace(b.String())
		case html.TextToken:
			b.Write(z.Text())
		case html.StartTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			if string(name) == "br" {
				b.WriteByte('\n')
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			if blockElements[string(name)] {
				b.WriteByte('\n')
			}
		}
	}
}
