package markup

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

// linkPattern matches full URLs, form links and known short-link domains.
// Matches end at whitespace or the start of a tag.
var linkPattern = regexp.MustCompile(
	`\bhttps?://[^\s<]+|\b(?:forms\.gle|bit\.ly|tinyurl\.com|t\.ly)/[^\s<]+`,
)

// opaqueElements are never linkified inside. Anchors are the important
// case; the rest hold code or raw text.
var opaqueElements = map[string]bool{
	"a": true, "code": true, "pre": true,
	"script": true, "style": true, "textarea": true, "title": true,
}

// trailingPunct is left outside a link when it ends a match.
const trailingPunct = ".,:!?'\""

// Linkify wraps bare URLs in s with anchor markup.
//
// Only text outside anchors (and other opaque elements) is rewritten; tag
// attributes are never touched. Matches without a scheme link to https.
// Linkify is idempotent.
func Linkify(s string) string {
	if s == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(s))

	depth := 0
	consumed := 0
	z := html.NewTokenizer(strings.NewReader(s))
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			// Anything the tokenizer gave up on (such as an unterminated
			// tag at the end of input) is kept verbatim.
			b.WriteString(s[consumed:])
			return b.String()
		}

		raw := z.Raw()
		consumed += len(raw)

		switch tt {
		case html.TextToken:
			if depth == 0 {
				b.WriteString(linkifyText(string(raw)))
				continue
			}
		case html.StartTagToken:
			if name, _ := z.TagName(); opaqueElements[string(name)] {
				depth++
			}
		case html.EndTagToken:
			if name, _ := z.TagName(); opaqueElements[string(name)] && depth > 0 {
				depth--
			}
		}
		b.Write(raw)
	}
}

// linkifyText wraps every link match in a raw text token.
func linkifyText(raw string) string {
	matches := linkPattern.FindAllStringIndex(raw, -1)
	if matches == nil {
		return raw
	}

	var b strings.Builder
	last := 0
	for _, m := range matches {
		url := trimLink(raw[m[0]:m[1]])
		if url == "" {
			continue
		}
		end := m[0] + len(url)
		b.WriteString(raw[last:m[0]])
		b.WriteString(Anchor(normaliseScheme(url), url))
		last = end
	}
	b.WriteString(raw[last:])
	return b.String()
}

// trimLink drops trailing punctuation and an unbalanced closing parenthesis.
// It returns "" when nothing but the scheme or domain would remain.
func trimLink(url string) string {
	minLen := strings.Index(url, "/") + 1
	if i := strings.Index(url, "://"); i >= 0 {
		minLen = i + len("://")
	}

	for len(url) > minLen {
		last := url[len(url)-1]
		switch {
		case strings.IndexByte(trailingPunct, last) >= 0:
			url = url[:len(url)-1]
		case last == ')' && strings.Count(url, "(") < strings.Count(url, ")"):
			url = url[:len(url)-1]
		default:
			return url
		}
	}
	return ""
}

// normaliseScheme prefixes schema-less links with https.
func normaliseScheme(url string) string {
	if strings.HasPrefix(url, "http://") || strings.HasPrefix(url, "https://") {
		return url
	}
	return "https://" + url
}
