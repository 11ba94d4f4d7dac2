// Package markup builds and reshapes the inline HTML carried by event content.
//
// Content is plain text interspersed with a small set of inline elements
// (anchors, emphasis, code, line breaks). The functions here never parse the
// markup with regular expressions: every operation that has to know whether a
// position is inside a tag or an element walks the token stream produced by
// golang.org/x/net/html, so tags are never split and attributes are never
// rewritten.
//
//   - Flatten turns rich text spans into content markup
//   - Linkify wraps bare URLs that are not already inside a link
//   - Truncate cuts content to a visible-character budget
//   - StripTags and VisibleLen report on the visible text
package markup
