package domain

import "time"

// Event is a single calendar-like entry.
// Content is plain text interspersed with anchor and inline formatting
// markup; it is safe to embed in an HTML document as is.
type Event struct {
	// ID is the Notion page ID.
	ID string

	// Header is the event title.
	Header string

	// Content is the flattened rich text with inline markup.
	Content string

	// Date is the start date, either 2006-01-02 or RFC 3339.
	Date string

	// URL is the Notion page URL.
	URL string
}

// Span is one rich text block from the source.
type Span struct {
	Text string

	// Href is the hyperlink attached to the block, if any.
	Href string

	Bold          bool
	Italic        bool
	Strikethrough bool
	Underline     bool
	Code          bool
}

// HasLink reports whether the span carries a hyperlink.
func (s Span) HasLink() bool {
	return s.Href != ""
}

// Snapshot is a stored result of one fetch.
type Snapshot struct {
	ID        string
	FetchedAt time.Time
	Events    []Event
}
