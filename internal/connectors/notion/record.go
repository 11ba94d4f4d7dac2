package notion

import (
	"strings"
	"time"

	"github.com/jomei/notionapi"

	"github.com/custodia-labs/eventbox/internal/core/domain"
	"github.com/custodia-labs/eventbox/internal/markup"
)

// dateOnly is the layout for all-day dates.
const dateOnly = "2006-01-02"

// PageToEvent maps a database page to an event.
// Missing or mistyped properties yield empty fields.
func PageToEvent(page *notionapi.Page, cfg *Config) domain.Event {
	return domain.Event{
		ID:      string(page.ID),
		Header:  titleText(page.Properties[cfg.HeaderProperty]),
		Content: markup.Flatten(richTextSpans(page.Properties[cfg.ContentProperty])),
		Date:    dateText(page.Properties[cfg.DateProperty]),
		URL:     page.URL,
	}
}

// RecordToEvent maps a fetched record to an event. The date start is passed
// through as sent when the response carried it, so a midnight UTC datetime
// keeps its time.
func RecordToEvent(rec *Record, cfg *Config) domain.Event {
	event := PageToEvent(&rec.Page, cfg)
	if start, ok := rec.DateStarts[cfg.DateProperty]; ok {
		event.Date = start
	}
	return event
}

// titleText returns the text of the first title block.
func titleText(prop notionapi.Property) string {
	title, ok := prop.(*notionapi.TitleProperty)
	if !ok || len(title.Title) == 0 {
		return ""
	}
	return blockText(title.Title[0])
}

// richTextSpans converts a rich text property into spans.
// Title properties are accepted too so any text column can hold content.
func richTextSpans(prop notionapi.Property) []domain.Span {
	var blocks []notionapi.RichText
	switch p := prop.(type) {
	case *notionapi.RichTextProperty:
		blocks = p.RichText
	case *notionapi.TitleProperty:
		blocks = p.Title
	default:
		return nil
	}

	spans := make([]domain.Span, 0, len(blocks))
	for _, block := range blocks {
		spans = append(spans, toSpan(block))
	}
	return spans
}

func toSpan(block notionapi.RichText) domain.Span {
	span := domain.Span{
		Text: blockText(block),
		Href: block.Href,
	}
	if span.Href == "" && block.Text != nil && block.Text.Link != nil {
		span.Href = block.Text.Link.Url
	}
	if a := block.Annotations; a != nil {
		span.Bold = a.Bold
		span.Italic = a.Italic
		span.Strikethrough = a.Strikethrough
		span.Underline = a.Underline
		span.Code = a.Code
	}
	return span
}

// blockText prefers the rendered plain text and falls back to raw content.
func blockText(block notionapi.RichText) string {
	if block.PlainText != "" {
		return block.PlainText
	}
	if block.Text != nil {
		return block.Text.Content
	}
	return ""
}

// dateText returns the start of a date property.
func dateText(prop notionapi.Property) string {
	date, ok := prop.(*notionapi.DateProperty)
	if !ok || date.Date == nil || date.Date.Start == nil {
		return ""
	}
	return formatDate(time.Time(*date.Date.Start))
}

// formatDate renders all-day dates without a time part. It is the fallback
// when the raw start is unavailable, and then a midnight UTC datetime cannot
// be told apart from a date.
func formatDate(t time.Time) string {
	if isMidnightUTC(t) {
		return t.Format(dateOnly)
	}
	return t.Format(time.RFC3339)
}

func isMidnightUTC(t time.Time) bool {
	_, offset := t.Zone()
	return offset == 0 && t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0
}

// joinHeaders is used when logging a fetch summary.
func joinHeaders(events []domain.Event, limit int) string {
	headers := make([]string, 0, limit)
	for i, e := range events {
		if i == limit {
			headers = append(headers, "...")
			break
		}
		headers = append(headers, e.Header)
	}
	return strings.Join(headers, ", ")
}
