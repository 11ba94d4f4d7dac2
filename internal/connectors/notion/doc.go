// Package notion provides an EventSource backed by a Notion database.
//
// Each database page is one event. Three properties are read: a title
// property (the event header), a rich text property (the event content)
// and a date property (the event date). Property names default to
// "header", "content" and "date" and can be changed in settings.
//
// Rich text is reduced to content markup with markup.Flatten so links
// present in the source survive as anchors.
package notion
