// Package mdstream defines the event vocabulary produced by the Markdown
// event source: an ordered, well-nested sequence of structural and text
// events with byte ranges into the original source.
//
// The vocabulary is closed. Every StartTag is matched by exactly one EndTag
// of the same tag kind with strictly nested scoping; consumers may rely on
// this and treat violations as programming errors, not runtime conditions.
package mdstream

// EventKind classifies an event in the stream.
type EventKind uint8

// Event kinds.
const (
	EventStartTag EventKind = iota
	EventEndTag
	EventText
	EventCode
	EventHTML
	EventSoftBreak
	EventHardBreak
	EventRule
	EventFootnoteRef
	EventTaskMarker
)

var eventKindNames = [...]string{
	EventStartTag:    "StartTag",
	EventEndTag:      "EndTag",
	EventText:        "Text",
	EventCode:        "Code",
	EventHTML:        "HTML",
	EventSoftBreak:   "SoftBreak",
	EventHardBreak:   "HardBreak",
	EventRule:        "Rule",
	EventFootnoteRef: "FootnoteRef",
	EventTaskMarker:  "TaskMarker",
}

// String returns the event kind name.
func (k EventKind) String() string {
	if int(k) < len(eventKindNames) {
		return eventKindNames[k]
	}
	return "Unknown"
}

// Event is a single entry in the event stream.
//
// Field usage by kind:
//   - EventStartTag, EventEndTag: Tag is set.
//   - EventText, EventCode, EventHTML: Text holds the literal content. For
//     EventCode the Range covers the raw span including the surrounding
//     delimiter characters; Text holds only the inner content.
//   - EventFootnoteRef: Name holds the reference label.
//   - EventTaskMarker: Checked holds the checkbox state.
//   - EventSoftBreak, EventHardBreak, EventRule: no payload beyond Range.
type Event struct {
	Kind    EventKind
	Range   Range
	Tag     Tag
	Text    string
	Name    string
	Checked bool
}

// Start builds a StartTag event.
func Start(tag Tag, r Range) Event {
	return Event{Kind: EventStartTag, Tag: tag, Range: r}
}

// End builds an EndTag event.
func End(tag Tag, r Range) Event {
	return Event{Kind: EventEndTag, Tag: tag, Range: r}
}

// TextEvent builds a Text event.
func TextEvent(text string, r Range) Event {
	return Event{Kind: EventText, Text: text, Range: r}
}

// CodeEvent builds an inline Code event. The range must cover the raw span
// including delimiters; text is the inner content only.
func CodeEvent(text string, r Range) Event {
	return Event{Kind: EventCode, Text: text, Range: r}
}

// HTMLEvent builds a raw HTML event.
func HTMLEvent(html string, r Range) Event {
	return Event{Kind: EventHTML, Text: html, Range: r}
}
