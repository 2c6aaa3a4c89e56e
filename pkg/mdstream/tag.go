package mdstream

// TagKind classifies a structural construct bounded by matched Start/End
// events.
type TagKind uint8

// Tag kinds.
const (
	TagParagraph TagKind = iota
	TagHeading
	TagTable
	TagTableHead
	TagTableRow
	TagTableCell
	TagBlockQuote
	TagCodeBlock
	TagList
	TagItem
	TagEmphasis
	TagStrong
	TagStrikethrough
	TagLink
	TagImage
	TagFootnoteDef
)

var tagKindNames = [...]string{
	TagParagraph:     "Paragraph",
	TagHeading:       "Heading",
	TagTable:         "Table",
	TagTableHead:     "TableHead",
	TagTableRow:      "TableRow",
	TagTableCell:     "TableCell",
	TagBlockQuote:    "BlockQuote",
	TagCodeBlock:     "CodeBlock",
	TagList:          "List",
	TagItem:          "Item",
	TagEmphasis:      "Emphasis",
	TagStrong:        "Strong",
	TagStrikethrough: "Strikethrough",
	TagLink:          "Link",
	TagImage:         "Image",
	TagFootnoteDef:   "FootnoteDef",
}

// String returns the tag kind name.
func (k TagKind) String() string {
	if int(k) < len(tagKindNames) {
		return tagKindNames[k]
	}
	return "Unknown"
}

// Alignment is a table column alignment.
type Alignment uint8

// Column alignments, in source order of the delimiter row.
const (
	AlignNone Alignment = iota
	AlignLeft
	AlignCenter
	AlignRight
)

// LinkKind distinguishes how a link destination was written in the source.
type LinkKind uint8

// Link kinds. Only email autolinks need special rendering (mailto: prefix);
// the remaining kinds are carried for completeness of the vocabulary.
const (
	LinkInline LinkKind = iota
	LinkAutolink
	LinkEmail
)

// Tag describes one structural construct. Kind selects which attribute
// fields are meaningful:
//
//   - TagHeading: Level (1-6) and optional ID (HasID).
//   - TagTable: Alignments, one entry per column.
//   - TagCodeBlock: Info, the raw fence info string ("" for indented blocks).
//   - TagList: ordered lists set Ordered and ListStart; plain bullet lists
//     leave Ordered false.
//   - TagLink, TagImage: LinkKind, Destination, Title.
//   - TagFootnoteDef: Name, the definition label.
//
// All other kinds carry no attributes.
type Tag struct {
	Kind TagKind

	// Heading.
	Level int
	ID    string
	HasID bool

	// Table.
	Alignments []Alignment

	// Code block.
	Info string

	// List.
	Ordered   bool
	ListStart int

	// Link and image.
	LinkKind    LinkKind
	Destination string
	Title       string

	// Footnote definition.
	Name string
}

// Paragraph returns a paragraph tag.
func Paragraph() Tag { return Tag{Kind: TagParagraph} }

// Heading returns a heading tag for the given level (1-6).
func Heading(level int) Tag { return Tag{Kind: TagHeading, Level: level} }

// HeadingWithID returns a heading tag carrying a slug id.
func HeadingWithID(level int, id string) Tag {
	return Tag{Kind: TagHeading, Level: level, ID: id, HasID: true}
}

// Table returns a table tag with per-column alignments.
func Table(alignments []Alignment) Tag {
	return Tag{Kind: TagTable, Alignments: alignments}
}

// TableHead returns a table head tag.
func TableHead() Tag { return Tag{Kind: TagTableHead} }

// TableRow returns a table row tag.
func TableRow() Tag { return Tag{Kind: TagTableRow} }

// TableCell returns a table cell tag.
func TableCell() Tag { return Tag{Kind: TagTableCell} }

// BlockQuote returns a block quote tag.
func BlockQuote() Tag { return Tag{Kind: TagBlockQuote} }

// CodeBlock returns a code block tag with the raw fence info string.
func CodeBlock(info string) Tag { return Tag{Kind: TagCodeBlock, Info: info} }

// OrderedList returns an ordered list tag starting at the given number.
func OrderedList(start int) Tag {
	return Tag{Kind: TagList, Ordered: true, ListStart: start}
}

// BulletList returns an unordered list tag.
func BulletList() Tag { return Tag{Kind: TagList} }

// Item returns a list item tag.
func Item() Tag { return Tag{Kind: TagItem} }

// Emphasis returns an emphasis tag.
func Emphasis() Tag { return Tag{Kind: TagEmphasis} }

// Strong returns a strong emphasis tag.
func Strong() Tag { return Tag{Kind: TagStrong} }

// Strikethrough returns a strikethrough tag.
func Strikethrough() Tag { return Tag{Kind: TagStrikethrough} }

// Link returns a link tag.
func Link(kind LinkKind, destination, title string) Tag {
	return Tag{Kind: TagLink, LinkKind: kind, Destination: destination, Title: title}
}

// Image returns an image tag.
func Image(destination, title string) Tag {
	return Tag{Kind: TagImage, Destination: destination, Title: title}
}

// FootnoteDef returns a footnote definition tag for the given label.
func FootnoteDef(name string) Tag { return Tag{Kind: TagFootnoteDef, Name: name} }
