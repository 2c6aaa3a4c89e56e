package mdstream

// Range is a half-open [Start, End) span of byte offsets into the original
// UTF-8 source. Every event carries one; it is used for positional reasoning
// only and is never emitted directly.
type Range struct {
	Start int
	End   int
}

// Len returns the length of this range in bytes.
func (r Range) Len() int {
	return r.End - r.Start
}

// IsEmpty returns true if this range has zero length.
func (r Range) IsEmpty() bool {
	return r.Start == r.End
}

// Contains returns true if the byte offset falls inside [Start, End).
func (r Range) Contains(offset int) bool {
	return r.Start <= offset && offset < r.End
}

// Text returns the source text covered by this range, or nil when the range
// does not fit inside the content.
func (r Range) Text(content []byte) []byte {
	if r.Start < 0 || r.End > len(content) || r.Start > r.End {
		return nil
	}
	return content[r.Start:r.End]
}
