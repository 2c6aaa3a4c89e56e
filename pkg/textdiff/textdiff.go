// Package textdiff derives the modified offset between two revisions of a
// document: the byte position where the new revision first diverges from the
// old one. The offset feeds the "modified" marker of the parse-tree output
// so a preview can scroll to the edit.
package textdiff

import (
	"github.com/sergi/go-diff/diffmatchpatch"
)

// FirstChange returns the byte offset into curr where it first differs from
// prev. The second return is false when the revisions are identical.
func FirstChange(prev, curr string) (int, bool) {
	if prev == curr {
		return 0, false
	}

	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(prev, curr, false)

	offset := 0
	for _, d := range diffs {
		if d.Type != diffmatchpatch.DiffEqual {
			return offset, true
		}
		offset += len(d.Text)
	}
	return offset, true
}
