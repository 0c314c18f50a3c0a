package scene

import (
	"slices"
	"strings"
)

// Field names reported by downgrades.
const (
	FieldVisible    = "visible"
	FieldPalette    = "palette"
	FieldLabels     = "labels"
	FieldBookmarks  = "bookmarks"
	FieldAnimations = "animations"
)

// Loss is the fidelity report of a downgrade: the set of fields the target
// version has no representation for. An empty set means the downgrade was
// lossless. A non-empty Loss is not a failure, callers decide whether to
// accept, warn or abort.
type Loss struct {
	// Discarded holds the dropped field names, sorted and unique.
	Discarded []string
}

func lossOf(fields ...string) Loss {
	slices.Sort(fields)
	return Loss{Discarded: slices.Compact(fields)}
}

// Lossless reports whether nothing was discarded.
func (l Loss) Lossless() bool {
	return len(l.Discarded) == 0
}

// Contains reports whether the given field was discarded.
func (l Loss) Contains(field string) bool {
	_, found := slices.BinarySearch(l.Discarded, field)
	return found
}

// Merge returns the union of two reports.
func (l Loss) Merge(other Loss) Loss {
	return lossOf(append(slices.Clone(l.Discarded), other.Discarded...)...)
}

func (l Loss) String() string {
	if l.Lossless() {
		return "lossless"
	}
	return "discarded " + strings.Join(l.Discarded, ", ")
}
