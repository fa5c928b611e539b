// Package attribution groups a finished plan's byte ranges by a
// caller-supplied owner label, so a layout can be explained in terms of the
// tensors/ops that claim each stretch of the arena.
package attribution

import (
	"fmt"
	"sort"

	"github.com/google/btree"
)

// Entry is one buffer's placement together with the owner name the caller
// attached to it.
type Entry struct {
	Owner  string
	Offset int
	Size   int
}

func (e Entry) end() int { return e.Offset + e.Size }

// Index orders a plan's buffers by offset and groups them by owner, so
// callers can ask either "what occupies byte N" or "what bytes does owner X
// hold" without re-scanning the whole buffer list.
type Index struct {
	byOffset *btree.BTreeG[Entry]
	byOwner  map[string][]Entry
}

// Build groups entries by owner and indexes them by offset. It returns an
// error if any two entries' byte ranges overlap. Entries carry no lifetime,
// so buffers that share bytes at different times cannot be indexed together.
func Build(entries []Entry) (*Index, error) {
	idx := &Index{
		byOffset: btree.NewG[Entry](32, func(a, b Entry) bool { return a.Offset < b.Offset }),
		byOwner:  make(map[string][]Entry),
	}
	for _, e := range entries {
		if e.Size < 0 {
			return nil, fmt.Errorf("attribution: entry for owner %q has negative size %d", e.Owner, e.Size)
		}
		var conflict *Entry
		idx.byOffset.DescendLessOrEqual(e, func(item Entry) bool {
			if item.end() > e.Offset {
				c := item
				conflict = &c
			}
			return false
		})
		if conflict == nil {
			idx.byOffset.AscendGreaterOrEqual(e, func(item Entry) bool {
				if item.Offset < e.end() {
					c := item
					conflict = &c
				}
				return false
			})
		}
		if conflict != nil {
			return nil, fmt.Errorf("attribution: owner %q range [%d,%d) overlaps owner %q range [%d,%d)",
				e.Owner, e.Offset, e.end(), conflict.Owner, conflict.Offset, conflict.end())
		}

		idx.byOffset.ReplaceOrInsert(e)
		idx.byOwner[e.Owner] = append(idx.byOwner[e.Owner], e)
	}
	return idx, nil
}

// OwnerAt returns the owner occupying byte offset, and whether any owner
// claims it at all.
func (idx *Index) OwnerAt(offset int) (string, bool) {
	var found Entry
	var ok bool
	idx.byOffset.DescendLessOrEqual(Entry{Offset: offset}, func(item Entry) bool {
		if item.Offset <= offset && offset < item.end() {
			found = item
			ok = true
		}
		return false
	})
	return found.Owner, ok
}

// Ranges returns every range attributed to owner, in offset order.
func (idx *Index) Ranges(owner string) []Entry {
	ranges := append([]Entry(nil), idx.byOwner[owner]...)
	sort.Slice(ranges, func(i, j int) bool { return ranges[i].Offset < ranges[j].Offset })
	return ranges
}

// TotalBytes sums the size of every range attributed to owner.
func (idx *Index) TotalBytes(owner string) int {
	var total int
	for _, e := range idx.byOwner[owner] {
		total += e.Size
	}
	return total
}

// Owners returns every distinct owner name present in the index, in no
// particular order.
func (idx *Index) Owners() []string {
	owners := make([]string, 0, len(idx.byOwner))
	for o := range idx.byOwner {
		owners = append(owners, o)
	}
	return owners
}
