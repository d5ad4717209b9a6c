// Package query derives the visible note list from the collection and the
// current search text, tag filter and sort order. Everything here is pure.
package query

import (
	"cmp"
	"slices"
	"strings"

	"github.com/marcus/notecard/internal/notes"
)

// AllTags is the tag filter value that disables tag filtering.
const AllTags = "all"

// SortKey selects the display order.
type SortKey string

const (
	SortModified SortKey = "modified"
	SortCreated  SortKey = "created"
	SortPinned   SortKey = "pinned"
)

var sortCycle = []SortKey{SortModified, SortCreated, SortPinned}

// ParseSortKey maps a string to a SortKey. Unknown values fall back to SortModified.
func ParseSortKey(s string) SortKey {
	switch k := SortKey(strings.ToLower(strings.TrimSpace(s))); k {
	case SortCreated, SortPinned:
		return k
	default:
		return SortModified
	}
}

// Next returns the following key in the modified, created, pinned cycle.
func (k SortKey) Next() SortKey {
	i := slices.Index(sortCycle, k)
	return sortCycle[(i+1)%len(sortCycle)]
}

// Label is the human readable name shown in the header.
func (k SortKey) Label() string {
	switch k {
	case SortCreated:
		return "Date Created"
	case SortPinned:
		return "Pinned First"
	default:
		return "Last Modified"
	}
}

// Params are the view inputs besides the collection itself.
type Params struct {
	Search string
	Tag    string
	Sort   SortKey
}

// Project filters and sorts list. The input slice and its notes are left
// untouched; the result holds copies.
func Project(list []notes.Note, p Params) []notes.Note {
	search := strings.ToLower(p.Search)
	out := make([]notes.Note, 0, len(list))
	for _, n := range list {
		if search != "" && !matchesSearch(n, search) {
			continue
		}
		if p.Tag != "" && p.Tag != AllTags && !n.HasTag(p.Tag) {
			continue
		}
		out = append(out, n.Clone())
	}
	slices.SortStableFunc(out, comparator(p.Sort))
	return out
}

func matchesSearch(n notes.Note, lowered string) bool {
	if strings.Contains(strings.ToLower(n.Title), lowered) ||
		strings.Contains(strings.ToLower(n.Content), lowered) {
		return true
	}
	for _, tag := range n.Tags {
		if strings.Contains(strings.ToLower(tag), lowered) {
			return true
		}
	}
	return false
}

func comparator(k SortKey) func(a, b notes.Note) int {
	byModified := func(a, b notes.Note) int {
		return b.Modified.Compare(a.Modified)
	}
	switch k {
	case SortCreated:
		return func(a, b notes.Note) int {
			return b.Created.Compare(a.Created)
		}
	case SortPinned:
		return func(a, b notes.Note) int {
			if c := cmp.Compare(pinRank(b), pinRank(a)); c != 0 {
				return c
			}
			return byModified(a, b)
		}
	default:
		return byModified
	}
}

func pinRank(n notes.Note) int {
	if n.Pinned {
		return 1
	}
	return 0
}

// DistinctTags returns the sorted union of every note's tags.
func DistinctTags(list []notes.Note) []string {
	tags := []string{}
	for _, n := range list {
		tags = append(tags, n.Tags...)
	}
	slices.Sort(tags)
	return slices.Compact(tags)
}

// ResolveTagFilter keeps selected when it is still offered, otherwise it
// falls back to AllTags.
func ResolveTagFilter(selected string, tags []string) string {
	if selected == AllTags || slices.Contains(tags, selected) {
		return selected
	}
	return AllTags
}
