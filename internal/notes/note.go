// Package notes owns the note record, its validation rules, the blob codec,
// and the repository that is the sole mutator of the note collection.
package notes

import (
	"slices"
	"strings"
	"time"
)

// Note represents a single user-authored note.
type Note struct {
	ID       int64
	Title    string
	Content  string
	Tags     []string
	Created  time.Time
	Modified time.Time
	Pinned   bool
}

// HasTag reports whether the note carries tag exactly (case-sensitive).
func (n Note) HasTag(tag string) bool {
	return slices.Contains(n.Tags, tag)
}

// Clone returns a copy that shares no memory with n.
func (n Note) Clone() Note {
	c := n
	if n.Tags != nil {
		c.Tags = slices.Clone(n.Tags)
	}
	return c
}

// TagsString joins the tags the way the editor shows them.
func (n Note) TagsString() string {
	return strings.Join(n.Tags, ", ")
}

// ParseTags splits a comma-separated tag list, trims each entry, and drops
// empty entries. Duplicates are kept. The result is never nil.
func ParseTags(raw string) []string {
	tags := []string{}
	for _, part := range strings.Split(raw, ",") {
		if tag := strings.TrimSpace(part); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// cloneAll deep-copies a slice of notes.
func cloneAll(in []Note) []Note {
	out := make([]Note, len(in))
	for i, n := range in {
		out[i] = n.Clone()
	}
	return out
}
