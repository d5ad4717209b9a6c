package notes

import (
	"encoding/json"
	"fmt"
	"time"
)

// record is the persisted shape of a note. Timestamps are epoch milliseconds.
type record struct {
	ID       int64    `json:"id"`
	Title    string   `json:"title"`
	Content  string   `json:"content"`
	Tags     []string `json:"tags"`
	Created  int64    `json:"created"`
	Modified int64    `json:"modified"`
	Pinned   bool     `json:"pinned"`
}

// looseRecord is used on decode so missing fields can be told apart from
// zero values.
type looseRecord struct {
	ID       *int64   `json:"id"`
	Title    *string  `json:"title"`
	Content  *string  `json:"content"`
	Tags     []string `json:"tags"`
	Created  *int64   `json:"created"`
	Modified *int64   `json:"modified"`
	Pinned   *bool    `json:"pinned"`
}

func toRecord(n Note) record {
	tags := n.Tags
	if tags == nil {
		tags = []string{}
	}
	return record{
		ID:       n.ID,
		Title:    n.Title,
		Content:  n.Content,
		Tags:     tags,
		Created:  n.Created.UnixMilli(),
		Modified: n.Modified.UnixMilli(),
		Pinned:   n.Pinned,
	}
}

// Encode serializes the collection to its canonical JSON form, preserving order.
func Encode(list []Note) (string, error) {
	data, err := json.Marshal(records(list))
	if err != nil {
		return "", fmt.Errorf("encode notes: %w", err)
	}
	return string(data), nil
}

// EncodeIndent is Encode with two-space indentation, for exports.
func EncodeIndent(list []Note) (string, error) {
	data, err := json.MarshalIndent(records(list), "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode notes: %w", err)
	}
	return string(data), nil
}

func records(list []Note) []record {
	recs := make([]record, len(list))
	for i, n := range list {
		recs[i] = toRecord(n)
	}
	return recs
}

// Decode parses a serialized collection. Records that lack a required field,
// carry a wrongly typed field, or repeat an earlier id are dropped. Unknown
// fields are ignored. The error is non-nil only when the blob is not a JSON array.
func Decode(blob string) ([]Note, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal([]byte(blob), &raw); err != nil {
		return nil, fmt.Errorf("decode notes: %w", err)
	}

	list := make([]Note, 0, len(raw))
	seen := make(map[int64]bool, len(raw))
	for _, msg := range raw {
		var lr looseRecord
		if err := json.Unmarshal(msg, &lr); err != nil {
			continue
		}
		n, ok := lr.note()
		if !ok || seen[n.ID] {
			continue
		}
		seen[n.ID] = true
		list = append(list, n)
	}
	return list, nil
}

// note converts a decoded record, reporting false if a required field is missing.
func (lr looseRecord) note() (Note, bool) {
	if lr.ID == nil || lr.Title == nil || lr.Content == nil || lr.Created == nil || lr.Modified == nil {
		return Note{}, false
	}
	tags := lr.Tags
	if tags == nil {
		tags = []string{}
	}
	return Note{
		ID:       *lr.ID,
		Title:    *lr.Title,
		Content:  *lr.Content,
		Tags:     tags,
		Created:  time.UnixMilli(*lr.Created),
		Modified: time.UnixMilli(*lr.Modified),
		Pinned:   lr.Pinned != nil && *lr.Pinned,
	}, true
}
