package model

import "time"

// Item is a single list entry. ID is assigned once by the store and never
// changes; Text only changes through a committed edit.
type Item struct {
	ID   int    `json:"id"`
	Text string `json:"text"`
}

type ChangeKind string

const (
	ChangeAdded             ChangeKind = "added"
	ChangeDeleted           ChangeKind = "deleted"
	ChangeEditStarted       ChangeKind = "edit_started"
	ChangeEditBufferUpdated ChangeKind = "edit_buffer_updated"
	ChangeEditCommitted     ChangeKind = "edit_committed"
	ChangeEditCancelled     ChangeKind = "edit_cancelled"
)

// Kinds lists every change kind in a stable order.
func Kinds() []ChangeKind {
	return []ChangeKind{
		ChangeAdded,
		ChangeDeleted,
		ChangeEditStarted,
		ChangeEditBufferUpdated,
		ChangeEditCommitted,
		ChangeEditCancelled,
	}
}

// Change describes one successful store mutation.
//
// Item is the item after the mutation (or the removed item for deletes).
// Prev holds the text before an edit commit. Buffer is the edit buffer after
// the mutation.
type Change struct {
	Kind   ChangeKind `json:"kind"`
	ItemID int        `json:"itemId"`
	Item   *Item      `json:"item,omitempty"`
	Prev   string     `json:"prev,omitempty"`
	Buffer string     `json:"buffer,omitempty"`
}

// Event is a recorded Change with journal metadata.
type Event struct {
	Seq       int64      `json:"seq"`
	SessionID string     `json:"sessionId"`
	TS        time.Time  `json:"ts"`
	Kind      ChangeKind `json:"kind"`
	ItemID    int        `json:"itemId"`
	Payload   any        `json:"payload,omitempty"`
}
