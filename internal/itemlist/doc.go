// Package itemlist holds the in-memory todo list: an ordered collection of
// items with monotonic id allocation and at most one item in edit mode.
//
// A Store is owned by a single writer (the TUI update loop, or a Queue
// goroutine). It is not safe for concurrent use.
package itemlist
