package itemlist

import (
	"strings"

	"todo-cli/internal/model"
)

// Store is the ordered item list plus its edit state.
type Store struct {
	items  []model.Item
	nextID int

	editing    bool
	editingID  int
	editBuffer string

	observers []observer
	obsSeq    int
}

// Snapshot is a copy of the full store state.
type Snapshot struct {
	Items      []model.Item `json:"items"`
	NextID     int          `json:"nextId"`
	EditingID  *int         `json:"editingId"`
	EditBuffer string       `json:"editBuffer"`
}

func New() *Store {
	return &Store{nextID: 1}
}

// Add appends a new item with the trimmed text and returns it.
// Text that is empty after trimming is rejected with ErrInvalidInput.
func (s *Store) Add(text string) (model.Item, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return model.Item{}, ErrInvalidInput
	}
	it := model.Item{ID: s.nextID, Text: text}
	s.items = append(s.items, it)
	s.nextID++

	s.notify(model.Change{Kind: model.ChangeAdded, ItemID: it.ID, Item: &it})
	return it, nil
}

// Delete removes the item with the given id, keeping the order of the rest.
// Deleting the item being edited also ends the edit.
func (s *Store) Delete(id int) error {
	idx := s.indexOf(id)
	if idx < 0 {
		return errItemNotFound(id)
	}
	removed := s.items[idx]
	s.items = append(s.items[:idx:idx], s.items[idx+1:]...)
	if s.editing && s.editingID == id {
		s.clearEdit()
	}

	s.notify(model.Change{Kind: model.ChangeDeleted, ItemID: id, Item: &removed})
	return nil
}

// BeginEdit puts the item in edit mode with a buffer seeded from its text.
// If another item is being edited its buffer is dropped without saving.
func (s *Store) BeginEdit(id int) error {
	idx := s.indexOf(id)
	if idx < 0 {
		return errItemNotFound(id)
	}
	it := s.items[idx]
	s.editing = true
	s.editingID = id
	s.editBuffer = it.Text

	s.notify(model.Change{Kind: model.ChangeEditStarted, ItemID: id, Item: &it, Buffer: s.editBuffer})
	return nil
}

// UpdateEditBuffer replaces the edit buffer verbatim.
func (s *Store) UpdateEditBuffer(text string) error {
	if !s.editing {
		return ErrNoActiveEdit
	}
	s.editBuffer = text

	s.notify(model.Change{Kind: model.ChangeEditBufferUpdated, ItemID: s.editingID, Buffer: text})
	return nil
}

// CommitEdit writes the trimmed buffer into the edited item and ends the edit.
//
// A buffer that trims to "" is rejected with ErrInvalidInput and the edit
// stays active. If the edited item is gone the edit still ends and a
// NotFoundError is returned.
func (s *Store) CommitEdit() error {
	if !s.editing {
		return ErrNoActiveEdit
	}
	id := s.editingID
	idx := s.indexOf(id)
	if idx < 0 {
		s.clearEdit()
		return errItemNotFound(id)
	}
	text := strings.TrimSpace(s.editBuffer)
	if text == "" {
		return ErrInvalidInput
	}

	prev := s.items[idx].Text
	s.items[idx].Text = text
	it := s.items[idx]
	s.clearEdit()

	s.notify(model.Change{Kind: model.ChangeEditCommitted, ItemID: id, Item: &it, Prev: prev})
	return nil
}

// CancelEdit ends any active edit, discarding the buffer.
func (s *Store) CancelEdit() {
	if !s.editing {
		return
	}
	id := s.editingID
	s.clearEdit()

	var itp *model.Item
	if idx := s.indexOf(id); idx >= 0 {
		it := s.items[idx]
		itp = &it
	}
	s.notify(model.Change{Kind: model.ChangeEditCancelled, ItemID: id, Item: itp})
}

// Items returns a copy of the items in list order.
func (s *Store) Items() []model.Item {
	out := make([]model.Item, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Store) Item(id int) (model.Item, bool) {
	idx := s.indexOf(id)
	if idx < 0 {
		return model.Item{}, false
	}
	return s.items[idx], true
}

func (s *Store) Len() int { return len(s.items) }

// NextID is the id the next Add will assign.
func (s *Store) NextID() int { return s.nextID }

// EditingID reports the id in edit mode, if any.
func (s *Store) EditingID() (int, bool) {
	return s.editingID, s.editing
}

func (s *Store) IsEditing(id int) bool {
	return s.editing && s.editingID == id
}

func (s *Store) EditBuffer() string { return s.editBuffer }

func (s *Store) Snapshot() Snapshot {
	snap := Snapshot{
		Items:      s.Items(),
		NextID:     s.nextID,
		EditBuffer: s.editBuffer,
	}
	if s.editing {
		id := s.editingID
		snap.EditingID = &id
	}
	return snap
}

func (s *Store) indexOf(id int) int {
	for i := range s.items {
		if s.items[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) clearEdit() {
	s.editing = false
	s.editingID = 0
	s.editBuffer = ""
}
