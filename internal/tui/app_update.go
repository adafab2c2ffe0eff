package tui

import (
	"errors"
	"time"

	"todo-cli/internal/itemlist"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

const flashDuration = 2 * time.Second

func (m appModel) Init() tea.Cmd { return nil }

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.addInput.Width = m.inputWidth()
		m.editInput.Width = m.inputWidth()
		return m, nil

	case flashDoneMsg:
		if msg.seq == m.flashSeq {
			m.flash = ""
			m.flashErr = false
		}
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.mode {
		case modeAdd:
			return m.updateAdd(msg)
		case modeEdit:
			return m.updateEdit(msg)
		case modeConfirmDelete:
			return m.updateConfirmDelete(msg)
		default:
			return m.updateList(msg)
		}
	}
	return m, nil
}

func (m appModel) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		// Any key closes the help overlay; q still quits.
		m.showHelp = false
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil
	case key.Matches(msg, m.keys.History):
		m.itemHistory = !m.itemHistory
		m.refreshActivity()
		return m, nil
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		if m.itemHistory {
			m.refreshActivity()
		}
		return m, nil
	case key.Matches(msg, m.keys.Down):
		if m.cursor < m.store.Len()-1 {
			m.cursor++
		}
		if m.itemHistory {
			m.refreshActivity()
		}
		return m, nil
	case key.Matches(msg, m.keys.Add):
		m.mode = modeAdd
		m.addInput.SetValue("")
		return m, m.addInput.Focus()
	case key.Matches(msg, m.keys.Edit):
		id, ok := m.selectedID()
		if !ok {
			return m, nil
		}
		return m.beginEdit(id)
	case key.Matches(msg, m.keys.Delete):
		id, ok := m.selectedID()
		if !ok {
			return m, nil
		}
		if m.confirmDelete {
			m.pendingDeleteID = id
			m.mode = modeConfirmDelete
			return m, nil
		}
		return m.deleteItem(id)
	}
	return m, nil
}

func (m appModel) updateAdd(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.addInput.Blur()
		m.addInput.SetValue("")
		m.mode = modeList
		return m, nil
	case tea.KeyEnter:
		text := m.addInput.Value()
		// The form is cleared on every submit, accepted or not.
		m.addInput.SetValue("")
		it, err := m.store.Add(text)
		if err != nil {
			m.logger.Debug("add rejected", "err", err)
			flashCmd := m.setFlash("Nothing to add", true)
			return m, flashCmd
		}
		m.moveCursorTo(it.ID)
		m.refreshActivity()
		return m, nil
	}

	var cmd tea.Cmd
	m.addInput, cmd = m.addInput.Update(msg)
	return m, cmd
}

func (m appModel) updateEdit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyEsc:
		m.store.CancelEdit()
		return m.endEdit(), nil

	case msg.Type == tea.KeyEnter:
		id, _ := m.store.EditingID()
		err := m.store.CommitEdit()
		m.refreshActivity()
		switch {
		case errors.Is(err, itemlist.ErrInvalidInput):
			flashCmd := m.setFlash("Text cannot be empty (esc to cancel)", true)
			return m, flashCmd
		case err != nil:
			m.logger.Warn("commit edit", "item", id, "err", err)
			m = m.endEdit()
			flashCmd := m.setFlash(err.Error(), true)
			return m, flashCmd
		}
		m = m.endEdit()
		m.moveCursorTo(id)
		m.refreshActivity()
		flashCmd := m.setFlash("Saved", false)
		return m, flashCmd

	case key.Matches(msg, m.keys.NextEd), key.Matches(msg, m.keys.PrevEd):
		return m.switchEdit(key.Matches(msg, m.keys.NextEd))

	case key.Matches(msg, m.keys.DelEd):
		id, ok := m.store.EditingID()
		if !ok {
			return m.endEdit(), nil
		}
		if m.confirmDelete {
			m.pendingDeleteID = id
			m.confirmFromEdit = true
			m.mode = modeConfirmDelete
			return m, nil
		}
		return m.deleteItem(id)
	}

	before := m.editInput.Value()
	var cmd tea.Cmd
	m.editInput, cmd = m.editInput.Update(msg)
	if v := m.editInput.Value(); v != before {
		if err := m.store.UpdateEditBuffer(v); err != nil {
			m.logger.Warn("update edit buffer", "err", err)
		}
		m.refreshActivity()
	}
	return m, cmd
}

func (m appModel) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	id := m.pendingDeleteID
	m.pendingDeleteID = 0
	m.mode = modeList
	// A prompt raised from edit mode returns there; the edit is still active.
	if m.confirmFromEdit {
		m.mode = modeEdit
		m.confirmFromEdit = false
	}
	if key.Matches(msg, m.keys.Confirm) {
		return m.deleteItem(id)
	}
	flashCmd := m.setFlash("Delete cancelled", false)
	return m, flashCmd
}

func (m appModel) beginEdit(id int) (tea.Model, tea.Cmd) {
	if err := m.store.BeginEdit(id); err != nil {
		m.logger.Warn("begin edit", "item", id, "err", err)
		flashCmd := m.setFlash(err.Error(), true)
		return m, flashCmd
	}
	m.moveCursorTo(id)
	m.refreshActivity()
	m.mode = modeEdit
	m.editInput.SetValue(m.store.EditBuffer())
	m.editInput.CursorEnd()
	return m, m.editInput.Focus()
}

// switchEdit moves edit focus to the next/previous item. The current buffer
// is dropped without saving.
func (m appModel) switchEdit(forward bool) (tea.Model, tea.Cmd) {
	cur, ok := m.store.EditingID()
	if !ok {
		return m.endEdit(), nil
	}
	items := m.store.Items()
	if len(items) < 2 {
		return m, nil
	}
	idx := 0
	for i, it := range items {
		if it.ID == cur {
			idx = i
			break
		}
	}
	if forward {
		idx = (idx + 1) % len(items)
	} else {
		idx = (idx - 1 + len(items)) % len(items)
	}
	orig, _ := m.store.Item(cur)
	discarded := m.store.EditBuffer() != orig.Text

	next, cmd := m.beginEdit(items[idx].ID)
	nm := next.(appModel)
	if discarded {
		flashCmd := nm.setFlash("Unsaved changes discarded", false)
		return nm, tea.Batch(cmd, flashCmd)
	}
	return nm, cmd
}

func (m appModel) deleteItem(id int) (tea.Model, tea.Cmd) {
	if err := m.store.Delete(id); err != nil {
		m.logger.Warn("delete", "item", id, "err", err)
		flashCmd := m.setFlash(err.Error(), true)
		return m, flashCmd
	}
	if m.mode == modeEdit {
		if _, editing := m.store.EditingID(); !editing {
			m = m.endEdit()
		}
	}
	m.clampCursor()
	m.refreshActivity()
	flashCmd := m.setFlash("Deleted", false)
	return m, flashCmd
}

func (m appModel) endEdit() appModel {
	m.editInput.Blur()
	m.editInput.SetValue("")
	m.mode = modeList
	m.refreshActivity()
	return m
}

// setFlash shows a short status message that clears itself.
func (m *appModel) setFlash(msg string, isErr bool) tea.Cmd {
	m.flashSeq++
	m.flash = msg
	m.flashErr = isErr
	seq := m.flashSeq
	return tea.Tick(flashDuration, func(time.Time) tea.Msg { return flashDoneMsg{seq: seq} })
}

func (m appModel) inputWidth() int {
	w := m.width - 16
	if w < 10 {
		w = 10
	}
	return w
}
