package tui

import (
	"context"
	"io"

	"todo-cli/internal/itemlist"
	"todo-cli/internal/journal"
	"todo-cli/internal/model"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/log"
)

type mode int

const (
	modeList mode = iota
	modeAdd
	modeEdit
	modeConfirmDelete
)

func (m mode) String() string {
	switch m {
	case modeAdd:
		return "add"
	case modeEdit:
		return "edit"
	case modeConfirmDelete:
		return "confirm-delete"
	default:
		return "list"
	}
}

type flashDoneMsg struct{ seq int }

type appModel struct {
	store   *itemlist.Store
	journal *journal.Journal
	logger  *log.Logger

	keys keyMap
	help help.Model

	addInput  textinput.Model
	editInput textinput.Model

	mode   mode
	cursor int

	width  int
	height int

	showHelp bool

	confirmDelete   bool
	pendingDeleteID int
	confirmFromEdit bool

	activityRows int
	activity     []model.Event

	// itemHistory narrows the activity footer to the selected item.
	itemHistory bool

	flash    string
	flashErr bool
	flashSeq int
}

type Options struct {
	Store   *itemlist.Store
	Journal *journal.Journal
	Logger  *log.Logger

	// Glyphs is unicode or ascii.
	Glyphs        string
	ConfirmDelete bool
	// ActivityRows is how many journal entries the footer shows.
	ActivityRows int
}

func newAppModel(opts Options) appModel {
	st := opts.Store
	if st == nil {
		st = itemlist.New()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	applyGlyphPreference(opts.Glyphs)

	m := appModel{
		store:         st,
		journal:       opts.Journal,
		logger:        logger,
		keys:          defaultKeyMap(),
		help:          help.New(),
		mode:          modeList,
		confirmDelete: opts.ConfirmDelete,
		activityRows:  opts.ActivityRows,
	}

	m.addInput = textinput.New()
	m.addInput.Placeholder = "New todo"
	m.addInput.Prompt = "+ "
	m.addInput.CharLimit = 500

	m.editInput = textinput.New()
	m.editInput.Prompt = ""
	m.editInput.CharLimit = 500

	m.refreshActivity()
	return m
}

// selectedID returns the id under the cursor.
func (m appModel) selectedID() (int, bool) {
	items := m.store.Items()
	if m.cursor < 0 || m.cursor >= len(items) {
		return 0, false
	}
	return items[m.cursor].ID, true
}

func (m *appModel) clampCursor() {
	n := m.store.Len()
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// moveCursorTo puts the cursor on id (no-op if missing).
func (m *appModel) moveCursorTo(id int) {
	for i, it := range m.store.Items() {
		if it.ID == id {
			m.cursor = i
			return
		}
	}
}

func (m *appModel) refreshActivity() {
	if m.journal == nil || m.activityRows <= 0 {
		m.activity = nil
		return
	}
	ctx := context.Background()
	if !m.itemHistory {
		evs, err := m.journal.Tail(ctx, m.activityRows)
		if err != nil {
			m.logger.Warn("read activity", "err", err)
			return
		}
		m.activity = evs
		return
	}

	id, ok := m.selectedID()
	if !ok {
		m.activity = nil
		return
	}
	evs, err := m.journal.ItemEvents(ctx, id)
	if err != nil {
		m.logger.Warn("read item history", "item", id, "err", err)
		return
	}
	if len(evs) > m.activityRows {
		evs = evs[len(evs)-m.activityRows:]
	}
	m.activity = evs
}
