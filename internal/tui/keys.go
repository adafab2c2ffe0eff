package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up      key.Binding
	Down    key.Binding
	Add     key.Binding
	Edit    key.Binding
	Delete  key.Binding
	Help    key.Binding
	History key.Binding
	Quit    key.Binding
	Submit  key.Binding
	Cancel  key.Binding
	NextEd  key.Binding
	PrevEd  key.Binding
	DelEd   key.Binding
	Confirm key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Add:     key.NewBinding(key.WithKeys("a", "n"), key.WithHelp("a", "add")),
		Edit:    key.NewBinding(key.WithKeys("e", "enter"), key.WithHelp("e", "edit")),
		Delete:  key.NewBinding(key.WithKeys("d", "x", "delete"), key.WithHelp("d", "delete")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		History: key.NewBinding(key.WithKeys("h"), key.WithHelp("h", "item history")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Submit:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "save")),
		Cancel:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		NextEd:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "edit next")),
		PrevEd:  key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "edit previous")),
		DelEd:   key.NewBinding(key.WithKeys("ctrl+d"), key.WithHelp("ctrl+d", "delete edited")),
		Confirm: key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "confirm")),
	}
}

// listHelp is the help.KeyMap shown in list mode.
type listHelp keyMap

func (k listHelp) ShortHelp() []key.Binding {
	return []key.Binding{k.Add, k.Edit, k.Delete, k.Help, k.Quit}
}

func (k listHelp) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down}, {k.Add, k.Edit, k.Delete}, {k.History, k.Help, k.Quit}}
}

type addHelp keyMap

func (k addHelp) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "add")),
		key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "done")),
	}
}

func (k addHelp) FullHelp() [][]key.Binding { return [][]key.Binding{k.ShortHelp()} }

type editHelp keyMap

func (k editHelp) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.Cancel, k.NextEd, k.DelEd}
}

func (k editHelp) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Submit, k.Cancel}, {k.NextEd, k.PrevEd, k.DelEd}}
}
