package tui

import (
	"fmt"
	"strings"

	"todo-cli/internal/docs"
	"todo-cli/internal/format"
	"todo-cli/internal/model"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

const defaultWidth = 80

func (m appModel) bodyWidth() int {
	if m.width <= 0 {
		return defaultWidth
	}
	return m.width
}

func (m appModel) View() string {
	w := m.bodyWidth()
	if m.showHelp {
		return m.viewHelp(w)
	}

	var b strings.Builder
	b.WriteString(styleHeader().Render("Todos"))
	b.WriteString(styleMuted().Render(fmt.Sprintf("  %d item(s)", m.store.Len())))
	b.WriteString("\n\n")

	b.WriteString(m.viewList(w))
	b.WriteString("\n")

	switch m.mode {
	case modeAdd:
		b.WriteString(inputRow{}.render(w, m.addInput.View()))
		b.WriteString("\n")
	case modeConfirmDelete:
		it, _ := m.store.Item(m.pendingDeleteID)
		b.WriteString(styleFlash(true).Render(fmt.Sprintf("Delete %q? (y/N)", it.Text)))
		b.WriteString("\n")
	}

	if m.flash != "" {
		b.WriteString(styleFlash(m.flashErr).Render(m.flash))
		b.WriteString("\n")
	}

	if act := m.viewActivity(w); act != "" {
		b.WriteString(act)
	}

	b.WriteString(m.help.View(m.helpKeys()))
	return b.String()
}

func (m appModel) viewList(w int) string {
	items := m.store.Items()
	if len(items) == 0 {
		return styleMuted().Render(format.EmptyListMessage) + "\n"
	}

	var b strings.Builder
	for i, it := range items {
		b.WriteString(m.viewRow(w, i, it))
		b.WriteString("\n")
	}
	return b.String()
}

func (m appModel) viewRow(w, idx int, it model.Item) string {
	prefix := "  "
	if idx == m.cursor && m.mode != modeAdd {
		prefix = glyphCursor() + " "
	}
	label := fmt.Sprintf("ID %d : ", it.ID)

	if m.mode == modeEdit && m.store.IsEditing(it.ID) {
		marker := styleEditing().Render(glyphEditing() + " ")
		return inputRow{lead: prefix + marker, label: label}.render(w, m.editInput.View())
	}

	line := prefix + label + it.Text
	if xansi.StringWidth(line) > w {
		line = xansi.Truncate(line, w, "…")
	}
	if idx == m.cursor && m.mode == modeList {
		return styleSelected().Width(w).Render(line)
	}
	return line
}

func (m appModel) viewActivity(w int) string {
	if len(m.activity) == 0 {
		return ""
	}
	rule := strings.Repeat(glyphHRule(), w)
	if m.itemHistory {
		label := fmt.Sprintf("%s%s history of #%d ", glyphHRule(), glyphHRule(), m.activity[0].ItemID)
		if lw := xansi.StringWidth(label); lw < w {
			rule = label + strings.Repeat(glyphHRule(), w-lw)
		}
	}

	var b strings.Builder
	b.WriteString(styleMuted().Render(rule))
	b.WriteString("\n")
	for _, ev := range m.activity {
		line := fmt.Sprintf("%s  %s", ev.TS.Local().Format("15:04:05"), describeEvent(ev))
		b.WriteString(styleMuted().Render(xansi.Truncate(line, w, "…")))
		b.WriteString("\n")
	}
	return b.String()
}

func describeEvent(ev model.Event) string {
	switch ev.Kind {
	case model.ChangeAdded:
		return fmt.Sprintf("added #%d", ev.ItemID)
	case model.ChangeDeleted:
		return fmt.Sprintf("deleted #%d", ev.ItemID)
	case model.ChangeEditStarted:
		return fmt.Sprintf("editing #%d", ev.ItemID)
	case model.ChangeEditBufferUpdated:
		return fmt.Sprintf("typing in #%d", ev.ItemID)
	case model.ChangeEditCommitted:
		return fmt.Sprintf("saved #%d", ev.ItemID)
	case model.ChangeEditCancelled:
		return fmt.Sprintf("cancelled edit of #%d", ev.ItemID)
	default:
		return string(ev.Kind)
	}
}

func (m appModel) helpKeys() help.KeyMap {
	switch m.mode {
	case modeAdd:
		return addHelp(m.keys)
	case modeEdit:
		return editHelp(m.keys)
	default:
		return listHelp(m.keys)
	}
}

func (m appModel) viewHelp(w int) string {
	md, _ := docs.Get("keys")
	out, err := format.RenderMarkdown(md, w)
	if err != nil {
		m.logger.Warn("render help", "err", err)
		out = md
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		strings.TrimRight(out, "\n"),
		"",
		styleMuted().Render("press any key to close"),
	)
}
