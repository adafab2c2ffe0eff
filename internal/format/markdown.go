package format

import (
	"fmt"
	"strings"
	"sync"

	"todo-cli/internal/model"

	"github.com/charmbracelet/glamour"
)

const EmptyListMessage = "No items yet. Add one!"

// ListMarkdown renders items in order. editingID marks the item in edit mode
// (nil when none).
func ListMarkdown(title string, items []model.Item, editingID *int) string {
	var b strings.Builder
	if strings.TrimSpace(title) != "" {
		fmt.Fprintf(&b, "# %s\n\n", strings.TrimSpace(title))
	}
	if len(items) == 0 {
		fmt.Fprintf(&b, "_%s_\n", EmptyListMessage)
		return b.String()
	}
	for _, it := range items {
		fmt.Fprintf(&b, "- ID %d : %s", it.ID, escapeInline(it.Text))
		if editingID != nil && *editingID == it.ID {
			b.WriteString(" _(editing)_")
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// escapeInline keeps item text from being read as markdown structure.
func escapeInline(s string) string {
	r := strings.NewReplacer(
		`\`, `\\`,
		"*", `\*`,
		"_", `\_`,
		"`", "\\`",
		"[", `\[`,
		"]", `\]`,
	)
	return r.Replace(s)
}

var (
	mdRendererMu sync.Mutex
	// Renderers are cached by width. WithAutoStyle can block on terminal
	// queries, so a fixed style is used.
	mdRenderers = map[int]*glamour.TermRenderer{}
)

// RenderMarkdown renders md for a terminal.
func RenderMarkdown(md string, width int) (string, error) {
	if width <= 0 {
		width = 80
	}
	mdRendererMu.Lock()
	defer mdRendererMu.Unlock()

	r := mdRenderers[width]
	if r == nil {
		rr, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle("notty"),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return "", err
		}
		mdRenderers[width] = rr
		r = rr
	}
	return r.Render(md)
}
