package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

const minInputField = 10

// inputRow is one list line holding a text input: a plain lead (cursor and
// edit marker), a fixed label, then the input on a shaded field that fills
// the rest of the width.
type inputRow struct {
	lead  string
	label string
}

var inputNewlines = strings.NewReplacer("\n", " ", "\r", " ")

func (r inputRow) render(width int, inputView string) string {
	fixed := r.lead + r.label
	fieldW := max(width-xansi.StringWidth(fixed), minInputField)

	// Newlines in the view would wrap and look like inserted rows while typing.
	content := " " + inputNewlines.Replace(inputView) + " "
	if xansi.StringWidth(content) > fieldW {
		// Only the field is clipped so the label stays readable. The reset
		// keeps a cut style sequence from bleeding into the next line.
		content = xansi.Truncate(content, fieldW, "") + "\x1b[0m"
	}

	field := lipgloss.PlaceHorizontal(
		fieldW,
		lipgloss.Left,
		content,
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceBackground(colorInputBg),
	)
	return fixed + field
}
