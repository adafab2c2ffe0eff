package tui

import (
	"strings"
	"testing"

	xansi "github.com/charmbracelet/x/ansi"
)

func TestInputRow_FillsWidth(t *testing.T) {
	rows := []inputRow{
		{},
		{lead: "> * ", label: "ID 12 : "},
	}
	for _, r := range rows {
		for _, in := range []string{"short", strings.Repeat("x", 200), "multi\nline"} {
			line := r.render(40, in)
			if w := xansi.StringWidth(line); w != 40 {
				t.Fatalf("width(%+v, %q) = %d; want 40", r, in, w)
			}
			if strings.Contains(line, "\n") {
				t.Fatalf("line contains newline: %q", line)
			}
		}
	}
}

func TestInputRow_KeepsLabelWhenClipping(t *testing.T) {
	r := inputRow{lead: "> ", label: "ID 3 : "}
	line := xansi.Strip(r.render(30, strings.Repeat("y", 100)))
	if !strings.HasPrefix(line, "> ID 3 :  yyy") {
		t.Fatalf("label lost: %q", line)
	}
}

func TestInputRow_NarrowWidthKeepsMinimumField(t *testing.T) {
	r := inputRow{label: "ID 1 : "}
	line := r.render(5, "abc")
	if w := xansi.StringWidth(line); w != xansi.StringWidth("ID 1 : ")+minInputField {
		t.Fatalf("width = %d", w)
	}
}
