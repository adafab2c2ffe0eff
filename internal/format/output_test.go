package format

import (
	"bytes"
	"strings"
	"testing"

	"todo-cli/internal/model"

	"github.com/sebdah/goldie/v2"
)

type snapshotFixture struct {
	Items      []model.Item `json:"items"`
	NextID     int          `json:"nextId"`
	EditingID  *int         `json:"editingId"`
	EditBuffer string       `json:"editBuffer"`
}

func (s snapshotFixture) Markdown() string {
	return ListMarkdown("Todos", s.Items, s.EditingID)
}

func fixture() snapshotFixture {
	id := 2
	return snapshotFixture{
		Items: []model.Item{
			{ID: 1, Text: "Buy oat milk"},
			{ID: 2, Text: "Walk *the* dog"},
			{ID: 4, Text: "Read book"},
		},
		NextID:     5,
		EditingID:  &id,
		EditBuffer: "Walk the dog twice",
	}
}

func TestWrite_JSON(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, snapshotFixture{NextID: 1, Items: []model.Item{}}, Options{}); err != nil {
		t.Fatalf("Write: %v", err)
	}
	want := `{"items":[],"nextId":1,"editingId":null,"editBuffer":""}` + "\n"
	if buf.String() != want {
		t.Fatalf("unexpected json:\n got: %q\nwant: %q", buf.String(), want)
	}
}

func TestWrite_EDN(t *testing.T) {
	var buf bytes.Buffer
	s := snapshotFixture{Items: []model.Item{{ID: 1, Text: "a"}}, NextID: 2}
	if err := Write(&buf, s, Options{Format: "edn"}); err != nil {
		t.Fatalf("Write: %v", err)
	}
	want := `{:edit-buffer "" :editing-id nil :items [{:id 1 :text "a"}] :next-id 2}` + "\n"
	if buf.String() != want {
		t.Fatalf("unexpected edn:\n got: %q\nwant: %q", buf.String(), want)
	}
}

func TestWrite_EDNPretty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteEDN(&buf, map[string]any{"items": []any{}, "ok": true}, true); err != nil {
		t.Fatalf("WriteEDN: %v", err)
	}
	want := "{\n  :items []\n  :ok true\n}\n"
	if buf.String() != want {
		t.Fatalf("unexpected pretty edn:\n got: %q\nwant: %q", buf.String(), want)
	}
}

func TestWrite_UnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, 1, Options{Format: "xml"}); err == nil {
		t.Fatalf("expected error for unknown format")
	}
}

func TestWrite_MarkdownRequiresMarkdowner(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, map[string]any{}, Options{Format: "markdown"}); err == nil {
		t.Fatalf("expected error for non-markdown value")
	}
}

func TestListMarkdown_Golden(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, fixture(), Options{Format: "md"}); err != nil {
		t.Fatalf("Write: %v", err)
	}
	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "list_markdown", buf.Bytes())
}

func TestListMarkdown_Empty(t *testing.T) {
	got := ListMarkdown("", nil, nil)
	if got != "_No items yet. Add one!_\n" {
		t.Fatalf("unexpected empty markdown: %q", got)
	}
}

func TestEDNKeyword(t *testing.T) {
	cases := map[string]string{
		"id":         ":id",
		"editBuffer": ":edit-buffer",
		"session_id": ":session-id",
		"a b":        ":a-b",
	}
	for in, want := range cases {
		if got := ednKeyword(in); got != want {
			t.Fatalf("ednKeyword(%q)=%q; want %q", in, got, want)
		}
	}
}

func TestRenderMarkdown(t *testing.T) {
	out, err := RenderMarkdown(ListMarkdown("Todos", fixture().Items, nil), 60)
	if err != nil {
		t.Fatalf("RenderMarkdown: %v", err)
	}
	for _, want := range []string{"Todos", "Buy oat milk", "Read book"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in rendered output:\n%s", want, out)
		}
	}
}
