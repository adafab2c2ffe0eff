package tui

import "testing"

func TestGlyphs_Preference(t *testing.T) {
	t.Cleanup(func() { setGlyphs(glyphSetUnicode) })

	setGlyphs(glyphSetASCII)
	applyGlyphPreference("")
	if got := glyphs(); got != glyphSetUnicode {
		t.Fatalf("expected unicode glyphs by default; got %v", got)
	}

	applyGlyphPreference("ASCII")
	if got := glyphs(); got != glyphSetASCII {
		t.Fatalf("expected ascii glyphs; got %v", got)
	}
	if glyphCursor() != ">" || glyphEditing() != "*" || glyphHRule() != "-" {
		t.Fatalf("unexpected ascii glyphs: %q %q %q", glyphCursor(), glyphEditing(), glyphHRule())
	}

	// Unknown values should be ignored (keep current).
	applyGlyphPreference("bogus")
	if got := glyphs(); got != glyphSetASCII {
		t.Fatalf("expected unknown to be ignored; got %v", got)
	}

	applyGlyphPreference("unicode")
	if got := glyphs(); got != glyphSetUnicode {
		t.Fatalf("expected unicode glyphs; got %v", got)
	}
}
