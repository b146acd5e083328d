package tui

import (
	"strings"
	"testing"

	xansi "github.com/charmbracelet/x/ansi"
)

func TestNormalizePane(t *testing.T) {
	out := normalizePane("ab\ncdefgh", 4, 3)
	lines := strings.Split(out, "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d: %q", len(lines), out)
	}
	for i, ln := range lines {
		if w := xansi.StringWidth(ln); w != 4 {
			t.Fatalf("line %d width = %d, want 4 (%q)", i, w, ln)
		}
	}
	if lines[0] != "ab  " {
		t.Fatalf("expected padded first line, got %q", lines[0])
	}
	if lines[1] != "cde…" {
		t.Fatalf("expected truncated second line, got %q", lines[1])
	}
	if lines[2] != "    " {
		t.Fatalf("expected blank fill line, got %q", lines[2])
	}
}

func TestNormalizePane_TruncatesExtraLines(t *testing.T) {
	out := normalizePane("a\nb\nc\nd", 1, 2)
	if got := strings.Count(out, "\n"); got != 1 {
		t.Fatalf("expected 2 lines, got %d newlines: %q", got, out)
	}
}
