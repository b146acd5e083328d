package tui

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestThemeForProfile_UnknownFallsBack(t *testing.T) {
	def := ThemeForProfile("")
	if ThemeForProfile("default") != def {
		t.Fatal(`expected "default" to equal the empty profile`)
	}
	if ThemeForProfile("no-such-profile") != def {
		t.Fatal("expected unknown profile to fall back to the default theme")
	}
}

func TestThemeProfiles_Differ(t *testing.T) {
	def := ThemeForProfile("default")
	paper := ThemeForProfile("paper")
	midnight := ThemeForProfile("midnight")

	if def.Accent() == paper.Accent() {
		t.Fatal("expected paper accent to differ from default")
	}
	if def.Accent() == midnight.Accent() {
		t.Fatal("expected midnight accent to differ from default")
	}
	// Secondary text is shared across profiles.
	if def.SecondaryText() != paper.SecondaryText() {
		t.Fatal("expected shared secondary text token")
	}
}

func TestPlatformAdapter_TertiaryTone(t *testing.T) {
	darwin := newPlatformAdapter("darwin")
	linux := newPlatformAdapter("linux")
	if darwin.tertiary == linux.tertiary {
		t.Fatal("expected the tertiary tone to differ between darwin and linux")
	}
	if linux.tertiary != newPlatformAdapter("windows").tertiary {
		t.Fatal("expected non-darwin platforms to share the tertiary tone")
	}

	theme := defaultThemeWith(darwin)
	if theme.TertiaryText() != lipgloss.TerminalColor(darwin.tertiary) {
		t.Fatal("expected the theme to carry the adapter's tertiary tone")
	}
}

func TestDefaultMetrics_RowHeight(t *testing.T) {
	m := DefaultMetrics()
	// meta + title + 2 summary + separator
	if got, want := m.RowHeight(), 5; got != want {
		t.Fatalf("RowHeight() = %d, want %d", got, want)
	}

	m.RowSeparator = false
	if got, want := m.RowHeight(), 4; got != want {
		t.Fatalf("RowHeight() without separator = %d, want %d", got, want)
	}

	m.SummaryLines = 0
	if got, want := m.RowHeight(), 2; got != want {
		t.Fatalf("RowHeight() without summary = %d, want %d", got, want)
	}
}
