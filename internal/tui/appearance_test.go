package tui

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"kiosk-cli/internal/store"
)

func TestApplyColorProfilePreference_NoColor(t *testing.T) {
	old := lipgloss.ColorProfile()
	t.Cleanup(func() { lipgloss.SetColorProfile(old) })

	t.Setenv("NO_COLOR", "1")
	applyColorProfilePreference()
	if got := lipgloss.ColorProfile(); got != termenv.Ascii {
		t.Fatalf("expected NO_COLOR to force ascii; got %v", got)
	}
}

func TestApplyThemePreference_EnvWins(t *testing.T) {
	old := lipgloss.HasDarkBackground()
	t.Cleanup(func() { lipgloss.SetHasDarkBackground(old) })

	t.Setenv("COLORFGBG", "15;0")

	t.Setenv("KIOSK_TUI_THEME", "light")
	applyThemePreference()
	if lipgloss.HasDarkBackground() {
		t.Fatal("expected KIOSK_TUI_THEME=light to win over COLORFGBG")
	}

	t.Setenv("KIOSK_TUI_THEME", "dark")
	applyThemePreference()
	if !lipgloss.HasDarkBackground() {
		t.Fatal("expected KIOSK_TUI_THEME=dark to set a dark background")
	}
}

func TestApplyThemePreference_ColorFGBG(t *testing.T) {
	old := lipgloss.HasDarkBackground()
	t.Cleanup(func() { lipgloss.SetHasDarkBackground(old) })

	t.Setenv("KIOSK_TUI_THEME", "")

	t.Setenv("COLORFGBG", "15;0")
	applyThemePreference()
	if !lipgloss.HasDarkBackground() {
		t.Fatal("expected background 0 to read as dark")
	}

	t.Setenv("COLORFGBG", "0;15")
	applyThemePreference()
	if lipgloss.HasDarkBackground() {
		t.Fatal("expected background 15 to read as light")
	}
}

func TestResolveTheme_Precedence(t *testing.T) {
	cfg := &store.GlobalConfig{TUI: &store.TUIConfig{Profile: "paper"}}

	t.Setenv("KIOSK_TUI_PROFILE", "")
	if got, want := resolveTheme(cfg), ThemeForProfile("paper"); got != want {
		t.Fatal("expected the configured profile to apply")
	}

	t.Setenv("KIOSK_TUI_PROFILE", "midnight")
	if got, want := resolveTheme(cfg), ThemeForProfile("midnight"); got != want {
		t.Fatal("expected the env profile to win over config")
	}

	t.Setenv("KIOSK_TUI_PROFILE", "")
	if got, want := resolveTheme(nil), ThemeForProfile(""); got != want {
		t.Fatal("expected a nil config to yield the default theme")
	}
}
