package tui

import (
	"context"
	"os"
	"os/exec"
	"runtime"
	"strconv"
	"strings"
	"time"

	"kiosk-cli/internal/store"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Terminal appearance plumbing: color profile and light/dark detection.
// Runs once before the program starts. The chosen Theme itself is resolved
// separately (resolveTheme) and passed into the model.

// applyColorProfilePreference sets Lip Gloss's color profile.
//
// termenv.EnvColorProfile respects CLICOLOR/CLICOLOR_FORCE, which suits
// one-shot CLI output but can silently strip a TUI of color. Here we honor
// NO_COLOR only and otherwise trust the terminal, upgrading when COLORTERM
// advertises truecolor support that probing missed.
func applyColorProfilePreference() {
	if strings.TrimSpace(os.Getenv("NO_COLOR")) != "" {
		lipgloss.SetColorProfile(termenv.Ascii)
		return
	}

	profile := termenv.ColorProfile()

	colorterm := strings.ToLower(strings.TrimSpace(os.Getenv("COLORTERM")))
	if strings.Contains(colorterm, "truecolor") || strings.Contains(colorterm, "24bit") {
		if profile != termenv.Ascii {
			profile = termenv.TrueColor
		}
	} else if strings.Contains(strings.ToLower(os.Getenv("TERM")), "256color") && profile == termenv.ANSI {
		profile = termenv.ANSI256
	}

	lipgloss.SetColorProfile(profile)
}

// applyThemePreference configures background detection so AdaptiveColor
// picks the right variant on terminals that don't report their background.
//
// Priority:
// 1) KIOSK_TUI_THEME=light|dark|auto
// 2) COLORFGBG heuristic ("fg;bg", last segment is the background)
// 3) macOS appearance fallback
func applyThemePreference() {
	switch strings.ToLower(strings.TrimSpace(os.Getenv("KIOSK_TUI_THEME"))) {
	case "light":
		lipgloss.SetHasDarkBackground(false)
		return
	case "dark":
		lipgloss.SetHasDarkBackground(true)
		return
	}

	if v := strings.TrimSpace(os.Getenv("COLORFGBG")); v != "" {
		parts := strings.Split(v, ";")
		if bg, err := strconv.Atoi(strings.TrimSpace(parts[len(parts)-1])); err == nil {
			lipgloss.SetHasDarkBackground(bg < 7)
			return
		}
	}

	// Terminal.app rarely sets COLORFGBG and background probing is flaky
	// there; the OS appearance is the best remaining signal.
	if runtime.GOOS == "darwin" {
		if dark, ok := macOSHasDarkAppearance(); ok {
			lipgloss.SetHasDarkBackground(dark)
		}
	}
}

func macOSHasDarkAppearance() (dark bool, ok bool) {
	// Prints "Dark" in dark mode; exits 1 in light mode (key missing).
	ctx, cancel := context.WithTimeout(context.Background(), 80*time.Millisecond)
	defer cancel()

	out, err := exec.CommandContext(ctx, "defaults", "read", "-g", "AppleInterfaceStyle").CombinedOutput()
	if ctx.Err() != nil {
		return false, false
	}
	if err == nil {
		return strings.Contains(strings.ToLower(string(out)), "dark"), true
	}
	if ee, ok := err.(*exec.ExitError); ok && ee.ExitCode() == 1 {
		return false, true
	}
	return false, false
}

// resolveTheme picks the token set for this run: KIOSK_TUI_PROFILE wins,
// then the config file, then the default.
func resolveTheme(cfg *store.GlobalConfig) Theme {
	name := strings.ToLower(strings.TrimSpace(os.Getenv("KIOSK_TUI_PROFILE")))
	if name == "" && cfg != nil && cfg.TUI != nil {
		name = strings.ToLower(strings.TrimSpace(cfg.TUI.Profile))
	}
	return ThemeForProfile(name)
}

func applyAppearancePreferences(cfg *store.GlobalConfig) {
	applyColorProfilePreference()
	applyThemePreference()
	configuredGlyphs := ""
	if cfg != nil && cfg.TUI != nil {
		configuredGlyphs = cfg.TUI.Glyphs
	}
	applyGlyphPreference(configuredGlyphs)
}
