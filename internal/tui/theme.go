package tui

import (
	"runtime"

	"github.com/charmbracelet/lipgloss"
)

// Theme/palette for the mail-style article list.
//
// The TUI must remain readable on both light and dark terminal backgrounds,
// so every token is a lipgloss.AdaptiveColor. Unlike most of our env-driven
// preferences, the theme is built once at startup and handed to the model;
// renderers never reach for package globals.

func ac(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

// ThemeProvider supplies the semantic colors the article list and reading
// pane render with. Theme is the standard implementation; profiles are just
// different constructors.
type ThemeProvider interface {
	UnreadDot() lipgloss.TerminalColor
	Accent() lipgloss.TerminalColor
	IconTint() lipgloss.TerminalColor
	SecondaryText() lipgloss.TerminalColor
	TertiaryText() lipgloss.TerminalColor
	Link() lipgloss.TerminalColor
	DetailBackground() lipgloss.TerminalColor
	RowSeparator() lipgloss.TerminalColor
}

// Theme is an immutable set of design tokens. Construct via DefaultTheme or
// ThemeForProfile; nothing mutates a Theme after that.
type Theme struct {
	unreadDot    lipgloss.TerminalColor
	accent       lipgloss.TerminalColor
	iconTint     lipgloss.TerminalColor
	secondary    lipgloss.TerminalColor
	tertiary     lipgloss.TerminalColor
	link         lipgloss.TerminalColor
	detailBg     lipgloss.TerminalColor
	rowSeparator lipgloss.TerminalColor
}

func (t Theme) UnreadDot() lipgloss.TerminalColor        { return t.unreadDot }
func (t Theme) Accent() lipgloss.TerminalColor           { return t.accent }
func (t Theme) IconTint() lipgloss.TerminalColor         { return t.iconTint }
func (t Theme) SecondaryText() lipgloss.TerminalColor    { return t.secondary }
func (t Theme) TertiaryText() lipgloss.TerminalColor     { return t.tertiary }
func (t Theme) Link() lipgloss.TerminalColor             { return t.link }
func (t Theme) DetailBackground() lipgloss.TerminalColor { return t.detailBg }
func (t Theme) RowSeparator() lipgloss.TerminalColor     { return t.rowSeparator }

// platformAdapter resolves the tokens that differ per platform. Today that
// is only the tertiary text tone: the dim ANSI range renders lighter on
// macOS terminal palettes than on typical Linux ones, so we nudge it there.
// Resolved once at startup; no build tags involved.
type platformAdapter struct {
	tertiary lipgloss.AdaptiveColor
}

func newPlatformAdapter(goos string) platformAdapter {
	if goos == "darwin" {
		return platformAdapter{tertiary: ac("246", "242")}
	}
	return platformAdapter{tertiary: ac("244", "244")}
}

func hostPlatformAdapter() platformAdapter {
	return newPlatformAdapter(runtime.GOOS)
}

// DefaultTheme is the "no theme" token set: what callers get when no
// profile is configured.
func DefaultTheme() Theme {
	return defaultThemeWith(hostPlatformAdapter())
}

func defaultThemeWith(pa platformAdapter) Theme {
	return Theme{
		unreadDot:    ac("27", "33"), // blue, matches accent family
		accent:       ac("27", "33"),
		iconTint:     ac("240", "246"),
		secondary:    ac("240", "247"),
		tertiary:     pa.tertiary,
		link:         ac("26", "39"),
		detailBg:     ac("255", "234"),
		rowSeparator: ac("253", "237"),
	}
}

func paperTheme(pa platformAdapter) Theme {
	t := defaultThemeWith(pa)
	t.unreadDot = ac("130", "179")
	t.accent = ac("130", "179")
	t.link = ac("94", "173")
	t.detailBg = ac("230", "235")
	t.rowSeparator = ac("251", "238")
	return t
}

func midnightTheme(pa platformAdapter) Theme {
	t := defaultThemeWith(pa)
	t.unreadDot = ac("93", "141")
	t.accent = ac("93", "141")
	t.iconTint = ac("60", "103")
	t.link = ac("57", "147")
	t.detailBg = ac("255", "233")
	t.rowSeparator = ac("254", "236")
	return t
}

// ThemeForProfile maps a configured profile name to a token set. Unknown
// names fall back to the default so a stale config never breaks startup.
func ThemeForProfile(name string) Theme {
	pa := hostPlatformAdapter()
	switch name {
	case "", "default":
		return defaultThemeWith(pa)
	case "paper":
		return paperTheme(pa)
	case "midnight":
		return midnightTheme(pa)
	default:
		return defaultThemeWith(pa)
	}
}

// Metrics are the fixed layout numbers for the mail-style list. Like Theme,
// built once and passed along.
type Metrics struct {
	// RowPadding is the horizontal padding inside each list row.
	RowPadding int
	// GutterWidth is the unread-dot column including its trailing space.
	GutterWidth int
	// TitleLines and SummaryLines cap how many lines each section of a row
	// may occupy.
	TitleLines   int
	SummaryLines int
	// DateColumnWidth reserves space on the right edge of the title line for
	// the relative date.
	DateColumnWidth int
	// RowSeparator toggles the hairline between rows.
	RowSeparator bool
}

func DefaultMetrics() Metrics {
	return Metrics{
		RowPadding:      1,
		GutterWidth:     2,
		TitleLines:      1,
		SummaryLines:    2,
		DateColumnWidth: 10,
		RowSeparator:    true,
	}
}

// RowHeight is the rendered height of one list row under these metrics.
func (m Metrics) RowHeight() int {
	h := m.TitleLines + m.SummaryLines + 1 // +1 meta line
	if m.RowSeparator {
		h++
	}
	return h
}
