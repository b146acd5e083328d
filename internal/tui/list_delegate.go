package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

// articleDelegate renders the mail-style article rows:
//
//   ● The Weekly Dispatch                  Yesterday
//     On shipping small                            ★
//     Why smaller releases land better when they
//     arrive one at a time…
//   ────────────────────────────────────────────────
//
// Line 1: unread dot + publication name + relative date (right-aligned).
// Line 2: article title, bold while unread, star when starred.
// Then up to Metrics.SummaryLines of preview text and a separator rule.
type articleDelegate struct {
	theme   ThemeProvider
	metrics Metrics

	meta      lipgloss.Style
	date      lipgloss.Style
	dot       lipgloss.Style
	title     lipgloss.Style
	summary   lipgloss.Style
	star      lipgloss.Style
	separator lipgloss.Style
	selected  lipgloss.Style
}

func newArticleDelegate(theme ThemeProvider, metrics Metrics) articleDelegate {
	return articleDelegate{
		theme:     theme,
		metrics:   metrics,
		meta:      lipgloss.NewStyle().Foreground(theme.SecondaryText()),
		date:      lipgloss.NewStyle().Foreground(theme.TertiaryText()),
		dot:       lipgloss.NewStyle().Foreground(theme.UnreadDot()),
		title:     lipgloss.NewStyle(),
		summary:   lipgloss.NewStyle().Foreground(theme.SecondaryText()),
		star:      lipgloss.NewStyle().Foreground(theme.IconTint()),
		separator: lipgloss.NewStyle().Foreground(theme.RowSeparator()),
		selected:  lipgloss.NewStyle().Background(theme.DetailBackground()),
	}
}

func (d articleDelegate) Height() int  { return d.metrics.RowHeight() }
func (d articleDelegate) Spacing() int { return 0 }
func (d articleDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

func (d articleDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	contentW := m.Width() - 2*d.metrics.RowPadding
	if contentW < 10 {
		fmt.Fprint(w, "")
		return
	}

	it, ok := item.(articleItem)
	if !ok {
		fmt.Fprint(w, fitLine(fmt.Sprint(item), m.Width()))
		return
	}

	sel := index == m.Index()
	gutterW := d.metrics.GutterWidth
	textW := contentW - gutterW

	gutter := strings.Repeat(" ", gutterW)
	if !it.article.Read {
		dot := d.dot.Render(glyphUnreadDot())
		gutter = dot + strings.Repeat(" ", gutterW-xansi.StringWidth(glyphUnreadDot()))
	}
	emptyGutter := strings.Repeat(" ", gutterW)

	lines := make([]string, 0, d.Height())

	// Meta line: publication name left, relative date right.
	dateTxt := relativeDateLabel(it.article.PublishedAt)
	dateW := xansi.StringWidth(dateTxt)
	pubW := textW - dateW - 1
	if pubW < 0 {
		pubW = 0
	}
	pubTxt := fitLine(it.pubTitle, pubW)
	lines = append(lines, gutter+d.meta.Render(pubTxt)+" "+d.date.Render(dateTxt))

	// Title line(s), star pinned to the right edge.
	titleStyle := d.title
	if !it.article.Read {
		titleStyle = titleStyle.Bold(true)
	}
	starW := 0
	starTxt := ""
	if it.article.Starred {
		starTxt = d.star.Render(glyphStar())
		starW = xansi.StringWidth(glyphStar()) + 1
	}
	titleLines := wrapPlain(it.article.DisplayTitle(), textW-starW, d.metrics.TitleLines)
	for li, ln := range titleLines {
		suffix := ""
		if li == 0 && starTxt != "" {
			pad := textW - starW - xansi.StringWidth(ln) + 1
			if pad < 1 {
				pad = 1
			}
			suffix = strings.Repeat(" ", pad) + starTxt
		}
		lines = append(lines, emptyGutter+titleStyle.Render(ln)+suffix)
	}

	// Preview lines.
	for _, ln := range wrapPlain(it.article.Summary, textW, d.metrics.SummaryLines) {
		lines = append(lines, emptyGutter+d.summary.Render(ln))
	}

	// Pad to fixed height before the separator so rows stay aligned.
	bodyH := d.Height()
	if d.metrics.RowSeparator {
		bodyH--
	}
	for len(lines) < bodyH {
		lines = append(lines, "")
	}
	if d.metrics.RowSeparator {
		lines = append(lines, d.separator.Render(strings.Repeat(glyphHRule(), contentW)))
	}

	pad := strings.Repeat(" ", d.metrics.RowPadding)
	for i, ln := range lines {
		ln = pad + fitLine(ln, m.Width()-d.metrics.RowPadding)
		if sel {
			ln = d.selected.Render(ln)
		}
		lines[i] = ln
	}

	fmt.Fprint(w, strings.Join(lines, "\n"))
}

// compactDelegate renders single-line sidebar rows.
type compactDelegate struct {
	normal   lipgloss.Style
	selected lipgloss.Style
}

func newCompactDelegate(theme ThemeProvider) compactDelegate {
	return compactDelegate{
		normal: lipgloss.NewStyle(),
		selected: lipgloss.NewStyle().
			Foreground(theme.Accent()).
			Background(theme.DetailBackground()).
			Bold(true),
	}
}

func (d compactDelegate) Height() int  { return 1 }
func (d compactDelegate) Spacing() int { return 0 }
func (d compactDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

func (d compactDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	contentW := m.Width()
	if contentW < 4 {
		fmt.Fprint(w, "")
		return
	}

	style := d.normal
	if index == m.Index() {
		style = d.selected
	}

	txt := ""
	if t, ok := item.(interface{ Title() string }); ok {
		txt = t.Title()
	} else {
		txt = fmt.Sprint(item)
	}

	fmt.Fprint(w, style.Render(fitLine(" "+txt, contentW)))
}

// fitLine forces s to exactly width columns, ANSI-aware.
func fitLine(s string, width int) string {
	if width <= 0 {
		return ""
	}
	w := xansi.StringWidth(s)
	if w > width {
		if width == 1 {
			return xansi.Cut(s, 0, 1)
		}
		return xansi.Cut(s, 0, width-1) + "…"
	}
	return s + strings.Repeat(" ", width-w)
}

// wrapPlain word-wraps plain (unstyled) text into at most maxLines lines of
// the given width, ellipsizing the last line on overflow.
func wrapPlain(s string, width, maxLines int) []string {
	s = strings.Join(strings.Fields(s), " ")
	if s == "" || width <= 0 || maxLines <= 0 {
		return nil
	}

	runes := []rune(s)
	var lines []string
	for len(runes) > 0 && len(lines) < maxLines {
		if len(runes) <= width {
			lines = append(lines, string(runes))
			runes = nil
			break
		}
		// Break at the last space inside the width budget; hard-cut a
		// single over-long word.
		cut := -1
		for i := width; i > 0; i-- {
			if runes[i] == ' ' {
				cut = i
				break
			}
		}
		if cut <= 0 {
			cut = width
		}
		lines = append(lines, strings.TrimRight(string(runes[:cut]), " "))
		for cut < len(runes) && runes[cut] == ' ' {
			cut++
		}
		runes = runes[cut:]
	}
	if len(runes) > 0 {
		// Out of lines: ellipsize the final one.
		last := []rune(lines[len(lines)-1])
		if len(last) >= width {
			last = last[:width-1]
		}
		lines[len(lines)-1] = strings.TrimRight(string(last), " ,;") + "…"
	}
	return lines
}
