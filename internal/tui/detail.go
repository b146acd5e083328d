package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"kiosk-cli/internal/model"
)

// Reading pane: article header + markdown body, rendered to a fixed width
// for the viewport.

func renderArticleDetail(theme ThemeProvider, a model.Article, pubTitle string, lastFetched *time.Time, width int) string {
	if width < 20 {
		width = 20
	}

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.Accent())
	bylineStyle := lipgloss.NewStyle().Foreground(theme.SecondaryText())
	linkStyle := lipgloss.NewStyle().Foreground(theme.Link()).Underline(true)
	ruleStyle := lipgloss.NewStyle().Foreground(theme.RowSeparator())

	var b strings.Builder

	for _, ln := range wrapPlain(a.DisplayTitle(), width, 4) {
		b.WriteString(titleStyle.Render(ln))
		b.WriteString("\n")
	}

	byline := make([]string, 0, 3)
	if s := strings.TrimSpace(a.Author); s != "" {
		byline = append(byline, s)
	}
	if s := strings.TrimSpace(pubTitle); s != "" {
		byline = append(byline, s)
	}
	byline = append(byline, a.PublishedAt.Local().Format("Mon, Jan 2 2006 3:04 PM"))
	if lbl := staleLabel(lastFetched, timeNow()); lbl != "" {
		byline = append(byline, lbl)
	}
	b.WriteString(bylineStyle.Render(strings.Join(byline, " "+glyphBullet()+" ")))
	b.WriteString("\n")

	if link := strings.TrimSpace(a.Link); link != "" {
		b.WriteString(linkStyle.Render(glyphArrow() + " " + link))
		b.WriteString("\n")
	}

	b.WriteString(ruleStyle.Render(strings.Repeat(glyphHRule(), width)))
	b.WriteString("\n\n")

	body := strings.TrimSpace(a.Body)
	if body == "" {
		body = strings.TrimSpace(a.Summary)
	}
	if body == "" {
		b.WriteString(bylineStyle.Render("(no content; open the link for the full article)"))
	} else {
		b.WriteString(renderMarkdown(body, width))
	}

	return b.String()
}

// staleLabel annotates the header when a feed hasn't been fetched recently.
func staleLabel(lastFetched *time.Time, now time.Time) string {
	if lastFetched == nil {
		return "never fetched"
	}
	if now.Sub(*lastFetched) > 24*time.Hour {
		return "fetched " + FormatRelativeDate(*lastFetched, now)
	}
	return ""
}
