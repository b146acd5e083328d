package tui

import (
	"fmt"
	"strings"

	"kiosk-cli/internal/model"
)

// Sidebar rows.

type pubItem struct {
	pub     model.Publication
	unread  int
	current bool
}

func (i pubItem) FilterValue() string {
	return strings.TrimSpace(i.pub.DisplayTitle() + " " + i.pub.Folder)
}

func (i pubItem) Title() string {
	t := i.pub.DisplayTitle()
	if i.unread > 0 {
		t = fmt.Sprintf("%s (%d)", t, i.unread)
	}
	if i.pub.LastError != "" {
		t = t + " !"
	}
	if i.current {
		return t + " " + glyphBullet()
	}
	return t
}

func (i pubItem) Description() string { return i.pub.ID }

// allArticlesItem is the synthetic first sidebar row.
type allArticlesItem struct {
	unread  int
	current bool
}

func (i allArticlesItem) FilterValue() string { return "all articles" }
func (i allArticlesItem) Title() string {
	t := "All Articles"
	if i.unread > 0 {
		t = fmt.Sprintf("%s (%d)", t, i.unread)
	}
	if i.current {
		return t + " " + glyphBullet()
	}
	return t
}
func (i allArticlesItem) Description() string { return "" }

type addPubRow struct{}

func (i addPubRow) FilterValue() string { return "" }
func (i addPubRow) Title() string       { return "+ Subscribe" }
func (i addPubRow) Description() string { return "" }

// Article list rows. The mail-style delegate renders these itself; Title is
// only used as a fallback and for debugging.

type articleItem struct {
	article  model.Article
	pubTitle string
}

func (i articleItem) FilterValue() string {
	return strings.TrimSpace(i.article.DisplayTitle() + " " + i.pubTitle + " " + i.article.Author)
}

func (i articleItem) Title() string { return i.article.DisplayTitle() }

func (i articleItem) Description() string { return i.article.ID }
