package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"kiosk-cli/internal/feed"
	"kiosk-cli/internal/model"
	"kiosk-cli/internal/store"
)

type focusArea int

const (
	focusSidebar focusArea = iota
	focusArticles
	focusReading
)

const sidebarWidth = 30

type appModel struct {
	s  store.Store
	db *store.DB

	theme   Theme
	metrics Metrics

	sidebar  list.Model
	articles list.Model
	reading  viewport.Model

	focus      focusArea
	currentPub string // "" = All Articles
	readingID  string

	addForm *addPubForm

	width, height int
	status        string
	refreshing    bool
}

type refreshDoneMsg struct {
	outcomes []feed.FetchOutcome
}

func newAppModel(s store.Store, db *store.DB, theme Theme, metrics Metrics) *appModel {
	m := &appModel{
		s:       s,
		db:      db,
		theme:   theme,
		metrics: metrics,
	}

	m.sidebar = newList(nil)
	m.sidebar.SetDelegate(newCompactDelegate(theme))
	m.articles = newList(nil)
	m.articles.SetDelegate(newArticleDelegate(theme, metrics))
	m.reading = viewport.New(0, 0)

	m.focus = focusArticles
	m.reloadSidebar()
	m.reloadArticles()
	return m
}

func newList(items []list.Item) list.Model {
	l := list.New(items, list.NewDefaultDelegate(), 0, 0)
	// We render our own footer and headings, so keep list chrome minimal.
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetShowPagination(false)
	l.SetFilteringEnabled(true)
	// Bubble list defaults to quitting on ESC; here ESC is "back".
	l.KeyMap.Quit.SetKeys("q")
	// Emacs-style aliases (common muscle memory).
	up := append([]string{}, l.KeyMap.CursorUp.Keys()...)
	l.KeyMap.CursorUp.SetKeys(append(up, "ctrl+p")...)
	down := append([]string{}, l.KeyMap.CursorDown.Keys()...)
	l.KeyMap.CursorDown.SetKeys(append(down, "ctrl+n")...)
	return l
}

func (m *appModel) Init() tea.Cmd {
	return nil
}

func (m *appModel) reloadSidebar() {
	items := []list.Item{
		allArticlesItem{unread: m.db.UnreadCount(""), current: m.currentPub == ""},
	}
	for _, p := range m.db.Publications {
		if p.Archived {
			continue
		}
		items = append(items, pubItem{
			pub:     p,
			unread:  m.db.UnreadCount(p.ID),
			current: m.currentPub == p.ID,
		})
	}
	items = append(items, addPubRow{})
	m.sidebar.SetItems(items)
}

func (m *appModel) reloadArticles() {
	arts := m.db.ArticlesForPublication(m.currentPub)
	items := make([]list.Item, 0, len(arts))
	for _, a := range arts {
		title := ""
		if p, ok := m.db.PublicationByID(a.PublicationID); ok {
			title = p.DisplayTitle()
		}
		items = append(items, articleItem{article: a, pubTitle: title})
	}
	m.articles.SetItems(items)
}

func (m *appModel) selectedArticle() (model.Article, bool) {
	if it, ok := m.articles.SelectedItem().(articleItem); ok {
		return it.article, true
	}
	return model.Article{}, false
}

func (m *appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
		return m, nil

	case refreshDoneMsg:
		// Merge on the event loop; the background command only fetched.
		m.refreshing = false
		results := feed.Apply(m.db, msg.outcomes)
		added, failed := 0, 0
		for _, r := range results {
			added += r.Added
			if r.Error != "" {
				failed++
			}
		}
		m.status = fmt.Sprintf("refreshed: %d new", added)
		if failed > 0 {
			m.status += fmt.Sprintf(", %d failed", failed)
		}
		m.saveQuiet()
		m.reloadSidebar()
		m.reloadArticles()
		return m, nil

	case tea.KeyMsg:
		if m.addForm != nil {
			return m.updateAddForm(msg)
		}
		if handled, cmd := m.handleKey(msg); handled {
			return m, cmd
		}
	}

	if m.addForm != nil {
		return m.updateAddForm(msg)
	}
	return m.updateFocused(msg)
}

func (m *appModel) handleKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	// Don't steal keys while the user is typing a list filter.
	if m.focus == focusSidebar && m.sidebar.FilterState() == list.Filtering {
		return false, nil
	}
	if m.focus == focusArticles && m.articles.FilterState() == list.Filtering {
		return false, nil
	}

	switch msg.String() {
	case "ctrl+c":
		return true, tea.Quit
	case "q":
		if m.focus == focusReading {
			m.closeReading()
			return true, nil
		}
		return true, tea.Quit
	case "esc":
		if m.focus == focusReading {
			m.closeReading()
			return true, nil
		}
		if m.focus == focusArticles {
			m.focus = focusSidebar
			return true, nil
		}
		return true, nil
	case "tab":
		if m.focus == focusSidebar {
			m.focus = focusArticles
		} else {
			m.focus = focusSidebar
		}
		return true, nil
	case "enter":
		return true, m.activateSelection()
	case "a":
		return true, m.openAddForm()
	case "s":
		if a, ok := m.selectedArticle(); ok {
			store.SetArticleStarred(m.db, a.ID, !a.Starred)
			m.saveQuiet()
			m.reloadArticles()
		}
		return true, nil
	case "m":
		if a, ok := m.selectedArticle(); ok {
			store.SetArticleRead(m.db, a.ID, !a.Read)
			m.saveQuiet()
			m.reloadSidebar()
			m.reloadArticles()
		}
		return true, nil
	case "r":
		return true, m.startRefresh()
	}
	return false, nil
}

func (m *appModel) activateSelection() tea.Cmd {
	switch m.focus {
	case focusSidebar:
		switch it := m.sidebar.SelectedItem().(type) {
		case allArticlesItem:
			m.currentPub = ""
		case pubItem:
			m.currentPub = it.pub.ID
		case addPubRow:
			return m.openAddForm()
		}
		m.reloadSidebar()
		m.reloadArticles()
		m.articles.ResetSelected()
		m.focus = focusArticles
	case focusArticles:
		if a, ok := m.selectedArticle(); ok {
			m.openReading(a)
		}
	case focusReading:
		// Scrolling keys go to the viewport.
	}
	return nil
}

func (m *appModel) openReading(a model.Article) {
	m.readingID = a.ID
	if !a.Read {
		store.SetArticleRead(m.db, a.ID, true)
		m.saveQuiet()
		m.reloadSidebar()
		m.reloadArticles()
	}
	pubTitle := ""
	var lastFetched *time.Time
	if p, ok := m.db.PublicationByID(a.PublicationID); ok {
		pubTitle = p.DisplayTitle()
		lastFetched = p.LastFetchedAt
	}
	m.focus = focusReading
	m.resize()
	m.reading.SetContent(renderArticleDetail(m.theme, a, pubTitle, lastFetched, m.readingWidth()))
	m.reading.GotoTop()
}

func (m *appModel) closeReading() {
	m.readingID = ""
	m.focus = focusArticles
	m.resize()
}

func (m *appModel) startRefresh() tea.Cmd {
	if m.refreshing {
		return nil
	}
	m.refreshing = true
	m.status = "refreshing…"

	// Snapshot the publications: the command goroutine must not share the
	// db with the update loop, so it fetches only and Update merges.
	var pubs []model.Publication
	for _, p := range m.db.Publications {
		if !p.Archived {
			pubs = append(pubs, p)
		}
	}
	return func() tea.Msg {
		return refreshDoneMsg{outcomes: feed.FetchAll(context.Background(), pubs, feed.RefreshOptions{})}
	}
}

func (m *appModel) saveQuiet() {
	if err := m.s.Save(m.db); err != nil {
		m.status = "save failed: " + err.Error()
	}
}

func (m *appModel) updateFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.focus {
	case focusSidebar:
		m.sidebar, cmd = m.sidebar.Update(msg)
	case focusArticles:
		m.articles, cmd = m.articles.Update(msg)
	case focusReading:
		m.reading, cmd = m.reading.Update(msg)
	}
	return m, cmd
}

func (m *appModel) resize() {
	listH := m.height - 2 // status + help lines
	if listH < 1 {
		listH = 1
	}
	m.sidebar.SetSize(sidebarWidth, listH)
	m.articles.SetSize(m.articlesWidth(), listH)
	m.reading.Width = m.readingWidth()
	m.reading.Height = listH
}

func (m *appModel) articlesWidth() int {
	w := m.width - sidebarWidth - 1
	if m.focus == focusReading {
		w = (m.width - sidebarWidth - 2) / 2
	}
	if w < 20 {
		w = 20
	}
	return w
}

func (m *appModel) readingWidth() int {
	w := m.width - sidebarWidth - 2 - m.articlesWidth()
	if w < 20 {
		w = 20
	}
	return w
}

func (m *appModel) View() string {
	if m.width == 0 {
		return ""
	}
	if m.addForm != nil {
		return m.addForm.View(m.width, m.height)
	}

	listH := m.height - 2
	if listH < 1 {
		listH = 1
	}

	divider := lipgloss.NewStyle().Foreground(m.theme.RowSeparator())
	col := divider.Render(strings.TrimRight(strings.Repeat("│\n", listH), "\n"))

	panes := []string{
		normalizePane(m.sidebar.View(), sidebarWidth, listH),
		col,
		normalizePane(m.articles.View(), m.articlesWidth(), listH),
	}
	if m.focus == focusReading {
		panes = append(panes, col, normalizePane(m.reading.View(), m.readingWidth(), listH))
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top, panes...)
	return body + "\n" + m.statusLine() + "\n" + m.helpLine()
}

func (m *appModel) statusLine() string {
	st := lipgloss.NewStyle().Foreground(m.theme.SecondaryText())
	status := m.status
	if status == "" {
		unread := m.db.UnreadCount(m.currentPub)
		scope := "All Articles"
		if p, ok := m.db.PublicationByID(m.currentPub); ok {
			scope = p.DisplayTitle()
		}
		status = fmt.Sprintf("%s %s %d unread", scope, glyphBullet(), unread)
	}
	return st.Render(fitLine(status, m.width))
}

func (m *appModel) helpLine() string {
	st := lipgloss.NewStyle().Foreground(m.theme.TertiaryText())
	help := strings.Join([]string{
		"tab focus",
		"enter open",
		"a subscribe",
		"s star",
		"m read/unread",
		"r refresh",
		"q quit",
	}, "  "+glyphBullet()+"  ")
	return st.Render(fitLine(help, m.width))
}
