package tui

import (
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"kiosk-cli/internal/store"
)

// addPubForm is the inline "subscribe" dialog.
type addPubForm struct {
	form   *huh.Form
	url    string
	title  string
	folder string
}

func newAddPubForm(width int) *addPubForm {
	f := &addPubForm{}
	f.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("url").
				Title("Feed URL").
				Placeholder("https://example.com/feed.xml").
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("a feed URL is required")
					}
					return nil
				}).
				Value(&f.url),
			huh.NewInput().
				Key("title").
				Title("Title (optional, taken from the feed when blank)").
				Value(&f.title),
			huh.NewInput().
				Key("folder").
				Title("Folder (optional)").
				Value(&f.folder),
		),
	).WithWidth(formWidth(width)).WithShowHelp(true)
	return f
}

func formWidth(screen int) int {
	w := screen - 8
	if w > 64 {
		w = 64
	}
	if w < 30 {
		w = 30
	}
	return w
}

func (f *addPubForm) View(width, height int) string {
	title := lipgloss.NewStyle().Bold(true).Render("Subscribe to a publication")
	body := title + "\n\n" + f.form.View()
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, body)
}

func (m *appModel) openAddForm() tea.Cmd {
	m.addForm = newAddPubForm(m.width)
	m.status = ""
	return m.addForm.form.Init()
}

func (m *appModel) updateAddForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc":
			m.addForm = nil
			return m, nil
		case "ctrl+c":
			return m, tea.Quit
		}
	}

	form, cmd := m.addForm.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.addForm.form = f
	}

	switch m.addForm.form.State {
	case huh.StateCompleted:
		f := m.addForm
		m.addForm = nil
		pub, err := store.AddPublication(m.db, f.title, f.url, f.folder)
		if err != nil {
			m.status = "subscribe failed: " + err.Error()
			return m, nil
		}
		m.saveQuiet()
		m.currentPub = pub.ID
		m.reloadSidebar()
		m.reloadArticles()
		m.focus = focusArticles
		m.status = "subscribed " + pub.DisplayTitle() + " (press r to fetch)"
		return m, nil
	case huh.StateAborted:
		m.addForm = nil
		return m, nil
	}
	return m, cmd
}
