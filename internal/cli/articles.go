package cli

import (
	"strings"
	"time"

	"kiosk-cli/internal/store"
	"kiosk-cli/internal/tui"

	"github.com/spf13/cobra"
)

func newArticlesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "articles",
		Short: "Article commands",
	}
	cmd.AddCommand(newArticlesListCmd(app))
	cmd.AddCommand(newArticlesShowCmd(app))
	cmd.AddCommand(newArticlesReadCmd(app))
	cmd.AddCommand(newArticlesUnreadCmd(app))
	cmd.AddCommand(newArticlesStarCmd(app))
	return cmd
}

func newArticlesListCmd(app *App) *cobra.Command {
	var pubID string
	var unreadOnly, starredOnly bool
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List articles (newest first)",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if pubID != "" {
				if _, ok := db.PublicationByID(pubID); !ok {
					return writeErr(cmd, errNotFound("publication", pubID))
				}
			}

			type row struct {
				ID          string    `json:"id"`
				Publication string    `json:"publication"`
				Title       string    `json:"title"`
				PublishedAt time.Time `json:"publishedAt"`
				When        string    `json:"when"`
				Read        bool      `json:"read"`
				Starred     bool      `json:"starred"`
			}

			now := time.Now()
			var rows []row
			for _, a := range db.ArticlesForPublication(pubID) {
				if unreadOnly && a.Read {
					continue
				}
				if starredOnly && !a.Starred {
					continue
				}
				pubTitle := ""
				if p, ok := db.PublicationByID(a.PublicationID); ok {
					pubTitle = p.DisplayTitle()
				}
				rows = append(rows, row{
					ID:          a.ID,
					Publication: pubTitle,
					Title:       a.DisplayTitle(),
					PublishedAt: a.PublishedAt,
					When:        tui.FormatRelativeDate(a.PublishedAt, now),
					Read:        a.Read,
					Starred:     a.Starred,
				})
				if limit > 0 && len(rows) >= limit {
					break
				}
			}
			return writeOut(cmd, app, map[string]any{"data": rows})
		},
	}

	cmd.Flags().StringVar(&pubID, "pub", "", "Only this publication")
	cmd.Flags().BoolVar(&unreadOnly, "unread", false, "Only unread articles")
	cmd.Flags().BoolVar(&starredOnly, "starred", false, "Only starred articles")
	cmd.Flags().IntVar(&limit, "limit", 0, "Stop after N articles (0 = no limit)")
	return cmd
}

func newArticlesShowCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <article-id>",
		Short: "Show one article, body included",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			id := strings.TrimSpace(args[0])
			a, ok := db.ArticleByID(id)
			if !ok {
				return writeErr(cmd, errNotFound("article", id))
			}
			return writeOut(cmd, app, map[string]any{"data": a})
		},
	}
	return cmd
}

func newArticlesReadCmd(app *App) *cobra.Command {
	var undo bool

	cmd := &cobra.Command{
		Use:   "read <article-id>",
		Short: "Mark an article read",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			id := strings.TrimSpace(args[0])
			if !store.SetArticleRead(db, id, !undo) {
				return writeErr(cmd, errNotFound("article", id))
			}
			if err := s.Save(db); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"id": id, "read": !undo}})
		},
	}

	cmd.Flags().BoolVar(&undo, "undo", false, "Mark unread instead")
	return cmd
}

func newArticlesUnreadCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "unread <article-id>",
		Short: "Mark an article unread",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			id := strings.TrimSpace(args[0])
			if !store.SetArticleRead(db, id, false) {
				return writeErr(cmd, errNotFound("article", id))
			}
			if err := s.Save(db); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"id": id, "read": false}})
		},
	}
	return cmd
}

func newArticlesStarCmd(app *App) *cobra.Command {
	var undo bool

	cmd := &cobra.Command{
		Use:   "star <article-id>",
		Short: "Star an article",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			id := strings.TrimSpace(args[0])
			if !store.SetArticleStarred(db, id, !undo) {
				return writeErr(cmd, errNotFound("article", id))
			}
			if err := s.Save(db); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"id": id, "starred": !undo}})
		},
	}

	cmd.Flags().BoolVar(&undo, "undo", false, "Unstar instead")
	return cmd
}
