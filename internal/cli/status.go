package cli

import (
	"time"

	"github.com/spf13/cobra"
)

func newStatusCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Library overview",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}

			var lastFetched *time.Time
			failing := 0
			for _, p := range db.Publications {
				if p.LastError != "" {
					failing++
				}
				if p.LastFetchedAt != nil && (lastFetched == nil || p.LastFetchedAt.After(*lastFetched)) {
					lastFetched = p.LastFetchedAt
				}
			}

			return writeOut(cmd, app, map[string]any{
				"data": map[string]any{
					"dir":           app.Dir,
					"publications":  len(db.Publications),
					"articles":      len(db.Articles),
					"unread":        db.UnreadCount(""),
					"failingFeeds":  failing,
					"lastFetchedAt": lastFetched,
				},
			})
		},
	}
	return cmd
}
