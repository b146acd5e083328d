package cli

import (
	"strings"

	"kiosk-cli/internal/store"

	"github.com/spf13/cobra"
)

func newPubsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pubs",
		Short: "Publication (subscription) commands",
	}
	cmd.AddCommand(newPubsAddCmd(app))
	cmd.AddCommand(newPubsListCmd(app))
	cmd.AddCommand(newPubsShowCmd(app))
	cmd.AddCommand(newPubsRemoveCmd(app))
	cmd.AddCommand(newPubsArchiveCmd(app))
	return cmd
}

func newPubsAddCmd(app *App) *cobra.Command {
	var url, title, folder string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Subscribe to a publication",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			pub, err := store.AddPublication(db, title, url, folder)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := s.Save(db); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": pub})
		},
	}

	cmd.Flags().StringVar(&url, "url", "", "Feed URL")
	cmd.Flags().StringVar(&title, "title", "", "Display title (default: taken from the feed on first refresh)")
	cmd.Flags().StringVar(&folder, "folder", "", "Sidebar folder label")
	_ = cmd.MarkFlagRequired("url")
	return cmd
}

func newPubsListCmd(app *App) *cobra.Command {
	var includeArchived bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List subscriptions",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			type row struct {
				ID      string `json:"id"`
				Title   string `json:"title"`
				FeedURL string `json:"feedUrl"`
				Folder  string `json:"folder,omitempty"`
				Unread  int    `json:"unread"`
				Error   string `json:"error,omitempty"`
			}
			rows := make([]row, 0, len(db.Publications))
			for _, p := range db.Publications {
				if p.Archived && !includeArchived {
					continue
				}
				rows = append(rows, row{
					ID:      p.ID,
					Title:   p.DisplayTitle(),
					FeedURL: p.FeedURL,
					Folder:  p.Folder,
					Unread:  db.UnreadCount(p.ID),
					Error:   p.LastError,
				})
			}
			return writeOut(cmd, app, map[string]any{"data": rows})
		},
	}

	cmd.Flags().BoolVar(&includeArchived, "all", false, "Include archived subscriptions")
	return cmd
}

func newPubsShowCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <pub-id>",
		Short: "Show one subscription",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			id := strings.TrimSpace(args[0])
			pub, ok := db.PublicationByID(id)
			if !ok {
				return writeErr(cmd, errNotFound("publication", id))
			}
			return writeOut(cmd, app, map[string]any{"data": pub})
		},
	}
	return cmd
}

func newPubsRemoveCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remove <pub-id>",
		Short: "Unsubscribe and delete the publication's articles",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			id := strings.TrimSpace(args[0])
			if !store.RemovePublication(db, id) {
				return writeErr(cmd, errNotFound("publication", id))
			}
			if err := s.Save(db); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"removed": id}})
		},
	}
	return cmd
}

func newPubsArchiveCmd(app *App) *cobra.Command {
	var undo bool

	cmd := &cobra.Command{
		Use:   "archive <pub-id>",
		Short: "Archive a subscription (hide it without deleting articles)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			id := strings.TrimSpace(args[0])
			found := false
			for i := range db.Publications {
				if db.Publications[i].ID == id {
					db.Publications[i].Archived = !undo
					found = true
					break
				}
			}
			if !found {
				return writeErr(cmd, errNotFound("publication", id))
			}
			if err := s.Save(db); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"id": id, "archived": !undo}})
		},
	}

	cmd.Flags().BoolVar(&undo, "undo", false, "Unarchive instead")
	return cmd
}
