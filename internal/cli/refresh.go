package cli

import (
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"kiosk-cli/internal/feed"
	"kiosk-cli/internal/model"
	"kiosk-cli/internal/store"
)

func newRefreshCmd(app *App) *cobra.Command {
	var pubID string
	var concurrency int
	var quiet bool

	cmd := &cobra.Command{
		Use:   "refresh",
		Short: "Fetch new articles for all (or one) subscriptions",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}

			var pubs []model.Publication
			if pubID != "" {
				p, ok := db.PublicationByID(pubID)
				if !ok {
					return writeErr(cmd, errNotFound("publication", pubID))
				}
				pubs = []model.Publication{p}
			} else {
				for _, p := range db.Publications {
					if !p.Archived {
						pubs = append(pubs, p)
					}
				}
			}

			// Progress goes to stderr so stdout stays parseable.
			var logger *log.Logger
			if !quiet {
				logger = log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: false})
			}

			cfg, _ := store.LoadConfig()
			opts := feed.RefreshOptions{
				Concurrency: concurrency,
				Logger:      logger,
			}
			if cfg != nil {
				if opts.Concurrency <= 0 {
					opts.Concurrency = cfg.RefreshConcurrency
				}
				if cfg.RefreshTimeoutSeconds > 0 {
					opts.Timeout = time.Duration(cfg.RefreshTimeoutSeconds) * time.Second
				}
			}

			results := feed.Refresh(cmd.Context(), db, pubs, opts)
			if err := s.Save(db); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": results})
		},
	}

	cmd.Flags().StringVar(&pubID, "pub", "", "Refresh only this publication")
	cmd.Flags().IntVar(&concurrency, "concurrency", 0, "Parallel fetches (0 = config/default)")
	cmd.Flags().BoolVar(&quiet, "quiet", false, "Suppress progress logging")
	return cmd
}
