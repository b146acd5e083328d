package feed

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"kiosk-cli/internal/model"
	"kiosk-cli/internal/store"
)

const defaultRefreshConcurrency = 4

type RefreshOptions struct {
	// Concurrency caps parallel feed fetches; zero means the default.
	Concurrency int
	// Timeout bounds a single fetch; zero means the fetcher default.
	Timeout time.Duration
	// Logger receives per-feed progress. Nil disables logging.
	Logger *log.Logger
}

type RefreshResult struct {
	PublicationID string `json:"publicationId"`
	Title         string `json:"title"`
	Added         int    `json:"added"`
	Error         string `json:"error,omitempty"`
}

// FetchOutcome is one publication's fetch, not yet merged into a library.
type FetchOutcome struct {
	PublicationID string
	Title         string
	Meta          Meta
	Articles      []model.Article
	FetchedAt     time.Time
	Error         string
}

// FetchAll downloads the given publications concurrently and returns the raw
// outcomes. It never touches a store.DB: callers that share one across
// goroutines (the TUI event loop) run FetchAll in the background and merge
// the outcomes with Apply on the goroutine that owns the db.
func FetchAll(ctx context.Context, pubs []model.Publication, opts RefreshOptions) []FetchOutcome {
	concurrency := opts.Concurrency
	if concurrency <= 0 {
		concurrency = defaultRefreshConcurrency
	}
	fetcher := NewFetcher(opts.Timeout)

	var wg sync.WaitGroup
	sem := make(chan struct{}, concurrency)
	outcomes := make([]FetchOutcome, len(pubs))

	for i, pub := range pubs {
		wg.Add(1)
		go func(i int, pub model.Publication) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			out := FetchOutcome{PublicationID: pub.ID, Title: pub.DisplayTitle()}
			meta, arts, err := fetcher.Fetch(ctx, pub.FeedURL)
			out.FetchedAt = time.Now().UTC()

			if err != nil {
				out.Error = err.Error()
				if opts.Logger != nil {
					opts.Logger.Warn("fetch failed", "pub", pub.DisplayTitle(), "err", err)
				}
			} else {
				out.Meta = meta
				out.Articles = arts
				if opts.Logger != nil {
					opts.Logger.Info("fetched", "pub", pub.DisplayTitle(), "entries", len(arts))
				}
			}
			outcomes[i] = out
		}(i, pub)
	}

	wg.Wait()
	return outcomes
}

// Apply merges fetch outcomes into db: publication metadata (title, site
// URL, fetch status) and new articles. Single-goroutine merge; call it from
// whichever goroutine owns the db.
func Apply(db *store.DB, outcomes []FetchOutcome) []RefreshResult {
	results := make([]RefreshResult, len(outcomes))
	for i, out := range outcomes {
		res := RefreshResult{PublicationID: out.PublicationID, Title: out.Title}
		fetchedAt := out.FetchedAt

		for j := range db.Publications {
			if db.Publications[j].ID != out.PublicationID {
				continue
			}
			p := &db.Publications[j]
			p.LastFetchedAt = &fetchedAt
			if out.Error != "" {
				p.LastError = out.Error
				break
			}
			p.LastError = ""
			if p.Title == "" {
				p.Title = out.Meta.Title
			}
			if p.SiteURL == "" {
				p.SiteURL = out.Meta.SiteURL
			}
			if p.Kind == "" {
				p.Kind = out.Meta.Kind
			}
			break
		}

		if out.Error != "" {
			res.Error = out.Error
		} else {
			added, err := store.UpsertArticles(db, out.PublicationID, out.Articles)
			if err != nil {
				res.Error = err.Error()
			}
			res.Added = added
		}
		results[i] = res
	}
	return results
}

// Refresh fetches and merges in one call, for single-goroutine callers like
// the CLI. SQLite writes are the caller's job afterwards.
func Refresh(ctx context.Context, db *store.DB, pubs []model.Publication, opts RefreshOptions) []RefreshResult {
	return Apply(db, FetchAll(ctx, pubs, opts))
}
