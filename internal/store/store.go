package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"kiosk-cli/internal/model"
)

// DB is the in-memory state: every subscribed publication plus the fetched
// articles. Loaded whole from SQLite; small enough that replace-all saves
// stay simple and safe.
type DB struct {
	Version      int                 `json:"version"`
	Publications []model.Publication `json:"publications"`
	Articles     []model.Article     `json:"articles"`
}

type Store struct {
	Dir string
}

// DiscoverDir walks upward from start looking for a .kiosk directory, so
// running inside a project tree finds the same library as its root.
func DiscoverDir(start string) (string, bool) {
	dir := start
	for {
		candidate := filepath.Join(dir, ".kiosk")
		if st, err := os.Stat(candidate); err == nil && st.IsDir() {
			return candidate, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// DefaultDir resolves the store root: an explicit KIOSK_DIR, then upward
// discovery from cwd, then the per-user library under the config dir.
func DefaultDir() (string, error) {
	if v := strings.TrimSpace(os.Getenv("KIOSK_DIR")); v != "" {
		return v, nil
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	if found, ok := DiscoverDir(cwd); ok {
		return found, nil
	}
	cfgDir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cfgDir, "library"), nil
}

func (s Store) Ensure() error {
	return os.MkdirAll(s.Dir, 0o755)
}

func (s Store) Load() (*DB, error) {
	if err := s.Ensure(); err != nil {
		return nil, err
	}
	return s.LoadSQLite(context.Background())
}

func (s Store) Save(db *DB) error {
	if db == nil {
		return errors.New("nil db")
	}
	return s.SaveSQLite(context.Background(), db)
}

func (db *DB) PublicationByID(id string) (model.Publication, bool) {
	for _, p := range db.Publications {
		if p.ID == id {
			return p, true
		}
	}
	return model.Publication{}, false
}

func (db *DB) ArticleByID(id string) (model.Article, bool) {
	for _, a := range db.Articles {
		if a.ID == id {
			return a, true
		}
	}
	return model.Article{}, false
}

// ArticlesForPublication returns the publication's articles newest first.
// An empty pubID returns everything (the "All Articles" view).
func (db *DB) ArticlesForPublication(pubID string) []model.Article {
	var out []model.Article
	for _, a := range db.Articles {
		if pubID == "" || a.PublicationID == pubID {
			out = append(out, a)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].PublishedAt.After(out[j].PublishedAt)
	})
	return out
}

func (db *DB) UnreadCount(pubID string) int {
	n := 0
	for _, a := range db.Articles {
		if a.Read {
			continue
		}
		if pubID == "" || a.PublicationID == pubID {
			n++
		}
	}
	return n
}

// AddPublication appends a new subscription with a fresh id.
func AddPublication(db *DB, title, feedURL, folder string) (model.Publication, error) {
	feedURL = strings.TrimSpace(feedURL)
	if feedURL == "" {
		return model.Publication{}, errors.New("feed url is empty")
	}
	for _, p := range db.Publications {
		if strings.EqualFold(p.FeedURL, feedURL) {
			return model.Publication{}, errors.New("already subscribed to " + feedURL)
		}
	}

	id, err := newUniqueID(db, "pub")
	if err != nil {
		return model.Publication{}, err
	}
	pub := model.Publication{
		ID:      id,
		Title:   strings.TrimSpace(title),
		FeedURL: feedURL,
		Folder:  strings.TrimSpace(folder),
		AddedAt: time.Now().UTC(),
	}
	db.Publications = append(db.Publications, pub)
	return pub, nil
}

func RemovePublication(db *DB, pubID string) bool {
	idx := -1
	for i, p := range db.Publications {
		if p.ID == pubID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false
	}
	db.Publications = append(db.Publications[:idx], db.Publications[idx+1:]...)

	kept := db.Articles[:0]
	for _, a := range db.Articles {
		if a.PublicationID != pubID {
			kept = append(kept, a)
		}
	}
	db.Articles = kept
	return true
}

// UpsertArticles merges freshly fetched articles into the db, deduplicating
// on (publication, guid). Returns how many were new.
func UpsertArticles(db *DB, pubID string, arts []model.Article) (added int, err error) {
	seen := map[string]bool{}
	for _, a := range db.Articles {
		if a.PublicationID == pubID {
			seen[a.GUID] = true
		}
	}
	for _, a := range arts {
		guid := strings.TrimSpace(a.GUID)
		if guid == "" {
			guid = strings.TrimSpace(a.Link)
		}
		if guid == "" || seen[guid] {
			continue
		}
		seen[guid] = true

		id, idErr := newUniqueID(db, "art")
		if idErr != nil {
			return added, idErr
		}
		a.ID = id
		a.PublicationID = pubID
		a.GUID = guid
		db.Articles = append(db.Articles, a)
		added++
	}
	return added, nil
}

func SetArticleRead(db *DB, articleID string, read bool) bool {
	for i := range db.Articles {
		if db.Articles[i].ID == articleID {
			db.Articles[i].Read = read
			return true
		}
	}
	return false
}

func SetArticleStarred(db *DB, articleID string, starred bool) bool {
	for i := range db.Articles {
		if db.Articles[i].ID == articleID {
			db.Articles[i].Starred = starred
			return true
		}
	}
	return false
}
