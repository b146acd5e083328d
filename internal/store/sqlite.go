package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"kiosk-cli/internal/model"
)

const sqliteFileName = "library.sqlite"

func (s Store) sqlitePath() string {
	return filepath.Join(filepath.Clean(s.Dir), sqliteFileName)
}

func (s Store) openSQLite(ctx context.Context) (*sql.DB, error) {
	if err := s.Ensure(); err != nil {
		return nil, err
	}
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", s.sqlitePath())
	if err != nil {
		return nil, err
	}
	// WAL enables one writer + many readers; busy_timeout avoids
	// "database is locked" flakiness when CLI and TUI overlap.
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	if err := migrateSQLite(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func migrateSQLite(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS library_meta (
			k TEXT PRIMARY KEY,
			v TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS publications (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			feed_url TEXT NOT NULL,
			folder TEXT NOT NULL,
			archived INTEGER NOT NULL,
			json TEXT NOT NULL,
			updated_at_unixms INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_publications_folder ON publications(folder);`,
		`CREATE TABLE IF NOT EXISTS articles (
			id TEXT PRIMARY KEY,
			publication_id TEXT NOT NULL,
			guid TEXT NOT NULL,
			title TEXT NOT NULL,
			published_at_unixms INTEGER NOT NULL,
			read INTEGER NOT NULL,
			starred INTEGER NOT NULL,
			json TEXT NOT NULL,
			updated_at_unixms INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_articles_pub ON articles(publication_id);`,
		`CREATE INDEX IF NOT EXISTS idx_articles_published ON articles(published_at_unixms);`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_articles_pub_guid ON articles(publication_id, guid);`,
	}
	for _, st := range stmts {
		if _, err := db.ExecContext(ctx, st); err != nil {
			return err
		}
	}
	return nil
}

func (s Store) LoadSQLite(ctx context.Context) (*DB, error) {
	db, err := s.openSQLite(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	out := &DB{Version: 1}

	var v string
	_ = db.QueryRowContext(ctx, `SELECT v FROM library_meta WHERE k = ?`, "version").Scan(&v)
	if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil && n > 0 {
		out.Version = n
	}

	if xs, err := readJSONRows[model.Publication](ctx, db, `SELECT json FROM publications`); err == nil {
		out.Publications = xs
	} else {
		return nil, err
	}
	if xs, err := readJSONRows[model.Article](ctx, db, `SELECT json FROM articles`); err == nil {
		out.Articles = xs
	} else {
		return nil, err
	}

	// Nil slices become empty for stable callers.
	if out.Publications == nil {
		out.Publications = []model.Publication{}
	}
	if out.Articles == nil {
		out.Articles = []model.Article{}
	}

	return out, nil
}

// SaveSQLite writes the whole state inside one transaction. Replace-all is
// simple and safe at library scale; incremental writes can come later if a
// profile ever shows this matters.
func (s Store) SaveSQLite(ctx context.Context, st *DB) error {
	if st == nil {
		return errors.New("nil db")
	}
	db, err := s.openSQLite(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `INSERT OR REPLACE INTO library_meta(k, v) VALUES(?, ?)`, "version", strconv.Itoa(st.Version)); err != nil {
		return err
	}

	for _, t := range []string{"publications", "articles"} {
		if _, err := tx.ExecContext(ctx, `DELETE FROM `+t); err != nil {
			return err
		}
	}

	nowMs := time.Now().UTC().UnixMilli()

	for _, p := range st.Publications {
		raw, _ := json.Marshal(p)
		if _, err := tx.ExecContext(ctx, `INSERT INTO publications(id, title, feed_url, folder, archived, json, updated_at_unixms) VALUES(?, ?, ?, ?, ?, ?, ?)`,
			p.ID, p.Title, p.FeedURL, strings.TrimSpace(p.Folder), boolToInt(p.Archived), string(raw), nowMs); err != nil {
			return err
		}
	}
	for _, a := range st.Articles {
		raw, _ := json.Marshal(a)
		if _, err := tx.ExecContext(ctx, `INSERT INTO articles(
			id, publication_id, guid, title,
			published_at_unixms, read, starred,
			json, updated_at_unixms
		) VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			a.ID, a.PublicationID, a.GUID, a.Title,
			a.PublishedAt.UTC().UnixMilli(), boolToInt(a.Read), boolToInt(a.Starred),
			string(raw), nowMs,
		); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func readJSONRows[T any](ctx context.Context, db *sql.DB, query string) ([]T, error) {
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []T
	for rows.Next() {
		var js string
		if err := rows.Scan(&js); err != nil {
			return nil, err
		}
		var v T
		if err := json.Unmarshal([]byte(js), &v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
