package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"kiosk-cli/internal/model"
)

func TestAddPublication(t *testing.T) {
	db := &DB{Version: 1}

	pub, err := AddPublication(db, "The Dispatch", "https://example.com/feed.xml", "news")
	if err != nil {
		t.Fatalf("AddPublication: %v", err)
	}
	if pub.ID == "" || pub.Title != "The Dispatch" || pub.Folder != "news" {
		t.Fatalf("unexpected publication: %+v", pub)
	}
	if pub.AddedAt.IsZero() {
		t.Fatal("expected AddedAt to be set")
	}

	if _, err := AddPublication(db, "", "HTTPS://EXAMPLE.COM/FEED.XML", ""); err == nil {
		t.Fatal("expected duplicate feed url (case-insensitive) to be rejected")
	}
	if _, err := AddPublication(db, "", "   ", ""); err == nil {
		t.Fatal("expected empty feed url to be rejected")
	}
	if len(db.Publications) != 1 {
		t.Fatalf("expected 1 publication, got %d", len(db.Publications))
	}
}

func TestRemovePublication_CascadesArticles(t *testing.T) {
	db := &DB{Version: 1}
	pub, err := AddPublication(db, "A", "https://a.example/feed", "")
	if err != nil {
		t.Fatalf("AddPublication: %v", err)
	}
	other, err := AddPublication(db, "B", "https://b.example/feed", "")
	if err != nil {
		t.Fatalf("AddPublication: %v", err)
	}
	if _, err := UpsertArticles(db, pub.ID, []model.Article{{GUID: "g1", Title: "one"}}); err != nil {
		t.Fatalf("UpsertArticles: %v", err)
	}
	if _, err := UpsertArticles(db, other.ID, []model.Article{{GUID: "g1", Title: "kept"}}); err != nil {
		t.Fatalf("UpsertArticles: %v", err)
	}

	if !RemovePublication(db, pub.ID) {
		t.Fatal("expected removal to succeed")
	}
	if RemovePublication(db, pub.ID) {
		t.Fatal("expected second removal to report missing")
	}
	if len(db.Publications) != 1 || db.Publications[0].ID != other.ID {
		t.Fatalf("unexpected publications after remove: %+v", db.Publications)
	}
	if len(db.Articles) != 1 || db.Articles[0].PublicationID != other.ID {
		t.Fatalf("expected only the other publication's articles to survive: %+v", db.Articles)
	}
}

func TestUpsertArticles_DedupAndFallbackGUID(t *testing.T) {
	db := &DB{Version: 1}
	pub, err := AddPublication(db, "A", "https://a.example/feed", "")
	if err != nil {
		t.Fatalf("AddPublication: %v", err)
	}

	added, err := UpsertArticles(db, pub.ID, []model.Article{
		{GUID: "g1", Title: "one"},
		{GUID: "", Link: "https://a.example/two", Title: "two"},
		{GUID: "", Link: "", Title: "no identity, dropped"},
	})
	if err != nil {
		t.Fatalf("UpsertArticles: %v", err)
	}
	if added != 2 {
		t.Fatalf("expected 2 added, got %d", added)
	}
	if db.Articles[1].GUID != "https://a.example/two" {
		t.Fatalf("expected link to stand in for a missing guid, got %q", db.Articles[1].GUID)
	}

	added, err = UpsertArticles(db, pub.ID, []model.Article{
		{GUID: "g1", Title: "one again"},
		{GUID: "g3", Title: "three"},
	})
	if err != nil {
		t.Fatalf("UpsertArticles: %v", err)
	}
	if added != 1 || len(db.Articles) != 3 {
		t.Fatalf("expected only g3 to be new; added=%d total=%d", added, len(db.Articles))
	}
	for _, a := range db.Articles {
		if a.ID == "" || a.PublicationID != pub.ID {
			t.Fatalf("article missing id or publication: %+v", a)
		}
	}
}

func TestArticlesForPublication_NewestFirst(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	db := &DB{
		Articles: []model.Article{
			{ID: "art-1", PublicationID: "pub-a", PublishedAt: base},
			{ID: "art-2", PublicationID: "pub-b", PublishedAt: base.Add(2 * time.Hour)},
			{ID: "art-3", PublicationID: "pub-a", PublishedAt: base.Add(time.Hour)},
		},
	}

	all := db.ArticlesForPublication("")
	if len(all) != 3 || all[0].ID != "art-2" || all[1].ID != "art-3" || all[2].ID != "art-1" {
		t.Fatalf("unexpected order for all articles: %+v", all)
	}

	onlyA := db.ArticlesForPublication("pub-a")
	if len(onlyA) != 2 || onlyA[0].ID != "art-3" || onlyA[1].ID != "art-1" {
		t.Fatalf("unexpected order for pub-a: %+v", onlyA)
	}
}

func TestUnreadCountAndFlags(t *testing.T) {
	db := &DB{
		Articles: []model.Article{
			{ID: "art-1", PublicationID: "pub-a"},
			{ID: "art-2", PublicationID: "pub-a", Read: true},
			{ID: "art-3", PublicationID: "pub-b"},
		},
	}
	if got := db.UnreadCount(""); got != 2 {
		t.Fatalf("expected 2 unread overall, got %d", got)
	}
	if got := db.UnreadCount("pub-a"); got != 1 {
		t.Fatalf("expected 1 unread in pub-a, got %d", got)
	}

	if !SetArticleRead(db, "art-1", true) {
		t.Fatal("expected SetArticleRead to find art-1")
	}
	if got := db.UnreadCount("pub-a"); got != 0 {
		t.Fatalf("expected 0 unread after marking read, got %d", got)
	}
	if SetArticleRead(db, "art-missing", true) {
		t.Fatal("expected missing article to report false")
	}

	if !SetArticleStarred(db, "art-3", true) {
		t.Fatal("expected SetArticleStarred to find art-3")
	}
	a, ok := db.ArticleByID("art-3")
	if !ok || !a.Starred {
		t.Fatalf("expected art-3 starred, got %+v", a)
	}
}

func TestDiscoverDir(t *testing.T) {
	root := t.TempDir()
	kiosk := filepath.Join(root, ".kiosk")
	nested := filepath.Join(root, "a", "b", "c")
	for _, d := range []string{kiosk, nested} {
		if err := os.MkdirAll(d, 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", d, err)
		}
	}

	found, ok := DiscoverDir(nested)
	if !ok {
		t.Fatal("expected discovery to find .kiosk above")
	}
	if found != kiosk {
		t.Fatalf("expected %q, got %q", kiosk, found)
	}

	if _, ok := DiscoverDir(t.TempDir()); ok {
		t.Fatal("expected no discovery in a bare tree")
	}
}
