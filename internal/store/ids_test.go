package store

import (
	"strings"
	"testing"

	"kiosk-cli/internal/model"
)

func TestNewRandomID_Shape(t *testing.T) {
	for _, prefix := range []string{"pub", "art"} {
		id, err := newRandomID(prefix)
		if err != nil {
			t.Fatalf("newRandomID(%q): %v", prefix, err)
		}
		if !strings.HasPrefix(id, prefix+"-") {
			t.Fatalf("expected %s prefix, got %q", prefix, id)
		}
		suffix := strings.TrimPrefix(id, prefix+"-")
		if got, want := len(suffix), 8; got != want {
			t.Fatalf("expected suffix len %d, got %d (%q)", want, got, suffix)
		}
		if suffix != strings.ToLower(suffix) {
			t.Fatalf("expected lowercase suffix, got %q", suffix)
		}
	}
}

func TestNewUniqueID_SkipsExisting(t *testing.T) {
	db := &DB{}
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		id, err := newUniqueID(db, "art")
		if err != nil {
			t.Fatalf("newUniqueID: %v", err)
		}
		if seen[id] {
			t.Fatalf("duplicate id %q", id)
		}
		seen[id] = true
		db.Articles = append(db.Articles, model.Article{ID: id})
	}
}

func TestIDExists(t *testing.T) {
	db := &DB{
		Publications: []model.Publication{{ID: "pub-aaaaaaaa"}},
		Articles:     []model.Article{{ID: "art-bbbbbbbb"}},
	}
	if !idExists(db, "pub-aaaaaaaa") {
		t.Fatal("expected publication id to exist")
	}
	if !idExists(db, "art-bbbbbbbb") {
		t.Fatal("expected article id to exist")
	}
	if idExists(db, "art-cccccccc") {
		t.Fatal("expected unknown id to be free")
	}
}
