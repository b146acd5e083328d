package tui

import (
	"testing"

	"kiosk-cli/internal/model"
)

func TestNewList_DoesNotQuitOnEsc(t *testing.T) {
	l := newList(nil)

	foundQ := false
	for _, k := range l.KeyMap.Quit.Keys() {
		if k == "esc" {
			t.Fatalf("expected quit binding without esc; got %v", l.KeyMap.Quit.Keys())
		}
		if k == "q" {
			foundQ = true
		}
	}
	if !foundQ {
		t.Fatalf("expected q to quit; got %v", l.KeyMap.Quit.Keys())
	}
}

func TestPubItem_Title(t *testing.T) {
	setGlyphs(glyphSetASCII)
	t.Cleanup(func() { setGlyphs(glyphSetUnicode) })

	i := pubItem{pub: model.Publication{ID: "pub-x", Title: "The Dispatch"}}
	if got := i.Title(); got != "The Dispatch" {
		t.Fatalf("Title() = %q", got)
	}

	i.unread = 3
	if got := i.Title(); got != "The Dispatch (3)" {
		t.Fatalf("Title() with unread = %q", got)
	}

	i.pub.LastError = "timeout"
	if got := i.Title(); got != "The Dispatch (3) !" {
		t.Fatalf("Title() with error = %q", got)
	}

	i.current = true
	if got := i.Title(); got != "The Dispatch (3) ! *" {
		t.Fatalf("Title() when current = %q", got)
	}
}

func TestArticleItem_FilterValue(t *testing.T) {
	i := articleItem{
		article:  model.Article{Title: "On shipping small", Author: "Ada"},
		pubTitle: "The Dispatch",
	}
	if got := i.FilterValue(); got != "On shipping small The Dispatch Ada" {
		t.Fatalf("FilterValue() = %q", got)
	}
}
