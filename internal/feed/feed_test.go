package feed

import (
	"strings"
	"testing"
	"time"

	"github.com/mmcdole/gofeed"
)

const sampleRSS = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>The Weekly Dispatch</title>
    <link>https://dispatch.example</link>
    <item>
      <title>On shipping small</title>
      <link>https://dispatch.example/shipping-small</link>
      <guid>dispatch-001</guid>
      <pubDate>Mon, 05 Jan 2026 10:30:00 GMT</pubDate>
      <author>jo@dispatch.example (Jo Reporter)</author>
      <description>&lt;p&gt;Why &lt;b&gt;smaller&lt;/b&gt; releases land better.&lt;/p&gt;</description>
    </item>
    <item>
      <title>Undated entry</title>
      <link>https://dispatch.example/undated</link>
    </item>
  </channel>
</rss>`

func parseSample(t *testing.T) *gofeed.Feed {
	t.Helper()
	f, err := gofeed.NewParser().ParseString(sampleRSS)
	if err != nil {
		t.Fatalf("parse sample feed: %v", err)
	}
	return f
}

func TestMetaFromFeed(t *testing.T) {
	m := metaFromFeed(parseSample(t))
	if m.Title != "The Weekly Dispatch" {
		t.Fatalf("title = %q", m.Title)
	}
	if m.SiteURL != "https://dispatch.example" {
		t.Fatalf("site url = %q", m.SiteURL)
	}
}

func TestArticlesFromFeed(t *testing.T) {
	arts := articlesFromFeed(parseSample(t))
	if len(arts) != 2 {
		t.Fatalf("expected 2 articles, got %d", len(arts))
	}

	a := arts[0]
	if a.Title != "On shipping small" {
		t.Fatalf("title = %q", a.Title)
	}
	if a.GUID != "dispatch-001" {
		t.Fatalf("guid = %q", a.GUID)
	}
	want := time.Date(2026, 1, 5, 10, 30, 0, 0, time.UTC)
	if !a.PublishedAt.Equal(want) {
		t.Fatalf("published = %s; want %s", a.PublishedAt, want)
	}
	if strings.Contains(a.Summary, "<") {
		t.Fatalf("summary kept markup: %q", a.Summary)
	}
	if !strings.Contains(a.Summary, "smaller releases land better") {
		t.Fatalf("summary = %q", a.Summary)
	}

	// Entries without a pubDate fall back to fetch time, never zero.
	if arts[1].PublishedAt.IsZero() {
		t.Fatal("undated entry has zero PublishedAt")
	}
}

func TestToMarkdown(t *testing.T) {
	md := toMarkdown(`<p>Read <a href="https://x.example">this</a> first.</p>`)
	if !strings.Contains(md, "[this](https://x.example)") {
		t.Fatalf("link not converted: %q", md)
	}

	// Plain text passes through untouched.
	if got := toMarkdown("no markup here"); got != "no markup here" {
		t.Fatalf("plain text changed: %q", got)
	}
}

func TestSummarize_ClampsAtWordBoundary(t *testing.T) {
	long := strings.Repeat("word ", 100)
	got := summarize(long, 50)
	if len(got) > 55 {
		t.Fatalf("summary too long: %d chars", len(got))
	}
	if !strings.HasSuffix(got, "…") {
		t.Fatalf("missing ellipsis: %q", got)
	}
}

func TestStripTags_DecodesEntities(t *testing.T) {
	got := stripTags("a &amp; b &lt;c&gt;")
	if !strings.Contains(got, "a & b") || !strings.Contains(got, "<c>") {
		t.Fatalf("entities not decoded: %q", got)
	}
}
