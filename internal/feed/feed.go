package feed

import (
	"context"
	"strings"
	"time"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/mmcdole/gofeed"

	"kiosk-cli/internal/model"
)

// Fetching and parsing. gofeed autodetects RSS/Atom/JSON Feed, so a
// Publication only needs its feed URL.

const defaultFetchTimeout = 30 * time.Second

type Fetcher struct {
	parser  *gofeed.Parser
	timeout time.Duration
}

func NewFetcher(timeout time.Duration) *Fetcher {
	if timeout <= 0 {
		timeout = defaultFetchTimeout
	}
	p := gofeed.NewParser()
	p.UserAgent = "kiosk/1.0"
	return &Fetcher{parser: p, timeout: timeout}
}

// Fetch downloads and parses one feed, returning its metadata and entries
// mapped to articles. The returned articles carry no ID/PublicationID;
// store.UpsertArticles assigns those.
func (f *Fetcher) Fetch(ctx context.Context, feedURL string) (Meta, []model.Article, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	parsed, err := f.parser.ParseURLWithContext(strings.TrimSpace(feedURL), ctx)
	if err != nil {
		return Meta{}, nil, err
	}
	return metaFromFeed(parsed), articlesFromFeed(parsed), nil
}

// Meta is the feed-level information used to fill in publication fields the
// user didn't supply.
type Meta struct {
	Title   string
	SiteURL string
	Kind    model.FeedKind
}

func metaFromFeed(f *gofeed.Feed) Meta {
	kind := model.FeedKindRSS
	if strings.EqualFold(f.FeedType, "atom") {
		kind = model.FeedKindAtom
	}
	return Meta{
		Title:   strings.TrimSpace(f.Title),
		SiteURL: strings.TrimSpace(f.Link),
		Kind:    kind,
	}
}

func articlesFromFeed(f *gofeed.Feed) []model.Article {
	now := time.Now().UTC()
	out := make([]model.Article, 0, len(f.Items))
	for _, it := range f.Items {
		if it == nil {
			continue
		}
		out = append(out, articleFromItem(it, now))
	}
	return out
}

func articleFromItem(it *gofeed.Item, fetchedAt time.Time) model.Article {
	published := fetchedAt
	if it.PublishedParsed != nil {
		published = it.PublishedParsed.UTC()
	} else if it.UpdatedParsed != nil {
		published = it.UpdatedParsed.UTC()
	}

	author := ""
	if len(it.Authors) > 0 && it.Authors[0] != nil {
		author = strings.TrimSpace(it.Authors[0].Name)
	}

	body := strings.TrimSpace(it.Content)
	if body == "" {
		body = strings.TrimSpace(it.Description)
	}

	return model.Article{
		GUID:        strings.TrimSpace(it.GUID),
		Title:       strings.TrimSpace(it.Title),
		Author:      author,
		Link:        strings.TrimSpace(it.Link),
		Summary:     summarize(it.Description, 280),
		Body:        toMarkdown(body),
		PublishedAt: published,
		FetchedAt:   fetchedAt,
	}
}

// toMarkdown converts feed HTML into markdown for the reading pane. Content
// that fails conversion (or was already plain text) passes through as-is.
func toMarkdown(html string) string {
	html = strings.TrimSpace(html)
	if html == "" || !strings.Contains(html, "<") {
		return html
	}
	md, err := htmltomarkdown.ConvertString(html)
	if err != nil {
		return html
	}
	return strings.TrimSpace(md)
}

// summarize strips markup from a description and clamps it for the two-line
// list preview.
func summarize(s string, max int) string {
	s = stripTags(s)
	s = strings.Join(strings.Fields(s), " ")
	if max > 0 && len(s) > max {
		cut := strings.LastIndex(s[:max], " ")
		if cut <= 0 {
			cut = max
		}
		s = strings.TrimRight(s[:cut], ",;:") + "…"
	}
	return s
}

func stripTags(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	inTag := false
	for _, r := range s {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
			b.WriteRune(' ')
		case !inTag:
			b.WriteRune(r)
		}
	}
	out := b.String()
	for k, v := range map[string]string{
		"&amp;":  "&",
		"&lt;":   "<",
		"&gt;":   ">",
		"&quot;": `"`,
		"&#39;":  "'",
		"&nbsp;": " ",
	} {
		out = strings.ReplaceAll(out, k, v)
	}
	return out
}
