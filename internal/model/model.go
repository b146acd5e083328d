package model

import (
	"strings"
	"time"
)

type FeedKind string

const (
	FeedKindRSS        FeedKind = "rss"
	FeedKindAtom       FeedKind = "atom"
	FeedKindNewsletter FeedKind = "newsletter"
)

type Publication struct {
	ID      string   `json:"id"`
	Title   string   `json:"title"`
	FeedURL string   `json:"feedUrl"`
	SiteURL string   `json:"siteUrl,omitempty"`
	Kind    FeedKind `json:"kind,omitempty"`

	// Folder is a free-form grouping label shown in the sidebar ("News", "Tech").
	Folder string `json:"folder,omitempty"`

	AddedAt       time.Time  `json:"addedAt"`
	LastFetchedAt *time.Time `json:"lastFetchedAt,omitempty"`
	LastError     string     `json:"lastError,omitempty"`
	Archived      bool       `json:"archived"`
}

func (p Publication) DisplayTitle() string {
	if t := strings.TrimSpace(p.Title); t != "" {
		return t
	}
	if u := strings.TrimSpace(p.FeedURL); u != "" {
		return u
	}
	return "(untitled publication)"
}

type Article struct {
	ID            string `json:"id"`
	PublicationID string `json:"publicationId"`

	// GUID is the feed-provided identity used for dedup across refreshes.
	// Falls back to the link when the feed omits one.
	GUID string `json:"guid"`

	Title   string `json:"title"`
	Author  string `json:"author,omitempty"`
	Link    string `json:"link,omitempty"`
	Summary string `json:"summary,omitempty"`
	// Body is the article content as markdown (converted at fetch time).
	Body string `json:"body,omitempty"`

	PublishedAt time.Time `json:"publishedAt"`
	FetchedAt   time.Time `json:"fetchedAt"`

	Read    bool `json:"read"`
	Starred bool `json:"starred"`
}

func (a Article) DisplayTitle() string {
	if t := strings.TrimSpace(a.Title); t != "" {
		return t
	}
	return "(untitled)"
}
