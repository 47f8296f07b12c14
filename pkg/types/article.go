// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the shared data structures passed between the
// digest-engine pipeline stages.
package types

import "time"

// SourceType identifies which fetcher handles a source.
type SourceType string

const (
	SourceRSS    SourceType = "rss"
	SourceReddit SourceType = "reddit"
	SourceWeb    SourceType = "web"
)

// SourceConfig holds type-specific fetch settings for a source.
type SourceConfig struct {
	// MaxItems caps the number of items taken from a feed or page (default 15).
	MaxItems int `json:"max_items,omitempty" yaml:"max_items,omitempty"`

	// Selector is the CSS selector used by the web fetcher to locate headlines.
	Selector string `json:"selector,omitempty" yaml:"selector,omitempty"`

	// Sort is the Reddit listing sort: hot, new, top (default hot).
	Sort string `json:"sort,omitempty" yaml:"sort,omitempty"`

	// Limit is the number of Reddit posts requested (default 10).
	Limit int `json:"limit,omitempty" yaml:"limit,omitempty"`
}

// Source is a configured origin from which articles are fetched: a feed URL,
// a subreddit, or a web page.
type Source struct {
	ID       int64        `json:"id" yaml:"id,omitempty"`
	Name     string       `json:"name" yaml:"name"`
	Type     SourceType   `json:"type" yaml:"type"`
	URL      string       `json:"url" yaml:"url"`
	Category string       `json:"category" yaml:"category,omitempty"`
	Config   SourceConfig `json:"config" yaml:"config,omitempty"`
	Enabled  bool         `json:"enabled" yaml:"enabled"`

	CreatedAt   time.Time `json:"created_at" yaml:"-"`
	LastFetched time.Time `json:"last_fetched,omitzero" yaml:"-"`
}

// Article is a single fetched item. The URL is its identity across the
// pipeline: two articles are the same entity iff their URLs are equal.
type Article struct {
	// Title is the article headline. Fetchers never emit empty titles.
	Title string `json:"title"`

	// URL links to the full article.
	URL string `json:"url"`

	// SourceName names the source the article came from.
	SourceName string `json:"source_name"`

	// Category is inherited from the source (default "general").
	Category string `json:"category"`

	// PublishedAt is the publication timestamp; zero when unknown.
	PublishedAt time.Time `json:"published_at,omitzero"`

	// ContentPreview holds the first ~500 characters of content.
	ContentPreview string `json:"content_preview,omitempty"`

	// FullText is the article body extracted from the URL, when available.
	// It is written once by the enrichment step and immutable afterwards.
	FullText string `json:"full_text,omitempty"`

	// Score is a source-provided signal (e.g. Reddit upvotes); 0 means none.
	Score float64 `json:"score,omitempty"`
}
