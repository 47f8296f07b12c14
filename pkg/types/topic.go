// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// Topic is a user-defined relevance filter used to group and rank articles.
// Topics are created through the store or the admin API and are read-only to
// the matching pipeline.
type Topic struct {
	ID int64 `json:"id" yaml:"id,omitempty"`

	// Name is unique across topics.
	Name string `json:"name" yaml:"name"`

	// Keywords are matched case-insensitively against the searchable text.
	Keywords []string `json:"keywords" yaml:"keywords,omitempty"`

	// IncludePatterns are regexes of which at least one must match, when any
	// are set.
	IncludePatterns []string `json:"include_patterns" yaml:"include_patterns,omitempty"`

	// ExcludePatterns are regexes that reject an article on any match.
	ExcludePatterns []string `json:"exclude_patterns" yaml:"exclude_patterns,omitempty"`

	// Priority ranges 0-100; higher means more important.
	Priority int `json:"priority" yaml:"priority,omitempty"`

	// MaxArticles caps the ranked result per digest, 1-50.
	MaxArticles int `json:"max_articles" yaml:"max_articles,omitempty"`

	Enabled bool `json:"enabled" yaml:"enabled"`

	CreatedAt time.Time `json:"created_at" yaml:"-"`
}
