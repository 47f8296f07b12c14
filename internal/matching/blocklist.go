// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package matching

import (
	"strings"

	"github.com/pdiddy/digest-engine/pkg/types"
)

// FilterBlocked removes articles containing any blocked term. Matching is
// case-insensitive substring over title plus content preview; when
// includeFullText is set the extracted body is searched as well. An empty
// blocklist passes the input through unchanged.
func FilterBlocked(articles []types.Article, blocked []string, includeFullText bool) []types.Article {
	if len(blocked) == 0 {
		return articles
	}

	terms := make([]string, 0, len(blocked))
	for _, b := range blocked {
		b = strings.ToLower(strings.TrimSpace(b))
		if b != "" {
			terms = append(terms, b)
		}
	}
	if len(terms) == 0 {
		return articles
	}

	kept := make([]types.Article, 0, len(articles))
	for _, article := range articles {
		haystack := article.Title + " " + article.ContentPreview
		if includeFullText {
			haystack += " " + article.FullText
		}
		haystack = strings.ToLower(haystack)

		blockedHit := false
		for _, term := range terms {
			if strings.Contains(haystack, term) {
				blockedHit = true
				break
			}
		}
		if !blockedHit {
			kept = append(kept, article)
		}
	}
	return kept
}
