// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fetch

import (
	"context"
	"fmt"
	"net/http"

	"github.com/mmcdole/gofeed"

	"github.com/pdiddy/digest-engine/internal/httputil"
	"github.com/pdiddy/digest-engine/pkg/types"
)

const defaultFeedItems = 15

// FeedFetcher retrieves articles from RSS and Atom feeds.
type FeedFetcher struct {
	client *http.Client
	cfg    types.FetchConfig
}

// Fetch downloads the feed XML and normalizes its entries. The source's
// max_items config caps the number of entries taken (default 15).
func (f *FeedFetcher) Fetch(ctx context.Context, source types.Source) ([]types.Article, error) {
	raw, err := httputil.GetString(ctx, f.client, source.URL, f.cfg.UserAgent)
	if err != nil {
		return nil, fmt.Errorf("fetching feed %s: %w", source.Name, err)
	}

	feed, err := gofeed.NewParser().ParseString(raw)
	if err != nil {
		return nil, fmt.Errorf("parsing feed %s: %w", source.Name, err)
	}

	maxItems := source.Config.MaxItems
	if maxItems <= 0 {
		maxItems = defaultFeedItems
	}
	items := feed.Items
	if len(items) > maxItems {
		items = items[:maxItems]
	}

	articles := make([]types.Article, 0, len(items))
	for _, item := range items {
		if item.Title == "" || item.Link == "" {
			continue
		}

		article := types.Article{
			Title:      item.Title,
			URL:        item.Link,
			SourceName: source.Name,
			Category:   source.Category,
		}
		if item.PublishedParsed != nil {
			article.PublishedAt = item.PublishedParsed.UTC()
		} else if item.UpdatedParsed != nil {
			article.PublishedAt = item.UpdatedParsed.UTC()
		}
		if item.Description != "" {
			article.ContentPreview = truncatePreview(item.Description)
		} else if item.Content != "" {
			article.ContentPreview = truncatePreview(item.Content)
		}

		articles = append(articles, article)
	}
	return articles, nil
}
