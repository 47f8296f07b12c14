// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/pdiddy/digest-engine/internal/httputil"
	"github.com/pdiddy/digest-engine/pkg/types"
)

const (
	redditBaseURL      = "https://www.reddit.com"
	defaultRedditLimit = 10
	defaultRedditSort  = "hot"
	defaultRedditUA    = "digest-engine/0.1 (news digest bot)"
)

// RedditFetcher retrieves posts from subreddit listings via the public JSON
// endpoint. The source URL holds the subreddit name, with or without the
// "r/" prefix.
type RedditFetcher struct {
	client    *http.Client
	cfg       types.FetchConfig
	userAgent string

	// baseURL overrides the Reddit endpoint in tests.
	baseURL string
}

type redditListing struct {
	Data struct {
		Children []struct {
			Data redditPost `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

type redditPost struct {
	Title      string  `json:"title"`
	URL        string  `json:"url"`
	Permalink  string  `json:"permalink"`
	Selftext   string  `json:"selftext"`
	CreatedUTC float64 `json:"created_utc"`
	Score      float64 `json:"score"`
	Stickied   bool    `json:"stickied"`
	IsSelf     bool    `json:"is_self"`
}

// Fetch downloads the subreddit listing and normalizes its posts. Stickied
// posts are skipped; self posts link to their permalink and carry their
// selftext as preview; the post score travels along as the source signal.
func (f *RedditFetcher) Fetch(ctx context.Context, source types.Source) ([]types.Article, error) {
	subreddit := strings.TrimPrefix(strings.Trim(source.URL, "/"), "r/")
	sort := source.Config.Sort
	if sort == "" {
		sort = defaultRedditSort
	}
	limit := source.Config.Limit
	if limit <= 0 {
		limit = defaultRedditLimit
	}

	ua := f.userAgent
	if ua == "" {
		ua = defaultRedditUA
	}
	base := f.baseURL
	if base == "" {
		base = redditBaseURL
	}

	url := fmt.Sprintf("%s/r/%s/%s.json?limit=%d&raw_json=1", base, subreddit, sort, limit)
	raw, err := httputil.GetString(ctx, f.client, url, ua)
	if err != nil {
		return nil, fmt.Errorf("fetching r/%s: %w", subreddit, err)
	}

	var listing redditListing
	if err := json.Unmarshal([]byte(raw), &listing); err != nil {
		return nil, fmt.Errorf("parsing r/%s listing: %w", subreddit, err)
	}

	articles := make([]types.Article, 0, len(listing.Data.Children))
	for _, child := range listing.Data.Children {
		post := child.Data
		if post.Stickied || post.Title == "" {
			continue
		}

		url := post.URL
		var preview string
		if post.IsSelf {
			url = base + post.Permalink

			preview = truncatePreview(post.Selftext)
		}
		if url == "" {
			continue
		}

		article := types.Article{
			Title:          post.Title,
			URL:            url,
			SourceName:     source.Name,
			Category:       source.Category,
			ContentPreview: preview,
			Score:          post.Score,
		}
		if post.CreatedUTC > 0 {
			article.PublishedAt = time.Unix(int64(post.CreatedUTC), 0).UTC()
		}

		articles = append(articles, article)
	}
	return articles, nil
}
