// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package fetch retrieves articles from configured sources. Each source type
// (rss, reddit, web) has its own Fetcher implementation behind a registry;
// FetchAll aggregates across sources with per-source failure isolation.
package fetch

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/pdiddy/digest-engine/pkg/types"
)

const previewLimit = 500

// Fetcher retrieves normalized articles for one source. Implementations
// return an error on any failure rather than partial silent data, so the
// caller can log and continue with the remaining sources.
type Fetcher interface {
	Fetch(ctx context.Context, source types.Source) ([]types.Article, error)
}

// Registry maps source type tags to fetcher implementations.
type Registry struct {
	fetchers map[types.SourceType]Fetcher
}

// NewRegistry builds a registry with the three standard fetchers wired to a
// shared HTTP client. redditUserAgent overrides the default User-Agent on
// Reddit requests when non-empty (Reddit throttles generic agents hard).
func NewRegistry(cfg types.FetchConfig, client *http.Client, redditUserAgent string) *Registry {
	if client == nil {
		timeout := cfg.Timeout
		if timeout == 0 {
			timeout = 30 * time.Second
		}
		client = &http.Client{Timeout: timeout}
	}

	r := &Registry{fetchers: map[types.SourceType]Fetcher{}}
	r.Register(types.SourceRSS, &FeedFetcher{client: client, cfg: cfg})
	r.Register(types.SourceReddit, &RedditFetcher{client: client, cfg: cfg, userAgent: redditUserAgent})
	r.Register(types.SourceWeb, &WebFetcher{client: client, cfg: cfg})
	return r
}

// Register adds or replaces the fetcher for a source type.
func (r *Registry) Register(t types.SourceType, f Fetcher) {
	if r.fetchers == nil {
		r.fetchers = map[types.SourceType]Fetcher{}
	}
	r.fetchers[t] = f
}

// Resolve returns the fetcher for a source type, or an error for an
// unrecognized type.
func (r *Registry) Resolve(t types.SourceType) (Fetcher, error) {
	if f, ok := r.fetchers[t]; ok {
		return f, nil
	}
	return nil, fmt.Errorf("no fetcher registered for source type %q", t)
}

// BatchResult holds the outcome of fetching across all sources.
type BatchResult struct {
	// Articles is the unordered union of every successful fetch.
	Articles []types.Article

	// Fetched lists the IDs of sources whose fetch succeeded.
	Fetched []int64

	// Failed counts sources whose fetch errored.
	Failed int
}

// FetchAll runs every source through its fetcher sequentially. A failing
// source is logged and contributes zero articles; it never aborts the batch.
func FetchAll(ctx context.Context, registry *Registry, sources []types.Source, logger *slog.Logger) BatchResult {
	if logger == nil {
		logger = slog.Default()
	}

	var result BatchResult
	for _, source := range sources {
		fetcher, err := registry.Resolve(source.Type)
		if err != nil {
			logger.Error("fetch failed", "source", source.Name, "error", err)
			result.Failed++
			continue
		}

		articles, err := fetcher.Fetch(ctx, source)
		if err != nil {
			logger.Error("fetch failed", "source", source.Name, "error", err)
			result.Failed++
			continue
		}

		logger.Info("fetched articles", "source", source.Name, "count", len(articles))
		result.Articles = append(result.Articles, articles...)
		result.Fetched = append(result.Fetched, source.ID)
	}
	return result
}

// truncatePreview bounds preview text to previewLimit runes.
func truncatePreview(s string) string {
	runes := []rune(strings.TrimSpace(s))
	if len(runes) > previewLimit {
		runes = runes[:previewLimit]
	}
	return string(runes)
}
