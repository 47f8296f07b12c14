// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fetch

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/pdiddy/digest-engine/internal/httputil"
	"github.com/pdiddy/digest-engine/pkg/types"
)

const (
	defaultWebSelector = "article h2 a, h2 a, h3 a"
	defaultWebItems    = 15
)

// WebFetcher scrapes article headlines from a web page with a configurable
// CSS selector.
type WebFetcher struct {
	client *http.Client
	cfg    types.FetchConfig
}

// Fetch downloads the page and extracts headline links. Relative hrefs are
// resolved against the page URL. Elements without a usable link or title are
// skipped silently.
func (f *WebFetcher) Fetch(ctx context.Context, source types.Source) ([]types.Article, error) {
	raw, err := httputil.GetString(ctx, f.client, source.URL, f.cfg.UserAgent)
	if err != nil {
		return nil, fmt.Errorf("fetching page %s: %w", source.Name, err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("parsing page %s: %w", source.Name, err)
	}

	base, err := url.Parse(source.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid source url %s: %w", source.URL, err)
	}

	selector := source.Config.Selector
	if selector == "" {
		selector = defaultWebSelector
	}
	maxItems := source.Config.MaxItems
	if maxItems <= 0 {
		maxItems = defaultWebItems
	}

	var articles []types.Article
	doc.Find(selector).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		link := sel
		if goquery.NodeName(sel) != "a" {
			link = sel.Find("a").First()
			if link.Length() == 0 {
				link = sel.ParentsFiltered("a").First()
			}
		}
		if link.Length() == 0 {
			return true
		}

		title := strings.TrimSpace(link.Text())
		href, _ := link.Attr("href")
		if title == "" || href == "" {
			return true
		}

		ref, err := url.Parse(href)
		if err != nil {
			return true
		}

		articles = append(articles, types.Article{
			Title:      title,
			URL:        base.ResolveReference(ref).String(),
			SourceName: source.Name,
			Category:   source.Category,
		})
		return len(articles) < maxItems
	})

	return articles, nil
}
