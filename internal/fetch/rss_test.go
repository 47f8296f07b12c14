// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pdiddy/digest-engine/pkg/types"
)

const sampleFeed = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>Example Tech</title>
    <item>
      <title>First story</title>
      <link>https://example.test/first</link>
      <description>Short summary of the first story.</description>
      <pubDate>Mon, 02 Mar 2026 08:00:00 GMT</pubDate>
    </item>
    <item>
      <title>Second story</title>
      <link>https://example.test/second</link>
      <description>Another summary.</description>
    </item>
    <item>
      <title></title>
      <link>https://example.test/untitled</link>
    </item>
  </channel>
</rss>`

func feedSource(url string) types.Source {
	return types.Source{
		ID:       1,
		Name:     "example-tech",
		Type:     types.SourceRSS,
		URL:      url,
		Category: "tech",
		Enabled:  true,
	}
}

func TestFeedFetcher(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		w.Write([]byte(sampleFeed))
	}))
	defer ts.Close()

	f := &FeedFetcher{client: ts.Client()}
	articles, err := f.Fetch(context.Background(), feedSource(ts.URL))
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}

	if len(articles) != 2 {
		t.Fatalf("len(articles) = %d, want 2 (untitled entry dropped)", len(articles))
	}
	first := articles[0]
	if first.Title != "First story" || first.URL != "https://example.test/first" {
		t.Errorf("first article = %+v", first)
	}
	if first.SourceName != "example-tech" || first.Category != "tech" {
		t.Errorf("source fields not carried over: %+v", first)
	}
	if first.PublishedAt.IsZero() {
		t.Error("pubDate should populate PublishedAt")
	}
	if first.ContentPreview == "" {
		t.Error("description should populate ContentPreview")
	}
	if !articles[1].PublishedAt.IsZero() {
		t.Error("entry without dates should have zero PublishedAt")
	}
}

func TestFeedFetcherMaxItems(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(sampleFeed))
	}))
	defer ts.Close()

	src := feedSource(ts.URL)
	src.Config.MaxItems = 1

	f := &FeedFetcher{client: ts.Client()}
	articles, err := f.Fetch(context.Background(), src)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(articles) != 1 {
		t.Errorf("len(articles) = %d, want max_items = 1", len(articles))
	}
}

func TestFeedFetcherBadXML(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("this is not a feed"))
	}))
	defer ts.Close()

	f := &FeedFetcher{client: ts.Client()}
	if _, err := f.Fetch(context.Background(), feedSource(ts.URL)); err == nil {
		t.Error("unparseable feed should be an error")
	}
}

func TestFeedFetcherHTTPError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts.Close()

	f := &FeedFetcher{client: ts.Client()}
	if _, err := f.Fetch(context.Background(), feedSource(ts.URL)); err == nil {
		t.Error("HTTP 500 should be an error")
	}
}
