// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline orchestrates a digest run: fetch, enrich, filter, match,
// summarize, deliver, log. Collaborators are injected behind small
// interfaces so every stage can be tested in isolation.
package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/pdiddy/digest-engine/internal/extract"
	"github.com/pdiddy/digest-engine/internal/fetch"
	"github.com/pdiddy/digest-engine/internal/matching"
	"github.com/pdiddy/digest-engine/internal/summarize"
	"github.com/pdiddy/digest-engine/pkg/types"
)

// Store is the persistence surface the pipeline needs.
type Store interface {
	Sources(enabledOnly bool) ([]types.Source, error)
	Topics(enabledOnly bool) ([]types.Topic, error)
	BlockedKeywords() ([]types.BlockedKeyword, error)
	Setting(key, fallback string) (string, error)
	MarkSourceFetched(id int64, at time.Time) error
	AppendDigestLog(log types.DigestLog) (int64, error)
}

// Extractor enriches articles with full text.
type Extractor interface {
	Extract(ctx context.Context, url string) (extract.Result, error)
}

// Summarizer generates digest prose.
type Summarizer interface {
	SummarizeOverview(ctx context.Context, topics []summarize.TopicHeadlines) summarize.Result
	SummarizeAll(ctx context.Context, articles []types.Article) summarize.Result
	SummarizeBatch(ctx context.Context, articles []types.Article) []summarize.ArticleSummary
}

// Mailer delivers the finished digest.
type Mailer interface {
	Send(ctx context.Context, d *types.Digest) error
}

// Deps bundles pipeline collaborators. Extractor and Mailer are optional;
// a nil Extractor skips full-text enrichment, a nil Mailer skips delivery.
type Deps struct {
	Store      Store
	Registry   *fetch.Registry
	Extractor  Extractor
	Summarizer Summarizer
	Mailer     Mailer

	// Recipient is the digest email address; empty disables delivery.
	Recipient string

	Logger *slog.Logger
	Now    func() time.Time
}

// Pipeline runs the digest end to end.
type Pipeline struct {
	deps    Deps
	matcher *matching.Matcher
}

// New builds a Pipeline. Nil Logger and Now get usable defaults.
func New(deps Deps) *Pipeline {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	return &Pipeline{
		deps:    deps,
		matcher: matching.NewMatcher(deps.Logger),
	}
}

// Run executes one digest run and returns the digest. Store read failures
// abort the run; per-source fetch failures, extraction failures, and
// summarizer failures degrade it instead. The digest log write is the one
// persistence failure that surfaces as an error alongside the digest.
func (p *Pipeline) Run(ctx context.Context) (*types.Digest, error) {
	log := p.deps.Logger
	start := p.deps.Now()
	log.Info("digest run started", "at", start)

	// 1. Fetch from all enabled sources.
	sources, err := p.deps.Store.Sources(true)
	if err != nil {
		return nil, err
	}
	batch := fetch.FetchAll(ctx, p.deps.Registry, sources, log)
	articles := batch.Articles

	for _, id := range batch.Fetched {
		if err := p.deps.Store.MarkSourceFetched(id, p.deps.Now()); err != nil {
			log.Warn("failed to record fetch time", "source_id", id, "error", err)
		}
	}

	// 2. Enrich with full text.
	p.enrich(ctx, articles)

	// 3. Apply the global keyword blocklist.
	articles, err = p.applyBlocklist(articles)
	if err != nil {
		return nil, err
	}

	// 4. Match to topics, dedupe, and summarize per article.
	topics, err := p.deps.Store.Topics(true)
	if err != nil {
		return nil, err
	}
	topicSections := p.buildTopicSections(ctx, articles, topics)

	// 5. Overview: from topic headlines when sections exist, otherwise from
	// the whole batch.
	var overview summarize.Result
	if len(topicSections) > 0 {
		overview = p.deps.Summarizer.SummarizeOverview(ctx, headlinesFor(topicSections))
	} else {
		overview = p.deps.Summarizer.SummarizeAll(ctx, articles)
	}
	if overview.Success {
		log.Info("summarization complete", "model", overview.Model)
	} else {
		log.Warn("summarization failed, using fallback", "error", overview.Err)
	}

	// Flat entry list kept alongside topic sections.
	entries := make([]types.DigestEntry, 0, len(articles))
	for _, a := range articles {
		summary := a.ContentPreview
		if summary == "" {
			summary = a.Title
		}
		entries = append(entries, types.DigestEntry{Article: a, Summary: summary})
	}

	digest := &types.Digest{
		Entries:       entries,
		TopicSections: topicSections,
		Summary:       overview.Summary,
		Model:         overview.Model,
		GeneratedAt:   p.deps.Now(),
		SourceCount:   len(sources),
		ArticleCount:  len(articles),
	}

	// 6. Deliver.
	emailSent := false
	if p.deps.Recipient != "" && p.deps.Mailer != nil {
		if err := p.deps.Mailer.Send(ctx, digest); err != nil {
			log.Error("digest email failed", "error", err)
		} else {
			emailSent = true
		}
	}

	// 7. Log the run.
	status := types.StatusEmailFailed
	if emailSent {
		status = types.StatusSent
	} else if p.deps.Recipient == "" {
		status = types.StatusCompleted
	}

	_, err = p.deps.Store.AppendDigestLog(types.DigestLog{
		SentAt:       p.deps.Now(),
		Recipient:    p.deps.Recipient,
		SourceCount:  len(sources),
		ArticleCount: len(articles),
		EntryCount:   digest.EntryCount(),
		Status:       status,
	})
	if err != nil {
		return digest, err
	}

	log.Info("digest run complete",
		"sources", len(sources),
		"articles", len(articles),
		"topics", len(topicSections),
		"status", status,
	)
	return digest, nil
}

// enrich fetches full text for articles that lack it. Failures leave the
// article unchanged.
func (p *Pipeline) enrich(ctx context.Context, articles []types.Article) {
	if p.deps.Extractor == nil {
		return
	}
	for i := range articles {
		if articles[i].FullText != "" {
			continue
		}
		res, err := p.deps.Extractor.Extract(ctx, articles[i].URL)
		if err != nil || !res.Success {
			continue
		}
		articles[i].FullText = res.Text
		p.deps.Logger.Debug("extracted full text",
			"url", articles[i].URL, "words", res.WordCount)
	}
}

// applyBlocklist drops articles containing any blocked keyword. The
// filter_scope setting widens matching to full text when set to
// "full_text".
func (p *Pipeline) applyBlocklist(articles []types.Article) ([]types.Article, error) {
	keywords, err := p.deps.Store.BlockedKeywords()
	if err != nil {
		return nil, err
	}
	if len(keywords) == 0 {
		return articles, nil
	}

	scope, err := p.deps.Store.Setting("filter_scope", "title_preview")
	if err != nil {
		return nil, err
	}

	terms := make([]string, len(keywords))
	for i, k := range keywords {
		terms[i] = k.Keyword
	}

	filtered := matching.FilterBlocked(articles, terms, scope == "full_text")
	p.deps.Logger.Info("blocklist applied",
		"before", len(articles), "after", len(filtered))
	return filtered, nil
}

// buildTopicSections matches, dedupes, and summarizes per topic. Sections
// are ordered by the topics' priority order; topics with no surviving match
// entry still appear when they matched before deduplication.
func (p *Pipeline) buildTopicSections(ctx context.Context, articles []types.Article, topics []types.Topic) []types.TopicSection {
	if len(topics) == 0 {
		return nil
	}

	matches := p.matcher.Match(articles, topics)
	byID := make(map[int64]types.Topic, len(topics))
	for _, t := range topics {
		byID[t.ID] = t
	}
	matches = matching.Deduplicate(matches, byID)

	var sections []types.TopicSection
	for _, topic := range topics {
		scored, ok := matches[topic.ID]
		if !ok {
			continue
		}

		topicArticles := make([]types.Article, len(scored))
		for i, sa := range scored {
			topicArticles[i] = sa.Article
		}

		summaries := p.deps.Summarizer.SummarizeBatch(ctx, topicArticles)
		entries := make([]types.DigestEntry, len(summaries))
		for i, as := range summaries {
			entries[i] = types.DigestEntry{Article: as.Article, Summary: as.Summary}
		}

		sections = append(sections, types.TopicSection{
			TopicName: topic.Name,
			TopicID:   topic.ID,
			Entries:   entries,
		})
	}
	return sections
}

// headlinesFor collects per-topic headline lists for the overview prompt,
// skipping empty sections.
func headlinesFor(sections []types.TopicSection) []summarize.TopicHeadlines {
	var out []summarize.TopicHeadlines
	for _, ts := range sections {
		if len(ts.Entries) == 0 {
			continue
		}
		headlines := make([]string, len(ts.Entries))
		for i, e := range ts.Entries {
			headlines[i] = e.Article.Title
		}
		out = append(out, summarize.TopicHeadlines{Topic: ts.TopicName, Headlines: headlines})
	}
	return out
}
