// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package matching scores articles against topics, ranks them per topic, and
// resolves cross-topic duplicates.
package matching

import (
	"log/slog"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/pdiddy/digest-engine/pkg/types"
)

// ScoredArticle is an article with a relevance score for a specific topic.
// Produced fresh on every match run and never persisted.
type ScoredArticle struct {
	Article         types.Article
	Score           float64
	MatchedKeywords []string
}

// Matcher scores and ranks articles against topics.
type Matcher struct {
	logger *slog.Logger
	now    func() time.Time
}

// NewMatcher builds a Matcher. A nil logger falls back to slog.Default.
func NewMatcher(logger *slog.Logger) *Matcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Matcher{logger: logger, now: time.Now}
}

// searchableText combines all article text fields into one lowercase string.
func searchableText(article types.Article) string {
	parts := []string{article.Title, article.ContentPreview}
	if article.FullText != "" {
		parts = append(parts, article.FullText)
	}
	return strings.ToLower(strings.Join(parts, " "))
}

// keywordScore scores text by keyword occurrences. The first occurrence of a
// keyword is worth 10 points, each additional up to 5 adds 2, so a single
// keyword contributes at most 20.
func keywordScore(text string, keywords []string) (float64, []string) {
	var score float64
	var matched []string

	for _, kw := range keywords {
		lower := strings.ToLower(kw)
		if lower == "" {
			continue
		}
		count := strings.Count(text, lower)
		if count == 0 {
			continue
		}
		extra := count - 1
		if extra > 5 {
			extra = 5
		}
		score += 10.0 + float64(extra)*2.0
		matched = append(matched, kw)
	}

	return score, matched
}

// patternMatches reports whether any pattern matches the text. Patterns are
// compiled case-insensitively; a pattern that fails to compile is logged and
// treated as never matching.
func (m *Matcher) patternMatches(text string, patterns []string) bool {
	for _, pattern := range patterns {
		re, err := regexp.Compile("(?i)" + pattern)
		if err != nil {
			m.logger.Warn("invalid regex pattern", "pattern", pattern, "error", err)
			continue
		}
		if re.MatchString(text) {
			return true
		}
	}
	return false
}

// recencyScore returns the age bonus for an article, 1-10 points. Articles
// without a publish timestamp score a neutral 5.
func (m *Matcher) recencyScore(article types.Article) float64 {
	if article.PublishedAt.IsZero() {
		return 5.0
	}
	age := m.now().Sub(article.PublishedAt)
	switch {
	case age < 6*time.Hour:
		return 10.0
	case age < 24*time.Hour:
		return 8.0
	case age < 48*time.Hour:
		return 5.0
	case age < 72*time.Hour:
		return 3.0
	}
	return 1.0
}

// Score computes the relevance of one article to one topic. The second return
// value is false when the article is excluded by patterns or matches none of
// the topic's keywords.
//
// A topic with no keywords and no patterns accepts every article scored on
// recency, priority, and source signal alone.
func (m *Matcher) Score(article types.Article, topic types.Topic) (ScoredArticle, bool) {
	text := searchableText(article)

	if len(topic.ExcludePatterns) > 0 && m.patternMatches(text, topic.ExcludePatterns) {
		return ScoredArticle{}, false
	}
	if len(topic.IncludePatterns) > 0 && !m.patternMatches(text, topic.IncludePatterns) {
		return ScoredArticle{}, false
	}

	kwScore, matched := keywordScore(text, topic.Keywords)
	if len(topic.Keywords) > 0 && len(matched) == 0 {
		return ScoredArticle{}, false
	}

	priorityBonus := float64(topic.Priority) * 0.5

	var sourceBonus float64
	if article.Score > 0 {
		sourceBonus = article.Score / 100
		if sourceBonus > 10.0 {
			sourceBonus = 10.0
		}
	}

	total := kwScore + m.recencyScore(article) + priorityBonus + sourceBonus

	return ScoredArticle{
		Article:         article,
		Score:           total,
		MatchedKeywords: matched,
	}, true
}

// Rank returns the articles accepted by Score for the topic, sorted by score
// descending and truncated to topic.MaxArticles. Equal scores keep their
// input order.
func (m *Matcher) Rank(articles []types.Article, topic types.Topic) []ScoredArticle {
	var scored []ScoredArticle
	for _, article := range articles {
		if sa, ok := m.Score(article, topic); ok {
			scored = append(scored, sa)
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if topic.MaxArticles > 0 && len(scored) > topic.MaxArticles {
		scored = scored[:topic.MaxArticles]
	}
	return scored
}

// Match ranks the article set for every enabled topic. Disabled topics and
// topics with no accepted articles are absent from the result. One article
// may appear under several topics at this stage; Deduplicate resolves that.
func (m *Matcher) Match(articles []types.Article, topics []types.Topic) map[int64][]ScoredArticle {
	result := make(map[int64][]ScoredArticle)
	for _, topic := range topics {
		if !topic.Enabled {
			continue
		}
		ranked := m.Rank(articles, topic)
		if len(ranked) > 0 {
			result[topic.ID] = ranked
		}
	}
	return result
}
