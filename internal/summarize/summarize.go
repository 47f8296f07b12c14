// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package summarize generates digest prose with a local Ollama model. Every
// entry point degrades gracefully: when the model is unreachable or returns
// garbage, callers get deterministic fallback text instead of an error, so a
// digest always goes out.
package summarize

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/pdiddy/digest-engine/pkg/types"
)

const previewFallbackLen = 200

// Result is the outcome of one summarization call.
type Result struct {
	Summary string
	Success bool
	Model   string
	Err     error
}

// ArticleSummary pairs an article with its one-line summary.
type ArticleSummary struct {
	Article types.Article
	Summary string
	Success bool
}

// TopicHeadlines carries one topic's headline list into the overview prompt.
type TopicHeadlines struct {
	Topic     string
	Headlines []string
}

// Summarizer talks to an Ollama server over its chat API.
type Summarizer struct {
	cfg    types.SummarizerConfig
	client *http.Client
	logger *slog.Logger
}

// NewSummarizer builds a Summarizer. Nil client and logger get usable
// defaults.
func NewSummarizer(cfg types.SummarizerConfig, client *http.Client, logger *slog.Logger) *Summarizer {
	if client == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 2 * time.Minute
		}
		client = &http.Client{Timeout: timeout}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Summarizer{cfg: cfg, client: client, logger: logger}
}

// ollamaRequest is the request body for the Ollama chat API.
type ollamaRequest struct {
	Model    string          `json:"model"`
	Messages []ollamaMessage `json:"messages"`
	Stream   bool            `json:"stream"`
}

// ollamaMessage is a single message in the chat conversation.
type ollamaMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ollamaResponse is the non-streaming response body from the Ollama chat API.
type ollamaResponse struct {
	Model   string        `json:"model"`
	Message ollamaMessage `json:"message"`
}

// chat sends one user prompt to Ollama and returns the reply text and the
// model name reported by the server.
func (s *Summarizer) chat(ctx context.Context, prompt string) (string, string, error) {
	reqBody := ollamaRequest{
		Model: s.cfg.Model,
		Messages: []ollamaMessage{
			{Role: "user", Content: prompt},
		},
		Stream: false,
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", "", fmt.Errorf("marshaling request: %w", err)
	}

	url := strings.TrimSuffix(s.cfg.Host, "/") + "/api/chat"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", "", fmt.Errorf("calling Ollama: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", "", fmt.Errorf("Ollama returned %d: %s", resp.StatusCode, string(body))
	}

	var oResp ollamaResponse
	if err := json.NewDecoder(resp.Body).Decode(&oResp); err != nil {
		return "", "", fmt.Errorf("decoding Ollama response: %w", err)
	}
	if oResp.Message.Content == "" {
		return "", "", fmt.Errorf("empty content in Ollama response")
	}

	model := oResp.Model
	if model == "" {
		model = s.cfg.Model
	}
	return oResp.Message.Content, model, nil
}

// SummarizeOverview generates a short executive overview from per-topic
// headlines. On failure it falls back to listing the topic names.
func (s *Summarizer) SummarizeOverview(ctx context.Context, topics []TopicHeadlines) Result {
	if len(topics) == 0 {
		return Result{Summary: "No topics to summarize.", Success: true, Model: s.cfg.Model}
	}

	prompt, err := buildOverviewPrompt(topics)
	if err != nil {
		return s.overviewFallback(topics, err)
	}

	content, model, err := s.chat(ctx, prompt)
	if err != nil {
		return s.overviewFallback(topics, err)
	}

	return Result{Summary: strings.TrimSpace(content), Success: true, Model: model}
}

func (s *Summarizer) overviewFallback(topics []TopicHeadlines, err error) Result {
	s.logger.Warn("overview summarization failed", "error", err)
	names := make([]string, len(topics))
	for i, t := range topics {
		names[i] = t.Topic
	}
	return Result{
		Summary: fmt.Sprintf("Today's digest covers: %s.", strings.Join(names, ", ")),
		Success: false,
		Model:   s.cfg.Model,
		Err:     err,
	}
}

// SummarizeAll produces one digest summary covering a whole batch of
// articles. On failure it falls back to a plain bullet list of titles.
func (s *Summarizer) SummarizeAll(ctx context.Context, articles []types.Article) Result {
	if len(articles) == 0 {
		return Result{Summary: "No articles to summarize.", Success: true, Model: s.cfg.Model}
	}

	prompt, err := buildBatchPrompt(articles)
	if err != nil {
		return s.batchFallback(articles, err)
	}

	content, model, err := s.chat(ctx, prompt)
	if err != nil {
		return s.batchFallback(articles, err)
	}

	return Result{Summary: content, Success: true, Model: model}
}

func (s *Summarizer) batchFallback(articles []types.Article, err error) Result {
	s.logger.Warn("batch summarization failed", "error", err)
	var b strings.Builder
	b.WriteString("Today's articles:\n\n")
	for _, a := range articles {
		fmt.Fprintf(&b, "- %s\n", a.Title)
		fmt.Fprintf(&b, "  %s\n", a.URL)
		if a.ContentPreview != "" {
			preview := a.ContentPreview
			if len(preview) > previewFallbackLen {
				preview = preview[:previewFallbackLen]
			}
			fmt.Fprintf(&b, "  %s\n", preview)
		}
		b.WriteString("\n")
	}
	return Result{Summary: b.String(), Success: false, Model: s.cfg.Model, Err: err}
}

// SummarizeArticle generates a one-sentence summary for a single article.
// On failure it falls back to the content preview or the title.
func (s *Summarizer) SummarizeArticle(ctx context.Context, article types.Article) ArticleSummary {
	prompt, err := buildArticlePrompt(article)
	if err == nil {
		var content string
		content, _, err = s.chat(ctx, prompt)
		if err == nil {
			return ArticleSummary{Article: article, Summary: content, Success: true}
		}
	}

	s.logger.Debug("per-article summarization failed", "title", article.Title, "error", err)
	fallback := article.Title
	if article.ContentPreview != "" {
		fallback = article.ContentPreview
		if len(fallback) > previewFallbackLen {
			fallback = fallback[:previewFallbackLen]
		}
	}
	return ArticleSummary{Article: article, Summary: fallback, Success: false}
}

// SummarizeBatch summarizes each article individually. Articles are
// processed sequentially so a small local model is never hit by concurrent
// requests.
func (s *Summarizer) SummarizeBatch(ctx context.Context, articles []types.Article) []ArticleSummary {
	results := make([]ArticleSummary, 0, len(articles))
	for _, a := range articles {
		results = append(results, s.SummarizeArticle(ctx, a))
	}
	return results
}

// Model reports the configured model name.
func (s *Summarizer) Model() string {
	return s.cfg.Model
}
