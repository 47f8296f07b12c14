// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract pulls full article text out of web pages using
// readability-style heuristics: candidate containers are scored by tag,
// class hints, and paragraph density, and block text from the best
// candidate is assembled into cleaned plain text.
package extract

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/pdiddy/digest-engine/internal/httputil"
	"github.com/pdiddy/digest-engine/pkg/types"
)

// minWords is the threshold below which an extraction is considered failed.
const minWords = 20

var (
	contentClasses  = regexp.MustCompile(`(?i)article|post|entry|content|body|text|story|main`)
	negativeClasses = regexp.MustCompile(`(?i)comment|sidebar|footer|header|nav|menu|widget|ad|social|share|related|promo`)
)

var contentTags = map[string]bool{
	"article": true,
	"main":    true,
	"section": true,
}

const blockTags = "p, h1, h2, h3, h4, h5, h6, li, blockquote, pre"

// Result holds the outcome of one full-text extraction.
type Result struct {
	Text      string
	WordCount int
	Success   bool
}

// Extractor fetches article pages and extracts their body text.
type Extractor struct {
	client *http.Client
	cfg    types.ExtractConfig
}

// NewExtractor builds an Extractor. A nil client gets a default with the
// configured timeout.
func NewExtractor(cfg types.ExtractConfig, client *http.Client) *Extractor {
	if client == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 15 * time.Second
		}
		client = &http.Client{Timeout: timeout}
	}
	return &Extractor{client: client, cfg: cfg}
}

// Extract downloads the page at url and returns its article text. A page
// that yields fewer than the minimum word count comes back with
// Success=false alongside a nil error; transport and parse problems are
// returned as errors.
func (e *Extractor) Extract(ctx context.Context, url string) (Result, error) {
	raw, err := httputil.GetString(ctx, e.client, url, e.cfg.UserAgent)
	if err != nil {
		return Result{}, fmt.Errorf("fetching article %s: %w", url, err)
	}

	text, err := ArticleText(raw)
	if err != nil {
		return Result{}, fmt.Errorf("parsing article %s: %w", url, err)
	}

	words := len(strings.Fields(text))
	min := e.cfg.MinWords
	if min <= 0 {
		min = minWords
	}

	return Result{
		Text:      text,
		WordCount: words,
		Success:   words >= min,
	}, nil
}

// ArticleText extracts the article body from raw HTML. It strips script,
// style, and boilerplate chrome, scores the remaining containers, and
// returns joined block text from the highest-scoring one.
func ArticleText(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", err
	}

	doc.Find("script, style, nav, footer, header, aside").Remove()

	candidates := doc.Find("div, article, main, section")
	if candidates.Length() == 0 {
		return cleanText(doc.Find("body").Text()), nil
	}

	var best *goquery.Selection
	bestScore := 0.0
	candidates.Each(func(_ int, sel *goquery.Selection) {
		score := scoreElement(sel)
		if best == nil || score > bestScore {
			best = sel
			bestScore = score
		}
	})

	blocks := best.Find(blockTags)
	if blocks.Length() == 0 {
		return cleanText(best.Text()), nil
	}

	var parts []string
	blocks.Each(func(_ int, b *goquery.Selection) {
		if t := strings.TrimSpace(b.Text()); t != "" {
			parts = append(parts, t)
		}
	})
	return cleanText(strings.Join(parts, "\n")), nil
}

// scoreElement rates a container for likelihood of holding article content.
func scoreElement(sel *goquery.Selection) float64 {
	score := 0.0

	if contentTags[goquery.NodeName(sel)] {
		score += 30
	}

	class, _ := sel.Attr("class")
	id, _ := sel.Attr("id")
	combined := class + " " + id

	if contentClasses.MatchString(combined) {
		score += 25
	}
	if negativeClasses.MatchString(combined) {
		score -= 25
	}

	textLen := 0
	sel.Find("p").Each(func(_ int, p *goquery.Selection) {
		textLen += len(strings.TrimSpace(p.Text()))
	})
	bonus := float64(textLen) / 50
	if bonus > 50 {
		bonus = 50
	}
	score += bonus

	return score
}

// cleanText normalizes whitespace, joining non-empty lines with blank lines.
func cleanText(text string) string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n\n")
}
