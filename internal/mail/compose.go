// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package mail renders the digest into email bodies and delivers them over
// SMTP. Every message carries both a plain-text and an HTML part.
package mail

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/pdiddy/digest-engine/pkg/types"
)

// Subject returns the email subject line for a digest.
func Subject(d *types.Digest) string {
	return "Daily Digest - " + d.GeneratedAt.Format("2006-01-02")
}

// ComposePlain renders the digest as plain text.
func ComposePlain(d *types.Digest) string {
	var b strings.Builder
	dateStr := d.GeneratedAt.Format("Monday, January 2, 2006")
	fmt.Fprintf(&b, "Daily Digest - %s\n", dateStr)
	fmt.Fprintf(&b, "%d articles from %d sources\n", d.ArticleCount, d.SourceCount)
	b.WriteString(strings.Repeat("=", 50) + "\n")

	if d.Summary != "" {
		b.WriteString("\n" + d.Summary + "\n")
	}

	switch {
	case len(d.TopicSections) > 0:
		for _, section := range d.TopicSections {
			if len(section.Entries) == 0 {
				continue
			}
			fmt.Fprintf(&b, "\n--- %s (%d) ---\n", section.TopicName, len(section.Entries))
			for _, entry := range section.Entries {
				fmt.Fprintf(&b, "  %s\n", entry.Article.Title)
				fmt.Fprintf(&b, "  %s\n", entry.Article.URL)
				fmt.Fprintf(&b, "  %s\n\n", entry.Summary)
			}
		}
	case len(d.Entries) > 0:
		b.WriteString("\n")
		for _, entry := range d.Entries {
			fmt.Fprintf(&b, "  %s\n", entry.Article.Title)
			fmt.Fprintf(&b, "  %s\n", entry.Article.URL)
			if entry.Summary != "" {
				fmt.Fprintf(&b, "  %s\n", entry.Summary)
			}
			b.WriteString("\n")
		}
	default:
		b.WriteString("\nNo articles were fetched today.\n")
	}

	b.WriteString(strings.Repeat("-", 50) + "\n")
	b.WriteString("Your Daily News Digest\n")
	return b.String()
}

var htmlTmpl = template.Must(template.New("digest").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<style>
  body { font-family: Georgia, serif; color: #222; max-width: 640px; margin: 0 auto; padding: 16px; }
  h1 { font-size: 22px; border-bottom: 2px solid #222; padding-bottom: 8px; }
  h2 { font-size: 17px; color: #444; margin-top: 28px; }
  .meta { color: #777; font-size: 13px; }
  .overview { background: #f6f6f2; padding: 12px 16px; border-left: 3px solid #999; white-space: pre-wrap; }
  .entry { margin: 14px 0; }
  .entry a { color: #1a4a8a; text-decoration: none; font-weight: bold; }
  .entry .source { color: #999; font-size: 12px; }
  .summary { margin: 4px 0 0; font-size: 14px; }
  .footer { margin-top: 32px; color: #999; font-size: 12px; border-top: 1px solid #ddd; padding-top: 8px; }
</style>
</head>
<body>
<h1>Daily Digest</h1>
<p class="meta">{{.Date}} &middot; {{.Digest.ArticleCount}} articles from {{.Digest.SourceCount}} sources</p>
{{if .Digest.Summary}}<div class="overview">{{.Digest.Summary}}</div>{{end}}
{{if .Digest.TopicSections}}{{range .Digest.TopicSections}}{{if .Entries}}
<h2>{{.TopicName}} ({{len .Entries}})</h2>
{{range .Entries}}<div class="entry">
  <a href="{{.Article.URL}}">{{.Article.Title}}</a>
  <span class="source">{{.Article.SourceName}}</span>
  <p class="summary">{{.Summary}}</p>
</div>
{{end}}{{end}}{{end}}{{else}}{{range .Digest.Entries}}<div class="entry">
  <a href="{{.Article.URL}}">{{.Article.Title}}</a>
  <span class="source">{{.Article.SourceName}}</span>
  {{if .Summary}}<p class="summary">{{.Summary}}</p>{{end}}
</div>
{{end}}{{end}}
<div class="footer">Your Daily News Digest</div>
</body>
</html>
`))

// ComposeHTML renders the digest as an HTML email body.
func ComposeHTML(d *types.Digest) (string, error) {
	var b strings.Builder
	data := struct {
		Digest *types.Digest
		Date   string
	}{
		Digest: d,
		Date:   d.GeneratedAt.Format("Monday, January 2, 2006"),
	}
	if err := htmlTmpl.Execute(&b, data); err != nil {
		return "", fmt.Errorf("rendering digest HTML: %w", err)
	}
	return b.String(), nil
}
