// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package summarize

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/pdiddy/digest-engine/pkg/types"
)

// batchPromptTmpl asks the model for a concise digest covering a batch of
// articles, 1-2 sentences each.
var batchPromptTmpl = template.Must(template.New("batch").Funcs(promptFuncs).Parse(`You are a tech news editor. Summarize the following articles into a concise daily digest. For each article, write 1-2 sentences capturing the key point. Group related topics when possible. Use a professional, informative tone.

{{range $i, $a := .Articles}}--- Article {{inc $i}} ---
Title: {{$a.Title}}
Source: {{$a.SourceName}}
URL: {{$a.URL}}
{{if $a.FullText}}Content: {{trunc $a.FullText 2000}}
{{else if $a.ContentPreview}}Preview: {{$a.ContentPreview}}
{{end}}
{{end}}Write the digest summary now. Keep it concise and scannable.`))

// overviewPromptTmpl asks for a 3-5 sentence executive summary built from
// per-topic headlines.
var overviewPromptTmpl = template.Must(template.New("overview").Parse(`You are a news editor writing a brief overview for a daily digest email. Write exactly 3-5 short sentences highlighting the most important stories across all topics below. Be direct and concise. No bullet points, no headers, just a flowing paragraph.

{{range .Topics}}Topic: {{.Topic}}
{{range .Headlines}}  - {{.}}
{{end}}
{{end}}Write the brief overview now (3-5 sentences max):`))

// articlePromptTmpl asks for a single factual sentence about one article.
var articlePromptTmpl = template.Must(template.New("article").Funcs(promptFuncs).Parse(`Summarize the following article in exactly 1 sentence (max 30 words). Be factual and direct. No filler words.

Title: {{.Title}}
Source: {{.SourceName}}
{{if .FullText}}Content:
{{trunc .FullText 3000}}
{{else if .ContentPreview}}Content:
{{.ContentPreview}}
{{else}}(No content available - summarize based on title)
{{end}}
Write exactly 1 sentence:`))

var promptFuncs = template.FuncMap{
	"inc": func(i int) int { return i + 1 },
	"trunc": func(s string, n int) string {
		if len(s) > n {
			return s[:n]
		}
		return s
	},
}

func buildBatchPrompt(articles []types.Article) (string, error) {
	var buf bytes.Buffer
	err := batchPromptTmpl.Execute(&buf, struct{ Articles []types.Article }{articles})
	if err != nil {
		return "", fmt.Errorf("rendering batch prompt: %w", err)
	}
	return buf.String(), nil
}

func buildOverviewPrompt(topics []TopicHeadlines) (string, error) {
	var buf bytes.Buffer
	err := overviewPromptTmpl.Execute(&buf, struct{ Topics []TopicHeadlines }{topics})
	if err != nil {
		return "", fmt.Errorf("rendering overview prompt: %w", err)
	}
	return buf.String(), nil
}

func buildArticlePrompt(article types.Article) (string, error) {
	var buf bytes.Buffer
	if err := articlePromptTmpl.Execute(&buf, article); err != nil {
		return "", fmt.Errorf("rendering article prompt: %w", err)
	}
	return buf.String(), nil
}
