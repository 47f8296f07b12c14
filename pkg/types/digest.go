// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// DigestEntry pairs an article with its summary text.
type DigestEntry struct {
	Article Article `json:"article"`
	Summary string  `json:"summary"`
}

// TopicSection groups digest entries under one topic.
type TopicSection struct {
	TopicName string        `json:"topic_name"`
	TopicID   int64         `json:"topic_id"`
	Entries   []DigestEntry `json:"entries"`
	Summary   string        `json:"summary,omitempty"`
}

// Digest is the final per-run artifact handed to the email composer and the
// digest log. Entries always carries the flat article list; TopicSections is
// populated when topics are configured.
type Digest struct {
	Entries       []DigestEntry  `json:"entries"`
	TopicSections []TopicSection `json:"topic_sections,omitempty"`

	// Summary is the overall free-text overview produced by the summarizer.
	Summary string `json:"summary"`

	// Model identifies the language model used for summarization.
	Model string `json:"model"`

	GeneratedAt time.Time `json:"generated_at"`

	// SourceCount is the number of enabled sources at fetch time.
	SourceCount int `json:"source_count"`

	// ArticleCount is the total article count after the blocklist filter,
	// before topic matching.
	ArticleCount int `json:"article_count"`
}

// EntryCount returns the number of digest entries for logging: the sum over
// topic sections, or the flat entry count when no section has entries.
func (d *Digest) EntryCount() int {
	n := 0
	for _, ts := range d.TopicSections {
		n += len(ts.Entries)
	}
	if n == 0 {
		return len(d.Entries)
	}
	return n
}

// Digest run statuses recorded in the digest log.
const (
	StatusSent        = "sent"
	StatusCompleted   = "completed"
	StatusEmailFailed = "email_failed"
)

// DigestLog records one pipeline run.
type DigestLog struct {
	ID           int64     `json:"id"`
	SentAt       time.Time `json:"sent_at"`
	Recipient    string    `json:"recipient"`
	SourceCount  int       `json:"source_count"`
	ArticleCount int       `json:"article_count"`
	EntryCount   int       `json:"entry_count"`
	Status       string    `json:"status"`
	Error        string    `json:"error,omitempty"`
}
