// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/digest-engine/pkg/types"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(types.StoreConfig{Path: filepath.Join(t.TempDir(), "digest.db")})
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSourceCRUD(t *testing.T) {
	s := newTestStore(t)

	created, err := s.CreateSource(types.Source{
		Name:    "hn",
		Type:    types.SourceRSS,
		URL:     "https://news.ycombinator.com/rss",
		Config:  types.SourceConfig{MaxItems: 20},
		Enabled: true,
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, "general", created.Category)
	assert.Equal(t, 20, created.Config.MaxItems)
	assert.False(t, created.CreatedAt.IsZero())
	assert.True(t, created.LastFetched.IsZero())

	got, err := s.Source(created.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "hn", got.Name)

	missing, err := s.Source(9999)
	require.NoError(t, err)
	assert.Nil(t, missing)

	newName := "hackernews"
	enabled := false
	updated, err := s.UpdateSource(created.ID, SourceUpdate{Name: &newName, Enabled: &enabled})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, "hackernews", updated.Name)
	assert.False(t, updated.Enabled)
	assert.Equal(t, types.SourceRSS, updated.Type)

	deleted, err := s.DeleteSource(created.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = s.DeleteSource(created.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestSourcesEnabledOnly(t *testing.T) {
	s := newTestStore(t)

	_, err := s.CreateSource(types.Source{Name: "on", Type: types.SourceRSS, URL: "https://a.test/rss", Enabled: true})
	require.NoError(t, err)
	_, err = s.CreateSource(types.Source{Name: "off", Type: types.SourceWeb, URL: "https://b.test", Enabled: false})
	require.NoError(t, err)

	all, err := s.Sources(false)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	enabled, err := s.Sources(true)
	require.NoError(t, err)
	require.Len(t, enabled, 1)
	assert.Equal(t, "on", enabled[0].Name)
}

func TestMarkSourceFetched(t *testing.T) {
	s := newTestStore(t)

	src, err := s.CreateSource(types.Source{Name: "r", Type: types.SourceReddit, URL: "golang", Enabled: true})
	require.NoError(t, err)

	at := time.Date(2026, 3, 14, 7, 0, 0, 0, time.UTC)
	require.NoError(t, s.MarkSourceFetched(src.ID, at))

	got, err := s.Source(src.ID)
	require.NoError(t, err)
	assert.True(t, got.LastFetched.Equal(at))
}

func TestTopicCRUD(t *testing.T) {
	s := newTestStore(t)

	created, err := s.CreateTopic(types.Topic{
		Name:     "AI",
		Keywords: []string{"llm", "machine learning"},
		Priority: 50,
		Enabled:  true,
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, []string{"llm", "machine learning"}, created.Keywords)
	assert.Equal(t, 10, created.MaxArticles)
	assert.Empty(t, created.IncludePatterns)

	// Names are unique.
	_, err = s.CreateTopic(types.Topic{Name: "AI", Enabled: true})
	assert.Error(t, err)

	prio := 80
	kw := []string{"llm"}
	updated, err := s.UpdateTopic(created.ID, TopicUpdate{Priority: &prio, Keywords: &kw})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, 80, updated.Priority)
	assert.Equal(t, []string{"llm"}, updated.Keywords)

	unchanged, err := s.UpdateTopic(created.ID, TopicUpdate{})
	require.NoError(t, err)
	assert.Equal(t, updated, unchanged)

	deleted, err := s.DeleteTopic(created.ID)
	require.NoError(t, err)
	assert.True(t, deleted)
}

func TestTopicsOrderedByPriority(t *testing.T) {
	s := newTestStore(t)

	_, err := s.CreateTopic(types.Topic{Name: "low", Priority: 10, Enabled: true})
	require.NoError(t, err)
	_, err = s.CreateTopic(types.Topic{Name: "high", Priority: 90, Enabled: true})
	require.NoError(t, err)
	_, err = s.CreateTopic(types.Topic{Name: "off", Priority: 99, Enabled: false})
	require.NoError(t, err)

	topics, err := s.Topics(true)
	require.NoError(t, err)
	require.Len(t, topics, 2)
	assert.Equal(t, "high", topics[0].Name)
	assert.Equal(t, "low", topics[1].Name)
}

func TestBlockedKeywords(t *testing.T) {
	s := newTestStore(t)

	bk, err := s.AddBlockedKeyword("  spoilers ")
	require.NoError(t, err)
	assert.Equal(t, "spoilers", bk.Keyword)

	_, err = s.AddBlockedKeyword("spoilers")
	assert.Error(t, err, "duplicates are rejected")

	_, err = s.AddBlockedKeyword("   ")
	assert.Error(t, err)

	_, err = s.AddBlockedKeyword("celebrity gossip")
	require.NoError(t, err)

	keywords, err := s.BlockedKeywords()
	require.NoError(t, err)
	require.Len(t, keywords, 2)
	assert.Equal(t, "spoilers", keywords[0].Keyword)

	removed, err := s.RemoveBlockedKeyword(bk.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = s.RemoveBlockedKeyword(bk.ID)
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestSettings(t *testing.T) {
	s := newTestStore(t)

	val, err := s.Setting("filter_scope", "title_preview")
	require.NoError(t, err)
	assert.Equal(t, "title_preview", val)

	require.NoError(t, s.SetSetting("filter_scope", "full_text"))
	val, err = s.Setting("filter_scope", "title_preview")
	require.NoError(t, err)
	assert.Equal(t, "full_text", val)

	require.NoError(t, s.SetSetting("filter_scope", "title_preview"))
	val, err = s.Setting("filter_scope", "full_text")
	require.NoError(t, err)
	assert.Equal(t, "title_preview", val)
}

func TestDigestLogs(t *testing.T) {
	s := newTestStore(t)

	id1, err := s.AppendDigestLog(types.DigestLog{
		Recipient:    "reader@example.test",
		SourceCount:  3,
		ArticleCount: 42,
		EntryCount:   12,
		Status:       types.StatusSent,
	})
	require.NoError(t, err)
	assert.NotZero(t, id1)

	_, err = s.AppendDigestLog(types.DigestLog{
		Status: types.StatusEmailFailed,
		Error:  "smtp timeout",
	})
	require.NoError(t, err)

	logs, err := s.DigestLogs(10)
	require.NoError(t, err)
	require.Len(t, logs, 2)

	// Newest first.
	assert.Equal(t, types.StatusEmailFailed, logs[0].Status)
	assert.Equal(t, "smtp timeout", logs[0].Error)
	assert.Equal(t, types.StatusSent, logs[1].Status)
	assert.Equal(t, 42, logs[1].ArticleCount)
	assert.False(t, logs[1].SentAt.IsZero())

	limited, err := s.DigestLogs(1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestSourceTopicLinks(t *testing.T) {
	s := newTestStore(t)

	src, err := s.CreateSource(types.Source{Name: "s", Type: types.SourceRSS, URL: "https://a.test/rss", Enabled: true})
	require.NoError(t, err)
	t1, err := s.CreateTopic(types.Topic{Name: "one", Enabled: true})
	require.NoError(t, err)
	t2, err := s.CreateTopic(types.Topic{Name: "two", Enabled: true})
	require.NoError(t, err)

	require.NoError(t, s.SetSourceTopics(src.ID, []int64{t2.ID, t1.ID}))

	ids, err := s.TopicIDsForSource(src.ID)
	require.NoError(t, err)
	assert.Equal(t, []int64{t1.ID, t2.ID}, ids)

	// Replacing drops old links.
	require.NoError(t, s.SetSourceTopics(src.ID, []int64{t1.ID}))
	ids, err = s.TopicIDsForSource(src.ID)
	require.NoError(t, err)
	assert.Equal(t, []int64{t1.ID}, ids)

	// Deleting the topic cascades.
	_, err = s.DeleteTopic(t1.ID)
	require.NoError(t, err)
	ids, err = s.TopicIDsForSource(src.ID)
	require.NoError(t, err)
	assert.Empty(t, ids)
}
