// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/pdiddy/digest-engine/pkg/types"
)

// TopicUpdate describes a partial topic update. Nil fields are left
// unchanged.
type TopicUpdate struct {
	Name            *string
	Keywords        *[]string
	IncludePatterns *[]string
	ExcludePatterns *[]string
	Priority        *int
	MaxArticles     *int
	Enabled         *bool
}

// CreateTopic inserts a new topic and returns it with its assigned ID.
// Topic names are unique; inserting a duplicate name fails.
func (s *Store) CreateTopic(t types.Topic) (types.Topic, error) {
	kw, ip, ep, err := marshalTopicLists(t)
	if err != nil {
		return types.Topic{}, err
	}
	maxArticles := t.MaxArticles
	if maxArticles <= 0 {
		maxArticles = 10
	}

	res, err := s.db.Exec(
		`INSERT INTO topics (name, keywords, include_patterns, exclude_patterns,
		 priority, max_articles, enabled, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		t.Name, kw, ip, ep, t.Priority, maxArticles, boolToInt(t.Enabled),
		formatTime(time.Now()),
	)
	if err != nil {
		return types.Topic{}, fmt.Errorf("inserting topic: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return types.Topic{}, fmt.Errorf("reading topic id: %w", err)
	}

	created, err := s.Topic(id)
	if err != nil {
		return types.Topic{}, err
	}
	if created == nil {
		return types.Topic{}, fmt.Errorf("topic %d vanished after insert", id)
	}
	return *created, nil
}

// Topic returns the topic with the given ID, or nil when it does not exist.
func (s *Store) Topic(id int64) (*types.Topic, error) {
	row := s.db.QueryRow(
		`SELECT id, name, keywords, include_patterns, exclude_patterns,
		 priority, max_articles, enabled, created_at FROM topics WHERE id = ?`, id)
	t, err := scanTopic(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading topic %d: %w", id, err)
	}
	return &t, nil
}

// Topics returns all topics ordered by priority (highest first), then ID.
// With enabledOnly set, disabled topics are omitted.
func (s *Store) Topics(enabledOnly bool) ([]types.Topic, error) {
	query := `SELECT id, name, keywords, include_patterns, exclude_patterns,
	          priority, max_articles, enabled, created_at
	          FROM topics ORDER BY priority DESC, id`
	if enabledOnly {
		query = `SELECT id, name, keywords, include_patterns, exclude_patterns,
		         priority, max_articles, enabled, created_at
		         FROM topics WHERE enabled = 1 ORDER BY priority DESC, id`
	}

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("listing topics: %w", err)
	}
	defer rows.Close()

	var topics []types.Topic
	for rows.Next() {
		t, err := scanTopic(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning topic: %w", err)
		}
		topics = append(topics, t)
	}
	return topics, rows.Err()
}

// UpdateTopic applies a partial update and returns the updated topic, or nil
// when the topic does not exist.
func (s *Store) UpdateTopic(id int64, upd TopicUpdate) (*types.Topic, error) {
	existing, err := s.Topic(id)
	if err != nil || existing == nil {
		return existing, err
	}

	var fields []string
	var values []any

	if upd.Name != nil {
		fields = append(fields, "name = ?")
		values = append(values, *upd.Name)
	}
	if upd.Keywords != nil {
		data, err := json.Marshal(*upd.Keywords)
		if err != nil {
			return nil, fmt.Errorf("marshaling keywords: %w", err)
		}
		fields = append(fields, "keywords = ?")
		values = append(values, string(data))
	}
	if upd.IncludePatterns != nil {
		data, err := json.Marshal(*upd.IncludePatterns)
		if err != nil {
			return nil, fmt.Errorf("marshaling include patterns: %w", err)
		}
		fields = append(fields, "include_patterns = ?")
		values = append(values, string(data))
	}
	if upd.ExcludePatterns != nil {
		data, err := json.Marshal(*upd.ExcludePatterns)
		if err != nil {
			return nil, fmt.Errorf("marshaling exclude patterns: %w", err)
		}
		fields = append(fields, "exclude_patterns = ?")
		values = append(values, string(data))
	}
	if upd.Priority != nil {
		fields = append(fields, "priority = ?")
		values = append(values, *upd.Priority)
	}
	if upd.MaxArticles != nil {
		fields = append(fields, "max_articles = ?")
		values = append(values, *upd.MaxArticles)
	}
	if upd.Enabled != nil {
		fields = append(fields, "enabled = ?")
		values = append(values, boolToInt(*upd.Enabled))
	}

	if len(fields) == 0 {
		return existing, nil
	}

	values = append(values, id)
	query := fmt.Sprintf("UPDATE topics SET %s WHERE id = ?", strings.Join(fields, ", "))
	if _, err := s.db.Exec(query, values...); err != nil {
		return nil, fmt.Errorf("updating topic %d: %w", id, err)
	}
	return s.Topic(id)
}

// DeleteTopic removes a topic. It reports whether a row was deleted.
func (s *Store) DeleteTopic(id int64) (bool, error) {
	res, err := s.db.Exec(`DELETE FROM topics WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("deleting topic %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func marshalTopicLists(t types.Topic) (kw, ip, ep string, err error) {
	kwData, err := json.Marshal(emptyIfNil(t.Keywords))
	if err != nil {
		return "", "", "", fmt.Errorf("marshaling keywords: %w", err)
	}
	ipData, err := json.Marshal(emptyIfNil(t.IncludePatterns))
	if err != nil {
		return "", "", "", fmt.Errorf("marshaling include patterns: %w", err)
	}
	epData, err := json.Marshal(emptyIfNil(t.ExcludePatterns))
	if err != nil {
		return "", "", "", fmt.Errorf("marshaling exclude patterns: %w", err)
	}
	return string(kwData), string(ipData), string(epData), nil
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func scanTopic(sc scanner) (types.Topic, error) {
	var (
		t          types.Topic
		kw, ip, ep string
		enabled    int
		createdAt  string
	)
	err := sc.Scan(&t.ID, &t.Name, &kw, &ip, &ep, &t.Priority, &t.MaxArticles,
		&enabled, &createdAt)
	if err != nil {
		return types.Topic{}, err
	}

	t.Enabled = enabled != 0
	t.CreatedAt = parseTime(createdAt)
	if err := json.Unmarshal([]byte(kw), &t.Keywords); err != nil {
		return types.Topic{}, fmt.Errorf("parsing keywords: %w", err)
	}
	if err := json.Unmarshal([]byte(ip), &t.IncludePatterns); err != nil {
		return types.Topic{}, fmt.Errorf("parsing include patterns: %w", err)
	}
	if err := json.Unmarshal([]byte(ep), &t.ExcludePatterns); err != nil {
		return types.Topic{}, fmt.Errorf("parsing exclude patterns: %w", err)
	}
	return t, nil
}
