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

// SourceUpdate describes a partial source update. Nil fields are left
// unchanged.
type SourceUpdate struct {
	Name     *string
	Type     *types.SourceType
	URL      *string
	Category *string
	Config   *types.SourceConfig
	Enabled  *bool
	TopicIDs []int64
}

// CreateSource inserts a new source and returns it with its assigned ID.
func (s *Store) CreateSource(src types.Source) (types.Source, error) {
	cfgJSON, err := json.Marshal(src.Config)
	if err != nil {
		return types.Source{}, fmt.Errorf("marshaling source config: %w", err)
	}
	category := src.Category
	if category == "" {
		category = "general"
	}
	now := time.Now()

	res, err := s.db.Exec(
		`INSERT INTO sources (name, type, url, category, config, enabled, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		src.Name, string(src.Type), src.URL, category, string(cfgJSON),
		boolToInt(src.Enabled), formatTime(now),
	)
	if err != nil {
		return types.Source{}, fmt.Errorf("inserting source: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return types.Source{}, fmt.Errorf("reading source id: %w", err)
	}

	created, err := s.Source(id)
	if err != nil {
		return types.Source{}, err
	}
	if created == nil {
		return types.Source{}, fmt.Errorf("source %d vanished after insert", id)
	}
	return *created, nil
}

// Source returns the source with the given ID, or nil when it does not
// exist.
func (s *Store) Source(id int64) (*types.Source, error) {
	row := s.db.QueryRow(
		`SELECT id, name, type, url, category, config, enabled, created_at, last_fetched
		 FROM sources WHERE id = ?`, id)
	src, err := scanSource(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading source %d: %w", id, err)
	}
	return &src, nil
}

// Sources returns all sources ordered by ID. With enabledOnly set, disabled
// sources are omitted.
func (s *Store) Sources(enabledOnly bool) ([]types.Source, error) {
	query := `SELECT id, name, type, url, category, config, enabled, created_at, last_fetched
	          FROM sources ORDER BY id`
	if enabledOnly {
		query = `SELECT id, name, type, url, category, config, enabled, created_at, last_fetched
		         FROM sources WHERE enabled = 1 ORDER BY id`
	}

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("listing sources: %w", err)
	}
	defer rows.Close()

	var sources []types.Source
	for rows.Next() {
		src, err := scanSource(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning source: %w", err)
		}
		sources = append(sources, src)
	}
	return sources, rows.Err()
}

// UpdateSource applies a partial update and returns the updated source, or
// nil when the source does not exist.
func (s *Store) UpdateSource(id int64, upd SourceUpdate) (*types.Source, error) {
	existing, err := s.Source(id)
	if err != nil || existing == nil {
		return existing, err
	}

	var fields []string
	var values []any

	if upd.Name != nil {
		fields = append(fields, "name = ?")
		values = append(values, *upd.Name)
	}
	if upd.Type != nil {
		fields = append(fields, "type = ?")
		values = append(values, string(*upd.Type))
	}
	if upd.URL != nil {
		fields = append(fields, "url = ?")
		values = append(values, *upd.URL)
	}
	if upd.Category != nil {
		fields = append(fields, "category = ?")
		values = append(values, *upd.Category)
	}
	if upd.Config != nil {
		cfgJSON, err := json.Marshal(*upd.Config)
		if err != nil {
			return nil, fmt.Errorf("marshaling source config: %w", err)
		}
		fields = append(fields, "config = ?")
		values = append(values, string(cfgJSON))
	}
	if upd.Enabled != nil {
		fields = append(fields, "enabled = ?")
		values = append(values, boolToInt(*upd.Enabled))
	}

	if len(fields) > 0 {
		values = append(values, id)
		query := fmt.Sprintf("UPDATE sources SET %s WHERE id = ?", strings.Join(fields, ", "))
		if _, err := s.db.Exec(query, values...); err != nil {
			return nil, fmt.Errorf("updating source %d: %w", id, err)
		}
	}
	if upd.TopicIDs != nil {
		if err := s.SetSourceTopics(id, upd.TopicIDs); err != nil {
			return nil, err
		}
	}

	return s.Source(id)
}

// DeleteSource removes a source. It reports whether a row was deleted.
func (s *Store) DeleteSource(id int64) (bool, error) {
	res, err := s.db.Exec(`DELETE FROM sources WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("deleting source %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// MarkSourceFetched records a successful fetch time for a source.
func (s *Store) MarkSourceFetched(id int64, at time.Time) error {
	_, err := s.db.Exec(`UPDATE sources SET last_fetched = ? WHERE id = ?`, formatTime(at), id)
	if err != nil {
		return fmt.Errorf("marking source %d fetched: %w", id, err)
	}
	return nil
}

// SetSourceTopics replaces the topic associations for a source.
func (s *Store) SetSourceTopics(sourceID int64, topicIDs []int64) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM source_topics WHERE source_id = ?`, sourceID); err != nil {
		return fmt.Errorf("clearing source topics: %w", err)
	}
	for _, tid := range topicIDs {
		_, err := tx.Exec(
			`INSERT OR IGNORE INTO source_topics (source_id, topic_id) VALUES (?, ?)`,
			sourceID, tid,
		)
		if err != nil {
			return fmt.Errorf("linking source %d to topic %d: %w", sourceID, tid, err)
		}
	}
	return tx.Commit()
}

// TopicIDsForSource returns the topic IDs linked to a source, ordered.
func (s *Store) TopicIDsForSource(sourceID int64) ([]int64, error) {
	rows, err := s.db.Query(
		`SELECT topic_id FROM source_topics WHERE source_id = ? ORDER BY topic_id`, sourceID)
	if err != nil {
		return nil, fmt.Errorf("listing source topics: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanSource(sc scanner) (types.Source, error) {
	var (
		src         types.Source
		typeStr     string
		cfgJSON     string
		enabled     int
		createdAt   string
		lastFetched sql.NullString
	)
	err := sc.Scan(&src.ID, &src.Name, &typeStr, &src.URL, &src.Category,
		&cfgJSON, &enabled, &createdAt, &lastFetched)
	if err != nil {
		return types.Source{}, err
	}

	src.Type = types.SourceType(typeStr)
	src.Enabled = enabled != 0
	src.CreatedAt = parseTime(createdAt)
	if lastFetched.Valid {
		src.LastFetched = parseTime(lastFetched.String)
	}
	if err := json.Unmarshal([]byte(cfgJSON), &src.Config); err != nil {
		return types.Source{}, fmt.Errorf("parsing source config: %w", err)
	}
	return src, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
