// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/pdiddy/digest-engine/pkg/types"
)

// AppendDigestLog records one digest run and returns the log entry's ID.
// A zero SentAt is filled with the current time.
func (s *Store) AppendDigestLog(log types.DigestLog) (int64, error) {
	sentAt := log.SentAt
	if sentAt.IsZero() {
		sentAt = time.Now()
	}

	var errVal any
	if log.Error != "" {
		errVal = log.Error
	}

	res, err := s.db.Exec(
		`INSERT INTO digest_logs (sent_at, recipient, source_count, article_count, entry_count, status, error)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		formatTime(sentAt), log.Recipient, log.SourceCount, log.ArticleCount,
		log.EntryCount, log.Status, errVal,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting digest log: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading digest log id: %w", err)
	}
	return id, nil
}

// DigestLogs returns the most recent digest logs, newest first.
func (s *Store) DigestLogs(limit int) ([]types.DigestLog, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.Query(
		`SELECT id, sent_at, recipient, source_count, article_count, entry_count, status, error
		 FROM digest_logs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing digest logs: %w", err)
	}
	defer rows.Close()

	var logs []types.DigestLog
	for rows.Next() {
		var (
			l      types.DigestLog
			sentAt string
			errStr sql.NullString
		)
		err := rows.Scan(&l.ID, &sentAt, &l.Recipient, &l.SourceCount,
			&l.ArticleCount, &l.EntryCount, &l.Status, &errStr)
		if err != nil {
			return nil, fmt.Errorf("scanning digest log: %w", err)
		}
		l.SentAt = parseTime(sentAt)
		l.Error = errStr.String
		logs = append(logs, l)
	}
	return logs, rows.Err()
}
