// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"fmt"
	"strings"
	"time"

	"github.com/pdiddy/digest-engine/pkg/types"
)

// AddBlockedKeyword inserts a blocked keyword and returns it with its
// assigned ID. Keywords are stored trimmed; duplicates fail.
func (s *Store) AddBlockedKeyword(keyword string) (types.BlockedKeyword, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return types.BlockedKeyword{}, fmt.Errorf("blocked keyword must not be empty")
	}

	now := time.Now()
	res, err := s.db.Exec(
		`INSERT INTO blocked_keywords (keyword, created_at) VALUES (?, ?)`,
		keyword, formatTime(now),
	)
	if err != nil {
		return types.BlockedKeyword{}, fmt.Errorf("inserting blocked keyword: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return types.BlockedKeyword{}, fmt.Errorf("reading blocked keyword id: %w", err)
	}
	return types.BlockedKeyword{ID: id, Keyword: keyword, CreatedAt: now.UTC()}, nil
}

// BlockedKeywords returns all blocked keywords ordered by ID.
func (s *Store) BlockedKeywords() ([]types.BlockedKeyword, error) {
	rows, err := s.db.Query(
		`SELECT id, keyword, created_at FROM blocked_keywords ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("listing blocked keywords: %w", err)
	}
	defer rows.Close()

	var keywords []types.BlockedKeyword
	for rows.Next() {
		var (
			bk        types.BlockedKeyword
			createdAt string
		)
		if err := rows.Scan(&bk.ID, &bk.Keyword, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning blocked keyword: %w", err)
		}
		bk.CreatedAt = parseTime(createdAt)
		keywords = append(keywords, bk)
	}
	return keywords, rows.Err()
}

// RemoveBlockedKeyword deletes a blocked keyword by ID. It reports whether a
// row was deleted.
func (s *Store) RemoveBlockedKeyword(id int64) (bool, error) {
	res, err := s.db.Exec(`DELETE FROM blocked_keywords WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("deleting blocked keyword %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
