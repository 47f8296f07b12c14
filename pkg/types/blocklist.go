// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// BlockedKeyword is a globally blocked term. Articles whose text contains
// the term are dropped before topic matching.
type BlockedKeyword struct {
	ID        int64     `json:"id"`
	Keyword   string    `json:"keyword"`
	CreatedAt time.Time `json:"created_at"`
}
