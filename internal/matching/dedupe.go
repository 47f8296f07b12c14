// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package matching

import "github.com/pdiddy/digest-engine/pkg/types"

// dupCandidate is one occurrence of a URL under a topic.
type dupCandidate struct {
	topicID  int64
	score    float64
	priority int
	name     string
}

// Deduplicate resolves articles matched under several topics to a single
// winning topic. The winner for a shared URL is the candidate with the
// highest score; ties go to the higher topic priority, then to the
// lexically smallest topic name. The explicit sort key makes the outcome
// independent of map iteration order.
//
// Unlike Match, a topic that loses all of its articles stays in the result
// with an empty list.
func Deduplicate(matches map[int64][]ScoredArticle, topics map[int64]types.Topic) map[int64][]ScoredArticle {
	byURL := make(map[string][]dupCandidate)
	for topicID, scored := range matches {
		topic := topics[topicID]
		for _, sa := range scored {
			byURL[sa.Article.URL] = append(byURL[sa.Article.URL], dupCandidate{
				topicID:  topicID,
				score:    sa.Score,
				priority: topic.Priority,
				name:     topic.Name,
			})
		}
	}

	// remove[topicID][url] marks losing occurrences.
	remove := make(map[int64]map[string]bool)
	for url, candidates := range byURL {
		if len(candidates) < 2 {
			continue
		}
		winner := candidates[0]
		for _, c := range candidates[1:] {
			if c.beats(winner) {
				winner = c
			}
		}
		for _, c := range candidates {
			if c.topicID == winner.topicID {
				continue
			}
			if remove[c.topicID] == nil {
				remove[c.topicID] = make(map[string]bool)
			}
			remove[c.topicID][url] = true
		}
	}

	result := make(map[int64][]ScoredArticle, len(matches))
	for topicID, scored := range matches {
		kept := make([]ScoredArticle, 0, len(scored))
		for _, sa := range scored {
			if remove[topicID][sa.Article.URL] {
				continue
			}
			kept = append(kept, sa)
		}
		result[topicID] = kept
	}
	return result
}

// beats reports whether c wins over other under the (score, priority, name)
// tie-break chain.
func (c dupCandidate) beats(other dupCandidate) bool {
	if c.score != other.score {
		return c.score > other.score
	}
	if c.priority != other.priority {
		return c.priority > other.priority
	}
	return c.name < other.name
}
