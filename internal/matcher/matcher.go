// Package matcher locates tasks by partial description.
package matcher

import (
	"strings"

	"github.com/sahilm/fuzzy"
)

// Match is a candidate that fuzzily contains the query.
type Match struct {
	Index int
	Text  string
	Score int
	// Confidence is the score relative to the query matched against
	// itself, clamped to 0..100.
	Confidence int
}

// Score reports how well query matches candidate. ok is false when the
// query characters do not appear in order in candidate.
func Score(candidate, query string) (score int, ok bool) {
	matches := fuzzy.Find(query, []string{candidate})
	if len(matches) == 0 {
		return 0, false
	}
	return matches[0].Score, true
}

// Best returns the highest scoring candidate accepted by eligible. A nil
// eligible accepts every candidate. Ties go to the earlier candidate.
func Best(candidates []string, query string, eligible func(i int) bool) (Match, bool) {
	query = strings.TrimSpace(query)
	if query == "" {
		return Match{}, false
	}

	var best *fuzzy.Match
	for _, m := range fuzzy.Find(query, candidates) {
		if eligible != nil && !eligible(m.Index) {
			continue
		}
		if best == nil || m.Score > best.Score || (m.Score == best.Score && m.Index < best.Index) {
			best = &m
		}
	}
	if best == nil {
		return Match{}, false
	}
	return Match{
		Index:      best.Index,
		Text:       best.Str,
		Score:      best.Score,
		Confidence: confidence(best.Score, query),
	}, true
}

func confidence(score int, query string) int {
	ideal, ok := Score(query, query)
	if !ok || ideal <= 0 {
		return 0
	}
	pct := score * 100 / ideal
	switch {
	case pct < 0:
		return 0
	case pct > 100:
		return 100
	default:
		return pct
	}
}
