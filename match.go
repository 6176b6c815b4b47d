package manualdex

import (
	"strings"
	"unicode/utf8"
)

// MinTokenLen is the minimum query token length considered for matching.
// Shorter tokens ("a", "to", error-code digits like "E1") are noise.
const MinTokenLen = 3

// brandModelWeight is the score awarded per token found in the structured
// brand/model fields. Content-derived metadata is a stronger signal than a
// raw filename, which scores 1 per token.
const brandModelWeight = 2

// MatchResult is the outcome of resolving a query against the catalog.
type MatchResult struct {
	Manual *Manual
	Score  int
}

// Tokenize normalizes a query to lowercase and splits it into matchable
// tokens, discarding tokens shorter than MinTokenLen.
func Tokenize(query string) []string {
	var tokens []string
	for _, tok := range strings.Fields(strings.ToLower(query)) {
		if utf8.RuneCountInString(tok) >= MinTokenLen {
			tokens = append(tokens, tok)
		}
	}
	return tokens
}

// FindBestMatch scores every catalog entry against the query and returns the
// best match, or nil if no entry scores above zero. A degenerate query
// (empty, or all tokens below MinTokenLen) returns nil.
//
// Scoring: one point per token that is a substring of the entry's display
// name or descriptive metadata, brandModelWeight points per token found in
// the structured brand/model fields. Ties are broken by catalog ID order so
// results are deterministic; callers decide what minimum score counts as a
// hit.
func FindBestMatch(query string, catalog Catalog) *MatchResult {
	tokens := Tokenize(query)
	if len(tokens) == 0 {
		return nil
	}

	var best *MatchResult
	for _, id := range catalog.SortedIDs() {
		m := catalog[id]
		score := scoreManual(tokens, m)
		if score > 0 && (best == nil || score > best.Score) {
			best = &MatchResult{Manual: m, Score: score}
		}
	}
	return best
}

func scoreManual(tokens []string, m *Manual) int {
	strong := strings.ToLower(m.Metadata.Brand + " " + m.Metadata.Model)
	weak := strings.ToLower(strings.Join([]string{
		m.DisplayName,
		string(m.Metadata.DocType),
		m.Metadata.DeviceCategory,
		m.Metadata.Description,
	}, " "))

	var score int
	for _, tok := range tokens {
		switch {
		case strings.Contains(strong, tok):
			score += brandModelWeight
		case strings.Contains(weak, tok):
			score++
		}
	}
	return score
}
