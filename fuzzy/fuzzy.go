// Package fuzzy provides the approximate string matching used for enum
// canonicalization and free-text record filtering. User input routinely
// arrives misspelled; every match here is best-effort.
package fuzzy

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// DefaultThreshold is the minimum Ratio score a candidate must reach before
// it is accepted as a match. Overridable via FUZZY_MATCH_THRESHOLD.
const DefaultThreshold = 80

// Ratio returns a similarity score between a and b in [0, 100].
// 100 means equal; the score decreases as the edit distance grows relative
// to the longer string. The function is symmetric.
func Ratio(a, b string) int {
	if a == b {
		return 100
	}
	la := len([]rune(a))
	lb := len([]rune(b))
	if la == 0 || lb == 0 {
		return 0
	}
	longest := la
	if lb > longest {
		longest = lb
	}
	dist := levenshtein.ComputeDistance(a, b)
	if dist >= longest {
		return 0
	}
	return 100 - (100*dist+longest/2)/longest
}

// MatchBest returns the candidate with the highest case-insensitive Ratio
// against query, provided that score reaches threshold. Ties are broken by
// the earliest position in candidates. The second return is false when no
// candidate clears the threshold.
func MatchBest(query string, candidates []string, threshold int) (string, bool) {
	folded := strings.ToLower(query)
	best := -1
	bestScore := 0
	for i, c := range candidates {
		score := Ratio(folded, strings.ToLower(c))
		if score > bestScore {
			best = i
			bestScore = score
		}
	}
	if best < 0 || bestScore < threshold {
		return "", false
	}
	return candidates[best], true
}

// Match reports whether a and b are similar at or above threshold,
// case-insensitively. Used for free-text record fields.
func Match(a, b string, threshold int) bool {
	return Ratio(strings.ToLower(a), strings.ToLower(b)) >= threshold
}

// NormalizeAll maps each token to its closest canonical value. Tokens that
// match no canonical value at threshold are dropped, not passed through.
func NormalizeAll(tokens, canonical []string, threshold int) []string {
	if len(tokens) == 0 {
		return nil
	}
	normalized := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if m, ok := MatchBest(t, canonical, threshold); ok {
			normalized = append(normalized, m)
		}
	}
	return normalized
}
