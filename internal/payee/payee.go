// Package payee canonicalizes payee display names into stable matching keys
// and scores name similarity for fuzzy category propagation.
package payee

import "strings"

// NormalizeKey canonicalizes a raw payee name: lower-case, strip every
// character outside [a-z0-9+& ], collapse whitespace runs, trim. The result
// is the stable join key for all grouping and override operations, so it is
// a pure function of its input.
func NormalizeKey(raw string) string {
	lower := strings.ToLower(raw)

	var b strings.Builder
	b.Grow(len(lower))
	for _, r := range lower {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '+', r == '&', r == ' ':
			b.WriteRune(r)
		}
	}

	return strings.Join(strings.Fields(b.String()), " ")
}

// SimilarityRatio computes the longest-common-subsequence ratio between two
// strings: 2*LCS(a,b) / (len(a)+len(b)). Identical strings score 1.0; if
// either string is empty the score is 0.0. The ratio is symmetric.
func SimilarityRatio(a, b string) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0.0
	}
	if a == b {
		return 1.0
	}

	lcs := lcsLength(a, b)
	return 2.0 * float64(lcs) / float64(len(a)+len(b))
}

// lcsLength computes LCS length with a rolling two-row table, O(len(a)*len(b))
// time and O(len(b)) space.
func lcsLength(a, b string) int {
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)

	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			if a[i-1] == b[j-1] {
				curr[j] = prev[j-1] + 1
			} else if prev[j] >= curr[j-1] {
				curr[j] = prev[j]
			} else {
				curr[j] = curr[j-1]
			}
		}
		prev, curr = curr, prev
	}

	return prev[len(b)]
}
