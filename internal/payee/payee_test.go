package payee

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeKey(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"Lowercases", "NETFLIX", "netflix"},
		{"Strips punctuation without spacing", "NETFLIX.COM", "netflixcom"},
		{"Keeps ampersand and plus", "M&S Simply Food+", "m&s simply food+"},
		{"Keeps digits", "Tesco Stores 1234", "tesco stores 1234"},
		{"Collapses whitespace runs", "  Tesco   Stores\t1234  ", "tesco stores 1234"},
		{"Strips accented characters", "Café Nero", "caf nero"},
		{"Empty input", "", ""},
		{"Only stripped characters", "***!!!", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, NormalizeKey(tc.input))
		})
	}
}

func TestNormalizeKeyIdempotent(t *testing.T) {
	inputs := []string{
		"NETFLIX.COM",
		"  Tesco   Stores  1234 ",
		"M&S Simply Food",
		"Café Nero",
		"",
		"already normalized key 42",
	}

	for _, input := range inputs {
		once := NormalizeKey(input)
		assert.Equal(t, once, NormalizeKey(once), "normalize(normalize(%q))", input)
	}
}

func TestSimilarityRatio(t *testing.T) {
	tests := []struct {
		name     string
		a        string
		b        string
		expected float64
	}{
		{"Identical", "netflix", "netflix", 1.0},
		{"Left empty", "", "x", 0.0},
		{"Right empty", "x", "", 0.0},
		{"Both empty", "", "", 0.0},
		{"Single substitution", "abcd", "abed", 0.75}, // LCS "abd" = 3, 2*3/8
		{"Disjoint", "abc", "xyz", 0.0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.expected, SimilarityRatio(tc.a, tc.b), 1e-9)
		})
	}
}

func TestSimilarityRatioSymmetric(t *testing.T) {
	pairs := [][2]string{
		{"tesco stores 1234", "tesco stores 124"},
		{"netflix", "netflixcom"},
		{"a", "abcdefgh"},
		{"spotify", "shopify"},
	}

	for _, pair := range pairs {
		assert.Equal(t, SimilarityRatio(pair[0], pair[1]), SimilarityRatio(pair[1], pair[0]),
			"ratio(%q,%q)", pair[0], pair[1])
	}
}

func TestSimilarityRatioNearDuplicate(t *testing.T) {
	// One dropped digit keeps the ratio well above the propagation
	// threshold.
	ratio := SimilarityRatio("tesco stores 1234", "tesco stores 124")
	assert.Greater(t, ratio, 0.88)
	assert.Less(t, ratio, 1.0)
}
