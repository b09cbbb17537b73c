package dateutils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDayFirst(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
		wantErr  bool
	}{
		{"UK slashed", "15/01/2025", "2025-01-15", false},
		{"UK short", "5/1/2025", "2025-01-05", false},
		{"UK dashed", "15-01-2025", "2025-01-15", false},
		{"UK dotted", "15.01.2025", "2025-01-15", false},
		{"ISO", "2025-01-15", "2025-01-15", false},
		{"ISO with time", "2025-01-15 09:30:00", "2025-01-15", false},
		{"Surrounding whitespace", "  15/01/2025  ", "2025-01-15", false},
		{"Ambiguous resolves day first", "02/03/2025", "2025-03-02", false},
		{"Empty", "", "", true},
		{"Garbage", "not a date", "", true},
		{"Month out of range", "15/13/2025", "", true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			parsed, err := ParseDayFirst(tc.input)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, parsed.Format("2006-01-02"))
		})
	}
}

func TestMonthKey(t *testing.T) {
	date := time.Date(2025, time.March, 7, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, "2025-03", MonthKey(date))
}

func TestLatestMonthKey(t *testing.T) {
	assert.Equal(t, "", LatestMonthKey(nil))
	assert.Equal(t, "2025-03", LatestMonthKey([]string{"2024-12", "2025-03", "2025-01"}))
}

func TestRecentMonthKeys(t *testing.T) {
	keys := map[string]struct{}{
		"2024-11": {},
		"2025-01": {},
		"2024-12": {},
		"2025-02": {},
	}

	tests := []struct {
		name     string
		n        int
		expected []string
	}{
		{"Most recent three", 3, []string{"2025-02", "2025-01", "2024-12"}},
		{"Most recent one", 1, []string{"2025-02"}},
		{"Zero means all", 0, []string{"2025-02", "2025-01", "2024-12", "2024-11"}},
		{"More than available", 10, []string{"2025-02", "2025-01", "2024-12", "2024-11"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, RecentMonthKeys(keys, tc.n))
		})
	}
}
