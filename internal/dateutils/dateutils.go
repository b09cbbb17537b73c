// Package dateutils provides the date parsing and month-key helpers used by
// the import and aggregation stages.
package dateutils

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"
)

// Bank exports in scope use day-first textual dates. ISO is accepted as a
// tolerant extra because re-imported categorized output carries ISO dates.
const (
	DateLayoutUK       = "02/01/2006"
	DateLayoutUKShort  = "2/1/2006"
	DateLayoutUKDashed = "02-01-2006"
	DateLayoutUKDotted = "02.01.2006"
	DateLayoutISO      = "2006-01-02"
)

// dayFirstFormats is the parse order for ParseDayFirst. Day-first layouts
// come before ISO so ambiguous strings resolve the day/month/year way.
var dayFirstFormats = []string{
	DateLayoutUK,
	DateLayoutUKShort,
	DateLayoutUKDashed,
	DateLayoutUKDotted,
	DateLayoutISO,
	DateLayoutISO + " 15:04:05",
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// ParseDayFirst parses a day/month/year textual date, trying each supported
// layout in order.
func ParseDayFirst(dateStr string) (time.Time, error) {
	cleaned := whitespaceRun.ReplaceAllString(strings.TrimSpace(dateStr), " ")
	if cleaned == "" {
		return time.Time{}, fmt.Errorf("empty date string")
	}

	for _, format := range dayFirstFormats {
		if t, err := time.Parse(format, cleaned); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unable to parse date: %s", dateStr)
}

// MonthKey formats a date as its YYYY-MM month key. Month keys sort
// lexicographically in chronological order.
func MonthKey(date time.Time) string {
	return date.Format("2006-01")
}

// LatestMonthKey returns the lexicographically greatest month key, or ""
// for an empty input.
func LatestMonthKey(keys []string) string {
	latest := ""
	for _, key := range keys {
		if key > latest {
			latest = key
		}
	}
	return latest
}

// RecentMonthKeys returns the n most recent distinct month keys from the
// given set, most recent first.
func RecentMonthKeys(keys map[string]struct{}, n int) []string {
	sorted := make([]string, 0, len(keys))
	for key := range keys {
		sorted = append(sorted, key)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(sorted)))
	if n > 0 && len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}
