package deduplication

import (
	"strings"
	"time"

	"topicbot/types"
)

// historyLayouts are tried in order when parsing a history record date
var historyLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseHistoryDate parses an ISO 8601 date. Dates without a zone are UTC.
func ParseHistoryDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	for _, layout := range historyLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// RecentKeywords returns the lower-cased keywords of records dated after now - window.
// Records with an unparseable date are ignored.
func RecentKeywords(history []types.HistoryRecord, window time.Duration, now time.Time) map[string]struct{} {
	cutoff := now.Add(-window)
	recent := make(map[string]struct{})
	for _, h := range history {
		if h.Keyword == "" {
			continue
		}
		date, ok := ParseHistoryDate(h.Date)
		if !ok {
			continue
		}
		if date.After(cutoff) {
			recent[strings.ToLower(h.Keyword)] = struct{}{}
		}
	}
	return recent
}

// Deduplicate drops topics whose slug is already published, whose keyword
// was selected within the window, or that repeat an earlier topic of the
// same batch. Topics must arrive sorted by descending score so the best
// duplicate wins. Order is preserved.
func Deduplicate(topics []types.ScoredTopic, index ContentIndex, history []types.HistoryRecord, windowDays int, now time.Time) []types.ScoredTopic {
	recent := RecentKeywords(history, time.Duration(windowDays)*24*time.Hour, now)
	seen := make(map[string]struct{}, len(topics))
	result := make([]types.ScoredTopic, 0, len(topics))

	for _, topic := range topics {
		kw := strings.ToLower(topic.Keyword)
		if index.Has(Slugify(kw)) {
			continue
		}
		if _, ok := recent[kw]; ok {
			continue
		}
		if _, ok := seen[kw]; ok {
			continue
		}
		seen[kw] = struct{}{}
		result = append(result, topic)
	}

	return result
}
