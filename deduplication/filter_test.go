package deduplication

import (
	"testing"
	"time"

	"topicbot/types"
)

var now = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

func topic(kw string, score float64) types.ScoredTopic {
	return types.ScoredTopic{Keyword: kw, Lang: "en", Category: "ai", Score: score}
}

func keywords(topics []types.ScoredTopic) []string {
	out := make([]string, len(topics))
	for i, tp := range topics {
		out[i] = tp.Keyword
	}
	return out
}

func TestParseHistoryDate(t *testing.T) {
	cases := []struct {
		name  string
		value string
		want  time.Time
		ok    bool
	}{
		{"aware with micros", "2025-03-09T21:00:00.123456+09:00", time.Date(2025, 3, 9, 12, 0, 0, 123456000, time.UTC), true},
		{"aware", "2025-03-09T21:00:00+09:00", time.Date(2025, 3, 9, 12, 0, 0, 0, time.UTC), true},
		{"naive is utc", "2025-03-09T21:00:00", time.Date(2025, 3, 9, 21, 0, 0, 0, time.UTC), true},
		{"date only", "2025-03-09", time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC), true},
		{"garbage", "yesterday", time.Time{}, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, ok := ParseHistoryDate(c.value)
			if ok != c.ok {
				t.Fatalf("ok = %v; want %v", ok, c.ok)
			}
			if ok && !got.Equal(c.want) {
				t.Fatalf("ParseHistoryDate(%q) = %v; want %v", c.value, got, c.want)
			}
		})
	}
}

func TestDeduplicateExistingContent(t *testing.T) {
	index := ContentIndex{}
	index.Add("whats-new-in-rust")

	got := Deduplicate([]types.ScoredTopic{topic("What's new in Rust", 0.9), topic("Go tips", 0.8)}, index, nil, 7, now)
	if kws := keywords(got); len(kws) != 1 || kws[0] != "Go tips" {
		t.Fatalf("got %v; want [Go tips]", kws)
	}
}

func TestDeduplicateHistoryWindow(t *testing.T) {
	history := []types.HistoryRecord{
		{Keyword: "recent topic", Date: now.Add(-2 * 24 * time.Hour).In(time.FixedZone("JST", 9*3600)).Format(time.RFC3339)},
		{Keyword: "OLD TOPIC", Date: now.Add(-8 * 24 * time.Hour).Format(time.RFC3339)},
		{Keyword: "naive recent", Date: now.Add(-time.Hour).Format("2006-01-02T15:04:05")},
		{Keyword: "broken date", Date: "not a date"},
	}
	topics := []types.ScoredTopic{
		topic("Recent Topic", 0.9),
		topic("old topic", 0.8),
		topic("Naive Recent", 0.7),
		topic("broken date", 0.6),
	}

	got := keywords(Deduplicate(topics, ContentIndex{}, history, 7, now))
	want := []string{"old topic", "broken date"}
	if len(got) != len(want) {
		t.Fatalf("got %v; want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v; want %v", got, want)
		}
	}
}

func TestDeduplicateIntraBatchKeepsFirst(t *testing.T) {
	topics := []types.ScoredTopic{
		topic("Same Thing", 0.9),
		topic("other", 0.8),
		topic("same thing", 0.7),
	}
	got := Deduplicate(topics, ContentIndex{}, nil, 7, now)
	if len(got) != 2 || got[0].Score != 0.9 || got[1].Keyword != "other" {
		t.Fatalf("unexpected result: %+v", got)
	}
}

func TestDeduplicateSecondRunHasNoOverlap(t *testing.T) {
	topics := []types.ScoredTopic{topic("a", 0.9), topic("b", 0.8), topic("c", 0.7)}

	first := Deduplicate(topics, ContentIndex{}, nil, 7, now)
	var history []types.HistoryRecord
	for _, tp := range first {
		history = append(history, types.HistoryRecord{Keyword: tp.Keyword, Date: now.Format(time.RFC3339)})
	}

	second := Deduplicate(topics, ContentIndex{}, history, 7, now.Add(time.Hour))
	if len(second) != 0 {
		t.Fatalf("second run returned %v; want none", keywords(second))
	}
}
