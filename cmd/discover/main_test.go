package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"topicbot/types"
)

func TestPrintDump(t *testing.T) {
	topics := []types.ScoredTopic{
		{Keyword: "Rust 2.0 roadmap", Lang: "en", Category: "tech", Score: 0.8456, SourceFeed: "HN"},
		{Keyword: "LLM の評価", Lang: "ja", Category: "ai", Score: 0.5, SourceFeed: "Zenn"},
		{Keyword: "cut", Lang: "en", Category: "tech", Score: 0.1, SourceFeed: "HN"},
	}

	var buf bytes.Buffer
	printDump(&buf, topics, 2)

	want := "  [0.846] [en] [tech] Rust 2.0 roadmap (HN)\n  [0.500] [ja] [ai] LLM の評価 (Zenn)\n"
	if got := buf.String(); got != want {
		t.Errorf("printDump =\n%q\nwant\n%q", got, want)
	}
}

func TestWriteJSONKeepsUnicodeAndMarkup(t *testing.T) {
	var buf bytes.Buffer
	topics := []types.ScoredTopic{{Keyword: "C++ <templates> & 型", Lang: "ja", Category: "tech", Score: 1}}
	if err := writeJSON(&buf, topics); err != nil {
		t.Fatalf("writeJSON: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "C++ <templates> & 型") {
		t.Errorf("keyword was escaped: %s", out)
	}
	if !strings.Contains(out, "\n  {") {
		t.Errorf("expected two-space indentation: %s", out)
	}

	var back []types.ScoredTopic
	if err := json.Unmarshal(buf.Bytes(), &back); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
}
