package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseRegistryDefaults(t *testing.T) {
	reg, err := ParseRegistry([]byte(`{"feeds":[{"name":"HN","url":"https://hnrss.org/frontpage","language":"en"}]}`), "json")
	if err != nil {
		t.Fatalf("ParseRegistry: %v", err)
	}
	if reg.Feeds[0].Weight != DefaultWeight {
		t.Errorf("weight = %v, want %v", reg.Feeds[0].Weight, DefaultWeight)
	}
	if reg.Settings.MinScore != DefaultMinScore {
		t.Errorf("min_score = %v", reg.Settings.MinScore)
	}
	if reg.Settings.DedupWindowDays != DefaultDedupWindowDays {
		t.Errorf("dedup_window_days = %v", reg.Settings.DedupWindowDays)
	}
	if reg.Settings.PrimaryPct() != DefaultPrimaryPct {
		t.Errorf("primary pct = %v", reg.Settings.PrimaryPct())
	}
}

func TestParseRegistryExplicitZeroes(t *testing.T) {
	doc := `{"feeds":[{"name":"a","url":"u","language":"ja","weight":0}],"settings":{"min_score":0,"dedup_window_days":0,"ja_en_ratio":[0,100]}}`
	reg, err := ParseRegistry([]byte(doc), "json")
	if err != nil {
		t.Fatalf("ParseRegistry: %v", err)
	}
	if reg.Feeds[0].Weight != 0 || reg.Settings.MinScore != 0 || reg.Settings.DedupWindowDays != 0 {
		t.Errorf("explicit zeroes were replaced by defaults: %+v", reg)
	}
	if reg.Settings.PrimaryPct() != 0 {
		t.Errorf("primary pct = %d, want 0", reg.Settings.PrimaryPct())
	}
}

func TestParseRegistryYAML(t *testing.T) {
	doc := `
feeds:
  - name: Zenn
    url: https://zenn.dev/feed
    language: ja
    category: tech
    weight: 0.5
settings:
  min_score: 0.4
  ja_en_ratio: [70, 30]
`
	reg, err := ParseRegistry([]byte(doc), "yaml")
	if err != nil {
		t.Fatalf("ParseRegistry: %v", err)
	}
	f := reg.Feeds[0]
	if f.Name != "Zenn" || f.Language != "ja" || f.Category != "tech" || f.Weight != 0.5 {
		t.Errorf("feed = %+v", f)
	}
	if reg.Settings.MinScore != 0.4 || reg.Settings.PrimaryPct() != 70 {
		t.Errorf("settings = %+v", reg.Settings)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{"no feeds", `{"feeds":[]}`, "no feeds"},
		{"missing name", `{"feeds":[{"url":"u"}]}`, "name is required"},
		{"missing url", `{"feeds":[{"name":"a"}]}`, "url is required"},
		{"missing language", `{"feeds":[{"name":"a","url":"u"}]}`, "language is required"},
		{"blank language", `{"feeds":[{"name":"a","url":"u","language":"  "}]}`, "language is required"},
		{"negative weight", `{"feeds":[{"name":"a","url":"u","language":"en","weight":-1}]}`, "weight"},
		{"ratio out of range", `{"feeds":[{"name":"a","url":"u","language":"en"}],"settings":{"ja_en_ratio":[120,-20]}}`, "ja_en_ratio"},
		{"negative window", `{"feeds":[{"name":"a","url":"u","language":"en"}],"settings":{"dedup_window_days":-1}}`, "dedup_window_days"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseRegistry([]byte(tt.doc), "json")
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}

	if _, err := ParseRegistry([]byte(`{}`), "json"); !errors.Is(err, ErrNoFeeds) {
		t.Errorf("expected ErrNoFeeds, got %v", err)
	}
}

func TestLoadRegistryByExtension(t *testing.T) {
	dir := t.TempDir()
	yamlPath := filepath.Join(dir, "feeds.yml")
	if err := os.WriteFile(yamlPath, []byte("feeds:\n  - name: a\n    url: u\n    language: en\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadRegistry(yamlPath); err != nil {
		t.Errorf("LoadRegistry(yaml): %v", err)
	}

	if _, err := LoadRegistry(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestBundledRegistry(t *testing.T) {
	reg, err := LoadRegistry("feeds.json")
	if err != nil {
		t.Fatalf("LoadRegistry: %v", err)
	}
	langs := map[string]bool{}
	for _, f := range reg.Feeds {
		langs[f.Language] = true
	}
	if !langs[PrimaryLanguage] || !langs[SecondaryLanguage] {
		t.Errorf("bundled feeds should cover %s and %s, got %v", PrimaryLanguage, SecondaryLanguage, langs)
	}
}
