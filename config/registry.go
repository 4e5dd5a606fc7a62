package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"topicbot/types"

	"gopkg.in/yaml.v3"
)

// ErrNoFeeds is returned when a registry declares no feeds
var ErrNoFeeds = errors.New("config: no feeds configured")

// Settings are the global selection knobs of a registry
type Settings struct {
	MinScore        float64 `json:"min_score" yaml:"min_score"`
	DedupWindowDays int     `json:"dedup_window_days" yaml:"dedup_window_days"`
	JaEnRatio       []int   `json:"ja_en_ratio" yaml:"ja_en_ratio"`
}

// PrimaryPct returns the first element of the language ratio
func (s Settings) PrimaryPct() int {
	if len(s.JaEnRatio) == 0 {
		return DefaultPrimaryPct
	}
	return s.JaEnRatio[0]
}

// Registry is the feed configuration document
type Registry struct {
	Feeds    []types.FeedSource `json:"feeds" yaml:"feeds"`
	Settings Settings           `json:"settings" yaml:"settings"`
}

// rawRegistry keeps optional fields as pointers so absent values get defaults
type rawRegistry struct {
	Feeds []struct {
		Name     string   `json:"name" yaml:"name"`
		URL      string   `json:"url" yaml:"url"`
		Language string   `json:"language" yaml:"language"`
		Category string   `json:"category" yaml:"category"`
		Weight   *float64 `json:"weight" yaml:"weight"`
	} `json:"feeds" yaml:"feeds"`
	Settings struct {
		MinScore        *float64 `json:"min_score" yaml:"min_score"`
		DedupWindowDays *int     `json:"dedup_window_days" yaml:"dedup_window_days"`
		JaEnRatio       []int    `json:"ja_en_ratio" yaml:"ja_en_ratio"`
	} `json:"settings" yaml:"settings"`
}

// LoadRegistry reads a feed registry from a JSON or YAML file
func LoadRegistry(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParseRegistry(data, "yaml")
	default:
		return ParseRegistry(data, "json")
	}
}

// ParseRegistry decodes a registry document in the given format ("json" or "yaml")
func ParseRegistry(data []byte, format string) (*Registry, error) {
	var raw rawRegistry
	var err error
	if format == "yaml" {
		err = yaml.Unmarshal(data, &raw)
	} else {
		err = json.Unmarshal(data, &raw)
	}
	if err != nil {
		return nil, fmt.Errorf("config: parse %s registry: %w", format, err)
	}

	reg := &Registry{
		Settings: Settings{
			MinScore:        DefaultMinScore,
			DedupWindowDays: DefaultDedupWindowDays,
			JaEnRatio:       []int{DefaultPrimaryPct, DefaultSecondaryPct},
		},
	}
	if raw.Settings.MinScore != nil {
		reg.Settings.MinScore = *raw.Settings.MinScore
	}
	if raw.Settings.DedupWindowDays != nil {
		reg.Settings.DedupWindowDays = *raw.Settings.DedupWindowDays
	}
	if len(raw.Settings.JaEnRatio) > 0 {
		reg.Settings.JaEnRatio = raw.Settings.JaEnRatio
	}

	for _, f := range raw.Feeds {
		weight := DefaultWeight
		if f.Weight != nil {
			weight = *f.Weight
		}
		reg.Feeds = append(reg.Feeds, types.FeedSource{
			Name:     f.Name,
			URL:      f.URL,
			Language: f.Language,
			Category: f.Category,
			Weight:   weight,
		})
	}

	if err := reg.Validate(); err != nil {
		return nil, err
	}
	return reg, nil
}

// Validate checks the registry for values the pipeline cannot work with
func (r *Registry) Validate() error {
	if len(r.Feeds) == 0 {
		return ErrNoFeeds
	}
	for i, f := range r.Feeds {
		if strings.TrimSpace(f.Name) == "" {
			return fmt.Errorf("config: feed %d: name is required", i)
		}
		if strings.TrimSpace(f.URL) == "" {
			return fmt.Errorf("config: feed %q: url is required", f.Name)
		}
		if strings.TrimSpace(f.Language) == "" {
			return fmt.Errorf("config: feed %q: language is required", f.Name)
		}
		if f.Weight < 0 {
			return fmt.Errorf("config: feed %q: weight must be >= 0, got %v", f.Name, f.Weight)
		}
	}
	if p := r.Settings.PrimaryPct(); p < 0 || p > 100 {
		return fmt.Errorf("config: ja_en_ratio primary must be within 0..100, got %d", p)
	}
	if r.Settings.DedupWindowDays < 0 {
		return fmt.Errorf("config: dedup_window_days must be >= 0, got %d", r.Settings.DedupWindowDays)
	}
	return nil
}
