package types

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// FeedSource describes one syndicated feed in the registry
type FeedSource struct {
	Name     string  `json:"name" yaml:"name"`
	URL      string  `json:"url" yaml:"url"`
	Language string  `json:"language" yaml:"language"`
	Category string  `json:"category" yaml:"category"`
	Weight   float64 `json:"weight" yaml:"weight"`
}

// RawEntry is a single parsed feed item before scoring
type RawEntry struct {
	Title     string     `json:"title"`
	Summary   string     `json:"summary"`
	Link      string     `json:"link"`
	Published *time.Time `json:"published,omitempty"`
}

// ScoredTopic is a candidate topic after classification and scoring
type ScoredTopic struct {
	Keyword    string     `json:"keyword"`
	Lang       string     `json:"lang"`
	Category   string     `json:"category"`
	Score      float64    `json:"score"`
	SourceURL  string     `json:"source_url"`
	SourceFeed string     `json:"source_feed"`
	Published  *time.Time `json:"published"`
}

// HistoryRecord is one previously selected topic
type HistoryRecord struct {
	Keyword  string `json:"keyword"`
	Lang     string `json:"lang"`
	Category string `json:"category"`
	Date     string `json:"date"`
}

// HistoryDocument is the on-disk shape of the history log
type HistoryDocument struct {
	Generated []HistoryRecord `json:"generated"`
}

// SourceArticle is a feed item picked for summarization
type SourceArticle struct {
	ID              string  `json:"id"`
	Title           string  `json:"title"`
	URL             string  `json:"url"`
	Lang            string  `json:"lang"`
	Category        string  `json:"category"`
	Feed            string  `json:"feed"`
	Weight          float64 `json:"weight"`
	Text            string  `json:"text,omitempty"`
	ExtractionError string  `json:"extraction_error,omitempty"`
}

// GenerateID creates a short, stable ID from a URL
func GenerateID(url string) string {
	hash := sha256.Sum256([]byte(url))
	return hex.EncodeToString(hash[:])[:16]
}
