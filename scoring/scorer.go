package scoring

import (
	"math"
	"time"

	"topicbot/classify"
	"topicbot/types"
)

// Scorer classifies raw entries and computes their composite score
type Scorer struct {
	table      Table
	categories classify.Table
}

// NewScorer creates a scorer from a category table and scoring constants
func NewScorer(categories classify.Table, table Table) *Scorer {
	return &Scorer{table: table.clone(), categories: categories}
}

// KeywordScore rewards keyword density for the assigned category, saturating at 1
func (s *Scorer) KeywordScore(text, category string) float64 {
	if !s.categories.Has(category) || s.table.KeywordSaturation <= 0 {
		return 0
	}
	matches := float64(s.categories.Matches(text, category))
	return math.Min(matches/s.table.KeywordSaturation, 1.0)
}

// RecencyScore is a step function of the entry's age at now
func (s *Scorer) RecencyScore(published *time.Time, now time.Time) float64 {
	if published == nil {
		return s.table.UnknownScore
	}
	age := now.Sub(*published)
	for _, step := range s.table.RecencySteps {
		if age < step.MaxAge {
			return step.Score
		}
	}
	return s.table.StaleScore
}

// Composite combines both sub-scores with the feed weight and rounds the result
func (s *Scorer) Composite(keywordScore, recencyScore, weight float64) float64 {
	total := (s.table.KeywordWeight*keywordScore + s.table.RecencyWeight*recencyScore) * weight
	return round(total, s.table.Precision)
}

// Score builds a ScoredTopic from a raw entry of src.
// ok is false when the title yields no usable keyword.
func (s *Scorer) Score(entry types.RawEntry, src types.FeedSource, now time.Time) (topic types.ScoredTopic, ok bool) {
	keyword := ExtractKeyword(entry.Title)
	if keyword == "" {
		return types.ScoredTopic{}, false
	}

	text := entry.Title + " " + entry.Summary
	category := s.categories.Classify(text)
	category = classify.ResolveCategory(category, src.Category, s.categories.Default())

	kw := s.KeywordScore(text, category)
	rec := s.RecencyScore(entry.Published, now)

	return types.ScoredTopic{
		Keyword:    keyword,
		Lang:       src.Language,
		Category:   category,
		Score:      s.Composite(kw, rec, src.Weight),
		SourceURL:  entry.Link,
		SourceFeed: src.Name,
		Published:  entry.Published,
	}, true
}

func round(v float64, precision int) float64 {
	p := math.Pow(10, float64(precision))
	return math.Round(v*p) / p
}
