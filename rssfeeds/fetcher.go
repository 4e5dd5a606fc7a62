package rssfeeds

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"topicbot/config"
	"topicbot/types"

	"github.com/mmcdole/gofeed"
	"github.com/rs/zerolog"
)

// FetcherConfig tunes how feeds are retrieved
type FetcherConfig struct {
	// Limit caps the items taken from each feed
	Limit int
	// Delay is the pause between consecutive feeds
	Delay time.Duration
	// Timeout bounds a single feed request
	Timeout   time.Duration
	UserAgent string
}

// DefaultFetcherConfig returns the production fetch settings
func DefaultFetcherConfig() FetcherConfig {
	return FetcherConfig{
		Limit:     config.MaxEntriesPerFeed,
		Delay:     config.FeedDelay,
		Timeout:   config.FeedTimeout,
		UserAgent: config.UserAgent,
	}
}

// FeedBatch holds the entries one feed produced
type FeedBatch struct {
	Source  types.FeedSource
	Entries []types.RawEntry
}

// Fetcher retrieves feeds one at a time
type Fetcher struct {
	cfg    FetcherConfig
	parser *gofeed.Parser
	logger zerolog.Logger
}

// NewFetcher creates a sequential feed fetcher
func NewFetcher(cfg FetcherConfig, logger zerolog.Logger) *Fetcher {
	parser := gofeed.NewParser()
	parser.UserAgent = cfg.UserAgent
	parser.Client = &http.Client{Timeout: cfg.Timeout}

	return &Fetcher{
		cfg:    cfg,
		parser: parser,
		logger: logger.With().Str("component", "fetcher").Logger(),
	}
}

// FetchFeed retrieves and parses one feed, returning at most Limit entries in feed order
func (f *Fetcher) FetchFeed(ctx context.Context, src types.FeedSource) ([]types.RawEntry, error) {
	ctx, cancel := context.WithTimeout(ctx, f.cfg.Timeout)
	defer cancel()

	feed, err := f.parser.ParseURLWithContext(src.URL, ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed %s: %w", src.Name, err)
	}

	count := min(len(feed.Items), f.cfg.Limit)
	entries := make([]types.RawEntry, 0, count)

	for i := 0; i < count; i++ {
		item := feed.Items[i]
		if item == nil {
			continue
		}

		// Prefer the published date, fall back to updated
		var published *time.Time
		if item.PublishedParsed != nil {
			published = item.PublishedParsed
		} else if item.UpdatedParsed != nil {
			published = item.UpdatedParsed
		}

		summary := item.Description
		if summary == "" {
			summary = item.Content
		}

		entries = append(entries, types.RawEntry{
			Title:     item.Title,
			Summary:   summary,
			Link:      item.Link,
			Published: published,
		})
	}

	return entries, nil
}

// FetchAll fetches every feed in order, pausing between them.
// A failing feed is logged and contributes no batch.
func (f *Fetcher) FetchAll(ctx context.Context, feeds []types.FeedSource) []FeedBatch {
	batches := make([]FeedBatch, 0, len(feeds))

	for i, src := range feeds {
		if i > 0 && f.cfg.Delay > 0 {
			select {
			case <-ctx.Done():
				f.logger.Warn().Err(ctx.Err()).Msg("Fetch interrupted")
				return batches
			case <-time.After(f.cfg.Delay):
			}
		}

		f.logger.Info().Str("feed", src.Name).Msg("Fetching feed")
		entries, err := f.FetchFeed(ctx, src)
		if err != nil {
			f.logger.Warn().Err(err).Str("feed", src.Name).Msg("Feed failed; skipping")
			continue
		}
		f.logger.Debug().Str("feed", src.Name).Int("entries", len(entries)).Msg("Feed fetched")
		batches = append(batches, FeedBatch{Source: src, Entries: entries})
	}

	return batches
}
