package rssfeeds

import (
	"fmt"
	"sync"
	"time"

	"topicbot/types"

	readability "github.com/go-shiori/go-readability"
	"github.com/rs/zerolog"
)

const (
	WorkerCount      = 5
	extractorTimeout = 15 * time.Second
)

// Extractor pulls the readable text out of article pages
type Extractor struct {
	maxChars int
	logger   zerolog.Logger
}

// NewExtractor creates an extractor that truncates text to maxChars
func NewExtractor(maxChars int, logger zerolog.Logger) *Extractor {
	return &Extractor{
		maxChars: maxChars,
		logger:   logger.With().Str("component", "extractor").Logger(),
	}
}

// ExtractText fetches url and returns its main text, cleaned and truncated
func (e *Extractor) ExtractText(url string) (string, error) {
	if url == "" {
		return "", fmt.Errorf("article URL is empty")
	}

	article, err := readability.FromURL(url, extractorTimeout)
	if err != nil {
		return "", fmt.Errorf("readability extraction failed: %w", err)
	}

	return truncate(cleanText(article.TextContent), e.maxChars), nil
}

// ExtractAll fills Text for all articles using a worker pool.
// Failures are recorded on the article rather than returned.
func (e *Extractor) ExtractAll(articles []*types.SourceArticle) {
	var wg sync.WaitGroup
	articleChan := make(chan *types.SourceArticle, len(articles))

	for i := 0; i < WorkerCount; i++ {
		go func(workerID int) {
			for article := range articleChan {
				text, err := e.ExtractText(article.URL)
				if err != nil {
					article.ExtractionError = err.Error()
					e.logger.Warn().Int("worker", workerID).Str("url", article.URL).Err(err).Msg("Extraction failed")
				} else {
					article.Text = text
					e.logger.Debug().Int("worker", workerID).Str("title", article.Title).Msg("Extracted")
				}
				wg.Done()
			}
		}(i)
	}

	for _, article := range articles {
		wg.Add(1)
		articleChan <- article
	}

	wg.Wait()
	close(articleChan)
}
