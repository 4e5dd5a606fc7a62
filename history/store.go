package history

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"topicbot/config"
	"topicbot/types"
)

// DateLayout matches the ISO 8601 form history dates are written in
const DateLayout = "2006-01-02T15:04:05.000000-07:00"

// Store persists the complete topic history
type Store interface {
	// Load returns the whole log; a store that was never written returns an empty log
	Load(ctx context.Context) ([]types.HistoryRecord, error)
	// Save overwrites the whole log
	Save(ctx context.Context, records []types.HistoryRecord) error
}

// NewRecords builds one history record per selected topic, dated now in JST
func NewRecords(topics []types.ScoredTopic, now time.Time) []types.HistoryRecord {
	date := now.In(config.JST).Format(DateLayout)
	records := make([]types.HistoryRecord, len(topics))
	for i, t := range topics {
		records[i] = types.HistoryRecord{
			Keyword:  t.Keyword,
			Lang:     t.Lang,
			Category: t.Category,
			Date:     date,
		}
	}
	return records
}

// encodeDocument renders records as the {"generated": [...]} document
func encodeDocument(records []types.HistoryRecord) ([]byte, error) {
	if records == nil {
		records = []types.HistoryRecord{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(types.HistoryDocument{Generated: records}); err != nil {
		return nil, fmt.Errorf("encode history: %w", err)
	}
	return buf.Bytes(), nil
}

func decodeDocument(data []byte) ([]types.HistoryRecord, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return []types.HistoryRecord{}, nil
	}
	var doc types.HistoryDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode history: %w", err)
	}
	if doc.Generated == nil {
		doc.Generated = []types.HistoryRecord{}
	}
	return doc.Generated, nil
}
