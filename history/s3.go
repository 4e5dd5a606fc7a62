package history

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"topicbot/common"
	"topicbot/types"
)

// objectStore is the subset of common.S3 the history needs
type objectStore interface {
	Get(ctx context.Context, bucket, key string) ([]byte, error)
	PutJSON(ctx context.Context, bucket, key string, body []byte) error
}

// S3Store keeps the history document as a single S3 object
type S3Store struct {
	client objectStore
	bucket string
	key    string
}

// NewS3Store stores the history at <prefix>history.json in bucket
func NewS3Store(client objectStore, bucket, prefix string) *S3Store {
	prefix = strings.Trim(strings.TrimSpace(prefix), "/")
	if prefix != "" {
		prefix += "/"
	}
	return &S3Store{client: client, bucket: bucket, key: prefix + "history.json"}
}

// Key returns the object key of the history document
func (s *S3Store) Key() string { return s.key }

// Load fetches the history object; a missing object is an empty history
func (s *S3Store) Load(ctx context.Context) ([]types.HistoryRecord, error) {
	data, err := s.client.Get(ctx, s.bucket, s.key)
	if errors.Is(err, common.ErrObjectNotFound) {
		return []types.HistoryRecord{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("history: get s3://%s/%s: %w", s.bucket, s.key, err)
	}
	return decodeDocument(data)
}

// Save uploads the whole history document
func (s *S3Store) Save(ctx context.Context, records []types.HistoryRecord) error {
	data, err := encodeDocument(records)
	if err != nil {
		return err
	}
	if err := s.client.PutJSON(ctx, s.bucket, s.key, data); err != nil {
		return fmt.Errorf("history: put s3://%s/%s: %w", s.bucket, s.key, err)
	}
	return nil
}
