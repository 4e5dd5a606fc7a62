package history

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"topicbot/types"
)

// FileStore keeps the history as a JSON document on local disk
type FileStore struct {
	path string
}

// NewFileStore creates a store backed by path
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load reads the history file; a missing file is an empty history
func (f *FileStore) Load(ctx context.Context) ([]types.HistoryRecord, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return []types.HistoryRecord{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("history: read %s: %w", f.path, err)
	}
	return decodeDocument(data)
}

// Save writes the history through a temp file so readers never see a partial document
func (f *FileStore) Save(ctx context.Context, records []types.HistoryRecord) error {
	data, err := encodeDocument(records)
	if err != nil {
		return err
	}

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("history: mkdir %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".history-*.json")
	if err != nil {
		return fmt.Errorf("history: temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	// CreateTemp uses 0600; keep the mode of the document being replaced
	mode := os.FileMode(0o644)
	if info, err := os.Stat(f.path); err == nil {
		mode = info.Mode().Perm()
	}
	if err := tmp.Chmod(mode); err != nil {
		tmp.Close()
		return fmt.Errorf("history: chmod: %w", err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("history: write: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("history: close: %w", err)
	}
	if err := os.Rename(tmpName, f.path); err != nil {
		return fmt.Errorf("history: rename: %w", err)
	}
	return nil
}
