package history

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"topicbot/common"
	"topicbot/types"
)

func sampleRecords() []types.HistoryRecord {
	return []types.HistoryRecord{
		{Keyword: "生成AIの最新動向", Lang: "ja", Category: "ai", Date: "2025-03-10T21:00:00.000000+09:00"},
		{Keyword: "Rust & WASM", Lang: "en", Category: "tech", Date: "2025-03-10T21:00:00.000000+09:00"},
	}
}

func TestNewRecordsUsesJST(t *testing.T) {
	now := time.Date(2025, 3, 10, 15, 30, 0, 123456000, time.UTC)
	recs := NewRecords([]types.ScoredTopic{{Keyword: "k", Lang: "en", Category: "ai", Score: 0.9}}, now)

	if len(recs) != 1 {
		t.Fatalf("got %d records; want 1", len(recs))
	}
	if recs[0].Date != "2025-03-11T00:30:00.123456+09:00" {
		t.Fatalf("date = %q", recs[0].Date)
	}
	if recs[0].Keyword != "k" || recs[0].Lang != "en" || recs[0].Category != "ai" {
		t.Fatalf("unexpected record: %+v", recs[0])
	}
}

func TestFileStoreMissingFileIsEmpty(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "nested", "history.json"))
	recs, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if len(recs) != 0 {
		t.Fatalf("got %d records; want 0", len(recs))
	}
}

func TestFileStoreDocumentShape(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config", "topics_history.json")
	store := NewFileStore(path)

	if err := store.Save(context.Background(), sampleRecords()); err != nil {
		t.Fatalf("Save error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	text := string(data)
	if !strings.Contains(text, "生成AIの最新動向") {
		t.Fatalf("non-ASCII keyword was escaped: %s", text)
	}
	if !strings.Contains(text, "Rust & WASM") {
		t.Fatalf("HTML characters were escaped: %s", text)
	}
	if !strings.HasPrefix(text, "{\n  \"generated\": [") {
		t.Fatalf("unexpected layout: %s", text)
	}

	var doc map[string][]map[string]string
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(doc["generated"]) != 2 || doc["generated"][0]["keyword"] != "生成AIの最新動向" {
		t.Fatalf("unexpected document: %v", doc)
	}
}

func TestFileStoreReadsExistingDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "h.json")
	content := `{"generated": [{"keyword": "old", "lang": "en", "category": "ai", "date": "2025-01-01T00:00:00"}]}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	recs, err := NewFileStore(path).Load(context.Background())
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if len(recs) != 1 || recs[0].Keyword != "old" || recs[0].Date != "2025-01-01T00:00:00" {
		t.Fatalf("unexpected records: %+v", recs)
	}
}

func TestFileStoreCorruptDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "h.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := NewFileStore(path).Load(context.Background()); err == nil {
		t.Fatalf("expected error for corrupt history")
	}
}

func TestFileStoreSaveKeepsMode(t *testing.T) {
	dir := t.TempDir()

	fresh := filepath.Join(dir, "fresh.json")
	if err := NewFileStore(fresh).Save(context.Background(), sampleRecords()); err != nil {
		t.Fatalf("Save: %v", err)
	}
	info, err := os.Stat(fresh)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0o644 {
		t.Fatalf("new file mode = %v; want 0644", info.Mode().Perm())
	}

	existing := filepath.Join(dir, "existing.json")
	if err := os.WriteFile(existing, []byte(`{"topics":[]}`), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.Chmod(existing, 0o640); err != nil {
		t.Fatal(err)
	}
	if err := NewFileStore(existing).Save(context.Background(), sampleRecords()); err != nil {
		t.Fatalf("Save: %v", err)
	}
	info, err = os.Stat(existing)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0o640 {
		t.Errorf("mode after save = %v; want 0640", info.Mode().Perm())
	}
}

func TestSQLiteStore(t *testing.T) {
	store, err := OpenSQLite(filepath.Join(t.TempDir(), "topicbot.db"))
	if err != nil {
		t.Fatalf("OpenSQLite error: %v", err)
	}
	defer store.Close()
	ctx := context.Background()

	recs, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if len(recs) != 0 {
		t.Fatalf("fresh store has %d records", len(recs))
	}

	if err := store.Save(ctx, sampleRecords()); err != nil {
		t.Fatalf("Save error: %v", err)
	}
	more := append(sampleRecords(), types.HistoryRecord{Keyword: "third", Lang: "en", Category: "research", Date: "2025-03-11"})
	if err := store.Save(ctx, more); err != nil {
		t.Fatalf("Save error: %v", err)
	}

	recs, err = store.Load(ctx)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if len(recs) != 3 {
		t.Fatalf("got %d records; want 3 (save replaces the log)", len(recs))
	}
	if recs[0].Keyword != "生成AIの最新動向" || recs[2].Keyword != "third" {
		t.Fatalf("order not preserved: %+v", recs)
	}
}

func TestSQLiteStoreReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "topicbot.db")
	store, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("OpenSQLite error: %v", err)
	}
	if err := store.Save(context.Background(), sampleRecords()); err != nil {
		t.Fatalf("Save error: %v", err)
	}
	store.Close()

	store, err = OpenSQLite(path)
	if err != nil {
		t.Fatalf("reopen error: %v", err)
	}
	defer store.Close()
	recs, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("got %d records after reopen; want 2", len(recs))
	}
}

type fakeObjectStore struct {
	objects map[string][]byte
	getErr  error
}

func (f *fakeObjectStore) Get(ctx context.Context, bucket, key string) ([]byte, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	data, ok := f.objects[bucket+"/"+key]
	if !ok {
		return nil, common.ErrObjectNotFound
	}
	return data, nil
}

func (f *fakeObjectStore) PutJSON(ctx context.Context, bucket, key string, body []byte) error {
	f.objects[bucket+"/"+key] = body
	return nil
}

func TestS3Store(t *testing.T) {
	fake := &fakeObjectStore{objects: map[string][]byte{}}
	store := NewS3Store(fake, "bucket", "/topicbot/")
	ctx := context.Background()

	if store.Key() != "topicbot/history.json" {
		t.Fatalf("key = %q", store.Key())
	}

	recs, err := store.Load(ctx)
	if err != nil || len(recs) != 0 {
		t.Fatalf("Load on missing object = %v, %v; want empty, nil", recs, err)
	}

	if err := store.Save(ctx, sampleRecords()); err != nil {
		t.Fatalf("Save error: %v", err)
	}
	recs, err = store.Load(ctx)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if len(recs) != 2 || recs[1].Keyword != "Rust & WASM" {
		t.Fatalf("unexpected records: %+v", recs)
	}

	fake.getErr = errors.New("access denied")
	if _, err := store.Load(ctx); err == nil {
		t.Fatalf("expected error to surface")
	}
}
