package history

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"topicbot/types"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

// SQLiteStore keeps the history in a SQLite table
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens (creating if needed) the database at path and applies migrations
func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("history: open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("history: enable WAL: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLiteStore{db: db}, nil
}

func runMigrations(db *sql.DB) error {
	driver, err := sqlite.WithInstance(db, &sqlite.Config{})
	if err != nil {
		return fmt.Errorf("history: create sqlite driver: %w", err)
	}

	source, err := iofs.New(migrationFS, "migrations")
	if err != nil {
		return fmt.Errorf("history: create iofs source: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "sqlite", driver)
	if err != nil {
		return fmt.Errorf("history: create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("history: run migrations: %w", err)
	}
	return nil
}

// Close closes the database
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Load returns all records in insertion order
func (s *SQLiteStore) Load(ctx context.Context) ([]types.HistoryRecord, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT keyword, lang, category, date FROM topic_history ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("history: query: %w", err)
	}
	defer rows.Close()

	records := []types.HistoryRecord{}
	for rows.Next() {
		var r types.HistoryRecord
		if err := rows.Scan(&r.Keyword, &r.Lang, &r.Category, &r.Date); err != nil {
			return nil, fmt.Errorf("history: scan: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// Save replaces the table contents with records in one transaction
func (s *SQLiteStore) Save(ctx context.Context, records []types.HistoryRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("history: begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM topic_history`); err != nil {
		return fmt.Errorf("history: clear: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO topic_history (keyword, lang, category, date) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("history: prepare: %w", err)
	}
	defer stmt.Close()

	for _, r := range records {
		if _, err := stmt.ExecContext(ctx, r.Keyword, r.Lang, r.Category, r.Date); err != nil {
			return fmt.Errorf("history: insert %q: %w", r.Keyword, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("history: commit: %w", err)
	}
	return nil
}
