// Package history is the append-only export history sink, backed by
// SQLite. Writes are best-effort from the coordinator's point of view;
// the store itself reports errors normally and lets the caller decide.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/meetscribe/export-server/cmd/server/internal/export"
	"github.com/meetscribe/export-server/cmd/server/internal/models"
)

const schema = `
CREATE TABLE IF NOT EXISTS export_history (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	export_id  TEXT NOT NULL,
	meeting_id TEXT NOT NULL,
	format     TEXT NOT NULL,
	filename   TEXT NOT NULL,
	size       INTEGER NOT NULL,
	created_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_export_history_meeting ON export_history(meeting_id);
`

// Store records completed exports in a SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the history database at path.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create history dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}
	// modernc.org/sqlite serializes writes; a single connection avoids
	// SQLITE_BUSY under concurrent exports.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init history schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Append records one completed export.
func (s *Store) Append(ctx context.Context, rec export.HistoryRecord) error {
	createdAt := rec.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO export_history (export_id, meeting_id, format, filename, size, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		rec.ExportID, rec.MeetingID, string(rec.Format), rec.Filename, rec.Size, createdAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("append export history: %w", err)
	}
	return nil
}

// Recent returns up to limit history entries, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]export.HistoryRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT export_id, meeting_id, format, filename, size, created_at
		 FROM export_history ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query export history: %w", err)
	}
	defer rows.Close()

	var out []export.HistoryRecord
	for rows.Next() {
		var rec export.HistoryRecord
		var format string
		if err := rows.Scan(&rec.ExportID, &rec.MeetingID, &format, &rec.Filename, &rec.Size, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan export history: %w", err)
		}
		rec.Format = models.ExportFormat(format)
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}
