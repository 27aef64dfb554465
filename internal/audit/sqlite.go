package audit

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/JonMunkholm/sheetsync/internal/core"
	_ "modernc.org/sqlite" // pure go sqlite driver
)

// SQLite stores audit entries in a local database file.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens (creating if needed) the database at path.
func OpenSQLite(path string) (*SQLite, error) {
	if path == "" {
		path = "sheetsync-audit.db"
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil && !errors.Is(err, os.ErrExist) {
		return nil, fmt.Errorf("create dirs: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// One writer at a time.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS audit_log (
		id          TEXT PRIMARY KEY,
		plan_id     TEXT NOT NULL,
		action      TEXT NOT NULL,
		collection  TEXT NOT NULL,
		row_key     TEXT NOT NULL DEFAULT '',
		row_data    BLOB,
		steps       BLOB NOT NULL,
		outcome     TEXT NOT NULL,
		error       TEXT NOT NULL DEFAULT '',
		ip_address  TEXT NOT NULL DEFAULT '',
		user_agent  TEXT NOT NULL DEFAULT '',
		created_at  TEXT NOT NULL
	)`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create audit table: %w", err)
	}
	return &SQLite{db: db}, nil
}

// Record inserts one entry.
func (s *SQLite) Record(ctx context.Context, e core.AuditEntry) error {
	rowData, steps, err := encodeEntry(e)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `INSERT INTO audit_log
		(id, plan_id, action, collection, row_key, row_data, steps, outcome, error, ip_address, user_agent, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.PlanID, string(e.Action), e.Collection, e.RowKey, rowData, steps,
		string(e.Outcome), e.Error, e.IPAddress, e.UserAgent, e.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert audit entry: %w", err)
	}
	return nil
}

// Recent returns the newest entries first.
func (s *SQLite) Recent(ctx context.Context, limit int) ([]core.AuditEntry, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, plan_id, action, collection, row_key, row_data,
		steps, outcome, error, ip_address, user_agent, created_at
		FROM audit_log ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query audit log: %w", err)
	}
	defer func() { _ = rows.Close() }()

	entries := make([]core.AuditEntry, 0)
	for rows.Next() {
		e, err := scanEntry(&timeText{rows: rows})
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Prune deletes entries created before cutoff.
func (s *SQLite) Prune(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM audit_log WHERE julianday(created_at) < julianday(?)`,
		cutoff.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return 0, fmt.Errorf("prune audit log: %w", err)
	}
	return res.RowsAffected()
}

// Close closes the database.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// timeText adapts created_at, stored as RFC 3339 text, to a time.Time scan
// destination.
type timeText struct {
	rows *sql.Rows
}

func (t *timeText) Scan(dest ...any) error {
	last := len(dest) - 1
	target, ok := dest[last].(*time.Time)
	if !ok {
		return t.rows.Scan(dest...)
	}
	var raw string
	dest[last] = &raw
	if err := t.rows.Scan(dest...); err != nil {
		return err
	}
	parsed, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return fmt.Errorf("parse created_at %q: %w", raw, err)
	}
	*target = parsed
	return nil
}
