// Package audit persists mutation plans to a database so every change made
// through the service can be traced back to its steps.
package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/JonMunkholm/sheetsync/internal/core"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var postgresSchema = []string{`CREATE TABLE IF NOT EXISTS sheet_audit_log (
	id          UUID PRIMARY KEY,
	plan_id     UUID NOT NULL,
	action      TEXT NOT NULL,
	collection  TEXT NOT NULL,
	row_key     TEXT,
	row_data    JSONB,
	steps       JSONB NOT NULL,
	outcome     TEXT NOT NULL,
	error       TEXT,
	ip_address  TEXT,
	user_agent  TEXT,
	created_at  TIMESTAMPTZ NOT NULL
)`,
	`CREATE INDEX IF NOT EXISTS sheet_audit_log_created_at_idx ON sheet_audit_log (created_at DESC)`,
}

// Postgres stores audit entries in a PostgreSQL table.
type Postgres struct {
	pool *pgxpool.Pool
}

// NewPostgres creates the audit table if needed.
func NewPostgres(ctx context.Context, pool *pgxpool.Pool) (*Postgres, error) {
	for _, stmt := range postgresSchema {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return nil, fmt.Errorf("create audit table: %w", err)
		}
	}
	return &Postgres{pool: pool}, nil
}

// Record inserts one entry.
func (p *Postgres) Record(ctx context.Context, e core.AuditEntry) error {
	rowData, steps, err := encodeEntry(e)
	if err != nil {
		return err
	}

	_, err = p.pool.Exec(ctx, `INSERT INTO sheet_audit_log
		(id, plan_id, action, collection, row_key, row_data, steps, outcome, error, ip_address, user_agent, created_at)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, $7, $8, NULLIF($9, ''), NULLIF($10, ''), NULLIF($11, ''), $12)`,
		e.ID, e.PlanID, string(e.Action), e.Collection, e.RowKey, rowData, steps,
		string(e.Outcome), e.Error, e.IPAddress, e.UserAgent, e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert audit entry: %w", err)
	}
	return nil
}

// Prune deletes entries created before cutoff.
func (p *Postgres) Prune(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := p.pool.Exec(ctx, `DELETE FROM sheet_audit_log WHERE created_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("prune audit log: %w", err)
	}
	return tag.RowsAffected(), nil
}

// Recent returns the newest entries first.
func (p *Postgres) Recent(ctx context.Context, limit int) ([]core.AuditEntry, error) {
	rows, err := p.pool.Query(ctx, `SELECT id::text, plan_id::text, action, collection,
		COALESCE(row_key, ''), row_data, steps, outcome, COALESCE(error, ''),
		COALESCE(ip_address, ''), COALESCE(user_agent, ''), created_at
		FROM sheet_audit_log ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("query audit log: %w", err)
	}
	defer rows.Close()

	entries := make([]core.AuditEntry, 0)
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

// scanner is satisfied by pgx.Rows and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

var _ scanner = pgx.Rows(nil)

func scanEntry(row scanner) (core.AuditEntry, error) {
	var (
		e               core.AuditEntry
		action, outcome string
		rowData, steps  []byte
	)
	err := row.Scan(&e.ID, &e.PlanID, &action, &e.Collection, &e.RowKey, &rowData, &steps,
		&outcome, &e.Error, &e.IPAddress, &e.UserAgent, &e.CreatedAt)
	if err != nil {
		return core.AuditEntry{}, fmt.Errorf("scan audit entry: %w", err)
	}
	e.Action = core.AuditAction(action)
	e.Outcome = core.AuditOutcome(outcome)

	if len(rowData) > 0 {
		if err := json.Unmarshal(rowData, &e.RowData); err != nil {
			return core.AuditEntry{}, fmt.Errorf("decode row data: %w", err)
		}
	}
	if err := json.Unmarshal(steps, &e.Steps); err != nil {
		return core.AuditEntry{}, fmt.Errorf("decode steps: %w", err)
	}
	return e, nil
}

func encodeEntry(e core.AuditEntry) (rowData, steps []byte, err error) {
	if e.RowData != nil {
		if rowData, err = json.Marshal(e.RowData); err != nil {
			return nil, nil, fmt.Errorf("encode row data: %w", err)
		}
	}
	if e.Steps == nil {
		e.Steps = []core.StepReport{}
	}
	if steps, err = json.Marshal(e.Steps); err != nil {
		return nil, nil, fmt.Errorf("encode steps: %w", err)
	}
	return rowData, steps, nil
}
