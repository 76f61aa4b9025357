// Package sqlite provides the SQLite-backed sagalog.Repository.
//
// WAL mode is enabled on Open so writers (the saga goroutine) and readers
// (the reconciliation query in GetLatest) never block each other.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/berkeshop/ecommerce-orders/internal/coordinator/sagalog"

	// Register the pure-Go SQLite driver. No CGO, so the service still
	// builds in a scratch/alpine container.
	_ "modernc.org/sqlite"
)

// schema is the DDL applied once on startup. The table is append-only: each
// row is an immutable event in an order saga's lifecycle.
const schema = `
CREATE TABLE IF NOT EXISTS order_saga_logs (
    id              INTEGER PRIMARY KEY AUTOINCREMENT,

    -- Order reference. Not UNIQUE: one row per transition.
    saga_id         TEXT        NOT NULL,

    -- Lifecycle state at the time this row was written.
    status          TEXT        NOT NULL,

    -- Step that just executed or failed (e.g. "charge-payment").
    current_step    TEXT        NOT NULL DEFAULT '',

    -- JSON payload that started the saga. Written on STARTED only.
    payload         TEXT,

    -- JSON array of error strings accumulated on failure/compensation.
    error_messages  TEXT        NOT NULL DEFAULT '[]',

    -- W3C trace_id / span_id from the active span, for trace correlation.
    trace_id        TEXT        NOT NULL DEFAULT '',
    span_id         TEXT        NOT NULL DEFAULT '',

    -- RFC3339 timestamp stored as TEXT (SQLite idiom).
    updated_at      TEXT        NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_order_saga_logs_saga_id ON order_saga_logs(saga_id, updated_at);
CREATE INDEX IF NOT EXISTS idx_order_saga_logs_trace_id ON order_saga_logs(trace_id);
`

// Repository is the SQLite implementation of sagalog.Repository.
type Repository struct {
	db *sql.DB
}

// Open opens (or creates) the database at path and applies the schema.
func Open(path string) (*Repository, error) {
	// busy_timeout waits for locks instead of failing immediately.
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=foreign_keys(on)&_pragma=busy_timeout(5000)", path)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open %q: %w", path, err)
	}

	// SQLite performs best with a single writer connection.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite: apply schema: %w", err)
	}

	return &Repository{db: db}, nil
}

// Close releases the database connection.
func (r *Repository) Close() error {
	return r.db.Close()
}

// Save appends a saga log entry. Safe for concurrent use.
func (r *Repository) Save(ctx context.Context, entry *sagalog.SagaLog) error {
	const q = `
		INSERT INTO order_saga_logs
			(saga_id, status, current_step, payload, error_messages, trace_id, span_id, updated_at)
		VALUES
			(?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, q,
		entry.SagaID,
		string(entry.Status),
		entry.CurrentStep,
		nullableString(entry.Payload),
		entry.ErrorMessages,
		entry.TraceID,
		entry.SpanID,
		entry.UpdatedAt.UTC().Format("2006-01-02T15:04:05.999999999Z"),
	)
	if err != nil {
		return fmt.Errorf("sqlite: save saga log for %q: %w", entry.SagaID, err)
	}
	return nil
}

// GetLatest returns the most recent entry for a saga. Used by the
// reconciliation tooling to find sagas stuck between transitions.
func (r *Repository) GetLatest(ctx context.Context, sagaID string) (*sagalog.SagaLog, error) {
	const q = `
		SELECT saga_id, status, current_step, COALESCE(payload,''), error_messages,
		       trace_id, span_id, updated_at
		FROM   order_saga_logs
		WHERE  saga_id = ?
		ORDER  BY updated_at DESC, id DESC
		LIMIT  1`

	row := r.db.QueryRowContext(ctx, q, sagaID)

	var entry sagalog.SagaLog
	var updatedAt string
	err := row.Scan(
		&entry.SagaID,
		&entry.Status,
		&entry.CurrentStep,
		&entry.Payload,
		&entry.ErrorMessages,
		&entry.TraceID,
		&entry.SpanID,
		&updatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("sqlite: saga %q not found", sagaID)
	}
	if err != nil {
		return nil, fmt.Errorf("sqlite: get latest for %q: %w", sagaID, err)
	}

	entry.UpdatedAt, err = parseRFC3339(updatedAt)
	if err != nil {
		return nil, err
	}

	return &entry, nil
}

// nullableString maps "" to NULL so non-STARTED rows keep a clean payload
// column.
func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
