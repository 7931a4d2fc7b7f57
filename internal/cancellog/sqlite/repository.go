// Package sqlite provides a SQLite-backed implementation of
// cancellog.Repository.
//
// WAL mode is enabled on Open so that readers never block writers: the HTTP
// handler writes transitions while a support query may be reading.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jcmexdev/storefront/internal/cancellog"

	// Register the pure-Go SQLite driver. modernc.org/sqlite avoids CGO,
	// which keeps Docker (Alpine) builds simple.
	_ "modernc.org/sqlite"
)

// schema is the DDL executed once on startup. The table is append-only: each
// row is an immutable transition of one cancellation request.
const schema = `
CREATE TABLE IF NOT EXISTS cancellation_logs (
    id              INTEGER PRIMARY KEY AUTOINCREMENT,

    -- Identifies one open prompt; a new ID is minted per Open.
    request_id      TEXT        NOT NULL,

    -- Order the customer asked to cancel. Not UNIQUE: a customer may retry.
    order_id        TEXT        NOT NULL,

    -- Prompt transition at the time this row was written.
    state           TEXT        NOT NULL,

    -- Customer-supplied reason; empty until submit.
    reason          TEXT        NOT NULL DEFAULT '',

    -- Submission failure, if any.
    error_message   TEXT        NOT NULL DEFAULT '',

    -- W3C trace_id / span_id from the active OTel span.
    trace_id        TEXT        NOT NULL DEFAULT '',
    span_id         TEXT        NOT NULL DEFAULT '',

    -- RFC3339 stored as TEXT, SQLite idiom.
    updated_at      TEXT        NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_cancellation_logs_order_id ON cancellation_logs(order_id, updated_at);
CREATE INDEX IF NOT EXISTS idx_cancellation_logs_trace_id ON cancellation_logs(trace_id);
`

// Repository is the SQLite implementation of cancellog.Repository.
type Repository struct {
	db *sql.DB
}

var _ cancellog.Repository = (*Repository)(nil)

// Open opens (or creates) the database at the given path and applies the
// schema. busy_timeout waits for locks instead of failing immediately.
func Open(path string) (*Repository, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=foreign_keys(on)&_pragma=busy_timeout(5000)", path)

	// "sqlite", not "sqlite3", for the modernc driver.
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

// Close releases the database connection. Call it with defer in main().
func (r *Repository) Close() error {
	return r.db.Close()
}

// Save appends a new log entry. Safe for concurrent use.
func (r *Repository) Save(ctx context.Context, entry *cancellog.Entry) error {
	const q = `
		INSERT INTO cancellation_logs
			(request_id, order_id, state, reason, error_message, trace_id, span_id, updated_at)
		VALUES
			(?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, q,
		entry.RequestID,
		entry.OrderID,
		string(entry.State),
		entry.Reason,
		entry.ErrorMessage,
		entry.TraceID,
		entry.SpanID,
		entry.UpdatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("sqlite: save cancellation log for order %q: %w", entry.OrderID, err)
	}
	return nil
}

// Latest returns the most recent log entry for a given order.
func (r *Repository) Latest(ctx context.Context, orderID string) (*cancellog.Entry, error) {
	const q = `
		SELECT request_id, order_id, state, reason, error_message,
		       trace_id, span_id, updated_at
		FROM   cancellation_logs
		WHERE  order_id = ?
		ORDER  BY updated_at DESC, id DESC
		LIMIT  1`

	row := r.db.QueryRowContext(ctx, q, orderID)

	var entry cancellog.Entry
	var updatedAt string
	err := row.Scan(
		&entry.RequestID,
		&entry.OrderID,
		&entry.State,
		&entry.Reason,
		&entry.ErrorMessage,
		&entry.TraceID,
		&entry.SpanID,
		&updatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("sqlite: no cancellation log for order %q", orderID)
	}
	if err != nil {
		return nil, fmt.Errorf("sqlite: latest for order %q: %w", orderID, err)
	}

	entry.UpdatedAt, err = time.Parse(time.RFC3339Nano, updatedAt)
	if err != nil {
		return nil, fmt.Errorf("sqlite: parse time %q: %w", updatedAt, err)
	}

	return &entry, nil
}
