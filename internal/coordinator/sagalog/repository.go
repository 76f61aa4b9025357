package sagalog

import "context"

// Repository persists saga log entries. The coordinator depends on this
// interface, not on sqlite directly, so tests can use an in-memory fake.
type Repository interface {
	// Save appends a new row. The table is an append-only audit log,
	// never an upsert.
	Save(ctx context.Context, entry *SagaLog) error
}
