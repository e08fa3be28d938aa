package sagalog

import "context"

// Repository is the port for persisting saga log entries. The orchestrator
// depends on this abstraction, not on SQLite directly, so the implementation
// can be swapped for in-memory (tests) or another database.
type Repository interface {
	// Save appends a new entry. The log is append-only, not an upsert.
	Save(ctx context.Context, entry *SagaLog) error
}
