package sagalog

import (
	"context"
	"sync"
)

// MemoryRepository keeps saga log entries in memory. It backs the default
// console run and the test suites; nothing survives a restart.
type MemoryRepository struct {
	mu      sync.Mutex
	entries []*SagaLog
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

func (r *MemoryRepository) Save(_ context.Context, entry *SagaLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	e := *entry
	r.entries = append(r.entries, &e)
	return nil
}

// Entries returns the recorded entries for sagaID in append order.
func (r *MemoryRepository) Entries(sagaID string) []*SagaLog {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*SagaLog
	for _, e := range r.entries {
		if e.SagaID == sagaID {
			out = append(out, e)
		}
	}
	return out
}
