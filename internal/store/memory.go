package store

import (
	"context"
	"maps"
	"sync"
)

// Memory is an in-memory Store used by tests and ephemeral setups.
type Memory struct {
	mu          sync.RWMutex
	collections map[string][]Record
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{collections: make(map[string][]Record)}
}

func (m *Memory) Load(ctx context.Context, collection string) ([]Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return cloneRecords(m.collections[collection]), nil
}

func (m *Memory) Save(ctx context.Context, collection string, records []Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.collections[collection] = cloneRecords(records)
	return nil
}

func cloneRecords(records []Record) []Record {
	out := make([]Record, len(records))
	for i, rec := range records {
		out[i] = maps.Clone(rec)
	}
	return out
}
