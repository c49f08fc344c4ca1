package store

import (
	"context"
	"sync"

	"sales-service/internal/models"
)

// MemoryStore keeps an immutable snapshot in memory. Replace swaps the
// snapshot as a whole; readers holding the previous slice are unaffected.
type MemoryStore struct {
	mu   sync.RWMutex
	rows []models.Transaction
}

// NewMemoryStore creates a store holding rows
func NewMemoryStore(rows []models.Transaction) *MemoryStore {
	m := &MemoryStore{}
	m.Replace(rows)
	return m
}

// Replace installs a private copy of rows as the new snapshot
func (m *MemoryStore) Replace(rows []models.Transaction) {
	snapshot := make([]models.Transaction, len(rows))
	copy(snapshot, rows)

	m.mu.Lock()
	m.rows = snapshot
	m.mu.Unlock()
}

// Load replaces the snapshot with the rows of src
func (m *MemoryStore) Load(ctx context.Context, src RowStore) (int, error) {
	rows, err := src.Rows(ctx)
	if err != nil {
		return 0, err
	}
	m.Replace(rows)
	return len(rows), nil
}

// Rows returns the current snapshot
func (m *MemoryStore) Rows(ctx context.Context) ([]models.Transaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.rows, nil
}

// Count returns the snapshot size
func (m *MemoryStore) Count(ctx context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.rows), nil
}
