package repository

import (
	"sync"

	"scanner-backend/internal/domain"
)

// InMemoryScanRepository keeps the latest scan snapshot. The whole
// snapshot is swapped per cycle, so a plain RWMutex is enough.
type InMemoryScanRepository struct {
	snap *domain.ScanSnapshot
	mu   sync.RWMutex
}

func NewInMemoryScanRepository() *InMemoryScanRepository {
	return &InMemoryScanRepository{}
}

func (r *InMemoryScanRepository) SaveSnapshot(snap *domain.ScanSnapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.snap = snap
}

// Latest returns the stored snapshot, or nil before the first cycle.
// Snapshots are immutable after construction so sharing the pointer is
// safe.
func (r *InMemoryScanRepository) Latest() *domain.ScanSnapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.snap
}
