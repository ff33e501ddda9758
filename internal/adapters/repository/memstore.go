package repository

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/okian/tutormatch/internal/domain/model"
	"github.com/okian/tutormatch/pkg/metrics"
)

// In-memory, snapshot-publishing Store implementation.
//
// Writes take a mutex, copy the catalog, apply the change, and publish the
// new slice through an atomic.Value. Reads (Snapshot, List, Get, Count) only
// load the published value, so match calls are lock-free and always observe
// a consistent catalog. Registration order is preserved; it is the ranking
// tie-break order downstream.

// MemoryStore implements Store.
type MemoryStore struct {
	mu       sync.Mutex     // serializes writers
	snapshot atomic.Value   // []model.Instructor
	index    map[string]int // id -> position in the snapshot slice
}

// Option applies a configuration option to the MemoryStore.
type Option func(*MemoryStore)

// NewMemoryStore creates an empty catalog store.
func NewMemoryStore(_ context.Context, opts ...Option) *MemoryStore {
	s := &MemoryStore{
		index: make(map[string]int),
	}
	s.snapshot.Store([]model.Instructor{})

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Upsert inserts or replaces the instructor keyed by ID and publishes a
// fresh snapshot.
func (s *MemoryStore) Upsert(ctx context.Context, inst model.Instructor) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if inst.ID == "" {
		return false, ErrMissingID
	}

	start := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()

	current := s.snapshot.Load().([]model.Instructor)

	pos, exists := s.index[inst.ID]
	next := make([]model.Instructor, len(current), len(current)+1)
	copy(next, current)
	if exists {
		next[pos] = inst
	} else {
		next = append(next, inst)
		s.index[inst.ID] = len(next) - 1
	}
	s.snapshot.Store(next)

	metrics.RecordCatalogUpsert()
	metrics.UpdateCatalogSize(len(next))
	metrics.RecordSnapshotRebuild(float64(time.Since(start).Milliseconds()))
	return !exists, nil
}

// Get returns the instructor with the given ID.
func (s *MemoryStore) Get(ctx context.Context, id string) (model.Instructor, error) {
	if err := ctx.Err(); err != nil {
		return model.Instructor{}, err
	}
	snap := s.snapshot.Load().([]model.Instructor)
	// The index is only written under the mutex; reading it here would race.
	// Catalogs are small, a scan over the immutable snapshot is fine.
	for _, inst := range snap {
		if inst.ID == id {
			return inst, nil
		}
	}
	return model.Instructor{}, ErrNotFound
}

// List returns up to limit instructors in registration order.
func (s *MemoryStore) List(ctx context.Context, limit int) ([]model.Instructor, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if limit < 1 {
		return nil, ErrInvalidLimit
	}
	snap := s.snapshot.Load().([]model.Instructor)
	if limit > len(snap) {
		limit = len(snap)
	}
	out := make([]model.Instructor, limit)
	copy(out, snap[:limit])
	return out, nil
}

// Snapshot returns the current immutable catalog snapshot.
func (s *MemoryStore) Snapshot(_ context.Context) []model.Instructor {
	return s.snapshot.Load().([]model.Instructor)
}

// Count returns the number of instructors in the catalog.
func (s *MemoryStore) Count(_ context.Context) int {
	return len(s.snapshot.Load().([]model.Instructor))
}
