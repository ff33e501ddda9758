package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/okian/tutormatch/internal/domain/model"
)

func TestMemoryStore_BasicOperations(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(ctx)

	// Test empty store
	if count := store.Count(ctx); count != 0 {
		t.Errorf("expected count 0, got %d", count)
	}

	// Test inserting first instructor
	created, err := store.Upsert(ctx, model.Instructor{ID: "inst-1", Name: "Dana"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !created {
		t.Error("expected first upsert to create")
	}

	if count := store.Count(ctx); count != 1 {
		t.Errorf("expected count 1, got %d", count)
	}

	// Test Get
	inst, err := store.Get(ctx, "inst-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inst.Name != "Dana" {
		t.Errorf("expected name Dana, got %s", inst.Name)
	}

	// Test Get for unknown ID
	if _, err := store.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	// Test replacing an existing record
	created, err = store.Upsert(ctx, model.Instructor{ID: "inst-1", Name: "Dana Updated"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created {
		t.Error("expected upsert of existing ID to replace, not create")
	}
	if count := store.Count(ctx); count != 1 {
		t.Errorf("expected count 1 after replacement, got %d", count)
	}

	inst, err = store.Get(ctx, "inst-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inst.Name != "Dana Updated" {
		t.Errorf("expected replaced name, got %s", inst.Name)
	}

	// Test Upsert with a missing ID
	if _, err := store.Upsert(ctx, model.Instructor{Name: "no id"}); !errors.Is(err, ErrMissingID) {
		t.Errorf("expected ErrMissingID, got %v", err)
	}
}

func TestMemoryStore_ListAndOrder(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(ctx)

	for i := 0; i < 5; i++ {
		id := fmt.Sprintf("inst-%d", i)
		if _, err := store.Upsert(ctx, model.Instructor{ID: id}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	// List respects registration order
	list, err := store.List(ctx, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("expected 3 instructors, got %d", len(list))
	}
	for i, inst := range list {
		want := fmt.Sprintf("inst-%d", i)
		if inst.ID != want {
			t.Errorf("position %d: expected %s, got %s", i, want, inst.ID)
		}
	}

	// Limit larger than the catalog returns everything
	list, err = store.List(ctx, 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(list) != 5 {
		t.Errorf("expected 5 instructors, got %d", len(list))
	}

	// Invalid limit
	if _, err := store.List(ctx, 0); !errors.Is(err, ErrInvalidLimit) {
		t.Errorf("expected ErrInvalidLimit, got %v", err)
	}

	// Replacing keeps the original position
	if _, err := store.Upsert(ctx, model.Instructor{ID: "inst-2", Name: "replaced"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	list, err = store.List(ctx, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if list[2].ID != "inst-2" || list[2].Name != "replaced" {
		t.Errorf("expected inst-2 replaced in place, got %+v", list[2])
	}
}

func TestMemoryStore_SnapshotImmutability(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(ctx)

	if _, err := store.Upsert(ctx, model.Instructor{ID: "inst-1", Name: "before"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	snap := store.Snapshot(ctx)
	if len(snap) != 1 {
		t.Fatalf("expected snapshot of 1, got %d", len(snap))
	}

	// A later write must not mutate an already-taken snapshot
	if _, err := store.Upsert(ctx, model.Instructor{ID: "inst-1", Name: "after"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if snap[0].Name != "before" {
		t.Errorf("snapshot mutated by later write: %s", snap[0].Name)
	}

	fresh := store.Snapshot(ctx)
	if fresh[0].Name != "after" {
		t.Errorf("new snapshot missing the write: %s", fresh[0].Name)
	}
}

func TestMemoryStore_ConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(ctx)

	const writers = 8
	const perWriter = 100

	var wg sync.WaitGroup

	// Concurrent writers on distinct IDs
	for w := 0; w < writers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWriter; i++ {
				id := fmt.Sprintf("inst-%d-%d", w, i)
				if _, err := store.Upsert(ctx, model.Instructor{ID: id}); err != nil {
					t.Errorf("upsert %s: %v", id, err)
					return
				}
			}
		}(w)
	}

	// Concurrent readers taking snapshots while writes happen
	for r := 0; r < 4; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				snap := store.Snapshot(ctx)
				// Every observed snapshot must be internally consistent
				seen := make(map[string]bool, len(snap))
				for _, inst := range snap {
					if seen[inst.ID] {
						t.Errorf("duplicate ID %s in snapshot", inst.ID)
						return
					}
					seen[inst.ID] = true
				}
			}
		}()
	}

	wg.Wait()

	if count := store.Count(ctx); count != writers*perWriter {
		t.Errorf("expected %d instructors, got %d", writers*perWriter, count)
	}
}

func TestMemoryStore_CancelledContext(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(ctx)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()

	if _, err := store.Upsert(cancelled, model.Instructor{ID: "inst-1"}); err == nil {
		t.Error("expected error from cancelled context")
	}
	if _, err := store.Get(cancelled, "inst-1"); err == nil {
		t.Error("expected error from cancelled context")
	}
	if _, err := store.List(cancelled, 1); err == nil {
		t.Error("expected error from cancelled context")
	}
}
