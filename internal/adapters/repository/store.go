// Package repository defines the instructor catalog store interface and errors.
package repository

import (
	"context"

	"github.com/okian/tutormatch/internal/domain/model"
)

// Store provides read/write access to the instructor catalog. Writes go
// through Upsert; reads are served from an immutable snapshot so the
// matching engine never observes a half-applied update.
type Store interface {
	// Upsert inserts or replaces the instructor keyed by ID.
	// Returns true when a new record was created, false on replacement.
	Upsert(ctx context.Context, inst model.Instructor) (bool, error)

	// Get returns the instructor with the given ID.
	// Returns ErrNotFound if the instructor is unknown.
	Get(ctx context.Context, id string) (model.Instructor, error)

	// List returns up to limit instructors in registration order.
	List(ctx context.Context, limit int) ([]model.Instructor, error)

	// Snapshot returns the current immutable catalog snapshot in
	// registration order. Callers must not mutate the returned slice.
	Snapshot(ctx context.Context) []model.Instructor

	// Count returns the number of instructors in the catalog.
	Count(ctx context.Context) int
}
