// Package repository defines the Task Store contract shared by the memory
// and sqlite backends. Both keep tasks in insertion order.
package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"task-list/internal/domain"
)

// Repository is the single source of truth for the task collection.
type Repository interface {
	// Create assigns an ID (when unset) and the creation timestamp, then
	// appends the task. Duplicate titles are accepted.
	Create(ctx context.Context, task *domain.Task) error

	Get(ctx context.Context, id uuid.UUID) (*domain.Task, error)
	List(ctx context.Context) ([]*domain.Task, error)

	// Update replaces the stored task with the same ID. The stored
	// timestamp and position are kept.
	Update(ctx context.Context, task *domain.Task) error

	// UpdateByTitle replaces the first task whose title equals title,
	// keeping its ID, timestamp and position. It reports whether a task
	// was replaced; no match is not an error.
	UpdateByTitle(ctx context.Context, title string, task *domain.Task) (bool, error)

	Delete(ctx context.Context, id uuid.UUID) error

	// DeleteByTitle removes every task whose title equals title and
	// returns how many were removed.
	DeleteByTitle(ctx context.Context, title string) (int, error)

	// Retain drops every task whose ID is not in ids.
	Retain(ctx context.Context, ids []uuid.UUID) (int, error)

	Close() error
}

// Clock returns the current time. Stores use it to stamp new tasks.
type Clock func() time.Time
