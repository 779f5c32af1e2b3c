// Package memory implements the Task Store as an owned, ordered in-process
// collection. Nothing survives the process.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"task-list/internal/domain"
	"task-list/internal/errors"
	"task-list/internal/repository"
)

// Store keeps tasks by ID plus the insertion order of their IDs.
type Store struct {
	mu    sync.RWMutex
	byID  map[uuid.UUID]*domain.Task
	order []uuid.UUID
	now   repository.Clock
}

var _ repository.Repository = (*Store)(nil)

// Option configures a Store
type Option func(*Store)

// WithClock replaces time.Now when stamping new tasks.
func WithClock(clock repository.Clock) Option {
	return func(s *Store) {
		if clock != nil {
			s.now = clock
		}
	}
}

// New creates an empty store
func New(opts ...Option) *Store {
	s := &Store{
		byID:  make(map[uuid.UUID]*domain.Task),
		order: make([]uuid.UUID, 0),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create appends a copy of task, assigning its ID and timestamp.
func (s *Store) Create(ctx context.Context, task *domain.Task) error {
	if err := ctx.Err(); err != nil {
		return errors.FromContextError("create task", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if task.ID == uuid.Nil {
		task.ID = uuid.New()
	}
	if _, exists := s.byID[task.ID]; exists {
		return errors.NewInvalidInputError("id", task.ID.String(), "task id already exists")
	}
	task.Timestamp = s.now()

	stored := task.Clone()
	s.byID[task.ID] = &stored
	s.order = append(s.order, task.ID)
	return nil
}

// Get returns a copy of the task with the given ID.
func (s *Store) Get(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.FromContextError("get task", err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	stored, ok := s.byID[id]
	if !ok {
		return nil, errors.NewNotFoundError("task", id.String())
	}
	clone := stored.Clone()
	return &clone, nil
}

// List returns copies of all tasks in insertion order.
func (s *Store) List(ctx context.Context) ([]*domain.Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.FromContextError("list tasks", err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.Task, 0, len(s.order))
	for _, id := range s.order {
		clone := s.byID[id].Clone()
		result = append(result, &clone)
	}
	return result, nil
}

// Update replaces the task with the same ID, keeping its timestamp.
func (s *Store) Update(ctx context.Context, task *domain.Task) error {
	if err := ctx.Err(); err != nil {
		return errors.FromContextError("update task", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.byID[task.ID]
	if !ok {
		return errors.NewNotFoundError("task", task.ID.String())
	}
	s.replace(stored, task)
	return nil
}

// UpdateByTitle replaces the first task with a matching title.
func (s *Store) UpdateByTitle(ctx context.Context, title string, task *domain.Task) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, errors.FromContextError("update task", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, id := range s.order {
		stored := s.byID[id]
		if stored.Title == title {
			task.ID = stored.ID
			s.replace(stored, task)
			return true, nil
		}
	}
	return false, nil
}

// replace must be called with the write lock held.
func (s *Store) replace(stored, task *domain.Task) {
	task.Timestamp = stored.Timestamp
	updated := task.Clone()
	s.byID[stored.ID] = &updated
}

// Delete removes the task with the given ID.
func (s *Store) Delete(ctx context.Context, id uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return errors.FromContextError("delete task", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byID[id]; !ok {
		return errors.NewNotFoundError("task", id.String())
	}
	s.removeWhere(func(t *domain.Task) bool { return t.ID == id })
	return nil
}

// DeleteByTitle removes every task with a matching title.
func (s *Store) DeleteByTitle(ctx context.Context, title string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, errors.FromContextError("delete tasks", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.removeWhere(func(t *domain.Task) bool { return t.Title == title }), nil
}

// Retain keeps only the tasks whose IDs are listed.
func (s *Store) Retain(ctx context.Context, ids []uuid.UUID) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, errors.FromContextError("retain tasks", err)
	}

	keep := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		keep[id] = struct{}{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.removeWhere(func(t *domain.Task) bool {
		_, ok := keep[t.ID]
		return !ok
	}), nil
}

// removeWhere must be called with the write lock held.
func (s *Store) removeWhere(match func(*domain.Task) bool) int {
	kept := s.order[:0]
	removed := 0
	for _, id := range s.order {
		if match(s.byID[id]) {
			delete(s.byID, id)
			removed++
			continue
		}
		kept = append(kept, id)
	}
	s.order = kept
	return removed
}

// Len returns the number of stored tasks.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}

// Close discards the collection.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byID = make(map[uuid.UUID]*domain.Task)
	s.order = s.order[:0]
	return nil
}
