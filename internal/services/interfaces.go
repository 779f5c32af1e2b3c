package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"task-list/internal/domain"
)

// TagCount is the number of tasks carrying a tag
type TagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

// Summary is a snapshot of the whole collection
type Summary struct {
	Total    int                   `json:"total"`
	ByStatus map[domain.Status]int `json:"by_status"`
	ByTag    []TagCount            `json:"by_tag"`
	Untagged int                   `json:"untagged"`

	// PastDue counts tasks whose due date passed while not DONE
	PastDue int `json:"past_due"`

	// NextDue is the earliest upcoming due date among tasks not DONE
	NextDue *domain.Task `json:"next_due"`

	GeneratedAt time.Time `json:"generated_at"`
}

// TaskService handles task lifecycle operations
type TaskService interface {
	// CRUD by ID
	CreateTask(ctx context.Context, input domain.TaskInput) (*domain.Task, error)
	GetTask(ctx context.Context, id uuid.UUID) (*domain.Task, error)
	ListTasks(ctx context.Context) ([]*domain.Task, error)
	UpdateTask(ctx context.Context, id uuid.UUID, input domain.TaskInput) (*domain.Task, error)
	DeleteTask(ctx context.Context, id uuid.UUID) error

	// Title-keyed operations. Update touches the first match only and is a
	// silent no-op when nothing matches; delete removes every match.
	UpdateTaskByTitle(ctx context.Context, title string, input domain.TaskInput) (*domain.Task, bool, error)
	DeleteTasksByTitle(ctx context.Context, title string) (int, error)
}

// ViewService derives filtered and sorted views of the collection
type ViewService interface {
	// Search returns tasks whose text representation contains query,
	// ignoring case. An empty query returns every task.
	Search(ctx context.Context, query string) ([]*domain.Task, error)

	// Narrow runs Search and then drops every non-matching task from the
	// store. A query matching nothing empties the collection.
	Narrow(ctx context.Context, query string) ([]*domain.Task, error)

	FilterByStatus(tasks []*domain.Task, value string) []*domain.Task
	SortTasks(tasks []*domain.Task, field domain.SortField, descending bool) []*domain.Task

	// View lists, filters by status, filters by text and sorts, in that order.
	View(ctx context.Context, opts domain.ListOptions) ([]*domain.Task, error)
}

// ReportingService handles aggregate reporting
type ReportingService interface {
	Summarize(ctx context.Context) (*Summary, error)
}

// ServiceContainer manages all services and their dependencies
type ServiceContainer struct {
	TaskService      TaskService
	ViewService      ViewService
	ReportingService ReportingService
}
