package services

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"task-list/internal/domain"
	"task-list/internal/logging"
	"task-list/internal/repository"
)

// ViewOptions configures how views are computed
type ViewOptions struct {
	// TimeLayout renders dates in the searchable text representation.
	TimeLayout string
	// Locale selects the collation used when sorting by title, e.g. "en" or "sv".
	Locale string
}

// viewServiceImpl implements the ViewService interface
type viewServiceImpl struct {
	repo       repository.Repository
	timeLayout string
	logger     *logging.Logger

	mu       sync.Mutex // collate.Collator is not safe for concurrent use
	collator *collate.Collator
}

// NewViewService creates a new ViewService instance
func NewViewService(repo repository.Repository, opts ViewOptions, logger *logging.Logger) ViewService {
	if opts.TimeLayout == "" {
		opts.TimeLayout = domain.DisplayTimeLayout
	}
	if logger == nil {
		logger = logging.NopLogger()
	}

	tag := language.English
	if opts.Locale != "" {
		parsed, err := language.Parse(opts.Locale)
		if err != nil {
			logger.Warn("unknown locale, using English collation", "locale", opts.Locale)
		} else {
			tag = parsed
		}
	}

	return &viewServiceImpl{
		repo:       repo,
		timeLayout: opts.TimeLayout,
		logger:     logger.WithComponent("view_service"),
		collator:   collate.New(tag),
	}
}

// Search returns the tasks matching query without touching the store
func (v *viewServiceImpl) Search(ctx context.Context, query string) ([]*domain.Task, error) {
	tasks, err := v.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return v.match(tasks, query), nil
}

func (v *viewServiceImpl) match(tasks []*domain.Task, query string) []*domain.Task {
	if query == "" {
		return tasks
	}
	matches := make([]*domain.Task, 0, len(tasks))
	for _, task := range tasks {
		if task.Matches(query, v.timeLayout) {
			matches = append(matches, task)
		}
	}
	return matches
}

// Narrow keeps only the matching tasks in the store
func (v *viewServiceImpl) Narrow(ctx context.Context, query string) ([]*domain.Task, error) {
	matches, err := v.Search(ctx, query)
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, len(matches))
	for i, task := range matches {
		ids[i] = task.ID
	}

	removed, err := v.repo.Retain(ctx, ids)
	if err != nil {
		return nil, err
	}

	v.logger.Debug("collection narrowed", "query", query, "kept", len(matches), "removed", removed)
	return matches, nil
}

// FilterByStatus keeps tasks whose status begins with value
func (v *viewServiceImpl) FilterByStatus(tasks []*domain.Task, value string) []*domain.Task {
	if value == "" {
		return tasks
	}
	filtered := make([]*domain.Task, 0, len(tasks))
	for _, task := range tasks {
		if task.Status.MatchesFilter(value) {
			filtered = append(filtered, task)
		}
	}
	return filtered
}

// SortTasks returns a stably sorted copy of tasks
func (v *viewServiceImpl) SortTasks(tasks []*domain.Task, field domain.SortField, descending bool) []*domain.Task {
	sorted := make([]*domain.Task, len(tasks))
	copy(sorted, tasks)

	compare := v.comparator(field)

	v.mu.Lock()
	defer v.mu.Unlock()

	sort.SliceStable(sorted, func(i, j int) bool {
		c := compare(sorted[i], sorted[j])
		if descending {
			return c > 0
		}
		return c < 0
	})
	return sorted
}

func (v *viewServiceImpl) comparator(field domain.SortField) func(a, b *domain.Task) int {
	switch field {
	case domain.SortByTitle:
		return func(a, b *domain.Task) int {
			return v.collator.CompareString(a.Title, b.Title)
		}
	case domain.SortByDueDate:
		return compareDueDates
	default:
		return func(a, b *domain.Task) int {
			return a.Timestamp.Compare(b.Timestamp)
		}
	}
}

// compareDueDates orders dated tasks chronologically, with undated tasks last.
func compareDueDates(a, b *domain.Task) int {
	switch {
	case a.DueDate == nil && b.DueDate == nil:
		return 0
	case a.DueDate == nil:
		return 1
	case b.DueDate == nil:
		return -1
	}
	return a.DueDate.Compare(*b.DueDate)
}

// View composes the list, filter and sort steps
func (v *viewServiceImpl) View(ctx context.Context, opts domain.ListOptions) ([]*domain.Task, error) {
	tasks, err := v.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	tasks = v.FilterByStatus(tasks, opts.Status)
	tasks = v.match(tasks, opts.Query)
	return v.SortTasks(tasks, opts.SortBy, opts.Descending), nil
}
