// Package api is the form boundary of the task list: it turns raw user input
// into domain values and drives the services.
package api

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"task-list/internal/config"
	"task-list/internal/domain"
	"task-list/internal/errors"
	"task-list/internal/export"
	"task-list/internal/logging"
	"task-list/internal/repository"
	"task-list/internal/services"
	"task-list/internal/validation"
)

// BusinessAPI defines every task operation available to front ends
type BusinessAPI interface {
	// ========== Task Management ==========

	// CreateTask parses and validates form, then appends a new task
	CreateTask(ctx context.Context, form TaskForm) (*domain.Task, error)

	// EditTask changes the fields set in form. By title, only the first
	// matching task changes and no match returns (nil, nil).
	EditTask(ctx context.Context, ref TaskRef, form EditForm) (*domain.Task, error)

	TagTask(ctx context.Context, ref TaskRef, tags ...string) (*domain.Task, error)
	UntagTask(ctx context.Context, ref TaskRef, tags ...string) (*domain.Task, error)

	// DeleteTask removes the referenced task, or every task with the
	// title when ref.ByTitle is set, and returns how many were removed
	DeleteTask(ctx context.Context, ref TaskRef) (int, error)

	// ========== Query Operations ==========

	GetTask(ctx context.Context, ref TaskRef) (*domain.Task, error)
	ListTasks(ctx context.Context, req ListRequest) ([]*domain.Task, error)

	// SearchTasks filters by text. It narrows the store instead when
	// destructive search is configured.
	SearchTasks(ctx context.Context, query string, req ListRequest) ([]*domain.Task, error)

	// NarrowTasks keeps only the matching tasks in the store
	NarrowTasks(ctx context.Context, query string) ([]*domain.Task, error)

	GetSummary(ctx context.Context) (*services.Summary, error)

	// ExportTasks writes the listed tasks to w. An empty format uses the
	// configured default.
	ExportTasks(ctx context.Context, w io.Writer, format string, req ListRequest) error
}

// Options tune the form boundary
type Options struct {
	TimeLayout          string
	Location            *time.Location
	DestructiveSearch   bool
	DefaultSort         string
	DefaultExportFormat string
}

// OptionsFromConfig derives Options from the application configuration
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		TimeLayout:          cfg.Display.TimeFormat,
		Location:            time.Local,
		DestructiveSearch:   cfg.Search.Destructive,
		DefaultSort:         cfg.Commands.ListDefaultSort,
		DefaultExportFormat: cfg.Commands.ExportDefaultFormat,
	}
}

// businessAPIImpl implements the BusinessAPI interface
type businessAPIImpl struct {
	services *services.ServiceContainer
	exporter *export.Exporter
	opts     Options
	logger   *logging.Logger
}

// NewBusinessAPI creates a BusinessAPI over an existing service container
func NewBusinessAPI(container *services.ServiceContainer, opts Options, logger *logging.Logger) BusinessAPI {
	if opts.TimeLayout == "" {
		opts.TimeLayout = domain.DisplayTimeLayout
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.DefaultExportFormat == "" {
		opts.DefaultExportFormat = export.FormatCSV
	}
	if logger == nil {
		logger = logging.NopLogger()
	}
	return &businessAPIImpl{
		services: container,
		exporter: export.NewExporter(opts.TimeLayout),
		opts:     opts,
		logger:   logger.WithComponent("api"),
	}
}

// New wires the services for repo from cfg and returns the API over them
func New(repo repository.Repository, cfg *config.Config, logger *logging.Logger) BusinessAPI {
	if logger == nil {
		logger = logging.NopLogger()
	}
	taskValidator := validation.NewTaskValidatorWithValidator(validation.NewValidatorWithConfig(cfg))
	container := &services.ServiceContainer{
		TaskService: services.NewTaskService(repo, taskValidator, logger),
		ViewService: services.NewViewService(repo, services.ViewOptions{
			TimeLayout: cfg.Display.TimeFormat,
			Locale:     cfg.Display.Locale,
		}, logger),
		ReportingService: services.NewReportingService(repo, nil),
	}
	return NewBusinessAPI(container, OptionsFromConfig(cfg), logger)
}

func (b *businessAPIImpl) parser() *formParser {
	return newFormParser(b.opts.TimeLayout, b.opts.Location)
}

// ========== Task Management ==========

func (b *businessAPIImpl) CreateTask(ctx context.Context, form TaskForm) (*domain.Task, error) {
	input, err := b.parser().Input(form)
	if err != nil {
		return nil, err
	}
	return b.services.TaskService.CreateTask(ctx, input)
}

func (b *businessAPIImpl) EditTask(ctx context.Context, ref TaskRef, form EditForm) (*domain.Task, error) {
	if form.IsEmpty() {
		return nil, errors.NewInvalidInputError("fields", "", "nothing to change")
	}
	return b.modify(ctx, ref, func(current domain.TaskInput) (domain.TaskInput, error) {
		return b.parser().Merge(current, form)
	})
}

func (b *businessAPIImpl) TagTask(ctx context.Context, ref TaskRef, tags ...string) (*domain.Task, error) {
	return b.modify(ctx, ref, func(current domain.TaskInput) (domain.TaskInput, error) {
		current.Tags = append(current.Tags, splitAll(tags)...)
		return current, nil
	})
}

func (b *businessAPIImpl) UntagTask(ctx context.Context, ref TaskRef, tags ...string) (*domain.Task, error) {
	return b.modify(ctx, ref, func(current domain.TaskInput) (domain.TaskInput, error) {
		current.Tags = domain.RemoveTags(current.Tags, splitAll(tags)...)
		return current, nil
	})
}

// modify loads the referenced task, transforms its input and stores the result
func (b *businessAPIImpl) modify(ctx context.Context, ref TaskRef, change func(domain.TaskInput) (domain.TaskInput, error)) (*domain.Task, error) {
	ref = ref.clean()
	if ref.ByTitle {
		current, err := b.firstByTitle(ctx, ref.Value)
		if err != nil {
			return nil, err
		}
		if current == nil {
			b.logger.Debug("edit by title matched nothing", "title", ref.Value)
			return nil, nil
		}
		input, err := change(current.Input())
		if err != nil {
			return nil, err
		}
		updated, _, err := b.services.TaskService.UpdateTaskByTitle(ctx, ref.Value, input)
		return updated, err
	}

	current, err := b.resolve(ctx, ref.Value)
	if err != nil {
		return nil, err
	}
	input, err := change(current.Input())
	if err != nil {
		return nil, err
	}
	return b.services.TaskService.UpdateTask(ctx, current.ID, input)
}

func (b *businessAPIImpl) DeleteTask(ctx context.Context, ref TaskRef) (int, error) {
	ref = ref.clean()
	if ref.ByTitle {
		return b.services.TaskService.DeleteTasksByTitle(ctx, ref.Value)
	}

	task, err := b.resolve(ctx, ref.Value)
	if err != nil {
		return 0, err
	}
	if err := b.services.TaskService.DeleteTask(ctx, task.ID); err != nil {
		return 0, err
	}
	return 1, nil
}

// ========== Query Operations ==========

func (b *businessAPIImpl) GetTask(ctx context.Context, ref TaskRef) (*domain.Task, error) {
	ref = ref.clean()
	if !ref.ByTitle {
		return b.resolve(ctx, ref.Value)
	}
	task, err := b.firstByTitle(ctx, ref.Value)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, errors.NewNotFoundError("task", ref.Value)
	}
	return task, nil
}

func (b *businessAPIImpl) ListTasks(ctx context.Context, req ListRequest) ([]*domain.Task, error) {
	opts, err := b.listOptions(req)
	if err != nil {
		return nil, err
	}
	return b.services.ViewService.View(ctx, opts)
}

func (b *businessAPIImpl) SearchTasks(ctx context.Context, query string, req ListRequest) ([]*domain.Task, error) {
	opts, err := b.listOptions(req)
	if err != nil {
		return nil, err
	}

	if !b.opts.DestructiveSearch {
		opts.Query = query
		return b.services.ViewService.View(ctx, opts)
	}

	matches, err := b.services.ViewService.Narrow(ctx, query)
	if err != nil {
		return nil, err
	}
	matches = b.services.ViewService.FilterByStatus(matches, opts.Status)
	return b.services.ViewService.SortTasks(matches, opts.SortBy, opts.Descending), nil
}

func (b *businessAPIImpl) NarrowTasks(ctx context.Context, query string) ([]*domain.Task, error) {
	return b.services.ViewService.Narrow(ctx, query)
}

func (b *businessAPIImpl) GetSummary(ctx context.Context) (*services.Summary, error) {
	return b.services.ReportingService.Summarize(ctx)
}

func (b *businessAPIImpl) ExportTasks(ctx context.Context, w io.Writer, format string, req ListRequest) error {
	if format == "" {
		format = b.opts.DefaultExportFormat
	}
	if _, err := export.NormalizeFormat(format); err != nil {
		return err
	}

	tasks, err := b.ListTasks(ctx, req)
	if err != nil {
		return err
	}
	return b.exporter.Export(w, tasks, format)
}

// ========== Helpers ==========

func (b *businessAPIImpl) listOptions(req ListRequest) (domain.ListOptions, error) {
	sortBy := req.Sort
	if sortBy == "" {
		sortBy = b.opts.DefaultSort
	}
	field, ok := domain.ParseSortField(sortBy)
	if !ok {
		return domain.ListOptions{}, errors.NewInvalidInputError("sort", req.Sort, "must be one of timestamp, title, due_date")
	}
	return domain.ListOptions{
		Status:     strings.ToUpper(strings.TrimSpace(req.Status)),
		SortBy:     field,
		Descending: req.Descending,
	}, nil
}

// resolve finds a task by full ID or unique ID prefix
func (b *businessAPIImpl) resolve(ctx context.Context, ref string) (*domain.Task, error) {
	ref = strings.ToLower(strings.TrimSpace(ref))
	if ref == "" {
		return nil, errors.NewInvalidInputError("task", ref, "a task id is required")
	}

	if id, err := uuid.Parse(ref); err == nil {
		return b.services.TaskService.GetTask(ctx, id)
	}

	if !isIDPrefix(ref) {
		return nil, errors.NewInvalidInputError("task", ref, "not a task id; use --by-title to match by title")
	}

	tasks, err := b.services.TaskService.ListTasks(ctx)
	if err != nil {
		return nil, err
	}

	var found *domain.Task
	for _, task := range tasks {
		if strings.HasPrefix(task.ID.String(), ref) {
			if found != nil {
				return nil, errors.NewInvalidInputError("task", ref, "id prefix matches more than one task")
			}
			found = task
		}
	}
	if found == nil {
		return nil, errors.NewNotFoundError("task", ref)
	}
	return found, nil
}

// firstByTitle returns the first task with the exact title, or nil
func (b *businessAPIImpl) firstByTitle(ctx context.Context, title string) (*domain.Task, error) {
	tasks, err := b.services.TaskService.ListTasks(ctx)
	if err != nil {
		return nil, err
	}
	for _, task := range tasks {
		if task.Title == title {
			return task, nil
		}
	}
	return nil, nil
}

func splitAll(values []string) []string {
	var out []string
	for _, v := range values {
		out = append(out, domain.SplitTags(v)...)
	}
	return out
}
