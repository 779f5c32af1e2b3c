package services

import (
	"context"

	"github.com/google/uuid"

	"task-list/internal/domain"
	"task-list/internal/logging"
	"task-list/internal/repository"
	"task-list/internal/validation"
)

// taskServiceImpl implements the TaskService interface
type taskServiceImpl struct {
	repo          repository.Repository
	taskValidator *validation.TaskValidator
	logger        *logging.Logger
}

// NewTaskService creates a new TaskService instance. A nil validator uses the
// default limits; a nil logger discards output.
func NewTaskService(repo repository.Repository, taskValidator *validation.TaskValidator, logger *logging.Logger) TaskService {
	if taskValidator == nil {
		taskValidator = validation.NewTaskValidator()
	}
	if logger == nil {
		logger = logging.NopLogger()
	}
	return &taskServiceImpl{
		repo:          repo,
		taskValidator: taskValidator,
		logger:        logger.WithComponent("task_service"),
	}
}

func (t *taskServiceImpl) validate(input domain.TaskInput) error {
	return asAppError(t.taskValidator.ValidateTaskInput(input))
}

// titleKey trims a title used to look tasks up. Blank or over-long titles
// cannot match a stored task and are rejected.
func (t *taskServiceImpl) titleKey(title string) (string, error) {
	key, err := t.taskValidator.GetValidTitle(title)
	if err != nil {
		return "", asAppError(err)
	}
	return key, nil
}

func asAppError(err error) error {
	if ve, ok := validation.AsValidationError(err); ok {
		return ve.ToAppError()
	}
	return err
}

// CreateTask validates input and appends a new task
func (t *taskServiceImpl) CreateTask(ctx context.Context, input domain.TaskInput) (*domain.Task, error) {
	if err := t.validate(input); err != nil {
		return nil, err
	}

	task := domain.NewTask(input)
	if err := t.repo.Create(ctx, &task); err != nil {
		return nil, err
	}

	t.logger.Debug("task created", "id", task.ID.String(), "title", task.Title)
	return &task, nil
}

// GetTask retrieves a task by its ID
func (t *taskServiceImpl) GetTask(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	return t.repo.Get(ctx, id)
}

// ListTasks returns every task in insertion order
func (t *taskServiceImpl) ListTasks(ctx context.Context) ([]*domain.Task, error) {
	return t.repo.List(ctx)
}

// UpdateTask replaces every editable field of the task with the given ID
func (t *taskServiceImpl) UpdateTask(ctx context.Context, id uuid.UUID, input domain.TaskInput) (*domain.Task, error) {
	if err := t.validate(input); err != nil {
		return nil, err
	}

	task, err := t.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	task.Apply(input)
	if err := t.repo.Update(ctx, task); err != nil {
		return nil, err
	}

	t.logger.Debug("task updated", "id", task.ID.String(), "title", task.Title)
	return task, nil
}

// UpdateTaskByTitle replaces the first task whose title equals title
func (t *taskServiceImpl) UpdateTaskByTitle(ctx context.Context, title string, input domain.TaskInput) (*domain.Task, bool, error) {
	title, err := t.titleKey(title)
	if err != nil {
		return nil, false, err
	}
	if err := t.validate(input); err != nil {
		return nil, false, err
	}

	task := domain.NewTask(input)
	updated, err := t.repo.UpdateByTitle(ctx, title, &task)
	if err != nil {
		return nil, false, err
	}
	if !updated {
		t.logger.Debug("no task to update", "title", title)
		return nil, false, nil
	}

	t.logger.Debug("task updated by title", "id", task.ID.String(), "title", title)
	return &task, true, nil
}

// DeleteTask removes the task with the given ID
func (t *taskServiceImpl) DeleteTask(ctx context.Context, id uuid.UUID) error {
	if err := t.repo.Delete(ctx, id); err != nil {
		return err
	}
	t.logger.Debug("task deleted", "id", id.String())
	return nil
}

// DeleteTasksByTitle removes every task whose title equals title
func (t *taskServiceImpl) DeleteTasksByTitle(ctx context.Context, title string) (int, error) {
	title, err := t.titleKey(title)
	if err != nil {
		return 0, err
	}
	removed, err := t.repo.DeleteByTitle(ctx, title)
	if err != nil {
		return 0, err
	}
	t.logger.Debug("tasks deleted by title", "title", title, "count", removed)
	return removed, nil
}
