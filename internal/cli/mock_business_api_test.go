package cli

import (
	"context"
	"io"

	"task-list/internal/api"
	"task-list/internal/domain"
	"task-list/internal/services"
)

// mockBusinessAPI implements the BusinessAPI interface for testing. Calls
// without a configured func panic through the nil embedded interface.
type mockBusinessAPI struct {
	api.BusinessAPI

	createTask  func(ctx context.Context, form api.TaskForm) (*domain.Task, error)
	listTasks   func(ctx context.Context, req api.ListRequest) ([]*domain.Task, error)
	getSummary  func(ctx context.Context) (*services.Summary, error)
	exportTasks func(ctx context.Context, w io.Writer, format string, req api.ListRequest) error

	lastList api.ListRequest
}

func (m *mockBusinessAPI) CreateTask(ctx context.Context, form api.TaskForm) (*domain.Task, error) {
	return m.createTask(ctx, form)
}

func (m *mockBusinessAPI) ListTasks(ctx context.Context, req api.ListRequest) ([]*domain.Task, error) {
	m.lastList = req
	if m.listTasks == nil {
		return nil, nil
	}
	return m.listTasks(ctx, req)
}

func (m *mockBusinessAPI) GetSummary(ctx context.Context) (*services.Summary, error) {
	return m.getSummary(ctx)
}

func (m *mockBusinessAPI) ExportTasks(ctx context.Context, w io.Writer, format string, req api.ListRequest) error {
	return m.exportTasks(ctx, w, format, req)
}
