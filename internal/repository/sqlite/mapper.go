package sqlite

import (
	"fmt"

	"github.com/google/uuid"

	"task-list/internal/domain"
)

func toRow(task *domain.Task) (*taskRow, error) {
	tags, err := FormatTagsForDB(task.Tags)
	if err != nil {
		return nil, fmt.Errorf("encode tags: %w", err)
	}

	row := &taskRow{
		ID:          task.ID.String(),
		Title:       task.Title,
		Description: task.Description,
		Tags:        tags,
		Status:      string(task.Status),
		CreatedAt:   FormatTimeForDB(task.Timestamp),
	}
	if task.DueDate != nil {
		row.DueDate.String = FormatTimeForDB(*task.DueDate)
		row.DueDate.Valid = true
	}
	return row, nil
}

func fromRow(row *taskRow) (*domain.Task, error) {
	id, err := uuid.Parse(row.ID)
	if err != nil {
		return nil, fmt.Errorf("parse id %q: %w", row.ID, err)
	}

	createdAt, err := ParseTimeFromDB(row.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}

	tags, err := ParseTagsFromDB(row.Tags)
	if err != nil {
		return nil, fmt.Errorf("decode tags: %w", err)
	}

	task := &domain.Task{
		ID:          id,
		Title:       row.Title,
		Description: row.Description,
		Tags:        tags,
		Status:      domain.Status(row.Status),
		Timestamp:   createdAt,
	}

	if row.DueDate.Valid {
		due, err := ParseTimeFromDB(row.DueDate.String)
		if err != nil {
			return nil, fmt.Errorf("parse due_date: %w", err)
		}
		task.DueDate = &due
	}

	return task, nil
}

func fromRows(rows []*taskRow) ([]*domain.Task, error) {
	tasks := make([]*domain.Task, 0, len(rows))
	for _, row := range rows {
		task, err := fromRow(row)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	return tasks, nil
}
