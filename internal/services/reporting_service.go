package services

import (
	"context"
	"sort"
	"time"

	"task-list/internal/domain"
	"task-list/internal/repository"
)

// reportingServiceImpl implements the ReportingService interface
type reportingServiceImpl struct {
	repo repository.Repository
	now  repository.Clock
}

// NewReportingService creates a new ReportingService instance. A nil clock
// uses time.Now.
func NewReportingService(repo repository.Repository, now repository.Clock) ReportingService {
	if now == nil {
		now = time.Now
	}
	return &reportingServiceImpl{repo: repo, now: now}
}

// Summarize counts tasks per status and tag and finds overdue work
func (r *reportingServiceImpl) Summarize(ctx context.Context) (*Summary, error) {
	tasks, err := r.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	now := r.now()
	summary := &Summary{
		Total:       len(tasks),
		ByStatus:    make(map[domain.Status]int, len(domain.AllStatuses())),
		ByTag:       make([]TagCount, 0),
		GeneratedAt: now,
	}
	for _, status := range domain.AllStatuses() {
		summary.ByStatus[status] = 0
	}

	tagCounts := make(map[string]int)
	for _, task := range tasks {
		summary.ByStatus[task.Status]++

		if len(task.Tags) == 0 {
			summary.Untagged++
		}
		for _, tag := range task.Tags {
			tagCounts[tag]++
		}

		if task.IsPastDue(now) {
			summary.PastDue++
			continue
		}
		if task.DueDate != nil && task.Status != domain.StatusDone {
			if summary.NextDue == nil || task.DueDate.Before(*summary.NextDue.DueDate) {
				summary.NextDue = task
			}
		}
	}

	for tag, count := range tagCounts {
		summary.ByTag = append(summary.ByTag, TagCount{Tag: tag, Count: count})
	}
	sort.Slice(summary.ByTag, func(i, j int) bool {
		if summary.ByTag[i].Count != summary.ByTag[j].Count {
			return summary.ByTag[i].Count > summary.ByTag[j].Count
		}
		return summary.ByTag[i].Tag < summary.ByTag[j].Tag
	})

	return summary, nil
}
