package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/locvowork/task_management_sample/internal/domain"
	"github.com/locvowork/task_management_sample/internal/logger"
)

type TaskService interface {
	Create(ctx context.Context, task domain.Task) (domain.Task, error)
	ListByAssignee(ctx context.Context, assignee string) ([]domain.Task, error)
	ListAll(ctx context.Context) ([]domain.Task, domain.DecodeReport, error)
	UpdateStatusByID(ctx context.Context, id uuid.UUID, status string) (bool, error)
	UpdateStatusByAssigneeAndName(ctx context.Context, assignee, name, status string) (bool, error)
	ReplaceByID(ctx context.Context, id uuid.UUID, task domain.Task) (bool, error)
	AssignedTo(ctx context.Context, assignee string) ([]domain.Task, error)
	AssignedBy(ctx context.Context, assigner string) ([]domain.Task, error)
	Summary(ctx context.Context, user string) (*domain.TaskSummary, error)
}

type taskService struct {
	repo domain.TaskRepository
	now  func() time.Time
}

func NewTaskService(repo domain.TaskRepository) TaskService {
	return &taskService{repo: repo, now: time.Now}
}

func (s *taskService) Create(ctx context.Context, task domain.Task) (domain.Task, error) {
	task = domain.NewTask(task)
	if err := s.repo.Append(ctx, task); err != nil {
		return domain.Task{}, fmt.Errorf("failed to append task: %w", err)
	}
	logger.InfoLog(ctx, "Created task %s for %s (assigned by %s)", task.ID, task.Assignee, task.Assigner)
	return task, nil
}

func (s *taskService) ListByAssignee(ctx context.Context, assignee string) ([]domain.Task, error) {
	tasks, report, err := s.repo.List(ctx, domain.TaskFilter{Assignee: assignee})
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	s.logReport(ctx, report)
	return tasks, nil
}

func (s *taskService) ListAll(ctx context.Context) ([]domain.Task, domain.DecodeReport, error) {
	tasks, report, err := s.repo.List(ctx, domain.TaskFilter{})
	if err != nil {
		return nil, report, fmt.Errorf("failed to list tasks: %w", err)
	}
	s.logReport(ctx, report)
	return tasks, report, nil
}

func (s *taskService) UpdateStatusByID(ctx context.Context, id uuid.UUID, status string) (bool, error) {
	found, err := s.repo.UpdateStatusByID(ctx, id, status)
	if err != nil {
		return false, fmt.Errorf("failed to update task %s: %w", id, err)
	}
	return found, nil
}

func (s *taskService) UpdateStatusByAssigneeAndName(ctx context.Context, assignee, name, status string) (bool, error) {
	found, err := s.repo.UpdateStatusByAssigneeAndName(ctx, assignee, name, status)
	if err != nil {
		return false, fmt.Errorf("failed to update task %q for %s: %w", name, assignee, err)
	}
	return found, nil
}

func (s *taskService) ReplaceByID(ctx context.Context, id uuid.UUID, task domain.Task) (bool, error) {
	if task.RequestDate.IsZero() {
		task.RequestDate = s.now()
	}
	found, err := s.repo.ReplaceByID(ctx, id, task)
	if err != nil {
		return false, fmt.Errorf("failed to replace task %s: %w", id, err)
	}
	return found, nil
}

func (s *taskService) AssignedTo(ctx context.Context, assignee string) ([]domain.Task, error) {
	all, _, err := s.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	var out []domain.Task
	for _, t := range all {
		if MatchesAssignee(assignee, t.Assignee) {
			out = append(out, t)
		}
	}
	return out, nil
}

func (s *taskService) AssignedBy(ctx context.Context, assigner string) ([]domain.Task, error) {
	all, _, err := s.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	var out []domain.Task
	for _, t := range all {
		if MatchesAssigner(assigner, t.Assigner) {
			out = append(out, t)
		} else {
			logger.DebugLog(ctx, "Skipped task %s: assigner %q does not match %q", t.ID, t.Assigner, assigner)
		}
	}
	logger.InfoLog(ctx, "Matched %d of %d tasks for assigner %q", len(out), len(all), assigner)
	return out, nil
}

func (s *taskService) Summary(ctx context.Context, user string) (*domain.TaskSummary, error) {
	all, _, err := s.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	now := s.now()
	summary := &domain.TaskSummary{
		User:         user,
		AssignedToMe: domain.StatusCounts{ByStatus: map[string]int{}},
		AssignedByMe: domain.StatusCounts{ByStatus: map[string]int{}},
	}
	for _, t := range all {
		if MatchesAssignee(user, t.Assignee) {
			tally(&summary.AssignedToMe, t, now)
		}
		if MatchesAssigner(user, t.Assigner) {
			tally(&summary.AssignedByMe, t, now)
		}
	}
	return summary, nil
}

func tally(c *domain.StatusCounts, t domain.Task, now time.Time) {
	c.Total++
	status := strings.ToLower(strings.TrimSpace(t.Status))
	c.ByStatus[status]++
	if t.Deadline != nil && t.Deadline.Before(now) && !isDone(status) {
		c.Overdue++
	}
}

func isDone(status string) bool {
	switch status {
	case "complete", "completed", "done":
		return true
	}
	return false
}

func (s *taskService) logReport(ctx context.Context, report domain.DecodeReport) {
	if len(report.Skipped) > 0 {
		logger.WarnLog(ctx, "Task sheet scan: %d rows, %d decoded, %d skipped", report.Scanned, report.Decoded, len(report.Skipped))
	}
}
