package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/veranemoloko/task-tracker/internal/domain"
	errpkg "github.com/veranemoloko/task-tracker/internal/errors"
	"github.com/veranemoloko/task-tracker/internal/repository"
	"github.com/veranemoloko/task-tracker/internal/validation"
)

// TaskService enforces task business rules on top of an injected repository.
// It translates the repository's not-found signal into ErrTaskNotFound and
// lets StorageError pass through unchanged.
type TaskService struct {
	repo   repository.TaskRepo
	logger *slog.Logger
	now    func() time.Time
}

func NewTaskService(repo repository.TaskRepo, logger *slog.Logger) *TaskService {
	return &TaskService{
		repo:   repo,
		logger: logger,
		now:    time.Now,
	}
}

// CreateTask validates the title, builds a new todo task and stores it.
func (s *TaskService) CreateTask(ctx context.Context, title, description string) (domain.Task, error) {
	title = strings.TrimSpace(title)
	if err := validation.ValidateTitle(title); err != nil {
		return domain.Task{}, fmt.Errorf("%w: %v", errpkg.ErrValidation, err)
	}

	now := s.now()
	task := domain.Task{
		Title:       title,
		Description: strings.TrimSpace(description),
		Status:      domain.StatusTodo,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.repo.Add(ctx, task)
	if err != nil {
		return domain.Task{}, err
	}

	s.logger.Info("task created", "task_id", created.ID, "title", created.Title)
	return created, nil
}

// ListTasks returns all tasks in store order, optionally filtered by status.
func (s *TaskService) ListTasks(ctx context.Context, status *domain.TaskStatus) ([]domain.Task, error) {
	tasks, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if status == nil {
		return tasks, nil
	}

	filtered := make([]domain.Task, 0, len(tasks))
	for _, task := range tasks {
		if task.Status == *status {
			filtered = append(filtered, task)
		}
	}
	return filtered, nil
}

// ChangeStatus moves a task to the given status. Any status may move to any
// other status, including a no-op to the same one.
func (s *TaskService) ChangeStatus(ctx context.Context, id int64, status domain.TaskStatus) (domain.Task, error) {
	if !status.Valid() {
		return domain.Task{}, fmt.Errorf("%w: unknown task status %q", errpkg.ErrValidation, status)
	}

	task, err := s.getTask(ctx, id)
	if err != nil {
		return domain.Task{}, err
	}

	task.Status = status
	task.UpdatedAt = s.now()

	updated, err := s.repo.Update(ctx, task)
	if err != nil {
		return domain.Task{}, translateNotFound(err, id)
	}

	s.logger.Info("task status changed", "task_id", id, "status", status)
	return updated, nil
}

// UpdateDetails applies a partial patch to a task's title and description.
// Unsupplied fields keep their current values.
func (s *TaskService) UpdateDetails(ctx context.Context, id int64, patch domain.TaskPatch) (domain.Task, error) {
	if patch.Title != nil {
		trimmed := strings.TrimSpace(*patch.Title)
		if err := validation.ValidateTitle(trimmed); err != nil {
			return domain.Task{}, fmt.Errorf("%w: %v", errpkg.ErrValidation, err)
		}
		patch.Title = &trimmed
	}
	if patch.Description != nil {
		trimmed := strings.TrimSpace(*patch.Description)
		patch.Description = &trimmed
	}

	task, err := s.getTask(ctx, id)
	if err != nil {
		return domain.Task{}, err
	}

	updatedTask := task.Apply(patch)
	updatedTask.UpdatedAt = s.now()

	updated, err := s.repo.Update(ctx, updatedTask)
	if err != nil {
		return domain.Task{}, translateNotFound(err, id)
	}

	s.logger.Info("task details updated", "task_id", id)
	return updated, nil
}

// DeleteTask removes a task permanently.
func (s *TaskService) DeleteTask(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return translateNotFound(err, id)
	}

	s.logger.Info("task deleted", "task_id", id)
	return nil
}

func (s *TaskService) getTask(ctx context.Context, id int64) (domain.Task, error) {
	task, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Task{}, translateNotFound(err, id)
	}
	return task, nil
}

func translateNotFound(err error, id int64) error {
	if errors.Is(err, errpkg.ErrNotFound) {
		return fmt.Errorf("task id=%d: %w", id, errpkg.ErrTaskNotFound)
	}
	return err
}
