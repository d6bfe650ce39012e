package repository

import (
	"context"

	"github.com/veranemoloko/task-tracker/internal/domain"
)

// TaskRepo defines the interface for task storage operations.
type TaskRepo interface {
	List(ctx context.Context) ([]domain.Task, error)
	GetByID(ctx context.Context, id int64) (domain.Task, error)
	Add(ctx context.Context, task domain.Task) (domain.Task, error)
	Update(ctx context.Context, task domain.Task) (domain.Task, error)
	Delete(ctx context.Context, id int64) error
}
