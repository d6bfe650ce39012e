package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"

	"github.com/veranemoloko/task-tracker/internal/domain"
	errpkg "github.com/veranemoloko/task-tracker/internal/errors"
	"github.com/veranemoloko/task-tracker/internal/validation"
)

// TaskStore persists tasks as a single JSON array on disk, in insertion
// order. Every mutation is a full read-modify-write of the document; a
// missing file reads as an empty collection and is created lazily on the
// first write.
type TaskStore struct {
	mu   sync.Mutex
	file string
}

// NewTaskStore creates a TaskStore backed by the file at filePath. The file
// is not touched until the first operation.
func NewTaskStore(filePath string) *TaskStore {
	return &TaskStore{file: filepath.Clean(filePath)}
}

// List returns all tasks in insertion order.
func (s *TaskStore) List(ctx context.Context) ([]domain.Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.readAll()
}

// GetByID returns the task with the given id, or ErrNotFound.
func (s *TaskStore) GetByID(ctx context.Context, id int64) (domain.Task, error) {
	if err := ctx.Err(); err != nil {
		return domain.Task{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tasks, err := s.readAll()
	if err != nil {
		return domain.Task{}, err
	}

	for _, task := range tasks {
		if task.ID == id {
			return task, nil
		}
	}
	return domain.Task{}, fmt.Errorf("task id=%d: %w", id, errpkg.ErrNotFound)
}

// Add assigns the next free id to the task, appends it and persists the
// collection. The stored task is returned.
func (s *TaskStore) Add(ctx context.Context, task domain.Task) (domain.Task, error) {
	if err := ctx.Err(); err != nil {
		return domain.Task{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tasks, err := s.readAll()
	if err != nil {
		return domain.Task{}, err
	}

	task.ID = nextID(tasks)
	tasks = append(tasks, task)

	if err := s.writeAll(tasks); err != nil {
		return domain.Task{}, err
	}

	slog.Debug("task persisted", "task_id", task.ID, "tasks_count", len(tasks))
	return task, nil
}

// Update replaces the task with a matching id in place, preserving its
// position, and persists the collection.
func (s *TaskStore) Update(ctx context.Context, task domain.Task) (domain.Task, error) {
	if err := ctx.Err(); err != nil {
		return domain.Task{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tasks, err := s.readAll()
	if err != nil {
		return domain.Task{}, err
	}

	replaced := false
	for i := range tasks {
		if tasks[i].ID == task.ID {
			tasks[i] = task
			replaced = true
			break
		}
	}
	if !replaced {
		return domain.Task{}, fmt.Errorf("task id=%d: %w", task.ID, errpkg.ErrNotFound)
	}

	if err := s.writeAll(tasks); err != nil {
		return domain.Task{}, err
	}

	slog.Debug("task persisted", "task_id", task.ID, "status", task.Status)
	return task, nil
}

// Delete removes the task with the given id and persists the collection.
func (s *TaskStore) Delete(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tasks, err := s.readAll()
	if err != nil {
		return err
	}

	kept := make([]domain.Task, 0, len(tasks))
	for _, task := range tasks {
		if task.ID != id {
			kept = append(kept, task)
		}
	}
	if len(kept) == len(tasks) {
		return fmt.Errorf("task id=%d: %w", id, errpkg.ErrNotFound)
	}

	if err := s.writeAll(kept); err != nil {
		return err
	}

	slog.Debug("task removed", "task_id", id, "tasks_count", len(kept))
	return nil
}

func nextID(tasks []domain.Task) int64 {
	var maxID int64
	for _, task := range tasks {
		if task.ID > maxID {
			maxID = task.ID
		}
	}
	return maxID + 1
}

func (s *TaskStore) readAll() ([]domain.Task, error) {
	f, err := os.Open(s.file)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errpkg.NewStorageError("read", s.file, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, errpkg.NewStorageError("read", s.file, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	var tasks []domain.Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		return nil, errpkg.NewStorageError("decode", s.file, err)
	}

	for _, task := range tasks {
		if err := validation.ValidateRecord(task); err != nil {
			return nil, errpkg.NewStorageError("decode", s.file, err)
		}
	}

	return tasks, nil
}

func (s *TaskStore) writeAll(tasks []domain.Task) error {
	if err := os.MkdirAll(filepath.Dir(s.file), 0o755); err != nil {
		return errpkg.NewStorageError("mkdir", s.file, err)
	}

	if tasks == nil {
		tasks = []domain.Task{}
	}
	data, err := json.MarshalIndent(tasks, "", "  ")
	if err != nil {
		return errpkg.NewStorageError("encode", s.file, err)
	}

	tempFile := fmt.Sprintf("%s.%s.tmp", s.file, uuid.NewString())
	if err := os.WriteFile(tempFile, data, 0o644); err != nil {
		return errpkg.NewStorageError("write", s.file, err)
	}

	if err := os.Rename(tempFile, s.file); err != nil {
		_ = os.Remove(tempFile)
		return errpkg.NewStorageError("write", s.file, err)
	}

	return nil
}
