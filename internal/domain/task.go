package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// TaskStatus represents the current state of a Task. The set is closed:
// parsing and JSON decoding reject any literal outside the three values.
type TaskStatus string

const (
	StatusTodo       TaskStatus = "todo"
	StatusInProgress TaskStatus = "in_progress"
	StatusDone       TaskStatus = "done"
)

// ParseStatus converts a raw string into a TaskStatus.
func ParseStatus(raw string) (TaskStatus, error) {
	status := TaskStatus(raw)
	if !status.Valid() {
		return "", fmt.Errorf("unknown task status %q", raw)
	}
	return status, nil
}

func (s TaskStatus) Valid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusDone:
		return true
	}
	return false
}

func (s *TaskStatus) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	status, err := ParseStatus(raw)
	if err != nil {
		return err
	}

	*s = status
	return nil
}

// Task is a single trackable work item. The repository assigns ID on
// creation; it is immutable afterwards. The validate tags guard records
// decoded from the store.
type Task struct {
	ID          int64      `json:"id" validate:"required,gt=0"`
	Title       string     `json:"title" validate:"required,notblank"`
	Description string     `json:"description"`
	Status      TaskStatus `json:"status" validate:"required"`
	CreatedAt   time.Time  `json:"created_at" validate:"required"`
	UpdatedAt   time.Time  `json:"updated_at" validate:"required,gtefield=CreatedAt"`
}

// TaskPatch is a partial update of a Task's details. Nil fields keep the
// current value.
type TaskPatch struct {
	Title       *string
	Description *string
}

// Apply returns a copy of the task with the patch's non-nil fields
// overriding the existing values. The receiver is left untouched.
func (t Task) Apply(patch TaskPatch) Task {
	updated := t
	if patch.Title != nil {
		updated.Title = *patch.Title
	}
	if patch.Description != nil {
		updated.Description = *patch.Description
	}
	return updated
}
