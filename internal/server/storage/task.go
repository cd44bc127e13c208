package storage

import (
	"context"

	"github.com/iudanet/taskkeeper/internal/models"
)

// SortOrder selects the direction of a task listing.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// TaskFilter narrows and pages a task listing. Nil Completed means both
// states; Limit <= 0 means no limit.
type TaskFilter struct {
	Completed *bool
	Limit     int
	Skip      int
	Sort      SortOrder
}

// TaskStorage defines the interface for task persistence. Every operation is
// scoped to an owner: a task is invisible outside the user that created it.
type TaskStorage interface {
	// CreateTask creates a new task
	CreateTask(ctx context.Context, task *models.Task) error

	// GetTask retrieves a task by ID for a given owner
	// Returns ErrTaskNotFound if absent or owned by another user
	GetTask(ctx context.Context, ownerID, taskID string) (*models.Task, error)

	// ListTasks retrieves the owner's tasks matching the filter, sorted by
	// creation time
	ListTasks(ctx context.Context, ownerID string, filter TaskFilter) ([]*models.Task, error)

	// UpdateTask persists changed task fields
	// Returns ErrTaskNotFound if absent or owned by another user
	UpdateTask(ctx context.Context, task *models.Task) error

	// DeleteTask deletes a task by ID for a given owner
	// Returns ErrTaskNotFound if absent or owned by another user
	DeleteTask(ctx context.Context, ownerID, taskID string) error
}
