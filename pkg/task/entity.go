package task

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Status is the task lifecycle state. There is no enforced transition graph;
// the owner may set any status directly.
type Status string

const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "in_progress"
	StatusDone       Status = "done"
)

// Priority of a task.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// ParseStatus validates a status value coming from the API edge.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusTodo, StatusInProgress, StatusDone:
		return Status(s), nil
	}
	return "", fmt.Errorf("unknown status %q", s)
}

// ParsePriority validates a priority value coming from the API edge.
func ParsePriority(s string) (Priority, error) {
	switch Priority(s) {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return Priority(s), nil
	}
	return "", fmt.Errorf("unknown priority %q", s)
}

// Task is owned by exactly one user; every access is scoped by
// (id, userId) jointly.
type Task struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      Status     `json:"status"`
	Priority    Priority   `json:"priority"`
	DueDate     *time.Time `json:"dueDate"`
	UserID      uuid.UUID  `json:"userId"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// Filters restrict List results. Nil fields are not applied; present fields
// are AND'ed with the owner restriction. Search matches title or description
// case-insensitively as a substring.
type Filters struct {
	Status   *Status
	Priority *Priority
	Search   string
}

// Stats aggregates an owner's tasks. Every enum value carries a key even
// when its count is zero.
type Stats struct {
	Total      int           `json:"total"`
	ByStatus   StatusCount   `json:"byStatus"`
	ByPriority PriorityCount `json:"byPriority"`
}

type StatusCount struct {
	Todo       int `json:"todo"`
	InProgress int `json:"in_progress"`
	Done       int `json:"done"`
}

type PriorityCount struct {
	Low    int `json:"low"`
	Medium int `json:"medium"`
	High   int `json:"high"`
}

// ErrTaskNotFound collapses "does not exist" and "exists under another owner"
// into one outcome, so callers cannot probe foreign task ids.
var ErrTaskNotFound = errors.New("task not found")

// Repository is the port for owner-scoped task persistence.
type Repository interface {
	Create(ctx context.Context, t Task) error
	GetByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (Task, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID, f Filters) ([]Task, error)
	// Update rewrites the mutable columns of an already-loaded task,
	// still guarded by (id, user_id).
	Update(ctx context.Context, t Task) error
	// Delete reports whether a row was removed for that owner.
	Delete(ctx context.Context, ownerID, id uuid.UUID) (bool, error)
}
