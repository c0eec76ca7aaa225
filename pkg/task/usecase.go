package task

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CreateInput carries the caller-supplied fields for a new task.
// Omitted status/priority fall back to the documented defaults.
type CreateInput struct {
	Title       string
	Description string
	Status      *Status
	Priority    *Priority
	DueDate     *time.Time
}

// UpdateInput is a partial update: nil fields keep their prior values.
type UpdateInput struct {
	Title       *string
	Description *string
	Status      *Status
	Priority    *Priority
	DueDate     *time.Time
}

// UseCase encapsulates owner-scoped task operations.
type UseCase interface {
	Create(ctx context.Context, ownerID uuid.UUID, in CreateInput) (Task, error)
	List(ctx context.Context, ownerID uuid.UUID, f Filters) ([]Task, error)
	GetByID(ctx context.Context, ownerID, id uuid.UUID) (Task, error)
	Update(ctx context.Context, ownerID, id uuid.UUID, in UpdateInput) (Task, error)
	Delete(ctx context.Context, ownerID, id uuid.UUID) (bool, error)
	Stats(ctx context.Context, ownerID uuid.UUID) (Stats, error)
}

type service struct {
	repo Repository
	log  *zap.Logger
}

func NewService(repo Repository, log *zap.Logger) UseCase {
	return &service{repo: repo, log: log}
}

// ErrValidation is a simple validation error.
type ErrValidation string

func (e ErrValidation) Error() string { return string(e) }

func (s *service) Create(ctx context.Context, ownerID uuid.UUID, in CreateInput) (Task, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return Task{}, ErrValidation("title is required")
	}
	status := StatusTodo
	if in.Status != nil {
		status = *in.Status
	}
	priority := PriorityMedium
	if in.Priority != nil {
		priority = *in.Priority
	}
	now := time.Now().UTC()
	t := Task{
		ID:          uuid.New(),
		Title:       title,
		Description: in.Description,
		Status:      status,
		Priority:    priority,
		DueDate:     in.DueDate,
		UserID:      ownerID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Create(ctx, t); err != nil {
		return Task{}, err
	}
	s.log.Info("task created", zap.String("taskId", t.ID.String()), zap.String("userId", ownerID.String()))
	return t, nil
}

func (s *service) List(ctx context.Context, ownerID uuid.UUID, f Filters) ([]Task, error) {
	return s.repo.ListByOwner(ctx, ownerID, f)
}

func (s *service) GetByID(ctx context.Context, ownerID, id uuid.UUID) (Task, error) {
	return s.repo.GetByIDForOwner(ctx, ownerID, id)
}

// Update is read-then-write without a transaction: concurrent updates to the
// same task are last-write-wins.
func (s *service) Update(ctx context.Context, ownerID, id uuid.UUID, in UpdateInput) (Task, error) {
	t, err := s.repo.GetByIDForOwner(ctx, ownerID, id)
	if err != nil {
		return Task{}, err
	}
	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			return Task{}, ErrValidation("title must not be empty")
		}
		t.Title = title
	}
	if in.Description != nil {
		t.Description = *in.Description
	}
	if in.Status != nil {
		t.Status = *in.Status
	}
	if in.Priority != nil {
		t.Priority = *in.Priority
	}
	if in.DueDate != nil {
		t.DueDate = in.DueDate
	}
	t.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, t); err != nil {
		return Task{}, err
	}
	s.log.Info("task updated", zap.String("taskId", id.String()), zap.String("userId", ownerID.String()))
	return t, nil
}

func (s *service) Delete(ctx context.Context, ownerID, id uuid.UUID) (bool, error) {
	deleted, err := s.repo.Delete(ctx, ownerID, id)
	if err != nil {
		return false, err
	}
	if deleted {
		s.log.Info("task deleted", zap.String("taskId", id.String()), zap.String("userId", ownerID.String()))
	}
	return deleted, nil
}

// Stats enumerates the owner's full task set and tallies it; every enum value
// is present in the result even at zero.
func (s *service) Stats(ctx context.Context, ownerID uuid.UUID) (Stats, error) {
	tasks, err := s.repo.ListByOwner(ctx, ownerID, Filters{})
	if err != nil {
		return Stats{}, err
	}
	stats := Stats{Total: len(tasks)}
	for _, t := range tasks {
		switch t.Status {
		case StatusTodo:
			stats.ByStatus.Todo++
		case StatusInProgress:
			stats.ByStatus.InProgress++
		case StatusDone:
			stats.ByStatus.Done++
		}
		switch t.Priority {
		case PriorityLow:
			stats.ByPriority.Low++
		case PriorityMedium:
			stats.ByPriority.Medium++
		case PriorityHigh:
			stats.ByPriority.High++
		}
	}
	return stats, nil
}
