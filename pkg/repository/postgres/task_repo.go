package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/ndanilchenko/tasktrack/pkg/task"
)

// TaskRepository implements task.Repository. Every query carries the owner
// predicate; a task id alone never grants access.
type TaskRepository struct {
	db DB
}

func NewTaskRepository(db DB) (*TaskRepository, error) {
	r := &TaskRepository{db: db}
	if err := r.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *TaskRepository) ensureSchema(ctx context.Context) error {
	_, err := r.db.Exec(ctx, `
CREATE TABLE IF NOT EXISTS tasks (
	id UUID PRIMARY KEY,
	title TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	status TEXT NOT NULL DEFAULT 'todo' CHECK (status IN ('todo', 'in_progress', 'done')),
	priority TEXT NOT NULL DEFAULT 'medium' CHECK (priority IN ('low', 'medium', 'high')),
	due_date TIMESTAMPTZ,
	user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_tasks_user ON tasks(user_id);
CREATE INDEX IF NOT EXISTS idx_tasks_status ON tasks(status);
CREATE INDEX IF NOT EXISTS idx_tasks_priority ON tasks(priority);
`)
	return err
}

func (r *TaskRepository) Create(ctx context.Context, t task.Task) error {
	_, err := r.db.Exec(ctx, `
INSERT INTO tasks (id, title, description, status, priority, due_date, user_id, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
`, t.ID, t.Title, t.Description, t.Status, t.Priority, t.DueDate, t.UserID, t.CreatedAt, t.UpdatedAt)
	return err
}

func (r *TaskRepository) GetByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (task.Task, error) {
	row := r.db.QueryRow(ctx, `
SELECT id, title, description, status, priority, due_date, user_id, created_at, updated_at
FROM tasks WHERE id = $1 AND user_id = $2
`, id, ownerID)
	return scanTask(row)
}

// ListByOwner composes the filter predicate deterministically from the
// Filters struct; all values travel as query parameters.
func (r *TaskRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID, f task.Filters) ([]task.Task, error) {
	conds := []string{"user_id = $1"}
	args := []any{ownerID}
	if f.Status != nil {
		args = append(args, *f.Status)
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}
	if f.Priority != nil {
		args = append(args, *f.Priority)
		conds = append(conds, fmt.Sprintf("priority = $%d", len(args)))
	}
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		conds = append(conds, fmt.Sprintf("(title ILIKE $%d OR description ILIKE $%d)", len(args), len(args)))
	}
	query := `
SELECT id, title, description, status, priority, due_date, user_id, created_at, updated_at
FROM tasks WHERE ` + strings.Join(conds, " AND ") + `
ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := make([]task.Task, 0)
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *TaskRepository) Update(ctx context.Context, t task.Task) error {
	cmd, err := r.db.Exec(ctx, `
UPDATE tasks
SET title = $1, description = $2, status = $3, priority = $4, due_date = $5, updated_at = $6
WHERE id = $7 AND user_id = $8
`, t.Title, t.Description, t.Status, t.Priority, t.DueDate, t.UpdatedAt, t.ID, t.UserID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return task.ErrTaskNotFound
	}
	return nil
}

func (r *TaskRepository) Delete(ctx context.Context, ownerID, id uuid.UUID) (bool, error) {
	cmd, err := r.db.Exec(ctx, `DELETE FROM tasks WHERE id = $1 AND user_id = $2`, id, ownerID)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() > 0, nil
}

func scanTask(row pgx.Row) (task.Task, error) {
	var t task.Task
	err := row.Scan(&t.ID, &t.Title, &t.Description, &t.Status, &t.Priority, &t.DueDate, &t.UserID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return task.Task{}, task.ErrTaskNotFound
		}
		return task.Task{}, err
	}
	t.CreatedAt = t.CreatedAt.UTC()
	t.UpdatedAt = t.UpdatedAt.UTC()
	if t.DueDate != nil {
		utc := t.DueDate.UTC()
		t.DueDate = &utc
	}
	return t, nil
}
