package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ndanilchenko/tasktrack/pkg/repository/postgres"
	"github.com/ndanilchenko/tasktrack/pkg/task"
)

var taskColumns = []string{"id", "title", "description", "status", "priority", "due_date", "user_id", "created_at", "updated_at"}

func newTaskRepo(t *testing.T) (*postgres.TaskRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS tasks").
		WillReturnResult(pgxmock.NewResult("CREATE", 0))
	repo, err := postgres.NewTaskRepository(mock)
	require.NoError(t, err)
	return repo, mock
}

func sampleTask(owner uuid.UUID) task.Task {
	now := time.Now().UTC()
	return task.Task{
		ID:        uuid.New(),
		Title:     "write report",
		Status:    task.StatusTodo,
		Priority:  task.PriorityMedium,
		UserID:    owner,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func taskRow(t task.Task) *pgxmock.Rows {
	return pgxmock.NewRows(taskColumns).
		AddRow(t.ID, t.Title, t.Description, t.Status, t.Priority, t.DueDate, t.UserID, t.CreatedAt, t.UpdatedAt)
}

func TestTaskRepositoryCreate(t *testing.T) {
	ctx := context.Background()
	repo, mock := newTaskRepo(t)
	tsk := sampleTask(uuid.New())

	mock.ExpectExec("INSERT INTO tasks").
		WithArgs(tsk.ID, tsk.Title, tsk.Description, tsk.Status, tsk.Priority, tsk.DueDate, tsk.UserID, tsk.CreatedAt, tsk.UpdatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	require.NoError(t, repo.Create(ctx, tsk))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskRepositoryGetByIDForOwner(t *testing.T) {
	ctx := context.Background()

	t.Run("joint predicate carries both id and owner", func(t *testing.T) {
		repo, mock := newTaskRepo(t)
		owner := uuid.New()
		tsk := sampleTask(owner)

		mock.ExpectQuery(`FROM tasks WHERE id = \$1 AND user_id = \$2`).
			WithArgs(tsk.ID, owner).
			WillReturnRows(taskRow(tsk))

		got, err := repo.GetByIDForOwner(ctx, owner, tsk.ID)
		require.NoError(t, err)
		assert.Equal(t, tsk, got)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no row maps to ErrTaskNotFound", func(t *testing.T) {
		repo, mock := newTaskRepo(t)
		owner, id := uuid.New(), uuid.New()

		mock.ExpectQuery(`FROM tasks WHERE id = \$1 AND user_id = \$2`).
			WithArgs(id, owner).
			WillReturnError(pgx.ErrNoRows)

		_, err := repo.GetByIDForOwner(ctx, owner, id)
		assert.ErrorIs(t, err, task.ErrTaskNotFound)
	})
}

func TestTaskRepositoryListByOwner(t *testing.T) {
	ctx := context.Background()

	t.Run("no filters: owner predicate only, newest first", func(t *testing.T) {
		repo, mock := newTaskRepo(t)
		owner := uuid.New()
		tsk := sampleTask(owner)

		mock.ExpectQuery(`FROM tasks WHERE user_id = \$1\s*ORDER BY created_at DESC`).
			WithArgs(owner).
			WillReturnRows(taskRow(tsk))

		got, err := repo.ListByOwner(ctx, owner, task.Filters{})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, tsk.ID, got[0].ID)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("status and priority filters are AND'ed in order", func(t *testing.T) {
		repo, mock := newTaskRepo(t)
		owner := uuid.New()

		mock.ExpectQuery(`WHERE user_id = \$1 AND status = \$2 AND priority = \$3`).
			WithArgs(owner, task.StatusTodo, task.PriorityHigh).
			WillReturnRows(pgxmock.NewRows(taskColumns))

		got, err := repo.ListByOwner(ctx, owner, task.Filters{
			Status:   statusPtr(task.StatusTodo),
			Priority: priorityPtr(task.PriorityHigh),
		})
		require.NoError(t, err)
		assert.Empty(t, got)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("search becomes a parameterized ILIKE over title and description", func(t *testing.T) {
		repo, mock := newTaskRepo(t)
		owner := uuid.New()

		mock.ExpectQuery(`WHERE user_id = \$1 AND \(title ILIKE \$2 OR description ILIKE \$2\)`).
			WithArgs(owner, "%report%").
			WillReturnRows(pgxmock.NewRows(taskColumns))

		_, err := repo.ListByOwner(ctx, owner, task.Filters{Search: "report"})
		require.NoError(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestTaskRepositoryUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("rewrites mutable columns under the owner guard", func(t *testing.T) {
		repo, mock := newTaskRepo(t)
		tsk := sampleTask(uuid.New())

		mock.ExpectExec(`UPDATE tasks`).
			WithArgs(tsk.Title, tsk.Description, tsk.Status, tsk.Priority, tsk.DueDate, tsk.UpdatedAt, tsk.ID, tsk.UserID).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		require.NoError(t, repo.Update(ctx, tsk))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("zero rows affected maps to ErrTaskNotFound", func(t *testing.T) {
		repo, mock := newTaskRepo(t)
		tsk := sampleTask(uuid.New())

		mock.ExpectExec(`UPDATE tasks`).
			WithArgs(tsk.Title, tsk.Description, tsk.Status, tsk.Priority, tsk.DueDate, tsk.UpdatedAt, tsk.ID, tsk.UserID).
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))

		assert.ErrorIs(t, repo.Update(ctx, tsk), task.ErrTaskNotFound)
	})
}

func TestTaskRepositoryDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("reports true when a row went away", func(t *testing.T) {
		repo, mock := newTaskRepo(t)
		owner, id := uuid.New(), uuid.New()

		mock.ExpectExec(`DELETE FROM tasks WHERE id = \$1 AND user_id = \$2`).
			WithArgs(id, owner).
			WillReturnResult(pgxmock.NewResult("DELETE", 1))

		deleted, err := repo.Delete(ctx, owner, id)
		require.NoError(t, err)
		assert.True(t, deleted)
	})

	t.Run("reports false for foreign or absent rows", func(t *testing.T) {
		repo, mock := newTaskRepo(t)
		owner, id := uuid.New(), uuid.New()

		mock.ExpectExec(`DELETE FROM tasks WHERE id = \$1 AND user_id = \$2`).
			WithArgs(id, owner).
			WillReturnResult(pgxmock.NewResult("DELETE", 0))

		deleted, err := repo.Delete(ctx, owner, id)
		require.NoError(t, err)
		assert.False(t, deleted)
	})
}

func statusPtr(s task.Status) *task.Status       { return &s }
func priorityPtr(p task.Priority) *task.Priority { return &p }
