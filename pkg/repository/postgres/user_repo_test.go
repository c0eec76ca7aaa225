package postgres_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ndanilchenko/tasktrack/pkg/auth"
	"github.com/ndanilchenko/tasktrack/pkg/repository/postgres"
)

func newUserRepo(t *testing.T) (*postgres.UserRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS users").
		WillReturnResult(pgxmock.NewResult("CREATE", 0))
	repo, err := postgres.NewUserRepository(mock)
	require.NoError(t, err)
	return repo, mock
}

func sampleUser() auth.User {
	now := time.Now().UTC()
	return auth.User{
		ID:           uuid.New(),
		Email:        "alice@example.com",
		PasswordHash: "$2a$10$hash",
		FirstName:    "Alice",
		LastName:     "Smith",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func TestUserRepositoryCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("inserts the row", func(t *testing.T) {
		repo, mock := newUserRepo(t)
		user := sampleUser()

		mock.ExpectExec("INSERT INTO users").
			WithArgs(user.ID, user.Email, user.PasswordHash, user.FirstName, user.LastName, user.CreatedAt, user.UpdatedAt).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))

		require.NoError(t, repo.Create(ctx, user))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unique violation maps to ErrUserAlreadyExists", func(t *testing.T) {
		repo, mock := newUserRepo(t)
		user := sampleUser()

		mock.ExpectExec("INSERT INTO users").
			WithArgs(user.ID, user.Email, user.PasswordHash, user.FirstName, user.LastName, user.CreatedAt, user.UpdatedAt).
			WillReturnError(&pgconn.PgError{Code: "23505"})

		err := repo.Create(ctx, user)
		assert.ErrorIs(t, err, auth.ErrUserAlreadyExists)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("other errors pass through", func(t *testing.T) {
		repo, mock := newUserRepo(t)
		user := sampleUser()
		dbErr := errors.New("connection reset")

		mock.ExpectExec("INSERT INTO users").
			WithArgs(user.ID, user.Email, user.PasswordHash, user.FirstName, user.LastName, user.CreatedAt, user.UpdatedAt).
			WillReturnError(dbErr)

		err := repo.Create(ctx, user)
		assert.ErrorIs(t, err, dbErr)
	})
}

func TestUserRepositoryGetByEmail(t *testing.T) {
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		repo, mock := newUserRepo(t)
		user := sampleUser()

		mock.ExpectQuery("SELECT id, email, password_hash, first_name, last_name, created_at, updated_at").
			WithArgs(user.Email).
			WillReturnRows(pgxmock.NewRows([]string{"id", "email", "password_hash", "first_name", "last_name", "created_at", "updated_at"}).
				AddRow(user.ID, user.Email, user.PasswordHash, user.FirstName, user.LastName, user.CreatedAt, user.UpdatedAt))

		got, err := repo.GetByEmail(ctx, user.Email)
		require.NoError(t, err)
		assert.Equal(t, user, got)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("absent maps to ErrNotFound", func(t *testing.T) {
		repo, mock := newUserRepo(t)

		mock.ExpectQuery("SELECT id, email, password_hash, first_name, last_name, created_at, updated_at").
			WithArgs("nobody@example.com").
			WillReturnError(pgx.ErrNoRows)

		_, err := repo.GetByEmail(ctx, "nobody@example.com")
		assert.ErrorIs(t, err, auth.ErrNotFound)
	})
}

func TestUserRepositoryGetByID(t *testing.T) {
	ctx := context.Background()
	repo, mock := newUserRepo(t)
	user := sampleUser()

	mock.ExpectQuery("SELECT id, email, password_hash, first_name, last_name, created_at, updated_at").
		WithArgs(user.ID).
		WillReturnRows(pgxmock.NewRows([]string{"id", "email", "password_hash", "first_name", "last_name", "created_at", "updated_at"}).
			AddRow(user.ID, user.Email, user.PasswordHash, user.FirstName, user.LastName, user.CreatedAt, user.UpdatedAt))

	got, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user, got)
}

func TestUserRepositoryDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("removes the row", func(t *testing.T) {
		repo, mock := newUserRepo(t)
		id := uuid.New()

		mock.ExpectExec("DELETE FROM users WHERE id").
			WithArgs(id).
			WillReturnResult(pgxmock.NewResult("DELETE", 1))

		require.NoError(t, repo.Delete(ctx, id))
	})

	t.Run("missing row maps to ErrNotFound", func(t *testing.T) {
		repo, mock := newUserRepo(t)
		id := uuid.New()

		mock.ExpectExec("DELETE FROM users WHERE id").
			WithArgs(id).
			WillReturnResult(pgxmock.NewResult("DELETE", 0))

		assert.ErrorIs(t, repo.Delete(ctx, id), auth.ErrNotFound)
	})
}
