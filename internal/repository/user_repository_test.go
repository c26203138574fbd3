package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"account-service/internal/domain/user"
	account_errors "account-service/pkg/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var userRowColumns = []string{"id", "email", "password_hash", "name", "middle_name", "last_name", "second_last_name", "created_at", "updated_at"}

func newRepoWithMock(t *testing.T) (UserRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewUserRepository(db), mock, db
}

func sampleUser() *user.User {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	return &user.User{
		ID:             uuid.MustParse("0b6a3c1e-6f3e-4c55-8d3a-1f6f7c2b9a10"),
		Email:          "  Ana@Example.com ",
		PasswordHash:   "$2a$10$hash",
		Name:           "Ana",
		MiddleName:     "Maria",
		LastName:       "Lopez",
		SecondLastName: "Diaz",
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

func TestCreate_Success_NormalizesEmail(t *testing.T) {
	repo, mock, _ := newRepoWithMock(t)
	u := sampleUser()

	mock.ExpectExec(`INSERT INTO users`).
		WithArgs(u.ID, "ana@example.com", u.PasswordHash, "Ana", "Maria", "Lopez", "Diaz", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Create(context.Background(), u))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_UniqueViolation_ReturnsAlreadyExists(t *testing.T) {
	repo, mock, _ := newRepoWithMock(t)

	mock.ExpectExec(`INSERT INTO users`).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	err := repo.Create(context.Background(), sampleUser())
	assert.ErrorIs(t, err, account_errors.ErrAlreadyExists)
}

func TestCreate_DBError_Wrapped(t *testing.T) {
	repo, mock, _ := newRepoWithMock(t)

	mock.ExpectExec(`INSERT INTO users`).
		WillReturnError(errors.New("db down"))

	err := repo.Create(context.Background(), sampleUser())
	require.Error(t, err)
	assert.NotErrorIs(t, err, account_errors.ErrAlreadyExists)
	assert.Contains(t, err.Error(), "insert user: db down")
}

func TestGetUserByEmail_Found(t *testing.T) {
	repo, mock, _ := newRepoWithMock(t)
	u := sampleUser()

	rows := sqlmock.NewRows(userRowColumns).
		AddRow(u.ID.String(), "ana@example.com", u.PasswordHash, u.Name, u.MiddleName, u.LastName, u.SecondLastName, u.CreatedAt, u.UpdatedAt)
	mock.ExpectQuery(`SELECT .* FROM users WHERE email = \$1`).
		WithArgs("ana@example.com").
		WillReturnRows(rows)

	got, err := repo.GetUserByEmail(context.Background(), "ANA@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
	assert.Equal(t, "ana@example.com", got.Email)
	assert.Equal(t, "Diaz", got.SecondLastName)
}

func TestGetUserByEmail_NotFound(t *testing.T) {
	repo, mock, _ := newRepoWithMock(t)

	mock.ExpectQuery(`SELECT .* FROM users WHERE email = \$1`).
		WithArgs("ghost@example.com").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetUserByEmail(context.Background(), "ghost@example.com")
	assert.ErrorIs(t, err, account_errors.ErrNotFound)
}

func TestGetAllUsers_Rows(t *testing.T) {
	repo, mock, _ := newRepoWithMock(t)
	now := time.Now().UTC()

	rows := sqlmock.NewRows(userRowColumns).
		AddRow(uuid.NewString(), "a@example.com", "h1", "A", "", "One", "", now, now).
		AddRow(uuid.NewString(), "b@example.com", "h2", "B", "", "Two", "", now, now)
	mock.ExpectQuery(`SELECT .* FROM users ORDER BY created_at ASC`).WillReturnRows(rows)

	got, err := repo.GetAllUsers(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "a@example.com", got[0].Email)
	assert.Equal(t, "b@example.com", got[1].Email)
}

func TestGetAllUsers_EmptyIsNotNil(t *testing.T) {
	repo, mock, _ := newRepoWithMock(t)

	mock.ExpectQuery(`SELECT .* FROM users`).WillReturnRows(sqlmock.NewRows(userRowColumns))

	got, err := repo.GetAllUsers(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestGetAllUsers_QueryError(t *testing.T) {
	repo, mock, _ := newRepoWithMock(t)

	mock.ExpectQuery(`SELECT .* FROM users`).WillReturnError(errors.New("timeout"))

	_, err := repo.GetAllUsers(context.Background())
	assert.ErrorContains(t, err, "list users: timeout")
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "ana@example.com", NormalizeEmail("  ANA@Example.COM\t"))
}
