package repository_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/UnknownOlympus/athena/internal/models"
	"github.com/UnknownOlympus/athena/internal/repository"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const saveAdminQuery = `INSERT INTO admins (username, password_hash) VALUES ($1, $2);`

const getAdminQuery = `SELECT username, password_hash, created_at FROM admins WHERE username=$1`

func TestSaveAdmin_Success(t *testing.T) {
	t.Parallel()

	mock := newMock(t)
	mock.ExpectExec(regexp.QuoteMeta(saveAdminQuery)).
		WithArgs("root", "$2a$10$hash").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	repo := repository.NewAdminRepository(mock, nil)
	err := repo.SaveAdmin(context.Background(), "root", "$2a$10$hash")

	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveAdmin_Duplicate(t *testing.T) {
	t.Parallel()

	mock := newMock(t)
	mock.ExpectExec(regexp.QuoteMeta(saveAdminQuery)).
		WithArgs("root", "$2a$10$hash").
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "admins_pkey"})

	repo := repository.NewAdminRepository(mock, nil)
	err := repo.SaveAdmin(context.Background(), "root", "$2a$10$hash")

	require.ErrorIs(t, err, repository.ErrAlreadyExists)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetAdminByUsername_Success(t *testing.T) {
	t.Parallel()

	mock := newMock(t)
	created := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	rows := pgxmock.NewRows([]string{"username", "password_hash", "created_at"}).
		AddRow("root", "$2a$10$hash", created)

	mock.ExpectQuery(regexp.QuoteMeta(getAdminQuery)).WithArgs("root").WillReturnRows(rows)

	repo := repository.NewAdminRepository(mock, nil)
	admin, err := repo.GetAdminByUsername(context.Background(), "root")

	require.NoError(t, err)
	assert.Equal(t, models.Admin{Username: "root", PasswordHash: "$2a$10$hash", CreatedAt: created}, admin)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetAdminByUsername_NotFound(t *testing.T) {
	t.Parallel()

	mock := newMock(t)
	mock.ExpectQuery(regexp.QuoteMeta(getAdminQuery)).WithArgs("ghost").WillReturnError(pgx.ErrNoRows)

	repo := repository.NewAdminRepository(mock, nil)
	_, err := repo.GetAdminByUsername(context.Background(), "ghost")

	require.ErrorIs(t, err, repository.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetAdminByUsername_QueryError(t *testing.T) {
	t.Parallel()

	mock := newMock(t)
	mock.ExpectQuery(regexp.QuoteMeta(getAdminQuery)).WithArgs("root").WillReturnError(assert.AnError)

	repo := repository.NewAdminRepository(mock, nil)
	_, err := repo.GetAdminByUsername(context.Background(), "root")

	require.EqualError(t, err, "failed to get admin by username: "+assert.AnError.Error())
	require.NoError(t, mock.ExpectationsWereMet())
}
