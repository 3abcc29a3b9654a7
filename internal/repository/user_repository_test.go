package repository_test

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"feedback-service/internal/model"
	repo "feedback-service/internal/repository"
)

func TestPostgresUserRepository_CountByRole(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	r := repo.NewPostgresUserRepository(sqlxDB)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM users WHERE role = $1`)).
		WithArgs(model.RoleAdmin).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	count, err := r.CountByRole(context.Background(), model.RoleAdmin)
	require.NoError(t, err)
	require.Equal(t, 2, count)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresUserRepository_CountByRole_None(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	r := repo.NewPostgresUserRepository(sqlxDB)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM users WHERE role = $1`)).
		WithArgs(model.RoleAdmin).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	count, err := r.CountByRole(context.Background(), model.RoleAdmin)
	require.NoError(t, err)
	require.Zero(t, count)
	require.NoError(t, mock.ExpectationsWereMet())
}
