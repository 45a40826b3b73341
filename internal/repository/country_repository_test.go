package repository

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCountryMock(t *testing.T) (*CountryRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewCountryRepo(db), mock
}

// An UPDATE writing the values a row already holds reports zero
// affected rows; that must not be mistaken for a missing row.
func TestCountryUpdateNoOpIsNotMissing(t *testing.T) {
	repo, mock := newCountryMock(t)

	mock.ExpectExec("UPDATE countries").
		WithArgs("Ukraine", int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT 1 FROM countries").
		WithArgs(int64(4)).
		WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))

	assert.NoError(t, repo.Update(context.Background(), 4, "Ukraine"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCountryUpdateMissingRow(t *testing.T) {
	repo, mock := newCountryMock(t)

	mock.ExpectExec("UPDATE countries").
		WithArgs("Ukraine", int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT 1 FROM countries").
		WithArgs(int64(4)).
		WillReturnError(sql.ErrNoRows)

	err := repo.Update(context.Background(), 4, "Ukraine")
	assert.ErrorIs(t, err, ErrCountryNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
