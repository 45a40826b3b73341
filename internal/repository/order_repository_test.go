package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/airline-booking/internal/booking"
)

func newMockDB(t *testing.T) (*OrderRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewOrderRepo(db), mock
}

func TestCreateWithTicketsSeatConflictRollsBack(t *testing.T) {
	repo, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO orders").
		WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(9, 1))
	mock.ExpectExec("INSERT INTO tickets").
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"})
	mock.ExpectRollback()

	order, created, err := repo.CreateWithTickets(context.Background(), 5, []booking.TicketRequest{
		{FlightID: 1, Row: 2, Seat: 3},
	})
	assert.ErrorIs(t, err, booking.ErrSeatTaken)
	assert.Nil(t, order)
	assert.Nil(t, created)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateWithTicketsUnknownFlightRollsBack(t *testing.T) {
	repo, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO orders").
		WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(9, 1))
	mock.ExpectExec("INSERT INTO tickets").
		WillReturnError(&mysql.MySQLError{Number: 1452, Message: "a foreign key constraint fails"})
	mock.ExpectRollback()

	_, _, err := repo.CreateWithTickets(context.Background(), 5, []booking.TicketRequest{
		{FlightID: 99, Row: 1, Seat: 1},
	})
	assert.ErrorIs(t, err, booking.ErrFlightNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateWithTicketsCommitConflictRollsBack(t *testing.T) {
	repo, mock := newMockDB(t)
	createdAt := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO orders").
		WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(9, 1))
	mock.ExpectExec("INSERT INTO tickets").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT created_at FROM orders").
		WithArgs(int64(9)).
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(createdAt))
	mock.ExpectQuery("SELECT id, flight_id, order_id, seat_row, seat FROM tickets").
		WithArgs(int64(9)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "flight_id", "order_id", "seat_row", "seat"}).
			AddRow(int64(1), int64(1), int64(9), 2, 3))
	mock.ExpectCommit().
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"})

	_, _, err := repo.CreateWithTickets(context.Background(), 5, []booking.TicketRequest{
		{FlightID: 1, Row: 2, Seat: 3},
	})
	assert.ErrorIs(t, err, booking.ErrSeatTaken)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateWithTicketsCommitsBatch(t *testing.T) {
	repo, mock := newMockDB(t)
	createdAt := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO orders").
		WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(9, 1))
	mock.ExpectExec("INSERT INTO tickets").
		WithArgs(int64(1), int64(9), 2, 3, int64(1), int64(9), 2, 4).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectQuery("SELECT created_at FROM orders").
		WithArgs(int64(9)).
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(createdAt))
	mock.ExpectQuery("SELECT id, flight_id, order_id, seat_row, seat FROM tickets").
		WithArgs(int64(9)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "flight_id", "order_id", "seat_row", "seat"}).
			AddRow(int64(11), int64(1), int64(9), 2, 3).
			AddRow(int64(12), int64(1), int64(9), 2, 4))
	mock.ExpectCommit()

	order, created, err := repo.CreateWithTickets(context.Background(), 5, []booking.TicketRequest{
		{FlightID: 1, Row: 2, Seat: 3},
		{FlightID: 1, Row: 2, Seat: 4},
	})
	require.NoError(t, err)
	assert.Equal(t, uint64(9), order.ID)
	assert.Equal(t, uint64(5), order.UserID)
	assert.True(t, order.CreatedAt.Equal(createdAt))
	require.Len(t, created, 2)
	assert.Equal(t, uint64(11), created[0].ID)
	assert.Equal(t, 3, created[0].Seat)
	assert.Equal(t, 4, created[1].Seat)
	assert.NoError(t, mock.ExpectationsWereMet())
}
