package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The listed tickets_available is computed inside the listing statement
// as capacity minus sold tickets, so the projection must carry whatever
// that expression yields per flight.
func TestFlightListCarriesDerivedAvailability(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	repo := NewFlightRepo(db)

	dep := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	arr := dep.Add(2 * time.Hour)
	mock.ExpectQuery("a.row_count \\* a.seats_in_row - COUNT\\(t.id\\)").
		WillReturnRows(sqlmock.NewRows([]string{"id", "route", "airplane", "departure_time", "arrival_time", "tickets_available"}).
			AddRow(int64(1), "KBP-LHR", "Dreamline 787", dep, arr, 58).
			AddRow(int64(2), "KBP-WAW", "Cityhopper 190", dep.Add(time.Hour), arr.Add(time.Hour), 0))
	mock.ExpectQuery("FROM flight_crews fc").
		WithArgs(int64(1), int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"flight_id", "name"}).
			AddRow(int64(1), "Amelia Wright"))

	flights, err := repo.List(context.Background(), FlightFilter{})
	require.NoError(t, err)
	require.Len(t, flights, 2)
	assert.Equal(t, 58, flights[0].TicketsAvailable)
	assert.Equal(t, []string{"Amelia Wright"}, flights[0].Crews)
	assert.Equal(t, 0, flights[1].TicketsAvailable)
	assert.NoError(t, mock.ExpectationsWereMet())
}
