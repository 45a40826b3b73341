package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/airline-booking/internal/model"
)

type mockFlightSource struct {
	mock.Mock
}

func (m *mockFlightSource) SeatMap(ctx context.Context, flightID uint64) (SeatMap, error) {
	args := m.Called(ctx, flightID)
	return args.Get(0).(SeatMap), args.Error(1)
}

type mockOrderStore struct {
	mock.Mock
}

func (m *mockOrderStore) CreateWithTickets(ctx context.Context, userID uint64, tickets []TicketRequest) (*model.Order, []model.Ticket, error) {
	args := m.Called(ctx, userID, tickets)
	var order *model.Order
	if v := args.Get(0); v != nil {
		order = v.(*model.Order)
	}
	var created []model.Ticket
	if v := args.Get(1); v != nil {
		created = v.([]model.Ticket)
	}
	return order, created, args.Error(2)
}

func TestPlaceOrderEmpty(t *testing.T) {
	flights := new(mockFlightSource)
	store := new(mockOrderStore)
	a := NewAllocator(flights, store)

	_, _, err := a.PlaceOrder(context.Background(), 1, nil)
	assert.ErrorIs(t, err, ErrEmptyOrder)
	store.AssertNotCalled(t, "CreateWithTickets", mock.Anything, mock.Anything, mock.Anything)
}

func TestPlaceOrderUnknownFlight(t *testing.T) {
	flights := new(mockFlightSource)
	store := new(mockOrderStore)
	a := NewAllocator(flights, store)

	flights.On("SeatMap", mock.Anything, uint64(99)).Return(SeatMap{}, ErrFlightNotFound)

	_, _, err := a.PlaceOrder(context.Background(), 1, []TicketRequest{
		{FlightID: 99, Row: 1, Seat: 1},
	})
	var reqErr *RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, 0, reqErr.TicketIndex)
	assert.Equal(t, "flight", reqErr.Field)
	assert.ErrorIs(t, err, ErrFlightNotFound)
	store.AssertNotCalled(t, "CreateWithTickets", mock.Anything, mock.Anything, mock.Anything)
}

func TestPlaceOrderRowOutOfRange(t *testing.T) {
	flights := new(mockFlightSource)
	store := new(mockOrderStore)
	a := NewAllocator(flights, store)

	flights.On("SeatMap", mock.Anything, uint64(7)).Return(SeatMap{RowCount: 2, SeatsInRow: 2}, nil)

	_, _, err := a.PlaceOrder(context.Background(), 1, []TicketRequest{
		{FlightID: 7, Row: 1, Seat: 2},
		{FlightID: 7, Row: 3, Seat: 1},
	})
	var reqErr *RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, 1, reqErr.TicketIndex)
	assert.Equal(t, "row", reqErr.Field)
	assert.EqualError(t, reqErr.Err, "row must be in range [1, 2], not 3")
	store.AssertNotCalled(t, "CreateWithTickets", mock.Anything, mock.Anything, mock.Anything)
}

func TestPlaceOrderSeatOutOfRange(t *testing.T) {
	flights := new(mockFlightSource)
	store := new(mockOrderStore)
	a := NewAllocator(flights, store)

	flights.On("SeatMap", mock.Anything, uint64(7)).Return(SeatMap{RowCount: 10, SeatsInRow: 6}, nil)

	_, _, err := a.PlaceOrder(context.Background(), 1, []TicketRequest{
		{FlightID: 7, Row: 10, Seat: 7},
	})
	var reqErr *RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, "seat", reqErr.Field)
}

func TestPlaceOrderDuplicateSeatInRequest(t *testing.T) {
	flights := new(mockFlightSource)
	store := new(mockOrderStore)
	a := NewAllocator(flights, store)

	flights.On("SeatMap", mock.Anything, uint64(7)).Return(SeatMap{RowCount: 2, SeatsInRow: 2}, nil)

	_, _, err := a.PlaceOrder(context.Background(), 1, []TicketRequest{
		{FlightID: 7, Row: 1, Seat: 1},
		{FlightID: 7, Row: 1, Seat: 1},
	})
	var reqErr *RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, 1, reqErr.TicketIndex)
	assert.ErrorIs(t, err, ErrDuplicateSeat)
	store.AssertNotCalled(t, "CreateWithTickets", mock.Anything, mock.Anything, mock.Anything)
}

func TestPlaceOrderSameSeatDifferentFlights(t *testing.T) {
	flights := new(mockFlightSource)
	store := new(mockOrderStore)
	a := NewAllocator(flights, store)

	flights.On("SeatMap", mock.Anything, uint64(1)).Return(SeatMap{RowCount: 2, SeatsInRow: 2}, nil)
	flights.On("SeatMap", mock.Anything, uint64(2)).Return(SeatMap{RowCount: 2, SeatsInRow: 2}, nil)

	tickets := []TicketRequest{
		{FlightID: 1, Row: 1, Seat: 1},
		{FlightID: 2, Row: 1, Seat: 1},
	}
	store.On("CreateWithTickets", mock.Anything, uint64(5), tickets).
		Return(&model.Order{ID: 42, UserID: 5}, []model.Ticket{{ID: 1}, {ID: 2}}, nil)

	order, created, err := a.PlaceOrder(context.Background(), 5, tickets)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), order.ID)
	assert.Len(t, created, 2)
}

func TestPlaceOrderSeatTaken(t *testing.T) {
	flights := new(mockFlightSource)
	store := new(mockOrderStore)
	a := NewAllocator(flights, store)

	flights.On("SeatMap", mock.Anything, uint64(7)).Return(SeatMap{RowCount: 2, SeatsInRow: 2}, nil)
	store.On("CreateWithTickets", mock.Anything, uint64(1), mock.Anything).
		Return(nil, nil, ErrSeatTaken)

	_, _, err := a.PlaceOrder(context.Background(), 1, []TicketRequest{
		{FlightID: 7, Row: 2, Seat: 2},
	})
	assert.ErrorIs(t, err, ErrSeatTaken)
}

func TestPlaceOrderCachesSeatMapPerFlight(t *testing.T) {
	flights := new(mockFlightSource)
	store := new(mockOrderStore)
	a := NewAllocator(flights, store)

	flights.On("SeatMap", mock.Anything, uint64(7)).Return(SeatMap{RowCount: 10, SeatsInRow: 6}, nil).Once()
	store.On("CreateWithTickets", mock.Anything, uint64(1), mock.Anything).
		Return(&model.Order{ID: 1, CreatedAt: time.Now()}, []model.Ticket{{ID: 1}, {ID: 2}, {ID: 3}}, nil)

	_, _, err := a.PlaceOrder(context.Background(), 1, []TicketRequest{
		{FlightID: 7, Row: 1, Seat: 1},
		{FlightID: 7, Row: 1, Seat: 2},
		{FlightID: 7, Row: 2, Seat: 1},
	})
	require.NoError(t, err)
	flights.AssertExpectations(t)
}

func TestPlaceOrderStoreErrorPassthrough(t *testing.T) {
	flights := new(mockFlightSource)
	store := new(mockOrderStore)
	a := NewAllocator(flights, store)

	boom := errors.New("connection reset")
	flights.On("SeatMap", mock.Anything, uint64(7)).Return(SeatMap{RowCount: 2, SeatsInRow: 2}, nil)
	store.On("CreateWithTickets", mock.Anything, uint64(1), mock.Anything).Return(nil, nil, boom)

	_, _, err := a.PlaceOrder(context.Background(), 1, []TicketRequest{
		{FlightID: 7, Row: 1, Seat: 1},
	})
	assert.ErrorIs(t, err, boom)
}
