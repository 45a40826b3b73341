package booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/iliyamo/airline-booking/internal/model"
)

// Sentinel errors surfaced by the allocator and its stores. Handlers
// translate them to HTTP statuses: ErrEmptyOrder, ErrDuplicateSeat and
// ErrSeatTaken become 400, ErrFlightNotFound becomes a field-scoped 400
// on the offending ticket.
var (
	ErrEmptyOrder     = errors.New("order must contain at least one ticket")
	ErrFlightNotFound = errors.New("flight not found")
	ErrDuplicateSeat  = errors.New("duplicate seat in request")
	// ErrSeatTaken means another order already holds the (flight, row,
	// seat) triple. The order store reports it when the unique index
	// rejects an insert at commit time, which makes it race-proof: two
	// concurrent requests for the same seat resolve to one winner.
	ErrSeatTaken = errors.New("seat already taken")
)

// TicketRequest is one requested seat in an order.
type TicketRequest struct {
	FlightID uint64 `json:"flight"`
	Row      int    `json:"row"`
	Seat     int    `json:"seat"`
}

// RequestError scopes an error to one ticket of the request so the
// handler can build a field-level payload. Field is "flight", "row" or
// "seat".
type RequestError struct {
	TicketIndex int
	Field       string
	Err         error
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("tickets[%d].%s: %v", e.TicketIndex, e.Field, e.Err)
}

func (e *RequestError) Unwrap() error { return e.Err }

// SeatMap is the physical geometry of the airplane serving a flight.
type SeatMap struct {
	RowCount   int
	SeatsInRow int
}

// FlightSource resolves a flight's seat map. Implementations return
// ErrFlightNotFound when the flight does not exist.
type FlightSource interface {
	SeatMap(ctx context.Context, flightID uint64) (SeatMap, error)
}

// OrderStore persists an order together with all of its tickets as a
// single all-or-nothing transaction. Implementations return ErrSeatTaken
// when the tickets unique index rejects any insert; in that case nothing
// may remain persisted.
type OrderStore interface {
	CreateWithTickets(ctx context.Context, userID uint64, tickets []TicketRequest) (*model.Order, []model.Ticket, error)
}

// Allocator validates a set of ticket requests against flight geometry
// and hands the whole batch to the order store. It performs no locking
// of its own; the store's unique constraint is the serialization point.
type Allocator struct {
	flights FlightSource
	orders  OrderStore
}

// NewAllocator wires an allocator from its two collaborators.
func NewAllocator(flights FlightSource, orders OrderStore) *Allocator {
	return &Allocator{flights: flights, orders: orders}
}

type seatKey struct {
	flightID  uint64
	row, seat int
}

// PlaceOrder validates every requested ticket and, when all pass,
// creates the order and its tickets atomically. On any failure no state
// is persisted. Validation order per ticket: flight existence, row
// bounds, seat bounds, duplicate within the request.
func (a *Allocator) PlaceOrder(ctx context.Context, userID uint64, tickets []TicketRequest) (*model.Order, []model.Ticket, error) {
	if len(tickets) == 0 {
		return nil, nil, ErrEmptyOrder
	}

	maps := make(map[uint64]SeatMap, 1) // most orders address a single flight
	seen := make(map[seatKey]struct{}, len(tickets))
	for i, t := range tickets {
		sm, ok := maps[t.FlightID]
		if !ok {
			var err error
			sm, err = a.flights.SeatMap(ctx, t.FlightID)
			if err != nil {
				if errors.Is(err, ErrFlightNotFound) {
					return nil, nil, &RequestError{TicketIndex: i, Field: "flight", Err: ErrFlightNotFound}
				}
				return nil, nil, err
			}
			maps[t.FlightID] = sm
		}
		if verr := ValidateRow(t.Row, sm.RowCount); verr != nil {
			return nil, nil, &RequestError{TicketIndex: i, Field: "row", Err: verr}
		}
		if verr := ValidateSeat(t.Seat, sm.SeatsInRow); verr != nil {
			return nil, nil, &RequestError{TicketIndex: i, Field: "seat", Err: verr}
		}
		key := seatKey{flightID: t.FlightID, row: t.Row, seat: t.Seat}
		if _, dup := seen[key]; dup {
			return nil, nil, &RequestError{TicketIndex: i, Field: "seat", Err: ErrDuplicateSeat}
		}
		seen[key] = struct{}{}
	}

	return a.orders.CreateWithTickets(ctx, userID, tickets)
}
