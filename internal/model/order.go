package model

import "time"

// Order groups the tickets a user purchased in a single request. An
// order owns its tickets: deleting the order deletes them. Nothing
// mutates tickets after the order has been created.
type Order struct {
	ID        uint64    // orders.id
	UserID    uint64    // orders.user_id (references users.id)
	CreatedAt time.Time // orders.created_at (set by the database)
}

// Ticket reserves one seat (row, seat) on one flight. The composite
// unique index on (flight_id, seat_row, seat) is the system's oversell
// guard: at most one ticket may ever exist per physical seat per flight.
type Ticket struct {
	ID       uint64 // tickets.id
	FlightID uint64 // tickets.flight_id (references flights.id)
	OrderID  uint64 // tickets.order_id (references orders.id)
	Row      int    // tickets.seat_row (1-based)
	Seat     int    // tickets.seat (1-based)
}
