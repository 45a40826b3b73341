package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/iliyamo/airline-booking/internal/booking"
	"github.com/iliyamo/airline-booking/internal/model"
)

// OrderRepo persists orders and their tickets and serves the
// user-scoped order projections. It implements booking.OrderStore.
//
// The tickets table carries UNIQUE (flight_id, seat_row, seat). That
// index, hit inside CreateWithTickets' transaction, is the system's
// oversell control: of two concurrent requests for the same seat
// exactly one commit succeeds and the other surfaces ErrSeatTaken.
// There is no application-level seat locking anywhere.
type OrderRepo struct {
	db *sql.DB
}

// NewOrderRepo constructs an OrderRepo with the given DB handle.
func NewOrderRepo(db *sql.DB) *OrderRepo { return &OrderRepo{db: db} }

// OrderTicketView is one ticket inside an order projection, with its
// flight collapsed to display fields.
type OrderTicketView struct {
	ID            uint64    `json:"id"`
	Row           int       `json:"row"`
	Seat          int       `json:"seat"`
	FlightID      uint64    `json:"flight"`
	RouteName     string    `json:"route_name"`
	Airplane      string    `json:"airplane"`
	DepartureTime time.Time `json:"departure_time"`
}

// OrderView is the projection returned for both order listing and
// retrieval. Re-reading an order always yields the same ticket set;
// tickets never change after creation.
type OrderView struct {
	ID        uint64            `json:"id"`
	CreatedAt time.Time         `json:"created_at"`
	Tickets   []OrderTicketView `json:"tickets"`
}

// CreateWithTickets inserts one order row and all requested tickets in
// a single transaction. Any failure, including a duplicate-key hit on
// the seat index, rolls the whole batch back so partial orders are
// never observable. Requests must already be validated against the
// flight geometry; this method only enforces the storage invariants.
func (r *OrderRepo) CreateWithTickets(ctx context.Context, userID uint64, tickets []booking.TicketRequest) (*model.Order, []model.Ticket, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, nil, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	res, err := tx.ExecContext(ctx, `INSERT INTO orders (user_id) VALUES (?)`, userID)
	if err != nil {
		return nil, nil, err
	}
	orderID, err := res.LastInsertId()
	if err != nil {
		return nil, nil, err
	}

	query := `INSERT INTO tickets (flight_id, order_id, seat_row, seat) VALUES `
	args := make([]interface{}, 0, len(tickets)*4)
	for i, t := range tickets {
		if i > 0 {
			query += ","
		}
		query += "(?, ?, ?, ?)"
		args = append(args, t.FlightID, uint64(orderID), t.Row, t.Seat)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		if isDuplicateKey(err) {
			return nil, nil, booking.ErrSeatTaken
		}
		if isForeignKeyViolation(err) {
			return nil, nil, booking.ErrFlightNotFound
		}
		return nil, nil, err
	}

	order := &model.Order{ID: uint64(orderID), UserID: userID}
	if err := tx.QueryRowContext(ctx,
		`SELECT created_at FROM orders WHERE id = ?`, order.ID).Scan(&order.CreatedAt); err != nil {
		return nil, nil, err
	}

	created := make([]model.Ticket, 0, len(tickets))
	rows, err := tx.QueryContext(ctx,
		`SELECT id, flight_id, order_id, seat_row, seat FROM tickets WHERE order_id = ? ORDER BY id`, order.ID)
	if err != nil {
		return nil, nil, err
	}
	for rows.Next() {
		var t model.Ticket
		if err := rows.Scan(&t.ID, &t.FlightID, &t.OrderID, &t.Row, &t.Seat); err != nil {
			rows.Close()
			return nil, nil, err
		}
		created = append(created, t)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}

	if err := tx.Commit(); err != nil {
		if isDuplicateKey(err) {
			return nil, nil, booking.ErrSeatTaken
		}
		return nil, nil, err
	}
	committed = true
	return order, created, nil
}

// ListByUser returns the user's orders newest first, each with its full
// ticket projection. Tickets for the whole page are fetched in one
// batched query.
func (r *OrderRepo) ListByUser(ctx context.Context, userID uint64) ([]OrderView, error) {
	const q = `SELECT id, created_at FROM orders WHERE user_id = ? ORDER BY created_at DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]OrderView, 0)
	index := make(map[uint64]int)
	for rows.Next() {
		var v OrderView
		if err := rows.Scan(&v.ID, &v.CreatedAt); err != nil {
			return nil, err
		}
		v.Tickets = []OrderTicketView{}
		index[v.ID] = len(orders)
		orders = append(orders, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return orders, nil
	}

	ids := make([]interface{}, 0, len(orders))
	placeholders := make([]string, 0, len(orders))
	for _, v := range orders {
		ids = append(ids, v.ID)
		placeholders = append(placeholders, "?")
	}
	ticketQ := ticketProjection + ` WHERE t.order_id IN (` + strings.Join(placeholders, ",") + `)
	          ORDER BY t.order_id, t.seat_row, t.seat`
	trows, err := r.db.QueryContext(ctx, ticketQ, ids...)
	if err != nil {
		return nil, err
	}
	defer trows.Close()
	for trows.Next() {
		var orderID uint64
		var tv OrderTicketView
		if err := trows.Scan(&orderID, &tv.ID, &tv.Row, &tv.Seat, &tv.FlightID, &tv.RouteName, &tv.Airplane, &tv.DepartureTime); err != nil {
			return nil, err
		}
		if i, ok := index[orderID]; ok {
			orders[i].Tickets = append(orders[i].Tickets, tv)
		}
	}
	return orders, trows.Err()
}

// ticketProjection joins a ticket out to its flight display fields. The
// order_id is selected first so batched readers can route rows.
const ticketProjection = `SELECT t.order_id, t.id, t.seat_row, t.seat, t.flight_id,
	       CONCAT(src.name, '-', dst.name), a.name, fl.departure_time
	FROM tickets t
	JOIN flights fl ON fl.id = t.flight_id
	JOIN routes r ON r.id = fl.route_id
	JOIN airports src ON src.id = r.source_id
	JOIN airports dst ON dst.id = r.destination_id
	JOIN airplanes a ON a.id = fl.airplane_id`

// GetByIDForUser retrieves one order projection, enforcing ownership.
// A missing order yields ErrOrderNotFound; an order belonging to a
// different user yields ErrForbidden.
func (r *OrderRepo) GetByIDForUser(ctx context.Context, orderID, userID uint64) (*OrderView, error) {
	var v OrderView
	var ownerID uint64
	err := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, created_at FROM orders WHERE id = ?`, orderID).
		Scan(&v.ID, &ownerID, &v.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	if ownerID != userID {
		return nil, ErrForbidden
	}

	v.Tickets = []OrderTicketView{}
	ticketQ := ticketProjection + ` WHERE t.order_id = ? ORDER BY t.seat_row, t.seat`
	rows, err := r.db.QueryContext(ctx, ticketQ, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var orderRef uint64
		var tv OrderTicketView
		if err := rows.Scan(&orderRef, &tv.ID, &tv.Row, &tv.Seat, &tv.FlightID, &tv.RouteName, &tv.Airplane, &tv.DepartureTime); err != nil {
			return nil, err
		}
		v.Tickets = append(v.Tickets, tv)
	}
	return &v, rows.Err()
}
