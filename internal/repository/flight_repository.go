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

// FlightRepo provides CRUD access to flights, their crew assignments
// and the seat-inventory reads the booking core depends on. It
// implements booking.FlightSource.
type FlightRepo struct {
	db *sql.DB
}

// NewFlightRepo constructs a FlightRepo with the given DB handle.
func NewFlightRepo(db *sql.DB) *FlightRepo { return &FlightRepo{db: db} }

// FlightView is the list projection: related rows collapsed into their
// display names plus the advisory tickets_available count. The count is
// computed in the same statement as the listing so it is consistent
// with the tickets visible to that read; the unique ticket index, not
// this number, is what prevents overselling.
type FlightView struct {
	ID               uint64    `json:"id"`
	RouteName        string    `json:"route_name"`
	Airplane         string    `json:"airplane"`
	DepartureTime    time.Time `json:"departure_time"`
	ArrivalTime      time.Time `json:"arrival_time"`
	Crews            []string  `json:"crews"`
	TicketsAvailable int       `json:"tickets_available"`
}

// TakenSeat is one already-booked (row, seat) pair on a flight.
type TakenSeat struct {
	Row  int `json:"row"`
	Seat int `json:"seat"`
}

// FlightDetail is the retrieve projection with nested route, airplane
// and crew projections plus the full list of taken seats.
type FlightDetail struct {
	ID            uint64       `json:"id"`
	Route         RouteView    `json:"route"`
	Airplane      AirplaneView `json:"airplane"`
	DepartureTime time.Time    `json:"departure_time"`
	ArrivalTime   time.Time    `json:"arrival_time"`
	Crews         []CrewView   `json:"crews"`
	TakenSeats    []TakenSeat  `json:"taken_seats"`
}

// FlightFilter restricts List. Zero values mean no filtering; From/To
// bound the departure time window.
type FlightFilter struct {
	RouteID uint64
	From    time.Time
	To      time.Time
}

// SeatMap returns the geometry of the airplane serving a flight. It
// satisfies booking.FlightSource, translating a missing flight into
// booking.ErrFlightNotFound for the allocator.
func (r *FlightRepo) SeatMap(ctx context.Context, flightID uint64) (booking.SeatMap, error) {
	const q = `SELECT a.row_count, a.seats_in_row
	           FROM flights f
	           JOIN airplanes a ON a.id = f.airplane_id
	           WHERE f.id = ?`
	var sm booking.SeatMap
	err := r.db.QueryRowContext(ctx, q, flightID).Scan(&sm.RowCount, &sm.SeatsInRow)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return booking.SeatMap{}, booking.ErrFlightNotFound
		}
		return booking.SeatMap{}, err
	}
	return sm, nil
}

// Create inserts a flight and its crew assignments in one transaction.
func (r *FlightRepo) Create(ctx context.Context, f *model.Flight) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	const q = `INSERT INTO flights (route_id, airplane_id, departure_time, arrival_time) VALUES (?, ?, ?, ?)`
	res, err := tx.ExecContext(ctx, q, f.RouteID, f.AirplaneID, f.DepartureTime.UTC(), f.ArrivalTime.UTC())
	if err != nil {
		if isForeignKeyViolation(err) {
			return ErrRouteNotFound
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	f.ID = uint64(id)
	if err := replaceCrewsTx(ctx, tx, f.ID, f.CrewIDs); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// Update rewrites a flight's columns and replaces its crew set.
func (r *FlightRepo) Update(ctx context.Context, f *model.Flight) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	const q = `UPDATE flights
	           SET route_id = ?, airplane_id = ?, departure_time = ?, arrival_time = ?, updated_at = CURRENT_TIMESTAMP
	           WHERE id = ?`
	res, err := tx.ExecContext(ctx, q, f.RouteID, f.AirplaneID, f.DepartureTime.UTC(), f.ArrivalTime.UTC(), f.ID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return ErrRouteNotFound
		}
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		ok, err := existsByID(ctx, tx, "flights", f.ID)
		if err != nil {
			return err
		}
		if !ok {
			return ErrFlightNotFound
		}
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM flight_crews WHERE flight_id = ?`, f.ID); err != nil {
		return err
	}
	if err := replaceCrewsTx(ctx, tx, f.ID, f.CrewIDs); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// replaceCrewsTx bulk-inserts the crew assignments for a flight.
func replaceCrewsTx(ctx context.Context, tx *sql.Tx, flightID uint64, crewIDs []uint64) error {
	if len(crewIDs) == 0 {
		return nil
	}
	query := `INSERT INTO flight_crews (flight_id, crew_id) VALUES `
	args := make([]interface{}, 0, len(crewIDs)*2)
	for i, crewID := range crewIDs {
		if i > 0 {
			query += ","
		}
		query += "(?, ?)"
		args = append(args, flightID, crewID)
	}
	_, err := tx.ExecContext(ctx, query, args...)
	if isForeignKeyViolation(err) {
		return ErrCrewNotFound
	}
	return err
}

// List returns flight projections ordered by (departure_time, route),
// each with its advisory tickets_available count. Crew names are
// populated with a second batched query, one round trip for the whole
// page.
func (r *FlightRepo) List(ctx context.Context, f FlightFilter) ([]FlightView, error) {
	q := `SELECT fl.id, CONCAT(src.name, '-', dst.name), a.name,
	             fl.departure_time, fl.arrival_time,
	             a.row_count * a.seats_in_row - COUNT(t.id)
	      FROM flights fl
	      JOIN routes r ON r.id = fl.route_id
	      JOIN airports src ON src.id = r.source_id
	      JOIN airports dst ON dst.id = r.destination_id
	      JOIN airplanes a ON a.id = fl.airplane_id
	      LEFT JOIN tickets t ON t.flight_id = fl.id`
	var conds []string
	var args []interface{}
	if f.RouteID != 0 {
		conds = append(conds, "fl.route_id = ?")
		args = append(args, f.RouteID)
	}
	if !f.From.IsZero() {
		conds = append(conds, "fl.departure_time >= ?")
		args = append(args, f.From.UTC())
	}
	if !f.To.IsZero() {
		conds = append(conds, "fl.departure_time <= ?")
		args = append(args, f.To.UTC())
	}
	if len(conds) > 0 {
		q += " WHERE " + strings.Join(conds, " AND ")
	}
	q += ` GROUP BY fl.id, src.name, dst.name, a.name, fl.departure_time, fl.arrival_time, a.row_count, a.seats_in_row
	       ORDER BY fl.departure_time, fl.route_id`
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	flights := make([]FlightView, 0)
	index := make(map[uint64]int)
	for rows.Next() {
		var v FlightView
		if err := rows.Scan(&v.ID, &v.RouteName, &v.Airplane, &v.DepartureTime, &v.ArrivalTime, &v.TicketsAvailable); err != nil {
			return nil, err
		}
		v.Crews = []string{}
		index[v.ID] = len(flights)
		flights = append(flights, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(flights) == 0 {
		return flights, nil
	}

	ids := make([]interface{}, 0, len(flights))
	placeholders := make([]string, 0, len(flights))
	for _, v := range flights {
		ids = append(ids, v.ID)
		placeholders = append(placeholders, "?")
	}
	crewQ := `SELECT fc.flight_id, CONCAT(c.first_name, ' ', c.last_name)
	          FROM flight_crews fc
	          JOIN crews c ON c.id = fc.crew_id
	          WHERE fc.flight_id IN (` + strings.Join(placeholders, ",") + `)
	          ORDER BY fc.flight_id, c.last_name`
	crows, err := r.db.QueryContext(ctx, crewQ, ids...)
	if err != nil {
		return nil, err
	}
	defer crows.Close()
	for crows.Next() {
		var flightID uint64
		var name string
		if err := crows.Scan(&flightID, &name); err != nil {
			return nil, err
		}
		if i, ok := index[flightID]; ok {
			flights[i].Crews = append(flights[i].Crews, name)
		}
	}
	return flights, crows.Err()
}

// GetByID retrieves the full flight projection including every taken
// (row, seat) pair, ordered by row then seat for deterministic output.
func (r *FlightRepo) GetByID(ctx context.Context, id uint64) (*FlightDetail, error) {
	const q = `SELECT fl.id, fl.departure_time, fl.arrival_time,
	                  r.id, CONCAT(src.name, '-', dst.name), r.distance,
	                  a.id, a.name, a.row_count, a.seats_in_row, at.name
	           FROM flights fl
	           JOIN routes r ON r.id = fl.route_id
	           JOIN airports src ON src.id = r.source_id
	           JOIN airports dst ON dst.id = r.destination_id
	           JOIN airplanes a ON a.id = fl.airplane_id
	           JOIN airplane_types at ON at.id = a.airplane_type_id
	           WHERE fl.id = ?`
	var d FlightDetail
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&d.ID, &d.DepartureTime, &d.ArrivalTime,
		&d.Route.ID, &d.Route.RouteName, &d.Route.Distance,
		&d.Airplane.ID, &d.Airplane.Name, &d.Airplane.RowCount, &d.Airplane.SeatsInRow, &d.Airplane.AirplaneType,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrFlightNotFound
		}
		return nil, err
	}
	d.Airplane.Capacity = booking.Capacity(d.Airplane.RowCount, d.Airplane.SeatsInRow)

	d.Crews = []CrewView{}
	const crewQ = `SELECT c.id, CONCAT(c.first_name, ' ', c.last_name), cr.name
	               FROM flight_crews fc
	               JOIN crews c ON c.id = fc.crew_id
	               JOIN crew_roles cr ON cr.id = c.role_id
	               WHERE fc.flight_id = ?
	               ORDER BY cr.name, c.last_name`
	crows, err := r.db.QueryContext(ctx, crewQ, id)
	if err != nil {
		return nil, err
	}
	defer crows.Close()
	for crows.Next() {
		var v CrewView
		if err := crows.Scan(&v.ID, &v.FullName, &v.Role); err != nil {
			return nil, err
		}
		d.Crews = append(d.Crews, v)
	}
	if err := crows.Err(); err != nil {
		return nil, err
	}

	d.TakenSeats = []TakenSeat{}
	const seatQ = `SELECT seat_row, seat FROM tickets WHERE flight_id = ? ORDER BY seat_row, seat`
	srows, err := r.db.QueryContext(ctx, seatQ, id)
	if err != nil {
		return nil, err
	}
	defer srows.Close()
	for srows.Next() {
		var s TakenSeat
		if err := srows.Scan(&s.Row, &s.Seat); err != nil {
			return nil, err
		}
		d.TakenSeats = append(d.TakenSeats, s)
	}
	return &d, srows.Err()
}

// Delete removes a flight. Its tickets and crew assignments cascade;
// orders that referenced those tickets survive, possibly empty.
func (r *FlightRepo) Delete(ctx context.Context, id uint64) error {
	err := deleteEntity(ctx, r.db, "flights", id)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrFlightNotFound
	}
	return err
}
