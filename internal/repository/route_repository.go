package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/iliyamo/airline-booking/internal/model"
)

// RouteRepo provides CRUD access to the routes table. Routes are
// directed: (source, destination) and (destination, source) are
// distinct rows.
type RouteRepo struct {
	db *sql.DB
}

// NewRouteRepo constructs a RouteRepo with the given DB handle.
func NewRouteRepo(db *sql.DB) *RouteRepo { return &RouteRepo{db: db} }

// RouteView is the list projection: the two airports are collapsed into
// the derived "{source}-{destination}" display name.
type RouteView struct {
	ID        uint64 `json:"id"`
	RouteName string `json:"route_name"`
	Distance  int    `json:"distance"`
}

// RouteDetail is the retrieve projection with both airports expanded.
type RouteDetail struct {
	ID          uint64      `json:"id"`
	Source      AirportView `json:"source"`
	Destination AirportView `json:"destination"`
	Distance    int         `json:"distance"`
}

// RouteFilter restricts List by endpoint airport IDs. Zero values mean
// no filtering.
type RouteFilter struct {
	SourceID      uint64
	DestinationID uint64
}

// Create inserts a route between two existing airports.
func (r *RouteRepo) Create(ctx context.Context, rt *model.Route) error {
	const q = `INSERT INTO routes (source_id, destination_id, distance) VALUES (?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, rt.SourceID, rt.DestinationID, rt.Distance)
	if err != nil {
		if isForeignKeyViolation(err) {
			return ErrAirportNotFound
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	rt.ID = uint64(id)
	return nil
}

// List returns routes with derived names, ordered by source then
// destination airport name to mirror the catalog ordering.
func (r *RouteRepo) List(ctx context.Context, f RouteFilter) ([]RouteView, error) {
	q := `SELECT r.id, CONCAT(src.name, '-', dst.name), r.distance
	      FROM routes r
	      JOIN airports src ON src.id = r.source_id
	      JOIN airports dst ON dst.id = r.destination_id`
	var conds []string
	var args []interface{}
	if f.SourceID != 0 {
		conds = append(conds, "r.source_id = ?")
		args = append(args, f.SourceID)
	}
	if f.DestinationID != 0 {
		conds = append(conds, "r.destination_id = ?")
		args = append(args, f.DestinationID)
	}
	if len(conds) > 0 {
		q += " WHERE " + strings.Join(conds, " AND ")
	}
	q += " ORDER BY src.name, dst.name"
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]RouteView, 0)
	for rows.Next() {
		var v RouteView
		if err := rows.Scan(&v.ID, &v.RouteName, &v.Distance); err != nil {
			return nil, err
		}
		result = append(result, v)
	}
	return result, rows.Err()
}

// GetByID retrieves a route with both airport projections expanded.
func (r *RouteRepo) GetByID(ctx context.Context, id uint64) (*RouteDetail, error) {
	const q = `SELECT r.id, r.distance,
	                  src.id, src.name, src.closest_big_city, sc.name,
	                  dst.id, dst.name, dst.closest_big_city, dc.name
	           FROM routes r
	           JOIN airports src ON src.id = r.source_id
	           JOIN countries sc ON sc.id = src.country_id
	           JOIN airports dst ON dst.id = r.destination_id
	           JOIN countries dc ON dc.id = dst.country_id
	           WHERE r.id = ?`
	var d RouteDetail
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&d.ID, &d.Distance,
		&d.Source.ID, &d.Source.Name, &d.Source.ClosestBigCity, &d.Source.Country,
		&d.Destination.ID, &d.Destination.Name, &d.Destination.ClosestBigCity, &d.Destination.Country,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRouteNotFound
		}
		return nil, err
	}
	return &d, nil
}

// Update rewrites all mutable route columns.
func (r *RouteRepo) Update(ctx context.Context, rt *model.Route) error {
	const q = `UPDATE routes
	           SET source_id = ?, destination_id = ?, distance = ?, updated_at = CURRENT_TIMESTAMP
	           WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, rt.SourceID, rt.DestinationID, rt.Distance, rt.ID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return ErrAirportNotFound
		}
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		ok, err := existsByID(ctx, r.db, "routes", rt.ID)
		if err != nil {
			return err
		}
		if !ok {
			return ErrRouteNotFound
		}
	}
	return nil
}

// Delete removes a route; its flights and their tickets cascade away.
func (r *RouteRepo) Delete(ctx context.Context, id uint64) error {
	err := deleteEntity(ctx, r.db, "routes", id)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrRouteNotFound
	}
	return err
}
