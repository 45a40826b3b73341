package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/iliyamo/airline-booking/internal/model"
)

// AirportRepo provides CRUD access to the airports table plus the read
// projections used by list and retrieve endpoints.
type AirportRepo struct {
	db *sql.DB
}

// NewAirportRepo constructs an AirportRepo with the given DB handle.
func NewAirportRepo(db *sql.DB) *AirportRepo { return &AirportRepo{db: db} }

// AirportView is the read projection for airports: the country is
// resolved to its name rather than an ID.
type AirportView struct {
	ID             uint64 `json:"id"`
	Name           string `json:"name"`
	ClosestBigCity string `json:"closest_big_city"`
	Country        string `json:"country"`
}

// AirportFilter restricts List. Zero values mean no filtering.
type AirportFilter struct {
	CountryID uint64 // equality on airports.country_id
	Name      string // substring on airports.name
}

// Create inserts an airport. The referenced country must exist; a
// missing FK surfaces as ErrCountryNotFound.
func (r *AirportRepo) Create(ctx context.Context, a *model.Airport) error {
	const q = `INSERT INTO airports (name, closest_big_city, country_id) VALUES (?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, a.Name, a.ClosestBigCity, a.CountryID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return ErrCountryNotFound
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	a.ID = uint64(id)
	return nil
}

// List returns airports ordered by name with their country names
// resolved, honoring the optional filter.
func (r *AirportRepo) List(ctx context.Context, f AirportFilter) ([]AirportView, error) {
	q := `SELECT a.id, a.name, a.closest_big_city, c.name
	      FROM airports a
	      JOIN countries c ON c.id = a.country_id`
	var conds []string
	var args []interface{}
	if f.CountryID != 0 {
		conds = append(conds, "a.country_id = ?")
		args = append(args, f.CountryID)
	}
	if strings.TrimSpace(f.Name) != "" {
		conds = append(conds, "a.name LIKE ?")
		args = append(args, "%"+strings.TrimSpace(f.Name)+"%")
	}
	if len(conds) > 0 {
		q += " WHERE " + strings.Join(conds, " AND ")
	}
	q += " ORDER BY a.name"
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]AirportView, 0)
	for rows.Next() {
		var v AirportView
		if err := rows.Scan(&v.ID, &v.Name, &v.ClosestBigCity, &v.Country); err != nil {
			return nil, err
		}
		result = append(result, v)
	}
	return result, rows.Err()
}

// GetByID retrieves a single airport projection.
func (r *AirportRepo) GetByID(ctx context.Context, id uint64) (*AirportView, error) {
	const q = `SELECT a.id, a.name, a.closest_big_city, c.name
	           FROM airports a
	           JOIN countries c ON c.id = a.country_id
	           WHERE a.id = ?`
	var v AirportView
	err := r.db.QueryRowContext(ctx, q, id).Scan(&v.ID, &v.Name, &v.ClosestBigCity, &v.Country)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAirportNotFound
		}
		return nil, err
	}
	return &v, nil
}

// Update rewrites all mutable airport columns.
func (r *AirportRepo) Update(ctx context.Context, a *model.Airport) error {
	const q = `UPDATE airports
	           SET name = ?, closest_big_city = ?, country_id = ?, updated_at = CURRENT_TIMESTAMP
	           WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, a.Name, a.ClosestBigCity, a.CountryID, a.ID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return ErrCountryNotFound
		}
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		ok, err := existsByID(ctx, r.db, "airports", a.ID)
		if err != nil {
			return err
		}
		if !ok {
			return ErrAirportNotFound
		}
	}
	return nil
}

// Delete removes an airport; routes touching it in either direction
// cascade away together with their flights and tickets.
func (r *AirportRepo) Delete(ctx context.Context, id uint64) error {
	err := deleteEntity(ctx, r.db, "airports", id)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrAirportNotFound
	}
	return err
}
