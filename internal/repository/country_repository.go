package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/iliyamo/airline-booking/internal/model"
)

// CountryRepo provides CRUD access to the countries table.
type CountryRepo struct {
	db *sql.DB
}

// NewCountryRepo constructs a CountryRepo with the given DB handle.
func NewCountryRepo(db *sql.DB) *CountryRepo { return &CountryRepo{db: db} }

// CountryView is the read projection for countries.
type CountryView struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

// Create inserts a country. Country names are unique; a duplicate name
// surfaces as ErrConflict.
func (r *CountryRepo) Create(ctx context.Context, c *model.Country) error {
	const q = `INSERT INTO countries (name) VALUES (?)`
	res, err := r.db.ExecContext(ctx, q, c.Name)
	if err != nil {
		if isDuplicateKey(err) {
			return ErrConflict
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	c.ID = uint64(id)
	return nil
}

// List returns all countries ordered by name. A non-empty nameFilter
// restricts the result to names containing the substring.
func (r *CountryRepo) List(ctx context.Context, nameFilter string) ([]CountryView, error) {
	q := `SELECT id, name FROM countries`
	var args []interface{}
	if strings.TrimSpace(nameFilter) != "" {
		q += ` WHERE name LIKE ?`
		args = append(args, "%"+strings.TrimSpace(nameFilter)+"%")
	}
	q += ` ORDER BY name`
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]CountryView, 0)
	for rows.Next() {
		var v CountryView
		if err := rows.Scan(&v.ID, &v.Name); err != nil {
			return nil, err
		}
		result = append(result, v)
	}
	return result, rows.Err()
}

// GetByID retrieves a single country projection.
func (r *CountryRepo) GetByID(ctx context.Context, id uint64) (*CountryView, error) {
	const q = `SELECT id, name FROM countries WHERE id = ?`
	var v CountryView
	err := r.db.QueryRowContext(ctx, q, id).Scan(&v.ID, &v.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCountryNotFound
		}
		return nil, err
	}
	return &v, nil
}

// Update renames a country. Returns ErrCountryNotFound when no row
// matched; a re-PUT of the current name is a successful no-op.
func (r *CountryRepo) Update(ctx context.Context, id uint64, name string) error {
	const q = `UPDATE countries SET name = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, name, id)
	if err != nil {
		if isDuplicateKey(err) {
			return ErrConflict
		}
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		ok, err := existsByID(ctx, r.db, "countries", id)
		if err != nil {
			return err
		}
		if !ok {
			return ErrCountryNotFound
		}
	}
	return nil
}

// Delete removes a country and, per the declared Cascade policy, its
// airports along with everything hanging off them.
func (r *CountryRepo) Delete(ctx context.Context, id uint64) error {
	err := deleteEntity(ctx, r.db, "countries", id)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrCountryNotFound
	}
	return err
}
