package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/iliyamo/airline-booking/internal/booking"
	"github.com/iliyamo/airline-booking/internal/model"
)

// AirplaneRepo provides CRUD access to airplane_types and airplanes.
// Both live in one repo because an airplane type is a pure label and
// every read of an airplane resolves its type name anyway.
type AirplaneRepo struct {
	db *sql.DB
}

// NewAirplaneRepo constructs an AirplaneRepo with the given DB handle.
func NewAirplaneRepo(db *sql.DB) *AirplaneRepo { return &AirplaneRepo{db: db} }

// AirplaneView is the read projection for airplanes. Capacity is
// derived from the geometry at read time and never stored.
type AirplaneView struct {
	ID           uint64 `json:"id"`
	Name         string `json:"name"`
	RowCount     int    `json:"rows"`
	SeatsInRow   int    `json:"seats_in_row"`
	AirplaneType string `json:"airplane_type"`
	Capacity     int    `json:"capacity"`
}

// AirplaneTypeView is the read projection for airplane type labels.
type AirplaneTypeView struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

// AirplaneFilter restricts ListAirplanes. Zero values mean no filtering.
type AirplaneFilter struct {
	TypeID uint64 // equality on airplanes.airplane_type_id
	Name   string // substring on airplanes.name
}

// CreateType inserts an airplane type label.
func (r *AirplaneRepo) CreateType(ctx context.Context, t *model.AirplaneType) error {
	const q = `INSERT INTO airplane_types (name) VALUES (?)`
	res, err := r.db.ExecContext(ctx, q, t.Name)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	t.ID = uint64(id)
	return nil
}

// ListTypes returns all airplane types ordered by name.
func (r *AirplaneRepo) ListTypes(ctx context.Context) ([]AirplaneTypeView, error) {
	const q = `SELECT id, name FROM airplane_types ORDER BY name`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]AirplaneTypeView, 0)
	for rows.Next() {
		var v AirplaneTypeView
		if err := rows.Scan(&v.ID, &v.Name); err != nil {
			return nil, err
		}
		result = append(result, v)
	}
	return result, rows.Err()
}

// UpdateType renames an airplane type.
func (r *AirplaneRepo) UpdateType(ctx context.Context, id uint64, name string) error {
	const q = `UPDATE airplane_types SET name = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, name, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		ok, err := existsByID(ctx, r.db, "airplane_types", id)
		if err != nil {
			return err
		}
		if !ok {
			return ErrAirplaneTypeNotFound
		}
	}
	return nil
}

// DeleteType removes an airplane type and cascades to its airplanes.
func (r *AirplaneRepo) DeleteType(ctx context.Context, id uint64) error {
	err := deleteEntity(ctx, r.db, "airplane_types", id)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrAirplaneTypeNotFound
	}
	return err
}

// Create inserts an airplane. Geometry must be strictly positive; the
// handler validates that before calling here.
func (r *AirplaneRepo) Create(ctx context.Context, a *model.Airplane) error {
	const q = `INSERT INTO airplanes (name, row_count, seats_in_row, airplane_type_id) VALUES (?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, a.Name, a.RowCount, a.SeatsInRow, a.AirplaneTypeID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return ErrAirplaneTypeNotFound
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

// ListAirplanes returns airplane projections ordered by name.
func (r *AirplaneRepo) ListAirplanes(ctx context.Context, f AirplaneFilter) ([]AirplaneView, error) {
	q := `SELECT a.id, a.name, a.row_count, a.seats_in_row, t.name
	      FROM airplanes a
	      JOIN airplane_types t ON t.id = a.airplane_type_id`
	var conds []string
	var args []interface{}
	if f.TypeID != 0 {
		conds = append(conds, "a.airplane_type_id = ?")
		args = append(args, f.TypeID)
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

	result := make([]AirplaneView, 0)
	for rows.Next() {
		var v AirplaneView
		if err := rows.Scan(&v.ID, &v.Name, &v.RowCount, &v.SeatsInRow, &v.AirplaneType); err != nil {
			return nil, err
		}
		v.Capacity = booking.Capacity(v.RowCount, v.SeatsInRow)
		result = append(result, v)
	}
	return result, rows.Err()
}

// GetByID retrieves one airplane projection.
func (r *AirplaneRepo) GetByID(ctx context.Context, id uint64) (*AirplaneView, error) {
	const q = `SELECT a.id, a.name, a.row_count, a.seats_in_row, t.name
	           FROM airplanes a
	           JOIN airplane_types t ON t.id = a.airplane_type_id
	           WHERE a.id = ?`
	var v AirplaneView
	err := r.db.QueryRowContext(ctx, q, id).Scan(&v.ID, &v.Name, &v.RowCount, &v.SeatsInRow, &v.AirplaneType)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAirplaneNotFound
		}
		return nil, err
	}
	v.Capacity = booking.Capacity(v.RowCount, v.SeatsInRow)
	return &v, nil
}

// Update rewrites all mutable airplane columns.
func (r *AirplaneRepo) Update(ctx context.Context, a *model.Airplane) error {
	const q = `UPDATE airplanes
	           SET name = ?, row_count = ?, seats_in_row = ?, airplane_type_id = ?, updated_at = CURRENT_TIMESTAMP
	           WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, a.Name, a.RowCount, a.SeatsInRow, a.AirplaneTypeID, a.ID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return ErrAirplaneTypeNotFound
		}
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		ok, err := existsByID(ctx, r.db, "airplanes", a.ID)
		if err != nil {
			return err
		}
		if !ok {
			return ErrAirplaneNotFound
		}
	}
	return nil
}

// Delete removes an airplane; its flights and their tickets cascade.
func (r *AirplaneRepo) Delete(ctx context.Context, id uint64) error {
	err := deleteEntity(ctx, r.db, "airplanes", id)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrAirplaneNotFound
	}
	return err
}
