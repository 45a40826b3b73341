package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/airline-booking/internal/model"
)

// CrewRepo provides CRUD access to crew_roles and crews. Crew roles
// carry a Protect delete policy: a role cannot be removed while crews
// reference it.
type CrewRepo struct {
	db *sql.DB
}

// NewCrewRepo constructs a CrewRepo with the given DB handle.
func NewCrewRepo(db *sql.DB) *CrewRepo { return &CrewRepo{db: db} }

// CrewView is the read projection for crew members: name parts joined
// and the role resolved to its name.
type CrewView struct {
	ID       uint64 `json:"id"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
}

// CrewRoleView is the read projection for crew role labels.
type CrewRoleView struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

// CreateRole inserts a crew role label.
func (r *CrewRepo) CreateRole(ctx context.Context, role *model.CrewRole) error {
	const q = `INSERT INTO crew_roles (name) VALUES (?)`
	res, err := r.db.ExecContext(ctx, q, role.Name)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	role.ID = uint64(id)
	return nil
}

// ListRoles returns all crew roles ordered by name.
func (r *CrewRepo) ListRoles(ctx context.Context) ([]CrewRoleView, error) {
	const q = `SELECT id, name FROM crew_roles ORDER BY name`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]CrewRoleView, 0)
	for rows.Next() {
		var v CrewRoleView
		if err := rows.Scan(&v.ID, &v.Name); err != nil {
			return nil, err
		}
		result = append(result, v)
	}
	return result, rows.Err()
}

// UpdateRole renames a crew role.
func (r *CrewRepo) UpdateRole(ctx context.Context, id uint64, name string) error {
	const q = `UPDATE crew_roles SET name = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, name, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		ok, err := existsByID(ctx, r.db, "crew_roles", id)
		if err != nil {
			return err
		}
		if !ok {
			return ErrCrewRoleNotFound
		}
	}
	return nil
}

// DeleteRole removes a role. The Protect policy turns a referenced role
// into ErrConflict so the handler can answer 409.
func (r *CrewRepo) DeleteRole(ctx context.Context, id uint64) error {
	err := deleteEntity(ctx, r.db, "crew_roles", id)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrCrewRoleNotFound
	}
	return err
}

// Create inserts a crew member referencing an existing role.
func (r *CrewRepo) Create(ctx context.Context, c *model.Crew) error {
	const q = `INSERT INTO crews (first_name, last_name, role_id) VALUES (?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, c.FirstName, c.LastName, c.RoleID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return ErrCrewRoleNotFound
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

// List returns crew projections ordered by role then last name, the
// ordering the catalog has always used. A non-zero roleID filters by
// role.
func (r *CrewRepo) List(ctx context.Context, roleID uint64) ([]CrewView, error) {
	q := `SELECT c.id, CONCAT(c.first_name, ' ', c.last_name), cr.name
	      FROM crews c
	      JOIN crew_roles cr ON cr.id = c.role_id`
	var args []interface{}
	if roleID != 0 {
		q += ` WHERE c.role_id = ?`
		args = append(args, roleID)
	}
	q += ` ORDER BY cr.name, c.last_name`
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]CrewView, 0)
	for rows.Next() {
		var v CrewView
		if err := rows.Scan(&v.ID, &v.FullName, &v.Role); err != nil {
			return nil, err
		}
		result = append(result, v)
	}
	return result, rows.Err()
}

// GetByID retrieves one crew projection.
func (r *CrewRepo) GetByID(ctx context.Context, id uint64) (*CrewView, error) {
	const q = `SELECT c.id, CONCAT(c.first_name, ' ', c.last_name), cr.name
	           FROM crews c
	           JOIN crew_roles cr ON cr.id = c.role_id
	           WHERE c.id = ?`
	var v CrewView
	err := r.db.QueryRowContext(ctx, q, id).Scan(&v.ID, &v.FullName, &v.Role)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCrewNotFound
		}
		return nil, err
	}
	return &v, nil
}

// Update rewrites all mutable crew columns.
func (r *CrewRepo) Update(ctx context.Context, c *model.Crew) error {
	const q = `UPDATE crews
	           SET first_name = ?, last_name = ?, role_id = ?, updated_at = CURRENT_TIMESTAMP
	           WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, c.FirstName, c.LastName, c.RoleID, c.ID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return ErrCrewRoleNotFound
		}
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		ok, err := existsByID(ctx, r.db, "crews", c.ID)
		if err != nil {
			return err
		}
		if !ok {
			return ErrCrewNotFound
		}
	}
	return nil
}

// Delete removes a crew member and their flight assignments.
func (r *CrewRepo) Delete(ctx context.Context, id uint64) error {
	err := deleteEntity(ctx, r.db, "crews", id)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrCrewNotFound
	}
	return err
}
