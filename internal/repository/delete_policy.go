package repository

import (
	"context"
	"database/sql"
)

// DeletePolicy states what happens to rows referencing an entity when
// that entity is deleted. The rules are declared here per foreign key
// and checked explicitly at delete time rather than inferred from
// schema annotations, so the ownership graph is visible in one place.
type DeletePolicy int

const (
	// Cascade deletes the referencing rows together with the parent.
	Cascade DeletePolicy = iota
	// Protect refuses the delete while any referencing row exists.
	Protect
	// Restrict behaves like Protect; kept as a distinct value so the
	// rules table reads the same as the schema it mirrors.
	Restrict
)

// dependent is one foreign key pointing at a parent table.
type dependent struct {
	Table  string
	Column string
	Policy DeletePolicy
}

// deleteRules lists, for every parent table, the foreign keys that
// reference it. Tables absent from the map have no dependents and are
// deleted with a plain DELETE. Note that deleting a flight cascades to
// its tickets but deliberately not to the orders owning those tickets;
// an order may be left empty (inherited behavior, kept as is).
var deleteRules = map[string][]dependent{
	"countries":      {{Table: "airports", Column: "country_id", Policy: Cascade}},
	"airports":       {{Table: "routes", Column: "source_id", Policy: Cascade}, {Table: "routes", Column: "destination_id", Policy: Cascade}},
	"routes":         {{Table: "flights", Column: "route_id", Policy: Cascade}},
	"airplane_types": {{Table: "airplanes", Column: "airplane_type_id", Policy: Cascade}},
	"airplanes":      {{Table: "flights", Column: "airplane_id", Policy: Cascade}},
	"crew_roles":     {{Table: "crews", Column: "role_id", Policy: Protect}},
	"crews":          {{Table: "flight_crews", Column: "crew_id", Policy: Cascade}},
	"flights":        {{Table: "flight_crews", Column: "flight_id", Policy: Cascade}, {Table: "tickets", Column: "flight_id", Policy: Cascade}},
	"orders":         {{Table: "tickets", Column: "order_id", Policy: Cascade}},
	"users":          {{Table: "orders", Column: "user_id", Policy: Cascade}, {Table: "refresh_tokens", Column: "user_id", Policy: Cascade}},
}

// deleteWithPolicy removes one row after applying the declared rules:
// Protect/Restrict dependents abort with ErrConflict, Cascade
// dependents are removed first (recursively, so a country takes its
// airports, routes, flights and tickets with it). It must run inside a
// transaction owned by the caller. Returns sql.ErrNoRows when the
// parent row does not exist.
func deleteWithPolicy(ctx context.Context, tx *sql.Tx, table string, id uint64) error {
	for _, dep := range deleteRules[table] {
		switch dep.Policy {
		case Protect, Restrict:
			var n int
			if err := tx.QueryRowContext(ctx,
				`SELECT COUNT(*) FROM `+dep.Table+` WHERE `+dep.Column+` = ?`, id).Scan(&n); err != nil {
				return err
			}
			if n > 0 {
				return ErrConflict
			}
		case Cascade:
			if _, hasChildren := deleteRules[dep.Table]; !hasChildren {
				if _, err := tx.ExecContext(ctx,
					`DELETE FROM `+dep.Table+` WHERE `+dep.Column+` = ?`, id); err != nil {
					return err
				}
				continue
			}
			rows, err := tx.QueryContext(ctx,
				`SELECT id FROM `+dep.Table+` WHERE `+dep.Column+` = ?`, id)
			if err != nil {
				return err
			}
			var childIDs []uint64
			for rows.Next() {
				var childID uint64
				if err := rows.Scan(&childID); err != nil {
					rows.Close()
					return err
				}
				childIDs = append(childIDs, childID)
			}
			rows.Close()
			if err := rows.Err(); err != nil {
				return err
			}
			for _, childID := range childIDs {
				if err := deleteWithPolicy(ctx, tx, dep.Table, childID); err != nil {
					return err
				}
			}
		}
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM `+table+` WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// deleteEntity wraps deleteWithPolicy in its own transaction for repos
// whose Delete is a single-entity operation.
func deleteEntity(ctx context.Context, db *sql.DB, table string, id uint64) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := deleteWithPolicy(ctx, tx, table, id); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}
