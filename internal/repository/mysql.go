package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-sql-driver/mysql"
)

// rowQuerier is satisfied by both *sql.DB and *sql.Tx.
type rowQuerier interface {
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// existsByID reports whether a row with the given id exists. MySQL
// counts an UPDATE that changes nothing as zero affected rows, so
// repos call this after RowsAffected()==0 to tell a no-op update from
// a missing row.
func existsByID(ctx context.Context, q rowQuerier, table string, id uint64) (bool, error) {
	var one int
	err := q.QueryRowContext(ctx, `SELECT 1 FROM `+table+` WHERE id = ? LIMIT 1`, id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// isDuplicateKey reports whether err is a MySQL duplicate-key violation
// (error 1062). The tickets unique index and the unique columns on
// countries and users all surface through this check.
func isDuplicateKey(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == 1062
}

// isForeignKeyViolation reports whether err is a failed FK check
// (error 1452), meaning a write referenced a parent row that does not
// exist. Repos translate it into the missing parent's not-found
// sentinel.
func isForeignKeyViolation(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == 1452
}
