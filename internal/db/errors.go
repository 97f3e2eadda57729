package db

import (
	"errors"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	mysqlDuplicateEntry       = 1062
	mysqlNoReferencedRow      = 1452
	postgresUniqueViolation   = "23505"
	postgresForeignKeyMissing = "23503"
)

// DuplicateKey reports whether err is a unique constraint violation and, if so,
// a string that names the violated index (the constraint name on PostgreSQL,
// the driver message on MySQL, which embeds the key name).
func DuplicateKey(err error) (string, bool) {
	if err == nil {
		return "", false
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) && myErr.Number == mysqlDuplicateEntry {
		return myErr.Message, true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == postgresUniqueViolation {
		return pgErr.ConstraintName, true
	}

	return "", false
}

// IsForeignKeyViolation reports whether err was caused by a reference to a missing row.
func IsForeignKeyViolation(err error) bool {
	if err == nil {
		return false
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == mysqlNoReferencedRow
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == postgresForeignKeyMissing
	}

	return false
}
