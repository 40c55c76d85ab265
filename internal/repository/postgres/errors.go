package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// uniqueViolation is the Postgres error code for unique_violation.
const uniqueViolation = "23505"

// isUniqueViolation reports whether err is a unique-constraint
// violation. Uniqueness races (for example two concurrent applies for
// the same job) are resolved here, at the store level.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
