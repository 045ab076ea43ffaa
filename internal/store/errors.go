package store

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrNotFound is returned when a queried row does not exist.
	ErrNotFound = errors.New("not found")
	// ErrForbidden is returned when a row exists but belongs to another user.
	ErrForbidden = errors.New("forbidden")
	// ErrDuplicate is returned on a uniqueness violation (username, email).
	ErrDuplicate = errors.New("duplicate value")
)

// IsUniqueViolation reports whether err is a PostgreSQL unique_violation
// (code 23505) surfaced by the pgx driver.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}
