// ABOUTME: Error taxonomy for the storage layer.
// ABOUTME: Maps driver errors from SQLite and PostgreSQL onto package sentinels.
package storage

import (
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

var (
	// ErrConnection means the database could not be reached.
	ErrConnection = errors.New("database unavailable")
	// ErrEmailTaken means a user with the same email already exists.
	ErrEmailTaken = errors.New("email already registered")
	// ErrNotFound means no row matched.
	ErrNotFound = errors.New("not found")
)

const pgUniqueViolation = "23505"

// StoreError wraps any other database failure with the operation that hit it.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// classify turns a raw driver error into a StoreError, marking connection
// failures with ErrConnection.
func classify(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, sql.ErrNoRows):
		return &StoreError{Op: op, Err: ErrNotFound}
	case isConnectionFailure(err):
		return &StoreError{Op: op, Err: fmt.Errorf("%w: %w", ErrConnection, err)}
	default:
		return &StoreError{Op: op, Err: err}
	}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}
	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		code := liteErr.Code()
		return code == sqlite3.SQLITE_CONSTRAINT_UNIQUE ||
			(code&0xff == sqlite3.SQLITE_CONSTRAINT && strings.Contains(liteErr.Error(), "UNIQUE"))
	}
	return false
}

func isConnectionFailure(err error) bool {
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, ErrConnection) {
		return true
	}
	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		return true
	}
	var netErr *net.OpError
	return errors.As(err, &netErr)
}
