// ABOUTME: Connection provider for SQLite (modernc, pure Go) and PostgreSQL (pgx).
// ABOUTME: Picks the dialect from the connection string and never reuses idle connections.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// Dialect identifies the SQL backend behind a DB.
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "postgres"
)

const sqlitePragmas = "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"

// DB is a handle on the relational store. Inside WithTx the same type runs
// every statement on the open transaction.
type DB struct {
	db      *sqlx.DB
	q       sqlx.ExtContext
	dialect Dialect
	sb      sq.StatementBuilderType
}

// Open connects to the store named by dsn and creates the schema if needed.
// A store that cannot be reached yields an error wrapping ErrConnection.
func Open(ctx context.Context, dsn string) (*DB, error) {
	dialect, driverName, source, err := parseDSN(dsn)
	if err != nil {
		return nil, err
	}

	if dialect == DialectSQLite {
		if err := ensureDir(source); err != nil {
			return nil, err
		}
	}

	conn, err := sqlx.Open(driverName, source)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %w", ErrConnection, dialect, err)
	}
	// Every operation acquires its own connection and releases it when done.
	conn.SetMaxIdleConns(0)

	if err := conn.PingContext(ctx); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("%w: ping %s: %w", ErrConnection, dialect, err)
	}

	d := newDB(conn, dialect)
	if err := d.initSchema(ctx); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}

	return d, nil
}

// New wraps an already-open database handle without touching the schema.
func New(conn *sql.DB, dialect Dialect) *DB {
	driverName := "sqlite"
	if dialect == DialectPostgres {
		driverName = "pgx"
	}
	return newDB(sqlx.NewDb(conn, driverName), dialect)
}

func newDB(conn *sqlx.DB, dialect Dialect) *DB {
	sb := sq.StatementBuilder.PlaceholderFormat(sq.Question)
	if dialect == DialectPostgres {
		sb = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	}
	return &DB{db: conn, q: conn, dialect: dialect, sb: sb}
}

// Dialect reports which backend the handle talks to.
func (d *DB) Dialect() Dialect {
	return d.dialect
}

// Ping checks that the store is still reachable.
func (d *DB) Ping(ctx context.Context) error {
	if d.db == nil {
		return nil
	}
	if err := d.db.PingContext(ctx); err != nil {
		return fmt.Errorf("%w: %w", ErrConnection, err)
	}
	return nil
}

// Close closes the underlying pool.
func (d *DB) Close() error {
	if d.db != nil {
		return d.db.Close()
	}
	return nil
}

// WithTx runs fn against a transaction-bound DB, committing when fn returns
// nil and rolling back otherwise. Nested calls reuse the outer transaction.
func (d *DB) WithTx(ctx context.Context, fn func(Repository) error) error {
	if d.db == nil {
		return fn(d)
	}

	tx, err := d.db.BeginTxx(ctx, nil)
	if err != nil {
		return classify("begin transaction", err)
	}

	txDB := &DB{q: tx, dialect: d.dialect, sb: d.sb}
	if err := fn(txDB); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return classify("commit transaction", err)
	}
	return nil
}

// parseDSN maps a connection string onto a dialect, a database/sql driver
// name, and the driver-specific data source.
func parseDSN(dsn string) (Dialect, string, string, error) {
	dsn = strings.TrimSpace(dsn)
	switch {
	case dsn == "":
		return "", "", "", fmt.Errorf("%w: empty connection string", ErrConnection)
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		return DialectPostgres, "pgx", dsn, nil
	case strings.HasPrefix(dsn, "sqlite://"):
		return DialectSQLite, "sqlite", withPragmas(strings.TrimPrefix(dsn, "sqlite://")), nil
	default:
		return DialectSQLite, "sqlite", withPragmas(dsn), nil
	}
}

func withPragmas(source string) string {
	if strings.Contains(source, "_pragma=") {
		return source
	}
	if strings.Contains(source, "?") {
		return source + "&" + sqlitePragmas
	}
	return source + "?" + sqlitePragmas
}

// ensureDir creates the parent directory of a SQLite database file.
func ensureDir(source string) error {
	path := strings.TrimPrefix(source, "file:")
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	if path == "" || path == ":memory:" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}
	return nil
}

// DataDir returns the default data directory following the XDG base directory layout.
func DataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "fuerza")
}

// DefaultDSN returns the SQLite database under the XDG data directory.
func DefaultDSN() string {
	return "sqlite://" + filepath.Join(DataDir(), "fuerza.db")
}
