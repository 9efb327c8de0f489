// Package store is the data-access layer for the organization chart. It
// owns the single store connection and turns typed requests into
// parameterized statements over the departments, roles and employees
// tables.
//
// Every scalar value travels as a bound parameter. The only identifiers
// chosen at run time come from closed sets (types.Table, fixed column
// lists), never from caller text. Read operations impose no ORDER BY, so
// row order is whatever the store returns and callers must not rely on it.
package store

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/mesh-intelligence/orgchart/pkg/types"
)

// Config selects a driver and the parameters needed to reach the store.
// Path is used by sqlite; the network fields by postgres and mysql.
type Config struct {
	Driver   string
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
	Path     string
}

func (c Config) target() string {
	if c.Driver == DriverSQLite {
		return c.Path
	}
	return c.Host + "/" + c.Database
}

// queryer is the subset of *sql.DB the operations use.
type queryer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Repository holds one persistent connection for the life of the process.
// Operations are serialized by mu, so at most one statement is in flight.
type Repository struct {
	mu      sync.Mutex
	db      *sql.DB
	dialect dialect
	log     zerolog.Logger
}

// Open connects to the store described by cfg and verifies the connection.
// Any failure is reported with CodeConnection, except a malformed config
// which is CodeInvalidArgument.
func Open(ctx context.Context, cfg Config, logger zerolog.Logger) (*Repository, error) {
	const op = "open store"

	d, err := lookupDialect(cfg.Driver)
	if err != nil {
		return nil, &types.Error{Op: op, Code: types.CodeInvalidArgument, Err: err}
	}
	dsn, err := d.dsn(cfg)
	if err != nil {
		return nil, &types.Error{Op: op, Code: types.CodeInvalidArgument, Err: err}
	}

	db, err := sql.Open(d.driverName, dsn)
	if err != nil {
		return nil, &types.Error{Op: op, Code: types.CodeConnection, Err: err}
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, &types.Error{Op: op, Code: types.CodeConnection, Err: err}
	}

	logger.Debug().
		Str("driver", d.name).
		Str("target", cfg.target()).
		Msg("store connected")

	return &Repository{
		db:      db,
		dialect: d,
		log:     logger,
	}, nil
}

// Driver returns the name of the dialect in use.
func (r *Repository) Driver() string {
	return r.dialect.name
}

// Close releases the connection. Close is idempotent; afterwards every
// operation fails with types.ErrClosed.
func (r *Repository) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.db == nil {
		return nil
	}
	err := r.db.Close()
	r.db = nil
	return err
}

// do runs fn with exclusive use of the connection.
func (r *Repository) do(op string, fn func(db queryer) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.db == nil {
		return &types.Error{Op: op, Code: types.CodeConnection, Err: types.ErrClosed}
	}
	return fn(r.db)
}

// fail wraps a store error with its classification. Values are attached
// for constraint violations so callers can report what was rejected.
func (r *Repository) fail(op string, err error, values ...any) error {
	var typed *types.Error
	if errors.As(err, &typed) {
		return err
	}

	code := r.dialect.code(err)
	if errors.Is(err, sql.ErrNoRows) {
		code = types.CodeNotFound
	}

	e := &types.Error{Op: op, Code: code, Err: err}
	if code == types.CodeConstraint {
		e.Values = values
	}

	r.log.Debug().Err(err).Str("op", op).Str("code", string(code)).Msg("statement failed")
	return e
}

func invalid(op string, err error) error {
	return &types.Error{Op: op, Code: types.CodeInvalidArgument, Err: err}
}

func (r *Repository) trace(op string, start time.Time, rows int64) {
	r.log.Debug().
		Str("op", op).
		Int64("rows", rows).
		Dur("elapsed", time.Since(start)).
		Msg("statement executed")
}

// insert runs an INSERT and reports the store-assigned key.
func (r *Repository) insert(ctx context.Context, db queryer, op, stmt string, args ...any) (types.InsertResult, error) {
	start := time.Now()

	if r.dialect.returning {
		var id int64
		if err := db.QueryRowContext(ctx, r.dialect.rebind(stmt+" RETURNING id"), args...).Scan(&id); err != nil {
			return types.InsertResult{}, r.fail(op, err, args...)
		}
		r.trace(op, start, 1)
		return types.InsertResult{ID: id, RowsAffected: 1}, nil
	}

	res, err := db.ExecContext(ctx, r.dialect.rebind(stmt), args...)
	if err != nil {
		return types.InsertResult{}, r.fail(op, err, args...)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return types.InsertResult{}, r.fail(op, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return types.InsertResult{}, r.fail(op, err)
	}
	r.trace(op, start, n)
	return types.InsertResult{ID: id, RowsAffected: n}, nil
}

// exec runs an UPDATE or DELETE and returns the affected-row count. Zero
// means the target id does not exist; that is not an error here.
func (r *Repository) exec(ctx context.Context, db queryer, op, stmt string, args ...any) (int64, error) {
	start := time.Now()

	res, err := db.ExecContext(ctx, r.dialect.rebind(stmt), args...)
	if err != nil {
		return 0, r.fail(op, err, args...)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, r.fail(op, err)
	}
	r.trace(op, start, n)
	return n, nil
}

// query runs q and calls scan once per row.
func (r *Repository) query(ctx context.Context, db queryer, op string, q *selectQuery, scan func(*sql.Rows) error) error {
	start := time.Now()
	stmt, args := q.build()

	rows, err := db.QueryContext(ctx, r.dialect.rebind(stmt), args...)
	if err != nil {
		return r.fail(op, err)
	}
	defer rows.Close()

	var n int64
	for rows.Next() {
		if err := scan(rows); err != nil {
			return r.fail(op, err)
		}
		n++
	}
	if err := rows.Err(); err != nil {
		return r.fail(op, err)
	}
	r.trace(op, start, n)
	return nil
}

// nullableID converts an optional key into a driver value.
func nullableID(id *int64) any {
	if id == nil {
		return nil
	}
	return *id
}

// cents rounds an amount read back from the store to two places. SQLite
// keeps fractional DECIMAL values as REAL, so salaries and their sums come
// back with binary float error.
func cents(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}
