package store

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/mesh-intelligence/orgchart/pkg/types"
)

// Supported store drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
)

// Drivers lists the supported driver names.
var Drivers = []string{DriverSQLite, DriverPostgres, DriverMySQL}

// dialect captures what differs between stores: how to connect, how
// placeholders are spelled, how inserted keys come back, and how driver
// errors map onto error codes.
type dialect struct {
	name       string
	driverName string
	numbered   bool // $1, $2 placeholders instead of ?
	returning  bool // INSERT ... RETURNING id instead of LastInsertId
	dsn        func(Config) (string, error)
	classify   func(error) (types.Code, bool)
	schema     []string
}

var dialects = map[string]dialect{
	DriverSQLite: {
		name:       DriverSQLite,
		driverName: "sqlite",
		dsn:        sqliteDSN,
		classify:   classifySQLite,
		schema:     sqliteSchema,
	},
	DriverPostgres: {
		name:       DriverPostgres,
		driverName: "pgx",
		numbered:   true,
		returning:  true,
		dsn:        postgresDSN,
		classify:   classifyPostgres,
		schema:     postgresSchema,
	},
	DriverMySQL: {
		name:       DriverMySQL,
		driverName: "mysql",
		dsn:        mysqlDSN,
		classify:   classifyMySQL,
		schema:     mysqlSchema,
	},
}

func lookupDialect(name string) (dialect, error) {
	d, ok := dialects[strings.ToLower(name)]
	if !ok {
		return dialect{}, fmt.Errorf("%w: unknown driver %q (valid: %s)", types.ErrInvalidArgument, name, strings.Join(Drivers, ", "))
	}
	return d, nil
}

// rebind rewrites ? placeholders into the dialect's form. Statements built
// by this package never contain a literal question mark.
func (d dialect) rebind(query string) string {
	if !d.numbered {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for i := 0; i < len(query); i++ {
		if query[i] == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteByte(query[i])
	}
	return b.String()
}

// code classifies err using the dialect first and generic transport checks
// second.
func (d dialect) code(err error) types.Code {
	if c, ok := d.classify(err); ok {
		return c
	}
	if errors.Is(err, driver.ErrBadConn) {
		return types.CodeConnection
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return types.CodeConnection
	}
	return types.CodeInternal
}

func sqliteDSN(cfg Config) (string, error) {
	if cfg.Path == "" {
		return "", fmt.Errorf("%w: sqlite requires a database path", types.ErrInvalidArgument)
	}
	return cfg.Path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", nil
}

func postgresDSN(cfg Config) (string, error) {
	port := cfg.Port
	if port == 0 {
		port = 5432
	}
	sslMode := cfg.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(cfg.User, cfg.Password),
		Host:     net.JoinHostPort(cfg.Host, strconv.Itoa(port)),
		Path:     "/" + cfg.Database,
		RawQuery: url.Values{"sslmode": []string{sslMode}}.Encode(),
	}
	return u.String(), nil
}

func mysqlDSN(cfg Config) (string, error) {
	port := cfg.Port
	if port == 0 {
		port = 3306
	}

	mc := mysql.NewConfig()
	mc.User = cfg.User
	mc.Passwd = cfg.Password
	mc.Net = "tcp"
	mc.Addr = net.JoinHostPort(cfg.Host, strconv.Itoa(port))
	mc.DBName = cfg.Database
	// Report matched rows so an update with unchanged values still counts.
	mc.ClientFoundRows = true
	return mc.FormatDSN(), nil
}

func classifySQLite(err error) (types.Code, bool) {
	var se *sqlite.Error
	if !errors.As(err, &se) {
		return "", false
	}
	switch se.Code() & 0xff {
	case sqlite3.SQLITE_CONSTRAINT:
		return types.CodeConstraint, true
	case sqlite3.SQLITE_CANTOPEN, sqlite3.SQLITE_NOTADB, sqlite3.SQLITE_AUTH:
		return types.CodeConnection, true
	}
	return types.CodeInternal, true
}

func classifyPostgres(err error) (types.Code, bool) {
	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		return types.CodeConnection, true
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return "", false
	}
	switch {
	case strings.HasPrefix(pgErr.Code, "23"):
		return types.CodeConstraint, true
	case strings.HasPrefix(pgErr.Code, "08"), strings.HasPrefix(pgErr.Code, "28"), pgErr.Code == "3D000":
		return types.CodeConnection, true
	case strings.HasPrefix(pgErr.Code, "22"):
		return types.CodeInvalidArgument, true
	}
	return types.CodeInternal, true
}

// MySQL server error numbers.
const (
	mysqlBadNull           = 1048
	mysqlDupEntry          = 1062
	mysqlNoReferencedRow   = 1216
	mysqlRowIsReferenced   = 1217
	mysqlRowIsReferenced2  = 1451
	mysqlNoReferencedRow2  = 1452
	mysqlCheckViolated     = 3819
	mysqlAccessDenied      = 1045
	mysqlBadDB             = 1049
	mysqlOutOfRange        = 1264
	mysqlTruncatedWrongVal = 1366
)

func classifyMySQL(err error) (types.Code, bool) {
	if errors.Is(err, mysql.ErrInvalidConn) {
		return types.CodeConnection, true
	}

	var myErr *mysql.MySQLError
	if !errors.As(err, &myErr) {
		return "", false
	}
	switch myErr.Number {
	case mysqlBadNull, mysqlDupEntry, mysqlNoReferencedRow, mysqlRowIsReferenced,
		mysqlRowIsReferenced2, mysqlNoReferencedRow2, mysqlCheckViolated:
		return types.CodeConstraint, true
	case mysqlAccessDenied, mysqlBadDB:
		return types.CodeConnection, true
	case mysqlOutOfRange, mysqlTruncatedWrongVal:
		return types.CodeInvalidArgument, true
	}
	return types.CodeInternal, true
}
