// Driver adapters: structured DSN construction per database plus a registry
// so binaries can open a store without hand-assembling DSN strings.
package db

import (
	"fmt"
	"os"
	"sync"

	// Registers the "pgx" database/sql driver. Preferred over lib/pq for
	// new Postgres deployments; pq stays available under "postgres".
	_ "github.com/jackc/pgx/v5/stdlib"
)

// ─────────────────────────────────────────────────────────────────────────────
// Driver interface
// ─────────────────────────────────────────────────────────────────────────────

// Driver encapsulates database-specific behaviour: building a DSN from
// structured options and providing a driver-tuned ErrorMapper. Implement it
// to add support for a new database without modifying this package.
type Driver interface {
	// Name returns the database/sql driver name, e.g. "pgx", "mysql".
	Name() string

	// DSN converts structured options into a driver DSN string.
	DSN(opts DriverOptions) (string, error)

	// ErrorMapper returns a mapper tuned to this driver's error types.
	ErrorMapper() ErrorMapper
}

// DriverOptions carries the most common connection parameters in a
// driver-agnostic form. DSN() converts them to the driver's native format.
type DriverOptions struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string // "disable", "require", "verify-full", etc.
	// Extra holds driver-specific key/value parameters.
	Extra map[string]string
}

// ─────────────────────────────────────────────────────────────────────────────
// Registry
// ─────────────────────────────────────────────────────────────────────────────

var (
	driversMu sync.RWMutex
	drivers   = make(map[string]Driver)
)

// RegisterDriver adds a Driver to the registry, replacing any previous entry
// with the same name.
func RegisterDriver(d Driver) {
	driversMu.Lock()
	defer driversMu.Unlock()
	drivers[d.Name()] = d
}

// LookupDriver returns the registered Driver by name or an error.
func LookupDriver(name string) (Driver, error) {
	driversMu.RLock()
	defer driversMu.RUnlock()
	d, ok := drivers[name]
	if !ok {
		return nil, fmt.Errorf("blogstore/db: driver %q not registered", name)
	}
	return d, nil
}

// OpenWithDriver opens a DB using a registered Driver and structured
// options, removing the need for manual DSN construction.
//
//	database, err := db.OpenWithDriver("pgx", db.DriverOptions{
//	    Host: "localhost", Port: 5432,
//	    User: "app", Password: "secret", Database: "blog",
//	}, db.Config{MaxOpenConns: 25})
func OpenWithDriver(driverName string, driverOpts DriverOptions, cfg Config) (*DB, error) {
	drv, err := LookupDriver(driverName)
	if err != nil {
		return nil, err
	}

	dsn, err := drv.DSN(driverOpts)
	if err != nil {
		return nil, fmt.Errorf("blogstore/db: DSN construction failed: %w", err)
	}

	cfg.DriverName = drv.Name()
	cfg.DSN = dsn

	database, err := Open(cfg)
	if err != nil {
		return nil, err
	}

	database.SetErrorMapper(ChainMapper(drv.ErrorMapper(), DefaultErrorMapper()))
	return database, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Built-in adapters
// ─────────────────────────────────────────────────────────────────────────────

// PgxDriver opens Postgres through jackc/pgx's database/sql shim.
type PgxDriver struct{}

func (PgxDriver) Name() string { return "pgx" }

func (PgxDriver) DSN(o DriverOptions) (string, error) { return postgresDSN(o, "pgx") }

func (PgxDriver) ErrorMapper() ErrorMapper { return DefaultErrorMapper() }

// PostgresDriver opens Postgres through lib/pq, which registers itself as
// "postgres" when this module is linked.
type PostgresDriver struct{}

func (PostgresDriver) Name() string { return "postgres" }

func (PostgresDriver) DSN(o DriverOptions) (string, error) { return postgresDSN(o, "postgres") }

func (PostgresDriver) ErrorMapper() ErrorMapper { return DefaultErrorMapper() }

func postgresDSN(o DriverOptions, who string) (string, error) {
	if o.Host == "" || o.Database == "" {
		return "", fmt.Errorf("%s driver: Host and Database are required", who)
	}
	port := o.Port
	if port == 0 {
		port = 5432
	}
	sslMode := o.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		o.Host, port, o.User, o.Password, o.Database, sslMode,
	)
	for k, v := range o.Extra {
		dsn += fmt.Sprintf(" %s=%s", k, v)
	}
	return dsn, nil
}

// MySQLDriver is the go-sql-driver/mysql adapter. This is the store the blog
// schema was originally written for.
type MySQLDriver struct{}

func (MySQLDriver) Name() string { return "mysql" }

func (MySQLDriver) DSN(o DriverOptions) (string, error) {
	if o.Host == "" || o.Database == "" {
		return "", fmt.Errorf("mysql driver: Host and Database are required")
	}
	port := o.Port
	if port == 0 {
		port = 3306
	}
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true",
		o.User, o.Password, o.Host, port, o.Database)
	for k, v := range o.Extra {
		dsn += fmt.Sprintf("&%s=%s", k, v)
	}
	return dsn, nil
}

func (MySQLDriver) ErrorMapper() ErrorMapper { return DefaultErrorMapper() }

// SQLiteDriver is the mattn/go-sqlite3 adapter. The driver package itself is
// cgo, so binaries and tests must blank-import it; this package only builds
// the DSN. Foreign key enforcement is opt-in per connection in SQLite, so
// the adapter always switches it on.
type SQLiteDriver struct{}

func (SQLiteDriver) Name() string { return "sqlite3" }

func (SQLiteDriver) DSN(o DriverOptions) (string, error) {
	if o.Database == "" {
		return "", fmt.Errorf("sqlite3 driver: Database (file path) is required")
	}
	dsn := "file:" + o.Database + "?_fk=1"
	for k, v := range o.Extra {
		dsn += "&" + k + "=" + v
	}
	return dsn, nil
}

func (SQLiteDriver) ErrorMapper() ErrorMapper { return DefaultErrorMapper() }

func init() {
	RegisterDriver(PgxDriver{})
	RegisterDriver(PostgresDriver{})
	RegisterDriver(MySQLDriver{})
	RegisterDriver(SQLiteDriver{})
}

// ─────────────────────────────────────────────────────────────────────────────
// DSNFromEnv
// ─────────────────────────────────────────────────────────────────────────────

// DSNFromEnv returns the DATABASE_URL environment variable (standard for
// Heroku / Render / Railway / Fly.io). Callers set cfg.DSN = dsn before Open.
func DSNFromEnv() (string, error) {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		return "", fmt.Errorf("blogstore/db: DATABASE_URL environment variable not set")
	}
	return dsn, nil
}
