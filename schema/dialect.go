package schema

import (
	"fmt"
	"strconv"
)

// ─────────────────────────────────────────────────────────────────────────────
// Dialect
// ─────────────────────────────────────────────────────────────────────────────

// Dialect selects the flavour of SQL the statement builders emit.
type Dialect int

const (
	SQLite Dialect = iota
	MySQL
	Postgres
)

func (d Dialect) String() string {
	switch d {
	case SQLite:
		return "sqlite"
	case MySQL:
		return "mysql"
	case Postgres:
		return "postgres"
	}
	return "unknown"
}

// DialectFor maps a database/sql driver name to its dialect.
func DialectFor(driverName string) (Dialect, error) {
	switch driverName {
	case "sqlite3":
		return SQLite, nil
	case "mysql":
		return MySQL, nil
	case "postgres", "pgx":
		return Postgres, nil
	}
	return 0, fmt.Errorf("blogstore/schema: no dialect for driver %q", driverName)
}

// Placeholder returns the bind-parameter marker for the i-th argument
// (1-based). MySQL and SQLite use positional "?", Postgres uses "$n".
func (d Dialect) Placeholder(i int) string {
	if d == Postgres {
		return "$" + strconv.Itoa(i)
	}
	return "?"
}

// AutoIncrementKey returns the column definition for an auto-incrementing
// integer primary key.
func (d Dialect) AutoIncrementKey() string {
	switch d {
	case MySQL:
		return "INT NOT NULL AUTO_INCREMENT PRIMARY KEY"
	case Postgres:
		return "SERIAL PRIMARY KEY"
	default:
		return "INTEGER PRIMARY KEY AUTOINCREMENT"
	}
}

// ColumnType renders a non-key column's storage type.
func (d Dialect) ColumnType(c Column) string {
	switch c.Type {
	case Integer:
		if d == MySQL {
			return "INT"
		}
		return "INTEGER"
	case Varchar:
		return "VARCHAR(" + strconv.Itoa(c.Length) + ")"
	case Text:
		return "TEXT"
	case Bool:
		return "BOOLEAN"
	}
	return ""
}
