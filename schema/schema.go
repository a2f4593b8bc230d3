// Package schema declares the blog tables as a static registry and turns
// them into SQL statements. Column names, ordering, and types are fixed by
// the existing store layout. Changing anything here breaks compatibility
// with databases created from it.
package schema

import "strings"

// ─────────────────────────────────────────────────────────────────────────────
// Column types
// ─────────────────────────────────────────────────────────────────────────────

// Type enumerates the storage types used by the blog tables.
type Type int

const (
	Integer Type = iota
	Varchar      // bounded string, Length holds the bound
	Text         // unbounded string
	Bool
)

// Column describes a single table column. RefTable/RefColumn are set when
// the column is a foreign key.
type Column struct {
	Name      string
	Type      Type
	Length    int
	RefTable  string
	RefColumn string
}

// Table is an ordered column list with a single auto-incrementing integer
// primary key. The key column is always Columns[0].
type Table struct {
	Name    string
	Key     string
	Columns []Column
}

// ─────────────────────────────────────────────────────────────────────────────
// Registry
// ─────────────────────────────────────────────────────────────────────────────

// Users holds account rows: name, email, and password hash, each bounded to
// 255 characters.
var Users = Table{
	Name: "users",
	Key:  "user_id",
	Columns: []Column{
		{Name: "user_id", Type: Integer},
		{Name: "name", Type: Varchar, Length: 255},
		{Name: "email", Type: Varchar, Length: 255},
		{Name: "password_hash", Type: Varchar, Length: 255},
	},
}

// Posts holds entries authored by a user.
var Posts = Table{
	Name: "posts",
	Key:  "post_id",
	Columns: []Column{
		{Name: "post_id", Type: Integer},
		{Name: "title", Type: Varchar, Length: 255},
		{Name: "post_body", Type: Text},
		{Name: "published", Type: Bool},
		{Name: "user_id", Type: Integer, RefTable: "users", RefColumn: "user_id"},
	},
}

// Comments holds replies tied to both a post and a user.
var Comments = Table{
	Name: "comments",
	Key:  "comment_id",
	Columns: []Column{
		{Name: "comment_id", Type: Integer},
		{Name: "post_id", Type: Integer, RefTable: "posts", RefColumn: "post_id"},
		{Name: "user_id", Type: Integer, RefTable: "users", RefColumn: "user_id"},
		{Name: "comment_body", Type: Text},
	},
}

// Tables returns the registry in dependency order: referenced tables first,
// so the result can be fed to CREATE TABLE (or reversed for DROP).
func Tables() []Table {
	return []Table{Users, Posts, Comments}
}

// ─────────────────────────────────────────────────────────────────────────────
// Statement builders
// ─────────────────────────────────────────────────────────────────────────────

// columnNames returns all column names, key included.
func (t Table) columnNames() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}

// insertColumns returns the caller-supplied columns, i.e. everything except
// the database-assigned key.
func (t Table) insertColumns() []string {
	names := make([]string, 0, len(t.Columns)-1)
	for _, c := range t.Columns {
		if c.Name == t.Key {
			continue
		}
		names = append(names, c.Name)
	}
	return names
}

// InsertSQL builds a single-row insert covering every column except the key.
func (t Table) InsertSQL(d Dialect) string {
	cols := t.insertColumns()
	ph := make([]string, len(cols))
	for i := range cols {
		ph[i] = d.Placeholder(i + 1)
	}
	return "INSERT INTO " + t.Name +
		" (" + strings.Join(cols, ", ") + ")" +
		" VALUES (" + strings.Join(ph, ", ") + ")"
}

// DeleteSQL builds a delete-by-primary-key statement.
func (t Table) DeleteSQL(d Dialect) string {
	return "DELETE FROM " + t.Name + " WHERE " + t.Key + " = " + d.Placeholder(1)
}

// SelectByKeySQL builds a full-row fetch by primary key.
func (t Table) SelectByKeySQL(d Dialect) string {
	return "SELECT " + strings.Join(t.columnNames(), ", ") +
		" FROM " + t.Name +
		" WHERE " + t.Key + " = " + d.Placeholder(1) +
		" LIMIT 1"
}

// SelectLatestSQL builds a fetch of the row with the numerically largest key.
// Only used as a fallback when the driver cannot report the generated key of
// an insert; under concurrent writers it may return somebody else's row.
func (t Table) SelectLatestSQL(d Dialect) string {
	return "SELECT " + strings.Join(t.columnNames(), ", ") +
		" FROM " + t.Name +
		" ORDER BY " + t.Key + " DESC LIMIT 1"
}

// CreateSQL builds the CREATE TABLE statement for the given dialect.
// Foreign keys are emitted as table-level constraints so that all three
// supported stores enforce them.
func (t Table) CreateSQL(d Dialect) string {
	var b strings.Builder
	b.WriteString("CREATE TABLE IF NOT EXISTS ")
	b.WriteString(t.Name)
	b.WriteString(" (\n")

	for i, c := range t.Columns {
		if i > 0 {
			b.WriteString(",\n")
		}
		b.WriteString("\t")
		b.WriteString(c.Name)
		b.WriteString(" ")
		if c.Name == t.Key {
			b.WriteString(d.AutoIncrementKey())
		} else {
			b.WriteString(d.ColumnType(c))
		}
	}

	for _, c := range t.Columns {
		if c.RefTable == "" {
			continue
		}
		b.WriteString(",\n\tFOREIGN KEY (")
		b.WriteString(c.Name)
		b.WriteString(") REFERENCES ")
		b.WriteString(c.RefTable)
		b.WriteString(" (")
		b.WriteString(c.RefColumn)
		b.WriteString(")")
	}

	b.WriteString("\n)")
	return b.String()
}
