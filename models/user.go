// Package models holds the blog row types. Each entity comes in two shapes:
// a read model populated by scanning a fetched row, exposing fields through
// accessor methods only, and an insert model carrying just the
// caller-supplied fields. The primary key is always assigned by the
// database, never by the caller, and rows are never mutated after
// construction.
package models

// RowScanner is the subset of database row types the Scan constructors
// accept. Both *sql.Row and the db package's Row wrapper satisfy it.
type RowScanner interface {
	Scan(dest ...any) error
}

// User represents a row in the "users" table.
type User struct {
	id           int64
	name         string
	email        string
	passwordHash string
}

// ScanUser constructs a User from a fetched row. Column order must match the
// users table registry: user_id, name, email, password_hash.
func ScanUser(row RowScanner) (*User, error) {
	var u User
	if err := row.Scan(&u.id, &u.name, &u.email, &u.passwordHash); err != nil {
		return nil, err
	}
	return &u, nil
}

func (u *User) ID() int64            { return u.id }
func (u *User) Name() string         { return u.name }
func (u *User) Email() string        { return u.email }
func (u *User) PasswordHash() string { return u.passwordHash }

// NewUser carries the caller-supplied fields for a user insert.
type NewUser struct {
	Name         string
	Email        string
	PasswordHash string
}
