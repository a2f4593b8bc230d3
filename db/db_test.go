// Uses an in-memory SQLite database; no external services required.
//
// Run:  go test ./db/... -v -race
package db_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/skarle/blogstore/db"
	"github.com/skarle/blogstore/schema"
	_ "github.com/mattn/go-sqlite3"
)

// ─────────────────────────────────────────────────────────────────────────────
// Test helpers
// ─────────────────────────────────────────────────────────────────────────────

func newTestDB(t *testing.T, hooks ...db.Hook) *db.DB {
	t.Helper()
	d, err := db.Open(db.Config{
		DSN:          "file::memory:?_fk=1",
		DriverName:   "sqlite3",
		MaxOpenConns: 1,
		Hooks:        hooks,
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { _ = d.Close() })

	ctx := context.Background()
	for _, tbl := range schema.Tables() {
		if _, err := d.Exec(ctx, tbl.CreateSQL(schema.SQLite)); err != nil {
			t.Fatalf("create %s: %v", tbl.Name, err)
		}
	}
	return d
}

const insertUser = `INSERT INTO users (name, email, password_hash) VALUES (?, ?, ?)`

// ─────────────────────────────────────────────────────────────────────────────
// Open / Ping
// ─────────────────────────────────────────────────────────────────────────────

func TestOpen(t *testing.T) {
	d := newTestDB(t)
	if err := d.Ping(context.Background()); err != nil {
		t.Fatalf("ping failed: %v", err)
	}
	if d.DriverName() != "sqlite3" {
		t.Fatalf("unexpected driver name %q", d.DriverName())
	}
}

func TestOpen_InvalidConfig(t *testing.T) {
	if _, err := db.Open(db.Config{DSN: "", DriverName: "sqlite3"}); err == nil {
		t.Fatal("expected error for empty DSN")
	}
	if _, err := db.Open(db.Config{DSN: ":memory:"}); err == nil {
		t.Fatal("expected error for empty driver name")
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Exec / QueryRow / Query
// ─────────────────────────────────────────────────────────────────────────────

func TestExec_Insert(t *testing.T) {
	d := newTestDB(t)

	res, err := d.Exec(context.Background(), insertUser, "alice", "alice@test.com", "h1")
	if err != nil {
		t.Fatalf("exec: %v", err)
	}
	if n, _ := res.RowsAffected(); n != 1 {
		t.Fatalf("expected 1 row affected, got %d", n)
	}
	if id, err := res.LastInsertId(); err != nil || id != 1 {
		t.Fatalf("expected generated id 1, got %d (%v)", id, err)
	}
}

func TestQueryRow_Scan(t *testing.T) {
	d := newTestDB(t)
	ctx := context.Background()

	if _, err := d.Exec(ctx, insertUser, "bob", "bob@test.com", "h2"); err != nil {
		t.Fatalf("insert: %v", err)
	}

	var name, email string
	err := d.QueryRow(ctx, `SELECT name, email FROM users WHERE email = ?`, "bob@test.com").
		Scan(&name, &email)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if name != "bob" || email != "bob@test.com" {
		t.Fatalf("unexpected values: name=%q email=%q", name, email)
	}
}

func TestQueryRow_NotFound(t *testing.T) {
	d := newTestDB(t)

	var name string
	err := d.QueryRow(context.Background(), `SELECT name FROM users WHERE user_id = ?`, 99999).Scan(&name)
	if !db.IsNotFound(err) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestQuery_MultipleRows(t *testing.T) {
	d := newTestDB(t)
	ctx := context.Background()

	for _, name := range []string{"alice", "bob", "carol"} {
		if _, err := d.Exec(ctx, insertUser, name, name+"@q.com", "h"); err != nil {
			t.Fatalf("insert %s: %v", name, err)
		}
	}

	rows, err := d.Query(ctx, `SELECT name FROM users ORDER BY name`)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			t.Fatalf("scan: %v", err)
		}
		names = append(names, n)
	}
	if err := rows.Err(); err != nil {
		t.Fatalf("rows.Err: %v", err)
	}
	if len(names) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(names))
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// ExecTx
// ─────────────────────────────────────────────────────────────────────────────

func TestExecTx_Commit(t *testing.T) {
	d := newTestDB(t)
	ctx := context.Background()

	err := d.ExecTx(ctx, func(tx *db.Tx) error {
		if tx.DriverName() != "sqlite3" {
			t.Errorf("tx driver name %q", tx.DriverName())
		}
		_, err := tx.Exec(ctx, insertUser, "dave", "dave@tx.com", "h")
		return err
	})
	if err != nil {
		t.Fatalf("tx commit: %v", err)
	}

	var n int
	_ = d.QueryRow(ctx, `SELECT COUNT(*) FROM users WHERE email = ?`, "dave@tx.com").Scan(&n)
	if n != 1 {
		t.Fatalf("expected 1 committed row, got %d", n)
	}
}

func TestExecTx_RollbackOnError(t *testing.T) {
	d := newTestDB(t)
	ctx := context.Background()

	sentinelErr := errors.New("intentional failure")

	err := d.ExecTx(ctx, func(tx *db.Tx) error {
		if _, err := tx.Exec(ctx, insertUser, "eve", "eve@rollback.com", "h"); err != nil {
			return err
		}
		return sentinelErr // force rollback
	})
	if !errors.Is(err, sentinelErr) {
		t.Fatalf("expected sentinelErr, got %v", err)
	}

	var n int
	_ = d.QueryRow(ctx, `SELECT COUNT(*) FROM users WHERE email = ?`, "eve@rollback.com").Scan(&n)
	if n != 0 {
		t.Fatalf("expected 0 rows after rollback, got %d", n)
	}
}

func TestExecTx_RollbackOnPanic(t *testing.T) {
	d := newTestDB(t)

	defer func() {
		if r := recover(); r == nil {
			t.Fatal("expected panic to propagate")
		}
	}()

	_ = d.ExecTx(context.Background(), func(tx *db.Tx) error {
		panic("test panic")
	})
}

// ─────────────────────────────────────────────────────────────────────────────
// Prepared statements
// ─────────────────────────────────────────────────────────────────────────────

func TestPrepare(t *testing.T) {
	d := newTestDB(t)
	ctx := context.Background()

	stmt, err := d.Prepare(ctx, insertUser)
	if err != nil {
		t.Fatalf("prepare: %v", err)
	}
	defer stmt.Close()

	for _, email := range []string{"p1@test.com", "p2@test.com", "p3@test.com"} {
		if _, err := stmt.Exec(ctx, "prep", email, "h"); err != nil {
			t.Fatalf("exec prepared: %v", err)
		}
	}

	var n int
	_ = d.QueryRow(ctx, `SELECT COUNT(*) FROM users WHERE name = ?`, "prep").Scan(&n)
	if n != 3 {
		t.Fatalf("expected 3 rows, got %d", n)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Error mapping
// ─────────────────────────────────────────────────────────────────────────────

func TestErrorMapper_DuplicateKey(t *testing.T) {
	d := newTestDB(t)
	ctx := context.Background()

	// The blog tables carry no unique columns, so use a scratch table.
	if _, err := d.Exec(ctx, `CREATE TABLE scratch (email TEXT NOT NULL UNIQUE)`); err != nil {
		t.Fatalf("schema: %v", err)
	}

	insert := func() error {
		_, err := d.Exec(ctx, `INSERT INTO scratch (email) VALUES (?)`, "dup@test.com")
		return err
	}

	if err := insert(); err != nil {
		t.Fatalf("first insert: %v", err)
	}
	err := insert()
	if !db.IsDuplicateKey(err) {
		t.Fatalf("expected ErrDuplicateKey, got %v", err)
	}

	var dbErr *db.DBError
	if !errors.As(err, &dbErr) || dbErr.Cause == nil {
		t.Fatalf("expected DBError with preserved cause, got %v", err)
	}
}

func TestErrorMapper_ForeignKeyViolation(t *testing.T) {
	d := newTestDB(t)

	_, err := d.Exec(context.Background(),
		`INSERT INTO posts (title, post_body, published, user_id) VALUES (?, ?, ?, ?)`,
		"orphan", "body", false, 12345)
	if !db.IsForeignKeyViolation(err) {
		t.Fatalf("expected ErrForeignKeyViolation, got %v", err)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Hooks
// ─────────────────────────────────────────────────────────────────────────────

type countingHook struct {
	before int
	after  int
}

func (h *countingHook) BeforeQuery(_ context.Context, _ string, _ []any) { h.before++ }
func (h *countingHook) AfterQuery(_ context.Context, _ string, _ []any, _ time.Duration, _ error) {
	h.after++
}

func TestHooks_CalledOnExec(t *testing.T) {
	hook := &countingHook{}
	d, err := db.Open(db.Config{
		DSN:        ":memory:",
		DriverName: "sqlite3",
		Hooks:      []db.Hook{hook},
	})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer d.Close()

	_, _ = d.Exec(context.Background(), `SELECT 1`)

	if hook.before != 1 || hook.after != 1 {
		t.Fatalf("hook not called: before=%d after=%d", hook.before, hook.after)
	}
}

type panickyHook struct{}

func (panickyHook) BeforeQuery(_ context.Context, _ string, _ []any) { panic("before") }
func (panickyHook) AfterQuery(_ context.Context, _ string, _ []any, _ time.Duration, _ error) {
	panic("after")
}

func TestHooks_PanicIsContained(t *testing.T) {
	d, err := db.Open(db.Config{
		DSN:        ":memory:",
		DriverName: "sqlite3",
		Hooks:      []db.Hook{panickyHook{}},
	})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer d.Close()

	if _, err := d.Exec(context.Background(), `SELECT 1`); err != nil {
		t.Fatalf("statement should survive hook panics: %v", err)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Driver registry
// ─────────────────────────────────────────────────────────────────────────────

func TestLookupDriver_Builtins(t *testing.T) {
	for _, name := range []string{"pgx", "postgres", "mysql", "sqlite3"} {
		if _, err := db.LookupDriver(name); err != nil {
			t.Fatalf("driver %q not registered: %v", name, err)
		}
	}
	if _, err := db.LookupDriver("oracle"); err == nil {
		t.Fatal("expected error for unknown driver")
	}
}

func TestDriverDSN(t *testing.T) {
	tests := []struct {
		driver string
		opts   db.DriverOptions
		want   string
	}{
		{
			driver: "mysql",
			opts:   db.DriverOptions{Host: "dbhost", User: "app", Password: "pw", Database: "blog"},
			want:   "app:pw@tcp(dbhost:3306)/blog?parseTime=true",
		},
		{
			driver: "pgx",
			opts:   db.DriverOptions{Host: "dbhost", User: "app", Password: "pw", Database: "blog"},
			want:   "host=dbhost port=5432 user=app password=pw dbname=blog sslmode=disable",
		},
		{
			driver: "sqlite3",
			opts:   db.DriverOptions{Database: "blog.db"},
			want:   "file:blog.db?_fk=1",
		},
	}
	for _, tc := range tests {
		drv, err := db.LookupDriver(tc.driver)
		if err != nil {
			t.Fatalf("lookup %s: %v", tc.driver, err)
		}
		dsn, err := drv.DSN(tc.opts)
		if err != nil {
			t.Fatalf("%s DSN: %v", tc.driver, err)
		}
		if dsn != tc.want {
			t.Fatalf("%s DSN = %q, want %q", tc.driver, dsn, tc.want)
		}
	}
}

func TestDriverDSN_MissingDatabase(t *testing.T) {
	drv, _ := db.LookupDriver("mysql")
	if _, err := drv.DSN(db.DriverOptions{Host: "h"}); err == nil {
		t.Fatal("expected error for missing database")
	}
}

func TestOpenWithDriver_SQLite(t *testing.T) {
	dir := t.TempDir()
	d, err := db.OpenWithDriver("sqlite3", db.DriverOptions{Database: dir + "/t.db"}, db.Config{})
	if err != nil {
		t.Fatalf("open with driver: %v", err)
	}
	defer d.Close()

	if err := d.Ping(context.Background()); err != nil {
		t.Fatalf("ping: %v", err)
	}
}
