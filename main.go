// main.go — runnable walkthrough of the blog store:
//
//  1. DB initialisation with hooks
//  2. Schema creation (sqlite fallback when DATABASE_URL is unset)
//  3. CreateUser / CreatePost / CreateComment
//  4. Foreign key rejection of a dangling reference
//  5. DeleteComment / DeletePost / DeleteUser, including the zero-count case
//  6. Transactional create via ExecTx
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/skarle/blogstore/blog"
	"github.com/skarle/blogstore/db"
	"github.com/skarle/blogstore/schema"

	"github.com/joho/godotenv"
	_ "github.com/mattn/go-sqlite3"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	// .env is optional; real deployments set DATABASE_URL directly.
	_ = godotenv.Load()

	database := openDatabase(logger)
	defer database.Close()

	ctx := context.Background()

	dialect, err := schema.DialectFor(database.DriverName())
	if err != nil {
		fatalf("%v", err)
	}
	for _, t := range schema.Tables() {
		if _, err := database.Exec(ctx, t.CreateSQL(dialect)); err != nil {
			fatalf("create %s: %v", t.Name, err)
		}
	}

	// ── Creates ──────────────────────────────────────────────────────────
	alice, err := blog.CreateUser(ctx, database, "alice", "alice@example.com", "hash-1")
	if err != nil {
		fatalf("create user: %v", err)
	}
	slog.Info("created user", "id", alice.ID(), "email", alice.Email())

	post, err := blog.CreatePost(ctx, database, "hello world", "first post body", true, alice.ID())
	if err != nil {
		fatalf("create post: %v", err)
	}
	slog.Info("created post", "id", post.ID(), "author", post.UserID())

	comment, err := blog.CreateComment(ctx, database, alice.ID(), post.ID(), "nice one")
	if err != nil {
		fatalf("create comment: %v", err)
	}
	slog.Info("created comment", "id", comment.ID())

	// ── Foreign key enforcement ──────────────────────────────────────────
	if _, err := blog.CreatePost(ctx, database, "orphan", "no author", false, 999_999); db.IsForeignKeyViolation(err) {
		slog.Info("dangling author correctly rejected")
	} else {
		slog.Warn("expected a foreign key violation", "err", err)
	}

	// ── Deletes ──────────────────────────────────────────────────────────
	for _, step := range []struct {
		name string
		fn   func() (int64, error)
	}{
		{"comment", func() (int64, error) { return blog.DeleteComment(ctx, database, comment.ID()) }},
		{"post", func() (int64, error) { return blog.DeletePost(ctx, database, post.ID()) }},
		{"user", func() (int64, error) { return blog.DeleteUser(ctx, database, alice.ID()) }},
	} {
		n, err := step.fn()
		if err != nil {
			fatalf("delete %s: %v", step.name, err)
		}
		slog.Info("deleted", "entity", step.name, "rows", n)
	}

	// Deleting again is success with zero rows, never an error.
	n, err := blog.DeleteUser(ctx, database, alice.ID())
	if err != nil {
		fatalf("repeat delete: %v", err)
	}
	slog.Info("repeat delete", "rows", n)

	// ── Transactional create ─────────────────────────────────────────────
	err = database.ExecTx(ctx, func(tx *db.Tx) error {
		bob, err := blog.CreateUser(ctx, tx, "bob", "bob@example.com", "hash-2")
		if err != nil {
			return err
		}
		_, err = blog.CreatePost(ctx, tx, "bob's post", "written in a tx", false, bob.ID())
		return err
	})
	if err != nil {
		fatalf("tx: %v", err)
	}
	slog.Info("transactional create committed")

	slog.Info("walkthrough complete", "stats", database.Stats())
}

// openDatabase connects to DATABASE_URL when present, otherwise to a local
// sqlite file so the walkthrough runs without any services.
func openDatabase(logger *slog.Logger) *db.DB {
	hooks := []db.Hook{
		db.NewLogHook(db.LogHookConfig{
			Logger:             logger,
			SlowQueryThreshold: 200 * time.Millisecond,
		}),
		db.NewMetricsHook(queryCounter{}),
	}

	if dsn, err := db.DSNFromEnv(); err == nil {
		driver := os.Getenv("DATABASE_DRIVER")
		if driver == "" {
			driver = "pgx"
		}
		return db.MustOpen(db.Config{
			DSN:            dsn,
			DriverName:     driver,
			MaxOpenConns:   10,
			DefaultTimeout: 10 * time.Second,
			Hooks:          hooks,
		})
	}

	database, err := db.OpenWithDriver("sqlite3", db.DriverOptions{Database: "blog.db"}, db.Config{
		DefaultTimeout: 10 * time.Second,
		Hooks:          hooks,
	})
	if err != nil {
		fatalf("open sqlite: %v", err)
	}
	return database
}

// queryCounter is a stand-in MetricsCollector; swap in a Prometheus or
// StatsD implementation in a real deployment.
type queryCounter struct{}

func (queryCounter) RecordQuery(_ string, d time.Duration, ok bool) {
	if !ok {
		slog.Debug("query failed", "duration", d)
	}
}

func fatalf(format string, args ...any) {
	slog.Error(fmt.Sprintf(format, args...))
	os.Exit(1)
}
