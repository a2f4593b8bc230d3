// Package blog implements the data-access operations for the blog domain:
// create and delete for users, posts, and comments. Every operation runs one
// or two synchronous statements over the caller-supplied Querier and returns
// before the caller proceeds. There are no update operations; rows are
// immutable after creation except through deletion.
//
// Operations accept db.Querier, so they run unchanged against a *db.DB or
// inside a transaction via (*db.DB).ExecTx.
package blog

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/skarle/blogstore/db"
	"github.com/skarle/blogstore/schema"
)

// dialectOf resolves the SQL dialect for the connection an operation was
// handed.
func dialectOf(q db.Querier) (schema.Dialect, error) {
	return schema.DialectFor(q.DriverName())
}

// createdRow fetches the row produced by an insert. When the driver reports
// the generated key (MySQL, SQLite), the fetch is by primary key. Drivers
// that do not support LastInsertId (both Postgres drivers) fall back to the
// row with the largest key, which can observe a concurrent writer's row
// instead of our own.
func createdRow(ctx context.Context, q db.Querier, t schema.Table, d schema.Dialect, res sql.Result) *db.Row {
	if id, err := res.LastInsertId(); err == nil && id > 0 {
		return q.QueryRow(ctx, t.SelectByKeySQL(d), id)
	}
	return q.QueryRow(ctx, t.SelectLatestSQL(d))
}

// deleteByKey removes the row matching id and returns the affected row
// count. A zero count is not an error: it is logged as a diagnostic and
// reported to the caller as success.
func deleteByKey(ctx context.Context, q db.Querier, t schema.Table, id int64) (int64, error) {
	d, err := dialectOf(q)
	if err != nil {
		return 0, err
	}
	res, err := q.Exec(ctx, t.DeleteSQL(d), id)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	if n == 0 {
		slog.Warn("blogstore/blog: delete matched no row", "table", t.Name, "id", id)
	}
	return n, nil
}
