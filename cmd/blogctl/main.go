// blogctl prints or applies the blog schema DDL.
//
// The schema is owned by the database; this tool only emits the statements
// the library's table registry describes, so a fresh store matches what the
// operations expect. There is no migration state tracking.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/skarle/blogstore/db"
	"github.com/skarle/blogstore/schema"

	_ "github.com/mattn/go-sqlite3"
)

func main() {
	driver := flag.String("driver", "sqlite3", "database driver: sqlite3, mysql, postgres, or pgx")
	flag.Parse()

	dialect, err := schema.DialectFor(*driver)
	if err != nil {
		fatalf("%v", err)
	}

	switch flag.Arg(0) {
	case "print":
		for _, t := range schema.Tables() {
			fmt.Println(t.CreateSQL(dialect) + ";")
		}

	case "apply":
		dsn, err := db.DSNFromEnv()
		if err != nil {
			fatalf("%v", err)
		}
		database := db.MustOpen(db.Config{DSN: dsn, DriverName: *driver})
		defer database.Close()

		ctx := context.Background()
		for _, t := range schema.Tables() {
			if _, err := database.Exec(ctx, t.CreateSQL(dialect)); err != nil {
				fatalf("create %s: %v", t.Name, err)
			}
			slog.Info("blogctl: table ready", "table", t.Name)
		}

	default:
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `Usage: blogctl [-driver NAME] <command>

Commands:
  print        Print the CREATE TABLE statements for the chosen driver
  apply        Execute them against DATABASE_URL

Environment:
  DATABASE_URL   Required for apply. Full database DSN.`)
}

func fatalf(format string, args ...any) {
	slog.Error(fmt.Sprintf(format, args...))
	os.Exit(1)
}
