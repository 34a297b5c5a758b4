// Package migrator applies embedded goose migrations.
package migrator

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// Options selects the migration set.
type Options struct {
	// Table overrides goose's version table so each bounded context keeps
	// its own history. Empty keeps goose's default.
	Table string
	// Dir is the directory inside the FS holding the .sql files.
	Dir string
}

// RunMigrations applies all pending migrations from files against dbURL.
func RunMigrations(ctx context.Context, dbURL string, files fs.FS, opts Options) error {
	db, err := sql.Open("pgx", dbURL)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close() //nolint:errcheck

	goose.SetBaseFS(files)
	defer goose.SetBaseFS(nil)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}
	if opts.Table != "" {
		goose.SetTableName(opts.Table)
	}

	dir := opts.Dir
	if dir == "" {
		dir = "."
	}
	if err := goose.UpContext(ctx, db, dir); err != nil {
		return fmt.Errorf("failed to up migrations: %w", err)
	}
	return nil
}
