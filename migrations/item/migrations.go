// Package item holds the schema of the item bounded context.
package item

import (
	"context"
	"embed"

	"github.com/ghuser/stowage/pkg/migrator"
)

//go:embed *.sql
var MigrationsFS embed.FS

// VersionTable tracks applied item migrations separately from other contexts.
const VersionTable = "item_goose_db_version"

// Migrate applies pending item migrations to the database at dbURL.
func Migrate(ctx context.Context, dbURL string) error {
	return migrator.RunMigrations(ctx, dbURL, MigrationsFS, migrator.Options{Table: VersionTable})
}
