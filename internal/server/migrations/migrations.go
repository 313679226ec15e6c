// Package migrations embeds the goose SQL migrations, one directory per
// dialect.
package migrations

import "embed"

// Dialect directories inside Migrations.
const (
	PostgresDir = "postgres"
	SQLiteDir   = "sqlite"
)

//go:embed postgres/*.sql sqlite/*.sql
var Migrations embed.FS
