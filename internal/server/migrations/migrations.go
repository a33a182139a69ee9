// Package migrations embeds the goose schema migrations for every SQL
// backend. Each dialect lives in its own directory.
package migrations

import "embed"

//go:embed postgres/*.sql sqlite/*.sql
var Migrations embed.FS

const (
	PostgresDir = "postgres"
	SQLiteDir   = "sqlite"
)
