// Package migrations holds the goose SQL migrations of the accounts schema.
// The statements are portable between PostgreSQL and SQLite.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
