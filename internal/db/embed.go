package db

import "embed"

// migrationsFS holds the goose migration files applied at startup.
//
//go:embed migrations/*.sql
var migrationsFS embed.FS
