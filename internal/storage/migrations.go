package storage

import "embed"

// MigrationsFS embeds the checkpoint store's schema migrations, mirroring
// internal/db's schema.sql embedding: the migration files ship inside the
// binary rather than as external state the host must deploy alongside it.
//
//go:embed migrations/*.sql
var MigrationsFS embed.FS
