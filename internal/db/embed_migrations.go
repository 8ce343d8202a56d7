package db

import "embed"

// MigrationFS содержит SQL миграции из internal/db/migrations.
// Их применяет migrate.Run: при старте приложения и из cmd/migrate.
//
//go:embed migrations/*.sql
var MigrationFS embed.FS
