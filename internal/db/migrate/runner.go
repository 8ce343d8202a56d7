// Package migrate применяет встроенные SQL миграции через golang-migrate.
package migrate

import (
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"github.com/aidar/project-hub/internal/db"
)

// ErrNoChange означает, что схема уже в нужной версии
var ErrNoChange = migrate.ErrNoChange

// Direction направление миграции
type Direction string

const (
	Up   Direction = "up"
	Down Direction = "down"
)

// Run применяет миграции в заданном направлении.
// Отсутствие изменений не считается ошибкой.
func Run(dsn string, direction Direction) error {
	if dsn == "" {
		return errors.New("database DSN is empty")
	}
	if direction != Up && direction != Down {
		return fmt.Errorf("direction must be up or down, got %q", direction)
	}

	sourceDriver, err := iofs.New(db.MigrationFS, "migrations")
	if err != nil {
		return fmt.Errorf("migrate source: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", sourceDriver, dsn)
	if err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	defer func() { _, _ = m.Close() }()

	switch direction {
	case Up:
		err = m.Up()
	case Down:
		err = m.Down()
	}
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate %s: %w", direction, err)
	}
	return nil
}
