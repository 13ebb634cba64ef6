// Package db carries the SQL schema and the golang-migrate wiring that
// applies it.
package db

import (
	"embed"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/*.sql
var Migrations embed.FS

const migrationsPath = "migrations"

// NewMigrator reads migrations from dir when it is set and from the
// embedded copy otherwise.
func NewMigrator(databaseURL, dir string) (*migrate.Migrate, string, error) {
	databaseURL = strings.TrimSpace(databaseURL)
	if databaseURL == "" {
		return nil, "", fmt.Errorf("database url is required")
	}

	if dir = strings.TrimSpace(dir); dir != "" {
		sourceURL := "file://" + filepath.ToSlash(dir)
		m, err := migrate.New(sourceURL, databaseURL)
		if err != nil {
			return nil, "", fmt.Errorf("create migrator from %s: %w", sourceURL, err)
		}
		return m, sourceURL, nil
	}

	source, err := iofs.New(Migrations, migrationsPath)
	if err != nil {
		return nil, "", fmt.Errorf("open embedded migrations: %w", err)
	}
	m, err := migrate.NewWithSourceInstance("iofs", source, databaseURL)
	if err != nil {
		return nil, "", fmt.Errorf("create migrator from embedded source: %w", err)
	}
	return m, "embedded", nil
}

// Up applies every pending migration. No pending change is not an error.
func Up(databaseURL string) error {
	m, _, err := NewMigrator(databaseURL, "")
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}
