package config

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"go.uber.org/zap"
)

// NewMigrate opens the migrations in migrationDir against the postgres url.
func NewMigrate(pgURL string, migrationDir string) (*migrate.Migrate, error) {
	absPath, err := filepath.Abs(migrationDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve migration path: %w", err)
	}

	m, err := migrate.New("file://"+absPath, pgURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create migrate instance: %w", err)
	}

	return m, nil
}

func RunMigrationUp(pgURL string, migrationDir string, log *zap.Logger) error {
	m, err := NewMigrate(pgURL, migrationDir)
	if err != nil {
		return err
	}
	defer m.Close()

	err = m.Up()
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	version, dirty, _ := m.Version()
	log.Info("database migrated", zap.Uint("version", version), zap.Bool("dirty", dirty))

	return nil
}

func RunMigrationDown(pgURL string, migrationDir string, log *zap.Logger) error {
	m, err := NewMigrate(pgURL, migrationDir)
	if err != nil {
		return err
	}
	defer m.Close()

	err = m.Down()
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to roll back migrations: %w", err)
	}

	log.Info("database rolled back")

	return nil
}
