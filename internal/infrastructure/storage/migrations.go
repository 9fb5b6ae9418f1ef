package storage

import (
	"fmt"
	"sync"

	"github.com/pressly/goose/v3"

	"github.com/robpaolella/personal-finance-sub000/internal/infrastructure/storage/migrations"
)

// goose keeps its base FS and dialect in package globals
var gooseMu sync.Mutex

// runMigrations applies all pending goose migrations
func (s *Storage) runMigrations() error {
	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(migrations.FS)
	defer goose.SetBaseFS(nil)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set migration dialect: %w", err)
	}

	if err := goose.Up(s.db, "."); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

// schemaVersion returns the current goose schema version
func (s *Storage) schemaVersion() (int64, error) {
	gooseMu.Lock()
	defer gooseMu.Unlock()

	if err := goose.SetDialect("sqlite3"); err != nil {
		return 0, err
	}
	return goose.GetDBVersion(s.db)
}
