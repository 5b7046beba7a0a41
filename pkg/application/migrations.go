package application

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"

	"github.com/pressly/goose/v3"
	"github.com/pressly/goose/v3/database"
)

// MigrationManager collects per-module schema filesystems and applies them
// with goose. Each module gets its own version table so schemas evolve
// independently.
type MigrationManager interface {
	RegisterSchema(module string, fsys fs.FS, dir string)
	Apply(ctx context.Context, db *sql.DB) error
}

type schemaSource struct {
	module string
	fsys   fs.FS
	dir    string
}

type migrationManager struct {
	sources []schemaSource
}

func NewMigrationManager() MigrationManager {
	return &migrationManager{}
}

func (m *migrationManager) RegisterSchema(module string, fsys fs.FS, dir string) {
	m.sources = append(m.sources, schemaSource{module: module, fsys: fsys, dir: dir})
}

func (m *migrationManager) Apply(ctx context.Context, db *sql.DB) error {
	for _, source := range m.sources {
		sub, err := fs.Sub(source.fsys, source.dir)
		if err != nil {
			return fmt.Errorf("migrations for %s: %w", source.module, err)
		}
		store, err := database.NewStore(database.DialectPostgres, "goose_"+source.module+"_version")
		if err != nil {
			return fmt.Errorf("migrations for %s: %w", source.module, err)
		}
		provider, err := goose.NewProvider("", db, sub, goose.WithStore(store))
		if err != nil {
			return fmt.Errorf("migrations for %s: %w", source.module, err)
		}
		if _, err := provider.Up(ctx); err != nil {
			return fmt.Errorf("migrations for %s: %w", source.module, err)
		}
	}
	return nil
}
