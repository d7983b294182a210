package bootcheck

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"path"

	"github.com/pressly/goose/v3"
)

// GooseMigrator implements Migrator on top of the goose provider API and an
// embedded migrations filesystem.
type GooseMigrator struct {
	provider *goose.Provider
}

// NewGooseMigrator builds a Migrator for the given database handle and
// migrations filesystem. dir is the subdirectory of fsys holding the SQL
// files (e.g. "migrations").
func NewGooseMigrator(db *sql.DB, fsys fs.FS, dir string) (*GooseMigrator, error) {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("could not open migrations dir %q: %w", dir, err)
	}

	provider, err := goose.NewProvider(goose.DialectPostgres, db, sub)
	if err != nil {
		return nil, fmt.Errorf("could not create goose provider: %w", err)
	}

	return &GooseMigrator{provider: provider}, nil
}

// Status returns the file names of applied and pending migrations.
func (m *GooseMigrator) Status(ctx context.Context) ([]string, []string, error) {
	statuses, err := m.provider.Status(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("could not read migration status: %w", err)
	}

	var applied, pending []string
	for _, s := range statuses {
		name := path.Base(s.Source.Path)
		if s.State == goose.StateApplied {
			applied = append(applied, name)
		} else {
			pending = append(pending, name)
		}
	}

	return applied, pending, nil
}

// Apply runs all pending migrations up to the latest version.
func (m *GooseMigrator) Apply(ctx context.Context) error {
	if _, err := m.provider.Up(ctx); err != nil {
		return fmt.Errorf("could not apply migrations: %w", err)
	}

	return nil
}
