// Package repomanager opens the configured storage backend, applies schema
// migrations and vends the repositories built on top of it.
package repomanager

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/interntrack/internal/dbx"
	"github.com/dmitrijs2005/interntrack/internal/server/repositories/internships"
	"github.com/dmitrijs2005/interntrack/internal/server/repositories/users"
	"github.com/pressly/goose/v3"
)

// Storage backends accepted by New.
const (
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
)

type RepositoryManager interface {
	RunMigrations(ctx context.Context) error
	Users() users.Repository
	Internships() internships.Repository
	// Ping checks that the database is reachable.
	Ping(ctx context.Context) error
	Close() error
}

// migrator is the part of *goose.Provider the managers use.
type migrator interface {
	Up(ctx context.Context) ([]*goose.MigrationResult, error)
}

// openDB is a seam for tests.
var openDB = dbx.Open

// New opens a connection pool for backend and returns its manager.
// Migrations are not applied; call RunMigrations.
func New(ctx context.Context, backend, dsn string) (RepositoryManager, error) {
	switch backend {
	case BackendSQLite:
		db, err := openDB(ctx, dbx.DriverSQLite, dsn)
		if err != nil {
			return nil, err
		}
		return NewSQLiteRepositoryManager(db), nil
	case BackendPostgres:
		db, err := openDB(ctx, dbx.DriverPostgres, dsn)
		if err != nil {
			return nil, err
		}
		return NewPostgresRepositoryManager(db), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", backend)
	}
}

func runMigrations(ctx context.Context, m migrator, err error) error {
	if err != nil {
		return fmt.Errorf("migrations init error: %w", err)
	}
	if _, err := m.Up(ctx); err != nil {
		return fmt.Errorf("migrations error: %w", err)
	}
	return nil
}

// base carries the pool shared by both managers.
type base struct {
	db *sql.DB
}

func (b *base) Ping(ctx context.Context) error {
	return b.db.PingContext(ctx)
}

func (b *base) Close() error {
	return b.db.Close()
}
