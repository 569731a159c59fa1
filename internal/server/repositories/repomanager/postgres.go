package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/interntrack/internal/server/migrations"
	"github.com/dmitrijs2005/interntrack/internal/server/repositories/internships"
	"github.com/dmitrijs2005/interntrack/internal/server/repositories/users"
)

// PostgresRepositoryManager vends PostgreSQL-backed repository implementations
// and exposes a schema migration hook.
type PostgresRepositoryManager struct {
	base
}

func NewPostgresRepositoryManager(db *sql.DB) *PostgresRepositoryManager {
	return &PostgresRepositoryManager{base{db: db}}
}

// newPostgresMigrator is a seam for tests.
var newPostgresMigrator = func(db *sql.DB) (migrator, error) {
	return migrations.NewPostgresProvider(db)
}

// RunMigrations applies the embedded PostgreSQL migrations with goose.
func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context) error {
	p, err := newPostgresMigrator(m.db)
	return runMigrations(ctx, p, err)
}

func (m *PostgresRepositoryManager) Users() users.Repository {
	return users.NewPostgresRepository(m.db)
}

func (m *PostgresRepositoryManager) Internships() internships.Repository {
	return internships.NewPostgresRepository(m.db)
}
