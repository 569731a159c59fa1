package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/interntrack/internal/server/migrations"
	"github.com/dmitrijs2005/interntrack/internal/server/repositories/internships"
	"github.com/dmitrijs2005/interntrack/internal/server/repositories/users"
)

// SQLiteRepositoryManager vends SQLite-backed repositories over one pool.
type SQLiteRepositoryManager struct {
	base
}

func NewSQLiteRepositoryManager(db *sql.DB) *SQLiteRepositoryManager {
	return &SQLiteRepositoryManager{base{db: db}}
}

// newSQLiteMigrator is a seam for tests.
var newSQLiteMigrator = func(db *sql.DB) (migrator, error) {
	return migrations.NewSQLiteProvider(db)
}

func (m *SQLiteRepositoryManager) RunMigrations(ctx context.Context) error {
	p, err := newSQLiteMigrator(m.db)
	return runMigrations(ctx, p, err)
}

func (m *SQLiteRepositoryManager) Users() users.Repository {
	return users.NewSQLiteRepository(m.db)
}

func (m *SQLiteRepositoryManager) Internships() internships.Repository {
	return internships.NewSQLiteRepository(m.db)
}
