// Package migrations embeds the versioned schema for every supported dialect
// and builds goose providers over it.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"

	"github.com/pressly/goose/v3"
)

//go:embed sqlite/*.sql postgres/*.sql
var files embed.FS

// FS returns the SQL migrations for a dialect directory ("sqlite" or "postgres").
func FS(dir string) (fs.FS, error) {
	return fs.Sub(files, dir)
}

// NewSQLiteProvider returns a goose provider for the SQLite schema, including
// the Go migration that upgrades legacy internships tables in place.
func NewSQLiteProvider(db *sql.DB) (*goose.Provider, error) {
	fsys, err := FS("sqlite")
	if err != nil {
		return nil, err
	}
	return goose.NewProvider(goose.DialectSQLite3, db, fsys,
		goose.WithGoMigrations(
			goose.NewGoMigration(3, &goose.GoFunc{RunTx: upLegacyColumns}, nil),
		),
	)
}

// NewPostgresProvider returns a goose provider for the PostgreSQL schema.
func NewPostgresProvider(db *sql.DB) (*goose.Provider, error) {
	fsys, err := FS("postgres")
	if err != nil {
		return nil, err
	}
	return goose.NewProvider(goose.DialectPostgres, db, fsys)
}

// legacyColumns are columns that internships tables created by early builds
// may lack. Order matters: user_id references users, which exists by now.
var legacyColumns = []struct {
	name string
	ddl  string
}{
	{"link", "ALTER TABLE internships ADD COLUMN link TEXT"},
	{"notes", "ALTER TABLE internships ADD COLUMN notes TEXT"},
	{"user_id", "ALTER TABLE internships ADD COLUMN user_id INTEGER REFERENCES users(id) ON DELETE CASCADE"},
}

func upLegacyColumns(ctx context.Context, tx *sql.Tx) error {
	for _, c := range legacyColumns {
		exists, err := hasColumn(ctx, tx, "internships", c.name)
		if err != nil {
			return err
		}
		if exists {
			continue
		}
		if _, err := tx.ExecContext(ctx, c.ddl); err != nil {
			return fmt.Errorf("add column %s: %w", c.name, err)
		}
	}
	return nil
}

func hasColumn(ctx context.Context, tx *sql.Tx, table, column string) (bool, error) {
	var n int
	err := tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM pragma_table_info(?) WHERE name = ?`, table, column).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("inspect %s.%s: %w", table, column, err)
	}
	return n > 0, nil
}
