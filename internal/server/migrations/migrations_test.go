package migrations

import (
	"context"
	"database/sql"
	"io/fs"
	"testing"

	"github.com/dmitrijs2005/interntrack/internal/dbx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openMemory(t *testing.T) *sql.DB {
	t.Helper()
	db, err := dbx.Open(context.Background(), dbx.DriverSQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func columns(t *testing.T, db *sql.DB, table string) []string {
	t.Helper()
	rows, err := db.Query(`SELECT name FROM pragma_table_info(?) ORDER BY cid`, table)
	require.NoError(t, err)
	defer rows.Close()

	var names []string
	for rows.Next() {
		var n string
		require.NoError(t, rows.Scan(&n))
		names = append(names, n)
	}
	require.NoError(t, rows.Err())
	return names
}

func TestFS_DialectsAreEmbedded(t *testing.T) {
	for _, dir := range []string{"sqlite", "postgres"} {
		fsys, err := FS(dir)
		require.NoError(t, err)

		matches, err := fs.Glob(fsys, "*.sql")
		require.NoError(t, err)
		assert.NotEmpty(t, matches, dir)
	}
}

func TestSQLiteProvider_FreshDatabase(t *testing.T) {
	ctx := context.Background()
	db := openMemory(t)

	p, err := NewSQLiteProvider(db)
	require.NoError(t, err)

	_, err = p.Up(ctx)
	require.NoError(t, err)

	v, err := p.GetDBVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(4), v)

	assert.ElementsMatch(t,
		[]string{"id", "user_id", "company", "role", "status", "link", "notes", "created_at"},
		columns(t, db, "internships"))
	assert.ElementsMatch(t,
		[]string{"id", "username", "password_hash", "created_at"},
		columns(t, db, "users"))
}

func TestSQLiteProvider_RerunIsNoop(t *testing.T) {
	ctx := context.Background()
	db := openMemory(t)

	p, err := NewSQLiteProvider(db)
	require.NoError(t, err)
	_, err = p.Up(ctx)
	require.NoError(t, err)

	p2, err := NewSQLiteProvider(db)
	require.NoError(t, err)
	res, err := p2.Up(ctx)
	require.NoError(t, err)
	assert.Empty(t, res)
}

func TestSQLiteProvider_UpgradesLegacyTable(t *testing.T) {
	ctx := context.Background()
	db := openMemory(t)

	_, err := db.Exec(`
		CREATE TABLE internships (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			company TEXT NOT NULL,
			role TEXT NOT NULL,
			status TEXT NOT NULL DEFAULT 'applied',
			created_at TEXT NOT NULL
		)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO internships (company, role, created_at) VALUES ('Acme', 'Intern', '2024-01-01T00:00:00Z')`)
	require.NoError(t, err)

	p, err := NewSQLiteProvider(db)
	require.NoError(t, err)
	_, err = p.Up(ctx)
	require.NoError(t, err)

	cols := columns(t, db, "internships")
	assert.Contains(t, cols, "link")
	assert.Contains(t, cols, "notes")
	assert.Contains(t, cols, "user_id")

	var company string
	var owner sql.NullInt64
	require.NoError(t, db.QueryRow(`SELECT company, user_id FROM internships`).Scan(&company, &owner))
	assert.Equal(t, "Acme", company)
	assert.False(t, owner.Valid)
}

func TestSQLiteProvider_PartiallyUpgradedTable(t *testing.T) {
	ctx := context.Background()
	db := openMemory(t)

	_, err := db.Exec(`
		CREATE TABLE internships (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			company TEXT NOT NULL,
			role TEXT NOT NULL,
			status TEXT NOT NULL DEFAULT 'applied',
			link TEXT,
			created_at TEXT NOT NULL
		)`)
	require.NoError(t, err)

	p, err := NewSQLiteProvider(db)
	require.NoError(t, err)
	_, err = p.Up(ctx)
	require.NoError(t, err)

	cols := columns(t, db, "internships")
	assert.Len(t, cols, 8)
}
