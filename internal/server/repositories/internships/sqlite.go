package internships

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/interntrack/internal/common"
	"github.com/dmitrijs2005/interntrack/internal/dbx"
	"github.com/dmitrijs2005/interntrack/internal/server/models"
)

// createdAtLayout is how created_at is stored in SQLite TEXT columns. Fixed
// width UTC keeps lexical and chronological order identical.
const createdAtLayout = "2006-01-02T15:04:05.000000000Z"

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

const sqliteColumns = `id, user_id, company, role, status, link, notes, created_at`

func scanSQLite(row rowScanner) (*models.Internship, error) {
	var (
		item      models.Internship
		status    string
		createdAt string
	)
	if err := row.Scan(&item.ID, &item.UserID, &item.Company, &item.Role, &status,
		&item.Link, &item.Notes, &createdAt); err != nil {
		return nil, err
	}
	item.Status = models.Status(status)

	t, err := parseCreatedAt(createdAt)
	if err != nil {
		return nil, err
	}
	item.CreatedAt = t
	return &item, nil
}

// parseCreatedAt accepts the stored layout and any RFC 3339 value, which is
// what rows written by earlier builds contain.
func parseCreatedAt(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("bad created_at %q: %w", s, err)
	}
	return t.UTC(), nil
}

func (r *SQLiteRepository) List(ctx context.Context, userID int64, filter models.InternshipFilter) ([]*models.Internship, error) {
	query := `SELECT ` + sqliteColumns + ` FROM internships
		WHERE user_id = ?
		  AND (? = '' OR status = ?)
		  AND (? = '' OR instr(lower(company), lower(?)) > 0 OR instr(lower(role), lower(?)) > 0)
		ORDER BY id DESC`

	status := string(filter.Status)
	rows, err := r.db.QueryContext(ctx, query,
		userID, status, status, filter.Query, filter.Query, filter.Query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Internship, 0)
	for rows.Next() {
		item, err := scanSQLite(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *SQLiteRepository) Get(ctx context.Context, userID, id int64) (*models.Internship, error) {
	query := `SELECT ` + sqliteColumns + ` FROM internships
		WHERE id = ? AND user_id = ?`

	item, err := scanSQLite(r.db.QueryRowContext(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return item, nil
}

func (r *SQLiteRepository) Create(ctx context.Context, item *models.Internship) (*models.Internship, error) {
	query :=
		`INSERT INTO internships (user_id, company, role, status, link, notes, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 RETURNING id`

	err := r.db.QueryRowContext(ctx, query,
		item.UserID, item.Company, item.Role, string(item.Status), item.Link, item.Notes,
		item.CreatedAt.UTC().Format(createdAtLayout),
	).Scan(&item.ID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return item, nil
}

func (r *SQLiteRepository) Update(ctx context.Context, item *models.Internship) error {
	query :=
		`UPDATE internships
		 SET company = ?, role = ?, status = ?, link = ?, notes = ?
		 WHERE id = ? AND user_id = ?`

	res, err := r.db.ExecContext(ctx, query,
		item.Company, item.Role, string(item.Status), item.Link, item.Notes, item.ID, item.UserID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return expectOneRow(res)
}

func (r *SQLiteRepository) Delete(ctx context.Context, userID, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM internships WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return expectOneRow(res)
}
