package internships

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/interntrack/internal/common"
	"github.com/dmitrijs2005/interntrack/internal/dbx"
	"github.com/dmitrijs2005/interntrack/internal/server/models"
)

// PostgresRepository implements Repository over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const postgresColumns = `id, user_id, company, role, status, link, notes, created_at`

func scanPostgres(row rowScanner) (*models.Internship, error) {
	var (
		item   models.Internship
		status string
	)
	if err := row.Scan(&item.ID, &item.UserID, &item.Company, &item.Role, &status,
		&item.Link, &item.Notes, &item.CreatedAt); err != nil {
		return nil, err
	}
	item.Status = models.Status(status)
	item.CreatedAt = item.CreatedAt.UTC()
	return &item, nil
}

func (r *PostgresRepository) List(ctx context.Context, userID int64, filter models.InternshipFilter) ([]*models.Internship, error) {
	query := `SELECT ` + postgresColumns + ` FROM internships
		WHERE user_id = $1
		  AND ($2::text = '' OR status = $2)
		  AND ($3::text = '' OR strpos(lower(company), lower($3)) > 0 OR strpos(lower(role), lower($3)) > 0)
		ORDER BY id DESC`

	rows, err := r.db.QueryContext(ctx, query, userID, string(filter.Status), filter.Query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Internship, 0)
	for rows.Next() {
		item, err := scanPostgres(rows)
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

func (r *PostgresRepository) Get(ctx context.Context, userID, id int64) (*models.Internship, error) {
	query := `SELECT ` + postgresColumns + ` FROM internships
		WHERE id = $1 AND user_id = $2`

	item, err := scanPostgres(r.db.QueryRowContext(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return item, nil
}

func (r *PostgresRepository) Create(ctx context.Context, item *models.Internship) (*models.Internship, error) {
	query :=
		`INSERT INTO internships (user_id, company, role, status, link, notes, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id`

	err := r.db.QueryRowContext(ctx, query,
		item.UserID, item.Company, item.Role, string(item.Status), item.Link, item.Notes, item.CreatedAt.UTC(),
	).Scan(&item.ID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return item, nil
}

func (r *PostgresRepository) Update(ctx context.Context, item *models.Internship) error {
	query :=
		`UPDATE internships
		 SET company = $1, role = $2, status = $3, link = $4, notes = $5
		 WHERE id = $6 AND user_id = $7`

	res, err := r.db.ExecContext(ctx, query,
		item.Company, item.Role, string(item.Status), item.Link, item.Notes, item.ID, item.UserID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return expectOneRow(res)
}

func (r *PostgresRepository) Delete(ctx context.Context, userID, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM internships WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return expectOneRow(res)
}
