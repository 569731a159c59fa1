// Package internships persists internship records. Every query is scoped by
// the owning user, so a record belonging to someone else is indistinguishable
// from one that does not exist.
package internships

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/interntrack/internal/common"
	"github.com/dmitrijs2005/interntrack/internal/server/models"
)

type Repository interface {
	// List returns the user's records, newest id first. Never nil.
	List(ctx context.Context, userID int64, filter models.InternshipFilter) ([]*models.Internship, error)
	Get(ctx context.Context, userID, id int64) (*models.Internship, error)
	// Create stores item and fills in its ID.
	Create(ctx context.Context, item *models.Internship) (*models.Internship, error)
	// Update overwrites company, role, status, link and notes of the record
	// identified by item.ID and item.UserID.
	Update(ctx context.Context, item *models.Internship) error
	Delete(ctx context.Context, userID, id int64) error
}

type rowScanner interface {
	Scan(dest ...any) error
}

// expectOneRow maps the result of an owner-scoped write to ErrorNotFound when
// nothing matched.
func expectOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	switch n {
	case 1:
		return nil
	case 0:
		return common.ErrorNotFound
	default:
		return fmt.Errorf("unexpected rows affected: %d", n)
	}
}
