// Package users persists user accounts.
package users

import (
	"context"

	"github.com/dmitrijs2005/interntrack/internal/server/models"
)

// Repository stores users. Create fails with common.ErrorDuplicateUsername
// when the username is taken; GetUserByLogin returns common.ErrorNotFound
// for an unknown username.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetUserByLogin(ctx context.Context, login string) (*models.User, error)
}
