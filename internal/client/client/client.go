// Package client talks to the InternTrack JSON API over HTTP.
package client

import (
	"context"

	"github.com/dmitrijs2005/interntrack/internal/client/models"
)

// Client is the API surface the CLI uses. Methods that need a caller take
// the bearer token explicitly.
type Client interface {
	Signup(ctx context.Context, username, password string) (*models.Session, error)
	Login(ctx context.Context, username, password string) (*models.Session, error)
	List(ctx context.Context, token, status, query string) ([]*models.Internship, error)
	Get(ctx context.Context, token string, id int64) (*models.Internship, error)
	Create(ctx context.Context, token string, in models.InternshipInput) (*models.Internship, error)
	Update(ctx context.Context, token string, id int64, in models.InternshipInput) error
	Delete(ctx context.Context, token string, id int64) error
	Ping(ctx context.Context) error
}
