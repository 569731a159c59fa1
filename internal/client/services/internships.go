package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/interntrack/internal/client/client"
	"github.com/dmitrijs2005/interntrack/internal/client/models"
)

// ErrSessionExpired is returned when the server rejected the saved token.
// The local session has been cleared by then.
var ErrSessionExpired = errors.New("session expired, please log in again")

type InternshipService interface {
	List(ctx context.Context, status, query string) ([]*models.Internship, error)
	Get(ctx context.Context, id int64) (*models.Internship, error)
	Add(ctx context.Context, in models.InternshipInput) (*models.Internship, error)
	Edit(ctx context.Context, id int64, in models.InternshipInput) error
	Delete(ctx context.Context, id int64) error
}

type internshipService struct {
	client client.Client
	auth   AuthService
}

func NewInternshipService(c client.Client, auth AuthService) InternshipService {
	return &internshipService{client: c, auth: auth}
}

func (s *internshipService) List(ctx context.Context, status, query string) ([]*models.Internship, error) {
	var items []*models.Internship
	err := s.withToken(func(token string) (err error) {
		items, err = s.client.List(ctx, token, status, query)
		return err
	})
	return items, err
}

func (s *internshipService) Get(ctx context.Context, id int64) (*models.Internship, error) {
	var item *models.Internship
	err := s.withToken(func(token string) (err error) {
		item, err = s.client.Get(ctx, token, id)
		return err
	})
	return item, err
}

func (s *internshipService) Add(ctx context.Context, in models.InternshipInput) (*models.Internship, error) {
	var item *models.Internship
	err := s.withToken(func(token string) (err error) {
		item, err = s.client.Create(ctx, token, in)
		return err
	})
	return item, err
}

func (s *internshipService) Edit(ctx context.Context, id int64, in models.InternshipInput) error {
	return s.withToken(func(token string) error {
		return s.client.Update(ctx, token, id, in)
	})
}

func (s *internshipService) Delete(ctx context.Context, id int64) error {
	return s.withToken(func(token string) error {
		return s.client.Delete(ctx, token, id)
	})
}

// withToken runs fn with the current token and drops the session if the
// server answers 401.
func (s *internshipService) withToken(fn func(token string) error) error {
	token, err := s.auth.Token()
	if err != nil {
		return err
	}

	err = fn(token)
	if errors.Is(err, client.ErrUnauthorized) {
		if clearErr := s.auth.Invalidate(); clearErr != nil {
			return fmt.Errorf("%w (%v)", ErrSessionExpired, clearErr)
		}
		return ErrSessionExpired
	}
	return err
}
