// Package services contains application services for the InternTrack CLI.
// This file defines the authentication service: signup, login, logout and
// the persisted session they share with the internship service.
package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/interntrack/internal/client/client"
	"github.com/dmitrijs2005/interntrack/internal/client/models"
	"github.com/dmitrijs2005/interntrack/internal/client/session"
)

var ErrNotLoggedIn = errors.New("not logged in")

// AuthService defines authentication operations for the CLI.
//
//   - Restore: load a session saved by a previous run.
//   - Signup / Login: authenticate and persist the returned token.
//   - Logout: forget the token locally. Tokens stay valid until they expire.
//   - Token: the bearer token of the current session.
//   - Invalidate: drop a session the server rejected.
type AuthService interface {
	Restore() (*models.Session, error)
	Signup(ctx context.Context, username, password string) (*models.Session, error)
	Login(ctx context.Context, username, password string) (*models.Session, error)
	Logout() error
	Current() *models.Session
	Token() (string, error)
	Invalidate() error
	Ping(ctx context.Context) error
}

type authService struct {
	client client.Client
	store  session.Store

	mu      sync.Mutex
	current *models.Session
}

func NewAuthService(c client.Client, store session.Store) AuthService {
	return &authService{client: c, store: store}
}

func (a *authService) Restore() (*models.Session, error) {
	s, err := a.store.Load()
	if err != nil {
		return nil, err
	}
	a.set(s)
	return s, nil
}

func (a *authService) Signup(ctx context.Context, username, password string) (*models.Session, error) {
	s, err := a.client.Signup(ctx, username, password)
	if err != nil {
		return nil, err
	}
	return s, a.remember(s)
}

func (a *authService) Login(ctx context.Context, username, password string) (*models.Session, error) {
	s, err := a.client.Login(ctx, username, password)
	if err != nil {
		return nil, err
	}
	return s, a.remember(s)
}

func (a *authService) Logout() error {
	a.set(nil)
	return a.store.Clear()
}

func (a *authService) Current() *models.Session {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.current
}

func (a *authService) Token() (string, error) {
	s := a.Current()
	if s == nil {
		return "", ErrNotLoggedIn
	}
	return s.Token, nil
}

func (a *authService) Invalidate() error {
	return a.Logout()
}

func (a *authService) Ping(ctx context.Context) error {
	return a.client.Ping(ctx)
}

func (a *authService) remember(s *models.Session) error {
	a.set(s)
	if err := a.store.Save(s); err != nil {
		return fmt.Errorf("logged in, but the session was not saved: %w", err)
	}
	return nil
}

func (a *authService) set(s *models.Session) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.current = s
}
