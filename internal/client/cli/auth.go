package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/interntrack/internal/client/models"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
)

func (a *App) Signup(ctx context.Context) error {
	return a.authenticate(ctx, a.auth.Signup, "Account created, logged in as")
}

func (a *App) Login(ctx context.Context) error {
	return a.authenticate(ctx, a.auth.Login, "Logged in as")
}

func (a *App) authenticate(ctx context.Context, fn func(ctx context.Context, username, password string) (*models.Session, error), done string) error {
	username, err := getSimpleText(a.reader, "Username", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return err
	}
	if username == "" || password == "" {
		return errors.New("username and password are required")
	}

	s, err := fn(ctx, username, password)
	if s != nil {
		fmt.Fprintln(a.out, done, s.Username)
	}
	return err
}

func (a *App) Logout(ctx context.Context) error {
	if !a.isLoggedIn() {
		fmt.Fprintln(a.out, "Not logged in")
		return nil
	}
	if err := a.auth.Logout(); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Logged out")
	return nil
}
