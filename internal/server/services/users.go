// Package services holds the business rules between the HTTP layer and the
// repositories: input validation, credential checks and ownership scoping.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/dmitrijs2005/interntrack/internal/common"
	"github.com/dmitrijs2005/interntrack/internal/server/auth"
	"github.com/dmitrijs2005/interntrack/internal/server/models"
	"github.com/dmitrijs2005/interntrack/internal/server/repositories/users"
)

const (
	MinUsernameLength = 3
	MinPasswordLength = 6
)

// AuthResult is returned by Signup and Login.
type AuthResult struct {
	Token    string
	UserID   int64
	Username string
}

type UserService struct {
	repo   users.Repository
	tokens *auth.TokenManager
	hasher *auth.PasswordHasher
}

func NewUserService(repo users.Repository, tokens *auth.TokenManager, hasher *auth.PasswordHasher) *UserService {
	return &UserService{repo: repo, tokens: tokens, hasher: hasher}
}

// CreateUser validates and stores a new account. The username is trimmed;
// lengths are counted in characters.
func (s *UserService) CreateUser(ctx context.Context, username, password string) (*models.User, error) {
	username = strings.TrimSpace(username)

	if utf8.RuneCountInString(username) < MinUsernameLength {
		return nil, common.InvalidInput(fmt.Sprintf("username must be at least %d characters", MinUsernameLength))
	}
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return nil, common.InvalidInput(fmt.Sprintf("password must be at least %d characters", MinPasswordLength))
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	user, err := s.repo.Create(ctx, &models.User{UserName: username, PasswordHash: hash})
	if err != nil {
		if errors.Is(err, common.ErrorDuplicateUsername) {
			return nil, common.ErrorDuplicateUsername
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	return user, nil
}

// VerifyCredentials returns the user when password matches. An unknown
// username and a wrong password both yield common.ErrorInvalidCredentials
// after one bcrypt comparison.
func (s *UserService) VerifyCredentials(ctx context.Context, username, password string) (*models.User, error) {
	username = strings.TrimSpace(username)

	user, err := s.repo.GetUserByLogin(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.hasher.CompareDummy(password)
			return nil, common.ErrorInvalidCredentials
		}
		return nil, fmt.Errorf("error loading user: %w", err)
	}

	if !s.hasher.Compare(user.PasswordHash, password) {
		return nil, common.ErrorInvalidCredentials
	}

	return user, nil
}

func (s *UserService) Signup(ctx context.Context, username, password string) (*AuthResult, error) {
	user, err := s.CreateUser(ctx, username, password)
	if err != nil {
		return nil, err
	}
	return s.issue(user)
}

func (s *UserService) Login(ctx context.Context, username, password string) (*AuthResult, error) {
	if strings.TrimSpace(username) == "" || password == "" {
		return nil, common.InvalidInput("username and password are required")
	}

	user, err := s.VerifyCredentials(ctx, username, password)
	if err != nil {
		return nil, err
	}
	return s.issue(user)
}

func (s *UserService) issue(user *models.User) (*AuthResult, error) {
	token, err := s.tokens.Issue(user.ID, user.UserName)
	if err != nil {
		return nil, fmt.Errorf("error issuing token: %w", err)
	}
	return &AuthResult{Token: token, UserID: user.ID, Username: user.UserName}, nil
}
