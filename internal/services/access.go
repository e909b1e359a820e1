package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/example/luxe/internal/models"
	"github.com/example/luxe/internal/repositories"
	"github.com/example/luxe/internal/utils"
)

// TokenVerifier checks session tokens.
type TokenVerifier interface {
	Verify(token string) (*utils.TokenClaims, error)
}

// UserFinder looks users up by email. The returned user carries no
// password hash.
type UserFinder interface {
	FindProfileByEmail(ctx context.Context, email string) (*models.User, error)
}

// AccessControl turns bearer tokens into users and gates roles.
type AccessControl struct {
	tokens TokenVerifier
	users  UserFinder
}

// NewAccessControl creates a new AccessControl.
func NewAccessControl(tokens TokenVerifier, users UserFinder) *AccessControl {
	return &AccessControl{tokens: tokens, users: users}
}

// Resolve verifies token and loads the user named by its subject, without
// the password hash. A token for a user that no longer exists is rejected
// like an invalid one.
func (a *AccessControl) Resolve(ctx context.Context, token string) (*models.User, error) {
	claims, err := a.tokens.Verify(token)
	if err != nil {
		return nil, ErrUnauthenticated
	}

	user, err := a.users.FindProfileByEmail(ctx, claims.Email())
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrUnauthenticated
		}
		return nil, fmt.Errorf("resolve user: %w", err)
	}
	return user, nil
}

// RequireRole passes user through unchanged when it holds role.
func (a *AccessControl) RequireRole(user *models.User, role models.Role) (*models.User, error) {
	if user == nil {
		return nil, ErrUnauthenticated
	}
	if user.Role != role {
		return nil, ErrForbidden
	}
	return user, nil
}
