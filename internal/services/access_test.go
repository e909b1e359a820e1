package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/example/luxe/internal/database/dbtest"
	"github.com/example/luxe/internal/models"
	"github.com/example/luxe/internal/repositories"
	"github.com/example/luxe/internal/utils"
)

func TestAccessControl_Resolve(t *testing.T) {
	db := dbtest.New(t)
	users := repositories.NewUserRepository(db)
	tokens := utils.NewTokenService("test-secret", time.Hour)
	access := NewAccessControl(tokens, users)
	ctx := context.Background()

	hash, err := utils.HashPassword("secret1")
	require.NoError(t, err)
	require.NoError(t, users.Create(ctx, &models.User{Email: "a@x.com", PasswordHash: hash, Name: "Ann", Role: models.RoleCustomer}))

	token, err := tokens.Issue("a@x.com")
	require.NoError(t, err)

	user, err := access.Resolve(ctx, token)
	require.NoError(t, err)
	require.Equal(t, "a@x.com", user.Email)
	require.Equal(t, "Ann", user.Name)
	require.Empty(t, user.PasswordHash)

	_, err = access.Resolve(ctx, "garbage")
	require.ErrorIs(t, err, ErrUnauthenticated)

	foreign, err := utils.NewTokenService("other-secret", time.Hour).Issue("a@x.com")
	require.NoError(t, err)
	_, err = access.Resolve(ctx, foreign)
	require.ErrorIs(t, err, ErrUnauthenticated)

	expired, err := tokens.WithClock(func() time.Time { return time.Now().Add(-2 * time.Hour) }).Issue("a@x.com")
	require.NoError(t, err)
	_, err = access.Resolve(ctx, expired)
	require.ErrorIs(t, err, ErrUnauthenticated)
}

func TestAccessControl_ResolveDeletedUser(t *testing.T) {
	db := dbtest.New(t)
	users := repositories.NewUserRepository(db)
	tokens := utils.NewTokenService("test-secret", time.Hour)
	access := NewAccessControl(tokens, users)
	ctx := context.Background()

	user := &models.User{Email: "gone@x.com", PasswordHash: "x", Name: "Gus", Role: models.RoleCustomer}
	require.NoError(t, users.Create(ctx, user))
	token, err := tokens.Issue(user.Email)
	require.NoError(t, err)

	require.NoError(t, db.Delete(&models.User{}, "id = ?", user.ID).Error)

	_, err = access.Resolve(ctx, token)
	require.ErrorIs(t, err, ErrUnauthenticated)
}

func TestAccessControl_RequireRole(t *testing.T) {
	access := NewAccessControl(nil, nil)

	customer := &models.User{Email: "c@x.com", Role: models.RoleCustomer}
	_, err := access.RequireRole(customer, models.RoleAdmin)
	require.ErrorIs(t, err, ErrForbidden)

	admin := &models.User{Email: "a@x.com", Role: models.RoleAdmin}
	got, err := access.RequireRole(admin, models.RoleAdmin)
	require.NoError(t, err)
	require.Same(t, admin, got)

	_, err = access.RequireRole(nil, models.RoleAdmin)
	require.ErrorIs(t, err, ErrUnauthenticated)
}
