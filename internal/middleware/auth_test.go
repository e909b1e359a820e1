package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/example/luxe/internal/models"
	"github.com/example/luxe/internal/services"
)

type fakeResolver struct {
	users map[string]*models.User
}

func (f fakeResolver) Resolve(_ context.Context, token string) (*models.User, error) {
	user, ok := f.users[token]
	if !ok {
		return nil, services.ErrUnauthenticated
	}
	return user, nil
}

func (f fakeResolver) RequireRole(user *models.User, role models.Role) (*models.User, error) {
	return services.NewAccessControl(nil, nil).RequireRole(user, role)
}

func newTestApp() *fiber.App {
	access := fakeResolver{users: map[string]*models.User{
		"customer-token": {Email: "c@x.com", Role: models.RoleCustomer},
		"admin-token":    {Email: "a@x.com", Role: models.RoleAdmin},
	}}

	app := fiber.New()
	app.Get("/me", Authenticate(access), func(c *fiber.Ctx) error {
		user, ok := GetCurrentUser(c)
		if !ok {
			return fiber.ErrInternalServerError
		}
		return c.SendString(user.Email)
	})
	app.Get("/admin", Authenticate(access), RequireAdmin(access), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})
	return app
}

func TestAuthenticate(t *testing.T) {
	app := newTestApp()

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic customer-token", http.StatusUnauthorized},
		{"empty token", "Bearer ", http.StatusUnauthorized},
		{"unknown token", "Bearer nope", http.StatusUnauthorized},
		{"valid token", "Bearer customer-token", http.StatusOK},
		{"lowercase scheme", "bearer customer-token", http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			require.Equal(t, tt.want, resp.StatusCode)
		})
	}
}

func TestRequireAdmin(t *testing.T) {
	app := newTestApp()

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer customer-token")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)

	req = httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer admin-token")
	resp, err = app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
}
