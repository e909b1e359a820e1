package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("JWT_TTL_MINUTES", "")

	cfg := Load()

	require.Equal(t, "8080", cfg.AppPort)
	require.Equal(t, "s3cret", cfg.JWTSecret)
	require.Equal(t, 43200*time.Minute, cfg.TokenExpires)
	require.Equal(t, WishlistBackendDB, cfg.WishlistBackend)
	require.NoError(t, cfg.Validate())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("APP_PORT", "9000")
	t.Setenv("JWT_SECRET", "k")
	t.Setenv("JWT_TTL_MINUTES", "15")
	t.Setenv("WISHLIST_BACKEND", "Redis")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("CORS_ORIGINS", "https://a.example, ,https://b.example")

	cfg := Load()

	require.Equal(t, "9000", cfg.AppPort)
	require.Equal(t, 15*time.Minute, cfg.TokenExpires)
	require.Equal(t, WishlistBackendRedis, cfg.WishlistBackend)
	require.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins())
	require.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{
			name:    "missing secret",
			cfg:     Config{AppPort: "8080", TokenExpires: time.Hour, WishlistBackend: WishlistBackendDB},
			wantErr: "JWT_SECRET must be set",
		},
		{
			name:    "redis without url",
			cfg:     Config{AppPort: "8080", JWTSecret: "k", TokenExpires: time.Hour, WishlistBackend: WishlistBackendRedis},
			wantErr: "REDIS_URL must be set",
		},
		{
			name:    "unknown backend",
			cfg:     Config{AppPort: "8080", JWTSecret: "k", TokenExpires: time.Hour, WishlistBackend: "mongo"},
			wantErr: "WISHLIST_BACKEND must be db or redis",
		},
		{
			name:    "non-positive ttl",
			cfg:     Config{AppPort: "8080", JWTSecret: "k", WishlistBackend: WishlistBackendDB},
			wantErr: "JWT_TTL_MINUTES must be positive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
